package binarypack

import (
	"encoding/binary"
	"math"

	"github.com/nasselk/binarypack/errors"
	"github.com/nasselk/binarypack/f16"
)

// Reader deserializes values from a byte buffer in the order and encoding a
// Writer produced them. The buffer is borrowed, never mutated.
//
// Every read is all-or-nothing: on failure the cursor does not move, including
// partially decoded varints and prefixed payloads.
type Reader struct {
	buf []byte
	off int // next byte to read
	bit int // bits consumed from buf[off], 0..7; 0 means aligned
}

// NewReader returns a Reader over buf. The Reader borrows buf for its
// lifetime; the caller must not mutate it while reading.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Offset returns the byte cursor: the index of the next byte to read.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of bytes from the cursor's byte to the end of
// the buffer. A partially consumed byte counts as remaining.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// RemainingBits returns the number of unread bits.
func (r *Reader) RemainingBits() int {
	return len(r.buf)*8 - r.off*8 - r.bit
}

// Align forces the cursor to the next byte boundary, discarding any unread
// bits of the current partial byte. Byte-level reads call this implicitly.
func (r *Reader) Align() {
	if r.bit != 0 {
		r.off++
		r.bit = 0
	}
}

// aligned returns the byte offset a byte-level read of n bytes would start at,
// without moving the cursor, or an OutOfBounds error if fewer bytes remain.
func (r *Reader) aligned(n int) (int, error) {
	off := r.off
	if r.bit != 0 {
		off++
	}
	if len(r.buf)-off < n {
		return 0, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Position(r.off, r.bit).
			Detail("need %d bytes, %d remaining", n, len(r.buf)-off).
			Build()
	}
	return off, nil
}

// ReadUint8 reads an unsigned 8 bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	off, err := r.aligned(1)
	if err != nil {
		return 0, err
	}
	v := r.buf[off]
	r.off, r.bit = off+1, 0
	return v, nil
}

// ReadUint16 reads an unsigned 16 bit integer, most-significant byte first.
func (r *Reader) ReadUint16() (uint16, error) {
	off, err := r.aligned(2)
	if err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[off:])
	r.off, r.bit = off+2, 0
	return v, nil
}

// ReadUint32 reads an unsigned 32 bit integer, most-significant byte first.
func (r *Reader) ReadUint32() (uint32, error) {
	off, err := r.aligned(4)
	if err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[off:])
	r.off, r.bit = off+4, 0
	return v, nil
}

// ReadUint64 reads an unsigned 64 bit integer, most-significant byte first.
func (r *Reader) ReadUint64() (uint64, error) {
	off, err := r.aligned(8)
	if err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.buf[off:])
	r.off, r.bit = off+8, 0
	return v, nil
}

// ReadInt8 reads a signed 8 bit integer.
func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

// ReadInt16 reads a signed 16 bit integer, most-significant byte first.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadInt32 reads a signed 32 bit integer, most-significant byte first.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadInt64 reads a signed 64 bit integer, most-significant byte first.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadBool reads a single byte and reports whether it is non-zero.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadUint8()
	return v != 0, err
}

// ReadBits reads count bits, most-significant bit first, starting at the
// current bit cursor, and assembles them into a uint32. count must be in
// [0, 32]; fewer unread bits than requested is an OutOfBounds error.
func (r *Reader) ReadBits(count int) (uint32, error) {
	if count < 0 || count > 32 {
		return 0, errors.InvalidParameter(errors.PhaseDecode, "bit count %d outside [0, 32]", count)
	}
	if r.RemainingBits() < count {
		return 0, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Position(r.off, r.bit).
			Detail("need %d bits, %d remaining", count, r.RemainingBits()).
			Build()
	}
	var v uint32
	for count > 0 {
		avail := 8 - r.bit
		take := count
		if take > avail {
			take = avail
		}
		chunk := r.buf[r.off] >> uint(avail-take) & (1<<uint(take) - 1)
		v = v<<uint(take) | uint32(chunk)
		r.bit += take
		if r.bit == 8 {
			r.off++
			r.bit = 0
		}
		count -= take
	}
	return v, nil
}

// ReadUvarint reads an unsigned LEB128 varint: bytes are consumed until one
// with the continuation bit clear, reconstructing the 7-bit groups
// least-significant first. The read is byte-aligned.
func (r *Reader) ReadUvarint() (uint64, error) {
	start := r.off
	if r.bit != 0 {
		start++
	}
	var v uint64
	var shift uint
	for i := start; ; i++ {
		if i >= len(r.buf) {
			return 0, errors.OutOfBounds(errors.PhaseDecode, r.off, r.bit, "unterminated varint")
		}
		b := r.buf[i]
		if shift == 63 && b&0x7f > 1 {
			// The tenth group holds only the top bit of a 64 bit value.
			return 0, errors.Overflow(errors.PhaseDecode, b, "varint exceeds 64 bits")
		}
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			r.off, r.bit = i+1, 0
			return v, nil
		}
		shift += 7
		if shift >= maxVarintShift {
			return 0, errors.Overflow(errors.PhaseDecode, nil, "varint exceeds 64 bits")
		}
	}
}

// ReadVarint reads a zigzag-mapped signed LEB128 varint.
func (r *Reader) ReadVarint() (int64, error) {
	u, err := r.ReadUvarint()
	if err != nil {
		return 0, err
	}
	return unzigzag(u), nil
}

// ReadFloat16 reads an IEEE-754 binary16 bit pattern.
func (r *Reader) ReadFloat16() (f16.Number, error) {
	v, err := r.ReadUint16()
	return f16.Number(v), err
}

// ReadFloat32 reads an IEEE-754 binary32 value.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 reads an IEEE-754 binary64 value.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadString reads a length-prefixed string. The prefix must match the one
// the writing side used; PrefixNone is rejected, use ReadStringN instead.
func (r *Reader) ReadString(p Prefix) (string, error) {
	b, err := r.ReadBytes(p)
	return string(b), err
}

// ReadStringN reads an unprefixed string of exactly n bytes.
func (r *Reader) ReadStringN(n int) (string, error) {
	b, err := r.ReadBytesN(n)
	return string(b), err
}

// ReadBytes reads a length-prefixed buffer. The returned slice is a copy.
func (r *Reader) ReadBytes(p Prefix) ([]byte, error) {
	if p == PrefixNone {
		return nil, errors.InvalidParameter(errors.PhaseDecode,
			"length prefix required; use ReadBytesN for unprefixed payloads")
	}
	if err := p.check(errors.PhaseDecode); err != nil {
		return nil, err
	}
	save := *r
	n, err := r.readPrefix(p)
	if err != nil {
		*r = save
		return nil, err
	}
	b, err := r.ReadBytesN(n)
	if err != nil {
		*r = save
		return nil, err
	}
	return b, nil
}

// ReadBytesN reads exactly n unprefixed bytes. The returned slice is a copy.
func (r *Reader) ReadBytesN(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.InvalidParameter(errors.PhaseDecode, "negative length %d", n)
	}
	off, err := r.aligned(n)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, r.buf[off:off+n])
	r.off, r.bit = off+n, 0
	return b, nil
}

func (r *Reader) readPrefix(p Prefix) (int, error) {
	switch p {
	case Prefix8:
		n, err := r.ReadUint8()
		return int(n), err
	case Prefix16:
		n, err := r.ReadUint16()
		return int(n), err
	default: // Prefix32, validated by the caller
		n, err := r.ReadUint32()
		if err != nil {
			return 0, err
		}
		if uint64(n) > uint64(maxInt) {
			return 0, errors.Overflow(errors.PhaseDecode, n, "length prefix exceeds the int range")
		}
		return int(n), nil
	}
}

// PeekUint8 decodes like ReadUint8 without advancing the cursor.
func (r *Reader) PeekUint8() (uint8, error) {
	save := *r
	v, err := r.ReadUint8()
	*r = save
	return v, err
}

// PeekUint16 decodes like ReadUint16 without advancing the cursor.
func (r *Reader) PeekUint16() (uint16, error) {
	save := *r
	v, err := r.ReadUint16()
	*r = save
	return v, err
}

// PeekUint32 decodes like ReadUint32 without advancing the cursor.
func (r *Reader) PeekUint32() (uint32, error) {
	save := *r
	v, err := r.ReadUint32()
	*r = save
	return v, err
}

// PeekUint64 decodes like ReadUint64 without advancing the cursor.
func (r *Reader) PeekUint64() (uint64, error) {
	save := *r
	v, err := r.ReadUint64()
	*r = save
	return v, err
}

// PeekBits decodes like ReadBits without advancing the cursor.
func (r *Reader) PeekBits(count int) (uint32, error) {
	save := *r
	v, err := r.ReadBits(count)
	*r = save
	return v, err
}

// PeekUvarint decodes like ReadUvarint without advancing the cursor.
func (r *Reader) PeekUvarint() (uint64, error) {
	save := *r
	v, err := r.ReadUvarint()
	*r = save
	return v, err
}

// PeekVarint decodes like ReadVarint without advancing the cursor.
func (r *Reader) PeekVarint() (int64, error) {
	save := *r
	v, err := r.ReadVarint()
	*r = save
	return v, err
}
