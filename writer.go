package binarypack

import (
	"encoding/binary"
	"math"

	"go.uber.org/zap"

	"github.com/nasselk/binarypack/errors"
	"github.com/nasselk/binarypack/f16"
)

const minWriterCap = 64

// Writer serializes a sequence of typed values into a growable byte buffer.
//
// Multi-byte values are written most-significant-byte first. Bit fields are
// packed most-significant-bit first across byte boundaries. Byte-level
// operations align themselves first: any partial byte is flushed with its
// unused trailing bits zero.
//
// The zero value is not usable; call NewWriter or NewWriterSize.
type Writer struct {
	buf []byte
	bit int // bits used in the last byte of buf, 0..7; 0 means aligned
}

// NewWriter returns an empty Writer. The buffer grows on demand.
func NewWriter() *Writer {
	return &Writer{}
}

// NewWriterSize returns an empty Writer with capacity for at least n bytes.
func NewWriterSize(n int) *Writer {
	if n < 0 {
		n = 0
	}
	return &Writer{buf: make([]byte, 0, n)}
}

// Bytes returns the written portion of the buffer, including any partial byte.
// The slice aliases the Writer's internal buffer: further writes may grow the
// buffer and invalidate it, so re-acquire it after writing.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written, counting a partial byte as one.
func (w *Writer) Len() int {
	return len(w.buf)
}

// BitLen returns the number of bits written.
func (w *Writer) BitLen() int {
	if w.bit != 0 {
		return (len(w.buf)-1)*8 + w.bit
	}
	return len(w.buf) * 8
}

// Align forces the bit cursor to the next byte boundary. The unused trailing
// bits of a pending partial byte remain zero. Byte-level writes call this
// implicitly.
func (w *Writer) Align() {
	w.bit = 0
}

// grow ensures capacity for n more bytes, doubling the allocation so that
// repeated writes amortize. Previously written bytes keep their positions.
func (w *Writer) grow(n int) {
	need := len(w.buf) + n
	if need <= cap(w.buf) {
		return
	}
	newCap := cap(w.buf) * 2
	if newCap < need {
		newCap = need * 2
	}
	if newCap < minWriterCap {
		newCap = minWriterCap
	}
	buf := make([]byte, len(w.buf), newCap)
	copy(buf, w.buf)
	w.buf = buf
	Logger().Debug("writer buffer grown",
		zap.Int("len", len(w.buf)),
		zap.Int("cap", newCap))
}

// WriteUint8 writes an unsigned 8 bit integer.
func (w *Writer) WriteUint8(v uint8) {
	w.Align()
	w.grow(1)
	w.buf = append(w.buf, v)
}

// WriteUint16 writes an unsigned 16 bit integer, most-significant byte first.
func (w *Writer) WriteUint16(v uint16) {
	w.Align()
	w.grow(2)
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

// WriteUint32 writes an unsigned 32 bit integer, most-significant byte first.
func (w *Writer) WriteUint32(v uint32) {
	w.Align()
	w.grow(4)
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

// WriteUint64 writes an unsigned 64 bit integer, most-significant byte first.
func (w *Writer) WriteUint64(v uint64) {
	w.Align()
	w.grow(8)
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
}

// WriteInt8 writes a signed 8 bit integer.
func (w *Writer) WriteInt8(v int8) {
	w.WriteUint8(uint8(v))
}

// WriteInt16 writes a signed 16 bit integer, most-significant byte first.
func (w *Writer) WriteInt16(v int16) {
	w.WriteUint16(uint16(v))
}

// WriteInt32 writes a signed 32 bit integer, most-significant byte first.
func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

// WriteInt64 writes a signed 64 bit integer, most-significant byte first.
func (w *Writer) WriteInt64(v int64) {
	w.WriteUint64(uint64(v))
}

// WriteBool writes a boolean as a single byte, 1 for true and 0 for false.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
}

// WriteBits writes the low count bits of v, most-significant bit first,
// starting at the current bit cursor and splitting across byte boundaries as
// needed. count must be in [0, 32] and v must fit in count bits.
func (w *Writer) WriteBits(v uint32, count int) error {
	if count < 0 || count > 32 {
		return errors.InvalidParameter(errors.PhaseEncode, "bit count %d outside [0, 32]", count)
	}
	if count < 32 && v>>uint(count) != 0 {
		return errors.Overflow(errors.PhaseEncode, v, "value does not fit in declared bit count")
	}
	w.grow((count + 7) / 8)
	for count > 0 {
		if w.bit == 0 {
			// First touch of a fresh byte: start it zeroed so unwritten
			// trailing bits read back as 0.
			w.buf = append(w.buf, 0)
		}
		free := 8 - w.bit
		take := count
		if take > free {
			take = free
		}
		chunk := byte(v>>uint(count-take)) & (1<<uint(take) - 1)
		w.buf[len(w.buf)-1] |= chunk << uint(free-take)
		w.bit = (w.bit + take) & 7
		count -= take
	}
	return nil
}

// WriteUvarint writes an unsigned integer in LEB128 form: seven value bits per
// byte, least-significant group first, continuation bit set on all but the
// final byte. The write is byte-aligned.
func (w *Writer) WriteUvarint(v uint64) {
	w.Align()
	w.grow(maxVarintBytes)
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf = append(w.buf, b)
		if v == 0 {
			break
		}
	}
}

// WriteVarint writes a signed integer as a zigzag-mapped LEB128 varint, so
// small magnitudes of either sign stay short.
func (w *Writer) WriteVarint(v int64) {
	w.WriteUvarint(zigzag(v))
}

// WriteFloat16 writes an IEEE-754 binary16 bit pattern, byte-aligned,
// most-significant byte first.
func (w *Writer) WriteFloat16(v f16.Number) {
	w.WriteUint16(uint16(v))
}

// WriteFloat32 writes an IEEE-754 binary32 value, byte-aligned,
// most-significant byte first.
func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 writes an IEEE-754 binary64 value, byte-aligned,
// most-significant byte first.
func (w *Writer) WriteFloat64(v float64) {
	w.WriteUint64(math.Float64bits(v))
}

// WriteString writes the UTF-8 bytes of s behind the chosen length prefix.
// With PrefixNone only the raw bytes are written and the reading side must
// know the length.
func (w *Writer) WriteString(s string, p Prefix) error {
	if err := w.writePrefix(len(s), p); err != nil {
		return err
	}
	w.grow(len(s))
	w.buf = append(w.buf, s...)
	return nil
}

// WriteBytes writes the raw bytes of b behind the chosen length prefix, with
// the same convention as WriteString.
func (w *Writer) WriteBytes(b []byte, p Prefix) error {
	if err := w.writePrefix(len(b), p); err != nil {
		return err
	}
	w.grow(len(b))
	w.buf = append(w.buf, b...)
	return nil
}

func (w *Writer) writePrefix(n int, p Prefix) error {
	if err := p.check(errors.PhaseEncode); err != nil {
		return err
	}
	if n > p.MaxLen() {
		return errors.Overflow(errors.PhaseEncode, n, "payload length does not fit the length prefix")
	}
	w.Align()
	switch p {
	case Prefix8:
		w.WriteUint8(uint8(n))
	case Prefix16:
		w.WriteUint16(uint16(n))
	case Prefix32:
		w.WriteUint32(uint32(n))
	}
	return nil
}
