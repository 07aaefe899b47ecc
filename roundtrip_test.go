package binarypack_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/nasselk/binarypack"
	"github.com/nasselk/binarypack/f16"
)

func TestMixedStreamScenario(t *testing.T) {
	// uint16 0x1234, then 3 bits = 5, then "hello" behind a 2-byte prefix,
	// then signed varint -42. The bit field flushes with zero padding before
	// the aligned string, and zigzag(-42) = 83 = 0x53.
	w := binarypack.NewWriter()
	w.WriteUint16(0x1234)
	if err := w.WriteBits(5, 3); err != nil {
		t.Fatalf("WriteBits: %v", err)
	}
	if err := w.WriteString("hello", binarypack.Prefix16); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	w.WriteVarint(-42)

	want := []byte{0x12, 0x34, 0xA0, 0x00, 0x05, 'h', 'e', 'l', 'l', 'o', 0x53}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("stream: got % x, want % x", w.Bytes(), want)
	}

	r := binarypack.NewReader(w.Bytes())
	if v, err := r.ReadUint16(); err != nil || v != 0x1234 {
		t.Errorf("ReadUint16 = %#x, %v", v, err)
	}
	if v, err := r.ReadBits(3); err != nil || v != 5 {
		t.Errorf("ReadBits = %d, %v", v, err)
	}
	if s, err := r.ReadString(binarypack.Prefix16); err != nil || s != "hello" {
		t.Errorf("ReadString = %q, %v", s, err)
	}
	if v, err := r.ReadVarint(); err != nil || v != -42 {
		t.Errorf("ReadVarint = %d, %v", v, err)
	}
	if r.RemainingBits() != 0 {
		t.Errorf("RemainingBits = %d, want 0", r.RemainingBits())
	}
}

func TestPrimitiveRoundTrip(t *testing.T) {
	w := binarypack.NewWriter()
	w.WriteUint8(0xFE)
	w.WriteInt8(-100)
	w.WriteUint16(0xBEEF)
	w.WriteInt16(-30000)
	w.WriteUint32(0xCAFEBABE)
	w.WriteInt32(math.MinInt32)
	w.WriteUint64(math.MaxUint64)
	w.WriteInt64(math.MinInt64)
	w.WriteBool(true)
	w.WriteBool(false)
	w.WriteFloat16(f16.From(0.333251953125))
	w.WriteFloat32(math.Pi)
	w.WriteFloat64(-math.SqrtPhi)

	r := binarypack.NewReader(w.Bytes())
	if v, err := r.ReadUint8(); err != nil || v != 0xFE {
		t.Errorf("uint8 = %#x, %v", v, err)
	}
	if v, err := r.ReadInt8(); err != nil || v != -100 {
		t.Errorf("int8 = %d, %v", v, err)
	}
	if v, err := r.ReadUint16(); err != nil || v != 0xBEEF {
		t.Errorf("uint16 = %#x, %v", v, err)
	}
	if v, err := r.ReadInt16(); err != nil || v != -30000 {
		t.Errorf("int16 = %d, %v", v, err)
	}
	if v, err := r.ReadUint32(); err != nil || v != 0xCAFEBABE {
		t.Errorf("uint32 = %#x, %v", v, err)
	}
	if v, err := r.ReadInt32(); err != nil || v != math.MinInt32 {
		t.Errorf("int32 = %d, %v", v, err)
	}
	if v, err := r.ReadUint64(); err != nil || v != math.MaxUint64 {
		t.Errorf("uint64 = %#x, %v", v, err)
	}
	if v, err := r.ReadInt64(); err != nil || v != math.MinInt64 {
		t.Errorf("int64 = %d, %v", v, err)
	}
	if v, err := r.ReadBool(); err != nil || v != true {
		t.Errorf("bool = %v, %v", v, err)
	}
	if v, err := r.ReadBool(); err != nil || v != false {
		t.Errorf("bool = %v, %v", v, err)
	}
	if v, err := r.ReadFloat16(); err != nil || v != f16.From(0.333251953125) {
		t.Errorf("float16 = %#x, %v", uint16(v), err)
	}
	// Floats compare bit-for-bit.
	if v, err := r.ReadFloat32(); err != nil || math.Float32bits(v) != math.Float32bits(math.Pi) {
		t.Errorf("float32 = %v, %v", v, err)
	}
	if v, err := r.ReadFloat64(); err != nil || math.Float64bits(v) != math.Float64bits(-math.SqrtPhi) {
		t.Errorf("float64 = %v, %v", v, err)
	}
}

func TestNaNRoundTripBitExact(t *testing.T) {
	// A signalling NaN payload must survive untouched.
	snan := math.Float32frombits(0x7F800001)
	w := binarypack.NewWriter()
	w.WriteFloat32(snan)
	r := binarypack.NewReader(w.Bytes())
	v, err := r.ReadFloat32()
	if err != nil {
		t.Fatalf("ReadFloat32: %v", err)
	}
	if math.Float32bits(v) != 0x7F800001 {
		t.Errorf("NaN payload changed: %#x", math.Float32bits(v))
	}
}

func TestGrowthTransparency(t *testing.T) {
	// Writing beyond the initial capacity must not disturb earlier fields:
	// read everything back after the buffer has grown several times.
	w := binarypack.NewWriterSize(4)
	w.WriteUint32(0x01020304)
	if err := w.WriteBits(0b1101, 4); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteString("growth", binarypack.Prefix8); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 500; i++ {
		w.WriteUvarint(uint64(i) * 7)
	}

	r := binarypack.NewReader(w.Bytes())
	if v, err := r.ReadUint32(); err != nil || v != 0x01020304 {
		t.Fatalf("ReadUint32 after growth = %#x, %v", v, err)
	}
	if v, err := r.ReadBits(4); err != nil || v != 0b1101 {
		t.Fatalf("ReadBits after growth = %b, %v", v, err)
	}
	if s, err := r.ReadString(binarypack.Prefix8); err != nil || s != "growth" {
		t.Fatalf("ReadString after growth = %q, %v", s, err)
	}
	for i := 0; i < 500; i++ {
		v, err := r.ReadUvarint()
		if err != nil {
			t.Fatalf("ReadUvarint %d: %v", i, err)
		}
		if v != uint64(i)*7 {
			t.Fatalf("ReadUvarint %d = %d, want %d", i, v, uint64(i)*7)
		}
	}
}

func TestInterleavedBitAndByteFields(t *testing.T) {
	// Alternate bit-level and byte-level fields several times over.
	w := binarypack.NewWriter()
	for i := 0; i < 20; i++ {
		if err := w.WriteBits(uint32(i)&0x7, 3); err != nil {
			t.Fatal(err)
		}
		w.WriteUint8(uint8(i))
		w.WriteUvarint(uint64(i) << 10)
		if err := w.WriteBits(uint32(i)&0x1FFF, 13); err != nil {
			t.Fatal(err)
		}
	}

	r := binarypack.NewReader(w.Bytes())
	for i := 0; i < 20; i++ {
		if v, err := r.ReadBits(3); err != nil || v != uint32(i)&0x7 {
			t.Fatalf("iteration %d bits3 = %d, %v", i, v, err)
		}
		if v, err := r.ReadUint8(); err != nil || v != uint8(i) {
			t.Fatalf("iteration %d uint8 = %d, %v", i, v, err)
		}
		if v, err := r.ReadUvarint(); err != nil || v != uint64(i)<<10 {
			t.Fatalf("iteration %d uvarint = %d, %v", i, v, err)
		}
		if v, err := r.ReadBits(13); err != nil || v != uint32(i)&0x1FFF {
			t.Fatalf("iteration %d bits13 = %d, %v", i, v, err)
		}
	}
	// Each iteration's trailing 13-bit field stops at bit 5, so the stream
	// ends with 3 zero padding bits in its last byte.
	if r.RemainingBits() != 3 {
		t.Errorf("RemainingBits = %d, want 3", r.RemainingBits())
	}
	r.Align()
	if r.Remaining() != 0 {
		t.Errorf("Remaining after Align = %d, want 0", r.Remaining())
	}
}

func TestWriterReaderHandoff(t *testing.T) {
	// Bytes() exposes only the used portion; a fresh Reader over it sees
	// exactly the written bit length, rounded up to whole bytes.
	w := binarypack.NewWriterSize(1024)
	if err := w.WriteBits(0x15, 5); err != nil {
		t.Fatal(err)
	}
	b := w.Bytes()
	if len(b) != 1 {
		t.Fatalf("Bytes() length = %d, want 1", len(b))
	}
	r := binarypack.NewReader(b)
	if r.RemainingBits() != 8 {
		t.Errorf("RemainingBits = %d, want 8", r.RemainingBits())
	}
}
