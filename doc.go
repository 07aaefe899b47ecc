// Package binarypack provides a paired binary encoder and decoder over a single
// growable byte buffer.
//
// A Writer serializes a sequence of typed values; a Reader consumes the same
// bytes in the same order. The field schema is implicit: correctness depends on
// the writing and reading sides agreeing on field order and widths out of band.
// Both sides track a byte cursor and a sub-byte bit cursor, so bit-level fields
// and byte-level fields can be freely interleaved in one stream.
//
// # Architecture Overview
//
//	binarypack/          Root package: Writer, Reader, Prefix, precision codec
//	├── errors/          Structured error types (phase and kind taxonomy)
//	├── f16/             IEEE-754 binary16 conversion
//	└── cmd/binspect/    Schema-driven stream inspector CLI
//
// # Wire Format
//
// Multi-byte integers and floats are written most-significant-byte first. Bit
// fields are packed most-significant-bit first, contiguously across byte
// boundaries; unused trailing bits of a partial byte are zero. Varints use
// LEB128 (7 value bits per byte, continuation bit 7, least-significant group
// first); signed varints are zigzag-mapped first so small negative values stay
// short. Strings and buffers are raw bytes behind an optional explicit-width
// length prefix.
//
// # Quick Start
//
//	w := binarypack.NewWriter()
//	w.WriteUint16(0x1234)
//	w.WriteBits(5, 3)
//	w.WriteString("hello", binarypack.Prefix16)
//	w.WriteVarint(-42)
//
//	r := binarypack.NewReader(w.Bytes())
//	id, _ := r.ReadUint16()
//	flags, _ := r.ReadBits(3)
//	name, _ := r.ReadString(binarypack.Prefix16)
//	delta, _ := r.ReadVarint()
//
// # Error Handling
//
// Every operation either completes fully, advancing the cursor, or fails and
// leaves the cursor untouched. Failures are structured errors from the errors
// subpackage: Overflow (value wider than its declared width), OutOfBounds
// (read past the end of the buffer) and InvalidParameter (bit count, prefix or
// precision width outside its domain).
//
// # Thread Safety
//
// Writer and Reader are NOT safe for concurrent use. Each instance owns its
// cursor state exclusively; callers that share one across goroutines must
// serialize access themselves. A Reader borrows the buffer it is given and
// never mutates it, but must not observe concurrent mutation.
package binarypack
