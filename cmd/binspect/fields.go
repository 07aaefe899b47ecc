package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nasselk/binarypack"
)

var tokenHelp = []string{
	"bool u8 u16 u32 u64 i8 i16 i32 i64   fixed-width integers (big-endian)",
	"f16 f32 f64                          IEEE-754 floats",
	"bits:N                               N-bit field, MSB-first (N in 0..32)",
	"uvarint varint                       LEB128 / zigzag LEB128",
	"str:p8 str:p16 str:p32 str:N         length-prefixed or N-byte string",
	"bytes:p8 bytes:p16 bytes:p32 bytes:N length-prefixed or N-byte buffer",
	"align                                skip to the next byte boundary",
}

// decodeField consumes one schema token from the reader and renders the value.
func decodeField(r *binarypack.Reader, token string) (string, error) {
	name, arg, hasArg := strings.Cut(token, ":")
	switch name {
	case "bool":
		v, err := r.ReadBool()
		return fmt.Sprintf("%v", v), err
	case "u8":
		v, err := r.ReadUint8()
		return fmt.Sprintf("%d (0x%02x)", v, v), err
	case "u16":
		v, err := r.ReadUint16()
		return fmt.Sprintf("%d (0x%04x)", v, v), err
	case "u32":
		v, err := r.ReadUint32()
		return fmt.Sprintf("%d (0x%08x)", v, v), err
	case "u64":
		v, err := r.ReadUint64()
		return fmt.Sprintf("%d (0x%016x)", v, v), err
	case "i8":
		v, err := r.ReadInt8()
		return fmt.Sprintf("%d", v), err
	case "i16":
		v, err := r.ReadInt16()
		return fmt.Sprintf("%d", v), err
	case "i32":
		v, err := r.ReadInt32()
		return fmt.Sprintf("%d", v), err
	case "i64":
		v, err := r.ReadInt64()
		return fmt.Sprintf("%d", v), err
	case "f16":
		v, err := r.ReadFloat16()
		return fmt.Sprintf("%g (0x%04x)", v.Float32(), uint16(v)), err
	case "f32":
		v, err := r.ReadFloat32()
		return fmt.Sprintf("%g", v), err
	case "f64":
		v, err := r.ReadFloat64()
		return fmt.Sprintf("%g", v), err
	case "uvarint":
		v, err := r.ReadUvarint()
		return fmt.Sprintf("%d", v), err
	case "varint":
		v, err := r.ReadVarint()
		return fmt.Sprintf("%d", v), err
	case "align":
		r.Align()
		return "", nil
	case "bits":
		if !hasArg {
			return "", fmt.Errorf("bits needs a width, e.g. bits:5")
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return "", fmt.Errorf("bad bit width %q", arg)
		}
		v, err := r.ReadBits(n)
		return fmt.Sprintf("%d (0b%0*b)", v, n, v), err
	case "str":
		b, err := readPayload(r, arg, hasArg)
		return strconv.Quote(string(b)), err
	case "bytes":
		b, err := readPayload(r, arg, hasArg)
		return fmt.Sprintf("% x", b), err
	default:
		return "", fmt.Errorf("unknown field token %q", token)
	}
}

func readPayload(r *binarypack.Reader, arg string, hasArg bool) ([]byte, error) {
	if !hasArg {
		return nil, fmt.Errorf("payload needs a prefix or length, e.g. str:p16 or str:5")
	}
	switch arg {
	case "p8":
		return r.ReadBytes(binarypack.Prefix8)
	case "p16":
		return r.ReadBytes(binarypack.Prefix16)
	case "p32":
		return r.ReadBytes(binarypack.Prefix32)
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("bad payload length %q", arg)
	}
	return r.ReadBytesN(n)
}
