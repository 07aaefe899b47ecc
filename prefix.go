package binarypack

import "github.com/nasselk/binarypack/errors"

const maxInt = int(^uint(0) >> 1)

// Prefix selects the width of the length field written before a string or
// buffer payload. It is an explicit configuration value: the reading side must
// use the same Prefix the writing side used.
type Prefix uint8

const (
	// PrefixNone writes the payload with no length field. Reading an
	// unprefixed payload requires the caller to supply the length.
	PrefixNone Prefix = iota
	// Prefix8 writes a one-byte length, for payloads up to 255 bytes.
	Prefix8
	// Prefix16 writes a two-byte big-endian length, up to 65535 bytes.
	Prefix16
	// Prefix32 writes a four-byte big-endian length, up to 4294967295 bytes.
	Prefix32
)

// Width returns the number of bytes the length field occupies.
func (p Prefix) Width() int {
	switch p {
	case PrefixNone:
		return 0
	case Prefix8:
		return 1
	case Prefix16:
		return 2
	case Prefix32:
		return 4
	default:
		return -1
	}
}

// MaxLen returns the largest payload length the prefix can express, capped at
// the maximum int on platforms where that is smaller. PrefixNone has no limit
// of its own and returns the maximum int.
func (p Prefix) MaxLen() int {
	switch p {
	case Prefix8:
		return 1<<8 - 1
	case Prefix16:
		return 1<<16 - 1
	case Prefix32:
		if max := uint64(^uint32(0)); max <= uint64(maxInt) {
			return int(max)
		}
		return maxInt
	default:
		return maxInt
	}
}

func (p Prefix) String() string {
	switch p {
	case PrefixNone:
		return "none"
	case Prefix8:
		return "prefix8"
	case Prefix16:
		return "prefix16"
	case Prefix32:
		return "prefix32"
	default:
		return "invalid"
	}
}

func (p Prefix) check(phase errors.Phase) error {
	if p > Prefix32 {
		return errors.InvalidParameter(phase, "invalid length prefix %d", uint8(p))
	}
	return nil
}
