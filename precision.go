package binarypack

import (
	"math"

	"github.com/nasselk/binarypack/errors"
)

// ToPrecision quantizes a value in [0, max] to an unsigned integer of the
// given bit width. The value is clamped to the range first, then mapped
// linearly onto [0, 2^bits-1] and rounded to the nearest step. Quantization is
// lossy: FromPrecision recovers the value only to within one step,
// max / (2^bits - 1).
//
// The result is meant to be written with Writer.WriteBits using the same bit
// width.
func ToPrecision(value, max float64, bits int) (uint32, error) {
	if err := checkPrecision(max, bits); err != nil {
		return 0, err
	}
	if math.IsNaN(value) {
		return 0, errors.InvalidParameter(errors.PhaseQuantize, "value is NaN")
	}
	if value < 0 {
		value = 0
	} else if value > max {
		value = max
	}
	steps := float64(uint64(1)<<uint(bits) - 1)
	return uint32(math.Round(value / max * steps)), nil
}

// FromPrecision is the inverse of ToPrecision. The encoded integer must fit
// in the given bit width.
func FromPrecision(encoded uint32, max float64, bits int) (float64, error) {
	if err := checkPrecision(max, bits); err != nil {
		return 0, err
	}
	steps := uint64(1)<<uint(bits) - 1
	if uint64(encoded) > steps {
		return 0, errors.Overflow(errors.PhaseQuantize, encoded,
			"encoded value does not fit the bit width")
	}
	return float64(encoded) / float64(steps) * max, nil
}

func checkPrecision(max float64, bits int) error {
	if bits < 1 || bits > 32 {
		return errors.InvalidParameter(errors.PhaseQuantize, "bit width %d outside [1, 32]", bits)
	}
	if !(max > 0) || math.IsInf(max, 1) {
		return errors.InvalidParameter(errors.PhaseQuantize, "max value %v must be positive and finite", max)
	}
	return nil
}
