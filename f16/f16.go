// Package f16 provides conversion between IEEE-754 binary16 bit patterns and
// float32 values.
package f16

import "math"

// Number holds a 16 bit floating-point number in its IEEE-754 binary16 bit
// pattern representation.
type Number uint16

const (
	signMask = 0x8000
	expMask  = 0x7c00
	manMask  = 0x03ff
)

// From returns the closest binary16 representation of f, truncating excess
// mantissa bits. Values too large for binary16 become infinity, values too
// small become (signed) zero.
func From(f float32) Number {
	bits := math.Float32bits(f)
	sign := uint16(bits>>16) & signMask
	exp := int(bits>>23) & 0xff
	man := bits & 0x7fffff
	switch {
	case exp == 0xff:
		if man == 0 {
			return Number(sign | expMask) // infinity
		}
		m := uint16(man>>13) & manMask
		if m == 0 {
			m = 1 // keep NaN a NaN after truncation
		}
		return Number(sign | expMask | m)
	case exp > 127+15:
		return Number(sign | expMask) // overflow to infinity
	case exp >= 127-14:
		return Number(sign | uint16(exp-127+15)<<10 | uint16(man>>13))
	case exp >= 127-24:
		// Subnormal range: the implicit leading bit becomes explicit.
		man |= 0x800000
		return Number(sign | uint16(man>>uint(13+127-14-exp)))
	default:
		return Number(sign)
	}
}

// Float32 returns the float32 value represented by n.
func (n Number) Float32() float32 {
	sign := uint32(n&signMask) << 16
	exp := uint32(n>>10) & 0x1f
	man := uint32(n & manMask)
	switch {
	case exp == 0x1f:
		if man == 0 {
			return math.Float32frombits(sign | 0x7f800000)
		}
		return math.Float32frombits(sign | 0x7f800000 | man<<13)
	case exp == 0:
		if man == 0 {
			return math.Float32frombits(sign)
		}
		// Subnormal: shift the mantissa up until it gains an implicit bit.
		e := uint32(127 - 15 + 1)
		for man&0x400 == 0 {
			man <<= 1
			e--
		}
		return math.Float32frombits(sign | e<<23 | (man&manMask)<<13)
	default:
		return math.Float32frombits(sign | (exp+127-15)<<23 | man<<13)
	}
}

// Inf returns an infinity with the given sign.
func Inf(sign int) Number {
	if sign < 0 {
		return signMask | expMask
	}
	return expMask
}

// NaN returns a quiet not-a-number.
func NaN() Number {
	return expMask | 0x0200
}

// IsInf reports whether n is an infinity, according to sign.
// If sign > 0, IsInf reports whether n is positive infinity.
// If sign < 0, IsInf reports whether n is negative infinity.
// If sign == 0, IsInf reports whether n is either infinity.
func (n Number) IsInf(sign int) bool {
	if n&(expMask|manMask) != expMask {
		return false
	}
	switch {
	case sign > 0:
		return n&signMask == 0
	case sign < 0:
		return n&signMask != 0
	default:
		return true
	}
}

// IsNaN reports whether n is a not-a-number value.
func (n Number) IsNaN() bool {
	return n&expMask == expMask && n&manMask != 0
}
