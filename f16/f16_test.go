package f16_test

import (
	"math"
	"testing"

	"github.com/nasselk/binarypack/f16"
)

var conversions = []struct {
	bits f16.Number
	f32  float32
}{
	{0x0000, 0.0},
	{0x3c00, 1.0},
	{0x4000, 2.0},
	{0x4200, 3.0},
	{0x4400, 4.0},
	{0x4500, 5.0},
	{0x3555, 0.333251953125},
	{0xbc00, -1.0},
	{0xc000, -2.0},
	{0xc200, -3.0},
	{0xc400, -4.0},
	{0xc500, -5.0},
	{0xb555, -0.333251953125},
	{0x7a1a, 5e4},
	{0x068d, 1e-4},
	{0x0346, 4.995e-5}, // subnormal
	{0x0053, 4.95e-6},  // subnormal
	{0x0008, 4.77e-7},  // subnormal
}

func TestFloat32(t *testing.T) {
	for _, c := range conversions {
		want, got := float64(c.f32), float64(c.bits.Float32())
		wsign, gsign := math.Signbit(want), math.Signbit(got)
		want, got = math.Abs(want), math.Abs(got)
		if wsign != gsign || got > want*1.001 || got < want*0.999 {
			t.Errorf("Float32(0x%04x): got %g, want about %g", uint16(c.bits), got, want)
		}
	}
}

func TestFrom(t *testing.T) {
	for _, c := range conversions {
		if got := f16.From(c.f32); got != c.bits {
			t.Errorf("From(%g): got 0x%04x, want 0x%04x", c.f32, uint16(got), uint16(c.bits))
		}
	}
}

func TestExactRoundTrip(t *testing.T) {
	// Every binary16 value representable exactly in float32 must survive a
	// Float32/From round trip bit-for-bit.
	for _, c := range conversions {
		if got := f16.From(c.bits.Float32()); got != c.bits {
			t.Errorf("round trip of 0x%04x: got 0x%04x", uint16(c.bits), uint16(got))
		}
	}
}

func TestSpecials(t *testing.T) {
	if v := f16.Inf(1).Float32(); !math.IsInf(float64(v), 1) {
		t.Errorf("Inf(1).Float32() = %v, want +Inf", v)
	}
	if v := f16.Inf(-1).Float32(); !math.IsInf(float64(v), -1) {
		t.Errorf("Inf(-1).Float32() = %v, want -Inf", v)
	}
	if v := f16.NaN().Float32(); !math.IsNaN(float64(v)) {
		t.Errorf("NaN().Float32() = %v, want NaN", v)
	}

	if v := f16.From(float32(math.Inf(1))); !v.IsInf(1) {
		t.Errorf("From(+Inf) = 0x%04x, want +Inf", uint16(v))
	}
	if v := f16.From(float32(math.Inf(-1))); !v.IsInf(-1) {
		t.Errorf("From(-Inf) = 0x%04x, want -Inf", uint16(v))
	}
	if v := f16.From(float32(math.NaN())); !v.IsNaN() {
		t.Errorf("From(NaN) = 0x%04x, want NaN", uint16(v))
	}
	if v := f16.From(float32(1e5)); !v.IsInf(1) {
		t.Errorf("From(1e5) = 0x%04x, want overflow to +Inf", uint16(v))
	}
	if v := f16.From(5e-8); v != 0 {
		t.Errorf("From(5e-8) = 0x%04x, want underflow to 0", uint16(v))
	}
	if f16.Inf(1).IsNaN() {
		t.Error("Inf(1) must not be NaN")
	}
	if f16.NaN().IsInf(0) {
		t.Error("NaN must not be Inf")
	}
}
