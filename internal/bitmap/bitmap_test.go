package bitmap

import (
	"math"
	"testing"
)

func TestForwardInverseF32Roundtrip(t *testing.T) {
	tests := []struct {
		name string
		f    float32
	}{
		{"zero", 0},
		{"neg_zero", float32(math.Copysign(0, -1))},
		{"one", 1},
		{"neg_one", -1},
		{"small", 1.1754944e-38},
		{"neg_small", -1.1754944e-38},
		{"max", math.MaxFloat32},
		{"min_normal", 1.17549435e-38},
		{"pos_inf", float32(math.Inf(1))},
		{"neg_inf", float32(math.Inf(-1))},
		{"nan", float32(math.NaN())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := ForwardF32(tt.f)
			got := InverseF32(u)
			if isNaN32(tt.f) {
				if !isNaN32(got) {
					t.Fatalf("expected NaN, got %v", got)
				}
				if math.Float32bits(got) != math.Float32bits(tt.f) {
					t.Fatalf("NaN payload changed: got 0x%08X, want 0x%08X", math.Float32bits(got), math.Float32bits(tt.f))
				}
				return
			}
			if math.Float32bits(got) != math.Float32bits(tt.f) {
				t.Fatalf("roundtrip mismatch: got 0x%08X, want 0x%08X", math.Float32bits(got), math.Float32bits(tt.f))
			}
		})
	}
}

func TestForwardInverseF64Roundtrip(t *testing.T) {
	tests := []float64{0, math.Copysign(0, -1), 1, -1, math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(1), math.Inf(-1), math.NaN()}
	for _, f := range tests {
		u := ForwardF64(f)
		got := InverseF64(u)
		if isNaN64(f) {
			if !isNaN64(got) || math.Float64bits(got) != math.Float64bits(f) {
				t.Fatalf("NaN roundtrip mismatch for %v", f)
			}
			continue
		}
		if math.Float64bits(got) != math.Float64bits(f) {
			t.Fatalf("roundtrip mismatch: got 0x%016X, want 0x%016X", math.Float64bits(got), math.Float64bits(f))
		}
	}
}

func TestForwardInverseU32Bijection(t *testing.T) {
	samples := []uint32{0, 1, 0x7FFFFFFF, 0x80000000, 0xFFFFFFFF, 0x12345678, 0xDEADBEEF}
	for _, u := range samples {
		f := InverseF32(u)
		got := ForwardF32(f)
		if got != u {
			t.Fatalf("Forward(Inverse(%#x)) = %#x, want %#x", u, got, u)
		}
	}
}

func TestSignedZeroDistinct(t *testing.T) {
	pos := ForwardF32(0)
	neg := ForwardF32(float32(math.Copysign(0, -1)))
	if pos == neg {
		t.Fatalf("+0 and -0 mapped to the same value %#x", pos)
	}
}

func TestOrderPreserving(t *testing.T) {
	values := []float32{float32(math.Inf(-1)), -1e30, -1, -0.0001, 1, 1e30, float32(math.Inf(1))}
	var prev uint32
	for i, v := range values {
		u := ForwardF32(v)
		if i > 0 && u <= prev {
			t.Fatalf("order not preserved at %v: Forward=%#x <= previous %#x", v, u, prev)
		}
		prev = u
	}
}

func isNaN32(f float32) bool { return f != f }
func isNaN64(f float64) bool { return f != f }
