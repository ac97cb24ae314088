// Package fixture generates deterministic test fields using a small linear
// congruential PRNG. It exists only to give the property and scenario tests
// reproducible, smooth-ish scientific-looking data; it is not a
// general-purpose RNG and must not be used outside tests.
package fixture

import "math"

// LCG is the linear congruential generator specified for reference fields:
// seed := (1103515245*seed + 12345) & 0x7FFFFFFF, mapped to [-1,1] and
// raised to the 9th power.
type LCG struct {
	seed uint32
}

// NewLCG creates a generator with the given seed.
func NewLCG(seed uint32) *LCG {
	return &LCG{seed: seed}
}

// Next returns the next shaped sample in [-1, 1).
func (l *LCG) Next() float64 {
	l.seed = (1103515245*l.seed + 12345) & 0x7FFFFFFF
	u := float64(l.seed) / float64(uint32(1)<<31)
	v := 2*u - 1
	return math.Pow(v, 9)
}

// Field3D builds an nx*ny*nz row-major field (index x + nx*(y + ny*z)):
// element 0 is offset, the rest are PRNG-drawn, then the field is
// cumulatively integrated along x, then y, then z.
func Field3D(nx, ny, nz int, seed uint32, offset float64) []float64 {
	n := nx * ny * nz
	data := make([]float64, n)
	rng := NewLCG(seed)
	data[0] = offset
	for i := 1; i < n; i++ {
		data[i] = rng.Next()
	}

	idx := func(x, y, z int) int { return x + nx*(y+ny*z) }

	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 1; x < nx; x++ {
				data[idx(x, y, z)] += data[idx(x-1, y, z)]
			}
		}
	}
	for z := 0; z < nz; z++ {
		for y := 1; y < ny; y++ {
			for x := 0; x < nx; x++ {
				data[idx(x, y, z)] += data[idx(x, y-1, z)]
			}
		}
	}
	for z := 1; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				data[idx(x, y, z)] += data[idx(x, y, z-1)]
			}
		}
	}

	return data
}

// Field3DFloat32 is Field3D narrowed to float32, for f32 scenario tests.
func Field3DFloat32(nx, ny, nz int, seed uint32, offset float64) []float32 {
	d64 := Field3D(nx, ny, nz, seed, offset)
	out := make([]float32, len(d64))
	for i, v := range d64 {
		out[i] = float32(v)
	}
	return out
}
