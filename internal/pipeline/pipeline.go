// Package pipeline wires the bit map, front buffer, and residual coder
// together into the per-sample predict/encode (or decode/predict) loop run
// once per field. Width (32 vs 64 bit) is monomorphized into two concrete
// pairs of types rather than unified behind an interface, so the per-sample
// hot path never pays for dynamic dispatch.
package pipeline

import (
	"github.com/scidata-io/fpz/internal/bitmap"
	"github.com/scidata-io/fpz/internal/front"
	"github.com/scidata-io/fpz/internal/rangecoder"
	"github.com/scidata-io/fpz/internal/residual"
)

// predict32 computes the order-3 Lorenzo predictor from the seven causal
// corners of the cell about to be coded, with wraparound unsigned
// arithmetic (exact on trilinear data, small-residual on smooth data).
func predict32(f *front.Front[uint32]) uint32 {
	return f.At(1, 0, 0) - f.At(0, 1, 1) +
		f.At(0, 1, 0) - f.At(1, 0, 1) +
		f.At(0, 0, 1) - f.At(1, 1, 0) +
		f.At(1, 1, 1)
}

func predict64(f *front.Front[uint64]) uint64 {
	return f.At(1, 0, 0) - f.At(0, 1, 1) +
		f.At(0, 1, 0) - f.At(1, 0, 1) +
		f.At(0, 0, 1) - f.At(1, 1, 0) +
		f.At(1, 1, 1)
}

// walk32 invokes step(x,y,z) for every sample position in row-major order (x
// innermost, z outermost), advancing fr across the causal boundary rows so
// that the front's seven neighbor slots always hold the samples immediately
// behind the position about to be coded.
func walk32(fr *front.Front[uint32], nx, ny, nz int, step func(x, y, z int)) {
	fr.Advance(0, 0, 1)
	for z := 0; z < nz; z++ {
		fr.Advance(0, 1, 0)
		for y := 0; y < ny; y++ {
			fr.Advance(1, 0, 0)
			for x := 0; x < nx; x++ {
				step(x, y, z)
			}
		}
	}
}

func walk64(fr *front.Front[uint64], nx, ny, nz int, step func(x, y, z int)) {
	fr.Advance(0, 0, 1)
	for z := 0; z < nz; z++ {
		fr.Advance(0, 1, 0)
		for y := 0; y < ny; y++ {
			fr.Advance(1, 0, 0)
			for x := 0; x < nx; x++ {
				step(x, y, z)
			}
		}
	}
}

// Encoder32 runs the predict/encode loop for float32 fields.
type Encoder32 struct {
	residual *residual.Coder32
}

// NewEncoder32 creates a field encoder around a residual coder whose
// adaptive model persists across fields.
func NewEncoder32(r *residual.Coder32) *Encoder32 {
	return &Encoder32{residual: r}
}

// EncodeField codes one nx*ny*nz field of row-major float32 samples.
func (e *Encoder32) EncodeField(enc *rangecoder.Encoder, samples []float32, nx, ny, nz int) {
	zero := bitmap.ForwardF32(0)
	fr := front.New[uint32](nx, ny, zero)
	idx := 0
	walk32(fr, nx, ny, nz, func(x, y, z int) {
		p := predict32(fr)
		a := bitmap.ForwardF32(samples[idx])
		e.residual.Encode(enc, p, a)
		fr.Push(a)
		idx++
	})
}

// Decoder32 runs the decode/predict loop for float32 fields.
type Decoder32 struct {
	residual *residual.Coder32
}

// NewDecoder32 creates a field decoder around a residual coder whose
// adaptive model persists across fields.
func NewDecoder32(r *residual.Coder32) *Decoder32 {
	return &Decoder32{residual: r}
}

// DecodeField reconstructs one nx*ny*nz field of row-major float32 samples
// into out, which must already have length nx*ny*nz.
func (d *Decoder32) DecodeField(dec *rangecoder.Decoder, out []float32, nx, ny, nz int) {
	zero := bitmap.ForwardF32(0)
	fr := front.New[uint32](nx, ny, zero)
	idx := 0
	walk32(fr, nx, ny, nz, func(x, y, z int) {
		p := predict32(fr)
		a := d.residual.Decode(dec, p)
		out[idx] = bitmap.InverseF32(a)
		fr.Push(a)
		idx++
	})
}

// Encoder64 runs the predict/encode loop for float64 fields.
type Encoder64 struct {
	residual *residual.Coder64
}

// NewEncoder64 creates a field encoder around a residual coder whose
// adaptive model persists across fields.
func NewEncoder64(r *residual.Coder64) *Encoder64 {
	return &Encoder64{residual: r}
}

// EncodeField codes one nx*ny*nz field of row-major float64 samples.
func (e *Encoder64) EncodeField(enc *rangecoder.Encoder, samples []float64, nx, ny, nz int) {
	zero := bitmap.ForwardF64(0)
	fr := front.New[uint64](nx, ny, zero)
	idx := 0
	walk64(fr, nx, ny, nz, func(x, y, z int) {
		p := predict64(fr)
		a := bitmap.ForwardF64(samples[idx])
		e.residual.Encode(enc, p, a)
		fr.Push(a)
		idx++
	})
}

// Decoder64 runs the decode/predict loop for float64 fields.
type Decoder64 struct {
	residual *residual.Coder64
}

// NewDecoder64 creates a field decoder around a residual coder whose
// adaptive model persists across fields.
func NewDecoder64(r *residual.Coder64) *Decoder64 {
	return &Decoder64{residual: r}
}

// DecodeField reconstructs one nx*ny*nz field of row-major float64 samples
// into out, which must already have length nx*ny*nz.
func (d *Decoder64) DecodeField(dec *rangecoder.Decoder, out []float64, nx, ny, nz int) {
	zero := bitmap.ForwardF64(0)
	fr := front.New[uint64](nx, ny, zero)
	idx := 0
	walk64(fr, nx, ny, nz, func(x, y, z int) {
		p := predict64(fr)
		a := d.residual.Decode(dec, p)
		out[idx] = bitmap.InverseF64(a)
		fr.Push(a)
		idx++
	})
}
