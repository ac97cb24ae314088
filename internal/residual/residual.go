// Package residual encodes the signed difference between a predicted and an
// actual mapped sample as a length-prefixed sign-magnitude symbol: an
// adaptively-coded class symbol carrying sign and order of magnitude, plus
// the redundant-leading-bit-stripped raw mantissa of the magnitude.
//
// Width (32 vs 64 bit) is monomorphized into two concrete types rather than
// a single generic or interface-dispatched one: the per-sample hot path must
// not pay for dynamic dispatch.
package residual

import (
	"math/bits"

	"github.com/scidata-io/fpz/internal/qsmodel"
	"github.com/scidata-io/fpz/internal/rangecoder"
)

// Period is the default target rescale interval for residual models.
const Period = 1024

// FreqBits is the default total-frequency bit width for residual models.
const FreqBits = 16

// Coder32 codes residuals between 32-bit mapped samples.
type Coder32 struct {
	model *qsmodel.Model
	bias  uint32
}

// NewCoder32 creates a residual coder for 32-bit samples. isDecoder must
// match whether Decode or Encode will be called.
func NewCoder32(isDecoder bool) *Coder32 {
	const w = 32
	return &Coder32{
		model: qsmodel.New(2*w+1, FreqBits, Period, isDecoder),
		bias:  w,
	}
}

// Encode codes predicted and actual (both mapped samples) through enc.
func (c *Coder32) Encode(enc *rangecoder.Encoder, predicted, actual uint32) {
	delta := actual - predicted
	if delta == 0 {
		c.model.EncodeSymbol(enc, int(c.bias))
		return
	}
	if delta < 1<<31 {
		k := bits.Len32(delta) - 1
		c.model.EncodeSymbol(enc, int(c.bias)+1+k)
		enc.EncodeRaw(uint64(delta-(1<<uint(k))), uint(k))
		return
	}
	d := -delta
	k := bits.Len32(d) - 1
	c.model.EncodeSymbol(enc, int(c.bias)-1-k)
	enc.EncodeRaw(uint64(d-(1<<uint(k))), uint(k))
}

// Decode reconstructs actual given predicted (both mapped samples).
func (c *Coder32) Decode(dec *rangecoder.Decoder, predicted uint32) uint32 {
	s := c.model.DecodeSymbol(dec)
	if s == int(c.bias) {
		return predicted
	}
	if s > int(c.bias) {
		k := uint(s - int(c.bias) - 1)
		m := uint32(dec.DecodeRaw(k))
		d := (uint32(1) << k) + m
		return predicted + d
	}
	k := uint(int(c.bias) - s - 1)
	m := uint32(dec.DecodeRaw(k))
	d := (uint32(1) << k) + m
	return predicted - d
}

// Coder64 codes residuals between 64-bit mapped samples.
type Coder64 struct {
	model *qsmodel.Model
	bias  uint64
}

// NewCoder64 creates a residual coder for 64-bit samples.
func NewCoder64(isDecoder bool) *Coder64 {
	const w = 64
	return &Coder64{
		model: qsmodel.New(2*w+1, FreqBits, Period, isDecoder),
		bias:  w,
	}
}

// Encode codes predicted and actual (both mapped samples) through enc.
func (c *Coder64) Encode(enc *rangecoder.Encoder, predicted, actual uint64) {
	delta := actual - predicted
	if delta == 0 {
		c.model.EncodeSymbol(enc, int(c.bias))
		return
	}
	if delta < 1<<63 {
		k := bits.Len64(delta) - 1
		c.model.EncodeSymbol(enc, int(c.bias)+1+k)
		enc.EncodeRaw(delta-(1<<uint(k)), uint(k))
		return
	}
	d := -delta
	k := bits.Len64(d) - 1
	c.model.EncodeSymbol(enc, int(c.bias)-1-k)
	enc.EncodeRaw(d-(1<<uint(k)), uint(k))
}

// Decode reconstructs actual given predicted (both mapped samples).
func (c *Coder64) Decode(dec *rangecoder.Decoder, predicted uint64) uint64 {
	s := c.model.DecodeSymbol(dec)
	if s == int(c.bias) {
		return predicted
	}
	if s > int(c.bias) {
		k := uint(s - int(c.bias) - 1)
		m := dec.DecodeRaw(k)
		d := (uint64(1) << k) + m
		return predicted + d
	}
	k := uint(int(c.bias) - s - 1)
	m := dec.DecodeRaw(k)
	d := (uint64(1) << k) + m
	return predicted - d
}
