package residual

import (
	"bytes"
	"math"
	"testing"

	"github.com/scidata-io/fpz/internal/rangecoder"
)

func TestCoder32Roundtrip(t *testing.T) {
	pairs := []struct{ predicted, actual uint32 }{
		{0, 0},
		{100, 100},
		{100, 101},
		{101, 100},
		{0, 1},
		{1, 0},
		{0, 0xFFFFFFFF},
		{0xFFFFFFFF, 0},
		{1 << 31, 0},
		{0, 1 << 31},
		{0x12345678, 0x12345679},
		{0x7FFFFFFF, 0x80000000},
		{math.MaxUint32, math.MaxUint32},
		{0, math.MaxUint32},
	}

	var buf bytes.Buffer
	enc := rangecoder.NewEncoder(&buf)
	encCoder := NewCoder32(false)
	for _, p := range pairs {
		encCoder.Encode(enc, p.predicted, p.actual)
	}
	enc.Finish()

	dec := rangecoder.NewDecoder(bytes.NewReader(buf.Bytes()))
	decCoder := NewCoder32(true)
	for i, p := range pairs {
		got := decCoder.Decode(dec, p.predicted)
		if got != p.actual {
			t.Fatalf("pair %d: predicted=%#x actual=%#x, got %#x", i, p.predicted, p.actual, got)
		}
	}
	if err := dec.Err(); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
}

func TestCoder64Roundtrip(t *testing.T) {
	pairs := []struct{ predicted, actual uint64 }{
		{0, 0},
		{100, 100},
		{100, 101},
		{101, 100},
		{0, 1},
		{1, 0},
		{0, math.MaxUint64},
		{math.MaxUint64, 0},
		{1 << 63, 0},
		{0, 1 << 63},
		{0x0123456789ABCDEF, 0x0123456789ABCDF0},
		{0x7FFFFFFFFFFFFFFF, 0x8000000000000000},
		{math.MaxUint64, math.MaxUint64},
	}

	var buf bytes.Buffer
	enc := rangecoder.NewEncoder(&buf)
	encCoder := NewCoder64(false)
	for _, p := range pairs {
		encCoder.Encode(enc, p.predicted, p.actual)
	}
	enc.Finish()

	dec := rangecoder.NewDecoder(bytes.NewReader(buf.Bytes()))
	decCoder := NewCoder64(true)
	for i, p := range pairs {
		got := decCoder.Decode(dec, p.predicted)
		if got != p.actual {
			t.Fatalf("pair %d: predicted=%#x actual=%#x, got %#x", i, p.predicted, p.actual, got)
		}
	}
	if err := dec.Err(); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
}

func TestCoder32RepeatedZeroDeltaStaysCheap(t *testing.T) {
	var buf bytes.Buffer
	enc := rangecoder.NewEncoder(&buf)
	encCoder := NewCoder32(false)
	for i := 0; i < 1000; i++ {
		encCoder.Encode(enc, 42, 42)
	}
	enc.Finish()

	if buf.Len() > 64 {
		t.Fatalf("1000 zero-delta symbols coded to %d bytes, expected a small stream", buf.Len())
	}

	dec := rangecoder.NewDecoder(bytes.NewReader(buf.Bytes()))
	decCoder := NewCoder32(true)
	for i := 0; i < 1000; i++ {
		got := decCoder.Decode(dec, 42)
		if got != 42 {
			t.Fatalf("iteration %d: got %d, want 42", i, got)
		}
	}
	if err := dec.Err(); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
}

func TestCoder32AllDeltaMagnitudes(t *testing.T) {
	var predicteds, actuals []uint32
	for k := 0; k < 32; k++ {
		predicteds = append(predicteds, 0)
		actuals = append(actuals, uint32(1)<<uint(k))
		predicteds = append(predicteds, uint32(1)<<uint(k))
		actuals = append(actuals, 0)
	}

	var buf bytes.Buffer
	enc := rangecoder.NewEncoder(&buf)
	encCoder := NewCoder32(false)
	for i := range predicteds {
		encCoder.Encode(enc, predicteds[i], actuals[i])
	}
	enc.Finish()

	dec := rangecoder.NewDecoder(bytes.NewReader(buf.Bytes()))
	decCoder := NewCoder32(true)
	for i := range predicteds {
		got := decCoder.Decode(dec, predicteds[i])
		if got != actuals[i] {
			t.Fatalf("k-case %d: predicted=%d actual=%d, got %d", i, predicteds[i], actuals[i], got)
		}
	}
	if err := dec.Err(); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
}
