// Package qsmodel implements a quasi-static adaptive probability model for
// use with an underlying byte-oriented range coder (see
// github.com/scidata-io/fpz/internal/rangecoder).
//
// "Quasi-static" means frequencies adapt over time but the cumulative-
// frequency lookup table used for actual coding is only rebuilt at rescale
// epoch boundaries, not after every symbol. This keeps the coding hot path
// to one table read, one counter write, and a decrement-and-branch.
package qsmodel

// Model is a per-symbol frequency table plus the bookkeeping needed to
// rescale it periodically. A Model is not safe for concurrent use; callers
// needing independent streams should construct independent Models.
type Model struct {
	n    int
	bits uint

	// symf holds the halved-and-regrown per-symbol counts used as the basis
	// for the next rescale. Right after a rescale it sums to less than
	// 1<<bits; the epoch's updates add back exactly the difference, so it
	// sums to 1<<bits again when the next rescale rebuilds cumf from it.
	symf []uint32

	// cumf is the frozen cumulative-frequency table actually used for
	// coding during the current epoch. cumf[0] == 0 and cumf[n] == 1<<bits
	// always, immediately after every rescale (and hence at all times, since
	// rescale is the only place cumf changes).
	cumf []uint32

	// search is the decoder-only coarse lookup from the top 7 bits of a
	// cumulative-frequency query to a lower-bound symbol index.
	search    []int
	isDecoder bool

	// Per-symbol update state: a countdown to the next rescale, plus the
	// pending increment and its one-off remainder.
	left  int
	incr  uint32
	more  int

	// epoch is the current rescale interval length, doubling each rescale
	// up to target.
	epoch  int
	target int
}

const searchBits = 7

// New creates a model over n symbols (n = 2W+1 for a residual coder of
// width W), a total-frequency bit width (<= 16), and a target rescale
// period (samples between rescales once warmed up). isDecoder additionally
// maintains the coarse search table needed by DecodeSymbol.
func New(n int, bits uint, period int, isDecoder bool) *Model {
	m := &Model{
		n:         n,
		bits:      bits,
		symf:      make([]uint32, n),
		cumf:      make([]uint32, n+1),
		isDecoder: isDecoder,
		target:    period,
	}
	if isDecoder {
		m.search = make([]int, (1<<searchBits)+1)
	}
	m.Reset()
	return m
}

// Reset initializes symf to a uniform-minus-remainder distribution summing
// to 1<<bits and rebuilds the coding table from it.
func (m *Model) Reset() {
	total := uint32(1) << m.bits
	base := total / uint32(m.n)
	rem := total % uint32(m.n)
	for i := 0; i < m.n; i++ {
		f := base
		if uint32(i) < rem {
			f++
		}
		m.symf[i] = f
	}
	m.epoch = 4
	m.left = m.epoch
	m.incr = 0
	m.more = 0
	m.rescale()
}

// Bits returns the total-frequency bit width.
func (m *Model) Bits() uint { return m.bits }

// Freq returns the coding frequency of symbol s (from the frozen table).
func (m *Model) Freq(s int) uint32 { return m.cumf[s+1] - m.cumf[s] }

// CumFreq returns the coding cumulative frequency of symbol s.
func (m *Model) CumFreq(s int) uint32 { return m.cumf[s] }

// Update adapts the model after coding symbol s: it feeds the background
// symf accumulator that the next rescale will fold back into cumf.
func (m *Model) Update(s int) {
	add := m.incr
	if m.more > 0 {
		add++
		m.more--
	}
	m.symf[s] += add
	m.left--
	if m.left <= 0 {
		m.rescale()
	}
}

// rescale grows the epoch length toward target, rebuilds cumf from the
// current symf (which sums to exactly 1<<bits at every epoch boundary), then
// halves every symf entry (keeping it >= 1) and spreads the deficit left by
// halving over the next epoch's updates as incr/more, so that symf again
// sums to 1<<bits when the following rescale runs.
func (m *Model) rescale() {
	if m.epoch < m.target {
		m.epoch *= 2
		if m.epoch > m.target {
			m.epoch = m.target
		}
	}

	var cf, halvedSum uint32
	for i := 0; i < m.n; i++ {
		m.cumf[i] = cf
		cf += m.symf[i]
		sf := (m.symf[i] >> 1) | 1
		m.symf[i] = sf
		halvedSum += sf
	}
	m.cumf[m.n] = cf

	total := uint32(1) << m.bits
	deficit := total - halvedSum
	m.incr = deficit / uint32(m.epoch)
	m.more = int(deficit % uint32(m.epoch))
	m.left = m.epoch

	if m.isDecoder {
		m.rebuildSearch()
	}
}

// rebuildSearch sweeps cumf in descending order so that for every bucket i,
// cumf[search[i]] <= i*2^(bits-7) < cumf[search[i]+1].
func (m *Model) rebuildSearch() {
	shift := m.bits - searchBits
	if m.bits < searchBits {
		shift = 0
	}
	sym := m.n - 1
	for i := len(m.search) - 1; i >= 0; i-- {
		target := uint32(i) << shift
		for sym > 0 && m.cumf[sym] > target {
			sym--
		}
		m.search[i] = sym
	}
}

// RangeEncoder is the subset of rangecoder.Encoder that a Model needs.
type RangeEncoder interface {
	EncodeSym(l, f uint32, bits uint)
}

// RangeDecoder is the subset of rangecoder.Decoder that a Model needs.
type RangeDecoder interface {
	GetFreq(bits uint) uint32
	Update(l, f uint32, bits uint)
}

// EncodeSymbol codes symbol s through enc and adapts the model.
func (m *Model) EncodeSymbol(enc RangeEncoder, s int) {
	enc.EncodeSym(m.cumf[s], m.Freq(s), m.bits)
	m.Update(s)
}

// DecodeSymbol decodes the next symbol from dec and adapts the model.
func (m *Model) DecodeSymbol(dec RangeDecoder) int {
	f := dec.GetFreq(m.bits)
	shift := m.bits - searchBits
	if m.bits < searchBits {
		shift = 0
	}
	sym := m.search[f>>shift]
	for sym+1 < m.n && m.cumf[sym+1] <= f {
		sym++
	}
	dec.Update(m.cumf[sym], m.Freq(sym), m.bits)
	m.Update(sym)
	return sym
}
