// Package arithcode implements the fixed-precision arithmetic coding
// state machine: an integer recurrence that tracks a shrinking interval
// [low, high] and emits or consumes carry-safe bits through a deferred
// "underflow" mechanism. Encoder and Decoder mirror the exact same
// recurrence, which is what makes the decoder able to reproduce the
// encoder's symbol sequence from the bit stream alone.
//
// This generalizes the Rissanen-Langdon binary arithmetic coder (a
// two-outcome interval split driven by a single probability) to an
// N-symbol coder driven by a freqtable.Table: the renormalization loop
// and the outstanding/underflow-bit deferral are the same shape, only
// the interval split itself now comes from cumulative frequencies
// instead of a probability scalar.
package arithcode

import (
	"github.com/nayuki/arithmetic-coding/bitio"
	"github.com/nayuki/arithmetic-coding/freqtable"
)

// config holds the constants derived from numStateBits, shared by the
// encoder and the decoder.
type config struct {
	numStateBits  uint
	fullRange     uint64
	halfRange     uint64
	quarterRange  uint64
	minimumRange  uint64
	maximumTotal  uint64
	stateMask     uint64
}

func newConfig(numStateBits int) (*config, error) {
	if numStateBits < 1 || numStateBits > 63 {
		return nil, domainError("arithcode: numStateBits must be in [1, 63], got %d", numStateBits)
	}
	c := &config{numStateBits: uint(numStateBits)}
	c.fullRange = uint64(1) << c.numStateBits
	c.halfRange = c.fullRange / 2
	c.quarterRange = c.halfRange / 2
	c.minimumRange = c.quarterRange + 2
	c.stateMask = c.fullRange - 1

	maxUint64 := ^uint64(0)
	c.maximumTotal = maxUint64 / c.fullRange
	if c.minimumRange < c.maximumTotal {
		c.maximumTotal = c.minimumRange
	}
	return c, nil
}

// narrow shrinks [low, high] to the sub-interval corresponding to symbol
// under freqs, per the shared update recurrence. It does not perform the
// renormalization loops; callers do that afterward via shift/underflow.
func narrow(c *config, low, high uint64, freqs freqtable.Table, symbol int) (newLow, newHigh uint64, err error) {
	if low >= high || (low&c.stateMask) != low || (high&c.stateMask) != high {
		return 0, 0, logicError("arithcode: low or high out of range")
	}
	r := high - low + 1
	if r < c.minimumRange || r > c.fullRange {
		return 0, 0, logicError("arithcode: range out of range")
	}

	total, err := freqs.Total()
	if err != nil {
		return 0, 0, err
	}
	symLow, err := freqs.Low(symbol)
	if err != nil {
		return 0, 0, err
	}
	symHigh, err := freqs.High(symbol)
	if err != nil {
		return 0, 0, err
	}
	if symLow == symHigh {
		return 0, 0, domainError("arithcode: symbol %d has zero frequency", symbol)
	}
	if uint64(total) > c.maximumTotal {
		return 0, 0, domainError("arithcode: total %d exceeds maximumTotal %d", total, c.maximumTotal)
	}

	newLow = low + uint64(symLow)*r/uint64(total)
	newHigh = low + uint64(symHigh)*r/uint64(total) - 1
	return newLow, newHigh, nil
}

// renormalizer is implemented separately by Encoder and Decoder: shift
// handles the case where low and high's top bits agree, underflow the
// case where low begins 01 and high begins 10.
type renormalizer interface {
	shift() error
	underflow() error
}

// update performs the shared per-symbol recurrence: narrow the interval,
// then shift out agreeing top bits and absorb straddling middle bits
// until the interval invariants hold again.
func update(c *config, low, high *uint64, freqs freqtable.Table, symbol int, r renormalizer) error {
	newLow, newHigh, err := narrow(c, *low, *high, freqs, symbol)
	if err != nil {
		return err
	}
	*low, *high = newLow, newHigh

	for ((*low ^ *high) & c.halfRange) == 0 {
		if err := r.shift(); err != nil {
			return err
		}
		*low = (*low << 1) & c.stateMask
		*high = ((*high << 1) & c.stateMask) | 1
	}

	for (*low & ^*high & c.quarterRange) != 0 {
		if err := r.underflow(); err != nil {
			return err
		}
		*low = (*low << 1) & (c.stateMask >> 1)
		*high = (((*high << 1) & (c.stateMask >> 1)) | c.halfRange) | 1
	}

	return nil
}

// Encoder narrows a coding interval as symbols are written to it, and
// emits the bits that both sides have provably agreed on so far.
type Encoder struct {
	cfg          *config
	low, high    uint64
	out          *bitio.Writer
	numUnderflow uint64
}

// NewEncoder returns an arithmetic encoder writing to out, using
// numStateBits bits of coder state (the recommended value is 32).
func NewEncoder(out *bitio.Writer, numStateBits int) (*Encoder, error) {
	cfg, err := newConfig(numStateBits)
	if err != nil {
		return nil, err
	}
	return &Encoder{cfg: cfg, high: cfg.stateMask, out: out}, nil
}

// Write encodes symbol under the distribution freqs.
func (e *Encoder) Write(freqs freqtable.Table, symbol int) error {
	return update(e.cfg, &e.low, &e.high, freqs, symbol, e)
}

// Finish writes a single bit that forces the decoder to terminate within
// the current interval. Callers must subsequently call Finish on the
// underlying bitio.Writer to pad to a byte boundary.
func (e *Encoder) Finish() error {
	return e.out.Write(1)
}

func (e *Encoder) shift() error {
	bit := int((e.low >> (e.cfg.numStateBits - 1)) & 1)
	if err := e.out.Write(bit); err != nil {
		return err
	}
	opposite := bit ^ 1
	for ; e.numUnderflow > 0; e.numUnderflow-- {
		if err := e.out.Write(opposite); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) underflow() error {
	if e.numUnderflow == ^uint64(0) {
		return domainError("arithcode: maximum underflow reached")
	}
	e.numUnderflow++
	return nil
}

// Decoder mirrors Encoder's interval recurrence, reconstructing symbols
// from the bits it reads.
type Decoder struct {
	cfg       *config
	low, high uint64
	code      uint64
	in        *bitio.Reader
}

// NewDecoder returns an arithmetic decoder reading from in, using the
// same numStateBits the encoder used.
func NewDecoder(in *bitio.Reader, numStateBits int) (*Decoder, error) {
	cfg, err := newConfig(numStateBits)
	if err != nil {
		return nil, err
	}
	d := &Decoder{cfg: cfg, high: cfg.stateMask, in: in}
	for i := uint(0); i < cfg.numStateBits; i++ {
		bit, err := d.readCodeBit()
		if err != nil {
			return nil, err
		}
		d.code = (d.code << 1) | uint64(bit)
	}
	return d, nil
}

// Read decodes and returns the next symbol under the distribution freqs.
func (d *Decoder) Read(freqs freqtable.Table) (int, error) {
	total, err := freqs.Total()
	if err != nil {
		return 0, err
	}
	if uint64(total) > d.cfg.maximumTotal {
		return 0, domainError("arithcode: total %d exceeds maximumTotal %d", total, d.cfg.maximumTotal)
	}
	r := d.high - d.low + 1
	if d.code < d.low || d.code > d.high {
		return 0, logicError("arithcode: code out of range")
	}
	offset := d.code - d.low
	value := ((offset+1)*uint64(total) - 1) / r
	if value >= uint64(total) {
		return 0, logicError("arithcode: computed value %d >= total %d", value, total)
	}

	// Binary search for the unique symbol s with Low(s) <= value < High(s).
	start, end := 0, freqs.SymbolLimit()
	for end-start > 1 {
		middle := (start + end) / 2
		low, err := freqs.Low(middle)
		if err != nil {
			return 0, err
		}
		if uint64(low) > value {
			end = middle
		} else {
			start = middle
		}
	}
	if end-start != 1 {
		return 0, logicError("arithcode: binary search did not converge")
	}
	symbol := start

	if err := update(d.cfg, &d.low, &d.high, freqs, symbol, d); err != nil {
		return 0, err
	}
	if d.code < d.low || d.code > d.high {
		return 0, logicError("arithcode: code out of range after update")
	}
	return symbol, nil
}

func (d *Decoder) shift() error {
	bit, err := d.readCodeBit()
	if err != nil {
		return err
	}
	d.code = ((d.code << 1) & d.cfg.stateMask) | uint64(bit)
	return nil
}

func (d *Decoder) underflow() error {
	bit, err := d.readCodeBit()
	if err != nil {
		return err
	}
	d.code = (d.code & d.cfg.halfRange) | ((d.code << 1) & (d.cfg.stateMask >> 1)) | uint64(bit)
	return nil
}

// readCodeBit treats end of stream as an infinite tail of zero bits.
func (d *Decoder) readCodeBit() (int, error) {
	bit, err := d.in.Read()
	if err != nil {
		return 0, err
	}
	if bit == -1 {
		return 0, nil
	}
	return bit, nil
}
