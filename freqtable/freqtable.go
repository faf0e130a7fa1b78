// Package freqtable defines the frequency-table contract that the
// arithmetic coder depends on, plus two implementations: a flat
// (uniform) table and a mutable, explicitly-weighted one.
//
// The coder in package arithcode only ever talks to the Table interface;
// it has no notion of whether the distribution is flat, hand-set, or
// driven by an adaptive model such as package ppm.
package freqtable

import "github.com/nayuki/arithmetic-coding/errs"

// maxTotal is the largest value a Total() may reach without overflowing a
// 32-bit unsigned frequency sum, per the data model's invariant that every
// frequency and every total fits in an unsigned 32-bit integer.
const maxTotal = (1 << 32) - 1

// Table is the cumulative frequency model the arithmetic coder consumes.
// Every symbol is an integer in [0, SymbolLimit()).
type Table interface {
	// SymbolLimit returns the number of symbols this table covers.
	SymbolLimit() int

	// Get returns the frequency of symbol. Fails if symbol is out of range.
	Get(symbol int) (uint32, error)

	// Set replaces the frequency of symbol. Fails if symbol is out of
	// range, or if doing so would overflow Total.
	Set(symbol int, freq uint32) error

	// Increment adds 1 to the frequency of symbol. Fails if symbol is out
	// of range, or if doing so would overflow the symbol's frequency or
	// Total.
	Increment(symbol int) error

	// Total returns the sum of all frequencies.
	Total() (uint32, error)

	// Low returns the sum of the frequencies of all symbols strictly
	// below symbol.
	Low(symbol int) (uint32, error)

	// High returns Low(symbol) + Get(symbol).
	High(symbol int) (uint32, error)
}

// IsDomainError reports whether err (or its cause) is a DomainError.
func IsDomainError(err error) bool { return errs.IsDomain(err) }

// IsLogicError reports whether err (or its cause) is a LogicError.
func IsLogicError(err error) bool { return errs.IsLogic(err) }

func checkSymbol(symbol, limit int) error {
	if symbol < 0 || symbol >= limit {
		return errs.Domainf("freqtable: symbol %d out of range [0, %d)", symbol, limit)
	}
	return nil
}

func checkedAdd(x, y uint32) (uint32, error) {
	sum := uint64(x) + uint64(y)
	if sum > maxTotal {
		return 0, errs.Domainf("freqtable: arithmetic overflow")
	}
	return uint32(sum), nil
}

// FlatTable is a Table where every symbol has frequency 1. It cannot be
// mutated; Set and Increment always fail.
type FlatTable struct {
	symbolLimit int
}

// NewFlatTable returns a Table over symbolLimit symbols, each with
// frequency 1.
func NewFlatTable(symbolLimit int) (*FlatTable, error) {
	if symbolLimit < 1 {
		return nil, errs.Domainf("freqtable: need at least 1 symbol")
	}
	return &FlatTable{symbolLimit: symbolLimit}, nil
}

func (t *FlatTable) SymbolLimit() int { return t.symbolLimit }

func (t *FlatTable) Get(symbol int) (uint32, error) {
	if err := checkSymbol(symbol, t.symbolLimit); err != nil {
		return 0, err
	}
	return 1, nil
}

func (t *FlatTable) Set(symbol int, freq uint32) error {
	return errs.Domainf("freqtable: FlatTable does not support Set")
}

func (t *FlatTable) Increment(symbol int) error {
	return errs.Domainf("freqtable: FlatTable does not support Increment")
}

func (t *FlatTable) Total() (uint32, error) {
	return uint32(t.symbolLimit), nil
}

func (t *FlatTable) Low(symbol int) (uint32, error) {
	if err := checkSymbol(symbol, t.symbolLimit); err != nil {
		return 0, err
	}
	return uint32(symbol), nil
}

func (t *FlatTable) High(symbol int) (uint32, error) {
	if err := checkSymbol(symbol, t.symbolLimit); err != nil {
		return 0, err
	}
	return uint32(symbol + 1), nil
}

// SimpleTable is a mutable Table backed by an explicit frequency vector.
// Cumulative sums are recomputed lazily: the cache is invalidated by every
// Set/Increment and rebuilt on the next Low/High/Total call that needs it.
type SimpleTable struct {
	frequencies []uint32
	cumulative  []uint32 // nil means stale; len == len(frequencies)+1 when valid
	total       uint32
}

// NewSimpleTable returns a Table initialized from freqs, which is copied.
func NewSimpleTable(freqs []uint32) (*SimpleTable, error) {
	if len(freqs) < 1 {
		return nil, errs.Domainf("freqtable: need at least 1 symbol")
	}
	t := &SimpleTable{frequencies: append([]uint32(nil), freqs...)}
	var total uint32
	var err error
	for _, f := range t.frequencies {
		total, err = checkedAdd(total, f)
		if err != nil {
			return nil, err
		}
	}
	t.total = total
	return t, nil
}

// NewSimpleTableFrom copies an existing Table into a SimpleTable, useful
// for snapshotting a header-derived or computed distribution before the
// coder consumes it.
func NewSimpleTableFrom(src Table) (*SimpleTable, error) {
	limit := src.SymbolLimit()
	freqs := make([]uint32, limit)
	for i := 0; i < limit; i++ {
		f, err := src.Get(i)
		if err != nil {
			return nil, err
		}
		freqs[i] = f
	}
	return NewSimpleTable(freqs)
}

func (t *SimpleTable) SymbolLimit() int { return len(t.frequencies) }

func (t *SimpleTable) Get(symbol int) (uint32, error) {
	if err := checkSymbol(symbol, len(t.frequencies)); err != nil {
		return 0, err
	}
	return t.frequencies[symbol], nil
}

func (t *SimpleTable) Set(symbol int, freq uint32) error {
	if err := checkSymbol(symbol, len(t.frequencies)); err != nil {
		return err
	}
	rest := t.total - t.frequencies[symbol]
	newTotal, err := checkedAdd(rest, freq)
	if err != nil {
		return err
	}
	t.frequencies[symbol] = freq
	t.total = newTotal
	t.cumulative = nil
	return nil
}

func (t *SimpleTable) Increment(symbol int) error {
	if err := checkSymbol(symbol, len(t.frequencies)); err != nil {
		return err
	}
	if t.frequencies[symbol] == maxTotal {
		return errs.Domainf("freqtable: arithmetic overflow")
	}
	newTotal, err := checkedAdd(t.total, 1)
	if err != nil {
		return err
	}
	t.frequencies[symbol]++
	t.total = newTotal
	t.cumulative = nil
	return nil
}

func (t *SimpleTable) Total() (uint32, error) {
	return t.total, nil
}

func (t *SimpleTable) Low(symbol int) (uint32, error) {
	if err := checkSymbol(symbol, len(t.frequencies)); err != nil {
		return 0, err
	}
	if t.cumulative == nil {
		if err := t.initCumulative(); err != nil {
			return 0, err
		}
	}
	return t.cumulative[symbol], nil
}

func (t *SimpleTable) High(symbol int) (uint32, error) {
	if err := checkSymbol(symbol, len(t.frequencies)); err != nil {
		return 0, err
	}
	if t.cumulative == nil {
		if err := t.initCumulative(); err != nil {
			return 0, err
		}
	}
	return t.cumulative[symbol+1], nil
}

func (t *SimpleTable) initCumulative() error {
	cumulative := make([]uint32, len(t.frequencies)+1)
	var sum uint32
	var err error
	for i, f := range t.frequencies {
		sum, err = checkedAdd(sum, f)
		if err != nil {
			return err
		}
		cumulative[i+1] = sum
	}
	if sum != t.total {
		return errs.Logicf("freqtable: cumulative sum %d does not match total %d", sum, t.total)
	}
	t.cumulative = cumulative
	return nil
}
