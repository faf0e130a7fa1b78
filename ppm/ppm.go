// Package ppm implements a variable-order Prediction by Partial Matching
// model: an escape-based adaptive probability model that hands the
// arithmetic coder in package arithcode a freqtable.Table for each
// context along a descending chain of orders, until some order yields a
// symbol with non-zero frequency (or every order escapes, in which case
// the order-(-1) flat table always succeeds).
//
// This generalizes the teacher's context-tree-weighting trie (a binary
// tree keyed by bit history, whose nodes hold a Krichevsky-Trofimov
// estimator) to a symbolLimit-ary trie whose nodes hold a mutable
// freqtable.SimpleTable, with lazy child allocation and exclusive
// root-to-leaf ownership carried over unchanged.
package ppm

import (
	"github.com/nayuki/arithmetic-coding/arithcode"
	"github.com/nayuki/arithmetic-coding/errs"
	"github.com/nayuki/arithmetic-coding/freqtable"
)

// domainError reports caller misuse: an oversized history, a symbol out
// of range, a bad modelOrder/symbolLimit/escapeSymbol at construction.
func domainError(format string, args ...interface{}) error {
	return errs.Domainf(format, args...)
}

// logicError reports an internal invariant violation: a context reached
// with no child slots where one was expected, and the like.
func logicError(format string, args ...interface{}) error {
	return errs.Logicf(format, args...)
}

// IsDomainError reports whether err (or its cause) is a DomainError.
func IsDomainError(err error) bool { return errs.IsDomain(err) }

// IsLogicError reports whether err (or its cause) is a LogicError.
func IsLogicError(err error) bool { return errs.IsLogic(err) }

// Context is a node in the context trie: a frequency table over all
// symbols, plus child slots for the next symbol-keyed level. Children is
// nil at the maximum depth (modelOrder), since no context may be
// allocated past it. A context exclusively owns its subtree.
type Context struct {
	freqs    *freqtable.SimpleTable
	children []*Context
}

// Frequencies returns this context's mutable frequency table.
func (c *Context) Frequencies() *freqtable.SimpleTable { return c.freqs }

// Model is a PPM context tree plus the order-(-1) fallback table.
type Model struct {
	Order        int
	SymbolLimit  int
	EscapeSymbol int

	root        *Context // nil iff Order == -1
	orderMinus1 *freqtable.FlatTable
}

// NewModel returns a freshly initialized model: an empty root context (if
// order >= 0) and a flat order-(-1) table. escapeSymbol must be a valid
// symbol distinct from the bytes it escapes on behalf of; for the
// byte-oriented drivers, symbolLimit is 257 and escapeSymbol is 256.
func NewModel(order, symbolLimit, escapeSymbol int) (*Model, error) {
	if order < -1 {
		return nil, domainError("ppm: modelOrder must be >= -1, got %d", order)
	}
	if symbolLimit <= 1 {
		return nil, domainError("ppm: symbolLimit must be > 1, got %d", symbolLimit)
	}
	if escapeSymbol < 0 || escapeSymbol >= symbolLimit {
		return nil, domainError("ppm: escapeSymbol %d out of range [0, %d)", escapeSymbol, symbolLimit)
	}

	m := &Model{Order: order, SymbolLimit: symbolLimit, EscapeSymbol: escapeSymbol}
	orderMinus1, err := freqtable.NewFlatTable(symbolLimit)
	if err != nil {
		return nil, err
	}
	m.orderMinus1 = orderMinus1

	if order >= 0 {
		root, err := m.newContext(order >= 1)
		if err != nil {
			return nil, err
		}
		m.root = root
	}
	return m, nil
}

// newContext allocates a context with an escape count of 1 (so escape is
// always encodable even before anything else has been observed there),
// and child slots iff hasChildren.
func (m *Model) newContext(hasChildren bool) (*Context, error) {
	freqs, err := freqtable.NewSimpleTable(make([]uint32, m.SymbolLimit))
	if err != nil {
		return nil, err
	}
	if err := freqs.Increment(m.EscapeSymbol); err != nil {
		return nil, err
	}
	var children []*Context
	if hasChildren {
		children = make([]*Context, m.SymbolLimit)
	}
	return &Context{freqs: freqs, children: children}, nil
}

// IncrementContexts updates every context along the path from the root
// through each suffix of hist, from shortest (the root's empty suffix) to
// longest, lazily allocating children as needed, and increments symbol's frequency at
// each visited node. hist holds the recent history in chronological
// order (oldest first, newest last); descent walks it newest-symbol
// first, mirroring the order in which EncodeSymbol/DecodeSymbol descend
// by recency. A no-op when Order == -1.
func (m *Model) IncrementContexts(hist []int, symbol int) error {
	if m.Order == -1 {
		return nil
	}
	if len(hist) > m.Order {
		return domainError("ppm: history length %d exceeds modelOrder %d", len(hist), m.Order)
	}
	if symbol < 0 || symbol >= m.SymbolLimit {
		return domainError("ppm: symbol %d out of range [0, %d)", symbol, m.SymbolLimit)
	}

	ctx := m.root
	if err := ctx.freqs.Increment(symbol); err != nil {
		return err
	}
	for i := len(hist) - 1; i >= 0; i-- {
		sym := hist[i]
		depth := len(hist) - i
		if ctx.children == nil {
			return logicError("ppm: reached a context with no child slots at depth %d", depth-1)
		}
		if ctx.children[sym] == nil {
			child, err := m.newContext(depth < m.Order)
			if err != nil {
				return err
			}
			ctx.children[sym] = child
		}
		ctx = ctx.children[sym]
		if err := ctx.freqs.Increment(symbol); err != nil {
			return err
		}
	}
	return nil
}

// descend walks from the root through the `order` most recent symbols of
// hist (most recent first), returning the context reached, or ok=false
// if any child pointer along the way is empty.
func (m *Model) descend(hist []int, order int) (*Context, bool, error) {
	ctx := m.root
	for i := 0; i < order; i++ {
		sym := hist[len(hist)-1-i]
		if ctx.children == nil {
			return nil, false, logicError("ppm: reached a context with no child slots while descending")
		}
		next := ctx.children[sym]
		if next == nil {
			return nil, false, nil
		}
		ctx = next
	}
	return ctx, true, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// EncodeSymbol encodes symbol against this model's current state, trying
// orders from min(len(hist), Order) down to 0 and escaping to the next
// lower order whenever the current context doesn't have symbol (or
// doesn't exist), finally falling back to the order-(-1) flat table.
// It does not update the model; call IncrementContexts afterward.
func (m *Model) EncodeSymbol(enc *arithcode.Encoder, hist []int, symbol int) error {
	if symbol < 0 || symbol >= m.SymbolLimit {
		return domainError("ppm: symbol %d out of range [0, %d)", symbol, m.SymbolLimit)
	}
	for order := minInt(len(hist), m.Order); order >= 0; order-- {
		ctx, ok, err := m.descend(hist, order)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if symbol != m.EscapeSymbol {
			freq, err := ctx.freqs.Get(symbol)
			if err != nil {
				return err
			}
			if freq > 0 {
				return enc.Write(ctx.freqs, symbol)
			}
		}
		if err := enc.Write(ctx.freqs, m.EscapeSymbol); err != nil {
			return err
		}
	}
	return enc.Write(m.orderMinus1, symbol)
}

// DecodeSymbol mirrors EncodeSymbol: it reads a symbol from the coder at
// descending orders until a non-escape symbol comes out, finally falling
// back to the order-(-1) flat table (which always succeeds).
func (m *Model) DecodeSymbol(dec *arithcode.Decoder, hist []int) (int, error) {
	for order := minInt(len(hist), m.Order); order >= 0; order-- {
		ctx, ok, err := m.descend(hist, order)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		symbol, err := dec.Read(ctx.freqs)
		if err != nil {
			return 0, err
		}
		if symbol != m.EscapeSymbol {
			return symbol, nil
		}
	}
	return dec.Read(m.orderMinus1)
}

// History is the fixed-capacity window of most-recently-seen symbols that
// the driver feeds to EncodeSymbol/DecodeSymbol/IncrementContexts. It
// always holds the newest symbol at the end of its slice (append-tail,
// trim-head), the one convention this package requires of callers.
type History struct {
	window []int
	maxLen int
}

// NewHistory returns an empty history window capped at maxLen symbols.
// maxLen <= 0 (as when modelOrder == -1) yields a window that stays
// permanently empty.
func NewHistory(maxLen int) *History {
	return &History{maxLen: maxLen}
}

// Slice returns the current window, oldest symbol first.
func (h *History) Slice() []int { return h.window }

// Append adds symbol as the newest entry, dropping the oldest entry if
// the window is already at capacity.
func (h *History) Append(symbol int) {
	if h.maxLen <= 0 {
		return
	}
	if len(h.window) == h.maxLen {
		copy(h.window, h.window[1:])
		h.window = h.window[:len(h.window)-1]
	}
	h.window = append(h.window, symbol)
}
