package arithcode

import (
	"bytes"
	"testing"

	"github.com/nayuki/arithmetic-coding/bitio"
	"github.com/nayuki/arithmetic-coding/freqtable"
)

func TestNewEncoderRejectsBadNumStateBits(t *testing.T) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	if _, err := NewEncoder(w, 0); err == nil || !IsDomainError(err) {
		t.Fatalf("numStateBits=0: got %v, want DomainError", err)
	}
	if _, err := NewEncoder(w, 64); err == nil || !IsDomainError(err) {
		t.Fatalf("numStateBits=64: got %v, want DomainError", err)
	}
	if _, err := NewEncoder(w, 1); err != nil {
		t.Fatalf("numStateBits=1 should be accepted: %+v", err)
	}
	if _, err := NewEncoder(w, 63); err != nil {
		t.Fatalf("numStateBits=63 should be accepted: %+v", err)
	}
}

func TestMaximumTotalWithinMinimumRange(t *testing.T) {
	for _, n := range []int{1, 2, 8, 16, 32, 62, 63} {
		cfg, err := newConfig(n)
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if cfg.maximumTotal > cfg.minimumRange {
			t.Fatalf("numStateBits=%d: maximumTotal %d > minimumRange %d", n, cfg.maximumTotal, cfg.minimumRange)
		}
	}
}

// roundTrip encodes symbols with a fresh table built by newFreqs for every
// symbol (so the caller can exercise either a fixed distribution or an
// adapting one, as long as encode and decode build identical tables),
// then decodes and checks the result matches.
func roundTrip(t *testing.T, numStateBits int, symbols []int, newFreqs func() freqtable.Table) {
	t.Helper()

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	enc, err := NewEncoder(w, numStateBits)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	for _, s := range symbols {
		if err := enc.Write(newFreqs(), s); err != nil {
			t.Fatalf("encode symbol %d: %+v", s, err)
		}
	}
	if err := enc.Finish(); err != nil {
		t.Fatalf("%+v", err)
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("%+v", err)
	}

	r := bitio.NewReader(bytes.NewReader(buf.Bytes()))
	dec, err := NewDecoder(r, numStateBits)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	for i, want := range symbols {
		got, err := dec.Read(newFreqs())
		if err != nil {
			t.Fatalf("decode symbol %d: %+v", i, err)
		}
		if got != want {
			t.Fatalf("symbol %d: got %d, want %d", i, got, want)
		}
	}
}

func TestRoundTripFlatTableAcrossStateSizes(t *testing.T) {
	symbols := []int{0, 1, 0, 0, 1, 1, 1, 0, 1}
	for _, n := range []int{1, 2, 8, 16, 32, 62} {
		t.Run("", func(t *testing.T) {
			roundTrip(t, n, symbols, func() freqtable.Table {
				ft, err := freqtable.NewFlatTable(2)
				if err != nil {
					t.Fatalf("%+v", err)
				}
				return ft
			})
		})
	}
}

func TestRoundTripSimpleTable(t *testing.T) {
	freqs := []uint32{5, 0, 3, 12, 1}
	symbols := []int{3, 0, 2, 3, 3, 2, 0}
	// n=62 is deliberately excluded: maximumTotal there is only 3 (see
	// newConfig), below this table's total of 21, so encoding would
	// correctly fail with a domain error rather than round-trip.
	for _, n := range []int{8, 16, 32} {
		t.Run("", func(t *testing.T) {
			roundTrip(t, n, symbols, func() freqtable.Table {
				st, err := freqtable.NewSimpleTable(freqs)
				if err != nil {
					t.Fatalf("%+v", err)
				}
				return st
			})
		})
	}
}

func TestWriteZeroFrequencySymbolFails(t *testing.T) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	enc, _ := NewEncoder(w, 32)
	st, _ := freqtable.NewSimpleTable([]uint32{5, 0, 3})
	if err := enc.Write(st, 1); err == nil || !IsDomainError(err) {
		t.Fatalf("got %v, want DomainError for zero-frequency symbol", err)
	}
}

func TestEmptyRoundTrip(t *testing.T) {
	roundTrip(t, 32, nil, func() freqtable.Table {
		ft, _ := freqtable.NewFlatTable(257)
		return ft
	})
}
