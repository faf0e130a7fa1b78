package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/nayuki/arithmetic-coding/arithcode"
	"github.com/nayuki/arithmetic-coding/bitio"
	"github.com/nayuki/arithmetic-coding/ppm"
)

// writeCompressed builds an adaptive PPM compressed file by hand, the same
// way ppm-compress does, so this package can test decompression without
// importing a sibling main package.
func writeCompressed(t *testing.T, order int, input []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	enc, err := arithcode.NewEncoder(bw, numStateBits)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	model, err := ppm.NewModel(order, symbolLimit, eofSymbol)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	hist := ppm.NewHistory(order)
	for _, b := range input {
		symbol := int(b)
		if err := model.EncodeSymbol(enc, hist.Slice(), symbol); err != nil {
			t.Fatalf("%+v", err)
		}
		if err := model.IncrementContexts(hist.Slice(), symbol); err != nil {
			t.Fatalf("%+v", err)
		}
		hist.Append(symbol)
	}
	if err := model.EncodeSymbol(enc, hist.Slice(), eofSymbol); err != nil {
		t.Fatalf("%+v", err)
	}
	if err := enc.Finish(); err != nil {
		t.Fatalf("%+v", err)
	}
	if err := bw.Finish(); err != nil {
		t.Fatalf("%+v", err)
	}
	return buf.Bytes()
}

func decompress(t *testing.T, order int, compressed []byte) []byte {
	t.Helper()
	inFile, err := os.CreateTemp("", "ppm-decompress.in")
	if err != nil {
		t.Fatalf("%v", err)
	}
	defer os.Remove(inFile.Name())
	if _, err := inFile.Write(compressed); err != nil {
		t.Fatalf("%v", err)
	}
	inFile.Close()

	outPath := inFile.Name() + ".out"
	defer os.Remove(outPath)
	if err := run(order, inFile.Name(), outPath); err != nil {
		t.Fatalf("decompress: %+v", err)
	}
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("%v", err)
	}
	return b
}

// TestOrderZeroRoundTrip is S3: each byte updates the root context.
func TestOrderZeroRoundTrip(t *testing.T) {
	input := []byte{0x41, 0x41, 0x41, 0x41}
	got := decompress(t, 0, writeCompressed(t, 0, input))
	if !bytes.Equal(got, input) {
		t.Fatalf("got %v, want %v", got, input)
	}
}

// TestOrderThreeRoundTrip is S4.
func TestOrderThreeRoundTrip(t *testing.T) {
	input := []byte("ABRACADABRA")
	got := decompress(t, 3, writeCompressed(t, 3, input))
	if !bytes.Equal(got, input) {
		t.Fatalf("got %q, want %q", got, input)
	}
}

func TestEmptyRoundTrip(t *testing.T) {
	got := decompress(t, 3, writeCompressed(t, 3, nil))
	if len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}
