package main

import (
	"os"
	"testing"
)

func compress(t *testing.T, order int, input []byte) []byte {
	t.Helper()
	inFile, err := os.CreateTemp("", "ppm-compress.in")
	if err != nil {
		t.Fatalf("%v", err)
	}
	defer os.Remove(inFile.Name())
	if _, err := inFile.Write(input); err != nil {
		t.Fatalf("%v", err)
	}
	inFile.Close()

	outPath := inFile.Name() + ".cmp"
	defer os.Remove(outPath)
	if err := run(order, inFile.Name(), outPath); err != nil {
		t.Fatalf("compress: %+v", err)
	}
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("%v", err)
	}
	return b
}

// TestNoHeader checks that the adaptive PPM file carries no fixed header:
// the outputs for two different single-byte inputs at order 0 must not
// both be long enough to hold the static format's 256-entry, 1024-byte
// frequency table.
func TestNoHeader(t *testing.T) {
	a := compress(t, 0, []byte{0x41})
	b := compress(t, 0, []byte{0x42})
	if len(a) >= 256*4 && len(b) >= 256*4 {
		t.Fatalf("outputs are suspiciously long for header-free single-byte inputs: %d, %d", len(a), len(b))
	}
}

func TestEmptyInputProducesOutput(t *testing.T) {
	out := compress(t, 3, nil)
	if len(out) == 0 {
		t.Fatalf("expected at least the EOF-escape bits, got empty output")
	}
}
