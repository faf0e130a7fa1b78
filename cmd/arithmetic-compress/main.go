// Command arithmetic-compress compresses a file with static order-0
// arithmetic coding. It reads the input once to build a frequency table
// over the 256 byte values plus an EOF symbol, writes that table as a
// 256-entry, 32-bit big-endian header, then reads the input a second time
// and arithmetic-codes it against the now-fixed table.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/nayuki/arithmetic-coding/arithcode"
	"github.com/nayuki/arithmetic-coding/bitio"
	"github.com/nayuki/arithmetic-coding/errs"
	"github.com/nayuki/arithmetic-coding/freqtable"
)

const (
	symbolLimit  = 257
	eofSymbol    = 256
	numStateBits = 32
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s InputFile OutputFile\n", os.Args[0])
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	if err := run(flag.Arg(0), flag.Arg(1)); err != nil {
		log.Fatalf("%s", errs.Diagnose(err))
	}
}

func run(inputPath, outputPath string) error {
	freqs, err := countFrequencies(inputPath)
	if err != nil {
		return err
	}
	if err := freqs.Increment(eofSymbol); err != nil {
		return err
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()
	outFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer outFile.Close()
	out := bufio.NewWriter(outFile)

	bw := bitio.NewWriter(out)
	if err := writeFrequencies(bw, freqs); err != nil {
		return err
	}
	if err := compress(freqs, bufio.NewReader(in), bw); err != nil {
		return err
	}
	return out.Flush()
}

// countFrequencies reads the whole input once to tally byte frequencies,
// returning a 257-symbol table whose EOF entry is left at zero.
func countFrequencies(path string) (*freqtable.SimpleTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	freqs, err := freqtable.NewSimpleTable(make([]uint32, symbolLimit))
	if err != nil {
		return nil, err
	}
	r := bufio.NewReader(f)
	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := freqs.Increment(int(b)); err != nil {
			return nil, err
		}
	}
	return freqs, nil
}

// writeFrequencies writes the 256 byte-value frequencies (the EOF entry at
// index 256 is never part of the header) as 32-bit big-endian integers.
func writeFrequencies(out *bitio.Writer, freqs freqtable.Table) error {
	for i := 0; i < 256; i++ {
		freq, err := freqs.Get(i)
		if err != nil {
			return err
		}
		if err := writeInt(out, 32, freq); err != nil {
			return err
		}
	}
	return nil
}

func writeInt(out *bitio.Writer, numBits int, value uint32) error {
	for i := numBits - 1; i >= 0; i-- {
		if err := out.Write(int((value >> uint(i)) & 1)); err != nil {
			return err
		}
	}
	return nil
}

func compress(freqs freqtable.Table, in *bufio.Reader, out *bitio.Writer) error {
	enc, err := arithcode.NewEncoder(out, numStateBits)
	if err != nil {
		return err
	}
	for {
		b, err := in.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := enc.Write(freqs, int(b)); err != nil {
			return err
		}
	}
	if err := enc.Write(freqs, eofSymbol); err != nil {
		return err
	}
	if err := enc.Finish(); err != nil {
		return err
	}
	return out.Finish()
}
