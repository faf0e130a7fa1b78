// Command arithmetic-decompress reverses arithmetic-compress: it reads the
// 256-entry frequency header, sets the EOF symbol's frequency to 1, and
// arithmetic-decodes the rest of the file against that fixed table until
// the EOF symbol comes out.
package main

import (
	"bufio"
	"flag"
	"fmt"
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
	inFile, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer inFile.Close()
	outFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer outFile.Close()
	out := bufio.NewWriter(outFile)

	br := bitio.NewReader(bufio.NewReader(inFile))
	freqs, err := readFrequencies(br)
	if err != nil {
		return err
	}
	if err := decompress(freqs, br, out); err != nil {
		return err
	}
	return out.Flush()
}

func readFrequencies(in *bitio.Reader) (*freqtable.SimpleTable, error) {
	freqs := make([]uint32, symbolLimit)
	for i := 0; i < 256; i++ {
		v, err := readInt(in, 32)
		if err != nil {
			return nil, err
		}
		freqs[i] = v
	}
	freqs[eofSymbol] = 1
	return freqtable.NewSimpleTable(freqs)
}

func readInt(in *bitio.Reader, numBits int) (uint32, error) {
	var result uint32
	for i := 0; i < numBits; i++ {
		b, err := in.ReadNoEOF()
		if err != nil {
			return 0, err
		}
		result = (result << 1) | uint32(b)
	}
	return result, nil
}

func decompress(freqs freqtable.Table, in *bitio.Reader, out *bufio.Writer) error {
	dec, err := arithcode.NewDecoder(in, numStateBits)
	if err != nil {
		return err
	}
	for {
		symbol, err := dec.Read(freqs)
		if err != nil {
			return err
		}
		if symbol == eofSymbol {
			return nil
		}
		if err := out.WriteByte(byte(symbol)); err != nil {
			return err
		}
	}
}
