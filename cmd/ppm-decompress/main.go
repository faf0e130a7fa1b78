// Command ppm-decompress reverses ppm-compress: it builds the same empty
// model and decodes symbols until the escape symbol comes out at order -1,
// which signals logical EOF.
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
	"github.com/nayuki/arithmetic-coding/ppm"
)

const (
	symbolLimit  = 257
	eofSymbol    = 256
	numStateBits = 32
	modelOrder   = 3
)

var order = flag.Int("order", modelOrder, "PPM model order; must match the compressor")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-order N] InputFile OutputFile\n", os.Args[0])
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	if err := run(*order, flag.Arg(0), flag.Arg(1)); err != nil {
		log.Fatalf("%s", errs.Diagnose(err))
	}
}

func run(modelOrder int, inputPath, outputPath string) error {
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
	dec, err := arithcode.NewDecoder(br, numStateBits)
	if err != nil {
		return err
	}
	model, err := ppm.NewModel(modelOrder, symbolLimit, eofSymbol)
	if err != nil {
		return err
	}
	hist := ppm.NewHistory(modelOrder)

	for {
		symbol, err := model.DecodeSymbol(dec, hist.Slice())
		if err != nil {
			return err
		}
		if symbol == eofSymbol {
			return out.Flush()
		}
		if err := model.IncrementContexts(hist.Slice(), symbol); err != nil {
			return err
		}
		hist.Append(symbol)
		if err := out.WriteByte(byte(symbol)); err != nil {
			return err
		}
	}
}
