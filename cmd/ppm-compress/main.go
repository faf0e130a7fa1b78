// Command ppm-compress compresses a file with an adaptive PPM model: no
// header is written, since both sides build an identical empty model from
// agreed-upon parameters and adapt it symbol by symbol as they go.
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
	"github.com/nayuki/arithmetic-coding/ppm"
)

const (
	symbolLimit  = 257
	eofSymbol    = 256
	numStateBits = 32

	// modelOrder is MODEL_ORDER in the original: it MUST match between
	// compressor and decompressor, same as the compile-time constant it
	// generalizes. The -order flag only changes what the operator must
	// keep in sync; the wire format carries no record of it.
	modelOrder = 3
)

var order = flag.Int("order", modelOrder, "PPM model order; must match the decompressor")

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

	bw := bitio.NewWriter(out)
	enc, err := arithcode.NewEncoder(bw, numStateBits)
	if err != nil {
		return err
	}
	model, err := ppm.NewModel(modelOrder, symbolLimit, eofSymbol)
	if err != nil {
		return err
	}
	hist := ppm.NewHistory(modelOrder)

	in := bufio.NewReader(inFile)
	for {
		b, err := in.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		symbol := int(b)
		if err := model.EncodeSymbol(enc, hist.Slice(), symbol); err != nil {
			return err
		}
		if err := model.IncrementContexts(hist.Slice(), symbol); err != nil {
			return err
		}
		hist.Append(symbol)
	}
	if err := model.EncodeSymbol(enc, hist.Slice(), eofSymbol); err != nil {
		return err
	}
	if err := enc.Finish(); err != nil {
		return err
	}
	if err := bw.Finish(); err != nil {
		return err
	}
	return out.Flush()
}
