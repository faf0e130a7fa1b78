// Command bench runs one input file through this module's static and PPM
// coders plus a handful of general-purpose codecs, and prints a size/ratio
// table to stdout. It exists to exercise the library's public API
// end-to-end and to give a few of the rest of the pack's domain
// dependencies a concrete home for side-by-side comparison.
package main

import (
	"bytes"
	"compress/gzip"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/nayuki/arithmetic-coding/arithcode"
	"github.com/nayuki/arithmetic-coding/bitio"
	"github.com/nayuki/arithmetic-coding/errs"
	"github.com/nayuki/arithmetic-coding/freqtable"
	"github.com/nayuki/arithmetic-coding/ppm"
)

const (
	symbolLimit  = 257
	eofSymbol    = 256
	numStateBits = 32
	modelOrder   = 3
)

var order = flag.Int("order", modelOrder, "PPM model order used for the PPM column")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-order N] InputFile\n", os.Args[0])
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	if err := run(*order, flag.Arg(0)); err != nil {
		log.Fatalf("%s", errs.Diagnose(err))
	}
}

type result struct {
	name string
	size int
}

func run(modelOrder int, inputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	results := []result{{"input", len(data)}}

	staticSize, err := staticCompressedSize(data)
	if err != nil {
		return errors.Wrap(err, "bench: static coder")
	}
	results = append(results, result{"static-order-0", staticSize})

	ppmSize, err := ppmCompressedSize(modelOrder, data)
	if err != nil {
		return errors.Wrap(err, "bench: PPM coder")
	}
	results = append(results, result{fmt.Sprintf("ppm-order-%d", modelOrder), ppmSize})

	gzipSize, err := gzipCompressedSize(data)
	if err != nil {
		return errors.Wrap(err, "bench: gzip")
	}
	results = append(results, result{"gzip", gzipSize})

	results = append(results, result{"snappy", len(snappy.Encode(nil, data))})

	zstdSize, err := zstdCompressedSize(data)
	if err != nil {
		return errors.Wrap(err, "bench: zstd")
	}
	results = append(results, result{"zstd", zstdSize})

	printTable(results)
	return nil
}

func printTable(results []result) {
	inputSize := results[0].size
	fmt.Printf("%-16s %10s %8s\n", "codec", "bytes", "ratio")
	for _, r := range results {
		ratio := 1.0
		if inputSize > 0 {
			ratio = float64(r.size) / float64(inputSize)
		}
		fmt.Printf("%-16s %10d %8.3f\n", r.name, r.size, ratio)
	}
}

func staticCompressedSize(data []byte) (int, error) {
	freqs, err := freqtable.NewSimpleTable(make([]uint32, symbolLimit))
	if err != nil {
		return 0, err
	}
	for _, b := range data {
		if err := freqs.Increment(int(b)); err != nil {
			return 0, err
		}
	}
	if err := freqs.Increment(eofSymbol); err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	for i := 0; i < 256; i++ {
		freq, err := freqs.Get(i)
		if err != nil {
			return 0, err
		}
		for bitPos := 31; bitPos >= 0; bitPos-- {
			if err := bw.Write(int((freq >> uint(bitPos)) & 1)); err != nil {
				return 0, err
			}
		}
	}

	enc, err := arithcode.NewEncoder(bw, numStateBits)
	if err != nil {
		return 0, err
	}
	for _, b := range data {
		if err := enc.Write(freqs, int(b)); err != nil {
			return 0, err
		}
	}
	if err := enc.Write(freqs, eofSymbol); err != nil {
		return 0, err
	}
	if err := enc.Finish(); err != nil {
		return 0, err
	}
	if err := bw.Finish(); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}

func ppmCompressedSize(modelOrder int, data []byte) (int, error) {
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	enc, err := arithcode.NewEncoder(bw, numStateBits)
	if err != nil {
		return 0, err
	}
	model, err := ppm.NewModel(modelOrder, symbolLimit, eofSymbol)
	if err != nil {
		return 0, err
	}
	hist := ppm.NewHistory(modelOrder)
	for _, b := range data {
		symbol := int(b)
		if err := model.EncodeSymbol(enc, hist.Slice(), symbol); err != nil {
			return 0, err
		}
		if err := model.IncrementContexts(hist.Slice(), symbol); err != nil {
			return 0, err
		}
		hist.Append(symbol)
	}
	if err := model.EncodeSymbol(enc, hist.Slice(), eofSymbol); err != nil {
		return 0, err
	}
	if err := enc.Finish(); err != nil {
		return 0, err
	}
	if err := bw.Finish(); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}

func gzipCompressedSize(data []byte) (int, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}

func zstdCompressedSize(data []byte) (int, error) {
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}
