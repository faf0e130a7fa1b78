// Package bitio provides big-endian bit-level reading and writing on top of
// ordinary byte streams.
//
// Below is an example of writing three bits and padding to a byte boundary:
//    w := bitio.NewWriter(out)
//    w.Write(1)
//    w.Write(0)
//    w.Write(1)
//    w.Finish()
package bitio

import (
	"io"

	"github.com/pkg/errors"
)

// ErrEndOfStream is the sentinel wrapped by Reader.ReadNoEOF when the
// underlying stream has no more bits to give.
var ErrEndOfStream = errors.New("end of stream reached")

// A Reader reads individual bits, MSB first within each byte, from an
// underlying io.Reader. Once the underlying stream is exhausted, Read
// returns -1 forever; the end of stream always falls on a byte boundary.
type Reader struct {
	in               io.Reader
	nextByte         int // 0..255, the most recently read byte
	numBitsRemaining int // 0..7
	atEnd            bool
}

// NewReader returns a bit reader that pulls bytes from in.
func NewReader(in io.Reader) *Reader {
	return &Reader{in: in}
}

// Read returns the next bit (0 or 1), or -1 if the stream has ended.
func (r *Reader) Read() (int, error) {
	if r.atEnd {
		return -1, nil
	}
	if r.numBitsRemaining == 0 {
		var buf [1]byte
		n, err := r.in.Read(buf[:])
		if n == 0 {
			if err != nil && err != io.EOF {
				return 0, errors.Wrap(err, "bitio: reading byte")
			}
			r.atEnd = true
			return -1, nil
		}
		r.nextByte = int(buf[0])
		r.numBitsRemaining = 8
	}
	r.numBitsRemaining--
	return (r.nextByte >> uint(r.numBitsRemaining)) & 1, nil
}

// ReadNoEOF is like Read but returns an error wrapping ErrEndOfStream at end
// of stream: callers use it where the format guarantees more bits must
// follow. That error is a plain sentinel, not an errs LogicError, so
// errs.IsLogic reports false for it.
func (r *Reader) ReadNoEOF() (int, error) {
	b, err := r.Read()
	if err != nil {
		return 0, err
	}
	if b == -1 {
		return 0, errors.WithStack(ErrEndOfStream)
	}
	return b, nil
}

// A Writer accumulates bits, MSB first, and flushes complete bytes to an
// underlying io.Writer.
type Writer struct {
	out           io.Writer
	currentByte   int // 0..255
	numBitsFilled int // 0..7
}

// NewWriter returns a bit writer that flushes bytes to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Write appends a single bit (0 or 1) to the stream, flushing a full byte to
// the underlying writer whenever eight bits have accumulated.
func (w *Writer) Write(b int) error {
	if b != 0 && b != 1 {
		return errors.Errorf("bitio: bit must be 0 or 1, got %d", b)
	}
	w.currentByte = (w.currentByte << 1) | b
	w.numBitsFilled++
	if w.numBitsFilled == 8 {
		if _, err := w.out.Write([]byte{byte(w.currentByte)}); err != nil {
			return errors.Wrap(err, "bitio: flushing byte")
		}
		w.currentByte = 0
		w.numBitsFilled = 0
	}
	return nil
}

// Finish pads the current byte with zero bits (0 to 7 of them) so the stream
// ends on a byte boundary, and writes that final byte. It does not close the
// underlying stream.
func (w *Writer) Finish() error {
	for w.numBitsFilled != 0 {
		if err := w.Write(0); err != nil {
			return err
		}
	}
	return nil
}
