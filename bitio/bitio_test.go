package bitio

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
)

func TestWriterFinishPads(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, b := range []int{1, 0, 1} {
		if err := w.Write(b); err != nil {
			t.Fatalf("%+v", err)
		}
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("%+v", err)
	}
	got := buf.Bytes()
	if len(got) != 1 || got[0] != 0xA0 {
		t.Fatalf("got %x, want a0", got)
	}
}

func TestWriterRejectsBadBit(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Write(2); err == nil {
		t.Fatal("expected error for bit != 0,1")
	}
}

func TestReaderOverTwoBytes(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xA0, 0x00}))

	want := []int{1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	for i, w := range want {
		got, err := r.Read()
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if got != w {
			t.Fatalf("bit %d: got %d, want %d", i, got, w)
		}
	}

	got, err := r.Read()
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if got != -1 {
		t.Fatalf("got %d, want -1 at end of stream", got)
	}

	if _, err := r.ReadNoEOF(); errors.Cause(err) != ErrEndOfStream {
		t.Fatalf("got %v, want ErrEndOfStream", err)
	}
}

func TestRoundTrip(t *testing.T) {
	bits := []int{1, 1, 0, 1, 0, 0, 1, 1, 0, 1, 0}
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, b := range bits {
		if err := w.Write(b); err != nil {
			t.Fatalf("%+v", err)
		}
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("%+v", err)
	}

	r := NewReader(bytes.NewReader(buf.Bytes()))
	for i, want := range bits {
		got, err := r.ReadNoEOF()
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if got != want {
			t.Fatalf("bit %d: got %d, want %d", i, got, want)
		}
	}
	padBits := len(bits) % 8
	if padBits != 0 {
		for i := 0; i < 8-padBits; i++ {
			got, err := r.ReadNoEOF()
			if err != nil {
				t.Fatalf("%+v", err)
			}
			if got != 0 {
				t.Fatalf("pad bit %d: got %d, want 0", i, got)
			}
		}
	}
	if got, _ := r.Read(); got != -1 {
		t.Fatalf("got %d, want -1 at end of stream", got)
	}
}
