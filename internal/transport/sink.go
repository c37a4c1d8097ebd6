package transport

import (
	"bytes"
	"io"
)

// Sink accepts printer bytes and delivers them, in order, to the
// physical or logical output. Writers must not reorder or coalesce
// across Write calls.
type Sink interface {
	io.Writer
	io.Closer
}

// Buffer is an in-memory Sink that records everything written to it.
// Used for dry runs and tests.
type Buffer struct {
	buf    bytes.Buffer
	closed bool
}

// NewBuffer returns an empty capture sink.
func NewBuffer() *Buffer { return &Buffer{} }

func (b *Buffer) Write(p []byte) (int, error) {
	if b.closed {
		return 0, io.ErrClosedPipe
	}
	return b.buf.Write(p)
}

func (b *Buffer) Close() error {
	b.closed = true
	return nil
}

// Bytes returns everything written so far.
func (b *Buffer) Bytes() []byte { return b.buf.Bytes() }

// Len returns the number of bytes captured.
func (b *Buffer) Len() int { return b.buf.Len() }

// nopCloser adapts a bare io.Writer into a Sink.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NopCloser wraps w so it satisfies Sink without a real Close.
func NopCloser(w io.Writer) Sink { return nopCloser{w} }
