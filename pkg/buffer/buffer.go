// Package buffer provides the byte buffer that protocol codecs read from and
// write to. A ByteBuffer keeps separate reader and writer indexes over one
// growable slice, so a single buffer can be written by one side of a test and
// read back by the other.
package buffer

import (
	"encoding/binary"
	"strconv"

	"github.com/gear6io/protoreg/pkg/errors"
)

const defaultCapacity = 64

// ByteBuffer is not safe for concurrent use.
type ByteBuffer struct {
	data        []byte
	readerIndex int
	order       binary.ByteOrder
}

// Option configures a ByteBuffer
type Option func(*ByteBuffer)

// WithByteOrder sets the byte order used for every fixed-width integer.
// The default is big endian.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(b *ByteBuffer) {
		b.order = order
	}
}

// WithCapacity preallocates the underlying slice
func WithCapacity(n int) Option {
	return func(b *ByteBuffer) {
		if n > cap(b.data) {
			b.data = make([]byte, 0, n)
		}
	}
}

// New creates an empty buffer
func New(opts ...Option) *ByteBuffer {
	b := &ByteBuffer{
		data:  make([]byte, 0, defaultCapacity),
		order: binary.BigEndian,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromBytes creates a buffer whose readable region is a copy of data
func NewFromBytes(data []byte, opts ...Option) *ByteBuffer {
	b := New(opts...)
	b.data = append(b.data[:0], data...)
	return b
}

// ByteOrder returns the byte order of the buffer
func (b *ByteBuffer) ByteOrder() binary.ByteOrder {
	return b.order
}

// Bytes returns the unread portion of the buffer. The slice aliases the buffer.
func (b *ByteBuffer) Bytes() []byte {
	return b.data[b.readerIndex:]
}

// Len returns the number of unread bytes
func (b *ByteBuffer) Len() int {
	return len(b.data) - b.readerIndex
}

// ReaderIndex returns the read cursor
func (b *ByteBuffer) ReaderIndex() int {
	return b.readerIndex
}

// WriterIndex returns the write cursor
func (b *ByteBuffer) WriterIndex() int {
	return len(b.data)
}

// Reset discards all content and rewinds both cursors
func (b *ByteBuffer) Reset() {
	b.data = b.data[:0]
	b.readerIndex = 0
}

// Truncate discards written bytes past writerIndex. It is used to roll back a
// partially written message. Indexes outside [ReaderIndex, WriterIndex] are
// ignored.
func (b *ByteBuffer) Truncate(writerIndex int) {
	if writerIndex < b.readerIndex || writerIndex > len(b.data) {
		return
	}
	b.data = b.data[:writerIndex]
}

// next consumes n bytes or fails without moving the read cursor
func (b *ByteBuffer) next(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Newf(ErrNegativeLength, "negative read length %d", n)
	}
	if b.Len() < n {
		return nil, errors.Newf(ErrInsufficientData, "need %d bytes, %d remaining", n, b.Len()).
			AddContext("reader_index", strconv.Itoa(b.readerIndex))
	}
	out := b.data[b.readerIndex : b.readerIndex+n]
	b.readerIndex += n
	return out, nil
}

// grow extends the written region by n bytes and returns it
func (b *ByteBuffer) grow(n int) []byte {
	start := len(b.data)
	if cap(b.data)-start < n {
		next := make([]byte, start, 2*cap(b.data)+n)
		copy(next, b.data)
		b.data = next
	}
	b.data = b.data[:start+n]
	return b.data[start:]
}
