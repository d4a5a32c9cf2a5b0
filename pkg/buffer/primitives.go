package buffer

import (
	"math"

	"github.com/gear6io/protoreg/pkg/errors"
)

// WriteByte appends a single byte. It never fails; the error return
// satisfies io.ByteWriter.
func (b *ByteBuffer) WriteByte(v byte) error {
	b.grow(1)[0] = v
	return nil
}

// ReadByte reads a single byte
func (b *ByteBuffer) ReadByte() (byte, error) {
	p, err := b.next(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

// WriteBool writes 1 for true and 0 for false
func (b *ByteBuffer) WriteBool(v bool) {
	if v {
		b.grow(1)[0] = 1
		return
	}
	b.grow(1)[0] = 0
}

// ReadBool reads a bool written by WriteBool
func (b *ByteBuffer) ReadBool() (bool, error) {
	p, err := b.next(1)
	if err != nil {
		return false, err
	}
	switch p[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.Newf(ErrInvalidBool, "invalid bool byte 0x%02x", p[0])
	}
}

// WriteUint16 writes a 16-bit unsigned integer in the buffer's byte order
func (b *ByteBuffer) WriteUint16(v uint16) {
	b.order.PutUint16(b.grow(2), v)
}

// ReadUint16 reads a 16-bit unsigned integer in the buffer's byte order
func (b *ByteBuffer) ReadUint16() (uint16, error) {
	p, err := b.next(2)
	if err != nil {
		return 0, err
	}
	return b.order.Uint16(p), nil
}

// WriteUint32 writes a 32-bit unsigned integer
func (b *ByteBuffer) WriteUint32(v uint32) {
	b.order.PutUint32(b.grow(4), v)
}

// ReadUint32 reads a 32-bit unsigned integer
func (b *ByteBuffer) ReadUint32() (uint32, error) {
	p, err := b.next(4)
	if err != nil {
		return 0, err
	}
	return b.order.Uint32(p), nil
}

// WriteInt32 writes a 32-bit signed integer
func (b *ByteBuffer) WriteInt32(v int32) {
	b.WriteUint32(uint32(v))
}

// ReadInt32 reads a 32-bit signed integer
func (b *ByteBuffer) ReadInt32() (int32, error) {
	v, err := b.ReadUint32()
	return int32(v), err
}

// WriteUint64 writes a 64-bit unsigned integer
func (b *ByteBuffer) WriteUint64(v uint64) {
	b.order.PutUint64(b.grow(8), v)
}

// ReadUint64 reads a 64-bit unsigned integer
func (b *ByteBuffer) ReadUint64() (uint64, error) {
	p, err := b.next(8)
	if err != nil {
		return 0, err
	}
	return b.order.Uint64(p), nil
}

// WriteInt64 writes a 64-bit signed integer
func (b *ByteBuffer) WriteInt64(v int64) {
	b.WriteUint64(uint64(v))
}

// ReadInt64 reads a 64-bit signed integer
func (b *ByteBuffer) ReadInt64() (int64, error) {
	v, err := b.ReadUint64()
	return int64(v), err
}

// WriteRaw appends p without a length prefix
func (b *ByteBuffer) WriteRaw(p []byte) {
	copy(b.grow(len(p)), p)
}

// ReadRaw reads exactly n bytes without a length prefix. The result is a copy.
func (b *ByteBuffer) ReadRaw(n int) ([]byte, error) {
	p, err := b.next(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, p)
	return out, nil
}

// WriteBytes writes p with a 4 byte length prefix
func (b *ByteBuffer) WriteBytes(p []byte) {
	b.WriteUint32(uint32(len(p)))
	b.WriteRaw(p)
}

// ReadBytes reads a length-prefixed byte slice. A zero length yields nil.
// On a short payload the cursor is left after the length prefix.
func (b *ByteBuffer) ReadBytes() ([]byte, error) {
	n, err := b.ReadUint32()
	if err != nil {
		return nil, err
	}
	if uint64(n) > math.MaxInt32 {
		return nil, errors.Newf(ErrInsufficientData, "length prefix %d exceeds limit", n)
	}
	if n == 0 {
		return nil, nil
	}
	return b.ReadRaw(int(n))
}

// WriteString writes s with a 4 byte length prefix
func (b *ByteBuffer) WriteString(s string) {
	b.WriteUint32(uint32(len(s)))
	copy(b.grow(len(s)), s)
}

// ReadString reads a length-prefixed string
func (b *ByteBuffer) ReadString() (string, error) {
	p, err := b.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(p), nil
}
