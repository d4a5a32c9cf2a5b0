package buffer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gear6io/protoreg/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint16ByteOrder(t *testing.T) {
	big := New()
	big.WriteUint16(0x0102)
	assert.Equal(t, []byte{0x01, 0x02}, big.Bytes())

	little := New(WithByteOrder(binary.LittleEndian))
	little.WriteUint16(0x0102)
	assert.Equal(t, []byte{0x02, 0x01}, little.Bytes())

	v, err := little.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), v)
}

func TestPrimitivesRoundTrip(t *testing.T) {
	buf := New(WithCapacity(2))

	require.NoError(t, buf.WriteByte(0xAB))
	buf.WriteBool(true)
	buf.WriteBool(false)
	buf.WriteUint16(math.MaxUint16)
	buf.WriteInt32(-42)
	buf.WriteUint32(math.MaxUint32)
	buf.WriteInt64(math.MinInt64)
	buf.WriteUint64(math.MaxUint64)
	buf.WriteString("hello")
	buf.WriteBytes([]byte{1, 2, 3})
	buf.WriteRaw([]byte{9, 9})

	b, err := buf.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), b)

	ok, err := buf.ReadBool()
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = buf.ReadBool()
	require.NoError(t, err)
	assert.False(t, ok)

	u16, err := buf.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(math.MaxUint16), u16)

	i32, err := buf.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-42), i32)

	u32, err := buf.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(math.MaxUint32), u32)

	i64, err := buf.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), i64)

	u64, err := buf.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), u64)

	s, err := buf.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	p, err := buf.ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, p)

	raw, err := buf.ReadRaw(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 9}, raw)

	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, buf.WriterIndex(), buf.ReaderIndex())
}

func TestShortReadLeavesCursor(t *testing.T) {
	buf := NewFromBytes([]byte{0x01})

	_, err := buf.ReadUint16()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrInsufficientData))
	assert.Equal(t, 0, buf.ReaderIndex())
	assert.Equal(t, 1, buf.Len())

	_, err = buf.ReadUint64()
	assert.True(t, errors.HasCode(err, ErrInsufficientData))
	assert.Equal(t, 0, buf.ReaderIndex())
}

func TestReadRawNegative(t *testing.T) {
	buf := NewFromBytes([]byte{1, 2, 3})
	_, err := buf.ReadRaw(-1)
	assert.True(t, errors.HasCode(err, ErrNegativeLength))
	assert.Equal(t, 0, buf.ReaderIndex())
}

func TestReadBoolRejectsOtherValues(t *testing.T) {
	buf := NewFromBytes([]byte{0x02})
	_, err := buf.ReadBool()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrInvalidBool))
}

func TestReadBytesTruncatedPayload(t *testing.T) {
	buf := New()
	buf.WriteUint32(10)
	buf.WriteRaw([]byte{1, 2})

	_, err := buf.ReadBytes()
	assert.True(t, errors.HasCode(err, ErrInsufficientData))
	assert.Equal(t, 4, buf.ReaderIndex())
}

func TestEmptyBytesAndString(t *testing.T) {
	buf := New()
	buf.WriteBytes(nil)
	buf.WriteString("")

	p, err := buf.ReadBytes()
	require.NoError(t, err)
	assert.Nil(t, p)

	s, err := buf.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestReadRawReturnsCopy(t *testing.T) {
	buf := NewFromBytes([]byte{1, 2, 3})
	raw, err := buf.ReadRaw(3)
	require.NoError(t, err)
	raw[0] = 0xFF

	buf.Reset()
	buf.WriteRaw([]byte{7})
	assert.Equal(t, []byte{7}, buf.Bytes())
}

func TestNewFromBytesCopiesInput(t *testing.T) {
	src := []byte{0x00, 0x01}
	buf := NewFromBytes(src)
	src[1] = 0x02

	v, err := buf.ReadUint16()
	require.NoError(t, err)
	if v != 1 {
		t.Errorf("Expected 1, got %d", v)
	}
}

func TestReset(t *testing.T) {
	buf := New()
	buf.WriteUint32(1)
	_, _ = buf.ReadUint16()

	buf.Reset()
	assert.Equal(t, 0, buf.ReaderIndex())
	assert.Equal(t, 0, buf.WriterIndex())
	assert.Equal(t, 0, buf.Len())
}

func TestGrowPreservesContent(t *testing.T) {
	buf := New(WithCapacity(1))
	for i := 0; i < 1000; i++ {
		buf.WriteUint16(uint16(i))
	}
	for i := 0; i < 1000; i++ {
		v, err := buf.ReadUint16()
		require.NoError(t, err)
		require.Equal(t, uint16(i), v)
	}
}

func TestTruncate(t *testing.T) {
	buf := New()
	buf.WriteUint16(1)
	mark := buf.WriterIndex()
	buf.WriteUint64(2)

	buf.Truncate(mark)
	assert.Equal(t, []byte{0x00, 0x01}, buf.Bytes())

	_, err := buf.ReadByte()
	require.NoError(t, err)
	buf.Truncate(0)
	assert.Equal(t, 2, buf.WriterIndex())
}
