package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/gear6io/protoreg/pkg/buffer"
	"github.com/gear6io/protoreg/pkg/errors"
	"github.com/gear6io/protoreg/pkg/protocol"
)

type event struct {
	Name  string   `json:"name" avro:"name" bencode:"name" msgpack:"name"`
	Count int64    `json:"count" avro:"count" bencode:"count" msgpack:"count"`
	Tags  []string `json:"tags" avro:"tags" bencode:"tags" msgpack:"tags"`
}

const eventSchema = `{
	"type": "record",
	"name": "event",
	"fields": [
		{"name": "name", "type": "string"},
		{"name": "count", "type": "long"},
		{"name": "tags", "type": {"type": "array", "items": "string"}}
	]
}`

func TestSerializerRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		reg  protocol.Registration
	}{
		{"json", JSON[event]()},
		{"cbor", CBOR[event]()},
		{"msgpack", Msgpack[event]()},
		{"bencode", Bencode[event]()},
		{"avro", MustAvro[event](eventSchema)},
	}

	want := event{Name: "deploy", Count: 42, Tags: []string{"a", "b"}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := protocol.NewBuilder()
			require.NoError(t, b.Register(20, tt.reg))
			registry := b.Build()

			buf := buffer.New()
			require.NoError(t, registry.Write(buf, want))

			got, err := registry.Read(buf)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, 0, buf.Len())
		})
	}
}

func TestPayloadIsLengthPrefixed(t *testing.T) {
	reg := JSON[event]()
	buf := buffer.New()
	require.NoError(t, reg.Encode(buf, event{Name: "x"}))

	n, err := buf.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, int(n), buf.Len())
	assert.JSONEq(t, `{"name":"x","count":0,"tags":null}`, string(buf.Bytes()))
}

func TestProtoRoundTrip(t *testing.T) {
	b := protocol.NewBuilder()
	b.MustRegister(30, Proto(func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} }))
	registry := b.Build()

	buf := buffer.New()
	require.NoError(t, registry.Write(buf, wrapperspb.String("hello")))

	got, err := registry.Read(buf)
	require.NoError(t, err)
	msg, ok := got.(*wrapperspb.StringValue)
	require.True(t, ok)
	assert.True(t, proto.Equal(wrapperspb.String("hello"), msg))
}

func TestProtoRejectsGarbage(t *testing.T) {
	reg := Proto(func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} })

	buf := buffer.New()
	buf.WriteBytes([]byte{0xFF, 0xFF, 0xFF})
	_, err := reg.Decode(buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "proto unmarshal")
}

func TestUnmarshalFailureIsWrapped(t *testing.T) {
	reg := JSON[event]()

	buf := buffer.New()
	buf.WriteBytes([]byte(`{"name":`))
	_, err := reg.Decode(buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json unmarshal codec.event")
}

func TestMarshalFailureIsWrapped(t *testing.T) {
	type withChan struct {
		C chan int
	}
	reg := JSON[withChan]()

	buf := buffer.New()
	err := reg.Encode(buf, withChan{C: make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json marshal")
	assert.Equal(t, 0, buf.WriterIndex())
}

func TestTruncatedPayloadReportsBufferFailure(t *testing.T) {
	reg := CBOR[event]()

	buf := buffer.New()
	buf.WriteUint32(100)
	buf.WriteRaw([]byte{1, 2, 3})

	_, err := reg.Decode(buf)
	assert.True(t, errors.HasCode(err, buffer.ErrInsufficientData))
}

func TestAvroInvalidSchema(t *testing.T) {
	_, err := Avro[event](`{"type": "nope"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse avro schema")

	assert.Panics(t, func() {
		MustAvro[event](`not json`)
	})
}

func TestSerializerNames(t *testing.T) {
	assert.Equal(t, "json", JSONSerializer.Name())
	assert.Equal(t, "cbor", CBORSerializer.Name())
	assert.Equal(t, "msgpack", MsgpackSerializer.Name())
	assert.Equal(t, "bencode", BencodeSerializer.Name())
}
