// Package codec builds protocol registrations on top of general purpose
// serializers. The payload of every registration produced here is a 4-byte
// length followed by the serialized bytes.
package codec

import (
	"github.com/go-faster/errors"

	"github.com/gear6io/protoreg/pkg/buffer"
	"github.com/gear6io/protoreg/pkg/protocol"
)

// Serializer converts values to bytes and back
type Serializer interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// For returns a registration for T that serializes with s
func For[T any](s Serializer) protocol.Registration {
	typ := protocol.TypeOf[T]()
	return protocol.NewRegistration(
		func(buf *buffer.ByteBuffer, msg T) error {
			data, err := s.Marshal(msg)
			if err != nil {
				return errors.Wrapf(err, "%s marshal %s", s.Name(), typ)
			}
			buf.WriteBytes(data)
			return nil
		},
		func(buf *buffer.ByteBuffer) (T, error) {
			var msg T
			data, err := buf.ReadBytes()
			if err != nil {
				return msg, err
			}
			if err := s.Unmarshal(data, &msg); err != nil {
				return msg, errors.Wrapf(err, "%s unmarshal %s", s.Name(), typ)
			}
			return msg, nil
		},
	)
}

// JSON encodes T with json-iterator in standard library compatible mode
func JSON[T any]() protocol.Registration {
	return For[T](JSONSerializer)
}

// CBOR encodes T as CBOR with structs written as arrays
func CBOR[T any]() protocol.Registration {
	return For[T](CBORSerializer)
}

// Msgpack encodes T as MessagePack
func Msgpack[T any]() protocol.Registration {
	return For[T](MsgpackSerializer)
}

// Bencode encodes T as bencode. Only strings, integers, lists, maps and
// structs of those are supported.
func Bencode[T any]() protocol.Registration {
	return For[T](BencodeSerializer)
}
