package codec

import (
	"github.com/go-faster/errors"
	"google.golang.org/protobuf/proto"

	"github.com/gear6io/protoreg/pkg/buffer"
	"github.com/gear6io/protoreg/pkg/protocol"
)

// Proto encodes a generated protobuf message type. newFn returns an empty
// message to decode into, e.g. func() *pb.Event { return new(pb.Event) }.
func Proto[T proto.Message](newFn func() T) protocol.Registration {
	typ := protocol.TypeOf[T]()
	return protocol.NewRegistration(
		func(buf *buffer.ByteBuffer, msg T) error {
			data, err := proto.Marshal(msg)
			if err != nil {
				return errors.Wrapf(err, "proto marshal %s", typ)
			}
			buf.WriteBytes(data)
			return nil
		},
		func(buf *buffer.ByteBuffer) (T, error) {
			data, err := buf.ReadBytes()
			if err != nil {
				var zero T
				return zero, err
			}
			msg := newFn()
			if err := proto.Unmarshal(data, msg); err != nil {
				return msg, errors.Wrapf(err, "proto unmarshal %s", typ)
			}
			return msg, nil
		},
	)
}
