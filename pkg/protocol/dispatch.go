package protocol

import (
	"github.com/gear6io/protoreg/pkg/buffer"
	"github.com/gear6io/protoreg/pkg/errors"
)

// Write encodes msg as its 2-byte identifier followed by its payload.
// Nothing is written when the type of msg is not registered. Encoder
// failures are returned as-is.
func (r *Registry) Write(buf *buffer.ByteBuffer, msg any) error {
	id, err := r.IdentifierOf(msg)
	if err != nil {
		r.logger.Debug().Err(err).Msg("Write rejected")
		return err
	}

	buf.WriteUint16(uint16(id))
	return r.table[id].Encode(buf, msg)
}

// Read decodes one message. An unknown identifier is reported after its two
// bytes have been consumed; a short buffer leaves the read cursor untouched.
// Decoder failures are returned as-is.
func (r *Registry) Read(buf *buffer.ByteBuffer) (any, error) {
	raw, err := buf.ReadUint16()
	if err != nil {
		return nil, err
	}

	reg, err := r.RegistrationFor(ID(raw))
	if err != nil {
		r.logger.Debug().Err(err).Uint16("id", raw).Msg("Read rejected")
		return nil, err
	}
	return reg.Decode(buf)
}

// ReadAs reads one message and asserts it is a T
func ReadAs[T any](r *Registry, buf *buffer.ByteBuffer) (T, error) {
	var zero T
	msg, err := r.Read(buf)
	if err != nil {
		return zero, err
	}
	v, ok := msg.(T)
	if !ok {
		return zero, errors.Newf(ErrTypeMismatch, "expected %s, got %T", TypeOf[T](), msg)
	}
	return v, nil
}

// Marshal writes msg into a fresh buffer and returns its bytes
func (r *Registry) Marshal(msg any, opts ...buffer.Option) ([]byte, error) {
	buf := buffer.New(opts...)
	if err := r.Write(buf, msg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes exactly one message from data. Trailing bytes are rejected.
func (r *Registry) Unmarshal(data []byte, opts ...buffer.Option) (any, error) {
	buf := buffer.NewFromBytes(data, opts...)
	msg, err := r.Read(buf)
	if err != nil {
		return nil, err
	}
	if buf.Len() > 0 {
		return nil, errors.Newf(ErrTrailingData, "%d unread bytes after message", buf.Len())
	}
	return msg, nil
}
