package messages

import (
	"github.com/gear6io/protoreg/pkg/buffer"
	"github.com/gear6io/protoreg/pkg/protocol"
	"github.com/gear6io/protoreg/utils"
	"github.com/oklog/ulid/v2"
)

// Request carries an opaque body to a named route
type Request struct {
	ID    ulid.ULID
	Route string
	Body  []byte
}

// Response answers the Request with the same ID
type Response struct {
	RequestID ulid.ULID
	Status    Message
	Body      []byte
}

// NewRequest creates a request with a fresh ULID
func NewRequest(route string, body []byte) Request {
	return Request{
		ID:    utils.GenerateULID(),
		Route: route,
		Body:  body,
	}
}

// Reply builds the response to r
func (r Request) Reply(status Message, body []byte) Response {
	return Response{
		RequestID: r.ID,
		Status:    status,
		Body:      body,
	}
}

func readULID(buf *buffer.ByteBuffer) (ulid.ULID, error) {
	raw, err := buf.ReadRaw(len(ulid.ULID{}))
	if err != nil {
		return ulid.ULID{}, err
	}
	return utils.ULIDFromBytes(raw)
}

// RequestRegistration writes the 16 byte ULID, the route and the body
var RequestRegistration = protocol.NewRegistration(
	func(buf *buffer.ByteBuffer, r Request) error {
		buf.WriteRaw(r.ID[:])
		buf.WriteString(r.Route)
		buf.WriteBytes(r.Body)
		return nil
	},
	func(buf *buffer.ByteBuffer) (Request, error) {
		var r Request
		var err error
		if r.ID, err = readULID(buf); err != nil {
			return Request{}, err
		}
		if r.Route, err = buf.ReadString(); err != nil {
			return Request{}, err
		}
		if r.Body, err = buf.ReadBytes(); err != nil {
			return Request{}, err
		}
		return r, nil
	},
).Named("Request")

// ResponseRegistration writes the request id, the status message inline and the body
var ResponseRegistration = protocol.NewRegistration(
	func(buf *buffer.ByteBuffer, r Response) error {
		buf.WriteRaw(r.RequestID[:])
		if err := writeMessage(buf, r.Status); err != nil {
			return err
		}
		buf.WriteBytes(r.Body)
		return nil
	},
	func(buf *buffer.ByteBuffer) (Response, error) {
		var r Response
		var err error
		if r.RequestID, err = readULID(buf); err != nil {
			return Response{}, err
		}
		if r.Status, err = readMessage(buf); err != nil {
			return Response{}, err
		}
		if r.Body, err = buf.ReadBytes(); err != nil {
			return Response{}, err
		}
		return r, nil
	},
).Named("Response")
