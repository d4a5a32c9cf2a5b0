package messages

import (
	"time"

	"github.com/gear6io/protoreg/pkg/buffer"
	"github.com/gear6io/protoreg/pkg/protocol"
)

// Ping is a liveness probe with an empty payload
type Ping struct{}

// Pong answers a Ping with the responder's clock
type Pong struct {
	// Timestamp is unix milliseconds
	Timestamp int64
}

// NewPong creates a pong stamped with t
func NewPong(t time.Time) Pong {
	return Pong{Timestamp: t.UnixMilli()}
}

// Time returns the timestamp as a time.Time
func (p Pong) Time() time.Time {
	return time.UnixMilli(p.Timestamp)
}

// PingRegistration encodes Ping as zero bytes
var PingRegistration = protocol.NewRegistration(
	func(*buffer.ByteBuffer, Ping) error { return nil },
	func(*buffer.ByteBuffer) (Ping, error) { return Ping{}, nil },
).Named("Ping")

// PongRegistration encodes the timestamp as 8 bytes
var PongRegistration = protocol.NewRegistration(
	func(buf *buffer.ByteBuffer, p Pong) error {
		buf.WriteInt64(p.Timestamp)
		return nil
	},
	func(buf *buffer.ByteBuffer) (Pong, error) {
		ts, err := buf.ReadInt64()
		if err != nil {
			return Pong{}, err
		}
		return Pong{Timestamp: ts}, nil
	},
).Named("Pong")
