package messages

import (
	"github.com/gear6io/protoreg/pkg/buffer"
	"github.com/gear6io/protoreg/pkg/protocol"
	"github.com/google/uuid"
)

// SessionOpen announces a new session for a user
type SessionOpen struct {
	SessionID uuid.UUID
	User      string
}

// NewSessionOpen creates a SessionOpen with a random session id
func NewSessionOpen(user string) SessionOpen {
	return SessionOpen{
		SessionID: uuid.New(),
		User:      user,
	}
}

// SessionOpenRegistration writes the 16 byte session id then the user name
var SessionOpenRegistration = protocol.NewRegistration(
	func(buf *buffer.ByteBuffer, s SessionOpen) error {
		buf.WriteRaw(s.SessionID[:])
		buf.WriteString(s.User)
		return nil
	},
	func(buf *buffer.ByteBuffer) (SessionOpen, error) {
		raw, err := buf.ReadRaw(16)
		if err != nil {
			return SessionOpen{}, err
		}
		id, err := uuid.FromBytes(raw)
		if err != nil {
			return SessionOpen{}, err
		}
		user, err := buf.ReadString()
		if err != nil {
			return SessionOpen{}, err
		}
		return SessionOpen{SessionID: id, User: user}, nil
	},
).Named("SessionOpen")
