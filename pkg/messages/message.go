package messages

import (
	"github.com/gear6io/protoreg/pkg/buffer"
	"github.com/gear6io/protoreg/pkg/protocol"
)

// Status codes carried by Message
const (
	CodeFail    int32 = 0
	CodeSuccess int32 = 1
	CodeInfo    int32 = 2
	CodeWarn    int32 = 3
)

// Message is a generic status notice
type Message struct {
	Code int32
	Text string
}

// Success creates a success message
func Success(text string) Message {
	return Message{Code: CodeSuccess, Text: text}
}

// Fail creates a failure message
func Fail(text string) Message {
	return Message{Code: CodeFail, Text: text}
}

// Info creates an informational message
func Info(text string) Message {
	return Message{Code: CodeInfo, Text: text}
}

// Warn creates a warning message
func Warn(text string) Message {
	return Message{Code: CodeWarn, Text: text}
}

// Success reports whether the message carries CodeSuccess
func (m Message) Success() bool {
	return m.Code == CodeSuccess
}

// Failed reports whether the message carries CodeFail
func (m Message) Failed() bool {
	return m.Code == CodeFail
}

func writeMessage(buf *buffer.ByteBuffer, m Message) error {
	buf.WriteInt32(m.Code)
	buf.WriteString(m.Text)
	return nil
}

func readMessage(buf *buffer.ByteBuffer) (Message, error) {
	code, err := buf.ReadInt32()
	if err != nil {
		return Message{}, err
	}
	text, err := buf.ReadString()
	if err != nil {
		return Message{}, err
	}
	return Message{Code: code, Text: text}, nil
}

// MessageRegistration writes the code then the text
var MessageRegistration = protocol.NewRegistration(writeMessage, readMessage).Named("Message")
