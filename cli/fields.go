package cli

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/tidwall/gjson"

	"github.com/gear6io/protoreg/pkg/errors"
	"github.com/gear6io/protoreg/pkg/messages"
	"github.com/gear6io/protoreg/utils"
)

// builders turn a JSON document into a built-in message, keyed by
// registration name. Missing identifiers are generated.
var builders = map[string]func(doc gjson.Result) (any, error){
	"Ping": func(gjson.Result) (any, error) {
		return messages.Ping{}, nil
	},
	"Pong": func(doc gjson.Result) (any, error) {
		return messages.Pong{Timestamp: doc.Get("timestamp").Int()}, nil
	},
	"SessionOpen": func(doc gjson.Result) (any, error) {
		id := uuid.New()
		if raw := doc.Get("session_id"); raw.Exists() {
			parsed, err := uuid.Parse(raw.String())
			if err != nil {
				return nil, errors.New(ErrInvalidField, "invalid session_id", err)
			}
			id = parsed
		}
		return messages.SessionOpen{SessionID: id, User: doc.Get("user").String()}, nil
	},
	"Request": func(doc gjson.Result) (any, error) {
		id, err := ulidField(doc, "id")
		if err != nil {
			return nil, err
		}
		return messages.Request{
			ID:    id,
			Route: doc.Get("route").String(),
			Body:  []byte(doc.Get("body").String()),
		}, nil
	},
	"Response": func(doc gjson.Result) (any, error) {
		id, err := ulidField(doc, "request_id")
		if err != nil {
			return nil, err
		}
		return messages.Response{
			RequestID: id,
			Status:    messageFrom(doc.Get("status")),
			Body:      []byte(doc.Get("body").String()),
		}, nil
	},
	"Message": func(doc gjson.Result) (any, error) {
		return messageFrom(doc), nil
	},
}

func messageFrom(doc gjson.Result) messages.Message {
	return messages.Message{
		Code: int32(doc.Get("code").Int()),
		Text: doc.Get("text").String(),
	}
}

func ulidField(doc gjson.Result, field string) (ulid.ULID, error) {
	raw := doc.Get(field)
	if !raw.Exists() {
		return utils.GenerateULID(), nil
	}
	id, err := utils.ParseULID(raw.String())
	if err != nil {
		return ulid.ULID{}, errors.New(ErrInvalidField, "invalid "+field, err)
	}
	return id, nil
}

// buildMessage parses doc into the built-in message called name
func buildMessage(name, doc string) (any, error) {
	build, ok := builders[name]
	if !ok {
		return nil, errors.Newf(ErrUnknownMessage, "no built-in message named %s", name)
	}
	if doc == "" {
		doc = "{}"
	}
	if !gjson.Valid(doc) {
		return nil, errors.Newf(ErrInvalidJSON, "invalid JSON for %s", name)
	}
	return build(gjson.Parse(doc))
}
