package codec

import (
	"github.com/go-faster/errors"
	"github.com/hamba/avro/v2"

	"github.com/gear6io/protoreg/pkg/protocol"
)

type avroSerializer struct {
	schema avro.Schema
}

func (avroSerializer) Name() string { return "avro" }

func (s avroSerializer) Marshal(v any) ([]byte, error) {
	return avro.Marshal(s.schema, v)
}

func (s avroSerializer) Unmarshal(data []byte, v any) error {
	return avro.Unmarshal(s.schema, data, v)
}

// Avro encodes T with the given Avro schema. Struct fields are matched to
// schema fields by their `avro` tags.
func Avro[T any](schema string) (protocol.Registration, error) {
	parsed, err := avro.Parse(schema)
	if err != nil {
		return protocol.Registration{}, errors.Wrap(err, "parse avro schema")
	}
	return For[T](avroSerializer{schema: parsed}), nil
}

// MustAvro is like Avro but panics on an invalid schema
func MustAvro[T any](schema string) protocol.Registration {
	reg, err := Avro[T](schema)
	if err != nil {
		panic(err)
	}
	return reg
}
