// Package protocol maps Go message types to numeric protocol identifiers and
// routes buffer encoding and decoding to the codec registered for each one.
//
// A Registry is assembled once through a Builder and is immutable after
// Build. Every message on the wire is a 2-byte identifier followed by the
// payload produced by the registration's Encode function.
package protocol

import (
	"math"
	"reflect"

	"github.com/gear6io/protoreg/pkg/buffer"
	"github.com/gear6io/protoreg/pkg/errors"
)

// ID is a protocol identifier
type ID uint16

// MaxID is the largest identifier accepted by a Builder. Identifiers stay in
// the non-negative range of a signed 16-bit integer so peers that read the
// prefix as a signed short agree on every value.
const MaxID ID = math.MaxInt16

// IdentifierSize is the number of bytes the identifier prefix occupies
const IdentifierSize = 2

// EncodeFunc writes the payload of msg into buf
type EncodeFunc func(buf *buffer.ByteBuffer, msg any) error

// DecodeFunc reads one payload from buf
type DecodeFunc func(buf *buffer.ByteBuffer) (any, error)

// Registration binds a Go message type to its codec
type Registration struct {
	// Name is used for listings and manifests. Defaults to the type name.
	Name   string
	Type   reflect.Type
	Encode EncodeFunc
	Decode DecodeFunc
}

// Named returns a copy of r with Name set
func (r Registration) Named(name string) Registration {
	r.Name = name
	return r
}

func (r Registration) valid() bool {
	return r.Type != nil && r.Encode != nil && r.Decode != nil
}

// Entry is an identifier and its registration, as returned by listings
type Entry struct {
	ID           ID
	Registration Registration
}

// Name returns the registration name
func (e Entry) Name() string {
	return e.Registration.Name
}

// TypeOf returns the reflect.Type for T, including interface and pointer types
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// NewRegistration builds a Registration for T from typed codec functions.
// Encode rejects values whose dynamic type is not T.
func NewRegistration[T any](encode func(*buffer.ByteBuffer, T) error, decode func(*buffer.ByteBuffer) (T, error)) Registration {
	typ := TypeOf[T]()
	reg := Registration{
		Name: typeName(typ),
		Type: typ,
	}
	if encode != nil {
		reg.Encode = func(buf *buffer.ByteBuffer, msg any) error {
			v, ok := msg.(T)
			if !ok {
				return errors.Newf(ErrTypeMismatch, "expected %s, got %T", typ, msg)
			}
			return encode(buf, v)
		}
	}
	if decode != nil {
		reg.Decode = func(buf *buffer.ByteBuffer) (any, error) {
			v, err := decode(buf)
			if err != nil {
				return nil, err
			}
			return v, nil
		}
	}
	return reg
}

func typeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
