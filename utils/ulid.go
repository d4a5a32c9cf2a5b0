// Package utils holds identifier helpers shared by the message set and the CLI.
package utils

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/gear6io/protoreg/pkg/errors"
	"github.com/oklog/ulid/v2"
)

// ErrInvalidULID is returned when a ULID cannot be parsed or decoded
var ErrInvalidULID = errors.MustNewCode("utils.invalid_ulid")

var (
	entropyLock sync.Mutex
	entropy     = ulid.Monotonic(rand.Reader, 0)
)

// GenerateULID returns a ULID for the current time. IDs generated within the
// same millisecond are strictly increasing.
func GenerateULID() ulid.ULID {
	return GenerateULIDWithTime(time.Now())
}

// GenerateULIDString returns GenerateULID in its canonical text form
func GenerateULIDString() string {
	return GenerateULID().String()
}

// GenerateULIDWithTime returns a ULID whose timestamp component is t
func GenerateULIDWithTime(t time.Time) ulid.ULID {
	entropyLock.Lock()
	defer entropyLock.Unlock()

	return ulid.MustNew(ulid.Timestamp(t), entropy)
}

// ParseULID parses the canonical 26 character form
func ParseULID(s string) (ulid.ULID, error) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return ulid.ULID{}, errors.New(ErrInvalidULID, "invalid ULID "+s, err)
	}
	return id, nil
}

// MustParseULID parses a ULID string, panics on error
func MustParseULID(s string) ulid.ULID {
	return ulid.MustParseStrict(s)
}

// ULIDFromBytes decodes the 16 byte binary form
func ULIDFromBytes(p []byte) (ulid.ULID, error) {
	var id ulid.ULID
	if err := id.UnmarshalBinary(p); err != nil {
		return ulid.ULID{}, errors.New(ErrInvalidULID, "invalid ULID bytes", err)
	}
	return id, nil
}
