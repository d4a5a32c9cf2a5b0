package protocol

import "github.com/gear6io/protoreg/pkg/errors"

// Registry and dispatch error codes
var (
	ErrUnregisteredType       = errors.MustNewCode("protocol.unregistered_type")
	ErrUnregisteredIdentifier = errors.MustNewCode("protocol.unregistered_identifier")
	ErrIdentifierOutOfRange   = errors.MustNewCode("protocol.identifier_out_of_range")
	ErrDuplicateIdentifier    = errors.MustNewCode("protocol.duplicate_identifier")
	ErrDuplicateType          = errors.MustNewCode("protocol.duplicate_type")
	ErrInvalidRegistration    = errors.MustNewCode("protocol.invalid_registration")
	ErrBuilderSealed          = errors.MustNewCode("protocol.builder_sealed")
	ErrTypeMismatch           = errors.MustNewCode("protocol.type_mismatch")
	ErrTrailingData           = errors.MustNewCode("protocol.trailing_data")
)
