package manifest

import "github.com/gear6io/protoreg/pkg/errors"

var (
	ErrUnknownProtocol      = errors.MustNewCode("manifest.unknown_protocol")
	ErrDuplicateIdentifier  = errors.MustNewCode("manifest.duplicate_identifier")
	ErrDuplicateName        = errors.MustNewCode("manifest.duplicate_name")
	ErrIdentifierOutOfRange = errors.MustNewCode("manifest.identifier_out_of_range")
	ErrEmptyName            = errors.MustNewCode("manifest.empty_name")
	ErrUnsupportedFormat    = errors.MustNewCode("manifest.unsupported_format")
	ErrReadFailed           = errors.MustNewCode("manifest.read_failed")
	ErrParseFailed          = errors.MustNewCode("manifest.parse_failed")
	ErrEncodeFailed         = errors.MustNewCode("manifest.encode_failed")
	ErrWriteFailed          = errors.MustNewCode("manifest.write_failed")
)
