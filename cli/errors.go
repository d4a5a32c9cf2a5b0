package cli

import "github.com/gear6io/protoreg/pkg/errors"

var (
	ErrUnsupportedOutput = errors.MustNewCode("cli.unsupported_output")
	ErrUnknownMessage    = errors.MustNewCode("cli.unknown_message")
	ErrInvalidJSON       = errors.MustNewCode("cli.invalid_json")
	ErrInvalidField      = errors.MustNewCode("cli.invalid_field")
	ErrInvalidHex        = errors.MustNewCode("cli.invalid_hex")
)
