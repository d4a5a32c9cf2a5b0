package buffer

import "github.com/gear6io/protoreg/pkg/errors"

var (
	ErrInsufficientData = errors.MustNewCode("buffer.insufficient_data")
	ErrNegativeLength   = errors.MustNewCode("buffer.negative_length")
	ErrInvalidBool      = errors.MustNewCode("buffer.invalid_bool")
)
