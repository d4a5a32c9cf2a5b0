package config

import "github.com/gear6io/protoreg/pkg/errors"

// Config-specific error codes
var (
	ErrConfigFileReadFailed    = errors.MustNewCode("config.file_read_failed")
	ErrConfigFileParseFailed   = errors.MustNewCode("config.file_parse_failed")
	ErrConfigValidationFailed  = errors.MustNewCode("config.validation_failed")
	ErrConfigFileMarshalFailed = errors.MustNewCode("config.file_marshal_failed")
	ErrConfigFileWriteFailed   = errors.MustNewCode("config.file_write_failed")
	ErrInvalidLogLevel         = errors.MustNewCode("config.invalid_log_level")
	ErrInvalidLogFormat        = errors.MustNewCode("config.invalid_log_format")
	ErrInvalidByteOrder        = errors.MustNewCode("config.invalid_byte_order")
	ErrInvalidLogRotation      = errors.MustNewCode("config.invalid_log_rotation")

	// Logging-specific error codes
	ErrLogDirectoryCreationFailed = errors.MustNewCode("config.log_directory_creation_failed")
	ErrLogFileOpenFailed          = errors.MustNewCode("config.log_file_open_failed")
)
