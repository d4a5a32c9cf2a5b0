// Package config loads the protoreg YAML configuration and builds the logger
// described by it.
package config

import (
	"encoding/binary"
	"os"
	"strings"

	"github.com/gear6io/protoreg/pkg/buffer"
	"github.com/gear6io/protoreg/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Byte orders accepted in protocol.byte_order
const (
	ByteOrderBig    = "big"
	ByteOrderLittle = "little"
)

// Config is the tool configuration
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Protocol ProtocolConfig `yaml:"protocol"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`      // "json" or "console"
	FilePath   string `yaml:"file_path"`   // Path to log file, empty disables file logging
	Console    bool   `yaml:"console"`     // Whether to log to stderr
	MaxSize    int    `yaml:"max_size"`    // Max file size in MB before rotation
	MaxBackups int    `yaml:"max_backups"` // Rotated files to keep
	MaxAge     int    `yaml:"max_age"`     // Days to keep rotated files, 0 keeps them
	Compress   bool   `yaml:"compress"`    // Gzip rotated files
}

// ProtocolConfig selects how registries and buffers are built
type ProtocolConfig struct {
	// Manifest is a YAML or TOML identifier manifest. Empty means the
	// built-in default assignment.
	Manifest  string `yaml:"manifest"`
	ByteOrder string `yaml:"byte_order"`
}

// LoadDefaultConfig returns a default configuration
func LoadDefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			Console:    true,
			MaxSize:    100,
			MaxBackups: 3,
		},
		Protocol: ProtocolConfig{
			ByteOrder: ByteOrderBig,
		},
	}
}

// LoadConfig loads configuration from a file. Missing keys keep their
// default values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.New(ErrConfigFileReadFailed, "failed to read config file", err).
			AddContext("path", filename)
	}

	config := LoadDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.New(ErrConfigFileParseFailed, "failed to parse config file", err).
			AddContext("path", filename)
	}

	if err := config.Validate(); err != nil {
		return nil, errors.New(ErrConfigValidationFailed, "configuration validation failed", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.New(ErrConfigFileMarshalFailed, "failed to marshal config", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return errors.New(ErrConfigFileWriteFailed, "failed to write config file", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return c.Protocol.Validate()
}

// Validate validates the logging configuration
func (l *LogConfig) Validate() error {
	if _, err := l.level(); err != nil {
		return errors.New(ErrInvalidLogLevel, "invalid log level "+l.Level, err)
	}
	switch l.Format {
	case "", "json", "console":
	default:
		return errors.Newf(ErrInvalidLogFormat, "log format must be json or console, got %q", l.Format)
	}
	if l.MaxSize < 0 || l.MaxBackups < 0 || l.MaxAge < 0 {
		return errors.Newf(ErrInvalidLogRotation, "log rotation limits must not be negative")
	}
	return nil
}

// Validate validates the protocol configuration
func (p *ProtocolConfig) Validate() error {
	_, err := p.Order()
	return err
}

// Order returns the configured byte order, big endian when unset
func (p *ProtocolConfig) Order() (binary.ByteOrder, error) {
	switch strings.ToLower(p.ByteOrder) {
	case "", ByteOrderBig:
		return binary.BigEndian, nil
	case ByteOrderLittle:
		return binary.LittleEndian, nil
	default:
		return nil, errors.Newf(ErrInvalidByteOrder, "byte_order must be %s or %s, got %q",
			ByteOrderBig, ByteOrderLittle, p.ByteOrder)
	}
}

// BufferOptions returns the buffer options implied by the configuration
func (p *ProtocolConfig) BufferOptions() []buffer.Option {
	order, err := p.Order()
	if err != nil {
		order = binary.BigEndian
	}
	return []buffer.Option{buffer.WithByteOrder(order)}
}
