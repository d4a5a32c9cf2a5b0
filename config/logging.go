package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gear6io/protoreg/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

func (l *LogConfig) level() (zerolog.Level, error) {
	if l.Level == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(l.Level)
}

// SetupLogger creates a zerolog logger from the configuration. Console
// output goes to stderr so command output on stdout stays clean. The
// returned closer releases the log file, if any.
func SetupLogger(cfg *Config) (zerolog.Logger, io.Closer, error) {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg *Config, console io.Writer) (zerolog.Logger, io.Closer, error) {
	level, err := cfg.Log.level()
	if err != nil {
		return zerolog.Nop(), nopCloser{}, errors.New(ErrInvalidLogLevel, "invalid log level "+cfg.Log.Level, err)
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if cfg.Log.Console {
		if cfg.Log.Format == "json" {
			writers = append(writers, console)
		} else {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:        console,
				TimeFormat: time.RFC3339,
			})
		}
	}

	if cfg.Log.FilePath != "" {
		file, err := openLogFile(&cfg.Log)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, err
		}
		writers = append(writers, file)
		closer = file
	}

	var out io.Writer
	switch len(writers) {
	case 0:
		return zerolog.Nop(), closer, nil
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("component", "protoreg").
		Logger()
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openLogFile returns a size-rotated writer for the log file. The file is
// opened up front so a bad path fails here instead of on the first write.
func openLogFile(cfg *LogConfig) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, errors.New(ErrLogDirectoryCreationFailed, "failed to create log directory", err)
	}

	file := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
	if _, err := file.Write(nil); err != nil {
		return nil, errors.New(ErrLogFileOpenFailed, "failed to open log file", err).
			AddContext("path", cfg.FilePath)
	}
	return file, nil
}
