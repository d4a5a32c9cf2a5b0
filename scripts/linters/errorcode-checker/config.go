package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gear6io/protoreg/pkg/errors"
)

var (
	ErrConfigReadFailed  = errors.MustNewCode("codecheck.config_read_failed")
	ErrConfigParseFailed = errors.MustNewCode("codecheck.config_parse_failed")
	ErrParseFailed       = errors.MustNewCode("codecheck.parse_failed")
)

// Config represents the checker configuration
type Config struct {
	ExcludePaths    []string `yaml:"exclude_paths"`
	ForbiddenCalls  []string `yaml:"forbidden_calls"`
	IncludeTests    bool     `yaml:"include_tests"`
	ExitOnUnused    bool     `yaml:"exit_on_unused"`
	ExitOnForbidden bool     `yaml:"exit_on_forbidden"`
	Verbose         bool     `yaml:"verbose"`
}

// defaultConfig checks library code for fmt.Errorf and reports unused codes
func defaultConfig() *Config {
	return &Config{
		ExcludePaths:    []string{"_examples/", "scripts/", "pkg/errors/", "testdata/", "vendor/", ".git/"},
		ForbiddenCalls:  []string{"fmt.Errorf"},
		ExitOnUnused:    false,
		ExitOnForbidden: true,
	}
}

// loadConfig overlays the YAML file at path on the defaults. An empty path
// returns the defaults.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(ErrConfigReadFailed, "failed to read config file", err).AddContext("path", path)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.New(ErrConfigParseFailed, "failed to parse config file", err).AddContext("path", path)
	}
	return config, nil
}
