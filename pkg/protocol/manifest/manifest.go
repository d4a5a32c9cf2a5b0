// Package manifest loads protocol identifier assignments from YAML or TOML
// files and applies them to a protocol.Builder.
//
//	protocols:
//	  - id: 1
//	    name: Ping
//	  - id: 100
//	    name: Message
package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gear6io/protoreg/pkg/errors"
	"github.com/gear6io/protoreg/pkg/protocol"
	"gopkg.in/yaml.v3"
)

// Format is a manifest file format
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Entry assigns an identifier to a named registration
type Entry struct {
	ID   protocol.ID `yaml:"id" toml:"id"`
	Name string      `yaml:"name" toml:"name"`
}

// Manifest is a list of identifier assignments
type Manifest struct {
	Protocols []Entry `yaml:"protocols" toml:"protocols"`
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Newf(ErrUnsupportedFormat, "unsupported manifest extension %q", filepath.Ext(path)).
			AddContext("path", path)
	}
}

// Load reads and validates a manifest file
func Load(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(ErrReadFailed, "failed to read manifest", err).AddContext("path", path)
	}

	m, err := Parse(data, format)
	if err != nil {
		return nil, errors.AsError(err).AddContext("path", path)
	}
	return m, nil
}

// Parse decodes and validates a manifest
func Parse(data []byte, format Format) (*Manifest, error) {
	m := &Manifest{}

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, m); err != nil {
			return nil, errors.New(ErrParseFailed, "failed to parse YAML manifest", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), m); err != nil {
			return nil, errors.New(ErrParseFailed, "failed to parse TOML manifest", err)
		}
	default:
		return nil, errors.Newf(ErrUnsupportedFormat, "unsupported manifest format %q", format)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Marshal encodes the manifest in the given format
func (m *Manifest) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(m)
		if err != nil {
			return nil, errors.New(ErrEncodeFailed, "failed to encode YAML manifest", err)
		}
		return data, nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(m); err != nil {
			return nil, errors.New(ErrEncodeFailed, "failed to encode TOML manifest", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.Newf(ErrUnsupportedFormat, "unsupported manifest format %q", format)
	}
}

// Save writes the manifest to path in the format implied by its extension
func (m *Manifest) Save(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := m.Marshal(format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(ErrWriteFailed, "failed to write manifest", err).AddContext("path", path)
	}
	return nil
}

// Validate checks names are set, identifiers are in range and neither
// identifiers nor names repeat
func (m *Manifest) Validate() error {
	ids := make(map[protocol.ID]string, len(m.Protocols))
	names := make(map[string]protocol.ID, len(m.Protocols))

	for i, e := range m.Protocols {
		if strings.TrimSpace(e.Name) == "" {
			return errors.Newf(ErrEmptyName, "protocol entry %d has no name", i).
				AddContext("id", strconv.Itoa(int(e.ID)))
		}
		if e.ID > protocol.MaxID {
			return errors.Newf(ErrIdentifierOutOfRange, "protocol %s id %d exceeds maximum %d", e.Name, e.ID, protocol.MaxID).
				AddContext("name", e.Name)
		}
		if other, ok := ids[e.ID]; ok {
			return errors.Newf(ErrDuplicateIdentifier, "protocol id %d used by both %s and %s", e.ID, other, e.Name).
				AddContext("id", strconv.Itoa(int(e.ID)))
		}
		if other, ok := names[e.Name]; ok {
			return errors.Newf(ErrDuplicateName, "protocol name %s used by ids %d and %d", e.Name, other, e.ID).
				AddContext("name", e.Name)
		}
		ids[e.ID] = e.Name
		names[e.Name] = e.ID
	}
	return nil
}

// Sorted returns the entries in ascending identifier order
func (m *Manifest) Sorted() []Entry {
	out := append([]Entry(nil), m.Protocols...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Filter returns the entries whose name contains substr, case-insensitively,
// in ascending identifier order
func (m *Manifest) Filter(substr string) []Entry {
	substr = strings.ToLower(substr)
	var out []Entry
	for _, e := range m.Sorted() {
		if strings.Contains(strings.ToLower(e.Name), substr) {
			out = append(out, e)
		}
	}
	return out
}

// Apply registers every entry with the catalog registration of the same
// name. Nothing is registered when a name is missing from the catalog or an
// entry conflicts with the builder.
func (m *Manifest) Apply(b *protocol.Builder, catalog map[string]protocol.Registration) error {
	if err := m.Validate(); err != nil {
		return err
	}

	entries := make([]protocol.Entry, 0, len(m.Protocols))
	for _, e := range m.Sorted() {
		reg, ok := catalog[e.Name]
		if !ok {
			return errors.Newf(ErrUnknownProtocol, "manifest names unknown protocol %s", e.Name).
				AddContext("name", e.Name).
				AddContext("id", strconv.Itoa(int(e.ID)))
		}
		entries = append(entries, protocol.Entry{ID: e.ID, Registration: reg.Named(e.Name)})
	}
	return b.RegisterAll(entries)
}
