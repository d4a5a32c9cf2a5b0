package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gear6io/protoreg/config"
	"github.com/gear6io/protoreg/pkg/buffer"
	"github.com/gear6io/protoreg/pkg/errors"
	"github.com/gear6io/protoreg/pkg/messages"
	"github.com/gear6io/protoreg/pkg/protocol"
	"github.com/gear6io/protoreg/pkg/protocol/manifest"
)

func init() {
	pterm.DisableStyling()
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "protocols.toml")
	content := `
[[protocols]]
id = 7
name = "Ping"

[[protocols]]
id = 100
name = "Message"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestList(t *testing.T) {
	out, _, err := run(t, "list")
	require.NoError(t, err)

	for _, name := range []string{"Ping", "Pong", "SessionOpen", "Request", "Response", "Message"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "messages.SessionOpen")
	assert.Less(t, strings.Index(out, "Ping"), strings.Index(out, "Message"))
}

func TestListFilter(t *testing.T) {
	out, _, err := run(t, "list", "--filter", "sess")
	require.NoError(t, err)
	assert.Contains(t, out, "SessionOpen")
	assert.NotContains(t, out, "Pong")

	out, _, err = run(t, "list", "--filter", "nothing-matches")
	require.NoError(t, err)
	assert.Contains(t, out, "no protocols")
}

func TestListWithManifest(t *testing.T) {
	out, _, err := run(t, "list", "--manifest", writeManifest(t))
	require.NoError(t, err)
	assert.Contains(t, out, "7")
	assert.Contains(t, out, "Ping")
	assert.NotContains(t, out, "Pong")
}

func TestIDs(t *testing.T) {
	out, stderr, err := run(t, "ids", "--manifest", writeManifest(t), "--output", "yaml")
	require.NoError(t, err)

	m, err := manifest.Parse([]byte(out), manifest.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []manifest.Entry{{ID: 7, Name: "Ping"}, {ID: 100, Name: "Message"}}, m.Protocols)
	assert.Contains(t, stderr, "unbound built-in messages: Pong, Request, Response, SessionOpen")
}

func TestIDsDefaultTable(t *testing.T) {
	out, stderr, err := run(t, "ids")
	require.NoError(t, err)
	assert.Contains(t, out, "SessionOpen")
	assert.Empty(t, stderr)

	_, _, err = run(t, "ids", "--output", "xml")
	assert.True(t, errors.HasCode(err, ErrUnsupportedOutput))
}

func TestEncodePing(t *testing.T) {
	out, _, err := run(t, "encode", "Ping")
	require.NoError(t, err)
	assert.Equal(t, "0001\n", out)

	out, _, err = run(t, "encode", "Ping", "--byte-order", "little")
	require.NoError(t, err)
	assert.Equal(t, "0100\n", out)
}

func TestEncodeMessage(t *testing.T) {
	out, _, err := run(t, "encode", "Message", "--json", `{"code":1,"text":"ok"}`)
	require.NoError(t, err)
	assert.Equal(t, "0064"+"00000001"+"00000002"+"6f6b"+"\n", out)
}

func TestEncodePacketWithAttachment(t *testing.T) {
	out, _, err := run(t, "encode", "Ping", "--attach", "Message", "--attach-json", `{"code":3}`)
	require.NoError(t, err)
	assert.Equal(t, "0001"+"01"+"0064"+"00000003"+"00000000"+"\n", out)

	out, _, err = run(t, "encode", "Ping", "--packet")
	require.NoError(t, err)
	assert.Equal(t, "000100\n", out)
}

func TestEncodeFailures(t *testing.T) {
	_, _, err := run(t, "encode", "Teleport")
	assert.True(t, errors.HasCode(err, ErrUnknownMessage))

	_, _, err = run(t, "encode", "Message", "--json", "{")
	assert.True(t, errors.HasCode(err, ErrInvalidJSON))

	_, _, err = run(t, "encode", "SessionOpen", "--json", `{"session_id":"nope"}`)
	assert.True(t, errors.HasCode(err, ErrInvalidField))

	_, _, err = run(t, "encode", "Request", "--json", `{"id":"nope"}`)
	assert.True(t, errors.HasCode(err, ErrInvalidField))

	_, _, err = run(t, "encode", "Pong", "--manifest", writeManifest(t))
	assert.True(t, errors.HasCode(err, protocol.ErrUnregisteredType))
}

func TestDecode(t *testing.T) {
	out, _, err := run(t, "decode", "0064 00000001 00000002 6f6b")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":100,"name":"Message","message":{"Code":1,"Text":"ok"}}`, out)
}

func TestDecodePacket(t *testing.T) {
	out, _, err := run(t, "decode", "00010100640000000300000000", "--packet")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"packet": {"id":1,"name":"Ping","message":{}},
		"attachment": {"id":100,"name":"Message","message":{"Code":3,"Text":""}}
	}`, out)
}

func TestDecodeFailures(t *testing.T) {
	_, _, err := run(t, "decode", "7fff")
	assert.True(t, errors.HasCode(err, protocol.ErrUnregisteredIdentifier))

	_, _, err = run(t, "decode", "00")
	assert.True(t, errors.HasCode(err, buffer.ErrInsufficientData))

	_, _, err = run(t, "decode", "000100")
	assert.True(t, errors.HasCode(err, protocol.ErrTrailingData))

	_, _, err = run(t, "decode", "zz")
	assert.True(t, errors.HasCode(err, ErrInvalidHex))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, name := range []string{"Pong", "SessionOpen", "Request", "Response"} {
		t.Run(name, func(t *testing.T) {
			encoded, _, err := run(t, "encode", name, "--json", `{"timestamp":5,"user":"bob","route":"/r","status":{"code":1}}`)
			require.NoError(t, err)

			out, _, err := run(t, "decode", strings.TrimSpace(encoded))
			require.NoError(t, err)
			assert.Contains(t, out, `"name": "`+name+`"`)
		})
	}
}

func TestBadConfig(t *testing.T) {
	_, _, err := run(t, "list", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.HasCode(err, config.ErrConfigFileReadFailed))

	_, _, err = run(t, "list", "--byte-order", "middle")
	assert.True(t, errors.HasCode(err, config.ErrInvalidByteOrder))
}

func TestBuildRegistry(t *testing.T) {
	cfg := config.LoadDefaultConfig()
	registry, err := BuildRegistry(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, len(messages.Catalog()), registry.Len())

	cfg.Protocol.Manifest = writeManifest(t)
	registry, err = BuildRegistry(cfg, zerolog.Nop())
	require.NoError(t, err)
	id, err := registry.IdentifierOf(messages.Ping{})
	require.NoError(t, err)
	assert.Equal(t, protocol.ID(7), id)
}
