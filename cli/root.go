// Package cli implements the protoreg command line: listing registrations,
// checking manifests and encoding or decoding messages by hand.
package cli

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gear6io/protoreg/config"
	"github.com/gear6io/protoreg/pkg/protocol"
)

// app carries state resolved once per invocation by the root command
type app struct {
	configPath string
	manifest   string
	byteOrder  string
	verbose    bool

	cfg      *config.Config
	logger   zerolog.Logger
	closer   io.Closer
	registry *protocol.Registry
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "protoreg",
		Short: "Inspect and exercise protocol registries",
		Long: `protoreg builds a protocol registry from the built-in message set and an
optional identifier manifest, then lets you list it, validate manifests and
encode or decode individual messages.

Examples:
  protoreg list
  protoreg ids --manifest protocols.yaml
  protoreg encode Message --json '{"code":1,"text":"ok"}'
  protoreg decode 0001`,
		Version:           "0.1.0",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	flags.StringVarP(&a.manifest, "manifest", "m", "", "identifier manifest (.yaml, .yml or .toml), overrides the config")
	flags.StringVar(&a.byteOrder, "byte-order", "", "byte order for encoding: big or little, overrides the config")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newListCommand(a),
		newIDsCommand(a),
		newEncodeCommand(a),
		newDecodeCommand(a),
	)
	return rootCmd
}

// ExecuteWithContext runs the root command with ctx
func ExecuteWithContext(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.LoadDefaultConfig()
	if a.configPath != "" {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.manifest != "" {
		cfg.Protocol.Manifest = a.manifest
	}
	if a.byteOrder != "" {
		cfg.Protocol.ByteOrder = a.byteOrder
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := config.SetupLogger(cfg)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.closer = closer

	registry, err := BuildRegistry(cfg, logger)
	if err != nil {
		return err
	}
	a.registry = registry

	a.logger.Debug().
		Str("cmd", cmd.Name()).
		Int("protocols", registry.Len()).
		Str("manifest", cfg.Protocol.Manifest).
		Msg("Registry ready")
	return nil
}
