package cli

import (
	"github.com/rs/zerolog"

	"github.com/gear6io/protoreg/config"
	"github.com/gear6io/protoreg/pkg/messages"
	"github.com/gear6io/protoreg/pkg/protocol"
	"github.com/gear6io/protoreg/pkg/protocol/manifest"
)

// BuildRegistry registers the built-in message set, either at the default
// identifiers or at those named by the configured manifest
func BuildRegistry(cfg *config.Config, logger zerolog.Logger) (*protocol.Registry, error) {
	b := protocol.NewBuilder(protocol.WithLogger(logger))

	if cfg.Protocol.Manifest == "" {
		if err := messages.Register(b); err != nil {
			return nil, err
		}
		return b.Build(), nil
	}

	m, err := manifest.Load(cfg.Protocol.Manifest)
	if err != nil {
		return nil, err
	}
	if err := m.Apply(b, messages.Catalog()); err != nil {
		return nil, err
	}
	logger.Info().
		Str("manifest", cfg.Protocol.Manifest).
		Int("protocols", len(m.Protocols)).
		Msg("Applied protocol manifest")
	return b.Build(), nil
}

// activeManifest returns the manifest the registry was built from
func (a *app) activeManifest() (*manifest.Manifest, error) {
	if a.cfg.Protocol.Manifest == "" {
		return messages.DefaultManifest(), nil
	}
	return manifest.Load(a.cfg.Protocol.Manifest)
}
