package spritebench

import (
	"context"

	"github.com/bft-labs/spritebench/pkg/log"
)

// Plugin extends a Bench with optional behavior.
// Plugins are initialized by Bench.Start in registration order and shut down
// by Bench.Stop in reverse order.
type Plugin interface {
	Name() string
	Initialize(ctx context.Context, cfg PluginConfig) error
	Shutdown(ctx context.Context) error
}

// PluginConfig is handed to plugins on initialization.
type PluginConfig struct {
	Config Config
	Logger log.Logger
}
