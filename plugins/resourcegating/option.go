package resourcegating

import "github.com/bft-labs/spritebench/pkg/spritebench"

// WithResourceGating returns a spritebench Option that registers the plugin
// and installs it as the probe gate.
//
// Usage:
//
//	bench, err := spritebench.New(cfg,
//	    resourcegating.WithResourceGating(resourcegating.Config{
//	        CPUThreshold: 0.75,
//	    }),
//	)
func WithResourceGating(cfg Config) spritebench.Option {
	p := New(cfg)
	return spritebench.Options(
		spritebench.WithPlugin(p),
		spritebench.WithProbeGate(p),
	)
}

// WithDefaultResourceGating enables resource gating with default settings.
func WithDefaultResourceGating() spritebench.Option {
	return WithResourceGating(DefaultConfig())
}
