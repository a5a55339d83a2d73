package configwatcher

import "github.com/bft-labs/spritebench/pkg/spritebench"

// WithConfigWatcher returns a spritebench Option that registers a config
// watcher plugin. The watcher starts with Bench.Start.
//
// Usage:
//
//	bench, err := spritebench.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.Config{
//	        Path:     "/home/me/.spritebench/config.toml",
//	        OnChange: func(ctx context.Context) { rerun <- struct{}{} },
//	    }),
//	)
func WithConfigWatcher(cfg Config) spritebench.Option {
	return spritebench.WithPlugin(New(cfg))
}
