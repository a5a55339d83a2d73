// Package spritebench measures how many animated sprites a renderer can draw
// while holding a target frame rate.
//
// Example usage:
//
//	cfg := spritebench.DefaultConfig()
//	cfg.TargetFPS = 60
//	outcomes, err := spritebench.Run(ctx, cfg, spritebench.BuiltinConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, o := range outcomes {
//	    fmt.Println(o.TestKey, o.Result.ObjectCount, o.Err)
//	}
//
// For custom sources, backends or generators use the pkg/spritebench package
// directly.
package spritebench

import (
	"context"

	"github.com/bft-labs/spritebench/pkg/spritebench"
)

// Config holds the parameters shared by every test.
type Config = spritebench.Config

// BuiltinConfig selects the canvas size and optional sprite file of the
// built-in components.
type BuiltinConfig = spritebench.BuiltinConfig

// Outcome is the result of one source/backend/generator test.
type Outcome = spritebench.Outcome

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	var cfg Config
	cfg.SetDefaults()
	return cfg
}

// Run benchmarks every combination of the built-in components. It blocks
// until all tests finish or ctx is cancelled.
func Run(ctx context.Context, cfg Config, builtins BuiltinConfig) ([]Outcome, error) {
	b, err := spritebench.New(cfg, spritebench.WithBuiltins(builtins))
	if err != nil {
		return nil, err
	}
	if err := b.Start(ctx); err != nil {
		return nil, err
	}
	defer b.Stop(context.WithoutCancel(ctx))

	return b.Run(ctx, spritebench.Selection{})
}
