// Package spritebench measures how many animated sprites a render backend
// can draw while sustaining a target frame rate.
//
// A Bench holds a registry of sprite sources, render backends and frame
// generators. Every (source, backend, generator) combination is one test.
// A test loads the sprite, builds a fixed-length frame set and searches for
// the object count at which the backend reaches the target frame rate: it
// steps through object counts coarse to fine, then interpolates linearly
// between the closest measurements on either side of the target.
//
// # Basic Usage
//
//	bench, err := spritebench.New(spritebench.Config{TargetFPS: 60},
//	    spritebench.WithBuiltins(spritebench.BuiltinConfig{}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	outcomes, err := bench.Run(ctx, spritebench.Selection{
//	    Backends: []string{"raster"},
//	})
//
// Individual tests are also reachable through [Bench.Tests]:
//
//	res, err := bench.Tests()["checker"]["raster"]["rotate"](ctx)
//
// # Configuration
//
// Zero fields of [Config] take defaults: 30 fps target, 100 frames, 1000
// iterations per measurement, steps [1, 5, 25], 500 probes, and a ceiling of
// 10000 objects.
//
// # Custom Components
//
// Register additional components with [WithSource], [WithBackend] and
// [WithGenerator]. A backend is built fresh for every measurement, loaded,
// rendered for the configured number of iterations and unloaded exactly once.
//
// # Errors
//
// Test failures are reported through errors that can be matched with
// errors.Is: [ErrLoad] for a source or backend that fails to initialize,
// [ErrBracketing] when the measurements never straddle the target,
// [ErrBudgetExceeded] when the probe or time budget runs out and
// [ErrInvalidScore] for unusable frame-rate scores.
//
// # Event Handling
//
// Implement [EventHandler] and pass it via [WithEventHandler] to observe
// every measurement and the end of every search. Events are called
// synchronously from the search loop. A handler that also implements
// lifecycle.EventEmitter is told about every Start and Stop transition.
//
// # Plugins
//
//	import "github.com/bft-labs/spritebench/plugins/resourcegating"
//
//	bench, err := spritebench.New(cfg,
//	    spritebench.WithBuiltins(spritebench.BuiltinConfig{}),
//	    resourcegating.WithResourceGating(resourcegating.DefaultConfig()),
//	)
//	if err := bench.Start(ctx); err != nil { ... }
//	defer bench.Stop(ctx)
package spritebench
