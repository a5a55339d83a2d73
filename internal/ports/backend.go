package ports

import (
	"context"

	"github.com/bft-labs/spritebench/internal/domain"
)

// Backend renders animation frames for a fixed object set.
// A Backend is exclusively owned by one measurement loop run.
type Backend interface {
	// Load acquires the resources needed for rendering.
	Load(ctx context.Context) error

	// RenderFrame renders frame i of the frame set the backend was built with.
	RenderFrame(i int)

	// Unload releases every resource acquired by the backend, including
	// partially acquired ones after a failed Load.
	Unload()
}

// BackendFactory constructs a backend for one sprite and one frame set view.
type BackendFactory func(sprite *domain.Sprite, frames domain.Frames) Backend
