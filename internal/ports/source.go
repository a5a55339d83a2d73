package ports

import (
	"context"

	"github.com/bft-labs/spritebench/internal/domain"
)

// Source loads the sprite payload for a test.
type Source interface {
	Load(ctx context.Context) (*domain.Sprite, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (*domain.Sprite, error)

// Load calls f(ctx).
func (f SourceFunc) Load(ctx context.Context) (*domain.Sprite, error) {
	return f(ctx)
}
