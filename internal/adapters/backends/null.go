package backends

import (
	"context"

	"github.com/bft-labs/spritebench/internal/domain"
	"github.com/bft-labs/spritebench/internal/ports"
)

// NullBackend renders nothing.
type NullBackend struct {
	frames domain.Frames
}

// Null is the BackendFactory for NullBackend.
func Null(_ *domain.Sprite, frames domain.Frames) ports.Backend {
	return &NullBackend{frames: frames}
}

func (b *NullBackend) Load(ctx context.Context) error { return ctx.Err() }
func (b *NullBackend) RenderFrame(int)                {}
func (b *NullBackend) Unload()                        { b.frames = nil }
