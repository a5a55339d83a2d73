package backends

import (
	"context"
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/bft-labs/spritebench/internal/domain"
	"github.com/bft-labs/spritebench/internal/ports"
)

// RasterBackend draws every sprite onto an RGBA canvas.
type RasterBackend struct {
	width, height int
	sprite        *domain.Sprite
	frames        domain.Frames

	canvas *image.RGBA
	src    *image.RGBA
}

// Raster returns a BackendFactory drawing onto a width x height canvas.
func Raster(width, height int) ports.BackendFactory {
	return func(sprite *domain.Sprite, frames domain.Frames) ports.Backend {
		return &RasterBackend{
			width:  width,
			height: height,
			sprite: sprite,
			frames: frames,
		}
	}
}

// Load allocates the canvas and converts the sprite to RGBA.
func (b *RasterBackend) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.width <= 0 || b.height <= 0 {
		return fmt.Errorf("canvas %dx%d: %w", b.width, b.height, ErrUnsupported)
	}
	w, h := b.sprite.Size()
	if w == 0 || h == 0 {
		return fmt.Errorf("empty sprite: %w", ErrUnsupported)
	}

	b.canvas = image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	b.src = image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(b.src, b.src.Bounds(), b.sprite.Image, b.sprite.Image.Bounds().Min, draw.Src)
	return nil
}

// RenderFrame clears the canvas and draws frame i.
func (b *RasterBackend) RenderFrame(i int) {
	draw.Draw(b.canvas, b.canvas.Bounds(), image.Transparent, image.Point{}, draw.Src)

	sw, sh := b.src.Bounds().Dx(), b.src.Bounds().Dy()
	center := domain.Translate(-float64(sw)/2, -float64(sh)/2)
	for _, t := range b.frames[i] {
		m := t.Mul(center).Matrix
		draw.ApproxBiLinear.Transform(b.canvas, f64.Aff3(m), b.src, b.src.Bounds(), draw.Over, nil)
	}
}

// Canvas returns the canvas of the last rendered frame.
func (b *RasterBackend) Canvas() *image.RGBA {
	return b.canvas
}

// Unload releases the canvas and sprite copy.
func (b *RasterBackend) Unload() {
	b.canvas = nil
	b.src = nil
}
