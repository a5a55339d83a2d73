package backends

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/spritebench/internal/domain"
)

func solidSprite(w, h int) *domain.Sprite {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	return &domain.Sprite{Name: "solid", Image: img}
}

func frames(objects ...domain.Transform) domain.Frames {
	return domain.Frames{domain.Frame(objects)}
}

func TestBuiltin(t *testing.T) {
	got := Builtin(64, 64)
	assert.Len(t, got, 3)
	for _, name := range []string{NameNull, NameMatrix, NameRaster} {
		assert.Contains(t, got, name)
	}
}

func TestNullBackend(t *testing.T) {
	b := Null(nil, frames(domain.Identity()))
	require.NoError(t, b.Load(context.Background()))
	b.RenderFrame(0)
	b.Unload()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Null(nil, nil).Load(ctx), context.Canceled)
}

func TestMatrixBackend(t *testing.T) {
	t.Run("bounds and visibility", func(t *testing.T) {
		b := Matrix(100, 100)(solidSprite(10, 20), frames(
			domain.Translate(50, 50),
			domain.Translate(500, 500),
		)).(*MatrixBackend)
		require.NoError(t, b.Load(context.Background()))
		defer b.Unload()

		b.RenderFrame(0)
		assert.Equal(t, Bounds{MinX: 45, MinY: 40, MaxX: 55, MaxY: 60}, b.bounds[0])
		assert.Equal(t, 1, b.Visible())
	})

	t.Run("rotation swaps extents", func(t *testing.T) {
		b := Matrix(100, 100)(solidSprite(10, 20), frames(
			domain.Translate(50, 50).Mul(domain.Rotate(90*3.141592653589793/180)),
		)).(*MatrixBackend)
		require.NoError(t, b.Load(context.Background()))
		defer b.Unload()

		b.RenderFrame(0)
		bb := b.bounds[0]
		assert.InDelta(t, 20, bb.MaxX-bb.MinX, 1e-9)
		assert.InDelta(t, 10, bb.MaxY-bb.MinY, 1e-9)
	})

	t.Run("empty sprite unsupported", func(t *testing.T) {
		b := Matrix(100, 100)(&domain.Sprite{}, frames(domain.Identity()))
		assert.ErrorIs(t, b.Load(context.Background()), ErrUnsupported)
		b.Unload()
	})
}

func TestRasterBackend(t *testing.T) {
	t.Run("draws sprite", func(t *testing.T) {
		b := Raster(32, 32)(solidSprite(4, 4), frames(domain.Translate(16, 16))).(*RasterBackend)
		require.NoError(t, b.Load(context.Background()))
		defer b.Unload()

		b.RenderFrame(0)
		c := b.Canvas()
		_, _, _, a := c.At(16, 16).RGBA()
		assert.NotZero(t, a)
		_, _, _, a = c.At(1, 1).RGBA()
		assert.Zero(t, a)
	})

	t.Run("clears between frames", func(t *testing.T) {
		fs := domain.Frames{
			{domain.Translate(8, 8)},
			{domain.Translate(24, 24)},
		}
		b := Raster(32, 32)(solidSprite(4, 4), fs).(*RasterBackend)
		require.NoError(t, b.Load(context.Background()))
		defer b.Unload()

		b.RenderFrame(0)
		b.RenderFrame(1)
		_, _, _, a := b.Canvas().At(8, 8).RGBA()
		assert.Zero(t, a)
	})

	t.Run("load failures", func(t *testing.T) {
		tests := []struct {
			name   string
			w, h   int
			sprite *domain.Sprite
		}{
			{"nil sprite", 32, 32, nil},
			{"empty image", 32, 32, &domain.Sprite{Image: image.NewRGBA(image.Rect(0, 0, 0, 0))}},
			{"zero canvas", 0, 32, solidSprite(4, 4)},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				b := Raster(tt.w, tt.h)(tt.sprite, frames(domain.Identity()))
				assert.ErrorIs(t, b.Load(context.Background()), ErrUnsupported)
				b.Unload()
			})
		}
	})
}
