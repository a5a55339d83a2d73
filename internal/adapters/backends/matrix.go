package backends

import (
	"context"
	"errors"
	"math"

	"github.com/bft-labs/spritebench/internal/domain"
	"github.com/bft-labs/spritebench/internal/ports"
)

// ErrUnsupported is returned by Load when a backend cannot render the sprite.
var ErrUnsupported = errors.New("not supported")

// Bounds is an axis-aligned screen rectangle.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// MatrixBackend composes object transforms into screen space. The per-frame
// world matrices are computed at construction, outside the timed section.
type MatrixBackend struct {
	width, height int
	spriteW       float64
	spriteH       float64
	world         [][]domain.Transform

	bounds  []Bounds
	visible int
}

// Matrix returns a BackendFactory for a width x height viewport.
func Matrix(width, height int) ports.BackendFactory {
	return func(sprite *domain.Sprite, frames domain.Frames) ports.Backend {
		w, h := sprite.Size()
		b := &MatrixBackend{
			width:   width,
			height:  height,
			spriteW: float64(w),
			spriteH: float64(h),
		}
		if w == 0 || h == 0 {
			return b
		}

		// Center the sprite on its origin before applying the object transform.
		center := domain.Translate(-b.spriteW/2, -b.spriteH/2)
		b.world = make([][]domain.Transform, len(frames))
		for i, f := range frames {
			row := make([]domain.Transform, len(f))
			for j, t := range f {
				row[j] = t.Mul(center)
			}
			b.world[i] = row
		}
		return b
	}
}

// Load fails with ErrUnsupported for an empty sprite.
func (b *MatrixBackend) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.world == nil {
		return ErrUnsupported
	}
	b.bounds = make([]Bounds, b.maxObjects())
	return nil
}

func (b *MatrixBackend) maxObjects() int {
	n := 0
	for _, row := range b.world {
		n = max(n, len(row))
	}
	return n
}

// RenderFrame maps each sprite quad through its world matrix and records the
// clipped screen bounds.
func (b *MatrixBackend) RenderFrame(i int) {
	row := b.world[i]
	w, h := float64(b.width), float64(b.height)
	visible := 0
	for j, t := range row {
		bb := Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
		for _, c := range [4][2]float64{{0, 0}, {b.spriteW, 0}, {0, b.spriteH}, {b.spriteW, b.spriteH}} {
			x, y := t.Apply(c[0], c[1])
			bb.MinX = math.Min(bb.MinX, x)
			bb.MinY = math.Min(bb.MinY, y)
			bb.MaxX = math.Max(bb.MaxX, x)
			bb.MaxY = math.Max(bb.MaxY, y)
		}
		if bb.MaxX > 0 && bb.MaxY > 0 && bb.MinX < w && bb.MinY < h {
			visible++
		}
		b.bounds[j] = bb
	}
	b.visible = visible
}

// Visible returns how many sprites intersected the viewport in the last frame.
func (b *MatrixBackend) Visible() int {
	return b.visible
}

// Unload drops the computed matrices and bounds.
func (b *MatrixBackend) Unload() {
	b.world = nil
	b.bounds = nil
}
