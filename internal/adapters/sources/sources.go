// Package sources provides sprite sources: two procedural images and an
// image file loader.
package sources

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/bft-labs/spritebench/internal/domain"
	"github.com/bft-labs/spritebench/internal/ports"
)

// Names of the built-in sources.
const (
	NameChecker  = "checker"
	NameGradient = "gradient"
	NameFile     = "file"
)

// DefaultSize is the edge length of the procedural sprites.
const DefaultSize = 64

// Builtin returns the procedural sources, plus the file source when path is
// not empty.
func Builtin(path string) map[string]ports.Source {
	m := map[string]ports.Source{
		NameChecker:  Checker(DefaultSize, 8),
		NameGradient: Gradient(DefaultSize),
	}
	if path != "" {
		m[NameFile] = File(path)
	}
	return m
}

// Checker returns a size x size checkerboard with cells of the given edge.
func Checker(size, cell int) ports.Source {
	return ports.SourceFunc(func(ctx context.Context) (*domain.Sprite, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if size <= 0 || cell <= 0 {
			return nil, fmt.Errorf("checker %dx%d cell %d: invalid size", size, size, cell)
		}
		img := image.NewNRGBA(image.Rect(0, 0, size, size))
		light := color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
		dark := color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff}
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				c := light
				if (x/cell+y/cell)%2 == 1 {
					c = dark
				}
				img.SetNRGBA(x, y, c)
			}
		}
		return &domain.Sprite{Name: NameChecker, Image: img}, nil
	})
}

// Gradient returns a size x size radial gradient fading to transparent at
// the edge, so blending work is exercised.
func Gradient(size int) ports.Source {
	return ports.SourceFunc(func(ctx context.Context) (*domain.Sprite, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if size <= 0 {
			return nil, fmt.Errorf("gradient %dx%d: invalid size", size, size)
		}
		img := image.NewNRGBA(image.Rect(0, 0, size, size))
		r := float64(size) / 2
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				dx, dy := float64(x)+0.5-r, float64(y)+0.5-r
				d := (dx*dx + dy*dy) / (r * r)
				a := 0.0
				if d < 1 {
					a = 1 - d
				}
				img.SetNRGBA(x, y, color.NRGBA{
					R: uint8(255 * float64(x) / float64(size)),
					G: uint8(255 * float64(y) / float64(size)),
					B: 0xc0,
					A: uint8(255 * a),
				})
			}
		}
		return &domain.Sprite{Name: NameGradient, Image: img}, nil
	})
}

// File decodes the image at path. PNG, JPEG, GIF, BMP and WebP are supported.
func File(path string) ports.Source {
	return ports.SourceFunc(func(ctx context.Context) (*domain.Sprite, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open sprite: %w", err)
		}
		defer f.Close()

		img, format, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode sprite %s: %w", path, err)
		}
		if b := img.Bounds(); b.Empty() {
			return nil, fmt.Errorf("decode sprite %s (%s): empty image", path, format)
		}
		return &domain.Sprite{Name: NameFile, Image: img}, nil
	})
}
