// Package generators provides deterministic frame generators.
//
// Every generator places object j at a fixed pseudo-random anchor inside the
// field and animates it by frame index. The same (frame, object) pair always
// yields the same transform.
package generators

import (
	"math"

	"github.com/bft-labs/spritebench/internal/domain"
)

// Names of the built-in generators.
const (
	NameStatic    = "static"
	NameTranslate = "translate"
	NameRotate    = "rotate"
	NameScale     = "scale"
)

// Period is the number of frames in one animation cycle.
const Period = 100

// Field is the area objects are placed in.
type Field struct {
	Width, Height float64
}

// Builtin returns the built-in generators for a width x height field.
func Builtin(width, height int) map[string]domain.Generator {
	f := Field{Width: float64(width), Height: float64(height)}
	return map[string]domain.Generator{
		NameStatic:    f.Static,
		NameTranslate: f.Translate,
		NameRotate:    f.Rotate,
		NameScale:     f.Scale,
	}
}

// Static keeps every object at its anchor.
func (f Field) Static(_, object int) domain.Transform {
	x, y := f.anchor(object)
	return domain.Translate(x, y)
}

// Translate moves each object horizontally across the field, wrapping at
// the right edge.
func (f Field) Translate(frame, object int) domain.Transform {
	x, y := f.anchor(object)
	if f.Width > 0 {
		x = math.Mod(x+phase(frame)*f.Width, f.Width)
	}
	return domain.Translate(x, y)
}

// Rotate spins each object one full turn per period around its anchor.
func (f Field) Rotate(frame, object int) domain.Transform {
	x, y := f.anchor(object)
	return domain.Translate(x, y).Mul(domain.Rotate(2 * math.Pi * phase(frame)))
}

// Scale pulses each object between half and one and a half times its size.
func (f Field) Scale(frame, object int) domain.Transform {
	x, y := f.anchor(object)
	s := 1 + 0.5*math.Sin(2*math.Pi*phase(frame))
	return domain.Translate(x, y).Mul(domain.Scale(s, s))
}

func (f Field) anchor(object int) (float64, float64) {
	h := splitmix(uint64(object))
	return unit(h) * f.Width, unit(h>>32|h<<32) * f.Height
}

func phase(frame int) float64 {
	return float64(frame%Period) / Period
}

func splitmix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// unit maps the top 53 bits of h to [0, 1).
func unit(h uint64) float64 {
	return float64(h>>11) / (1 << 53)
}
