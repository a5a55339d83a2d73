// Package backends provides in-process render backends.
//
//   - null: does no work; measures harness overhead
//   - matrix: composes every object transform with the view matrix and
//     computes its screen-space bounds, the work a compositor does before
//     painting
//   - raster: draws every sprite with its affine transform onto an RGBA
//     canvas using golang.org/x/image/draw
package backends

import (
	"github.com/bft-labs/spritebench/internal/ports"
)

// Names of the built-in backends.
const (
	NameNull   = "null"
	NameMatrix = "matrix"
	NameRaster = "raster"
)

// Builtin returns the built-in backends for a canvas of the given size.
func Builtin(width, height int) map[string]ports.BackendFactory {
	return map[string]ports.BackendFactory{
		NameNull:   Null,
		NameMatrix: Matrix(width, height),
		NameRaster: Raster(width, height),
	}
}
