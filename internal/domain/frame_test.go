package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingGenerator(calls *int) Generator {
	return func(frameIndex, objectIndex int) Transform {
		*calls++
		return Translate(float64(frameIndex), float64(objectIndex))
	}
}

func TestFrameSet_TakeGeneratesOnDemand(t *testing.T) {
	calls := 0
	fs := NewFrameSet(countingGenerator(&calls), 4)

	frames := fs.Take(3)
	require.Equal(t, 4, frames.Len())
	assert.Equal(t, 3, frames.ObjectCount())
	assert.Equal(t, 12, calls)

	// Shrinking reuses what was generated.
	small := fs.Take(2)
	assert.Equal(t, 2, small.ObjectCount())
	assert.Equal(t, 12, calls)

	// Growing only generates the missing objects.
	big := fs.Take(5)
	assert.Equal(t, 5, big.ObjectCount())
	assert.Equal(t, 20, calls)
}

func TestFrameSet_PrefixIsStable(t *testing.T) {
	calls := 0
	fs := NewFrameSet(countingGenerator(&calls), 3)

	first := fs.Take(2)
	_ = fs.Take(50)

	for i, f := range first {
		require.Len(t, f, 2)
		for j, tr := range f {
			assert.Equal(t, Translate(float64(i), float64(j)), tr)
		}
	}
}

func TestFrameSet_ViewAppendDoesNotLeak(t *testing.T) {
	calls := 0
	fs := NewFrameSet(countingGenerator(&calls), 1)
	_ = fs.Take(4)

	view := fs.Take(2)
	view[0] = append(view[0], Identity())

	again := fs.Take(4)
	assert.Equal(t, Translate(0, 2), again[0][2])
}

func TestFrameSet_ZeroObjects(t *testing.T) {
	calls := 0
	fs := NewFrameSet(countingGenerator(&calls), 2)

	frames := fs.Take(0)
	assert.Equal(t, 2, frames.Len())
	assert.Equal(t, 0, frames.ObjectCount())
	assert.Zero(t, calls)

	assert.Equal(t, 0, fs.Take(-1).ObjectCount())
}

func TestTransform_Compose(t *testing.T) {
	tr := Translate(10, 20).Mul(Scale(2, 3))
	x, y := tr.Apply(1, 1)
	assert.Equal(t, 12.0, x)
	assert.Equal(t, 23.0, y)

	r := Rotate(math.Pi / 2)
	x, y = r.Apply(1, 0)
	assert.InDelta(t, 0, x, 1e-12)
	assert.InDelta(t, 1, y, 1e-12)

	assert.Equal(t, tr, Identity().Mul(tr))
}
