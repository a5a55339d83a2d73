package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/spritebench/internal/domain"
)

func obs(n int, fps, ms float64) domain.Observation {
	return domain.Observation{ObjectCount: n, FPS: fps, ComputeTimeMs: ms}
}

func TestObservationCache_GetPut(t *testing.T) {
	c := NewObservationCache()
	_, ok := c.Get(5)
	assert.False(t, ok)

	c.Put(obs(5, 40, 1))
	got, ok := c.Get(5)
	require.True(t, ok)
	assert.Equal(t, 40.0, got.FPS)

	// Replacing keeps both indexes consistent.
	c.Put(obs(5, 20, 2))
	assert.Equal(t, 1, c.Len())
	c.Put(obs(0, 60, 0))
	above, below, err := c.Bracket(30)
	require.NoError(t, err)
	assert.Equal(t, 0, above.ObjectCount)
	assert.Equal(t, 5, below.ObjectCount)
	assert.Equal(t, 20.0, below.FPS)
}

func TestObservationCache_Bracket(t *testing.T) {
	c := NewObservationCache()
	for _, o := range []domain.Observation{
		obs(0, 60, 0), obs(25, 10, 9), obs(5, 50, 2), obs(10, 40, 4), obs(20, 20, 8),
	} {
		c.Put(o)
	}

	above, below, err := c.Bracket(30)
	require.NoError(t, err)
	assert.Equal(t, 10, above.ObjectCount)
	assert.Equal(t, 20, below.ObjectCount)

	res, err := c.Interpolate(30)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, res.ObjectCount, 1e-12)
	assert.InDelta(t, 6.0, res.ComputeTimeMs, 1e-12)
}

func TestObservationCache_BracketTies(t *testing.T) {
	c := NewObservationCache()
	c.Put(obs(10, 45, 0))
	c.Put(obs(12, 45, 0))
	c.Put(obs(30, 15, 0))
	c.Put(obs(28, 15, 0))

	above, below, err := c.Bracket(30)
	require.NoError(t, err)
	assert.Equal(t, 12, above.ObjectCount, "above side prefers the larger count")
	assert.Equal(t, 28, below.ObjectCount, "below side prefers the smaller count")
}

func TestObservationCache_CloseFPSValuesStayDistinct(t *testing.T) {
	c := NewObservationCache()
	c.Put(obs(10, 30.000000000001, 0))
	c.Put(obs(11, 29.999999999999, 0))

	above, below, err := c.Bracket(30)
	require.NoError(t, err)
	assert.Equal(t, 10, above.ObjectCount)
	assert.Equal(t, 11, below.ObjectCount)
}

func TestObservationCache_InterpolateEqualFPS(t *testing.T) {
	c := NewObservationCache()
	c.Put(obs(7, 30, 3))

	res, err := c.Interpolate(30)
	require.NoError(t, err)
	assert.Equal(t, 7.0, res.ObjectCount)
	assert.Equal(t, 3.0, res.ComputeTimeMs)
}

func TestObservationCache_MissingBracket(t *testing.T) {
	tests := []struct {
		name string
		fps  []float64
	}{
		{"empty", nil},
		{"all above", []float64{1000, 900}},
		{"all below", []float64{10, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewObservationCache()
			for i, f := range tt.fps {
				c.Put(obs(i, f, 0))
			}
			_, err := c.Interpolate(30)
			assert.ErrorIs(t, err, domain.ErrBracketing)
		})
	}
}

func TestObservationCache_ObservationsOrdered(t *testing.T) {
	c := NewObservationCache()
	c.Put(obs(25, 10, 0))
	c.Put(obs(0, 60, 0))
	c.Put(obs(5, 50, 0))

	var counts []int
	for _, o := range c.Observations() {
		counts = append(counts, o.ObjectCount)
	}
	assert.Equal(t, []int{0, 5, 25}, counts)
}

func TestStepSequence(t *testing.T) {
	s := NewStepSequence(DefaultSteps)
	assert.Equal(t, 25, s.Pop())
	assert.Equal(t, 5, s.Pop())
	assert.Equal(t, 1, s.Pop())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 1, s.Pop(), "exhausted stack yields 1")

	// The caller's slice is not consumed.
	assert.Equal(t, []int{1, 5, 25}, DefaultSteps)
}
