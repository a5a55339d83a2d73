package app

import (
	"fmt"
	"sort"

	"github.com/bft-labs/spritebench/internal/domain"
)

// ObservationCache memoizes observations by object count for one search run.
// It keeps a second index ordered by fps so brackets around a target can be
// found by value rather than by a textual key.
type ObservationCache struct {
	byCount map[int]domain.Observation

	// byFPS is ordered by FPS ascending, then ObjectCount descending.
	byFPS []domain.Observation
}

// NewObservationCache creates an empty cache.
func NewObservationCache() *ObservationCache {
	return &ObservationCache{byCount: make(map[int]domain.Observation)}
}

// Len returns the number of cached observations.
func (c *ObservationCache) Len() int {
	return len(c.byCount)
}

// Get returns the observation for objectCount, if measured.
func (c *ObservationCache) Get(objectCount int) (domain.Observation, bool) {
	obs, ok := c.byCount[objectCount]
	return obs, ok
}

// Put stores obs, replacing any previous observation at the same count.
func (c *ObservationCache) Put(obs domain.Observation) {
	if _, ok := c.byCount[obs.ObjectCount]; ok {
		c.remove(obs.ObjectCount)
	}
	c.byCount[obs.ObjectCount] = obs

	i := sort.Search(len(c.byFPS), func(i int) bool {
		return less(obs, c.byFPS[i])
	})
	c.byFPS = append(c.byFPS, domain.Observation{})
	copy(c.byFPS[i+1:], c.byFPS[i:])
	c.byFPS[i] = obs
}

func (c *ObservationCache) remove(objectCount int) {
	for i, o := range c.byFPS {
		if o.ObjectCount == objectCount {
			c.byFPS = append(c.byFPS[:i], c.byFPS[i+1:]...)
			return
		}
	}
}

func less(a, b domain.Observation) bool {
	if a.FPS != b.FPS {
		return a.FPS < b.FPS
	}
	return a.ObjectCount > b.ObjectCount
}

// Observations returns every cached observation ordered by object count.
func (c *ObservationCache) Observations() []domain.Observation {
	out := make([]domain.Observation, 0, len(c.byCount))
	for _, o := range c.byCount {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ObjectCount < out[j].ObjectCount })
	return out
}

// Bracket returns the observation with the smallest fps >= target and the
// observation with the largest fps <= target. Among equal fps the above side
// prefers the larger object count and the below side the smaller one.
func (c *ObservationCache) Bracket(target float64) (above, below domain.Observation, err error) {
	i := sort.Search(len(c.byFPS), func(i int) bool { return c.byFPS[i].FPS >= target })
	j := sort.Search(len(c.byFPS), func(j int) bool { return c.byFPS[j].FPS > target }) - 1

	switch {
	case i >= len(c.byFPS):
		return above, below, fmt.Errorf("%w: no observation at or above %v fps", domain.ErrBracketing, target)
	case j < 0:
		return above, below, fmt.Errorf("%w: no observation at or below %v fps", domain.ErrBracketing, target)
	}
	return c.byFPS[i], c.byFPS[j], nil
}

// Interpolate linearly interpolates object count and compute time between
// the bracket around target.
func (c *ObservationCache) Interpolate(target float64) (domain.CapacityResult, error) {
	above, below, err := c.Bracket(target)
	if err != nil {
		return domain.CapacityResult{}, err
	}

	// x is the weight of the below side; both sides equal target when the
	// fps values coincide.
	var x float64
	if above.FPS != below.FPS {
		x = (above.FPS - target) / (above.FPS - below.FPS)
	}

	return domain.CapacityResult{
		ObjectCount:   x*float64(below.ObjectCount) + (1-x)*float64(above.ObjectCount),
		ComputeTimeMs: x*below.ComputeTimeMs + (1-x)*above.ComputeTimeMs,
	}, nil
}
