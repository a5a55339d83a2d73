package domain

import "math"

// Transform is a 2x3 affine matrix placing one sprite in one frame.
// The layout matches golang.org/x/image/math/f64.Aff3:
//
//	x' = M[0]*x + M[1]*y + M[2]
//	y' = M[3]*x + M[4]*y + M[5]
type Transform struct {
	Matrix [6]float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Matrix: [6]float64{1, 0, 0, 0, 1, 0}}
}

// Translate returns a pure translation.
func Translate(tx, ty float64) Transform {
	return Transform{Matrix: [6]float64{1, 0, tx, 0, 1, ty}}
}

// Rotate returns a rotation by theta radians around the origin.
func Rotate(theta float64) Transform {
	s, c := math.Sincos(theta)
	return Transform{Matrix: [6]float64{c, -s, 0, s, c, 0}}
}

// Scale returns a scale around the origin.
func Scale(sx, sy float64) Transform {
	return Transform{Matrix: [6]float64{sx, 0, 0, 0, sy, 0}}
}

// Mul returns t·o, the transform that applies o first and then t.
func (t Transform) Mul(o Transform) Transform {
	a, b := t.Matrix, o.Matrix
	return Transform{Matrix: [6]float64{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}}
}

// Apply maps a point through the transform.
func (t Transform) Apply(x, y float64) (float64, float64) {
	m := t.Matrix
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// Frame is the ordered set of object transforms for one animation frame.
// Its length is the object count of the frame.
type Frame []Transform

// Frames is an immutable view of a FrameSet at a fixed object count.
type Frames []Frame

// Len returns the number of frames.
func (f Frames) Len() int {
	return len(f)
}

// ObjectCount returns the number of objects per frame.
func (f Frames) ObjectCount() int {
	if len(f) == 0 {
		return 0
	}
	return len(f[0])
}

// Generator produces the transform of one object in one frame.
// Implementations must be pure and deterministic.
type Generator func(frameIndex, objectIndex int) Transform

// FrameSet holds the fixed-length sequence of frames for one test invocation.
//
// Generators are deterministic per (frame, object), so the frames for n
// objects are a prefix of the frames for any larger count. FrameSet grows its
// frames on demand and Take hands out views that are never modified after
// they are returned. A FrameSet is owned by a single test and is not safe for
// concurrent use.
type FrameSet struct {
	gen    Generator
	frames []Frame
	width  int
}

// NewFrameSet creates a frame set of frameCount frames driven by gen.
func NewFrameSet(gen Generator, frameCount int) *FrameSet {
	if frameCount < 0 {
		frameCount = 0
	}
	return &FrameSet{
		gen:    gen,
		frames: make([]Frame, frameCount),
	}
}

// Len returns the number of frames in the set.
func (s *FrameSet) Len() int {
	return len(s.frames)
}

// Take returns a view of every frame truncated to n objects, generating any
// objects not produced yet.
func (s *FrameSet) Take(n int) Frames {
	if n < 0 {
		n = 0
	}
	if n > s.width {
		s.grow(n)
	}

	view := make(Frames, len(s.frames))
	for i, f := range s.frames {
		// Clip capacity so appends on the view cannot reach shared storage.
		view[i] = f[:n:n]
	}
	return view
}

func (s *FrameSet) grow(n int) {
	for i, f := range s.frames {
		if cap(f) < n {
			next := make(Frame, len(f), growCap(cap(f), n))
			copy(next, f)
			f = next
		}
		for j := len(f); j < n; j++ {
			f = append(f, s.gen(i, j))
		}
		s.frames[i] = f
	}
	s.width = n
}

func growCap(current, need int) int {
	c := current * 2
	if c < need {
		c = need
	}
	return c
}
