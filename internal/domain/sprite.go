package domain

import "image"

// Sprite is the source payload handed to render backends.
type Sprite struct {
	// Name identifies the source that produced the sprite.
	Name string

	// Image holds the sprite pixels.
	Image image.Image
}

// Size returns the sprite dimensions, or zero for a missing image.
func (s *Sprite) Size() (int, int) {
	if s == nil || s.Image == nil {
		return 0, 0
	}
	b := s.Image.Bounds()
	return b.Dx(), b.Dy()
}
