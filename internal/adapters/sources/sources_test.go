package sources

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	assert.Len(t, Builtin(""), 2)

	m := Builtin("/tmp/sprite.png")
	assert.Len(t, m, 3)
	assert.Contains(t, m, NameFile)
}

func TestChecker(t *testing.T) {
	s, err := Checker(16, 4).Load(context.Background())
	require.NoError(t, err)

	w, h := s.Size()
	assert.Equal(t, 16, w)
	assert.Equal(t, 16, h)
	assert.Equal(t, NameChecker, s.Name)
	assert.NotEqual(t, s.Image.At(0, 0), s.Image.At(4, 0))
	assert.Equal(t, s.Image.At(0, 0), s.Image.At(4, 4))

	_, err = Checker(0, 4).Load(context.Background())
	assert.Error(t, err)
}

func TestGradient(t *testing.T) {
	s, err := Gradient(32).Load(context.Background())
	require.NoError(t, err)

	_, _, _, corner := s.Image.At(0, 0).RGBA()
	_, _, _, center := s.Image.At(16, 16).RGBA()
	assert.Zero(t, corner)
	assert.Greater(t, center, uint32(0xf000))
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprite.png")
	img := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, A: 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	s, err := File(path).Load(context.Background())
	require.NoError(t, err)
	w, h := s.Size()
	assert.Equal(t, 5, w)
	assert.Equal(t, 3, h)
	assert.Equal(t, NameFile, s.Name)
}

func TestFileErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))

	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "missing.png")},
		{"undecodable", garbage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := File(tt.path).Load(context.Background())
			assert.Error(t, err)
			assert.Nil(t, s)
		})
	}
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, src := range Builtin("unused.png") {
		_, err := src.Load(ctx)
		assert.ErrorIs(t, err, context.Canceled, name)
	}
}
