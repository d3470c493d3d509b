package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

var ErrEmptyImageKey = errors.New("render: empty image key")

// Load decodes the image at key from fsys, falling back to the working
// directory, and caches it.
func (c *ImageCache) Load(fsys fs.FS, key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, ErrEmptyImageKey
	}
	if img := c.Get(key); img != nil {
		return img, nil
	}
	b, err := readImage(fsys, key)
	if err != nil {
		return nil, err
	}
	im, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("render: decode %s: %w", key, err)
	}
	img := ebiten.NewImageFromImage(im)
	c.Register(key, img)
	return img, nil
}

func readImage(fsys fs.FS, path string) ([]byte, error) {
	if fsys != nil {
		if b, err := fs.ReadFile(fsys, path); err == nil {
			return b, nil
		}
	}
	var lastErr error
	for _, p := range []string{path, filepath.Join("assets", path)} {
		b, err := os.ReadFile(p)
		if err == nil {
			return b, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("render: load image %s: %w", path, lastErr)
}
