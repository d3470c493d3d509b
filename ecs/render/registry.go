package render

import "github.com/hajimehoshi/ebiten/v2"

// ImageCache holds decoded images keyed by asset path.
type ImageCache struct {
	images map[string]*ebiten.Image
}

func NewImageCache() *ImageCache {
	return &ImageCache{images: map[string]*ebiten.Image{}}
}

// Register stores an image by key.
func (c *ImageCache) Register(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	c.images[key] = img
}

// Get returns a cached image by key.
func (c *ImageCache) Get(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	return c.images[key]
}

// Forget drops key so the next Load decodes it again.
func (c *ImageCache) Forget(key string) {
	delete(c.images, key)
}
