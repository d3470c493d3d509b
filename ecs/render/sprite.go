package render

import (
	"image/color"
	"io/fs"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/engine2d/ecs"
	"github.com/milk9111/engine2d/ecs/component"
	"golang.org/x/image/colornames"
)

// SpriteRenderer draws Sprite components centered on their transforms.
// Sprites without a loadable texture are drawn as a filled rectangle in
// their tint colour.
type SpriteRenderer struct {
	Assets fs.FS
	Images *ImageCache
	View   View

	missing map[string]bool
}

func NewSpriteRenderer(assets fs.FS) *SpriteRenderer {
	return &SpriteRenderer{Assets: assets, Images: NewImageCache(), missing: map[string]bool{}}
}

func (r *SpriteRenderer) Draw(screen *ebiten.Image, entities []*ecs.Entity) {
	for _, e := range ecs.Filter(entities, component.SpriteComponent.ID(), component.TransformComponent.ID()) {
		sp, _ := ecs.Get(e, component.SpriteComponent.Kind())
		tr, _ := ecs.Get(e, component.TransformComponent.Kind())

		center := tr.Position.Add(sp.Offset)
		img := r.texture(sp.Texture)
		if img == nil {
			x, y := r.View.ToScreen(center)
			w, h := r.View.Length(sp.Width), r.View.Length(sp.Height)
			vector.FillRect(screen, x-w/2, y-h/2, w, h, TintColor(sp.Tint, opacity(sp)), false)
			continue
		}

		bounds := img.Bounds()
		iw, ih := float64(bounds.Dx()), float64(bounds.Dy())
		sx, sy := 1.0, 1.0
		if sp.Width > 0 {
			sx = sp.Width / iw
		}
		if sp.Height > 0 {
			sy = sp.Height / ih
		}
		if sp.FlipX {
			sx = -sx
		}
		if sp.FlipY {
			sy = -sy
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-iw/2, -ih/2)
		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(tr.Rotation)
		x, y := r.View.ToScreen(center)
		op.GeoM.Scale(r.View.zoom(), r.View.zoom())
		op.GeoM.Translate(float64(x), float64(y))
		if sp.Tint != "" {
			tc := TintColor(sp.Tint, 1)
			op.ColorScale.ScaleWithColor(tc)
		}
		op.ColorScale.ScaleAlpha(float32(opacity(sp)))
		screen.DrawImage(img, op)
	}
}

func (r *SpriteRenderer) texture(key string) *ebiten.Image {
	if key == "" || r.missing[key] {
		return nil
	}
	if r.Images == nil {
		r.Images = NewImageCache()
	}
	img, err := r.Images.Load(r.Assets, key)
	if err != nil {
		r.missing[key] = true
		log.Printf("Render: %v", err)
		return nil
	}
	return img
}

func opacity(sp *component.Sprite) float64 {
	if sp.Opacity <= 0 || sp.Opacity > 1 {
		return 1
	}
	return sp.Opacity
}

// TintColor resolves an SVG colour name with the given alpha. Unknown or
// empty names are white.
func TintColor(name string, alpha float64) color.Color {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		c = colornames.White
	}
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * alpha)}
}
