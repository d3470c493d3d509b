package component

import "github.com/milk9111/engine2d/common"

// Sprite is render data read by an external renderer. The engine never
// draws it.
type Sprite struct {
	Texture string
	Width   float64
	Height  float64
	Offset  common.Vector2
	FlipX   bool
	FlipY   bool
	Opacity float64
	Tint    string
}

var SpriteComponent = NewComponent[Sprite]()
