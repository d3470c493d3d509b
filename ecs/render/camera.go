package render

import "github.com/milk9111/engine2d/common"

// View maps world coordinates onto the screen.
type View struct {
	Offset common.Vector2
	Zoom   float64
}

func (v View) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

func (v View) ToScreen(p common.Vector2) (float32, float32) {
	z := v.zoom()
	return float32((p.X - v.Offset.X) * z), float32((p.Y - v.Offset.Y) * z)
}

func (v View) Length(l float64) float32 {
	return float32(l * v.zoom())
}

// Follow centers the view on target for a screen of the given size.
func (v *View) Follow(target common.Vector2, screenW, screenH int) {
	z := v.zoom()
	v.Offset = common.Vec(target.X-float64(screenW)/(2*z), target.Y-float64(screenH)/(2*z))
}
