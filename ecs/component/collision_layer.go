package component

import "math"

const (
	// DefaultLayer is the layer bit new colliders live on.
	DefaultLayer uint32 = 1
	// AllLayers collides with every layer.
	AllLayers uint32 = math.MaxUint32
)

// LayersInteract reports whether two layer/mask pairs accept each other. The
// check is symmetric: each layer must be present in the other's mask.
func LayersInteract(layerA, maskA, layerB, maskB uint32) bool {
	return layerA&maskB != 0 && layerB&maskA != 0
}
