package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownShape     = errors.New("prefabs: unknown collider shape")
	ErrUnknownComponent = errors.New("prefabs: unknown component")
)

// LoadSpec reads filename from l and decodes it as T.
func LoadSpec[T any](l *Library, filename string) (T, error) {
	var zero T
	data, err := l.Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec places prefabs in a world.
type SceneSpec struct {
	Name     string          `yaml:"name"`
	Entities []PlacementSpec `yaml:"entities"`
}

type PlacementSpec struct {
	Prefab string  `yaml:"prefab"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Tag    string  `yaml:"tag"`
	// Count repeats the placement, stepping by DX/DY each time.
	Count int     `yaml:"count"`
	DX    float64 `yaml:"dx"`
	DY    float64 `yaml:"dy"`
}

func LoadSceneSpec(l *Library, filename string) (SceneSpec, error) {
	return LoadSpec[SceneSpec](l, filename)
}
