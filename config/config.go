// Package config loads engine settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/engine2d/common"
	"github.com/milk9111/engine2d/ecs/system"
	"github.com/milk9111/engine2d/loop"
	"github.com/milk9111/engine2d/pathfinding"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Physics     PhysicsConfig     `yaml:"physics"`
	Loop        LoopConfig        `yaml:"loop"`
	Pathfinding PathfindingConfig `yaml:"pathfinding"`
	Window      WindowConfig      `yaml:"window"`
	PrefabDir   string            `yaml:"prefab_dir"`
}

type PhysicsConfig struct {
	GravityX       float64 `yaml:"gravity_x"`
	GravityY       float64 `yaml:"gravity_y"`
	Iterations     int     `yaml:"iterations"`
	Restitution    float64 `yaml:"restitution"`
	StaticResponse bool    `yaml:"static_response"`
}

type LoopConfig struct {
	TargetFPS     int     `yaml:"target_fps"`
	FixedTimestep bool    `yaml:"fixed_timestep"`
	MaxDelta      float64 `yaml:"max_delta"`
}

type PathfindingConfig struct {
	AllowDiagonal bool    `yaml:"allow_diagonal"`
	Heuristic     string  `yaml:"heuristic"`
	CellSize      float64 `yaml:"cell_size"`
	MaxExpansions int     `yaml:"max_expansions"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			GravityY:    common.Gravity,
			Iterations:  system.DefaultIterations,
			Restitution: system.DefaultRestitution,
		},
		Loop: LoopConfig{
			TargetFPS: 60,
			MaxDelta:  loop.DefaultMaxDelta,
		},
		Pathfinding: PathfindingConfig{
			AllowDiagonal: true,
			Heuristic:     pathfinding.Diagonal.String(),
			CellSize:      32,
		},
		Window: WindowConfig{
			Width:  960,
			Height: 540,
			Title:  "engine2d",
		},
		PrefabDir: "prefabs",
	}
}

// Load reads path over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("config: load %s: %w", path, err)
	}
	return parse(data, path)
}

// Parse decodes YAML over the defaults, like Load.
func Parse(data []byte) (Config, error) {
	return parse(data, "<bytes>")
}

func parse(data []byte, name string) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", name, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Physics.Iterations <= 0 {
		errs = append(errs, fmt.Errorf("%w: physics.iterations must be positive, got %d", ErrInvalid, c.Physics.Iterations))
	}
	if c.Physics.Restitution < 0 {
		errs = append(errs, fmt.Errorf("%w: physics.restitution must not be negative", ErrInvalid))
	}
	if c.Loop.TargetFPS <= 0 {
		errs = append(errs, fmt.Errorf("%w: loop.target_fps must be positive, got %d", ErrInvalid, c.Loop.TargetFPS))
	}
	if c.Loop.MaxDelta <= 0 {
		errs = append(errs, fmt.Errorf("%w: loop.max_delta must be positive", ErrInvalid))
	}
	if _, err := pathfinding.ParseHeuristic(c.Pathfinding.Heuristic); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalid, err))
	}
	if c.Pathfinding.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: pathfinding.cell_size must be positive", ErrInvalid))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height))
	}
	return errors.Join(errs...)
}

func (c Config) PhysicsSystemConfig() system.PhysicsConfig {
	return system.PhysicsConfig{
		Gravity:        common.Vec(c.Physics.GravityX, c.Physics.GravityY),
		Iterations:     c.Physics.Iterations,
		Restitution:    c.Physics.Restitution,
		StaticResponse: c.Physics.StaticResponse,
	}
}

func (c Config) LoopConfig() loop.Config {
	return loop.Config{
		TargetFPS:     c.Loop.TargetFPS,
		FixedTimestep: c.Loop.FixedTimestep,
		MaxDelta:      c.Loop.MaxDelta,
	}
}

// PathfinderOptions assumes Validate has passed; an unknown heuristic falls
// back to Manhattan.
func (c Config) PathfinderOptions() pathfinding.Options {
	h, _ := pathfinding.ParseHeuristic(c.Pathfinding.Heuristic)
	return pathfinding.Options{
		AllowDiagonal: c.Pathfinding.AllowDiagonal,
		Heuristic:     h,
		MaxExpansions: c.Pathfinding.MaxExpansions,
	}
}
