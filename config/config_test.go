package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/engine2d/pathfinding"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	pc := cfg.PhysicsSystemConfig()
	if pc.Gravity.Y != 980 || pc.Iterations != 4 || pc.Restitution != 0.3 {
		t.Fatalf("physics defaults = %+v", pc)
	}
	if cfg.PathfinderOptions().Heuristic != pathfinding.Diagonal {
		t.Fatalf("default heuristic = %v", cfg.PathfinderOptions().Heuristic)
	}
	if pc.StaticResponse {
		t.Fatalf("static response must be opt-in")
	}
}

func TestParseEnablesStaticResponse(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  static_response: true\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !cfg.PhysicsSystemConfig().StaticResponse {
		t.Fatalf("static_response not applied")
	}
	if cfg.Physics.Iterations != 4 {
		t.Fatalf("unset keys should keep defaults, iterations = %d", cfg.Physics.Iterations)
	}
	if _, err := Parse([]byte("physics: [")); err == nil {
		t.Fatalf("expected an error for bad yaml")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
physics:
  gravity_y: 500
loop:
  fixed_timestep: true
pathfinding:
  heuristic: euclidean
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Physics.GravityY != 500 {
		t.Fatalf("gravity = %v", cfg.Physics.GravityY)
	}
	if cfg.Physics.Iterations != 4 {
		t.Fatalf("unset keys should keep defaults, iterations = %d", cfg.Physics.Iterations)
	}
	if !cfg.LoopConfig().FixedTimestep || cfg.LoopConfig().TargetFPS != 60 {
		t.Fatalf("loop = %+v", cfg.LoopConfig())
	}
	if cfg.PathfinderOptions().Heuristic != pathfinding.Euclidean {
		t.Fatalf("heuristic = %v", cfg.PathfinderOptions().Heuristic)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		invalid bool
	}{
		{"bad_yaml", "physics: [", false},
		{"zero_iterations", "physics:\n  iterations: 0\n", true},
		{"unknown_heuristic", "pathfinding:\n  heuristic: chebyshev\n", true},
		{"bad_window", "window:\n  width: -1\n", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(writeFile(t, c.body))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if errors.Is(err, ErrInvalid) != c.invalid {
				t.Fatalf("errors.Is(ErrInvalid) = %v for %v", !c.invalid, err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file should wrap os.ErrNotExist, got %v", err)
	}
}
