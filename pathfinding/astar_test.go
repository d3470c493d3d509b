package pathfinding

import (
	"math"
	"testing"
)

func TestFindPathDiagonal(t *testing.T) {
	grid := NewGrid(5, 5)
	pf := NewPathfinder(grid, Options{AllowDiagonal: true, Heuristic: Diagonal})

	path, ok := pf.FindPath(0, 0, 4, 4)
	if !ok {
		t.Fatalf("expected a path")
	}
	if len(path) != 5 {
		t.Fatalf("path length = %d, want 5: %v", len(path), path)
	}
	if path[0] != (Point{0, 0}) || path[4] != (Point{4, 4}) {
		t.Fatalf("path endpoints = %v .. %v", path[0], path[4])
	}
	if cost := PathCost(path); math.Abs(cost-5.6) > 1e-9 {
		t.Fatalf("cost = %v, want 5.6", cost)
	}
}

func TestFindPathHeuristics(t *testing.T) {
	cases := []struct {
		name      string
		heuristic Heuristic
		diagonal  bool
		wantLen   int
		wantCost  float64
	}{
		{"manhattan_4way", Manhattan, false, 9, 8},
		{"euclidean_4way", Euclidean, false, 9, 8},
		{"euclidean_8way", Euclidean, true, 5, 5.6},
		{"diagonal_8way", Diagonal, true, 5, 5.6},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pf := NewPathfinder(NewGrid(5, 5), Options{AllowDiagonal: c.diagonal, Heuristic: c.heuristic})
			path, ok := pf.FindPath(0, 0, 4, 4)
			if !ok {
				t.Fatalf("expected a path")
			}
			if len(path) != c.wantLen {
				t.Fatalf("len = %d, want %d", len(path), c.wantLen)
			}
			if math.Abs(PathCost(path)-c.wantCost) > 1e-9 {
				t.Fatalf("cost = %v, want %v", PathCost(path), c.wantCost)
			}
		})
	}
}

func TestFindPathFailures(t *testing.T) {
	walled := NewGrid(5, 5)
	walled.SetRegion(2, 0, 2, 4, false)

	blockedGoal := NewGrid(5, 5)
	blockedGoal.SetWalkable(4, 4, false)

	cases := []struct {
		name           string
		grid           *Grid
		sx, sy, ex, ey int
	}{
		{"start_out_of_bounds", NewGrid(5, 5), -1, 0, 4, 4},
		{"end_out_of_bounds", NewGrid(5, 5), 0, 0, 5, 4},
		{"end_blocked", blockedGoal, 0, 0, 4, 4},
		{"no_route", walled, 0, 0, 4, 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pf := NewPathfinder(c.grid, Options{AllowDiagonal: true})
			if path, ok := pf.FindPath(c.sx, c.sy, c.ex, c.ey); ok || path != nil {
				t.Fatalf("expected no path, got %v", path)
			}
		})
	}
}

func TestFindPathAroundWall(t *testing.T) {
	grid := NewGrid(5, 5)
	grid.SetRegion(2, 0, 2, 3, false)
	pf := NewPathfinder(grid, Options{})

	path, ok := pf.FindPath(0, 0, 4, 0)
	if !ok {
		t.Fatalf("expected a path through the gap")
	}
	for _, p := range path {
		if !grid.IsWalkable(p.X, p.Y) {
			t.Fatalf("path crosses blocked cell %v", p)
		}
	}
	if path[len(path)-1] != (Point{4, 0}) {
		t.Fatalf("path ends at %v", path[len(path)-1])
	}
	if PathCost(path) != 12 {
		t.Fatalf("cost = %v, want 12", PathCost(path))
	}

	// scratch buffers are reused between searches
	again, ok := pf.FindPath(0, 0, 4, 0)
	if !ok || len(again) != len(path) {
		t.Fatalf("second search differs: %v", again)
	}
}

func TestFindPathSameCell(t *testing.T) {
	pf := NewPathfinder(NewGrid(3, 3), Options{})
	path, ok := pf.FindPath(1, 1, 1, 1)
	if !ok || len(path) != 1 || path[0] != (Point{1, 1}) {
		t.Fatalf("path = %v ok=%v", path, ok)
	}
}

func TestMaxExpansions(t *testing.T) {
	pf := NewPathfinder(NewGrid(50, 50), Options{MaxExpansions: 3})
	if _, ok := pf.FindPath(0, 0, 49, 49); ok {
		t.Fatalf("search should give up after 3 expansions")
	}
}

func TestParseHeuristic(t *testing.T) {
	cases := map[string]Heuristic{
		"":          Manhattan,
		"Manhattan": Manhattan,
		"euclidean": Euclidean,
		"diagonal":  Diagonal,
	}
	for name, want := range cases {
		got, err := ParseHeuristic(name)
		if err != nil || got != want {
			t.Fatalf("ParseHeuristic(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseHeuristic("chebyshev"); err == nil {
		t.Fatalf("expected error for unknown heuristic")
	}
}

func TestSmoothPath(t *testing.T) {
	grid := NewGrid(5, 5)
	grid.SetWalkable(1, 1, false)
	pf := NewPathfinder(grid, Options{})

	path := []Point{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}}
	got := pf.SmoothPath(path)
	want := []Point{{0, 0}, {2, 1}, {2, 2}}
	if len(got) != len(want) {
		t.Fatalf("smoothed = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("smoothed = %v, want %v", got, want)
		}
	}

	open := NewPathfinder(NewGrid(5, 5), Options{})
	raw, _ := open.FindPath(0, 0, 4, 4)
	if s := open.SmoothPath(raw); len(s) != 2 {
		t.Fatalf("open field should smooth to a straight segment, got %v", s)
	}

	short := []Point{{0, 0}, {1, 0}}
	if s := pf.SmoothPath(short); len(s) != 2 {
		t.Fatalf("short paths are unchanged")
	}
}

func TestGridBounds(t *testing.T) {
	g := NewGrid(3, 2)
	g.SetWalkable(5, 5, false)
	if g.IsWalkable(-1, 0) || g.IsWalkable(3, 0) {
		t.Fatalf("out of bounds cells are not walkable")
	}
	g.SetRegion(2, 1, 0, 0, false)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if g.IsWalkable(x, y) {
				t.Fatalf("cell %d,%d should be blocked", x, y)
			}
		}
	}
	g.Reset()
	if !g.IsWalkable(1, 1) {
		t.Fatalf("reset should clear blocks")
	}
}
