package pathfinding

import (
	"fmt"
	"math"
	"strings"
)

const (
	straightCost = 1.0
	diagonalCost = 1.4
)

type Heuristic uint8

const (
	Manhattan Heuristic = iota
	Euclidean
	Diagonal
)

func (h Heuristic) String() string {
	switch h {
	case Manhattan:
		return "manhattan"
	case Euclidean:
		return "euclidean"
	case Diagonal:
		return "diagonal"
	default:
		return fmt.Sprintf("heuristic(%d)", uint8(h))
	}
}

// ParseHeuristic maps a config name to a Heuristic.
func ParseHeuristic(name string) (Heuristic, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "manhattan":
		return Manhattan, nil
	case "euclidean":
		return Euclidean, nil
	case "diagonal", "octile":
		return Diagonal, nil
	default:
		return Manhattan, fmt.Errorf("pathfinding: unknown heuristic %q", name)
	}
}

func (h Heuristic) estimate(a, b Point) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	switch h {
	case Euclidean:
		return math.Sqrt(dx*dx + dy*dy)
	case Diagonal:
		diagonal := math.Min(dx, dy)
		return diagonal*diagonalCost + (math.Max(dx, dy) - diagonal)
	default:
		return dx + dy
	}
}

type Options struct {
	AllowDiagonal bool
	Heuristic     Heuristic
	// MaxExpansions bounds the number of nodes popped from the open set.
	// Zero means unbounded.
	MaxExpansions int
}

var (
	cardinal = [...]Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonal = [...]Point{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// Pathfinder runs A* over a Grid. It reuses its scratch buffers between
// searches and is not safe for concurrent use.
type Pathfinder struct {
	grid *Grid
	opts Options

	g      []float64
	parent []int
	closed []bool
	inOpen []bool
	open   []int
}

func NewPathfinder(grid *Grid, opts Options) *Pathfinder {
	return &Pathfinder{grid: grid, opts: opts}
}

func (p *Pathfinder) Grid() *Grid {
	return p.grid
}

// FindPath returns the cells from start to end inclusive. It fails when
// either endpoint is outside the grid, when end is blocked, or when the open
// set is exhausted.
func (p *Pathfinder) FindPath(startX, startY, endX, endY int) ([]Point, bool) {
	grid := p.grid
	if !grid.InBounds(startX, startY) || !grid.InBounds(endX, endY) {
		return nil, false
	}
	if !grid.IsWalkable(endX, endY) {
		return nil, false
	}

	p.reset()
	start := grid.index(startX, startY)
	goal := grid.index(endX, endY)
	goalPt := Point{X: endX, Y: endY}

	p.g[start] = 0
	p.open = append(p.open, start)
	p.inOpen[start] = true

	expansions := 0
	for len(p.open) > 0 {
		if p.opts.MaxExpansions > 0 && expansions >= p.opts.MaxExpansions {
			return nil, false
		}
		expansions++

		// find node with lowest f; first minimum wins
		best := 0
		bestF := math.Inf(1)
		for i, idx := range p.open {
			if f := p.g[idx] + p.opts.Heuristic.estimate(grid.point(idx), goalPt); f < bestF {
				bestF = f
				best = i
			}
		}
		current := p.open[best]
		p.open = append(p.open[:best], p.open[best+1:]...)
		p.inOpen[current] = false

		if current == goal {
			return p.reconstruct(current), true
		}
		p.closed[current] = true

		cur := grid.point(current)
		p.expand(cur, current, cardinal[:], straightCost)
		if p.opts.AllowDiagonal {
			p.expand(cur, current, diagonal[:], diagonalCost)
		}
	}

	return nil, false
}

func (p *Pathfinder) expand(cur Point, current int, dirs []Point, cost float64) {
	grid := p.grid
	for _, d := range dirs {
		nx, ny := cur.X+d.X, cur.Y+d.Y
		if !grid.IsWalkable(nx, ny) {
			continue
		}
		neighbor := grid.index(nx, ny)
		if p.closed[neighbor] {
			continue
		}
		tentative := p.g[current] + cost
		if tentative < p.g[neighbor] {
			p.parent[neighbor] = current
			p.g[neighbor] = tentative
			if !p.inOpen[neighbor] {
				p.open = append(p.open, neighbor)
				p.inOpen[neighbor] = true
			}
		}
	}
}

func (p *Pathfinder) reset() {
	n := p.grid.width * p.grid.height
	if len(p.g) != n {
		p.g = make([]float64, n)
		p.parent = make([]int, n)
		p.closed = make([]bool, n)
		p.inOpen = make([]bool, n)
	}
	for i := range p.g {
		p.g[i] = math.Inf(1)
		p.parent[i] = -1
	}
	clear(p.closed)
	clear(p.inOpen)
	p.open = p.open[:0]
}

func (p *Pathfinder) reconstruct(current int) []Point {
	path := make([]Point, 0, 32)
	for idx := current; idx >= 0; idx = p.parent[idx] {
		path = append(path, p.grid.point(idx))
	}
	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathCost sums step costs along path using the same weights as the search.
func PathCost(path []Point) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		dx := absInt(path[i].X - path[i-1].X)
		dy := absInt(path[i].Y - path[i-1].Y)
		if dx == 1 && dy == 1 {
			total += diagonalCost
		} else {
			total += math.Hypot(float64(dx), float64(dy))
		}
	}
	return total
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
