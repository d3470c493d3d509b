package pathfinding

// Point is a grid cell coordinate.
type Point struct {
	X int
	Y int
}

// Grid is a rectangular field of walkable/blocked cells. Every cell starts
// walkable.
type Grid struct {
	width   int
	height  int
	blocked []bool
}

func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		width:   width,
		height:  height,
		blocked: make([]bool, width*height),
	}
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

func (g *Grid) InBounds(x, y int) bool {
	return g != nil && x >= 0 && y >= 0 && x < g.width && y < g.height
}

// SetWalkable is a no-op outside the grid.
func (g *Grid) SetWalkable(x, y int, walkable bool) {
	if !g.InBounds(x, y) {
		return
	}
	g.blocked[g.index(x, y)] = !walkable
}

// IsWalkable is false for cells outside the grid.
func (g *Grid) IsWalkable(x, y int) bool {
	return g.InBounds(x, y) && !g.blocked[g.index(x, y)]
}

// SetRegion marks the inclusive rectangle [x0,x1]x[y0,y1]. Cells outside the
// grid are skipped.
func (g *Grid) SetRegion(x0, y0, x1, y1 int, walkable bool) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			g.SetWalkable(x, y, walkable)
		}
	}
}

// Reset makes every cell walkable again.
func (g *Grid) Reset() {
	clear(g.blocked)
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

func (g *Grid) point(idx int) Point {
	return Point{X: idx % g.width, Y: idx / g.width}
}
