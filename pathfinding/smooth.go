package pathfinding

// SmoothPath removes intermediate waypoints by jumping from each kept point
// to the farthest following point it can see. Paths of two points or fewer
// are returned unchanged.
func (p *Pathfinder) SmoothPath(path []Point) []Point {
	if len(path) <= 2 {
		return path
	}

	smoothed := []Point{path[0]}
	current := 0
	for current < len(path)-1 {
		farthest := current + 1
		for i := current + 2; i < len(path); i++ {
			if !p.grid.LineOfSight(path[current], path[i]) {
				break
			}
			farthest = i
		}
		smoothed = append(smoothed, path[farthest])
		current = farthest
	}
	return smoothed
}

// LineOfSight walks the Bresenham line between a and b and reports whether
// every cell on it, endpoints included, is walkable.
func (g *Grid) LineOfSight(a, b Point) bool {
	x0, y0 := a.X, a.Y
	dx := absInt(b.X - x0)
	dy := absInt(b.Y - y0)
	sx, sy := 1, 1
	if x0 >= b.X {
		sx = -1
	}
	if y0 >= b.Y {
		sy = -1
	}
	err := dx - dy

	for {
		if !g.IsWalkable(x0, y0) {
			return false
		}
		if x0 == b.X && y0 == b.Y {
			return true
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}
