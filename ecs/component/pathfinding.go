package component

import "github.com/milk9111/engine2d/common"

// PathAgent stores grid-based pathfinding settings and results. The agent
// heads for the first entity tagged TargetTag, or for Target when the tag is
// empty or unmatched. Path holds world-space waypoints, already smoothed
// when Smooth is set.
type PathAgent struct {
	Target       common.Vector2
	TargetTag    string
	Speed        float64
	RepathFrames int
	Smooth       bool

	FrameCounter int
	Path         []common.Vector2
	NextWaypoint int
}

var PathAgentComponent = NewComponent[PathAgent]()

// Arrived reports whether every waypoint has been consumed.
func (a *PathAgent) Arrived() bool {
	return a.NextWaypoint >= len(a.Path)
}
