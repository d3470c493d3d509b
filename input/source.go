// Package input captures key state once per frame so systems see a stable
// view for the whole tick.
package input

// Source answers whether a named key or action is held right now.
type Source interface {
	Pressed(key string) bool
}

// MapSource is a Source backed by a map, used by headless hosts and tests.
type MapSource map[string]bool

func (m MapSource) Pressed(key string) bool {
	return m[key]
}

// Snapshot is the state of a fixed key set at one frame.
type Snapshot struct {
	pressed  map[string]bool
	previous map[string]bool
}

// Pressed reports whether key was held when the snapshot was taken. Keys
// outside the polled set are never pressed.
func (s Snapshot) Pressed(key string) bool {
	return s.pressed[key]
}

// JustPressed reports a key held now but not in the previous snapshot.
func (s Snapshot) JustPressed(key string) bool {
	return s.pressed[key] && !s.previous[key]
}

// JustReleased reports a key held in the previous snapshot but not now.
func (s Snapshot) JustReleased(key string) bool {
	return !s.pressed[key] && s.previous[key]
}

// Axis returns -1, 0 or 1 from a negative/positive key pair.
func (s Snapshot) Axis(negative, positive string) float64 {
	v := 0.0
	if s.Pressed(negative) {
		v--
	}
	if s.Pressed(positive) {
		v++
	}
	return v
}

// Poll captures keys from src without edge information.
func Poll(src Source, keys []string) Snapshot {
	pressed := make(map[string]bool, len(keys))
	if src != nil {
		for _, k := range keys {
			if src.Pressed(k) {
				pressed[k] = true
			}
		}
	}
	return Snapshot{pressed: pressed}
}

// Poller keeps the previous snapshot so JustPressed and JustReleased work.
type Poller struct {
	Keys []string
	last Snapshot
}

func NewPoller(keys ...string) *Poller {
	return &Poller{Keys: keys}
}

func (p *Poller) Poll(src Source) Snapshot {
	snap := Poll(src, p.Keys)
	snap.previous = p.last.pressed
	p.last = snap
	return snap
}

// Last returns the most recent snapshot.
func (p *Poller) Last() Snapshot {
	return p.last
}
