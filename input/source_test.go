package input

import "testing"

func TestPollCapturesOnlyRequestedKeys(t *testing.T) {
	src := MapSource{"left": true, "jump": true}
	snap := Poll(src, []string{"left", "right"})

	if !snap.Pressed("left") || snap.Pressed("right") {
		t.Fatalf("unexpected snapshot state")
	}
	if snap.Pressed("jump") {
		t.Fatalf("keys outside the polled set should read as released")
	}

	src["left"] = false
	if !snap.Pressed("left") {
		t.Fatalf("snapshot should not change after capture")
	}
}

func TestPollerEdges(t *testing.T) {
	src := MapSource{}
	p := NewPoller("jump")

	steps := []struct {
		held         bool
		justPressed  bool
		justReleased bool
	}{
		{false, false, false},
		{true, true, false},
		{true, false, false},
		{false, false, true},
	}
	for i, s := range steps {
		src["jump"] = s.held
		snap := p.Poll(src)
		if snap.JustPressed("jump") != s.justPressed || snap.JustReleased("jump") != s.justReleased {
			t.Fatalf("frame %d: justPressed=%v justReleased=%v", i, snap.JustPressed("jump"), snap.JustReleased("jump"))
		}
	}
}

func TestAxis(t *testing.T) {
	cases := []struct {
		name string
		src  MapSource
		want float64
	}{
		{"none", MapSource{}, 0},
		{"left", MapSource{"left": true}, -1},
		{"right", MapSource{"right": true}, 1},
		{"both_cancel", MapSource{"left": true, "right": true}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			snap := Poll(c.src, []string{"left", "right"})
			if got := snap.Axis("left", "right"); got != c.want {
				t.Fatalf("axis = %v, want %v", got, c.want)
			}
		})
	}
}

func TestPollNilSource(t *testing.T) {
	snap := Poll(nil, []string{"left"})
	if snap.Pressed("left") {
		t.Fatalf("nil source should report nothing pressed")
	}
}
