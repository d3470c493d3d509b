package loop

import "time"

// Clock measures frame deltas and a once-per-second FPS sample.
type Clock struct {
	delta   float64
	elapsed float64
	fps     int

	last     time.Time
	frames   int
	fpsTimer float64
}

// Tick records a frame at now. The first tick after a reset has a zero
// delta.
func (c *Clock) Tick(now time.Time) float64 {
	if c.last.IsZero() {
		c.delta = 0
	} else {
		c.delta = now.Sub(c.last).Seconds()
		if c.delta < 0 {
			c.delta = 0
		}
	}
	c.last = now
	c.elapsed += c.delta

	c.frames++
	c.fpsTimer += c.delta
	if c.fpsTimer >= 1 {
		c.fps = c.frames
		c.frames = 0
		c.fpsTimer = 0
	}
	return c.delta
}

func (c *Clock) Delta() float64 {
	return c.delta
}

func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

func (c *Clock) FPS() int {
	return c.fps
}

func (c *Clock) Reset() {
	*c = Clock{}
}
