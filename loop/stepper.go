package loop

// DefaultMaxDelta caps a variable-timestep frame so a stall does not produce
// one huge physics step.
const DefaultMaxDelta = 0.1

type Config struct {
	TargetFPS     int
	FixedTimestep bool
	MaxDelta      float64
}

func DefaultConfig() Config {
	return Config{
		TargetFPS: 60,
		MaxDelta:  DefaultMaxDelta,
	}
}

// Stepper turns frame deltas into update calls. With a fixed timestep it
// accumulates time and runs as many 1/TargetFPS steps as fit; otherwise it
// runs a single update with the delta capped at MaxDelta.
type Stepper struct {
	cfg         Config
	accumulator float64
}

func NewStepper(cfg Config) *Stepper {
	if cfg.TargetFPS <= 0 {
		cfg.TargetFPS = 60
	}
	if cfg.MaxDelta <= 0 {
		cfg.MaxDelta = DefaultMaxDelta
	}
	return &Stepper{cfg: cfg}
}

// FixedDelta is the step length used in fixed mode.
func (s *Stepper) FixedDelta() float64 {
	return 1 / float64(s.cfg.TargetFPS)
}

// Advance feeds one frame delta and reports how many updates ran.
func (s *Stepper) Advance(dt float64, update func(dt float64)) int {
	if dt < 0 {
		dt = 0
	}
	if !s.cfg.FixedTimestep {
		update(min(dt, s.cfg.MaxDelta))
		return 1
	}

	step := s.FixedDelta()
	s.accumulator += dt
	steps := 0
	for s.accumulator >= step {
		update(step)
		s.accumulator -= step
		steps++
	}
	return steps
}

// Alpha is the fraction of a fixed step left in the accumulator, for
// interpolating rendering between steps.
func (s *Stepper) Alpha() float64 {
	if !s.cfg.FixedTimestep {
		return 1
	}
	return s.accumulator / s.FixedDelta()
}

func (s *Stepper) Reset() {
	s.accumulator = 0
}
