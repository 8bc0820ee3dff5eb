package component

// Countdown counts down to zero and never goes below it. Active reports
// remaining > 0.
type Countdown struct {
	Remaining float64
	Duration  float64
}

// Start arms the countdown. Negative durations arm it at zero.
func (c *Countdown) Start(duration float64) {
	if duration < 0 {
		duration = 0
	}
	c.Duration = duration
	c.Remaining = duration
}

// Tick subtracts dt and returns true on the tick the countdown reaches zero.
func (c *Countdown) Tick(dt float64) bool {
	return c.TickScaled(dt, 1)
}

// TickScaled subtracts dt*rate. Frame-count buffers tick with rate 60.
func (c *Countdown) TickScaled(dt, rate float64) bool {
	if c.Remaining <= 0 {
		c.Remaining = 0
		return false
	}
	c.Remaining -= dt * rate
	if c.Remaining <= 0 {
		c.Remaining = 0
		return true
	}
	return false
}

func (c *Countdown) Active() bool {
	return c.Remaining > 0
}

func (c *Countdown) Stop() {
	c.Remaining = 0
}

// Stopwatch accumulates elapsed time.
type Stopwatch struct {
	Elapsed float64
}

func (s *Stopwatch) Tick(dt float64) {
	if dt > 0 {
		s.Elapsed += dt
	}
}

func (s *Stopwatch) Reset() {
	s.Elapsed = 0
}

// Reached reports whether at least d has elapsed.
func (s *Stopwatch) Reached(d float64) bool {
	return s.Elapsed >= d
}

// StepCounter counts discrete ticks up to Limit.
type StepCounter struct {
	Steps int
	Limit int
}

// Step increments the counter and reports whether the limit was reached.
func (s *StepCounter) Step() bool {
	s.Steps++
	return s.Steps >= s.Limit
}

func (s *StepCounter) Reset() {
	s.Steps = 0
}
