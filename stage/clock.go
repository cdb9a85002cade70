package stage

import "time"

// Clock measures time between frames.
type Clock struct {
	now     func() time.Time
	started time.Time
	last    time.Time
	running bool
}

// NewClock creates a stopped clock reading from now, or time.Now when now is nil.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Start resets the clock.
func (c *Clock) Start() {
	t := c.now()
	c.started = t
	c.last = t
	c.running = true
}

// Delta returns the seconds since the previous Delta call, or since Start.
// The first call on a stopped clock starts it and returns 0.
func (c *Clock) Delta() float64 {
	if !c.running {
		c.Start()
		return 0
	}
	t := c.now()
	dt := t.Sub(c.last).Seconds()
	c.last = t
	return dt
}

// Elapsed returns the time since Start.
func (c *Clock) Elapsed() time.Duration {
	if !c.running {
		return 0
	}
	return c.now().Sub(c.started)
}
