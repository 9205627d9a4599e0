package sim

import "time"

// Clock reports monotonic milliseconds since construction, anchored the
// way millis() is anchored at boot on hardware.
type Clock struct {
	start time.Time
}

func NewClock() *Clock {
	return &Clock{start: time.Now()}
}

func (c *Clock) NowMs() uint64 {
	return uint64(time.Since(c.start).Milliseconds())
}
