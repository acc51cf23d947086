package platform

import (
	"time"
)

// Pacer caps the loop at a fixed rate when vsync does not. It only sleeps;
// sub-millisecond precision is not needed at display refresh rates.
type Pacer struct {
	interval time.Duration
	next     time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewPacer paces to hz frames per second. hz <= 0 disables pacing.
func NewPacer(hz int) *Pacer {
	p := &Pacer{now: time.Now, sleep: time.Sleep}
	if hz > 0 {
		p.interval = time.Second / time.Duration(hz)
	}
	return p
}

// Wait blocks until the next frame is due.
func (p *Pacer) Wait() {
	if p.interval <= 0 {
		return
	}

	if p.next.IsZero() {
		p.next = p.now().Add(p.interval)
	} else {
		p.next = p.next.Add(p.interval)
	}

	if remaining := p.next.Sub(p.now()); remaining > 0 {
		p.sleep(remaining)
	}

	// After a hitch, resync instead of rushing frames to catch up.
	if late := p.now().Sub(p.next); late > p.interval {
		p.next = p.now()
	}
}

// Reset forgets the schedule, e.g. after the loop idled.
func (p *Pacer) Reset() {
	p.next = time.Time{}
}
