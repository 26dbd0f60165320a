package service

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Countdown is the one-shot exam-duration timer. It is independent of
// any network timeout: it fires exactly once when the allotment runs
// out, and the fire callback is expected to call the session's Submit,
// whose in-flight guard suppresses the forced call if a manual submit
// is already on the wire.
type Countdown struct {
	mu       sync.Mutex
	timer    *time.Timer
	deadline time.Time
	fired    bool
}

func NewCountdown() *Countdown {
	return &Countdown{}
}

// Start arms the countdown. Arming an already armed or fired countdown
// is a no-op.
func (c *Countdown) Start(d time.Duration, fire func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil || c.fired {
		return
	}
	c.deadline = time.Now().Add(d)
	c.timer = time.AfterFunc(d, func() {
		c.mu.Lock()
		if c.fired {
			c.mu.Unlock()
			return
		}
		c.fired = true
		c.mu.Unlock()
		log.Info().Msg("Exam time is up, forcing submission")
		fire()
	})
}

// Stop disarms the countdown; idempotent, harmless after firing.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.fired = true
}

// Remaining reports the time left, 0 once expired or never armed.
func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer == nil {
		return 0
	}
	if left := time.Until(c.deadline); left > 0 {
		return left
	}
	return 0
}
