package console

import (
	"sync"
	"sync/atomic"
	"time"
)

// Clock publishes a coarse "now" that advances on a fixed tick, so delay
// badges age visibly even when no message arrives. Reading it is lock-free.
type Clock struct {
	now  atomic.Int64
	stop chan struct{}
	once sync.Once
}

// NewClock starts a clock ticking at the given interval.
func NewClock(interval time.Duration) *Clock {
	c := &Clock{stop: make(chan struct{})}
	c.now.Store(time.Now().UnixNano())

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case t := <-ticker.C:
				c.now.Store(t.UnixNano())
			case <-c.stop:
				return
			}
		}
	}()

	return c
}

// Now returns the most recent tick.
func (c *Clock) Now() time.Time {
	return time.Unix(0, c.now.Load())
}

// Stop halts the ticker.
func (c *Clock) Stop() {
	c.once.Do(func() { close(c.stop) })
}
