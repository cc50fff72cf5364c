package observe

import (
	"fmt"
	"sync"
	"time"
)

// Clock reads the current time as fractional milliseconds since an
// arbitrary fixed epoch. Successive reads never decrease.
type Clock interface {
	NowMillis() float64
}

// SystemClock reads Go's monotonic clock. The epoch is the moment the
// clock was created.
type SystemClock struct {
	epoch time.Time
}

// NewSystemClock creates a clock whose epoch is now
func NewSystemClock() *SystemClock {
	return &SystemClock{
		epoch: time.Now(),
	}
}

// NowMillis returns milliseconds elapsed since the epoch
func (c *SystemClock) NowMillis() float64 {
	return float64(time.Since(c.epoch)) / float64(time.Millisecond)
}

// ManualClock only moves when told to. Used to make timing tests
// deterministic.
type ManualClock struct {
	mu  sync.Mutex
	now float64
}

// NewManualClock creates a manual clock reading start
func NewManualClock(start float64) *ManualClock {
	return &ManualClock{now: start}
}

// NowMillis returns the current manual reading
func (c *ManualClock) NowMillis() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by ms. Moving backwards would break the
// Clock contract, so a negative step panics.
func (c *ManualClock) Advance(ms float64) {
	if ms < 0 {
		panic(fmt.Sprintf("observe: manual clock cannot move backwards (%v ms)", ms))
	}
	c.mu.Lock()
	c.now += ms
	c.mu.Unlock()
}

// Set jumps the clock to an absolute reading, which must not be earlier
// than the current one.
func (c *ManualClock) Set(ms float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ms < c.now {
		panic(fmt.Sprintf("observe: manual clock cannot move backwards (%v < %v)", ms, c.now))
	}
	c.now = ms
}

// TickingClock advances by a fixed step on every read. Handy for tests that
// need each checkpoint to observe a distinct, known delta.
type TickingClock struct {
	mu   sync.Mutex
	now  float64
	step float64
}

// NewTickingClock creates a clock that starts at start and moves step ms per read
func NewTickingClock(start, step float64) *TickingClock {
	if step < 0 {
		step = 0
	}
	return &TickingClock{now: start, step: step}
}

// NowMillis returns the current reading and then advances it
func (c *TickingClock) NowMillis() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now += c.step
	return now
}
