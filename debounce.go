package glowgrid

import "time"

// Debouncer coalesces a burst of calls into one trailing fire. The engine
// pumps Fire from its frame update; there is no background timer goroutine,
// matching the cooperative single-thread model of the rest of the package.
type Debouncer struct {
	window   time.Duration
	deadline time.Time
	pending  bool
}

// NewDebouncer creates a debouncer with the given trailing window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Call records a call, pushing the trailing deadline out by the window.
func (d *Debouncer) Call(now time.Time) {
	d.pending = true
	d.deadline = now.Add(d.window)
}

// Fire reports whether a trailing call is due and consumes it.
func (d *Debouncer) Fire(now time.Time) bool {
	if !d.pending || now.Before(d.deadline) {
		return false
	}
	d.pending = false
	return true
}

// Cancel drops any pending trailing call.
func (d *Debouncer) Cancel() {
	d.pending = false
}

// ClickCounter counts clicks inside a rolling window and reports when the
// threshold is reached. Reaching the threshold resets the counter, so the
// next click starts a fresh window.
type ClickCounter struct {
	window    time.Duration
	threshold int
	count     int
	last      time.Time
}

// NewClickCounter creates a counter that trips after threshold clicks, where
// consecutive clicks no more than window apart belong to the same run.
func NewClickCounter(threshold int, window time.Duration) *ClickCounter {
	return &ClickCounter{window: window, threshold: threshold}
}

// Click records one click at now and reports whether the threshold was
// reached. A gap longer than the window since the previous click restarts
// the run at 1.
func (c *ClickCounter) Click(now time.Time) bool {
	if c.count > 0 && now.Sub(c.last) > c.window {
		c.count = 0
	}
	c.last = now
	c.count++
	if c.count >= c.threshold {
		c.count = 0
		return true
	}
	return false
}

// Count returns the number of clicks in the current run.
func (c *ClickCounter) Count() int {
	return c.count
}
