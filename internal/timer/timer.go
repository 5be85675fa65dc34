// Package timer provides the cancellable one-second exercise timer.
package timer

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Interval is the tick period.
const Interval = time.Second

// Mode selects countdown or stopwatch behavior.
type Mode int

const (
	Countdown Mode = iota
	Stopwatch
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg is delivered by TickCmd. It is only honored when ID matches the
// timer's current ID.
type TickMsg struct {
	ID   int
	Time time.Time
}

// Timer measures elapsed time from wall-clock timestamps and fires its expiry
// callback at most once. Every start, stop and cancel issues a new ID so ticks
// scheduled earlier are discarded.
type Timer struct {
	mode     Mode
	limit    time.Duration
	onExpire func()

	id          int
	running     bool
	startedAt   time.Time
	accumulated time.Duration
	expired     bool
	canceled    bool
}

// NewCountdown returns a timer that expires after limit of running time.
func NewCountdown(limit time.Duration, onExpire func()) *Timer {
	return &Timer{mode: Countdown, limit: limit, onExpire: onExpire, id: nextID()}
}

// NewStopwatch returns a timer without a bound.
func NewStopwatch() *Timer {
	return &Timer{mode: Stopwatch, id: nextID()}
}

// ID returns the current tick generation.
func (t *Timer) ID() int { return t.id }

// Mode returns the timer mode.
func (t *Timer) Mode() Mode { return t.mode }

// Limit returns the countdown bound, zero for stopwatches.
func (t *Timer) Limit() time.Duration { return t.limit }

// Running reports whether the timer is counting.
func (t *Timer) Running() bool { return t.running }

// Expired reports whether the countdown reached its bound.
func (t *Timer) Expired() bool { return t.expired }

// Canceled reports whether the timer was disposed.
func (t *Timer) Canceled() bool { return t.canceled }

// Start begins or resumes counting. It does nothing once the timer has
// expired or been canceled.
func (t *Timer) Start(now time.Time) bool {
	if t.running || t.expired || t.canceled {
		return false
	}
	t.running = true
	t.startedAt = now
	t.id = nextID()
	return true
}

// Stop suspends counting, keeping the time accumulated so far.
func (t *Timer) Stop(now time.Time) {
	if !t.running {
		return
	}
	t.accumulated += now.Sub(t.startedAt)
	t.running = false
	t.id = nextID()
}

// Cancel disposes the timer. The expiry callback never runs afterwards.
func (t *Timer) Cancel(now time.Time) {
	if t.canceled {
		return
	}
	t.Stop(now)
	t.canceled = true
	t.id = nextID()
}

// Elapsed returns the running time, excluding stopped periods.
func (t *Timer) Elapsed(now time.Time) time.Duration {
	elapsed := t.accumulated
	if t.running {
		elapsed += now.Sub(t.startedAt)
	}
	if t.mode == Countdown && elapsed > t.limit {
		elapsed = t.limit
	}
	return elapsed
}

// Remaining returns the countdown time left, zero for stopwatches.
func (t *Timer) Remaining(now time.Time) time.Duration {
	if t.mode != Countdown {
		return 0
	}
	left := t.limit - t.Elapsed(now)
	if left < 0 {
		return 0
	}
	return left
}

// Tick processes a tick for generation id. It reports whether the tick was
// live; callers reschedule only while Running is still true.
func (t *Timer) Tick(id int, now time.Time) bool {
	if id != t.id || !t.running {
		return false
	}
	t.Check(now)
	return true
}

// Check expires a running countdown that has reached its bound at now and
// reports whether the timer is expired.
func (t *Timer) Check(now time.Time) bool {
	if t.running && t.mode == Countdown && t.Elapsed(now) >= t.limit {
		t.expire()
	}
	return t.expired
}

func (t *Timer) expire() {
	t.accumulated = t.limit
	t.running = false
	t.expired = true
	t.id = nextID()
	if t.onExpire != nil {
		t.onExpire()
	}
}

// TickCmd schedules the next tick for the current generation.
func (t *Timer) TickCmd() tea.Cmd {
	id := t.id
	return tea.Tick(Interval, func(now time.Time) tea.Msg {
		return TickMsg{ID: id, Time: now}
	})
}
