package clock

import (
	"sync"
	"time"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs callbacks after a delay. Implementations may fire callbacks
// on any goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

type realScheduler struct{}

// Real returns a Scheduler backed by the runtime timers.
func Real() Scheduler { return realScheduler{} }

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
func (realScheduler) Now() time.Time                            { return time.Now() }

// Debouncer delays f until no Trigger has happened for the configured
// duration.
type Debouncer struct {
	mu    sync.Mutex
	sched Scheduler
	delay time.Duration
	f     func()
	timer Timer
}

func NewDebouncer(sched Scheduler, delay time.Duration, f func()) *Debouncer {
	return &Debouncer{sched: sched, delay: delay, f: f}
}

// Trigger restarts the quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.sched.AfterFunc(d.delay, d.f)
}

// Cancel drops a pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Throttler lets one call through and then refuses the rest until limit has
// passed on the scheduler.
type Throttler struct {
	mu      sync.Mutex
	sched   Scheduler
	limit   time.Duration
	blocked bool
}

func NewThrottler(sched Scheduler, limit time.Duration) *Throttler {
	return &Throttler{sched: sched, limit: limit}
}

// Allow reports whether the caller may proceed, opening a new window if so.
func (t *Throttler) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.blocked {
		return false
	}
	if t.limit <= 0 {
		return true
	}
	t.blocked = true
	t.sched.AfterFunc(t.limit, t.release)
	return true
}

// Do runs f unless the window is closed, and reports whether it ran.
func (t *Throttler) Do(f func()) bool {
	if !t.Allow() {
		return false
	}
	f()
	return true
}

func (t *Throttler) release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.blocked = false
}
