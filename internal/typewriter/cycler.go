package typewriter

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/san-kum/termfolio/internal/clock"
)

// Sink receives the visible text after every tick.
type Sink interface {
	Write(text string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(text string)

func (f SinkFunc) Write(text string) { f(text) }

type Option func(*Cycler)

func WithTiming(t Timing) Option {
	return func(c *Cycler) { c.timing = t }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Cycler) {
		if l != nil {
			c.logger = l
		}
	}
}

// Cycler drives Step from a Scheduler. At most one tick is pending at any
// time; the sink is written while the cycler lock is held and must not call
// back into the cycler.
type Cycler struct {
	mu      sync.Mutex
	state   State
	timing  Timing
	sink    Sink
	sched   clock.Scheduler
	timer   clock.Timer
	running bool
	gen     uint64
	logger  *slog.Logger
}

// New builds a stopped cycler. A nil sched means the real clock.
func New(phrases []string, sink Sink, sched clock.Scheduler, opts ...Option) (*Cycler, error) {
	st, err := NewState(phrases)
	if err != nil {
		return nil, err
	}
	if sched == nil {
		sched = clock.Real()
	}
	c := &Cycler{
		state:  st,
		timing: DefaultTiming(),
		sink:   sink,
		sched:  sched,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Start schedules the first tick immediately. Calling Start on a running
// cycler does nothing; after Stop it resumes from the frozen state.
func (c *Cycler) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.running = true
	c.gen++
	c.schedule(0)
	c.logger.Debug("typewriter started", "phrases", len(c.state.Phrases), "phrase", c.state.PhraseIndex)
}

// Stop cancels the pending tick and freezes the state.
func (c *Cycler) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.running = false
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.logger.Debug("typewriter stopped", "phrase", c.state.PhraseIndex, "char", c.state.CharIndex, "mode", c.state.Mode)
}

func (c *Cycler) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// State returns a snapshot; its Phrases slice is a copy.
func (c *Cycler) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state
	st.Phrases = slices.Clone(c.state.Phrases)
	return st
}

func (c *Cycler) schedule(d time.Duration) {
	gen := c.gen
	c.timer = c.sched.AfterFunc(d, func() { c.tick(gen) })
}

func (c *Cycler) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// a stale callback can still fire after Stop if the timer raced us
	if !c.running || gen != c.gen {
		return
	}
	next, frame := Step(c.state, c.timing)
	if next.PhraseIndex != c.state.PhraseIndex {
		c.logger.Debug("typewriter next phrase", "phrase", next.PhraseIndex)
	}
	c.state = next
	if c.sink != nil {
		c.sink.Write(frame.Text)
	}
	c.schedule(frame.Delay)
}
