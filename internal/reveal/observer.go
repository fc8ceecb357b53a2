package reveal

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Observer reveals each enrolled element the first time its Source reports
// it intersecting, then stops watching it. An element is revealed at most
// once and never enrolled again.
type Observer struct {
	mu       sync.Mutex
	action   Action
	opts     Options
	source   Source
	watching map[Element]uint64
	done     map[Element]struct{}
	seq      uint64
	revealed int
	closed   bool
	logger   *slog.Logger
}

// New builds an observer. A nil factory gives a no-op observer rather than an
// error.
func New(factory SourceFactory, action Action, opts Options, logger *slog.Logger) (*Observer, error) {
	if action == nil {
		return nil, fmt.Errorf("%w: nil reveal action", ErrConfiguration)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	o := &Observer{
		action:   action,
		opts:     opts,
		watching: make(map[Element]uint64),
		done:     make(map[Element]struct{}),
		logger:   logger,
	}
	if factory == nil {
		logger.Debug("visibility source unavailable, reveals disabled")
		return o, nil
	}
	o.source = factory(opts, o.OnVisibilityChange)
	return o, nil
}

// Available reports whether a visibility source backs the observer.
func (o *Observer) Available() bool { return o.source != nil }

func (o *Observer) Options() Options { return o.opts }

// Observe enrolls elements. Nil, already watched and already revealed
// elements are skipped.
func (o *Observer) Observe(elements ...Element) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	added := make([]Element, 0, len(elements))
	for _, el := range elements {
		if el == nil {
			continue
		}
		if _, ok := o.watching[el]; ok {
			continue
		}
		if _, ok := o.done[el]; ok {
			continue
		}
		o.seq++
		o.watching[el] = o.seq
		added = append(added, el)
	}
	src := o.source
	o.mu.Unlock()

	if src == nil {
		return
	}
	for _, el := range added {
		src.Watch(el)
	}
	if len(added) > 0 {
		o.logger.Debug("observing elements", "added", len(added))
	}
}

// OnVisibilityChange handles one batch from the Source. Only intersecting
// entries for still-watched elements reveal; everything else is ignored.
func (o *Observer) OnVisibilityChange(entries []Entry) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	hits := make([]Element, 0, len(entries))
	for _, e := range entries {
		if !e.Intersecting || e.Target == nil {
			continue
		}
		if _, ok := o.watching[e.Target]; !ok {
			continue
		}
		delete(o.watching, e.Target)
		o.done[e.Target] = struct{}{}
		o.revealed++
		hits = append(hits, e.Target)
	}
	src := o.source
	o.mu.Unlock()

	for _, el := range hits {
		o.action.Reveal(el)
		if src != nil {
			src.Unwatch(el)
		}
	}
	if len(hits) > 0 {
		o.logger.Debug("revealed elements", "count", len(hits), "remaining", o.Len())
	}
}

// DisconnectAll drops every outstanding watch. Later batches are ignored.
func (o *Observer) DisconnectAll() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	pending := len(o.watching)
	o.watching = make(map[Element]uint64)
	src := o.source
	o.mu.Unlock()

	if src != nil {
		src.Disconnect()
	}
	o.logger.Debug("observer disconnected", "unrevealed", pending)
}

// Watching returns the watch set in enrollment order.
func (o *Observer) Watching() []Element {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Element, 0, len(o.watching))
	for el := range o.watching {
		out = append(out, el)
	}
	sort.Slice(out, func(i, j int) bool { return o.watching[out[i]] < o.watching[out[j]] })
	return out
}

func (o *Observer) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.watching)
}

// Revealed counts elements revealed so far.
func (o *Observer) Revealed() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.revealed
}
