package viewport

import (
	"sort"
	"sync"

	"github.com/san-kum/termfolio/internal/reveal"
)

// Tracker is a reveal.Source that measures Boxed elements against a view
// each time Check runs. It reports an element on the first check after it
// is watched and again whenever its intersecting state flips.
type Tracker struct {
	mu      sync.Mutex
	opts    reveal.Options
	notify  func([]reveal.Entry)
	view    func() Rect
	watched map[reveal.Element]*watchState
	seq     uint64
	closed  bool
}

type watchState struct {
	seq          uint64
	seen         bool
	intersecting bool
}

func NewTracker(view func() Rect, opts reveal.Options, notify func([]reveal.Entry)) *Tracker {
	return &Tracker{
		opts:    opts,
		notify:  notify,
		view:    view,
		watched: make(map[reveal.Element]*watchState),
	}
}

// Factory adapts NewTracker to reveal.SourceFactory. created, if non-nil,
// receives the tracker so the host can drive Check.
func Factory(view func() Rect, created func(*Tracker)) reveal.SourceFactory {
	return func(opts reveal.Options, notify func([]reveal.Entry)) reveal.Source {
		t := NewTracker(view, opts, notify)
		if created != nil {
			created(t)
		}
		return t
	}
}

func (t *Tracker) Watch(el reveal.Element) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	if _, ok := t.watched[el]; ok {
		return
	}
	t.seq++
	t.watched[el] = &watchState{seq: t.seq}
}

func (t *Tracker) Unwatch(el reveal.Element) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.watched, el)
}

func (t *Tracker) Disconnect() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.watched = make(map[reveal.Element]*watchState)
}

func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.watched)
}

// Check measures every watched element and delivers changed entries as one
// batch. It returns the batch size.
func (t *Tracker) Check() int {
	t.mu.Lock()
	if t.closed || len(t.watched) == 0 {
		t.mu.Unlock()
		return 0
	}
	view := t.view()

	type item struct {
		el reveal.Element
		st *watchState
	}
	items := make([]item, 0, len(t.watched))
	for el, st := range t.watched {
		items = append(items, item{el, st})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].st.seq < items[j].st.seq })

	var batch []reveal.Entry
	for _, it := range items {
		boxed, ok := it.el.(Boxed)
		if !ok {
			continue
		}
		ratio := Intersection(boxed.Box(), view, t.opts.RootMargin)
		in := t.opts.Visible(ratio)
		if it.st.seen && it.st.intersecting == in {
			continue
		}
		it.st.seen = true
		it.st.intersecting = in
		batch = append(batch, reveal.Entry{Target: it.el, Intersecting: in, Ratio: ratio})
	}
	notify := t.notify
	t.mu.Unlock()

	if len(batch) > 0 && notify != nil {
		notify(batch)
	}
	return len(batch)
}
