package viewport

import (
	"math"
	"testing"

	"github.com/san-kum/termfolio/internal/reveal"
)

func TestIntersection(t *testing.T) {
	view := Rect{Top: 10, Height: 20}
	tests := []struct {
		name   string
		box    Rect
		margin reveal.Margin
		want   float64
	}{
		{"inside", Rect{12, 5}, reveal.Margin{}, 1},
		{"above", Rect{0, 5}, reveal.Margin{}, 0},
		{"below", Rect{30, 5}, reveal.Margin{}, 0},
		{"half top", Rect{8, 4}, reveal.Margin{}, 0.5},
		{"quarter bottom", Rect{29, 4}, reveal.Margin{}, 0.25},
		{"taller than view", Rect{0, 40}, reveal.Margin{}, 0.5},
		{"shrunk bottom", Rect{25, 4}, reveal.Margin{Bottom: -5}, 0},
		{"grown bottom", Rect{31, 4}, reveal.Margin{Bottom: 5}, 1},
		{"grown top", Rect{6, 4}, reveal.Margin{Top: 4}, 1},
		{"zero height inside", Rect{15, 0}, reveal.Margin{}, 1},
		{"zero height outside", Rect{30, 0}, reveal.Margin{}, 0},
		{"root collapsed", Rect{12, 2}, reveal.Margin{Bottom: -30}, 0},
	}
	for _, tt := range tests {
		got := Intersection(tt.box, view, tt.margin)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

type box struct {
	name string
	rect Rect
	hits int
}

func (b *box) Box() Rect                  { return b.rect }
func (b *box) AddClass(string)            { b.hits++ }
func (b *box) SetStyle(string, string)    {}
func (b *box) Attr(string) (string, bool) { return "", false }
func (b *box) SetAttr(string, string)     {}
func (b *box) RemoveAttr(string)          {}

type unmeasured struct{ box }

func (u *unmeasured) Box() {}

func TestTrackerReportsChanges(t *testing.T) {
	view := Rect{Top: 0, Height: 10}
	var batches [][]reveal.Entry
	tr := NewTracker(func() Rect { return view }, reveal.Options{Threshold: 0.5}, func(b []reveal.Entry) {
		batches = append(batches, b)
	})
	a := &box{name: "a", rect: Rect{2, 4}}
	b := &box{name: "b", rect: Rect{20, 4}}
	tr.Watch(a)
	tr.Watch(b)

	if n := tr.Check(); n != 2 {
		t.Fatalf("first check should report both, got %d", n)
	}
	first := batches[0]
	if first[0].Target != a || !first[0].Intersecting || first[1].Target != b || first[1].Intersecting {
		t.Fatalf("unexpected first batch %+v", first)
	}

	if n := tr.Check(); n != 0 {
		t.Errorf("unchanged check reported %d", n)
	}

	view = Rect{Top: 15, Height: 10}
	if n := tr.Check(); n != 2 {
		t.Fatalf("expected both to flip, got %d", n)
	}
	last := batches[len(batches)-1]
	if last[0].Intersecting || !last[1].Intersecting {
		t.Errorf("unexpected flip batch %+v", last)
	}
}

func TestTrackerThreshold(t *testing.T) {
	view := Rect{Top: 0, Height: 10}
	var got []reveal.Entry
	tr := NewTracker(func() Rect { return view }, reveal.Options{Threshold: 0.5}, func(b []reveal.Entry) { got = b })
	el := &box{rect: Rect{8, 10}}
	tr.Watch(el)
	tr.Check()
	if got[0].Intersecting {
		t.Fatalf("20%% visible should not pass a 0.5 threshold")
	}
	view.Top = 4
	tr.Check()
	if !got[0].Intersecting || got[0].Ratio != 0.6 {
		t.Errorf("expected 60%% visible, got %+v", got[0])
	}
}

func TestTrackerWithObserver(t *testing.T) {
	view := Rect{Top: 0, Height: 10}
	var tr *Tracker
	obs, err := reveal.New(Factory(func() Rect { return view }, func(t *Tracker) { tr = t }),
		reveal.AddClass("visible"), reveal.Options{Threshold: 0.1, RootMargin: reveal.Margin{Bottom: -2}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	a := &box{rect: Rect{0, 3}}
	b := &box{rect: Rect{9, 3}}
	c := &box{rect: Rect{30, 3}}
	obs.Observe(a, b, c)

	tr.Check()
	if a.hits != 1 || b.hits != 0 || c.hits != 0 {
		t.Fatalf("expected only a revealed, got a=%d b=%d c=%d", a.hits, b.hits, c.hits)
	}
	if tr.Len() != 2 {
		t.Errorf("revealed element should be unwatched, tracker has %d", tr.Len())
	}

	view.Top = 5
	tr.Check()
	view.Top = 0
	tr.Check()
	view.Top = 5
	tr.Check()
	if a.hits != 1 || b.hits != 1 || c.hits != 0 {
		t.Errorf("expected single reveals, got a=%d b=%d c=%d", a.hits, b.hits, c.hits)
	}

	obs.DisconnectAll()
	view.Top = 30
	if n := tr.Check(); n != 0 || c.hits != 0 {
		t.Errorf("check after disconnect delivered %d entries", n)
	}
}

func TestTrackerSkipsUnmeasurable(t *testing.T) {
	calls := 0
	tr := NewTracker(func() Rect { return Rect{0, 10} }, reveal.DefaultOptions(), func([]reveal.Entry) { calls++ })
	tr.Watch(&unmeasured{})
	if n := tr.Check(); n != 0 || calls != 0 {
		t.Errorf("unmeasurable element reported")
	}
}
