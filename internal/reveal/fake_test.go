package reveal

import "sort"

type fakeElement struct {
	name    string
	classes []string
	styles  map[string]string
	attrs   map[string]string
	reveals int
}

func newFake(name string) *fakeElement {
	return &fakeElement{name: name, styles: map[string]string{}, attrs: map[string]string{}}
}

func (f *fakeElement) AddClass(name string)        { f.classes = append(f.classes, name) }
func (f *fakeElement) SetStyle(prop, value string) { f.styles[prop] = value }
func (f *fakeElement) SetAttr(name, value string)  { f.attrs[name] = value }
func (f *fakeElement) RemoveAttr(name string)      { delete(f.attrs, name) }

func (f *fakeElement) Attr(name string) (string, bool) {
	v, ok := f.attrs[name]
	return v, ok
}

// fakeSource records watch calls and lets tests push batches.
type fakeSource struct {
	opts         Options
	notify       func([]Entry)
	watched      map[Element]bool
	disconnected bool
}

func (s *fakeSource) Watch(el Element)   { s.watched[el] = true }
func (s *fakeSource) Unwatch(el Element) { delete(s.watched, el) }
func (s *fakeSource) Disconnect() {
	s.disconnected = true
	s.watched = map[Element]bool{}
}

func (s *fakeSource) push(intersecting bool, els ...*fakeElement) {
	batch := make([]Entry, 0, len(els))
	for _, el := range els {
		batch = append(batch, Entry{Target: el, Intersecting: intersecting, Ratio: 1})
	}
	s.notify(batch)
}

func (s *fakeSource) names() []string {
	var out []string
	for el := range s.watched {
		out = append(out, el.(*fakeElement).name)
	}
	sort.Strings(out)
	return out
}

func fakeFactory(out **fakeSource) SourceFactory {
	return func(opts Options, notify func([]Entry)) Source {
		s := &fakeSource{opts: opts, notify: notify, watched: map[Element]bool{}}
		*out = s
		return s
	}
}

// countReveals increments the element's reveal counter.
var countReveals = ActionFunc(func(el Element) { el.(*fakeElement).reveals++ })

func names(els []Element) []string {
	out := make([]string, 0, len(els))
	for _, el := range els {
		out = append(out, el.(*fakeElement).name)
	}
	return out
}
