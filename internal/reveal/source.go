package reveal

// Element is an opaque handle to something that can be revealed. Handles are
// used as map keys, so implementations should be pointers.
type Element interface {
	AddClass(name string)
	SetStyle(prop, value string)
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
}

// Entry is one element's visibility as reported by a Source.
type Entry struct {
	Target       Element
	Intersecting bool
	Ratio        float64
}

// Source is the host's visibility primitive.
type Source interface {
	Watch(el Element)
	Unwatch(el Element)
	Disconnect()
}

// SourceFactory builds a Source that reports batches to notify.
type SourceFactory func(opts Options, notify func([]Entry)) Source

// Unavailable is the factory for hosts without a visibility primitive.
// Observers built with it never reveal anything.
var Unavailable SourceFactory
