package viewport

import "github.com/san-kum/termfolio/internal/reveal"

// Rect is a vertical span of document lines.
type Rect struct {
	Top, Height int
}

func (r Rect) Bottom() int { return r.Top + r.Height }

// Boxed elements can be measured against the viewport.
type Boxed interface {
	Box() Rect
}

// Intersection returns the fraction of box inside view after applying the
// root margin. Only the top and bottom margins matter for line geometry.
// A zero-height box counts as fully visible when its line is inside the
// root.
func Intersection(box, view Rect, m reveal.Margin) float64 {
	rootTop := view.Top - m.Top
	rootBottom := view.Bottom() + m.Bottom
	if rootBottom <= rootTop {
		return 0
	}
	if box.Height <= 0 {
		if box.Top >= rootTop && box.Top < rootBottom {
			return 1
		}
		return 0
	}
	top := max(box.Top, rootTop)
	bottom := min(box.Bottom(), rootBottom)
	if bottom <= top {
		return 0
	}
	return float64(bottom-top) / float64(box.Height)
}
