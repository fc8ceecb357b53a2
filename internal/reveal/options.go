package reveal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Margin grows (positive) or shrinks (negative) the intersection root on each
// side, in the same units the Source measures in.
type Margin struct {
	Top, Right, Bottom, Left int
}

// ParseMargin accepts the CSS rootMargin shorthand with one to four values,
// e.g. "0px", "10px 0px" or "0px 0px -100px 0px". A bare 0 is allowed.
func ParseMargin(css string) (Margin, error) {
	fields := strings.Fields(css)
	if len(fields) == 0 {
		return Margin{}, nil
	}
	if len(fields) > 4 {
		return Margin{}, fmt.Errorf("%w: root margin %q has %d values", ErrConfiguration, css, len(fields))
	}
	vals := make([]int, len(fields))
	for i, f := range fields {
		num := strings.TrimSuffix(f, "px")
		if num == f && f != "0" {
			return Margin{}, fmt.Errorf("%w: root margin value %q must be in px", ErrConfiguration, f)
		}
		v, err := strconv.Atoi(num)
		if err != nil {
			return Margin{}, fmt.Errorf("%w: root margin value %q: %v", ErrConfiguration, f, err)
		}
		vals[i] = v
	}
	switch len(vals) {
	case 1:
		return Margin{vals[0], vals[0], vals[0], vals[0]}, nil
	case 2:
		return Margin{vals[0], vals[1], vals[0], vals[1]}, nil
	case 3:
		return Margin{vals[0], vals[1], vals[2], vals[1]}, nil
	}
	return Margin{vals[0], vals[1], vals[2], vals[3]}, nil
}

func (m Margin) String() string {
	return fmt.Sprintf("%dpx %dpx %dpx %dpx", m.Top, m.Right, m.Bottom, m.Left)
}

// Options configure when an element counts as visible.
type Options struct {
	// Threshold is the fraction of the element that must intersect the root.
	Threshold  float64
	RootMargin Margin
}

func DefaultOptions() Options {
	return Options{Threshold: 0.1}
}

func (o Options) Validate() error {
	if math.IsNaN(o.Threshold) || o.Threshold < 0 || o.Threshold > 1 {
		return fmt.Errorf("%w: threshold %v outside [0,1]", ErrConfiguration, o.Threshold)
	}
	return nil
}

// Visible applies the threshold to an intersection ratio. A zero threshold
// means any overlap at all.
func (o Options) Visible(ratio float64) bool {
	if o.Threshold == 0 {
		return ratio > 0
	}
	return ratio >= o.Threshold
}
