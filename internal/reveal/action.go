package reveal

import (
	"fmt"
	"sort"
	"time"
)

// Action is the one-time transition applied when an element first becomes
// visible.
type Action interface {
	Reveal(el Element)
}

type ActionFunc func(el Element)

func (f ActionFunc) Reveal(el Element) { f(el) }

// AddClass adds class names to the element.
func AddClass(names ...string) Action {
	return ActionFunc(func(el Element) {
		for _, n := range names {
			el.AddClass(n)
		}
	})
}

// Style sets inline style properties, in property name order.
func Style(props map[string]string) Action {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return ActionFunc(func(el Element) {
		for _, k := range keys {
			el.SetStyle(k, props[k])
		}
	})
}

// SettleStyle moves the element to its resting opacity and transform.
func SettleStyle() Action {
	return Style(map[string]string{
		"opacity":   "1",
		"transform": "translateY(0)",
	})
}

// Animation assigns a CSS animation name.
func Animation(name string) Action {
	return ActionFunc(func(el Element) {
		el.SetStyle("animation-name", name)
	})
}

// Chain applies actions in order.
func Chain(actions ...Action) Action {
	return ActionFunc(func(el Element) {
		for _, a := range actions {
			a.Reveal(el)
		}
	})
}

const (
	AnimationAttr = "data-animation"
	LazySrcAttr   = "data-src"
	LoadedClass   = "loaded"
)

// AnimationDuration is the transition length used by the named animations.
const AnimationDuration = 300 * time.Millisecond

func fadeIn(el Element) {
	el.SetStyle("transition", fmt.Sprintf("opacity %dms ease-in", AnimationDuration.Milliseconds()))
	el.SetStyle("opacity", "1")
}

func slideIn(axis string) ActionFunc {
	return func(el Element) {
		el.SetStyle("transition", fmt.Sprintf("transform %dms ease-out", AnimationDuration.Milliseconds()))
		el.SetStyle("transform", "translate"+axis+"(0)")
	}
}

func scaleUp(el Element) {
	el.SetStyle("transition", fmt.Sprintf("transform %dms ease-in-out", AnimationDuration.Milliseconds()))
	el.SetStyle("transform", "scale(1.1)")
}

var namedAnimations = map[string]ActionFunc{
	"fadeIn":        fadeIn,
	"slideInLeft":   slideIn("X"),
	"slideInRight":  slideIn("X"),
	"slideInTop":    slideIn("Y"),
	"slideInBottom": slideIn("Y"),
	"scaleUp":       scaleUp,
}

// AnimationNames lists the names Animate understands.
func AnimationNames() []string {
	names := make([]string, 0, len(namedAnimations))
	for n := range namedAnimations {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Animate runs the animation named by the element's data-animation
// attribute. Unknown or missing names do nothing.
func Animate() Action {
	return ActionFunc(func(el Element) {
		name, ok := el.Attr(AnimationAttr)
		if !ok {
			return
		}
		if fn, ok := namedAnimations[name]; ok {
			fn(el)
		}
	})
}

// LazyImage moves data-src into src.
func LazyImage() Action {
	return ActionFunc(func(el Element) {
		src, ok := el.Attr(LazySrcAttr)
		if !ok {
			return
		}
		el.SetAttr("src", src)
		el.RemoveAttr(LazySrcAttr)
	})
}

// LoadAndAnimate loads lazy images, runs the named animation and marks the
// element loaded.
func LoadAndAnimate() Action {
	return Chain(LazyImage(), Animate(), AddClass(LoadedClass))
}
