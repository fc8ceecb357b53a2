package reveal

import (
	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = g.Describe("Actions", func() {
	var el *fakeElement

	g.BeforeEach(func() {
		el = newFake("card")
	})

	g.Describe("AddClass", func() {
		g.It("adds every class in order", func() {
			AddClass("visible", "loaded").Reveal(el)
			Expect(el.classes).To(Equal([]string{"visible", "loaded"}))
		})
	})

	g.Describe("SettleStyle", func() {
		g.It("moves to resting opacity and transform", func() {
			SettleStyle().Reveal(el)
			Expect(el.styles).To(HaveKeyWithValue("opacity", "1"))
			Expect(el.styles).To(HaveKeyWithValue("transform", "translateY(0)"))
		})
	})

	g.Describe("Animation", func() {
		g.It("assigns the animation name", func() {
			Animation("fade-up").Reveal(el)
			Expect(el.styles).To(HaveKeyWithValue("animation-name", "fade-up"))
		})
	})

	g.Describe("Animate", func() {
		g.DescribeTable("named animations",
			func(name, prop, value string) {
				el.attrs[AnimationAttr] = name
				Animate().Reveal(el)
				Expect(el.styles).To(HaveKeyWithValue(prop, value))
				Expect(el.styles).To(HaveKey("transition"))
			},
			g.Entry("fadeIn", "fadeIn", "opacity", "1"),
			g.Entry("slideInLeft", "slideInLeft", "transform", "translateX(0)"),
			g.Entry("slideInRight", "slideInRight", "transform", "translateX(0)"),
			g.Entry("slideInTop", "slideInTop", "transform", "translateY(0)"),
			g.Entry("slideInBottom", "slideInBottom", "transform", "translateY(0)"),
			g.Entry("scaleUp", "scaleUp", "transform", "scale(1.1)"),
		)

		g.It("ignores unknown names", func() {
			el.attrs[AnimationAttr] = "wobble"
			Animate().Reveal(el)
			Expect(el.styles).To(BeEmpty())
		})

		g.It("ignores elements without the attribute", func() {
			Animate().Reveal(el)
			Expect(el.styles).To(BeEmpty())
		})

		g.It("lists every known name", func() {
			Expect(AnimationNames()).To(ConsistOf("fadeIn", "slideInLeft", "slideInRight", "slideInTop", "slideInBottom", "scaleUp"))
		})
	})

	g.Describe("LazyImage", func() {
		g.It("moves data-src to src", func() {
			el.attrs[LazySrcAttr] = "images/avatar.png"
			LazyImage().Reveal(el)
			Expect(el.attrs).To(HaveKeyWithValue("src", "images/avatar.png"))
			Expect(el.attrs).NotTo(HaveKey(LazySrcAttr))
		})

		g.It("leaves elements without data-src alone", func() {
			LazyImage().Reveal(el)
			Expect(el.attrs).To(BeEmpty())
		})
	})

	g.Describe("LoadAndAnimate", func() {
		g.It("loads, animates and marks the element", func() {
			el.attrs[LazySrcAttr] = "a.png"
			el.attrs[AnimationAttr] = "fadeIn"
			LoadAndAnimate().Reveal(el)
			Expect(el.attrs).To(HaveKeyWithValue("src", "a.png"))
			Expect(el.styles).To(HaveKeyWithValue("opacity", "1"))
			Expect(el.classes).To(ContainElement(LoadedClass))
		})
	})
})

var _ = g.Describe("Observer", func() {
	var (
		src     *fakeSource
		obs     *Observer
		a, b, c *fakeElement
	)

	g.BeforeEach(func() {
		var err error
		obs, err = New(fakeFactory(&src), LoadAndAnimate(), Options{Threshold: 0.1}, nil)
		Expect(err).NotTo(HaveOccurred())
		a, b, c = newFake("A"), newFake("B"), newFake("C")
		obs.Observe(a, b, c)
	})

	g.It("enrolls every element with the source", func() {
		Expect(src.names()).To(Equal([]string{"A", "B", "C"}))
		Expect(names(obs.Watching())).To(Equal([]string{"A", "B", "C"}))
	})

	g.It("reveals each element at most once across batches", func() {
		src.push(true, a, c)
		src.push(true, a, b)
		src.push(true, a, b, c)

		for _, el := range []*fakeElement{a, b, c} {
			Expect(el.classes).To(Equal([]string{LoadedClass}), el.name)
		}
		Expect(obs.Watching()).To(BeEmpty())
		Expect(obs.Revealed()).To(Equal(3))
	})

	g.It("leaves never-visible elements watched", func() {
		src.push(true, a)
		src.push(false, b, c)
		Expect(names(obs.Watching())).To(Equal([]string{"B", "C"}))
	})
})
