package geom_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/trimfit/pkg/geom"
)

var _ = Describe("Rect", func() {
	Describe("NewRect", func() {
		It("normalizes swapped corners", func() {
			r := geom.NewRect(50, 60, 10, 20)
			Expect(r).To(Equal(geom.Rect{X0: 10, Y0: 20, X1: 50, Y1: 60}))
		})
	})

	DescribeTable("Union",
		func(a, b, want geom.Rect) {
			Expect(a.Union(b)).To(Equal(want))
			Expect(b.Union(a)).To(Equal(want))
		},
		Entry("disjoint rectangles",
			geom.Rect{X0: 0, Y0: 0, X1: 10, Y1: 10},
			geom.Rect{X0: 20, Y0: 20, X1: 30, Y1: 30},
			geom.Rect{X0: 0, Y0: 0, X1: 30, Y1: 30}),
		Entry("one inside the other",
			geom.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100},
			geom.Rect{X0: 10, Y0: 10, X1: 20, Y1: 20},
			geom.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}),
		Entry("partial overlap",
			geom.Rect{X0: 0, Y0: 0, X1: 15, Y1: 15},
			geom.Rect{X0: 10, Y0: 10, X1: 30, Y1: 30},
			geom.Rect{X0: 0, Y0: 0, X1: 30, Y1: 30}),
	)

	DescribeTable("Intersect",
		func(a, b, want geom.Rect) {
			Expect(a.Intersect(b)).To(Equal(want))
			Expect(b.Intersect(a)).To(Equal(want))
		},
		Entry("overlapping rectangles",
			geom.Rect{X0: 0, Y0: 0, X1: 20, Y1: 20},
			geom.Rect{X0: 10, Y0: 10, X1: 30, Y1: 30},
			geom.Rect{X0: 10, Y0: 10, X1: 20, Y1: 20}),
		Entry("contained rectangle",
			geom.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100},
			geom.Rect{X0: 25, Y0: 25, X1: 75, Y1: 75},
			geom.Rect{X0: 25, Y0: 25, X1: 75, Y1: 75}),
		Entry("disjoint rectangles collapse to zero",
			geom.Rect{X0: 0, Y0: 0, X1: 10, Y1: 10},
			geom.Rect{X0: 20, Y0: 20, X1: 30, Y1: 30},
			geom.Rect{}),
		Entry("rectangle reaching past the other side is clipped",
			geom.Rect{X0: -5, Y0: -5, X1: 250, Y1: 120},
			geom.Rect{X0: 0, Y0: 0, X1: 200, Y1: 100},
			geom.Rect{X0: 0, Y0: 0, X1: 200, Y1: 100}),
	)

	Describe("Pad", func() {
		It("grows the rectangle on every side", func() {
			r := geom.Rect{X0: 10, Y0: 10, X1: 50, Y1: 50}
			Expect(r.Pad(1)).To(Equal(geom.Rect{X0: 9, Y0: 9, X1: 51, Y1: 51}))
		})

		It("shrinks with a negative margin", func() {
			r := geom.Rect{X0: 10, Y0: 10, X1: 50, Y1: 50}
			Expect(r.Pad(-5)).To(Equal(geom.Rect{X0: 15, Y0: 15, X1: 45, Y1: 45}))
		})
	})

	Describe("Empty", func() {
		It("is true for the zero rectangle", func() {
			Expect(geom.Rect{}.Empty()).To(BeTrue())
		})

		It("is true when width or height collapses", func() {
			Expect(geom.Rect{X0: 5, Y0: 0, X1: 5, Y1: 10}.Empty()).To(BeTrue())
			Expect(geom.Rect{X0: 0, Y0: 9, X1: 10, Y1: 3}.Empty()).To(BeTrue())
		})

		It("is false for a real area", func() {
			Expect(geom.Rect{X0: 0, Y0: 0, X1: 1, Y1: 1}.Empty()).To(BeFalse())
		})
	})
})

var _ = Describe("Size", func() {
	It("reports the inner canvas after margins", func() {
		inner := geom.Size{Width: 8.5, Height: 11}.Inner(0.5)
		Expect(inner.Width).To(BeNumerically("~", 7.5, 1e-9))
		Expect(inner.Height).To(BeNumerically("~", 10.0, 1e-9))
	})

	It("goes non-positive when the margin swallows the page", func() {
		inner := geom.Size{Width: 1, Height: 1}.Inner(0.6)
		Expect(inner.Width).To(BeNumerically("<", 0))
		Expect(inner.Height).To(BeNumerically("<", 0))
	})

	DescribeTable("orientation",
		func(s geom.Size, landscape, portrait geom.Size) {
			Expect(s.Landscape()).To(Equal(landscape))
			Expect(s.Portrait()).To(Equal(portrait))
		},
		Entry("portrait input", geom.Size{Width: 8.5, Height: 11},
			geom.Size{Width: 11, Height: 8.5}, geom.Size{Width: 8.5, Height: 11}),
		Entry("landscape input", geom.Size{Width: 11, Height: 8.5},
			geom.Size{Width: 11, Height: 8.5}, geom.Size{Width: 8.5, Height: 11}),
		Entry("square input", geom.Size{Width: 5, Height: 5},
			geom.Size{Width: 5, Height: 5}, geom.Size{Width: 5, Height: 5}),
	)
})
