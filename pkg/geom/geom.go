// Package geom provides the small set of planar primitives the rest of
// the tool works in: points, axis-aligned rectangles in PDF user space
// (origin bottom-left, units of 1/72 inch) and physical page sizes in
// inches.
package geom

import "fmt"

// Point is a position in PDF user space.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle spanning (X0,Y0) lower-left to
// (X1,Y1) upper-right.
type Rect struct {
	X0 float64
	Y0 float64
	X1 float64
	Y1 float64
}

// NewRect returns the rectangle covering both corner points, whichever
// order they are given in.
func NewRect(x0, y0, x1, y1 float64) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Empty reports whether the rectangle encloses no area.
func (r Rect) Empty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// Intersect returns the overlap of r and o, or the zero Rect when the
// two do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		X0: max(r.X0, o.X0),
		Y0: max(r.Y0, o.Y0),
		X1: min(r.X1, o.X1),
		Y1: min(r.Y1, o.Y1),
	}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// Pad grows the rectangle outward by m on every side. A negative m
// shrinks it instead.
func (r Rect) Pad(m float64) Rect {
	return Rect{X0: r.X0 - m, Y0: r.Y0 - m, X1: r.X1 + m, Y1: r.Y1 + m}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f, %.2f)", r.X0, r.Y0, r.X1, r.Y1)
}

// Size is a physical page size in inches.
type Size struct {
	Width  float64
	Height float64
}

// Inner returns the size shrunk by the given margin (in inches) on all
// four sides. The result may be non-positive when the margin is too
// large; callers are expected to reject that.
func (s Size) Inner(margin float64) Size {
	return Size{Width: s.Width - 2*margin, Height: s.Height - 2*margin}
}

// Landscape returns the size with the longer edge horizontal.
func (s Size) Landscape() Size {
	if s.Width < s.Height {
		return Size{Width: s.Height, Height: s.Width}
	}
	return s
}

// Portrait returns the size with the longer edge vertical.
func (s Size) Portrait() Size {
	if s.Width > s.Height {
		return Size{Width: s.Height, Height: s.Width}
	}
	return s
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}
