package pdf

import "github.com/kpauljoseph/trimfit/pkg/geom"

// matrix is a PDF transformation matrix [a b c d e f], mapping
// (x, y) -> (a*x + c*y + e, b*x + d*y + f).
type matrix [6]float64

func identityMatrix() matrix {
	return matrix{1, 0, 0, 1, 0, 0}
}

func translationMatrix(tx, ty float64) matrix {
	return matrix{1, 0, 0, 1, tx, ty}
}

// mul composes two matrices so that applying the result equals applying
// m first and then n.
func mul(m, n matrix) matrix {
	return matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

func (m matrix) apply(x, y float64) geom.Point {
	return geom.Point{
		X: m[0]*x + m[2]*y + m[4],
		Y: m[1]*x + m[3]*y + m[5],
	}
}

// applyToRect maps the corners of a local-space rectangle through m and
// returns the covering axis-aligned rectangle, which keeps bounds
// correct under rotation.
func (m matrix) applyToRect(x0, y0, x1, y1 float64) geom.Rect {
	corners := []geom.Point{
		m.apply(x0, y0),
		m.apply(x1, y0),
		m.apply(x0, y1),
		m.apply(x1, y1),
	}
	r := geom.Rect{X0: corners[0].X, Y0: corners[0].Y, X1: corners[0].X, Y1: corners[0].Y}
	for _, p := range corners[1:] {
		r = r.Union(geom.Rect{X0: p.X, Y0: p.Y, X1: p.X, Y1: p.Y})
	}
	return r
}
