package pdf

import "github.com/kpauljoseph/trimfit/pkg/geom"

// Color is an RGB color with channels in [0,1]. Gray and CMYK values
// from content streams are converted on the way in.
type Color struct {
	R float64
	G float64
	B float64
}

// NearWhite reports whether every channel sits above the threshold the
// detector treats as indistinguishable from the page background.
func (c Color) NearWhite() bool {
	return c.R > nearWhiteThreshold && c.G > nearWhiteThreshold && c.B > nearWhiteThreshold
}

// Drawing is one painted path from a page's content stream. Stroke and
// Fill are nil when the path was not stroked or filled respectively.
type Drawing struct {
	Rect   geom.Rect
	Stroke *Color
	Fill   *Color
}

type BlockKind int

const (
	BlockText BlockKind = iota
	BlockImage
)

// Block is a placed text run or image. Unlike drawings, blocks count as
// visible content regardless of color.
type Block struct {
	Kind BlockKind
	Rect geom.Rect
}

// Page holds the geometry and content objects of a single page, in PDF
// user space (points, origin bottom-left).
type Page struct {
	Number   int // 1-based
	MediaBox geom.Rect
	CropBox  geom.Rect
	Drawings []Drawing
	Blocks   []Block
}
