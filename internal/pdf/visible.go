package pdf

import "github.com/kpauljoseph/trimfit/pkg/geom"

const (
	// nearWhiteThreshold is the channel value above which a color is
	// treated as indistinguishable from the page background.
	nearWhiteThreshold = 0.95

	// contentPadding is how far the detected region is grown, in
	// points, so content is never cut off by rounding.
	contentPadding = 1.0
)

// Visible reports whether the drawing would show up against a white
// page: it must be stroked or filled with a color that is not near
// white.
func (d Drawing) Visible() bool {
	stroked := d.Stroke != nil && !d.Stroke.NearWhite()
	filled := d.Fill != nil && !d.Fill.NearWhite()
	return stroked || filled
}

// VisibleRect returns the page region that actually carries content:
// the union of all visibly-colored drawings and all text and image
// blocks, grown by one point and clipped to the media box. A page with
// no visible content keeps its full media extent.
func VisibleRect(p *Page) geom.Rect {
	var rects []geom.Rect
	for _, d := range p.Drawings {
		if d.Visible() {
			rects = append(rects, d.Rect)
		}
	}
	for _, b := range p.Blocks {
		rects = append(rects, b.Rect)
	}
	if len(rects) == 0 {
		return p.MediaBox
	}

	region := rects[0]
	for _, r := range rects[1:] {
		region = region.Union(r)
	}
	region = region.Pad(contentPadding).Intersect(p.MediaBox)
	if region.Empty() {
		// content sits entirely outside the media box
		return p.MediaBox
	}
	return region
}
