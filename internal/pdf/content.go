package pdf

import (
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/kpauljoseph/trimfit/pkg/geom"
)

// maxFormDepth bounds recursion through nested Form XObjects so a
// self-referencing document cannot loop the extractor.
const maxFormDepth = 8

// operators is the set of content stream operator keywords. Any other
// token is an operand.
var operators = map[string]bool{
	"b": true, "b*": true, "B": true, "B*": true, "BDC": true, "BI": true,
	"BMC": true, "BT": true, "BX": true, "c": true, "cm": true, "cs": true,
	"CS": true, "d": true, "d0": true, "d1": true, "Do": true, "DP": true,
	"EI": true, "EMC": true, "ET": true, "EX": true, "f": true, "f*": true,
	"F": true, "g": true, "G": true, "gs": true, "h": true, "i": true,
	"ID": true, "j": true, "J": true, "k": true, "K": true, "l": true,
	"m": true, "M": true, "MP": true, "n": true, "q": true, "Q": true,
	"re": true, "rg": true, "RG": true, "ri": true, "s": true, "S": true,
	"sc": true, "scn": true, "SC": true, "SCN": true, "sh": true,
	"T*": true, "Tc": true, "Td": true, "TD": true, "Tf": true, "Tj": true,
	"TJ": true, "TL": true, "Tm": true, "Tr": true, "Ts": true, "Tw": true,
	"Tz": true, "v": true, "w": true, "W": true, "W*": true, "y": true,
	"'": true, "\"": true,
}

// graphicsState is the slice of PDF graphics state the extractor cares
// about: the transformation matrix and the two current colors.
type graphicsState struct {
	ctm    matrix
	stroke Color
	fill   Color
}

type textState struct {
	size      float64
	leading   float64
	charSpace float64
	wordSpace float64
	rise      float64
	scale     float64 // horizontal scaling, percent
}

// extractor interprets a content stream far enough to recover the
// bounding boxes and colors of painted paths, text runs and images.
// Glyph metrics are approximated since fonts are never loaded; the
// resulting text boxes are close enough for content detection.
type extractor struct {
	ctx   *model.Context
	res   types.Dict
	depth int

	gs    graphicsState
	stack []graphicsState
	ts    textState
	tm    matrix // text matrix
	lm    matrix // text line matrix
	path  []geom.Point

	drawings []Drawing
	blocks   []Block
}

func newExtractor(ctx *model.Context, res types.Dict) *extractor {
	return &extractor{
		ctx: ctx,
		res: res,
		gs:  graphicsState{ctm: identityMatrix()},
		ts:  textState{size: 12, scale: 100},
		tm:  identityMatrix(),
		lm:  identityMatrix(),
	}
}

func (e *extractor) parse(content []byte) {
	var operands []string
	for _, tok := range tokenize(content) {
		if operators[tok] {
			e.apply(tok, operands)
			operands = operands[:0]
			continue
		}
		operands = append(operands, tok)
	}
}

func (e *extractor) apply(op string, args []string) {
	switch op {
	// graphics state
	case "q":
		e.stack = append(e.stack, e.gs)
	case "Q":
		if n := len(e.stack); n > 0 {
			e.gs = e.stack[n-1]
			e.stack = e.stack[:n-1]
		}
	case "cm":
		if m, ok := matrixOperands(args); ok {
			e.gs.ctm = mul(m, e.gs.ctm)
		}

	// color
	case "G":
		if v, ok := floatOperands(args, 1); ok {
			e.gs.stroke = Color{R: v[0], G: v[0], B: v[0]}
		}
	case "g":
		if v, ok := floatOperands(args, 1); ok {
			e.gs.fill = Color{R: v[0], G: v[0], B: v[0]}
		}
	case "RG":
		if v, ok := floatOperands(args, 3); ok {
			e.gs.stroke = Color{R: v[0], G: v[1], B: v[2]}
		}
	case "rg":
		if v, ok := floatOperands(args, 3); ok {
			e.gs.fill = Color{R: v[0], G: v[1], B: v[2]}
		}
	case "K":
		if v, ok := floatOperands(args, 4); ok {
			e.gs.stroke = cmykToRGB(v[0], v[1], v[2], v[3])
		}
	case "k":
		if v, ok := floatOperands(args, 4); ok {
			e.gs.fill = cmykToRGB(v[0], v[1], v[2], v[3])
		}
	case "CS":
		// selecting a color space resets the color to black
		e.gs.stroke = Color{}
	case "cs":
		e.gs.fill = Color{}
	case "SC", "SCN":
		e.setComponentColor(args, &e.gs.stroke)
	case "sc", "scn":
		e.setComponentColor(args, &e.gs.fill)

	// path construction
	case "m", "l":
		e.appendPathPoints(args, 1)
	case "v", "y":
		e.appendPathPoints(args, 2)
	case "c":
		e.appendPathPoints(args, 3)
	case "re":
		if v, ok := floatOperands(args, 4); ok {
			x, y, w, h := v[0], v[1], v[2], v[3]
			e.path = append(e.path,
				geom.Point{X: x, Y: y},
				geom.Point{X: x + w, Y: y},
				geom.Point{X: x + w, Y: y + h},
				geom.Point{X: x, Y: y + h},
			)
		}
	case "h", "W", "W*":
		// close path / clip: neither changes the path bounds

	// path painting
	case "S", "s":
		e.paint(true, false)
	case "f", "F", "f*":
		e.paint(false, true)
	case "B", "B*", "b", "b*":
		e.paint(true, true)
	case "n":
		e.path = nil

	// text positioning and state
	case "BT":
		e.tm = identityMatrix()
		e.lm = identityMatrix()
	case "Tf":
		if v, ok := floatOperands(args, 1); ok {
			e.ts.size = v[0]
		}
	case "TL":
		if v, ok := floatOperands(args, 1); ok {
			e.ts.leading = v[0]
		}
	case "Tc":
		if v, ok := floatOperands(args, 1); ok {
			e.ts.charSpace = v[0]
		}
	case "Tw":
		if v, ok := floatOperands(args, 1); ok {
			e.ts.wordSpace = v[0]
		}
	case "Tz":
		if v, ok := floatOperands(args, 1); ok {
			e.ts.scale = v[0]
		}
	case "Ts":
		if v, ok := floatOperands(args, 1); ok {
			e.ts.rise = v[0]
		}
	case "Td":
		if v, ok := floatOperands(args, 2); ok {
			e.lm = mul(translationMatrix(v[0], v[1]), e.lm)
			e.tm = e.lm
		}
	case "TD":
		if v, ok := floatOperands(args, 2); ok {
			e.ts.leading = -v[1]
			e.lm = mul(translationMatrix(v[0], v[1]), e.lm)
			e.tm = e.lm
		}
	case "Tm":
		if m, ok := matrixOperands(args); ok {
			e.tm = m
			e.lm = m
		}
	case "T*":
		e.nextLine()

	// text showing
	case "Tj":
		if s, ok := lastString(args); ok {
			e.showString(s)
		}
	case "'":
		e.nextLine()
		if s, ok := lastString(args); ok {
			e.showString(s)
		}
	case "\"":
		if v, ok := floatOperands(args[:max(len(args)-1, 0)], 2); ok {
			e.ts.wordSpace = v[0]
			e.ts.charSpace = v[1]
		}
		e.nextLine()
		if s, ok := lastString(args); ok {
			e.showString(s)
		}
	case "TJ":
		e.showArray(args)

	// XObjects and inline images
	case "Do":
		if len(args) > 0 {
			e.doXObject(strings.TrimPrefix(args[len(args)-1], "/"))
		}
	case "EI":
		e.blocks = append(e.blocks, Block{Kind: BlockImage, Rect: e.gs.ctm.applyToRect(0, 0, 1, 1)})
	}
}

// paint records the current path as one drawing and starts a new path.
func (e *extractor) paint(stroke, fill bool) {
	if len(e.path) == 0 {
		return
	}
	p := e.gs.ctm.apply(e.path[0].X, e.path[0].Y)
	rect := geom.Rect{X0: p.X, Y0: p.Y, X1: p.X, Y1: p.Y}
	for _, pt := range e.path[1:] {
		q := e.gs.ctm.apply(pt.X, pt.Y)
		rect = rect.Union(geom.Rect{X0: q.X, Y0: q.Y, X1: q.X, Y1: q.Y})
	}

	d := Drawing{Rect: rect}
	if stroke {
		c := e.gs.stroke
		d.Stroke = &c
	}
	if fill {
		c := e.gs.fill
		d.Fill = &c
	}
	e.drawings = append(e.drawings, d)
	e.path = nil
}

func (e *extractor) appendPathPoints(args []string, n int) {
	v, ok := floatOperands(args, 2*n)
	if !ok {
		return
	}
	for i := 0; i < n; i++ {
		e.path = append(e.path, geom.Point{X: v[2*i], Y: v[2*i+1]})
	}
}

func (e *extractor) nextLine() {
	e.lm = mul(translationMatrix(0, -e.ts.leading), e.lm)
	e.tm = e.lm
}

// showString records one text run block and advances the text matrix by
// the run's approximate width.
func (e *extractor) showString(s string) {
	if s == "" {
		return
	}
	adv := 0.0
	for _, r := range s {
		w := charWidthFactor(r)*e.ts.size + e.ts.charSpace
		if r == ' ' {
			w += e.ts.wordSpace
		}
		adv += w * e.ts.scale / 100
	}

	trm := mul(e.tm, e.gs.ctm)
	rect := trm.applyToRect(0, e.ts.rise, adv, e.ts.rise+e.ts.size)
	e.blocks = append(e.blocks, Block{Kind: BlockText, Rect: rect})
	e.tm = mul(translationMatrix(adv, 0), e.tm)
}

// showArray handles TJ: strings show text, numbers shift the text
// matrix by -n/1000 text space units.
func (e *extractor) showArray(args []string) {
	for _, a := range args {
		switch {
		case a == "[" || a == "]":
		case isStringToken(a):
			e.showString(decodeString(a))
		default:
			if v, err := strconv.ParseFloat(a, 64); err == nil {
				tx := -v / 1000 * e.ts.size * e.ts.scale / 100
				e.tm = mul(translationMatrix(tx, 0), e.tm)
			}
		}
	}
}

func (e *extractor) doXObject(name string) {
	if e.ctx == nil || e.res == nil {
		return
	}
	xobjects := derefDict(e.ctx, e.res["XObject"])
	if xobjects == nil {
		return
	}
	sd := derefStream(e.ctx, xobjects[name])
	if sd == nil {
		return
	}

	subtype, _ := sd.Dict["Subtype"].(types.Name)
	switch subtype {
	case "Image":
		// images are placed on the CTM-mapped unit square
		e.blocks = append(e.blocks, Block{Kind: BlockImage, Rect: e.gs.ctm.applyToRect(0, 0, 1, 1)})
	case "Form":
		if e.depth >= maxFormDepth {
			return
		}
		if err := sd.Decode(); err != nil {
			return
		}
		sub := newExtractor(e.ctx, e.res)
		if res := derefDict(e.ctx, sd.Dict["Resources"]); res != nil {
			sub.res = res
		}
		sub.depth = e.depth + 1
		sub.gs = e.gs
		if arr, ok := sd.Dict["Matrix"].(types.Array); ok {
			if m, ok := matrixFromArray(arr); ok {
				sub.gs.ctm = mul(m, sub.gs.ctm)
			}
		}
		sub.parse(sd.Content)
		e.drawings = append(e.drawings, sub.drawings...)
		e.blocks = append(e.blocks, sub.blocks...)
	}
}

// setComponentColor interprets SC/SCN operands by component count: one
// is gray, three RGB, four CMYK. A bare pattern name leaves the color
// unchanged.
func (e *extractor) setComponentColor(args []string, target *Color) {
	var vals []float64
	for _, a := range args {
		if v, err := strconv.ParseFloat(a, 64); err == nil {
			vals = append(vals, v)
		}
	}
	switch len(vals) {
	case 1:
		*target = Color{R: vals[0], G: vals[0], B: vals[0]}
	case 3:
		*target = Color{R: vals[0], G: vals[1], B: vals[2]}
	case 4:
		*target = cmykToRGB(vals[0], vals[1], vals[2], vals[3])
	}
}

func cmykToRGB(c, m, y, k float64) Color {
	return Color{
		R: (1 - c) * (1 - k),
		G: (1 - m) * (1 - k),
		B: (1 - y) * (1 - k),
	}
}

// charWidthFactor approximates a glyph's advance as a fraction of the
// font size. Without loading fonts this is the best available guess; it
// only has to be good enough for content bounds.
func charWidthFactor(r rune) float64 {
	switch {
	case r == ' ':
		return 0.25
	case strings.ContainsRune("iIl1.,;:!|'`", r):
		return 0.3
	case strings.ContainsRune("mwMW@", r):
		return 0.8
	default:
		return 0.5
	}
}

// floatOperands parses the last n operands as numbers.
func floatOperands(args []string, n int) ([]float64, bool) {
	if len(args) < n {
		return nil, false
	}
	out := make([]float64, n)
	for i, a := range args[len(args)-n:] {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func matrixOperands(args []string) (matrix, bool) {
	v, ok := floatOperands(args, 6)
	if !ok {
		return matrix{}, false
	}
	return matrix{v[0], v[1], v[2], v[3], v[4], v[5]}, true
}

func matrixFromArray(arr types.Array) (matrix, bool) {
	if len(arr) != 6 {
		return matrix{}, false
	}
	var m matrix
	for i, obj := range arr {
		v, ok := objFloat(obj)
		if !ok {
			return matrix{}, false
		}
		m[i] = v
	}
	return m, true
}

func lastString(args []string) (string, bool) {
	for i := len(args) - 1; i >= 0; i-- {
		if isStringToken(args[i]) {
			return decodeString(args[i]), true
		}
	}
	return "", false
}
