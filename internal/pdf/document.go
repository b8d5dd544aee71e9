// Package pdf reads page geometry and content objects out of PDF files
// and writes adjusted crop boxes back, using pdfcpu as the underlying
// document engine.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/kpauljoseph/trimfit/pkg/geom"
)

// Document is an open PDF whose pages can be inspected and whose crop
// boxes can be rewritten before saving.
type Document struct {
	ctx  *model.Context
	path string
}

func Open(path string) (*Document, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF %s: %w", path, err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid PDF %s: %w", path, err)
	}
	return &Document{ctx: ctx, path: path}, nil
}

func (d *Document) Path() string { return d.path }

func (d *Document) PageCount() int { return d.ctx.PageCount }

// Page loads one page (1-based) with its boxes, drawings and blocks.
func (d *Document) Page(number int) (*Page, error) {
	pageDict, attrs, err := d.pageDict(number)
	if err != nil {
		return nil, err
	}

	// Default per the PDF spec when no media box is found anywhere.
	media := geom.Rect{X1: 612, Y1: 792}
	if attrs != nil && attrs.MediaBox != nil {
		media = rectFromPDF(attrs.MediaBox)
	}
	crop := media
	if r, ok := d.rectFromObject(pageDict["CropBox"]); ok {
		crop = r
	} else if attrs != nil && attrs.CropBox != nil {
		crop = rectFromPDF(attrs.CropBox)
	}

	content, err := d.pageContent(pageDict)
	if err != nil {
		return nil, fmt.Errorf("failed to read page %d content: %w", number, err)
	}

	res := derefDict(d.ctx, pageDict["Resources"])
	if res == nil && attrs != nil {
		res = attrs.Resources
	}

	ex := newExtractor(d.ctx, res)
	ex.parse(content)

	return &Page{
		Number:   number,
		MediaBox: media,
		CropBox:  crop,
		Drawings: ex.drawings,
		Blocks:   ex.blocks,
	}, nil
}

// SetCropBox rewrites the page's crop box. The change is only persisted
// by a later SaveAs.
func (d *Document) SetCropBox(number int, r geom.Rect) error {
	pageDict, _, err := d.pageDict(number)
	if err != nil {
		return err
	}
	pageDict["CropBox"] = types.NewNumberArray(r.X0, r.Y0, r.X1, r.Y1)
	return nil
}

func (d *Document) SaveAs(path string) error {
	if err := api.WriteContextFile(d.ctx, path); err != nil {
		return fmt.Errorf("failed to write PDF %s: %w", path, err)
	}
	return nil
}

func (d *Document) pageDict(number int) (types.Dict, *model.InheritedPageAttrs, error) {
	if number < 1 || number > d.ctx.PageCount {
		return nil, nil, fmt.Errorf("page %d out of range (1..%d)", number, d.ctx.PageCount)
	}
	pageDict, _, attrs, err := d.ctx.PageDict(number, false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load page %d: %w", number, err)
	}
	if pageDict == nil {
		return nil, nil, fmt.Errorf("page %d has no dictionary", number)
	}
	return pageDict, attrs, nil
}

// pageContent returns the page's content stream, with multiple streams
// joined by newlines the way the PDF spec says they concatenate.
func (d *Document) pageContent(pageDict types.Dict) ([]byte, error) {
	obj, ok := pageDict["Contents"]
	if !ok {
		return nil, nil
	}

	switch v := obj.(type) {
	case types.IndirectRef:
		return d.streamContent(v)
	case *types.IndirectRef:
		if v == nil {
			return nil, nil
		}
		return d.streamContent(*v)
	case types.Array:
		var parts [][]byte
		for _, elem := range v {
			ir, ok := elem.(types.IndirectRef)
			if !ok {
				p, isPtr := elem.(*types.IndirectRef)
				if !isPtr || p == nil {
					continue
				}
				ir = *p
			}
			data, err := d.streamContent(ir)
			if err != nil {
				return nil, err
			}
			parts = append(parts, data)
		}
		return bytes.Join(parts, []byte("\n")), nil
	}
	return nil, nil
}

func (d *Document) streamContent(ir types.IndirectRef) ([]byte, error) {
	sd, _, err := d.ctx.DereferenceStreamDict(ir)
	if err != nil {
		return nil, err
	}
	if sd == nil {
		return nil, nil
	}
	if err := sd.Decode(); err != nil {
		return nil, fmt.Errorf("failed to decode content stream: %w", err)
	}
	return sd.Content, nil
}

func (d *Document) rectFromObject(obj types.Object) (geom.Rect, bool) {
	if obj == nil {
		return geom.Rect{}, false
	}
	resolved, err := d.ctx.Dereference(obj)
	if err != nil || resolved == nil {
		return geom.Rect{}, false
	}
	arr, ok := resolved.(types.Array)
	if !ok || len(arr) != 4 {
		return geom.Rect{}, false
	}
	var vals [4]float64
	for i, elem := range arr {
		v, ok := objFloat(elem)
		if !ok {
			return geom.Rect{}, false
		}
		vals[i] = v
	}
	return geom.NewRect(vals[0], vals[1], vals[2], vals[3]), true
}

func rectFromPDF(r *types.Rectangle) geom.Rect {
	return geom.NewRect(r.LL.X, r.LL.Y, r.UR.X, r.UR.Y)
}

func derefDict(ctx *model.Context, obj types.Object) types.Dict {
	switch v := obj.(type) {
	case types.Dict:
		return v
	case types.IndirectRef:
		d, err := ctx.DereferenceDict(v)
		if err != nil {
			return nil
		}
		return d
	case *types.IndirectRef:
		if v == nil {
			return nil
		}
		d, err := ctx.DereferenceDict(*v)
		if err != nil {
			return nil
		}
		return d
	}
	return nil
}

func derefStream(ctx *model.Context, obj types.Object) *types.StreamDict {
	switch v := obj.(type) {
	case types.StreamDict:
		return &v
	case *types.StreamDict:
		return v
	case types.IndirectRef:
		sd, _, err := ctx.DereferenceStreamDict(v)
		if err != nil {
			return nil
		}
		return sd
	case *types.IndirectRef:
		if v == nil {
			return nil
		}
		sd, _, err := ctx.DereferenceStreamDict(*v)
		if err != nil {
			return nil
		}
		return sd
	}
	return nil
}

func objFloat(obj types.Object) (float64, bool) {
	switch v := obj.(type) {
	case types.Integer:
		return float64(v), true
	case types.Float:
		return float64(v), true
	}
	return 0, false
}
