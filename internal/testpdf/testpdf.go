// Package testpdf writes small hand-assembled PDF files for tests. The
// content streams stay uncompressed so fixtures are readable and easy
// to reason about.
package testpdf

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// XObject describes an optional page resource: either a 1x1 RGB image
// or a form with its own content stream.
type XObject struct {
	Subtype string    // "Image" or "Form"
	Content string    // form content stream
	Matrix  []float64 // optional form matrix, 6 values
}

// Page describes one fixture page. Every page carries a Helvetica font
// resource under /F1 so text operators validate.
type Page struct {
	Width   float64
	Height  float64
	Content string
	// ExtraContent, when set, becomes a second content stream so the
	// page's Contents entry is an array.
	ExtraContent string
	XObjects     map[string]XObject
}

// fixed object numbers: 1 catalog, 2 page tree, 3 shared font
const firstPageObj = 4

// Write assembles the pages into a minimal but valid PDF at path.
func Write(path string, pages ...Page) error {
	bodies := assemble(pages)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(bodies)+1)
	for i, body := range bodies {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(bodies)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(bodies); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(bodies)+1, xref)

	return os.WriteFile(path, buf.Bytes(), 0644)
}

func assemble(pages []Page) []string {
	type pageRefs struct {
		page     int
		contents []int
		xobjects map[string]int
	}

	refs := make([]pageRefs, len(pages))
	next := firstPageObj
	for i, p := range pages {
		r := pageRefs{page: next, xobjects: map[string]int{}}
		next++
		r.contents = append(r.contents, next)
		next++
		if p.ExtraContent != "" {
			r.contents = append(r.contents, next)
			next++
		}
		for _, name := range sortedNames(p.XObjects) {
			r.xobjects[name] = next
			next++
		}
		refs[i] = r
	}

	bodies := make([]string, next-1)
	bodies[0] = "<< /Type /Catalog /Pages 2 0 R >>"

	kids := make([]string, len(refs))
	for i, r := range refs {
		kids[i] = fmt.Sprintf("%d 0 R", r.page)
	}
	bodies[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), len(pages))
	bodies[2] = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>"

	for i, p := range pages {
		r := refs[i]
		bodies[r.page-1] = pageBody(p, r.contents, r.xobjects)
		bodies[r.contents[0]-1] = streamBody(p.Content, "")
		if len(r.contents) > 1 {
			bodies[r.contents[1]-1] = streamBody(p.ExtraContent, "")
		}
		for _, name := range sortedNames(p.XObjects) {
			bodies[r.xobjects[name]-1] = xobjectBody(p.XObjects[name])
		}
	}

	return bodies
}

func pageBody(p Page, contents []int, xobjects map[string]int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %s %s]",
		num(p.Width), num(p.Height))

	b.WriteString(" /Resources << /Font << /F1 3 0 R >>")
	if len(xobjects) > 0 {
		b.WriteString(" /XObject <<")
		for _, name := range sortedNames(p.XObjects) {
			fmt.Fprintf(&b, " /%s %d 0 R", name, xobjects[name])
		}
		b.WriteString(" >>")
	}
	b.WriteString(" >>")

	if len(contents) == 1 {
		fmt.Fprintf(&b, " /Contents %d 0 R", contents[0])
	} else {
		parts := make([]string, len(contents))
		for i, n := range contents {
			parts[i] = fmt.Sprintf("%d 0 R", n)
		}
		fmt.Fprintf(&b, " /Contents [%s]", strings.Join(parts, " "))
	}

	b.WriteString(" >>")
	return b.String()
}

func streamBody(data, extraKeys string) string {
	return fmt.Sprintf("<< /Length %d%s >>\nstream\n%s\nendstream",
		len(data), extraKeys, data)
}

func xobjectBody(x XObject) string {
	if x.Subtype == "Image" {
		data := "\xff\x00\x00"
		keys := " /Type /XObject /Subtype /Image /Width 1 /Height 1" +
			" /ColorSpace /DeviceRGB /BitsPerComponent 8"
		return streamBody(data, keys)
	}

	keys := " /Type /XObject /Subtype /Form /BBox [-10000 -10000 10000 10000]" +
		" /Resources << /Font << /F1 3 0 R >> >>"
	if len(x.Matrix) == 6 {
		vals := make([]string, 6)
		for i, v := range x.Matrix {
			vals[i] = num(v)
		}
		keys += fmt.Sprintf(" /Matrix [%s]", strings.Join(vals, " "))
	}
	return streamBody(x.Content, keys)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func sortedNames(m map[string]XObject) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
