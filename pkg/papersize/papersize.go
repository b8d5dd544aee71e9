// Package papersize resolves user-supplied page size specs, either
// explicit "WIDTHxHEIGHT" dimensions in inches or a named paper format,
// into a concrete geom.Size.
package papersize

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kpauljoseph/trimfit/pkg/geom"
)

var (
	ErrInvalidSize        = errors.New("invalid size")
	ErrConflictingOptions = errors.New("conflicting options")
	ErrUnknownPaperSize   = errors.New("unknown paper size")
)

const pointsPerInch = 72.0

// paperSizes maps format names to (width, height) in points at 72 dpi.
// Entries keep the orientation the format is conventionally quoted in,
// so ledger is landscape while everything else is portrait.
var paperSizes = map[string][2]float64{
	"a0":            {2384, 3370},
	"a1":            {1684, 2384},
	"a2":            {1191, 1684},
	"a3":            {842, 1191},
	"a4":            {595, 842},
	"a5":            {420, 595},
	"a6":            {298, 420},
	"a7":            {210, 298},
	"a8":            {147, 210},
	"a9":            {105, 147},
	"a10":           {74, 105},
	"b0":            {2835, 4008},
	"b1":            {2004, 2835},
	"b2":            {1417, 2004},
	"b3":            {1001, 1417},
	"b4":            {709, 1001},
	"b5":            {499, 709},
	"b6":            {354, 499},
	"b7":            {249, 354},
	"b8":            {176, 249},
	"b9":            {125, 176},
	"b10":           {88, 125},
	"c0":            {2599, 3677},
	"c1":            {1837, 2599},
	"c2":            {1298, 1837},
	"c3":            {918, 1298},
	"c4":            {649, 918},
	"c5":            {459, 649},
	"c6":            {323, 459},
	"c7":            {230, 323},
	"c8":            {162, 230},
	"c9":            {113, 162},
	"c10":           {79, 113},
	"card-4x6":      {288, 432},
	"card-5x7":      {360, 504},
	"commercial":    {297, 684},
	"executive":     {522, 756},
	"invoice":       {396, 612},
	"ledger":        {1224, 792},
	"legal":         {612, 1008},
	"legal-13":      {612, 936},
	"letter":        {612, 792},
	"letter-4":      {624, 936},
	"monarch":       {279, 540},
	"tabloid-extra": {864, 1296},
}

// aliases maps accepted alternate names onto registry entries.
var aliases = map[string]string{
	"tabloid": "ledger",
}

// Names lists the paper names Resolve accepts, sorted, aliases
// excluded. Registry entries whose name contains an "x" (executive,
// the card formats, tabloid-extra) are left out: Resolve reads any
// spec with an "x" in it as explicit WIDTHxHEIGHT dimensions, so
// those entries can never be looked up by name.
func Names() []string {
	names := make([]string, 0, len(paperSizes))
	for name := range paperSizes {
		if strings.Contains(name, "x") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve turns a size spec into physical page dimensions in inches.
// The spec is either explicit dimensions such as "8.5x11" or a paper
// name such as "letter" or "a4" (case-insensitive). The orientation
// flags apply to named formats only: landscape forces width>height,
// portrait forces height>width, and with neither set the format keeps
// its native orientation.
func Resolve(spec string, landscape, portrait bool) (geom.Size, error) {
	if landscape && portrait {
		return geom.Size{}, fmt.Errorf("%w: --landscape and --portrait are mutually exclusive", ErrConflictingOptions)
	}

	s := strings.ToLower(strings.TrimSpace(spec))

	// Anything containing an "x" is explicit dimensions, never a name.
	if ws, hs, ok := strings.Cut(s, "x"); ok {
		ws = strings.TrimSpace(ws)
		hs = strings.TrimSpace(hs)
		if landscape || portrait {
			return geom.Size{}, fmt.Errorf("%w: orientation flags apply to named paper sizes only, not explicit dimensions", ErrConflictingOptions)
		}
		w, errW := strconv.ParseFloat(ws, 64)
		h, errH := strconv.ParseFloat(hs, 64)
		if errW != nil || errH != nil {
			return geom.Size{}, fmt.Errorf("%w %q: expected WIDTHxHEIGHT in inches, e.g. 8.5x11", ErrInvalidSize, spec)
		}
		if !(w > 0 && h > 0) {
			return geom.Size{}, fmt.Errorf("%w %q: dimensions must be positive", ErrInvalidSize, spec)
		}
		return geom.Size{Width: w, Height: h}, nil
	}

	name := s
	if target, ok := aliases[name]; ok {
		name = target
	}
	pts, ok := paperSizes[name]
	if !ok {
		return geom.Size{}, fmt.Errorf("%w %q: expected a name like letter, legal, a4 or ledger, or explicit WIDTHxHEIGHT inches", ErrUnknownPaperSize, spec)
	}

	size := geom.Size{Width: pts[0] / pointsPerInch, Height: pts[1] / pointsPerInch}
	switch {
	case landscape:
		return size.Landscape(), nil
	case portrait:
		return size.Portrait(), nil
	}
	return size, nil
}
