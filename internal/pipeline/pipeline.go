// Package pipeline orchestrates PDF normalization: trimming pages to
// their visible content, fitting them onto a fixed paper size with a
// guaranteed margin, or both.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kpauljoseph/trimfit/internal/layout"
	"github.com/kpauljoseph/trimfit/internal/pdf"
	"github.com/kpauljoseph/trimfit/pkg/geom"
	"github.com/kpauljoseph/trimfit/pkg/logger"
)

type Mode string

const (
	// ModeTrim only rewrites crop boxes; no external tool involved.
	ModeTrim Mode = "trim"
	// ModeFit rescales and pads pages onto the target size as they are.
	ModeFit Mode = "fit"
	// ModeTrimFit trims first, then fits. The default.
	ModeTrimFit Mode = "trimfit"
)

var (
	ErrNotPDF         = errors.New("input is not a .pdf file")
	ErrMarginTooLarge = errors.New("margin too large")
)

// LayoutTool is the external rescale/pad collaborator. It is an
// interface so the concrete tool stays replaceable.
type LayoutTool interface {
	Name() string
	Check() error
	Run(ctx context.Context, inPath, outPath string, size geom.Size, autoScale bool) error
}

type Options struct {
	InputPath  string
	OutputPath string
	Mode       Mode
	// Size is the outer page size in inches. Ignored by ModeTrim.
	Size geom.Size
	// Margin is the minimum margin in inches after fitting.
	Margin float64
	// Tool is the layout tool command name.
	Tool string
}

type Pipeline struct {
	opts  Options
	inner geom.Size
	tool  LayoutTool
	log   *logger.Logger
}

// New validates the options and prepares a run. All configuration
// errors surface here, before any page is touched.
func New(opts Options, log *logger.Logger) (*Pipeline, error) {
	switch opts.Mode {
	case ModeTrim, ModeFit, ModeTrimFit:
	default:
		return nil, fmt.Errorf("unknown mode %q", opts.Mode)
	}

	if _, err := os.Stat(opts.InputPath); err != nil {
		return nil, fmt.Errorf("input PDF not found: %w", err)
	}
	if !strings.EqualFold(filepath.Ext(opts.InputPath), ".pdf") {
		return nil, fmt.Errorf("%w: %s", ErrNotPDF, opts.InputPath)
	}
	if opts.Margin < 0 {
		return nil, fmt.Errorf("margin must be >= 0, got %g", opts.Margin)
	}

	p := &Pipeline{opts: opts, log: log}

	if opts.Mode != ModeTrim {
		inner := opts.Size.Inner(opts.Margin)
		if inner.Width <= 0 || inner.Height <= 0 {
			return nil, fmt.Errorf("%w: margin %g on a %s inch page leaves no inner canvas",
				ErrMarginTooLarge, opts.Margin, opts.Size)
		}
		p.inner = inner
		p.tool = layout.New(opts.Tool, log)
	}

	return p, nil
}

// Run executes the configured normalization. Scratch files live in a
// dedicated temp directory that is removed on every exit path.
func (p *Pipeline) Run(ctx context.Context) error {
	if dir := filepath.Dir(p.opts.OutputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}

	if p.opts.Mode == ModeTrim {
		p.log.Info("trimming %s -> %s", p.opts.InputPath, p.opts.OutputPath)
		return pdf.CropToContent(p.opts.InputPath, p.opts.OutputPath, p.log)
	}

	// fail before any page work when the tool is missing
	if err := p.tool.Check(); err != nil {
		return err
	}

	tempDir, err := os.MkdirTemp("", "pdf-trimfit-")
	if err != nil {
		return fmt.Errorf("cannot create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	source := p.opts.InputPath
	if p.opts.Mode == ModeTrimFit {
		source = filepath.Join(tempDir, "cropped.pdf")
		p.log.Info("trimming %s", p.opts.InputPath)
		if err := pdf.CropToContent(p.opts.InputPath, source, p.log); err != nil {
			return err
		}
	}

	count, err := pdf.PageCount(source)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("input %s has no pages", p.opts.InputPath)
	}

	p.log.Info("fitting %d pages onto %s inches with %g margin (tool: %s)",
		count, p.opts.Size, p.opts.Margin, p.tool.Name())

	fitted := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			single := filepath.Join(tempDir, fmt.Sprintf("p%d.pdf", i))
			scaled := filepath.Join(tempDir, fmt.Sprintf("p%d_fit.pdf", i))
			padded := filepath.Join(tempDir, fmt.Sprintf("p%d_pad.pdf", i))

			if err := pdf.ExtractPage(source, single, i); err != nil {
				return err
			}
			// scale onto the margin-reduced canvas, then pad out to the
			// full size without touching the scale again
			if err := p.tool.Run(ctx, single, scaled, p.inner, true); err != nil {
				return err
			}
			if err := p.tool.Run(ctx, scaled, padded, p.opts.Size, false); err != nil {
				return err
			}
			fitted = append(fitted, padded)
			p.log.Debug("page %d/%d fitted", i, count)
		}
	}

	if err := pdf.Merge(fitted, p.opts.OutputPath); err != nil {
		return err
	}

	p.log.Info("wrote %s (%d pages)", p.opts.OutputPath, count)
	return nil
}
