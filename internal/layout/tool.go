// Package layout drives the external page-layout tool (pdfjam by
// default) that rescales pages onto a target paper size and pads them
// without rescaling.
package layout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/kpauljoseph/trimfit/pkg/geom"
	"github.com/kpauljoseph/trimfit/pkg/logger"
)

// ErrToolNotFound means the layout tool is not installed or not on
// PATH. It is detected up front so no page work starts without it.
var ErrToolNotFound = errors.New("layout tool not found")

const installHint = "sudo apt update && sudo apt install -y texlive-extra-utils"

// waitDelay caps how long Run stays blocked on the output pipes after
// the process itself is gone. pdfjam is a shell wrapper; the TeX
// processes it spawns inherit the pipes and outlive it when the
// context kills it.
const waitDelay = time.Second

// CommandError reports a failed tool invocation with everything needed
// to diagnose it: the full argument list and the tool's verbatim output.
type CommandError struct {
	Name   string
	Args   []string
	Stdout string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s failed (%v):\n  %s %s", e.Name, e.Err, e.Name, strings.Join(e.Args, " "))
	if e.Stdout != "" {
		b.WriteString("\n\nSTDOUT:\n" + e.Stdout)
	}
	if e.Stderr != "" {
		b.WriteString("\n\nSTDERR:\n" + e.Stderr)
	}
	return b.String()
}

func (e *CommandError) Unwrap() error { return e.Err }

// Tool is one external layout command resolved by name on PATH.
type Tool struct {
	name string
	log  *logger.Logger
}

func New(name string, log *logger.Logger) *Tool {
	return &Tool{name: name, log: log}
}

func (t *Tool) Name() string { return t.name }

// Check verifies the tool is available before any page is processed.
func (t *Tool) Check() error {
	if _, err := exec.LookPath(t.name); err != nil {
		return fmt.Errorf("%w: %q is not on PATH\ninstall it with:\n  %s",
			ErrToolNotFound, t.name, installHint)
	}
	return nil
}

// Run lays one document out on the given paper size. With autoScale the
// content is scaled to fill the page; without it the content keeps its
// scale and only the canvas grows.
func (t *Tool) Run(ctx context.Context, inPath, outPath string, size geom.Size, autoScale bool) error {
	args := Args(inPath, outPath, size, autoScale)
	t.log.Trace("running %s %s", t.name, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, t.name, args...)
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &CommandError{
			Name:   t.name,
			Args:   args,
			Stdout: stdout.String(),
			Stderr: stderr.String(),
			Err:    err,
		}
	}
	if stderr.Len() > 0 {
		t.log.Warn("%s: %s", t.name, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Args builds the tool's argument list for one layout pass.
func Args(inPath, outPath string, size geom.Size, autoScale bool) []string {
	args := []string{"--quiet", "--papersize", PaperSizeArg(size)}
	if !autoScale {
		args = append(args, "--noautoscale", "true")
	}
	return append(args, inPath, "--outfile", outPath)
}

// PaperSizeArg renders a size in the {WIDTHin,HEIGHTin} form pdfjam
// expects.
func PaperSizeArg(size geom.Size) string {
	return fmt.Sprintf("{%gin,%gin}", size.Width, size.Height)
}
