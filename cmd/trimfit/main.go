package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/kpauljoseph/trimfit/internal/config"
	"github.com/kpauljoseph/trimfit/internal/pipeline"
	"github.com/kpauljoseph/trimfit/pkg/geom"
	"github.com/kpauljoseph/trimfit/pkg/logger"
	"github.com/kpauljoseph/trimfit/pkg/papersize"
	"github.com/kpauljoseph/trimfit/pkg/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	trim := flag.Bool("trim", false, "only crop whitespace around visible page content")
	fit := flag.Bool("fit", false, "only rescale pages onto the target size")
	size := flag.String("size", config.DefaultSize, "target size: a paper name like letter or a4, or WIDTHxHEIGHT in inches")
	landscape := flag.Bool("landscape", false, "force landscape orientation (named sizes only)")
	portrait := flag.Bool("portrait", false, "force portrait orientation (named sizes only)")
	margin := flag.Float64("margin", config.DefaultMargin, "minimum margin in inches around fitted content")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	debug := flag.Bool("debug", false, "enable debug mode with trace logging")
	showVersion := flag.Bool("version", false, "print version information and exit")

	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println(versionString(*verbose || *debug))
		return
	}

	log := logger.New(logger.WithPrefix("[trimfit] "))
	log.SetVerbose(*verbose)

	if *debug {
		log.SetLevel(logger.LevelTrace)
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "trimfit: missing input PDF")
		flag.Usage()
		os.Exit(1)
	}
	if len(args) > 2 {
		fmt.Fprintf(os.Stderr, "trimfit: unexpected argument %q\n", args[2])
		flag.Usage()
		os.Exit(1)
	}

	inputPath := args[0]
	outputPath := config.DefaultOutput
	if len(args) == 2 {
		outputPath = args[1]
	}

	if err := checkFlags(*trim, *fit, *landscape, *portrait); err != nil {
		fail(err)
	}

	mode := pipeline.ModeTrimFit
	switch {
	case *trim:
		mode = pipeline.ModeTrim
	case *fit:
		mode = pipeline.ModeFit
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fail(err)
		}
		cfg = loaded
	}

	// Flags given on the command line win over the config file.
	passed := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { passed[f.Name] = true })
	cfg.ApplyFlags(passed, *size, *margin, *verbose)

	if cfg.Verbose {
		log.SetVerbose(true)
	}

	// Trim mode never touches the target size, so size and orientation
	// flags are only resolved when a fit step will run.
	var target geom.Size
	if mode != pipeline.ModeTrim {
		resolved, err := papersize.Resolve(cfg.Size, *landscape, *portrait)
		if err != nil {
			fail(err)
		}
		target = resolved
	}

	p, err := pipeline.New(pipeline.Options{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Mode:       mode,
		Size:       target,
		Margin:     cfg.Margin,
		Tool:       cfg.LayoutTool,
	}, log)
	if err != nil {
		fail(err)
	}

	if err := p.Run(context.Background()); err != nil {
		fail(err)
	}
}

// checkFlags rejects flag combinations that contradict each other,
// whatever the mode. The size resolver repeats the orientation check
// for the specs it sees, but trim mode never consults it.
func checkFlags(trim, fit, landscape, portrait bool) error {
	if trim && fit {
		return errors.New("--trim and --fit are mutually exclusive")
	}
	if landscape && portrait {
		return errors.New("--landscape and --portrait are mutually exclusive")
	}
	return nil
}

// versionString picks the version report: the detailed form for
// verbose runs, the one-liner otherwise.
func versionString(detailed bool) string {
	if detailed {
		return version.GetDetailedVersionInfo()
	}
	return version.GetVersionInfo()
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] input.pdf [output.pdf]\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Trim whitespace around PDF page content and/or rescale pages onto a")
	fmt.Fprintln(os.Stderr, "fixed paper size with a guaranteed minimum margin. Without --trim or")
	fmt.Fprintln(os.Stderr, "--fit, both steps run.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Paper names accepted by --size (tabloid works as an alias for ledger):")
	fmt.Fprintln(os.Stderr, "  "+strings.Join(papersize.Names(), ", "))
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "trimfit:", err)
	os.Exit(1)
}
