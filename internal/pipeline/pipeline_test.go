package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/trimfit/internal/layout"
	"github.com/kpauljoseph/trimfit/internal/pdf"
	"github.com/kpauljoseph/trimfit/internal/pipeline"
	"github.com/kpauljoseph/trimfit/internal/testpdf"
	"github.com/kpauljoseph/trimfit/pkg/geom"
	"github.com/kpauljoseph/trimfit/pkg/logger"
)

func pipelineTestLogger() *logger.Logger {
	return logger.New(
		logger.WithOutput(GinkgoWriter),
		logger.WithPrefix("[pipeline-test] "),
	)
}

// fakeToolScript copies its input to the --outfile target and appends
// its argument list to $TRIMFIT_TEST_ARGSLOG.
const fakeToolScript = `#!/bin/sh
echo "$@" >> "$TRIMFIT_TEST_ARGSLOG"
in=""
out=""
while [ $# -gt 0 ]; do
  case "$1" in
    --outfile) out="$2"; shift ;;
    --papersize|--noautoscale) shift ;;
    --quiet) ;;
    *) in="$1" ;;
  esac
  shift
done
cp "$in" "$out"
`

var _ = Describe("Pipeline", func() {
	var (
		tempDir string
		input   string
	)

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "trimfit-pipeline-test-*")
		Expect(err).NotTo(HaveOccurred())

		input = filepath.Join(tempDir, "input.pdf")
		Expect(testpdf.Write(input,
			testpdf.Page{Width: 200, Height: 200, Content: "0 0 0 RG 10 10 40 40 re S"},
			testpdf.Page{Width: 200, Height: 200, Content: ""},
		)).To(Succeed())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(tempDir)).To(Succeed())
	})

	letterOpts := func(mode pipeline.Mode, output string) pipeline.Options {
		return pipeline.Options{
			InputPath:  input,
			OutputPath: output,
			Mode:       mode,
			Size:       geom.Size{Width: 8.5, Height: 11},
			Margin:     0.5,
			Tool:       "pdfjam",
		}
	}

	Describe("New", func() {
		It("rejects a missing input file", func() {
			opts := letterOpts(pipeline.ModeTrim, filepath.Join(tempDir, "out.pdf"))
			opts.InputPath = filepath.Join(tempDir, "absent.pdf")
			_, err := pipeline.New(opts, pipelineTestLogger())
			Expect(err).To(MatchError(os.ErrNotExist))
		})

		It("rejects inputs without a .pdf extension", func() {
			notPDF := filepath.Join(tempDir, "notes.txt")
			Expect(os.WriteFile(notPDF, []byte("text"), 0644)).To(Succeed())

			opts := letterOpts(pipeline.ModeTrim, filepath.Join(tempDir, "out.pdf"))
			opts.InputPath = notPDF
			_, err := pipeline.New(opts, pipelineTestLogger())
			Expect(err).To(MatchError(pipeline.ErrNotPDF))
		})

		It("accepts an uppercase .PDF extension", func() {
			upper := filepath.Join(tempDir, "REPORT.PDF")
			Expect(testpdf.Write(upper, testpdf.Page{Width: 100, Height: 100})).To(Succeed())

			opts := letterOpts(pipeline.ModeTrim, filepath.Join(tempDir, "out.pdf"))
			opts.InputPath = upper
			_, err := pipeline.New(opts, pipelineTestLogger())
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects a margin that swallows the page", func() {
			opts := letterOpts(pipeline.ModeFit, filepath.Join(tempDir, "out.pdf"))
			opts.Size = geom.Size{Width: 1, Height: 1}
			opts.Margin = 0.6
			_, err := pipeline.New(opts, pipelineTestLogger())
			Expect(err).To(MatchError(pipeline.ErrMarginTooLarge))
		})

		It("accepts the default margin on letter", func() {
			_, err := pipeline.New(letterOpts(pipeline.ModeTrimFit, filepath.Join(tempDir, "out.pdf")), pipelineTestLogger())
			Expect(err).NotTo(HaveOccurred())
		})

		It("does not apply the margin check to trim mode", func() {
			opts := letterOpts(pipeline.ModeTrim, filepath.Join(tempDir, "out.pdf"))
			opts.Size = geom.Size{Width: 1, Height: 1}
			opts.Margin = 0.6
			_, err := pipeline.New(opts, pipelineTestLogger())
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects a negative margin", func() {
			opts := letterOpts(pipeline.ModeFit, filepath.Join(tempDir, "out.pdf"))
			opts.Margin = -0.1
			_, err := pipeline.New(opts, pipelineTestLogger())
			Expect(err).To(HaveOccurred())
		})

		It("rejects an unknown mode", func() {
			opts := letterOpts(pipeline.Mode("shrink"), filepath.Join(tempDir, "out.pdf"))
			_, err := pipeline.New(opts, pipelineTestLogger())
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("trim mode", func() {
		It("writes a trimmed copy without needing the layout tool", func() {
			output := filepath.Join(tempDir, "trimmed.pdf")
			opts := letterOpts(pipeline.ModeTrim, output)
			opts.Tool = "definitely-not-installed-9f2c"

			p, err := pipeline.New(opts, pipelineTestLogger())
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Run(context.Background())).To(Succeed())

			Expect(output).To(BeAnExistingFile())
			count, err := pdf.PageCount(output)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))
		})

		It("creates missing output directories", func() {
			output := filepath.Join(tempDir, "nested", "dir", "trimmed.pdf")
			p, err := pipeline.New(letterOpts(pipeline.ModeTrim, output), pipelineTestLogger())
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Run(context.Background())).To(Succeed())
			Expect(output).To(BeAnExistingFile())
		})
	})

	Describe("fit modes", func() {
		var (
			oldPath string
			argsLog string
		)

		BeforeEach(func() {
			argsLog = filepath.Join(tempDir, "args.log")
			Expect(os.Setenv("TRIMFIT_TEST_ARGSLOG", argsLog)).To(Succeed())

			Expect(os.WriteFile(filepath.Join(tempDir, "fakejam"), []byte(fakeToolScript), 0755)).To(Succeed())
			oldPath = os.Getenv("PATH")
			Expect(os.Setenv("PATH", tempDir+string(os.PathListSeparator)+oldPath)).To(Succeed())
		})

		AfterEach(func() {
			Expect(os.Setenv("PATH", oldPath)).To(Succeed())
			Expect(os.Unsetenv("TRIMFIT_TEST_ARGSLOG")).To(Succeed())
		})

		runFit := func(mode pipeline.Mode) string {
			output := filepath.Join(tempDir, string(mode)+"-out.pdf")
			opts := letterOpts(mode, output)
			opts.Tool = "fakejam"

			p, err := pipeline.New(opts, pipelineTestLogger())
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Run(context.Background())).To(Succeed())
			return output
		}

		It("runs scale and pad passes per page and merges the result", func() {
			output := runFit(pipeline.ModeFit)
			Expect(output).To(BeAnExistingFile())

			count, err := pdf.PageCount(output)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))

			logged, err := os.ReadFile(argsLog)
			Expect(err).NotTo(HaveOccurred())
			lines := strings.Split(strings.TrimSpace(string(logged)), "\n")
			// two invocations per page
			Expect(lines).To(HaveLen(4))

			// scale pass: inner canvas, autoscale on
			Expect(lines[0]).To(ContainSubstring("--papersize {7.5in,10in}"))
			Expect(lines[0]).NotTo(ContainSubstring("--noautoscale"))
			// pad pass: full size, no rescaling
			Expect(lines[1]).To(ContainSubstring("--papersize {8.5in,11in}"))
			Expect(lines[1]).To(ContainSubstring("--noautoscale true"))
		})

		It("trims before fitting in trimfit mode", func() {
			output := runFit(pipeline.ModeTrimFit)
			Expect(output).To(BeAnExistingFile())

			count, err := pdf.PageCount(output)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))

			// the scale pass consumed extracted single-page files from
			// the cropped intermediate
			logged, err := os.ReadFile(argsLog)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(logged)).To(ContainSubstring("p1.pdf"))
			Expect(string(logged)).To(ContainSubstring("p2_fit.pdf"))
		})

		It("cleans up its scratch directory", func() {
			pattern := filepath.Join(os.TempDir(), "pdf-trimfit-*")
			before, err := filepath.Glob(pattern)
			Expect(err).NotTo(HaveOccurred())

			runFit(pipeline.ModeFit)

			after, err := filepath.Glob(pattern)
			Expect(err).NotTo(HaveOccurred())
			Expect(after).To(HaveLen(len(before)))
		})

		It("fails before any page work when the tool is missing", func() {
			output := filepath.Join(tempDir, "never.pdf")
			opts := letterOpts(pipeline.ModeTrimFit, output)
			opts.Tool = "definitely-not-installed-9f2c"

			p, err := pipeline.New(opts, pipelineTestLogger())
			Expect(err).NotTo(HaveOccurred())

			err = p.Run(context.Background())
			Expect(err).To(MatchError(layout.ErrToolNotFound))
			Expect(output).NotTo(BeAnExistingFile())
		})

		It("stops between pages when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			opts := letterOpts(pipeline.ModeFit, filepath.Join(tempDir, "cancelled.pdf"))
			opts.Tool = "fakejam"
			p, err := pipeline.New(opts, pipelineTestLogger())
			Expect(err).NotTo(HaveOccurred())

			Expect(p.Run(ctx)).To(MatchError(context.Canceled))
		})
	})
})
