package pdf

import (
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageCount reports the number of pages without keeping the file open.
func PageCount(path string) (int, error) {
	count, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages of %s: %w", path, err)
	}
	return count, nil
}

// ExtractPage writes a single page (1-based) into its own document.
func ExtractPage(inPath, outPath string, page int) error {
	conf := model.NewDefaultConfiguration()
	if err := api.TrimFile(inPath, outPath, []string{strconv.Itoa(page)}, conf); err != nil {
		return fmt.Errorf("failed to extract page %d from %s: %w", page, inPath, err)
	}
	return nil
}

// Merge concatenates the given documents, in order, into one output.
func Merge(inPaths []string, outPath string) error {
	conf := model.NewDefaultConfiguration()
	if err := api.MergeCreateFile(inPaths, outPath, false, conf); err != nil {
		return fmt.Errorf("failed to merge %d files into %s: %w", len(inPaths), outPath, err)
	}
	return nil
}
