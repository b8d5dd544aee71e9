package pdf

import (
	"fmt"

	"github.com/kpauljoseph/trimfit/pkg/logger"
)

// CropToContent rewrites every page's crop box to its visible content
// region and saves the result. Input and output may be the same path.
func CropToContent(inPath, outPath string, log *logger.Logger) error {
	doc, err := Open(inPath)
	if err != nil {
		return err
	}

	for n := 1; n <= doc.PageCount(); n++ {
		page, err := doc.Page(n)
		if err != nil {
			return fmt.Errorf("failed to inspect page %d: %w", n, err)
		}
		region := VisibleRect(page)
		log.Debug("page %d: %d drawings, %d blocks, crop %s",
			n, len(page.Drawings), len(page.Blocks), region)
		if err := doc.SetCropBox(n, region); err != nil {
			return fmt.Errorf("failed to crop page %d: %w", n, err)
		}
	}

	return doc.SaveAs(outPath)
}
