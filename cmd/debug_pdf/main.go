package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"

	"github.com/kpauljoseph/trimfit/pkg/utils"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Println("Usage: debug_pdf original.pdf processed.pdf")
		os.Exit(1)
	}

	originalPath := os.Args[1]
	processedPath := os.Args[2]

	// Create temp directory for image comparison
	tempDir, err := os.MkdirTemp("", "pdf-debug-*")
	if err != nil {
		fmt.Printf("Error creating temp dir: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(tempDir)

	original, err := fitz.New(originalPath)
	if err != nil {
		fmt.Printf("Error opening original PDF: %v\n", err)
		os.Exit(1)
	}
	defer original.Close()

	processed, err := fitz.New(processedPath)
	if err != nil {
		fmt.Printf("Error opening processed PDF: %v\n", err)
		os.Exit(1)
	}
	defer processed.Close()

	fmt.Printf("\nBasic Properties:\n")
	fmt.Printf("Original pages:  %d\n", original.NumPage())
	fmt.Printf("Processed pages: %d\n", processed.NumPage())

	maxPages := original.NumPage()
	if processed.NumPage() < maxPages {
		maxPages = processed.NumPage()
	}

	for pageNum := 0; pageNum < maxPages; pageNum++ {
		fmt.Printf("\nAnalyzing Page %d:\n", pageNum+1)

		boundsOrig, _ := original.Bound(pageNum)
		boundsProc, _ := processed.Bound(pageNum)
		fmt.Printf("Original dimensions:  %d x %d\n", boundsOrig.Dx(), boundsOrig.Dy())
		fmt.Printf("Processed dimensions: %d x %d\n", boundsProc.Dx(), boundsProc.Dy())

		textOrig, _ := original.Text(pageNum)
		textProc, _ := processed.Text(pageNum)
		fmt.Printf("Text content identical: %v\n", textOrig == textProc)

		imgOrig, err := original.Image(pageNum)
		if err != nil {
			fmt.Printf("Error rendering original page: %v\n", err)
			continue
		}

		imgProc, err := processed.Image(pageNum)
		if err != nil {
			fmt.Printf("Error rendering processed page: %v\n", err)
			continue
		}

		// The padding step must only grow the canvas. If content size
		// changed between the two renders, something rescaled it.
		inkOrig := utils.InkBounds(imgOrig)
		inkProc := utils.InkBounds(imgProc)
		fmt.Printf("\nContent bounds:\n")
		fmt.Printf("Original:  %v (%d x %d)\n", inkOrig, inkOrig.Dx(), inkOrig.Dy())
		fmt.Printf("Processed: %v (%d x %d)\n", inkProc, inkProc.Dx(), inkProc.Dy())
		fmt.Printf("Content size identical: %v\n",
			inkOrig.Dx() == inkProc.Dx() && inkOrig.Dy() == inkProc.Dy())

		hashOrig, _ := utils.GenerateImageHash(imgOrig)
		hashProc, _ := utils.GenerateImageHash(imgProc)

		fmt.Printf("\nImage comparison:\n")
		fmt.Printf("Original hash:  %s\n", hashOrig)
		fmt.Printf("Processed hash: %s\n", hashProc)
		fmt.Printf("Hashes match: %v\n", hashOrig == hashProc)

		// Save renders for manual inspection
		origPath := filepath.Join(tempDir, fmt.Sprintf("page%d_original.png", pageNum+1))
		procPath := filepath.Join(tempDir, fmt.Sprintf("page%d_processed.png", pageNum+1))

		fOrig, _ := os.Create(origPath)
		png.Encode(fOrig, imgOrig)
		fOrig.Close()

		fProc, _ := os.Create(procPath)
		png.Encode(fProc, imgProc)
		fProc.Close()

		fmt.Printf("\nSaved page renders to:\n")
		fmt.Printf("Original:  %s\n", origPath)
		fmt.Printf("Processed: %s\n", procPath)
	}
}
