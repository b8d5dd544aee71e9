package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/kpauljoseph/trimfit/internal/pdf"
)

func main() {
	pdfPath := flag.String("file", "", "Path to PDF file")
	flag.Parse()

	if *pdfPath == "" {
		fmt.Println("Please provide a PDF file path using -file flag")
		os.Exit(1)
	}

	fmt.Printf("Analyzing PDF: %s\n", *pdfPath)

	// Get page dimensions
	dims, err := api.PageDimsFile(*pdfPath)
	if err != nil {
		fmt.Printf("Error getting page dimensions: %v\n", err)
		os.Exit(1)
	}

	doc, err := pdf.Open(*pdfPath)
	if err != nil {
		fmt.Printf("Error opening PDF: %v\n", err)
		os.Exit(1)
	}

	uniform := true

	// Process each page's dimensions
	for i, dim := range dims {
		fmt.Printf("\nPage %d:\n", i+1)
		fmt.Printf("Dimensions (Width x Height): %.3f x %.3f points\n", dim.Width, dim.Height)

		if dim.Width != dims[0].Width || dim.Height != dims[0].Height {
			uniform = false
		}

		page, err := doc.Page(i + 1)
		if err != nil {
			fmt.Printf("Error reading page objects: %v\n", err)
			continue
		}

		fmt.Printf("MediaBox: %s\n", page.MediaBox)
		fmt.Printf("CropBox:  %s\n", page.CropBox)
		fmt.Printf("Objects: %d drawings, %d text/image blocks\n", len(page.Drawings), len(page.Blocks))
		fmt.Printf("Visible region: %s\n", pdf.VisibleRect(page))
	}

	fmt.Printf("\nUniform page size: %v\n", uniform)
}
