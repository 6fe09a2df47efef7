package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/sammcj/pdfsmith/internal/pagerange"
)

// SplitByPageCount splits input into multiple PDFs of pagesPerFile
// pages each (the last file may be shorter), written to outDir as
// <base>_part<N>.pdf. Returns the created file paths in order.
//
// If a later output fails, files already written are left on disk.
func SplitByPageCount(input string, pagesPerFile int, outDir string, progress ProgressFunc) ([]string, error) {
	if pagesPerFile < 1 {
		return nil, fmt.Errorf("pages per file must be at least 1")
	}

	doc, err := Open(input)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: failed to create output directory %s: %v", ErrIO, outDir, err)
	}

	conf := newConfiguration()
	baseName := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	numFiles := (doc.PageCount + pagesPerFile - 1) / pagesPerFile

	report(progress, 0, numFiles, "Splitting PDF...")

	var outputs []string
	for fileNum := range numFiles {
		start := fileNum*pagesPerFile + 1
		end := min(start+pagesPerFile-1, doc.PageCount)

		pages := make([]int, 0, end-start+1)
		for p := start; p <= end; p++ {
			pages = append(pages, p)
		}

		outFile := filepath.Join(outDir, fmt.Sprintf("%s_part%d.pdf", baseName, fileNum+1))
		if err := api.CollectFile(input, outFile, pageStrings(pages), conf); err != nil {
			return outputs, fmt.Errorf("failed to write %s: %w", filepath.Base(outFile), err)
		}

		outputs = append(outputs, outFile)
		report(progress, fileNum+1, numFiles, fmt.Sprintf("Created %s", filepath.Base(outFile)))
	}

	report(progress, numFiles, numFiles, fmt.Sprintf("Successfully split into %d files", numFiles))
	return outputs, nil
}

// SplitByRanges splits input into one PDF per range expression, written
// to outDir as <base>_pages<range>.pdf with commas replaced by
// underscores. A range that resolves to zero pages is skipped.
//
// If a later output fails, files already written are left on disk.
func SplitByRanges(input string, ranges []string, outDir string, progress ProgressFunc) ([]string, error) {
	if len(ranges) == 0 {
		return nil, fmt.Errorf("no page ranges provided")
	}

	doc, err := Open(input)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: failed to create output directory %s: %v", ErrIO, outDir, err)
	}

	conf := newConfiguration()
	baseName := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	report(progress, 0, len(ranges), "Splitting PDF by ranges...")

	var outputs []string
	for i, rangeExpr := range ranges {
		pages, err := pagerange.Resolve(rangeExpr, doc.PageCount)
		if err != nil {
			return outputs, err
		}
		if len(pages) == 0 {
			continue
		}

		suffix := strings.ReplaceAll(strings.ReplaceAll(rangeExpr, " ", ""), ",", "_")
		outFile := filepath.Join(outDir, fmt.Sprintf("%s_pages%s.pdf", baseName, suffix))
		if err := api.CollectFile(input, outFile, pageStrings(pages), conf); err != nil {
			return outputs, fmt.Errorf("failed to write %s: %w", filepath.Base(outFile), err)
		}

		outputs = append(outputs, outFile)
		report(progress, i+1, len(ranges), fmt.Sprintf("Created file for pages %s", rangeExpr))
	}

	report(progress, len(ranges), len(ranges),
		fmt.Sprintf("Successfully created %d files", len(outputs)))
	return outputs, nil
}

// ExtractPages writes the given ordered page selection from input to a
// single output PDF. Duplicate pages in the selection are written
// twice, preserving the order the resolver produced.
func ExtractPages(input string, pages []int, output string, progress ProgressFunc) error {
	if len(pages) == 0 {
		return fmt.Errorf("no pages to extract")
	}

	if err := ensureOutputDir(output); err != nil {
		return err
	}

	report(progress, 0, len(pages), "Extracting pages...")

	conf := newConfiguration()
	if err := api.CollectFile(input, output, pageStrings(pages), conf); err != nil {
		return fmt.Errorf("failed to extract pages: %w", err)
	}

	report(progress, len(pages), len(pages),
		fmt.Sprintf("Successfully extracted %d pages", len(pages)))
	return nil
}
