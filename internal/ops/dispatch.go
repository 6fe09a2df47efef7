package ops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sammcj/pdfsmith/internal/pagerange"
	"github.com/sammcj/pdfsmith/internal/pdf"
	"github.com/sammcj/pdfsmith/internal/session"
)

// Execute runs a single command to completion. Operations are
// synchronous and sequential; an operation either completes or fails
// immediately, and nothing is retried.
func Execute(ctx context.Context, logger *logrus.Logger, cmd Command, progress pdf.ProgressFunc) (*Result, error) {
	_ = ctx // operations have no suspension points beyond file I/O

	switch c := cmd.(type) {
	case Merge:
		return executeMerge(logger, c, progress)
	case Split:
		return executeSplit(logger, c, progress)
	case Extract:
		return executeExtract(logger, c, progress)
	case Rotate:
		return executeRotate(logger, c, progress)
	case Watermark:
		return executeWatermark(logger, c, progress)
	case Compress:
		return executeCompress(logger, c, progress)
	default:
		return nil, fmt.Errorf("unknown command type %T", cmd)
	}
}

func executeMerge(logger *logrus.Logger, c Merge, progress pdf.ProgressFunc) (*Result, error) {
	if len(c.Inputs) < 2 {
		return nil, pdf.ErrInsufficientInputs
	}

	logger.WithFields(logrus.Fields{
		"inputs": len(c.Inputs),
		"output": c.Output,
		"pages":  c.Pages,
	}).Debug("Merging PDFs")

	// Validate every input up front; a bad third file should not leave
	// a half-considered merge.
	sess := session.New()
	for i, input := range c.Inputs {
		report(progress, i, len(c.Inputs), "Validating PDF files...")
		if _, err := sess.Add(input); err != nil {
			return nil, err
		}
		report(progress, i+1, len(c.Inputs), fmt.Sprintf("Validated: %s", filepath.Base(input)))
	}

	selections, err := mergeSelections(sess, c.Pages)
	if err != nil {
		return nil, err
	}

	if err := pdf.Merge(sess.Paths(), selections, c.Output, progress); err != nil {
		return nil, err
	}

	if c.Compress {
		if err := compressInPlace(c.Output, progress); err != nil {
			return nil, err
		}
	}

	return &Result{
		Message: fmt.Sprintf("Successfully merged %d files to: %s", len(c.Inputs), c.Output),
		Outputs: []string{c.Output},
	}, nil
}

// mergeSelections resolves a merge --pages expression into per-file
// page selections aligned with the session's documents. A nil entry
// means "the whole file".
//
// Precedence rule: an expression containing a colon anywhere is the
// file-scoped grammar and every token must be scoped; otherwise the
// positional grammar applies, where the i-th comma-separated token
// belongs to the i-th input and missing trailing tokens mean "all".
func mergeSelections(sess *session.Session, expr string) ([][]int, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	docs := sess.Documents()

	if strings.Contains(expr, ":") {
		selections := make([][]int, len(docs))
		for i, doc := range docs {
			pages, err := pagerange.ResolveForFile(expr, doc.PageCount, doc.Path)
			if err != nil {
				return nil, err
			}
			// Files the expression never mentions are merged whole.
			if len(pages) > 0 {
				selections[i] = pages
			}
		}
		return selections, nil
	}

	// Positional form: one token per input, in input order.
	tokens := strings.Split(expr, ",")
	if len(tokens) > len(docs) {
		return nil, fmt.Errorf("positional page ranges name %d files but only %d inputs were given",
			len(tokens), len(docs))
	}

	selections := make([][]int, len(docs))
	for i, doc := range docs {
		token := "all"
		if i < len(tokens) {
			token = strings.TrimSpace(tokens[i])
		}
		sess.SetPageRange(doc.Path, token)

		if strings.EqualFold(token, "all") {
			continue // whole file, no trim pass needed
		}
		pages, err := pagerange.Resolve(token, doc.PageCount)
		if err != nil {
			return nil, err
		}
		selections[i] = pages
	}
	return selections, nil
}

// compressInPlace optimises a freshly written output file in place via
// a uniquely named sibling temp file.
func compressInPlace(path string, progress pdf.ProgressFunc) error {
	temp := path + "." + uuid.NewString() + ".tmp"
	if err := os.Rename(path, temp); err != nil {
		return fmt.Errorf("%w: failed to stage output for compression: %v", pdf.ErrIO, err)
	}
	if err := pdf.Compress(temp, path, progress); err != nil {
		// Restore the uncompressed output rather than losing it.
		_ = os.Rename(temp, path)
		return err
	}
	return os.Remove(temp)
}

func executeSplit(logger *logrus.Logger, c Split, progress pdf.ProgressFunc) (*Result, error) {
	if (c.PagesPerFile > 0) == (c.Ranges != "") {
		return nil, fmt.Errorf("must specify exactly one of pages-per-file or ranges")
	}

	logger.WithFields(logrus.Fields{
		"input":          c.Input,
		"output_dir":     c.OutputDir,
		"pages_per_file": c.PagesPerFile,
		"ranges":         c.Ranges,
	}).Debug("Splitting PDF")

	var outputs []string
	var err error
	if c.PagesPerFile > 0 {
		outputs, err = pdf.SplitByPageCount(c.Input, c.PagesPerFile, c.OutputDir, progress)
	} else {
		ranges := splitRangeList(c.Ranges)
		outputs, err = pdf.SplitByRanges(c.Input, ranges, c.OutputDir, progress)
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		Message: fmt.Sprintf("Successfully split into %d files in: %s", len(outputs), c.OutputDir),
		Outputs: outputs,
	}, nil
}

// splitRangeList splits "1-10,11-20" into one range expression per
// output file.
func splitRangeList(ranges string) []string {
	parts := strings.Split(ranges, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func executeExtract(logger *logrus.Logger, c Extract, progress pdf.ProgressFunc) (*Result, error) {
	logger.WithFields(logrus.Fields{
		"input":  c.Input,
		"output": c.Output,
		"pages":  c.Pages,
	}).Debug("Extracting pages")

	doc, err := pdf.Open(c.Input)
	if err != nil {
		return nil, err
	}

	pages, err := pagerange.Resolve(c.Pages, doc.PageCount)
	if err != nil {
		return nil, err
	}

	if err := pdf.ExtractPages(c.Input, pages, c.Output, progress); err != nil {
		return nil, err
	}

	return &Result{
		Message: fmt.Sprintf("Successfully extracted pages to: %s", c.Output),
		Outputs: []string{c.Output},
	}, nil
}

func executeRotate(logger *logrus.Logger, c Rotate, progress pdf.ProgressFunc) (*Result, error) {
	logger.WithFields(logrus.Fields{
		"input": c.Input,
		"pages": c.Pages,
		"angle": c.Angle,
	}).Debug("Rotating pages")

	doc, err := pdf.Open(c.Input)
	if err != nil {
		return nil, err
	}

	pages, err := pagerange.Resolve(c.Pages, doc.PageCount)
	if err != nil {
		return nil, err
	}

	if err := pdf.RotatePages(c.Input, pages, c.Angle, c.Output, progress); err != nil {
		return nil, err
	}

	return &Result{
		Message: fmt.Sprintf("Successfully rotated pages to: %s", c.Output),
		Outputs: []string{c.Output},
	}, nil
}

func executeWatermark(logger *logrus.Logger, c Watermark, progress pdf.ProgressFunc) (*Result, error) {
	logger.WithFields(logrus.Fields{
		"input":  c.Input,
		"output": c.Output,
	}).Debug("Adding watermark")

	if _, err := pdf.Open(c.Input); err != nil {
		return nil, err
	}

	if err := pdf.AddTextWatermark(c.Input, c.Output, c.Text, nil, c.Options, progress); err != nil {
		return nil, err
	}

	return &Result{
		Message: fmt.Sprintf("Successfully added watermark to: %s", c.Output),
		Outputs: []string{c.Output},
	}, nil
}

func executeCompress(logger *logrus.Logger, c Compress, progress pdf.ProgressFunc) (*Result, error) {
	logger.WithFields(logrus.Fields{
		"input":  c.Input,
		"output": c.Output,
	}).Debug("Compressing PDF")

	if _, err := pdf.Open(c.Input); err != nil {
		return nil, err
	}

	if err := pdf.Compress(c.Input, c.Output, progress); err != nil {
		return nil, err
	}

	return &Result{
		Message: fmt.Sprintf("Successfully compressed to: %s", c.Output),
		Outputs: []string{c.Output},
	}, nil
}

// report mirrors the pdf package's progress helper for the validation
// phase that runs before any pdf operation starts.
func report(p pdf.ProgressFunc, current, total int, message string) {
	if p != nil {
		p(current, total, message)
	}
}
