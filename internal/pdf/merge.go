package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Merge combines the given input files, in order, into a single output
// PDF. selections is aligned with inputs: a nil entry keeps the whole
// file, a non-nil entry is an ordered list of 1-based pages to take
// from that file (duplicates allowed). selections itself may be nil to
// merge all inputs whole.
//
// The caller is expected to have validated the inputs with Open; the
// two-input minimum is enforced by the ops layer.
func Merge(inputs []string, selections [][]int, output string, progress ProgressFunc) error {
	if selections != nil && len(selections) != len(inputs) {
		return fmt.Errorf("selections length %d does not match %d inputs", len(selections), len(inputs))
	}

	if err := ensureOutputDir(output); err != nil {
		return err
	}

	conf := newConfiguration()
	mergeInputs := inputs

	if hasSelections(selections) {
		// Realise per-file page selections as trimmed temp copies,
		// then merge the copies.
		tempDir, err := os.MkdirTemp("", "pdfsmith_merge_*")
		if err != nil {
			return fmt.Errorf("%w: failed to create temp directory: %v", ErrIO, err)
		}
		defer os.RemoveAll(tempDir)

		mergeInputs = make([]string, len(inputs))
		for i, input := range inputs {
			if selections[i] == nil {
				mergeInputs[i] = input
				continue
			}
			if len(selections[i]) == 0 {
				return fmt.Errorf("no pages selected from %s", filepath.Base(input))
			}

			trimmed := filepath.Join(tempDir, uuid.NewString()+".pdf")
			if err := api.CollectFile(input, trimmed, pageStrings(selections[i]), conf); err != nil {
				return fmt.Errorf("failed to select pages from %s: %w", filepath.Base(input), err)
			}
			mergeInputs[i] = trimmed

			report(progress, i+1, len(inputs),
				fmt.Sprintf("Selected %d pages from %s", len(selections[i]), filepath.Base(input)))
		}
	}

	report(progress, 0, len(inputs), "Merging PDF files...")
	if err := api.MergeCreateFile(mergeInputs, output, false, conf); err != nil {
		return fmt.Errorf("failed to merge PDFs: %w", err)
	}

	report(progress, len(inputs), len(inputs),
		fmt.Sprintf("Successfully merged %d files into %s", len(inputs), filepath.Base(output)))
	return nil
}

func hasSelections(selections [][]int) bool {
	for _, s := range selections {
		if s != nil {
			return true
		}
	}
	return false
}
