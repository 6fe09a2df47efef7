package pdf

import "errors"

var (
	// ErrUnreadablePDF indicates the input file is missing, not a PDF,
	// or failed pdfcpu validation.
	ErrUnreadablePDF = errors.New("unreadable PDF")

	// ErrIO indicates a disk failure while writing output.
	ErrIO = errors.New("I/O error")

	// ErrInsufficientInputs indicates a merge was requested with fewer
	// than two input files.
	ErrInsufficientInputs = errors.New("at least 2 PDF files are required for merging")
)
