// Package ops defines the tool's operations as a closed set of command
// variants, each carrying validated parameters, dispatched through a
// single exhaustive type switch. This replaces the string-keyed
// dispatch the original tool used.
package ops

import "github.com/sammcj/pdfsmith/internal/pdf"

// Command is the closed set of operations:
// Merge | Split | Extract | Rotate | Watermark | Compress.
type Command interface {
	isCommand()
}

// Merge combines two or more input PDFs into one output file.
type Merge struct {
	// Inputs are the files to merge, in order. At least two required.
	Inputs []string
	// Output is the merged PDF path.
	Output string
	// Pages optionally selects pages per input. Two grammars exist:
	// the file-scoped form ("a.pdf:1-5,b.pdf:all") and the positional
	// form ("1-5,all" matched to inputs by position). If the
	// expression contains a colon anywhere, the whole expression is
	// the scoped form; the two forms never mix.
	Pages string
	// Compress additionally optimises the merged output in place.
	Compress bool
}

// Split divides one input PDF into multiple output files, either every
// PagesPerFile pages or by an explicit list of range expressions.
// Exactly one of the two modes must be set.
type Split struct {
	Input        string
	OutputDir    string
	PagesPerFile int
	// Ranges is a comma-separated list of range expressions, one
	// output file per expression, e.g. "1-10,11-20".
	Ranges string
}

// Extract copies a page selection from one input PDF to a new file.
type Extract struct {
	Input  string
	Output string
	Pages  string
}

// Rotate rotates a page selection by Angle degrees (90, 180 or 270).
type Rotate struct {
	Input  string
	Output string
	Pages  string
	Angle  int
}

// Watermark overlays text on every page of the input.
type Watermark struct {
	Input   string
	Output  string
	Text    string
	Options pdf.WatermarkOptions
}

// Compress rewrites the input through pdfcpu's optimisation pass.
type Compress struct {
	Input  string
	Output string
}

func (Merge) isCommand()     {}
func (Split) isCommand()     {}
func (Extract) isCommand()   {}
func (Rotate) isCommand()    {}
func (Watermark) isCommand() {}
func (Compress) isCommand()  {}

// Result reports a completed operation.
type Result struct {
	// Message is a one-line human-readable summary.
	Message string
	// Outputs lists every file the operation wrote.
	Outputs []string
}
