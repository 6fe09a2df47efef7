// Package pdf wraps the pdfcpu library behind the small set of
// operations the tool needs: open/validate, merge, split, extract,
// rotate, watermark and compress. No PDF parsing or transformation is
// implemented here; pdfcpu does all byte-level work.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const (
	// DefaultMaxFileSize is the default input file size limit (200MB).
	DefaultMaxFileSize = int64(200 * 1024 * 1024)

	// MaxFileSizeEnvVar overrides the input file size limit.
	MaxFileSizeEnvVar = "PDFSMITH_MAX_FILE_SIZE"
)

// Document is an open, validated PDF input file.
type Document struct {
	Path      string
	PageCount int
	FileSize  int64
}

// Info describes a PDF file for display purposes.
type Info struct {
	Path      string  `json:"path"`
	Filename  string  `json:"filename"`
	Pages     int     `json:"pages"`
	SizeBytes int64   `json:"size_bytes"`
	SizeMB    float64 `json:"size_mb"`
}

// Open validates that path names a readable PDF within the configured
// size limit and returns its page count. It never modifies the file.
func Open(path string) (*Document, error) {
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: file not found: %s", ErrUnreadablePDF, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to stat %s: %v", ErrIO, path, err)
	}

	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return nil, fmt.Errorf("%w: not a PDF file: %s", ErrUnreadablePDF, path)
	}

	if err := validateFileSize(fileInfo.Size()); err != nil {
		return nil, err
	}

	conf := newConfiguration()
	if err := api.ValidateFile(path, conf); err != nil {
		return nil, fmt.Errorf("%w: invalid or corrupted PDF file %s: %v", ErrUnreadablePDF, path, err)
	}

	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get page count for %s: %v", ErrUnreadablePDF, path, err)
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("%w: PDF file is empty: %s", ErrUnreadablePDF, path)
	}

	return &Document{Path: path, PageCount: pageCount, FileSize: fileInfo.Size()}, nil
}

// Info returns display information about the document.
func (d *Document) Info() Info {
	const mb = 1024 * 1024
	return Info{
		Path:      d.Path,
		Filename:  filepath.Base(d.Path),
		Pages:     d.PageCount,
		SizeBytes: d.FileSize,
		SizeMB:    float64(int(float64(d.FileSize)/mb*100+0.5)) / 100,
	}
}

// newConfiguration returns the pdfcpu configuration used for all
// operations. Strict validation keeps malformed PDFs from consuming
// excessive memory during processing.
func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationStrict
	return conf
}

// configuredMaxFileSize holds a limit taken from the config file.
var configuredMaxFileSize int64

// SetMaxFileSize sets the input size limit from configuration. Zero
// restores the built-in default. The environment variable still takes
// precedence over both.
func SetMaxFileSize(size int64) {
	configuredMaxFileSize = size
}

// maxFileSize returns the effective input size limit in bytes:
// environment override, then config file, then the built-in default.
func maxFileSize() int64 {
	if sizeStr := os.Getenv(MaxFileSizeEnvVar); sizeStr != "" {
		if size, err := strconv.ParseInt(sizeStr, 10, 64); err == nil && size > 0 {
			return size
		}
	}
	if configuredMaxFileSize > 0 {
		return configuredMaxFileSize
	}
	return DefaultMaxFileSize
}

func validateFileSize(fileSize int64) error {
	maxSize := maxFileSize()
	if fileSize > maxSize {
		sizeMB := float64(fileSize) / (1024 * 1024)
		maxSizeMB := float64(maxSize) / (1024 * 1024)
		return fmt.Errorf("%w: PDF file size %.1fMB exceeds maximum allowed size of %.1fMB (use %s to adjust the limit)",
			ErrUnreadablePDF, sizeMB, maxSizeMB, MaxFileSizeEnvVar)
	}
	return nil
}

// ensureOutputDir creates the directory that will hold outPath.
func ensureOutputDir(outPath string) error {
	dir := filepath.Dir(outPath)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("%w: failed to create output directory %s: %v", ErrIO, dir, err)
	}
	return nil
}

// pageStrings converts resolved 1-based page indices to the string
// slice form the pdfcpu API expects. Order is preserved, which matters
// for api.CollectFile.
func pageStrings(pages []int) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = strconv.Itoa(p)
	}
	return out
}
