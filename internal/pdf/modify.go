package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// WatermarkOptions controls text watermark rendering. Zero values fall
// back to the defaults the original tool shipped with.
type WatermarkOptions struct {
	Opacity  float64 // 0.0..1.0, default 0.3
	FontSize int     // points, default 50
	Rotation int     // degrees, default 45
	Position string  // pdfcpu anchor, default "c" (centre)
}

func (o WatermarkOptions) withDefaults() WatermarkOptions {
	if o.Opacity == 0 {
		o.Opacity = 0.3
	}
	if o.FontSize == 0 {
		o.FontSize = 50
	}
	if o.Rotation == 0 {
		o.Rotation = 45
	}
	if o.Position == "" {
		o.Position = "c"
	}
	return o
}

// validAngles are the rotations the tool accepts.
var validAngles = map[int]bool{90: true, 180: true, 270: true}

// RotatePages rotates the selected pages of input by angle degrees
// clockwise and writes the result to output. Pages outside the
// selection are copied unchanged. angle must be 90, 180 or 270.
func RotatePages(input string, pages []int, angle int, output string, progress ProgressFunc) error {
	if !validAngles[angle] {
		return fmt.Errorf("rotation must be 90, 180 or 270 degrees, got %d", angle)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no pages to rotate")
	}

	if err := ensureOutputDir(output); err != nil {
		return err
	}

	report(progress, 0, len(pages), "Rotating pages...")

	conf := newConfiguration()
	if err := api.RotateFile(input, output, angle, pageStrings(pages), conf); err != nil {
		return fmt.Errorf("failed to rotate pages: %w", err)
	}

	report(progress, len(pages), len(pages),
		fmt.Sprintf("Successfully rotated %d pages by %d°", len(pages), angle))
	return nil
}

// AddTextWatermark overlays text as a watermark on the selected pages
// of input (all pages when pages is nil) and writes the result to
// output.
func AddTextWatermark(input, output, text string, pages []int, opts WatermarkOptions, progress ProgressFunc) error {
	if text == "" {
		return fmt.Errorf("watermark text cannot be empty")
	}
	if opts.Opacity < 0 || opts.Opacity > 1 {
		return fmt.Errorf("opacity must be between 0.0 and 1.0, got %g", opts.Opacity)
	}

	if err := ensureOutputDir(output); err != nil {
		return err
	}

	opts = opts.withDefaults()

	report(progress, 0, 1, "Adding watermark...")

	wm, err := api.TextWatermark(text, watermarkDesc(opts), true, false, types.POINTS)
	if err != nil {
		return fmt.Errorf("failed to create watermark: %w", err)
	}

	var selection []string
	if len(pages) > 0 {
		selection = pageStrings(pages)
	}

	conf := newConfiguration()
	if err := api.AddWatermarksFile(input, output, selection, wm, conf); err != nil {
		return fmt.Errorf("failed to add watermark: %w", err)
	}

	report(progress, 1, 1, "Successfully added watermark")
	return nil
}

// watermarkDesc builds the pdfcpu watermark description string.
func watermarkDesc(opts WatermarkOptions) string {
	return fmt.Sprintf("points:%d, op:%.2f, rot:%d, pos:%s, scale:1 abs",
		opts.FontSize, opts.Opacity, opts.Rotation, opts.Position)
}

// Compress rewrites input with pdfcpu's optimisation pass and writes
// the result to output. This is best-effort: the output is not
// guaranteed to be smaller than the input.
func Compress(input, output string, progress ProgressFunc) error {
	if err := ensureOutputDir(output); err != nil {
		return err
	}

	originalSize := int64(0)
	if fi, err := os.Stat(input); err == nil {
		originalSize = fi.Size()
	}

	report(progress, 0, 1, "Compressing PDF...")

	conf := newConfiguration()
	if err := api.OptimizeFile(input, output, conf); err != nil {
		return fmt.Errorf("failed to compress PDF: %w", err)
	}

	if fi, err := os.Stat(output); err == nil && originalSize > 0 {
		ratio := (1 - float64(fi.Size())/float64(originalSize)) * 100
		report(progress, 1, 1,
			fmt.Sprintf("Compressed by %.1f%% (%d → %d bytes)", ratio, originalSize, fi.Size()))
	} else {
		report(progress, 1, 1, fmt.Sprintf("Compressed %s", filepath.Base(output)))
	}

	return nil
}
