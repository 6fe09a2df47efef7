// pdfsmith is a desktop command-line tool for manipulating PDF
// documents: merging, splitting, page extraction, rotation,
// watermarking and compression. All byte-level PDF work is delegated
// to pdfcpu.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/sammcj/pdfsmith/internal/config"
	"github.com/sammcj/pdfsmith/internal/ops"
	"github.com/sammcj/pdfsmith/internal/pdf"
)

// Version information (set during build)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// parseLogLevel parses the LOG_LEVEL environment variable and returns
// the appropriate logrus level. Defaults to WarnLevel if not set or
// invalid.
func parseLogLevel() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		return logrus.WarnLevel
	}

	// Normalise to lowercase for comparison
	logLevelStr = strings.ToLower(strings.TrimSpace(logLevelStr))

	switch logLevelStr {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.WarnLevel
	}
}

// progressPrinter renders operation progress on a single terminal line.
type progressPrinter struct {
	quiet bool
}

func (p *progressPrinter) update(current, total int, message string) {
	if p.quiet {
		return
	}
	if total > 0 {
		percent := float64(current) / float64(total) * 100
		fmt.Printf("\r[%3.0f%%] %s", percent, message)
	} else {
		fmt.Printf("\r%s", message)
	}
	if current == total && total > 0 {
		fmt.Println()
	}
}

type app struct {
	logger *logrus.Logger
	cfg    *config.Config
	state  *config.State
	quiet  bool
}

func main() {
	// A .env in the working directory may carry LOG_LEVEL and limit
	// overrides; ignore it when absent.
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetLevel(parseLogLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	a := &app{logger: logger}

	cliApp := &cli.App{
		Name:    "pdfsmith",
		Usage:   "merge, split, extract, rotate, watermark and compress PDF documents",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress progress messages",
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the config file",
				EnvVars: []string{config.ConfigPathEnvVar},
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return cli.Exit(failLine("Config error", err), 1)
			}
			a.cfg = cfg
			a.state = config.LoadState()
			a.quiet = c.Bool("quiet") || cfg.Quiet
			pdf.SetMaxFileSize(cfg.MaxFileSize)
			return nil
		},
		Commands: []*cli.Command{
			a.mergeCommand(),
			a.splitCommand(),
			a.extractCommand(),
			a.rotateCommand(),
			a.watermarkCommand(),
			a.compressCommand(),
			a.infoCommand(),
			a.recentCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		// cli.Exit errors already carry their message; anything else
		// still needs printing.
		if _, ok := err.(cli.ExitCoder); !ok {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if coder, ok := err.(cli.ExitCoder); ok {
		return coder.ExitCode()
	}
	return 1
}

func (a *app) mergeCommand() *cli.Command {
	return &cli.Command{
		Name:      "merge",
		Usage:     "Merge multiple PDF files into a single PDF",
		ArgsUsage: "FILE FILE [FILE...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Output PDF file",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "pages",
				Usage: `Page ranges per file ("1-5,all,10-15" positionally, or "file1.pdf:1-5,file2.pdf:all")`,
			},
			&cli.BoolFlag{
				Name:  "compress",
				Usage: "Compress the merged output",
			},
		},
		Action: func(c *cli.Context) error {
			return a.run(c, "Merge", ops.Merge{
				Inputs:   c.Args().Slice(),
				Output:   a.resolveOutput(c.String("output")),
				Pages:    c.String("pages"),
				Compress: c.Bool("compress"),
			})
		},
	}
}

func (a *app) splitCommand() *cli.Command {
	return &cli.Command{
		Name:      "split",
		Usage:     "Split a PDF into multiple files",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Output directory",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "pages-per-file",
				Usage: "Number of pages per output file",
			},
			&cli.StringFlag{
				Name:  "by-ranges",
				Usage: `Split by page ranges (e.g. "1-10,11-20,21-30")`,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit(failLine("Split failed", fmt.Errorf("exactly one input file is required")), 1)
			}
			return a.run(c, "Split", ops.Split{
				Input:        c.Args().First(),
				OutputDir:    c.String("output"),
				PagesPerFile: c.Int("pages-per-file"),
				Ranges:       c.String("by-ranges"),
			})
		},
	}
}

func (a *app) extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Extract specific pages from a PDF",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "pages",
				Usage:    `Page range to extract (e.g. "1-5,10,15-20")`,
				Required: true,
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Output PDF file",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit(failLine("Extract failed", fmt.Errorf("exactly one input file is required")), 1)
			}
			return a.run(c, "Extract", ops.Extract{
				Input:  c.Args().First(),
				Output: a.resolveOutput(c.String("output")),
				Pages:  c.String("pages"),
			})
		},
	}
}

func (a *app) rotateCommand() *cli.Command {
	return &cli.Command{
		Name:      "rotate",
		Usage:     "Rotate pages in a PDF",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "pages",
				Value: "all",
				Usage: `Page range to rotate (e.g. "1-10" or "all")`,
			},
			&cli.IntFlag{
				Name:     "angle",
				Usage:    "Rotation angle (90, 180 or 270 degrees)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Output PDF file",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit(failLine("Rotate failed", fmt.Errorf("exactly one input file is required")), 1)
			}
			return a.run(c, "Rotate", ops.Rotate{
				Input:  c.Args().First(),
				Output: a.resolveOutput(c.String("output")),
				Pages:  c.String("pages"),
				Angle:  c.Int("angle"),
			})
		},
	}
}

func (a *app) watermarkCommand() *cli.Command {
	return &cli.Command{
		Name:      "watermark",
		Usage:     "Add a text watermark to all pages of a PDF",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "text",
				Usage:    "Watermark text",
				Required: true,
			},
			&cli.Float64Flag{
				Name:  "opacity",
				Usage: "Watermark opacity (0.0 to 1.0)",
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Output PDF file",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit(failLine("Watermark failed", fmt.Errorf("exactly one input file is required")), 1)
			}
			opts := pdf.WatermarkOptions{
				Opacity:  a.cfg.Watermark.Opacity,
				FontSize: a.cfg.Watermark.FontSize,
				Rotation: a.cfg.Watermark.Rotation,
				Position: a.cfg.Watermark.Position,
			}
			if c.IsSet("opacity") {
				opts.Opacity = c.Float64("opacity")
			}
			return a.run(c, "Watermark", ops.Watermark{
				Input:   c.Args().First(),
				Output:  a.resolveOutput(c.String("output")),
				Text:    c.String("text"),
				Options: opts,
			})
		},
	}
}

func (a *app) compressCommand() *cli.Command {
	return &cli.Command{
		Name:      "compress",
		Usage:     "Reduce PDF file size by optimising its content",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Output PDF file",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit(failLine("Compress failed", fmt.Errorf("exactly one input file is required")), 1)
			}
			return a.run(c, "Compress", ops.Compress{
				Input:  c.Args().First(),
				Output: a.resolveOutput(c.String("output")),
			})
		},
	}
}

func (a *app) infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Show page count and size of PDF files",
		ArgsUsage: "FILE [FILE...]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit(failLine("Info failed", fmt.Errorf("at least one input file is required")), 1)
			}
			for _, path := range c.Args().Slice() {
				doc, err := pdf.Open(path)
				if err != nil {
					return cli.Exit(failLine("Info failed", err), 1)
				}
				info := doc.Info()
				fmt.Printf("%s: %d pages, %.2f MB\n", info.Filename, info.Pages, info.SizeMB)
			}
			return nil
		},
	}
}

func (a *app) recentCommand() *cli.Command {
	return &cli.Command{
		Name:  "recent",
		Usage: "List recently processed files",
		Action: func(c *cli.Context) error {
			for _, path := range a.state.Recent() {
				fmt.Fprintln(c.App.Writer, path)
			}
			if dir := a.state.LastOutputDir; dir != "" {
				fmt.Fprintf(c.App.Writer, "Last output directory: %s\n", dir)
			}
			return nil
		},
	}
}

// run dispatches a command and renders its outcome.
func (a *app) run(c *cli.Context, label string, cmd ops.Command) error {
	progress := &progressPrinter{quiet: a.quiet}

	result, err := ops.Execute(c.Context, a.logger, cmd, progress.update)
	if err != nil {
		return cli.Exit(failLine(label+" failed", err), 1)
	}

	a.recordOutputs(result.Outputs)

	if !a.quiet {
		fmt.Printf("%s %s\n", color.GreenString("✓"), result.Message)
	}
	return nil
}

// recordOutputs updates the recent-files state. State failures are
// logged, never fatal: the operation itself already succeeded.
func (a *app) recordOutputs(outputs []string) {
	for _, out := range outputs {
		if err := a.state.AddRecent(out); err != nil {
			a.logger.WithError(err).Debug("Failed to update recent files state")
			return
		}
	}
	if len(outputs) > 0 {
		if err := a.state.SetLastOutputDir(filepath.Dir(outputs[len(outputs)-1])); err != nil {
			a.logger.WithError(err).Debug("Failed to update last output directory state")
		}
	}
}

// resolveOutput applies the configured default output directory to
// bare relative output paths.
func (a *app) resolveOutput(out string) string {
	if a.cfg.DefaultOutputDir == "" || filepath.IsAbs(out) {
		return out
	}
	if strings.ContainsRune(out, os.PathSeparator) {
		return out
	}
	return filepath.Join(a.cfg.DefaultOutputDir, out)
}

// failLine formats a failure for stderr-bound exit messages.
func failLine(label string, err error) string {
	return fmt.Sprintf("%s %s: %s", color.RedString("✗"), label, err)
}
