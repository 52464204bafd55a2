// Package build runs the full pipeline: scan the source tree, highlight
// and assemble the block stream, resolve the table of contents, render,
// and write the PDF artifact. One call is one batch build; nothing is
// persisted between runs.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/printforge/codepress/internal/config"
	"github.com/printforge/codepress/internal/document"
	"github.com/printforge/codepress/internal/highlight"
	"github.com/printforge/codepress/internal/layout"
	"github.com/printforge/codepress/internal/pdfrender"
	"github.com/printforge/codepress/internal/scan"
)

// Options for one build.
type Options struct {
	Source   string
	Output   string
	Validate bool // structurally validate the written PDF with pdfcpu
}

// Summary reports what a successful build produced.
type Summary struct {
	Files      int
	Pages      int
	Iterations int
	Converged  bool
	Duration   time.Duration
}

// Run executes one batch build. Per-file read failures become diagnostic
// blocks inside the document; only an unreadable source tree, bad
// configuration, or a failed write aborts the build.
func Run(ctx context.Context, logger *slog.Logger, cfg *config.Config, opts Options) (*Summary, error) {
	start := time.Now()

	files, err := scan.Scan(opts.Source)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no supported source files under %s", opts.Source)
	}
	logger.Info("scanned source tree", "files", len(files), "source", opts.Source)

	cache, err := highlight.NewCache(0)
	if err != nil {
		return nil, err
	}
	body := document.Build(files, scan.Load, cache)

	renderer, err := pdfrender.New(pdfrender.Options{
		Geometry:      cfg.Geometry(),
		FontSize:      cfg.FontSize,
		TitleFontSize: cfg.TitleFontSize,
		Label:         cfg.Label,
		FontRegular:   cfg.FontRegular,
		FontBold:      cfg.FontBold,
	})
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, stats := layout.Resolve(body, cfg.Geometry(), renderer, cfg.TOCTitle, cfg.MaxIterations, logger)

	data, err := renderer.Render(res)
	if err != nil {
		return nil, err
	}
	if err := writeArtifact(ctx, opts.Output, data); err != nil {
		return nil, err
	}

	if opts.Validate {
		if err := api.ValidateFile(opts.Output, nil); err != nil {
			logger.Warn("written PDF failed structural validation", "path", opts.Output, "error", err)
		}
	}

	summary := &Summary{
		Files:      len(files),
		Pages:      res.Pages,
		Iterations: stats.Iterations,
		Converged:  stats.Converged,
		Duration:   time.Since(start),
	}
	logger.Info("document built",
		"output", opts.Output,
		"pages", summary.Pages,
		"files", summary.Files,
		"toc_iterations", summary.Iterations,
		"duration", summary.Duration.Round(time.Millisecond))
	return summary, nil
}

// writeArtifact writes the PDF with a short retry. In watch mode the
// previous artifact is often still held open by a viewer whose lock makes
// the first attempt fail.
func writeArtifact(ctx context.Context, path string, data []byte) error {
	err := retry.Do(
		func() error { return os.WriteFile(path, data, 0644) },
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
