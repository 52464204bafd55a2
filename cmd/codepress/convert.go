package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/printforge/codepress/internal/build"
	"github.com/printforge/codepress/internal/config"
	"github.com/printforge/codepress/internal/watch"
)

var (
	convertWatch      bool
	convertNoValidate bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <source folder> [output path] [config path]",
	Short: "Build the PDF for a source folder",
	Long: `Build a paginated PDF from every supported source file under the
given folder.

The output path defaults to "<folder name>.pdf" in the working directory.
When a config path is given the file must exist; otherwise ./config.yaml
and ~/.codepress/config.yaml are tried and built-in defaults apply.

Examples:
  codepress convert ./src
  codepress convert ./src handout.pdf
  codepress convert ./src handout.pdf print.yaml
  codepress convert ./src --watch`,
	Args: cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))

		source := args[0]
		output := defaultOutput(source)
		if len(args) > 1 {
			output = args[1]
		}
		cfgFile := ""
		if len(args) > 2 {
			cfgFile = args[2]
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		opts := build.Options{
			Source:   source,
			Output:   output,
			Validate: !convertNoValidate,
		}

		if _, err := build.Run(ctx, logger, cfg, opts); err != nil {
			return err
		}

		if !convertWatch {
			return nil
		}

		logger.Info("watching for changes", "source", source)
		err = watch.Run(ctx, logger, source, watch.DefaultDebounce, func() {
			if _, err := build.Run(ctx, logger, cfg, opts); err != nil {
				logger.Error("rebuild failed", "error", err)
			}
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

// defaultOutput names the artifact after the source folder.
func defaultOutput(source string) string {
	base := filepath.Base(filepath.Clean(source))
	if base == "." || base == string(filepath.Separator) {
		base = "document"
	}
	return strings.TrimSuffix(base, string(filepath.Separator)) + ".pdf"
}

func init() {
	convertCmd.Flags().BoolVar(&convertWatch, "watch", false, "rebuild when the source tree changes")
	convertCmd.Flags().BoolVar(&convertNoValidate, "no-validate", false, "skip structural validation of the written PDF")

	rootCmd.AddCommand(convertCmd)
}
