package main

import (
	"github.com/spf13/cobra"

	"github.com/printforge/codepress/version"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "codepress",
	Short: "Render a folder of source code as a paginated, highlighted PDF",
	Long: `Codepress converts every supported source file under a folder into a
single PDF: a table of contents followed by each file's content, flowed
across multiple columns per page with lightweight syntax highlighting.

Pagination details:
  - files are grouped by subfolder, each folder and file gets a TOC entry
  - content flows top-to-bottom, left-to-right through fixed-width columns
  - TOC page numbers are resolved by iterative re-layout to a fixed point`,
	Version:       version.GitRelease,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
}
