package layout

import (
	"log/slog"

	"github.com/printforge/codepress/internal/document"
)

// DefaultMaxIterations caps the fixed-point loop. The TOC block count does
// not depend on the page numbers it displays, so in practice the loop
// settles in two to three passes; the cap is a liveness bound for the
// pathological case where the TOC's own size keeps shifting a heading
// across a page boundary.
const DefaultMaxIterations = 10

// ResolveStats reports how the fixed-point loop ended.
type ResolveStats struct {
	Iterations int
	Converged  bool
}

// Resolve lays out the body with a table of contents whose page numbers
// match the final layout. The first pass flows the body behind a one-page
// placeholder to approximate heading pages; each subsequent pass prefixes
// real TOC blocks built from the previous pass's entries and re-flows
// everything from scratch. The loop stops when every heading's page number
// is unchanged from the previous pass, or at maxIterations, whichever
// comes first. A capped, non-converged result is still returned: page
// numbers may then be approximate, which is a diagnostic, not an error.
func Resolve(body []document.Block, geom Geometry, m Measurer, tocTitle string, maxIterations int, logger *slog.Logger) (*Result, ResolveStats) {
	if maxIterations < 1 {
		maxIterations = DefaultMaxIterations
	}

	// First approximation: body alone, shifted past a placeholder TOC page.
	res := Flow(body, geom, m, 1)
	prev := res.Entries

	for i := 1; i <= maxIterations; i++ {
		stream := append(TOCBlocks(tocTitle, prev), body...)
		res = Flow(stream, geom, m, 0)

		if samePages(prev, res.Entries) {
			logger.Debug("toc resolved", "iterations", i, "pages", res.Pages)
			return res, ResolveStats{Iterations: i, Converged: true}
		}
		prev = res.Entries
	}

	logger.Warn("toc did not converge, page numbers may be approximate",
		"iterations", maxIterations, "pages", res.Pages)
	return res, ResolveStats{Iterations: maxIterations, Converged: false}
}

// TOCBlocks renders recorded entries as content blocks: a title line
// followed by one entry line per heading, indented by level and carrying
// the 1-based display page and the target bookmark for link generation.
func TOCBlocks(title string, entries []TOCEntry) []document.Block {
	blocks := make([]document.Block, 0, len(entries)+2)
	blocks = append(blocks,
		document.Block{Kind: document.TextLine, Style: document.StyleTOCTitle, Text: title},
		document.Block{Kind: document.BlankLine, Style: document.StyleTOCEntry},
	)
	for _, e := range entries {
		blocks = append(blocks, document.Block{
			Kind:     document.TextLine,
			Style:    document.StyleTOCEntry,
			Text:     e.Label,
			Indent:   e.Level * 4,
			Bookmark: e.Bookmark,
			PageRef:  e.Page + 1,
		})
	}
	return blocks
}

// samePages reports whether two entry lists agree on every heading's page.
func samePages(a, b []TOCEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Page != b[i].Page || a[i].Bookmark != b[i].Bookmark {
			return false
		}
	}
	return true
}
