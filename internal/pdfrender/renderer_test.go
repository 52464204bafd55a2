package pdfrender

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/printforge/codepress/internal/document"
	"github.com/printforge/codepress/internal/highlight"
	"github.com/printforge/codepress/internal/layout"
)

func testOptions() Options {
	return Options{
		Geometry: layout.Geometry{
			PageWidth: 841.89, PageHeight: 595.28,
			MarginTop: 14.4, MarginBottom: 14.4,
			MarginLeft: 14.4, MarginRight: 14.4,
			Columns: 3, Gutter: 1.44,
		},
		FontSize:      11,
		TitleFontSize: 10,
		Label:         "ACME",
	}
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(testOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestBlockHeight(t *testing.T) {
	r := newRenderer(t)
	colWidth := testOptions().Geometry.ColumnWidth()

	line := document.Block{Kind: document.TextLine, Style: document.StyleCodeLine, Text: "x = 1"}
	blank := document.Block{Kind: document.BlankLine, Style: document.StyleCodeLine}
	heading := document.Block{Kind: document.FileHeading, Style: document.StyleFileTitle, Text: "a.go", TOCLevel: document.LevelFile}

	lineH := r.BlockHeight(&line, colWidth)
	if lineH != 13 { // font_size 11 + 2 leading
		t.Errorf("text line height = %g, want 13", lineH)
	}
	if h := r.BlockHeight(&blank, colWidth); h != lineH {
		t.Errorf("blank height = %g, want %g", h, lineH)
	}
	if h := r.BlockHeight(&heading, colWidth); h <= lineH {
		t.Errorf("heading height = %g, want > %g (spacing before/after)", h, lineH)
	}
}

func TestBlockHeight_WrapsLongLines(t *testing.T) {
	r := newRenderer(t)
	colWidth := testOptions().Geometry.ColumnWidth()

	short := document.Block{Kind: document.TextLine, Style: document.StyleCodeLine, Text: "short"}
	long := short
	for len(long.Text) < 400 {
		long.Text += " more and more content"
	}

	hShort := r.BlockHeight(&short, colWidth)
	hLong := r.BlockHeight(&long, colWidth)
	if hLong <= hShort {
		t.Errorf("long line height %g not greater than short %g", hLong, hShort)
	}

	// The same long line in a narrower column takes at least as many lines.
	hNarrow := r.BlockHeight(&long, colWidth/2)
	if hNarrow < hLong {
		t.Errorf("narrow column height %g < wide column height %g", hNarrow, hLong)
	}
}

func TestBlockHeight_EmptyTextStillOneLine(t *testing.T) {
	r := newRenderer(t)
	b := document.Block{Kind: document.TextLine, Style: document.StyleCodeLine, Text: ""}
	if h := r.BlockHeight(&b, 100); h != 13 {
		t.Errorf("empty text height = %g, want one line", h)
	}
}

func TestRender_WritesArtifact(t *testing.T) {
	opts := testOptions()
	r, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	blocks := []document.Block{
		{Kind: document.TextLine, Style: document.StyleTOCTitle, Text: "Table of Contents"},
		{Kind: document.TextLine, Style: document.StyleTOCEntry, Text: "a.go", PageRef: 1, Bookmark: "bk1"},
		{Kind: document.FileHeading, Style: document.StyleFileTitle, Text: "a.go", TOCLevel: document.LevelFile, Bookmark: "bk1"},
		{Kind: document.TextLine, Style: document.StyleCodeLine, Text: `s := "hello" // greet`,
			Spans: []highlight.Span{{Text: `s := "hello" `, Class: highlight.ClassPlain}, {Text: "// greet", Class: highlight.ClassComment}}},
		{Kind: document.BlankLine, Style: document.StyleCodeLine},
	}
	res := layout.Flow(blocks, opts.Geometry, r, 0)

	data, err := r.Render(res)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("artifact is empty")
	}
	if string(data[:5]) != "%PDF-" {
		t.Errorf("artifact header = %q, want %%PDF-", data[:5])
	}

	out := filepath.Join(t.TempDir(), "out.pdf")
	if err := os.WriteFile(out, data, 0644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
}

func TestRender_MultiPage(t *testing.T) {
	opts := testOptions()
	r, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var blocks []document.Block
	for i := 0; i < 500; i++ {
		blocks = append(blocks, document.Block{Kind: document.TextLine, Style: document.StyleCodeLine, Text: "line of code"})
	}
	res := layout.Flow(blocks, opts.Geometry, r, 0)
	if res.Pages < 2 {
		t.Fatalf("fixture too small: %d pages", res.Pages)
	}

	if _, err := r.Render(res); err != nil {
		t.Fatalf("Render: %v", err)
	}
}
