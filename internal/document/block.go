// Package document builds the ordered stream of content blocks that the
// layout engine flows into columns: one heading per folder and file, then
// one block per line of file content.
package document

import "github.com/printforge/codepress/internal/highlight"

// Kind discriminates the block variants.
type Kind int

const (
	FolderHeading Kind = iota
	FileHeading
	TextLine
	BlankLine
)

// Style selects the visual treatment a block is rendered with.
type Style int

const (
	StyleFolderTitle Style = iota
	StyleFileTitle
	StyleCodeLine
	StyleTOCTitle
	StyleTOCEntry
)

// TOC levels for heading blocks.
const (
	LevelFolder = 0
	LevelFile   = 1
)

// Block is the atomic unit of layout. Heading blocks carry a TOC level and
// a bookmark key; text lines carry their highlighted spans and a literal
// leading-space count so indentation survives rendering.
type Block struct {
	Kind     Kind
	Style    Style
	Text     string // heading label, or the raw line for text blocks
	Spans    []highlight.Span
	Indent   int    // leading spaces on the original line
	TOCLevel int    // LevelFolder or LevelFile; meaningful only on headings
	Bookmark string // stable key identifying the heading's target location
	PageRef  int    // 1-based page number a TOC entry line points at
}

// IsHeading reports whether the block contributes a TOC entry.
func (b *Block) IsHeading() bool {
	return b.Kind == FolderHeading || b.Kind == FileHeading
}
