package document

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/printforge/codepress/internal/highlight"
	"github.com/printforge/codepress/internal/scan"
)

// Loader reads a file's content as lines. Injected so builds can be tested
// without touching the filesystem and so read failures can be simulated.
type Loader func(path string) ([]string, error)

// Build turns the sorted file list into the block stream. Files must
// already be in their final order; the builder emits a folder heading the
// first time each distinct folder key is seen, a file heading per file,
// and one text or blank block per content line. A file whose load fails
// contributes its heading plus a single diagnostic line, never an error.
func Build(files []scan.File, load Loader, cache *highlight.Cache) []Block {
	var blocks []Block
	seen := make(map[string]struct{})

	for _, f := range files {
		if f.FolderKey != "" {
			if _, ok := seen[f.FolderKey]; !ok {
				seen[f.FolderKey] = struct{}{}
				blocks = append(blocks, Block{
					Kind:     FolderHeading,
					Style:    StyleFolderTitle,
					Text:     f.FolderKey,
					TOCLevel: LevelFolder,
					Bookmark: uuid.NewString(),
				})
			}
		}

		blocks = append(blocks, Block{
			Kind:     FileHeading,
			Style:    StyleFileTitle,
			Text:     f.Name,
			TOCLevel: LevelFile,
			Bookmark: uuid.NewString(),
		})

		lines, err := load(f.Path)
		if err != nil {
			blocks = append(blocks, Block{
				Kind:  TextLine,
				Style: StyleCodeLine,
				Text:  fmt.Sprintf("[unreadable: %v]", err),
				Spans: []highlight.Span{{Text: fmt.Sprintf("[unreadable: %v]", err), Class: highlight.ClassComment}},
			})
			continue
		}

		lang := highlight.DetectLanguage(f.Ext)
		highlighted := cache.File(f.Path, lines, lang)
		for i, line := range lines {
			blocks = append(blocks, lineBlock(line, highlighted[i]))
		}
	}
	return blocks
}

func lineBlock(line string, spans []highlight.Span) Block {
	if isBlank(line) {
		return Block{Kind: BlankLine, Style: StyleCodeLine}
	}
	return Block{
		Kind:   TextLine,
		Style:  StyleCodeLine,
		Text:   line,
		Spans:  spans,
		Indent: leadingSpaces(line),
	}
}

func isBlank(line string) bool {
	for _, r := range line {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}

// leadingSpaces counts leading whitespace characters, tabs expanded to
// four columns so downstream wrap indentation lines up.
func leadingSpaces(line string) int {
	n := 0
	for _, r := range line {
		switch r {
		case ' ':
			n++
		case '\t':
			n += 4
		default:
			return n
		}
	}
	return n
}
