// Package highlight implements a line-local lexical highlighter for source
// code. It is a heuristic, not a parser: rules are applied in priority
// order (comment, then string literal, then keyword scan) and the first
// rule that fires decides the whole line. There is no cross-line state, so
// unterminated strings and block comments are deliberately not tracked.
package highlight

import (
	"strings"
	"unicode"
)

// Class is the visual class of a token run.
type Class int

const (
	ClassPlain Class = iota
	ClassKeyword
	ClassString
	ClassComment
)

// Span is a run of characters sharing one class. Concatenating the Text of
// all spans returned for a line reproduces the line exactly.
type Span struct {
	Text  string
	Class Class
}

// Line applies the rule chain to a single line of text. It is total: any
// input produces a valid span sequence whose concatenation equals the
// input byte-for-byte.
func Line(line string, lang Language) []Span {
	if line == "" {
		return nil
	}
	if strings.TrimSpace(line) == "" {
		return []Span{{Text: line, Class: ClassPlain}}
	}

	if spans, ok := commentRule(line); ok {
		return spans
	}
	if spans, ok := stringRule(line); ok {
		return spans
	}
	return keywordRule(line, lang)
}

// commentRule handles line comments. A "//" marker splits the line into a
// plain prefix and a comment suffix; a line whose stripped form starts
// with "#" is a comment in its entirety. The prefix of a "//" line is not
// re-scanned for strings or keywords.
func commentRule(line string) ([]Span, bool) {
	if idx := strings.Index(line, "//"); idx >= 0 {
		spans := make([]Span, 0, 2)
		if idx > 0 {
			spans = append(spans, Span{Text: line[:idx], Class: ClassPlain})
		}
		spans = append(spans, Span{Text: line[idx:], Class: ClassComment})
		return spans, true
	}
	if strings.HasPrefix(strings.TrimSpace(line), "#") {
		return []Span{{Text: line, Class: ClassComment}}, true
	}
	return nil, false
}

// stringRule tags quote-delimited segments. It fires only when the line
// contains a quote character; double quotes are tried first, single quotes
// are the fallback. A line with an odd arrangement of quotes (fewer than
// two of either kind) is emitted as plain.
func stringRule(line string) ([]Span, bool) {
	hasDouble := strings.Contains(line, `"`)
	hasSingle := strings.Contains(line, "'")
	if !hasDouble && !hasSingle {
		return nil, false
	}

	if strings.Count(line, `"`) >= 2 {
		return splitQuoted(line, `"`), true
	}
	if strings.Count(line, "'") >= 2 {
		return splitQuoted(line, "'"), true
	}
	return []Span{{Text: line, Class: ClassPlain}}, true
}

// splitQuoted splits on the quote character and tags every odd-indexed
// segment as a string, inclusive of its delimiting quotes.
func splitQuoted(line, quote string) []Span {
	parts := strings.Split(line, quote)
	spans := make([]Span, 0, len(parts))
	for i, part := range parts {
		if i%2 == 1 && i < len(parts)-1 {
			spans = append(spans, Span{Text: quote + part + quote, Class: ClassString})
		} else if i%2 == 1 {
			// Trailing unmatched quote: it already closed the previous
			// segment's pairing, keep the remainder plain with its quote.
			spans = append(spans, Span{Text: quote + part, Class: ClassPlain})
		} else if part != "" {
			spans = append(spans, Span{Text: part, Class: ClassPlain})
		}
	}
	return coalesce(spans)
}

// keywordRule scans whitespace-separated words, strips leading and
// trailing non-word characters, and tags the core as a keyword when it is
// a member of the language's set. Whitespace and punctuation are preserved
// as plain runs.
func keywordRule(line string, lang Language) []Span {
	var spans []Span
	rest := line
	for rest != "" {
		ws := leadingSpace(rest)
		if ws != "" {
			spans = append(spans, Span{Text: ws, Class: ClassPlain})
			rest = rest[len(ws):]
			continue
		}
		word := leadingWord(rest)
		spans = append(spans, classifyWord(word, lang)...)
		rest = rest[len(word):]
	}
	return coalesce(spans)
}

func leadingSpace(s string) string {
	for i, r := range s {
		if !unicode.IsSpace(r) {
			return s[:i]
		}
	}
	return s
}

func leadingWord(s string) string {
	for i, r := range s {
		if unicode.IsSpace(r) {
			return s[:i]
		}
	}
	return s
}

// classifyWord splits a word into prefix punctuation, core, and suffix
// punctuation, tagging only a keyword core.
func classifyWord(word string, lang Language) []Span {
	start := 0
	for start < len(word) && !isWordByte(word[start]) {
		start++
	}
	end := len(word)
	for end > start && !isWordByte(word[end-1]) {
		end--
	}
	core := word[start:end]
	if core == "" || !isKeyword(core, lang) {
		return []Span{{Text: word, Class: ClassPlain}}
	}

	spans := make([]Span, 0, 3)
	if start > 0 {
		spans = append(spans, Span{Text: word[:start], Class: ClassPlain})
	}
	spans = append(spans, Span{Text: core, Class: ClassKeyword})
	if end < len(word) {
		spans = append(spans, Span{Text: word[end:], Class: ClassPlain})
	}
	return spans
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b >= 0x80 // multibyte runes count as word characters
}

// coalesce merges adjacent spans of the same class.
func coalesce(spans []Span) []Span {
	if len(spans) < 2 {
		return spans
	}
	out := spans[:1]
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if s.Class == last.Class {
			last.Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}
