package highlight

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultCacheSize bounds the number of files whose highlighted lines are
// retained. Layout resolution re-flows the same block stream several
// times, so per-file results are worth keeping for the whole run.
const defaultCacheSize = 4096

// Cache memoizes per-file highlighting results. Highlighting is pure, so
// entries keyed by file path stay valid for the lifetime of a build.
type Cache struct {
	files *lru.Cache[string, [][]Span]
}

// NewCache returns a cache bounded to the given number of files. Sizes
// below one fall back to the default.
func NewCache(size int) (*Cache, error) {
	if size < 1 {
		size = defaultCacheSize
	}
	files, err := lru.New[string, [][]Span](size)
	if err != nil {
		return nil, err
	}
	return &Cache{files: files}, nil
}

// File returns the highlighted spans for every line of a file, computing
// and caching them on first use.
func (c *Cache) File(path string, lines []string, lang Language) [][]Span {
	if cached, ok := c.files.Get(path); ok {
		return cached
	}
	highlighted := make([][]Span, len(lines))
	for i, line := range lines {
		highlighted[i] = Line(line, lang)
	}
	c.files.Add(path, highlighted)
	return highlighted
}
