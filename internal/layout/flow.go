package layout

import "github.com/printforge/codepress/internal/document"

// Measurer reports how much vertical space a block occupies in a column of
// the given width, including any spacing before or after the block. The
// PDF renderer implements this over real font metrics; tests substitute
// fixed heights.
type Measurer interface {
	BlockHeight(b *document.Block, columnWidth float64) float64
}

// Placement is one block's final position: zero-based page and column, and
// the vertical offset from the top of the column.
type Placement struct {
	Block  *document.Block
	Page   int
	Column int
	Y      float64
	Height float64
}

// TOCEntry records where a heading landed during a flow pass.
type TOCEntry struct {
	Level    int
	Label    string
	Page     int // zero-based page index of the heading's placement
	Bookmark string
}

// Result is the output of a single flow pass. Each pass owns its result
// outright; resolver iterations never share or mutate a previous one.
type Result struct {
	Placements []Placement
	Entries    []TOCEntry
	Pages      int
}

// cursor is the mutable flow state. It only ever advances.
type cursor struct {
	page   int
	column int
	y      float64
}

// fitSlack absorbs float rounding when testing whether a block still fits.
const fitSlack = 1e-6

// Flow lays the block stream into columns, strictly first-fit: top to
// bottom within a column, left to right across columns, then a fresh page.
// Blocks are placed atomically and never split; a block taller than a full
// column is still placed, alone, at the top of one (rendering primitives
// wrap internally). startPage offsets all page indices, which the resolver
// uses to reserve placeholder TOC pages on the first pass.
func Flow(blocks []document.Block, geom Geometry, m Measurer, startPage int) *Result {
	colWidth := geom.ColumnWidth()
	maxHeight := geom.UsableHeight()

	cur := cursor{page: startPage}
	res := &Result{Placements: make([]Placement, 0, len(blocks))}

	for i := range blocks {
		b := &blocks[i]
		h := m.BlockHeight(b, colWidth)

		if cur.y > 0 && cur.y+h > maxHeight+fitSlack {
			cur.advance(geom.Columns)
		}

		res.Placements = append(res.Placements, Placement{
			Block:  b,
			Page:   cur.page,
			Column: cur.column,
			Y:      cur.y,
			Height: h,
		})
		if b.IsHeading() {
			res.Entries = append(res.Entries, TOCEntry{
				Level:    b.TOCLevel,
				Label:    b.Text,
				Page:     cur.page,
				Bookmark: b.Bookmark,
			})
		}
		cur.y += h
	}

	res.Pages = cur.page + 1
	return res
}

// advance moves to the next column, rolling over to a new page after the
// last column.
func (c *cursor) advance(columns int) {
	c.column++
	c.y = 0
	if c.column >= columns {
		c.column = 0
		c.page++
	}
}
