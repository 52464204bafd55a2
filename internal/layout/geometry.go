// Package layout assigns content blocks to page/column/offset coordinates
// and resolves table-of-contents page numbers to a fixed point. It knows
// nothing about PDF: measurement is delegated through the Measurer
// interface and serialization happens elsewhere.
package layout

import "fmt"

// Geometry describes the fixed page grid for one run. All values are in
// points. It is computed once from configuration and treated as read-only.
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64
	Columns      int
	Gutter       float64
}

// Validate rejects geometry no column flow can work with.
func (g Geometry) Validate() error {
	if g.Columns < 1 {
		return fmt.Errorf("columns_per_page must be at least 1, got %d", g.Columns)
	}
	if g.PageWidth <= 0 || g.PageHeight <= 0 {
		return fmt.Errorf("page size %gx%g is not positive", g.PageWidth, g.PageHeight)
	}
	if g.UsableWidth() <= 0 {
		return fmt.Errorf("margins and gutter leave no horizontal space")
	}
	if g.UsableHeight() <= 0 {
		return fmt.Errorf("margins leave no vertical space")
	}
	if g.ColumnWidth() <= 0 {
		return fmt.Errorf("column width is not positive with %d columns", g.Columns)
	}
	return nil
}

// UsableWidth is the page width inside the horizontal margins.
func (g Geometry) UsableWidth() float64 {
	return g.PageWidth - g.MarginLeft - g.MarginRight
}

// UsableHeight is the column height inside the vertical margins.
func (g Geometry) UsableHeight() float64 {
	return g.PageHeight - g.MarginTop - g.MarginBottom
}

// ColumnWidth is the width of a single column after the inter-column
// gutters are taken out.
func (g Geometry) ColumnWidth() float64 {
	return (g.UsableWidth() - float64(g.Columns-1)*g.Gutter) / float64(g.Columns)
}

// ColumnX is the left edge of column i, zero-based.
func (g Geometry) ColumnX(i int) float64 {
	return g.MarginLeft + float64(i)*(g.ColumnWidth()+g.Gutter)
}
