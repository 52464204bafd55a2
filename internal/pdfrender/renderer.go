// Package pdfrender serializes a finalized layout to PDF with gofpdf. It
// also implements the layout engine's measurement contract, so flow
// decisions and final glyph placement share one set of font metrics.
package pdfrender

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/printforge/codepress/internal/document"
	"github.com/printforge/codepress/internal/highlight"
	"github.com/printforge/codepress/internal/layout"
)

const builtinFamily = "Courier"

// Options configure a renderer.
type Options struct {
	Geometry      layout.Geometry
	FontSize      float64
	TitleFontSize float64
	Label         string // stamped with the page number on every page
	FontRegular   string // optional TTF path; Courier when empty
	FontBold      string // optional TTF path for the bold variant
}

// Renderer measures blocks and writes the final document. Not safe for
// concurrent use; each build owns one.
type Renderer struct {
	pdf    *gofpdf.Fpdf
	geom   layout.Geometry
	family string
	label  string
	styles map[document.Style]styleSpec
	charW  map[document.Style]float64
	links  map[string]int // bookmark key -> gofpdf link id

	sawFolder bool // outline nesting state, see outlineLevel
}

// New builds a renderer, registering TTF fonts when configured and
// falling back to the built-in Courier face.
func New(opts Options) (*Renderer, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: opts.Geometry.PageWidth, Ht: opts.Geometry.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(opts.Geometry.MarginLeft, opts.Geometry.MarginTop, opts.Geometry.MarginRight)

	family := builtinFamily
	if opts.FontRegular != "" {
		family = "custom"
		pdf.AddUTF8Font(family, "", opts.FontRegular)
		bold := opts.FontBold
		if bold == "" {
			bold = opts.FontRegular
		}
		pdf.AddUTF8Font(family, "B", bold)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("registering fonts: %w", err)
		}
	}

	r := &Renderer{
		pdf:    pdf,
		geom:   opts.Geometry,
		family: family,
		label:  opts.Label,
		styles: styleTable(opts.FontSize, opts.TitleFontSize),
		charW:  make(map[document.Style]float64),
		links:  make(map[string]int),
	}

	// Monospace advance per style, sampled once.
	for style, spec := range r.styles {
		r.setFont(spec)
		r.charW[style] = pdf.GetStringWidth("0")
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("font metrics: %w", err)
	}
	return r, nil
}

func (r *Renderer) setFont(spec styleSpec) {
	variant := ""
	if spec.bold {
		variant = "B"
	}
	r.pdf.SetFont(r.family, variant, spec.size)
}

// charsPerLine is how many monospace characters fit a column for a style.
func (r *Renderer) charsPerLine(style document.Style, columnWidth float64) int {
	w := r.charW[style]
	if w <= 0 {
		return 1
	}
	n := int(columnWidth / w)
	if n < 1 {
		n = 1
	}
	return n
}

// BlockHeight implements layout.Measurer. Text wraps at the monospace
// character capacity of the column; headings and TOC lines wrap the same
// way. Blank lines take one code line height.
func (r *Renderer) BlockHeight(b *document.Block, columnWidth float64) float64 {
	spec := r.styles[b.Style]
	if b.Kind == document.BlankLine {
		return spec.lineHeight
	}
	lines := wrapCount(b.Text, r.charsPerLine(b.Style, columnWidth))
	return spec.spaceBefore + float64(lines)*spec.lineHeight + spec.spaceAfter
}

func wrapCount(text string, perLine int) int {
	n := len([]rune(text))
	if n == 0 {
		return 1
	}
	return int(math.Ceil(float64(n) / float64(perLine)))
}

// Render draws the placed blocks and serializes the PDF. The caller owns
// writing the bytes out; the renderer is spent afterwards.
func (r *Renderer) Render(res *layout.Result) ([]byte, error) {
	r.pdf.SetHeaderFunc(r.pageFurniture)

	// Pre-allocate internal link targets for every heading so TOC lines
	// can reference them regardless of ordering.
	for _, p := range res.Placements {
		if p.Block.IsHeading() {
			r.links[p.Block.Bookmark] = r.pdf.AddLink()
		}
	}

	page := -1
	for _, p := range res.Placements {
		for page < p.Page {
			r.pdf.AddPage()
			page++
		}
		r.renderBlock(p)
	}
	// Trailing pages with no blocks can only arise from an empty layout.
	if page < 0 {
		r.pdf.AddPage()
	}

	if err := r.pdf.Error(); err != nil {
		return nil, fmt.Errorf("rendering: %w", err)
	}
	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("serializing: %w", err)
	}
	return buf.Bytes(), nil
}

// pageFurniture draws the per-page chrome: light column separator rules
// and the label with the page number in the top-right corner.
func (r *Renderer) pageFurniture() {
	g := r.geom
	top := g.MarginTop
	bottom := g.PageHeight - g.MarginBottom

	r.pdf.SetDrawColor(colorBorder[0], colorBorder[1], colorBorder[2])
	r.pdf.SetLineWidth(0.5)
	for i := 1; i < g.Columns; i++ {
		x := g.ColumnX(i) - g.Gutter/2
		r.pdf.Line(x, top, x, bottom)
	}

	if r.label != "" {
		r.pdf.SetFont(r.family, "B", 10)
		r.pdf.SetTextColor(colorPlain[0], colorPlain[1], colorPlain[2])
		stamp := fmt.Sprintf("%s - %d", r.label, r.pdf.PageNo())
		x := g.PageWidth - 7.2 - r.pdf.GetStringWidth(stamp)
		r.pdf.Text(x, g.MarginTop/2+3, stamp)
	}
}

func (r *Renderer) renderBlock(p layout.Placement) {
	b := p.Block
	if b.Kind == document.BlankLine {
		return
	}

	spec := r.styles[b.Style]
	colX := r.geom.ColumnX(p.Column)
	colWidth := r.geom.ColumnWidth()
	topY := r.geom.MarginTop + p.Y + spec.spaceBefore

	if b.IsHeading() {
		r.pdf.Bookmark(b.Text, r.outlineLevel(b), topY)
		if link, ok := r.links[b.Bookmark]; ok {
			r.pdf.SetLink(link, topY, r.pdf.PageNo())
		}
	}

	if b.Style == document.StyleTOCEntry && b.PageRef > 0 {
		r.renderTOCEntry(b, spec, colX, colWidth, topY)
		return
	}

	r.setFont(spec)
	spans := b.Spans
	if len(spans) == 0 {
		spans = []highlight.Span{{Text: b.Text, Class: highlight.ClassPlain}}
	}
	r.renderSpans(spans, spec, colX, colWidth, topY, b.Style)
}

// renderSpans draws colored runs, wrapping at the column's character
// capacity. The font is monospaced, so the cursor advances by a fixed
// width per rune.
func (r *Renderer) renderSpans(spans []highlight.Span, spec styleSpec, colX, colWidth, topY float64, style document.Style) {
	perLine := r.charsPerLine(style, colWidth)
	charW := r.charW[style]

	col := 0
	line := 0
	for _, span := range spans {
		r.applyColor(span.Class)
		runes := []rune(span.Text)
		for len(runes) > 0 {
			if col >= perLine {
				col = 0
				line++
			}
			take := perLine - col
			if take > len(runes) {
				take = len(runes)
			}
			x := colX + float64(col)*charW
			y := topY + float64(line)*spec.lineHeight + spec.size*0.85
			r.pdf.Text(x, y, string(runes[:take]))
			runes = runes[take:]
			col += take
		}
	}
	r.pdf.SetTextColor(colorPlain[0], colorPlain[1], colorPlain[2])
}

// renderTOCEntry draws "label ... page" with the page number right-aligned
// in the column, and overlays an internal link to the heading's location.
func (r *Renderer) renderTOCEntry(b *document.Block, spec styleSpec, colX, colWidth, topY float64) {
	r.setFont(spec)
	r.applyColor(highlight.ClassPlain)

	indent := float64(b.Indent) * r.charW[b.Style]
	pageText := fmt.Sprintf("%d", b.PageRef)
	pageW := r.pdf.GetStringWidth(pageText)
	baseline := topY + spec.size*0.85

	label := b.Text
	labelMax := colWidth - indent - pageW - r.pdf.GetStringWidth(" ... ")
	runes := []rune(label)
	for r.pdf.GetStringWidth(string(runes)) > labelMax && len(runes) > 1 {
		runes = runes[:len(runes)-1]
	}
	label = string(runes)
	r.pdf.Text(colX+indent, baseline, label)

	// Dotted leader between label and page number.
	leaderStart := colX + indent + r.pdf.GetStringWidth(label+" ")
	leaderEnd := colX + colWidth - pageW - r.pdf.GetStringWidth(" ")
	dotW := r.pdf.GetStringWidth(".")
	var leader strings.Builder
	for w := leaderStart; w+dotW < leaderEnd; w += dotW {
		leader.WriteString(".")
	}
	r.pdf.Text(leaderStart, baseline, leader.String())
	r.pdf.Text(colX+colWidth-pageW, baseline, pageText)

	if link, ok := r.links[b.Bookmark]; ok {
		r.pdf.Link(colX, topY, colWidth, spec.lineHeight, link)
	}
}

// outlineLevel keeps the PDF outline tree well-formed: file bookmarks
// nest under a folder only once a folder bookmark exists, since files at
// the scan root have no folder heading above them.
func (r *Renderer) outlineLevel(b *document.Block) int {
	if b.Kind == document.FolderHeading {
		r.sawFolder = true
		return 0
	}
	if r.sawFolder {
		return 1
	}
	return 0
}

func (r *Renderer) applyColor(class highlight.Class) {
	c := colorPlain
	switch class {
	case highlight.ClassKeyword:
		c = colorKeyword
	case highlight.ClassString:
		c = colorString
	case highlight.ClassComment:
		c = colorComment
	}
	r.pdf.SetTextColor(c[0], c[1], c[2])
}
