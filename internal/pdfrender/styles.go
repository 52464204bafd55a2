package pdfrender

import "github.com/printforge/codepress/internal/document"

// styleSpec is the fixed visual treatment of one block style: font
// variant, size, line height and the vertical spacing around the block.
// All values in points.
type styleSpec struct {
	bold        bool
	size        float64
	lineHeight  float64
	spaceBefore float64
	spaceAfter  float64
}

// styleTable derives the per-style specs from the configured base and
// title sizes, mirroring the tool's historical style sheet: folder titles
// four points above the title size, file titles two.
func styleTable(fontSize, titleFontSize float64) map[document.Style]styleSpec {
	return map[document.Style]styleSpec{
		document.StyleFolderTitle: {
			bold: true, size: titleFontSize + 4, lineHeight: titleFontSize + 8,
			spaceBefore: 12, spaceAfter: 6,
		},
		document.StyleFileTitle: {
			bold: true, size: titleFontSize + 2, lineHeight: titleFontSize + 6,
			spaceBefore: 8, spaceAfter: 2,
		},
		document.StyleCodeLine: {
			size: fontSize, lineHeight: fontSize + 2,
		},
		document.StyleTOCTitle: {
			bold: true, size: titleFontSize + 8, lineHeight: titleFontSize + 12,
			spaceAfter: 14,
		},
		document.StyleTOCEntry: {
			size: titleFontSize, lineHeight: titleFontSize + 2, spaceAfter: 3,
		},
	}
}

// span colors, RGB.
var (
	colorKeyword = [3]int{0, 0, 200}
	colorString  = [3]int{0, 128, 0}
	colorComment = [3]int{128, 128, 128}
	colorPlain   = [3]int{0, 0, 0}
	colorBorder  = [3]int{200, 200, 200}
)
