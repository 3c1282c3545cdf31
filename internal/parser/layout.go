package parser

import (
	"strings"

	"github.com/mharker/docrank/internal/document"
)

// block is a unit of structured input from formats that carry explicit
// heading markup (docx styles, markdown/html heading tags). Level 0 is body
// text; 1..3 map to heading depths.
type block struct {
	level int
	text  string
}

// Representative font metrics for structured formats. Non-PDF inputs have no
// real layout, so parsers render their blocks onto synthetic pages with
// metrics that let the one font-statistics pipeline serve every format.
var levelFontSizes = map[int]float64{
	0: 11,
	1: 24,
	2: 18,
	3: 14,
}

const (
	layoutMarginX    = 72.0
	layoutTopY       = 720.0
	layoutBottomY    = 72.0
	layoutLineFactor = 1.4
	layoutLineWidth  = 90 // characters per rendered line, rough
)

// buildDocument lays blocks out onto synthetic pages, producing the same
// Document contract the PDF extractor emits.
func buildDocument(title string, blocks []block) *document.Document {
	doc := &document.Document{Title: strings.TrimSpace(title)}

	page := newLayoutPage(1)
	y := layoutTopY
	var raw strings.Builder

	flush := func() {
		page.RawText = raw.String()
		if page.RawText != "" || len(page.Elements) > 0 {
			doc.Pages = append(doc.Pages, page)
		}
		page = newLayoutPage(len(doc.Pages) + 1)
		raw.Reset()
		y = layoutTopY
	}

	for _, b := range blocks {
		text := strings.TrimSpace(b.text)
		if text == "" {
			continue
		}

		size := levelFontSizes[0]
		if b.level > 0 {
			lv := b.level
			if lv > 3 {
				lv = 3
			}
			size = levelFontSizes[lv]
		}

		lines := len(text)/layoutLineWidth + 1
		advance := float64(lines) * size * layoutLineFactor
		if y-advance < layoutBottomY {
			flush()
		}

		page.Elements = append(page.Elements, document.TextElement{
			Text:     text,
			FontName: syntheticFontName(b.level),
			FontSize: size,
			Bold:     b.level > 0,
			X0:       layoutMarginX,
			Y0:       y,
			X1:       page.Width - layoutMarginX,
			Y1:       y + size,
		})
		raw.WriteString(text)
		raw.WriteString("\n\n")
		y -= advance
	}
	flush()

	doc.TotalPages = len(doc.Pages)
	return doc
}

func newLayoutPage(number int) document.Page {
	return document.Page{
		Number: number,
		Width:  defaultPageWidth,
		Height: defaultPageHeight,
	}
}

func syntheticFontName(level int) string {
	if level > 0 {
		return "Synthetic-Bold"
	}
	return "Synthetic-Regular"
}
