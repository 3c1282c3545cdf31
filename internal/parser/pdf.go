package parser

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/mharker/docrank/internal/document"
)

// PDFParser extracts positioned text spans with font metadata from PDFs.
// It groups the library's per-run output into text elements sharing font and
// line, which is what heading detection operates on.
type PDFParser struct{}

const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0

	// Runs are merged into one element when the font matches, sizes are
	// within sizeTolerance and baselines within lineTolerance.
	sizeTolerance = 0.1
	lineTolerance = 2.0
)

func (p *PDFParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	// The pdf library requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docrank-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	return extractPDF(tmpPath), nil
}

// extractPDF returns the structured document for a PDF on disk. Malformed
// or unreadable PDFs yield an empty document (zero pages), never an error:
// downstream stages treat that as "no headings, no sections".
func extractPDF(path string) (doc *document.Document) {
	doc = &document.Document{}

	// The underlying library panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			doc = &document.Document{}
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return doc
	}
	defer f.Close()

	doc.TotalPages = reader.NumPage()
	doc.Title = metadataTitle(reader)

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		doc.Pages = append(doc.Pages, extractPage(page, i))
	}
	return doc
}

func extractPage(page pdflib.Page, number int) document.Page {
	width, height := pageSize(page)
	out := document.Page{
		Number: number,
		Width:  width,
		Height: height,
	}

	if text, err := page.GetPlainText(nil); err == nil {
		out.RawText = text
	}

	content := page.Content()
	out.Elements = groupRuns(content.Text)
	return out
}

// groupRuns merges consecutive text runs that share font and baseline into
// single elements. Heading detection depends on this: a heading typeset as
// several runs must score as one line of text.
func groupRuns(runs []pdflib.Text) []document.TextElement {
	var elements []document.TextElement
	var cur *document.TextElement

	for _, run := range runs {
		if run.S == "" {
			continue
		}
		if cur != nil && sameFormatting(cur, run) && sameLine(cur, run) {
			cur.Text += run.S
			cur.X1 = run.X + run.W
			continue
		}
		if cur != nil {
			elements = appendElement(elements, *cur)
		}
		cur = &document.TextElement{
			Text:     run.S,
			FontName: run.Font,
			FontSize: run.FontSize,
			Bold:     boldFontName(run.Font),
			X0:       run.X,
			Y0:       run.Y,
			X1:       run.X + run.W,
			Y1:       run.Y + run.FontSize,
		}
	}
	if cur != nil {
		elements = appendElement(elements, *cur)
	}
	return elements
}

func appendElement(elements []document.TextElement, el document.TextElement) []document.TextElement {
	if strings.TrimSpace(el.Text) == "" {
		return elements
	}
	return append(elements, el)
}

func sameFormatting(cur *document.TextElement, run pdflib.Text) bool {
	return cur.FontName == run.Font && math.Abs(cur.FontSize-run.FontSize) < sizeTolerance
}

func sameLine(cur *document.TextElement, run pdflib.Text) bool {
	return math.Abs(cur.Y0-run.Y) < lineTolerance
}

// boldFontName reports whether a font name implies a bold face.
func boldFontName(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range []string{"bold", "black", "heavy", "semibold", "demibold"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func pageSize(page pdflib.Page) (width, height float64) {
	width, height = defaultPageWidth, defaultPageHeight
	box := page.V.Key("MediaBox")
	if box.Kind() != pdflib.Array || box.Len() != 4 {
		return width, height
	}
	x0, y0 := box.Index(0).Float64(), box.Index(1).Float64()
	x1, y1 := box.Index(2).Float64(), box.Index(3).Float64()
	if x1 > x0 && y1 > y0 {
		width, height = x1-x0, y1-y0
	}
	return width, height
}

func metadataTitle(reader *pdflib.Reader) string {
	info := reader.Trailer().Key("Info")
	if info.Kind() != pdflib.Dict {
		return ""
	}
	title := info.Key("Title")
	if title.Kind() != pdflib.String {
		return ""
	}
	return strings.TrimSpace(title.Text())
}
