package rank

import (
	"strings"

	"github.com/mharker/docrank/internal/document"
)

// BuildSections reassembles a document's raw page text into contiguous
// sections keyed by its detected headings. Text accumulates into the current
// section until a page carrying headings is reached; that closes the current
// section (ending on the previous page) and opens a new one per heading,
// with the last heading on the page winning as the active accumulator.
func BuildSections(doc *document.Document, headings []document.Heading) []document.Section {
	var sections []document.Section
	current := document.Section{PageStart: 1, PageEnd: 1}

	for _, page := range doc.Pages {
		var pageHeadings []document.Heading
		for _, h := range headings {
			if h.Page == page.Number {
				pageHeadings = append(pageHeadings, h)
			}
		}

		if len(pageHeadings) == 0 {
			current.Content += "\n" + page.RawText
			current.PageEnd = page.Number
			continue
		}

		if strings.TrimSpace(current.Content) != "" {
			current.PageEnd = page.Number - 1
			sections = append(sections, current)
		}
		for i := range pageHeadings {
			h := pageHeadings[i]
			current = document.Section{
				Heading:   &h,
				Content:   page.RawText,
				PageStart: page.Number,
				PageEnd:   page.Number,
			}
		}
	}

	if strings.TrimSpace(current.Content) != "" {
		sections = append(sections, current)
	}
	return sections
}
