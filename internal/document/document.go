package document

// Document is the structured output of a text-element extractor. A failed
// extraction yields a Document with zero pages, which downstream stages treat
// as "no headings, no sections" rather than an error.
type Document struct {
	Title      string // Title from file metadata (may be empty)
	TotalPages int
	Pages      []Page
}

// Page is one page of extracted content.
type Page struct {
	Number   int    // 1-based page number
	Width    float64
	Height   float64
	RawText  string // Plain reading-order text of the page
	Elements []TextElement
}

// TextElement is one contiguous run of text sharing font and line position.
// Elements are immutable once produced by an extractor; scoring stages attach
// derived data in their own types instead of mutating these.
type TextElement struct {
	Text     string
	FontName string
	FontSize float64
	Bold     bool
	X0, Y0   float64
	X1, Y1   float64

	// Page context, filled in when elements are collected across pages.
	Page       int
	PageHeight float64
	PageWidth  float64
}

// Heading levels in outline output.
const (
	LevelH1 = "H1"
	LevelH2 = "H2"
	LevelH3 = "H3"
)

// Heading is one classified outline entry.
type Heading struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Outline is the extraction result for a single document.
type Outline struct {
	Title    string    `json:"title"`
	Headings []Heading `json:"outline"`
}

// Section is a maximal run of page text between two detected headings.
// Sections are non-overlapping, ordered by page, and PageStart <= PageEnd.
type Section struct {
	Heading   *Heading
	Content   string
	PageStart int
	PageEnd   int
}
