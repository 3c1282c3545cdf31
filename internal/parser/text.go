package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/mharker/docrank/internal/document"
)

// TextParser handles plain text files. Plain text carries no heading markup,
// so every paragraph is a body block.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var blocks []block
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			blocks = append(blocks, block{text: current.String()})
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return buildDocument(strings.TrimSuffix(filename, ".txt"), blocks), nil
}
