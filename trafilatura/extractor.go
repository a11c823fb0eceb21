// Package trafilatura cleans catalog pages with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/recordscout"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var (
	_ recordscout.Extractor = (*Extractor)(nil)
	_ recordscout.Cleaner   = (*Cleaner)(nil)
)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor with fallback extractors enabled.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
		},
	}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*recordscout.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, recordscout.Errorf(recordscout.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &recordscout.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		Text:        strings.Join(strings.Fields(result.ContentText), " "),
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Cleaner implements recordscout.Cleaner with the main text found by
// trafilatura, prefixed by the page title when it is not already part of it.
type Cleaner struct {
	extractor *Extractor
}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{extractor: NewExtractor()}
}

// Clean returns the main text of rawHTML.
func (c *Cleaner) Clean(rawHTML string) (string, error) {
	result, err := c.extractor.Extract(rawHTML)
	if err != nil {
		return "", err
	}
	if result.Text == "" {
		return "", nil
	}
	title := strings.TrimSpace(result.Title)
	if title == "" || strings.Contains(result.Text, title) {
		return result.Text, nil
	}
	return title + "\n\n" + result.Text, nil
}
