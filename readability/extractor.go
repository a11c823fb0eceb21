// Package readability cleans catalog pages with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/recordscout"
	"github.com/go-shiori/go-readability"
)

var (
	_ recordscout.Extractor = (*Extractor)(nil)
	_ recordscout.Cleaner   = (*Cleaner)(nil)
)

// Extractor wraps go-readability to extract the main article of a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*recordscout.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, recordscout.Errorf(recordscout.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &recordscout.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
		Text:        strings.Join(strings.Fields(article.TextContent), " "),
	}, nil
}

// Cleaner implements recordscout.Cleaner on top of Extractor. With a
// Converter the article HTML is rendered as Markdown, which keeps tracklist
// and format tables legible to the model; without one the article text is
// returned.
type Cleaner struct {
	extractor *Extractor
	converter recordscout.Converter
}

// CleanerOption configures a Cleaner.
type CleanerOption func(*Cleaner)

// WithConverter renders the extracted article through conv.
func WithConverter(conv recordscout.Converter) CleanerOption {
	return func(c *Cleaner) {
		c.converter = conv
	}
}

// NewCleaner creates a new Cleaner.
func NewCleaner(opts ...CleanerOption) *Cleaner {
	c := &Cleaner{extractor: NewExtractor()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clean returns the readable content of rawHTML, or "" when readability
// found no article.
func (c *Cleaner) Clean(rawHTML string) (string, error) {
	result, err := c.extractor.Extract(rawHTML)
	if err != nil {
		return "", err
	}

	if c.converter != nil && strings.TrimSpace(result.ContentHTML) != "" {
		md, err := c.converter.Convert(result.ContentHTML)
		if recordscout.ErrorCode(err) == recordscout.EEXTRACTION {
			return "", nil
		} else if err != nil {
			return "", err
		}
		return strings.TrimSpace(md), nil
	}
	return result.Text, nil
}
