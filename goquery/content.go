package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/recordscout"
)

const (
	// DefaultMaxContentLength caps the page text handed to the model, in characters.
	DefaultMaxContentLength = 10000

	// MinContentLength is the shortest page text worth identifying.
	MinContentLength = 50
)

var _ recordscout.ContentScript = (*ContentScript)(nil)

// ContentScript answers extraction requests with the visible text of a page.
type ContentScript struct {
	messages  recordscout.Localizer
	maxLength int
}

// ContentOption configures a ContentScript.
type ContentOption func(*ContentScript)

// WithMaxLength sets the maximum content length in characters.
// Defaults to DefaultMaxContentLength if not specified.
func WithMaxLength(n int) ContentOption {
	return func(s *ContentScript) {
		s.maxLength = n
	}
}

// NewContentScript returns a ContentScript rendering failures with messages.
func NewContentScript(messages recordscout.Localizer, opts ...ContentOption) *ContentScript {
	s := &ContentScript{
		messages:  messages,
		maxLength: DefaultMaxContentLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extract reduces the page HTML at url to its text.
func (s *ContentScript) Extract(rawHTML, url string) *recordscout.ExtractionResponse {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return &recordscout.ExtractionResponse{
			Success: false,
			Message: s.messages.Message(recordscout.MsgExtractionError, err.Error()),
		}
	}

	content := LimitContent(pageText(doc), s.maxLength)
	if len([]rune(content)) <= MinContentLength {
		return &recordscout.ExtractionResponse{
			Success: false,
			Message: s.messages.Message(recordscout.MsgInsufficientContent),
		}
	}

	return &recordscout.ExtractionResponse{
		Success: true,
		Content: content,
		URL:     url,
	}
}

// LimitContent shortens content to at most maxLength characters. A cut
// falls back to the last sentence end when one lies in the final fifth;
// otherwise "..." marks the cut.
func LimitContent(content string, maxLength int) string {
	runes := []rune(content)
	if len(runes) <= maxLength {
		return content
	}

	truncated := runes[:maxLength]
	last := -1
	for i := len(truncated) - 1; i >= 0; i-- {
		switch truncated[i] {
		case '.', '。', '!', '?':
			last = i
		}
		if last >= 0 {
			break
		}
	}

	if float64(last) > float64(maxLength)*0.8 {
		return string(truncated[:last+1])
	}
	return string(truncated) + "..."
}
