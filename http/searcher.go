package http

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/recordscout"
)

// DefaultSearchURL is the search endpoint queried by Searcher.
const DefaultSearchURL = "https://www.google.com/search"

var _ recordscout.Searcher = (*Searcher)(nil)

// Searcher runs web searches by fetching the search engine's result page.
type Searcher struct {
	fetcher recordscout.Fetcher
	baseURL string
}

// SearcherOption configures a Searcher.
type SearcherOption func(*Searcher)

// WithSearchURL sets the search endpoint. The query is appended as q.
func WithSearchURL(u string) SearcherOption {
	return func(s *Searcher) {
		s.baseURL = u
	}
}

// NewSearcher returns a Searcher fetching result pages with fetcher.
func NewSearcher(fetcher recordscout.Fetcher, opts ...SearcherOption) *Searcher {
	s := &Searcher{
		fetcher: fetcher,
		baseURL: DefaultSearchURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the result page URL for query.
func (s *Searcher) URL(query string) string {
	sep := "?"
	if strings.Contains(s.baseURL, "?") {
		sep = "&"
	}
	return s.baseURL + sep + "q=" + url.QueryEscape(query)
}

// Search returns the raw HTML of the result page for query.
func (s *Searcher) Search(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", recordscout.Errorf(recordscout.EINVALID, "empty search query")
	}
	return s.fetcher.Fetch(ctx, s.URL(query))
}
