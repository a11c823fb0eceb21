package recordscout

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch returns the response body of a GET request to url.
	// Non-2xx responses are errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// Searcher runs a web search and returns the raw result page.
type Searcher interface {
	Search(ctx context.Context, query string) (html string, err error)
}

// DomainLimiter paces outbound requests per host so repeated lookups do not
// hammer the search engine or the catalog site.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}
