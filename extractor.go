package recordscout

import "context"

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// Text is the plain text of the main content.
	Text string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Cleaner turns raw HTML into cleaned text suitable for a model prompt.
// It returns "" when nothing usable could be extracted.
type Cleaner interface {
	Clean(html string) (string, error)
}

// ParsingService hosts the Cleaner in an isolated parsing context.
type ParsingService interface {
	// ExtractReadable cleans req.HTML. A nil Content in the response means
	// nothing usable was extracted.
	ExtractReadable(ctx context.Context, req *ReadabilityRequest) (*ReadabilityResponse, error)
}
