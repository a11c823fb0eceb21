package recordscout

import "context"

// Tab is a handle on a loaded page's execution context.
type Tab struct {
	ID  string
	URL string
}

// TabOpener opens and closes pages.
type TabOpener interface {
	OpenTab(ctx context.Context, url string) (*Tab, error)
	CloseTab(ctx context.Context, tabID string) error
}

// TabMessenger delivers messages to the content script of a page.
type TabMessenger interface {
	// SendTabMessage returns ENORECEIVER when no content script is
	// listening in the tab.
	SendTabMessage(ctx context.Context, tabID string, req *ExtractionRequest) (*ExtractionResponse, error)

	// InjectContentScript installs the content script into the tab.
	// Returns ERESTRICTED when the page cannot be scripted.
	InjectContentScript(ctx context.Context, tabID string) error
}

// ContentScript answers extraction requests from inside a page.
type ContentScript interface {
	Extract(html, url string) *ExtractionResponse
}
