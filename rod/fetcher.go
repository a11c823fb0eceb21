package rod

import (
	"context"
	"time"

	"github.com/fwojciec/recordscout"
	"github.com/go-rod/rod/lib/proto"
)

var _ recordscout.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML with Chrome, for catalog pages that
// refuse plain HTTP clients. Fetcher is safe for concurrent use.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchTimeout bounds one rendered fetch. By default only ctx does.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher returns a Fetcher opening pages in manager's browser.
func NewFetcher(manager *BrowserManager, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{manager: manager}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	browser, err := f.manager.Acquire()
	if err != nil {
		return "", recordscout.Wrap(recordscout.ETRANSPORT, err, "browser unavailable")
	}
	defer f.manager.Release()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", recordscout.Wrap(recordscout.ETRANSPORT, err, "failed to open page")
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return "", recordscout.Wrap(recordscout.ENETWORK, err, "failed to navigate")
	}
	if err := page.WaitLoad(); err != nil {
		return "", recordscout.Wrap(recordscout.ENETWORK, err, "page did not load")
	}

	html, err := page.HTML()
	if err != nil {
		return "", recordscout.Wrap(recordscout.ETRANSPORT, err, "failed to read page")
	}
	return html, nil
}

// Close is a no-op; the BrowserManager owns the browser process.
func (f *Fetcher) Close() error {
	return nil
}
