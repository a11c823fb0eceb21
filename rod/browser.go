// Package rod drives headless Chrome with go-rod. Browser opens tabs and
// answers tab messages through a content script; Fetcher returns rendered
// page HTML.
package rod

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/recordscout"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// marker is set on window by the content script once it listens for
// messages.
const marker = "__recordscout"

const (
	installScript = `() => { window.` + marker + ` = true }`
	probeScript   = `() => window.` + marker + ` === true`
)

var (
	_ recordscout.TabOpener    = (*Browser)(nil)
	_ recordscout.TabMessenger = (*Browser)(nil)
)

// Browser implements recordscout.TabOpener and recordscout.TabMessenger on
// Chrome pages. The content script is registered for every new document,
// so pages that block scripts, such as browser-internal pages, answer no
// messages until injection is attempted.
type Browser struct {
	manager *BrowserManager
	script  recordscout.ContentScript

	mu    sync.Mutex
	pages map[string]*rod.Page
}

// NewBrowser returns a Browser answering extraction requests with script.
func NewBrowser(manager *BrowserManager, script recordscout.ContentScript) *Browser {
	return &Browser{
		manager: manager,
		script:  script,
		pages:   make(map[string]*rod.Page),
	}
}

// OpenTab navigates a new page to url and waits for it to load.
func (b *Browser) OpenTab(ctx context.Context, url string) (*recordscout.Tab, error) {
	browser, err := b.manager.Acquire()
	if err != nil {
		return nil, recordscout.Wrap(recordscout.ETRANSPORT, err, "browser unavailable")
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		b.manager.Release()
		return nil, recordscout.Wrap(recordscout.ETRANSPORT, err, "failed to open tab")
	}

	if err := b.load(page.Context(ctx), url); err != nil {
		_ = page.Close()
		b.manager.Release()
		return nil, err
	}

	id := string(page.TargetID)
	b.mu.Lock()
	b.pages[id] = page
	b.mu.Unlock()

	return &recordscout.Tab{ID: id, URL: url}, nil
}

func (b *Browser) load(page *rod.Page, url string) error {
	if _, err := page.EvalOnNewDocument("(" + installScript + ")()"); err != nil {
		return recordscout.Wrap(recordscout.ETRANSPORT, err, "failed to register content script")
	}
	if err := page.Navigate(url); err != nil {
		return recordscout.Wrap(recordscout.ENETWORK, err, "failed to navigate")
	}
	if err := page.WaitLoad(); err != nil {
		return recordscout.Wrap(recordscout.ENETWORK, err, "page did not load")
	}
	return nil
}

// CloseTab closes the page behind tabID.
func (b *Browser) CloseTab(ctx context.Context, tabID string) error {
	b.mu.Lock()
	page, ok := b.pages[tabID]
	delete(b.pages, tabID)
	b.mu.Unlock()

	if !ok {
		return recordscout.Errorf(recordscout.ENOTFOUND, "tab %q not found", tabID)
	}
	defer b.manager.Release()
	return page.Close()
}

// SendTabMessage delivers req to the content script of the tab.
func (b *Browser) SendTabMessage(ctx context.Context, tabID string, req *recordscout.ExtractionRequest) (*recordscout.ExtractionResponse, error) {
	page, err := b.page(ctx, tabID)
	if err != nil {
		return nil, err
	}
	if req == nil || req.Action != recordscout.ActionExtractContent {
		return nil, recordscout.Errorf(recordscout.EINVALID, "unsupported tab message")
	}

	res, err := page.Eval(probeScript)
	if err != nil || !res.Value.Bool() {
		return nil, recordscout.Errorf(recordscout.ENORECEIVER, "Could not establish connection. Receiving end does not exist.")
	}

	html, err := page.HTML()
	if err != nil {
		return nil, recordscout.Wrap(recordscout.ETRANSPORT, err, "failed to read page")
	}
	info, err := page.Info()
	if err != nil {
		return nil, recordscout.Wrap(recordscout.ETRANSPORT, err, "failed to read page info")
	}

	return b.script.Extract(html, info.URL), nil
}

// InjectContentScript installs the content script into the current
// document of the tab.
func (b *Browser) InjectContentScript(ctx context.Context, tabID string) error {
	page, err := b.page(ctx, tabID)
	if err != nil {
		return err
	}

	info, err := page.Info()
	if err != nil {
		return recordscout.Wrap(recordscout.ETRANSPORT, err, "failed to read page info")
	}
	if recordscout.IsRestrictedURL(info.URL) {
		return recordscout.Errorf(recordscout.ERESTRICTED, "Cannot access contents of url %q", info.URL)
	}

	if _, err := page.Eval(installScript); err != nil {
		if strings.Contains(err.Error(), "Cannot access") {
			return recordscout.Wrap(recordscout.ERESTRICTED, err, "Cannot access page")
		}
		return recordscout.Wrap(recordscout.ETRANSPORT, err, "failed to inject content script")
	}
	return nil
}

// Close closes every open tab. The BrowserManager is left running.
func (b *Browser) Close() error {
	b.mu.Lock()
	pages := b.pages
	b.pages = make(map[string]*rod.Page)
	b.mu.Unlock()

	for _, page := range pages {
		_ = page.Close()
		b.manager.Release()
	}
	return nil
}

func (b *Browser) page(ctx context.Context, tabID string) (*rod.Page, error) {
	b.mu.Lock()
	page, ok := b.pages[tabID]
	b.mu.Unlock()

	if !ok {
		return nil, recordscout.Errorf(recordscout.ENORECEIVER, "no tab with id %q", tabID)
	}
	return page.Context(ctx), nil
}
