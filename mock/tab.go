package mock

import (
	"context"

	"github.com/fwojciec/recordscout"
)

var (
	_ recordscout.TabOpener     = (*TabOpener)(nil)
	_ recordscout.TabMessenger  = (*TabMessenger)(nil)
	_ recordscout.ContentScript = (*ContentScript)(nil)
)

// TabOpener is a mock implementation of recordscout.TabOpener.
type TabOpener struct {
	OpenTabFn  func(ctx context.Context, url string) (*recordscout.Tab, error)
	CloseTabFn func(ctx context.Context, tabID string) error
}

func (o *TabOpener) OpenTab(ctx context.Context, url string) (*recordscout.Tab, error) {
	return o.OpenTabFn(ctx, url)
}

func (o *TabOpener) CloseTab(ctx context.Context, tabID string) error {
	return o.CloseTabFn(ctx, tabID)
}

// TabMessenger is a mock implementation of recordscout.TabMessenger.
type TabMessenger struct {
	SendTabMessageFn      func(ctx context.Context, tabID string, req *recordscout.ExtractionRequest) (*recordscout.ExtractionResponse, error)
	InjectContentScriptFn func(ctx context.Context, tabID string) error
}

func (m *TabMessenger) SendTabMessage(ctx context.Context, tabID string, req *recordscout.ExtractionRequest) (*recordscout.ExtractionResponse, error) {
	return m.SendTabMessageFn(ctx, tabID, req)
}

func (m *TabMessenger) InjectContentScript(ctx context.Context, tabID string) error {
	return m.InjectContentScriptFn(ctx, tabID)
}

// ContentScript is a mock implementation of recordscout.ContentScript.
type ContentScript struct {
	ExtractFn func(html, url string) *recordscout.ExtractionResponse
}

func (s *ContentScript) Extract(html, url string) *recordscout.ExtractionResponse {
	return s.ExtractFn(html, url)
}
