package messaging

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/recordscout"
)

const (
	// DefaultTabTimeout bounds a whole extraction, recovery included.
	DefaultTabTimeout = 15 * time.Second

	// DefaultSettleDelay is how long a freshly injected content script
	// gets to start listening before the message is resent.
	DefaultSettleDelay = 1500 * time.Millisecond
)

// TabClient asks a page's content script for the page text.
//
// When no content script is listening, TabClient injects one, waits for it
// to settle and resends the request exactly once. Pages the browser
// forbids scripting are refused up front.
type TabClient struct {
	messenger recordscout.TabMessenger
	messages  recordscout.Localizer
	timeout   time.Duration
	settle    time.Duration
}

// TabOption configures a TabClient.
type TabOption func(*TabClient)

// WithTabTimeout sets the extraction timeout.
// Defaults to DefaultTabTimeout (15s) if not specified.
func WithTabTimeout(d time.Duration) TabOption {
	return func(c *TabClient) {
		c.timeout = d
	}
}

// WithSettleDelay sets the delay between injection and resend.
// Defaults to DefaultSettleDelay (1.5s) if not specified.
func WithSettleDelay(d time.Duration) TabOption {
	return func(c *TabClient) {
		c.settle = d
	}
}

// NewTabClient returns a TabClient that sends through messenger and renders
// failures with messages.
func NewTabClient(messenger recordscout.TabMessenger, messages recordscout.Localizer, opts ...TabOption) *TabClient {
	c := &TabClient{
		messenger: messenger,
		messages:  messages,
		timeout:   DefaultTabTimeout,
		settle:    DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type extraction struct {
	resp *recordscout.ExtractionResponse
	err  error
}

// Extract returns the successful extraction response of the content script
// in tab. Failures are coded ERESTRICTED, ETRANSPORT or EEXTRACTION and
// carry a localized message.
func (c *TabClient) Extract(ctx context.Context, tab *recordscout.Tab) (*recordscout.ExtractionResponse, error) {
	if tab == nil || recordscout.IsRestrictedURL(tab.URL) {
		return nil, recordscout.Errorf(recordscout.ERESTRICTED, "%s", c.messages.Message(recordscout.MsgRestrictedPage))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// The messenger may not honor ctx, so the deadline is enforced here.
	done := make(chan extraction, 1)
	go func() {
		resp, err := c.extract(ctx, tab.ID)
		done <- extraction{resp: resp, err: err}
	}()

	select {
	case r := <-done:
		return r.resp, r.err
	case <-ctx.Done():
		return nil, c.interrupted(ctx.Err())
	}
}

func (c *TabClient) extract(ctx context.Context, tabID string) (*recordscout.ExtractionResponse, error) {
	req := &recordscout.ExtractionRequest{Action: recordscout.ActionExtractContent}

	resp, err := c.messenger.SendTabMessage(ctx, tabID, req)
	if err == nil {
		return c.check(resp)
	}

	switch {
	case ctx.Err() != nil:
		return nil, c.interrupted(ctx.Err())
	case recordscout.ErrorCode(err) == recordscout.ENORECEIVER:
		return c.recover(ctx, tabID, req)
	case recordscout.ErrorCode(err) == recordscout.ERESTRICTED, isAccessDenied(err):
		return nil, recordscout.Wrap(recordscout.ERESTRICTED, err, c.messages.Message(recordscout.MsgRestrictedPage))
	default:
		return nil, recordscout.Wrap(recordscout.ETRANSPORT, err, c.messages.Message(recordscout.MsgTransportFailed, err.Error()))
	}
}

// recover injects the content script and resends req once.
func (c *TabClient) recover(ctx context.Context, tabID string, req *recordscout.ExtractionRequest) (*recordscout.ExtractionResponse, error) {
	if err := c.messenger.InjectContentScript(ctx, tabID); err != nil {
		if recordscout.ErrorCode(err) == recordscout.ERESTRICTED || isAccessDenied(err) {
			return nil, recordscout.Wrap(recordscout.ERESTRICTED, err, c.messages.Message(recordscout.MsgRestrictedPage))
		}
		return nil, recordscout.Wrap(recordscout.ETRANSPORT, err, c.messages.Message(recordscout.MsgExtensionBroken))
	}

	timer := time.NewTimer(c.settle)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, c.interrupted(ctx.Err())
	case <-timer.C:
	}

	resp, err := c.messenger.SendTabMessage(ctx, tabID, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, c.interrupted(ctx.Err())
		}
		return nil, recordscout.Wrap(recordscout.ERESTRICTED, err, c.messages.Message(recordscout.MsgScriptUnavailable))
	}
	return c.check(resp)
}

func (c *TabClient) check(resp *recordscout.ExtractionResponse) (*recordscout.ExtractionResponse, error) {
	if resp == nil {
		return nil, recordscout.Errorf(recordscout.EEXTRACTION, "%s", c.messages.Message(recordscout.MsgEmptyContent))
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = c.messages.Message(recordscout.MsgExtractionError, "unsuccessful response")
		}
		return nil, recordscout.Errorf(recordscout.EEXTRACTION, "%s", msg)
	}
	if strings.TrimSpace(resp.Content) == "" {
		return nil, recordscout.Errorf(recordscout.EEXTRACTION, "%s", c.messages.Message(recordscout.MsgEmptyContent))
	}
	return resp, nil
}

func (c *TabClient) interrupted(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return recordscout.Wrap(recordscout.ETRANSPORT, err, c.messages.Message(recordscout.MsgExtractionTimeout))
	}
	return recordscout.Wrap(recordscout.ETRANSPORT, err, c.messages.Message(recordscout.MsgTransportFailed, err.Error()))
}

// isAccessDenied recognizes the browser's refusal to script a page when the
// messenger did not code it.
func isAccessDenied(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Cannot access") || strings.Contains(msg, "Cannot script")
}
