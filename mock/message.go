package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/recordscout"
)

var (
	_ recordscout.Processor           = (*Processor)(nil)
	_ recordscout.ProgressBroadcaster = (*ProgressBroadcaster)(nil)
	_ recordscout.Localizer           = (*Localizer)(nil)
)

// Processor is a mock implementation of recordscout.Processor.
type Processor struct {
	ProcessFn func(ctx context.Context, req *recordscout.ProcessRequest) *recordscout.ProcessResponse
}

func (p *Processor) Process(ctx context.Context, req *recordscout.ProcessRequest) *recordscout.ProcessResponse {
	return p.ProcessFn(ctx, req)
}

// ProgressBroadcaster is a mock implementation of recordscout.ProgressBroadcaster.
type ProgressBroadcaster struct {
	BroadcastFn func(event recordscout.ProgressEvent)
}

func (b *ProgressBroadcaster) Broadcast(event recordscout.ProgressEvent) {
	b.BroadcastFn(event)
}

// Localizer is a mock implementation of recordscout.Localizer.
// With a nil MessageFn it renders the key followed by its arguments,
// e.g. "googleSearchFailed: timeout".
type Localizer struct {
	MessageFn func(key recordscout.MessageKey, args ...any) string
}

func (l *Localizer) Message(key recordscout.MessageKey, args ...any) string {
	if l.MessageFn != nil {
		return l.MessageFn(key, args...)
	}
	if len(args) == 0 {
		return string(key)
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprint(arg)
	}
	return string(key) + ": " + strings.Join(parts, ", ")
}
