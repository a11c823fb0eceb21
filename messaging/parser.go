package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/recordscout"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ErrContextClosed is returned when sending to a closed parsing context.
var ErrContextClosed = errors.New("parsing context closed")

// ParsingContext is an isolated worker that cleans HTML with a Cleaner.
// Requests are served one at a time in arrival order. A failing or
// panicking Cleaner answers with nil content; it never takes the context
// down.
type ParsingContext struct {
	ID string

	cleaner recordscout.Cleaner
	logger  *slog.Logger
	inbox   chan parseCall
	done    chan struct{}
	once    sync.Once
}

type parseCall struct {
	req   *recordscout.ReadabilityRequest
	reply chan *recordscout.ReadabilityResponse
}

// NewParsingContext starts a parsing context. Close must be called when it
// is no longer needed.
func NewParsingContext(cleaner recordscout.Cleaner, logger *slog.Logger) *ParsingContext {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	pc := &ParsingContext{
		ID:      uuid.NewString(),
		cleaner: cleaner,
		logger:  logger,
		inbox:   make(chan parseCall),
		done:    make(chan struct{}),
	}
	go pc.loop()
	return pc
}

func (pc *ParsingContext) loop() {
	for {
		select {
		case call := <-pc.inbox:
			call.reply <- pc.handle(call.req)
		case <-pc.done:
			return
		}
	}
}

func (pc *ParsingContext) handle(req *recordscout.ReadabilityRequest) (resp *recordscout.ReadabilityResponse) {
	resp = &recordscout.ReadabilityResponse{}
	defer func() {
		if r := recover(); r != nil {
			pc.logger.Error("parsing context panic", "context", pc.ID, "panic", fmt.Sprint(r))
			resp = &recordscout.ReadabilityResponse{}
		}
	}()

	if req == nil || req.Type != recordscout.TypeReadabilityExtract {
		return resp
	}

	text, err := pc.cleaner.Clean(req.HTML)
	if err != nil {
		pc.logger.Warn("clean html", "context", pc.ID, "err", err)
		return resp
	}
	if text = strings.TrimSpace(text); text != "" {
		resp.Content = &text
	}
	return resp
}

// Send delivers req to the context and waits for its response.
func (pc *ParsingContext) Send(ctx context.Context, req *recordscout.ReadabilityRequest) (*recordscout.ReadabilityResponse, error) {
	call := parseCall{req: req, reply: make(chan *recordscout.ReadabilityResponse, 1)}

	select {
	case pc.inbox <- call:
	case <-pc.done:
		return nil, ErrContextClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case resp := <-call.reply:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Closed reports whether Close has been called.
func (pc *ParsingContext) Closed() bool {
	select {
	case <-pc.done:
		return true
	default:
		return false
	}
}

// Close stops the context. Close is safe to call multiple times.
func (pc *ParsingContext) Close() error {
	pc.once.Do(func() { close(pc.done) })
	return nil
}

// ContextFactory creates a parsing context.
type ContextFactory func(ctx context.Context) (*ParsingContext, error)

var _ recordscout.ParsingService = (*ParserHost)(nil)

// ParserHost owns the parsing context. The context is created on first use;
// concurrent first users share a single in-flight creation instead of each
// creating their own.
//
// ParserHost is safe for concurrent use.
type ParserHost struct {
	factory ContextFactory
	logger  *slog.Logger

	mu      sync.Mutex
	current *ParsingContext
	group   singleflight.Group
	created atomic.Int64
}

// HostOption configures a ParserHost.
type HostOption func(*ParserHost)

// WithContextFactory overrides how parsing contexts are created.
func WithContextFactory(f ContextFactory) HostOption {
	return func(h *ParserHost) {
		h.factory = f
	}
}

// WithHostLogger sets the logger used by the host and its contexts.
func WithHostLogger(logger *slog.Logger) HostOption {
	return func(h *ParserHost) {
		h.logger = logger
	}
}

// NewParserHost returns a host whose contexts clean HTML with cleaner.
func NewParserHost(cleaner recordscout.Cleaner, opts ...HostOption) *ParserHost {
	h := &ParserHost{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(h)
	}
	if h.factory == nil {
		h.factory = func(context.Context) (*ParsingContext, error) {
			return NewParsingContext(cleaner, h.logger), nil
		}
	}
	return h
}

// Ensure returns the live parsing context, creating it if needed.
func (h *ParserHost) Ensure(ctx context.Context) (*ParsingContext, error) {
	if pc := h.live(); pc != nil {
		return pc, nil
	}

	ch := h.group.DoChan("parsing-context", func() (any, error) {
		if pc := h.live(); pc != nil {
			return pc, nil
		}
		// The creation is shared, so one caller's cancellation must not
		// abort it for the others.
		pc, err := h.factory(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		h.created.Add(1)
		h.logger.Info("parsing context created", "context", pc.ID)

		h.mu.Lock()
		h.current = pc
		h.mu.Unlock()
		return pc, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*ParsingContext), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (h *ParserHost) live() *ParsingContext {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current != nil && !h.current.Closed() {
		return h.current
	}
	return nil
}

// ExtractReadable cleans req.HTML in the parsing context.
func (h *ParserHost) ExtractReadable(ctx context.Context, req *recordscout.ReadabilityRequest) (*recordscout.ReadabilityResponse, error) {
	pc, err := h.Ensure(ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing context: %w", err)
	}
	return pc.Send(ctx, req)
}

// Register binds the readability-extract message type on rt to h.
func (h *ParserHost) Register(rt *Runtime) {
	rt.Handle(recordscout.TypeReadabilityExtract, func(ctx context.Context, payload []byte) (any, error) {
		var req recordscout.ReadabilityRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, recordscout.Errorf(recordscout.EINVALID, "invalid readability-extract message: %v", err)
		}
		return h.ExtractReadable(ctx, &req)
	})
}

// Created returns how many parsing contexts the host has created.
func (h *ParserHost) Created() int {
	return int(h.created.Load())
}

// Close closes the current parsing context, if any.
func (h *ParserHost) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return nil
	}
	err := h.current.Close()
	h.current = nil
	return err
}
