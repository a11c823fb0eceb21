package messaging

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/fwojciec/recordscout"
)

// HandlerFunc handles the raw JSON payload of one message and returns the
// value sent back as the response.
type HandlerFunc func(ctx context.Context, payload []byte) (any, error)

// Runtime routes messages to handlers by their "action" (or "type") field.
// Messages and responses cross the boundary as JSON so neither side can
// share memory with the other.
//
// Runtime is safe for concurrent use.
type Runtime struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewRuntime returns a Runtime with no handlers.
func NewRuntime() *Runtime {
	return &Runtime{handlers: make(map[string]HandlerFunc)}
}

// Handle registers h for messages whose action or type equals name.
// A later registration for the same name replaces the earlier one.
func (r *Runtime) Handle(name string, h HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Dispatch delivers a raw JSON message to its handler and returns the JSON
// encoded response. Returns ENORECEIVER when no handler is registered.
func (r *Runtime) Dispatch(ctx context.Context, raw []byte) ([]byte, error) {
	var envelope struct {
		Action string `json:"action"`
		Type   string `json:"type"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, recordscout.Errorf(recordscout.EINVALID, "invalid message: %v", err)
	}

	name := envelope.Action
	if name == "" {
		name = envelope.Type
	}
	if name == "" {
		return nil, recordscout.Errorf(recordscout.EINVALID, "message has no action")
	}

	r.mu.RLock()
	h, ok := r.handlers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, recordscout.Errorf(recordscout.ENORECEIVER, "could not establish connection: receiving end does not exist for %q", name)
	}

	resp, err := h(ctx, raw)
	if err != nil {
		return nil, err
	}
	return json.Marshal(resp)
}

// SendMessage encodes msg, dispatches it and decodes the response into resp.
// There is no timeout: the call lasts as long as the handler.
func (r *Runtime) SendMessage(ctx context.Context, msg, resp any) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return recordscout.Errorf(recordscout.EINVALID, "encode message: %v", err)
	}
	out, err := r.Dispatch(ctx, raw)
	if err != nil {
		return err
	}
	if resp == nil {
		return nil
	}
	if err := json.Unmarshal(out, resp); err != nil {
		return recordscout.Errorf(recordscout.ETRANSPORT, "decode response: %v", err)
	}
	return nil
}
