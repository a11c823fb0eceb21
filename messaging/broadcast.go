package messaging

import (
	"sync"

	"github.com/fwojciec/recordscout"
)

// DefaultSubscriberBuffer is the number of events a slow subscriber may lag
// behind before further events are dropped for it.
const DefaultSubscriberBuffer = 32

var _ recordscout.ProgressBroadcaster = (*Broadcaster)(nil)

// Broadcaster fans progress events out to subscribers. Each subscriber
// receives events in emission order; events for a subscriber whose buffer is
// full are dropped rather than blocking the sender.
//
// Broadcaster is safe for concurrent use.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[int]chan recordscout.ProgressEvent
	next   int
	buffer int
}

// NewBroadcaster returns a Broadcaster with the given per-subscriber buffer.
// A non-positive buffer selects DefaultSubscriberBuffer.
func NewBroadcaster(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	return &Broadcaster{
		subs:   make(map[int]chan recordscout.ProgressEvent),
		buffer: buffer,
	}
}

// Subscribe registers a new listener. The returned cancel func unregisters
// it and closes the channel; it is safe to call more than once.
func (b *Broadcaster) Subscribe() (<-chan recordscout.ProgressEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan recordscout.ProgressEvent, b.buffer)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Broadcast delivers event to every subscriber that has room for it.
func (b *Broadcaster) Broadcast(event recordscout.ProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Len returns the number of current subscribers.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
