package notify

import (
	"sync"

	"github.com/alexanderramin/chronos/internal/domain"
)

// DefaultSubscriberBuffer is the per-subscriber channel depth before a
// subscriber counts as slow.
const DefaultSubscriberBuffer = 16

// Hub fans delivered notifications out to live subscribers. Publishes
// are ordered: every subscriber sees notifications in publish order,
// starting from the moment it subscribed. A subscriber that stops
// draining its channel is dropped rather than allowed to stall the rest.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]chan *domain.Notification
	nextID int
	closed bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan *domain.Notification)}
}

// Subscribe registers a new subscriber and returns its channel plus a
// cancel function. The channel is closed on cancel, on hub close, or
// when the subscriber falls too far behind.
func (h *Hub) Subscribe() (<-chan *domain.Notification, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan *domain.Notification, DefaultSubscriberBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers n to every live subscriber. Subscribers with full
// buffers are dropped and their channels closed.
func (h *Hub) Publish(n *domain.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for id, ch := range h.subs {
		select {
		case ch <- n:
		default:
			delete(h.subs, id)
			close(ch)
		}
	}
}

// SubscriberCount reports the number of live subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close drops all subscribers and rejects further publishes.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
