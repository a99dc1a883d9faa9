package changefeed

import (
	"sync"

	"github.com/rs/zerolog/log"
)

const subscriberBuffer = 16

// Hub fans events out to local subscribers. A subscriber that is not keeping
// up loses events instead of blocking publishers.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]chan Event
}

func NewHub() *Hub {
	return &Hub{subs: map[string]map[int]chan Event{}}
}

// Subscribe returns a channel of events for table and a function that
// cancels the subscription and closes the channel. Calling it twice is safe.
func (h *Hub) Subscribe(table string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	ch := make(chan Event, subscriberBuffer)

	if h.subs[table] == nil {
		h.subs[table] = map[int]chan Event{}
	}

	h.subs[table][id] = ch

	var once sync.Once

	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()

			delete(h.subs[table], id)
			close(ch)
		})
	}
}

func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs[event.Table] {
		select {
		case ch <- event:
		default:
			log.Warn().Str("table", event.Table).Str("id", event.ID).Msg("change feed subscriber is full, dropping event")
		}
	}
}

// Subscribers reports the number of live subscriptions for table.
func (h *Hub) Subscribers(table string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs[table])
}
