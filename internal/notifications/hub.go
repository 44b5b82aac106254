package notifications

import (
	"context"
	"strconv"
	"strings"
	"sync"
)

// Hub fans connection events out to in-process subscribers. One pattern
// subscription covers the whole process instead of one Redis subscription
// per websocket.
type Hub struct {
	mu   sync.RWMutex
	subs map[uint]map[chan string]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint]map[chan string]struct{})}
}

// Start consumes the notifier's pattern subscription and dispatches each
// event to the channels registered for its user. The pump runs until ctx is
// canceled.
func (h *Hub) Start(ctx context.Context, n *Notifier) error {
	return n.StartPatternSubscriber(ctx, func(channel, payload string) {
		userID, ok := UserIDFromChannel(channel)
		if !ok {
			return
		}
		h.dispatch(userID, payload)
	})
}

// Subscribe registers a buffered channel for a user's events. The caller
// must Unsubscribe when done.
func (h *Hub) Subscribe(userID uint) chan string {
	ch := make(chan string, 16)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan string]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	return ch
}

// Unsubscribe removes a channel registered with Subscribe.
func (h *Hub) Unsubscribe(userID uint, ch chan string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[userID]; ok {
		delete(set, ch)
		if len(set) == 0 {
			delete(h.subs, userID)
		}
	}
}

func (h *Hub) dispatch(userID uint, payload string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[userID] {
		select {
		case ch <- payload:
		default:
			// Slow consumer; drop rather than block the pump.
		}
	}
}

// UserIDFromChannel extracts the user ID from a per-user channel name.
func UserIDFromChannel(channel string) (uint, bool) {
	raw, ok := strings.CutPrefix(channel, userChannelPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
