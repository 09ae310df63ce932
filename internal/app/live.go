package app

import "sync"

// liveHub fans progress snapshots out to per-session subscribers.
type liveHub struct {
	mu   sync.Mutex
	subs map[string]map[chan Progress]struct{}
}

func newLiveHub() *liveHub {
	return &liveHub{subs: make(map[string]map[chan Progress]struct{})}
}

// subscribe registers a channel for a session and delivers the current
// snapshot immediately.
func (h *liveHub) subscribe(sessionID string, initial Progress) (<-chan Progress, func()) {
	ch := make(chan Progress, 8)

	h.mu.Lock()
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[chan Progress]struct{})
	}
	h.subs[sessionID][ch] = struct{}{}
	h.mu.Unlock()

	ch <- initial

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[sessionID]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(h.subs, sessionID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *liveHub) broadcast(sessionID string, p Progress) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[sessionID] {
		select {
		case ch <- p:
		default:
			// Drop the stale snapshot so a slow subscriber never blocks play.
			select {
			case <-ch:
			default:
			}
			ch <- p
		}
	}
}
