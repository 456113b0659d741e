package signal

import (
	"sync"

	"github.com/dkeye/Signal/internal/core"
	"github.com/dkeye/Signal/internal/domain"
	"github.com/rs/zerolog/log"
)

// Hub maps connection ids onto live WebSocket endpoints.
// It implements core.Transport.
type Hub struct {
	mu    sync.RWMutex
	conns map[domain.ConnID]core.SignalConnection
}

func NewHub() *Hub {
	return &Hub{conns: make(map[domain.ConnID]core.SignalConnection)}
}

func (h *Hub) Register(id domain.ConnID, c core.SignalConnection) {
	h.mu.Lock()
	h.conns[id] = c
	h.mu.Unlock()
}

func (h *Hub) Unregister(id domain.ConnID) {
	h.mu.Lock()
	delete(h.conns, id)
	h.mu.Unlock()
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) find(id domain.ConnID) (core.SignalConnection, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.conns[id]
	return c, ok
}

func (h *Hub) Send(to domain.ConnID, ev core.Event) error {
	c, ok := h.find(to)
	if !ok {
		return core.ErrConnClosed
	}
	frame, err := encodeEvent(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "signal.hub").Str("event", ev.Name).Msg("encode event")
		return err
	}
	return c.TrySend(frame)
}

func (h *Hub) Close(id domain.ConnID) {
	if c, ok := h.find(id); ok {
		c.Close()
	}
}

// CloseAll closes every registered connection, used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	conns := make([]core.SignalConnection, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()
	for _, c := range conns {
		c.Close()
	}
}
