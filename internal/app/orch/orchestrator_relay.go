package orch

import (
	"github.com/dkeye/Signal/internal/core"
	"github.com/dkeye/Signal/internal/domain"
	"github.com/dkeye/Signal/internal/metrics"
)

// Relay forwards a signaling payload verbatim to every other member of the
// room, tagged with the sender id. The sender's membership is not checked.
func (o *Orchestrator) Relay(sid domain.ConnID, roomName domain.RoomName, kind core.SignalKind, body core.Payload) int {
	if !kind.Valid() {
		return 0
	}
	var targets []domain.ConnID
	for _, id := range o.Registry.Members(roomName) {
		if id != sid {
			targets = append(targets, id)
		}
	}
	sent := o.broadcast(roomName, targets, core.SignalEvent(kind, body, sid))
	metrics.Relayed.WithLabelValues(string(kind)).Add(float64(sent))
	return sent
}
