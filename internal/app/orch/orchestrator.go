package orch

import (
	"errors"

	"github.com/dkeye/Signal/internal/app"
	"github.com/dkeye/Signal/internal/core"
	"github.com/dkeye/Signal/internal/domain"
	"github.com/dkeye/Signal/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Orchestrator turns connection events into registry changes and outbound
// messages. It never holds transport objects, only connection ids.
type Orchestrator struct {
	Registry  *app.Registry
	Transport core.Transport
	Policy    app.Policy
	// ExclusiveRooms makes a join leave every other room of the connection first.
	ExclusiveRooms bool
}

func (o *Orchestrator) Rooms() []core.RoomInfo {
	return o.Registry.List()
}

func (o *Orchestrator) broadcast(room domain.RoomName, to []domain.ConnID, ev core.Event) int {
	sent := 0
	for _, id := range to {
		if o.send(room, id, ev) {
			sent++
		}
	}
	log.Debug().Str("module", "orch").Str("room", string(room)).Str("event", ev.Name).Int("sent_to", sent).Int("targets", len(to)).Msg("broadcast result")
	return sent
}

func (o *Orchestrator) send(room domain.RoomName, to domain.ConnID, ev core.Event) bool {
	err := o.Transport.Send(to, ev)
	if err == nil {
		return true
	}
	metrics.SendDropped.Inc()
	log.Warn().Err(err).Str("module", "orch").Str("room", string(room)).Str("to", string(to)).Str("event", ev.Name).Msg("send failed")

	if !errors.Is(err, core.ErrBackpressure) || o.Policy == nil {
		return false
	}
	switch o.Policy.OnBackPressure(room, to) {
	case app.KickMember:
		log.Info().Str("module", "orch").Str("conn", string(to)).Msg("kicking slow member")
		o.Transport.Close(to)
	case app.DropFrame, app.NoAction:
	}
	return false
}

func (o *Orchestrator) updateRoomGauge() {
	metrics.RoomsActive.Set(float64(o.Registry.Len()))
}
