package signal

import (
	"github.com/dkeye/Signal/internal/core"
	"github.com/dkeye/Signal/internal/domain"
	"github.com/dkeye/Signal/internal/metrics"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleJoin(sid domain.ConnID, data core.Payload) {
	room := roomOf(data)
	if !ctl.Limiter.Allow(sid) {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Str("room", string(room)).Msg("join throttled")
		metrics.Joins.WithLabelValues(metrics.JoinThrottle).Inc()
		ctl.sendEvent(sid, core.RoomErrorEvent(core.MsgTooManyAttempts))
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", string(room)).Msg("join")
	// A full room has already been reported to sid by the orchestrator.
	_ = ctl.Orch.Join(sid, room)
}

// handleLeave exits the room; the connection itself stays open.
func (ctl *SignalWSController) handleLeave(sid domain.ConnID, data core.Payload) {
	room := roomOf(data)
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", string(room)).Msg("leave")
	ctl.Orch.Leave(sid, room)
}
