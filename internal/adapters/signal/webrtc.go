package signal

import (
	"github.com/dkeye/Signal/internal/core"
	"github.com/dkeye/Signal/internal/domain"
	"github.com/rs/zerolog/log"
)

// handleRelay passes offers, answers and ICE candidates to the peer untouched.
func (ctl *SignalWSController) handleRelay(sid domain.ConnID, kind core.SignalKind, data core.Payload) {
	room, body := signalBody(kind, data)
	sent := ctl.Orch.Relay(sid, room, kind, body)
	log.Debug().Str("module", "signal").Str("sid", string(sid)).Str("room", string(room)).Str("kind", string(kind)).Int("sent_to", sent).Msg("relay")
}
