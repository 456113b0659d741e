package signal

import (
	"github.com/dkeye/Signal/internal/core"
	"github.com/dkeye/Signal/internal/domain"
)

func (ctl *SignalWSController) handlePing(sid domain.ConnID) {
	ctl.sendEvent(sid, core.Event{Name: core.EventPong})
}
