package orch

import (
	"errors"

	"github.com/dkeye/Signal/internal/core"
	"github.com/dkeye/Signal/internal/domain"
	"github.com/dkeye/Signal/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Join adds sid to the room and announces it to the peers already there.
// A full room is reported to sid alone with a room-error and leaves sid's
// memberships as they were. With ExclusiveRooms, other rooms are left only
// after the join succeeded.
func (o *Orchestrator) Join(sid domain.ConnID, roomName domain.RoomName) error {
	others, added, err := o.Registry.Add(roomName, sid)
	if err != nil {
		if errors.Is(err, core.ErrRoomFull) {
			metrics.Joins.WithLabelValues(metrics.JoinFull).Inc()
			o.send(roomName, sid, core.RoomErrorEvent(core.MsgRoomFull))
		}
		return err
	}
	o.updateRoomGauge()

	if o.ExclusiveRooms {
		o.leaveOthers(sid, roomName)
	}

	if !added {
		metrics.Joins.WithLabelValues(metrics.JoinRejoin).Inc()
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Str("room", string(roomName)).Msg("already in room")
		return nil
	}
	metrics.Joins.WithLabelValues(metrics.JoinOK).Inc()
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(roomName)).Msg("joined room")
	o.broadcast(roomName, others, core.UserJoinedEvent(sid))
	return nil
}

func (o *Orchestrator) leaveOthers(sid domain.ConnID, keep domain.RoomName) {
	for _, prev := range o.Registry.SessionsContaining(sid) {
		if prev == keep {
			continue
		}
		o.Leave(sid, prev)
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("from_room", string(prev)).Msg("left previous room")
	}
}

// Leave removes sid from the room and tells whoever remains.
// The notice goes out even when sid was not a member.
func (o *Orchestrator) Leave(sid domain.ConnID, roomName domain.RoomName) {
	remaining, removed := o.Registry.Remove(roomName, sid)
	if removed {
		o.updateRoomGauge()
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(roomName)).Bool("was_member", removed).Msg("left room")
	o.broadcast(roomName, remaining, core.UserLeftEvent(sid))
}

// OnDisconnect leaves every room sid belonged to. Safe to call repeatedly.
func (o *Orchestrator) OnDisconnect(sid domain.ConnID) {
	rooms := o.Registry.SessionsContaining(sid)
	for _, name := range rooms {
		o.Leave(sid, name)
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Int("rooms", len(rooms)).Msg("disconnect cleanup")
}
