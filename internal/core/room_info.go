package core

import (
	"errors"

	"github.com/dkeye/Signal/internal/domain"
)

// ErrRoomFull is the only domain error: the session already holds its maximum
// number of participants.
var ErrRoomFull = errors.New("room is full")

// RoomInfo is a read-only view of a session for APIs.
type RoomInfo struct {
	Name        domain.RoomName `json:"name"`
	MemberCount int             `json:"client_count"`
}
