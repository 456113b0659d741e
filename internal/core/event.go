package core

import "github.com/dkeye/Signal/internal/domain"

// Event names on the wire.
const (
	EventJoinRoom     = "join-room"
	EventLeaveRoom    = "leave-room"
	EventOffer        = "offer"
	EventAnswer       = "answer"
	EventICECandidate = "ice-candidate"
	EventRoomError    = "room-error"
	EventUserJoined   = "user-joined"
	EventUserLeft     = "user-left"
	EventConnected    = "connected"
	EventPing         = "ping"
	EventPong         = "pong"
)

const (
	MsgRoomFull        = "Room is full"
	MsgTooManyAttempts = "Too many join attempts"
)

// Event is one named message addressed to a connection.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data,omitempty"`
}

type RoomError struct {
	Message string `json:"message"`
}

// UserEvent carries the id of the connection an event is about.
type UserEvent struct {
	UserID domain.ConnID `json:"userId"`
}

// Payload is an opaque JSON value relayed without interpretation.
type Payload []byte

func (p Payload) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

func (p *Payload) UnmarshalJSON(b []byte) error {
	*p = append((*p)[:0], b...)
	return nil
}

// SignalKind is one of the relayed signaling messages.
type SignalKind string

const (
	SignalOffer        SignalKind = EventOffer
	SignalAnswer       SignalKind = EventAnswer
	SignalICECandidate SignalKind = EventICECandidate
)

func (k SignalKind) Valid() bool {
	switch k {
	case SignalOffer, SignalAnswer, SignalICECandidate:
		return true
	}
	return false
}

// Field is the payload key the message body travels under.
func (k SignalKind) Field() string {
	if k == SignalICECandidate {
		return "candidate"
	}
	return string(k)
}

func RoomErrorEvent(msg string) Event {
	return Event{Name: EventRoomError, Data: RoomError{Message: msg}}
}

func UserJoinedEvent(id domain.ConnID) Event {
	return Event{Name: EventUserJoined, Data: UserEvent{UserID: id}}
}

func UserLeftEvent(id domain.ConnID) Event {
	return Event{Name: EventUserLeft, Data: UserEvent{UserID: id}}
}

// SignalEvent tags body with the sender id, keeping the inbound field name.
func SignalEvent(kind SignalKind, body Payload, from domain.ConnID) Event {
	if len(body) == 0 {
		body = Payload("null")
	}
	return Event{
		Name: string(kind),
		Data: map[string]any{
			kind.Field(): body,
			"userId":     from,
		},
	}
}
