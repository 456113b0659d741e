package core

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalKindField(t *testing.T) {
	assert.Equal(t, "offer", SignalOffer.Field())
	assert.Equal(t, "answer", SignalAnswer.Field())
	assert.Equal(t, "candidate", SignalICECandidate.Field())
	assert.True(t, SignalICECandidate.Valid())
	assert.False(t, SignalKind("join-room").Valid())
}

func TestSignalEventKeepsPayload(t *testing.T) {
	body := Payload(`{"type":"offer","sdp":"v=0\r\no=- 1 2 IN IP4 127.0.0.1\r\n","extra":[1,2,{"k":null}]}`)
	b, err := json.Marshal(SignalEvent(SignalOffer, body, "alice"))
	require.NoError(t, err)

	var out struct {
		Event string `json:"event"`
		Data  struct {
			Offer  Payload `json:"offer"`
			UserID string  `json:"userId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, EventOffer, out.Event)
	assert.Equal(t, "alice", out.Data.UserID)
	assert.Equal(t, string(body), string(out.Data.Offer))
}

func TestSignalEventEmptyBody(t *testing.T) {
	b, err := json.Marshal(SignalEvent(SignalICECandidate, nil, "bob"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"ice-candidate","data":{"candidate":null,"userId":"bob"}}`, string(b))
}

func TestControlEvents(t *testing.T) {
	b, err := json.Marshal(RoomErrorEvent(MsgRoomFull))
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"room-error","data":{"message":"Room is full"}}`, string(b))

	b, err = json.Marshal(UserJoinedEvent("x"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"user-joined","data":{"userId":"x"}}`, string(b))

	b, err = json.Marshal(UserLeftEvent("x"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"user-left","data":{"userId":"x"}}`, string(b))

	b, err = json.Marshal(Event{Name: EventPong})
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"pong"}`, string(b))
}
