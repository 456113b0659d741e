package signal

import (
	"runtime"
	"sync"
	"testing"

	"github.com/dkeye/Signal/internal/core"
	"github.com/dkeye/Signal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope(t *testing.T) {
	env, err := decodeEnvelope([]byte(`{"event":"join-room","data":"room1"}`))
	require.NoError(t, err)
	assert.Equal(t, core.EventJoinRoom, env.Event)
	assert.Equal(t, domain.RoomName("room1"), roomOf(env.Data))

	_, err = decodeEnvelope([]byte(`not json`))
	assert.Error(t, err)
}

func TestRoomOf(t *testing.T) {
	tests := []struct {
		in   string
		want domain.RoomName
	}{
		{`"room1"`, "room1"},
		{`{"roomId":"room2"}`, "room2"},
		{`42`, ""},
		{`null`, ""},
		{``, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roomOf(core.Payload(tt.in)), tt.in)
	}
}

func TestSignalBody(t *testing.T) {
	room, body := signalBody(core.SignalICECandidate,
		core.Payload(`{"roomId":"r","candidate":{"candidate":"candidate:1 1 udp 2130706431 10.0.0.1 5000 typ host","sdpMid":"0"}}`))
	assert.Equal(t, domain.RoomName("r"), room)
	assert.Equal(t, `{"candidate":"candidate:1 1 udp 2130706431 10.0.0.1 5000 typ host","sdpMid":"0"}`, string(body))

	room, body = signalBody(core.SignalAnswer, core.Payload(`{"roomId":"r"}`))
	assert.Equal(t, domain.RoomName("r"), room)
	assert.Empty(t, body)

	room, body = signalBody(core.SignalOffer, core.Payload(`"just a string"`))
	assert.Empty(t, room)
	assert.Empty(t, body)
}

func TestEncodeEvent(t *testing.T) {
	f, err := encodeEvent(core.SignalEvent(core.SignalAnswer, core.Payload(`{"type":"answer","sdp":"v=0"}`), "peer"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"answer","data":{"answer":{"type":"answer","sdp":"v=0"},"userId":"peer"}}`, string(f))
}

func TestEncodeEventKeepsHTMLCharacters(t *testing.T) {
	body := core.Payload(`{"type":"offer","sdp":"a<b>&c"}`)
	f, err := encodeEvent(core.SignalEvent(core.SignalOffer, body, "A"))
	require.NoError(t, err)
	assert.Equal(t, `{"event":"offer","data":{"offer":{"type":"offer","sdp":"a<b>&c"},"userId":"A"}}`, string(f))
}

func TestEncodeEventConcurrent(t *testing.T) {
	const (
		workers = 8
		rounds  = 20000
	)
	want := `{"event":"offer","data":{"offer":{"type":"offer"},"userId":"A"}}`

	var wg sync.WaitGroup
	errs := make(chan string, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				f, err := encodeEvent(core.SignalEvent(core.SignalOffer, core.Payload(`{"type":"offer"}`), "A"))
				if err != nil || string(f) != want {
					errs <- string(f)
					return
				}
				if w == 0 && i%1000 == 0 {
					runtime.GC()
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("unexpected frame %q", got)
	}
}
