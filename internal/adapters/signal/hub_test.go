package signal

import (
	"sync"
	"testing"

	"github.com/dkeye/Signal/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	frames []core.Frame
	full   bool
	closed bool
}

func (c *fakeConn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return core.ErrConnClosed
	}
	if c.full {
		return core.ErrBackpressure
	}
	c.frames = append(c.frames, f)
	return nil
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func TestHubSend(t *testing.T) {
	h := NewHub()
	c := &fakeConn{}
	h.Register("a", c)
	require.Equal(t, 1, h.Len())

	require.NoError(t, h.Send("a", core.UserJoinedEvent("b")))
	require.Len(t, c.frames, 1)
	assert.JSONEq(t, `{"event":"user-joined","data":{"userId":"b"}}`, string(c.frames[0]))

	assert.ErrorIs(t, h.Send("missing", core.UserJoinedEvent("b")), core.ErrConnClosed)

	c.full = true
	assert.ErrorIs(t, h.Send("a", core.UserLeftEvent("b")), core.ErrBackpressure)

	h.Unregister("a")
	assert.Equal(t, 0, h.Len())
	assert.ErrorIs(t, h.Send("a", core.UserLeftEvent("b")), core.ErrConnClosed)
}

func TestHubClose(t *testing.T) {
	h := NewHub()
	a, b := &fakeConn{}, &fakeConn{}
	h.Register("a", a)
	h.Register("b", b)

	h.Close("a")
	h.Close("unknown")
	assert.True(t, a.closed)
	assert.False(t, b.closed)

	h.CloseAll()
	assert.True(t, b.closed)
}
