package signal

import (
	"bytes"
	stdjson "encoding/json"

	"github.com/dkeye/Signal/internal/core"
	"github.com/dkeye/Signal/internal/domain"
	"github.com/goccy/go-json"
)

// envelope is the inbound message shape: {"event": name, "data": any}.
type envelope struct {
	Event string       `json:"event"`
	Data  core.Payload `json:"data"`
}

func decodeEnvelope(data []byte) (envelope, error) {
	var env envelope
	err := json.Unmarshal(data, &env)
	return env, err
}

// encodeEvent goes through encoding/json: goccy is not safe for concurrent
// encoding of values with a custom MarshalJSON, and every relayed payload has one.
// HTML escaping is off so <, > and & inside SDP reach the peer unchanged.
func encodeEvent(ev core.Event) (core.Frame, error) {
	var buf bytes.Buffer
	enc := stdjson.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ev); err != nil {
		return nil, err
	}
	return core.Frame(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// roomOf reads a room name sent either as a bare JSON string or as an object
// with a roomId field. Anything else yields an empty name.
func roomOf(data core.Payload) domain.RoomName {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		return domain.RoomName(name)
	}
	var obj struct {
		RoomID string `json:"roomId"`
	}
	_ = json.Unmarshal(data, &obj)
	return domain.RoomName(obj.RoomID)
}

// signalBody extracts the room and the opaque body of a signaling message.
// Missing fields come back empty and are relayed as null.
func signalBody(kind core.SignalKind, data core.Payload) (domain.RoomName, core.Payload) {
	var fields map[string]core.Payload
	if err := json.Unmarshal(data, &fields); err != nil {
		return "", nil
	}
	var room string
	_ = json.Unmarshal(fields["roomId"], &room)
	return domain.RoomName(room), fields[kind.Field()]
}
