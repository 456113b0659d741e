package core

import "github.com/dkeye/Signal/internal/domain"

// Transport is the outbound side of the connection layer.
// The core only ever addresses connections by id.
type Transport interface {
	// Send enqueues ev for delivery to a single connection. It never blocks;
	// a full queue yields ErrBackpressure, an unknown id ErrConnClosed.
	Send(to domain.ConnID, ev Event) error
	// Close tears down the connection. The adapter reports the disconnect
	// back through its read loop.
	Close(id domain.ConnID)
}
