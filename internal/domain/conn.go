// Package domain contains identifiers without logic, just meta-data
package domain

import "github.com/google/uuid"

// ConnID identifies one live transport connection. It is opaque to the core.
type ConnID string

// NewConnID is a tiny helper to avoid ad-hoc id generation in adapters.
func NewConnID() ConnID {
	return ConnID(uuid.NewString())
}

func (id ConnID) String() string { return string(id) }
