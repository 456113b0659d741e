package app

import (
	"fmt"

	"github.com/dkeye/Signal/internal/domain"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
	DropFrame
)

// Policy decides what happens to a peer whose send queue is full.
type Policy interface {
	OnBackPressure(room domain.RoomName, member domain.ConnID) BackpressureAction
}

// DropPolicy discards the message; sends are fire-and-forget.
type DropPolicy struct{}

func (DropPolicy) OnBackPressure(domain.RoomName, domain.ConnID) BackpressureAction {
	return DropFrame
}

// KickPolicy disconnects peers that cannot keep up.
type KickPolicy struct{}

func (KickPolicy) OnBackPressure(domain.RoomName, domain.ConnID) BackpressureAction {
	return KickMember
}

// ParsePolicy maps a config value onto a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "drop":
		return DropPolicy{}, nil
	case "kick":
		return KickPolicy{}, nil
	}
	return nil, fmt.Errorf("unknown backpressure policy %q", name)
}
