package domain

// RoomName is the caller-chosen key of a signaling session.
type RoomName string

func (n RoomName) String() string { return string(n) }
