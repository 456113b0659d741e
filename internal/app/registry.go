package app

import (
	"sort"
	"sync"

	"github.com/dkeye/Signal/internal/core"
	"github.com/dkeye/Signal/internal/domain"
	"github.com/rs/zerolog/log"
)

// MaxMembers is the capacity of a two-party session.
const MaxMembers = 2

// Session is a snapshot of one room's membership.
type Session struct {
	Name    domain.RoomName
	members map[domain.ConnID]struct{}
}

func newSession(name domain.RoomName) *Session {
	return &Session{Name: name, members: make(map[domain.ConnID]struct{}, MaxMembers)}
}

func (s *Session) Len() int { return len(s.members) }

func (s *Session) Has(id domain.ConnID) bool {
	_, ok := s.members[id]
	return ok
}

func (s *Session) Members() []domain.ConnID {
	out := make([]domain.ConnID, 0, len(s.members))
	for id := range s.members {
		out = append(out, id)
	}
	return out
}

func (s *Session) except(skip domain.ConnID) []domain.ConnID {
	out := make([]domain.ConnID, 0, len(s.members))
	for id := range s.members {
		if id != skip {
			out = append(out, id)
		}
	}
	return out
}

func (s *Session) clone() *Session {
	c := newSession(s.Name)
	for id := range s.members {
		c.members[id] = struct{}{}
	}
	return c
}

// Registry is the authoritative in-memory store of session membership.
// A session present in the registry always has at least one member.
type Registry struct {
	mu       sync.RWMutex
	capacity int
	rooms    map[domain.RoomName]*Session
	byConn   map[domain.ConnID]map[domain.RoomName]struct{}
}

// NewRegistry creates a registry whose sessions hold at most capacity members.
// Non-positive capacity means MaxMembers.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = MaxMembers
	}
	return &Registry{
		capacity: capacity,
		rooms:    make(map[domain.RoomName]*Session),
		byConn:   make(map[domain.ConnID]map[domain.RoomName]struct{}),
	}
}

func (r *Registry) Capacity() int { return r.capacity }

// Ensure returns a snapshot of the session for name, or a fresh empty one.
// An empty session is stored only together with its first member.
func (r *Registry) Ensure(name domain.RoomName) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.rooms[name]; ok {
		return s.clone()
	}
	return newSession(name)
}

// ensure must be called with mu held for writing.
func (r *Registry) ensure(name domain.RoomName) *Session {
	s, ok := r.rooms[name]
	if !ok {
		s = newSession(name)
	}
	return s
}

func (r *Registry) Members(name domain.RoomName) []domain.ConnID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.rooms[name]; ok {
		return s.Members()
	}
	return nil
}

// Add puts id into the session, creating it if needed. It returns the other
// members at the moment of the add and whether id was newly added.
// A full session yields core.ErrRoomFull and is left untouched.
func (r *Registry) Add(name domain.RoomName, id domain.ConnID) ([]domain.ConnID, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.ensure(name)
	if s.Has(id) {
		return s.except(id), false, nil
	}
	if s.Len() >= r.capacity {
		log.Info().Str("module", "app.registry").Str("room", string(name)).Str("conn", string(id)).Msg("room is full")
		return nil, false, core.ErrRoomFull
	}

	others := s.except(id)
	s.members[id] = struct{}{}
	r.rooms[name] = s

	rooms, ok := r.byConn[id]
	if !ok {
		rooms = make(map[domain.RoomName]struct{}, 1)
		r.byConn[id] = rooms
	}
	rooms[name] = struct{}{}

	log.Info().Str("module", "app.registry").Str("room", string(name)).Str("conn", string(id)).Int("members", s.Len()).Msg("member added")
	return others, true, nil
}

// Remove takes id out of the session and deletes the session once empty.
// It returns the members left behind and whether id was a member.
func (r *Registry) Remove(name domain.RoomName, id domain.ConnID) ([]domain.ConnID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.rooms[name]
	if !ok {
		return nil, false
	}
	if !s.Has(id) {
		return s.Members(), false
	}

	delete(s.members, id)
	if rooms, ok := r.byConn[id]; ok {
		delete(rooms, name)
		if len(rooms) == 0 {
			delete(r.byConn, id)
		}
	}
	if s.Len() == 0 {
		delete(r.rooms, name)
		log.Info().Str("module", "app.registry").Str("room", string(name)).Msg("room removed")
	}

	log.Info().Str("module", "app.registry").Str("room", string(name)).Str("conn", string(id)).Int("members", s.Len()).Msg("member removed")
	return s.Members(), true
}

// SessionsContaining lists the rooms id is a member of, sorted by name.
func (r *Registry) SessionsContaining(id domain.ConnID) []domain.RoomName {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rooms := r.byConn[id]
	out := make([]domain.RoomName, 0, len(rooms))
	for name := range rooms {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

func (r *Registry) List() []core.RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(r.rooms))
	for name, s := range r.rooms {
		out = append(out, core.RoomInfo{Name: name, MemberCount: s.Len()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
