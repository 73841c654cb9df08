package room

import (
	"errors"
	"sync"
	"time"

	"github.com/greenfelt/holdem/internal/game"
)

var (
	// ErrNotFound is returned when a room id has no stored room.
	ErrNotFound = errors.New("room not found")
)

// Room is the stored record for one table: its identity plus the full
// engine state.
type Room struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	State     game.State `json:"state"`
}

// Store persists rooms keyed by id. Implementations must be safe for
// concurrent use; callers serialize read-modify-write cycles per room
// above this layer.
type Store interface {
	Get(id string) (Room, error)
	Put(room Room) error
	Delete(id string) error
	List() []Room
}

// MemoryStore is the single-process Store backed by a map.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]Room
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rooms: make(map[string]Room)}
}

// Get retrieves a room by id.
func (s *MemoryStore) Get(id string) (Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[id]
	if !ok {
		return Room{}, ErrNotFound
	}
	return room, nil
}

// Put stores a room, replacing any previous record with the same id.
func (s *MemoryStore) Put(room Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rooms[room.ID] = room
	return nil
}

// Delete removes a room by id. Deleting an absent id is not an error.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rooms, id)
	return nil
}

// List returns a snapshot of all stored rooms.
func (s *MemoryStore) List() []Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}
