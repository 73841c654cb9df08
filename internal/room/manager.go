package room

import (
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/greenfelt/holdem/internal/game"
)

// Manager owns all rooms. Every mutation of a room runs as a serialized
// read-modify-write cycle against the store: the per-room mutex is held
// across get, engine operation and put, so concurrent commands for the
// same room apply one at a time while different rooms proceed in parallel.
type Manager struct {
	store  Store
	logger *log.Logger

	rngMu sync.Mutex
	rng   *rand.Rand

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewManager constructs a manager over the given store. The rng seeds every
// shuffle; pass a fixed-seed generator for reproducible hands.
func NewManager(store Store, rng *rand.Rand, logger *log.Logger) *Manager {
	return &Manager{
		store:  store,
		logger: logger.WithPrefix("room"),
		rng:    rng,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (m *Manager) roomLock(id string) *sync.Mutex {
	m.locksMu.Lock()
	defer m.locksMu.Unlock()

	mu, ok := m.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		m.locks[id] = mu
	}
	return mu
}

// update runs one serialized read-modify-write cycle for a room.
func (m *Manager) update(roomID string, fn func(game.State) (game.State, error)) (Room, error) {
	mu := m.roomLock(roomID)
	mu.Lock()
	defer mu.Unlock()

	rm, err := m.store.Get(roomID)
	if err != nil {
		return Room{}, err
	}

	next, err := fn(rm.State)
	if err != nil {
		return Room{}, err
	}

	rm.State = next
	if err := m.store.Put(rm); err != nil {
		return Room{}, err
	}
	return rm, nil
}

// CreateRoom creates an empty room with the given table parameters and
// returns its record.
func (m *Manager) CreateRoom(stakes game.Stakes) (Room, error) {
	rm := Room{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		State:     game.New(stakes),
	}
	if err := m.store.Put(rm); err != nil {
		return Room{}, err
	}

	m.logger.Info("room created",
		"room_id", rm.ID,
		"small_blind", stakes.SmallBlind,
		"big_blind", stakes.BigBlind,
		"max_seats", stakes.MaxSeats)
	return rm, nil
}

// JoinRoom seats a named player and returns the updated room along with the
// new seat's id, which the client uses to authenticate later actions.
func (m *Manager) JoinRoom(roomID, name string) (Room, string, error) {
	seatID := uuid.NewString()

	rm, err := m.update(roomID, func(s game.State) (game.State, error) {
		return game.Join(s, seatID, name)
	})
	if err != nil {
		return Room{}, "", err
	}

	m.logger.Info("player joined",
		"room_id", roomID,
		"seat_id", seatID,
		"name", name,
		"seats", len(rm.State.Seats))
	return rm, seatID, nil
}

// StartHand begins a new hand in the room.
func (m *Manager) StartHand(roomID string) (Room, error) {
	rm, err := m.update(roomID, func(s game.State) (game.State, error) {
		m.rngMu.Lock()
		defer m.rngMu.Unlock()
		return game.StartHand(s, m.rng)
	})
	if err != nil {
		return Room{}, err
	}

	m.logger.Info("hand started",
		"room_id", roomID,
		"seats", len(rm.State.Seats),
		"pot", rm.State.Pot,
		"active_seat", rm.State.ActiveSeat)
	return rm, nil
}

// Act applies a player action in the room.
func (m *Manager) Act(roomID, seatID string, action game.Action, amount int) (Room, error) {
	rm, err := m.update(roomID, func(s game.State) (game.State, error) {
		return game.Act(s, seatID, action, amount)
	})
	if err != nil {
		return Room{}, err
	}

	m.logger.Info("action applied",
		"room_id", roomID,
		"seat_id", seatID,
		"action", action,
		"amount", amount,
		"pot", rm.State.Pot,
		"phase", rm.State.Phase,
		"street_resolved", rm.State.StreetResolved)
	return rm, nil
}

// ExpireTurn folds the given seat on behalf of the turn timer. The engine
// rejects the fold if the seat has meanwhile acted, so a stale timer firing
// after a legitimate action is harmless.
func (m *Manager) ExpireTurn(roomID, seatID string) (Room, error) {
	rm, err := m.update(roomID, func(s game.State) (game.State, error) {
		return game.ExpireTurn(s, seatID)
	})
	if err != nil {
		return Room{}, err
	}

	m.logger.Info("turn expired",
		"room_id", roomID,
		"seat_id", seatID,
		"phase", rm.State.Phase)
	return rm, nil
}

// AdvanceStreet moves a resolved betting round to the next street.
func (m *Manager) AdvanceStreet(roomID string) (Room, error) {
	rm, err := m.update(roomID, func(s game.State) (game.State, error) {
		return game.AdvanceStreet(s)
	})
	if err != nil {
		return Room{}, err
	}

	m.logger.Info("street advanced",
		"room_id", roomID,
		"phase", rm.State.Phase,
		"board", len(rm.State.Board))
	return rm, nil
}

// GetRoom returns the current record for a room.
func (m *Manager) GetRoom(roomID string) (Room, error) {
	return m.store.Get(roomID)
}

// DeleteRoom removes a room and its lock.
func (m *Manager) DeleteRoom(roomID string) error {
	mu := m.roomLock(roomID)
	mu.Lock()
	defer mu.Unlock()

	if err := m.store.Delete(roomID); err != nil {
		return err
	}

	m.locksMu.Lock()
	delete(m.locks, roomID)
	m.locksMu.Unlock()

	m.logger.Info("room deleted", "room_id", roomID)
	return nil
}

// ListRooms returns a snapshot of all rooms.
func (m *Manager) ListRooms() []Room {
	return m.store.List()
}
