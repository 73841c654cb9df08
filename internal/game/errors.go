package game

import "errors"

// All engine failures are expected, recoverable conditions returned to the
// caller. A rejected operation never mutates state.
var (
	// Capacity
	ErrRoomFull = errors.New("room is full")

	// Identity
	ErrDuplicateName = errors.New("display name already taken")
	ErrUnknownSeat   = errors.New("unknown seat")

	// Sequencing
	ErrNotYourTurn    = errors.New("not your turn")
	ErrHandNotActive  = errors.New("no hand in progress")
	ErrHandInProgress = errors.New("hand already in progress")
	ErrPhase          = errors.New("operation not valid in current phase")

	// Action legality
	ErrIllegalCheck     = errors.New("cannot check facing a bet")
	ErrIllegalBet       = errors.New("bet not allowed")
	ErrIllegalRaise     = errors.New("raise must exceed current bet")
	ErrNotEnoughPlayers = errors.New("need at least 2 players")
)
