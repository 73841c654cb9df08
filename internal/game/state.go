package game

import (
	"fmt"

	"github.com/greenfelt/holdem/internal/deck"
)

// Phase represents where a hand is in its lifecycle
type Phase int

const (
	Waiting Phase = iota
	PreFlop
	Flop
	Turn
	River
	Showdown
)

var phaseNames = [...]string{"waiting", "preflop", "flop", "turn", "river", "showdown"}

// String returns the string representation of a phase
func (p Phase) String() string {
	if p < Waiting || p > Showdown {
		return "unknown"
	}
	return phaseNames[p]
}

// MarshalText encodes the phase by name so state snapshots are readable.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a phase name produced by MarshalText.
func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("invalid phase %q", string(text))
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Bet
	Raise
)

var actionNames = [...]string{"fold", "check", "call", "bet", "raise"}

// String returns the string representation of an action
func (a Action) String() string {
	if a < Fold || a > Raise {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction converts a wire-format action name to an Action.
func ParseAction(s string) (Action, error) {
	for i, name := range actionNames {
		if name == s {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("invalid action %q", s)
}

// Stakes are the table parameters fixed at room creation.
type Stakes struct {
	SmallBlind    int `json:"smallBlind"`
	BigBlind      int `json:"bigBlind"`
	StartingStack int `json:"startingStack"`
	MaxSeats      int `json:"maxSeats"`
}

// DefaultStakes returns the standard table parameters.
func DefaultStakes() Stakes {
	return Stakes{
		SmallBlind:    5,
		BigBlind:      10,
		StartingStack: 1000,
		MaxSeats:      8,
	}
}

// Seat represents one player's seat at the table
type Seat struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Stack     int         `json:"stack"`
	HoleCards []deck.Card `json:"holeCards,omitempty"`
	StreetBet int         `json:"streetBet"`
	Folded    bool        `json:"folded"`
	Index     int         `json:"index"`
	Dealer    bool        `json:"dealer"`
}

// State is the full table state for one room. It is a value: operations
// return a new State and never modify their input.
//
// Deck holds the undealt remainder of this hand's 52-card permutation, so
// later streets deal from the same shuffle the hole cards came from. It must
// never be exposed to clients; the transport builds redacted views.
type State struct {
	Seats          []Seat      `json:"seats"`
	Board          []deck.Card `json:"board"`
	Deck           []deck.Card `json:"deck,omitempty"`
	Pot            int         `json:"pot"`
	CurrentBet     int         `json:"currentBet"`
	Phase          Phase       `json:"phase"`
	ActiveSeat     int         `json:"activeSeat"`
	DealerSeat     int         `json:"dealerSeat"`
	LastAggressor  int         `json:"lastAggressor"`
	StreetResolved bool        `json:"streetResolved"`
	Stakes         Stakes      `json:"stakes"`
}

// New creates the initial state for a room: no seats, waiting for players.
func New(stakes Stakes) State {
	return State{
		Phase:         Waiting,
		ActiveSeat:    -1,
		LastAggressor: -1,
		Stakes:        stakes,
	}
}

// HandActive reports whether a hand is in a betting phase.
func (s State) HandActive() bool {
	return s.Phase != Waiting && s.Phase != Showdown
}

// LiveSeats returns the number of seats that have not folded.
func (s State) LiveSeats() int {
	n := 0
	for _, seat := range s.Seats {
		if !seat.Folded {
			n++
		}
	}
	return n
}

// SeatByID returns the seat with the given ID.
func (s State) SeatByID(id string) (Seat, bool) {
	for _, seat := range s.Seats {
		if seat.ID == id {
			return seat, true
		}
	}
	return Seat{}, false
}

func (s State) seatIndex(id string) (int, bool) {
	for i, seat := range s.Seats {
		if seat.ID == id {
			return i, true
		}
	}
	return -1, false
}

// clone returns a deep copy so operations can modify freely without
// touching the input value the caller still holds.
func (s State) clone() State {
	next := s

	next.Seats = make([]Seat, len(s.Seats))
	copy(next.Seats, s.Seats)
	for i := range next.Seats {
		if len(s.Seats[i].HoleCards) > 0 {
			next.Seats[i].HoleCards = make([]deck.Card, len(s.Seats[i].HoleCards))
			copy(next.Seats[i].HoleCards, s.Seats[i].HoleCards)
		}
	}

	if len(s.Board) > 0 {
		next.Board = make([]deck.Card, len(s.Board))
		copy(next.Board, s.Board)
	}
	if len(s.Deck) > 0 {
		next.Deck = make([]deck.Card, len(s.Deck))
		copy(next.Deck, s.Deck)
	}

	return next
}

// allLiveMatched reports whether every non-folded seat has matched the
// table's current bet.
func (s State) allLiveMatched() bool {
	for _, seat := range s.Seats {
		if !seat.Folded && seat.StreetBet != s.CurrentBet {
			return false
		}
	}
	return true
}

// nextLiveSeat scans circularly from the given index for a non-folded seat,
// stopping if the scan wraps back to stop.
func (s State) nextLiveSeat(from, stop int) int {
	n := len(s.Seats)
	idx := from % n
	for s.Seats[idx].Folded && idx != stop {
		idx = (idx + 1) % n
	}
	return idx
}
