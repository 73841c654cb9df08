package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/greenfelt/holdem/internal/deck"
)

// Join seats a new player. The seat index is the join position and is stable
// for the life of the room; seat 0 starts with the dealer button.
func Join(s State, playerID, name string) (State, error) {
	if len(s.Seats) >= s.Stakes.MaxSeats {
		return State{}, ErrRoomFull
	}
	for _, seat := range s.Seats {
		if seat.Name == name {
			return State{}, ErrDuplicateName
		}
	}

	next := s.clone()
	next.Seats = append(next.Seats, Seat{
		ID:     playerID,
		Name:   name,
		Stack:  s.Stakes.StartingStack,
		Index:  len(s.Seats),
		Dealer: len(s.Seats) == 0,
	})
	return next, nil
}

// StartHand shuffles a fresh deck, deals hole cards, posts blinds and opens
// the preflop betting round. It is legal from Waiting or from Showdown of a
// finished hand; stacks carry over between hands.
//
// The dealer button always returns to seat 0. Blind deductions are not
// clamped, so a short stack can go negative.
func StartHand(s State, rng *rand.Rand) (State, error) {
	if s.HandActive() {
		return State{}, ErrHandInProgress
	}
	if len(s.Seats) < 2 {
		return State{}, ErrNotEnoughPlayers
	}

	next := s.clone()
	n := len(next.Seats)

	d := deck.New(rng)
	for i := range next.Seats {
		next.Seats[i].HoleCards = d.DealN(2)
		next.Seats[i].StreetBet = 0
		next.Seats[i].Folded = false
		next.Seats[i].Dealer = i == 0
	}

	dealer := 0
	sb := (dealer + 1) % n
	bb := (dealer + 2) % n

	next.Seats[sb].Stack -= next.Stakes.SmallBlind
	next.Seats[sb].StreetBet = next.Stakes.SmallBlind
	next.Seats[bb].Stack -= next.Stakes.BigBlind
	next.Seats[bb].StreetBet = next.Stakes.BigBlind

	next.Board = nil
	next.Deck = d.Remaining()
	next.Pot = next.Stakes.SmallBlind + next.Stakes.BigBlind
	next.CurrentBet = next.Stakes.BigBlind
	next.Phase = PreFlop
	next.DealerSeat = dealer
	next.ActiveSeat = (bb + 1) % n
	next.LastAggressor = bb
	next.StreetResolved = false

	return next, nil
}

// Act applies one player action. Validation happens in a fixed order (hand
// active, seat known, seat's turn, action legal) before any chips move.
//
// When a fold leaves a single live seat the hand ends immediately at
// Showdown. Otherwise the turn advances to the next live seat, and the
// street is marked resolved once action has come all the way around to just
// past the last aggressor with every live seat matching the current bet.
// The engine never advances the street itself; the caller is expected to
// invoke AdvanceStreet when it observes StreetResolved.
func Act(s State, seatID string, action Action, amount int) (State, error) {
	if !s.HandActive() {
		return State{}, ErrHandNotActive
	}
	idx, ok := s.seatIndex(seatID)
	if !ok {
		return State{}, ErrUnknownSeat
	}
	if idx != s.ActiveSeat {
		return State{}, ErrNotYourTurn
	}

	next := s.clone()
	n := len(next.Seats)
	seat := &next.Seats[idx]

	switch action {
	case Fold:
		seat.Folded = true
		if next.LiveSeats() == 1 {
			next.Phase = Showdown
			next.ActiveSeat = -1
			return next, nil
		}

	case Check:
		if next.CurrentBet != seat.StreetBet {
			return State{}, ErrIllegalCheck
		}

	case Call:
		// Not clamped to the stack; there is no all-in handling.
		callAmount := next.CurrentBet - seat.StreetBet
		seat.Stack -= callAmount
		seat.StreetBet = next.CurrentBet
		next.Pot += callAmount

	case Bet:
		if next.CurrentBet != 0 || amount <= 0 {
			return State{}, ErrIllegalBet
		}
		seat.Stack -= amount
		seat.StreetBet = amount
		next.Pot += amount
		next.CurrentBet = amount
		next.LastAggressor = idx

	case Raise:
		if amount <= next.CurrentBet {
			return State{}, ErrIllegalRaise
		}
		raiseAmount := amount - seat.StreetBet
		seat.Stack -= raiseAmount
		seat.StreetBet = amount
		next.Pot += raiseAmount
		next.CurrentBet = amount
		next.LastAggressor = idx

	default:
		return State{}, fmt.Errorf("unknown action %d", action)
	}

	next.ActiveSeat = next.nextLiveSeat(idx+1, idx)

	// Closing condition: action has returned to just past the last
	// aggressor with no further raises and all live bets matched.
	// Skipped after a fold.
	if action != Fold && next.ActiveSeat == (next.LastAggressor+1)%n && next.allLiveMatched() {
		next.StreetResolved = true
	}

	return next, nil
}

// ExpireTurn folds the seat whose turn it is, on behalf of the transport's
// turn timer. It carries Act's sequencing checks: the caller passes the seat
// it believes is due to act, and the operation is rejected if that seat has
// meanwhile acted.
func ExpireTurn(s State, seatID string) (State, error) {
	return Act(s, seatID, Fold, 0)
}

// AdvanceStreet moves a resolved betting round to the next street, dealing
// community cards from the hand's remaining deck and reopening betting with
// the first live seat after the dealer button. River advances to Showdown,
// clearing the resolved flag; Showdown is terminal.
func AdvanceStreet(s State) (State, error) {
	if !s.HandActive() || !s.StreetResolved {
		return State{}, ErrPhase
	}

	next := s.clone()

	if next.Phase == River {
		next.Phase = Showdown
		next.StreetResolved = false
		return next, nil
	}

	reveal := 1
	if next.Phase == PreFlop {
		reveal = 3
	}
	next.Board = append(next.Board, next.Deck[:reveal]...)
	next.Deck = next.Deck[reveal:]
	next.Phase++

	for i := range next.Seats {
		next.Seats[i].StreetBet = 0
	}
	next.CurrentBet = 0
	next.ActiveSeat = next.nextLiveSeat(next.DealerSeat+1, next.DealerSeat)
	next.LastAggressor = -1
	next.StreetResolved = false

	return next, nil
}
