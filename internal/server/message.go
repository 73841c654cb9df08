package server

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/greenfelt/holdem/internal/deck"
	"github.com/greenfelt/holdem/internal/game"
	"github.com/greenfelt/holdem/internal/room"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type CreateRoomData struct {
	SmallBlind    int `json:"smallBlind,omitempty"`
	BigBlind      int `json:"bigBlind,omitempty"`
	StartingStack int `json:"startingStack,omitempty"`
	MaxSeats      int `json:"maxSeats,omitempty"`
}

type JoinRoomData struct {
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
}

type StartHandData struct {
	RoomID string `json:"roomId"`
}

type PlayerActionData struct {
	RoomID string `json:"roomId"`
	SeatID string `json:"seatId"`
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

type AdvanceStreetData struct {
	RoomID string `json:"roomId"`
}

type GetStateData struct {
	RoomID string `json:"roomId"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RoomCreatedData struct {
	RoomID string      `json:"roomId"`
	Stakes game.Stakes `json:"stakes"`
}

type RoomJoinedData struct {
	RoomID string        `json:"roomId"`
	SeatID string        `json:"seatId"`
	Index  int           `json:"index"`
	State  RoomStateData `json:"state"`
}

type TurnTimeoutData struct {
	RoomID string `json:"roomId"`
	SeatID string `json:"seatId"`
	Name   string `json:"name"`
}

// SeatView is the client-visible projection of a seat. Hole cards are only
// present on the viewer's own seat until showdown, and seat ids are never
// revealed to other players since they authenticate actions.
type SeatView struct {
	Name      string      `json:"name"`
	Stack     int         `json:"stack"`
	StreetBet int         `json:"streetBet"`
	Folded    bool        `json:"folded"`
	Index     int         `json:"index"`
	Dealer    bool        `json:"dealer"`
	HoleCards []deck.Card `json:"holeCards,omitempty"`
	You       bool        `json:"you,omitempty"`
}

// RoomStateData is the client-visible projection of a room. The deck
// remainder never leaves the server.
type RoomStateData struct {
	RoomID         string      `json:"roomId"`
	Phase          string      `json:"phase"`
	Pot            int         `json:"pot"`
	CurrentBet     int         `json:"currentBet"`
	Board          []deck.Card `json:"board"`
	ActiveSeat     int         `json:"activeSeat"`
	DealerSeat     int         `json:"dealerSeat"`
	StreetResolved bool        `json:"streetResolved"`
	Seats          []SeatView  `json:"seats"`
	Stakes         game.Stakes `json:"stakes"`
}

// buildRoomState projects a room record into the view for one seat.
// An empty viewerSeatID builds the spectator view with all hole cards
// redacted.
func buildRoomState(rm room.Room, viewerSeatID string) RoomStateData {
	st := rm.State

	// At showdown the seats still in the hand table their cards, unless
	// everyone else folded and there is nothing to show.
	showdown := st.Phase == game.Showdown && st.LiveSeats() > 1

	seats := make([]SeatView, len(st.Seats))
	for i, seat := range st.Seats {
		view := SeatView{
			Name:      seat.Name,
			Stack:     seat.Stack,
			StreetBet: seat.StreetBet,
			Folded:    seat.Folded,
			Index:     seat.Index,
			Dealer:    seat.Dealer,
		}
		if viewerSeatID != "" && seat.ID == viewerSeatID {
			view.You = true
			view.HoleCards = seat.HoleCards
		} else if showdown && !seat.Folded {
			view.HoleCards = seat.HoleCards
		}
		seats[i] = view
	}

	return RoomStateData{
		RoomID:         rm.ID,
		Phase:          st.Phase.String(),
		Pot:            st.Pot,
		CurrentBet:     st.CurrentBet,
		Board:          st.Board,
		ActiveSeat:     st.ActiveSeat,
		DealerSeat:     st.DealerSeat,
		StreetResolved: st.StreetResolved,
		Seats:          seats,
		Stakes:         st.Stakes,
	}
}

// errorCode maps engine and store errors to stable wire codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, room.ErrNotFound):
		return "room_not_found"
	case errors.Is(err, game.ErrRoomFull):
		return "room_full"
	case errors.Is(err, game.ErrDuplicateName):
		return "duplicate_name"
	case errors.Is(err, game.ErrUnknownSeat):
		return "unknown_seat"
	case errors.Is(err, game.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, game.ErrHandNotActive):
		return "hand_not_active"
	case errors.Is(err, game.ErrHandInProgress):
		return "hand_in_progress"
	case errors.Is(err, game.ErrNotEnoughPlayers):
		return "not_enough_players"
	case errors.Is(err, game.ErrPhase):
		return "bad_phase"
	case errors.Is(err, game.ErrIllegalCheck):
		return "illegal_check"
	case errors.Is(err, game.ErrIllegalBet):
		return "illegal_bet"
	case errors.Is(err, game.ErrIllegalRaise):
		return "illegal_raise"
	default:
		return "internal_error"
	}
}
