package server

import (
	"github.com/greenfelt/holdem/internal/room"
)

// scheduleAfterUpdate inspects a freshly updated room and arranges the
// next timed event: the street-pause advance when betting has resolved,
// or the turn timer for the seat now due to act. A hand that has ended
// cancels any pending turn timer.
func (s *Server) scheduleAfterUpdate(rm room.Room) {
	st := rm.State

	switch {
	case st.StreetResolved:
		s.stopTurnTimer(rm.ID)
		s.scheduleStreetAdvance(rm.ID)
	case st.HandActive() && st.ActiveSeat >= 0:
		s.scheduleTurnTimer(rm.ID, st.Seats[st.ActiveSeat].ID, st.Seats[st.ActiveSeat].Name)
	default:
		s.stopTurnTimer(rm.ID)
	}
}

// scheduleTurnTimer arms the auto-fold timer for the seat currently due
// to act, replacing any timer already armed for the room.
func (s *Server) scheduleTurnTimer(roomID, seatID, name string) {
	if s.turnTimeout <= 0 {
		return
	}

	s.timersMu.Lock()
	if t, ok := s.turnTimers[roomID]; ok {
		t.Stop()
	}
	s.turnTimers[roomID] = s.clock.AfterFunc(s.turnTimeout, func() {
		s.expireTurn(roomID, seatID, name)
	})
	s.timersMu.Unlock()
}

func (s *Server) stopTurnTimer(roomID string) {
	s.timersMu.Lock()
	if t, ok := s.turnTimers[roomID]; ok {
		t.Stop()
		delete(s.turnTimers, roomID)
	}
	s.timersMu.Unlock()
}

func (s *Server) stopAllTimers() {
	s.timersMu.Lock()
	for id, t := range s.turnTimers {
		t.Stop()
		delete(s.turnTimers, id)
	}
	for id, t := range s.streetTimers {
		t.Stop()
		delete(s.streetTimers, id)
	}
	s.timersMu.Unlock()
}

// expireTurn runs when a turn timer fires: the seat is folded on the
// player's behalf. The engine rejects the fold if that seat already
// acted, which makes a timer racing a real action harmless.
func (s *Server) expireTurn(roomID, seatID, name string) {
	rm, err := s.manager.ExpireTurn(roomID, seatID)
	if err != nil {
		s.logger.Debug("Turn timer expired on a seat no longer due", "room", roomID, "error", err)
		return
	}

	if msg, err := NewMessage(MessageTypeTurnTimeout, TurnTimeoutData{
		RoomID: roomID,
		SeatID: seatID,
		Name:   name,
	}); err == nil {
		s.BroadcastToRoom(roomID, msg)
	}

	s.BroadcastRoomState(rm)
	s.scheduleAfterUpdate(rm)
}

// scheduleStreetAdvance arms the short pause before a resolved street
// moves on, so clients see the closing action before new cards appear.
// The timer is tracked per room so shutdown can cancel a pending one.
func (s *Server) scheduleStreetAdvance(roomID string) {
	if s.streetPause <= 0 {
		s.advanceStreet(roomID)
		return
	}

	s.timersMu.Lock()
	if t, ok := s.streetTimers[roomID]; ok {
		t.Stop()
	}
	s.streetTimers[roomID] = s.clock.AfterFunc(s.streetPause, func() {
		s.timersMu.Lock()
		delete(s.streetTimers, roomID)
		s.timersMu.Unlock()
		s.advanceStreet(roomID)
	})
	s.timersMu.Unlock()
}

func (s *Server) advanceStreet(roomID string) {
	rm, err := s.manager.AdvanceStreet(roomID)
	if err != nil {
		// Someone advanced manually during the pause.
		s.logger.Debug("Scheduled street advance skipped", "room", roomID, "error", err)
		return
	}

	s.BroadcastRoomState(rm)
	s.scheduleAfterUpdate(rm)
}
