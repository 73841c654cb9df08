package server

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfelt/holdem/internal/game"
)

func TestTurnTimerAutoFolds(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mockClock := quartz.NewMock(t)
	m, rm, _, _ := activeRoom(t)
	srv := NewServer(DefaultConfig(), m, mockClock, testLogger())

	// Heads up: seat 1 is due to act. Arm its turn timer and let it lapse.
	srv.scheduleAfterUpdate(rm)
	mockClock.Advance(30 * time.Second).MustWait(ctx)

	got, err := m.GetRoom(rm.ID)
	require.NoError(t, err)
	assert.True(t, got.State.Seats[1].Folded)
	assert.Equal(t, game.Showdown, got.State.Phase)
}

func TestTurnTimerStaleAfterAction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mockClock := quartz.NewMock(t)
	m, rm, _, seat1 := activeRoom(t)
	srv := NewServer(DefaultConfig(), m, mockClock, testLogger())

	srv.scheduleAfterUpdate(rm)

	// The player acts before the timer lapses; the server doesn't hear
	// about it, so the timer still fires and must be a no-op.
	_, err := m.Act(rm.ID, seat1, game.Call, 0)
	require.NoError(t, err)

	mockClock.Advance(30 * time.Second).MustWait(ctx)

	got, err := m.GetRoom(rm.ID)
	require.NoError(t, err)
	assert.False(t, got.State.Seats[1].Folded)
	assert.Equal(t, game.PreFlop, got.State.Phase)
}

func TestStreetAdvanceAfterPause(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mockClock := quartz.NewMock(t)
	m, rm, seat0, seat1 := activeRoom(t)
	srv := NewServer(DefaultConfig(), m, mockClock, testLogger())

	rm, err := m.Act(rm.ID, seat1, game.Call, 0)
	require.NoError(t, err)
	rm, err = m.Act(rm.ID, seat0, game.Check, 0)
	require.NoError(t, err)
	require.True(t, rm.State.StreetResolved)

	srv.scheduleAfterUpdate(rm)
	mockClock.Advance(2 * time.Second).MustWait(ctx)

	got, err := m.GetRoom(rm.ID)
	require.NoError(t, err)
	assert.Equal(t, game.Flop, got.State.Phase)
	assert.Len(t, got.State.Board, 3)
	assert.False(t, got.State.StreetResolved)

	// The advance rearms the turn timer for the seat now due to act.
	mockClock.Advance(30 * time.Second).MustWait(ctx)

	got, err = m.GetRoom(rm.ID)
	require.NoError(t, err)
	assert.Equal(t, game.Showdown, got.State.Phase)
	assert.Equal(t, 1, got.State.LiveSeats())
}

func TestManualAdvanceDisarmsScheduledOne(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mockClock := quartz.NewMock(t)
	m, rm, seat0, seat1 := activeRoom(t)
	srv := NewServer(DefaultConfig(), m, mockClock, testLogger())

	rm, err := m.Act(rm.ID, seat1, game.Call, 0)
	require.NoError(t, err)
	rm, err = m.Act(rm.ID, seat0, game.Check, 0)
	require.NoError(t, err)

	srv.scheduleAfterUpdate(rm)

	// A manual advance lands during the pause; the scheduled one then
	// finds the street no longer resolved and backs off.
	_, err = m.AdvanceStreet(rm.ID)
	require.NoError(t, err)

	mockClock.Advance(2 * time.Second).MustWait(ctx)

	got, err := m.GetRoom(rm.ID)
	require.NoError(t, err)
	assert.Equal(t, game.Flop, got.State.Phase)
	assert.Len(t, got.State.Board, 3)
}

func TestShutdownCancelsPendingStreetAdvance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mockClock := quartz.NewMock(t)
	m, rm, seat0, seat1 := activeRoom(t)
	srv := NewServer(DefaultConfig(), m, mockClock, testLogger())

	rm, err := m.Act(rm.ID, seat1, game.Call, 0)
	require.NoError(t, err)
	rm, err = m.Act(rm.ID, seat0, game.Check, 0)
	require.NoError(t, err)
	require.True(t, rm.State.StreetResolved)

	srv.scheduleAfterUpdate(rm)
	require.NoError(t, srv.Shutdown(ctx))

	// The pause elapses after shutdown; the cancelled timer must not
	// advance the street.
	mockClock.Advance(2 * time.Second).MustWait(ctx)

	got, err := m.GetRoom(rm.ID)
	require.NoError(t, err)
	assert.Equal(t, game.PreFlop, got.State.Phase)
	assert.Empty(t, got.State.Board)
}
