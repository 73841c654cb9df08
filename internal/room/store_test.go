package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfelt/holdem/internal/game"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	rm := Room{ID: "r1", CreatedAt: time.Now().UTC(), State: game.New(game.DefaultStakes())}
	require.NoError(t, s.Put(rm))

	got, err := s.Get("r1")
	require.NoError(t, err)
	assert.Equal(t, rm.ID, got.ID)

	rm.State.Pot = 40
	require.NoError(t, s.Put(rm))
	got, err = s.Get("r1")
	require.NoError(t, err)
	assert.Equal(t, 40, got.State.Pot)

	assert.Len(t, s.List(), 1)

	require.NoError(t, s.Delete("r1"))
	require.NoError(t, s.Delete("r1"))
	_, err = s.Get("r1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, s.List())
}
