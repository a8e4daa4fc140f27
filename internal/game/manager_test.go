package game

import (
	"context"
	"testing"

	"github.com/legionhq/legion-server/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager() *Manager {
	store := deck.NewStaticStore(deck.DemoDeck("deck-1"), deck.DemoDeck("deck-2"))
	return NewManager(store, DefaultRules(), zap.NewNop())
}

func TestManagerStartGame(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	require.NoError(t, m.StartGame(ctx, "room-1", SeatP1, "Alice", "deck-1", false))
	require.NoError(t, m.StartGame(ctx, "room-1", SeatP2, "Bob", "deck-2", false))
	assert.Equal(t, 1, m.ActiveGameCount())

	ok := m.With("room-1", func(g *Game) {
		assert.Equal(t, "Alice", g.Player(SeatP1).Name)
		assert.Equal(t, "Bob", g.Player(SeatP2).Name)
		assert.Equal(t, PhaseRPS, g.Phase)
	})
	assert.True(t, ok)
}

func TestManagerStartGameUnknownDeck(t *testing.T) {
	m := newTestManager()
	err := m.StartGame(context.Background(), "room-1", SeatP1, "Alice", "missing", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, deck.ErrNotFound)
	assert.Zero(t, m.ActiveGameCount())
}

func TestManagerWithUnknownRoom(t *testing.T) {
	m := newTestManager()
	called := false
	ok := m.With("nope", func(*Game) { called = true })
	assert.False(t, ok)
	assert.False(t, called)
}

func TestManagerReset(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	require.NoError(t, m.StartGame(ctx, "room-1", SeatP1, "Alice", "deck-1", false))
	require.NoError(t, m.StartGame(ctx, "room-1", SeatP2, "Bob", "deck-2", false))

	m.With("room-1", func(g *Game) {
		g.SetRPSChoice(SeatP1, RPSRock)
		g.SetRPSChoice(SeatP2, RPSScissors)
		g.ChangeHealth(SeatP1, -7)
	})

	require.NoError(t, m.Reset(ctx, "room-1"))
	m.With("room-1", func(g *Game) {
		assert.Equal(t, PhaseRPS, g.Phase)
		assert.Equal(t, 20, g.Player(SeatP1).Health)
		assert.Equal(t, "Alice", g.Player(SeatP1).Name)
		assert.Len(t, g.Log, 2) // just the two fresh setup lines
		assert.Len(t, g.Player(SeatP1).Zones.Pile(ZoneHand), 6)
	})
}

func TestManagerRemove(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.StartGame(context.Background(), "room-1", SeatP1, "Alice", "deck-1", true))
	m.Remove("room-1")
	assert.Zero(t, m.ActiveGameCount())
	assert.False(t, m.With("room-1", func(*Game) {}))
}
