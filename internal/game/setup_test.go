package game

import (
	"testing"

	"github.com/legionhq/legion-server/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAttachPlayerLayout(t *testing.T) {
	g := NewGame("room", DefaultRules(), false, zap.NewNop())
	g.AttachPlayer(SeatP1, "Alice", deck.DemoDeck("deck-1"))

	ps := g.Player(SeatP1)
	require.NotNil(t, ps)
	assert.Equal(t, "Alice", ps.Name)
	assert.Equal(t, 20, ps.Health)
	assert.Equal(t, 1, ps.AP)

	// 30 deck-type cards minus the opening hand of 6.
	assert.Len(t, ps.Zones.Pile(ZoneHand), 6)
	assert.Len(t, ps.Zones.Pile(ZoneDeck), 24)

	// Role cards sit isolated in their zones, not in the deck.
	for _, z := range []ZoneID{ZoneWarlord, ZoneGuardian, ZoneVeilRealm, ZoneSynergy} {
		require.Len(t, ps.Zones.Pile(z), 1, "zone %s", z)
	}
	assert.Equal(t, CardTypeWarlord, ps.Zones.Pile(ZoneWarlord)[0].Type)
	assert.Equal(t, 3, ps.Zones.Pile(ZoneVeilRealm)[0].Cooldown)

	for _, c := range ps.Zones.Pile(ZoneDeck) {
		assert.True(t, c.Type.IsDeckType(), "%s leaked into the deck", c.Type)
	}
}

func TestAttachPlayerResolvesEffects(t *testing.T) {
	g := NewGame("room", DefaultRules(), false, zap.NewNop())
	g.AttachPlayer(SeatP2, "Bob", deck.DemoDeck("deck-2"))
	ps := g.Player(SeatP2)

	guardian := ps.Zones.Pile(ZoneGuardian)[0]
	require.Len(t, guardian.effectsOf(TriggerPreGame), 1)
	assert.Equal(t, "guardiansBlessing", guardian.effectsOf(TriggerPreGame)[0].Name)

	veil := ps.Zones.Pile(ZoneVeilRealm)[0]
	require.Len(t, veil.effectsOf(TriggerCountdown), 1)

	withKeyword := 0
	for _, z := range []ZoneID{ZoneHand, ZoneDeck} {
		for _, c := range ps.Zones.Pile(z) {
			withKeyword += len(c.effectsOf(TriggerConscript))
		}
	}
	assert.Equal(t, 5, withKeyword)
}

func TestAttachPlayerRejectsSpectator(t *testing.T) {
	g := NewGame("room", DefaultRules(), false, zap.NewNop())
	g.AttachPlayer(SeatNone, "Ghost", deck.DemoDeck("deck-1"))
	assert.Nil(t, g.Player(SeatNone))
}

func TestCardIDsMonotonic(t *testing.T) {
	g := newTestGame(false)
	ids := allCardIDs(g)
	require.Len(t, ids, 68)

	seen := make(map[int64]bool, len(ids))
	var max int64
	for _, id := range ids {
		require.False(t, seen[id])
		seen[id] = true
		if id > max {
			max = id
		}
	}
	assert.Equal(t, int64(68), max)

	// A fresh card after a mulligan redeal still gets an unseen id.
	g.SetRPSChoice(SeatP1, RPSRock)
	g.SetRPSChoice(SeatP2, RPSScissors)
	g.Mulligan(SeatP1, true)
	g.Mulligan(SeatP2, true)
	assert.Greater(t, g.newCardID(), max)
}
