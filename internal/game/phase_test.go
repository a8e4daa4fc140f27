package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessorTablesCoverEveryPhase(t *testing.T) {
	for p := PhaseRPS; p <= PhaseP2EndOfTurn; p++ {
		if _, ok := successorsP1Wins[p]; !ok {
			t.Errorf("p1 table has no successor for %s", p)
		}
		if _, ok := successorsP2Wins[p]; !ok {
			t.Errorf("p2 table has no successor for %s", p)
		}
	}
}

func TestPhaseSeat(t *testing.T) {
	tests := []struct {
		phase Phase
		seat  Seat
	}{
		{PhaseRPS, SeatNone},
		{PhasePostMulliganDraw, SeatNone},
		{PhaseP1Mulligan, SeatP1},
		{PhaseP1War, SeatP1},
		{PhaseP1EndOfTurn, SeatP1},
		{PhaseP2Guardian, SeatP2},
		{PhaseP2Countdown, SeatP2},
		{PhaseP2End, SeatP2},
	}
	for _, tt := range tests {
		if got := tt.phase.Seat(); got != tt.seat {
			t.Errorf("%s: seat = %s, want %s", tt.phase, got, tt.seat)
		}
	}
}

// advanceToPreGame plays the pre-game out with p1 winning the flip and
// both players keeping their hands.
func advanceToPreGame(t *testing.T, g *Game) {
	t.Helper()
	g.SetRPSChoice(SeatP1, RPSRock)
	g.SetRPSChoice(SeatP2, RPSScissors)
	require.Equal(t, PhaseP1Mulligan, g.Phase)
	g.Mulligan(SeatP1, false)
	require.Equal(t, PhaseP2Mulligan, g.Phase)
	g.Mulligan(SeatP2, false)
	require.Equal(t, PhaseP1PreGame, g.Phase)
}

func TestPreGameCascade(t *testing.T) {
	g := newTestGame(false)
	advanceToPreGame(t, g)

	// Both guardian phases resolved their blessings on the way through.
	assert.Equal(t, 23, g.Player(SeatP1).Health)
	assert.Equal(t, 23, g.Player(SeatP2).Health)
	assert.Empty(t, g.Sequences)
	assert.False(t, g.Resolving)
}

func TestCascadeIntoFirstWar(t *testing.T) {
	g := newTestGame(false)
	advanceToPreGame(t, g)

	// Only the acting player may push past their own pre-game phase.
	g.NextPhase(SeatP2)
	assert.Equal(t, PhaseP1PreGame, g.Phase)

	g.NextPhase(SeatP1)
	require.Equal(t, PhaseP2PreGame, g.Phase)

	handBefore := len(g.Player(SeatP1).Zones.Pile(ZoneHand))
	g.NextPhase(SeatP2)
	// Countdown ticked the veil, Reinforce skipped the turn-one draw,
	// and the cascade stopped at the acting player's war phase.
	require.Equal(t, PhaseP1War, g.Phase)
	assert.Equal(t, 1, g.Turn)
	assert.Equal(t, 2, g.Player(SeatP1).Zones.Pile(ZoneVeilRealm)[0].Cooldown)
	assert.Equal(t, handBefore, len(g.Player(SeatP1).Zones.Pile(ZoneHand)))
}

func TestTurnCountAndReinforceDraw(t *testing.T) {
	g := newTestGame(false)
	advanceToPreGame(t, g)
	g.NextPhase(SeatP1)
	g.NextPhase(SeatP2)
	require.Equal(t, PhaseP1War, g.Phase)

	// p1's end-of-turn cascades through p2's whole first turn to p2War.
	g.NextPhase(SeatP1)
	require.Equal(t, PhaseP2War, g.Phase)
	assert.Equal(t, 1, g.Turn)

	// p2's end-of-turn re-enters p1's countdown: a new cycle, turn 2,
	// and the reinforce draw happens.
	handBefore := len(g.Player(SeatP1).Zones.Pile(ZoneHand))
	g.NextPhase(SeatP2)
	require.Equal(t, PhaseP1War, g.Phase)
	assert.Equal(t, 2, g.Turn)
	assert.Equal(t, handBefore+1, len(g.Player(SeatP1).Zones.Pile(ZoneHand)))
}

func TestCountdownTriggerAtZero(t *testing.T) {
	g := newTestGame(false)
	advanceToPreGame(t, g)
	g.NextPhase(SeatP1)
	g.NextPhase(SeatP2)

	// Wind the veil down to 1 so the next countdown hits zero.
	veil := g.Player(SeatP2).Zones.Pile(ZoneVeilRealm)[0]
	veil.Cooldown = 1

	handBefore := len(g.Player(SeatP2).Zones.Pile(ZoneHand))
	apBefore := g.Player(SeatP2).AP

	g.NextPhase(SeatP1) // p1War → ... → p2Countdown fires → p2War
	require.Equal(t, PhaseP2War, g.Phase)
	assert.Zero(t, veil.Cooldown)
	assert.Equal(t, handBefore+2, len(g.Player(SeatP2).Zones.Pile(ZoneHand)))
	assert.Equal(t, apBefore+1, g.Player(SeatP2).AP)
	assert.Empty(t, g.Sequences)
}

func TestCountdownTriggerFiresOnlyOnce(t *testing.T) {
	g := newTestGame(false)
	advanceToPreGame(t, g)
	g.NextPhase(SeatP1)
	g.NextPhase(SeatP2)
	require.Equal(t, PhaseP1War, g.Phase)

	veil := g.Player(SeatP1).Zones.Pile(ZoneVeilRealm)[0]
	veil.Cooldown = 1

	// Cycle back around to p1's countdown: the tick reaches zero and
	// veilSurge fires.
	g.NextPhase(SeatP1)
	require.Equal(t, PhaseP2War, g.Phase)
	handBeforeFire := len(g.Player(SeatP1).Zones.Pile(ZoneHand))
	g.NextPhase(SeatP2)
	require.Equal(t, PhaseP1War, g.Phase)
	require.Zero(t, veil.Cooldown)
	// +2 from the effect, +1 reinforce draw (turn 2).
	assert.Equal(t, handBeforeFire+3, len(g.Player(SeatP1).Zones.Pile(ZoneHand)))

	// Next cycle the cooldown is already zero: only the reinforce draw
	// happens.
	handBefore := len(g.Player(SeatP1).Zones.Pile(ZoneHand))
	apBefore := g.Player(SeatP1).AP
	g.NextPhase(SeatP1)
	g.NextPhase(SeatP2)
	require.Equal(t, PhaseP1War, g.Phase)
	assert.Equal(t, handBefore+1, len(g.Player(SeatP1).Zones.Pile(ZoneHand)))
	assert.Equal(t, apBefore, g.Player(SeatP1).AP)
}

func TestSandboxAdvancesOneStep(t *testing.T) {
	g := newTestGame(true)

	g.NextPhase(SeatP1)
	assert.Equal(t, PhaseP1Mulligan, g.Phase)
	g.NextPhase(SeatP2) // any seat may drive a sandbox room
	assert.Equal(t, PhaseP2Mulligan, g.Phase)
	g.NextPhase(SeatP1)
	assert.Equal(t, PhasePostMulliganDraw, g.Phase)
}

func TestAdvanceHaltsWithoutSuccessor(t *testing.T) {
	g := newTestGame(false)
	g.Phase = Phase(99)

	g.Advance()
	assert.Equal(t, Phase(99), g.Phase)
	assert.True(t, g.halted)

	// Once halted the machine stays put.
	g.Advance()
	assert.Equal(t, Phase(99), g.Phase)
}

func TestMulliganRedeal(t *testing.T) {
	g := newTestGame(false)
	g.SetRPSChoice(SeatP1, RPSPaper)
	g.SetRPSChoice(SeatP2, RPSRock)
	require.Equal(t, PhaseP1Mulligan, g.Phase)

	ps := g.Player(SeatP1)
	kept := make(map[int64]bool)
	for _, c := range ps.Zones.Pile(ZoneHand) {
		kept[c.ID] = true
	}

	g.Mulligan(SeatP1, true)
	g.Mulligan(SeatP2, false)
	require.Equal(t, PhaseP1PreGame, g.Phase)

	assert.Len(t, ps.Zones.Pile(ZoneHand), g.Rules.OpeningHand)
	assert.Len(t, ps.Zones.Pile(ZoneDeck), 30-g.Rules.OpeningHand)
	assert.True(t, ps.Mulliganed)

	// No card was minted or lost by the redeal.
	assert.Len(t, allCardIDs(g), 68)
}

func TestMulliganGuards(t *testing.T) {
	g := newTestGame(false)
	// Not in a mulligan phase yet.
	g.Mulligan(SeatP1, true)
	assert.False(t, g.Player(SeatP1).MulliganDecided)

	g.SetRPSChoice(SeatP1, RPSRock)
	g.SetRPSChoice(SeatP2, RPSScissors)
	require.Equal(t, PhaseP1Mulligan, g.Phase)

	// Wrong seat for the current phase.
	g.Mulligan(SeatP2, true)
	assert.False(t, g.Player(SeatP2).MulliganDecided)
	assert.Equal(t, PhaseP1Mulligan, g.Phase)
}
