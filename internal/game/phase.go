package game

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Phase enumerates the pre-game sequence plus the per-player in-game
// cycle. In-game phases carry their acting seat so the whole turn order
// is a flat successor lookup.
type Phase int

const (
	PhaseRPS Phase = iota
	PhaseP1Mulligan
	PhaseP2Mulligan
	PhasePostMulliganDraw
	PhaseP1Guardian
	PhaseP2Guardian
	PhaseP1PreGame
	PhaseP2PreGame

	PhaseP1Countdown
	PhaseP1Reinforce
	PhaseP1War
	PhaseP1EndOfWar
	PhaseP1End
	PhaseP1EndOfTurn

	PhaseP2Countdown
	PhaseP2Reinforce
	PhaseP2War
	PhaseP2EndOfWar
	PhaseP2End
	PhaseP2EndOfTurn
)

var phaseNames = map[Phase]string{
	PhaseRPS:              "rps",
	PhaseP1Mulligan:       "p1Mulligan",
	PhaseP2Mulligan:       "p2Mulligan",
	PhasePostMulliganDraw: "postMulliganDraw",
	PhaseP1Guardian:       "p1Guardian",
	PhaseP2Guardian:       "p2Guardian",
	PhaseP1PreGame:        "p1PreGame",
	PhaseP2PreGame:        "p2PreGame",
	PhaseP1Countdown:      "p1Countdown",
	PhaseP1Reinforce:      "p1Reinforce",
	PhaseP1War:            "p1War",
	PhaseP1EndOfWar:       "p1EndOfWar",
	PhaseP1End:            "p1End",
	PhaseP1EndOfTurn:      "p1EndOfTurn",
	PhaseP2Countdown:      "p2Countdown",
	PhaseP2Reinforce:      "p2Reinforce",
	PhaseP2War:            "p2War",
	PhaseP2EndOfWar:       "p2EndOfWar",
	PhaseP2End:            "p2End",
	PhaseP2EndOfTurn:      "p2EndOfTurn",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// MarshalJSON serializes the phase as its wire name.
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// Seat returns the acting seat of a phase, or SeatNone for the shared
// pre-game phases.
func (p Phase) Seat() Seat {
	switch p {
	case PhaseP1Mulligan, PhaseP1Guardian, PhaseP1PreGame,
		PhaseP1Countdown, PhaseP1Reinforce, PhaseP1War,
		PhaseP1EndOfWar, PhaseP1End, PhaseP1EndOfTurn:
		return SeatP1
	case PhaseP2Mulligan, PhaseP2Guardian, PhaseP2PreGame,
		PhaseP2Countdown, PhaseP2Reinforce, PhaseP2War,
		PhaseP2EndOfWar, PhaseP2End, PhaseP2EndOfTurn:
		return SeatP2
	default:
		return SeatNone
	}
}

// phaseNeedsAction lists the phases that stop the advance cascade until
// a human acts (or, for RPS/mulligans, until the matching event lands).
var phaseNeedsAction = map[Phase]bool{
	PhaseRPS:        true,
	PhaseP1Mulligan: true,
	PhaseP2Mulligan: true,
	PhaseP1PreGame:  true,
	PhaseP2PreGame:  true,
	PhaseP1War:      true,
	PhaseP2War:      true,
}

// phaseParksOnSequence lists the phases that park on a pending Sequence
// instead of auto-continuing; the resolver nudges the machine forward
// once the queue drains.
var phaseParksOnSequence = map[Phase]bool{
	PhaseP1Guardian:  true,
	PhaseP2Guardian:  true,
	PhaseP1Countdown: true,
	PhaseP2Countdown: true,
}

// The two successor tables, selected by the RPS winner. The loser's
// pre-game half is reordered relative to the winner's; the in-game cycle
// starts with the winner and alternates each full cycle.
var successorsP1Wins = map[Phase]Phase{
	PhaseRPS:              PhaseP1Mulligan,
	PhaseP1Mulligan:       PhaseP2Mulligan,
	PhaseP2Mulligan:       PhasePostMulliganDraw,
	PhasePostMulliganDraw: PhaseP1Guardian,
	PhaseP1Guardian:       PhaseP2Guardian,
	PhaseP2Guardian:       PhaseP1PreGame,
	PhaseP1PreGame:        PhaseP2PreGame,
	PhaseP2PreGame:        PhaseP1Countdown,

	PhaseP1Countdown: PhaseP1Reinforce,
	PhaseP1Reinforce: PhaseP1War,
	PhaseP1War:       PhaseP1EndOfWar,
	PhaseP1EndOfWar:  PhaseP1End,
	PhaseP1End:       PhaseP1EndOfTurn,
	PhaseP1EndOfTurn: PhaseP2Countdown,

	PhaseP2Countdown: PhaseP2Reinforce,
	PhaseP2Reinforce: PhaseP2War,
	PhaseP2War:       PhaseP2EndOfWar,
	PhaseP2EndOfWar:  PhaseP2End,
	PhaseP2End:       PhaseP2EndOfTurn,
	PhaseP2EndOfTurn: PhaseP1Countdown,
}

var successorsP2Wins = map[Phase]Phase{
	PhaseRPS:              PhaseP2Mulligan,
	PhaseP2Mulligan:       PhaseP1Mulligan,
	PhaseP1Mulligan:       PhasePostMulliganDraw,
	PhasePostMulliganDraw: PhaseP2Guardian,
	PhaseP2Guardian:       PhaseP1Guardian,
	PhaseP1Guardian:       PhaseP2PreGame,
	PhaseP2PreGame:        PhaseP1PreGame,
	PhaseP1PreGame:        PhaseP2Countdown,

	PhaseP2Countdown: PhaseP2Reinforce,
	PhaseP2Reinforce: PhaseP2War,
	PhaseP2War:       PhaseP2EndOfWar,
	PhaseP2EndOfWar:  PhaseP2End,
	PhaseP2End:       PhaseP2EndOfTurn,
	PhaseP2EndOfTurn: PhaseP1Countdown,

	PhaseP1Countdown: PhaseP1Reinforce,
	PhaseP1Reinforce: PhaseP1War,
	PhaseP1War:       PhaseP1EndOfWar,
	PhaseP1EndOfWar:  PhaseP1End,
	PhaseP1End:       PhaseP1EndOfTurn,
	PhaseP1EndOfTurn: PhaseP2Countdown,
}

// successors returns the active successor table. Before the coin flip is
// decided only PhaseRPS is current, and that entry is identical in both
// tables, so defaulting to the p1 table is inert.
func (g *Game) successors() map[Phase]Phase {
	if g.Winner == SeatP2 {
		return successorsP2Wins
	}
	return successorsP1Wins
}

// Advance moves the phase pointer one step and runs the new phase's
// entry effects, then keeps cascading until it reaches a phase that
// needs human action, a pending Sequence, or — in sandbox mode — until
// one change has happened. A phase with no successor logs and halts.
func (g *Game) Advance() {
	if g.halted {
		return
	}
	for {
		next, ok := g.successors()[g.Phase]
		if !ok {
			// Unhandled/terminal phase. Stop moving rather than guess.
			g.halted = true
			g.logger.Error("no successor for phase",
				zap.String("room_id", g.RoomID),
				zap.String("phase", g.Phase.String()),
			)
			return
		}
		g.Phase = next
		g.logf("phase", "phase is now %s", next)
		g.enterPhase(next)

		if g.Sandbox {
			// Sandbox freezes auto-advance after the first change, but a
			// queued entry sequence still resolves (selection steps are
			// waived there, so this never parks).
			g.resolveQueue()
			return
		}
		if len(g.Sequences) > 0 && phaseParksOnSequence[next] {
			if !g.resolveQueue() {
				// Parked on player input; the resume path re-advances.
				return
			}
		}
		if phaseNeedsAction[next] {
			return
		}
	}
}

// enterPhase runs a phase's entry effects.
func (g *Game) enterPhase(p Phase) {
	seat := p.Seat()
	switch p {
	case PhasePostMulliganDraw:
		g.redealMulligans()

	case PhaseP1Guardian, PhaseP2Guardian:
		g.queueGuardianSequence(seat)

	case PhaseP1Countdown, PhaseP2Countdown:
		g.Turn = g.turnOnEnterCountdown(seat)
		g.Conscripted = false
		g.tickCountdown(seat)

	case PhaseP1Reinforce, PhaseP2Reinforce:
		// The first turn of the game skips the reinforce draw.
		if g.Turn > 1 {
			g.Draw(seat, 1)
			g.logf("draw", "%s drew for reinforce", g.playerName(seat))
		}
	}
}

// turnOnEnterCountdown computes the turn number when a seat's countdown
// begins: the first countdown of the game stays at 1, every countdown of
// the seat that went first starts a new cycle.
func (g *Game) turnOnEnterCountdown(seat Seat) int {
	first := SeatP1
	if g.Winner == SeatP2 {
		first = SeatP2
	}
	if seat == first && g.enteredCycle {
		return g.Turn + 1
	}
	g.enteredCycle = true
	return g.Turn
}

// tickCountdown decrements the acting VeilRealm's cooldown. The attached
// countdown effect fires once, on the tick that reaches zero; a veil
// already at zero stays inert.
func (g *Game) tickCountdown(seat Seat) {
	ps := g.Player(seat)
	if ps == nil {
		return
	}
	pile := ps.Zones.Pile(ZoneVeilRealm)
	if len(pile) == 0 {
		return
	}
	veil := pile[0]
	if veil.Cooldown == 0 {
		return
	}
	veil.Cooldown--
	g.logf("countdown", "%s counts down to %d", veil.Name, veil.Cooldown)
	if veil.Cooldown != 0 {
		return
	}
	defs := veil.effectsOf(TriggerCountdown)
	if len(defs) == 0 {
		return
	}
	seq := &Sequence{}
	for _, def := range defs {
		seq.Items = append(seq.Items, newSequenceItem(veil.ID, seat, def))
	}
	g.Sequences = append(g.Sequences, seq)
	g.logf("effect", "%s triggers at zero", veil.Name)
}

// queueGuardianSequence starts the seat's guardian pre-game effect, if
// the guardian defines one.
func (g *Game) queueGuardianSequence(seat Seat) {
	ps := g.Player(seat)
	if ps == nil {
		return
	}
	pile := ps.Zones.Pile(ZoneGuardian)
	if len(pile) == 0 {
		return
	}
	guardian := pile[0]
	defs := guardian.effectsOf(TriggerPreGame)
	if len(defs) == 0 {
		return
	}
	seq := &Sequence{}
	for _, def := range defs {
		seq.Items = append(seq.Items, newSequenceItem(guardian.ID, seat, def))
	}
	g.Sequences = append(g.Sequences, seq)
	g.logf("effect", "%s's pre-game effect triggers", guardian.Name)
}

func (g *Game) playerName(seat Seat) string {
	if ps := g.Player(seat); ps != nil {
		return ps.Name
	}
	return seat.String()
}
