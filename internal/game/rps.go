package game

import "encoding/json"

// RPSChoice is one player's rock-paper-scissors throw.
type RPSChoice int

const (
	RPSNone RPSChoice = iota
	RPSRock
	RPSPaper
	RPSScissors
)

var rpsNames = map[RPSChoice]string{
	RPSNone:     "",
	RPSRock:     "rock",
	RPSPaper:    "paper",
	RPSScissors: "scissors",
}

func (c RPSChoice) String() string { return rpsNames[c] }

// MarshalJSON serializes the choice as its wire name.
func (c RPSChoice) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// ParseRPSChoice resolves a wire choice name.
func ParseRPSChoice(name string) (RPSChoice, bool) {
	for c, n := range rpsNames {
		if c != RPSNone && n == name {
			return c, true
		}
	}
	return RPSNone, false
}

// beats reports whether c wins against other.
func (c RPSChoice) beats(other RPSChoice) bool {
	switch c {
	case RPSRock:
		return other == RPSScissors
	case RPSPaper:
		return other == RPSRock
	case RPSScissors:
		return other == RPSPaper
	}
	return false
}

// RPSState holds both players' throws for the current flip.
type RPSState struct {
	P1 RPSChoice
	P2 RPSChoice
}

// RPSView is the broadcast form: choices are masked until both landed
// so a client cannot peek at the opponent's throw.
type RPSView struct {
	P1Chosen bool   `json:"p1Chosen"`
	P2Chosen bool   `json:"p2Chosen"`
	P1       string `json:"p1,omitempty"`
	P2       string `json:"p2,omitempty"`
}

func (s RPSState) view() RPSView {
	v := RPSView{
		P1Chosen: s.P1 != RPSNone,
		P2Chosen: s.P2 != RPSNone,
	}
	if v.P1Chosen && v.P2Chosen {
		v.P1 = s.P1.String()
		v.P2 = s.P2.String()
	}
	return v
}

// SetRPSChoice records a throw. Once both sides have thrown the flip
// resolves: a tie clears both choices for a rethrow; a win fixes the
// successor table and advances out of the RPS phase.
func (g *Game) SetRPSChoice(seat Seat, choice RPSChoice) {
	if g.Phase != PhaseRPS || choice == RPSNone {
		return
	}
	switch seat {
	case SeatP1:
		g.RPS.P1 = choice
	case SeatP2:
		g.RPS.P2 = choice
	default:
		return
	}
	if g.RPS.P1 == RPSNone || g.RPS.P2 == RPSNone {
		return
	}

	p1, p2 := g.RPS.P1, g.RPS.P2
	switch {
	case p1 == p2:
		g.RPS = RPSState{}
		g.logf("rps", "Tie")
	case p1.beats(p2):
		g.Winner = SeatP1
		g.logf("rps", "%s wins the flip (%s beats %s)", g.playerName(SeatP1), p1, p2)
		g.Advance()
	default:
		g.Winner = SeatP2
		g.logf("rps", "%s wins the flip (%s beats %s)", g.playerName(SeatP2), p2, p1)
		g.Advance()
	}
}
