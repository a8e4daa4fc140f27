package game

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Rules carries the room-scoped tunables fixed at creation.
type Rules struct {
	MultiZoneWidth int
	OpeningHand    int
	StartingHealth int
	StartingAP     int
}

// DefaultRules returns the standard game parameters.
func DefaultRules() Rules {
	return Rules{
		MultiZoneWidth: 5,
		OpeningHand:    6,
		StartingHealth: 20,
		StartingAP:     1,
	}
}

// LogEntry is one line of the append-only audit log.
type LogEntry struct {
	At   time.Time `json:"at"`
	Kind string    `json:"kind"`
	Text string    `json:"text"`
}

// PlayerState is one player's half of the game: zones, scalar resources
// and the per-player UI mirrors (viewing, selected card).
type PlayerState struct {
	Name   string `json:"name"`
	DeckID string `json:"-"`

	Health int `json:"health"`
	AP     int `json:"ap"`

	// Mulligan bookkeeping for the pre-game phases.
	MulliganDecided bool `json:"mulliganDecided"`
	Mulliganed      bool `json:"mulliganed"`

	// Viewing names the opponent pile this player is inspecting, for
	// the client overlay; empty when not viewing.
	Viewing string `json:"viewing,omitempty"`

	// Selected is the card id this player has highlighted; zero when
	// nothing is selected.
	Selected int64 `json:"selected,omitempty"`

	Zones *PlayerZones `json:"-"`
}

// Game is the authoritative state of one room's match. All mutation goes
// through the room's serialized entry point (Manager.With); methods
// assume that serialization and take no internal locks.
type Game struct {
	RoomID  string
	Rules   Rules
	Sandbox bool

	Phase   Phase
	Turn    int
	RPS     RPSState
	Winner  Seat // RPS winner; SeatNone until decided
	Players map[Seat]*PlayerState

	Sequences   []*Sequence
	Resolving   bool
	Conscripted bool // one conscription per turn

	Log []LogEntry

	// halted is set when Advance hits a phase with no successor; no
	// further automatic phase movement happens after that.
	halted bool
	// enteredCycle flips once the in-game cycle has begun, so turn
	// counting can tell the first countdown from a new cycle.
	enteredCycle bool

	rng        *rand.Rand
	nextCardID int64
	logger     *zap.Logger
}

// NewGame builds an empty game for a room. Player sides are attached as
// their decks resolve (see AttachPlayer).
func NewGame(roomID string, rules Rules, sandbox bool, logger *zap.Logger) *Game {
	return &Game{
		RoomID:  roomID,
		Rules:   rules,
		Sandbox: sandbox,
		Phase:   PhaseRPS,
		Turn:    1,
		RPS:     RPSState{},
		Players: make(map[Seat]*PlayerState),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:  logger,
	}
}

// Player returns the state for a seat, or nil for spectators and seats
// that have not joined.
func (g *Game) Player(seat Seat) *PlayerState {
	return g.Players[seat]
}

// ActiveSeat returns the seat acting in the current phase, or SeatNone
// for shared phases (RPS, PostMulliganDraw).
func (g *Game) ActiveSeat() Seat {
	return g.Phase.Seat()
}

// newCardID allocates the next card id. Ids are monotonic for the life
// of the game and never reused, including across mulligan redeals.
func (g *Game) newCardID() int64 {
	g.nextCardID++
	return g.nextCardID
}

// logf appends a line to the audit log.
func (g *Game) logf(kind, format string, args ...any) {
	entry := LogEntry{At: time.Now(), Kind: kind, Text: fmt.Sprintf(format, args...)}
	g.Log = append(g.Log, entry)
	if g.logger != nil {
		g.logger.Debug("game log",
			zap.String("room_id", g.RoomID),
			zap.String("kind", kind),
			zap.String("text", entry.Text),
		)
	}
}

// FindCard scans every zone of every player for a card id. Returns the
// card and its location, or nil when absent anywhere.
func (g *Game) FindCard(id int64) (*Card, ZoneRef) {
	for seat, ps := range g.Players {
		var found *Card
		var at ZoneRef
		ps.Zones.ForEachPile(func(z ZoneID, col int, cards []*Card) {
			if found != nil {
				return
			}
			for _, c := range cards {
				if c.ID == id {
					found = c
					at = ZoneRef{Owner: seat, Zone: z, Column: col}
					return
				}
			}
		})
		if found != nil {
			return found, at
		}
	}
	return nil, ZoneRef{}
}

// ==================== Broadcast snapshot ====================

// ZoneView is one pile (or set of columns) as the client sees it.
type ZoneView struct {
	Cards   []*Card   `json:"cards,omitempty"`
	Columns [][]*Card `json:"columns,omitempty"`
}

// PlayerView is one player's half of the broadcast state.
type PlayerView struct {
	Name            string              `json:"name"`
	Health          int                 `json:"health"`
	AP              int                 `json:"ap"`
	MulliganDecided bool                `json:"mulliganDecided"`
	Mulliganed      bool                `json:"mulliganed"`
	Viewing         string              `json:"viewing,omitempty"`
	Selected        int64               `json:"selected,omitempty"`
	Zones           map[string]ZoneView `json:"zones"`
}

// Snapshot is the full authoritative state re-emitted to the room after
// every action. It is always complete, never a diff.
type Snapshot struct {
	RoomID      string                 `json:"roomId"`
	Sandbox     bool                   `json:"sandboxMode"`
	Phase       string                 `json:"phase"`
	ActiveSeat  Seat                   `json:"activeSeat"`
	Turn        int                    `json:"turn"`
	RPS         RPSView                `json:"rps"`
	Winner      Seat                   `json:"rpsWinner"`
	Resolving   bool                   `json:"resolving"`
	Conscripted bool                   `json:"conscriptedThisTurn"`
	Players     map[string]*PlayerView `json:"players"`
	Sequences   []*Sequence            `json:"sequences"`
	Log         []LogEntry             `json:"log"`
}

// Snapshot assembles the broadcast view. Card pointers are shared with
// live state; the caller must serialize before releasing the room.
func (g *Game) Snapshot() *Snapshot {
	snap := &Snapshot{
		RoomID:      g.RoomID,
		Sandbox:     g.Sandbox,
		Phase:       g.Phase.String(),
		ActiveSeat:  g.ActiveSeat(),
		Turn:        g.Turn,
		RPS:         g.RPS.view(),
		Winner:      g.Winner,
		Resolving:   g.Resolving,
		Conscripted: g.Conscripted,
		Players:     make(map[string]*PlayerView, len(g.Players)),
		Sequences:   g.Sequences,
		Log:         g.Log,
	}
	for seat, ps := range g.Players {
		pv := &PlayerView{
			Name:            ps.Name,
			Health:          ps.Health,
			AP:              ps.AP,
			MulliganDecided: ps.MulliganDecided,
			Mulliganed:      ps.Mulliganed,
			Viewing:         ps.Viewing,
			Selected:        ps.Selected,
			Zones:           make(map[string]ZoneView),
		}
		for z, shape := range zoneShapes {
			switch shape {
			case ShapeSingle:
				pv.Zones[z.String()] = ZoneView{Cards: ps.Zones.Pile(z)}
			case ShapeMulti:
				cols := make([][]*Card, ps.Zones.Width())
				for i := range cols {
					cols[i] = ps.Zones.Column(z, i)
				}
				pv.Zones[z.String()] = ZoneView{Columns: cols}
			}
		}
		snap.Players[seat.String()] = pv
	}
	return snap
}
