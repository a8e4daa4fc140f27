package game

import (
	"encoding/json"
	"fmt"
)

// Party names a participant of an effect relative to the resolving item.
type Party int

const (
	PartyController Party = iota
	PartyOpponent
	PartyP1
	PartyP2
)

var partyNames = map[Party]string{
	PartyController: "controller",
	PartyOpponent:   "opponent",
	PartyP1:         "p1",
	PartyP2:         "p2",
}

func (p Party) String() string {
	if name, ok := partyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PARTY_%d", int(p))
}

// MarshalJSON serializes the party as its wire name.
func (p Party) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// Resolve maps the party onto a concrete seat given the controller of
// the resolving item.
func (p Party) Resolve(controller Seat) Seat {
	switch p {
	case PartyController:
		return controller
	case PartyOpponent:
		return controller.Opponent()
	case PartyP1:
		return SeatP1
	case PartyP2:
		return SeatP2
	}
	return SeatNone
}

// StepKind tags the EffectStep variant.
type StepKind int

const (
	StepNone StepKind = iota
	StepChooseCards
	StepMoveCard
	StepDrawCard
	StepChangeHealth
	StepChangeAP
	StepShuffle
	StepConscript
)

var stepKindNames = map[StepKind]string{
	StepNone:         "none",
	StepChooseCards:  "chooseCards",
	StepMoveCard:     "moveCard",
	StepDrawCard:     "drawCard",
	StepChangeHealth: "changeHealth",
	StepChangeAP:     "changeAP",
	StepShuffle:      "shuffle",
	StepConscript:    "conscript",
}

func (k StepKind) String() string {
	if name, ok := stepKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("STEP_%d", int(k))
}

// MarshalJSON serializes the kind as its wire name.
func (k StepKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// QuantitySelected marks a MoveCard step whose count is taken from the
// preceding selection instead of moving the selected cards themselves.
const QuantitySelected = "selected"

// EffectStep is one atomic operation inside a cost or effect list. Only
// the fields relevant to the tagged kind are meaningful; the rest stay
// at their zero value.
type EffectStep struct {
	Kind StepKind `json:"kind"`

	// ChooseCards: ask Who to pick SelectMin..SelectMax cards out of the
	// From zones. Owner SeatNone inside a ref reads as "the controller".
	Who       []Party   `json:"who,omitempty"`
	SelectMin int       `json:"selectMin,omitempty"`
	SelectMax int       `json:"selectMax,omitempty"`
	From      []ZoneRef `json:"from,omitempty"`

	// MoveCard: Quantity "selected" draws one card per selected card;
	// otherwise each selection moves to its own submitted target.
	Quantity string `json:"quantity,omitempty"`

	// DrawCard / ChangeHealth / ChangeAP: Player's resource or deck,
	// Amount as count or signed delta. Random rerolls each draw's
	// position against the current deck size.
	Player Party `json:"player,omitempty"`
	Amount int   `json:"amount,omitempty"`
	Random bool  `json:"random,omitempty"`

	// Shuffle target.
	Zone ZoneRef `json:"zone,omitzero"`

	// Conscript: play CardID from the controller's hand into Column of
	// their Warriors multi-zone.
	CardID int64 `json:"cardId,omitempty"`
	Column int   `json:"column,omitempty"`
}

// TriggerKind states when an attached effect descriptor fires.
type TriggerKind int

const (
	// TriggerNone never fires on its own; the effect is activated by
	// another step.
	TriggerNone TriggerKind = iota
	// TriggerConscript fires when the card is conscripted, subject to
	// the descriptor's column-size condition.
	TriggerConscript
	// TriggerPreGame fires during the owner's Guardian phase.
	TriggerPreGame
	// TriggerCountdown fires when the VeilRealm card's cooldown reaches
	// zero during the owner's Countdown phase.
	TriggerCountdown
)

// EffectDef is an effect descriptor attachable to a card: a named
// trigger plus the cost/effect step lists queued when it fires.
type EffectDef struct {
	Name    string
	Trigger TriggerKind

	// Conscript triggers fire only while the destination column size
	// (including the entering card) lies inside [MinColumn, MaxColumn].
	// MaxColumn 0 means unbounded.
	MinColumn int
	MaxColumn int

	Cost   []EffectStep
	Effect []EffectStep
}

// holds reports whether the descriptor's size condition is met for a
// column of the given size.
func (d EffectDef) holds(columnSize int) bool {
	if columnSize < d.MinColumn {
		return false
	}
	if d.MaxColumn > 0 && columnSize > d.MaxColumn {
		return false
	}
	return true
}

// effectCatalog maps descriptor names from the deck store onto concrete
// definitions. This is the generic effect-step vocabulary exercised by a
// handful of sample effects; a full per-card rules catalog is out of
// scope.
var effectCatalog = map[string]EffectDef{
	"rallyCry": {
		Name:      "rallyCry",
		Trigger:   TriggerConscript,
		MinColumn: 2,
		Effect: []EffectStep{
			{Kind: StepChangeAP, Player: PartyController, Amount: 1},
		},
	},
	"plunderer": {
		Name:      "plunderer",
		Trigger:   TriggerConscript,
		MinColumn: 3,
		Effect: []EffectStep{
			{Kind: StepDrawCard, Player: PartyController, Amount: 1},
		},
	},
	"lastStand": {
		Name:      "lastStand",
		Trigger:   TriggerConscript,
		MinColumn: 5,
		MaxColumn: 5,
		Effect: []EffectStep{
			{Kind: StepChangeHealth, Player: PartyController, Amount: 2},
		},
	},
	"scoutAhead": {
		Name:    "scoutAhead",
		Trigger: TriggerPreGame,
		Effect: []EffectStep{
			{
				Kind:      StepChooseCards,
				Who:       []Party{PartyController},
				SelectMin: 0,
				SelectMax: 2,
				From:      []ZoneRef{{Zone: ZoneDeck}},
			},
			{Kind: StepMoveCard, Quantity: QuantitySelected},
			{Kind: StepShuffle, Zone: ZoneRef{Zone: ZoneDeck}},
		},
	},
	"guardiansBlessing": {
		Name:    "guardiansBlessing",
		Trigger: TriggerPreGame,
		Effect: []EffectStep{
			{Kind: StepChangeHealth, Player: PartyController, Amount: 3},
		},
	},
	"veilSurge": {
		Name:    "veilSurge",
		Trigger: TriggerCountdown,
		Effect: []EffectStep{
			{Kind: StepDrawCard, Player: PartyController, Amount: 2},
			{Kind: StepChangeAP, Player: PartyController, Amount: 1},
		},
	},
}

// LookupEffect resolves a descriptor name from the catalog.
func LookupEffect(name string) (EffectDef, bool) {
	def, ok := effectCatalog[name]
	return def, ok
}
