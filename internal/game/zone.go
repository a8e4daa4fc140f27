package game

import (
	"encoding/json"
	"fmt"
)

// Seat identifies which side of the table a participant occupies.
type Seat int

const (
	SeatNone Seat = iota
	SeatP1
	SeatP2
)

func (s Seat) String() string {
	switch s {
	case SeatP1:
		return "p1"
	case SeatP2:
		return "p2"
	default:
		return "spectator"
	}
}

// MarshalJSON serializes the seat as its wire name.
func (s Seat) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses a wire seat name. Anything but "p1"/"p2" reads
// as SeatNone.
func (s *Seat) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "p1":
		*s = SeatP1
	case "p2":
		*s = SeatP2
	default:
		*s = SeatNone
	}
	return nil
}

// Opponent returns the other playing seat. SeatNone maps to itself.
func (s Seat) Opponent() Seat {
	switch s {
	case SeatP1:
		return SeatP2
	case SeatP2:
		return SeatP1
	default:
		return SeatNone
	}
}

// ZoneID names one card container scoped to a single player.
type ZoneID int

const (
	ZoneHand ZoneID = iota
	ZoneDeck
	ZoneDiscard
	ZoneEradicated
	ZoneRevealed
	ZoneWarlord
	ZoneGuardian
	ZoneVeilRealm
	ZoneSynergy
	ZoneWarriors
	ZoneUnified
	ZoneFortified
)

var zoneNames = map[ZoneID]string{
	ZoneHand:       "hand",
	ZoneDeck:       "deck",
	ZoneDiscard:    "discard",
	ZoneEradicated: "eradicated",
	ZoneRevealed:   "revealed",
	ZoneWarlord:    "warlordZone",
	ZoneGuardian:   "guardianZone",
	ZoneVeilRealm:  "veilRealmZone",
	ZoneSynergy:    "synergyZone",
	ZoneWarriors:   "warriors",
	ZoneUnified:    "unified",
	ZoneFortified:  "fortified",
}

func (z ZoneID) String() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	return fmt.Sprintf("ZONE_%d", int(z))
}

// MarshalJSON serializes the zone as its wire name.
func (z ZoneID) MarshalJSON() ([]byte, error) {
	return json.Marshal(z.String())
}

// UnmarshalJSON parses a wire zone name.
func (z *ZoneID) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	id, ok := ParseZoneID(name)
	if !ok {
		return fmt.Errorf("unknown zone %q", name)
	}
	*z = id
	return nil
}

// ParseZoneID resolves a wire zone name. The second return is false for
// unrecognized names.
func ParseZoneID(name string) (ZoneID, bool) {
	for z, n := range zoneNames {
		if n == name {
			return z, true
		}
	}
	return 0, false
}

// ZoneShape distinguishes the two container layouts a zone can have.
type ZoneShape int

const (
	// ShapeSingle is one ordered pile; index 0 is the top.
	ShapeSingle ZoneShape = iota
	// ShapeMulti is a fixed-width array of independent piles, addressed
	// by column index.
	ShapeMulti
)

// zoneShapes is the static enum→shape mapping. Zone access never probes
// the container at runtime; the shape is decided here, once.
var zoneShapes = map[ZoneID]ZoneShape{
	ZoneHand:       ShapeSingle,
	ZoneDeck:       ShapeSingle,
	ZoneDiscard:    ShapeSingle,
	ZoneEradicated: ShapeSingle,
	ZoneRevealed:   ShapeSingle,
	ZoneWarlord:    ShapeSingle,
	ZoneGuardian:   ShapeSingle,
	ZoneVeilRealm:  ShapeSingle,
	ZoneSynergy:    ShapeSingle,
	ZoneWarriors:   ShapeMulti,
	ZoneUnified:    ShapeMulti,
	ZoneFortified:  ShapeMulti,
}

// Shape returns the zone's container layout.
func (z ZoneID) Shape() ZoneShape {
	return zoneShapes[z]
}

// faceUpOnEntry lists the zones that force entering cards face-up.
var faceUpOnEntry = map[ZoneID]bool{
	ZoneHand:     true,
	ZoneDeck:     true,
	ZoneDiscard:  true,
	ZoneRevealed: true,
}

// ZoneRef addresses one concrete pile: a zone owned by a seat, plus a
// column index when the zone is multi-shaped. Column is ignored for
// single zones.
type ZoneRef struct {
	Owner  Seat   `json:"owner"`
	Zone   ZoneID `json:"zone"`
	Column int    `json:"column"`
}

func (r ZoneRef) String() string {
	if r.Zone.Shape() == ShapeMulti {
		return fmt.Sprintf("%s/%s[%d]", r.Owner, r.Zone, r.Column)
	}
	return fmt.Sprintf("%s/%s", r.Owner, r.Zone)
}

// PlayerZones holds every pile belonging to one player. Shapes are fixed
// at construction; multi-zone width never changes for the life of the
// room.
type PlayerZones struct {
	singles map[ZoneID][]*Card
	multis  map[ZoneID][][]*Card
	width   int
}

// NewPlayerZones builds an empty zone set with the given multi-zone
// width.
func NewPlayerZones(width int) *PlayerZones {
	pz := &PlayerZones{
		singles: make(map[ZoneID][]*Card),
		multis:  make(map[ZoneID][][]*Card),
		width:   width,
	}
	for z, shape := range zoneShapes {
		switch shape {
		case ShapeSingle:
			pz.singles[z] = nil
		case ShapeMulti:
			pz.multis[z] = make([][]*Card, width)
		}
	}
	return pz
}

// Width returns the fixed multi-zone column count.
func (pz *PlayerZones) Width() int { return pz.width }

// Pile returns the cards in a single zone, top first. The returned slice
// is the live backing store; callers must not retain it across mutation.
func (pz *PlayerZones) Pile(z ZoneID) []*Card {
	return pz.singles[z]
}

// Column returns the cards in one column of a multi zone. Out-of-range
// columns return nil.
func (pz *PlayerZones) Column(z ZoneID, col int) []*Card {
	cols := pz.multis[z]
	if col < 0 || col >= len(cols) {
		return nil
	}
	return cols[col]
}

// setPile replaces the backing slice for the addressed pile.
func (pz *PlayerZones) setPile(z ZoneID, col int, cards []*Card) {
	switch z.Shape() {
	case ShapeSingle:
		pz.singles[z] = cards
	case ShapeMulti:
		if cols := pz.multis[z]; col >= 0 && col < len(cols) {
			cols[col] = cards
		}
	}
}

// pileAt fetches the backing slice for the addressed pile and whether
// the address was valid.
func (pz *PlayerZones) pileAt(z ZoneID, col int) ([]*Card, bool) {
	switch z.Shape() {
	case ShapeSingle:
		return pz.singles[z], true
	case ShapeMulti:
		cols := pz.multis[z]
		if col < 0 || col >= len(cols) {
			return nil, false
		}
		return cols[col], true
	}
	return nil, false
}

// ForEachPile visits every pile (single zones first, then each column of
// each multi zone) in a stable order.
func (pz *PlayerZones) ForEachPile(fn func(z ZoneID, col int, cards []*Card)) {
	for z := ZoneHand; z <= ZoneFortified; z++ {
		switch z.Shape() {
		case ShapeSingle:
			fn(z, -1, pz.singles[z])
		case ShapeMulti:
			for col, cards := range pz.multis[z] {
				fn(z, col, cards)
			}
		}
	}
}

// CardCount returns the number of cards across all piles.
func (pz *PlayerZones) CardCount() int {
	n := 0
	pz.ForEachPile(func(_ ZoneID, _ int, cards []*Card) { n += len(cards) })
	return n
}
