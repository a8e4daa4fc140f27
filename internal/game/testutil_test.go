package game

import (
	"github.com/legionhq/legion-server/internal/deck"
	"go.uber.org/zap"
)

// newTestGame seats two players from the demo deck. The demo deck holds
// 15 Warriors, 8 Unified and 7 Fortified (30 deck cards) plus the four
// role cards.
func newTestGame(sandbox bool) *Game {
	g := NewGame("test-room", DefaultRules(), sandbox, zap.NewNop())
	g.AttachPlayer(SeatP1, "Alice", deck.DemoDeck("deck-1"))
	g.AttachPlayer(SeatP2, "Bob", deck.DemoDeck("deck-2"))
	return g
}

// allCardIDs scans every zone of every player, returning each card id
// once per slot it occupies.
func allCardIDs(g *Game) []int64 {
	var ids []int64
	for _, seat := range []Seat{SeatP1, SeatP2} {
		ps := g.Player(seat)
		if ps == nil {
			continue
		}
		ps.Zones.ForEachPile(func(_ ZoneID, _ int, cards []*Card) {
			for _, c := range cards {
				ids = append(ids, c.ID)
			}
		})
	}
	return ids
}
