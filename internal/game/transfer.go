package game

// Card zone transfer primitives. Piles are ordered top-first: index 0 is
// the top of a deck. AddCard prepends on toBottom and appends otherwise;
// MoveCard inverts the flag for a player's own deck so "to the bottom"
// lands where draws reach last.

// RemoveCard splices a card out of the addressed pile. Returns nil when
// the card is not there; a missing card is never an error so duplicate
// or racing client events stay harmless.
func (g *Game) RemoveCard(ref ZoneRef, cardID int64) *Card {
	ps := g.Player(ref.Owner)
	if ps == nil {
		return nil
	}
	cards, ok := ps.Zones.pileAt(ref.Zone, ref.Column)
	if !ok {
		return nil
	}
	for i, c := range cards {
		if c.ID == cardID {
			ps.Zones.setPile(ref.Zone, ref.Column, append(cards[:i], cards[i+1:]...))
			return c
		}
	}
	return nil
}

// AddCard places a card into the addressed pile: appended when toBottom
// is false, prepended when true.
func (g *Game) AddCard(ref ZoneRef, card *Card, toBottom bool) {
	ps := g.Player(ref.Owner)
	if ps == nil || card == nil {
		return
	}
	cards, ok := ps.Zones.pileAt(ref.Zone, ref.Column)
	if !ok {
		return
	}
	if toBottom {
		cards = append([]*Card{card}, cards...)
	} else {
		cards = append(cards, card)
	}
	ps.Zones.setPile(ref.Zone, ref.Column, cards)
}

// MoveCard composes RemoveCard and AddCard under one audit entry, plus
// the zone-entry side effects:
//
//   - cards entering a Hand, Deck, Discard or Revealed zone are forced
//     face-up;
//   - a Fortified card entering a Fortified column straight from Hand is
//     forced face-down;
//   - when the destination is the moving player's own Deck the caller's
//     bottom flag is inverted before use. Draw semantics treat index 0
//     as the top, so a literal "move to bottom" from the client must
//     not be double-inverted.
//
// A missing source card is a silent no-op. Returns whether a card moved.
func (g *Game) MoveCard(from, to ZoneRef, cardID int64, toBottom bool) bool {
	return g.moveCard(from, to, cardID, toBottom, true)
}

func (g *Game) moveCard(from, to ZoneRef, cardID int64, toBottom bool, logged bool) bool {
	card := g.RemoveCard(from, cardID)
	if card == nil {
		return false
	}

	if to.Zone == ZoneDeck && to.Owner == from.Owner {
		toBottom = !toBottom
	}

	if faceUpOnEntry[to.Zone] {
		card.FaceUp = true
	}
	if card.Type == CardTypeFortified && to.Zone == ZoneFortified && from.Zone == ZoneHand {
		card.FaceUp = false
	}

	g.AddCard(to, card, toBottom)

	if logged {
		g.logf("move", "%s moved from %s to %s", card.Name, from, to)
	}
	return true
}

// ShufflePile randomizes the addressed pile in place.
func (g *Game) ShufflePile(ref ZoneRef) {
	ps := g.Player(ref.Owner)
	if ps == nil {
		return
	}
	cards, ok := ps.Zones.pileAt(ref.Zone, ref.Column)
	if !ok {
		return
	}
	g.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// Draw moves n cards off the top of a seat's deck into their hand,
// stopping early on an empty deck. Returns the number actually drawn.
func (g *Game) Draw(seat Seat, n int) int {
	ps := g.Player(seat)
	if ps == nil {
		return 0
	}
	drawn := 0
	for i := 0; i < n; i++ {
		deck := ps.Zones.Pile(ZoneDeck)
		if len(deck) == 0 {
			break
		}
		card := deck[0]
		ps.Zones.setPile(ZoneDeck, -1, deck[1:])
		card.FaceUp = true
		ps.Zones.setPile(ZoneHand, -1, append(ps.Zones.Pile(ZoneHand), card))
		drawn++
	}
	return drawn
}

// DrawRandom performs n independent draws, each rerolling a uniform
// position against the current, shrinking deck size.
func (g *Game) DrawRandom(seat Seat, n int) int {
	ps := g.Player(seat)
	if ps == nil {
		return 0
	}
	drawn := 0
	for i := 0; i < n; i++ {
		deck := ps.Zones.Pile(ZoneDeck)
		if len(deck) == 0 {
			break
		}
		idx := g.rng.Intn(len(deck))
		card := deck[idx]
		ps.Zones.setPile(ZoneDeck, -1, append(deck[:idx], deck[idx+1:]...))
		card.FaceUp = true
		ps.Zones.setPile(ZoneHand, -1, append(ps.Zones.Pile(ZoneHand), card))
		drawn++
	}
	return drawn
}
