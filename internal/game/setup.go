package game

import (
	"github.com/legionhq/legion-server/internal/deck"
)

// Deck/card generation: turning a persisted deck document into the
// initial per-zone layout.

// AttachPlayer seats a player and lays out their side from a deck
// document: Warrior/Unified/Fortified cards are shuffled into the deck,
// role cards are isolated into their zones, and the opening hand is
// drawn from the top. Re-attaching a seat replaces that side wholesale.
func (g *Game) AttachPlayer(seat Seat, name string, doc *deck.Deck) {
	if seat != SeatP1 && seat != SeatP2 {
		return
	}
	ps := &PlayerState{
		Name:   name,
		DeckID: doc.ID,
		Health: g.Rules.StartingHealth,
		AP:     g.Rules.StartingAP,
		Zones:  NewPlayerZones(g.Rules.MultiZoneWidth),
	}
	g.Players[seat] = ps

	var pile []*Card
	for _, spec := range doc.Cards {
		card := g.generateCard(spec)
		if card.Type.IsDeckType() {
			pile = append(pile, card)
			continue
		}
		switch card.Type {
		case CardTypeWarlord:
			g.AddCard(ZoneRef{Owner: seat, Zone: ZoneWarlord}, card, true)
		case CardTypeGuardian:
			g.AddCard(ZoneRef{Owner: seat, Zone: ZoneGuardian}, card, true)
		case CardTypeVeilRealm:
			g.AddCard(ZoneRef{Owner: seat, Zone: ZoneVeilRealm}, card, true)
		case CardTypeSynergy:
			g.AddCard(ZoneRef{Owner: seat, Zone: ZoneSynergy}, card, true)
		default:
			// Tokens start set aside in the revealed zone.
			g.AddCard(ZoneRef{Owner: seat, Zone: ZoneRevealed}, card, true)
		}
	}

	ps.Zones.setPile(ZoneDeck, -1, pile)
	g.ShufflePile(ZoneRef{Owner: seat, Zone: ZoneDeck})
	g.Draw(seat, g.Rules.OpeningHand)
	g.logf("setup", "%s's %s legion takes the field", name, doc.Legion)
}

// generateCard instantiates one card from its catalog entry, resolving
// attached effect descriptors from the catalog.
func (g *Game) generateCard(spec deck.Card) *Card {
	card := &Card{
		ID:       g.newCardID(),
		Type:     ParseCardType(spec.Type),
		Name:     spec.Name,
		Code:     spec.Code,
		Image:    spec.Image,
		Text:     spec.Text,
		FaceUp:   true,
		Cooldown: spec.Cooldown,
	}
	for _, name := range spec.Effects {
		if def, ok := LookupEffect(name); ok {
			card.Effects = append(card.Effects, def)
		}
	}
	return card
}

// Mulligan records a seat's keep-or-redeal decision during their
// mulligan phase and advances. The actual redeal happens on entry to
// PostMulliganDraw so both decisions land first.
func (g *Game) Mulligan(seat Seat, mulligan bool) {
	if g.Phase.Seat() != seat {
		return
	}
	if g.Phase != PhaseP1Mulligan && g.Phase != PhaseP2Mulligan {
		return
	}
	ps := g.Player(seat)
	if ps == nil || ps.MulliganDecided {
		return
	}
	ps.MulliganDecided = true
	ps.Mulliganed = mulligan
	if mulligan {
		g.logf("mulligan", "%s mulligans", ps.Name)
	} else {
		g.logf("mulligan", "%s keeps", ps.Name)
	}
	g.Advance()
}

// redealMulligans reshuffles the hand of every player that mulliganed
// back into their deck and deals a fresh opening hand.
func (g *Game) redealMulligans() {
	for seat, ps := range g.Players {
		if !ps.Mulliganed {
			continue
		}
		hand := ps.Zones.Pile(ZoneHand)
		ps.Zones.setPile(ZoneHand, -1, nil)
		ps.Zones.setPile(ZoneDeck, -1, append(ps.Zones.Pile(ZoneDeck), hand...))
		g.ShufflePile(ZoneRef{Owner: seat, Zone: ZoneDeck})
		g.Draw(seat, g.Rules.OpeningHand)
		g.logf("mulligan", "%s redraws %d", ps.Name, g.Rules.OpeningHand)
	}
}
