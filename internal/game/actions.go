package game

// Player-driven actions dispatched by the event router. Outside sandbox
// mode every action runs a pre-mutation check and rejects with a plain
// no-op: no partial mutation ever happens for a rejected action.

// NextPhase advances the phase machine on a player's request. Only the
// acting player may advance, except in sandbox mode and the shared
// phases.
func (g *Game) NextPhase(seat Seat) {
	if !g.Sandbox {
		if acting := g.Phase.Seat(); acting != SeatNone && acting != seat {
			return
		}
		if g.Resolving {
			return
		}
	}
	g.Advance()
}

// RequestMove validates and performs a client drag-and-drop move.
// Outside sandbox a player may only move cards between piles they own.
// A missing card id stays a silent no-op.
func (g *Game) RequestMove(seat Seat, from, to ZoneRef, cardID int64, toBottom bool) {
	if !g.Sandbox {
		if from.Owner != seat || to.Owner != seat {
			return
		}
	}
	g.MoveCard(from, to, cardID, toBottom)
}

// Conscript queues the one-per-turn play of a Warrior from hand into a
// battlefield column as a new sequence, then resolves. Outside sandbox
// it is rejected when the seat is not acting, a conscription already
// happened this turn, or the phase is not the seat's War phase.
func (g *Game) Conscript(seat Seat, cardID int64, column int) {
	if !g.Sandbox {
		if g.Conscripted {
			return
		}
		if g.Phase != PhaseP1War && g.Phase != PhaseP2War {
			return
		}
		if g.Phase.Seat() != seat {
			return
		}
	}
	if column < 0 || column >= g.Rules.MultiZoneWidth {
		return
	}
	item := &SequenceItem{
		Source:     cardID,
		Controller: seat,
		Effect: []EffectStep{
			{Kind: StepConscript, CardID: cardID, Column: column},
		},
	}
	g.EnqueueSequence(item)
	g.ResolveFirstItem()
}

// Plunder draws the card at zero-based index n-1 of the seat's own deck
// into hand and logs the ordinal.
func (g *Game) Plunder(seat Seat, n int) {
	ps := g.Player(seat)
	if ps == nil || n < 1 {
		return
	}
	deckPile := ps.Zones.Pile(ZoneDeck)
	if n > len(deckPile) {
		return
	}
	card := deckPile[n-1]
	ps.Zones.setPile(ZoneDeck, -1, append(deckPile[:n-1], deckPile[n:]...))
	card.FaceUp = true
	ps.Zones.setPile(ZoneHand, -1, append(ps.Zones.Pile(ZoneHand), card))
	g.logf("plunder", "%s plundered the %s card", ps.Name, Ordinal(n))
}

// RollDie rolls a d6 for the log.
func (g *Game) RollDie(seat Seat) {
	roll := g.rng.Intn(6) + 1
	g.logf("die", "%s rolled a %d", g.playerName(seat), roll)
}

// Chat appends a chat line to the audit log.
func (g *Game) Chat(seat Seat, message string) {
	if message == "" {
		return
	}
	g.logf("chat", "%s: %s", g.playerName(seat), message)
}

// FlipCard toggles a card's face-up flag wherever it sits.
func (g *Game) FlipCard(cardID int64) {
	if card, _ := g.FindCard(cardID); card != nil {
		card.FaceUp = !card.FaceUp
	}
}

// AdjustAttackMod shifts a card's attack-modifier delta.
func (g *Game) AdjustAttackMod(cardID int64, delta int) {
	if card, _ := g.FindCard(cardID); card != nil {
		card.AttackMod += delta
	}
}

// AdjustOtherMod shifts a card's other-modifier delta.
func (g *Game) AdjustOtherMod(cardID int64, delta int) {
	if card, _ := g.FindCard(cardID); card != nil {
		card.OtherMod += delta
	}
}

// AdjustCooldown shifts a card's cooldown counter, floored at zero.
func (g *Game) AdjustCooldown(cardID int64, delta int) {
	if card, _ := g.FindCard(cardID); card != nil {
		card.Cooldown += delta
		if card.Cooldown < 0 {
			card.Cooldown = 0
		}
	}
}

// ChangeHealth shifts a seat's health total.
func (g *Game) ChangeHealth(seat Seat, delta int) {
	if ps := g.Player(seat); ps != nil {
		ps.Health += delta
		g.logf("resource", "%s's health is now %d", ps.Name, ps.Health)
	}
}

// ChangeAP shifts a seat's action points.
func (g *Game) ChangeAP(seat Seat, delta int) {
	if ps := g.Player(seat); ps != nil {
		ps.AP += delta
		g.logf("resource", "%s's AP is now %d", ps.Name, ps.AP)
	}
}

// SetViewing mirrors which pile a seat is inspecting.
func (g *Game) SetViewing(seat Seat, pile string) {
	if ps := g.Player(seat); ps != nil {
		ps.Viewing = pile
	}
}

// SelectCard highlights a card for a seat; zero clears.
func (g *Game) SelectCard(seat Seat, cardID int64) {
	if ps := g.Player(seat); ps != nil {
		ps.Selected = cardID
	}
}

// ShuffleTarget shuffles the addressed pile on request. Outside sandbox
// only the owner may shuffle it.
func (g *Game) ShuffleTarget(seat Seat, ref ZoneRef) {
	if !g.Sandbox && ref.Owner != seat {
		return
	}
	g.ShufflePile(ref)
	g.logf("shuffle", "%s shuffled %s", g.playerName(seat), ref)
}
