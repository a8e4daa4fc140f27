package game

// The sequence engine is a cooperative, resumable interpreter over a
// queue of queues of effect steps. Resolution is synchronous except when
// a ChooseCards step needs player input, where the engine parks with
// Resolving still set and resumes when the input event lands.

// SelectedCard is one entry of a ChooseCards selection: the card plus
// where it came from and where the effect should put it.
type SelectedCard struct {
	CardID int64   `json:"id"`
	From   ZoneRef `json:"from"`
	Target ZoneRef `json:"target"`
}

// SequenceItem is one pending effect resolution: the cost and effect
// step lists of a single fired effect, plus the live resumption state.
type SequenceItem struct {
	Source     int64  `json:"sourceCardId"`
	EffectName string `json:"effectName,omitempty"`
	Controller Seat   `json:"controller"`

	Cost   []EffectStep `json:"cost,omitempty"`
	Effect []EffectStep `json:"effect"`

	// Cursor indexes the next step to run across Cost then Effect, so a
	// paused item resumes exactly where it stopped.
	Cursor int `json:"-"`

	// WaitingP1/WaitingP2 are set while ChooseCards needs that seat's
	// input. Resolution must not advance past the item while either is
	// set.
	WaitingP1 bool `json:"waitingForP1"`
	WaitingP2 bool `json:"waitingForP2"`

	// Selected holds the submitted (or waived) selection for the item's
	// ChooseCards step. An item carries at most one ChooseCards step:
	// chosen and Selected are item-scoped, so a second choose in the
	// same item would reuse the first step's selection. Effects needing
	// several selections split into one item per choose.
	Selected []SelectedCard `json:"selected,omitempty"`
	chosen   bool
}

// Sequence is an ordered list of pending items, oldest first.
type Sequence struct {
	Items []*SequenceItem `json:"items"`
}

func newSequenceItem(source int64, controller Seat, def EffectDef) *SequenceItem {
	return &SequenceItem{
		Source:     source,
		EffectName: def.Name,
		Controller: controller,
		Cost:       def.Cost,
		Effect:     def.Effect,
	}
}

// steps returns the virtual combined step list the cursor walks.
func (it *SequenceItem) steps() []EffectStep {
	if len(it.Cost) == 0 {
		return it.Effect
	}
	combined := make([]EffectStep, 0, len(it.Cost)+len(it.Effect))
	combined = append(combined, it.Cost...)
	combined = append(combined, it.Effect...)
	return combined
}

// waiting reports whether any required party still owes input.
func (it *SequenceItem) waiting() bool {
	return it.WaitingP1 || it.WaitingP2
}

// EnqueueSequence appends a new sequence holding the given items to the
// tail of the queue. A later sequence never resolves before an earlier
// one drains.
func (g *Game) EnqueueSequence(items ...*SequenceItem) {
	if len(items) == 0 {
		return
	}
	g.Sequences = append(g.Sequences, &Sequence{Items: items})
}

// ResolveFirstItem drives the queue. On a drained queue this is a no-op
// beyond the caller's redundant state broadcast. When the queue empties
// while the phase is one that parks on a pending Sequence (Guardian,
// Countdown), the phase machine is told to advance.
func (g *Game) ResolveFirstItem() {
	if g.resolveQueue() {
		if phaseParksOnSequence[g.Phase] && !g.Sandbox {
			g.Advance()
		}
	}
}

// resolveQueue runs items until the queue drains (returns true) or an
// item parks on player input (returns false, Resolving stays set). The
// loop is explicit so stack depth stays bounded no matter how many
// steps are queued.
func (g *Game) resolveQueue() bool {
	for {
		if len(g.Sequences) == 0 {
			g.Resolving = false
			return true
		}
		seq := g.Sequences[0]
		if len(seq.Items) == 0 {
			g.Sequences = g.Sequences[1:]
			continue
		}

		g.Resolving = true
		item := seq.Items[0]
		if !g.runItem(seq, item) {
			// Parked on input; the item is not consumed.
			return false
		}

		seq.Items = seq.Items[1:]
		if len(seq.Items) == 0 {
			g.Sequences = g.Sequences[1:]
		}
	}
}

// runItem executes an item's steps from its cursor. Returns false when
// the item parked on a ChooseCards step.
func (g *Game) runItem(seq *Sequence, item *SequenceItem) bool {
	steps := item.steps()
	for item.Cursor < len(steps) {
		step := steps[item.Cursor]
		if step.Kind == StepChooseCards {
			if !g.runChooseCards(item, step) {
				return false
			}
		} else {
			g.runStep(seq, item, step)
		}
		item.Cursor++
	}
	return true
}

// runChooseCards handles the one suspending step kind. In sandbox mode
// the selection requirement is waived immediately. Returns false while
// input is still owed.
func (g *Game) runChooseCards(item *SequenceItem, step EffectStep) bool {
	if item.chosen {
		return true
	}
	if g.Sandbox {
		item.chosen = true
		item.WaitingP1, item.WaitingP2 = false, false
		return true
	}
	if !item.waiting() && !item.chosen {
		// First visit: flag every required party.
		for _, who := range step.Who {
			switch who.Resolve(item.Controller) {
			case SeatP1:
				item.WaitingP1 = true
			case SeatP2:
				item.WaitingP2 = true
			}
		}
	}
	if item.waiting() {
		return false
	}
	item.chosen = true
	return true
}

// runStep executes one non-suspending step.
func (g *Game) runStep(seq *Sequence, item *SequenceItem, step EffectStep) {
	controller := item.Controller
	switch step.Kind {
	case StepMoveCard:
		if step.Quantity == QuantitySelected {
			// Effects phrased per-card-chosen: the selection count is
			// reinterpreted as "draw N cards".
			g.Draw(controller, len(item.Selected))
			break
		}
		for _, sel := range item.Selected {
			from := g.resolveRef(sel.From, controller)
			target := g.resolveRef(sel.Target, controller)
			// Toward the bottom of array-shaped destinations, without a
			// per-card log line.
			g.moveCard(from, target, sel.CardID, true, false)
		}

	case StepDrawCard:
		seat := step.Player.Resolve(controller)
		if step.Random {
			g.DrawRandom(seat, step.Amount)
		} else {
			g.Draw(seat, step.Amount)
		}
		g.logf("effect", "%s draws %d", g.playerName(seat), step.Amount)

	case StepChangeHealth:
		seat := step.Player.Resolve(controller)
		if ps := g.Player(seat); ps != nil {
			ps.Health += step.Amount
			g.logf("effect", "%s's health changes by %+d", ps.Name, step.Amount)
		}

	case StepChangeAP:
		seat := step.Player.Resolve(controller)
		if ps := g.Player(seat); ps != nil {
			ps.AP += step.Amount
			g.logf("effect", "%s's AP changes by %+d", ps.Name, step.Amount)
		}

	case StepShuffle:
		ref := g.resolveRef(step.Zone, controller)
		g.ShufflePile(ref)
		g.logf("effect", "%s shuffled", ref)

	case StepConscript:
		g.runConscript(seq, item, step)

	case StepNone:
	}
}

// runConscript plays a Warrior from hand into a battlefield column and
// fires any attached keyword whose enter-the-battlefield size condition
// currently holds. Triggered items append to the tail of the currently
// resolving sequence so chained keywords resolve before later,
// independently queued sequences.
func (g *Game) runConscript(seq *Sequence, item *SequenceItem, step EffectStep) {
	controller := item.Controller
	from := ZoneRef{Owner: controller, Zone: ZoneHand}
	to := ZoneRef{Owner: controller, Zone: ZoneWarriors, Column: step.Column}

	card := g.RemoveCard(from, step.CardID)
	if card == nil {
		return
	}
	card.FaceUp = true
	g.AddCard(to, card, true)
	g.Conscripted = true
	g.logf("conscript", "%s conscripted %s to column %d",
		g.playerName(controller), card.Name, step.Column)

	ps := g.Player(controller)
	if ps == nil {
		return
	}
	columnSize := len(ps.Zones.Column(ZoneWarriors, step.Column))
	for _, def := range card.effectsOf(TriggerConscript) {
		if !def.holds(columnSize) {
			continue
		}
		seq.Items = append(seq.Items, newSequenceItem(card.ID, controller, def))
		g.logf("effect", "%s triggers", def.Name)
	}
}

// resolveRef fills in a ref whose owner was left as "the controller".
func (g *Game) resolveRef(ref ZoneRef, controller Seat) ZoneRef {
	if ref.Owner == SeatNone {
		ref.Owner = controller
	}
	return ref
}

// PlayerInput supplies the selection a parked ChooseCards step is
// waiting on and clears the sender's waiting flag. The submitted
// selection is recorded as-is; when every required party has answered,
// resolution resumes. Input while nothing is parked is dropped.
func (g *Game) PlayerInput(seat Seat, selected []SelectedCard) {
	if len(g.Sequences) == 0 || len(g.Sequences[0].Items) == 0 {
		return
	}
	item := g.Sequences[0].Items[0]
	if !item.waiting() {
		return
	}
	switch seat {
	case SeatP1:
		if !item.WaitingP1 {
			return
		}
		item.WaitingP1 = false
	case SeatP2:
		if !item.WaitingP2 {
			return
		}
		item.WaitingP2 = false
	default:
		return
	}
	item.Selected = append(item.Selected, selected...)
	if !item.waiting() {
		item.chosen = true
		g.ResolveFirstItem()
	}
}
