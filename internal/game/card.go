package game

import (
	"encoding/json"
	"fmt"
)

// CardType classifies a card within a legion deck.
type CardType int

const (
	CardTypeWarrior CardType = iota
	CardTypeUnified
	CardTypeFortified
	CardTypeWarlord
	CardTypeGuardian
	CardTypeSynergy
	CardTypeVeilRealm
	CardTypeToken
)

var cardTypeNames = map[CardType]string{
	CardTypeWarrior:   "Warrior",
	CardTypeUnified:   "Unified",
	CardTypeFortified: "Fortified",
	CardTypeWarlord:   "Warlord",
	CardTypeGuardian:  "Guardian",
	CardTypeSynergy:   "Synergy",
	CardTypeVeilRealm: "VeilRealm",
	CardTypeToken:     "Token",
}

func (t CardType) String() string {
	if name, ok := cardTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("CARD_TYPE_%d", int(t))
}

// MarshalJSON serializes the type as its display name so clients see
// "Warrior" rather than an enum ordinal.
func (t CardType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// ParseCardType maps a stored type tag to a CardType. Unknown tags
// degrade to Token so an imported deck never fails mid-generation.
func ParseCardType(tag string) CardType {
	for t, name := range cardTypeNames {
		if name == tag {
			return t
		}
	}
	return CardTypeToken
}

// IsDeckType reports whether cards of this type are shuffled into the
// main deck at game start. Role cards and tokens live outside of it.
func (t CardType) IsDeckType() bool {
	switch t {
	case CardTypeWarrior, CardTypeUnified, CardTypeFortified:
		return true
	default:
		return false
	}
}

// Card is one physical card in play. The catalog attributes are fixed at
// generation; the combat fields mutate in place as the game progresses.
type Card struct {
	ID    int64    `json:"id"`
	Type  CardType `json:"type"`
	Name  string   `json:"name"`
	Code  string   `json:"code"`
	Image string   `json:"image"`
	Text  string   `json:"text,omitempty"`

	FaceUp    bool `json:"faceUp"`
	AttackMod int  `json:"attackMod"`
	OtherMod  int  `json:"otherMod"`
	Cooldown  int  `json:"cooldown"`

	// Effects holds the attached effect descriptors resolved from the
	// catalog at generation time (keywords, pre-game and countdown
	// effects). Nil for vanilla cards.
	Effects []EffectDef `json:"-"`
}

// effectsOf returns the card's descriptors matching the given trigger.
func (c *Card) effectsOf(trigger TriggerKind) []EffectDef {
	var out []EffectDef
	for _, def := range c.Effects {
		if def.Trigger == trigger {
			out = append(out, def)
		}
	}
	return out
}
