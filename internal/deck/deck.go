// Package deck is the deck-persistence collaborator consumed by the
// game core: a lookup of persisted deck documents by id. The core never
// writes back.
package deck

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no deck exists for the requested id.
var ErrNotFound = errors.New("deck not found")

// Card is one catalog entry inside a persisted deck document.
type Card struct {
	Name     string   `json:"name"`
	Code     string   `json:"code"`
	Image    string   `json:"image"`
	Text     string   `json:"text,omitempty"`
	Type     string   `json:"type"`
	Cooldown int      `json:"cooldown,omitempty"`
	Effects  []string `json:"effects,omitempty"`
}

// Deck is a persisted deck document.
type Deck struct {
	ID     string `json:"id"`
	Legion string `json:"legion"`
	Cards  []Card `json:"cards_in_deck"`
}

// Store looks decks up by id. Implementations: Repository (postgres)
// and StaticStore (in-memory, tests and sandbox bootstrapping).
type Store interface {
	GetDeck(ctx context.Context, id string) (*Deck, error)
}
