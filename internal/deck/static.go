package deck

import "context"

// StaticStore is an in-memory Store used by tests and by sandbox
// deployments that run without postgres.
type StaticStore struct {
	decks map[string]*Deck
}

// NewStaticStore builds a store over the given decks.
func NewStaticStore(decks ...*Deck) *StaticStore {
	s := &StaticStore{decks: make(map[string]*Deck, len(decks))}
	for _, d := range decks {
		s.decks[d.ID] = d
	}
	return s
}

// GetDeck implements Store.
func (s *StaticStore) GetDeck(_ context.Context, id string) (*Deck, error) {
	d, ok := s.decks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}
