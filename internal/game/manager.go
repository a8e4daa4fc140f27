package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/legionhq/legion-server/internal/deck"
	"go.uber.org/zap"
)

// Manager is the process-wide room id → game registry. Each room is an
// owned unit: all mutation of a game enters through With, which holds
// that room's lock, so "effectively single-threaded per room" is an
// explicit guarantee rather than an accident of the runtime.
type Manager struct {
	mu     sync.Mutex
	rooms  map[string]*roomEntry
	store  deck.Store
	rules  Rules
	logger *zap.Logger
}

type roomEntry struct {
	mu   sync.Mutex
	game *Game
}

// NewManager creates a game manager over a deck store.
func NewManager(store deck.Store, rules Rules, logger *zap.Logger) *Manager {
	return &Manager{
		rooms:  make(map[string]*roomEntry),
		store:  store,
		rules:  rules,
		logger: logger,
	}
}

func (m *Manager) entry(roomID string) (*roomEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rooms[roomID]
	return e, ok
}

// StartGame resolves a deck and seats a player, creating the room's
// game on the first resolved deck.
func (m *Manager) StartGame(ctx context.Context, roomID string, seat Seat, name, deckID string, sandbox bool) error {
	doc, err := m.store.GetDeck(ctx, deckID)
	if err != nil {
		return fmt.Errorf("resolve deck %s: %w", deckID, err)
	}

	m.mu.Lock()
	e, ok := m.rooms[roomID]
	if !ok {
		e = &roomEntry{game: NewGame(roomID, m.rules, sandbox, m.logger)}
		m.rooms[roomID] = e
	}
	m.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.game.AttachPlayer(seat, name, doc)

	m.logger.Info("player seated",
		zap.String("room_id", roomID),
		zap.String("player", name),
		zap.String("seat", seat.String()),
		zap.String("deck_id", deckID),
	)
	return nil
}

// With runs fn against a room's game under that room's lock. Returns
// false when the room has no game.
func (m *Manager) With(roomID string, fn func(*Game)) bool {
	e, ok := m.entry(roomID)
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.game)
	return true
}

// Reset wholesale-replaces a room's game: decks re-resolved and
// reshuffled, phase back to RPS, log cleared. The room itself persists.
func (m *Manager) Reset(ctx context.Context, roomID string) error {
	e, ok := m.entry(roomID)
	if !ok {
		return fmt.Errorf("no game for room %s", roomID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	old := e.game
	fresh := NewGame(roomID, old.Rules, old.Sandbox, m.logger)
	for seat, ps := range old.Players {
		doc, err := m.store.GetDeck(ctx, ps.DeckID)
		if err != nil {
			return fmt.Errorf("resolve deck %s: %w", ps.DeckID, err)
		}
		fresh.AttachPlayer(seat, ps.Name, doc)
	}
	e.game = fresh

	m.logger.Info("game reset", zap.String("room_id", roomID))
	return nil
}

// Remove destroys a room's game. Called when the room empties.
func (m *Manager) Remove(roomID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, roomID)
}

// ActiveGameCount returns the number of live games.
func (m *Manager) ActiveGameCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rooms)
}
