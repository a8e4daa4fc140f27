// Package room tracks who is connected where. The registry is
// independent of game state: rooms exist before decks resolve and are
// destroyed, together with their game, when the last player leaves.
package room

import (
	"errors"
	"sort"
	"sync"

	"github.com/legionhq/legion-server/internal/game"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrRoomExists is returned when creating a room whose name is taken.
	ErrRoomExists = errors.New("room already exists")
	// ErrRoomNotFound is returned for operations on an unknown room.
	ErrRoomNotFound = errors.New("room not found")
	// ErrNameTaken is returned when a player name is already used in the room.
	ErrNameTaken = errors.New("player name already taken in room")
	// ErrWrongPassword is returned when the join password does not match.
	ErrWrongPassword = errors.New("wrong room password")
)

// Player is one connected participant.
type Player struct {
	Name string
	Seat game.Seat
}

// Room is one named table: connection id → player, plus the flags fixed
// at creation.
type Room struct {
	ID           string
	Sandbox      bool
	passwordHash []byte
	players      map[string]*Player // keyed by connection id
}

// PlayerSnapshot captures one member for external use.
type PlayerSnapshot struct {
	ConnID string    `json:"connId"`
	Name   string    `json:"name"`
	Seat   game.Seat `json:"seat"`
}

// Snapshot captures a consistent view of a room.
type Snapshot struct {
	ID      string           `json:"id"`
	Sandbox bool             `json:"sandboxMode"`
	Locked  bool             `json:"locked"`
	Players []PlayerSnapshot `json:"players"`
}

// Manager is the process-wide room registry.
type Manager struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	logger *zap.Logger
}

// NewManager creates an empty registry.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		rooms:  make(map[string]*Room),
		logger: logger,
	}
}

// Create registers a new room. Duplicate names are rejected; a non-empty
// password is bcrypt-hashed and required on join.
func (m *Manager) Create(id string, sandbox bool, password string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.rooms[id]; exists {
		return nil, ErrRoomExists
	}

	r := &Room{
		ID:      id,
		Sandbox: sandbox,
		players: make(map[string]*Player),
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		r.passwordHash = hash
	}
	m.rooms[id] = r

	m.logger.Info("room created",
		zap.String("room_id", id),
		zap.Bool("sandbox", sandbox),
		zap.Bool("locked", r.passwordHash != nil),
	)
	return r, nil
}

// CheckPassword verifies a join password against a room.
func (m *Manager) CheckPassword(id, password string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rooms[id]
	if !ok {
		return ErrRoomNotFound
	}
	if r.passwordHash == nil {
		return nil
	}
	if bcrypt.CompareHashAndPassword(r.passwordHash, []byte(password)) != nil {
		return ErrWrongPassword
	}
	return nil
}

// Join adds a connection to a room. The first two distinct players take
// seats p1 and p2; later joiners spectate. Duplicate player names within
// the room are rejected.
func (m *Manager) Join(id, connID, playerName string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	for _, p := range r.players {
		if p.Name == playerName {
			return nil, ErrNameTaken
		}
	}

	seat := game.SeatNone
	taken := map[game.Seat]bool{}
	for _, p := range r.players {
		taken[p.Seat] = true
	}
	switch {
	case !taken[game.SeatP1]:
		seat = game.SeatP1
	case !taken[game.SeatP2]:
		seat = game.SeatP2
	}

	p := &Player{Name: playerName, Seat: seat}
	r.players[connID] = p

	m.logger.Info("player joined room",
		zap.String("room_id", id),
		zap.String("player", playerName),
		zap.String("seat", seat.String()),
	)
	return p, nil
}

// Get returns a room by id.
func (m *Manager) Get(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// Member resolves a connection to its player within a room. Unknown
// senders return false.
func (m *Manager) Member(id, connID string) (*Player, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, false
	}
	p, ok := r.players[connID]
	return p, ok
}

// SwitchSides swaps the two seated players' roles.
func (m *Manager) SwitchSides(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return false
	}
	for _, p := range r.players {
		switch p.Seat {
		case game.SeatP1:
			p.Seat = game.SeatP2
		case game.SeatP2:
			p.Seat = game.SeatP1
		}
	}
	return true
}

// Leave removes a connection from its room. Returns the room id and
// whether the room emptied (and was deleted) as a result.
func (m *Manager) Leave(id, connID string) (emptied bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[id]
	if !ok {
		return false
	}
	delete(r.players, connID)
	if len(r.players) > 0 {
		return false
	}
	delete(m.rooms, id)
	m.logger.Info("room emptied and removed", zap.String("room_id", id))
	return true
}

// SnapshotRoom captures one room's membership.
func (m *Manager) SnapshotRoom(id string) (Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	if !ok {
		return Snapshot{}, false
	}
	return snapshotLocked(r), true
}

// SnapshotAll captures the full registry, sorted by room id.
func (m *Manager) SnapshotAll() []Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Snapshot, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, snapshotLocked(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func snapshotLocked(r *Room) Snapshot {
	s := Snapshot{
		ID:      r.ID,
		Sandbox: r.Sandbox,
		Locked:  r.passwordHash != nil,
		Players: make([]PlayerSnapshot, 0, len(r.players)),
	}
	for connID, p := range r.players {
		s.Players = append(s.Players, PlayerSnapshot{ConnID: connID, Name: p.Name, Seat: p.Seat})
	}
	sort.Slice(s.Players, func(i, j int) bool { return s.Players[i].Name < s.Players[j].Name })
	return s
}
