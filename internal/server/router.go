package server

import (
	"context"
	"encoding/json"

	"github.com/legionhq/legion-server/internal/game"
	"github.com/legionhq/legion-server/internal/room"
	"go.uber.org/zap"
)

// Router validates inbound real-time actions, dispatches them to the
// phase machine / sequence engine / zone transfer, and re-emits the
// authoritative state to the room. Internal errors are swallowed here
// and logged; one malformed client event must never take down a shared
// room.
type Router struct {
	rooms  *room.Manager
	games  *game.Manager
	hub    *Hub
	logger *zap.Logger
}

// NewRouter wires the router to its collaborators.
func NewRouter(rooms *room.Manager, games *game.Manager, hub *Hub, logger *zap.Logger) *Router {
	return &Router{rooms: rooms, games: games, hub: hub, logger: logger}
}

// envelope is the outer frame of every websocket message, both ways.
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// gameEvent is the inner frame of a "gameEvent" envelope.
type gameEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HandleMessage processes one inbound frame.
func (r *Router) HandleMessage(c *Client, raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		r.logger.Debug("dropping malformed frame",
			zap.String("conn_id", c.ID),
			zap.Error(err),
		)
		return
	}

	switch env.Type {
	case "joinGame":
		r.handleJoinGame(c, env.Data)
	case "gameEvent":
		r.handleGameEvent(c, env.Data)
	case "roomEvent":
		r.handleRoomEvent(c, env.Data)
	default:
		r.logger.Debug("unknown envelope type",
			zap.String("conn_id", c.ID),
			zap.String("type", env.Type),
		)
	}
}

// HandleDisconnect removes the player; an empty room and its game state
// are deleted together.
func (r *Router) HandleDisconnect(c *Client) {
	if c.RoomID == "" {
		return
	}
	if emptied := r.rooms.Leave(c.RoomID, c.ID); emptied {
		r.games.Remove(c.RoomID)
	} else {
		r.broadcastRoomMeta(c.RoomID)
		r.broadcastState(c.RoomID, "disconnect")
	}
	r.broadcastRegistry()
}

// ==================== joinGame ====================

type joinGamePayload struct {
	RoomName   string `json:"roomName"`
	PlayerName string `json:"playerName"`
	DeckID     string `json:"deckId"`
	P2DeckID   string `json:"p2DeckId,omitempty"`
}

func (r *Router) handleJoinGame(c *Client, data json.RawMessage) {
	var p joinGamePayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomName == "" || p.PlayerName == "" {
		return
	}

	// First join of an unseen id creates the room; REST createRoom is
	// the path that sets password and sandbox flags.
	if _, ok := r.rooms.Get(p.RoomName); !ok {
		if _, err := r.rooms.Create(p.RoomName, false, ""); err != nil {
			r.logger.Warn("implicit room create failed",
				zap.String("room_id", p.RoomName),
				zap.Error(err),
			)
			return
		}
	}

	player, err := r.rooms.Join(p.RoomName, c.ID, p.PlayerName)
	if err != nil {
		r.logger.Warn("join rejected",
			zap.String("room_id", p.RoomName),
			zap.String("player", p.PlayerName),
			zap.Error(err),
		)
		return
	}
	r.hub.BindRoom(c, p.RoomName)

	rm, _ := r.rooms.Get(p.RoomName)
	sandbox := rm != nil && rm.Sandbox

	if player.Seat != game.SeatNone && p.DeckID != "" {
		if err := r.games.StartGame(context.Background(), p.RoomName, player.Seat, p.PlayerName, p.DeckID, sandbox); err != nil {
			r.logger.Error("deck resolution failed",
				zap.String("room_id", p.RoomName),
				zap.String("deck_id", p.DeckID),
				zap.Error(err),
			)
		}
	}
	// A sandbox solo game drives the second seat from the same client.
	if sandbox && p.P2DeckID != "" && player.Seat == game.SeatP1 {
		if err := r.games.StartGame(context.Background(), p.RoomName, game.SeatP2, p.PlayerName+" (P2)", p.P2DeckID, sandbox); err != nil {
			r.logger.Error("deck resolution failed",
				zap.String("room_id", p.RoomName),
				zap.String("deck_id", p.P2DeckID),
				zap.Error(err),
			)
		}
	}

	r.broadcastRegistry()
	r.broadcastRoomMeta(p.RoomName)
	r.broadcastState(p.RoomName, "joinGame")
}

// ==================== roomEvent ====================

type roomEventPayload struct {
	Type string `json:"type"`
}

func (r *Router) handleRoomEvent(c *Client, data json.RawMessage) {
	if _, ok := r.member(c); !ok {
		return
	}
	var p roomEventPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return
	}
	switch p.Type {
	case "switchSide":
		r.rooms.SwitchSides(c.RoomID)
		r.broadcastRoomMeta(c.RoomID)
	}
}

// ==================== gameEvent ====================

// member resolves the sender; unknown senders are silently dropped.
func (r *Router) member(c *Client) (*room.Player, bool) {
	if c.RoomID == "" {
		return nil, false
	}
	return r.rooms.Member(c.RoomID, c.ID)
}

func (r *Router) handleGameEvent(c *Client, data json.RawMessage) {
	player, ok := r.member(c)
	if !ok {
		return
	}
	var ev gameEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return
	}

	seat := player.Seat

	// Reset rebuilds the game wholesale and takes the room lock itself.
	if ev.Type == "resetGame" {
		if err := r.games.Reset(context.Background(), c.RoomID); err != nil {
			r.logger.Warn("reset failed",
				zap.String("room_id", c.RoomID),
				zap.Error(err),
			)
		}
		r.broadcastState(c.RoomID, ev.Type)
		return
	}

	r.games.With(c.RoomID, func(g *game.Game) {
		r.dispatch(g, seat, ev)
	})

	// Every inbound action ends by re-emitting full state. Resolution
	// paths may have broadcast already; re-sending the complete state
	// is idempotent by design.
	r.broadcastState(c.RoomID, ev.Type)
}

func (r *Router) dispatch(g *game.Game, seat game.Seat, ev gameEvent) {
	switch ev.Type {
	case "moveCard":
		var p struct {
			CardID int64        `json:"cardId"`
			From   game.ZoneRef `json:"from"`
			Target game.ZoneRef `json:"target"`
			Bottom bool         `json:"bottom"`
		}
		if json.Unmarshal(ev.Data, &p) == nil {
			g.RequestMove(seat, p.From, p.Target, p.CardID, p.Bottom)
		}

	case "conscript":
		var p struct {
			CardID int64 `json:"cardId"`
			Column int   `json:"column"`
		}
		if json.Unmarshal(ev.Data, &p) == nil {
			g.Conscript(seat, p.CardID, p.Column)
		}

	case "rollDie":
		g.RollDie(seat)

	case "sendChatMessage":
		var p struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(ev.Data, &p) == nil {
			g.Chat(seat, p.Message)
		}

	case "setP1Viewing", "setP2Viewing":
		var p struct {
			Pile string `json:"pile"`
		}
		if json.Unmarshal(ev.Data, &p) == nil {
			g.SetViewing(eventSeat(ev.Type), p.Pile)
		}

	case "mulligan":
		var p struct {
			Mulligan bool `json:"mulligan"`
		}
		if json.Unmarshal(ev.Data, &p) == nil {
			g.Mulligan(seat, p.Mulligan)
		}

	case "setRpsChoice":
		var p struct {
			Choice string `json:"choice"`
		}
		if json.Unmarshal(ev.Data, &p) == nil {
			if choice, ok := game.ParseRPSChoice(p.Choice); ok {
				g.SetRPSChoice(seat, choice)
			}
		}

	case "playerInput":
		var p struct {
			Selected []game.SelectedCard `json:"selected"`
		}
		if json.Unmarshal(ev.Data, &p) == nil {
			g.PlayerInput(seat, p.Selected)
		}

	case "nextPhase":
		g.NextPhase(seat)

	case "increaseAttackModifier", "decreaseAttackModifier":
		if id, ok := cardIDOf(ev.Data); ok {
			g.AdjustAttackMod(id, deltaOf(ev.Type))
		}

	case "increaseOtherModifier", "decreaseOtherModifier":
		if id, ok := cardIDOf(ev.Data); ok {
			g.AdjustOtherMod(id, deltaOf(ev.Type))
		}

	case "increaseCooldown", "decreaseCooldown":
		if id, ok := cardIDOf(ev.Data); ok {
			g.AdjustCooldown(id, deltaOf(ev.Type))
		}

	case "changeP1Health", "changeP2Health":
		var p struct {
			Amount int `json:"amount"`
		}
		if json.Unmarshal(ev.Data, &p) == nil {
			g.ChangeHealth(eventSeat(ev.Type), p.Amount)
		}

	case "changeP1AP", "changeP2AP":
		var p struct {
			Amount int `json:"amount"`
		}
		if json.Unmarshal(ev.Data, &p) == nil {
			g.ChangeAP(eventSeat(ev.Type), p.Amount)
		}

	case "flipCard":
		if id, ok := cardIDOf(ev.Data); ok {
			g.FlipCard(id)
		}

	case "shuffleTargetPile":
		var p struct {
			Zone game.ZoneRef `json:"zone"`
		}
		if json.Unmarshal(ev.Data, &p) == nil {
			g.ShuffleTarget(seat, p.Zone)
		}

	case "plunder":
		var p struct {
			N int `json:"n"`
		}
		if json.Unmarshal(ev.Data, &p) == nil {
			g.Plunder(seat, p.N)
		}

	case "selectCard":
		if id, ok := cardIDOf(ev.Data); ok {
			g.SelectCard(seat, id)
		}

	case "clearSelectedCard":
		g.SelectCard(seat, 0)

	default:
		r.logger.Debug("unknown game event", zap.String("type", ev.Type))
	}
}

// cardIDOf extracts the common {cardId} payload.
func cardIDOf(data json.RawMessage) (int64, bool) {
	var p struct {
		CardID int64 `json:"cardId"`
	}
	if json.Unmarshal(data, &p) != nil || p.CardID == 0 {
		return 0, false
	}
	return p.CardID, true
}

// deltaOf maps increase*/decrease* event names onto ±1.
func deltaOf(eventType string) int {
	if len(eventType) >= 8 && eventType[:8] == "decrease" {
		return -1
	}
	return 1
}

// eventSeat maps the P1/P2-addressed event names onto a seat.
func eventSeat(eventType string) game.Seat {
	for i := 0; i+1 < len(eventType); i++ {
		if eventType[i] == 'P' {
			switch eventType[i+1] {
			case '1':
				return game.SeatP1
			case '2':
				return game.SeatP2
			}
		}
	}
	return game.SeatNone
}

// ==================== broadcasts ====================

func marshalEnvelope(msgType string, data any) ([]byte, bool) {
	inner, err := json.Marshal(data)
	if err != nil {
		return nil, false
	}
	payload, err := json.Marshal(envelope{Type: msgType, Data: inner})
	if err != nil {
		return nil, false
	}
	return payload, true
}

// broadcastRegistry pushes the full room registry to every client.
func (r *Router) broadcastRegistry() {
	if payload, ok := marshalEnvelope("rooms", r.rooms.SnapshotAll()); ok {
		r.hub.BroadcastAll(payload)
	}
}

// broadcastRoomMeta pushes room metadata (player→role map) to a room.
func (r *Router) broadcastRoomMeta(roomID string) {
	snap, ok := r.rooms.SnapshotRoom(roomID)
	if !ok {
		return
	}
	if payload, ok := marshalEnvelope("roomEvent", snap); ok {
		r.hub.BroadcastRoom(roomID, payload)
	}
}

// stateFrame is the payload of phaseEvent/gameEvent broadcasts: always
// the complete state, never a diff.
type stateFrame struct {
	Type string         `json:"type"`
	Data *game.Snapshot `json:"data"`
}

// broadcastState re-emits the room's full game state over both logical
// channels. The payload is identical; the split exists for client
// subscription granularity.
func (r *Router) broadcastState(roomID, eventType string) {
	var phasePayload, gamePayload []byte
	ok := r.games.With(roomID, func(g *game.Game) {
		frame := stateFrame{Type: eventType, Data: g.Snapshot()}
		// Serialize while the room lock is held; the snapshot shares
		// card pointers with live state.
		phasePayload, _ = marshalEnvelope("phaseEvent", frame)
		gamePayload, _ = marshalEnvelope("gameEvent", frame)
	})
	if !ok {
		return
	}
	if phasePayload != nil {
		r.hub.BroadcastRoom(roomID, phasePayload)
	}
	if gamePayload != nil {
		r.hub.BroadcastRoom(roomID, gamePayload)
	}
}
