package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/legionhq/legion-server/internal/config"
	"github.com/legionhq/legion-server/internal/deck"
	"github.com/legionhq/legion-server/internal/game"
	"github.com/legionhq/legion-server/internal/room"
	"go.uber.org/zap"
)

// Server bundles the HTTP surface: the REST endpoints, the websocket
// upgrade and the liveness probe.
type Server struct {
	cfg    config.ServerConfig
	rooms  *room.Manager
	games  *game.Manager
	decks  deck.Store
	hub    *Hub
	router *Router
	logger *zap.Logger

	httpSrv *http.Server
	started time.Time
}

// NewServer wires the HTTP server.
func NewServer(
	cfg config.ServerConfig,
	rooms *room.Manager,
	games *game.Manager,
	decks deck.Store,
	hub *Hub,
	router *Router,
	logger *zap.Logger,
) *Server {
	s := &Server{
		cfg:     cfg,
		rooms:   rooms,
		games:   games,
		decks:   decks,
		hub:     hub,
		router:  router,
		logger:  logger,
		started: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /createRoom", s.handleCreateRoom)
	mux.HandleFunc("POST /joinRoom", s.handleJoinRoom)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(router, w, r)
	})

	s.httpSrv = &http.Server{
		Addr:              cfg.Address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("http server listening", zap.String("address", s.cfg.Address))
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the listener and drops every websocket client.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.CloseAll()
	return s.httpSrv.Shutdown(ctx)
}

// ==================== REST handlers ====================

type createRoomRequest struct {
	RoomName     string `json:"roomName"`
	PlayerName   string `json:"playerName"`
	SandboxMode  bool   `json:"sandboxMode"`
	DeckID       string `json:"deckId"`
	RoomPassword string `json:"roomPassword"`
}

type joinRoomRequest struct {
	RoomName     string `json:"roomName"`
	PlayerName   string `json:"playerName"`
	DeckID       string `json:"deckId"`
	RoomPassword string `json:"roomPassword"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// validateDeck resolves a deck id against the store, translating the
// error taxonomy: unknown deck is the client's fault, an unreachable
// store is ours.
func (s *Server) validateDeck(ctx context.Context, w http.ResponseWriter, deckID string) bool {
	if deckID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "deckId is required"})
		return false
	}
	if _, err := s.decks.GetDeck(ctx, deckID); err != nil {
		if errors.Is(err, deck.ErrNotFound) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown deck"})
			return false
		}
		s.logger.Error("deck store unavailable",
			zap.String("deck_id", deckID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "deck store unavailable"})
		return false
	}
	return true
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.RoomName == "" || req.PlayerName == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "roomName and playerName are required"})
		return
	}
	if !s.validateDeck(r.Context(), w, req.DeckID) {
		return
	}

	if _, err := s.rooms.Create(req.RoomName, req.SandboxMode, req.RoomPassword); err != nil {
		if errors.Is(err, room.ErrRoomExists) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "room name already taken"})
			return
		}
		s.logger.Error("room create failed",
			zap.String("room_id", req.RoomName),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	snap, _ := s.rooms.SnapshotRoom(req.RoomName)
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleJoinRoom(w http.ResponseWriter, r *http.Request) {
	var req joinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.RoomName == "" || req.PlayerName == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "roomName and playerName are required"})
		return
	}

	if err := s.rooms.CheckPassword(req.RoomName, req.RoomPassword); err != nil {
		switch {
		case errors.Is(err, room.ErrRoomNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "room not found"})
		case errors.Is(err, room.ErrWrongPassword):
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "wrong password"})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		}
		return
	}
	if !s.validateDeck(r.Context(), w, req.DeckID) {
		return
	}

	snap, ok := s.rooms.SnapshotRoom(req.RoomName)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "room not found"})
		return
	}
	for _, p := range snap.Players {
		if p.Name == req.PlayerName {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "player name already taken"})
			return
		}
	}
	writeJSON(w, http.StatusOK, snap)
}

type healthzResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
	Rooms  int    `json:"rooms"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthzResponse{
		Status: "ok",
		Uptime: time.Since(s.started).Round(time.Second).String(),
		Rooms:  s.games.ActiveGameCount(),
	})
}
