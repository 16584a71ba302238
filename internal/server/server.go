// Package server exposes sessions over HTTP: a small REST surface for
// creating and joining, an event journal feed, and a websocket per
// session carrying player actions in and state updates out.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/tycho-games/magnate/internal/broadcast"
	"github.com/tycho-games/magnate/internal/errors"
	"github.com/tycho-games/magnate/internal/game/domain"
	"github.com/tycho-games/magnate/internal/game/engine"
	"github.com/tycho-games/magnate/internal/game/snapshot"
	"github.com/tycho-games/magnate/internal/id"
	"github.com/tycho-games/magnate/internal/storage"
)

// Config configures a server.
type Config struct {
	// Rules applies to every created session. Zero value means defaults.
	Rules domain.Rules
	// Journal persists session events and backs the event feed. Optional.
	Journal storage.EventJournal
	// Seed feeds each session's dice generator. Zero means wall clock.
	Seed int64
}

// Server routes session requests to their engines and fans committed
// state out through the hub.
type Server struct {
	mu      sync.RWMutex
	rooms   map[string]*room
	hub     *broadcast.Hub
	rules   domain.Rules
	journal storage.EventJournal
	seed    int64
}

// room pairs an engine with the last state broadcast to its clients.
type room struct {
	engine *engine.Engine

	mu   sync.Mutex
	prev snapshot.State
}

// New creates a server with no sessions.
func New(cfg Config) *Server {
	rules := cfg.Rules
	if rules == (domain.Rules{}) {
		rules = domain.DefaultRules()
	}
	return &Server{
		rooms:   make(map[string]*room),
		hub:     broadcast.NewHub(),
		rules:   rules,
		journal: cfg.Journal,
		seed:    cfg.Seed,
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", s.handleCreate)
	mux.HandleFunc("POST /sessions/{id}/join", s.handleJoin)
	mux.HandleFunc("GET /sessions/{id}", s.handleSnapshot)
	mux.HandleFunc("GET /sessions/{id}/events", s.handleEvents)
	mux.HandleFunc("GET /sessions/{id}/ws", s.handleSocket)
	return mux
}

// Close stops every session's timers.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rm := range s.rooms {
		rm.engine.Stop()
	}
	s.rooms = make(map[string]*room)
}

func (s *Server) room(sessionID string) (*room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rm, ok := s.rooms[sessionID]
	return rm, ok
}

// createRoom builds an engine whose commits are diffed against the
// room's last broadcast state and pushed to attached clients.
func (s *Server) createRoom(hostName string) (*room, error) {
	hostUserID, err := id.NewID()
	if err != nil {
		return nil, errors.Wrap(errors.CodeUnknown, "generate host id", err)
	}

	rm := &room{}
	eng, err := engine.New(hostUserID, hostName, engine.Options{
		Rules:    s.rules,
		Seed:     s.seed,
		Journal:  s.journal,
		OnCommit: func(session *domain.Session) { s.publish(rm, session) },
	})
	if err != nil {
		return nil, err
	}
	rm.engine = eng
	eng.View(func(session *domain.Session) {
		rm.prev = snapshot.Build(session)
	})

	s.mu.Lock()
	s.rooms[eng.SessionID()] = rm
	s.mu.Unlock()
	return rm, nil
}

// sendSnapshot delivers the room's broadcast baseline to a new client.
// Holding mu across the send keeps a concurrent commit from slipping a
// patch to the client ahead of a snapshot that predates it.
func (rm *room) sendSnapshot(client *broadcast.Client) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return client.Send(broadcast.SnapshotEnvelope(rm.prev))
}

// publish runs under the engine lock. It copies the session into a wire
// state, records it as the new baseline, and broadcasts the diff.
func (s *Server) publish(rm *room, session *domain.Session) {
	next := snapshot.Build(session)

	rm.mu.Lock()
	patch, changed := snapshot.Diff(rm.prev, next)
	rm.prev = next
	rm.mu.Unlock()

	if changed {
		s.hub.Broadcast(next.SessionID, broadcast.PatchEnvelope(patch))
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)
	respondJSON(w, code.HTTPStatus(), map[string]string{
		"code":    string(code),
		"message": err.Error(),
	})
}
