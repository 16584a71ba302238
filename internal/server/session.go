package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tycho-games/magnate/internal/errors"
	"github.com/tycho-games/magnate/internal/game/domain"
	"github.com/tycho-games/magnate/internal/game/snapshot"
	"github.com/tycho-games/magnate/internal/storage/cursor"
)

const (
	defaultEventPageSize = 100
	maxEventPageSize     = 500
)

type createRequest struct {
	HostName string `json:"hostName"`
}

type createResponse struct {
	SessionID string `json:"sessionId"`
	PlayerID  string `json:"playerId"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(errors.CodeInvalidArgument, "decode request body", err))
		return
	}
	if strings.TrimSpace(req.HostName) == "" {
		respondError(w, errors.New(errors.CodeInvalidArgument, "hostName is required"))
		return
	}

	rm, err := s.createRoom(req.HostName)
	if err != nil {
		respondError(w, err)
		return
	}

	var resp createResponse
	rm.engine.View(func(session *domain.Session) {
		resp = createResponse{SessionID: session.ID, PlayerID: session.HostID}
	})
	respondJSON(w, http.StatusCreated, resp)
}

type joinRequest struct {
	Name string `json:"name"`
}

type joinResponse struct {
	PlayerID string `json:"playerId"`
	Seat     int    `json:"seat"`
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	rm, ok := s.room(r.PathValue("id"))
	if !ok {
		respondError(w, errors.New(errors.CodeNotFound, "session not found"))
		return
	}

	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(errors.CodeInvalidArgument, "decode request body", err))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, errors.New(errors.CodeInvalidArgument, "name is required"))
		return
	}

	player, err := rm.engine.Join(r.Context(), "", req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, joinResponse{PlayerID: player.ID, Seat: player.Seat})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	rm, ok := s.room(r.PathValue("id"))
	if !ok {
		respondError(w, errors.New(errors.CodeNotFound, "session not found"))
		return
	}

	var state snapshot.State
	rm.engine.View(func(session *domain.Session) {
		state = snapshot.Build(session)
	})
	respondJSON(w, http.StatusOK, state)
}

type eventRecord struct {
	Seq       uint64          `json:"seq"`
	Timestamp time.Time       `json:"timestamp"`
	Type      string          `json:"type"`
	ActorID   string          `json:"actorId,omitempty"`
	Action    string          `json:"action,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type eventPage struct {
	Events     []eventRecord `json:"events"`
	NextCursor string        `json:"nextCursor,omitempty"`
}

// handleEvents lists a session's journal in sequence order, paginated
// with opaque cursors.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if _, ok := s.room(sessionID); !ok {
		respondError(w, errors.New(errors.CodeNotFound, "session not found"))
		return
	}
	if s.journal == nil {
		respondError(w, errors.New(errors.CodeNotFound, "event journal is not enabled"))
		return
	}

	fromSeq := uint64(1)
	if token := r.URL.Query().Get("cursor"); token != "" {
		c, err := cursor.Decode(token, sessionID)
		if err != nil {
			respondError(w, errors.Wrap(errors.CodeInvalidArgument, "decode cursor", err))
			return
		}
		fromSeq = c.NextSeq
	}

	limit := defaultEventPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, errors.New(errors.CodeInvalidArgument, "limit must be a positive integer"))
			return
		}
		limit = min(parsed, maxEventPageSize)
	}

	events, err := s.journal.List(r.Context(), sessionID, fromSeq, limit)
	if err != nil {
		respondError(w, errors.Wrap(errors.CodeUnknown, "list events", err))
		return
	}

	page := eventPage{Events: make([]eventRecord, 0, len(events))}
	for _, event := range events {
		page.Events = append(page.Events, eventRecord{
			Seq:       event.Seq,
			Timestamp: event.Timestamp,
			Type:      string(event.Type),
			ActorID:   event.ActorID,
			Action:    event.Action,
			Payload:   event.PayloadJSON,
		})
	}
	if len(events) == limit {
		token, err := cursor.Encode(cursor.Cursor{
			SessionID: sessionID,
			NextSeq:   events[len(events)-1].Seq + 1,
		})
		if err != nil {
			respondError(w, errors.Wrap(errors.CodeUnknown, "encode cursor", err))
			return
		}
		page.NextCursor = token
	}
	respondJSON(w, http.StatusOK, page)
}
