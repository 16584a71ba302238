package domain

import "time"

// EventType identifies the type of a session journal event.
type EventType string

const (
	// EventTypeSessionCreated records session creation.
	EventTypeSessionCreated EventType = "SESSION_CREATED"
	// EventTypeGameStarted records the lobby-to-playing transition.
	EventTypeGameStarted EventType = "GAME_STARTED"
	// EventTypeActionApplied records one committed player or timeout action.
	EventTypeActionApplied EventType = "ACTION_APPLIED"
	// EventTypeGameFinished records the win.
	EventTypeGameFinished EventType = "GAME_FINISHED"
)

// Event captures an immutable session-scoped journal record. Journaling is
// fire-and-forget after a mutation commits; it never blocks the pipeline.
type Event struct {
	SessionID   string
	Seq         uint64
	Timestamp   time.Time
	Type        EventType
	ActorID     string
	Action      string
	PayloadJSON []byte
}

// IsValid reports whether the event type is supported.
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeSessionCreated,
		EventTypeGameStarted,
		EventTypeActionApplied,
		EventTypeGameFinished:
		return true
	default:
		return false
	}
}
