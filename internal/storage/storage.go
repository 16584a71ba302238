package storage

import (
	"context"

	"github.com/tycho-games/magnate/internal/game/domain"
)

// EventJournal persists the ordered action history of sessions.
type EventJournal interface {
	// Append stores one event. Events of a session arrive with strictly
	// increasing sequence numbers.
	Append(ctx context.Context, event domain.Event) error
	// List returns up to limit events of a session with sequence numbers
	// greater than or equal to fromSeq, in sequence order. A limit of
	// zero or less means no cap.
	List(ctx context.Context, sessionID string, fromSeq uint64, limit int) ([]domain.Event, error)
}
