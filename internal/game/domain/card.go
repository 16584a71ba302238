package domain

import (
	"time"

	"github.com/tycho-games/magnate/internal/board"
)

// DrawnCard echoes the last card shown, for client display.
type DrawnCard struct {
	Card    board.Card
	DrawnBy string
	DrawnAt time.Time
}
