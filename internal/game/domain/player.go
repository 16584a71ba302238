package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyPlayerName indicates a missing player display name.
var ErrEmptyPlayerName = errors.New("player display name is required")

// Player is one seated participant.
type Player struct {
	ID     string // session identity
	UserID string // linked external identity, may be empty for guests
	Name   string
	Avatar string
	Piece  string

	Position int // 0..board.Size-1, wraps
	Balance  int // must never go negative outside a pending negotiation
	Owned    map[int]bool

	Active   bool
	Bankrupt bool

	InJail        bool
	JailTurns     int
	JailFreeCards int
	Doubles       int // consecutive doubles this turn sequence

	Seat int // stable seat number, fixed at join

	Cosmetics []string
}

// NewPlayer seats a player with a generated session identity.
func NewPlayer(userID, name string, seat, startingBalance int, idGenerator func() (string, error)) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyPlayerName
	}
	playerID, err := idGenerator()
	if err != nil {
		return nil, fmt.Errorf("generate player id: %w", err)
	}
	return &Player{
		ID:      playerID,
		UserID:  strings.TrimSpace(userID),
		Name:    name,
		Balance: startingBalance,
		Owned:   make(map[int]bool),
		Active:  true,
		Seat:    seat,
	}, nil
}

// OwnedSpaces returns the owned space indexes in ascending order.
func (p *Player) OwnedSpaces() []int {
	out := make([]int, 0, len(p.Owned))
	for idx := range p.Owned {
		out = append(out, idx)
	}
	// insertion sort; ownership sets are tiny
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
