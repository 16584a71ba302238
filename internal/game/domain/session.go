// Package domain holds the authoritative state of one game session: the
// aggregate root, players, per-space state, the active negotiation, and
// the game log. State transitions live in the engine package; this package
// only knows shapes, constructors, and pure helpers.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tycho-games/magnate/internal/board"
	"github.com/tycho-games/magnate/internal/core/dice"
	"github.com/tycho-games/magnate/internal/id"
)

// Phase describes the lifecycle state of a session.
type Phase int

const (
	// PhaseUnspecified represents an invalid phase value.
	PhaseUnspecified Phase = iota
	// PhaseLobby indicates the session is gathering players.
	PhaseLobby
	// PhasePlaying indicates turns are being taken.
	PhasePlaying
	// PhaseFinished indicates the game has a winner.
	PhaseFinished
)

var (
	// ErrEmptyHostName indicates a missing host display name.
	ErrEmptyHostName = errors.New("host display name is required")
	// ErrInvalidRules indicates rules that fail validation.
	ErrInvalidRules = errors.New("session rules are invalid")
)

// Rules are the per-session configurable game parameters.
type Rules struct {
	MaxPlayers      int
	StartingBalance int
	PaydayBonus     int
	JailFine        int
	// FreeParkingPot accrues taxes and card fines into a pot paid out on
	// landing when true; when false free parking is a no-op.
	FreeParkingPot bool
	TurnTimeLimit  time.Duration
	TurnExtension  time.Duration
	DebtDeadline   time.Duration
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		MaxPlayers:      6,
		StartingBalance: 1500,
		PaydayBonus:     200,
		JailFine:        50,
		FreeParkingPot:  false,
		TurnTimeLimit:   90 * time.Second,
		TurnExtension:   30 * time.Second,
		DebtDeadline:    2 * time.Minute,
	}
}

// Validate reports whether the rules are usable.
func (r Rules) Validate() error {
	if r.MaxPlayers < 2 {
		return fmt.Errorf("%w: max players %d under 2", ErrInvalidRules, r.MaxPlayers)
	}
	if r.StartingBalance <= 0 {
		return fmt.Errorf("%w: starting balance %d", ErrInvalidRules, r.StartingBalance)
	}
	if r.TurnTimeLimit <= 0 || r.DebtDeadline <= 0 {
		return fmt.Errorf("%w: non-positive timer", ErrInvalidRules)
	}
	return nil
}

// SpaceState is the mutable per-session state of one board space.
// The immutable definition lives in the board registry.
type SpaceState struct {
	OwnerID   string // empty = bank-owned/unowned
	Houses    int    // 0..4, exclusive with Hotel
	Hotel     bool
	Mortgaged bool
}

// TurnTimer tracks the current turn's deadline.
type TurnTimer struct {
	StartedAt     time.Time
	Limit         time.Duration
	Active        bool
	ExtensionUsed bool
}

// Session is the aggregate root for one game.
type Session struct {
	ID      string
	HostID  string
	Phase   Phase
	Rules   Rules
	Players []*Player
	Spaces  [board.Size]SpaceState

	CurrentPlayer    int // index into Players
	Dice             dice.Pair
	Turn             int
	WinnerID         string
	LastAction       string
	AwaitingPurchase bool
	HasRolled        bool

	Negotiation    Negotiation
	DrawnCard      *DrawnCard
	Log            *GameLog
	Timer          TurnTimer
	FreeParkingPot int
	Spectators     []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateSessionInput describes the metadata needed to create a session.
type CreateSessionInput struct {
	HostUserID string
	HostName   string
	Rules      Rules
}

// CreateSession creates a lobby-phase session with the host seated first.
func CreateSession(input CreateSessionInput, now func() time.Time, idGenerator func() (string, error)) (*Session, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateSessionInput(input)
	if err != nil {
		return nil, err
	}

	sessionID, err := idGenerator()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	createdAt := now().UTC()
	session := &Session{
		ID:        sessionID,
		Phase:     PhaseLobby,
		Rules:     normalized.Rules,
		Log:       NewGameLog(defaultLogCapacity),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	host, err := NewPlayer(normalized.HostUserID, normalized.HostName, 0, normalized.Rules.StartingBalance, idGenerator)
	if err != nil {
		return nil, err
	}
	session.Players = append(session.Players, host)
	session.HostID = host.ID
	return session, nil
}

// NormalizeCreateSessionInput trims and validates session input metadata.
func NormalizeCreateSessionInput(input CreateSessionInput) (CreateSessionInput, error) {
	input.HostName = strings.TrimSpace(input.HostName)
	if input.HostName == "" {
		return CreateSessionInput{}, ErrEmptyHostName
	}
	input.HostUserID = strings.TrimSpace(input.HostUserID)
	if (input.Rules == Rules{}) {
		input.Rules = DefaultRules()
	}
	if err := input.Rules.Validate(); err != nil {
		return CreateSessionInput{}, err
	}
	return input, nil
}

// PlayerByID returns the player with the given session identity.
func (s *Session) PlayerByID(playerID string) (*Player, bool) {
	for _, p := range s.Players {
		if p.ID == playerID {
			return p, true
		}
	}
	return nil, false
}

// CurrentPlayerRef returns the player whose turn it is.
func (s *Session) CurrentPlayerRef() *Player {
	if s.CurrentPlayer < 0 || s.CurrentPlayer >= len(s.Players) {
		return nil
	}
	return s.Players[s.CurrentPlayer]
}

// SolventPlayers returns all players still in the game.
func (s *Session) SolventPlayers() []*Player {
	var out []*Player
	for _, p := range s.Players {
		if !p.Bankrupt {
			out = append(out, p)
		}
	}
	return out
}

// SpaceOwner returns the owning player of a space, if any.
func (s *Session) SpaceOwner(index int) (*Player, bool) {
	if index < 0 || index >= board.Size {
		return nil, false
	}
	ownerID := s.Spaces[index].OwnerID
	if ownerID == "" {
		return nil, false
	}
	return s.PlayerByID(ownerID)
}

// Touch stamps the aggregate as mutated.
func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}
