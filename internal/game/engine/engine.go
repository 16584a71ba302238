// Package engine orchestrates a game session: it routes inbound player
// actions, owns the turn timer and negotiation deadlines, and is the only
// component that decides whose action is legal now.
//
// A session's state is mutated strictly sequentially: the engine mutex
// admits one action at a time, and timers feed synthetic timeout actions
// through the same path, so timeout handling shares every consistency
// guarantee with player-driven mutations.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tycho-games/magnate/internal/board"
	"github.com/tycho-games/magnate/internal/core/dice"
	"github.com/tycho-games/magnate/internal/errors"
	"github.com/tycho-games/magnate/internal/game/deck"
	"github.com/tycho-games/magnate/internal/game/domain"
	"github.com/tycho-games/magnate/internal/game/ledger"
	"github.com/tycho-games/magnate/internal/id"
)

// Journal persists committed session events. Appends are fire-and-forget:
// a journal failure is logged, never surfaced to the action path.
type Journal interface {
	Append(ctx context.Context, event domain.Event) error
}

// Options configures a new engine.
type Options struct {
	Rules       domain.Rules
	Seed        int64
	Clock       func() time.Time
	IDGenerator func() (string, error)
	// Roller overrides the dice source. Defaults to fair two-die rolls
	// from the seeded generator.
	Roller func() dice.Pair
	// OnCommit is invoked after every committed mutation, while the
	// engine lock is held. Callers must copy what they need and return.
	OnCommit func(*domain.Session)
	Journal  Journal
}

// Engine is the authoritative state machine for one session.
type Engine struct {
	mu      sync.Mutex
	session *domain.Session
	board   *board.Board
	ledger  *ledger.Ledger
	decks   map[board.Deck]*deck.Deck
	rng     *rand.Rand
	roll    func() dice.Pair
	clock   func() time.Time
	idGen   func() (string, error)

	onCommit func(*domain.Session)
	journal  Journal
	tracer   trace.Tracer
	seq      uint64

	turnTimer *time.Timer
	debtTimer *time.Timer
	// turnGen invalidates scheduled turn deadlines: a fired timer whose
	// generation no longer matches belongs to an already-ended turn.
	turnGen uint64

	// debts owed by players other than the active negotiation's debtor,
	// opened one at a time as negotiations resolve
	debtQueue []domain.BankruptcyNegotiation
}

// New creates an engine with a lobby-phase session hosted by the given
// player.
func New(hostUserID, hostName string, opts Options) (*Engine, error) {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	idGen := opts.IDGenerator
	if idGen == nil {
		idGen = id.NewID
	}

	session, err := domain.CreateSession(domain.CreateSessionInput{
		HostUserID: hostUserID,
		HostName:   hostName,
		Rules:      opts.Rules,
	}, clock, idGen)
	if err != nil {
		return nil, err
	}

	b := board.New()
	e := &Engine{
		session:  session,
		board:    b,
		ledger:   ledger.New(b),
		decks:    make(map[board.Deck]*deck.Deck),
		rng:      dice.NewRng(opts.Seed),
		clock:    clock,
		idGen:    idGen,
		onCommit: opts.OnCommit,
		journal:  opts.Journal,
		tracer:   otel.Tracer("magnate/engine"),
	}
	e.roll = opts.Roller
	if e.roll == nil {
		e.roll = func() dice.Pair { return dice.RollPair(e.rng) }
	}
	e.appendJournal(context.Background(), domain.EventTypeSessionCreated, session.HostID, "createSession", nil)
	return e, nil
}

// SessionID returns the session identity.
func (e *Engine) SessionID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.ID
}

// View runs fn against the session under the engine lock. fn must not
// retain the session past its return.
func (e *Engine) View(fn func(*domain.Session)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.session)
}

// Stop cancels any pending timers. The engine must not be used after.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTimersLocked()
}

// Join seats a new player while the session is in the lobby.
func (e *Engine) Join(ctx context.Context, userID, name string) (*domain.Player, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s.Phase != domain.PhaseLobby {
		return nil, errors.New(errors.CodeSessionStarted, "session is no longer accepting players")
	}
	if len(s.Players) >= s.Rules.MaxPlayers {
		return nil, errors.New(errors.CodeSessionFull,
			fmt.Sprintf("session holds %d of %d players", len(s.Players), s.Rules.MaxPlayers))
	}

	player, err := domain.NewPlayer(userID, name, len(s.Players), s.Rules.StartingBalance, e.idGen)
	if err != nil {
		return nil, err
	}
	s.Players = append(s.Players, player)
	e.logf(domain.LogInfo, "%s joined the game", player.Name)
	e.commit(ctx, player.ID, "join")
	return player, nil
}

// AddSpectator registers a read-only observer.
func (e *Engine) AddSpectator(ctx context.Context, spectatorID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, existing := range e.session.Spectators {
		if existing == spectatorID {
			return
		}
	}
	e.session.Spectators = append(e.session.Spectators, spectatorID)
	e.commit(ctx, spectatorID, "spectate")
}

// RemoveSpectator drops an observer from the roster when it detaches.
func (e *Engine) RemoveSpectator(ctx context.Context, spectatorID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, existing := range e.session.Spectators {
		if existing == spectatorID {
			e.session.Spectators = append(e.session.Spectators[:i], e.session.Spectators[i+1:]...)
			e.commit(ctx, spectatorID, "unspectate")
			return
		}
	}
}

// Start transitions the session from lobby to playing. Host only.
func (e *Engine) Start(ctx context.Context, playerID string) error {
	ctx, span := e.tracer.Start(ctx, "engine.Start")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s.Phase != domain.PhaseLobby {
		return errors.New(errors.CodeWrongPhase, "session already started")
	}
	if playerID != s.HostID {
		return errors.New(errors.CodeNotHost, fmt.Sprintf("player %s is not the host", playerID))
	}
	if len(s.Players) < 2 {
		return errors.New(errors.CodeTooFewPlayers,
			fmt.Sprintf("session has %d players, need at least 2", len(s.Players)))
	}

	for _, deckKind := range []board.Deck{board.DeckCommunityChest, board.DeckChance} {
		d, err := deck.New(e.board.DeckCardIDs(deckKind), e.rng)
		if err != nil {
			return fmt.Errorf("build deck: %w", err)
		}
		e.decks[deckKind] = d
	}

	s.Phase = domain.PhasePlaying
	s.CurrentPlayer = 0
	s.Turn = 1
	e.startTurnTimerLocked()
	e.logf(domain.LogTurn, "game started, %s goes first", s.Players[0].Name)
	e.appendJournal(ctx, domain.EventTypeGameStarted, playerID, "start", nil)
	e.commit(ctx, playerID, "start")
	return nil
}

// requirePlaying checks the session phase.
func (e *Engine) requirePlaying() error {
	if e.session.Phase != domain.PhasePlaying {
		return errors.New(errors.CodeWrongPhase, "session is not in the playing phase")
	}
	return nil
}

// requireCurrent checks that the actor holds the turn.
func (e *Engine) requireCurrent(playerID string) (*domain.Player, error) {
	if err := e.requirePlaying(); err != nil {
		return nil, err
	}
	current := e.session.CurrentPlayerRef()
	if current == nil || current.ID != playerID {
		return nil, errors.New(errors.CodeNotYourTurn, fmt.Sprintf("player %s does not hold the turn", playerID))
	}
	if current.Bankrupt {
		return nil, errors.New(errors.CodePlayerBankrupt, fmt.Sprintf("player %s is bankrupt", playerID))
	}
	return current, nil
}

// logf appends a narration entry to the bounded game log.
func (e *Engine) logf(category domain.LogCategory, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	e.session.Log.Append(domain.LogEntry{
		Message:   message,
		Category:  category,
		Timestamp: e.clock().UTC(),
	})
	e.session.LastAction = message
}

// commit finalizes a mutation: stamps the aggregate, journals the action,
// and raises the state-changed hook. Runs with the engine lock held.
func (e *Engine) commit(ctx context.Context, actorID, action string) {
	s := e.session
	s.Touch(e.clock())
	e.appendJournal(ctx, domain.EventTypeActionApplied, actorID, action, nil)
	if s.Phase == domain.PhaseFinished {
		e.appendJournal(ctx, domain.EventTypeGameFinished, actorID, action, nil)
	}
	if e.onCommit != nil {
		e.onCommit(s)
	}
}

// appendJournal records a session event, best effort.
func (e *Engine) appendJournal(ctx context.Context, eventType domain.EventType, actorID, action string, payload any) {
	if e.journal == nil {
		return
	}
	var payloadJSON []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			log.Printf("journal payload marshal failed session_id=%s action=%s err=%v", e.session.ID, action, err)
		} else {
			payloadJSON = encoded
		}
	}
	e.seq++
	event := domain.Event{
		SessionID:   e.session.ID,
		Seq:         e.seq,
		Timestamp:   e.clock().UTC(),
		Type:        eventType,
		ActorID:     actorID,
		Action:      action,
		PayloadJSON: payloadJSON,
	}
	if err := e.journal.Append(ctx, event); err != nil {
		log.Printf("journal append failed session_id=%s seq=%d err=%v", e.session.ID, e.seq, err)
	}
}

// span starts a tracing span for one action.
func (e *Engine) span(ctx context.Context, action, playerID string) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, "engine."+action,
		trace.WithAttributes(
			attribute.String("session.id", e.session.ID),
			attribute.String("player.id", playerID),
		))
}
