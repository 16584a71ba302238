package engine

import (
	"context"

	"github.com/tycho-games/magnate/internal/errors"
	"github.com/tycho-games/magnate/internal/game/domain"
)

// EndTurn closes the current turn and hands the dice to the next solvent
// player.
func (e *Engine) EndTurn(ctx context.Context, playerID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, span := e.span(ctx, "endTurn", playerID)
	defer span.End()

	if _, err := e.requireCurrent(playerID); err != nil {
		return err
	}
	if !e.session.HasRolled {
		return errors.New(errors.CodeRollRequired, "roll before ending the turn")
	}
	if e.session.AwaitingPurchase {
		return errors.New(errors.CodePurchasePending, "a purchase decision is pending")
	}
	if e.session.Negotiation.Active() {
		return errors.New(errors.CodeNegotiationActive, "a negotiation is in progress")
	}

	if e.checkWinLocked() {
		e.commit(ctx, playerID, "endTurn")
		return nil
	}
	e.advanceTurnLocked()
	e.commit(ctx, playerID, "endTurn")
	return nil
}

// advanceTurnLocked clears per-turn flags and seats the next solvent
// player, restarting the turn timer.
func (e *Engine) advanceTurnLocked() {
	s := e.session
	if current := s.CurrentPlayerRef(); current != nil {
		current.Doubles = 0
	}
	s.HasRolled = false
	s.AwaitingPurchase = false

	for range s.Players {
		s.CurrentPlayer = (s.CurrentPlayer + 1) % len(s.Players)
		if !s.Players[s.CurrentPlayer].Bankrupt {
			break
		}
	}
	s.Turn++
	e.startTurnTimerLocked()
	e.logf(domain.LogTurn, "it is now %s's turn", s.Players[s.CurrentPlayer].Name)
}

// checkWinLocked finishes the session when exactly one solvent player
// remains.
func (e *Engine) checkWinLocked() bool {
	solvent := e.session.SolventPlayers()
	if len(solvent) != 1 || e.session.Phase != domain.PhasePlaying {
		return false
	}
	winner := solvent[0]
	e.session.Phase = domain.PhaseFinished
	e.session.WinnerID = winner.ID
	e.stopTimersLocked()
	e.logf(domain.LogInfo, "%s won the game", winner.Name)
	return true
}

// RequestTurnExtension extends the running turn timer once per turn.
func (e *Engine) RequestTurnExtension(ctx context.Context, playerID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, span := e.span(ctx, "requestTurnExtension", playerID)
	defer span.End()

	if _, err := e.requireCurrent(playerID); err != nil {
		return err
	}
	timer := &e.session.Timer
	if !timer.Active {
		return errors.New(errors.CodeTimerInactive, "the turn timer is not running")
	}
	if timer.ExtensionUsed {
		return errors.New(errors.CodeExtensionUsed, "the extension was already used this turn")
	}

	timer.Limit += e.session.Rules.TurnExtension
	timer.ExtensionUsed = true
	e.rescheduleTurnTimerLocked()
	player, _ := e.session.PlayerByID(playerID)
	e.logf(domain.LogTurn, "%s extended the turn timer", player.Name)
	e.commit(ctx, playerID, "requestTurnExtension")
	return nil
}
