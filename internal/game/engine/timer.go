package engine

import (
	"context"
	"time"

	"github.com/tycho-games/magnate/internal/game/domain"
)

// startTurnTimerLocked arms the turn deadline for the player now holding
// the turn. A non-positive limit disables turn timing.
func (e *Engine) startTurnTimerLocked() {
	limit := e.session.Rules.TurnTimeLimit
	if limit <= 0 {
		e.session.Timer = domain.TurnTimer{}
		return
	}
	e.session.Timer = domain.TurnTimer{
		StartedAt: e.clock().UTC(),
		Limit:     limit,
		Active:    true,
	}
	e.armTurnTimerLocked(limit)
}

// rescheduleTurnTimerLocked re-arms the deadline after the timer's limit
// changed, keeping the original start point.
func (e *Engine) rescheduleTurnTimerLocked() {
	timer := e.session.Timer
	if !timer.Active {
		return
	}
	remaining := timer.StartedAt.Add(timer.Limit).Sub(e.clock())
	if remaining < 0 {
		remaining = 0
	}
	e.armTurnTimerLocked(remaining)
}

func (e *Engine) armTurnTimerLocked(d time.Duration) {
	e.turnGen++
	gen := e.turnGen
	if e.turnTimer != nil {
		e.turnTimer.Stop()
	}
	e.turnTimer = time.AfterFunc(d, func() { e.onTurnDeadline(gen) })
}

// stopTimersLocked cancels both the turn and debt deadlines.
func (e *Engine) stopTimersLocked() {
	e.turnGen++
	if e.turnTimer != nil {
		e.turnTimer.Stop()
		e.turnTimer = nil
	}
	if e.debtTimer != nil {
		e.debtTimer.Stop()
		e.debtTimer = nil
	}
	e.session.Timer.Active = false
}

// onTurnDeadline is the synthetic action a fired turn timer feeds through
// the engine lock. It resolves whatever the timed-out player left hanging
// with that situation's default outcome, then hands the turn over.
func (e *Engine) onTurnDeadline(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.turnGen || e.session.Phase != domain.PhasePlaying {
		return
	}
	ctx := context.Background()
	s := e.session
	s.Timer.Active = false
	current := s.CurrentPlayerRef()
	actorID := ""
	if current != nil {
		actorID = current.ID
	}

	switch s.Negotiation.Kind {
	case domain.NegotiationTrade:
		s.Negotiation.Clear()
		e.logf(domain.LogTrade, "the trade offer expired")

	case domain.NegotiationAuction:
		auction := s.Negotiation.Auction
		for _, bidderID := range auction.RemainingBidders() {
			if bidderID == auction.HighBidderID {
				continue
			}
			auction.Passed[bidderID] = true
		}
		e.logf(domain.LogAuction, "the auction timed out")
		e.maybeResolveAuctionLocked(ctx)

	case domain.NegotiationBankruptcy:
		// the debt deadline owns this resolution; give the turn timer
		// another full window so it fires again afterwards if needed
		e.startTurnTimerLocked()
		e.commit(ctx, actorID, "turnDeadline")
		return
	}

	if s.AwaitingPurchase && current != nil {
		s.AwaitingPurchase = false
		space, _ := e.board.Space(current.Position)
		e.logf(domain.LogBuy, "%s let the option on %s lapse", current.Name, space.Name)
		e.openAuctionLocked(current, current.Position)
		if s.Negotiation.Active() {
			// the auction owns the turn now; the next deadline
			// auto-passes whoever is still in it
			e.startTurnTimerLocked()
			e.commit(ctx, actorID, "turnDeadline")
			return
		}
	}

	if current != nil {
		e.logf(domain.LogTurn, "%s ran out of time", current.Name)
	}
	if !e.checkWinLocked() {
		e.advanceTurnLocked()
	}
	e.commit(ctx, actorID, "turnDeadline")
}
