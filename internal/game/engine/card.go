package engine

import (
	"context"

	"github.com/tycho-games/magnate/internal/board"
	"github.com/tycho-games/magnate/internal/game/domain"
	"github.com/tycho-games/magnate/internal/game/ledger"
)

// drawCardLocked pops the next card from a deck, echoes it on the
// session, and applies its effect.
func (e *Engine) drawCardLocked(ctx context.Context, player *domain.Player, deckKind board.Deck) {
	d, ok := e.decks[deckKind]
	if !ok {
		return
	}
	card, ok := e.board.Card(d.Draw())
	if !ok {
		return
	}

	e.session.DrawnCard = &domain.DrawnCard{
		Card:    card,
		DrawnBy: player.ID,
		DrawnAt: e.clock().UTC(),
	}
	e.logf(domain.LogCard, "%s drew %q: %s", player.Name, card.Title, card.Description)

	switch card.Effect {
	case board.CardEffectGainCoins:
		if err := e.ledger.Transfer(e.session, ledger.Bank, player.ID, card.Amount); err != nil {
			return
		}

	case board.CardEffectLoseCoins:
		e.payOrNegotiateLocked(ctx, player, ledger.Bank, card.Amount, domain.DebtReasonCard)

	case board.CardEffectMoveTo:
		e.moveToLocked(ctx, player, card.Target)
		e.resolveSpaceLocked(ctx, player)

	case board.CardEffectMoveRelative:
		e.moveLocked(ctx, player, card.Amount)
		e.resolveSpaceLocked(ctx, player)

	case board.CardEffectCollectFromPlayers:
		e.collectFromPlayersLocked(ctx, player, card.Amount)

	case board.CardEffectPayToPlayers:
		e.payToPlayersLocked(ctx, player, card.Amount)

	case board.CardEffectJailFree:
		player.JailFreeCards++
	}
}

// collectFromPlayersLocked debits every other solvent player in favor of
// the drawer. Each payment is a separate transfer; a shortfall by one
// payer escalates to a bankruptcy negotiation for that player only,
// without blocking the others.
func (e *Engine) collectFromPlayersLocked(ctx context.Context, drawer *domain.Player, amount int) {
	for _, other := range e.session.SolventPlayers() {
		if other.ID == drawer.ID {
			continue
		}
		e.payOrNegotiateLocked(ctx, other, drawer.ID, amount, domain.DebtReasonCard)
	}
}

// payToPlayersLocked credits every other solvent player at the drawer's
// expense, one transfer at a time. When the drawer runs short mid-way the
// remaining creditors queue behind a bankruptcy negotiation each.
func (e *Engine) payToPlayersLocked(ctx context.Context, drawer *domain.Player, amount int) {
	for _, other := range e.session.SolventPlayers() {
		if other.ID == drawer.ID {
			continue
		}
		e.payOrNegotiateLocked(ctx, drawer, other.ID, amount, domain.DebtReasonCard)
	}
}
