package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/tycho-games/magnate/internal/errors"
	"github.com/tycho-games/magnate/internal/game/domain"
	"github.com/tycho-games/magnate/internal/game/ledger"
)

// openDebtLocked opens a bankruptcy negotiation for an unpayable debt.
// If another negotiation already occupies the slot the debt queues and
// opens when the slot frees up.
func (e *Engine) openDebtLocked(ctx context.Context, debtorID, creditorID string, amount int, reason domain.DebtReason) {
	debt := domain.BankruptcyNegotiation{
		DebtorID:   debtorID,
		CreditorID: creditorID,
		Amount:     amount,
		Reason:     reason,
	}
	if e.session.Negotiation.Active() {
		e.debtQueue = append(e.debtQueue, debt)
		return
	}
	e.activateDebtLocked(ctx, debt)
}

// activateDebtLocked installs a debt negotiation with a fresh deadline.
func (e *Engine) activateDebtLocked(ctx context.Context, debt domain.BankruptcyNegotiation) {
	debt.Deadline = e.clock().Add(e.session.Rules.DebtDeadline)
	e.session.Negotiation = domain.Negotiation{
		Kind:       domain.NegotiationBankruptcy,
		Bankruptcy: &debt,
	}

	debtor, _ := e.session.PlayerByID(debt.DebtorID)
	creditorName := "the bank"
	if creditor, ok := e.session.PlayerByID(debt.CreditorID); ok {
		creditorName = creditor.Name
	}
	e.logf(domain.LogBankruptcy, "%s owes %s %d for %s and must raise funds",
		debtor.Name, creditorName, debt.Amount, reasonLabel(debt.Reason))

	e.scheduleDebtTimerLocked(debt.Deadline)
}

// PayDebt retries the owed payment after the debtor raised funds.
func (e *Engine) PayDebt(ctx context.Context, playerID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, span := e.span(ctx, "payDebt", playerID)
	defer span.End()

	debt, err := e.debtLocked(playerID)
	if err != nil {
		return err
	}
	if !e.ledger.CanPay(e.session, playerID, debt.Amount) {
		player, _ := e.session.PlayerByID(playerID)
		return errors.New(errors.CodeInsufficientFunds,
			fmt.Sprintf("player %s holds %d, owes %d", playerID, player.Balance, debt.Amount))
	}

	if err := e.ledger.Transfer(e.session, playerID, debt.CreditorID, debt.Amount); err != nil {
		return err
	}
	if debt.CreditorID == ledger.Bank && debt.Reason != domain.DebtReasonRent {
		e.accrueParkingPotLocked(debt.Amount)
	}
	if debt.Reason == domain.DebtReasonJailFine {
		player, _ := e.session.PlayerByID(playerID)
		player.InJail = false
		player.JailTurns = 0
	}

	e.closeDebtLocked(ctx)
	player, _ := e.session.PlayerByID(playerID)
	e.logf(domain.LogBankruptcy, "%s settled the debt of %d", player.Name, debt.Amount)
	e.commit(ctx, playerID, "payDebt")
	return nil
}

// debtLocked returns the open debt negotiation for the acting debtor.
func (e *Engine) debtLocked(playerID string) (*domain.BankruptcyNegotiation, error) {
	if err := e.requirePlaying(); err != nil {
		return nil, err
	}
	if e.session.Negotiation.Kind != domain.NegotiationBankruptcy {
		return nil, errors.New(errors.CodeNoNegotiation, "no debt settlement is open")
	}
	debt := e.session.Negotiation.Bankruptcy
	if debt.DebtorID != playerID {
		return nil, errors.New(errors.CodeNotDebtor,
			fmt.Sprintf("player %s is not the debtor", playerID))
	}
	return debt, nil
}

// forceBankruptcyLocked liquidates the debtor after the deadline: all
// holdings transfer to the creditor (the bank reclaims them when no
// creditor exists) and the debtor leaves the turn order.
func (e *Engine) forceBankruptcyLocked(ctx context.Context) {
	debt := e.session.Negotiation.Bankruptcy
	debtor, ok := e.session.PlayerByID(debt.DebtorID)
	if !ok {
		e.closeDebtLocked(ctx)
		return
	}

	wasCurrent := e.session.CurrentPlayerRef() == debtor
	if err := e.ledger.Liquidate(e.session, debt.DebtorID, debt.CreditorID); err != nil {
		e.closeDebtLocked(ctx)
		return
	}
	e.logf(domain.LogBankrupt, "%s went bankrupt", debtor.Name)
	e.closeDebtLocked(ctx)

	// Queued debts involving the liquidated player are void.
	kept := e.debtQueue[:0]
	for _, queued := range e.debtQueue {
		if queued.DebtorID != debt.DebtorID && queued.CreditorID != debt.DebtorID {
			kept = append(kept, queued)
		}
	}
	e.debtQueue = kept
	e.openQueuedDebtLocked(ctx)

	if e.checkWinLocked() {
		return
	}
	if wasCurrent {
		e.advanceTurnLocked()
	}
}

// closeDebtLocked clears the negotiation slot, cancels the deadline
// timer, and activates the next queued debt if one waits.
func (e *Engine) closeDebtLocked(ctx context.Context) {
	e.session.Negotiation.Clear()
	if e.debtTimer != nil {
		e.debtTimer.Stop()
		e.debtTimer = nil
	}
	e.openQueuedDebtLocked(ctx)
}

// openQueuedDebtLocked pops the next pending debt into the negotiation
// slot, skipping entries whose parties went bankrupt meanwhile.
func (e *Engine) openQueuedDebtLocked(ctx context.Context) {
	if e.session.Negotiation.Active() {
		return
	}
	for len(e.debtQueue) > 0 {
		debt := e.debtQueue[0]
		e.debtQueue = e.debtQueue[1:]
		debtor, ok := e.session.PlayerByID(debt.DebtorID)
		if !ok || debtor.Bankrupt {
			continue
		}
		e.activateDebtLocked(ctx, debt)
		return
	}
}

// scheduleDebtTimerLocked arms the deadline for the active negotiation.
func (e *Engine) scheduleDebtTimerLocked(deadline time.Time) {
	if e.debtTimer != nil {
		e.debtTimer.Stop()
	}
	wait := deadline.Sub(e.clock())
	if wait < 0 {
		wait = 0
	}
	e.debtTimer = time.AfterFunc(wait, e.onDebtDeadline)
}

// onDebtDeadline is the synthetic timeout action for an expired debt
// settlement. It runs through the same lock as player input.
func (e *Engine) onDebtDeadline() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.Phase != domain.PhasePlaying {
		return
	}
	if e.session.Negotiation.Kind != domain.NegotiationBankruptcy {
		return
	}
	debt := e.session.Negotiation.Bankruptcy
	if e.clock().Before(debt.Deadline) {
		// Deadline moved (a queued debt re-armed the timer); re-check later.
		e.scheduleDebtTimerLocked(debt.Deadline)
		return
	}

	ctx := context.Background()
	e.forceBankruptcyLocked(ctx)
	e.commit(ctx, debt.DebtorID, "debtDeadline")
}
