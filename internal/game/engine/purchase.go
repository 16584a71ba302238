package engine

import (
	"context"
	"fmt"

	"github.com/tycho-games/magnate/internal/errors"
	"github.com/tycho-games/magnate/internal/game/domain"
	"github.com/tycho-games/magnate/internal/game/ledger"
)

// DecidePurchase resolves a pending purchase decision. Buying transfers
// the listed price to the bank; declining opens an auction among the
// other solvent players.
func (e *Engine) DecidePurchase(ctx context.Context, playerID string, buy bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, span := e.span(ctx, "decidePurchase", playerID)
	defer span.End()

	player, err := e.requireCurrent(playerID)
	if err != nil {
		return err
	}
	if !e.session.AwaitingPurchase {
		return errors.New(errors.CodeNoPurchasePending, "no purchase decision is pending")
	}
	if e.session.Negotiation.Active() {
		return errors.New(errors.CodeNegotiationActive, "a negotiation is in progress")
	}

	index := player.Position
	space, _ := e.board.Space(index)

	if buy {
		if err := e.ledger.PurchaseProperty(e.session, playerID, index); err != nil {
			// Rejected outright; the decision stays pending so the
			// player may still decline.
			return err
		}
		e.session.AwaitingPurchase = false
		e.logf(domain.LogBuy, "%s bought %s for %d", player.Name, space.Name, space.Price)
		e.commit(ctx, playerID, "decidePurchase")
		return nil
	}

	e.session.AwaitingPurchase = false
	e.logf(domain.LogInfo, "%s declined to buy %s", player.Name, space.Name)
	e.openAuctionLocked(player, index)
	e.commit(ctx, playerID, "decidePurchase")
	return nil
}

// Mortgage raises coins against a property. Allowed for the current
// player outside negotiations, and for the debtor of an open bankruptcy
// negotiation at any time.
func (e *Engine) Mortgage(ctx context.Context, playerID string, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, span := e.span(ctx, "mortgage", playerID)
	defer span.End()

	if err := e.requireAssetManagementLocked(playerID); err != nil {
		return err
	}
	if err := e.ledger.Mortgage(e.session, playerID, index); err != nil {
		return err
	}
	space, _ := e.board.Space(index)
	player, _ := e.session.PlayerByID(playerID)
	e.logf(domain.LogInfo, "%s mortgaged %s for %d", player.Name, space.Name, space.MortgageValue())
	e.commit(ctx, playerID, "mortgage")
	return nil
}

// Unmortgage lifts a mortgage at its cost plus interest.
func (e *Engine) Unmortgage(ctx context.Context, playerID string, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, span := e.span(ctx, "unmortgage", playerID)
	defer span.End()

	if err := e.requireAssetManagementLocked(playerID); err != nil {
		return err
	}
	if err := e.ledger.Unmortgage(e.session, playerID, index); err != nil {
		return err
	}
	space, _ := e.board.Space(index)
	player, _ := e.session.PlayerByID(playerID)
	e.logf(domain.LogInfo, "%s lifted the mortgage on %s", player.Name, space.Name)
	e.commit(ctx, playerID, "unmortgage")
	return nil
}

// Build adds the next improvement to a space: a house, or a hotel once
// four houses stand.
func (e *Engine) Build(ctx context.Context, playerID string, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, span := e.span(ctx, "build", playerID)
	defer span.End()

	if _, err := e.requireCurrent(playerID); err != nil {
		return err
	}
	if e.session.Negotiation.Active() {
		return errors.New(errors.CodeNegotiationActive, "a negotiation is in progress")
	}
	if _, ok := e.board.Space(index); !ok {
		return errors.New(errors.CodeSpaceNotFound, fmt.Sprintf("space %d does not exist", index))
	}

	var err error
	built := "a house"
	if e.session.Spaces[index].Houses == 4 {
		err = e.ledger.BuildHotel(e.session, playerID, index)
		built = "a hotel"
	} else {
		err = e.ledger.BuildHouse(e.session, playerID, index)
	}
	if err != nil {
		return err
	}
	space, _ := e.board.Space(index)
	player, _ := e.session.PlayerByID(playerID)
	e.logf(domain.LogBuild, "%s built %s on %s", player.Name, built, space.Name)
	e.commit(ctx, playerID, "build")
	return nil
}

// SellBuilding removes the top improvement from a space for half its
// cost. Available to bankruptcy debtors to raise funds.
func (e *Engine) SellBuilding(ctx context.Context, playerID string, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, span := e.span(ctx, "sellBuilding", playerID)
	defer span.End()

	if err := e.requireAssetManagementLocked(playerID); err != nil {
		return err
	}
	if err := e.ledger.SellBuilding(e.session, playerID, index); err != nil {
		return err
	}
	space, _ := e.board.Space(index)
	player, _ := e.session.PlayerByID(playerID)
	e.logf(domain.LogBuild, "%s sold a building on %s", player.Name, space.Name)
	e.commit(ctx, playerID, "sellBuilding")
	return nil
}

// BuyCosmetic purchases a catalog cosmetic from the shared wallet. Open
// in the lobby and, during play, to the current player.
func (e *Engine) BuyCosmetic(ctx context.Context, playerID, cosmeticID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, span := e.span(ctx, "buyCosmetic", playerID)
	defer span.End()

	if e.session.Phase == domain.PhasePlaying {
		if _, err := e.requireCurrent(playerID); err != nil {
			return err
		}
		if e.session.Negotiation.Active() {
			return errors.New(errors.CodeNegotiationActive, "a negotiation is in progress")
		}
	} else if e.session.Phase != domain.PhaseLobby {
		return errors.New(errors.CodeWrongPhase, "session is finished")
	}

	if err := e.ledger.PurchaseCosmetic(e.session, playerID, cosmeticID); err != nil {
		return err
	}
	player, _ := e.session.PlayerByID(playerID)
	e.logf(domain.LogInfo, "%s bought cosmetic %s", player.Name, cosmeticID)
	e.commit(ctx, playerID, "buyCosmetic")
	return nil
}

// UseJailFreeCard spends a jail release card before rolling.
func (e *Engine) UseJailFreeCard(ctx context.Context, playerID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, span := e.span(ctx, "useJailFreeCard", playerID)
	defer span.End()

	player, err := e.requireCurrent(playerID)
	if err != nil {
		return err
	}
	if e.session.Negotiation.Active() {
		return errors.New(errors.CodeNegotiationActive, "a negotiation is in progress")
	}
	if !player.InJail {
		return errors.New(errors.CodeNotInJail, fmt.Sprintf("player %s is not in jail", playerID))
	}
	if e.session.HasRolled {
		return errors.New(errors.CodeAlreadyRolled, "already rolled this turn")
	}
	if player.JailFreeCards == 0 {
		return errors.New(errors.CodeNoJailCard, fmt.Sprintf("player %s holds no jail release card", playerID))
	}

	player.JailFreeCards--
	player.InJail = false
	player.JailTurns = 0
	e.logf(domain.LogJail, "%s used a jail release card", player.Name)
	e.commit(ctx, playerID, "useJailFreeCard")
	return nil
}

// PayJailFine pays the release fine voluntarily before rolling.
func (e *Engine) PayJailFine(ctx context.Context, playerID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, span := e.span(ctx, "payJailFine", playerID)
	defer span.End()

	player, err := e.requireCurrent(playerID)
	if err != nil {
		return err
	}
	if e.session.Negotiation.Active() {
		return errors.New(errors.CodeNegotiationActive, "a negotiation is in progress")
	}
	if !player.InJail {
		return errors.New(errors.CodeNotInJail, fmt.Sprintf("player %s is not in jail", playerID))
	}
	if e.session.HasRolled {
		return errors.New(errors.CodeAlreadyRolled, "already rolled this turn")
	}

	fine := e.session.Rules.JailFine
	if err := e.ledger.Transfer(e.session, playerID, ledger.Bank, fine); err != nil {
		return err
	}
	e.accrueParkingPotLocked(fine)
	player.InJail = false
	player.JailTurns = 0
	e.logf(domain.LogJail, "%s paid the %d fine and left jail", player.Name, fine)
	e.commit(ctx, playerID, "payJailFine")
	return nil
}

// requireAssetManagementLocked allows asset actions for the current
// player outside negotiations, or for the active bankruptcy debtor.
func (e *Engine) requireAssetManagementLocked(playerID string) error {
	if err := e.requirePlaying(); err != nil {
		return err
	}
	player, ok := e.session.PlayerByID(playerID)
	if !ok {
		return errors.New(errors.CodePlayerNotFound, fmt.Sprintf("player %s not found", playerID))
	}
	if player.Bankrupt {
		return errors.New(errors.CodePlayerBankrupt, fmt.Sprintf("player %s is bankrupt", playerID))
	}

	negotiation := e.session.Negotiation
	if negotiation.Kind == domain.NegotiationBankruptcy {
		if negotiation.Bankruptcy.DebtorID == playerID {
			return nil
		}
		return errors.New(errors.CodeNegotiationActive, "a bankruptcy negotiation is in progress")
	}
	if negotiation.Active() {
		return errors.New(errors.CodeNegotiationActive, "a negotiation is in progress")
	}

	current := e.session.CurrentPlayerRef()
	if current == nil || current.ID != playerID {
		return errors.New(errors.CodeNotYourTurn, fmt.Sprintf("player %s does not hold the turn", playerID))
	}
	return nil
}
