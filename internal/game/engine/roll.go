package engine

import (
	"context"
	"fmt"

	"github.com/tycho-games/magnate/internal/board"
	"github.com/tycho-games/magnate/internal/core/dice"
	"github.com/tycho-games/magnate/internal/errors"
	"github.com/tycho-games/magnate/internal/game/domain"
	"github.com/tycho-games/magnate/internal/game/ledger"
)

const maxConsecutiveDoubles = 3

// RollDice rolls for the current player and resolves the landed space.
func (e *Engine) RollDice(ctx context.Context, playerID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, span := e.span(ctx, "rollDice", playerID)
	defer span.End()

	player, err := e.requireCurrent(playerID)
	if err != nil {
		return err
	}
	if e.session.Negotiation.Active() {
		return errors.New(errors.CodeNegotiationActive, "a negotiation is in progress")
	}
	if e.session.AwaitingPurchase {
		return errors.New(errors.CodePurchasePending, "a purchase decision is pending")
	}
	if e.session.HasRolled {
		return errors.New(errors.CodeAlreadyRolled, "already rolled this turn")
	}

	pair := e.roll()
	e.session.Dice = pair
	e.logf(domain.LogRoll, "%s rolled %d and %d", player.Name, pair.First, pair.Second)

	if player.InJail {
		e.rollInJailLocked(ctx, player, pair)
		e.commit(ctx, playerID, "rollDice")
		return nil
	}

	if pair.IsDouble() {
		player.Doubles++
		if player.Doubles >= maxConsecutiveDoubles {
			// The third consecutive double jails the player; the
			// movement from that roll is not applied.
			e.sendToJailLocked(player)
			e.session.HasRolled = true
			player.Doubles = 0
			e.logf(domain.LogJail, "%s rolled three doubles and was sent to jail", player.Name)
			e.commit(ctx, playerID, "rollDice")
			return nil
		}
	} else {
		player.Doubles = 0
	}

	e.moveLocked(ctx, player, pair.Sum())
	e.resolveSpaceLocked(ctx, player)

	// A double grants another roll unless it landed the player in jail.
	if pair.IsDouble() && !player.InJail && !player.Bankrupt {
		e.session.HasRolled = false
	} else {
		e.session.HasRolled = true
	}
	e.commit(ctx, playerID, "rollDice")
	return nil
}

// rollInJailLocked applies a roll made from jail: doubles release and
// move; the third failed attempt forces the fine.
func (e *Engine) rollInJailLocked(ctx context.Context, player *domain.Player, pair dice.Pair) {
	e.session.HasRolled = true
	player.Doubles = 0

	if pair.IsDouble() {
		player.InJail = false
		player.JailTurns = 0
		e.logf(domain.LogJail, "%s rolled a double and left jail", player.Name)
		e.moveLocked(ctx, player, pair.Sum())
		e.resolveSpaceLocked(ctx, player)
		return
	}

	player.JailTurns++
	if player.JailTurns < maxConsecutiveDoubles {
		e.logf(domain.LogJail, "%s stayed in jail (attempt %d)", player.Name, player.JailTurns)
		return
	}

	// Third failed attempt: the fine is no longer optional.
	fine := e.session.Rules.JailFine
	if e.ledger.CanPay(e.session, player.ID, fine) {
		if err := e.ledger.Transfer(e.session, player.ID, ledger.Bank, fine); err == nil {
			e.accrueParkingPotLocked(fine)
			player.InJail = false
			player.JailTurns = 0
			e.logf(domain.LogJail, "%s paid the %d fine and left jail", player.Name, fine)
			e.moveLocked(ctx, player, pair.Sum())
			e.resolveSpaceLocked(ctx, player)
		}
		return
	}
	e.openDebtLocked(ctx, player.ID, ledger.Bank, fine, domain.DebtReasonJailFine)
}

// moveLocked advances the player forward, crediting the payday bonus on
// wrap. Negative steps move backwards without a bonus.
func (e *Engine) moveLocked(ctx context.Context, player *domain.Player, steps int) {
	target := player.Position + steps
	wrapped := target >= board.Size
	player.Position = ((target % board.Size) + board.Size) % board.Size
	if wrapped && steps > 0 {
		e.creditPaydayLocked(ctx, player)
	}
}

// moveToLocked places the player on an absolute space, crediting the
// payday bonus when the move passes the wrap space.
func (e *Engine) moveToLocked(ctx context.Context, player *domain.Player, target int) {
	if target <= player.Position {
		e.creditPaydayLocked(ctx, player)
	}
	player.Position = target
}

func (e *Engine) creditPaydayLocked(ctx context.Context, player *domain.Player) {
	bonus := e.session.Rules.PaydayBonus
	if err := e.ledger.Transfer(e.session, ledger.Bank, player.ID, bonus); err != nil {
		return
	}
	e.logf(domain.LogPayday, "%s collected a payday bonus of %d", player.Name, bonus)
}

// sendToJailLocked moves the player to jail without passing payday.
func (e *Engine) sendToJailLocked(player *domain.Player) {
	player.Position = board.JailIndex
	player.InJail = true
	player.JailTurns = 0
}

// resolveSpaceLocked dispatches the landed space by type.
func (e *Engine) resolveSpaceLocked(ctx context.Context, player *domain.Player) {
	space, ok := e.board.Space(player.Position)
	if !ok {
		return
	}

	switch space.Type {
	case board.SpaceTypeProperty:
		e.resolvePropertyLocked(ctx, player, space)

	case board.SpaceTypeTax:
		e.logf(domain.LogTax, "%s owes %d in %s", player.Name, space.TaxAmount, space.Name)
		e.payOrNegotiateLocked(ctx, player, ledger.Bank, space.TaxAmount, domain.DebtReasonTax)

	case board.SpaceTypePayday:
		// The wrap credit already happened during movement.

	case board.SpaceTypeJail:
		// Just visiting.

	case board.SpaceTypeFreeParking:
		if e.session.Rules.FreeParkingPot && e.session.FreeParkingPot > 0 {
			pot := e.session.FreeParkingPot
			e.session.FreeParkingPot = 0
			if err := e.ledger.Transfer(e.session, ledger.Bank, player.ID, pot); err == nil {
				e.logf(domain.LogInfo, "%s collected the parking pot of %d", player.Name, pot)
			}
		}

	case board.SpaceTypeGoToJail:
		e.sendToJailLocked(player)
		e.session.HasRolled = true
		e.logf(domain.LogJail, "%s was sent to jail", player.Name)

	case board.SpaceTypeCommunityChest:
		e.drawCardLocked(ctx, player, board.DeckCommunityChest)

	case board.SpaceTypeChance:
		e.drawCardLocked(ctx, player, board.DeckChance)
	}
}

// resolvePropertyLocked opens a purchase decision on unowned spaces and
// collects rent on spaces held by another player.
func (e *Engine) resolvePropertyLocked(ctx context.Context, player *domain.Player, space board.Space) {
	state := e.session.Spaces[space.Index]
	if state.OwnerID == "" {
		e.session.AwaitingPurchase = true
		e.logf(domain.LogInfo, "%s landed on unowned %s (price %d)", player.Name, space.Name, space.Price)
		return
	}
	if state.OwnerID == player.ID {
		return
	}
	owner, ok := e.session.PlayerByID(state.OwnerID)
	if !ok || owner.Bankrupt {
		return
	}

	rent := e.ledger.Rent(e.session, space.Index)
	if rent == 0 {
		return
	}
	e.logf(domain.LogRent, "%s owes %s rent of %d for %s", player.Name, owner.Name, rent, space.Name)
	e.payOrNegotiateLocked(ctx, player, owner.ID, rent, domain.DebtReasonRent)
}

// payOrNegotiateLocked transfers a required payment, opening a bankruptcy
// negotiation when the payer cannot cover it.
func (e *Engine) payOrNegotiateLocked(ctx context.Context, payer *domain.Player, creditorID string, amount int, reason domain.DebtReason) {
	if amount <= 0 {
		return
	}
	if e.ledger.CanPay(e.session, payer.ID, amount) {
		if err := e.ledger.Transfer(e.session, payer.ID, creditorID, amount); err != nil {
			return
		}
		if creditorID == ledger.Bank && (reason == domain.DebtReasonTax || reason == domain.DebtReasonCard || reason == domain.DebtReasonJailFine) {
			e.accrueParkingPotLocked(amount)
		}
		return
	}
	e.openDebtLocked(ctx, payer.ID, creditorID, amount, reason)
}

// accrueParkingPotLocked diverts a bank-bound payment into the free
// parking pot when that rule is enabled.
func (e *Engine) accrueParkingPotLocked(amount int) {
	if e.session.Rules.FreeParkingPot {
		e.session.FreeParkingPot += amount
	}
}

func reasonLabel(reason domain.DebtReason) string {
	switch reason {
	case domain.DebtReasonRent:
		return "rent"
	case domain.DebtReasonTax:
		return "tax"
	case domain.DebtReasonCard:
		return "a card effect"
	case domain.DebtReasonJailFine:
		return "the jail fine"
	default:
		return fmt.Sprintf("reason %d", reason)
	}
}
