package engine

import (
	"context"
	"fmt"

	"github.com/tycho-games/magnate/internal/errors"
	"github.com/tycho-games/magnate/internal/game/domain"
	"github.com/tycho-games/magnate/internal/game/ledger"
)

// TradeTerms describes one side's view of a trade negotiation.
type TradeTerms struct {
	RecipientID     string
	OfferedSpaces   []int
	RequestedSpaces []int
	OfferedCoins    int
	RequestedCoins  int
}

// ProposeTrade opens a trade negotiation between the current player and
// another solvent player.
func (e *Engine) ProposeTrade(ctx context.Context, playerID string, terms TradeTerms) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, span := e.span(ctx, "proposeTrade", playerID)
	defer span.End()

	proposer, err := e.requireCurrent(playerID)
	if err != nil {
		return err
	}
	if e.session.Negotiation.Active() {
		return errors.New(errors.CodeNegotiationActive, "a negotiation is in progress")
	}
	if e.session.AwaitingPurchase {
		return errors.New(errors.CodePurchasePending, "a purchase decision is pending")
	}
	if terms.RecipientID == playerID {
		return errors.New(errors.CodeSelfTrade, "cannot trade with yourself")
	}
	recipient, ok := e.session.PlayerByID(terms.RecipientID)
	if !ok {
		return errors.New(errors.CodePlayerNotFound, fmt.Sprintf("recipient %s not found", terms.RecipientID))
	}
	if recipient.Bankrupt {
		return errors.New(errors.CodePlayerBankrupt, fmt.Sprintf("recipient %s is bankrupt", terms.RecipientID))
	}
	if err := e.validateTradeTermsLocked(playerID, terms.RecipientID, terms); err != nil {
		return err
	}

	e.session.Negotiation = domain.Negotiation{
		Kind: domain.NegotiationTrade,
		Trade: &domain.TradeOffer{
			ProposerID:      playerID,
			RecipientID:     terms.RecipientID,
			OfferedSpaces:   append([]int(nil), terms.OfferedSpaces...),
			RequestedSpaces: append([]int(nil), terms.RequestedSpaces...),
			OfferedCoins:    terms.OfferedCoins,
			RequestedCoins:  terms.RequestedCoins,
			Round:           1,
			LastModifiedBy:  playerID,
		},
	}
	e.logf(domain.LogTrade, "%s proposed a trade to %s", proposer.Name, recipient.Name)
	e.commit(ctx, playerID, "proposeTrade")
	return nil
}

// CounterTrade replaces the pending terms with a counter-offer. Either
// party may counter, except the side that modified the offer last.
func (e *Engine) CounterTrade(ctx context.Context, playerID string, terms TradeTerms) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, span := e.span(ctx, "counterTrade", playerID)
	defer span.End()

	offer, err := e.requireTradePartyLocked(playerID)
	if err != nil {
		return err
	}

	// A counter keeps the original proposer/recipient orientation:
	// offered always means "from the proposer's side".
	if err := e.validateTradeTermsLocked(offer.ProposerID, offer.RecipientID, terms); err != nil {
		return err
	}

	offer.PrevOfferedSpaces = offer.OfferedSpaces
	offer.PrevRequestedSpaces = offer.RequestedSpaces
	offer.PrevOfferedCoins = offer.OfferedCoins
	offer.PrevRequestedCoins = offer.RequestedCoins

	offer.OfferedSpaces = append([]int(nil), terms.OfferedSpaces...)
	offer.RequestedSpaces = append([]int(nil), terms.RequestedSpaces...)
	offer.OfferedCoins = terms.OfferedCoins
	offer.RequestedCoins = terms.RequestedCoins
	offer.Round++
	offer.IsCounter = true
	offer.LastModifiedBy = playerID

	player, _ := e.session.PlayerByID(playerID)
	e.logf(domain.LogTrade, "%s countered the trade (round %d)", player.Name, offer.Round)
	e.commit(ctx, playerID, "counterTrade")
	return nil
}

// AcceptTrade executes the pending trade atomically. Only the side that
// did not modify the offer last may accept. Both sides' preconditions are
// re-validated at accept time; any failure aborts the trade with no
// mutation and closes the negotiation.
func (e *Engine) AcceptTrade(ctx context.Context, playerID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, span := e.span(ctx, "acceptTrade", playerID)
	defer span.End()

	offer, err := e.requireTradePartyLocked(playerID)
	if err != nil {
		return err
	}

	proposer, _ := e.session.PlayerByID(offer.ProposerID)
	recipient, _ := e.session.PlayerByID(offer.RecipientID)
	if proposer == nil || recipient == nil {
		e.session.Negotiation.Clear()
		e.commit(ctx, playerID, "acceptTrade")
		return errors.New(errors.CodePlayerNotFound, "a trade party left the game")
	}

	// State may have changed since the offer was made; the ledger
	// re-checks every precondition and applies the swap atomically.
	err = e.ledger.ExecuteExchange(e.session, ledger.Exchange{
		ProposerID:      offer.ProposerID,
		RecipientID:     offer.RecipientID,
		OfferedSpaces:   offer.OfferedSpaces,
		RequestedSpaces: offer.RequestedSpaces,
		OfferedCoins:    offer.OfferedCoins,
		RequestedCoins:  offer.RequestedCoins,
	})
	if err != nil {
		e.session.Negotiation.Clear()
		e.logf(domain.LogTrade, "trade between %s and %s fell through", proposer.Name, recipient.Name)
		e.commit(ctx, playerID, "acceptTrade")
		return err
	}

	e.session.Negotiation.Clear()
	e.logf(domain.LogTrade, "%s and %s completed a trade", proposer.Name, recipient.Name)
	e.commit(ctx, playerID, "acceptTrade")
	return nil
}

// DeclineTrade closes the pending trade with no exchange.
func (e *Engine) DeclineTrade(ctx context.Context, playerID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, span := e.span(ctx, "declineTrade", playerID)
	defer span.End()

	offer, err := e.tradeOfferLocked()
	if err != nil {
		return err
	}
	if !offer.Involves(playerID) {
		return errors.New(errors.CodeNotTradeParty, fmt.Sprintf("player %s is not part of the trade", playerID))
	}

	player, _ := e.session.PlayerByID(playerID)
	e.session.Negotiation.Clear()
	e.logf(domain.LogTrade, "%s declined the trade", player.Name)
	e.commit(ctx, playerID, "declineTrade")
	return nil
}

// tradeOfferLocked returns the pending trade offer.
func (e *Engine) tradeOfferLocked() (*domain.TradeOffer, error) {
	if err := e.requirePlaying(); err != nil {
		return nil, err
	}
	if e.session.Negotiation.Kind != domain.NegotiationTrade {
		return nil, errors.New(errors.CodeNoNegotiation, "no trade is pending")
	}
	return e.session.Negotiation.Trade, nil
}

// requireTradePartyLocked checks the actor is the party expected to
// respond to the pending offer.
func (e *Engine) requireTradePartyLocked(playerID string) (*domain.TradeOffer, error) {
	offer, err := e.tradeOfferLocked()
	if err != nil {
		return nil, err
	}
	if !offer.Involves(playerID) {
		return nil, errors.New(errors.CodeNotTradeParty, fmt.Sprintf("player %s is not part of the trade", playerID))
	}
	if offer.LastModifiedBy == playerID {
		return nil, errors.New(errors.CodeTradeAwaitsOther, "waiting for the other party to respond")
	}
	return offer, nil
}

// validateTradeTermsLocked checks ownership of the named spaces and
// rejects spaces carrying buildings.
func (e *Engine) validateTradeTermsLocked(proposerID, recipientID string, terms TradeTerms) error {
	if terms.OfferedCoins < 0 || terms.RequestedCoins < 0 {
		return errors.New(errors.CodeInvalidAmount, "trade coin amounts must not be negative")
	}
	for _, idx := range terms.OfferedSpaces {
		if err := e.tradableSpaceLocked(proposerID, idx); err != nil {
			return err
		}
	}
	for _, idx := range terms.RequestedSpaces {
		if err := e.tradableSpaceLocked(recipientID, idx); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) tradableSpaceLocked(ownerID string, index int) error {
	space, ok := e.board.Space(index)
	if !ok {
		return errors.New(errors.CodeSpaceNotFound, fmt.Sprintf("space %d out of range", index))
	}
	if !space.IsProperty() {
		return errors.New(errors.CodeSpaceNotProperty, fmt.Sprintf("space %d (%s) is not a property", index, space.Name))
	}
	state := e.session.Spaces[index]
	if state.OwnerID != ownerID {
		return errors.New(errors.CodeSpaceNotOwned, fmt.Sprintf("space %d is not owned by %s", index, ownerID))
	}
	if state.Houses > 0 || state.Hotel {
		return errors.New(errors.CodeBuildLimit, fmt.Sprintf("space %d carries buildings and cannot be traded", index))
	}
	return nil
}

