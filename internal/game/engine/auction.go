package engine

import (
	"context"
	"fmt"

	"github.com/tycho-games/magnate/internal/errors"
	"github.com/tycho-games/magnate/internal/game/domain"
)

// openAuctionLocked starts an auction for a declined property. Every
// solvent player except the decliner is an eligible bidder; with nobody
// eligible the property simply stays with the bank.
func (e *Engine) openAuctionLocked(decliner *domain.Player, index int) {
	var eligible []string
	for _, p := range e.session.SolventPlayers() {
		if p.ID != decliner.ID {
			eligible = append(eligible, p.ID)
		}
	}
	if len(eligible) == 0 {
		return
	}

	space, _ := e.board.Space(index)
	e.session.Negotiation = domain.Negotiation{
		Kind: domain.NegotiationAuction,
		Auction: &domain.AuctionState{
			SpaceIndex:  index,
			Passed:      make(map[string]bool),
			EligibleIDs: eligible,
		},
	}
	e.logf(domain.LogAuction, "%s is up for auction", space.Name)
}

// Bid raises the auction's high bid.
func (e *Engine) Bid(ctx context.Context, playerID string, amount int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, span := e.span(ctx, "bid", playerID)
	defer span.End()

	auction, err := e.auctionLocked(playerID)
	if err != nil {
		return err
	}
	if amount <= auction.HighBid {
		return errors.New(errors.CodeBidTooLow,
			fmt.Sprintf("bid %d does not beat the current %d", amount, auction.HighBid))
	}
	if !e.ledger.CanPay(e.session, playerID, amount) {
		return errors.New(errors.CodeInsufficientFunds,
			fmt.Sprintf("player %s cannot cover a bid of %d", playerID, amount))
	}

	auction.HighBid = amount
	auction.HighBidderID = playerID
	player, _ := e.session.PlayerByID(playerID)
	e.logf(domain.LogAuction, "%s bid %d", player.Name, amount)

	e.maybeResolveAuctionLocked(ctx)
	e.commit(ctx, playerID, "bid")
	return nil
}

// PassAuction withdraws a bidder from the auction.
func (e *Engine) PassAuction(ctx context.Context, playerID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, span := e.span(ctx, "passAuction", playerID)
	defer span.End()

	auction, err := e.auctionLocked(playerID)
	if err != nil {
		return err
	}

	auction.Passed[playerID] = true
	player, _ := e.session.PlayerByID(playerID)
	e.logf(domain.LogAuction, "%s passed", player.Name)

	e.maybeResolveAuctionLocked(ctx)
	e.commit(ctx, playerID, "passAuction")
	return nil
}

// auctionLocked returns the running auction after eligibility checks.
func (e *Engine) auctionLocked(playerID string) (*domain.AuctionState, error) {
	if err := e.requirePlaying(); err != nil {
		return nil, err
	}
	if e.session.Negotiation.Kind != domain.NegotiationAuction {
		return nil, errors.New(errors.CodeNoNegotiation, "no auction is running")
	}
	auction := e.session.Negotiation.Auction
	if !auction.Eligible(playerID) {
		return nil, errors.New(errors.CodeNotEligibleBidder,
			fmt.Sprintf("player %s is not an eligible bidder", playerID))
	}
	if auction.Passed[playerID] {
		return nil, errors.New(errors.CodeAlreadyPassed,
			fmt.Sprintf("player %s already passed", playerID))
	}
	return auction, nil
}

// maybeResolveAuctionLocked closes the auction once all bidders but one
// have passed (that one wins at their standing bid) or everyone passed
// (no sale).
func (e *Engine) maybeResolveAuctionLocked(ctx context.Context) {
	auction := e.session.Negotiation.Auction
	remaining := auction.RemainingBidders()
	space, _ := e.board.Space(auction.SpaceIndex)

	switch {
	case len(remaining) == 0:
		e.session.Negotiation.Clear()
		e.logf(domain.LogAuction, "nobody bid on %s; it stays with the bank", space.Name)

	case len(remaining) == 1 && remaining[0] == auction.HighBidderID:
		winnerID := auction.HighBidderID
		bid := auction.HighBid
		e.session.Negotiation.Clear()
		if err := e.ledger.PurchasePropertyAt(e.session, winnerID, auction.SpaceIndex, bid); err != nil {
			e.logf(domain.LogAuction, "auction for %s could not settle; it stays with the bank", space.Name)
			return
		}
		winner, _ := e.session.PlayerByID(winnerID)
		e.logf(domain.LogAuction, "%s won %s at auction for %d", winner.Name, space.Name, bid)
	}
}
