package engine

import (
	"context"
	"testing"

	"github.com/tycho-games/magnate/internal/errors"
	"github.com/tycho-games/magnate/internal/game/domain"
)

// declineOntoAuction rolls the current player onto space 3 and declines
// the purchase, opening an auction among the other players.
func declineOntoAuction(t *testing.T, g *testGame) {
	t.Helper()
	ctx := context.Background()
	if err := g.e.RollDice(ctx, g.ids[0]); err != nil {
		t.Fatalf("RollDice() error: %v", err)
	}
	if err := g.e.DecidePurchase(ctx, g.ids[0], false); err != nil {
		t.Fatalf("DecidePurchase() error: %v", err)
	}
}

func TestAuctionLastBidderWins(t *testing.T) {
	g := newGame(t, 3, Options{Roller: scriptRolls(pair(1, 2))})
	ctx := context.Background()
	declineOntoAuction(t, g)

	if err := g.e.Bid(ctx, g.ids[1], 100); err != nil {
		t.Fatalf("Bid() error: %v", err)
	}
	if err := g.e.PassAuction(ctx, g.ids[2]); err != nil {
		t.Fatalf("PassAuction() error: %v", err)
	}

	s := g.snapshot()
	if s.Negotiation.Active() {
		t.Fatal("auction should be closed")
	}
	if s.Spaces[3].OwnerID != g.ids[1] {
		t.Fatalf("space owner = %q, want %q", s.Spaces[3].OwnerID, g.ids[1])
	}
	if got := g.player(t, g.ids[1]).Balance; got != 1500-100 {
		t.Fatalf("winner balance = %d, want %d", got, 1500-100)
	}
}

func TestAuctionOutbidThenPass(t *testing.T) {
	g := newGame(t, 3, Options{Roller: scriptRolls(pair(1, 2))})
	ctx := context.Background()
	declineOntoAuction(t, g)

	if err := g.e.Bid(ctx, g.ids[1], 60); err != nil {
		t.Fatalf("first Bid() error: %v", err)
	}
	if err := g.e.Bid(ctx, g.ids[2], 90); err != nil {
		t.Fatalf("second Bid() error: %v", err)
	}
	if err := g.e.PassAuction(ctx, g.ids[1]); err != nil {
		t.Fatalf("PassAuction() error: %v", err)
	}

	s := g.snapshot()
	if s.Spaces[3].OwnerID != g.ids[2] {
		t.Fatalf("space owner = %q, want %q", s.Spaces[3].OwnerID, g.ids[2])
	}
	if got := g.player(t, g.ids[2]).Balance; got != 1500-90 {
		t.Fatalf("winner balance = %d, want %d", got, 1500-90)
	}
}

func TestAuctionEveryonePasses(t *testing.T) {
	g := newGame(t, 3, Options{Roller: scriptRolls(pair(1, 2))})
	ctx := context.Background()
	declineOntoAuction(t, g)

	if err := g.e.PassAuction(ctx, g.ids[1]); err != nil {
		t.Fatalf("PassAuction() error: %v", err)
	}
	if err := g.e.PassAuction(ctx, g.ids[2]); err != nil {
		t.Fatalf("PassAuction() error: %v", err)
	}

	s := g.snapshot()
	if s.Negotiation.Active() {
		t.Fatal("auction should be closed")
	}
	if s.Spaces[3].OwnerID != "" {
		t.Fatalf("space owner = %q, want unowned", s.Spaces[3].OwnerID)
	}
}

func TestAuctionDeclinerCannotBid(t *testing.T) {
	g := newGame(t, 3, Options{Roller: scriptRolls(pair(1, 2))})
	declineOntoAuction(t, g)
	wantCode(t, g.e.Bid(context.Background(), g.ids[0], 80), errors.CodeNotEligibleBidder)
}

func TestAuctionBidMustBeatHighBid(t *testing.T) {
	g := newGame(t, 3, Options{Roller: scriptRolls(pair(1, 2))})
	ctx := context.Background()
	declineOntoAuction(t, g)

	wantCode(t, g.e.Bid(ctx, g.ids[1], 0), errors.CodeBidTooLow)
	if err := g.e.Bid(ctx, g.ids[1], 50); err != nil {
		t.Fatalf("Bid() error: %v", err)
	}
	wantCode(t, g.e.Bid(ctx, g.ids[2], 50), errors.CodeBidTooLow)
}

func TestAuctionBidBeyondBalance(t *testing.T) {
	g := newGame(t, 3, Options{Roller: scriptRolls(pair(1, 2))})
	g.mutate(func(s *domain.Session) {
		s.Players[1].Balance = 30
	})
	declineOntoAuction(t, g)
	wantCode(t, g.e.Bid(context.Background(), g.ids[1], 100), errors.CodeInsufficientFunds)
}

func TestAuctionPassTwice(t *testing.T) {
	g := newGame(t, 3, Options{Roller: scriptRolls(pair(1, 2))})
	ctx := context.Background()
	declineOntoAuction(t, g)

	if err := g.e.PassAuction(ctx, g.ids[1]); err != nil {
		t.Fatalf("PassAuction() error: %v", err)
	}
	wantCode(t, g.e.PassAuction(ctx, g.ids[1]), errors.CodeAlreadyPassed)
}

func TestRollBlockedDuringAuction(t *testing.T) {
	g := newGame(t, 3, Options{Roller: scriptRolls(pair(1, 2))})
	declineOntoAuction(t, g)
	wantCode(t, g.e.RollDice(context.Background(), g.ids[0]), errors.CodeNegotiationActive)
}
