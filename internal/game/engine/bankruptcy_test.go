package engine

import (
	"context"
	"testing"
	"time"

	"github.com/tycho-games/magnate/internal/errors"
	"github.com/tycho-games/magnate/internal/game/domain"
)

// stageHotelRent gives the second player a hotel on Crown Boulevard so
// the first player's next roll of (1,2) from space 36 lands on a rent of
// 3000.
func stageHotelRent(g *testGame) {
	g.mutate(func(s *domain.Session) {
		s.Spaces[39].OwnerID = g.ids[1]
		s.Spaces[39].Hotel = true
		s.Players[1].Owned[39] = true
		s.CurrentPlayerRef().Position = 36
	})
}

func TestUnpayableRentOpensDebt(t *testing.T) {
	g := newGame(t, 2, Options{Roller: scriptRolls(pair(1, 2))})
	stageHotelRent(g)

	if err := g.e.RollDice(context.Background(), g.ids[0]); err != nil {
		t.Fatalf("RollDice() error: %v", err)
	}
	s := g.snapshot()
	if s.Negotiation.Kind != domain.NegotiationBankruptcy {
		t.Fatalf("negotiation kind = %v, want bankruptcy", s.Negotiation.Kind)
	}
	debt := s.Negotiation.Bankruptcy
	if debt.DebtorID != g.ids[0] || debt.CreditorID != g.ids[1] {
		t.Fatalf("debt parties = %q->%q, want %q->%q", debt.DebtorID, debt.CreditorID, g.ids[0], g.ids[1])
	}
	if debt.Amount != 3000 {
		t.Fatalf("debt amount = %d, want 3000", debt.Amount)
	}
	wantDeadline := g.clock.Now().Add(s.Rules.DebtDeadline)
	if !debt.Deadline.Equal(wantDeadline) {
		t.Fatalf("deadline = %v, want %v", debt.Deadline, wantDeadline)
	}
	// No partial payment happens while the debt is open.
	if got := g.player(t, g.ids[0]).Balance; got != 1500 {
		t.Fatalf("debtor balance = %d, want 1500", got)
	}
}

func TestDebtSettledAfterMortgaging(t *testing.T) {
	g := newGame(t, 2, Options{Roller: scriptRolls(pair(1, 3))})
	ctx := context.Background()
	// Ada holds 150 and a property worth 200, then lands on a 200 tax.
	g.mutate(func(s *domain.Session) {
		p := s.CurrentPlayerRef()
		p.Balance = 150
		p.Owned[18] = true
		s.Spaces[18].OwnerID = p.ID
	})
	if err := g.e.RollDice(ctx, g.ids[0]); err != nil {
		t.Fatalf("RollDice() error: %v", err)
	}
	if s := g.snapshot(); s.Negotiation.Kind != domain.NegotiationBankruptcy {
		t.Fatalf("negotiation kind = %v, want bankruptcy", s.Negotiation.Kind)
	}

	// Still short: 150 < 200.
	wantCode(t, g.e.PayDebt(ctx, g.ids[0]), errors.CodeInsufficientFunds)

	// Mortgaging space 18 raises 100, enough to settle.
	if err := g.e.Mortgage(ctx, g.ids[0], 18); err != nil {
		t.Fatalf("Mortgage() error: %v", err)
	}
	if err := g.e.PayDebt(ctx, g.ids[0]); err != nil {
		t.Fatalf("PayDebt() error: %v", err)
	}

	s := g.snapshot()
	if s.Negotiation.Active() {
		t.Fatal("settled debt should close the negotiation")
	}
	p := g.player(t, g.ids[0])
	if p.Balance != 50 {
		t.Fatalf("balance = %d, want 50", p.Balance)
	}
	if p.Bankrupt {
		t.Fatal("a settled debtor stays in the game")
	}
	if !p.Owned[18] || !s.Spaces[18].Mortgaged {
		t.Fatal("debtor should retain the mortgaged property")
	}
}

func TestPayDebtByNonDebtor(t *testing.T) {
	g := newGame(t, 2, Options{Roller: scriptRolls(pair(1, 2))})
	stageHotelRent(g)
	ctx := context.Background()
	if err := g.e.RollDice(ctx, g.ids[0]); err != nil {
		t.Fatalf("RollDice() error: %v", err)
	}
	wantCode(t, g.e.PayDebt(ctx, g.ids[1]), errors.CodeNotDebtor)
}

func TestDebtDeadlineForcesLiquidation(t *testing.T) {
	g := newGame(t, 3, Options{Roller: scriptRolls(pair(1, 2))})
	stageHotelRent(g)
	g.mutate(func(s *domain.Session) {
		s.Spaces[8].OwnerID = g.ids[0]
		s.Players[0].Owned[8] = true
	})
	if err := g.e.RollDice(context.Background(), g.ids[0]); err != nil {
		t.Fatalf("RollDice() error: %v", err)
	}

	g.clock.Advance(g.snapshot().Rules.DebtDeadline + time.Second)
	g.e.onDebtDeadline()

	s := g.snapshot()
	debtor := g.player(t, g.ids[0])
	creditor := g.player(t, g.ids[1])
	if !debtor.Bankrupt {
		t.Fatal("deadline should liquidate the debtor")
	}
	if debtor.Balance != 0 || len(debtor.Owned) != 0 {
		t.Fatalf("debtor keeps balance %d and %d spaces, want nothing", debtor.Balance, len(debtor.Owned))
	}
	if s.Spaces[8].OwnerID != g.ids[1] || !creditor.Owned[8] {
		t.Fatal("debtor holdings should transfer to the creditor")
	}
	if creditor.Balance != 1500+1500 {
		t.Fatalf("creditor balance = %d, want %d", creditor.Balance, 3000)
	}
	if s.Negotiation.Active() {
		t.Fatal("negotiation should be closed")
	}
	if s.Phase != domain.PhasePlaying {
		t.Fatal("two players remain, the game goes on")
	}
	if s.CurrentPlayer != 1 {
		t.Fatalf("current player index = %d, want 1 (turn passes on)", s.CurrentPlayer)
	}
}

func TestLastOpponentBankruptcyEndsGame(t *testing.T) {
	g := newGame(t, 2, Options{Roller: scriptRolls(pair(1, 2))})
	stageHotelRent(g)
	if err := g.e.RollDice(context.Background(), g.ids[0]); err != nil {
		t.Fatalf("RollDice() error: %v", err)
	}

	g.clock.Advance(g.snapshot().Rules.DebtDeadline + time.Second)
	g.e.onDebtDeadline()

	s := g.snapshot()
	if s.Phase != domain.PhaseFinished {
		t.Fatalf("phase = %v, want finished", s.Phase)
	}
	if s.WinnerID != g.ids[1] {
		t.Fatalf("winner = %q, want %q", s.WinnerID, g.ids[1])
	}
	if s.Timer.Active {
		t.Fatal("turn timer should be stopped with the game")
	}
}

func TestDeadlineBeforeExpiryIsIgnored(t *testing.T) {
	g := newGame(t, 2, Options{Roller: scriptRolls(pair(1, 2))})
	stageHotelRent(g)
	if err := g.e.RollDice(context.Background(), g.ids[0]); err != nil {
		t.Fatalf("RollDice() error: %v", err)
	}

	// Fires early, for example after a reschedule; nothing may happen.
	g.e.onDebtDeadline()

	s := g.snapshot()
	if s.Negotiation.Kind != domain.NegotiationBankruptcy {
		t.Fatal("debt should remain open before its deadline")
	}
	if g.player(t, g.ids[0]).Bankrupt {
		t.Fatal("debtor must not be liquidated before the deadline")
	}
}

func TestShortfallAgainstSeveralCreditorsQueues(t *testing.T) {
	g := newGame(t, 3, Options{})
	ctx := context.Background()
	g.mutate(func(s *domain.Session) {
		s.CurrentPlayerRef().Balance = 30
	})

	// A card makes the current player pay both opponents 50; neither
	// payment is coverable, so one debt opens and one queues.
	g.e.mu.Lock()
	drawer := g.e.session.CurrentPlayerRef()
	g.e.payToPlayersLocked(ctx, drawer, 50)
	g.e.mu.Unlock()

	s := g.snapshot()
	if s.Negotiation.Kind != domain.NegotiationBankruptcy {
		t.Fatalf("negotiation kind = %v, want bankruptcy", s.Negotiation.Kind)
	}
	if s.Negotiation.Bankruptcy.CreditorID != g.ids[1] {
		t.Fatalf("first creditor = %q, want %q", s.Negotiation.Bankruptcy.CreditorID, g.ids[1])
	}

	// Funds arrive; settling the first debt surfaces the queued one.
	g.mutate(func(s *domain.Session) {
		s.CurrentPlayerRef().Balance = 130
	})
	if err := g.e.PayDebt(ctx, g.ids[0]); err != nil {
		t.Fatalf("first PayDebt() error: %v", err)
	}
	s = g.snapshot()
	if s.Negotiation.Kind != domain.NegotiationBankruptcy {
		t.Fatal("queued debt should activate after the first settles")
	}
	if s.Negotiation.Bankruptcy.CreditorID != g.ids[2] {
		t.Fatalf("second creditor = %q, want %q", s.Negotiation.Bankruptcy.CreditorID, g.ids[2])
	}

	if err := g.e.PayDebt(ctx, g.ids[0]); err != nil {
		t.Fatalf("second PayDebt() error: %v", err)
	}
	s = g.snapshot()
	if s.Negotiation.Active() {
		t.Fatal("all debts settled, negotiation slot should be free")
	}
	if got := g.player(t, g.ids[0]).Balance; got != 30 {
		t.Fatalf("debtor balance = %d, want 30", got)
	}
	if got := g.player(t, g.ids[1]).Balance; got != 1550 {
		t.Fatalf("first creditor balance = %d, want 1550", got)
	}
	if got := g.player(t, g.ids[2]).Balance; got != 1550 {
		t.Fatalf("second creditor balance = %d, want 1550", got)
	}
}
