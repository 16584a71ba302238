package engine

import (
	"context"
	"testing"

	"github.com/tycho-games/magnate/internal/board"
	"github.com/tycho-games/magnate/internal/game/domain"
)

func TestLandingOnChanceDrawsACard(t *testing.T) {
	g := newGame(t, 2, Options{Roller: scriptRolls(pair(1, 2)), Seed: 7})
	g.mutate(func(s *domain.Session) {
		s.CurrentPlayerRef().Position = 4
	})
	if err := g.e.RollDice(context.Background(), g.ids[0]); err != nil {
		t.Fatalf("RollDice() error: %v", err)
	}

	s := g.snapshot()
	if s.DrawnCard == nil {
		t.Fatal("landing on chance should echo a drawn card")
	}
	if s.DrawnCard.Card.Deck != board.DeckChance {
		t.Fatalf("drawn deck = %v, want chance", s.DrawnCard.Card.Deck)
	}
	if s.DrawnCard.DrawnBy != g.ids[0] {
		t.Fatalf("drawn by = %q, want %q", s.DrawnCard.DrawnBy, g.ids[0])
	}
	p := g.player(t, g.ids[0])
	if p.Position < 0 || p.Position >= board.Size {
		t.Fatalf("position = %d out of range after card effect", p.Position)
	}
}

func TestCollectFromPlayers(t *testing.T) {
	g := newGame(t, 3, Options{})
	ctx := context.Background()

	g.e.mu.Lock()
	drawer := g.e.session.CurrentPlayerRef()
	g.e.collectFromPlayersLocked(ctx, drawer, 25)
	g.e.mu.Unlock()

	if got := g.player(t, g.ids[0]).Balance; got != 1500+50 {
		t.Fatalf("drawer balance = %d, want %d", got, 1500+50)
	}
	for _, id := range g.ids[1:] {
		if got := g.player(t, id).Balance; got != 1500-25 {
			t.Fatalf("payer balance = %d, want %d", got, 1500-25)
		}
	}
}

func TestPayToPlayers(t *testing.T) {
	g := newGame(t, 3, Options{})
	ctx := context.Background()

	g.e.mu.Lock()
	drawer := g.e.session.CurrentPlayerRef()
	g.e.payToPlayersLocked(ctx, drawer, 25)
	g.e.mu.Unlock()

	if got := g.player(t, g.ids[0]).Balance; got != 1500-50 {
		t.Fatalf("drawer balance = %d, want %d", got, 1500-50)
	}
	for _, id := range g.ids[1:] {
		if got := g.player(t, id).Balance; got != 1500+25 {
			t.Fatalf("receiver balance = %d, want %d", got, 1500+25)
		}
	}
}
