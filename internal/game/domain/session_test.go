package domain

import (
	"errors"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
}

func seqIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return string(rune('a'+n-1)) + "-id", nil
	}
}

func TestCreateSessionSeatsHost(t *testing.T) {
	session, err := CreateSession(CreateSessionInput{
		HostUserID: "user-1",
		HostName:   "  Ada  ",
	}, fixedClock, seqIDs())
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if session.Phase != PhaseLobby {
		t.Fatalf("phase = %v, want %v", session.Phase, PhaseLobby)
	}
	if len(session.Players) != 1 {
		t.Fatalf("players = %d, want 1", len(session.Players))
	}
	host := session.Players[0]
	if host.Name != "Ada" {
		t.Fatalf("host name = %q, want trimmed %q", host.Name, "Ada")
	}
	if session.HostID != host.ID {
		t.Fatalf("host id = %q, want %q", session.HostID, host.ID)
	}
	if host.Balance != DefaultRules().StartingBalance {
		t.Fatalf("host balance = %d, want %d", host.Balance, DefaultRules().StartingBalance)
	}
	if session.CreatedAt != fixedClock() {
		t.Fatalf("created at = %v, want %v", session.CreatedAt, fixedClock())
	}
}

func TestCreateSessionRejectsEmptyHostName(t *testing.T) {
	_, err := CreateSession(CreateSessionInput{HostName: "   "}, fixedClock, seqIDs())
	if !errors.Is(err, ErrEmptyHostName) {
		t.Fatalf("CreateSession() error = %v, want %v", err, ErrEmptyHostName)
	}
}

func TestCreateSessionRejectsBadRules(t *testing.T) {
	rules := DefaultRules()
	rules.MaxPlayers = 1
	_, err := CreateSession(CreateSessionInput{HostName: "Ada", Rules: rules}, fixedClock, seqIDs())
	if !errors.Is(err, ErrInvalidRules) {
		t.Fatalf("CreateSession() error = %v, want %v", err, ErrInvalidRules)
	}
}

func TestPlayerByID(t *testing.T) {
	session, err := CreateSession(CreateSessionInput{HostName: "Ada"}, fixedClock, seqIDs())
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	host := session.Players[0]
	found, ok := session.PlayerByID(host.ID)
	if !ok || found != host {
		t.Fatal("expected to find host by id")
	}
	if _, ok := session.PlayerByID("missing"); ok {
		t.Fatal("expected missing player lookup to fail")
	}
}

func TestSolventPlayersSkipsBankrupt(t *testing.T) {
	session, err := CreateSession(CreateSessionInput{HostName: "Ada"}, fixedClock, seqIDs())
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	second, err := NewPlayer("", "Bo", 1, 1500, seqIDs())
	if err != nil {
		t.Fatalf("NewPlayer() error = %v", err)
	}
	second.Bankrupt = true
	session.Players = append(session.Players, second)

	solvent := session.SolventPlayers()
	if len(solvent) != 1 {
		t.Fatalf("solvent players = %d, want 1", len(solvent))
	}
	if solvent[0].Name != "Ada" {
		t.Fatalf("solvent player = %q, want Ada", solvent[0].Name)
	}
}

func TestNegotiationUnion(t *testing.T) {
	var n Negotiation
	if n.Active() {
		t.Fatal("zero negotiation should be idle")
	}
	n = Negotiation{Kind: NegotiationAuction, Auction: &AuctionState{SpaceIndex: 5}}
	if !n.Active() {
		t.Fatal("auction negotiation should be active")
	}
	n.Clear()
	if n.Active() || n.Auction != nil {
		t.Fatal("Clear should reset the union")
	}
}

func TestAuctionRemainingBidders(t *testing.T) {
	a := &AuctionState{
		EligibleIDs: []string{"p1", "p2", "p3"},
		Passed:      map[string]bool{"p2": true},
	}
	remaining := a.RemainingBidders()
	if len(remaining) != 2 {
		t.Fatalf("remaining = %v, want 2 bidders", remaining)
	}
	if !a.Eligible("p1") || a.Eligible("p9") {
		t.Fatal("eligibility check failed")
	}
}

func TestTradeOfferParties(t *testing.T) {
	offer := &TradeOffer{ProposerID: "p1", RecipientID: "p2"}
	if offer.OtherParty("p1") != "p2" || offer.OtherParty("p2") != "p1" {
		t.Fatal("OtherParty returned wrong side")
	}
	if !offer.Involves("p1") || offer.Involves("p3") {
		t.Fatal("Involves check failed")
	}
}

func TestOwnedSpacesSorted(t *testing.T) {
	p := &Player{Owned: map[int]bool{11: true, 3: true, 39: true}}
	got := p.OwnedSpaces()
	want := []int{3, 11, 39}
	if len(got) != len(want) {
		t.Fatalf("OwnedSpaces() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("OwnedSpaces() = %v, want %v", got, want)
		}
	}
}
