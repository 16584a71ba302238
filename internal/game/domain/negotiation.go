package domain

import "time"

// NegotiationKind discriminates the active negotiation union. At most one
// negotiation is active at a time; the kind makes that structural.
type NegotiationKind int

const (
	// NegotiationNone means no negotiation is active.
	NegotiationNone NegotiationKind = iota
	// NegotiationTrade means a trade offer is pending.
	NegotiationTrade
	// NegotiationAuction means an auction is running.
	NegotiationAuction
	// NegotiationBankruptcy means a debt settlement is open.
	NegotiationBankruptcy
)

// Negotiation is the tagged union of the three sub-protocols. Exactly the
// branch named by Kind is non-nil.
type Negotiation struct {
	Kind       NegotiationKind
	Trade      *TradeOffer
	Auction    *AuctionState
	Bankruptcy *BankruptcyNegotiation
}

// Active reports whether any negotiation is in progress.
func (n Negotiation) Active() bool {
	return n.Kind != NegotiationNone
}

// Clear resets the union to the idle state.
func (n *Negotiation) Clear() {
	*n = Negotiation{}
}

// TradeOffer is a pending two-party trade negotiation.
type TradeOffer struct {
	ProposerID  string
	RecipientID string

	OfferedSpaces   []int
	RequestedSpaces []int
	OfferedCoins    int
	RequestedCoins  int

	Round          int    // counter-offer sequence number
	LastModifiedBy string // the side that must NOT respond next
	IsCounter      bool

	// Prior-round terms, kept for client diff display only.
	PrevOfferedSpaces   []int
	PrevRequestedSpaces []int
	PrevOfferedCoins    int
	PrevRequestedCoins  int
}

// OtherParty returns the trade participant opposite the given player.
func (t *TradeOffer) OtherParty(playerID string) string {
	if playerID == t.ProposerID {
		return t.RecipientID
	}
	return t.ProposerID
}

// Involves reports whether the player is a party to the trade.
func (t *TradeOffer) Involves(playerID string) bool {
	return playerID == t.ProposerID || playerID == t.RecipientID
}

// AuctionState is a running auction for one property.
type AuctionState struct {
	SpaceIndex   int
	HighBid      int
	HighBidderID string
	Passed       map[string]bool
	EligibleIDs  []string // active, non-bankrupt players minus the decliner
}

// RemainingBidders returns eligible bidders who have not passed.
func (a *AuctionState) RemainingBidders() []string {
	var out []string
	for _, pid := range a.EligibleIDs {
		if !a.Passed[pid] {
			out = append(out, pid)
		}
	}
	return out
}

// Eligible reports whether a player may bid in this auction.
func (a *AuctionState) Eligible(playerID string) bool {
	for _, pid := range a.EligibleIDs {
		if pid == playerID {
			return true
		}
	}
	return false
}

// DebtReason identifies why a payment is owed.
type DebtReason int

const (
	// DebtReasonUnspecified represents an invalid debt reason value.
	DebtReasonUnspecified DebtReason = iota
	// DebtReasonRent is rent owed to a property owner.
	DebtReasonRent
	// DebtReasonTax is tax owed to the bank.
	DebtReasonTax
	// DebtReasonCard is a card-effect payment.
	DebtReasonCard
	// DebtReasonJailFine is the jail release fine.
	DebtReasonJailFine
)

// BankruptcyNegotiation is an open debt settlement.
type BankruptcyNegotiation struct {
	DebtorID   string
	CreditorID string // empty = owed to the bank
	Amount     int
	Reason     DebtReason
	Deadline   time.Time
}
