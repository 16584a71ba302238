// Package snapshot flattens the session aggregate into a wire-ready view
// for websocket clients: a full State on connect, then sparse Patches
// after each committed action.
package snapshot

import (
	"time"

	"github.com/tycho-games/magnate/internal/board"
	"github.com/tycho-games/magnate/internal/game/domain"
)

// State is the complete client-facing view of a session.
type State struct {
	SessionID        string        `json:"sessionId"`
	Phase            string        `json:"phase"`
	Turn             int           `json:"turn"`
	CurrentPlayerID  string        `json:"currentPlayerId"`
	Dice             [2]int        `json:"dice"`
	HasRolled        bool          `json:"hasRolled"`
	AwaitingPurchase bool          `json:"awaitingPurchase"`
	WinnerID         string        `json:"winnerId,omitempty"`
	LastAction       string        `json:"lastAction,omitempty"`
	FreeParkingPot   int           `json:"freeParkingPot"`
	Timer            TimerState    `json:"timer"`
	Negotiation      Negotiation   `json:"negotiation"`
	DrawnCard        *DrawnCard    `json:"drawnCard,omitempty"`
	Players          []PlayerState `json:"players"`
	Spaces           []SpaceState  `json:"spaces"`
	Log              []LogEntry    `json:"log"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// PlayerState is one seated player as clients see them.
type PlayerState struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Seat          int      `json:"seat"`
	Position      int      `json:"position"`
	Balance       int      `json:"balance"`
	Owned         []int    `json:"owned"`
	Bankrupt      bool     `json:"bankrupt"`
	InJail        bool     `json:"inJail"`
	JailTurns     int      `json:"jailTurns"`
	JailFreeCards int      `json:"jailFreeCards"`
	Cosmetics     []string `json:"cosmetics,omitempty"`
}

// SpaceState is the mutable per-space state, indexed into the board.
type SpaceState struct {
	Index     int    `json:"index"`
	OwnerID   string `json:"ownerId,omitempty"`
	Houses    int    `json:"houses"`
	Hotel     bool   `json:"hotel"`
	Mortgaged bool   `json:"mortgaged"`
}

// TimerState describes the running turn deadline.
type TimerState struct {
	Active        bool      `json:"active"`
	Deadline      time.Time `json:"deadline,omitempty"`
	ExtensionUsed bool      `json:"extensionUsed"`
}

// Negotiation is the client view of the negotiation slot. Kind is one of
// none, trade, auction, or bankruptcy; exactly the matching branch is set.
type Negotiation struct {
	Kind       string        `json:"kind"`
	Trade      *TradeState   `json:"trade,omitempty"`
	Auction    *AuctionState `json:"auction,omitempty"`
	Bankruptcy *DebtState    `json:"bankruptcy,omitempty"`
}

// TradeState is a pending trade offer.
type TradeState struct {
	ProposerID      string `json:"proposerId"`
	RecipientID     string `json:"recipientId"`
	OfferedSpaces   []int  `json:"offeredSpaces"`
	RequestedSpaces []int  `json:"requestedSpaces"`
	OfferedCoins    int    `json:"offeredCoins"`
	RequestedCoins  int    `json:"requestedCoins"`
	Round           int    `json:"round"`
	LastModifiedBy  string `json:"lastModifiedBy"`
}

// AuctionState is a running auction.
type AuctionState struct {
	SpaceIndex   int      `json:"spaceIndex"`
	HighBid      int      `json:"highBid"`
	HighBidderID string   `json:"highBidderId,omitempty"`
	EligibleIDs  []string `json:"eligibleIds"`
	PassedIDs    []string `json:"passedIds,omitempty"`
}

// DebtState is an open bankruptcy negotiation.
type DebtState struct {
	DebtorID   string    `json:"debtorId"`
	CreditorID string    `json:"creditorId,omitempty"`
	Amount     int       `json:"amount"`
	Reason     string    `json:"reason"`
	Deadline   time.Time `json:"deadline"`
}

// DrawnCard echoes the most recently drawn card.
type DrawnCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DrawnBy     string `json:"drawnBy"`
}

// LogEntry is one narration line.
type LogEntry struct {
	Message   string    `json:"message"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// Build flattens a session into a State. The caller must hold whatever
// lock guards the session.
func Build(s *domain.Session) State {
	state := State{
		SessionID:        s.ID,
		Phase:            phaseLabel(s.Phase),
		Turn:             s.Turn,
		Dice:             [2]int{s.Dice.First, s.Dice.Second},
		HasRolled:        s.HasRolled,
		AwaitingPurchase: s.AwaitingPurchase,
		WinnerID:         s.WinnerID,
		LastAction:       s.LastAction,
		FreeParkingPot:   s.FreeParkingPot,
		Timer:            buildTimer(s.Timer),
		Negotiation:      buildNegotiation(s.Negotiation),
		UpdatedAt:        s.UpdatedAt,
	}
	if current := s.CurrentPlayerRef(); current != nil && s.Phase != domain.PhaseLobby {
		state.CurrentPlayerID = current.ID
	}
	if s.DrawnCard != nil {
		state.DrawnCard = &DrawnCard{
			ID:          s.DrawnCard.Card.ID,
			Title:       s.DrawnCard.Card.Title,
			Description: s.DrawnCard.Card.Description,
			DrawnBy:     s.DrawnCard.DrawnBy,
		}
	}

	state.Players = make([]PlayerState, 0, len(s.Players))
	for _, p := range s.Players {
		state.Players = append(state.Players, PlayerState{
			ID:            p.ID,
			Name:          p.Name,
			Seat:          p.Seat,
			Position:      p.Position,
			Balance:       p.Balance,
			Owned:         p.OwnedSpaces(),
			Bankrupt:      p.Bankrupt,
			InJail:        p.InJail,
			JailTurns:     p.JailTurns,
			JailFreeCards: p.JailFreeCards,
			Cosmetics:     append([]string(nil), p.Cosmetics...),
		})
	}

	state.Spaces = make([]SpaceState, 0, board.Size)
	for idx := range s.Spaces {
		space := s.Spaces[idx]
		state.Spaces = append(state.Spaces, SpaceState{
			Index:     idx,
			OwnerID:   space.OwnerID,
			Houses:    space.Houses,
			Hotel:     space.Hotel,
			Mortgaged: space.Mortgaged,
		})
	}

	if s.Log != nil {
		for _, entry := range s.Log.Entries() {
			state.Log = append(state.Log, LogEntry{
				Message:   entry.Message,
				Category:  string(entry.Category),
				Timestamp: entry.Timestamp,
			})
		}
	}
	return state
}

func buildTimer(t domain.TurnTimer) TimerState {
	out := TimerState{Active: t.Active, ExtensionUsed: t.ExtensionUsed}
	if t.Active {
		out.Deadline = t.StartedAt.Add(t.Limit)
	}
	return out
}

func buildNegotiation(n domain.Negotiation) Negotiation {
	switch n.Kind {
	case domain.NegotiationTrade:
		t := n.Trade
		return Negotiation{Kind: "trade", Trade: &TradeState{
			ProposerID:      t.ProposerID,
			RecipientID:     t.RecipientID,
			OfferedSpaces:   append([]int(nil), t.OfferedSpaces...),
			RequestedSpaces: append([]int(nil), t.RequestedSpaces...),
			OfferedCoins:    t.OfferedCoins,
			RequestedCoins:  t.RequestedCoins,
			Round:           t.Round,
			LastModifiedBy:  t.LastModifiedBy,
		}}
	case domain.NegotiationAuction:
		a := n.Auction
		out := &AuctionState{
			SpaceIndex:   a.SpaceIndex,
			HighBid:      a.HighBid,
			HighBidderID: a.HighBidderID,
			EligibleIDs:  append([]string(nil), a.EligibleIDs...),
		}
		for _, id := range a.EligibleIDs {
			if a.Passed[id] {
				out.PassedIDs = append(out.PassedIDs, id)
			}
		}
		return Negotiation{Kind: "auction", Auction: out}
	case domain.NegotiationBankruptcy:
		b := n.Bankruptcy
		return Negotiation{Kind: "bankruptcy", Bankruptcy: &DebtState{
			DebtorID:   b.DebtorID,
			CreditorID: b.CreditorID,
			Amount:     b.Amount,
			Reason:     reasonLabel(b.Reason),
			Deadline:   b.Deadline,
		}}
	default:
		return Negotiation{Kind: "none"}
	}
}

func phaseLabel(p domain.Phase) string {
	switch p {
	case domain.PhaseLobby:
		return "lobby"
	case domain.PhasePlaying:
		return "playing"
	case domain.PhaseFinished:
		return "finished"
	default:
		return "unspecified"
	}
}

func reasonLabel(r domain.DebtReason) string {
	switch r {
	case domain.DebtReasonRent:
		return "rent"
	case domain.DebtReasonTax:
		return "tax"
	case domain.DebtReasonCard:
		return "card"
	case domain.DebtReasonJailFine:
		return "jailFine"
	default:
		return "unspecified"
	}
}
