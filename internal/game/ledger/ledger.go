// Package ledger implements the economy: coin transfers, property
// ownership, mortgages, and building. Every operation checks its
// preconditions up front and either applies fully or returns a domain
// error with no mutation.
package ledger

import (
	"fmt"

	"github.com/tycho-games/magnate/internal/board"
	"github.com/tycho-games/magnate/internal/errors"
	"github.com/tycho-games/magnate/internal/game/domain"
)

// Bank is the counterparty sentinel for transfers that create or destroy
// coins.
const Bank = ""

// Ledger executes economic transactions against a session.
type Ledger struct {
	board *board.Board
}

// New creates a ledger over the given board registry.
func New(b *board.Board) *Ledger {
	return &Ledger{board: b}
}

// CanPay reports whether the player holds at least amount in liquid coins.
func (l *Ledger) CanPay(s *domain.Session, playerID string, amount int) bool {
	player, ok := s.PlayerByID(playerID)
	return ok && player.Balance >= amount
}

// Transfer moves coins between two parties. Either side may be the Bank
// sentinel, meaning coins are created or destroyed. The transfer is
// atomic: on any precondition failure nothing changes.
func (l *Ledger) Transfer(s *domain.Session, fromID, toID string, amount int) error {
	if amount < 0 {
		return errors.New(errors.CodeInvalidAmount, fmt.Sprintf("transfer amount %d is negative", amount))
	}

	var from, to *domain.Player
	if fromID != Bank {
		player, ok := s.PlayerByID(fromID)
		if !ok {
			return errors.New(errors.CodePlayerNotFound, fmt.Sprintf("payer %s not found", fromID))
		}
		if player.Balance < amount {
			return errors.WithMetadata(errors.CodeInsufficientFunds,
				fmt.Sprintf("player %s holds %d, owes %d", fromID, player.Balance, amount),
				map[string]string{
					"balance": fmt.Sprintf("%d", player.Balance),
					"amount":  fmt.Sprintf("%d", amount),
				})
		}
		from = player
	}
	if toID != Bank {
		player, ok := s.PlayerByID(toID)
		if !ok {
			return errors.New(errors.CodePlayerNotFound, fmt.Sprintf("payee %s not found", toID))
		}
		to = player
	}

	if from != nil {
		from.Balance -= amount
	}
	if to != nil {
		to.Balance += amount
	}
	return nil
}

// PurchaseProperty transfers the listed price from the player to the bank
// and records ownership.
func (l *Ledger) PurchaseProperty(s *domain.Session, playerID string, index int) error {
	space, ok := l.board.Space(index)
	if !ok {
		return errors.New(errors.CodeSpaceNotFound, fmt.Sprintf("space %d out of range", index))
	}
	return l.PurchasePropertyAt(s, playerID, index, space.Price)
}

// PurchasePropertyAt transfers an arbitrary price (an auction's winning
// bid) from the player to the bank and records ownership.
func (l *Ledger) PurchasePropertyAt(s *domain.Session, playerID string, index, price int) error {
	space, ok := l.board.Space(index)
	if !ok {
		return errors.New(errors.CodeSpaceNotFound, fmt.Sprintf("space %d out of range", index))
	}
	if !space.IsProperty() {
		return errors.New(errors.CodeSpaceNotProperty, fmt.Sprintf("space %d (%s) is not a property", index, space.Name))
	}
	if s.Spaces[index].OwnerID != "" {
		return errors.New(errors.CodeSpaceOwned, fmt.Sprintf("space %d already owned by %s", index, s.Spaces[index].OwnerID))
	}
	player, ok := s.PlayerByID(playerID)
	if !ok {
		return errors.New(errors.CodePlayerNotFound, fmt.Sprintf("buyer %s not found", playerID))
	}
	if player.Balance < price {
		return errors.New(errors.CodeInsufficientFunds,
			fmt.Sprintf("player %s holds %d, price is %d", playerID, player.Balance, price))
	}

	player.Balance -= price
	s.Spaces[index].OwnerID = playerID
	player.Owned[index] = true
	return nil
}

// Mortgage raises coins against an owned, unimproved property.
func (l *Ledger) Mortgage(s *domain.Session, playerID string, index int) error {
	space, state, err := l.ownedProperty(s, playerID, index)
	if err != nil {
		return err
	}
	if state.Mortgaged {
		return errors.New(errors.CodeSpaceMortgaged, fmt.Sprintf("space %d already mortgaged", index))
	}
	if state.Houses > 0 || state.Hotel {
		return errors.New(errors.CodeBuildLimit, fmt.Sprintf("space %d has buildings; sell them first", index))
	}

	player, _ := s.PlayerByID(playerID)
	state.Mortgaged = true
	player.Balance += space.MortgageValue()
	return nil
}

// Unmortgage lifts a mortgage, charging its value plus interest.
func (l *Ledger) Unmortgage(s *domain.Session, playerID string, index int) error {
	space, state, err := l.ownedProperty(s, playerID, index)
	if err != nil {
		return err
	}
	if !state.Mortgaged {
		return errors.New(errors.CodeSpaceNotMortgaged, fmt.Sprintf("space %d is not mortgaged", index))
	}
	player, _ := s.PlayerByID(playerID)
	cost := space.UnmortgageCost()
	if player.Balance < cost {
		return errors.New(errors.CodeInsufficientFunds,
			fmt.Sprintf("player %s holds %d, unmortgage costs %d", playerID, player.Balance, cost))
	}

	player.Balance -= cost
	state.Mortgaged = false
	return nil
}

// BuildHouse adds one house to an owned property. Requires a district
// monopoly, no mortgaged space in the district, and even building: a
// space may not go more than one house ahead of its district minimum.
func (l *Ledger) BuildHouse(s *domain.Session, playerID string, index int) error {
	space, state, err := l.ownedProperty(s, playerID, index)
	if err != nil {
		return err
	}
	if err := l.checkDistrictBuildable(s, playerID, space.District); err != nil {
		return err
	}
	if state.Hotel {
		return errors.New(errors.CodeBuildLimit, fmt.Sprintf("space %d already has a hotel", index))
	}
	if state.Houses >= 4 {
		return errors.New(errors.CodeBuildLimit, fmt.Sprintf("space %d has 4 houses; build a hotel", index))
	}
	if state.Houses > l.minDistrictLevel(s, space.District, index) {
		return errors.New(errors.CodeUnevenBuild,
			fmt.Sprintf("space %d is ahead of its district; build elsewhere first", index))
	}
	player, _ := s.PlayerByID(playerID)
	if player.Balance < space.HouseCost {
		return errors.New(errors.CodeInsufficientFunds,
			fmt.Sprintf("player %s holds %d, house costs %d", playerID, player.Balance, space.HouseCost))
	}

	player.Balance -= space.HouseCost
	state.Houses++
	return nil
}

// BuildHotel upgrades four houses to a hotel once the whole district is
// fully built.
func (l *Ledger) BuildHotel(s *domain.Session, playerID string, index int) error {
	space, state, err := l.ownedProperty(s, playerID, index)
	if err != nil {
		return err
	}
	if err := l.checkDistrictBuildable(s, playerID, space.District); err != nil {
		return err
	}
	if state.Hotel {
		return errors.New(errors.CodeBuildLimit, fmt.Sprintf("space %d already has a hotel", index))
	}
	if state.Houses != 4 {
		return errors.New(errors.CodeUnevenBuild,
			fmt.Sprintf("space %d has %d houses, hotel requires 4", index, state.Houses))
	}
	for _, idx := range l.board.District(space.District) {
		if idx == index {
			continue
		}
		other := &s.Spaces[idx]
		if !other.Hotel && other.Houses < 4 {
			return errors.New(errors.CodeUnevenBuild,
				fmt.Sprintf("district %q must be fully built before a hotel", space.District))
		}
	}
	player, _ := s.PlayerByID(playerID)
	if player.Balance < space.HouseCost {
		return errors.New(errors.CodeInsufficientFunds,
			fmt.Sprintf("player %s holds %d, hotel costs %d", playerID, player.Balance, space.HouseCost))
	}

	player.Balance -= space.HouseCost
	state.Houses = 0
	state.Hotel = true
	return nil
}

// SellBuilding removes the highest improvement from a space, refunding
// half its cost. A hotel steps down to four houses. Selling follows the
// inverse of the even-building rule.
func (l *Ledger) SellBuilding(s *domain.Session, playerID string, index int) error {
	space, state, err := l.ownedProperty(s, playerID, index)
	if err != nil {
		return err
	}
	player, _ := s.PlayerByID(playerID)
	if state.Hotel {
		state.Hotel = false
		state.Houses = 4
		player.Balance += space.HouseCost / 2
		return nil
	}
	if state.Houses == 0 {
		return errors.New(errors.CodeNoBuildings, fmt.Sprintf("space %d has no buildings", index))
	}
	if state.Houses < l.maxDistrictLevel(s, space.District) {
		return errors.New(errors.CodeUnevenBuild,
			fmt.Sprintf("space %d is behind its district; sell elsewhere first", index))
	}

	state.Houses--
	player.Balance += space.HouseCost / 2
	return nil
}

// PurchaseCosmetic debits the catalog price to the bank and records the
// cosmetic on the player. Cosmetics share the game coin balance.
func (l *Ledger) PurchaseCosmetic(s *domain.Session, playerID, cosmeticID string) error {
	cosmetic, ok := board.CosmeticByID(cosmeticID)
	if !ok {
		return errors.New(errors.CodeUnknownCosmetic, fmt.Sprintf("cosmetic %q not in catalog", cosmeticID))
	}
	player, ok := s.PlayerByID(playerID)
	if !ok {
		return errors.New(errors.CodePlayerNotFound, fmt.Sprintf("player %s not found", playerID))
	}
	if player.Balance < cosmetic.Price {
		return errors.New(errors.CodeInsufficientFunds,
			fmt.Sprintf("player %s holds %d, cosmetic costs %d", playerID, player.Balance, cosmetic.Price))
	}

	player.Balance -= cosmetic.Price
	player.Cosmetics = append(player.Cosmetics, cosmetic.ID)
	return nil
}

// Liquidate transfers everything the debtor holds to the creditor (or
// back to the bank when creditorID is the Bank sentinel) and marks the
// debtor bankrupt. Buildings are razed; mortgages transfer as-is to a
// creditor and clear when returning to the bank.
func (l *Ledger) Liquidate(s *domain.Session, debtorID, creditorID string) error {
	debtor, ok := s.PlayerByID(debtorID)
	if !ok {
		return errors.New(errors.CodePlayerNotFound, fmt.Sprintf("debtor %s not found", debtorID))
	}

	var creditor *domain.Player
	if creditorID != Bank {
		creditor, ok = s.PlayerByID(creditorID)
		if !ok {
			return errors.New(errors.CodePlayerNotFound, fmt.Sprintf("creditor %s not found", creditorID))
		}
	}

	for idx := range debtor.Owned {
		state := &s.Spaces[idx]
		state.Houses = 0
		state.Hotel = false
		if creditor != nil {
			state.OwnerID = creditor.ID
			creditor.Owned[idx] = true
		} else {
			state.OwnerID = ""
			state.Mortgaged = false
		}
	}
	if creditor != nil {
		creditor.Balance += debtor.Balance
	}

	debtor.Owned = make(map[int]bool)
	debtor.Balance = 0
	debtor.Bankrupt = true
	debtor.Active = false
	debtor.InJail = false
	return nil
}

// Exchange describes an agreed trade between two players: spaces moving
// each way plus coins moving each way.
type Exchange struct {
	ProposerID      string
	RecipientID     string
	OfferedSpaces   []int
	RequestedSpaces []int
	OfferedCoins    int
	RequestedCoins  int
}

// ExecuteExchange applies an agreed trade. Every precondition is checked
// before anything moves: both parties exist, every listed space is an
// unimproved property owned by its giving side, and each side can cover
// the coins it owes. Any failure leaves the session untouched.
func (l *Ledger) ExecuteExchange(s *domain.Session, ex Exchange) error {
	if ex.OfferedCoins < 0 || ex.RequestedCoins < 0 {
		return errors.New(errors.CodeInvalidAmount, "trade coin amounts must not be negative")
	}
	proposer, ok := s.PlayerByID(ex.ProposerID)
	if !ok {
		return errors.New(errors.CodePlayerNotFound, fmt.Sprintf("proposer %s not found", ex.ProposerID))
	}
	recipient, ok := s.PlayerByID(ex.RecipientID)
	if !ok {
		return errors.New(errors.CodePlayerNotFound, fmt.Sprintf("recipient %s not found", ex.RecipientID))
	}
	for _, idx := range ex.OfferedSpaces {
		if err := l.tradableProperty(s, ex.ProposerID, idx); err != nil {
			return err
		}
	}
	for _, idx := range ex.RequestedSpaces {
		if err := l.tradableProperty(s, ex.RecipientID, idx); err != nil {
			return err
		}
	}
	if proposer.Balance < ex.OfferedCoins {
		return errors.New(errors.CodeInsufficientFunds,
			fmt.Sprintf("proposer holds %d, offered %d", proposer.Balance, ex.OfferedCoins))
	}
	if recipient.Balance < ex.RequestedCoins {
		return errors.New(errors.CodeInsufficientFunds,
			fmt.Sprintf("recipient holds %d, owes %d", recipient.Balance, ex.RequestedCoins))
	}

	proposer.Balance += ex.RequestedCoins - ex.OfferedCoins
	recipient.Balance += ex.OfferedCoins - ex.RequestedCoins
	for _, idx := range ex.OfferedSpaces {
		delete(proposer.Owned, idx)
		recipient.Owned[idx] = true
		s.Spaces[idx].OwnerID = recipient.ID
	}
	for _, idx := range ex.RequestedSpaces {
		delete(recipient.Owned, idx)
		proposer.Owned[idx] = true
		s.Spaces[idx].OwnerID = proposer.ID
	}
	return nil
}

// tradableProperty checks a space may change hands: owned by the giving
// side and carrying no buildings.
func (l *Ledger) tradableProperty(s *domain.Session, playerID string, index int) error {
	_, state, err := l.ownedProperty(s, playerID, index)
	if err != nil {
		return err
	}
	if state.Houses > 0 || state.Hotel {
		return errors.New(errors.CodeBuildLimit, fmt.Sprintf("space %d carries buildings and cannot be traded", index))
	}
	return nil
}

// ownedProperty resolves a space and checks the player owns it.
func (l *Ledger) ownedProperty(s *domain.Session, playerID string, index int) (board.Space, *domain.SpaceState, error) {
	space, ok := l.board.Space(index)
	if !ok {
		return board.Space{}, nil, errors.New(errors.CodeSpaceNotFound, fmt.Sprintf("space %d out of range", index))
	}
	if !space.IsProperty() {
		return board.Space{}, nil, errors.New(errors.CodeSpaceNotProperty, fmt.Sprintf("space %d (%s) is not a property", index, space.Name))
	}
	state := &s.Spaces[index]
	if state.OwnerID != playerID {
		return board.Space{}, nil, errors.New(errors.CodeSpaceNotOwned, fmt.Sprintf("space %d is not owned by %s", index, playerID))
	}
	return space, state, nil
}

// checkDistrictBuildable requires a monopoly with no mortgaged spaces.
func (l *Ledger) checkDistrictBuildable(s *domain.Session, playerID, district string) error {
	for _, idx := range l.board.District(district) {
		state := s.Spaces[idx]
		if state.OwnerID != playerID {
			return errors.New(errors.CodeNoMonopoly,
				fmt.Sprintf("district %q is not a monopoly for %s", district, playerID))
		}
		if state.Mortgaged {
			return errors.New(errors.CodeSpaceMortgaged,
				fmt.Sprintf("district %q has a mortgaged space", district))
		}
	}
	return nil
}

// minDistrictLevel returns the lowest house count in a district, treating
// hotels as fully built. The space being built on is excluded.
func (l *Ledger) minDistrictLevel(s *domain.Session, district string, exclude int) int {
	level := 5
	for _, idx := range l.board.District(district) {
		if idx == exclude {
			continue
		}
		state := s.Spaces[idx]
		houses := state.Houses
		if state.Hotel {
			houses = 5
		}
		if houses < level {
			level = houses
		}
	}
	if level == 5 {
		return 4
	}
	return level
}

// maxDistrictLevel returns the highest house count in a district.
func (l *Ledger) maxDistrictLevel(s *domain.Session, district string) int {
	level := 0
	for _, idx := range l.board.District(district) {
		state := s.Spaces[idx]
		if state.Houses > level {
			level = state.Houses
		}
	}
	return level
}
