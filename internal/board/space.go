// Package board holds the immutable reference data for a game: the space
// table, the two card decks, and the cosmetic catalog. Nothing in this
// package mutates; per-session state (owners, houses, mortgages) lives in
// the game domain.
package board

// SpaceType identifies the kind of a board space.
type SpaceType int

const (
	// SpaceTypeUnspecified represents an invalid space type value.
	SpaceTypeUnspecified SpaceType = iota
	// SpaceTypeProperty is a purchasable, rent-bearing space.
	SpaceTypeProperty
	// SpaceTypeTax debits a fixed amount when landed on.
	SpaceTypeTax
	// SpaceTypePayday credits the wrap bonus space.
	SpaceTypePayday
	// SpaceTypeJail is the jail space (visiting is harmless).
	SpaceTypeJail
	// SpaceTypeFreeParking is a no-op or pot payout, per session rules.
	SpaceTypeFreeParking
	// SpaceTypeGoToJail sends the landing player to jail.
	SpaceTypeGoToJail
	// SpaceTypeCommunityChest draws from the community chest deck.
	SpaceTypeCommunityChest
	// SpaceTypeChance draws from the chance deck.
	SpaceTypeChance
)

// Space is the immutable definition of one board position.
type Space struct {
	Index     int
	Name      string
	Type      SpaceType
	District  string // rent-multiplier group; empty for non-properties
	Price     int    // purchase price; zero for non-properties
	BaseRent  int    // unimproved rent; zero for non-properties
	HouseCost int    // cost per house or hotel; zero for non-properties
	TaxAmount int    // only meaningful for tax spaces
}

// IsProperty reports whether the space can be owned.
func (s Space) IsProperty() bool {
	return s.Type == SpaceTypeProperty
}

// MortgageValue returns the coins raised by mortgaging the space.
func (s Space) MortgageValue() int {
	return s.Price / 2
}

// UnmortgageCost returns the coins required to lift a mortgage,
// the mortgage value plus ten percent interest.
func (s Space) UnmortgageCost() int {
	value := s.MortgageValue()
	return value + value/10
}
