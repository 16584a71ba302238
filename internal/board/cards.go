package board

// Deck identifies one of the two card decks.
type Deck int

const (
	// DeckUnspecified represents an invalid deck value.
	DeckUnspecified Deck = iota
	// DeckCommunityChest is the community chest deck.
	DeckCommunityChest
	// DeckChance is the chance deck.
	DeckChance
)

// CardEffect identifies what a drawn card does.
type CardEffect int

const (
	// CardEffectUnspecified represents an invalid card effect value.
	CardEffectUnspecified CardEffect = iota
	// CardEffectGainCoins credits the drawer from the bank.
	CardEffectGainCoins
	// CardEffectLoseCoins debits the drawer to the bank.
	CardEffectLoseCoins
	// CardEffectMoveTo moves the drawer to an absolute space index.
	CardEffectMoveTo
	// CardEffectMoveRelative moves the drawer by a signed offset.
	CardEffectMoveRelative
	// CardEffectCollectFromPlayers debits every other solvent player in
	// favor of the drawer.
	CardEffectCollectFromPlayers
	// CardEffectPayToPlayers credits every other solvent player at the
	// drawer's expense.
	CardEffectPayToPlayers
	// CardEffectJailFree grants a jail release card.
	CardEffectJailFree
)

// Card is the immutable definition of one deck card.
type Card struct {
	ID          string
	Deck        Deck
	Title       string
	Description string
	Effect      CardEffect
	Amount      int // coins for gain/lose/collect/pay, offset for move-relative
	Target      int // space index for move-to
}

// IsValid reports whether the card effect is supported.
func (e CardEffect) IsValid() bool {
	switch e {
	case CardEffectGainCoins,
		CardEffectLoseCoins,
		CardEffectMoveTo,
		CardEffectMoveRelative,
		CardEffectCollectFromPlayers,
		CardEffectPayToPlayers,
		CardEffectJailFree:
		return true
	default:
		return false
	}
}
