package board

// Board is a read-only view over the space and card tables.
type Board struct {
	spaces     [Size]Space
	cardsByID  map[string]Card
	deckCards  map[Deck][]string
	districts  map[string][]int
}

// New builds the registry from the embedded tables.
func New() *Board {
	b := &Board{
		spaces:    spaces,
		cardsByID: make(map[string]Card, len(cards)),
		deckCards: make(map[Deck][]string),
		districts: make(map[string][]int),
	}
	for _, card := range cards {
		b.cardsByID[card.ID] = card
		b.deckCards[card.Deck] = append(b.deckCards[card.Deck], card.ID)
	}
	for _, space := range spaces {
		if space.IsProperty() {
			b.districts[space.District] = append(b.districts[space.District], space.Index)
		}
	}
	return b
}

// Space returns the definition at the given index.
func (b *Board) Space(index int) (Space, bool) {
	if index < 0 || index >= Size {
		return Space{}, false
	}
	return b.spaces[index], true
}

// Spaces returns all space definitions in board order.
func (b *Board) Spaces() []Space {
	out := make([]Space, Size)
	copy(out, b.spaces[:])
	return out
}

// District returns the space indexes belonging to a district group.
func (b *Board) District(name string) []int {
	indexes := b.districts[name]
	out := make([]int, len(indexes))
	copy(out, indexes)
	return out
}

// Card returns the card definition for an id.
func (b *Board) Card(id string) (Card, bool) {
	card, ok := b.cardsByID[id]
	return card, ok
}

// DeckCardIDs returns the card ids belonging to a deck, in table order.
func (b *Board) DeckCardIDs(deck Deck) []string {
	ids := b.deckCards[deck]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
