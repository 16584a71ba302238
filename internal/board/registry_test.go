package board

import "testing"

func TestBoardHasFortySpaces(t *testing.T) {
	b := New()
	all := b.Spaces()
	if len(all) != Size {
		t.Fatalf("expected %d spaces, got %d", Size, len(all))
	}
	for i, space := range all {
		if space.Index != i {
			t.Fatalf("space at position %d has index %d", i, space.Index)
		}
		if space.Type == SpaceTypeUnspecified {
			t.Fatalf("space %d has unspecified type", i)
		}
	}
}

func TestPropertySpacesHaveDistrictAndPrice(t *testing.T) {
	b := New()
	for _, space := range b.Spaces() {
		if !space.IsProperty() {
			continue
		}
		if space.District == "" {
			t.Errorf("property %d (%s) has no district", space.Index, space.Name)
		}
		if space.Price <= 0 {
			t.Errorf("property %d (%s) has no price", space.Index, space.Name)
		}
		if space.BaseRent <= 0 {
			t.Errorf("property %d (%s) has no base rent", space.Index, space.Name)
		}
		if space.HouseCost <= 0 {
			t.Errorf("property %d (%s) has no house cost", space.Index, space.Name)
		}
	}
}

func TestDistrictsPartitionProperties(t *testing.T) {
	b := New()
	counted := 0
	seen := make(map[int]bool)
	for _, space := range b.Spaces() {
		if !space.IsProperty() {
			continue
		}
		indexes := b.District(space.District)
		if len(indexes) < 2 {
			t.Fatalf("district %q has %d spaces, want at least 2", space.District, len(indexes))
		}
		for _, idx := range indexes {
			if !seen[idx] {
				seen[idx] = true
				counted++
			}
		}
	}
	props := 0
	for _, space := range b.Spaces() {
		if space.IsProperty() {
			props++
		}
	}
	if counted != props {
		t.Fatalf("districts cover %d properties, want %d", counted, props)
	}
}

func TestFixedSpaces(t *testing.T) {
	b := New()
	tests := []struct {
		index int
		want  SpaceType
	}{
		{PaydayIndex, SpaceTypePayday},
		{JailIndex, SpaceTypeJail},
		{20, SpaceTypeFreeParking},
		{30, SpaceTypeGoToJail},
	}
	for _, tt := range tests {
		space, ok := b.Space(tt.index)
		if !ok {
			t.Fatalf("space %d not found", tt.index)
		}
		if space.Type != tt.want {
			t.Fatalf("space %d type = %v, want %v", tt.index, space.Type, tt.want)
		}
	}
	if _, ok := b.Space(Size); ok {
		t.Fatal("expected out-of-range index to miss")
	}
	if _, ok := b.Space(-1); ok {
		t.Fatal("expected negative index to miss")
	}
}

func TestDecksAreValid(t *testing.T) {
	b := New()
	for _, deck := range []Deck{DeckCommunityChest, DeckChance} {
		ids := b.DeckCardIDs(deck)
		if len(ids) == 0 {
			t.Fatalf("deck %v is empty", deck)
		}
		for _, id := range ids {
			card, ok := b.Card(id)
			if !ok {
				t.Fatalf("deck %v references unknown card %q", deck, id)
			}
			if card.Deck != deck {
				t.Fatalf("card %q belongs to deck %v, listed under %v", id, card.Deck, deck)
			}
			if !card.Effect.IsValid() {
				t.Fatalf("card %q has invalid effect", id)
			}
			if card.Effect == CardEffectMoveTo && (card.Target < 0 || card.Target >= Size) {
				t.Fatalf("card %q moves to out-of-range space %d", id, card.Target)
			}
		}
	}
}

func TestMortgageValues(t *testing.T) {
	space := Space{Price: 200}
	if got := space.MortgageValue(); got != 100 {
		t.Fatalf("MortgageValue() = %d, want 100", got)
	}
	if got := space.UnmortgageCost(); got != 110 {
		t.Fatalf("UnmortgageCost() = %d, want 110", got)
	}
}

func TestCosmeticCatalog(t *testing.T) {
	list := Cosmetics()
	if len(list) == 0 {
		t.Fatal("expected a non-empty cosmetic catalog")
	}
	for _, c := range list {
		if c.Price <= 0 {
			t.Errorf("cosmetic %q has no price", c.ID)
		}
		found, ok := CosmeticByID(c.ID)
		if !ok || found.ID != c.ID {
			t.Errorf("cosmetic %q not found by id", c.ID)
		}
	}
	if _, ok := CosmeticByID("missing"); ok {
		t.Fatal("expected unknown cosmetic id to miss")
	}
}
