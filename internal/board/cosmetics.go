package board

// Cosmetic is a purchasable appearance item. Cosmetics are priced in the
// same coin balance as the game economy, so buying one is an ordinary
// ledger debit to the bank.
type Cosmetic struct {
	ID    string
	Name  string
	Price int
}

// cosmeticCatalog is the read-only cosmetic catalog.
var cosmeticCatalog = []Cosmetic{
	{ID: "piece-tophat", Name: "Top Hat", Price: 50},
	{ID: "piece-steamer", Name: "Steamship", Price: 50},
	{ID: "piece-hound", Name: "Hound", Price: 75},
	{ID: "piece-airship", Name: "Airship", Price: 100},
	{ID: "trail-confetti", Name: "Confetti Trail", Price: 40},
	{ID: "trail-sparks", Name: "Spark Trail", Price: 60},
}

// Cosmetics returns the full cosmetic catalog.
func Cosmetics() []Cosmetic {
	out := make([]Cosmetic, len(cosmeticCatalog))
	copy(out, cosmeticCatalog)
	return out
}

// CosmeticByID looks up a catalog entry by id.
func CosmeticByID(id string) (Cosmetic, bool) {
	for _, c := range cosmeticCatalog {
		if c.ID == id {
			return c, true
		}
	}
	return Cosmetic{}, false
}
