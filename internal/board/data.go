package board

// Size is the number of spaces on the board.
const Size = 40

// PaydayIndex is the wrap space.
const PaydayIndex = 0

// JailIndex is the jail space.
const JailIndex = 10

// spaces is the fixed board table. Indexes 0..39, walked clockwise.
var spaces = [Size]Space{
	{Index: 0, Name: "Payday", Type: SpaceTypePayday},
	{Index: 1, Name: "Quay Lane", Type: SpaceTypeProperty, District: "harbor", Price: 60, BaseRent: 4, HouseCost: 50},
	{Index: 2, Name: "Community Chest", Type: SpaceTypeCommunityChest},
	{Index: 3, Name: "Wharf Row", Type: SpaceTypeProperty, District: "harbor", Price: 60, BaseRent: 4, HouseCost: 50},
	{Index: 4, Name: "Income Tax", Type: SpaceTypeTax, TaxAmount: 200},
	{Index: 5, Name: "Ferry Landing", Type: SpaceTypeProperty, District: "harbor", Price: 80, BaseRent: 6, HouseCost: 50},
	{Index: 6, Name: "Fish Market", Type: SpaceTypeProperty, District: "market", Price: 100, BaseRent: 6, HouseCost: 50},
	{Index: 7, Name: "Chance", Type: SpaceTypeChance},
	{Index: 8, Name: "Spice Market", Type: SpaceTypeProperty, District: "market", Price: 100, BaseRent: 6, HouseCost: 50},
	{Index: 9, Name: "Grand Bazaar", Type: SpaceTypeProperty, District: "market", Price: 120, BaseRent: 8, HouseCost: 50},
	{Index: 10, Name: "Jail", Type: SpaceTypeJail},
	{Index: 11, Name: "Forge Street", Type: SpaceTypeProperty, District: "foundry", Price: 140, BaseRent: 10, HouseCost: 100},
	{Index: 12, Name: "Anvil Court", Type: SpaceTypeProperty, District: "foundry", Price: 140, BaseRent: 10, HouseCost: 100},
	{Index: 13, Name: "Smelter Yard", Type: SpaceTypeProperty, District: "foundry", Price: 160, BaseRent: 12, HouseCost: 100},
	{Index: 14, Name: "Boiler Works", Type: SpaceTypeProperty, District: "foundry", Price: 160, BaseRent: 12, HouseCost: 100},
	{Index: 15, Name: "Rose Terrace", Type: SpaceTypeProperty, District: "garden", Price: 180, BaseRent: 14, HouseCost: 100},
	{Index: 16, Name: "Willow Walk", Type: SpaceTypeProperty, District: "garden", Price: 180, BaseRent: 14, HouseCost: 100},
	{Index: 17, Name: "Community Chest", Type: SpaceTypeCommunityChest},
	{Index: 18, Name: "Orchard Way", Type: SpaceTypeProperty, District: "garden", Price: 200, BaseRent: 16, HouseCost: 100},
	{Index: 19, Name: "Fountain Square", Type: SpaceTypeProperty, District: "garden", Price: 200, BaseRent: 16, HouseCost: 100},
	{Index: 20, Name: "Free Parking", Type: SpaceTypeFreeParking},
	{Index: 21, Name: "Penny Arcade", Type: SpaceTypeProperty, District: "arcade", Price: 220, BaseRent: 18, HouseCost: 150},
	{Index: 22, Name: "Chance", Type: SpaceTypeChance},
	{Index: 23, Name: "Carousel Plaza", Type: SpaceTypeProperty, District: "arcade", Price: 220, BaseRent: 18, HouseCost: 150},
	{Index: 24, Name: "Midway Strip", Type: SpaceTypeProperty, District: "arcade", Price: 240, BaseRent: 20, HouseCost: 150},
	{Index: 25, Name: "Grand Pier", Type: SpaceTypeProperty, District: "arcade", Price: 240, BaseRent: 20, HouseCost: 150},
	{Index: 26, Name: "Gallery Row", Type: SpaceTypeProperty, District: "museum", Price: 260, BaseRent: 22, HouseCost: 150},
	{Index: 27, Name: "Archive Street", Type: SpaceTypeProperty, District: "museum", Price: 260, BaseRent: 22, HouseCost: 150},
	{Index: 28, Name: "Observatory Hill", Type: SpaceTypeProperty, District: "museum", Price: 280, BaseRent: 24, HouseCost: 150},
	{Index: 29, Name: "Opera Court", Type: SpaceTypeProperty, District: "museum", Price: 280, BaseRent: 24, HouseCost: 150},
	{Index: 30, Name: "Go To Jail", Type: SpaceTypeGoToJail},
	{Index: 31, Name: "Skyline Avenue", Type: SpaceTypeProperty, District: "skyline", Price: 300, BaseRent: 26, HouseCost: 200},
	{Index: 32, Name: "Tower Heights", Type: SpaceTypeProperty, District: "skyline", Price: 300, BaseRent: 26, HouseCost: 200},
	{Index: 33, Name: "Community Chest", Type: SpaceTypeCommunityChest},
	{Index: 34, Name: "Summit Spire", Type: SpaceTypeProperty, District: "skyline", Price: 320, BaseRent: 28, HouseCost: 200},
	{Index: 35, Name: "Regent Parade", Type: SpaceTypeProperty, District: "crown", Price: 350, BaseRent: 35, HouseCost: 200},
	{Index: 36, Name: "Chance", Type: SpaceTypeChance},
	{Index: 37, Name: "Sovereign Place", Type: SpaceTypeProperty, District: "crown", Price: 350, BaseRent: 35, HouseCost: 200},
	{Index: 38, Name: "Luxury Tax", Type: SpaceTypeTax, TaxAmount: 100},
	{Index: 39, Name: "Crown Boulevard", Type: SpaceTypeProperty, District: "crown", Price: 400, BaseRent: 50, HouseCost: 200},
}

// cards is the fixed card table covering both decks.
var cards = []Card{
	{ID: "cc-01", Deck: DeckCommunityChest, Title: "Bank Error", Description: "Bank error in your favor. Collect 200.", Effect: CardEffectGainCoins, Amount: 200},
	{ID: "cc-02", Deck: DeckCommunityChest, Title: "Doctor's Fee", Description: "Pay doctor's fee of 50.", Effect: CardEffectLoseCoins, Amount: 50},
	{ID: "cc-03", Deck: DeckCommunityChest, Title: "Inheritance", Description: "You inherit 100.", Effect: CardEffectGainCoins, Amount: 100},
	{ID: "cc-04", Deck: DeckCommunityChest, Title: "Birthday", Description: "It is your birthday. Collect 10 from every player.", Effect: CardEffectCollectFromPlayers, Amount: 10},
	{ID: "cc-05", Deck: DeckCommunityChest, Title: "Hospital Fees", Description: "Pay hospital fees of 100.", Effect: CardEffectLoseCoins, Amount: 100},
	{ID: "cc-06", Deck: DeckCommunityChest, Title: "Tax Refund", Description: "Tax refund. Collect 20.", Effect: CardEffectGainCoins, Amount: 20},
	{ID: "cc-07", Deck: DeckCommunityChest, Title: "Back to Payday", Description: "Advance to Payday.", Effect: CardEffectMoveTo, Target: PaydayIndex},
	{ID: "cc-08", Deck: DeckCommunityChest, Title: "Charity Gala", Description: "Host a charity gala. Pay every player 25.", Effect: CardEffectPayToPlayers, Amount: 25},
	{ID: "cc-09", Deck: DeckCommunityChest, Title: "Pardon", Description: "Get out of jail free. Keep this card.", Effect: CardEffectJailFree},
	{ID: "cc-10", Deck: DeckCommunityChest, Title: "Consultancy Fee", Description: "Consultancy fee paid. Collect 25.", Effect: CardEffectGainCoins, Amount: 25},
	{ID: "cc-11", Deck: DeckCommunityChest, Title: "School Fees", Description: "Pay school fees of 50.", Effect: CardEffectLoseCoins, Amount: 50},
	{ID: "cc-12", Deck: DeckCommunityChest, Title: "Short Stroll", Description: "Take a short stroll. Move back 3 spaces.", Effect: CardEffectMoveRelative, Amount: -3},
	{ID: "ch-01", Deck: DeckChance, Title: "Advance to Crown", Description: "Advance to Crown Boulevard.", Effect: CardEffectMoveTo, Target: 39},
	{ID: "ch-02", Deck: DeckChance, Title: "Speeding Fine", Description: "Speeding fine. Pay 15.", Effect: CardEffectLoseCoins, Amount: 15},
	{ID: "ch-03", Deck: DeckChance, Title: "Dividend", Description: "Bank pays you a dividend of 50.", Effect: CardEffectGainCoins, Amount: 50},
	{ID: "ch-04", Deck: DeckChance, Title: "Advance to Payday", Description: "Advance to Payday.", Effect: CardEffectMoveTo, Target: PaydayIndex},
	{ID: "ch-05", Deck: DeckChance, Title: "Chairman Elected", Description: "Elected chairman. Pay every player 50.", Effect: CardEffectPayToPlayers, Amount: 50},
	{ID: "ch-06", Deck: DeckChance, Title: "Move Ahead", Description: "Move ahead 3 spaces.", Effect: CardEffectMoveRelative, Amount: 3},
	{ID: "ch-07", Deck: DeckChance, Title: "Pardon", Description: "Get out of jail free. Keep this card.", Effect: CardEffectJailFree},
	{ID: "ch-08", Deck: DeckChance, Title: "Building Loan", Description: "Your building loan matures. Collect 150.", Effect: CardEffectGainCoins, Amount: 150},
	{ID: "ch-09", Deck: DeckChance, Title: "Poor Tax", Description: "Pay poor tax of 15.", Effect: CardEffectLoseCoins, Amount: 15},
	{ID: "ch-10", Deck: DeckChance, Title: "Crowdfunding", Description: "Crowdfunding succeeds. Collect 30 from every player.", Effect: CardEffectCollectFromPlayers, Amount: 30},
	{ID: "ch-11", Deck: DeckChance, Title: "Visit the Foundry", Description: "Advance to Forge Street.", Effect: CardEffectMoveTo, Target: 11},
	{ID: "ch-12", Deck: DeckChance, Title: "Step Back", Description: "Move back 2 spaces.", Effect: CardEffectMoveRelative, Amount: -2},
}
