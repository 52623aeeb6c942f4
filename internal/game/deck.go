package game

// numberCopies is the copy count of each Number value in the deck.
var numberCopies = [...]struct{ value, copies int }{
	{1, 2}, {2, 5}, {3, 5}, {4, 5}, {5, 4}, {6, 3}, {7, 2},
}

// effectCopies is the copy count of each effect card in the deck.
var effectCopies = [...]struct {
	kind   CardKind
	copies int
}{
	{KindBolt, 4}, {KindMirror, 4}, {KindBlast, 2}, {KindForce, 2},
}

// DeckSize is the number of cards NewDeck returns.
const DeckSize = 38

// NewDeck builds the fixed, unshuffled deck: Number cards ascending, then
// Bolt, Mirror, Blast and Force.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, nc := range numberCopies {
		for i := 0; i < nc.copies; i++ {
			deck = append(deck, Number(nc.value))
		}
	}
	for _, ec := range effectCopies {
		for i := 0; i < ec.copies; i++ {
			deck = append(deck, Effect(ec.kind))
		}
	}
	return deck
}

// Shuffle returns a uniformly shuffled copy of deck (Fisher-Yates).
func (e *Engine) Shuffle(deck []Card) []Card {
	shuffled := cloneCards(deck)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := e.rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
