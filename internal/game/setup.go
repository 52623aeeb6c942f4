package game

import (
	"fmt"
	"sort"
)

// InitializeGame shuffles a fresh deck and deals a new match.
func (e *Engine) InitializeGame() GameState {
	gs, err := Deal(e.Shuffle(NewDeck()))
	if err != nil {
		// NewDeck always has DeckSize cards.
		panic(err)
	}
	return gs
}

// Deal splits an already shuffled 38-card deck into a starting GameState:
// each half gives a sorted 10-card hand and a deck whose first card seeds the
// field. The lower seed moves first; ties go to player 0.
func Deal(shuffled []Card) (GameState, error) {
	if len(shuffled) != 2*HalfDeck {
		return GameState{}, fmt.Errorf("deal: need %d cards, got %d", 2*HalfDeck, len(shuffled))
	}

	var gs GameState
	for p := 0; p < 2; p++ {
		half := shuffled[p*HalfDeck : (p+1)*HalfDeck]
		player := PlayerState{
			Hand: SortHand(half[:HandSize]),
			Deck: cloneCards(half[HandSize:]),
		}
		player.DrawToField()
		gs.Players[p] = player
	}

	gs.CurrentPlayerIndex = firstMover(gs.Players[0].Field[0], gs.Players[1].Field[0], 0)
	gs.Turn = 1
	return gs, nil
}

// SortHand returns Number cards ascending by value followed by the effect
// cards in their original relative order.
func SortHand(hand []Card) []Card {
	sorted := cloneCards(hand)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Kind == KindNumber && b.Kind == KindNumber {
			return a.Value < b.Value
		}
		return a.Kind == KindNumber && b.Kind != KindNumber
	})
	return sorted
}

// firstMover picks the player with the lower seed card; equal seeds go to
// tieSeat. Effect cards count as 1, which is already their Value.
func firstMover(seed0, seed1 Card, tieSeat int) int {
	switch {
	case seed0.Value < seed1.Value:
		return 0
	case seed1.Value < seed0.Value:
		return 1
	}
	return tieSeat
}
