package game

import (
	"encoding/json"
	"errors"
	"testing"
)

func countCards(deck []Card) map[Card]int {
	counts := make(map[Card]int)
	for _, c := range deck {
		counts[c]++
	}
	return counts
}

func TestNewDeckComposition(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("Expected %d cards, got %d", DeckSize, len(deck))
	}

	counts := countCards(deck)
	want := map[Card]int{
		Number(1): 2, Number(2): 5, Number(3): 5, Number(4): 5,
		Number(5): 4, Number(6): 3, Number(7): 2,
		Effect(KindBolt): 4, Effect(KindMirror): 4,
		Effect(KindBlast): 2, Effect(KindForce): 2,
	}
	for card, n := range want {
		if counts[card] != n {
			t.Errorf("Expected %d copies of %s, got %d", n, card.DisplayString(), counts[card])
		}
	}
	if len(counts) != len(want) {
		t.Errorf("Expected %d distinct cards, got %d", len(want), len(counts))
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	deck := NewDeck()
	original := cloneCards(deck)

	shuffled := NewSeeded(42).Shuffle(deck)
	if !sameCards(deck, original) {
		t.Fatal("Shuffle must not reorder its input")
	}

	before, after := countCards(original), countCards(shuffled)
	for card, n := range before {
		if after[card] != n {
			t.Errorf("Shuffle changed the count of %s: %d → %d", card.DisplayString(), n, after[card])
		}
	}
}

// TestShuffleUsesInjectedRand: with every draw answering 0 the Fisher-Yates
// pass rotates the deck left by one.
func TestShuffleUsesInjectedRand(t *testing.T) {
	deck := nums(1, 2, 3, 4)
	shuffled := newTestEngine().Shuffle(deck)
	if !sameCards(shuffled, nums(2, 3, 4, 1)) {
		t.Errorf("Expected [2 3 4 1], got %v", shuffled)
	}
}

func TestCardKindJSON(t *testing.T) {
	data, err := json.Marshal(Effect(KindMirror))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"type":"mirror","value":1}` {
		t.Errorf("Unexpected card JSON %s", data)
	}

	var c Card
	if err := json.Unmarshal([]byte(`{"type":"laser","value":1}`), &c); !errors.Is(err, ErrUnknownCardKind) {
		t.Errorf("Expected ErrUnknownCardKind, got %v", err)
	}
}

// TestGameStateRoundTrip: a state survives JSON and comes back equal,
// including the removal record.
func TestGameStateRoundTrip(t *testing.T) {
	gs := newState(
		player(cards(Number(3), Effect(KindBlast)), cards(Number(2), Effect(KindForce)), 4),
		player(nums(5), nums(6), 6),
		1,
	)
	gs.Players[0].Deck = nums(7)
	gs.LastRemovedCard = &RemovalRecord{Card: Number(4), RemovedBy: KindBolt}

	data, err := json.Marshal(gs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back GameState
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if back.CurrentPlayerIndex != 1 || back.Turn != 1 {
		t.Errorf("Seat/turn lost: %+v", back)
	}
	if !sameCards(back.Players[0].Field, gs.Players[0].Field) || !sameCards(back.Players[0].Deck, gs.Players[0].Deck) {
		t.Errorf("Cards lost in round trip: %+v", back.Players[0])
	}
	if back.LastRemovedCard == nil || *back.LastRemovedCard != *gs.LastRemovedCard {
		t.Errorf("Removal record lost: %+v", back.LastRemovedCard)
	}
}
