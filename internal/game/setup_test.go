package game

import "testing"

func handIsSorted(hand []Card) bool {
	seenEffect := false
	last := 0
	for _, c := range hand {
		if c.Kind.IsEffect() {
			seenEffect = true
			continue
		}
		if seenEffect || c.Value < last {
			return false
		}
		last = c.Value
	}
	return true
}

func TestInitializeGameInvariants(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		gs := NewSeeded(seed).InitializeGame()

		if gs.Turn != 1 || gs.LastRemovedCard != nil {
			t.Fatalf("seed %d: expected turn 1 and no removal record, got %+v", seed, gs)
		}
		total := 0
		for p, ps := range gs.Players {
			if len(ps.Hand) != HandSize {
				t.Errorf("seed %d: P%d hand has %d cards", seed, p+1, len(ps.Hand))
			}
			if !handIsSorted(ps.Hand) {
				t.Errorf("seed %d: P%d hand not sorted: %v", seed, p+1, ps.Hand)
			}
			if len(ps.Deck) != 8 {
				t.Errorf("seed %d: P%d deck has %d cards, want 8", seed, p+1, len(ps.Deck))
			}
			if len(ps.Field) != 1 || ps.TotalValue != ps.Field[0].Value {
				t.Errorf("seed %d: P%d field %v does not match total %d", seed, p+1, ps.Field, ps.TotalValue)
			}
			total += len(ps.Hand) + len(ps.Deck) + len(ps.Field)
		}
		if total != DeckSize {
			t.Errorf("seed %d: %d cards dealt, want %d", seed, total, DeckSize)
		}

		want := 0
		if gs.Players[1].Field[0].Value < gs.Players[0].Field[0].Value {
			want = 1
		}
		if gs.CurrentPlayerIndex != want {
			t.Errorf("seed %d: seeds %v/%v, expected P%d to move first", seed,
				gs.Players[0].Field[0], gs.Players[1].Field[0], want+1)
		}
	}
}

// riggedDeck lays out a 38-card deck so that P1's seed is s0 and P2's seed
// is s1. Everything else is filler.
func riggedDeck(s0, s1 Card) []Card {
	deck := make([]Card, 0, 2*HalfDeck)
	for p, seed := range []Card{s0, s1} {
		for i := 0; i < HandSize; i++ {
			deck = append(deck, Number(7-p))
		}
		deck = append(deck, seed)
		for i := HandSize + 1; i < HalfDeck; i++ {
			deck = append(deck, Number(4))
		}
	}
	return deck
}

func TestDealFirstMover(t *testing.T) {
	cases := []struct {
		name   string
		s0, s1 Card
		want   int
	}{
		{"P2 lower", Number(5), Number(2), 1},
		{"P1 lower", Number(3), Number(6), 0},
		{"tie favors P1", Number(4), Number(4), 0},
		{"effect seed counts as 1", Effect(KindBolt), Number(2), 0},
		{"effect seed tie", Number(1), Effect(KindForce), 0},
	}
	for _, tc := range cases {
		gs, err := Deal(riggedDeck(tc.s0, tc.s1))
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if gs.CurrentPlayerIndex != tc.want {
			t.Errorf("%s: expected P%d first, got P%d", tc.name, tc.want+1, gs.CurrentPlayerIndex+1)
		}
	}
}

func TestDealRejectsWrongSize(t *testing.T) {
	if _, err := Deal(NewDeck()[:37]); err == nil {
		t.Fatal("Expected an error for a short deck")
	}
}

// TestSortHandStablePartition: Numbers ascend, effect cards keep their
// shuffled order behind them.
func TestSortHandStablePartition(t *testing.T) {
	hand := cards(Effect(KindForce), Number(5), Effect(KindBolt), Number(2), Effect(KindMirror), Number(5), Effect(KindBlast))
	got := SortHand(hand)
	want := cards(Number(2), Number(5), Number(5), Effect(KindForce), Effect(KindBolt), Effect(KindMirror), Effect(KindBlast))
	if !sameCards(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if hand[0] != Effect(KindForce) {
		t.Error("SortHand must not modify its input")
	}
}
