package game

import "testing"

// scriptedRand replays fixed answers. When a script runs out, Intn returns 0
// and Float64 returns 0.5.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func newTestEngine(ints ...int) *Engine {
	return New(&scriptedRand{ints: ints})
}

// --- State helpers ---

func nums(values ...int) []Card {
	cards := make([]Card, 0, len(values))
	for _, v := range values {
		cards = append(cards, Number(v))
	}
	return cards
}

func cards(cs ...Card) []Card {
	return append([]Card(nil), cs...)
}

// player builds a PlayerState whose total is given explicitly, since totals
// are tracked incrementally and may differ from the field sum.
func player(hand, field []Card, total int) PlayerState {
	return PlayerState{Hand: hand, Field: field, TotalValue: total}
}

func newState(p0, p1 PlayerState, mover int) GameState {
	return GameState{
		Players:            [2]PlayerState{p0, p1},
		CurrentPlayerIndex: mover,
		Turn:               1,
	}
}

func assertTotals(t *testing.T, gs GameState, want0, want1 int) {
	t.Helper()
	if gs.Players[0].TotalValue != want0 || gs.Players[1].TotalValue != want1 {
		t.Errorf("Expected totals %d/%d, got %d/%d", want0, want1,
			gs.Players[0].TotalValue, gs.Players[1].TotalValue)
	}
}

func sameCards(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
