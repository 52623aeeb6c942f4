package match

import (
	"context"
	"testing"

	"github.com/faridridwanto/blade-clone/internal/game"
	"github.com/faridridwanto/blade-clone/internal/log"
)

// ScriptedController plays a fixed list of hand indices, then reports
// ErrNoMove.
type ScriptedController struct {
	t       *testing.T
	name    string
	moves   []int
	calls   int
	events  []log.GameEvent
	lastGot game.GameState
}

func NewScriptedController(t *testing.T, name string, moves ...int) *ScriptedController {
	return &ScriptedController{t: t, name: name, moves: moves}
}

func (sc *ScriptedController) ChooseCard(ctx context.Context, state game.GameState, player int) (int, error) {
	sc.calls++
	sc.lastGot = state
	if len(sc.moves) == 0 {
		sc.t.Logf("[%s] script exhausted at turn %d", sc.name, state.Turn)
		return 0, ErrNoMove
	}
	idx := sc.moves[0]
	sc.moves = sc.moves[1:]
	return idx, nil
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.events = append(sc.events, event)
	return nil
}

func nums(values ...int) []game.Card {
	var out []game.Card
	for _, v := range values {
		out = append(out, game.Number(v))
	}
	return out
}

func seat(hand, field []game.Card, total int) game.PlayerState {
	return game.PlayerState{Hand: hand, Field: field, TotalValue: total}
}

func stateOf(p0, p1 game.PlayerState, mover int) *game.GameState {
	return &game.GameState{
		Players:            [2]game.PlayerState{p0, p1},
		CurrentPlayerIndex: mover,
		Turn:               1,
	}
}

// runMatch runs a match from state to completion and logs its events.
func runMatch(t *testing.T, cfg Config, p0, p1 PlayerController) (*Match, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	if cfg.Engine == nil {
		cfg.Engine = game.New(fixedRand{})
	}

	m := New(cfg, p0, p1)
	winner, err := m.Run(context.Background())
	if err != nil {
		t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
		t.Fatalf("Match error: %v", err)
	}

	t.Logf("Match result: winner=%d (%s)", winner, m.Result)
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
	return m, logger
}

type fixedRand struct{}

func (fixedRand) Intn(n int) int   { return 0 }
func (fixedRand) Float64() float64 { return 0.5 }
