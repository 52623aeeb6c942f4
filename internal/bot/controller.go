package bot

import (
	"context"

	"github.com/faridridwanto/blade-clone/internal/game"
	"github.com/faridridwanto/blade-clone/internal/log"
	"github.com/faridridwanto/blade-clone/internal/match"
)

// Controller implements match.PlayerController with the CPU heuristic.
type Controller struct {
	cpu *CPU
}

// NewController creates a CPU controller drawing from rng.
func NewController(rng game.Rand) *Controller {
	return &Controller{cpu: NewCPU(rng)}
}

// ChooseCard implements match.PlayerController.
func (c *Controller) ChooseCard(ctx context.Context, state game.GameState, player int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	state.CurrentPlayerIndex = player
	idx, ok := c.cpu.ChooseMove(state)
	if !ok {
		return 0, match.ErrNoMove
	}
	return idx, nil
}

// Notify implements match.PlayerController. The CPU keeps no memory.
func (c *Controller) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}
