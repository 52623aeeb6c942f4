package mcp

import (
	"context"

	"github.com/faridridwanto/blade-clone/internal/game"
	"github.com/faridridwanto/blade-clone/internal/log"
	bladenet "github.com/faridridwanto/blade-clone/internal/net"
)

// Controller implements match.PlayerController by sending decisions
// to the MCP session's pending channel and blocking on a response channel.
type Controller struct {
	player     int
	session    *GameSession
	responseCh chan int
}

// NewController creates a controller for the given player.
func NewController(player int, session *GameSession) *Controller {
	return &Controller{
		player:     player,
		session:    session,
		responseCh: make(chan int),
	}
}

// ChooseCard implements match.PlayerController.
func (c *Controller) ChooseCard(ctx context.Context, state game.GameState, player int) (int, error) {
	var hand []CardChoice
	for i, card := range state.Players[player].Hand {
		hand = append(hand, CardChoice{Index: i, Card: card.DisplayString()})
	}

	select {
	case c.session.pendingCh <- &PendingDecision{
		Type:   DecisionChooseCard,
		Player: c.player,
		State:  bladenet.BuildStateView(state, c.player),
		Hand:   hand,
	}:
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	select {
	case idx := <-c.responseCh:
		return idx, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Notify implements match.PlayerController.
// Only this controller appends events, so each appears once.
func (c *Controller) Notify(ctx context.Context, event log.GameEvent) error {
	c.session.appendEvent(bladenet.NewEventView(event))
	return nil
}
