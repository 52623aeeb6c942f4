package net

import (
	"context"
	"errors"
	"fmt"

	"github.com/faridridwanto/blade-clone/internal/game"
	"github.com/faridridwanto/blade-clone/internal/log"
	"github.com/faridridwanto/blade-clone/internal/match"
)

// Peer plays one side of an online match. The local player is always
// relative index 0; player1 deals and sends the opening state.
type Peer struct {
	Session       *Session
	Local         match.PlayerController
	Engine        *game.Engine
	Logger        log.EventLogger
	MaxRejections int // 0 = 3

	state game.GameState
}

// Outcome is how an online match ended, relative to the local player.
type Outcome struct {
	Winner int // 0 = local, 1 = opponent
	Result string
	State  game.GameState
}

// PlayOnline runs the match until someone wins or the opponent leaves.
func (p *Peer) PlayOnline(ctx context.Context) (Outcome, error) {
	if p.Logger == nil {
		p.Logger = log.NewMemoryLogger()
	}
	if p.MaxRejections == 0 {
		p.MaxRejections = 3
	}
	sess := p.Session

	if sess.IsPlayer1 {
		p.state = p.Engine.InitializeGame()
		f0, _ := p.state.Players[0].TopCard()
		f1, _ := p.state.Players[1].TopCard()
		p.emit(ctx, log.NewDealEvent(p.state.CurrentPlayerIndex, f0.DisplayString(), f1.DisplayString()))
		if err := sess.SendState(ctx, ToWire(p.state, true, game.NoWinner, "Cards dealt")); err != nil {
			return Outcome{}, fmt.Errorf("send opening state: %w", err)
		}
	} else {
		if out, done, err := p.receive(ctx); done || err != nil {
			return out, err
		}
	}

	for {
		if p.state.CurrentPlayerIndex != 0 {
			if out, done, err := p.receive(ctx); done || err != nil {
				return out, err
			}
			continue
		}
		if out, done, err := p.move(ctx); done || err != nil {
			return out, err
		}
	}
}

// receive waits for the opponent's state and adopts it.
func (p *Peer) receive(ctx context.Context) (Outcome, bool, error) {
	ws, err := p.Session.NextState(ctx)
	if errors.Is(err, ErrOpponentLeft) {
		p.emit(ctx, log.NewForfeitEvent(p.state.Turn, 1, "opponent left"))
		return Outcome{Winner: 0, Result: "Opponent left the match", State: p.state}, true, nil
	}
	if err != nil {
		return Outcome{}, true, fmt.Errorf("receive state: %w", err)
	}

	var winner int
	p.state, winner = FromWire(ws, p.Session.IsPlayer1)
	if ws.Narration != "" {
		p.emit(ctx, log.NewRemoteUpdateEvent(p.state.Turn, 1, ws.Narration))
	}
	if winner != game.NoWinner {
		p.emit(ctx, log.NewWinEvent(p.state.Turn, winner, ws.Narration))
		return Outcome{Winner: winner, Result: ws.Narration, State: p.state}, true, nil
	}
	return Outcome{}, false, nil
}

// move plays one local move and relays the result.
func (p *Peer) move(ctx context.Context) (Outcome, bool, error) {
	gs := p.state

	if v := game.CheckViability(gs); !v.Viable {
		return p.finish(ctx, gs, v.Winner, v.Narration)
	}
	if me := gs.Players[0]; me.HasDeadCard() {
		why := fmt.Sprintf("only %s left, which cannot be played last", me.Hand[0].DisplayString())
		p.emit(ctx, log.NewForfeitEvent(gs.Turn, 0, why))
		return p.finish(ctx, gs, 1, "Forfeit: "+why)
	}
	p.emit(ctx, log.NewTurnEvent(gs.Turn, 0))

	for rejections := 0; ; {
		idx, err := p.Local.ChooseCard(ctx, gs.Clone(), 0)
		if errors.Is(err, match.ErrNoMove) {
			p.emit(ctx, log.NewForfeitEvent(gs.Turn, 0, "no move"))
			return p.finish(ctx, gs, 1, "Resigned")
		}
		if err != nil {
			return Outcome{}, true, fmt.Errorf("choose card: %w", err)
		}

		res, err := p.Engine.PlayCard(gs, idx)
		if err != nil {
			if !game.IsRuleError(err) {
				return Outcome{}, true, fmt.Errorf("play card: %w", err)
			}
			p.emit(ctx, log.NewRejectedEvent(gs.Turn, 0, err.Error()))
			if rejections++; rejections >= p.MaxRejections {
				p.emit(ctx, log.NewForfeitEvent(gs.Turn, 0, fmt.Sprintf("%d rejected moves", rejections)))
				return p.finish(ctx, gs, 1, "Forfeit after rejected moves")
			}
			continue
		}

		p.emit(ctx, log.NewPlayEvent(gs.Turn, 0, match.PlayEventType(gs, res.Played), res.Played.DisplayString(), res.Narration))
		if res.GameOver {
			return p.finish(ctx, res.State, res.Winner, res.Narration)
		}
		p.state = res.State
		if err := p.Session.SendState(ctx, ToWire(p.state, p.Session.IsPlayer1, game.NoWinner, res.Narration)); err != nil {
			return Outcome{}, true, fmt.Errorf("send state: %w", err)
		}
		return Outcome{}, false, nil
	}
}

// finish relays the final state with its winner.
func (p *Peer) finish(ctx context.Context, gs game.GameState, winner int, narration string) (Outcome, bool, error) {
	p.state = gs
	p.emit(ctx, log.NewWinEvent(gs.Turn, winner, narration))
	if err := p.Session.SendState(ctx, ToWire(gs, p.Session.IsPlayer1, winner, narration)); err != nil {
		return Outcome{}, true, fmt.Errorf("send final state: %w", err)
	}
	return Outcome{Winner: winner, Result: narration, State: gs}, true, nil
}

func (p *Peer) emit(ctx context.Context, event log.GameEvent) {
	p.Logger.Log(event)
	_ = p.Local.Notify(ctx, event)
}
