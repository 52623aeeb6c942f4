package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/faridridwanto/blade-clone/internal/game"
	"github.com/faridridwanto/blade-clone/internal/log"
)

// ErrNoMove is returned by a controller that has nothing to play. The
// runner treats it as a forfeit.
var ErrNoMove = errors.New("no move available")

// PlayerController is the interface that terminal, CPU and MCP players
// implement.
type PlayerController interface {
	// ChooseCard returns the hand index to play for player. state is a
	// private copy.
	ChooseCard(ctx context.Context, state game.GameState, player int) (int, error)

	// Notify sends a game event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// Config holds configuration for creating a new match.
type Config struct {
	Logger        log.EventLogger
	Engine        *game.Engine    // shared with the CPU heuristic; built from Seed when nil
	Seed          int64           // RNG seed (0 for random)
	State         *game.GameState // start from this state instead of dealing
	MaxTurns      int             // stop after this many turns (0 = 200)
	MaxRejections int             // consecutive rule errors before a forfeit (0 = 3)
}

// Match orchestrates a whole game between two controllers.
type Match struct {
	State       game.GameState
	Controllers [2]PlayerController
	Logger      log.EventLogger

	Over   bool
	Winner int
	Result string

	engine        *game.Engine
	maxTurns      int
	maxRejections int
	dealt         bool
	announced     [2]int // turn, seat of the last NewTurn event
}

// New creates a match from cfg. Unless cfg.State is set the cards are dealt
// straight away so State is usable before Run.
func New(cfg Config, p0, p1 PlayerController) *Match {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	engine := cfg.Engine
	if engine == nil {
		engine = game.NewSeeded(cfg.Seed)
	}
	maxTurns := cfg.MaxTurns
	if maxTurns == 0 {
		maxTurns = 200 // safety limit
	}
	maxRejections := cfg.MaxRejections
	if maxRejections == 0 {
		maxRejections = 3
	}

	m := &Match{
		Controllers:   [2]PlayerController{p0, p1},
		Logger:        logger,
		Winner:        game.NoWinner,
		engine:        engine,
		maxTurns:      maxTurns,
		maxRejections: maxRejections,
		announced:     [2]int{-1, -1},
	}
	if cfg.State != nil {
		m.State = cfg.State.Clone()
		m.dealt = true
	} else {
		m.State = engine.InitializeGame()
	}
	return m
}

// Engine returns the rules engine driving this match.
func (m *Match) Engine() *game.Engine {
	return m.engine
}

// Run executes the match loop. Returns the winner (0, 1, or -1 when the
// turn limit ends the game).
func (m *Match) Run(ctx context.Context) (int, error) {
	if !m.dealt {
		m.dealt = true
		f0, _ := m.State.Players[0].TopCard()
		f1, _ := m.State.Players[1].TopCard()
		m.emit(ctx, log.NewDealEvent(m.State.CurrentPlayerIndex, f0.DisplayString(), f1.DisplayString()))
	}

	for !m.Over {
		if err := ctx.Err(); err != nil {
			return game.NoWinner, err
		}
		if m.State.Turn > m.maxTurns {
			m.finish(game.NoWinner, fmt.Sprintf("Turn limit reached (%d turns)", m.maxTurns))
			m.emit(ctx, log.NewTurnLimitEvent(m.maxTurns))
			break
		}
		if err := m.step(ctx); err != nil {
			return m.Winner, err
		}
	}
	return m.Winner, nil
}

// step runs a single move for the player to move.
func (m *Match) step(ctx context.Context) error {
	gs := m.State
	seat := gs.CurrentPlayerIndex

	if v := game.CheckViability(gs); !v.Viable {
		m.finish(v.Winner, v.Narration)
		m.emit(ctx, log.NewWinEvent(gs.Turn, v.Winner, v.Narration))
		return nil
	}
	if hand := gs.Players[seat].Hand; gs.Players[seat].HasDeadCard() {
		m.forfeit(ctx, seat, fmt.Sprintf("only %s left, which cannot be played last", hand[0].DisplayString()))
		return nil
	}

	if m.announced != [2]int{gs.Turn, seat} {
		m.announced = [2]int{gs.Turn, seat}
		m.emit(ctx, log.NewTurnEvent(gs.Turn, seat))
	}

	rejections := 0
	for {
		idx, err := m.Controllers[seat].ChooseCard(ctx, gs.Clone(), seat)
		if errors.Is(err, ErrNoMove) {
			m.forfeit(ctx, seat, "no move")
			return nil
		}
		if err != nil {
			return fmt.Errorf("player %d choose card: %w", seat, err)
		}

		res, err := m.engine.PlayCard(gs, idx)
		if err != nil {
			if !game.IsRuleError(err) {
				return fmt.Errorf("play card: %w", err)
			}
			m.emit(ctx, log.NewRejectedEvent(gs.Turn, seat, err.Error()))
			rejections++
			if rejections >= m.maxRejections {
				m.forfeit(ctx, seat, fmt.Sprintf("%d rejected moves", rejections))
				return nil
			}
			continue
		}

		m.apply(ctx, gs, res)
		return nil
	}
}

// apply adopts an accepted move and emits its events.
func (m *Match) apply(ctx context.Context, before game.GameState, res game.Result) {
	seat := before.CurrentPlayerIndex
	m.State = res.State
	m.emit(ctx, log.NewPlayEvent(before.Turn, seat, PlayEventType(before, res.Played), res.Played.DisplayString(), res.Narration))

	if res.Redealt {
		m.emit(ctx, log.NewRedealEvent(m.State.Turn, m.State.CurrentPlayerIndex))
	}
	if res.GameOver {
		m.finish(res.Winner, res.Narration)
		m.emit(ctx, log.NewWinEvent(m.State.Turn, res.Winner, res.Narration))
	}
}

func (m *Match) forfeit(ctx context.Context, seat int, reason string) {
	winner := game.Opponent(seat)
	m.emit(ctx, log.NewForfeitEvent(m.State.Turn, seat, reason))
	m.finish(winner, fmt.Sprintf("P%d forfeits (%s)", seat+1, reason))
	m.emit(ctx, log.NewWinEvent(m.State.Turn, winner, "opponent forfeited"))
}

func (m *Match) finish(winner int, result string) {
	m.Over = true
	m.Winner = winner
	m.Result = result
}

// emit logs an event and notifies both controllers. Notify errors are
// ignored: a controller that cannot display an event can still play.
func (m *Match) emit(ctx context.Context, event log.GameEvent) {
	m.Logger.Log(event)
	for _, c := range m.Controllers {
		if c != nil {
			_ = c.Notify(ctx, event)
		}
	}
}

// PlayEventType classifies a card played from before, telling a Bolt rescue
// apart from a plain Number.
func PlayEventType(before game.GameState, played game.Card) log.EventType {
	switch played.Kind {
	case game.KindBolt:
		return log.EventBolt
	case game.KindMirror:
		return log.EventMirror
	case game.KindBlast:
		return log.EventBlast
	case game.KindForce:
		return log.EventForce
	}
	if played.Value == 1 && before.LastRemovedCard != nil && before.LastRemovedCard.RemovedBy == game.KindBolt {
		return log.EventRescue
	}
	return log.EventPlayNumber
}
