package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/faridridwanto/blade-clone/internal/bot"
	"github.com/faridridwanto/blade-clone/internal/game"
	"github.com/faridridwanto/blade-clone/internal/log"
	"github.com/faridridwanto/blade-clone/internal/match"
	bladenet "github.com/faridridwanto/blade-clone/internal/net"
)

// The MCP client always plays seat 0; the CPU heuristic plays seat 1.
const (
	clientSeat = 0
	cpuSeat    = game.CPUSeat
)

// DecisionType identifies what the match is waiting for.
type DecisionType string

const (
	DecisionChooseCard DecisionType = "choose_card"
	DecisionGameOver   DecisionType = "game_over"
)

// PendingDecision represents a decision the match is waiting for.
type PendingDecision struct {
	Type   DecisionType
	Player int
	State  *bladenet.StateView
	Hand   []CardChoice
}

// CardChoice is one playable hand card.
type CardChoice struct {
	Index int    `json:"index"`
	Card  string `json:"card"`
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []bladenet.EventView `json:"events"`
	State    *bladenet.StateView  `json:"state,omitempty"`
	Pending  *PendingView         `json:"pending,omitempty"`
	GameOver bool                 `json:"game_over"`
	Winner   string               `json:"winner,omitempty"` // "you", "cpu" or "none"
	Result   string               `json:"result,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type DecisionType `json:"type"`
	Hand []CardChoice `json:"hand"`
}

// SessionConfig configures new sessions.
type SessionConfig struct {
	Seed          int64
	MaxTurns      int
	MaxRejections int
}

// GameSession holds one match between the MCP client and the CPU.
type GameSession struct {
	match  *match.Match
	ctrl   *Controller
	cancel context.CancelFunc

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu       sync.Mutex
	events   []bladenet.EventView
	gameOver bool
	winner   int
	result   string
}

// NewGameSession deals a match and starts it in the background. The match
// blocks whenever seat 0 has to choose a card.
func NewGameSession(cfg SessionConfig) *GameSession {
	engine := game.NewSeeded(cfg.Seed)
	ctx, cancel := context.WithCancel(context.Background())

	sess := &GameSession{
		cancel:    cancel,
		pendingCh: make(chan *PendingDecision, 1),
		winner:    game.NoWinner,
	}
	sess.ctrl = NewController(clientSeat, sess)
	sess.match = match.New(match.Config{
		Engine:        engine,
		Logger:        log.NewMemoryLogger(),
		MaxTurns:      cfg.MaxTurns,
		MaxRejections: cfg.MaxRejections,
	}, sess.ctrl, bot.NewController(engine.Rand()))
	final := sess.match.State

	go func() {
		winner, err := sess.match.Run(ctx)
		result := sess.match.Result
		if err != nil {
			result = fmt.Sprintf("error: %v", err)
		}

		sess.mu.Lock()
		sess.gameOver = true
		sess.winner = winner
		sess.result = result
		sess.mu.Unlock()

		if err == nil {
			final = sess.match.State
		}
		// After Close an unread decision may still fill the buffer.
		select {
		case sess.pendingCh <- &PendingDecision{
			Type:   DecisionGameOver,
			Player: winner,
			State:  bladenet.BuildStateView(final, clientSeat),
		}:
		default:
		}
	}()

	return sess
}

// Close stops the background match.
func (s *GameSession) Close() {
	s.cancel()
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev bladenet.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []bladenet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []bladenet.EventView{}
	}
	return events
}

// waitForPending blocks until the next decision arrives from the match,
// then builds a ToolResponse with accumulated events + the pending decision.
func (s *GameSession) waitForPending(ctx context.Context) (*ToolResponse, error) {
	var pending *PendingDecision
	select {
	case pending = <-s.pendingCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.currentPending = pending
	return s.response(), nil
}

// poll picks up a decision that arrived after an earlier wait was cancelled.
func (s *GameSession) poll() *PendingDecision {
	if s.currentPending == nil {
		select {
		case s.currentPending = <-s.pendingCh:
		default:
		}
	}
	return s.currentPending
}

// response describes the current pending decision without waiting.
func (s *GameSession) response() *ToolResponse {
	s.poll()
	resp := &ToolResponse{Events: s.drainEvents()}
	pending := s.currentPending
	if pending == nil {
		return resp
	}
	resp.State = pending.State

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Winner = playerLabel(s.winner)
		resp.Result = s.result
		s.mu.Unlock()
		return resp
	}
	resp.Pending = &PendingView{Type: pending.Type, Hand: pending.Hand}
	return resp
}

// over reports whether the match has finished.
func (s *GameSession) over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameOver
}

// playerLabel returns "you", "cpu" or "none" for a seat.
func playerLabel(player int) string {
	switch player {
	case clientSeat:
		return "you"
	case cpuSeat:
		return "cpu"
	}
	return "none"
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
