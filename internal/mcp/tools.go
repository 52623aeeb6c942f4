package mcp

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Handler serves the game tools. One stdio process hosts one game at a time.
type Handler struct {
	cfg SessionConfig

	mu      sync.Mutex
	session *GameSession
}

// NewHandler creates a handler. cfg.Seed is the default seed for start_game.
func NewHandler(cfg SessionConfig) *Handler {
	return &Handler{cfg: cfg}
}

// RegisterTools adds all game tools to the MCP server.
func (h *Handler) RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), h.handleStartGame)
	s.AddTool(playCardTool(), h.handlePlayCard)
	s.AddTool(getGameStateTool(), h.handleGetGameState)
}

// Close stops the running game, if any.
func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session != nil {
		h.session.Close()
		h.session = nil
	}
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new Blade duel against the CPU. You are seat 0. Returns the dealt table "+
			"and your first pending decision (the CPU may already have moved)."),
		mcp.WithNumber("seed", mcp.Description("Optional shuffle seed for a reproducible deal; 0 or absent uses the server default")),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play a card from your hand. The CPU then moves until it is your turn again or the game ends. "+
			"Use this when the pending decision type is 'choose_card'."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the card in the pending hand list")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current table, accumulated events, and pending decision without playing. Read-only."),
	)
}

// --- Tool handlers ---

func (h *Handler) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.session != nil && !h.session.over() {
		return mcp.NewToolResultError("A game is already running. Finish it before starting another."), nil
	}

	cfg := h.cfg
	if seed := request.GetInt("seed", 0); seed != 0 {
		cfg.Seed = int64(seed)
	}

	if h.session != nil {
		h.session.Close()
	}
	sess := NewGameSession(cfg)
	h.session = sess

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (h *Handler) handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.session == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	sess := h.session
	pending := sess.poll()
	if pending == nil {
		return mcp.NewToolResultError("No pending decision."), nil
	}
	if pending.Type != DecisionChooseCard {
		return mcp.NewToolResultError("The game is over. Use start_game for a new one."), nil
	}

	index := request.GetInt("index", -1)
	if index < 0 || index >= len(pending.Hand) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Hand)-1), nil
	}

	select {
	case sess.ctrl.responseCh <- index:
	case <-ctx.Done():
		return mcp.NewToolResultErrorf("Cancelled: %v", ctx.Err()), nil
	}
	sess.currentPending = nil

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (h *Handler) handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.session == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	return mcp.NewToolResultText(respondJSON(h.session.response())), nil
}
