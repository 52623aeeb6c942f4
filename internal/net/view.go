package net

import (
	"github.com/faridridwanto/blade-clone/internal/game"
	"github.com/faridridwanto/blade-clone/internal/log"
)

// EventView is a simplified game event for clients.
type EventView struct {
	Turn    int    `json:"turn"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// NewEventView converts a logged event.
func NewEventView(e log.GameEvent) EventView {
	return EventView{
		Turn:    e.Turn,
		Player:  e.Player,
		Type:    e.Type.String(),
		Card:    e.Card,
		Details: e.Details,
	}
}

// StateView is the game state from one player's perspective.
type StateView struct {
	You         PlayerView `json:"you"`
	Opponent    PlayerView `json:"opponent"`
	Turn        int        `json:"turn"`
	IsYourTurn  bool       `json:"is_your_turn"`
	LastRemoved string     `json:"last_removed,omitempty"` // card a Number 1 can rescue
}

// PlayerView shows one side of the table.
type PlayerView struct {
	Total     int      `json:"total"`
	HandCount int      `json:"hand_count"`
	Hand      []string `json:"hand,omitempty"` // card names (only for "you")
	Field     []string `json:"field"`          // bottom to top
	DeckCount int      `json:"deck_count"`
}

// BuildStateView creates a StateView from the perspective of the given player.
func BuildStateView(state game.GameState, player int) *StateView {
	me := state.Players[player]
	opp := state.Players[game.Opponent(player)]

	sv := &StateView{
		You:        playerView(me),
		Opponent:   playerView(opp),
		Turn:       state.Turn,
		IsYourTurn: state.CurrentPlayerIndex == player,
	}
	for _, c := range me.Hand {
		sv.You.Hand = append(sv.You.Hand, c.DisplayString())
	}
	if r := state.LastRemovedCard; r != nil && r.RemovedBy == game.KindBolt {
		sv.LastRemoved = r.Card.DisplayString()
	}
	return sv
}

func playerView(p game.PlayerState) PlayerView {
	pv := PlayerView{
		Total:     p.TotalValue,
		HandCount: len(p.Hand),
		Field:     []string{},
		DeckCount: len(p.Deck),
	}
	for _, c := range p.Field {
		pv.Field = append(pv.Field, c.DisplayString())
	}
	return pv
}
