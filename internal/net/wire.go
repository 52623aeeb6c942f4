package net

import "github.com/faridridwanto/blade-clone/internal/game"

// Winner tags used on the wire.
const (
	WinnerPlayer1 = "player1"
	WinnerPlayer2 = "player2"
)

// WireState is the player-absolute state exchanged between peers. Each peer
// keeps a relative GameState (Players[0] is always the local player) and
// converts at the boundary.
type WireState struct {
	Player1         game.PlayerState    `json:"player1"`
	Player2         game.PlayerState    `json:"player2"`
	IsPlayer1Turn   bool                `json:"isPlayer1Turn"`
	Turn            int                 `json:"turn"`
	LastRemovedCard *game.RemovalRecord `json:"lastRemovedCard"`
	Winner          string              `json:"winner"` // "player1", "player2" or ""
	Narration       string              `json:"narration,omitempty"`
}

// ToWire converts a local relative state. winner is relative (or
// game.NoWinner).
func ToWire(gs game.GameState, localIsPlayer1 bool, winner int, narration string) WireState {
	gs = gs.Clone()
	p1, p2 := 0, 1
	if !localIsPlayer1 {
		p1, p2 = 1, 0
	}
	ws := WireState{
		Player1:         gs.Players[p1],
		Player2:         gs.Players[p2],
		IsPlayer1Turn:   gs.CurrentPlayerIndex == p1,
		Turn:            gs.Turn,
		LastRemovedCard: gs.LastRemovedCard,
		Narration:       narration,
	}
	switch winner {
	case p1:
		ws.Winner = WinnerPlayer1
	case p2:
		ws.Winner = WinnerPlayer2
	}
	return ws
}

// FromWire converts a received state into the local relative view and
// returns the relative winner (game.NoWinner while the game runs).
func FromWire(ws WireState, localIsPlayer1 bool) (game.GameState, int) {
	gs := game.GameState{
		Players:         [2]game.PlayerState{ws.Player1, ws.Player2},
		Turn:            ws.Turn,
		LastRemovedCard: ws.LastRemovedCard,
	}
	if !ws.IsPlayer1Turn {
		gs.CurrentPlayerIndex = 1
	}
	winner := game.NoWinner
	switch ws.Winner {
	case WinnerPlayer1:
		winner = 0
	case WinnerPlayer2:
		winner = 1
	}

	if !localIsPlayer1 {
		gs.Player1Seat = 1
		gs.Players[0], gs.Players[1] = gs.Players[1], gs.Players[0]
		gs.CurrentPlayerIndex = game.Opponent(gs.CurrentPlayerIndex)
		if winner != game.NoWinner {
			winner = game.Opponent(winner)
		}
	}
	return gs.Clone(), winner
}
