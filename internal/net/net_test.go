package net

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/faridridwanto/blade-clone/internal/game"
	"github.com/faridridwanto/blade-clone/internal/log"
	"github.com/faridridwanto/blade-clone/internal/match"
)

func TestDecodeValidates(t *testing.T) {
	bad := []string{
		`{"type":"hello"}`,
		`{"type":"match_found","session_id":"s","player_1_connection_id":"a"}`,
		`{"type":"game_state","session_id":"s"}`,
		`{"type":"error"}`,
		`{"type":"teleport"}`,
		`not json`,
	}
	for _, doc := range bad {
		if _, err := Decode([]byte(doc)); !errors.Is(err, ErrBadMessage) {
			t.Errorf("%s: expected ErrBadMessage, got %v", doc, err)
		}
	}

	msg, err := Decode([]byte(`{"type":"match_found","session_id":"s","player_1_connection_id":"a","player_2_connection_id":"b"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if msg.Player2ConnectionID != "b" {
		t.Errorf("Unexpected message %+v", msg)
	}
	if _, err := Encode(Message{Type: TypeStateUpdate}); !errors.Is(err, ErrBadMessage) {
		t.Errorf("Expected Encode to validate, got %v", err)
	}
}

func sampleState() game.GameState {
	return game.GameState{
		Players: [2]game.PlayerState{
			{Hand: []game.Card{game.Number(2)}, Field: []game.Card{game.Number(3)}, Deck: []game.Card{game.Number(5)}, TotalValue: 3},
			{Hand: []game.Card{game.Effect(game.KindBolt), game.Number(7)}, Field: []game.Card{game.Number(4)}, TotalValue: 4},
		},
		CurrentPlayerIndex: 1,
		Turn:               6,
		LastRemovedCard:    &game.RemovalRecord{Card: game.Number(6), RemovedBy: game.KindBolt},
	}
}

func TestWireConversionAsPlayer1(t *testing.T) {
	gs := sampleState()
	ws := ToWire(gs, true, game.NoWinner, "hi")
	if ws.Player1.TotalValue != 3 || ws.Player2.TotalValue != 4 || ws.IsPlayer1Turn {
		t.Errorf("Unexpected wire state %+v", ws)
	}
	back, winner := FromWire(ws, true)
	if winner != game.NoWinner || back.CurrentPlayerIndex != 1 || back.Players[0].TotalValue != 3 {
		t.Errorf("Round trip changed the state: %s", back)
	}
}

// TestWireConversionAcrossPeers: what player1 sends, player2 sees mirrored.
func TestWireConversionAcrossPeers(t *testing.T) {
	gs := sampleState()
	ws := ToWire(gs, true, 1, "P2 wins")
	if ws.Winner != WinnerPlayer2 {
		t.Fatalf("Expected player2 to win on the wire, got %q", ws.Winner)
	}

	data, err := json.Marshal(ws)
	if err != nil {
		t.Fatal(err)
	}
	var received WireState
	if err := json.Unmarshal(data, &received); err != nil {
		t.Fatal(err)
	}

	remote, winner := FromWire(received, false)
	if winner != 0 {
		t.Errorf("Expected the remote to see itself win, got %d", winner)
	}
	if remote.CurrentPlayerIndex != 0 {
		t.Errorf("Expected the remote to be on move, got %d", remote.CurrentPlayerIndex)
	}
	if remote.Players[0].TotalValue != 4 || len(remote.Players[0].Hand) != 2 || remote.Players[1].Deck[0] != game.Number(5) {
		t.Errorf("Players not swapped: %+v", remote.Players)
	}
	if remote.LastRemovedCard == nil || remote.LastRemovedCard.Card != game.Number(6) {
		t.Errorf("Removal record lost: %+v", remote.LastRemovedCard)
	}

	// And back again from player2's side.
	again := ToWire(remote, false, winner, "P2 wins")
	if again.Winner != WinnerPlayer2 || again.IsPlayer1Turn || again.Player1.TotalValue != 3 {
		t.Errorf("Inverse conversion mismatch: %+v", again)
	}
}

func TestBuildStateViewHidesOpponentHand(t *testing.T) {
	sv := BuildStateView(sampleState(), 0)
	if sv.IsYourTurn {
		t.Error("Expected opponent's turn")
	}
	if len(sv.You.Hand) != 1 || sv.You.Hand[0] != "Number 2" {
		t.Errorf("Unexpected own hand %v", sv.You.Hand)
	}
	if sv.Opponent.Hand != nil || sv.Opponent.HandCount != 2 {
		t.Errorf("Opponent hand leaked: %+v", sv.Opponent)
	}
	if sv.LastRemoved != "Number 6" || sv.You.DeckCount != 1 {
		t.Errorf("Unexpected view %+v", sv)
	}

	sv = BuildStateView(sampleState(), 1)
	if !sv.IsYourTurn || sv.You.Total != 4 || sv.You.Hand[0] != "Bolt" {
		t.Errorf("Unexpected view for P2 %+v", sv)
	}
}

func TestTerminalControllerReadsChoice(t *testing.T) {
	var out bytes.Buffer
	tc := NewTerminalController(strings.NewReader("abc\n9\n2\n"), &out)

	idx, err := tc.ChooseCard(context.Background(), sampleState(), 1)
	if err != nil {
		t.Fatalf("ChooseCard: %v", err)
	}
	if idx != 1 {
		t.Errorf("Expected index 1, got %d", idx)
	}
	if strings.Count(out.String(), "Enter a number between 1 and 2") != 2 {
		t.Errorf("Expected two prompts to retry, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "[1] Bolt") {
		t.Errorf("Expected the hand to be rendered, got:\n%s", out.String())
	}
}

func TestTerminalControllerResignAndEOF(t *testing.T) {
	tc := NewTerminalController(strings.NewReader("q\n"), &bytes.Buffer{})
	if _, err := tc.ChooseCard(context.Background(), sampleState(), 1); !errors.Is(err, match.ErrNoMove) {
		t.Errorf("Expected ErrNoMove, got %v", err)
	}

	tc = NewTerminalController(strings.NewReader(""), &bytes.Buffer{})
	if _, err := tc.ChooseCard(context.Background(), sampleState(), 1); err == nil {
		t.Error("Expected an error at end of input")
	}

	// A final line without newline still counts.
	tc = NewTerminalController(strings.NewReader("1"), &bytes.Buffer{})
	if idx, err := tc.ChooseCard(context.Background(), sampleState(), 1); err != nil || idx != 0 {
		t.Errorf("Expected index 0, got %d (%v)", idx, err)
	}
}

func TestTerminalControllerNotify(t *testing.T) {
	var out bytes.Buffer
	tc := NewTerminalController(strings.NewReader(""), &out)
	tc.Notify(context.Background(), log.NewTurnEvent(1, 0))
	tc.Notify(context.Background(), log.NewWinEvent(3, 0, "done"))
	if strings.Contains(out.String(), "Turn 1") || !strings.Contains(out.String(), "P1 wins (done)") {
		t.Errorf("Unexpected output %q", out.String())
	}
}

// TestSecondPlayerTieRedealGoesToPlayer1: player2 ties the totals, the
// redrawn seeds are equal, and the move goes to player1 on both sides.
func TestSecondPlayerTieRedealGoesToPlayer1(t *testing.T) {
	ws := WireState{
		Player1:       game.PlayerState{Hand: []game.Card{game.Number(4)}, Field: []game.Card{game.Number(3)}, Deck: []game.Card{game.Number(2)}, TotalValue: 3},
		Player2:       game.PlayerState{Hand: []game.Card{game.Number(1), game.Number(5)}, Field: []game.Card{game.Number(2)}, Deck: []game.Card{game.Number(2)}, TotalValue: 2},
		IsPlayer1Turn: false,
		Turn:          4,
	}
	gs, _ := FromWire(ws, false)
	if gs.CurrentPlayerIndex != 0 || gs.Player1Seat != 1 {
		t.Fatalf("Expected player2 on move at seat 0 with player1 at seat 1, got %+v", gs)
	}

	res, err := game.NewSeeded(1).PlayCard(gs, 0)
	if err != nil {
		t.Fatalf("PlayCard: %v", err)
	}
	if !res.Redealt || res.GameOver {
		t.Fatalf("Expected a redeal, got %+v", res)
	}

	sent := ToWire(res.State, false, game.NoWinner, res.Narration)
	if !sent.IsPlayer1Turn {
		t.Error("Expected player1 to move after the tied redeal")
	}
	mine, _ := FromWire(sent, true)
	if mine.CurrentPlayerIndex != 0 {
		t.Errorf("Expected player1 to see its own move, got seat %d", mine.CurrentPlayerIndex)
	}
}
