package net

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/faridridwanto/blade-clone/internal/game"
	"github.com/faridridwanto/blade-clone/internal/log"
	"github.com/faridridwanto/blade-clone/internal/match"
)

// TerminalController implements match.PlayerController as a terminal REPL.
type TerminalController struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalController reads moves from r and renders to w.
func NewTerminalController(r io.Reader, w io.Writer) *TerminalController {
	return &TerminalController{in: bufio.NewReader(r), out: w}
}

// ChooseCard implements match.PlayerController. Typing "q" resigns.
func (tc *TerminalController) ChooseCard(ctx context.Context, state game.GameState, player int) (int, error) {
	sv := BuildStateView(state, player)
	tc.renderState(sv)

	count := len(sv.You.Hand)
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprint(tc.out, "> ")
		line, err := tc.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" && err != nil {
			return 0, fmt.Errorf("read move: %w", err)
		}
		if line == "q" || line == "quit" {
			return 0, match.ErrNoMove
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > count {
			fmt.Fprintf(tc.out, "Enter a number between 1 and %d, or q to resign\n", count)
			if err != nil {
				return 0, fmt.Errorf("read move: %w", err)
			}
			continue
		}
		return n - 1, nil // convert to 0-indexed
	}
}

// Notify implements match.PlayerController.
func (tc *TerminalController) Notify(ctx context.Context, event log.GameEvent) error {
	if event.Type == log.EventNewTurn {
		return nil
	}
	_, err := fmt.Fprintln(tc.out, log.FormatEvent(event))
	return err
}

// ShowResult prints the final banner.
func (tc *TerminalController) ShowResult(won bool, result string) {
	fmt.Fprintln(tc.out)
	fmt.Fprintln(tc.out, "═══════════════════════════════════")
	if won {
		fmt.Fprintln(tc.out, "          YOU WIN")
	} else {
		fmt.Fprintln(tc.out, "          YOU LOSE")
	}
	fmt.Fprintln(tc.out, "═══════════════════════════════════")
	fmt.Fprintln(tc.out, result)
	fmt.Fprintln(tc.out, "═══════════════════════════════════")
}

func (tc *TerminalController) renderState(sv *StateView) {
	w := tc.out
	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")

	opp := sv.Opponent
	fmt.Fprintf(w, "║  OPPONENT  Total: %d  Hand: %d  Deck: %d\n", opp.Total, opp.HandCount, opp.DeckCount)
	fmt.Fprintf(w, "║  Field:    %s\n", formatField(opp.Field))
	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")

	you := sv.You
	fmt.Fprintf(w, "║  Field:    %s\n", formatField(you.Field))
	fmt.Fprintf(w, "║  YOU       Total: %d  Hand: %d  Deck: %d\n", you.Total, you.HandCount, you.DeckCount)
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d", sv.Turn)
	if sv.IsYourTurn {
		turnInfo += " | Your turn"
	} else {
		turnInfo += " | Opponent's turn"
	}
	if sv.LastRemoved != "" {
		turnInfo += " | Number 1 rescues " + sv.LastRemoved
	}
	fmt.Fprintln(w, turnInfo)

	if len(you.Hand) > 0 {
		fmt.Fprintf(w, "\nHand: ")
		for i, name := range you.Hand {
			fmt.Fprintf(w, "[%d] %s  ", i+1, name)
		}
		fmt.Fprintln(w)
	}
}

func formatField(field []string) string {
	if len(field) == 0 {
		return "[ ]"
	}
	parts := make([]string, len(field))
	for i, name := range field {
		parts[i] = "[" + name + "]"
	}
	return strings.Join(parts, " ")
}
