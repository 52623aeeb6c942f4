package game

import "fmt"

const (
	HandSize = 10
	HalfDeck = 19

	// CPUSeat is the seat the automated opponent always occupies.
	CPUSeat = 1

	// NoWinner marks a result whose game is still running.
	NoWinner = -1
)

// PlayerState represents one player's side of the table.
type PlayerState struct {
	Hand       []Card `json:"hand"`
	Field      []Card `json:"field"` // last element is the top card
	Deck       []Card `json:"deck"`  // front is the next draw
	TotalValue int    `json:"totalValue"`
}

// HandCount returns the number of cards in hand.
func (p *PlayerState) HandCount() int {
	return len(p.Hand)
}

// TopCard returns the top field card and whether there is one.
func (p *PlayerState) TopCard() (Card, bool) {
	if len(p.Field) == 0 {
		return Card{}, false
	}
	return p.Field[len(p.Field)-1], true
}

// RemoveFromHand removes and returns the card at index i.
func (p *PlayerState) RemoveFromHand(i int) Card {
	card := p.Hand[i]
	p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	return card
}

// DrawToField moves the next deck card onto the field and adds its value.
// Returns false if the deck is empty.
func (p *PlayerState) DrawToField() (Card, bool) {
	if len(p.Deck) == 0 {
		return Card{}, false
	}
	card := p.Deck[0]
	p.Deck = p.Deck[1:]
	p.Field = append(p.Field, card)
	p.TotalValue += card.Value
	return card, true
}

// PopField removes the top field card. The caller adjusts the total.
func (p *PlayerState) PopField() (Card, bool) {
	card, ok := p.TopCard()
	if !ok {
		return Card{}, false
	}
	p.Field = p.Field[:len(p.Field)-1]
	return card, true
}

// AllEffects reports whether the hand is non-empty and holds no Number card.
func (p *PlayerState) AllEffects() bool {
	if len(p.Hand) == 0 {
		return false
	}
	for _, c := range p.Hand {
		if c.Kind == KindNumber {
			return false
		}
	}
	return true
}

// HasDeadCard reports whether the only card in hand is an unplayable effect.
func (p *PlayerState) HasDeadCard() bool {
	return len(p.Hand) == 1 && p.Hand[0].Kind.IsEffect()
}

func (p PlayerState) clone() PlayerState {
	return PlayerState{
		Hand:       cloneCards(p.Hand),
		Field:      cloneCards(p.Field),
		Deck:       cloneCards(p.Deck),
		TotalValue: p.TotalValue,
	}
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

// fieldValue recomputes a field total from scratch. Force only counts,
// as 1, when it sits at position 0.
func fieldValue(field []Card) int {
	total := 0
	for i, c := range field {
		if c.Kind == KindForce {
			if i == 0 {
				total++
			}
			continue
		}
		total += c.Value
	}
	return total
}

// --- GameState ---

// GameState is the complete state of a duel from one side's point of view:
// Players[0] and Players[1] are indexed by seat, and CurrentPlayerIndex says
// whose move it is. Values are never mutated once handed out; every
// transition works on a Clone.
type GameState struct {
	Players            [2]PlayerState `json:"players"`
	CurrentPlayerIndex int            `json:"currentPlayerIndex"`
	Turn               int            `json:"turn"`
	LastRemovedCard    *RemovalRecord `json:"lastRemovedCard"`

	// Player1Seat is the seat of the absolute first player, which wins
	// redeal ties. Online peers keep themselves at seat 0, so the second
	// player's side has it at 1.
	Player1Seat int `json:"player1Seat,omitempty"`
}

// Opponent returns the index of the other player.
func Opponent(player int) int {
	return 1 - player
}

// Mover returns the player whose move it is.
func (gs *GameState) Mover() *PlayerState {
	return &gs.Players[gs.CurrentPlayerIndex]
}

// Waiting returns the player who is not moving.
func (gs *GameState) Waiting() *PlayerState {
	return &gs.Players[Opponent(gs.CurrentPlayerIndex)]
}

// Clone returns a copy that shares no slices with gs.
func (gs GameState) Clone() GameState {
	out := GameState{
		Players:            [2]PlayerState{gs.Players[0].clone(), gs.Players[1].clone()},
		CurrentPlayerIndex: gs.CurrentPlayerIndex,
		Turn:               gs.Turn,
		Player1Seat:        gs.Player1Seat,
	}
	if gs.LastRemovedCard != nil {
		rec := *gs.LastRemovedCard
		out.LastRemovedCard = &rec
	}
	return out
}

func (gs GameState) String() string {
	return fmt.Sprintf("turn %d, P%d to move, totals %d/%d",
		gs.Turn, gs.CurrentPlayerIndex+1, gs.Players[0].TotalValue, gs.Players[1].TotalValue)
}

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}
