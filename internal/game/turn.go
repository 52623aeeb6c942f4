package game

import "fmt"

// Result is the outcome of an accepted move.
type Result struct {
	State     GameState
	Narration string
	GameOver  bool
	Winner    int  // NoWinner unless GameOver
	Played    Card // zero when the move ended on a viability loss
	Redealt   bool // the move tied the totals and the fields were redrawn
}

// PlayCard plays the card at handIndex for the player to move and returns
// the next state. Rule violations return an error and leave gs untouched.
func (e *Engine) PlayCard(gs GameState, handIndex int) (Result, error) {
	if v := CheckViability(gs); !v.Viable {
		return Result{State: gs.Clone(), Narration: v.Narration, GameOver: true, Winner: v.Winner}, nil
	}

	actor := gs.CurrentPlayerIndex
	hand := gs.Players[actor].Hand
	if handIndex < 0 || handIndex >= len(hand) {
		return Result{}, fmt.Errorf("%w: %d (hand has %d cards)", ErrInvalidCardIndex, handIndex, len(hand))
	}
	card := hand[handIndex]
	if len(hand) == 1 && card.Kind.IsEffect() {
		return Result{}, fmt.Errorf("%w: %s", ErrEffectAsLastCard, card.DisplayString())
	}

	next := gs.Clone()
	me := &next.Players[actor]
	opp := &next.Players[Opponent(actor)]
	me.RemoveFromHand(handIndex)

	msg, err := e.resolve(&next, card, actor)
	if err != nil {
		return Result{}, err
	}
	if actor == CPUSeat && card.Kind == KindNumber && me.TotalValue <= opp.TotalValue {
		return Result{}, fmt.Errorf("%w: %d against %d", ErrCPUIneffectiveMove, me.TotalValue, opp.TotalValue)
	}

	won := me.TotalValue > opp.TotalValue
	draw := me.TotalValue == opp.TotalValue
	// One Number left counts as out of cards.
	noMoreCards := len(me.Hand) == 0 || (len(me.Hand) == 1 && card.Kind == KindNumber)

	res := Result{Narration: msg, Winner: NoWinner, Played: card}
	switch {
	case draw:
		redeal(&next, &res)
	case !won:
		resolveBehind(&next, &res, card)
	case noMoreCards:
		resolveOutOfCards(&next, &res)
	default:
		if card.Kind != KindBlast {
			next.CurrentPlayerIndex = Opponent(actor)
		} else {
			res.Narration += fmt.Sprintf(" %s plays again.", playerName(actor))
		}
		next.Turn++
	}
	res.State = next
	return res, nil
}

// redeal clears both fields after a tie and seeds them again from the decks.
func redeal(gs *GameState, res *Result) {
	res.Narration += " Both totals are equal: the fields are cleared and new cards are drawn!"
	res.Redealt = true

	var seeds [2]Card
	drew := [2]bool{}
	for p := range gs.Players {
		gs.Players[p].Field = nil
		gs.Players[p].TotalValue = 0
		seeds[p], drew[p] = gs.Players[p].DrawToField()
	}
	if drew[0] && drew[1] {
		gs.CurrentPlayerIndex = firstMover(seeds[0], seeds[1], gs.Player1Seat)
	}

	mover := gs.CurrentPlayerIndex
	me, opp := gs.Players[mover], gs.Players[Opponent(mover)]
	if me.AllEffects() && !CanPotentiallySurpass(me, opp, gs.LastRemovedCard) {
		res.GameOver = true
		res.Winner = Opponent(mover)
		res.Narration += fmt.Sprintf(" %s cannot surpass with only effect cards. %s wins!", playerName(mover), playerName(res.Winner))
	}
}

// resolveBehind handles a move that left the actor strictly behind.
func resolveBehind(gs *GameState, res *Result, played Card) {
	actor := gs.CurrentPlayerIndex
	me, opp := gs.Players[actor], gs.Players[Opponent(actor)]

	switch {
	case played.Kind == KindBlast:
		res.Narration += fmt.Sprintf(" %s plays again.", playerName(actor))
		gs.Turn++
	case !CanPotentiallySurpass(me, opp, gs.LastRemovedCard):
		res.GameOver = true
		res.Winner = Opponent(actor)
		res.Narration += fmt.Sprintf(" %s couldn't surpass the opponent's total. %s wins!", playerName(actor), playerName(res.Winner))
	case len(me.Hand) == 0:
		res.GameOver = true
		res.Winner = Opponent(actor)
		res.Narration += fmt.Sprintf(" %s has no cards left. %s wins!", playerName(actor), playerName(res.Winner))
	default:
		gs.CurrentPlayerIndex = Opponent(actor)
		gs.Turn++
	}
}

// resolveOutOfCards handles a winning move that left the actor with no
// further play.
func resolveOutOfCards(gs *GameState, res *Result) {
	actor := gs.CurrentPlayerIndex
	me, opp := gs.Players[actor], gs.Players[Opponent(actor)]

	switch {
	case len(opp.Hand) == 0:
		res.Narration += fmt.Sprintf(" The opponent has no cards. %s wins!", playerName(actor))
	case opp.HasDeadCard():
		res.Narration += fmt.Sprintf(" The opponent holds only %s, which cannot be played last. %s wins!",
			opp.Hand[0].DisplayString(), playerName(actor))
	case CanPotentiallySurpass(opp, me, gs.LastRemovedCard):
		gs.CurrentPlayerIndex = Opponent(actor)
		gs.Turn++
		return
	default:
		res.Narration += fmt.Sprintf(" The opponent cannot surpass %d. %s wins!", me.TotalValue, playerName(actor))
	}
	res.GameOver = true
	res.Winner = actor
}
