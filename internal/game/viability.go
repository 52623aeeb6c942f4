package game

import "fmt"

// CanPotentiallySurpass reports whether any card in player's hand could
// plausibly let them catch up with opponent. It looks one card ahead only.
func CanPotentiallySurpass(player, opponent PlayerState, last *RemovalRecord) bool {
	rescue := last != nil && last.RemovedBy == KindBolt
	for _, c := range player.Hand {
		switch c.Kind {
		case KindNumber:
			if player.TotalValue+c.Value >= opponent.TotalValue {
				return true
			}
			if c.Value == 1 && rescue {
				return true
			}
		case KindForce:
			if player.TotalValue*2 >= opponent.TotalValue {
				return true
			}
		case KindMirror:
			if opponent.TotalValue > player.TotalValue {
				return true
			}
		case KindBolt:
			top, ok := opponent.TopCard()
			if ok && player.TotalValue > opponent.TotalValue-boltLoss(top) {
				return true
			}
		}
	}
	return false
}

// boltLoss is what a Bolt subtracts when it removes top. Force adds nothing
// to a total, so removing it subtracts nothing.
func boltLoss(top Card) int {
	if top.Kind == KindForce {
		return 0
	}
	return top.Value
}

// Viability is the outcome of CheckViability. When Viable is false the
// mover has lost: Winner is the other seat and Narration says why.
type Viability struct {
	Viable    bool
	Winner    int
	Narration string
}

// CheckViability decides whether the player to move still has a game.
// Besides the two surpass checks, an empty hand also loses, so PlayCard on
// an empty hand ends the game instead of returning ErrInvalidCardIndex.
func CheckViability(gs GameState) Viability {
	mover := gs.CurrentPlayerIndex
	me := gs.Players[mover]
	opp := gs.Players[Opponent(mover)]
	lose := func(why string) Viability {
		return Viability{
			Winner:    Opponent(mover),
			Narration: fmt.Sprintf("%s %s. %s wins!", playerName(mover), why, playerName(Opponent(mover))),
		}
	}

	canSurpass := CanPotentiallySurpass(me, opp, gs.LastRemovedCard)
	switch {
	case me.AllEffects() && !canSurpass:
		return lose("holds only effect cards and none can turn the game")
	case len(me.Hand) > 0 && !canSurpass:
		return lose("cannot surpass the opponent with any card in hand")
	case len(me.Hand) == 0:
		return lose("has no cards left")
	}
	return Viability{Viable: true, Winner: NoWinner}
}
