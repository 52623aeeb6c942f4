package bot

import (
	"math"

	"github.com/faridridwanto/blade-clone/internal/game"
)

const (
	baseEffectChance  = 0.3
	effectChanceScale = 0.4
	maxEffectChance   = 0.7
	blastChance       = 0.4
)

// effectPriority is the order in which helpful effect cards are considered.
var effectPriority = []game.CardKind{game.KindForce, game.KindMirror, game.KindBolt}

// CPU picks moves for the automated seat with a layered one-ply heuristic.
// It never searches: the goal is plausible play, not optimal play.
type CPU struct {
	rng game.Rand
}

// NewCPU creates a heuristic drawing its coin flips from rng. Share the
// engine's Rand to keep a seeded match reproducible.
func NewCPU(rng game.Rand) *CPU {
	return &CPU{rng: rng}
}

// ChooseMove returns the hand index the player to move should play, or
// false when the heuristic has no move to offer.
func (c *CPU) ChooseMove(gs game.GameState) (int, bool) {
	me := gs.Players[gs.CurrentPlayerIndex]
	opp := gs.Players[game.Opponent(gs.CurrentPlayerIndex)]
	hand := me.Hand

	if len(hand) == 0 {
		return 0, false
	}
	if len(hand) == 1 && hand[0].Kind.IsEffect() {
		return 0, false
	}
	if me.AllEffects() {
		return helpfulEffect(me, opp, nil)
	}

	var numbers, effects []int
	for i, card := range hand {
		if card.Kind == game.KindNumber {
			numbers = append(numbers, i)
		} else {
			effects = append(effects, i)
		}
	}

	if len(hand) == 1 {
		return numbers[0], true
	}
	if len(effects) == 0 {
		return lowestWinningNumber(me, opp, numbers)
	}

	p := math.Min(baseEffectChance+float64(len(effects))/float64(len(hand))*effectChanceScale, maxEffectChance)
	if c.rng.Float64() < p {
		if idx, ok := c.chooseEffect(me, opp, effects); ok {
			return idx, true
		}
	}

	if idx, ok := lowestWinningNumber(me, opp, numbers); ok {
		return idx, true
	}
	// Best effort: play the smallest number rather than pass.
	return lowestNumber(hand, numbers), true
}

// chooseEffect applies the effect-preferring branch: a chance at Blast,
// then helpfulness, then any other legal effect at random.
func (c *CPU) chooseEffect(me, opp game.PlayerState, effects []int) (int, bool) {
	var rest []int
	blast := -1
	for _, i := range effects {
		if blast < 0 && me.Hand[i].Kind == game.KindBlast {
			blast = i
			continue
		}
		rest = append(rest, i)
	}
	if blast >= 0 && c.rng.Float64() < blastChance {
		return blast, true
	}
	if idx, ok := helpfulEffect(me, opp, rest); ok {
		return idx, true
	}

	// The Blast that lost its roll is out of the draw.
	var legal []int
	for _, i := range rest {
		if playable(me.Hand[i].Kind, me, opp) {
			legal = append(legal, i)
		}
	}
	if len(legal) == 0 {
		return 0, false
	}
	return legal[c.rng.Intn(len(legal))], true
}

// helpfulEffect returns the first card in Force > Mirror > Bolt order that
// is both legal and able to turn the comparison. candidates nil means the
// whole hand.
func helpfulEffect(me, opp game.PlayerState, candidates []int) (int, bool) {
	if candidates == nil {
		for i := range me.Hand {
			candidates = append(candidates, i)
		}
	}
	for _, kind := range effectPriority {
		for _, i := range candidates {
			if me.Hand[i].Kind == kind && playable(kind, me, opp) && helps(kind, me, opp) {
				return i, true
			}
		}
	}
	return 0, false
}

// playable mirrors the resolver's preconditions.
func playable(kind game.CardKind, me, opp game.PlayerState) bool {
	switch kind {
	case game.KindForce:
		return len(me.Field) > 0
	case game.KindBolt, game.KindMirror:
		return len(opp.Field) > 0
	}
	return true
}

func helps(kind game.CardKind, me, opp game.PlayerState) bool {
	probe := me
	probe.Hand = []game.Card{game.Effect(kind)}
	return game.CanPotentiallySurpass(probe, opp, nil)
}

func lowestWinningNumber(me, opp game.PlayerState, numbers []int) (int, bool) {
	best := -1
	for _, i := range numbers {
		v := me.Hand[i].Value
		if me.TotalValue+v > opp.TotalValue && (best < 0 || v < me.Hand[best].Value) {
			best = i
		}
	}
	return best, best >= 0
}

func lowestNumber(hand []game.Card, numbers []int) int {
	best := numbers[0]
	for _, i := range numbers[1:] {
		if hand[i].Value < hand[best].Value {
			best = i
		}
	}
	return best
}
