package game

import "fmt"

// ApplyEffectCard resolves an effect card for player against gs without any
// turn bookkeeping: no hand removal, no seat switch, no termination checks.
// It is used to replay an opponent's effect when reconciling remote state.
func (e *Engine) ApplyEffectCard(gs GameState, kind CardKind, player int) (GameState, string, error) {
	if player != 0 && player != 1 {
		return gs, "", fmt.Errorf("%w: player %d", ErrInvalidMove, player)
	}
	if kind == KindNumber {
		return gs, "", fmt.Errorf("%w: number cards need a face value", ErrInvalidMove)
	}
	next := gs.Clone()
	msg, err := e.resolve(&next, Effect(kind), player)
	if err != nil {
		return gs, "", err
	}
	return next, msg, nil
}

// resolve applies card's effect for actor, mutating gs in place. gs must
// already be a private clone.
func (e *Engine) resolve(gs *GameState, card Card, actor int) (string, error) {
	me := &gs.Players[actor]
	opp := &gs.Players[Opponent(actor)]

	switch card.Kind {
	case KindNumber:
		return resolveNumber(gs, me, card, actor), nil
	case KindBolt:
		return resolveBolt(gs, opp, actor)
	case KindMirror:
		return resolveMirror(me, opp, actor)
	case KindBlast:
		return e.resolveBlast(opp, actor), nil
	case KindForce:
		if len(me.Field) == 0 {
			return "", fmt.Errorf("%w: Force cannot be the first card on a field", ErrInvalidMove)
		}
		me.TotalValue *= 2
		me.Field = append(me.Field, card)
		return fmt.Sprintf("%s played Force and doubled their total to %d", playerName(actor), me.TotalValue), nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownCardKind, int(card.Kind))
	}
}

func resolveNumber(gs *GameState, me *PlayerState, card Card, actor int) string {
	rec := gs.LastRemovedCard
	if card.Value == 1 && rec != nil && rec.RemovedBy == KindBolt {
		rescued := rec.Card
		me.Field = append(me.Field, rescued)
		me.TotalValue += rescued.Value
		gs.LastRemovedCard = nil
		if rescued.Kind == KindForce {
			me.TotalValue *= 2
			return fmt.Sprintf("%s played Number 1 and brought back Force! Total doubled to %d", playerName(actor), me.TotalValue)
		}
		return fmt.Sprintf("%s played Number 1 and brought back %s (total %d)", playerName(actor), rescued.DisplayString(), me.TotalValue)
	}

	me.Field = append(me.Field, card)
	me.TotalValue += card.Value
	return fmt.Sprintf("%s played Number %d (total %d)", playerName(actor), card.Value, me.TotalValue)
}

func resolveBolt(gs *GameState, opp *PlayerState, actor int) (string, error) {
	before := opp.TotalValue
	removed, ok := opp.PopField()
	if !ok {
		return "", fmt.Errorf("%w: Bolt needs a card on the opponent's field", ErrInvalidMove)
	}
	gs.LastRemovedCard = &RemovalRecord{Card: removed, RemovedBy: KindBolt}

	if removed.Kind == KindForce {
		// Force never added its face value, so only the doubling is undone.
		opp.TotalValue = floorHalf(before)
		return fmt.Sprintf("%s's Bolt removed Force! %s's total is halved to %d",
			playerName(actor), playerName(Opponent(actor)), opp.TotalValue), nil
	}
	opp.TotalValue -= removed.Value
	return fmt.Sprintf("%s's Bolt removed %s from %s's field (total %d)",
		playerName(actor), removed.DisplayString(), playerName(Opponent(actor)), opp.TotalValue), nil
}

func resolveMirror(me, opp *PlayerState, actor int) (string, error) {
	if len(opp.Field) == 0 {
		return "", fmt.Errorf("%w: Mirror needs a card on the opponent's field", ErrInvalidMove)
	}
	if len(me.Field) == 0 {
		return "Mirror had no effect (not enough cards on field)", nil
	}
	me.Field, opp.Field = opp.Field, me.Field
	me.TotalValue = fieldValue(me.Field)
	opp.TotalValue = fieldValue(opp.Field)
	return fmt.Sprintf("%s's Mirror swapped the fields (%d vs %d)", playerName(actor), me.TotalValue, opp.TotalValue), nil
}

func (e *Engine) resolveBlast(opp *PlayerState, actor int) string {
	if len(opp.Hand) == 0 {
		return "Blast had no effect (opponent has no cards)"
	}
	opp.RemoveFromHand(e.rng.Intn(len(opp.Hand)))
	return fmt.Sprintf("%s's Blast destroyed a random card in %s's hand", playerName(actor), playerName(Opponent(actor)))
}

// floorHalf halves n rounding toward negative infinity.
func floorHalf(n int) int {
	if n >= 0 {
		return n / 2
	}
	return -((-n + 1) / 2)
}
