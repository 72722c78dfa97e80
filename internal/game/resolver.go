package game

import "fmt"

func (e *Engine) playCard(g *Game, actor int, a Action) (string, error) {
	seat := &g.Seats[actor]
	if a.CardIndex < 0 || a.CardIndex >= len(seat.Hand) {
		return "", fmt.Errorf("%w: %d", ErrInvalidIndex, a.CardIndex)
	}
	card := seat.Hand[a.CardIndex]
	rule, ok := cardRules[card.Type]
	if !ok || !rule.playable {
		return "", fmt.Errorf("%w: %s can only be played in response", ErrWrongPhase, card.Name)
	}

	switch rule.target {
	case targetCharacter:
		return e.playOnCharacter(g, actor, a.CardIndex, card, a.TargetCharacterID)
	case targetSeat:
		if a.TargetSeat == nil {
			return "", fmt.Errorf("%w: %s needs a target seat", ErrIllegalTarget, card.Name)
		}
		target := *a.TargetSeat
		if !g.validSeat(target) || target == actor || g.Seats[target].HasLost {
			return "", fmt.Errorf("%w: seat %d", ErrIllegalTarget, target)
		}
		if card.Type == CardThief {
			return openTheft(g, actor, a.CardIndex, target)
		}
		return openSwap(g, actor, a.CardIndex, target)
	}
	return "", fmt.Errorf("%w: %s", ErrWrongPhase, card.Name)
}

func (e *Engine) playOnCharacter(g *Game, actor, idx int, card Card, targetID string) (string, error) {
	target, owner := g.findCharacter(targetID)
	if target == nil {
		return "", fmt.Errorf("%w: unknown character %q", ErrIllegalTarget, targetID)
	}
	if err := CanTarget(card, actor, target, g); err != nil {
		return "", err
	}

	if IsDefendable(card) && owner != actor && g.Seats[owner].Holds(CardDefense) {
		g.Pending = &DefenseWindow{
			Attacker:          actor,
			Defender:          owner,
			CardIndex:         idx,
			Card:              card,
			TargetCharacterID: target.ID,
		}
		return fmt.Sprintf("%s plays %s on %s. %s may defend.",
			g.seatName(actor), card.Name, target.Name, g.seatName(owner)), nil
	}

	Apply(card, target)
	g.Seats[actor].removeCard(idx)
	return describeEffect(g, actor, card, target), nil
}

func describeEffect(g *Game, actor int, card Card, c *Character) string {
	who := g.seatName(actor)
	var msg string
	switch card.Effect.Kind {
	case EffectReduceSleep:
		msg = fmt.Sprintf("%s plays %s on %s (%d).", who, card.Name, c.Name, card.Effect.Value)
	case EffectAddSleep:
		msg = fmt.Sprintf("%s plays %s on %s (+%d).", who, card.Name, c.Name, card.Effect.Value)
	case EffectRestoreSleep:
		msg = fmt.Sprintf("%s plays %s. %s is fully rested.", who, card.Name, c.Name)
	case EffectProtect:
		msg = fmt.Sprintf("%s plays %s. %s is protected.", who, card.Name, c.Name)
	case EffectDispel:
		msg = fmt.Sprintf("%s plays %s. %s is no longer protected.", who, card.Name, c.Name)
	default:
		msg = fmt.Sprintf("%s plays %s on %s.", who, card.Name, c.Name)
	}
	if c.IsAsleep() {
		msg += fmt.Sprintf(" %s fell asleep.", c.Name)
	}
	return msg
}

func (e *Engine) endTurn(g *Game, actor int) (string, error) {
	drawn := e.drawToFull(&g.Seats[actor])
	g.CurrentTurn = g.nextActiveSeat(actor)
	return fmt.Sprintf("%s ends the turn and draws %d. %s is up.",
		g.seatName(actor), drawn, g.seatName(g.CurrentTurn)), nil
}
