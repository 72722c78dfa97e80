package game

import (
	"fmt"
	"slices"
)

func (e *Engine) resolveDefense(g *Game, actor int, a Action) (string, error) {
	w := g.Pending.(*DefenseWindow)
	defender := &g.Seats[w.Defender]
	target, _ := g.findCharacter(w.TargetCharacterID)

	if a.UseDefense {
		idx := defender.indexOfType(CardDefense)
		if a.DefenseCardIndex != nil {
			idx = *a.DefenseCardIndex
		}
		if idx < 0 || idx >= len(defender.Hand) {
			return "", fmt.Errorf("%w: %d", ErrInvalidIndex, idx)
		}
		if defender.Hand[idx].Type != CardDefense {
			return "", fmt.Errorf("%w: card %d is not a defense card", ErrInvalidIndex, idx)
		}
		used := defender.removeCard(idx)
		g.Seats[w.Attacker].removeCard(w.CardIndex)
		g.Pending = nil
		return fmt.Sprintf("%s uses %s to nullify %s.", g.seatName(actor), used.Name, w.Card.Name), nil
	}

	g.Seats[w.Attacker].removeCard(w.CardIndex)
	g.Pending = nil
	if target == nil {
		return fmt.Sprintf("%s does not defend.", g.seatName(actor)), nil
	}
	Apply(w.Card, target)
	return fmt.Sprintf("%s does not defend. %s", g.seatName(actor),
		describeEffect(g, w.Attacker, w.Card, target)), nil
}

func openSwap(g *Game, actor, idx, target int) (string, error) {
	if len(g.Seats[actor].Hand) < 2 {
		return "", fmt.Errorf("%w: no cards to offer", ErrIllegalTarget)
	}
	if len(g.Seats[target].Hand) == 0 {
		return "", fmt.Errorf("%w: %s has no cards", ErrIllegalTarget, g.seatName(target))
	}
	g.Pending = &SwapNegotiation{Proposer: actor, Target: target, SwapCardIndex: idx}
	return fmt.Sprintf("%s proposes a swap with %s.", g.seatName(actor), g.seatName(target)), nil
}

func (e *Engine) respondSwap(g *Game, actor int, a Action) (string, error) {
	n := g.Pending.(*SwapNegotiation)
	switch a.Step {
	case StepSelect, StepDeselect:
		sel := &n.TargetSelection
		if actor == n.Proposer {
			sel = &n.ProposerSelection
		}
		hand := len(g.Seats[actor].Hand)
		if a.Index < 0 || a.Index >= hand || (actor == n.Proposer && a.Index == n.SwapCardIndex) {
			return "", fmt.Errorf("%w: %d", ErrInvalidIndex, a.Index)
		}
		if a.Step == StepDeselect {
			if !containsIndex(*sel, a.Index) {
				return "", fmt.Errorf("%w: card %d is not selected", ErrInvalidSelection, a.Index)
			}
			*sel = removeIndex(*sel, a.Index)
			return fmt.Sprintf("%s removes a card from the swap (%d selected).", g.seatName(actor), len(*sel)), nil
		}
		if containsIndex(*sel, a.Index) {
			return "", fmt.Errorf("%w: card %d already selected", ErrInvalidSelection, a.Index)
		}
		if len(*sel) >= n.MaxSelection(g) {
			return "", fmt.Errorf("%w: at most %d cards", ErrInvalidSelection, n.MaxSelection(g))
		}
		*sel = append(*sel, a.Index)
		return fmt.Sprintf("%s offers a card for the swap (%d selected).", g.seatName(actor), len(*sel)), nil

	case StepConfirm:
		if actor != n.Proposer {
			return "", fmt.Errorf("%w: only the proposer confirms a swap", ErrNotYourTurn)
		}
		count := len(n.ProposerSelection)
		if count == 0 || count != len(n.TargetSelection) {
			return "", fmt.Errorf("%w: %d offered, %d requested", ErrInvalidSelection, count, len(n.TargetSelection))
		}
		exchange(g, n)
		g.Pending = nil
		return fmt.Sprintf("%s and %s swap %d card(s).", g.seatName(n.Proposer), g.seatName(n.Target), count), nil

	case StepCancel:
		if actor != n.Proposer {
			return "", fmt.Errorf("%w: only the proposer cancels a swap", ErrNotYourTurn)
		}
		g.Pending = nil
		return fmt.Sprintf("%s cancels the swap.", g.seatName(actor)), nil
	}
	return "", fmt.Errorf("%w: swap step %q", ErrUnknownAction, a.Step)
}

// exchange moves the selected cards between both hands and spends the swap
// card.
func exchange(g *Game, n *SwapNegotiation) {
	p, t := &g.Seats[n.Proposer], &g.Seats[n.Target]
	give := pick(p.Hand, n.ProposerSelection)
	take := pick(t.Hand, n.TargetSelection)

	drop := append(slices.Clone(n.ProposerSelection), n.SwapCardIndex)
	p.Hand = append(without(p.Hand, drop), take...)
	t.Hand = append(without(t.Hand, n.TargetSelection), give...)
}

func openTheft(g *Game, actor, idx, victim int) (string, error) {
	if len(g.Seats[victim].Hand) == 0 {
		return "", fmt.Errorf("%w: %s has no cards", ErrIllegalTarget, g.seatName(victim))
	}
	// The victim always answers first, so the stage says nothing about
	// whether a counter is held.
	g.Pending = &TheftWindow{Thief: actor, Victim: victim, CardIndex: idx, Stage: TheftAwaitingResponse}
	return fmt.Sprintf("%s attempts to steal from %s.", g.seatName(actor), g.seatName(victim)), nil
}

func (e *Engine) respondTheft(g *Game, actor int, a Action) (string, error) {
	w := g.Pending.(*TheftWindow)
	if w.Stage == TheftAwaitingResponse {
		if actor != w.Victim {
			return "", fmt.Errorf("%w: waiting on %s", ErrWrongPhase, g.seatName(w.Victim))
		}
		if !a.UseCounter {
			w.Stage = TheftSelecting
			return fmt.Sprintf("%s lets the theft through.", g.seatName(actor)), nil
		}
		victim := &g.Seats[w.Victim]
		idx := victim.indexOfType(CardAntiTheft)
		if a.CounterCardIndex != nil {
			idx = *a.CounterCardIndex
		}
		if idx < 0 || idx >= len(victim.Hand) || victim.Hand[idx].Type != CardAntiTheft {
			return "", fmt.Errorf("%w: %d", ErrInvalidIndex, idx)
		}
		used := victim.removeCard(idx)
		g.Seats[w.Thief].removeCard(w.CardIndex)
		g.Pending = nil
		return fmt.Sprintf("%s blocks the theft with %s.", g.seatName(actor), used.Name), nil
	}

	if actor != w.Thief {
		return "", fmt.Errorf("%w: %s is choosing", ErrNotYourTurn, g.seatName(w.Thief))
	}
	switch a.Step {
	case StepSelect:
		if a.Index < 0 || a.Index >= len(g.Seats[w.Victim].Hand) {
			return "", fmt.Errorf("%w: %d", ErrInvalidIndex, a.Index)
		}
		if containsIndex(w.Selection, a.Index) {
			return "", fmt.Errorf("%w: card %d already selected", ErrInvalidSelection, a.Index)
		}
		if len(w.Selection) >= w.Capacity(g) {
			return "", fmt.Errorf("%w: at most %d cards", ErrInvalidSelection, w.Capacity(g))
		}
		w.Selection = append(w.Selection, a.Index)
		return fmt.Sprintf("%s picks a card (%d selected).", g.seatName(actor), len(w.Selection)), nil
	case StepDeselect:
		if !containsIndex(w.Selection, a.Index) {
			return "", fmt.Errorf("%w: card %d is not selected", ErrInvalidSelection, a.Index)
		}
		w.Selection = removeIndex(w.Selection, a.Index)
		return fmt.Sprintf("%s puts a card back (%d selected).", g.seatName(actor), len(w.Selection)), nil
	case StepConfirm:
		if len(w.Selection) == 0 {
			return "", fmt.Errorf("%w: nothing selected", ErrInvalidSelection)
		}
		thief, victim := &g.Seats[w.Thief], &g.Seats[w.Victim]
		stolen := pick(victim.Hand, w.Selection)
		thief.removeCard(w.CardIndex)
		if len(thief.Hand)+len(stolen) > g.MaxHandSize {
			return "", ErrHandFull
		}
		victim.Hand = without(victim.Hand, w.Selection)
		thief.Hand = append(thief.Hand, stolen...)
		g.Pending = nil
		return fmt.Sprintf("%s steals %d card(s) from %s.", g.seatName(w.Thief), len(stolen), g.seatName(w.Victim)), nil
	case StepCancel:
		return "", fmt.Errorf("%w: a theft cannot be cancelled", ErrWrongPhase)
	}
	return "", fmt.Errorf("%w: theft step %q", ErrUnknownAction, a.Step)
}

func pick(hand []Card, idx []int) []Card {
	out := make([]Card, 0, len(idx))
	for _, i := range idx {
		out = append(out, hand[i])
	}
	return out
}

func without(hand []Card, idx []int) []Card {
	out := make([]Card, 0, len(hand))
	for i, c := range hand {
		if !containsIndex(idx, i) {
			out = append(out, c)
		}
	}
	return out
}
