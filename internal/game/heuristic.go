package game

import "sort"

// ChooseAction picks the bot's next action from its own snapshot. It
// returns false when the viewer has nothing to decide right now.
func ChooseAction(s Snapshot) (Action, bool) {
	own := s.Own()
	if own == nil || own.HasLost || s.Win.GameOver {
		return Action{}, false
	}
	if p := s.Pending; p != nil {
		return respondPending(s, own, p)
	}
	if s.Phase != PhaseNormalPlay || s.CurrentTurn != s.Viewer {
		return Action{}, false
	}
	return chooseTurnAction(s, own), true
}

func respondPending(s Snapshot, own *SeatView, p *PendingView) (Action, bool) {
	switch p.Role {
	case RoleDefender:
		return Defend(shouldDefend(own, p)), true

	case RoleTarget:
		if len(p.OwnSelection) >= p.ProposerCount || len(p.OwnSelection) >= p.MaxSwapSelection {
			return Action{}, false
		}
		if i := leastValuable(own.Hand, p.OwnSelection, -1); i >= 0 {
			return SwapStep(StepSelect, i), true
		}

	case RoleProposer:
		mine, theirs := len(p.OwnSelection), p.TargetCount
		switch {
		case mine > 0 && mine == theirs:
			return SwapStep(StepConfirm, 0), true
		case mine == 0 || (theirs > mine && mine < p.MaxSwapSelection):
			if i := swapCandidate(own.Hand, p.OwnSelection, *p.SwapCardIndex); i >= 0 {
				return SwapStep(StepSelect, i), true
			}
			if mine == 0 {
				return SwapStep(StepCancel, 0), true
			}
		}

	case RoleVictim:
		if p.Stage == TheftAwaitingResponse {
			return TheftCounter(firstOfType(own.Hand, CardAntiTheft) >= 0), true
		}

	case RoleThief:
		if p.Stage != TheftSelecting {
			return Action{}, false
		}
		if len(p.Selection) < p.StealCapacity {
			for i := 0; i < s.Seats[*p.Victim].HandSize; i++ {
				if !containsIndex(p.Selection, i) {
					return TheftStep(StepSelect, i), true
				}
			}
		}
		return TheftStep(StepConfirm, 0), true
	}
	return Action{}, false
}

// shouldDefend spends a defense card on heavy hits or hits that would put
// the character to sleep.
func shouldDefend(own *SeatView, p *PendingView) bool {
	if p.Card == nil {
		return true
	}
	switch p.Card.Effect.Kind {
	case EffectForceSleep, EffectDispel:
		return true
	case EffectReduceSleep:
		for _, c := range own.Characters {
			if c.ID == p.TargetCharacterID {
				return c.CurrentSleep+p.Card.Effect.Value <= 0 || p.Card.Effect.Value <= -2
			}
		}
	}
	return true
}

func chooseTurnAction(s Snapshot, own *SeatView) Action {
	hand := own.Hand

	// Lucky on the most depleted own character.
	if i := firstOfType(hand, CardLucky); i >= 0 {
		if c := mostDepleted(own, 2); c != nil {
			return PlayOnCharacter(i, c.ID)
		}
	}

	if i := firstOfType(hand, CardThief); i >= 0 {
		if t, ok := stealTarget(s); ok {
			return PlayOnSeat(i, t)
		}
	}

	if a, ok := bestAttack(s, hand); ok {
		return a
	}

	if i := firstOfType(hand, CardDispel); i >= 0 {
		for _, sv := range s.Seats {
			if sv.ID == s.Viewer || sv.HasLost {
				continue
			}
			for _, c := range sv.Characters {
				if c.Protected && !c.IsAsleep() {
					return PlayOnCharacter(i, c.ID)
				}
			}
		}
	}

	if i := firstOfType(hand, CardProtect); i >= 0 {
		if c := weakestUnprotected(own); c != nil {
			return PlayOnCharacter(i, c.ID)
		}
	}

	if a, ok := bestSupport(own); ok {
		return a
	}

	if i := firstOfType(hand, CardSwap); i >= 0 && countType(hand, CardDefense) > 1 {
		if t, ok := swapTarget(s); ok {
			return PlayOnSeat(i, t)
		}
	}

	return EndTurn()
}

type attackOption struct {
	card, value int
	target      Character
	human       bool
	finishes    bool
}

func bestAttack(s Snapshot, hand []Card) (Action, bool) {
	var opts []attackOption
	for ci, card := range hand {
		if card.Type != CardAttack {
			continue
		}
		for _, sv := range s.Seats {
			if sv.ID == s.Viewer || sv.HasLost {
				continue
			}
			for _, c := range sv.Characters {
				if c.IsAsleep() || c.Protected {
					continue
				}
				o := attackOption{card: ci, target: c, human: !sv.IsBot}
				if card.Effect.Kind == EffectForceSleep {
					o.finishes, o.value = true, -c.CurrentSleep
				} else {
					o.value = card.Effect.Value
					o.finishes = c.CurrentSleep+o.value <= 0
				}
				opts = append(opts, o)
			}
		}
	}
	if len(opts) == 0 {
		return Action{}, false
	}
	sort.SliceStable(opts, func(i, j int) bool {
		a, b := opts[i], opts[j]
		if a.finishes != b.finishes {
			return a.finishes
		}
		if a.finishes {
			// Spend the smallest card that still finishes the target.
			if a.value != b.value {
				return a.value > b.value
			}
		} else if a.value != b.value {
			return a.value < b.value
		}
		if a.human != b.human {
			return a.human
		}
		return a.target.CurrentSleep < b.target.CurrentSleep
	})
	return PlayOnCharacter(opts[0].card, opts[0].target.ID), true
}

// bestSupport never plays on a full character.
func bestSupport(own *SeatView) (Action, bool) {
	best, bestCard := -1, -1
	var target string
	for ci, card := range own.Hand {
		if card.Type != CardSupport {
			continue
		}
		for _, c := range own.Characters {
			if c.IsAsleep() || c.Deficit() <= 0 {
				continue
			}
			gain := min(c.Deficit(), card.Effect.Value)
			score := gain*100 + c.Deficit()
			if score > best {
				best, bestCard, target = score, ci, c.ID
			}
		}
	}
	if bestCard < 0 {
		return Action{}, false
	}
	return PlayOnCharacter(bestCard, target), true
}

func mostDepleted(own *SeatView, minDeficit int) *Character {
	var out *Character
	for i := range own.Characters {
		c := &own.Characters[i]
		if c.IsAsleep() || c.Deficit() < minDeficit {
			continue
		}
		if out == nil || c.Deficit() > out.Deficit() {
			out = c
		}
	}
	return out
}

func weakestUnprotected(own *SeatView) *Character {
	var out *Character
	for i := range own.Characters {
		c := &own.Characters[i]
		if c.IsAsleep() || c.Protected {
			continue
		}
		if out == nil || c.CurrentSleep < out.CurrentSleep {
			out = c
		}
	}
	return out
}

// stealTarget prefers humans, then the fullest hand.
func stealTarget(s Snapshot) (int, bool) {
	best, found := -1, false
	for _, sv := range s.Seats {
		if sv.ID == s.Viewer || sv.HasLost || sv.HandSize == 0 {
			continue
		}
		if !found {
			best, found = sv.ID, true
			continue
		}
		cur := s.Seats[best]
		if (!sv.IsBot && cur.IsBot) || (sv.IsBot == cur.IsBot && sv.HandSize > cur.HandSize) {
			best = sv.ID
		}
	}
	return best, found
}

func swapTarget(s Snapshot) (int, bool) {
	for _, human := range []bool{true, false} {
		for _, sv := range s.Seats {
			if sv.ID != s.Viewer && !sv.HasLost && sv.HandSize > 0 && sv.IsBot != human {
				return sv.ID, true
			}
		}
	}
	return -1, false
}

// swapCandidate offers surplus defense cards first, then the weakest card.
func swapCandidate(hand []Card, selected []int, swapIdx int) int {
	defenses := 0
	for i, c := range hand {
		if c.Type != CardDefense || i == swapIdx {
			continue
		}
		defenses++
		if defenses > 1 && !containsIndex(selected, i) {
			return i
		}
	}
	return leastValuable(hand, selected, swapIdx)
}

func leastValuable(hand []Card, selected []int, skip int) int {
	best, bestScore := -1, 0
	for i, c := range hand {
		if i == skip || containsIndex(selected, i) {
			continue
		}
		score := cardValue(c)
		if best < 0 || score < bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func cardValue(c Card) int {
	switch c.Type {
	case CardAttack:
		if c.Effect.Kind == EffectForceSleep {
			return 8
		}
		return 2 - c.Effect.Value
	case CardSupport:
		return 1 + c.Effect.Value
	case CardDefense, CardLucky, CardAntiTheft:
		return 6
	case CardThief, CardProtect:
		return 5
	}
	return 3
}

func firstOfType(hand []Card, t CardType) int {
	for i, c := range hand {
		if c.Type == t {
			return i
		}
	}
	return -1
}

func countType(hand []Card, t CardType) int {
	n := 0
	for _, c := range hand {
		if c.Type == t {
			n++
		}
	}
	return n
}
