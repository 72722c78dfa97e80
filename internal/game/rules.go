package game

import "fmt"

type targetKind int

const (
	targetNone targetKind = iota
	targetCharacter
	targetSeat
)

type cardRule struct {
	target     targetKind
	playable   bool
	defendable bool
	check      func(g *Game, actor int, c *Character) error
}

var cardRules = map[CardType]cardRule{
	CardAttack:    {target: targetCharacter, playable: true, defendable: true, check: opposingAwake},
	CardSupport:   {target: targetCharacter, playable: true, check: anyAwake},
	CardLucky:     {target: targetCharacter, playable: true, check: ownAwake},
	CardSwap:      {target: targetSeat, playable: true},
	CardDefense:   {target: targetNone},
	CardThief:     {target: targetSeat, playable: true},
	CardAntiTheft: {target: targetNone},
	CardProtect:   {target: targetCharacter, playable: true, check: ownUnprotected},
	CardDispel:    {target: targetCharacter, playable: true, defendable: true, check: opposingProtected},
}

func opposingAwake(_ *Game, actor int, c *Character) error {
	switch {
	case c.Seat == actor:
		return fmt.Errorf("%w: %s is on your own seat", ErrIllegalTarget, c.Name)
	case c.IsAsleep():
		return fmt.Errorf("%w: %s is already asleep", ErrIllegalTarget, c.Name)
	case c.Protected:
		return fmt.Errorf("%w: %s is protected", ErrIllegalTarget, c.Name)
	}
	return nil
}

func anyAwake(_ *Game, _ int, c *Character) error {
	if c.IsAsleep() {
		return fmt.Errorf("%w: %s is already asleep", ErrIllegalTarget, c.Name)
	}
	return nil
}

func ownAwake(_ *Game, actor int, c *Character) error {
	if c.Seat != actor {
		return fmt.Errorf("%w: %s is not your character", ErrIllegalTarget, c.Name)
	}
	return anyAwake(nil, actor, c)
}

func ownUnprotected(g *Game, actor int, c *Character) error {
	if err := ownAwake(g, actor, c); err != nil {
		return err
	}
	if c.Protected {
		return fmt.Errorf("%w: %s is already protected", ErrIllegalTarget, c.Name)
	}
	return nil
}

func opposingProtected(_ *Game, actor int, c *Character) error {
	switch {
	case c.Seat == actor:
		return fmt.Errorf("%w: %s is on your own seat", ErrIllegalTarget, c.Name)
	case !c.Protected:
		return fmt.Errorf("%w: %s is not protected", ErrIllegalTarget, c.Name)
	}
	return nil
}

// CanTarget reports whether card may be played by actor on the character.
func CanTarget(card Card, actor int, target *Character, g *Game) error {
	rule, ok := cardRules[card.Type]
	if !ok || !rule.playable {
		return fmt.Errorf("%w: %s cannot be played directly", ErrWrongPhase, card.Name)
	}
	if rule.target != targetCharacter {
		return fmt.Errorf("%w: %s does not target a character", ErrIllegalTarget, card.Name)
	}
	if target == nil {
		return fmt.Errorf("%w: no character given", ErrIllegalTarget)
	}
	return rule.check(g, actor, target)
}

// Apply commits a character effect. Legality is checked by CanTarget.
func Apply(card Card, target *Character) {
	switch card.Effect.Kind {
	case EffectReduceSleep, EffectAddSleep:
		target.AdjustSleep(card.Effect.Value)
	case EffectRestoreSleep:
		target.Restore()
	case EffectForceSleep:
		target.ForcedAsleep = true
	case EffectProtect:
		target.Protected = true
	case EffectDispel:
		target.Protected = false
	}
}

// IsDefendable reports whether the card opens a defense window against a
// defender holding a defense card.
func IsDefendable(card Card) bool {
	return cardRules[card.Type].defendable
}
