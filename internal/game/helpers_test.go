package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	coffee   = Card{Name: "Coffee", Type: CardAttack, Effect: Effect{Kind: EffectReduceSleep, Value: -2}}
	heavy    = Card{Name: "Using_phone", Type: CardAttack, Effect: Effect{Kind: EffectReduceSleep, Value: -3}}
	tea      = Card{Name: "Tea", Type: CardSupport, Effect: Effect{Kind: EffectAddSleep, Value: 1}}
	meditate = Card{Name: "Meditate", Type: CardSupport, Effect: Effect{Kind: EffectAddSleep, Value: 2}}
	lucky    = Card{Name: "Lucky", Type: CardLucky, Effect: Effect{Kind: EffectRestoreSleep}}
	swap     = Card{Name: "Swap", Type: CardSwap, Effect: Effect{Kind: EffectSwapCards}}
	defense  = Card{Name: "Defense_Card", Type: CardDefense, Effect: Effect{Kind: EffectNullify}}
	thief    = Card{Name: "Thief", Type: CardThief, Effect: Effect{Kind: EffectStealCards}}
	counter  = Card{Name: "Anti_theft", Type: CardAntiTheft, Effect: Effect{Kind: EffectBlockTheft}}
	protect  = Card{Name: "Blanket_fort", Type: CardProtect, Effect: Effect{Kind: EffectProtect}}
	dispel   = Card{Name: "Alarm_clock", Type: CardDispel, Effect: Effect{Kind: EffectDispel}}
	sedative = Card{Name: "Sedative", Type: CardAttack, Effect: Effect{Kind: EffectForceSleep}}
)

func newTestEngine(t *testing.T, v Variant) *Engine {
	t.Helper()
	rules := DefaultRules()
	rules.Variant = v
	e, err := NewEngine(rules, 42)
	require.NoError(t, err)
	return e
}

// testGame builds a started game where every seat has one character per
// entry of sleeps, at the given current sleep with max 10.
func testGame(sleeps [][]int, hands [][]Card) *Game {
	g := &Game{Started: true, MaxHandSize: 5}
	for i := range sleeps {
		s := Seat{ID: i, Name: []string{"Ana", "Bo", "Cy", "Di"}[i]}
		for j, sl := range sleeps[i] {
			s.Characters = append(s.Characters, Character{
				ID:           charID(i, j),
				Seat:         i,
				Name:         s.Name + "-kid",
				CurrentSleep: sl,
				MaxSleep:     10,
			})
		}
		s.Hand = append([]Card(nil), hands[i]...)
		g.Seats = append(g.Seats, s)
	}
	return g
}

func charID(seat, idx int) string {
	return "seat" + string(rune('0'+seat)) + "_char_" + string(rune('0'+idx))
}

func resolveOK(t *testing.T, e *Engine, g *Game, actor int, a Action) *Game {
	t.Helper()
	next, _, err := e.Resolve(g, actor, a)
	require.NoError(t, err)
	return next
}
