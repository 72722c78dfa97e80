package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTheftWithoutCounter(t *testing.T) {
	e := newTestEngine(t, VariantLegacy)
	g := testGame([][]int{{5}, {5}}, [][]Card{{thief, tea, tea, tea}, {coffee, heavy, meditate}})

	g = resolveOK(t, e, g, 0, PlayOnSeat(0, 1))
	require.Equal(t, TheftAwaitingResponse, g.Pending.(*TheftWindow).Stage)

	_, _, err := e.Resolve(g, 1, TheftCounter(true))
	assert.ErrorIs(t, err, ErrInvalidIndex)
	g = resolveOK(t, e, g, 1, TheftCounter(false))
	w, ok := g.Pending.(*TheftWindow)
	require.True(t, ok)
	assert.Equal(t, TheftSelecting, w.Stage)
	// 5 - (4 - 1) leaves room for two cards.
	assert.Equal(t, 2, w.Capacity(g))

	_, _, err = e.Resolve(g, 1, TheftStep(StepSelect, 0))
	assert.ErrorIs(t, err, ErrNotYourTurn)
	_, _, err = e.Resolve(g, 0, TheftStep(StepConfirm, 0))
	assert.ErrorIs(t, err, ErrInvalidSelection)
	_, _, err = e.Resolve(g, 0, TheftStep(StepCancel, 0))
	assert.ErrorIs(t, err, ErrWrongPhase)

	g = resolveOK(t, e, g, 0, TheftStep(StepSelect, 0))
	g = resolveOK(t, e, g, 0, TheftStep(StepSelect, 2))
	_, _, err = e.Resolve(g, 0, TheftStep(StepSelect, 1))
	assert.ErrorIs(t, err, ErrInvalidSelection)

	g = resolveOK(t, e, g, 0, TheftStep(StepConfirm, 0))
	assert.Equal(t, []Card{tea, tea, tea, coffee, meditate}, g.Seats[0].Hand)
	assert.Equal(t, []Card{heavy}, g.Seats[1].Hand)
	assert.Equal(t, PhaseNormalPlay, g.Phase())
	assert.NotContains(t, g.Log[len(g.Log)-1], "Coffee")
}

func TestTheftCountered(t *testing.T) {
	e := newTestEngine(t, VariantLegacy)
	g := testGame([][]int{{5}, {5}}, [][]Card{{thief, tea}, {coffee, counter}})

	g = resolveOK(t, e, g, 0, PlayOnSeat(0, 1))
	require.Equal(t, TheftAwaitingResponse, g.Pending.(*TheftWindow).Stage)

	_, _, err := e.Resolve(g, 0, TheftStep(StepSelect, 0))
	assert.ErrorIs(t, err, ErrWrongPhase)

	g = resolveOK(t, e, g, 1, TheftCounter(true))
	assert.Nil(t, g.Pending)
	assert.Equal(t, []Card{tea}, g.Seats[0].Hand)
	assert.Equal(t, []Card{coffee}, g.Seats[1].Hand)
}

func TestTheftCounterDeclined(t *testing.T) {
	e := newTestEngine(t, VariantLegacy)
	g := testGame([][]int{{5}, {5}}, [][]Card{{thief}, {coffee, counter}})

	g = resolveOK(t, e, g, 0, PlayOnSeat(0, 1))
	g = resolveOK(t, e, g, 1, TheftCounter(false))
	assert.Equal(t, TheftSelecting, g.Pending.(*TheftWindow).Stage)

	g = resolveOK(t, e, g, 0, TheftStep(StepSelect, 1))
	g = resolveOK(t, e, g, 0, TheftStep(StepConfirm, 0))
	assert.Equal(t, []Card{counter}, g.Seats[0].Hand)
	assert.Equal(t, []Card{coffee}, g.Seats[1].Hand)
}

func TestTheftNeedsCards(t *testing.T) {
	e := newTestEngine(t, VariantLegacy)
	g := testGame([][]int{{5}, {5}}, [][]Card{{thief}, nil})
	_, _, err := e.Resolve(g, 0, PlayOnSeat(0, 1))
	assert.ErrorIs(t, err, ErrIllegalTarget)
}

func TestProtectAndDispel(t *testing.T) {
	e := newTestEngine(t, VariantLegacy)
	g := testGame([][]int{{5}, {5}}, [][]Card{{dispel, coffee}, {protect}})
	g.CurrentTurn = 1

	g = resolveOK(t, e, g, 1, PlayOnCharacter(0, charID(1, 0)))
	assert.True(t, g.Seats[1].Characters[0].Protected)
	g.CurrentTurn = 0

	_, _, err := e.Resolve(g, 0, PlayOnCharacter(1, charID(1, 0)))
	assert.ErrorIs(t, err, ErrIllegalTarget)

	g = resolveOK(t, e, g, 0, PlayOnCharacter(0, charID(1, 0)))
	assert.False(t, g.Seats[1].Characters[0].Protected)
	g = resolveOK(t, e, g, 0, PlayOnCharacter(0, charID(1, 0)))
	assert.Equal(t, 3, g.Seats[1].Characters[0].CurrentSleep)
}

func TestSedativeIsDefendable(t *testing.T) {
	e := newTestEngine(t, VariantLegacy)
	g := testGame([][]int{{5}, {9, 9}}, [][]Card{{sedative}, {defense}})

	g = resolveOK(t, e, g, 0, PlayOnCharacter(0, charID(1, 0)))
	require.Equal(t, PhasePendingDefense, g.Phase())
	g = resolveOK(t, e, g, 1, Defend(false))
	assert.True(t, g.Seats[1].Characters[0].IsAsleep())
	assert.Equal(t, 9, g.Seats[1].Characters[0].CurrentSleep)
}
