package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioAttackWithoutDefense(t *testing.T) {
	e := newTestEngine(t, VariantStandard)
	g := testGame([][]int{{5}, {2, 6}}, [][]Card{{heavy}, {tea}})

	next, notice, err := e.Resolve(g, 0, PlayOnCharacter(0, charID(1, 0)))
	require.NoError(t, err)

	target := next.Seats[1].Characters[0]
	assert.Equal(t, 0, target.CurrentSleep)
	assert.True(t, target.IsAsleep())
	assert.Nil(t, next.Pending)
	assert.Equal(t, PhaseNormalPlay, next.Phase())
	assert.Empty(t, next.Seats[0].Hand)
	assert.Contains(t, notice.Message, "fell asleep")
	assert.False(t, notice.Win.GameOver)
}

func TestScenarioDefenseUsed(t *testing.T) {
	e := newTestEngine(t, VariantStandard)
	g := testGame([][]int{{5}, {2}}, [][]Card{{heavy, tea}, {tea, defense}})

	g = resolveOK(t, e, g, 0, PlayOnCharacter(0, charID(1, 0)))
	require.Equal(t, PhasePendingDefense, g.Phase())
	assert.Equal(t, 2, g.Seats[1].Characters[0].CurrentSleep, "effect is stashed, not applied")
	assert.Len(t, g.Seats[0].Hand, 2, "attack card stays in hand until resolution")

	g = resolveOK(t, e, g, 1, Defend(true))
	assert.Equal(t, 2, g.Seats[1].Characters[0].CurrentSleep)
	assert.Equal(t, []Card{tea}, g.Seats[1].Hand)
	assert.Equal(t, []Card{tea}, g.Seats[0].Hand)
	assert.Equal(t, PhaseNormalPlay, g.Phase())
	assert.Equal(t, 0, g.CurrentTurn)
}

func TestDefenseDeclinedAppliesEffect(t *testing.T) {
	e := newTestEngine(t, VariantStandard)
	g := testGame([][]int{{5}, {2, 8}}, [][]Card{{coffee}, {defense}})

	g = resolveOK(t, e, g, 0, PlayOnCharacter(0, charID(1, 1)))
	g = resolveOK(t, e, g, 1, Defend(false))

	assert.Equal(t, 6, g.Seats[1].Characters[1].CurrentSleep)
	assert.Equal(t, []Card{defense}, g.Seats[1].Hand)
	assert.Empty(t, g.Seats[0].Hand)
	assert.Equal(t, 0, g.CurrentTurn)
}

func TestDefenseWithExplicitIndex(t *testing.T) {
	e := newTestEngine(t, VariantStandard)
	g := testGame([][]int{{5}, {5}}, [][]Card{{coffee}, {defense, tea}})
	g = resolveOK(t, e, g, 0, PlayOnCharacter(0, charID(1, 0)))

	bad := 1
	_, _, err := e.Resolve(g, 1, Action{Kind: ActionResolveDefense, UseDefense: true, DefenseCardIndex: &bad})
	assert.ErrorIs(t, err, ErrInvalidIndex)

	good := 0
	g = resolveOK(t, e, g, 1, Action{Kind: ActionResolveDefense, UseDefense: true, DefenseCardIndex: &good})
	assert.Equal(t, []Card{tea}, g.Seats[1].Hand)
}

func TestScenarioSwapConfirm(t *testing.T) {
	e := newTestEngine(t, VariantStandard)
	g := testGame([][]int{{5}, {5}}, [][]Card{{swap, coffee, tea}, {meditate, heavy}})

	g = resolveOK(t, e, g, 0, PlayOnSeat(0, 1))
	require.Equal(t, PhasePendingSwap, g.Phase())
	g = resolveOK(t, e, g, 0, SwapStep(StepSelect, 1))
	g = resolveOK(t, e, g, 1, SwapStep(StepSelect, 1))
	g = resolveOK(t, e, g, 0, SwapStep(StepConfirm, 0))

	assert.Equal(t, []Card{tea, heavy}, g.Seats[0].Hand)
	assert.Equal(t, []Card{meditate, coffee}, g.Seats[1].Hand)
	assert.Equal(t, PhaseNormalPlay, g.Phase())
	assert.Equal(t, 0, g.CurrentTurn)
	assert.NotContains(t, g.Log[len(g.Log)-1], "Coffee", "swap logs never name cards")
}

func TestSwapCancelRoundTrip(t *testing.T) {
	e := newTestEngine(t, VariantStandard)
	start := testGame([][]int{{5}, {5}}, [][]Card{{coffee, swap, tea}, {meditate, heavy}})

	g := resolveOK(t, e, start, 0, PlayOnSeat(1, 1))
	g = resolveOK(t, e, g, 0, SwapStep(StepSelect, 0))
	g = resolveOK(t, e, g, 1, SwapStep(StepSelect, 1))
	g = resolveOK(t, e, g, 0, SwapStep(StepCancel, 0))

	assert.Equal(t, PhaseNormalPlay, g.Phase())
	if diff := cmp.Diff(start.Seats, g.Seats); diff != "" {
		t.Fatalf("hands changed after cancel (-want +got):\n%s", diff)
	}
}

func TestSwapSelectionRules(t *testing.T) {
	e := newTestEngine(t, VariantStandard)
	g := testGame([][]int{{5}, {5}}, [][]Card{{swap, coffee, tea}, {meditate}})
	g = resolveOK(t, e, g, 0, PlayOnSeat(0, 1))

	_, _, err := e.Resolve(g, 0, SwapStep(StepSelect, 0))
	assert.ErrorIs(t, err, ErrInvalidIndex, "the swap card cannot be offered")

	_, _, err = e.Resolve(g, 0, SwapStep(StepSelect, 7))
	assert.ErrorIs(t, err, ErrInvalidIndex)

	g = resolveOK(t, e, g, 0, SwapStep(StepSelect, 1))
	_, _, err = e.Resolve(g, 0, SwapStep(StepSelect, 1))
	assert.ErrorIs(t, err, ErrInvalidSelection)
	_, _, err = e.Resolve(g, 0, SwapStep(StepSelect, 2))
	assert.ErrorIs(t, err, ErrInvalidSelection, "bounded by the target's hand size")

	_, _, err = e.Resolve(g, 0, SwapStep(StepConfirm, 0))
	assert.ErrorIs(t, err, ErrInvalidSelection, "counts must match")

	_, _, err = e.Resolve(g, 1, SwapStep(StepConfirm, 0))
	assert.ErrorIs(t, err, ErrNotYourTurn)
	_, _, err = e.Resolve(g, 1, SwapStep(StepCancel, 0))
	assert.ErrorIs(t, err, ErrNotYourTurn)

	g = resolveOK(t, e, g, 0, SwapStep(StepDeselect, 1))
	_, _, err = e.Resolve(g, 0, SwapStep(StepDeselect, 1))
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.Empty(t, g.Pending.(*SwapNegotiation).ProposerSelection)
}

func TestSwapNeedsCardsOnBothSides(t *testing.T) {
	e := newTestEngine(t, VariantStandard)
	g := testGame([][]int{{5}, {5}}, [][]Card{{swap}, {tea}})
	_, _, err := e.Resolve(g, 0, PlayOnSeat(0, 1))
	assert.ErrorIs(t, err, ErrIllegalTarget)

	g = testGame([][]int{{5}, {5}}, [][]Card{{swap, tea}, nil})
	_, _, err = e.Resolve(g, 0, PlayOnSeat(0, 1))
	assert.ErrorIs(t, err, ErrIllegalTarget)

	_, _, err = e.Resolve(g, 0, PlayOnSeat(0, 0))
	assert.ErrorIs(t, err, ErrIllegalTarget)
	_, _, err = e.Resolve(g, 0, Action{Kind: ActionPlayCard})
	assert.ErrorIs(t, err, ErrIllegalTarget)
}

func TestScenarioLastCharacterEndsGame(t *testing.T) {
	e := newTestEngine(t, VariantStandard)
	g := testGame([][]int{{5}, {0, 1}}, [][]Card{{coffee, tea}, nil})

	next, notice, err := e.Resolve(g, 0, PlayOnCharacter(0, charID(1, 1)))
	require.NoError(t, err)

	assert.True(t, next.Seats[1].HasLost)
	assert.Equal(t, PhaseGameOver, next.Phase())
	require.NotNil(t, notice.Win.Winner)
	assert.Equal(t, 0, *notice.Win.Winner)
	assert.True(t, notice.Win.GameOver)
	assert.Contains(t, notice.Message, "wins")

	_, _, err = e.Resolve(next, 0, EndTurn())
	assert.ErrorIs(t, err, ErrGameAlreadyOver)
}

func TestLostSeatIsSkippedInFourSeatGame(t *testing.T) {
	e := newTestEngine(t, VariantStandard)
	g := testGame([][]int{{5}, {1}, {5}, {5}}, [][]Card{{coffee}, nil, nil, nil})

	g = resolveOK(t, e, g, 0, PlayOnCharacter(0, charID(1, 0)))
	assert.True(t, g.Seats[1].HasLost)
	assert.False(t, g.Over)

	g = resolveOK(t, e, g, 0, EndTurn())
	assert.Equal(t, 2, g.CurrentTurn)
	assert.Len(t, g.Seats[0].Hand, 5, "ending seat draws to full")

	_, _, err := e.Resolve(g, 1, EndTurn())
	assert.ErrorIs(t, err, ErrNotYourTurn)
}

func TestSupportAtMaxIsClamped(t *testing.T) {
	e := newTestEngine(t, VariantStandard)
	g := testGame([][]int{{10}, {5}}, [][]Card{{meditate}, nil})

	g = resolveOK(t, e, g, 0, PlayOnCharacter(0, charID(0, 0)))
	assert.Equal(t, 10, g.Seats[0].Characters[0].CurrentSleep)
	assert.Empty(t, g.Seats[0].Hand, "the card is still consumed")
}

func TestLuckyRestoresOwnCharacter(t *testing.T) {
	e := newTestEngine(t, VariantStandard)
	g := testGame([][]int{{3}, {5}}, [][]Card{{lucky, lucky}, nil})

	_, _, err := e.Resolve(g, 0, PlayOnCharacter(0, charID(1, 0)))
	assert.ErrorIs(t, err, ErrIllegalTarget)

	g = resolveOK(t, e, g, 0, PlayOnCharacter(1, charID(0, 0)))
	assert.Equal(t, 10, g.Seats[0].Characters[0].CurrentSleep)
	assert.Equal(t, []Card{lucky}, g.Seats[0].Hand)
}

func TestResolveErrors(t *testing.T) {
	e := newTestEngine(t, VariantStandard)
	base := testGame([][]int{{5}, {5}}, [][]Card{{coffee, defense}, {tea}})

	tests := []struct {
		name   string
		actor  int
		action Action
		want   error
	}{
		{"wrong seat plays", 1, PlayOnCharacter(0, charID(0, 0)), ErrNotYourTurn},
		{"wrong seat ends turn", 1, EndTurn(), ErrNotYourTurn},
		{"index out of range", 0, PlayOnCharacter(5, charID(1, 0)), ErrInvalidIndex},
		{"negative index", 0, PlayOnCharacter(-1, charID(1, 0)), ErrInvalidIndex},
		{"unknown character", 0, PlayOnCharacter(0, "nobody"), ErrIllegalTarget},
		{"defense proactively", 0, PlayOnCharacter(1, charID(1, 0)), ErrWrongPhase},
		{"respond with nothing pending", 0, Defend(true), ErrWrongPhase},
		{"swap step with nothing pending", 0, SwapStep(StepSelect, 0), ErrWrongPhase},
		{"unknown seat", 9, EndTurn(), ErrUnknownSeat},
		{"unknown action", 0, Action{Kind: "dance"}, ErrUnknownAction},
		{"unknown action off turn", 1, Action{Kind: "dance"}, ErrUnknownAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := base.Clone()
			got, _, err := e.Resolve(base, tt.actor, tt.action)
			assert.ErrorIs(t, err, tt.want)
			assert.Same(t, base, got)
			if diff := cmp.Diff(before, base); diff != "" {
				t.Fatalf("rejected action mutated state:\n%s", diff)
			}
		})
	}
}

func TestPendingBlocksOtherActions(t *testing.T) {
	e := newTestEngine(t, VariantStandard)
	g := testGame([][]int{{5}, {5}, {5}}, [][]Card{{coffee, tea}, {defense}, {tea}})
	g = resolveOK(t, e, g, 0, PlayOnCharacter(0, charID(1, 0)))

	_, _, err := e.Resolve(g, 0, PlayOnCharacter(1, charID(0, 0)))
	assert.ErrorIs(t, err, ErrWrongPhase)
	_, _, err = e.Resolve(g, 0, EndTurn())
	assert.ErrorIs(t, err, ErrWrongPhase)
	_, _, err = e.Resolve(g, 0, Defend(true))
	assert.ErrorIs(t, err, ErrNotYourTurn, "only the defender answers")
	_, _, err = e.Resolve(g, 2, Defend(false))
	assert.ErrorIs(t, err, ErrNotYourTurn)
	_, _, err = e.Resolve(g, 2, EndTurn())
	assert.ErrorIs(t, err, ErrNotYourTurn)
	_, _, err = e.Resolve(g, 1, SwapStep(StepSelect, 0))
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestCardConsumedExactlyOnce(t *testing.T) {
	e := newTestEngine(t, VariantStandard)
	g := testGame([][]int{{5}, {9}}, [][]Card{{coffee, coffee}, {defense, defense}})

	g = resolveOK(t, e, g, 0, PlayOnCharacter(0, charID(1, 0)))
	g = resolveOK(t, e, g, 1, Defend(true))
	g = resolveOK(t, e, g, 0, PlayOnCharacter(0, charID(1, 0)))
	g = resolveOK(t, e, g, 1, Defend(false))

	assert.Empty(t, g.Seats[0].Hand)
	assert.Equal(t, []Card{defense}, g.Seats[1].Hand)
	assert.Equal(t, 7, g.Seats[1].Characters[0].CurrentSleep)
}

func TestStartDealsAndOpensFirstTurn(t *testing.T) {
	e := newTestEngine(t, VariantStandard)
	g, err := e.NewGame([]SeatSpec{{Name: "Ana"}, {Name: "Bot", IsBot: true}, {Name: "Cy"}})
	require.NoError(t, err)
	assert.Equal(t, PhaseIdle, g.Phase())

	_, _, err = e.Resolve(g, 0, EndTurn())
	assert.ErrorIs(t, err, ErrWrongPhase)

	started, notice, err := e.Start(g)
	require.NoError(t, err)
	assert.Equal(t, PhaseNormalPlay, started.Phase())
	assert.Contains(t, notice.Message, "Ana")

	seen := map[string]bool{}
	for _, s := range started.Seats {
		assert.Len(t, s.Hand, 5)
		assert.Len(t, s.Characters, 3)
		for _, c := range s.Characters {
			assert.Equal(t, c.MaxSleep, c.CurrentSleep)
			assert.False(t, seen[c.Name], "characters are not shared between seats")
			seen[c.Name] = true
		}
	}

	_, _, err = e.Start(started)
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestNewGameSeatBounds(t *testing.T) {
	e := newTestEngine(t, VariantStandard)
	for _, n := range []int{0, 1, 5} {
		_, err := e.NewGame(make([]SeatSpec, n))
		assert.ErrorIs(t, err, ErrInvalidSeatConfig, "%d seats", n)
	}
}

func TestForfeit(t *testing.T) {
	e := newTestEngine(t, VariantStandard)

	t.Run("defender leaves during defense window", func(t *testing.T) {
		g := testGame([][]int{{5}, {5}, {5}}, [][]Card{{coffee}, {defense}, nil})
		g = resolveOK(t, e, g, 0, PlayOnCharacter(0, charID(1, 0)))
		g, _, err := e.Forfeit(g, 1)
		require.NoError(t, err)
		assert.Nil(t, g.Pending)
		assert.Equal(t, 3, g.Seats[1].Characters[0].CurrentSleep)
		assert.Empty(t, g.Seats[0].Hand)
		assert.True(t, g.Seats[1].HasLost)
		assert.Equal(t, 0, g.CurrentTurn)
	})

	t.Run("attacker leaves during defense window", func(t *testing.T) {
		g := testGame([][]int{{5}, {5}, {5}}, [][]Card{{coffee}, {defense}, nil})
		g = resolveOK(t, e, g, 0, PlayOnCharacter(0, charID(1, 0)))
		g, _, err := e.Forfeit(g, 0)
		require.NoError(t, err)
		assert.Nil(t, g.Pending)
		assert.Equal(t, 5, g.Seats[1].Characters[0].CurrentSleep)
		assert.Equal(t, 1, g.CurrentTurn)
	})

	t.Run("two seats ends the game", func(t *testing.T) {
		g := testGame([][]int{{5}, {5}}, [][]Card{nil, nil})
		g, notice, err := e.Forfeit(g, 0)
		require.NoError(t, err)
		assert.True(t, notice.Win.GameOver)
		require.NotNil(t, notice.Win.Winner)
		assert.Equal(t, 1, *notice.Win.Winner)
	})

	t.Run("swap target leaves", func(t *testing.T) {
		g := testGame([][]int{{5}, {5}, {5}}, [][]Card{{swap, tea}, {coffee}, nil})
		g = resolveOK(t, e, g, 0, PlayOnSeat(0, 1))
		g, _, err := e.Forfeit(g, 1)
		require.NoError(t, err)
		assert.Nil(t, g.Pending)
		assert.Equal(t, []Card{swap, tea}, g.Seats[0].Hand)
	})
}
