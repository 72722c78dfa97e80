package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateWin(t *testing.T) {
	tests := []struct {
		name     string
		sleeps   [][]int
		over     bool
		winner   *int
		lostSeat []bool
	}{
		{"everyone awake", [][]int{{1}, {1}}, false, nil, []bool{false, false}},
		{"one seat asleep", [][]int{{3}, {0, 0}}, true, intPtr(0), []bool{false, true}},
		{"nobody awake", [][]int{{0}, {0}}, true, nil, []bool{true, true}},
		{"three seats one out", [][]int{{0}, {2}, {2}}, false, nil, []bool{true, false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGame(tt.sleeps, make([][]Card, len(tt.sleeps)))
			evaluateWin(g)
			assert.Equal(t, tt.over, g.Over)
			assert.Equal(t, tt.winner, g.Winner)
			for i, lost := range tt.lostSeat {
				assert.Equal(t, lost, g.Seats[i].HasLost, "seat %d", i)
			}
		})
	}
}

func TestEvaluateWinAdvancesPastLostCurrentSeat(t *testing.T) {
	g := testGame([][]int{{0}, {2}, {2}}, make([][]Card, 3))
	evaluateWin(g)
	assert.Equal(t, 1, g.CurrentTurn)
}

func TestEvaluateWinIgnoresIdleGame(t *testing.T) {
	g := testGame([][]int{{0}, {0}}, make([][]Card, 2))
	g.Started = false
	assert.Empty(t, evaluateWin(g))
	assert.False(t, g.Over)
}

func TestWinStatusString(t *testing.T) {
	assert.Equal(t, "in progress", WinStatus{}.String())
	assert.Equal(t, "over, no winner", WinStatus{GameOver: true}.String())
	assert.Equal(t, "over, seat 2 wins", WinStatus{GameOver: true, Winner: intPtr(2)}.String())
}
