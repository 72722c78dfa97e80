package game

import (
	"fmt"
	"strings"
)

// evaluateWin marks seats whose characters are all asleep as lost and ends
// the game once at most one seat is left. It returns the log lines it added.
func evaluateWin(g *Game) string {
	if g.Over || !g.Started {
		return ""
	}
	var lines []string
	for i := range g.Seats {
		s := &g.Seats[i]
		if !s.HasLost && s.AllAsleep() {
			s.HasLost = true
			lines = append(lines, g.logf("All of %s's characters are asleep. %s is out.", g.seatName(i), g.seatName(i)))
		}
	}

	remaining := ActiveSeats(g)
	switch len(remaining) {
	case 0:
		g.Over = true
		g.Pending = nil
		lines = append(lines, g.logf("Game over. Nobody is left awake."))
	case 1:
		w := remaining[0]
		g.Over = true
		g.Winner = &w
		g.Pending = nil
		lines = append(lines, g.logf("Game over. %s wins!", g.seatName(w)))
	default:
		if g.Seats[g.CurrentTurn].HasLost && g.Pending == nil {
			g.CurrentTurn = g.nextActiveSeat(g.CurrentTurn)
			lines = append(lines, g.logf("%s is up.", g.seatName(g.CurrentTurn)))
		}
	}
	return strings.Join(lines, " ")
}

// ActiveSeats lists the seats that have not lost, in seat order.
func ActiveSeats(g *Game) []int {
	var out []int
	for i := range g.Seats {
		if !g.Seats[i].HasLost {
			out = append(out, i)
		}
	}
	return out
}

func (w WinStatus) String() string {
	switch {
	case !w.GameOver:
		return "in progress"
	case w.Winner == nil:
		return "over, no winner"
	default:
		return fmt.Sprintf("over, seat %d wins", *w.Winner)
	}
}
