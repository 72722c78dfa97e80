package game

import "fmt"

// Game is the authoritative state of one room. The engine never mutates a
// Game it was handed; it works on a Clone.
type Game struct {
	Seats       []Seat   `json:"seats"`
	CurrentTurn int      `json:"current_turn"`
	Pending     Pending  `json:"-"`
	Started     bool     `json:"started"`
	Over        bool     `json:"over"`
	Winner      *int     `json:"winner,omitempty"`
	MaxHandSize int      `json:"max_hand_size"`
	Log         []string `json:"log"`
}

// Phase is derived, so a pending record and its phase cannot disagree.
func (g *Game) Phase() Phase {
	switch {
	case g.Over:
		return PhaseGameOver
	case !g.Started:
		return PhaseIdle
	case g.Pending != nil:
		return g.Pending.Phase()
	default:
		return PhaseNormalPlay
	}
}

func (g *Game) WinStatus() WinStatus {
	ws := WinStatus{GameOver: g.Over}
	if g.Winner != nil {
		w := *g.Winner
		ws.Winner = &w
	}
	return ws
}

func (g *Game) Clone() *Game {
	cp := *g
	cp.Seats = make([]Seat, len(g.Seats))
	for i, s := range g.Seats {
		s.Characters = append([]Character(nil), s.Characters...)
		s.Hand = append([]Card(nil), s.Hand...)
		cp.Seats[i] = s
	}
	if g.Pending != nil {
		cp.Pending = g.Pending.clone()
	}
	if g.Winner != nil {
		w := *g.Winner
		cp.Winner = &w
	}
	cp.Log = append([]string(nil), g.Log...)
	return &cp
}

func (g *Game) validSeat(seat int) bool {
	return seat >= 0 && seat < len(g.Seats)
}

// findCharacter returns the character with id and its seat.
func (g *Game) findCharacter(id string) (*Character, int) {
	for i := range g.Seats {
		if c := g.Seats[i].character(id); c != nil {
			return c, i
		}
	}
	return nil, -1
}

func (g *Game) logf(format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	g.Log = append(g.Log, msg)
	return msg
}

func (g *Game) seatName(seat int) string {
	if g.validSeat(seat) && g.Seats[seat].Name != "" {
		return g.Seats[seat].Name
	}
	return fmt.Sprintf("Seat %d", seat+1)
}

// nextActiveSeat returns the next seat after from that has not lost.
func (g *Game) nextActiveSeat(from int) int {
	n := len(g.Seats)
	for step := 1; step <= n; step++ {
		s := (from + step) % n
		if !g.Seats[s].HasLost {
			return s
		}
	}
	return from
}
