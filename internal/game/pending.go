package game

// Pending is the open sub-protocol of a room. At most one exists at a time
// and its concrete type decides the phase.
type Pending interface {
	Phase() Phase
	// Involves reports whether the seat is a party to the protocol.
	Involves(seat int) bool
	clone() Pending
}

// DefenseWindow holds a defendable card whose effect waits on the defender.
type DefenseWindow struct {
	Attacker          int    `json:"attacker"`
	Defender          int    `json:"defender"`
	CardIndex         int    `json:"card_index"`
	Card              Card   `json:"card"`
	TargetCharacterID string `json:"target_character_id"`
}

func (w *DefenseWindow) Phase() Phase { return PhasePendingDefense }

func (w *DefenseWindow) Involves(seat int) bool {
	return seat == w.Attacker || seat == w.Defender
}

func (w *DefenseWindow) clone() Pending {
	cp := *w
	return &cp
}

// SwapNegotiation is a two-sided blind exchange. The swap card stays in the
// proposer's hand until confirmation.
type SwapNegotiation struct {
	Proposer          int   `json:"proposer"`
	Target            int   `json:"target"`
	SwapCardIndex     int   `json:"swap_card_index"`
	ProposerSelection []int `json:"proposer_selection"`
	TargetSelection   []int `json:"target_selection"`
}

func (n *SwapNegotiation) Phase() Phase { return PhasePendingSwap }

func (n *SwapNegotiation) Involves(seat int) bool {
	return seat == n.Proposer || seat == n.Target
}

func (n *SwapNegotiation) clone() Pending {
	cp := *n
	cp.ProposerSelection = append([]int(nil), n.ProposerSelection...)
	cp.TargetSelection = append([]int(nil), n.TargetSelection...)
	return &cp
}

// MaxSelection is the per-side bound on cards exchanged.
func (n *SwapNegotiation) MaxSelection(g *Game) int {
	return min(len(g.Seats[n.Proposer].Hand)-1, len(g.Seats[n.Target].Hand))
}

type TheftStage string

const (
	TheftAwaitingResponse TheftStage = "awaiting_response"
	TheftSelecting        TheftStage = "selecting"
)

// TheftWindow is a steal attempt. The victim answers first when it holds a
// counter card, then the thief picks cards by index.
type TheftWindow struct {
	Thief     int        `json:"thief"`
	Victim    int        `json:"victim"`
	CardIndex int        `json:"card_index"`
	Stage     TheftStage `json:"stage"`
	Selection []int      `json:"selection"`
}

func (w *TheftWindow) Phase() Phase { return PhasePendingTheft }

func (w *TheftWindow) Involves(seat int) bool {
	return seat == w.Thief || seat == w.Victim
}

func (w *TheftWindow) clone() Pending {
	cp := *w
	cp.Selection = append([]int(nil), w.Selection...)
	return &cp
}

// Capacity is how many cards the thief may take without overflowing its
// hand once the thief card itself is spent.
func (w *TheftWindow) Capacity(g *Game) int {
	room := g.MaxHandSize - (len(g.Seats[w.Thief].Hand) - 1)
	return max(0, min(len(g.Seats[w.Victim].Hand), room))
}

func containsIndex(xs []int, i int) bool {
	for _, x := range xs {
		if x == i {
			return true
		}
	}
	return false
}

func removeIndex(xs []int, i int) []int {
	out := xs[:0:0]
	for _, x := range xs {
		if x != i {
			out = append(out, x)
		}
	}
	return out
}
