package game

// Role is the viewer's part in an open protocol.
type Role string

const (
	RoleAttacker Role = "attacker"
	RoleDefender Role = "defender"
	RoleProposer Role = "proposer"
	RoleTarget   Role = "target"
	RoleThief    Role = "thief"
	RoleVictim   Role = "victim"
	RoleObserver Role = "observer"
)

// Snapshot is one viewer's redacted copy of the game.
type Snapshot struct {
	RoomID      string       `json:"room_id,omitempty"`
	Viewer      int          `json:"viewer"`
	Phase       Phase        `json:"phase"`
	CurrentTurn int          `json:"current_turn"`
	MaxHandSize int          `json:"max_hand_size"`
	Seats       []SeatView   `json:"seats"`
	Pending     *PendingView `json:"pending,omitempty"`
	Win         WinStatus    `json:"win_status"`
	Log         []string     `json:"log"`
	LogLength   int          `json:"log_length"`
}

type SeatView struct {
	ID         int         `json:"id"`
	Name       string      `json:"name"`
	IsBot      bool        `json:"is_bot"`
	HasLost    bool        `json:"has_lost"`
	IsViewer   bool        `json:"is_viewer"`
	HandSize   int         `json:"hand_size"`
	Hand       []Card      `json:"hand,omitempty"`
	Characters []Character `json:"characters"`
}

// PendingView is the part of an open protocol a viewer may see. Card
// identities and selected indices are only filled in for participants.
type PendingView struct {
	Kind Phase `json:"kind"`
	Role Role  `json:"role"`

	Attacker          *int   `json:"attacker,omitempty"`
	Defender          *int   `json:"defender,omitempty"`
	Card              *Card  `json:"card,omitempty"`
	TargetCharacterID string `json:"target_character_id,omitempty"`

	Proposer         *int  `json:"proposer,omitempty"`
	Target           *int  `json:"target,omitempty"`
	SwapCardIndex    *int  `json:"swap_card_index,omitempty"`
	OwnSelection     []int `json:"own_selection,omitempty"`
	ProposerCount    int   `json:"proposer_count"`
	TargetCount      int   `json:"target_count"`
	MaxSwapSelection int   `json:"max_swap_selection,omitempty"`

	Thief         *int       `json:"thief,omitempty"`
	Victim        *int       `json:"victim,omitempty"`
	Stage         TheftStage `json:"stage,omitempty"`
	Selection     []int      `json:"selection,omitempty"`
	StealCapacity int        `json:"steal_capacity,omitempty"`
}

// Project builds the snapshot for viewer, keeping the last logTail log
// entries (all of them when logTail <= 0). Viewers outside the seat range
// see no hand at all.
func Project(g *Game, viewer, logTail int) Snapshot {
	s := Snapshot{
		Viewer:      viewer,
		Phase:       g.Phase(),
		CurrentTurn: g.CurrentTurn,
		MaxHandSize: g.MaxHandSize,
		Win:         g.WinStatus(),
		LogLength:   len(g.Log),
	}
	for i := range g.Seats {
		seat := &g.Seats[i]
		sv := SeatView{
			ID:         seat.ID,
			Name:       seat.Name,
			IsBot:      seat.IsBot,
			HasLost:    seat.HasLost,
			IsViewer:   i == viewer,
			HandSize:   len(seat.Hand),
			Characters: append([]Character(nil), seat.Characters...),
		}
		if i == viewer {
			sv.Hand = append([]Card{}, seat.Hand...)
		}
		s.Seats = append(s.Seats, sv)
	}

	tail := g.Log
	if logTail > 0 && len(tail) > logTail {
		tail = tail[len(tail)-logTail:]
	}
	s.Log = append([]string{}, tail...)

	if g.Pending != nil && !g.Over {
		s.Pending = projectPending(g, viewer)
	}
	return s
}

func projectPending(g *Game, viewer int) *PendingView {
	switch p := g.Pending.(type) {
	case *DefenseWindow:
		v := &PendingView{
			Kind:              PhasePendingDefense,
			Role:              RoleObserver,
			Attacker:          intPtr(p.Attacker),
			Defender:          intPtr(p.Defender),
			TargetCharacterID: p.TargetCharacterID,
		}
		switch viewer {
		case p.Attacker:
			v.Role = RoleAttacker
		case p.Defender:
			v.Role = RoleDefender
		}
		if v.Role != RoleObserver {
			c := p.Card
			v.Card = &c
		}
		return v

	case *SwapNegotiation:
		v := &PendingView{
			Kind:          PhasePendingSwap,
			Role:          RoleObserver,
			Proposer:      intPtr(p.Proposer),
			Target:        intPtr(p.Target),
			ProposerCount: len(p.ProposerSelection),
			TargetCount:   len(p.TargetSelection),
		}
		switch viewer {
		case p.Proposer:
			v.Role = RoleProposer
			v.SwapCardIndex = intPtr(p.SwapCardIndex)
			v.OwnSelection = append([]int{}, p.ProposerSelection...)
		case p.Target:
			v.Role = RoleTarget
			v.OwnSelection = append([]int{}, p.TargetSelection...)
		}
		if v.Role != RoleObserver {
			v.MaxSwapSelection = p.MaxSelection(g)
		}
		return v

	case *TheftWindow:
		v := &PendingView{
			Kind:   PhasePendingTheft,
			Role:   RoleObserver,
			Thief:  intPtr(p.Thief),
			Victim: intPtr(p.Victim),
			Stage:  p.Stage,
		}
		switch viewer {
		case p.Thief:
			v.Role = RoleThief
		case p.Victim:
			v.Role = RoleVictim
		}
		if v.Role != RoleObserver {
			v.Selection = append([]int{}, p.Selection...)
			v.StealCapacity = p.Capacity(g)
		}
		return v
	}
	return nil
}

func intPtr(i int) *int { return &i }

// Own returns the viewer's seat view.
func (s Snapshot) Own() *SeatView {
	if s.Viewer < 0 || s.Viewer >= len(s.Seats) {
		return nil
	}
	return &s.Seats[s.Viewer]
}
