package game

import (
	"fmt"
	"math/rand"
)

const (
	MinSeats = 2
	MaxSeats = 4
)

type Rules struct {
	MaxHandSize       int     `json:"max_hand_size"`
	CharactersPerSeat int     `json:"characters_per_seat"`
	Variant           Variant `json:"card_catalog"`
}

func DefaultRules() Rules {
	return Rules{MaxHandSize: 5, CharactersPerSeat: 3, Variant: VariantStandard}
}

// SeatSpec describes a seat at game creation.
type SeatSpec struct {
	Name  string
	IsBot bool
}

// Engine resolves actions for one room. It is not safe for concurrent use;
// the room lock serialises calls.
type Engine struct {
	catalog *Catalog
	rules   Rules
	rng     *rand.Rand
}

func NewEngine(rules Rules, seed int64) (*Engine, error) {
	if rules.MaxHandSize <= 0 || rules.CharactersPerSeat <= 0 {
		return nil, fmt.Errorf("%w: hand size %d, characters %d", ErrInvalidSeatConfig, rules.MaxHandSize, rules.CharactersPerSeat)
	}
	cat, err := NewCatalog(rules.Variant)
	if err != nil {
		return nil, err
	}
	rules.Variant = cat.Variant()
	return &Engine{catalog: cat, rules: rules, rng: rand.New(rand.NewSource(seed))}, nil
}

func (e *Engine) Catalog() *Catalog { return e.catalog }

func (e *Engine) Rules() Rules { return e.rules }

// NewGame seats the players and deals distinct characters. The game stays
// idle until Start.
func (e *Engine) NewGame(seats []SeatSpec) (*Game, error) {
	n := len(seats)
	if n < MinSeats || n > MaxSeats {
		return nil, fmt.Errorf("%w: %d seats", ErrInvalidSeatConfig, n)
	}
	if n*e.rules.CharactersPerSeat > len(characterTemplates) {
		return nil, fmt.Errorf("%w: not enough characters for %d seats", ErrInvalidSeatConfig, n)
	}

	pool := e.rng.Perm(len(characterTemplates))
	g := &Game{MaxHandSize: e.rules.MaxHandSize}
	for i, spec := range seats {
		s := Seat{ID: i, Name: spec.Name, IsBot: spec.IsBot}
		for j := 0; j < e.rules.CharactersPerSeat; j++ {
			t := characterTemplates[pool[0]]
			pool = pool[1:]
			s.Characters = append(s.Characters, Character{
				ID:           fmt.Sprintf("seat%d_char_%d", i, j),
				Seat:         i,
				Name:         t.Name,
				Age:          t.Age,
				Description:  t.Description,
				CurrentSleep: t.MaxSleep,
				MaxSleep:     t.MaxSleep,
			})
		}
		g.Seats = append(g.Seats, s)
	}
	return g, nil
}

// Start deals every hand to full and opens the first turn.
func (e *Engine) Start(g *Game) (*Game, Notice, error) {
	if g.Over {
		return g, Notice{}, ErrGameAlreadyOver
	}
	if g.Started {
		return g, Notice{}, fmt.Errorf("%w: game already started", ErrWrongPhase)
	}
	next := g.Clone()
	for i := range next.Seats {
		e.drawToFull(&next.Seats[i])
	}
	next.Started = true
	next.CurrentTurn = 0
	if next.Seats[0].HasLost {
		next.CurrentTurn = next.nextActiveSeat(0)
	}
	msg := next.logf("The game begins. %s goes first.", next.seatName(next.CurrentTurn))
	evaluateWin(next)
	return next, Notice{Message: msg, Win: next.WinStatus()}, nil
}

func (e *Engine) drawToFull(s *Seat) int {
	drawn := 0
	for len(s.Hand) < e.rules.MaxHandSize {
		s.Hand = append(s.Hand, e.catalog.Draw(e.rng))
		drawn++
	}
	return drawn
}

// Resolve validates and applies one action. On error g is returned
// unchanged; on success a new Game is returned.
func (e *Engine) Resolve(g *Game, actor int, a Action) (*Game, Notice, error) {
	if !g.validSeat(actor) {
		return g, Notice{}, fmt.Errorf("%w: %d", ErrUnknownSeat, actor)
	}
	if err := authorize(g, actor, a); err != nil {
		return g, Notice{}, err
	}

	next := g.Clone()
	var (
		msg string
		err error
	)
	switch a.Kind {
	case ActionPlayCard:
		msg, err = e.playCard(next, actor, a)
	case ActionEndTurn:
		msg, err = e.endTurn(next, actor)
	case ActionResolveDefense:
		msg, err = e.resolveDefense(next, actor, a)
	case ActionRespondSwap:
		msg, err = e.respondSwap(next, actor, a)
	case ActionRespondTheft:
		msg, err = e.respondTheft(next, actor, a)
	}
	if err != nil {
		return g, Notice{}, err
	}

	next.Log = append(next.Log, msg)
	if ended := evaluateWin(next); ended != "" {
		msg = msg + " " + ended
	}
	return next, Notice{Message: msg, Win: next.WinStatus()}, nil
}

// Forfeit marks the seat lost and settles any protocol it is party to.
// A defense window applies the stashed effect when the defender leaves and
// drops it when the attacker leaves; swap and theft are cancelled.
func (e *Engine) Forfeit(g *Game, seat int) (*Game, Notice, error) {
	if !g.validSeat(seat) {
		return g, Notice{}, fmt.Errorf("%w: %d", ErrUnknownSeat, seat)
	}
	if g.Over {
		return g, Notice{}, ErrGameAlreadyOver
	}
	next := g.Clone()
	if next.Seats[seat].HasLost {
		return next, Notice{Win: next.WinStatus()}, nil
	}

	if p := next.Pending; p != nil && p.Involves(seat) {
		if w, ok := p.(*DefenseWindow); ok && w.Defender == seat {
			if c, _ := next.findCharacter(w.TargetCharacterID); c != nil {
				Apply(w.Card, c)
			}
			next.Seats[w.Attacker].removeCard(w.CardIndex)
		}
		next.Pending = nil
	}

	next.Seats[seat].HasLost = true
	msg := next.logf("%s left the game and forfeits.", next.seatName(seat))
	if next.Started && next.CurrentTurn == seat {
		next.CurrentTurn = next.nextActiveSeat(seat)
	}
	if ended := evaluateWin(next); ended != "" {
		msg = msg + " " + ended
	}
	return next, Notice{Message: msg, Win: next.WinStatus()}, nil
}

// authorize checks turn ownership before any state is copied.
func authorize(g *Game, actor int, a Action) error {
	switch a.Kind {
	case ActionPlayCard, ActionEndTurn, ActionResolveDefense, ActionRespondSwap, ActionRespondTheft:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
	}

	phase := g.Phase()
	switch phase {
	case PhaseGameOver:
		return ErrGameAlreadyOver
	case PhaseIdle:
		return fmt.Errorf("%w: game has not started", ErrWrongPhase)
	}
	if g.Seats[actor].HasLost {
		return fmt.Errorf("%w: seat %d has lost", ErrNotYourTurn, actor)
	}

	if phase == PhaseNormalPlay {
		if actor != g.CurrentTurn {
			return ErrNotYourTurn
		}
		if a.Kind != ActionPlayCard && a.Kind != ActionEndTurn {
			return fmt.Errorf("%w: no pending action to answer", ErrWrongPhase)
		}
		return nil
	}

	party := g.Pending.Involves(actor)
	if a.Kind != responseKind(phase) {
		if party || actor == g.CurrentTurn {
			return fmt.Errorf("%w: %s is open", ErrWrongPhase, phase)
		}
		return ErrNotYourTurn
	}
	if !party {
		return ErrNotYourTurn
	}
	if w, ok := g.Pending.(*DefenseWindow); ok && actor != w.Defender {
		return fmt.Errorf("%w: waiting on %s", ErrNotYourTurn, g.seatName(w.Defender))
	}
	return nil
}

func responseKind(p Phase) ActionKind {
	switch p {
	case PhasePendingDefense:
		return ActionResolveDefense
	case PhasePendingSwap:
		return ActionRespondSwap
	case PhasePendingTheft:
		return ActionRespondTheft
	}
	return ""
}
