package room

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync/atomic"
	"time"

	"sleepy-game/internal/config"
	"sleepy-game/internal/game"
	"sleepy-game/internal/shared"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Manager struct {
	store Store
	cfg   config.Config
	hub   Broadcaster
	made  atomic.Int64
}

func NewManager(s Store, cfg config.Config, hub Broadcaster) *Manager {
	if hub == nil {
		hub = nopBroadcaster{}
	}
	return &Manager{store: s, cfg: cfg, hub: hub}
}

// SetHub swaps the broadcaster. The hub and the manager reference each
// other, so one of them is wired after construction.
func (m *Manager) SetHub(hub Broadcaster) {
	m.hub = hub
}

func (m *Manager) Rules() game.Rules {
	return game.Rules{
		MaxHandSize:       m.cfg.MaxHandSize,
		CharactersPerSeat: m.cfg.CharactersPerSeat,
		Variant:           game.Variant(m.cfg.CardCatalog),
	}
}

func (m *Manager) seed() int64 {
	n := m.made.Add(1)
	if m.cfg.RNGSeed != 0 {
		return m.cfg.RNGSeed + n
	}
	return time.Now().UnixNano() + n
}

// CreateRoom seats botCount bots in the last seats and leaves the rest open
// for humans.
func (m *Manager) CreateRoom(seatCount, botCount int) (*Room, error) {
	if seatCount < game.MinSeats || seatCount > game.MaxSeats || botCount < 0 || botCount > seatCount-1 {
		return nil, fmt.Errorf("%w: %d seats, %d bots", ErrBadSeatCount, seatCount, botCount)
	}
	eng, err := game.NewEngine(m.Rules(), m.seed())
	if err != nil {
		return nil, err
	}

	specs := make([]game.SeatSpec, seatCount)
	slots := make([]slot, seatCount)
	for i := range specs {
		if i >= seatCount-botCount {
			name := "Bot " + uuid.NewString()[:4]
			specs[i] = game.SeatSpec{Name: name, IsBot: true}
			slots[i] = slot{name: name, isBot: true, joined: true}
			continue
		}
		specs[i] = game.SeatSpec{Name: fmt.Sprintf("Seat %d", i+1)}
	}
	g, err := eng.NewGame(specs)
	if err != nil {
		return nil, err
	}

	r := &Room{
		ID:        m.newRoomID(),
		CreatedAt: time.Now(),
		engine:    eng,
		game:      g,
		slots:     slots,
	}
	m.store.SaveRoom(r)
	log.Info().Str("room", r.ID).Int("seats", seatCount).Int("bots", botCount).Msg("room created")
	return r, nil
}

func (m *Manager) newRoomID() string {
	for {
		code := randCode(6)
		if _, taken := m.store.GetRoom(code); !taken {
			return code
		}
	}
}

func (m *Manager) Get(id string) (*Room, bool) {
	return m.store.GetRoom(id)
}

func (m *Manager) room(id string) (*Room, error) {
	r, ok := m.store.GetRoom(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, id)
	}
	return r, nil
}

func (m *Manager) List() []Summary {
	rooms := m.store.ListRooms()
	out := make([]Summary, 0, len(rooms))
	for _, r := range rooms {
		r.mu.Lock()
		out = append(out, r.summary())
		r.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// JoinRoom seats a participant, or reattaches one that presents its seat
// token. The game starts once the last human seat is filled.
func (m *Manager) JoinRoom(roomID string, p Participant) (JoinResult, error) {
	r, err := m.room(roomID)
	if err != nil {
		return JoinResult{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.Token != "" {
		seat, ok := r.seatByToken(p.Token)
		if !ok {
			return JoinResult{}, ErrBadToken
		}
		r.slots[seat].away = false
		m.refreshPause(r)
		m.cancelTeardown(r)
		log.Info().Str("room", r.ID).Int("seat", seat).Msg("seat rejoined")
		m.broadcast(r, nil)
		m.runBots(r)
		return JoinResult{Seat: seat, Token: p.Token, Rejoined: true}, nil
	}

	if r.game.Over {
		return JoinResult{}, game.ErrGameAlreadyOver
	}
	if r.game.Started {
		return JoinResult{}, ErrRoomFull
	}
	seat, err := r.freeSeat(p.Seat)
	if err != nil {
		return JoinResult{}, err
	}
	name := p.Name
	if name == "" {
		name = fmt.Sprintf("Player %d", seat+1)
	}
	r.slots[seat] = slot{name: name, token: uuid.NewString(), joined: true}
	g := r.game.Clone()
	g.Seats[seat].Name = name
	r.game = g
	log.Info().Str("room", r.ID).Int("seat", seat).Str("name", name).Msg("seat joined")

	if r.humansJoined() {
		started, notice, err := r.engine.Start(r.game)
		if err != nil {
			return JoinResult{}, err
		}
		r.game = started
		m.broadcast(r, &notice)
		m.runBots(r)
	} else {
		m.broadcast(r, nil)
	}
	m.store.SaveRoom(r)
	return JoinResult{Seat: seat, Token: r.slots[seat].token}, nil
}

func (r *Room) freeSeat(want *int) (int, error) {
	if want != nil {
		s := *want
		if s < 0 || s >= len(r.slots) {
			return -1, fmt.Errorf("%w: %d", game.ErrUnknownSeat, s)
		}
		if r.slots[s].isBot || r.slots[s].joined {
			return -1, ErrSeatTaken
		}
		return s, nil
	}
	for i, sl := range r.slots {
		if !sl.isBot && !sl.joined {
			return i, nil
		}
	}
	return -1, ErrRoomFull
}

// SeatForToken resolves a seat token issued by JoinRoom.
func (m *Manager) SeatForToken(roomID, token string) (int, error) {
	r, err := m.room(roomID)
	if err != nil {
		return -1, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	seat, ok := r.seatByToken(token)
	if !ok {
		return -1, ErrBadToken
	}
	return seat, nil
}

// SubmitAction resolves one action for seat and lets the bots answer. A
// rejected action changes nothing and is reported only to the caller.
func (m *Manager) SubmitAction(roomID string, seat int, a game.Action) (game.Notice, error) {
	r, err := m.room(roomID)
	if err != nil {
		return game.Notice{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.paused {
		return game.Notice{}, ErrRoomPaused
	}
	next, notice, err := r.engine.Resolve(r.game, seat, a)
	if err != nil {
		log.Debug().Err(err).Str("room", r.ID).Int("seat", seat).Str("action", string(a.Kind)).Msg("action rejected")
		return game.Notice{}, err
	}
	r.game = next
	log.Debug().Str("room", r.ID).Int("seat", seat).Str("action", string(a.Kind)).Msg(notice.Message)
	m.broadcast(r, &notice)
	m.runBots(r)
	m.store.SaveRoom(r)
	return notice, nil
}

// State returns the seat's current view, used for resync.
func (m *Manager) State(roomID string, seat int) (shared.StateUpdate, error) {
	r, err := m.room(roomID)
	if err != nil {
		return shared.StateUpdate{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if seat < 0 || seat >= len(r.slots) {
		return shared.StateUpdate{}, fmt.Errorf("%w: %d", game.ErrUnknownSeat, seat)
	}
	return m.update(r, seat, nil), nil
}

// Connect records a live connection for seat.
func (m *Manager) Connect(roomID string, seat int) error {
	r, err := m.room(roomID)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if seat < 0 || seat >= len(r.slots) || r.slots[seat].isBot {
		return fmt.Errorf("%w: %d", game.ErrUnknownSeat, seat)
	}
	r.slots[seat].conns++
	if r.slots[seat].away {
		r.slots[seat].away = false
		m.refreshPause(r)
		m.cancelTeardown(r)
		m.broadcast(r, nil)
		m.runBots(r)
	}
	return nil
}

// Disconnect drops one connection of seat. When the seat has none left the
// room frees it in the lobby, and applies the disconnect policy in play.
func (m *Manager) Disconnect(roomID string, seat int) {
	r, err := m.room(roomID)
	if err != nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if seat < 0 || seat >= len(r.slots) || r.slots[seat].isBot {
		return
	}
	sl := &r.slots[seat]
	if sl.conns > 0 {
		sl.conns--
	}
	if sl.conns > 0 {
		return
	}

	switch {
	case !r.game.Started:
		r.slots[seat] = slot{}
		g := r.game.Clone()
		g.Seats[seat].Name = fmt.Sprintf("Seat %d", seat+1)
		r.game = g
		log.Info().Str("room", r.ID).Int("seat", seat).Msg("seat freed")
		m.broadcast(r, nil)
	case r.game.Over:
		sl.away = true
	case m.cfg.DisconnectPolicy == config.DisconnectPause:
		sl.away = true
		m.refreshPause(r)
		log.Info().Str("room", r.ID).Int("seat", seat).Msg("room paused")
		m.broadcast(r, nil)
	default:
		sl.away = true
		next, notice, err := r.engine.Forfeit(r.game, seat)
		if err != nil {
			log.Warn().Err(err).Str("room", r.ID).Int("seat", seat).Msg("forfeit failed")
			break
		}
		r.game = next
		log.Info().Str("room", r.ID).Int("seat", seat).Msg("seat forfeited")
		m.broadcast(r, &notice)
		m.runBots(r)
	}

	if !r.game.Started || r.anyHumanPresent() {
		return
	}
	if r.paused {
		// Keep the paused game for a token rejoin, but not forever.
		if r.teardown == nil {
			m.expireAfter(r, m.cfg.PausedRoomTTL)
			log.Info().Str("room", r.ID).Dur("ttl", m.cfg.PausedRoomTTL).Msg("paused room expires unless rejoined")
		}
		return
	}
	m.deleteLocked(r)
}

func (m *Manager) refreshPause(r *Room) {
	r.paused = m.cfg.DisconnectPolicy == config.DisconnectPause &&
		r.game.Started && !r.game.Over && r.anyHumanAway()
}

// runBots lets bot seats act until a human has to move. At most
// BotActionLimit actions run per event; the rest continue after botPause.
func (m *Manager) runBots(r *Room) {
	defer func() {
		if r.game.Over {
			m.scheduleTeardown(r)
		}
	}()
	if r.paused {
		return
	}
	for i := 0; !r.game.Over; i++ {
		seat, a, ok := m.nextBotDecision(r)
		if !ok {
			break
		}
		if i >= m.cfg.BotActionLimit {
			m.continueBots(r.ID)
			return
		}
		next, notice, err := r.engine.Resolve(r.game, seat, a)
		if err != nil {
			log.Warn().Err(err).Str("room", r.ID).Int("seat", seat).Str("action", string(a.Kind)).Msg("bot action rejected")
			if next, notice, err = r.engine.Resolve(r.game, seat, game.EndTurn()); err != nil {
				break
			}
		}
		r.game = next
		m.broadcast(r, &notice)
	}
}

const botPause = 200 * time.Millisecond

func (m *Manager) continueBots(id string) {
	time.AfterFunc(botPause, func() {
		r, ok := m.store.GetRoom(id)
		if !ok {
			return
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		m.runBots(r)
	})
}

func (m *Manager) nextBotDecision(r *Room) (int, game.Action, bool) {
	order := []int{r.game.CurrentTurn}
	for i := range r.slots {
		if i != r.game.CurrentTurn {
			order = append(order, i)
		}
	}
	for _, seat := range order {
		if !r.slots[seat].isBot {
			continue
		}
		if a, ok := game.ChooseAction(game.Project(r.game, seat, 0)); ok {
			return seat, a, true
		}
	}
	return 0, game.Action{}, false
}

func (m *Manager) update(r *Room, seat int, notice *game.Notice) shared.StateUpdate {
	snap := game.Project(r.game, seat, m.cfg.LogTail)
	snap.RoomID = r.ID
	return shared.StateUpdate{Snapshot: snap, Result: notice, Paused: r.paused}
}

// broadcast sends every human seat its own projection.
func (m *Manager) broadcast(r *Room, notice *game.Notice) {
	for i, sl := range r.slots {
		if sl.isBot || !sl.joined {
			continue
		}
		m.hub.Send(r.ID, i, shared.ActionState, m.update(r, i, notice))
	}
}

func (m *Manager) scheduleTeardown(r *Room) {
	if r.teardown != nil {
		return
	}
	m.expireAfter(r, m.cfg.FinishedRoomTTL)
	log.Info().Str("room", r.ID).Str("result", r.game.WinStatus().String()).Msg("game over")
}

// expireAfter deletes the room after ttl unless cancelTeardown runs first.
func (m *Manager) expireAfter(r *Room, ttl time.Duration) {
	r.teardownSeq++
	id, seq := r.ID, r.teardownSeq
	r.teardown = time.AfterFunc(ttl, func() {
		m.expire(id, seq)
	})
}

func (m *Manager) expire(id string, seq int) {
	r, ok := m.store.GetRoom(id)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.teardown == nil || r.teardownSeq != seq {
		return
	}
	m.deleteLocked(r)
}

// cancelTeardown keeps a paused room alive once a human is back. Finished
// rooms still expire.
func (m *Manager) cancelTeardown(r *Room) {
	if r.teardown == nil || r.game.Over {
		return
	}
	r.teardown.Stop()
	r.teardown = nil
	r.teardownSeq++
	log.Info().Str("room", r.ID).Msg("room expiry cancelled")
}

func (m *Manager) deleteLocked(r *Room) {
	if r.teardown != nil {
		r.teardown.Stop()
	}
	m.hub.CloseRoom(r.ID)
	m.store.DeleteRoom(r.ID)
	log.Info().Str("room", r.ID).Msg("room deleted")
}

// IsNotFound reports whether err means the room does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRoomNotFound)
}

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randCode(n int) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[r.Intn(len(letters))]
	}
	return string(b)
}
