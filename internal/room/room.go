package room

import (
	"errors"
	"sync"
	"time"

	"sleepy-game/internal/game"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
	ErrSeatTaken    = errors.New("seat already taken")
	ErrRoomPaused   = errors.New("room is paused")
	ErrBadToken     = errors.New("unknown seat token")
	ErrBadSeatCount = errors.New("invalid seat or bot count")
)

type Store interface {
	GetRoom(id string) (*Room, bool)
	SaveRoom(r *Room)
	DeleteRoom(id string)
	ListRooms() []*Room
}

type slot struct {
	name   string
	token  string
	isBot  bool
	joined bool
	away   bool
	conns  int
}

// Room owns one game. Every read and write of the game goes through mu.
type Room struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	engine   *game.Engine
	game     *game.Game
	slots    []slot
	paused   bool
	teardown *time.Timer

	// teardownSeq invalidates a timer that fired while being cancelled.
	teardownSeq int
}

type Participant struct {
	Name  string
	Token string
	Seat  *int
}

type JoinResult struct {
	Seat     int
	Token    string
	Rejoined bool
}

type Summary struct {
	ID        string     `json:"room_id"`
	Seats     int        `json:"seats"`
	Bots      int        `json:"bots"`
	Joined    int        `json:"joined"`
	Phase     game.Phase `json:"phase"`
	Paused    bool       `json:"paused"`
	CreatedAt time.Time  `json:"created_at"`
}

func (r *Room) summary() Summary {
	s := Summary{ID: r.ID, Seats: len(r.slots), Phase: r.game.Phase(), Paused: r.paused, CreatedAt: r.CreatedAt}
	for _, sl := range r.slots {
		switch {
		case sl.isBot:
			s.Bots++
		case sl.joined:
			s.Joined++
		}
	}
	return s
}

func (r *Room) seatByToken(token string) (int, bool) {
	if token == "" {
		return -1, false
	}
	for i, sl := range r.slots {
		if !sl.isBot && sl.token == token {
			return i, true
		}
	}
	return -1, false
}

func (r *Room) humansJoined() bool {
	for _, sl := range r.slots {
		if !sl.isBot && !sl.joined {
			return false
		}
	}
	return true
}

// anyHumanPresent reports whether some joined human has not left.
func (r *Room) anyHumanPresent() bool {
	for _, sl := range r.slots {
		if !sl.isBot && sl.joined && !sl.away {
			return true
		}
	}
	return false
}

func (r *Room) anyHumanAway() bool {
	for _, sl := range r.slots {
		if !sl.isBot && sl.joined && sl.away {
			return true
		}
	}
	return false
}
