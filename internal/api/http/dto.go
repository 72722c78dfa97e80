package http

import (
	"sleepy-game/internal/game"
	"sleepy-game/internal/shared"
)

// CreateRoomRequest represents the payload for POST /rooms.
type CreateRoomRequest struct {
	SeatCount int `json:"seat_count" binding:"required"`
	BotCount  int `json:"bot_count"`
}

type CreateRoomResponse struct {
	RoomID string `json:"room_id"`
}

// JoinRoomRequest represents the payload for POST /rooms/:id/join. A token
// from an earlier join reattaches to the same seat.
type JoinRoomRequest struct {
	Name  string `json:"name"`
	Token string `json:"token"`
	Seat  *int   `json:"seat"`
}

type JoinRoomResponse struct {
	Seat     int                `json:"seat"`
	Token    string             `json:"token"`
	Rejoined bool               `json:"rejoined"`
	State    shared.StateUpdate `json:"state"`
}

type ActionResponse struct {
	Snapshot game.Snapshot `json:"snapshot"`
	Result   game.Notice   `json:"result"`
}

type RulesResponse struct {
	Rules            game.Rules `json:"rules"`
	DisconnectPolicy string     `json:"disconnect_policy"`
	LogTail          int        `json:"log_tail"`
}
