package ws

import (
	"sleepy-game/internal/game"
	"sleepy-game/internal/shared"
)

type RoomManager interface {
	SeatForToken(roomID, token string) (int, error)
	Connect(roomID string, seat int) error
	Disconnect(roomID string, seat int)
	SubmitAction(roomID string, seat int, a game.Action) (game.Notice, error)
	State(roomID string, seat int) (shared.StateUpdate, error)
}
