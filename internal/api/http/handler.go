package http

import (
	"errors"
	"net/http"

	"sleepy-game/internal/game"
	"sleepy-game/internal/room"

	"github.com/gin-gonic/gin"
)

const seatTokenHeader = "X-Seat-Token"

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, room.ErrRoomFull),
		errors.Is(err, room.ErrSeatTaken),
		errors.Is(err, room.ErrRoomPaused),
		errors.Is(err, game.ErrGameAlreadyOver):
		return http.StatusConflict
	case errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, room.ErrBadToken):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

func abort(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary List rooms
// @Tags Room
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /rooms [get]
func ListRoomsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": rm.List()})
	}
}

// @Summary Create new room
// @Description Create a room with seat_count seats, the last bot_count of them bots
// @Tags Room
// @Accept json
// @Produce json
// @Param request body CreateRoomRequest true "Seat layout"
// @Success 201 {object} CreateRoomResponse
// @Router /rooms [post]
func CreateRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "seat_count required"})
			return
		}
		rx, err := rm.CreateRoom(req.SeatCount, req.BotCount)
		if err != nil {
			abort(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateRoomResponse{RoomID: rx.ID})
	}
}

// @Summary Join a room
// @Description Take a free seat, or reattach to one with its token
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body JoinRoomRequest true "Player info"
// @Success 200 {object} JoinRoomResponse
// @Router /rooms/{id}/join [post]
func JoinRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRoomRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
				return
			}
		}
		id := c.Param("id")
		res, err := rm.JoinRoom(id, room.Participant{Name: req.Name, Token: req.Token, Seat: req.Seat})
		if err != nil {
			abort(c, err)
			return
		}
		st, err := rm.State(id, res.Seat)
		if err != nil {
			abort(c, err)
			return
		}
		c.JSON(http.StatusOK, JoinRoomResponse{Seat: res.Seat, Token: res.Token, Rejoined: res.Rejoined, State: st})
	}
}

func seatFromHeader(c *gin.Context, rm *room.Manager) (int, bool) {
	seat, err := rm.SeatForToken(c.Param("id"), c.GetHeader(seatTokenHeader))
	if err != nil {
		abort(c, err)
		return -1, false
	}
	return seat, true
}

// @Summary Submit an action
// @Tags Game
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param X-Seat-Token header string true "Seat token"
// @Param request body game.Action true "Action"
// @Success 200 {object} ActionResponse
// @Router /rooms/{id}/actions [post]
func SubmitActionHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		seat, ok := seatFromHeader(c, rm)
		if !ok {
			return
		}
		var a game.Action
		if err := c.ShouldBindJSON(&a); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action"})
			return
		}
		id := c.Param("id")
		notice, err := rm.SubmitAction(id, seat, a)
		if err != nil {
			abort(c, err)
			return
		}
		st, err := rm.State(id, seat)
		if err != nil {
			abort(c, err)
			return
		}
		c.JSON(http.StatusOK, ActionResponse{Snapshot: st.Snapshot, Result: notice})
	}
}

// @Summary Get the caller's view of a room
// @Tags Game
// @Produce json
// @Param id path string true "Room ID"
// @Param X-Seat-Token header string true "Seat token"
// @Success 200 {object} shared.StateUpdate
// @Router /rooms/{id}/state [get]
func StateHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		seat, ok := seatFromHeader(c, rm)
		if !ok {
			return
		}
		st, err := rm.State(c.Param("id"), seat)
		if err != nil {
			abort(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	}
}
