package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"sleepy-game/internal/config"
	"sleepy-game/internal/game"
	"sleepy-game/internal/room"
	"sleepy-game/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 32
)

var errRateLimited = errors.New("too many messages")

type client struct {
	roomID  string
	seat    int
	conn    *websocket.Conn
	limiter *rate.Limiter

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

// push queues msg without blocking. A full buffer drops the client.
func (c *client) push(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		c.closed = true
		close(c.send)
		return false
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

type Hub struct {
	mu          sync.RWMutex
	rooms       map[string]map[*client]struct{}
	roomManager RoomManager
	upgrader    websocket.Upgrader
	ratePerSec  float64
	burst       int
}

func NewHub(roomManager RoomManager, cfg config.Config) *Hub {
	h := &Hub{
		rooms:       make(map[string]map[*client]struct{}),
		roomManager: roomManager,
		ratePerSec:  cfg.WSRatePerSec,
		burst:       cfg.WSBurst,
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: originChecker(cfg.AllowedOrigins)}
	return h
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// HandleWS upgrades GET /ws?room_id=...&token=... into a seat connection.
func (h *Hub) HandleWS(c *gin.Context) {
	roomID := c.Query("room_id")
	token := c.Query("token")
	if roomID == "" || token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing room_id or token"})
		return
	}
	seat, err := h.roomManager.SeatForToken(roomID, token)
	if err != nil {
		status := http.StatusForbidden
		if errors.Is(err, room.ErrRoomNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("room", roomID).Msg("websocket upgrade failed")
		return
	}

	cl := &client{
		roomID:  roomID,
		seat:    seat,
		conn:    conn,
		limiter: rate.NewLimiter(rate.Limit(h.ratePerSec), h.burst),
		send:    make(chan []byte, sendBuffer),
	}
	h.register(cl)
	log.Info().Str("room", roomID).Int("seat", seat).Msg("websocket connected")

	go h.writePump(cl)

	if err := h.roomManager.Connect(roomID, seat); err != nil {
		h.sendError(cl, err)
		h.unregister(cl)
		return
	}
	h.resync(cl)
	h.readPump(cl)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[c.roomID]; !ok {
		h.rooms[c.roomID] = make(map[*client]struct{})
	}
	h.rooms[c.roomID][c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if clients, ok := h.rooms[c.roomID]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.rooms, c.roomID)
		}
	}
	h.mu.Unlock()
	c.close()
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		h.roomManager.Disconnect(c.roomID, c.seat)
		log.Info().Str("room", c.roomID).Int("seat", c.seat).Msg("websocket disconnected")
	}()

	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg shared.Envelope
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("room", c.roomID).Msg("websocket read failed")
			}
			return
		}
		if !c.limiter.Allow() {
			h.sendError(c, errRateLimited)
			continue
		}

		switch msg.Action {
		case shared.ActionSubmit:
			var a game.Action
			if err := json.Unmarshal(msg.Data, &a); err != nil {
				h.sendError(c, err)
				continue
			}
			if _, err := h.roomManager.SubmitAction(c.roomID, c.seat, a); err != nil {
				h.sendError(c, err)
			}
		case shared.ActionResync:
			h.resync(c)
		default:
			h.sendError(c, errors.New("unknown action: "+msg.Action))
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) resync(c *client) {
	st, err := h.roomManager.State(c.roomID, c.seat)
	if err != nil {
		h.sendError(c, err)
		return
	}
	h.deliver(c, shared.ActionState, st)
}

func (h *Hub) sendError(c *client, err error) {
	h.deliver(c, shared.ActionError, shared.ErrorMessage{Error: err.Error()})
}

func (h *Hub) deliver(c *client, action string, data interface{}) {
	if msg, ok := encode(action, data); ok {
		c.push(msg)
	}
}

func encode(action string, data interface{}) ([]byte, bool) {
	env, err := shared.NewEnvelope(action, data)
	if err == nil {
		var msg []byte
		if msg, err = json.Marshal(env); err == nil {
			return msg, true
		}
	}
	log.Error().Err(err).Str("action", action).Msg("encode envelope")
	return nil, false
}

// Send delivers one message to every connection of a seat.
func (h *Hub) Send(roomID string, seat int, action string, data interface{}) {
	if h == nil {
		return
	}
	msg, ok := encode(action, data)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[roomID] {
		if c.seat != seat {
			continue
		}
		if !c.push(msg) {
			log.Warn().Str("room", roomID).Int("seat", seat).Msg("dropping slow client")
		}
	}
}

// CloseRoom drops every connection of the room.
func (h *Hub) CloseRoom(roomID string) {
	h.mu.Lock()
	clients := h.rooms[roomID]
	delete(h.rooms, roomID)
	h.mu.Unlock()
	for c := range clients {
		c.close()
	}
}

// Connections reports how many sockets are open for roomID.
func (h *Hub) Connections(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}
