package room

// Broadcaster delivers per-seat messages to connected clients.
type Broadcaster interface {
	Send(roomID string, seat int, action string, data interface{})
	CloseRoom(roomID string)
}

type nopBroadcaster struct{}

func (nopBroadcaster) Send(string, int, string, interface{}) {}
func (nopBroadcaster) CloseRoom(string)                      {}
