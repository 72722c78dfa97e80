package shared

import (
	"encoding/json"

	"sleepy-game/internal/game"
)

// Envelope is the websocket frame in both directions.
type Envelope struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

const (
	ActionSubmit = "submit"
	ActionResync = "resync"
	ActionState  = "state"
	ActionError  = "error"
)

// StateUpdate is what one seat receives after every change.
type StateUpdate struct {
	Snapshot game.Snapshot `json:"snapshot"`
	Result   *game.Notice  `json:"result,omitempty"`
	Paused   bool          `json:"paused"`
}

type ErrorMessage struct {
	Error string `json:"error"`
}

// NewEnvelope encodes data under action.
func NewEnvelope(action string, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Action: action, Data: raw}, nil
}
