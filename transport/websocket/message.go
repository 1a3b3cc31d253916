package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	actionSession = "session:new"
	actionMode    = "game:mode"
	actionTurn    = "game:turn"
	actionRestart = "game:restart"
	actionState   = "game:state"
	actionOver    = "game:over"
	actionError   = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	Mode string `json:"mode,omitempty"`
	Cell int    `json:"cell,omitempty"`
}

type ResponsePayload struct {
	SessionID string           `json:"session_id,omitempty"`
	Game      *entity.Snapshot `json:"game,omitempty"`
	Moves     []entity.Move    `json:"moves,omitempty"`
	Outcome   *entity.Outcome  `json:"outcome,omitempty"`
	Message   string           `json:"message,omitempty"`
	Error     string           `json:"error,omitempty"`
}
