package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	actionMatchNew     = "match:new"
	actionMatchMove    = "match:move"
	actionMatchUndo    = "match:undo"
	actionMatchHint    = "match:hint"
	actionMatchRestart = "match:restart"
	actionMatchState   = "match:state"

	actionCellChanged   = "cell:changed"
	actionTurnChanged   = "turn:changed"
	actionMatchFinished = "match:finished"
	actionStatsChanged  = "stats:changed"
	actionError         = "error"
)

type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	Mode       entity.Mode       `json:"mode,omitempty"`
	Difficulty entity.Difficulty `json:"difficulty,omitempty"`
	Cell       *int              `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Match   *entity.MatchState `json:"match,omitempty"`
	Cell    *int               `json:"cell,omitempty"`
	Mark    *entity.Mark       `json:"mark,omitempty"`
	Found   *bool              `json:"found,omitempty"`
	Outcome *entity.Outcome    `json:"outcome,omitempty"`
	Stats   *entity.Stats      `json:"stats,omitempty"`
	Request string             `json:"request,omitempty"`
	Error   string             `json:"error,omitempty"`
}

func mustMarshal(payload any) json.RawMessage {
	data, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}

	return data
}
