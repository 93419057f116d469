package websocket

import (
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

// Message is both the request and the response frame: the response echoes
// the request action.
type Message struct {
	Action  string  `json:"action"`
	Payload Payload `json:"payload"`
}

type Payload struct {
	GameID  string                    `json:"game_id,omitempty"`
	Offense *entity.OffensiveDecision `json:"offense,omitempty"`
	Defense *entity.DefensiveDecision `json:"defense,omitempty"`

	Game  *entity.GameState `json:"game,omitempty"`
	Error string            `json:"error,omitempty"`
}
