package ws

import "encoding/json"

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgCreateRoom     MessageType = "createRoom"
	MsgJoinRoom       MessageType = "joinRoom"
	MsgUpdateSettings MessageType = "updateSettings"
	MsgStartGame      MessageType = "startGame"
	MsgSubmitAnswer   MessageType = "submitAnswer"
	MsgNextRound      MessageType = "nextRound"
	MsgPlayAgain      MessageType = "playAgain"
	MsgPing           MessageType = "ping"
)

// Server → Client: event types are domain.EventType values, plus pong
const MsgPong = "pong"

// ClientMessage is the envelope for every inbound message. The payload is
// decoded per message type, so unknown shapes fail fast instead of being
// poked at dynamically.
type ClientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// CreateRoomPayload is the payload for createRoom
type CreateRoomPayload struct {
	Name string `json:"name"`
}

// JoinRoomPayload is the payload for joinRoom
type JoinRoomPayload struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// UpdateSettingsPayload is the payload for updateSettings; absent fields are
// left unchanged
type UpdateSettingsPayload struct {
	TimerSeconds *int `json:"timerSeconds,omitempty"`
	PointsToWin  *int `json:"pointsToWin,omitempty"`
}

// SubmitAnswerPayload is the payload for submitAnswer
type SubmitAnswerPayload struct {
	Answer string `json:"answer"`
}

// PongMessage is the reply to a ping
type PongMessage struct {
	Type string `json:"type"`
}
