package domain

import "time"

// EventType represents the type of game event
type EventType string

const (
	EventRoomCreated     EventType = "roomCreated"
	EventJoinedRoom      EventType = "joinedRoom"
	EventPlayerJoined    EventType = "playerJoined"
	EventPlayerLeft      EventType = "playerLeft"
	EventNewHost         EventType = "newHost"
	EventSettingsUpdated EventType = "settingsUpdated"
	EventGameStarted     EventType = "gameStarted"
	EventNewRound        EventType = "newRound"
	EventTimerTick       EventType = "timerTick"
	EventPlayerSubmitted EventType = "playerSubmitted"
	EventRoundResults    EventType = "roundResults"
	EventGameReset       EventType = "gameReset"
	EventError           EventType = "error"
)

// GameEvent represents an event that occurred in a room
type GameEvent struct {
	Type      EventType   `json:"type"`
	RoomCode  string      `json:"roomCode"`
	PlayerID  string      `json:"playerId,omitempty"` // If event is player-specific
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new room-wide game event
func NewEvent(eventType EventType, roomCode string, payload interface{}) *GameEvent {
	return &GameEvent{
		Type:      eventType,
		RoomCode:  roomCode,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// NewPlayerEvent creates a new player-specific game event
func NewPlayerEvent(eventType EventType, roomCode, playerID string, payload interface{}) *GameEvent {
	return &GameEvent{
		Type:      eventType,
		RoomCode:  roomCode,
		PlayerID:  playerID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// Payload types for different events

// RoomCreatedPayload is sent to the creator once their room exists
type RoomCreatedPayload struct {
	Code     string       `json:"code"`
	Players  []PlayerInfo `json:"players"`
	Settings Settings     `json:"settings"`
}

// JoinedRoomPayload is sent to a player who joined an existing room
type JoinedRoomPayload struct {
	Code     string       `json:"code"`
	Players  []PlayerInfo `json:"players"`
	IsHost   bool         `json:"isHost"`
	Settings Settings     `json:"settings"`
}

// PlayerJoinedPayload is broadcast when the roster grows
type PlayerJoinedPayload struct {
	Players []PlayerInfo `json:"players"`
}

// PlayerLeftPayload is broadcast when a player disconnects
type PlayerLeftPayload struct {
	Players    []PlayerInfo `json:"players"`
	LeftPlayer string       `json:"leftPlayer"`
}

// NewHostPayload is broadcast when host failover happens
type NewHostPayload struct {
	HostID string `json:"hostId"`
}

// RoundStartedPayload is broadcast for gameStarted and newRound
type RoundStartedPayload struct {
	Prompt string `json:"prompt"`
	Round  int    `json:"round"`
	Timer  int    `json:"timer"`
}

// TimerTickPayload is broadcast once per second while a round is running
type TimerTickPayload struct {
	TimeLeft int `json:"timeLeft"`
}

// PlayerSubmittedPayload is broadcast when an answer is accepted
type PlayerSubmittedPayload struct {
	PlayerID      string `json:"playerId"`
	AnsweredCount int    `json:"answeredCount"`
	TotalPlayers  int    `json:"totalPlayers"`
}

// QueenBeeInfo names the player who picked up the Queen Bee
type QueenBeeInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoundResultsPayload is broadcast when a round resolves. HerdAnswer is nil
// on a round where nobody answered, serializing as null rather than "".
type RoundResultsPayload struct {
	Results        []RoundResult `json:"results"`
	HerdAnswer     *string       `json:"herdAnswer"`
	HerdCount      int           `json:"herdCount"`
	Round          int           `json:"round"`
	Winner         *RoundResult  `json:"winner"`
	NewQueenBee    *QueenBeeInfo `json:"newQueenBee"`
	QueenBeeHolder string        `json:"queenBeeHolder,omitempty"`
}

// GameResetPayload is broadcast when the host restarts the match
type GameResetPayload struct {
	Players  []PlayerInfo `json:"players"`
	Settings Settings     `json:"settings"`
}

// ErrorPayload is sent to the originating caller only
type ErrorPayload struct {
	Message string `json:"message"`
}
