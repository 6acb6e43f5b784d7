package domain

import "time"

// Settings holds configurable game parameters
type Settings struct {
	TimerSeconds int `json:"timerSeconds"`
	PointsToWin  int `json:"pointsToWin"`
}

// DefaultSettings returns the default game settings
func DefaultSettings() Settings {
	return Settings{
		TimerSeconds: 30,
		PointsToWin:  10,
	}
}

// SettingsUpdate is a partial settings change; nil fields are left untouched.
type SettingsUpdate struct {
	TimerSeconds *int `json:"timerSeconds,omitempty"`
	PointsToWin  *int `json:"pointsToWin,omitempty"`
}

// Apply merges the update into the settings
func (s *Settings) Apply(upd SettingsUpdate) {
	if upd.TimerSeconds != nil && *upd.TimerSeconds > 0 {
		s.TimerSeconds = *upd.TimerSeconds
	}
	if upd.PointsToWin != nil && *upd.PointsToWin > 0 {
		s.PointsToWin = *upd.PointsToWin
	}
}

// Room represents one game session. Players are kept in join order: host
// failover always falls to the earliest remaining joiner, and scoring
// iterates the roster in a stable order.
type Room struct {
	Code          string
	HostID        string
	Players       map[string]*Player
	JoinOrder     []string
	State         State
	Round         int
	CurrentPrompt string
	UsedPrompts   []string
	Settings      Settings
	QueenBeeID    string // player currently holding the Queen Bee, if any
	CreatedAt     time.Time
}

// NewRoom creates a new room with the given code in the lobby state
func NewRoom(code string, settings Settings) *Room {
	return &Room{
		Code:      code,
		Players:   make(map[string]*Player),
		JoinOrder: make([]string, 0),
		State:     StateLobby,
		Round:     0,
		Settings:  settings,
		CreatedAt: time.Now(),
	}
}

// AddPlayer adds a player to the room. Joining is only possible in the lobby.
func (r *Room) AddPlayer(playerID, name, avatar, color string) (*Player, error) {
	if r.State != StateLobby {
		return nil, ErrGameInProgress
	}

	player := NewPlayer(playerID, name, avatar, color)
	r.Players[playerID] = player
	r.JoinOrder = append(r.JoinOrder, playerID)

	// First player becomes the host
	if r.HostID == "" {
		r.HostID = playerID
	}

	return player, nil
}

// RemovePlayer removes a player and reassigns the host if needed.
// Returns the removed player.
func (r *Room) RemovePlayer(playerID string) (*Player, error) {
	player, ok := r.Players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	delete(r.Players, playerID)
	for i, id := range r.JoinOrder {
		if id == playerID {
			r.JoinOrder = append(r.JoinOrder[:i], r.JoinOrder[i+1:]...)
			break
		}
	}

	// Host failover: next remaining player by join order
	if r.HostID == playerID && len(r.JoinOrder) > 0 {
		r.HostID = r.JoinOrder[0]
	}

	return player, nil
}

// GetPlayer returns a player by ID
func (r *Room) GetPlayer(playerID string) (*Player, error) {
	player, ok := r.Players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return player, nil
}

// PlayerCount returns the number of players in the room
func (r *Room) PlayerCount() int {
	return len(r.Players)
}

// IsEmpty returns true once the last player has left
func (r *Room) IsEmpty() bool {
	return len(r.Players) == 0
}

// IsHost checks if the given player is the host
func (r *Room) IsHost(playerID string) bool {
	return r.HostID == playerID
}

// PlayersInOrder returns the players in join order
func (r *Room) PlayersInOrder() []*Player {
	players := make([]*Player, 0, len(r.JoinOrder))
	for _, id := range r.JoinOrder {
		if p, ok := r.Players[id]; ok {
			players = append(players, p)
		}
	}
	return players
}

// Roster returns the join-ordered roster view sent to clients
func (r *Room) Roster() []PlayerInfo {
	players := make([]PlayerInfo, 0, len(r.JoinOrder))
	for _, p := range r.PlayersInOrder() {
		players = append(players, p.ToInfo())
	}
	return players
}

// BeginRound starts a new round with the given prompt. Valid from the lobby
// (first round, needs at least two players) or from results (next round).
func (r *Room) BeginRound(prompt string) error {
	if r.State != StateLobby && r.State != StateResults {
		return ErrInvalidState
	}

	if r.State == StateLobby && r.PlayerCount() < 2 {
		return ErrNotEnoughPlayers
	}

	for _, player := range r.Players {
		player.ResetForNewRound()
	}

	r.Round++
	r.CurrentPrompt = prompt
	r.UsedPrompts = append(r.UsedPrompts, prompt)
	r.State = StatePlaying

	return nil
}

// SubmitAnswer records a player's answer. The first answer per round wins;
// later submissions are rejected, not overwritten.
func (r *Room) SubmitAnswer(playerID, answer string) error {
	if r.State != StatePlaying {
		return ErrInvalidState
	}

	player, ok := r.Players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}

	if player.HasAnswered() {
		return ErrAlreadyAnswered
	}

	player.CurrentAnswer = answer
	return nil
}

// AnsweredCount returns how many players have answered this round
func (r *Room) AnsweredCount() int {
	count := 0
	for _, p := range r.Players {
		if p.HasAnswered() {
			count++
		}
	}
	return count
}

// AllAnswered returns true once every current player has answered
func (r *Room) AllAnswered() bool {
	return r.AnsweredCount() == len(r.Players)
}

// ResetForRematch returns the room to the lobby with a clean slate: scores,
// answers, prompt history and the Queen Bee are all cleared.
func (r *Room) ResetForRematch() {
	for _, player := range r.Players {
		player.ResetForRematch()
	}

	r.State = StateLobby
	r.Round = 0
	r.CurrentPrompt = ""
	r.UsedPrompts = nil
	r.QueenBeeID = ""
}
