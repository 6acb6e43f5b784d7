package domain

import "time"

// Player represents a player in a room. The ID is the connection identity
// assigned by the transport, so it lives and dies with the connection.
type Player struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Score         int       `json:"score"`
	CurrentAnswer string    `json:"currentAnswer,omitempty"`
	Avatar        string    `json:"avatar"`
	Color         string    `json:"color"`
	JoinedAt      time.Time `json:"joinedAt"`
}

// NewPlayer creates a new player with the given identity and appearance
func NewPlayer(id, name, avatar, color string) *Player {
	return &Player{
		ID:       id,
		Name:     name,
		Score:    0,
		Avatar:   avatar,
		Color:    color,
		JoinedAt: time.Now(),
	}
}

// HasAnswered returns true if the player has answered the current prompt
func (p *Player) HasAnswered() bool {
	return p.CurrentAnswer != ""
}

// ResetForNewRound clears the player's answer for a fresh round
func (p *Player) ResetForNewRound() {
	p.CurrentAnswer = ""
}

// ResetForRematch clears both score and answer for a play-again restart
func (p *Player) ResetForRematch() {
	p.Score = 0
	p.CurrentAnswer = ""
}

// PlayerInfo is the roster view of a player sent to clients. Answers are
// never included; they only surface in round results.
type PlayerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Avatar string `json:"avatar"`
	Color  string `json:"color"`
}

// ToInfo converts a Player to PlayerInfo (without the answer)
func (p *Player) ToInfo() PlayerInfo {
	return PlayerInfo{
		ID:     p.ID,
		Name:   p.Name,
		Score:  p.Score,
		Avatar: p.Avatar,
		Color:  p.Color,
	}
}
