package domain

import "errors"

// Domain errors
var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrGameInProgress   = errors.New("game already in progress")
	ErrNotEnoughPlayers = errors.New("need at least 2 players to start")
	ErrNotHost          = errors.New("only host can perform this action")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrAlreadyAnswered  = errors.New("already answered this round")
	ErrInvalidState     = errors.New("invalid action for current state")
	ErrNoRoomCodes      = errors.New("no free room codes available")
)
