package app

import (
	"crypto/rand"
	"log/slog"
	"strings"
	"sync"

	"hivemind/internal/domain"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 4

	// maxCodeAttempts bounds the collision-retry loop. At 32^4 codes the cap
	// is only reachable under pathological load.
	maxCodeAttempts = 10
)

// RoomCodeChars are characters used for room codes (no ambiguous chars)
const RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RoomRegistry manages all active room sessions, keyed by room code
type RoomRegistry struct {
	sessions map[string]*RoomSession
	mu       sync.RWMutex
	prompts  *PromptBank
	defaults domain.Settings
	logger   *slog.Logger
}

// NewRoomRegistry creates a new room registry
func NewRoomRegistry(prompts *PromptBank, defaults domain.Settings, logger *slog.Logger) *RoomRegistry {
	return &RoomRegistry{
		sessions: make(map[string]*RoomSession),
		prompts:  prompts,
		defaults: defaults,
		logger:   logger,
	}
}

// CreateRoom creates a new empty room with a unique code. The creator joins
// through RoomSession.Join like everyone else and becomes host as the first
// player in.
func (r *RoomRegistry) CreateRoom() (*RoomSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, err := r.generateUniqueCode()
	if err != nil {
		return nil, err
	}

	room := domain.NewRoom(code, r.defaults)
	session := NewRoomSession(room, r.prompts, r.logger)
	r.sessions[code] = session

	r.logger.Info("room created", "roomCode", code)

	return session, nil
}

// Lookup returns a room session by code, case-insensitively
func (r *RoomRegistry) Lookup(code string) (*RoomSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[strings.ToUpper(code)]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}

	return session, nil
}

// Remove drops a room session, closing it and cancelling its timer. Called
// once the last player has left.
func (r *RoomRegistry) Remove(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[code]; ok {
		session.Close()
		delete(r.sessions, code)
		r.logger.Info("room destroyed", "roomCode", code)
	}
}

// RoomCount returns the number of active rooms
func (r *RoomRegistry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// TotalPlayerCount returns the total number of players across all rooms
func (r *RoomRegistry) TotalPlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, session := range r.sessions {
		total += session.PlayerCount()
	}
	return total
}

// Close shuts down the registry and all sessions
func (r *RoomRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, session := range r.sessions {
		session.Close()
	}
	r.sessions = make(map[string]*RoomSession)
}

// generateUniqueCode samples codes until one is free, up to the retry cap
// (caller must hold mu)
func (r *RoomRegistry) generateUniqueCode() (string, error) {
	for attempts := 0; attempts < maxCodeAttempts; attempts++ {
		code := generateRoomCode()
		if _, exists := r.sessions[code]; !exists {
			return code, nil
		}
	}
	return "", domain.ErrNoRoomCodes
}

// generateRoomCode generates a random room code
func generateRoomCode() string {
	b := make([]byte, RoomCodeLength)
	rand.Read(b)

	code := make([]byte, RoomCodeLength)
	for i := range code {
		code[i] = RoomCodeChars[int(b[i])%len(RoomCodeChars)]
	}

	return string(code)
}
