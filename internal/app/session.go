package app

import (
	"log/slog"
	"sync"
	"time"

	"hivemind/internal/domain"
)

// ClientConnection represents a connected client
type ClientConnection interface {
	Send(message interface{}) error
	PlayerID() string
	Close() error
}

// RoomSession wraps a room with concurrency control and client management.
// Every player action and timer tick for the room is serialized on mu, which
// is what keeps the state machine honest when the round timer and the last
// answer race each other.
type RoomSession struct {
	room      *domain.Room
	mu        sync.Mutex
	clients   map[string]ClientConnection // playerID -> client
	clientsMu sync.RWMutex
	prompts   *PromptBank
	logger    *slog.Logger

	// Round timer. At most one is live, and only while the room is playing;
	// starting a new one cancels the prior. tick is one second in production
	// and shortened in tests.
	tick        time.Duration
	timerCancel chan struct{}

	// Event channel for broadcasting
	events    chan *domain.GameEvent
	done      chan struct{}
	closeOnce sync.Once
}

// NewRoomSession creates a new session around the given room
func NewRoomSession(room *domain.Room, prompts *PromptBank, logger *slog.Logger) *RoomSession {
	session := &RoomSession{
		room:    room,
		clients: make(map[string]ClientConnection),
		prompts: prompts,
		logger:  logger,
		tick:    time.Second,
		events:  make(chan *domain.GameEvent, 100),
		done:    make(chan struct{}),
	}

	// Start event broadcaster
	go session.eventLoop()

	return session
}

// Code returns the room code
func (s *RoomSession) Code() string {
	return s.room.Code
}

// CreatedAt returns when the room was created
func (s *RoomSession) CreatedAt() time.Time {
	return s.room.CreatedAt
}

// PlayerCount returns the number of players
func (s *RoomSession) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room.PlayerCount()
}

// State returns the current room state
func (s *RoomSession) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room.State
}

// CanJoin checks if a new player can join the room
func (s *RoomSession) CanJoin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room.State == domain.StateLobby
}

// RegisterClient registers a client connection for a player
func (s *RoomSession) RegisterClient(playerID string, client ClientConnection) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[playerID] = client
}

// UnregisterClient removes a client connection
func (s *RoomSession) UnregisterClient(playerID string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, playerID)
}

// Join adds a player to the room and registers their connection. The creator
// gets roomCreated; later joiners get joinedRoom while the room hears
// playerJoined.
func (s *RoomSession) Join(playerID, name string, client ClientConnection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	avatar, color := PickAppearance(s.room)
	_, err := s.room.AddPlayer(playerID, name, avatar, color)
	if err != nil {
		return err
	}

	if client != nil {
		s.RegisterClient(playerID, client)
	}

	roster := s.room.Roster()
	if s.room.IsHost(playerID) && s.room.PlayerCount() == 1 {
		s.queueEvent(domain.NewPlayerEvent(domain.EventRoomCreated, s.room.Code, playerID, &domain.RoomCreatedPayload{
			Code:     s.room.Code,
			Players:  roster,
			Settings: s.room.Settings,
		}))
	} else {
		s.queueEvent(domain.NewEvent(domain.EventPlayerJoined, s.room.Code, &domain.PlayerJoinedPayload{
			Players: roster,
		}))
		s.queueEvent(domain.NewPlayerEvent(domain.EventJoinedRoom, s.room.Code, playerID, &domain.JoinedRoomPayload{
			Code:     s.room.Code,
			Players:  roster,
			IsHost:   false,
			Settings: s.room.Settings,
		}))
	}

	return nil
}

// Leave removes a player from the room. Returns true once the room is empty,
// at which point the caller must drop the session from the registry. Host
// departure reassigns the host to the earliest remaining joiner, announced
// before the roster update.
func (s *RoomSession) Leave(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.UnregisterClient(playerID)

	wasHost := s.room.IsHost(playerID)
	removed, err := s.room.RemovePlayer(playerID)
	if err != nil {
		return false
	}

	if s.room.IsEmpty() {
		s.stopTimerLocked()
		return true
	}

	if wasHost {
		s.queueEvent(domain.NewEvent(domain.EventNewHost, s.room.Code, &domain.NewHostPayload{
			HostID: s.room.HostID,
		}))
	}

	s.queueEvent(domain.NewEvent(domain.EventPlayerLeft, s.room.Code, &domain.PlayerLeftPayload{
		Players:    s.room.Roster(),
		LeftPlayer: removed.Name,
	}))

	return false
}

// UpdateSettings merges a partial settings change (host only). The change
// applies to the next round, never to an in-flight timer.
func (s *RoomSession) UpdateSettings(playerID string, upd domain.SettingsUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.room.IsHost(playerID) {
		return domain.ErrNotHost
	}

	s.room.Settings.Apply(upd)

	s.queueEvent(domain.NewEvent(domain.EventSettingsUpdated, s.room.Code, s.room.Settings))

	return nil
}

// StartGame starts the first round from the lobby (host only)
func (s *RoomSession) StartGame(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.room.IsHost(playerID) {
		return domain.ErrNotHost
	}

	if s.room.State != domain.StateLobby {
		return domain.ErrInvalidState
	}

	return s.beginRoundLocked(domain.EventGameStarted)
}

// NextRound starts the following round from the results screen (host only)
func (s *RoomSession) NextRound(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.room.IsHost(playerID) {
		return domain.ErrNotHost
	}

	if s.room.State != domain.StateResults {
		return domain.ErrInvalidState
	}

	return s.beginRoundLocked(domain.EventNewRound)
}

// beginRoundLocked draws a prompt, starts the round and its timer
func (s *RoomSession) beginRoundLocked(event domain.EventType) error {
	prompt := s.prompts.Next(s.room.UsedPrompts)

	if err := s.room.BeginRound(prompt); err != nil {
		return err
	}

	s.queueEvent(domain.NewEvent(event, s.room.Code, &domain.RoundStartedPayload{
		Prompt: s.room.CurrentPrompt,
		Round:  s.room.Round,
		Timer:  s.room.Settings.TimerSeconds,
	}))

	s.startTimerLocked()

	return nil
}

// SubmitAnswer records a player's answer. Accepting the last outstanding
// answer resolves the round immediately, cancelling the timer.
func (s *RoomSession) SubmitAnswer(playerID, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.room.SubmitAnswer(playerID, answer); err != nil {
		return err
	}

	s.queueEvent(domain.NewEvent(domain.EventPlayerSubmitted, s.room.Code, &domain.PlayerSubmittedPayload{
		PlayerID:      playerID,
		AnsweredCount: s.room.AnsweredCount(),
		TotalPlayers:  s.room.PlayerCount(),
	}))

	if s.room.AllAnswered() {
		s.resolveRoundLocked()
	}

	return nil
}

// PlayAgain resets the match back to the lobby (host only, from results)
func (s *RoomSession) PlayAgain(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.room.IsHost(playerID) {
		return domain.ErrNotHost
	}

	if s.room.State != domain.StateResults {
		return domain.ErrInvalidState
	}

	s.room.ResetForRematch()

	s.queueEvent(domain.NewEvent(domain.EventGameReset, s.room.Code, &domain.GameResetPayload{
		Players:  s.room.Roster(),
		Settings: s.room.Settings,
	}))

	return nil
}

// resolveRoundLocked ends the round exactly once (caller must hold mu).
// ResolveRound refuses unless the room is still playing, so the all-answered
// path and the timer-expiry path cannot both score the same round.
func (s *RoomSession) resolveRoundLocked() {
	s.stopTimerLocked()

	outcome, err := s.room.ResolveRound()
	if err != nil {
		return
	}

	payload := &domain.RoundResultsPayload{
		Results:        outcome.Results,
		HerdCount:      outcome.HerdCount,
		Round:          s.room.Round,
		Winner:         outcome.Winner(s.room.Settings.PointsToWin),
		QueenBeeHolder: outcome.QueenBeeHolder,
	}

	if outcome.HerdCount > 0 {
		payload.HerdAnswer = &outcome.HerdAnswer
	}

	if outcome.NewQueenBee != "" {
		if player, err := s.room.GetPlayer(outcome.NewQueenBee); err == nil {
			payload.NewQueenBee = &domain.QueenBeeInfo{ID: player.ID, Name: player.Name}
		}
	}

	s.queueEvent(domain.NewEvent(domain.EventRoundResults, s.room.Code, payload))
}

// startTimerLocked replaces any live timer with a fresh countdown. The timer
// carries the round it was started for so a stale goroutine can never act on
// a later round.
func (s *RoomSession) startTimerLocked() {
	s.stopTimerLocked()

	cancel := make(chan struct{})
	s.timerCancel = cancel

	go s.runTimer(s.room.Settings.TimerSeconds, s.room.Round, cancel)
}

// stopTimerLocked cancels the live timer, if any
func (s *RoomSession) stopTimerLocked() {
	if s.timerCancel != nil {
		close(s.timerCancel)
		s.timerCancel = nil
	}
}

// runTimer counts down once per tick, broadcasting the remaining time, and
// forces round resolution at zero.
func (s *RoomSession) runTimer(seconds, round int, cancel chan struct{}) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	remaining := seconds

	for {
		select {
		case <-cancel:
			return
		case <-s.done:
			return
		case <-ticker.C:
			// The tick may have raced a cancellation; prefer the cancel so no
			// stale broadcast escapes into the results screen
			select {
			case <-cancel:
				return
			default:
			}

			remaining--
			s.queueEvent(domain.NewEvent(domain.EventTimerTick, s.room.Code, &domain.TimerTickPayload{
				TimeLeft: remaining,
			}))

			if remaining <= 0 {
				s.forceResolve(round)
				return
			}
		}
	}
}

// forceResolve is the timer-expiry entry into round resolution. The round
// gate stops a cancelled timer that was already past its tick from resolving
// a round it was never started for; the state gate covers a submission
// resolving the same round first.
func (s *RoomSession) forceResolve(round int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.room.State != domain.StatePlaying || s.room.Round != round {
		return
	}

	s.resolveRoundLocked()
}

// queueEvent adds an event to the broadcast queue
func (s *RoomSession) queueEvent(event *domain.GameEvent) {
	select {
	case s.events <- event:
	default:
		s.logger.Warn("event queue full, dropping event", "type", event.Type, "roomCode", s.room.Code)
	}
}

// eventLoop processes events and broadcasts to clients
func (s *RoomSession) eventLoop() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.events:
			s.broadcastEvent(event)
		}
	}
}

// broadcastEvent sends an event to the room, or to one player if targeted
func (s *RoomSession) broadcastEvent(event *domain.GameEvent) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	if event.PlayerID != "" {
		if client, ok := s.clients[event.PlayerID]; ok {
			if err := client.Send(event); err != nil {
				s.logger.Debug("failed to send to client", "playerID", event.PlayerID, "error", err)
			}
		}
		return
	}

	for playerID, client := range s.clients {
		if err := client.Send(event); err != nil {
			s.logger.Debug("failed to send to client", "playerID", playerID, "error", err)
		}
	}
}

// Close shuts down the session, cancelling any outstanding timer
func (s *RoomSession) Close() {
	s.closeOnce.Do(func() {
		close(s.done)

		s.mu.Lock()
		s.stopTimerLocked()
		s.mu.Unlock()

		s.clientsMu.Lock()
		for _, client := range s.clients {
			client.Close()
		}
		s.clients = make(map[string]ClientConnection)
		s.clientsMu.Unlock()
	})
}
