package domain

// State represents a room's position in the game flow
type State string

const (
	StateLobby   State = "LOBBY"   // Waiting for players to join
	StatePlaying State = "PLAYING" // Round in progress, answers racing the timer
	StateResults State = "RESULTS" // Round scored, waiting on the host
)

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// CanTransitionTo checks if a transition from current state to target state is valid
func (s State) CanTransitionTo(target State) bool {
	validTransitions := map[State][]State{
		StateLobby:   {StatePlaying},
		StatePlaying: {StateResults},
		StateResults: {StatePlaying, StateLobby}, // Next round or play again
	}

	allowed, ok := validTransitions[s]
	if !ok {
		return false
	}

	for _, state := range allowed {
		if state == target {
			return true
		}
	}
	return false
}
