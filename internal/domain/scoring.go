package domain

import (
	"math/rand"
	"strings"
)

// NoAnswerPlaceholder is shown for players who never answered the prompt
const NoAnswerPlaceholder = "(no answer)"

// RoundResult is one player's line in the round results
type RoundResult struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Answer   string `json:"answer"`
	GotPoint bool   `json:"gotPoint"`
	GotQueen bool   `json:"gotQueen"`
	HasQueen bool   `json:"hasQueen"`
	Score    int    `json:"score"`
}

// RoundOutcome is the full result of scoring one round
type RoundOutcome struct {
	Results        []RoundResult
	HerdAnswer     string
	HerdCount      int
	NewQueenBee    string // player who picked up the Queen Bee this round, if any
	QueenBeeHolder string // current holder after this round
}

// Winner returns the first player in results order who has reached the score
// threshold and is not holding the Queen Bee, or nil if nobody qualifies.
// Holding the Queen Bee blocks victory until it transfers to someone else.
func (o *RoundOutcome) Winner(pointsToWin int) *RoundResult {
	for i := range o.Results {
		r := &o.Results[i]
		if r.Score >= pointsToWin && r.ID != o.QueenBeeHolder {
			return r
		}
	}
	return nil
}

// ResolveRound scores the current round and moves the room to results.
// It is state-gated so that the two triggers racing to end a round (timer
// expiry and the last answer arriving) resolve exactly once.
func (r *Room) ResolveRound() (*RoundOutcome, error) {
	if r.State != StatePlaying {
		return nil, ErrInvalidState
	}
	r.State = StateResults

	// Group players by normalized answer, preserving first-seen order so the
	// herd tie-break is by insertion order of the grouping.
	groups := make(map[string][]string)
	seen := make([]string, 0)

	for _, p := range r.PlayersInOrder() {
		if !p.HasAnswered() {
			continue
		}
		normalized := strings.ToLower(strings.TrimSpace(p.CurrentAnswer))
		if _, ok := groups[normalized]; !ok {
			seen = append(seen, normalized)
		}
		groups[normalized] = append(groups[normalized], p.ID)
	}

	// The herd is the largest group; first-seen wins ties
	herdAnswer := ""
	herdCount := 0
	for _, answer := range seen {
		if len(groups[answer]) > herdCount {
			herdCount = len(groups[answer])
			herdAnswer = answer
		}
	}

	// Singleton answers are Queen Bee candidates; one of them (picked at
	// random) takes the Queen Bee from the previous holder. With no
	// singletons the holder is unchanged.
	candidates := make([]string, 0)
	for _, answer := range seen {
		if len(groups[answer]) == 1 {
			candidates = append(candidates, groups[answer][0])
		}
	}

	newQueenBee := ""
	if len(candidates) > 0 {
		newQueenBee = candidates[rand.Intn(len(candidates))]
		r.QueenBeeID = newQueenBee
	}

	// Award points and build results for every player, answered or not.
	// A herd of one means everyone disagreed; nobody scores.
	results := make([]RoundResult, 0, len(r.JoinOrder))
	for _, p := range r.PlayersInOrder() {
		normalized := strings.ToLower(strings.TrimSpace(p.CurrentAnswer))
		gotPoint := herdCount > 1 && p.HasAnswered() && normalized == herdAnswer

		if gotPoint {
			p.Score++
		}

		answer := p.CurrentAnswer
		if !p.HasAnswered() {
			answer = NoAnswerPlaceholder
		}

		results = append(results, RoundResult{
			ID:       p.ID,
			Name:     p.Name,
			Answer:   answer,
			GotPoint: gotPoint,
			GotQueen: p.ID == newQueenBee,
			HasQueen: p.ID == r.QueenBeeID,
			Score:    p.Score,
		})
	}

	return &RoundOutcome{
		Results:        results,
		HerdAnswer:     herdAnswer,
		HerdCount:      herdCount,
		NewQueenBee:    newQueenBee,
		QueenBeeHolder: r.QueenBeeID,
	}, nil
}
