package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoom(t *testing.T, names ...string) *Room {
	t.Helper()

	room := NewRoom("ABCD", DefaultSettings())
	for i, name := range names {
		_, err := room.AddPlayer(playerID(i), name, "🦊", "#FF6B6B")
		require.NoError(t, err)
	}
	return room
}

func playerID(i int) string {
	return string(rune('a' + i))
}

func startRound(t *testing.T, room *Room, answers map[string]string) {
	t.Helper()

	require.NoError(t, room.BeginRound("Name a popular pizza topping"))
	for id, answer := range answers {
		require.NoError(t, room.SubmitAnswer(id, answer))
	}
}

func TestResolveRoundHerdScoring(t *testing.T) {
	room := newTestRoom(t, "Ann", "Ben", "Cara")
	startRound(t, room, map[string]string{
		"a": "pizza",
		"b": "Pizza ",
		"c": "salad",
	})

	outcome, err := room.ResolveRound()
	require.NoError(t, err)

	assert.Equal(t, "pizza", outcome.HerdAnswer)
	assert.Equal(t, 2, outcome.HerdCount)
	assert.Equal(t, StateResults, room.State)

	require.Len(t, outcome.Results, 3)
	assert.True(t, outcome.Results[0].GotPoint)
	assert.True(t, outcome.Results[1].GotPoint)
	assert.False(t, outcome.Results[2].GotPoint)
	assert.Equal(t, 1, outcome.Results[0].Score)
	assert.Equal(t, 1, outcome.Results[1].Score)
	assert.Equal(t, 0, outcome.Results[2].Score)

	// The lone salad answer picks up the Queen Bee
	assert.Equal(t, "c", outcome.NewQueenBee)
	assert.Equal(t, "c", outcome.QueenBeeHolder)
	assert.True(t, outcome.Results[2].GotQueen)
}

func TestResolveRoundAllUniqueAnswers(t *testing.T) {
	room := newTestRoom(t, "Ann", "Ben")
	startRound(t, room, map[string]string{
		"a": "pepperoni",
		"b": "mushroom",
	})

	outcome, err := room.ResolveRound()
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.HerdCount)
	for _, result := range outcome.Results {
		assert.False(t, result.GotPoint, "nobody scores when everyone disagrees")
		assert.Equal(t, 0, result.Score)
	}

	// Exactly one of the two becomes the Queen Bee
	assert.Contains(t, []string{"a", "b"}, outcome.NewQueenBee)
	assert.Equal(t, outcome.NewQueenBee, outcome.QueenBeeHolder)
}

func TestResolveRoundPointsSumMatchesHerd(t *testing.T) {
	tests := []struct {
		name      string
		answers   map[string]string
		herdCount int
		points    int
	}{
		{
			name:      "clear majority",
			answers:   map[string]string{"a": "dog", "b": "dog", "c": "dog", "d": "cat"},
			herdCount: 3,
			points:    3,
		},
		{
			name:      "tied groups",
			answers:   map[string]string{"a": "dog", "b": "dog", "c": "cat", "d": "cat"},
			herdCount: 2,
			points:    2,
		},
		{
			name:      "all unique",
			answers:   map[string]string{"a": "dog", "b": "cat", "c": "fish", "d": "bird"},
			herdCount: 1,
			points:    0,
		},
		{
			name:      "some missing answers",
			answers:   map[string]string{"a": "dog", "b": "dog"},
			herdCount: 2,
			points:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := newTestRoom(t, "Ann", "Ben", "Cara", "Dan")
			startRound(t, room, tt.answers)

			outcome, err := room.ResolveRound()
			require.NoError(t, err)

			assert.Equal(t, tt.herdCount, outcome.HerdCount)

			points := 0
			for _, result := range outcome.Results {
				if result.GotPoint {
					points++
				}
			}
			assert.Equal(t, tt.points, points)
		})
	}
}

func TestResolveRoundQueenBeeUnchangedWithoutSingletons(t *testing.T) {
	room := newTestRoom(t, "Ann", "Ben", "Cara")

	// Round one: Ben's unique answer earns him the Queen Bee
	startRound(t, room, map[string]string{"a": "dog", "b": "ferret", "c": "dog"})
	outcome, err := room.ResolveRound()
	require.NoError(t, err)
	require.Equal(t, "b", outcome.QueenBeeHolder)

	// Round two: everyone agrees, so the Queen Bee stays put
	startRound(t, room, map[string]string{"a": "cat", "b": "cat", "c": "cat"})
	outcome, err = room.ResolveRound()
	require.NoError(t, err)

	assert.Empty(t, outcome.NewQueenBee)
	assert.Equal(t, "b", outcome.QueenBeeHolder)
	assert.Equal(t, "b", room.QueenBeeID)
}

func TestResolveRoundNoAnswers(t *testing.T) {
	room := newTestRoom(t, "Ann", "Ben")
	startRound(t, room, nil)

	outcome, err := room.ResolveRound()
	require.NoError(t, err)

	assert.Equal(t, 0, outcome.HerdCount)
	assert.Empty(t, outcome.HerdAnswer)
	assert.Empty(t, outcome.NewQueenBee)
	for _, result := range outcome.Results {
		assert.Equal(t, NoAnswerPlaceholder, result.Answer)
		assert.False(t, result.GotPoint)
	}
}

func TestResolveRoundOnlyOnce(t *testing.T) {
	room := newTestRoom(t, "Ann", "Ben")
	startRound(t, room, map[string]string{"a": "dog", "b": "dog"})

	_, err := room.ResolveRound()
	require.NoError(t, err)

	_, err = room.ResolveRound()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestWinnerBlockedByQueenBee(t *testing.T) {
	outcome := &RoundOutcome{
		Results: []RoundResult{
			{ID: "a", Name: "Ann", Score: 10},
			{ID: "b", Name: "Ben", Score: 3},
		},
		QueenBeeHolder: "a",
	}

	// Ann has the points but holds the Queen Bee, so nobody wins
	assert.Nil(t, outcome.Winner(10))

	// Once the Queen Bee moves on, Ann wins
	outcome.QueenBeeHolder = "b"
	winner := outcome.Winner(10)
	require.NotNil(t, winner)
	assert.Equal(t, "a", winner.ID)
}

func TestWinnerAtOnePointThreshold(t *testing.T) {
	room := newTestRoom(t, "Ann", "Ben", "Cara")
	room.Settings.PointsToWin = 1

	startRound(t, room, map[string]string{"a": "dog", "b": "dog", "c": "cat"})
	outcome, err := room.ResolveRound()
	require.NoError(t, err)

	winner := outcome.Winner(room.Settings.PointsToWin)
	require.NotNil(t, winner)
	assert.Equal(t, "a", winner.ID, "first qualifying player in results order wins")
	assert.Equal(t, 1, winner.Score)
}
