package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hivemind/internal/domain"
)

func TestPickAppearancePrefersUnused(t *testing.T) {
	room := domain.NewRoom("ABCD", domain.DefaultSettings())

	_, err := room.AddPlayer("a", "Ann", Avatars[0], Colors[0])
	require.NoError(t, err)

	avatar, color := PickAppearance(room)
	assert.Equal(t, Avatars[1], avatar, "first unused avatar in pool order")
	assert.Equal(t, Colors[1], color, "first unused color in pool order")
}

func TestPickAppearanceEmptyRoom(t *testing.T) {
	room := domain.NewRoom("ABCD", domain.DefaultSettings())

	avatar, color := PickAppearance(room)
	assert.Equal(t, Avatars[0], avatar)
	assert.Equal(t, Colors[0], color)
}

func TestPickAppearanceUniqueWhilePoolLasts(t *testing.T) {
	room := domain.NewRoom("ABCD", domain.DefaultSettings())

	seenAvatars := make(map[string]bool)
	seenColors := make(map[string]bool)

	for i := 0; i < len(Avatars); i++ {
		avatar, color := PickAppearance(room)
		assert.False(t, seenAvatars[avatar])
		assert.False(t, seenColors[color])
		seenAvatars[avatar] = true
		seenColors[color] = true

		_, err := room.AddPlayer(fmt.Sprintf("p%d", i), "Player", avatar, color)
		require.NoError(t, err)
	}
}

func TestPickAppearanceExhaustedFallsBack(t *testing.T) {
	room := domain.NewRoom("ABCD", domain.DefaultSettings())

	for i := 0; i < len(Avatars); i++ {
		_, err := room.AddPlayer(fmt.Sprintf("p%d", i), "Player", Avatars[i], Colors[i])
		require.NoError(t, err)
	}

	// Pool exhausted: still hands out a valid pair, duplicates allowed
	avatar, color := PickAppearance(room)
	assert.Contains(t, Avatars, avatar)
	assert.Contains(t, Colors, color)
}
