package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hivemind/internal/domain"
)

func newTestRegistry(t *testing.T) *RoomRegistry {
	t.Helper()
	registry := NewRoomRegistry(NewPromptBank(), domain.DefaultSettings(), testLogger())
	t.Cleanup(registry.Close)
	return registry
}

func TestCreateRoomCodes(t *testing.T) {
	registry := newTestRegistry(t)

	codes := make(map[string]bool)
	for i := 0; i < 50; i++ {
		session, err := registry.CreateRoom()
		require.NoError(t, err)

		code := session.Code()
		assert.Len(t, code, RoomCodeLength)
		for _, c := range code {
			assert.Contains(t, RoomCodeChars, string(c), "codes only use the disambiguated alphabet")
		}

		assert.False(t, codes[code], "codes are unique")
		codes[code] = true
	}

	assert.Equal(t, 50, registry.RoomCount())
}

func TestLookupCaseInsensitive(t *testing.T) {
	registry := newTestRegistry(t)

	session, err := registry.CreateRoom()
	require.NoError(t, err)

	found, err := registry.Lookup(strings.ToLower(session.Code()))
	require.NoError(t, err)
	assert.Same(t, session, found)
}

func TestLookupUnknownCode(t *testing.T) {
	registry := newTestRegistry(t)

	_, err := registry.Lookup("ZZZZ")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestRemoveDropsRoom(t *testing.T) {
	registry := newTestRegistry(t)

	session, err := registry.CreateRoom()
	require.NoError(t, err)
	require.Equal(t, 1, registry.RoomCount())

	registry.Remove(session.Code())

	assert.Equal(t, 0, registry.RoomCount())
	_, err = registry.Lookup(session.Code())
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	// Removing twice is harmless
	registry.Remove(session.Code())
}

func TestTotalPlayerCount(t *testing.T) {
	registry := newTestRegistry(t)

	first, err := registry.CreateRoom()
	require.NoError(t, err)
	second, err := registry.CreateRoom()
	require.NoError(t, err)

	require.NoError(t, first.Join("a", "Ann", nil))
	require.NoError(t, first.Join("b", "Ben", nil))
	require.NoError(t, second.Join("c", "Cara", nil))

	assert.Equal(t, 3, registry.TotalPlayerCount())
}

func TestCreateRoomUsesDefaults(t *testing.T) {
	defaults := domain.Settings{TimerSeconds: 60, PointsToWin: 5}
	registry := NewRoomRegistry(NewPromptBank(), defaults, testLogger())
	t.Cleanup(registry.Close)

	session, err := registry.CreateRoom()
	require.NoError(t, err)

	require.NoError(t, session.Join("a", "Ann", nil))
	waitFor(t, func() bool { return session.PlayerCount() == 1 }, "player joined")

	session.mu.Lock()
	defer session.mu.Unlock()
	assert.Equal(t, defaults, session.room.Settings)
}
