package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func realSlot(userID uint, position int) GamePlayer {
	id := userID
	return GamePlayer{Position: position, UserID: &id}
}

func TestNewRoster(t *testing.T) {
	t.Run("creator plus placeholders", func(t *testing.T) {
		players, err := NewRoster(42, 3, 10)
		require.NoError(t, err)
		require.Len(t, players, 4)

		// Creator holds the first slot.
		require.NotNil(t, players[0].UserID)
		assert.Equal(t, uint(42), *players[0].UserID)
		assert.Equal(t, 0, players[0].Position)

		for i, p := range players[1:] {
			assert.False(t, p.IsReal())
			assert.True(t, strings.HasPrefix(p.PlaceholderTag, "anon-"))
			assert.Equal(t, i+1, p.Position)
		}
	})

	t.Run("no placeholders", func(t *testing.T) {
		players, err := NewRoster(42, 0, 2)
		require.NoError(t, err)
		assert.Len(t, players, 1)
	})

	t.Run("negative pre-filled count rejected", func(t *testing.T) {
		_, err := NewRoster(42, -1, 10)
		assert.ErrorIs(t, err, ErrInvalidPlaceholders)
	})

	t.Run("pre-filled count must leave room for the creator", func(t *testing.T) {
		_, err := NewRoster(42, 10, 10)
		assert.ErrorIs(t, err, ErrInvalidPlaceholders)
	})
}

func TestGame_AddPlayer(t *testing.T) {
	t.Run("appends at the end", func(t *testing.T) {
		game := Game{MaxPlayers: 3, Players: []GamePlayer{realSlot(1, 0)}}

		require.NoError(t, game.AddPlayer(2))
		require.Len(t, game.Players, 2)
		assert.Equal(t, uint(2), *game.Players[1].UserID)
		assert.Equal(t, 2, game.TotalPlayers())
	})

	t.Run("full game rejected", func(t *testing.T) {
		game := Game{MaxPlayers: 2, Players: []GamePlayer{realSlot(1, 0), realSlot(2, 1)}}
		assert.ErrorIs(t, game.AddPlayer(3), ErrGameFull)
	})

	t.Run("placeholders count against capacity", func(t *testing.T) {
		players, err := NewRoster(1, 2, 3)
		require.NoError(t, err)
		game := Game{MaxPlayers: 3, Players: players}
		assert.ErrorIs(t, game.AddPlayer(2), ErrGameFull)
	})

	t.Run("duplicate join rejected", func(t *testing.T) {
		game := Game{MaxPlayers: 5, Players: []GamePlayer{realSlot(1, 0)}}
		assert.ErrorIs(t, game.AddPlayer(1), ErrAlreadyJoined)
	})
}

func TestGame_RemovePlayer(t *testing.T) {
	t.Run("removes the user's slot", func(t *testing.T) {
		game := Game{MaxPlayers: 5, Players: []GamePlayer{realSlot(1, 0), realSlot(2, 1)}}

		require.NoError(t, game.RemovePlayer(2))
		require.Len(t, game.Players, 1)
		assert.Equal(t, uint(1), *game.Players[0].UserID)
	})

	t.Run("absent user rejected", func(t *testing.T) {
		game := Game{MaxPlayers: 5, Players: []GamePlayer{realSlot(1, 0)}}
		assert.ErrorIs(t, game.RemovePlayer(9), ErrNotInGame)
	})
}

func TestGame_SetPlaceholders(t *testing.T) {
	t.Run("shrinking preserves real players", func(t *testing.T) {
		players, err := NewRoster(42, 3, 10)
		require.NoError(t, err)
		game := Game{MaxPlayers: 10, Players: players}

		require.NoError(t, game.SetPlaceholders(1))
		require.Len(t, game.Players, 2)
		require.NotNil(t, game.Players[0].UserID)
		assert.Equal(t, uint(42), *game.Players[0].UserID)
		assert.False(t, game.Players[1].IsReal())
	})

	t.Run("positions are compacted", func(t *testing.T) {
		game := Game{MaxPlayers: 10, Players: []GamePlayer{realSlot(1, 0), NewPlaceholder(1), realSlot(2, 2)}}

		require.NoError(t, game.SetPlaceholders(2))
		require.Len(t, game.Players, 4)
		for i, p := range game.Players {
			assert.Equal(t, i, p.Position)
		}
		// Real players stay in front, in order.
		assert.Equal(t, uint(1), *game.Players[0].UserID)
		assert.Equal(t, uint(2), *game.Players[1].UserID)
	})

	t.Run("count exceeding free capacity rejected", func(t *testing.T) {
		game := Game{MaxPlayers: 3, Players: []GamePlayer{realSlot(1, 0), realSlot(2, 1)}}
		assert.ErrorIs(t, game.SetPlaceholders(2), ErrInvalidPlaceholders)
	})

	t.Run("negative count rejected", func(t *testing.T) {
		game := Game{MaxPlayers: 3, Players: []GamePlayer{realSlot(1, 0)}}
		assert.ErrorIs(t, game.SetPlaceholders(-1), ErrInvalidPlaceholders)
	})

	t.Run("zero clears all placeholders", func(t *testing.T) {
		players, err := NewRoster(42, 4, 10)
		require.NoError(t, err)
		game := Game{MaxPlayers: 10, Players: players}

		require.NoError(t, game.SetPlaceholders(0))
		require.Len(t, game.Players, 1)
		assert.True(t, game.Players[0].IsReal())
	})
}

func TestGame_RealPlayerCount(t *testing.T) {
	players, err := NewRoster(42, 3, 10)
	require.NoError(t, err)
	game := Game{MaxPlayers: 10, Players: players}

	assert.Equal(t, 1, game.RealPlayerCount())
	assert.Equal(t, 4, game.TotalPlayers())

	require.NoError(t, game.AddPlayer(7))
	assert.Equal(t, 2, game.RealPlayerCount())
	assert.Equal(t, 5, game.TotalPlayers())
}

func TestNewPlaceholder_TagFormat(t *testing.T) {
	a := NewPlaceholder(0)
	b := NewPlaceholder(1)

	assert.True(t, strings.HasPrefix(a.PlaceholderTag, "anon-"))
	assert.NotEqual(t, a.PlaceholderTag, b.PlaceholderTag)
	assert.False(t, a.IsReal())
}
