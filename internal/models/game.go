package models

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrGameFull is returned when joining a game at capacity.
	ErrGameFull = errors.New("game is full")
	// ErrAlreadyJoined is returned when a user joins a game twice.
	ErrAlreadyJoined = errors.New("already joined")
	// ErrNotInGame is returned when leaving a game the user never joined.
	ErrNotInGame = errors.New("you are not in this game")
	// ErrInvalidPlaceholders is returned when the requested placeholder count
	// doesn't fit the roster.
	ErrInvalidPlaceholders = errors.New("invalid pre-filled players count")
)

// Game is a scheduled pickup event with a capacity and an ordered roster.
// The venue reference is optional; venue-less games carry a free-form Location.
type Game struct {
	gorm.Model
	VenueID     *uint  `gorm:"index"`
	Date        string `gorm:"size:10;not null;index"` // "YYYY-MM-DD"
	StartTime   string `gorm:"size:5;not null"`        // "HH:MM"
	EndTime     string `gorm:"size:5;not null"`        // "HH:MM"
	MaxPlayers  int    `gorm:"not null"`
	SkillLevel  string `gorm:"size:50;index"`
	Location    string `gorm:"size:255"`
	Notes       string
	CreatedByID uint `gorm:"not null;index"`

	Venue     *Venue `gorm:"foreignKey:VenueID"`
	CreatedBy *User  `gorm:"foreignKey:CreatedByID"`

	Players []GamePlayer `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
}

// NewRoster builds the initial roster: the creator in slot 0 followed by
// preFilled placeholders. preFilled must leave room for at least the creator,
// i.e. 0 <= preFilled < maxPlayers.
func NewRoster(creatorID uint, preFilled, maxPlayers int) ([]GamePlayer, error) {
	if preFilled < 0 || preFilled >= maxPlayers {
		return nil, ErrInvalidPlaceholders
	}
	players := make([]GamePlayer, 0, preFilled+1)
	players = append(players, GamePlayer{Position: 0, UserID: &creatorID})
	for i := 0; i < preFilled; i++ {
		players = append(players, NewPlaceholder(i+1))
	}
	return players, nil
}

// TotalPlayers counts every roster slot, real and placeholder.
func (g *Game) TotalPlayers() int {
	return len(g.Players)
}

// RealPlayerCount counts only slots held by actual users.
func (g *Game) RealPlayerCount() int {
	count := 0
	for i := range g.Players {
		if g.Players[i].IsReal() {
			count++
		}
	}
	return count
}

// HasPlayer reports whether the user already holds a roster slot.
func (g *Game) HasPlayer(userID uint) bool {
	for i := range g.Players {
		if g.Players[i].UserID != nil && *g.Players[i].UserID == userID {
			return true
		}
	}
	return false
}

// AddPlayer appends the user to the roster. Fails when the game is at
// capacity or the user already joined.
func (g *Game) AddPlayer(userID uint) error {
	if len(g.Players) >= g.MaxPlayers {
		return ErrGameFull
	}
	if g.HasPlayer(userID) {
		return ErrAlreadyJoined
	}
	g.Players = append(g.Players, GamePlayer{
		GameID:   g.ID,
		Position: g.nextPosition(),
		UserID:   &userID,
	})
	return nil
}

// RemovePlayer removes the user's slot from the roster.
func (g *Game) RemovePlayer(userID uint) error {
	for i := range g.Players {
		if g.Players[i].UserID != nil && *g.Players[i].UserID == userID {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			return nil
		}
	}
	return ErrNotInGame
}

// SetPlaceholders resizes the anonymous part of the roster to count slots,
// preserving every real player in order. Placeholder tags are regenerated.
func (g *Game) SetPlaceholders(count int) error {
	real := make([]GamePlayer, 0, len(g.Players))
	for i := range g.Players {
		if g.Players[i].IsReal() {
			real = append(real, g.Players[i])
		}
	}
	if count < 0 || count > g.MaxPlayers-len(real) {
		return ErrInvalidPlaceholders
	}
	players := real
	for i := 0; i < count; i++ {
		p := NewPlaceholder(0)
		p.GameID = g.ID
		players = append(players, p)
	}
	for i := range players {
		players[i].Position = i
	}
	g.Players = players
	return nil
}

func (g *Game) nextPosition() int {
	max := -1
	for i := range g.Players {
		if g.Players[i].Position > max {
			max = g.Players[i].Position
		}
	}
	return max + 1
}
