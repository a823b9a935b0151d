package models

import (
	"fmt"

	"github.com/google/uuid"
)

// GamePlayer is one roster slot of a game. A slot is either a real user
// (UserID set) or an anonymous placeholder reserving capacity without an
// account (PlaceholderTag set). Exactly one of the two is populated.
type GamePlayer struct {
	ID             uint   `gorm:"primaryKey"`
	GameID         uint   `gorm:"not null;index"`
	Position       int    `gorm:"not null"`
	UserID         *uint  `gorm:"index"`
	PlaceholderTag string `gorm:"size:64"`

	User *User `gorm:"foreignKey:UserID"`
}

// IsReal reports whether the slot is occupied by an actual user.
func (p *GamePlayer) IsReal() bool {
	return p.UserID != nil
}

// NewPlaceholder creates an anonymous roster slot. Tags are uuid-based so
// they can never be mistaken for a user identifier.
func NewPlaceholder(position int) GamePlayer {
	return GamePlayer{
		Position:       position,
		PlaceholderTag: fmt.Sprintf("anon-%s", uuid.NewString()),
	}
}
