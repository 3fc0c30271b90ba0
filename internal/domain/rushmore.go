package domain

import (
	"time"

	"github.com/google/uuid"
)

// RushmoreSlot is one of a user's four showcase albums, keyed by
// (user, slot) with slot in 1..4.
type RushmoreSlot struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"not null;uniqueIndex:idx_rushmore_user_slot" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Slot      int       `gorm:"not null;uniqueIndex:idx_rushmore_user_slot" json:"slot"`
	AlbumID   uuid.UUID `gorm:"not null" json:"album_id"`
	Album     *Album    `gorm:"constraint:OnDelete:CASCADE;foreignKey:AlbumID;references:ID" json:"album,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (RushmoreSlot) TableName() string { return "rushmore_slots" }
