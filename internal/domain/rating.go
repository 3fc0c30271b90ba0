package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a user's single mutable score for an album, 1..10. The
// (user, album) pair is unique; re-rating overwrites in place.
type Rating struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"not null;uniqueIndex:idx_ratings_user_album" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	AlbumID   uuid.UUID `gorm:"not null;uniqueIndex:idx_ratings_user_album;index" json:"album_id"`
	Album     *Album    `gorm:"constraint:OnDelete:CASCADE;foreignKey:AlbumID;references:ID" json:"-"`
	Score     int       `gorm:"not null" json:"score"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Rating) TableName() string { return "ratings" }
