package domain

import (
	"time"

	"github.com/google/uuid"
)

// Post is a discussion thread on an album.
type Post struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AlbumID   uuid.UUID `gorm:"not null;index" json:"album_id"`
	Album     *Album    `gorm:"constraint:OnDelete:CASCADE;foreignKey:AlbumID;references:ID" json:"-"`
	UserID    uuid.UUID `gorm:"not null" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Post) TableName() string { return "posts" }
