package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to a post; ParentID models one level of reply nesting.
// Listings treat a post's comments as a flat chronological list.
type Comment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID  `gorm:"not null;index" json:"post_id"`
	Post      *Post      `gorm:"constraint:OnDelete:CASCADE;foreignKey:PostID;references:ID" json:"-"`
	UserID    uuid.UUID  `gorm:"not null" json:"user_id"`
	User      *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ParentID  *uuid.UUID `gorm:"column:parent_id" json:"parent_id,omitempty"`
	Body      string     `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (Comment) TableName() string { return "comments" }
