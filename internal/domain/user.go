package domain

import (
	"time"

	"github.com/google/uuid"
)

// User rows support passwordless/OAuth-only accounts: email and password hash
// are both nullable, username is optional until the user claims one.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email        *string    `gorm:"uniqueIndex;column:email" json:"email,omitempty"`
	PasswordHash *string    `gorm:"column:password_hash" json:"-"`
	Username     *string    `gorm:"uniqueIndex;column:username" json:"username,omitempty"`
	DisplayName  *string    `gorm:"column:display_name" json:"display_name,omitempty"`
	AvatarURL    *string    `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// PublicUser is the author shape embedded in posts, comments and reasons.
type PublicUser struct {
	ID          uuid.UUID `json:"id"`
	Username    *string   `json:"username"`
	DisplayName *string   `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url"`
}

func (u *User) Public() PublicUser {
	if u == nil {
		return PublicUser{}
	}
	return PublicUser{ID: u.ID, Username: u.Username, DisplayName: u.DisplayName, AvatarURL: u.AvatarURL}
}
