package domain

import (
	"time"

	"github.com/google/uuid"
)

// VoteEntityType is the closed union of votable entities. Votes reference
// their target by (type, id) rather than a foreign key, so the application
// layer owns the per-variant existence check.
type VoteEntityType string

const (
	EntitySimlrEdge VoteEntityType = "SIMLR_EDGE"
	EntityPost      VoteEntityType = "POST"
	EntityComment   VoteEntityType = "COMMENT"
)

func (t VoteEntityType) Valid() bool {
	switch t {
	case EntitySimlrEdge, EntityPost, EntityComment:
		return true
	}
	return false
}

// Vote is one user's +1/-1 on one entity. The (user, type, entity) triple is
// unique; same-direction re-votes delete the row (toggle off), opposite votes
// overwrite it.
type Vote struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"not null;uniqueIndex:idx_votes_user_entity" json:"user_id"`
	User       *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	EntityType VoteEntityType `gorm:"not null;uniqueIndex:idx_votes_user_entity;index:idx_votes_entity" json:"entity_type"`
	EntityID   uuid.UUID      `gorm:"not null;uniqueIndex:idx_votes_user_entity;index:idx_votes_entity" json:"entity_id"`
	Value      int            `gorm:"not null" json:"value"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (Vote) TableName() string { return "votes" }
