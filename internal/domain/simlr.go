package domain

import (
	"time"

	"github.com/google/uuid"
)

// SimlrEdge is a directed similarity link between two albums. The ordered
// (source, target) pair is unique and self-loops are rejected before the
// write path is reached. Edges have no mutable fields; repeated submissions
// only add or update reasons.
type SimlrEdge struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SourceAlbumID uuid.UUID `gorm:"not null;uniqueIndex:idx_simlr_edges_pair;index" json:"source_album_id"`
	SourceAlbum   *Album    `gorm:"constraint:OnDelete:CASCADE;foreignKey:SourceAlbumID;references:ID" json:"-"`
	TargetAlbumID uuid.UUID `gorm:"not null;uniqueIndex:idx_simlr_edges_pair" json:"target_album_id"`
	TargetAlbum   *Album    `gorm:"constraint:OnDelete:CASCADE;foreignKey:TargetAlbumID;references:ID" json:"-"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (SimlrEdge) TableName() string { return "simlr_edges" }

// SimlrReason is one user's justification text on an edge, unique per
// (edge, user); re-submitting replaces the text.
type SimlrReason struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EdgeID    uuid.UUID  `gorm:"not null;uniqueIndex:idx_simlr_reasons_edge_user;index" json:"edge_id"`
	Edge      *SimlrEdge `gorm:"constraint:OnDelete:CASCADE;foreignKey:EdgeID;references:ID" json:"-"`
	UserID    uuid.UUID  `gorm:"not null;uniqueIndex:idx_simlr_reasons_edge_user" json:"user_id"`
	User      *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Reason    string     `gorm:"type:text;not null" json:"reason"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (SimlrReason) TableName() string { return "simlr_reasons" }
