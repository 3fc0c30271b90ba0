package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Artist is one credited artist on an album. ID is the identifier from
// whichever external catalog the album came from.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Album carries both external identifiers through the catalog migration:
// MBID is the metadata-registry ID, SpotifyAlbumID the legacy catalog ID.
// At least one must be set; the internal ID is the join key for everything
// else and never changes.
type Album struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	MBID           *string        `gorm:"uniqueIndex;column:mbid" json:"mbid,omitempty"`
	SpotifyAlbumID *string        `gorm:"uniqueIndex;column:spotify_album_id" json:"spotify_album_id,omitempty"`
	Title          string         `gorm:"not null" json:"title"`
	Artists        datatypes.JSON `gorm:"column:artists" json:"artists"`
	CoverURL       *string        `gorm:"column:cover_url" json:"cover_url,omitempty"`
	ReleaseYear    *int           `gorm:"column:release_year" json:"release_year,omitempty"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (Album) TableName() string { return "albums" }

func (a *Album) ArtistList() []Artist {
	var artists []Artist
	if len(a.Artists) > 0 {
		_ = json.Unmarshal(a.Artists, &artists)
	}
	if artists == nil {
		artists = []Artist{}
	}
	return artists
}

func ArtistsJSON(artists []Artist) datatypes.JSON {
	if artists == nil {
		artists = []Artist{}
	}
	raw, _ := json.Marshal(artists)
	return datatypes.JSON(raw)
}

// AlbumSummary is the compact album shape embedded in listings.
type AlbumSummary struct {
	ID             uuid.UUID `json:"id"`
	MBID           *string   `json:"mbid,omitempty"`
	SpotifyAlbumID *string   `json:"spotify_album_id,omitempty"`
	Title          string    `json:"title"`
	Artists        []Artist  `json:"artists"`
	CoverURL       *string   `json:"cover_url,omitempty"`
	ReleaseYear    *int      `json:"release_year,omitempty"`
}

func (a *Album) Summary() AlbumSummary {
	return AlbumSummary{
		ID:             a.ID,
		MBID:           a.MBID,
		SpotifyAlbumID: a.SpotifyAlbumID,
		Title:          a.Title,
		Artists:        a.ArtistList(),
		CoverURL:       a.CoverURL,
		ReleaseYear:    a.ReleaseYear,
	}
}
