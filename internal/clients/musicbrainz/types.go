package musicbrainz

import (
	"strconv"

	types "github.com/simlrfm/simlr-backend/internal/domain"
)

// ReleaseGroup is the mapped shape handed to services. FirstReleaseDate keeps
// the registry's raw string; ReleaseYear extracts the year when present.
type ReleaseGroup struct {
	MBID             string
	Title            string
	Artists          []types.Artist
	FirstReleaseDate string
}

func (rg *ReleaseGroup) ReleaseYear() *int {
	if len(rg.FirstReleaseDate) < 4 {
		return nil
	}
	year, err := strconv.Atoi(rg.FirstReleaseDate[:4])
	if err != nil {
		return nil
	}
	return &year
}

// --- wire types ---

type wireArtistCredit struct {
	Name   string `json:"name"`
	Artist struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"artist"`
}

type wireReleaseGroup struct {
	ID               string             `json:"id"`
	Title            string             `json:"title"`
	FirstReleaseDate string             `json:"first-release-date"`
	ArtistCredit     []wireArtistCredit `json:"artist-credit"`
}

type wireSearchResponse struct {
	ReleaseGroups []wireReleaseGroup `json:"release-groups"`
}

func mapReleaseGroup(w wireReleaseGroup) ReleaseGroup {
	artists := make([]types.Artist, 0, len(w.ArtistCredit))
	for _, ac := range w.ArtistCredit {
		name := ac.Name
		if name == "" {
			name = ac.Artist.Name
		}
		artists = append(artists, types.Artist{ID: ac.Artist.ID, Name: name})
	}
	return ReleaseGroup{
		MBID:             w.ID,
		Title:            w.Title,
		Artists:          artists,
		FirstReleaseDate: w.FirstReleaseDate,
	}
}
