package app

import (
	"github.com/simlrfm/simlr-backend/internal/clients/coverart"
	"github.com/simlrfm/simlr-backend/internal/clients/musicbrainz"
	"github.com/simlrfm/simlr-backend/internal/clients/spotify"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

type Clients struct {
	MusicBrainz musicbrainz.Client
	CoverArt    coverart.Client
	Spotify     spotify.Client
}

func wireClients(log *logger.Logger) Clients {
	log.Info("Wiring clients...")
	return Clients{
		MusicBrainz: musicbrainz.New(log, musicbrainz.ConfigFromEnv(log)),
		CoverArt:    coverart.New(log, coverart.ConfigFromEnv(log)),
		Spotify:     spotify.New(log, spotify.ConfigFromEnv(log)),
	}
}
