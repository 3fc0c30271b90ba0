package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/simlrfm/simlr-backend/internal/clients/coverart"
	"github.com/simlrfm/simlr-backend/internal/clients/musicbrainz"
	"github.com/simlrfm/simlr-backend/internal/clients/spotify"
	"github.com/simlrfm/simlr-backend/internal/data/repos"
	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/pkg/apperr"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

// SearchResult is one album hit from the metadata registry, with the cover
// probe already resolved.
type SearchResult struct {
	MBID        string         `json:"mbid"`
	Title       string         `json:"title"`
	Artists     []types.Artist `json:"artists"`
	ReleaseYear *int           `json:"release_year,omitempty"`
	CoverURL    *string        `json:"cover_url,omitempty"`
}

type AlbumService interface {
	// Resolve turns an external identifier into the stored album. Registry
	// IDs are fetched and upserted on first sight; legacy catalog IDs only
	// resolve against rows that already exist locally.
	Resolve(ctx context.Context, identifier string) (*types.Album, error)
	Upsert(ctx context.Context, identifier string) (*types.Album, error)
	GetByID(ctx context.Context, albumID uuid.UUID) (*types.Album, error)
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
	SearchSpotify(ctx context.Context, query string, limit int) ([]spotify.Album, error)
}

type albumService struct {
	db        *gorm.DB
	log       *logger.Logger
	albumRepo repos.AlbumRepo
	mbClient  musicbrainz.Client
	caClient  coverart.Client
	spClient  spotify.Client
}

func NewAlbumService(
	db *gorm.DB,
	baseLog *logger.Logger,
	albumRepo repos.AlbumRepo,
	mbClient musicbrainz.Client,
	caClient coverart.Client,
	spClient spotify.Client,
) AlbumService {
	serviceLog := baseLog.With("service", "AlbumService")
	return &albumService{
		db:        db,
		log:       serviceLog,
		albumRepo: albumRepo,
		mbClient:  mbClient,
		caClient:  caClient,
		spClient:  spClient,
	}
}

func (s *albumService) Resolve(ctx context.Context, identifier string) (*types.Album, error) {
	ref := types.ParseAlbumRef(identifier)
	switch ref.Kind {
	case types.RefMBID:
		albums, err := s.albumRepo.GetByMBIDs(ctx, nil, []string{ref.Value})
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if len(albums) > 0 {
			return albums[0], nil
		}
		return s.fetchAndUpsertByMBID(ctx, ref.Value)

	case types.RefSpotifyID:
		albums, err := s.albumRepo.GetBySpotifyIDs(ctx, nil, []string{ref.Value})
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if len(albums) == 0 {
			return nil, apperr.NotFound("album_not_found", "no album with that catalog id")
		}
		return albums[0], nil

	default:
		return nil, apperr.NotFound("invalid_album_id", "identifier is neither a release-group id nor a catalog id")
	}
}

// Upsert force-refreshes metadata for registry IDs. Legacy catalog IDs are
// fetched from the catalog when credentials are configured, otherwise they
// resolve like Resolve does.
func (s *albumService) Upsert(ctx context.Context, identifier string) (*types.Album, error) {
	ref := types.ParseAlbumRef(identifier)
	switch ref.Kind {
	case types.RefMBID:
		return s.fetchAndUpsertByMBID(ctx, ref.Value)

	case types.RefSpotifyID:
		if !s.spClient.HasCredentials() {
			return s.Resolve(ctx, identifier)
		}
		spAlbum, err := s.spClient.GetAlbum(ctx, ref.Value)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if spAlbum == nil {
			return nil, apperr.NotFound("album_not_found", "no album with that catalog id")
		}
		album := &types.Album{
			ID:             uuid.New(),
			SpotifyAlbumID: &spAlbum.SpotifyID,
			Title:          spAlbum.Title,
			Artists:        types.ArtistsJSON(spAlbum.Artists),
			CoverURL:       spAlbum.CoverURL,
			ReleaseYear:    spAlbum.ReleaseYear,
		}
		stored, err := s.albumRepo.UpsertBySpotifyID(ctx, nil, album)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		return stored, nil

	default:
		return nil, apperr.NotFound("invalid_album_id", "identifier is neither a release-group id nor a catalog id")
	}
}

// ResolveAlbumForWrite resolves an album on a write path, where an
// unresolvable identifier is the caller's mistake rather than a missing
// resource. Write endpoints expect the album to be upserted first.
func ResolveAlbumForWrite(ctx context.Context, albums AlbumService, identifier string) (*types.Album, error) {
	album, err := albums.Resolve(ctx, identifier)
	if err != nil {
		if ae := apperr.From(err); ae != nil && ae.Status == http.StatusNotFound {
			return nil, apperr.BadRequest("unknown_album", "album not found, upsert it first")
		}
		return nil, err
	}
	return album, nil
}

func (s *albumService) GetByID(ctx context.Context, albumID uuid.UUID) (*types.Album, error) {
	albums, err := s.albumRepo.GetByIDs(ctx, nil, []uuid.UUID{albumID})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(albums) == 0 {
		return nil, apperr.NotFound("album_not_found", "no album with that id")
	}
	return albums[0], nil
}

// Search queries the registry and probes covers for every hit in parallel. A
// failed probe degrades to a missing cover rather than failing the search.
func (s *albumService) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	groups, err := s.mbClient.SearchReleaseGroups(ctx, query, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	results := make([]SearchResult, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	for i, rg := range groups {
		results[i] = SearchResult{
			MBID:        rg.MBID,
			Title:       rg.Title,
			Artists:     rg.Artists,
			ReleaseYear: rg.ReleaseYear(),
		}
		g.Go(func() error {
			coverURL, err := s.caClient.FrontCoverURL(gctx, rg.MBID)
			if err != nil {
				s.log.Warn("cover probe failed", "mbid", rg.MBID, "error", err)
				return nil
			}
			results[i].CoverURL = coverURL
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperr.Internal(err)
	}
	return results, nil
}

// SearchSpotify queries the legacy catalog. Without credentials it searches
// the stored albums instead, so the seeded fixtures keep the flow usable.
func (s *albumService) SearchSpotify(ctx context.Context, query string, limit int) ([]spotify.Album, error) {
	if !s.spClient.HasCredentials() {
		stored, err := s.albumRepo.SearchByTitle(ctx, nil, query, limit)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		results := make([]spotify.Album, 0, len(stored))
		for _, album := range stored {
			entry := spotify.Album{
				Title:       album.Title,
				Artists:     album.ArtistList(),
				CoverURL:    album.CoverURL,
				ReleaseYear: album.ReleaseYear,
			}
			if album.SpotifyAlbumID != nil {
				entry.SpotifyID = *album.SpotifyAlbumID
			} else if album.MBID != nil {
				entry.SpotifyID = *album.MBID
			}
			results = append(results, entry)
		}
		return results, nil
	}
	albums, err := s.spClient.SearchAlbums(ctx, query, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return albums, nil
}

func (s *albumService) fetchAndUpsertByMBID(ctx context.Context, mbid string) (*types.Album, error) {
	var rg *musicbrainz.ReleaseGroup
	var coverURL *string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rg, err = s.mbClient.GetReleaseGroup(gctx, mbid)
		return err
	})
	g.Go(func() error {
		url, err := s.caClient.FrontCoverURL(gctx, mbid)
		if err != nil {
			s.log.Warn("cover probe failed", "mbid", mbid, "error", err)
			return nil
		}
		coverURL = url
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, apperr.Internal(err)
	}
	if rg == nil {
		return nil, apperr.NotFound("album_not_found", "release group does not exist in the registry")
	}

	album := &types.Album{
		ID:          uuid.New(),
		MBID:        &mbid,
		Title:       rg.Title,
		Artists:     types.ArtistsJSON(rg.Artists),
		CoverURL:    coverURL,
		ReleaseYear: rg.ReleaseYear(),
	}
	stored, err := s.albumRepo.UpsertByMBID(ctx, nil, album)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return stored, nil
}
