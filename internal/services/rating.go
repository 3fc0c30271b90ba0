package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simlrfm/simlr-backend/internal/data/repos"
	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/pkg/apperr"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
	"github.com/simlrfm/simlr-backend/internal/pkg/stats"
)

const (
	topAlbumsDefaultMinCount = 5
	topAlbumsDefaultLimit    = 50
	topAlbumsMaxLimit        = 100
)

// AlbumStats is the aggregate for one album, plus the caller's own score when
// they are signed in and have rated it.
type AlbumStats struct {
	stats.Summary
	Mine *int `json:"mine,omitempty"`
}

// TopAlbumEntry pairs the aggregate row with the album it describes.
type TopAlbumEntry struct {
	Album       types.AlbumSummary `json:"album"`
	AvgScore    float64            `json:"avg"`
	RatingCount int                `json:"count"`
}

type RatingService interface {
	Submit(ctx context.Context, userID, albumID uuid.UUID, score int) (*types.Rating, *AlbumStats, error)
	Stats(ctx context.Context, albumID, userID uuid.UUID) (*AlbumStats, error)
	TopAlbums(ctx context.Context, minCount, limit int) ([]TopAlbumEntry, error)
}

type ratingService struct {
	db         *gorm.DB
	log        *logger.Logger
	ratingRepo repos.RatingRepo
	albumRepo  repos.AlbumRepo
}

func NewRatingService(
	db *gorm.DB,
	baseLog *logger.Logger,
	ratingRepo repos.RatingRepo,
	albumRepo repos.AlbumRepo,
) RatingService {
	serviceLog := baseLog.With("service", "RatingService")
	return &ratingService{
		db:         db,
		log:        serviceLog,
		ratingRepo: ratingRepo,
		albumRepo:  albumRepo,
	}
}

// Submit overwrites any previous score and returns the stored rating together
// with the refreshed aggregate, so clients never need a second round trip.
func (s *ratingService) Submit(ctx context.Context, userID, albumID uuid.UUID, score int) (*types.Rating, *AlbumStats, error) {
	if score < 1 || score > 10 {
		return nil, nil, apperr.BadRequest("invalid_score", "score must be an integer from 1 to 10")
	}

	rating := &types.Rating{
		ID:      uuid.New(),
		UserID:  userID,
		AlbumID: albumID,
		Score:   score,
	}
	stored, err := s.ratingRepo.Upsert(ctx, nil, rating)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	aggregate, err := s.Stats(ctx, albumID, userID)
	if err != nil {
		return nil, nil, err
	}
	return stored, aggregate, nil
}

func (s *ratingService) Stats(ctx context.Context, albumID, userID uuid.UUID) (*AlbumStats, error) {
	scores, err := s.ratingRepo.ScoresByAlbum(ctx, nil, albumID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	result := &AlbumStats{Summary: stats.Summarize(scores)}

	if userID != uuid.Nil {
		mine, err := s.ratingRepo.GetByUserAndAlbum(ctx, nil, userID, albumID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if mine != nil {
			result.Mine = &mine.Score
		}
	}
	return result, nil
}

func (s *ratingService) TopAlbums(ctx context.Context, minCount, limit int) ([]TopAlbumEntry, error) {
	if minCount <= 0 {
		minCount = topAlbumsDefaultMinCount
	}
	if limit <= 0 {
		limit = topAlbumsDefaultLimit
	}
	if limit > topAlbumsMaxLimit {
		limit = topAlbumsMaxLimit
	}

	rows, err := s.ratingRepo.TopAlbums(ctx, nil, minCount, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	albumIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		albumIDs = append(albumIDs, row.AlbumID)
	}
	albums, err := s.albumRepo.GetByIDs(ctx, nil, albumIDs)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	byID := make(map[uuid.UUID]*types.Album, len(albums))
	for _, a := range albums {
		byID[a.ID] = a
	}

	entries := make([]TopAlbumEntry, 0, len(rows))
	for _, row := range rows {
		album, ok := byID[row.AlbumID]
		if !ok {
			continue
		}
		entries = append(entries, TopAlbumEntry{
			Album:       album.Summary(),
			AvgScore:    stats.Round1(row.AvgScore),
			RatingCount: row.RatingCount,
		})
	}
	return entries, nil
}
