package music

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

// TopAlbumRow is one aggregate row from the top-albums grouping query.
type TopAlbumRow struct {
	AlbumID     uuid.UUID `gorm:"column:album_id"`
	AvgScore    float64   `gorm:"column:avg_score"`
	RatingCount int       `gorm:"column:rating_count"`
}

type RatingRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, rating *types.Rating) (*types.Rating, error)
	GetByUserAndAlbum(ctx context.Context, tx *gorm.DB, userID, albumID uuid.UUID) (*types.Rating, error)
	ScoresByAlbum(ctx context.Context, tx *gorm.DB, albumID uuid.UUID) ([]int, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Rating, error)
	TopAlbums(ctx context.Context, tx *gorm.DB, minCount, limit int) ([]TopAlbumRow, error)
}

type ratingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRatingRepo(db *gorm.DB, baseLog *logger.Logger) RatingRepo {
	repoLog := baseLog.With("repo", "RatingRepo")
	return &ratingRepo{db: db, log: repoLog}
}

// Upsert keeps a single row per (user, album); re-rating overwrites the score
// in place and never creates a second row.
func (rr *ratingRepo) Upsert(ctx context.Context, tx *gorm.DB, rating *types.Rating) (*types.Rating, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "album_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
		}).
		Create(rating).Error; err != nil {
		return nil, err
	}

	return rr.GetByUserAndAlbum(ctx, transaction, rating.UserID, rating.AlbumID)
}

func (rr *ratingRepo) GetByUserAndAlbum(ctx context.Context, tx *gorm.DB, userID, albumID uuid.UUID) (*types.Rating, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Rating
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND album_id = ?", userID, albumID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (rr *ratingRepo) ScoresByAlbum(ctx context.Context, tx *gorm.DB, albumID uuid.UUID) ([]int, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var scores []int
	if err := transaction.WithContext(ctx).
		Model(&types.Rating{}).
		Where("album_id = ?", albumID).
		Pluck("score", &scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

func (rr *ratingRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Rating, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Rating
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// TopAlbums groups ratings per album, drops albums below the rating floor,
// and orders by average then by count.
func (rr *ratingRepo) TopAlbums(ctx context.Context, tx *gorm.DB, minCount, limit int) ([]TopAlbumRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var rows []TopAlbumRow
	if err := transaction.WithContext(ctx).
		Model(&types.Rating{}).
		Select("album_id, AVG(score) AS avg_score, COUNT(*) AS rating_count").
		Group("album_id").
		Having("COUNT(*) >= ?", minCount).
		Order("avg_score DESC, rating_count DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
