package music

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

type AlbumRepo interface {
	GetByIDs(ctx context.Context, tx *gorm.DB, albumIDs []uuid.UUID) ([]*types.Album, error)
	GetByMBIDs(ctx context.Context, tx *gorm.DB, mbids []string) ([]*types.Album, error)
	GetBySpotifyIDs(ctx context.Context, tx *gorm.DB, spotifyIDs []string) ([]*types.Album, error)
	UpsertByMBID(ctx context.Context, tx *gorm.DB, album *types.Album) (*types.Album, error)
	UpsertBySpotifyID(ctx context.Context, tx *gorm.DB, album *types.Album) (*types.Album, error)
	SearchByTitle(ctx context.Context, tx *gorm.DB, query string, limit int) ([]*types.Album, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
}

type albumRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAlbumRepo(db *gorm.DB, baseLog *logger.Logger) AlbumRepo {
	repoLog := baseLog.With("repo", "AlbumRepo")
	return &albumRepo{db: db, log: repoLog}
}

func (ar *albumRepo) GetByIDs(ctx context.Context, tx *gorm.DB, albumIDs []uuid.UUID) ([]*types.Album, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Album

	if len(albumIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", albumIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *albumRepo) GetByMBIDs(ctx context.Context, tx *gorm.DB, mbids []string) ([]*types.Album, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Album

	if len(mbids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("mbid IN ?", mbids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *albumRepo) GetBySpotifyIDs(ctx context.Context, tx *gorm.DB, spotifyIDs []string) ([]*types.Album, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Album

	if len(spotifyIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("spotify_album_id IN ?", spotifyIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// UpsertByMBID writes metadata keyed on the registry ID and returns the stored
// row, which keeps the internal ID stable across repeated upserts.
func (ar *albumRepo) UpsertByMBID(ctx context.Context, tx *gorm.DB, album *types.Album) (*types.Album, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "mbid"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "artists", "cover_url", "release_year", "updated_at",
			}),
		}).
		Create(album).Error; err != nil {
		return nil, err
	}

	var stored types.Album
	if err := transaction.WithContext(ctx).
		Where("mbid = ?", *album.MBID).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (ar *albumRepo) UpsertBySpotifyID(ctx context.Context, tx *gorm.DB, album *types.Album) (*types.Album, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "spotify_album_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "artists", "cover_url", "release_year", "updated_at",
			}),
		}).
		Create(album).Error; err != nil {
		return nil, err
	}

	var stored types.Album
	if err := transaction.WithContext(ctx).
		Where("spotify_album_id = ?", *album.SpotifyAlbumID).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// SearchByTitle matches stored albums case-insensitively. LOWER + LIKE so the
// same query works on Postgres and the SQLite dev store.
func (ar *albumRepo) SearchByTitle(ctx context.Context, tx *gorm.DB, query string, limit int) ([]*types.Album, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Album
	if err := transaction.WithContext(ctx).
		Where("LOWER(title) LIKE ?", "%"+strings.ToLower(query)+"%").
		Order("title ASC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *albumRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Album{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
