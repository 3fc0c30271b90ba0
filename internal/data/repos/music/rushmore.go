package music

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

type RushmoreRepo interface {
	UpsertSlot(ctx context.Context, tx *gorm.DB, slot *types.RushmoreSlot) (*types.RushmoreSlot, error)
	ClearSlot(ctx context.Context, tx *gorm.DB, userID uuid.UUID, slot int) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.RushmoreSlot, error)
}

type rushmoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRushmoreRepo(db *gorm.DB, baseLog *logger.Logger) RushmoreRepo {
	repoLog := baseLog.With("repo", "RushmoreRepo")
	return &rushmoreRepo{db: db, log: repoLog}
}

func (rr *rushmoreRepo) UpsertSlot(ctx context.Context, tx *gorm.DB, slot *types.RushmoreSlot) (*types.RushmoreSlot, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "slot"}},
			DoUpdates: clause.AssignmentColumns([]string{"album_id", "updated_at"}),
		}).
		Create(slot).Error; err != nil {
		return nil, err
	}

	var stored types.RushmoreSlot
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND slot = ?", slot.UserID, slot.Slot).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (rr *rushmoreRepo) ClearSlot(ctx context.Context, tx *gorm.DB, userID uuid.UUID, slot int) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).
		Where("user_id = ? AND slot = ?", userID, slot).
		Delete(&types.RushmoreSlot{}).Error
}

func (rr *rushmoreRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.RushmoreSlot, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.RushmoreSlot
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("slot ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
