package social

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

// EntityKey addresses one votable entity in batch score lookups.
type EntityKey struct {
	Type types.VoteEntityType
	ID   uuid.UUID
}

type VoteRepo interface {
	GetByUserEntity(ctx context.Context, tx *gorm.DB, userID uuid.UUID, entityType types.VoteEntityType, entityID uuid.UUID) (*types.Vote, error)
	Upsert(ctx context.Context, tx *gorm.DB, vote *types.Vote) (*types.Vote, error)
	DeleteByUserEntity(ctx context.Context, tx *gorm.DB, userID uuid.UUID, entityType types.VoteEntityType, entityID uuid.UUID) error
	SumByEntity(ctx context.Context, tx *gorm.DB, entityType types.VoteEntityType, entityID uuid.UUID) (int, error)
	SumsByEntities(ctx context.Context, tx *gorm.DB, entityType types.VoteEntityType, entityIDs []uuid.UUID) (map[uuid.UUID]int, error)
	UserVotesByEntities(ctx context.Context, tx *gorm.DB, userID uuid.UUID, entityType types.VoteEntityType, entityIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type voteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVoteRepo(db *gorm.DB, baseLog *logger.Logger) VoteRepo {
	repoLog := baseLog.With("repo", "VoteRepo")
	return &voteRepo{db: db, log: repoLog}
}

func (vr *voteRepo) GetByUserEntity(ctx context.Context, tx *gorm.DB, userID uuid.UUID, entityType types.VoteEntityType, entityID uuid.UUID) (*types.Vote, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var results []*types.Vote
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND entity_type = ? AND entity_id = ?", userID, entityType, entityID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// Upsert overwrites the value on conflict; toggling off is a delete, handled
// by the service.
func (vr *voteRepo) Upsert(ctx context.Context, tx *gorm.DB, vote *types.Vote) (*types.Vote, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "entity_type"}, {Name: "entity_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(vote).Error; err != nil {
		return nil, err
	}

	return vr.GetByUserEntity(ctx, transaction, vote.UserID, vote.EntityType, vote.EntityID)
}

func (vr *voteRepo) DeleteByUserEntity(ctx context.Context, tx *gorm.DB, userID uuid.UUID, entityType types.VoteEntityType, entityID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	return transaction.WithContext(ctx).
		Where("user_id = ? AND entity_type = ? AND entity_id = ?", userID, entityType, entityID).
		Delete(&types.Vote{}).Error
}

func (vr *voteRepo) SumByEntity(ctx context.Context, tx *gorm.DB, entityType types.VoteEntityType, entityID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var sum int64
	if err := transaction.WithContext(ctx).
		Model(&types.Vote{}).
		Select("COALESCE(SUM(value), 0)").
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return int(sum), nil
}

func (vr *voteRepo) SumsByEntities(ctx context.Context, tx *gorm.DB, entityType types.VoteEntityType, entityIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	sums := make(map[uuid.UUID]int, len(entityIDs))
	if len(entityIDs) == 0 {
		return sums, nil
	}

	var rows []struct {
		EntityID uuid.UUID `gorm:"column:entity_id"`
		Score    int       `gorm:"column:score"`
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Vote{}).
		Select("entity_id, SUM(value) AS score").
		Where("entity_type = ? AND entity_id IN ?", entityType, entityIDs).
		Group("entity_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		sums[row.EntityID] = row.Score
	}
	return sums, nil
}

func (vr *voteRepo) UserVotesByEntities(ctx context.Context, tx *gorm.DB, userID uuid.UUID, entityType types.VoteEntityType, entityIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	votes := make(map[uuid.UUID]int, len(entityIDs))
	if userID == uuid.Nil || len(entityIDs) == 0 {
		return votes, nil
	}

	var rows []*types.Vote
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND entity_type = ? AND entity_id IN ?", userID, entityType, entityIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		votes[row.EntityID] = row.Value
	}
	return votes, nil
}
