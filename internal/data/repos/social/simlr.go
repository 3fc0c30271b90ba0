package social

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

type SimlrRepo interface {
	UpsertEdge(ctx context.Context, tx *gorm.DB, edge *types.SimlrEdge) (*types.SimlrEdge, error)
	GetEdgesByIDs(ctx context.Context, tx *gorm.DB, edgeIDs []uuid.UUID) ([]*types.SimlrEdge, error)
	GetEdgeByPair(ctx context.Context, tx *gorm.DB, sourceAlbumID, targetAlbumID uuid.UUID) (*types.SimlrEdge, error)
	ListBySource(ctx context.Context, tx *gorm.DB, sourceAlbumID uuid.UUID, limit int) ([]*types.SimlrEdge, error)
	UpsertReason(ctx context.Context, tx *gorm.DB, reason *types.SimlrReason) (*types.SimlrReason, error)
	ReasonsByEdges(ctx context.Context, tx *gorm.DB, edgeIDs []uuid.UUID) (map[uuid.UUID][]*types.SimlrReason, error)
}

type simlrRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSimlrRepo(db *gorm.DB, baseLog *logger.Logger) SimlrRepo {
	repoLog := baseLog.With("repo", "SimlrRepo")
	return &simlrRepo{db: db, log: repoLog}
}

// UpsertEdge creates the directed pair if absent and returns the stored row
// either way. Concurrent submitters converge on one edge.
func (sr *simlrRepo) UpsertEdge(ctx context.Context, tx *gorm.DB, edge *types.SimlrEdge) (*types.SimlrEdge, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source_album_id"}, {Name: "target_album_id"}},
			DoNothing: true,
		}).
		Create(edge).Error; err != nil {
		return nil, err
	}

	return sr.GetEdgeByPair(ctx, transaction, edge.SourceAlbumID, edge.TargetAlbumID)
}

func (sr *simlrRepo) GetEdgesByIDs(ctx context.Context, tx *gorm.DB, edgeIDs []uuid.UUID) ([]*types.SimlrEdge, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.SimlrEdge

	if len(edgeIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", edgeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *simlrRepo) GetEdgeByPair(ctx context.Context, tx *gorm.DB, sourceAlbumID, targetAlbumID uuid.UUID) (*types.SimlrEdge, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.SimlrEdge
	if err := transaction.WithContext(ctx).
		Where("source_album_id = ? AND target_album_id = ?", sourceAlbumID, targetAlbumID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// ListBySource returns the newest outgoing edges. The limit caps the candidate
// pool; ranking happens in the service.
func (sr *simlrRepo) ListBySource(ctx context.Context, tx *gorm.DB, sourceAlbumID uuid.UUID, limit int) ([]*types.SimlrEdge, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.SimlrEdge
	if err := transaction.WithContext(ctx).
		Where("source_album_id = ?", sourceAlbumID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// UpsertReason replaces the user's previous reason text on the same edge.
func (sr *simlrRepo) UpsertReason(ctx context.Context, tx *gorm.DB, reason *types.SimlrReason) (*types.SimlrReason, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "edge_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"reason", "updated_at"}),
		}).
		Create(reason).Error; err != nil {
		return nil, err
	}

	var stored types.SimlrReason
	if err := transaction.WithContext(ctx).
		Where("edge_id = ? AND user_id = ?", reason.EdgeID, reason.UserID).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// ReasonsByEdges returns every reason on the given edges, newest first per
// edge, with the author preloaded.
func (sr *simlrRepo) ReasonsByEdges(ctx context.Context, tx *gorm.DB, edgeIDs []uuid.UUID) (map[uuid.UUID][]*types.SimlrReason, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	grouped := make(map[uuid.UUID][]*types.SimlrReason, len(edgeIDs))
	if len(edgeIDs) == 0 {
		return grouped, nil
	}

	var rows []*types.SimlrReason
	if err := transaction.WithContext(ctx).
		Preload("User").
		Where("edge_id IN ?", edgeIDs).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		grouped[row.EdgeID] = append(grouped[row.EdgeID], row)
	}
	return grouped, nil
}
