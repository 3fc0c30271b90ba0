package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simlrfm/simlr-backend/internal/data/repos"
	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/pkg/apperr"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

// VoteResult reports the entity's score after the cast and the caller's
// current vote on it: 1, -1, or 0 when the cast toggled their vote off.
type VoteResult struct {
	Score  int `json:"score"`
	MyVote int `json:"my_vote"`
}

type VoteService interface {
	Cast(ctx context.Context, userID uuid.UUID, entityType types.VoteEntityType, entityID uuid.UUID, value int) (*VoteResult, error)
}

type voteService struct {
	db          *gorm.DB
	log         *logger.Logger
	voteRepo    repos.VoteRepo
	postRepo    repos.PostRepo
	commentRepo repos.CommentRepo
	simlrRepo   repos.SimlrRepo
}

func NewVoteService(
	db *gorm.DB,
	baseLog *logger.Logger,
	voteRepo repos.VoteRepo,
	postRepo repos.PostRepo,
	commentRepo repos.CommentRepo,
	simlrRepo repos.SimlrRepo,
) VoteService {
	serviceLog := baseLog.With("service", "VoteService")
	return &voteService{
		db:          db,
		log:         serviceLog,
		voteRepo:    voteRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		simlrRepo:   simlrRepo,
	}
}

// Cast applies the toggle rules: no vote takes the new value, the opposite
// vote flips, and repeating the current vote removes it.
func (s *voteService) Cast(ctx context.Context, userID uuid.UUID, entityType types.VoteEntityType, entityID uuid.UUID, value int) (*VoteResult, error) {
	if value != 1 && value != -1 {
		return nil, apperr.BadRequest("invalid_vote_value", "vote value must be 1 or -1")
	}
	if !entityType.Valid() {
		return nil, apperr.BadRequest("invalid_entity_type", "entity type must be SIMLR_EDGE, POST or COMMENT")
	}

	if err := s.entityExists(ctx, entityType, entityID); err != nil {
		return nil, err
	}

	result := &VoteResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.voteRepo.GetByUserEntity(ctx, tx, userID, entityType, entityID)
		if err != nil {
			return err
		}

		switch {
		case existing != nil && existing.Value == value:
			if err := s.voteRepo.DeleteByUserEntity(ctx, tx, userID, entityType, entityID); err != nil {
				return err
			}
			result.MyVote = 0
		default:
			vote := &types.Vote{
				ID:         uuid.New(),
				UserID:     userID,
				EntityType: entityType,
				EntityID:   entityID,
				Value:      value,
			}
			if _, err := s.voteRepo.Upsert(ctx, tx, vote); err != nil {
				return err
			}
			result.MyVote = value
		}

		score, err := s.voteRepo.SumByEntity(ctx, tx, entityType, entityID)
		if err != nil {
			return err
		}
		result.Score = score
		return nil
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return result, nil
}

func (s *voteService) entityExists(ctx context.Context, entityType types.VoteEntityType, entityID uuid.UUID) error {
	switch entityType {
	case types.EntityPost:
		rows, err := s.postRepo.GetByIDs(ctx, nil, []uuid.UUID{entityID})
		if err != nil {
			return apperr.Internal(err)
		}
		if len(rows) == 0 {
			return apperr.NotFound("post_not_found", "no post with that id")
		}
	case types.EntityComment:
		rows, err := s.commentRepo.GetByIDs(ctx, nil, []uuid.UUID{entityID})
		if err != nil {
			return apperr.Internal(err)
		}
		if len(rows) == 0 {
			return apperr.NotFound("comment_not_found", "no comment with that id")
		}
	case types.EntitySimlrEdge:
		rows, err := s.simlrRepo.GetEdgesByIDs(ctx, nil, []uuid.UUID{entityID})
		if err != nil {
			return apperr.Internal(err)
		}
		if len(rows) == 0 {
			return apperr.NotFound("edge_not_found", "no similarity edge with that id")
		}
	}
	return nil
}
