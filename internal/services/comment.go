package services

import (
	"context"
	"sort"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simlrfm/simlr-backend/internal/data/repos"
	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/pkg/apperr"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

const commentBodyMaxLen = 5000

// CommentListEntry is one comment in a post's flat listing.
type CommentListEntry struct {
	ID        uuid.UUID        `json:"id"`
	ParentID  *uuid.UUID       `json:"parent_id,omitempty"`
	Body      string           `json:"body"`
	User      types.PublicUser `json:"user"`
	Score     int              `json:"score"`
	MyVote    int              `json:"my_vote"`
	CreatedAt int64            `json:"created_at"`
}

type CommentService interface {
	Create(ctx context.Context, userID, postID uuid.UUID, parentID *uuid.UUID, body string) (*types.Comment, error)
	List(ctx context.Context, userID, postID uuid.UUID, sortMode string) ([]CommentListEntry, error)
}

type commentService struct {
	db          *gorm.DB
	log         *logger.Logger
	commentRepo repos.CommentRepo
	postRepo    repos.PostRepo
	voteRepo    repos.VoteRepo
}

func NewCommentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	commentRepo repos.CommentRepo,
	postRepo repos.PostRepo,
	voteRepo repos.VoteRepo,
) CommentService {
	serviceLog := baseLog.With("service", "CommentService")
	return &commentService{
		db:          db,
		log:         serviceLog,
		commentRepo: commentRepo,
		postRepo:    postRepo,
		voteRepo:    voteRepo,
	}
}

func (s *commentService) Create(ctx context.Context, userID, postID uuid.UUID, parentID *uuid.UUID, body string) (*types.Comment, error) {
	if body == "" || utf8.RuneCountInString(body) > commentBodyMaxLen {
		return nil, apperr.BadRequest("invalid_body", "body must be 1 to 5000 characters")
	}

	posts, err := s.postRepo.GetByIDs(ctx, nil, []uuid.UUID{postID})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(posts) == 0 {
		return nil, apperr.NotFound("post_not_found", "no post with that id")
	}

	if parentID != nil {
		parents, err := s.commentRepo.GetByIDs(ctx, nil, []uuid.UUID{*parentID})
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if len(parents) == 0 || parents[0].PostID != postID {
			return nil, apperr.BadRequest("invalid_parent", "parent comment must belong to the same post")
		}
	}

	comment := &types.Comment{
		ID:       uuid.New(),
		PostID:   postID,
		UserID:   userID,
		ParentID: parentID,
		Body:     body,
	}
	if _, err := s.commentRepo.Create(ctx, nil, []*types.Comment{comment}); err != nil {
		return nil, apperr.Internal(err)
	}
	return comment, nil
}

// List returns the post's comments as a flat list, chronological by default,
// by score when sorted "top".
func (s *commentService) List(ctx context.Context, userID, postID uuid.UUID, sortMode string) ([]CommentListEntry, error) {
	posts, err := s.postRepo.GetByIDs(ctx, nil, []uuid.UUID{postID})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(posts) == 0 {
		return nil, apperr.NotFound("post_not_found", "no post with that id")
	}

	comments, err := s.commentRepo.ListByPost(ctx, nil, postID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(comments) == 0 {
		return []CommentListEntry{}, nil
	}

	commentIDs := make([]uuid.UUID, 0, len(comments))
	for _, c := range comments {
		commentIDs = append(commentIDs, c.ID)
	}

	scores, err := s.voteRepo.SumsByEntities(ctx, nil, types.EntityComment, commentIDs)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	myVotes, err := s.voteRepo.UserVotesByEntities(ctx, nil, userID, types.EntityComment, commentIDs)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if sortMode == "top" {
		sort.SliceStable(comments, func(i, j int) bool {
			return scores[comments[i].ID] > scores[comments[j].ID]
		})
	}

	entries := make([]CommentListEntry, 0, len(comments))
	for _, c := range comments {
		entries = append(entries, CommentListEntry{
			ID:        c.ID,
			ParentID:  c.ParentID,
			Body:      c.Body,
			User:      c.User.Public(),
			Score:     scores[c.ID],
			MyVote:    myVotes[c.ID],
			CreatedAt: c.CreatedAt.Unix(),
		})
	}
	return entries, nil
}
