package services

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simlrfm/simlr-backend/internal/data/repos"
	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/pkg/apperr"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
	"github.com/simlrfm/simlr-backend/internal/pkg/rank"
)

const (
	postTitleMaxLen  = 120
	postBodyMaxLen   = 5000
	postListPoolSize = 100
	postListPageSize = 50
)

// PostListEntry is one thread in an album's forum listing.
type PostListEntry struct {
	ID           uuid.UUID        `json:"id"`
	Title        string           `json:"title"`
	Body         string           `json:"body"`
	User         types.PublicUser `json:"user"`
	Score        int              `json:"score"`
	MyVote       int              `json:"my_vote"`
	CommentCount int              `json:"comment_count"`
	CreatedAt    int64            `json:"created_at"`
}

type PostService interface {
	Create(ctx context.Context, userID uuid.UUID, albumIdentifier, title, body string) (*types.Post, error)
	List(ctx context.Context, userID uuid.UUID, albumIdentifier, sortMode string) ([]PostListEntry, error)
}

type postService struct {
	db           *gorm.DB
	log          *logger.Logger
	postRepo     repos.PostRepo
	commentRepo  repos.CommentRepo
	voteRepo     repos.VoteRepo
	albumService AlbumService
	rankCfg      rank.Config
}

func NewPostService(
	db *gorm.DB,
	baseLog *logger.Logger,
	postRepo repos.PostRepo,
	commentRepo repos.CommentRepo,
	voteRepo repos.VoteRepo,
	albumService AlbumService,
	rankCfg rank.Config,
) PostService {
	serviceLog := baseLog.With("service", "PostService")
	return &postService{
		db:           db,
		log:          serviceLog,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		voteRepo:     voteRepo,
		albumService: albumService,
		rankCfg:      rankCfg,
	}
}

func (s *postService) Create(ctx context.Context, userID uuid.UUID, albumIdentifier, title, body string) (*types.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > postTitleMaxLen {
		return nil, apperr.BadRequest("invalid_title", "title must be 1 to 120 characters")
	}
	if body == "" || utf8.RuneCountInString(body) > postBodyMaxLen {
		return nil, apperr.BadRequest("invalid_body", "body must be 1 to 5000 characters")
	}

	album, err := s.albumService.Resolve(ctx, albumIdentifier)
	if err != nil {
		return nil, err
	}

	post := &types.Post{
		ID:      uuid.New(),
		AlbumID: album.ID,
		UserID:  userID,
		Title:   title,
		Body:    body,
	}
	if _, err := s.postRepo.Create(ctx, nil, []*types.Post{post}); err != nil {
		return nil, apperr.Internal(err)
	}
	return post, nil
}

// List ranks the album's 100 newest threads and returns the first page of 50.
// Hot ordering, the default, trades vote magnitude against age; new and top
// are plain sorts.
func (s *postService) List(ctx context.Context, userID uuid.UUID, albumIdentifier, sortMode string) ([]PostListEntry, error) {
	album, err := s.albumService.Resolve(ctx, albumIdentifier)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByAlbum(ctx, nil, album.ID, postListPoolSize)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(posts) == 0 {
		return []PostListEntry{}, nil
	}

	postIDs := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}

	scores, err := s.voteRepo.SumsByEntities(ctx, nil, types.EntityPost, postIDs)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	myVotes, err := s.voteRepo.UserVotesByEntities(ctx, nil, userID, types.EntityPost, postIDs)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	commentCounts, err := s.commentRepo.CountByPostIDs(ctx, nil, postIDs)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	switch sortMode {
	case "new":
		// already newest first from the repo
	case "top":
		sort.SliceStable(posts, func(i, j int) bool {
			return scores[posts[i].ID] > scores[posts[j].ID]
		})
	default:
		// hot is the default ordering
		sort.SliceStable(posts, func(i, j int) bool {
			return s.rankCfg.Hot(scores[posts[i].ID], posts[i].CreatedAt) >
				s.rankCfg.Hot(scores[posts[j].ID], posts[j].CreatedAt)
		})
	}

	if len(posts) > postListPageSize {
		posts = posts[:postListPageSize]
	}

	entries := make([]PostListEntry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, PostListEntry{
			ID:           p.ID,
			Title:        p.Title,
			Body:         p.Body,
			User:         p.User.Public(),
			Score:        scores[p.ID],
			MyVote:       myVotes[p.ID],
			CommentCount: commentCounts[p.ID],
			CreatedAt:    p.CreatedAt.Unix(),
		})
	}
	return entries, nil
}
