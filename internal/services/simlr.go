package services

import (
	"context"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/simlrfm/simlr-backend/internal/data/repos"
	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/pkg/apperr"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
	"github.com/simlrfm/simlr-backend/internal/pkg/rank"
)

const (
	simlrListPoolSize   = 200
	simlrListPageSize   = 50
	simlrReasonsPerEdge = 3
)

// SimlrReasonView is one justification text with its author.
type SimlrReasonView struct {
	ID        uuid.UUID        `json:"id"`
	Reason    string           `json:"reason"`
	User      types.PublicUser `json:"user"`
	CreatedAt int64            `json:"created_at"`
}

// SimlrListEntry is one outgoing edge in a similarity listing.
type SimlrListEntry struct {
	EdgeID  uuid.UUID          `json:"edge_id"`
	Album   types.AlbumSummary `json:"album"`
	Score   int                `json:"score"`
	MyVote  int                `json:"my_vote"`
	Reasons []SimlrReasonView  `json:"reasons"`
}

// SimlrSubmission reports a created or updated edge.
type SimlrSubmission struct {
	EdgeID        uuid.UUID `json:"edge_id"`
	SourceAlbumID uuid.UUID `json:"source_album_id"`
	TargetAlbumID uuid.UUID `json:"target_album_id"`
	Reason        string    `json:"reason"`
}

type SimlrService interface {
	Submit(ctx context.Context, userID uuid.UUID, sourceIdentifier, targetIdentifier, reason string) (*SimlrSubmission, error)
	List(ctx context.Context, userID uuid.UUID, sourceIdentifier, sortMode string) ([]SimlrListEntry, error)
}

type simlrService struct {
	db           *gorm.DB
	log          *logger.Logger
	simlrRepo    repos.SimlrRepo
	ratingRepo   repos.RatingRepo
	albumRepo    repos.AlbumRepo
	voteRepo     repos.VoteRepo
	albumService AlbumService
	rankCfg      rank.Config
	reasonMinLen int
	reasonMaxLen int
}

func NewSimlrService(
	db *gorm.DB,
	baseLog *logger.Logger,
	simlrRepo repos.SimlrRepo,
	ratingRepo repos.RatingRepo,
	albumRepo repos.AlbumRepo,
	voteRepo repos.VoteRepo,
	albumService AlbumService,
	rankCfg rank.Config,
	reasonMinLen, reasonMaxLen int,
) SimlrService {
	serviceLog := baseLog.With("service", "SimlrService")
	return &simlrService{
		db:           db,
		log:          serviceLog,
		simlrRepo:    simlrRepo,
		ratingRepo:   ratingRepo,
		albumRepo:    albumRepo,
		voteRepo:     voteRepo,
		albumService: albumService,
		rankCfg:      rankCfg,
		reasonMinLen: reasonMinLen,
		reasonMaxLen: reasonMaxLen,
	}
}

// Submit resolves both endpoints, enforces the rating gate on the source, and
// writes edge and reason atomically so no edge ever exists without at least
// one reason.
func (s *simlrService) Submit(ctx context.Context, userID uuid.UUID, sourceIdentifier, targetIdentifier, reason string) (*SimlrSubmission, error) {
	if n := utf8.RuneCountInString(reason); n < s.reasonMinLen || n > s.reasonMaxLen {
		return nil, apperr.BadRequest("invalid_reason_length",
			fmt.Sprintf("reason must be %d to %d characters", s.reasonMinLen, s.reasonMaxLen))
	}

	// The raw identifiers are compared before anything resolves, so an album
	// linked to itself is rejected without touching the registry.
	if sourceIdentifier == targetIdentifier {
		return nil, apperr.BadRequest("self_loop", "an album cannot be similar to itself")
	}

	var source, target *types.Album
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		source, err = ResolveAlbumForWrite(gctx, s.albumService, sourceIdentifier)
		return err
	})
	g.Go(func() error {
		var err error
		target, err = ResolveAlbumForWrite(gctx, s.albumService, targetIdentifier)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Both identifier formats can name the same row, so the resolved IDs are
	// checked as well.
	if source.ID == target.ID {
		return nil, apperr.BadRequest("self_loop", "an album cannot be similar to itself")
	}

	sourceRating, err := s.ratingRepo.GetByUserAndAlbum(ctx, nil, userID, source.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if sourceRating == nil {
		return nil, apperr.Forbidden("rating_required", "must rate the source album first")
	}

	var submission *SimlrSubmission
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		edge, err := s.simlrRepo.UpsertEdge(ctx, tx, &types.SimlrEdge{
			ID:            uuid.New(),
			SourceAlbumID: source.ID,
			TargetAlbumID: target.ID,
		})
		if err != nil {
			return err
		}

		stored, err := s.simlrRepo.UpsertReason(ctx, tx, &types.SimlrReason{
			ID:     uuid.New(),
			EdgeID: edge.ID,
			UserID: userID,
			Reason: reason,
		})
		if err != nil {
			return err
		}

		submission = &SimlrSubmission{
			EdgeID:        edge.ID,
			SourceAlbumID: edge.SourceAlbumID,
			TargetAlbumID: edge.TargetAlbumID,
			Reason:        stored.Reason,
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return submission, nil
}

// List returns up to 50 outgoing edges from a 200-edge candidate pool, sorted
// by vote score unless recency or hot ordering is requested, each carrying
// its 3 newest reasons.
func (s *simlrService) List(ctx context.Context, userID uuid.UUID, sourceIdentifier, sortMode string) ([]SimlrListEntry, error) {
	source, err := s.albumService.Resolve(ctx, sourceIdentifier)
	if err != nil {
		return nil, err
	}

	edges, err := s.simlrRepo.ListBySource(ctx, nil, source.ID, simlrListPoolSize)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(edges) == 0 {
		return []SimlrListEntry{}, nil
	}

	edgeIDs := make([]uuid.UUID, 0, len(edges))
	targetIDs := make([]uuid.UUID, 0, len(edges))
	for _, e := range edges {
		edgeIDs = append(edgeIDs, e.ID)
		targetIDs = append(targetIDs, e.TargetAlbumID)
	}

	scores, err := s.voteRepo.SumsByEntities(ctx, nil, types.EntitySimlrEdge, edgeIDs)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	myVotes, err := s.voteRepo.UserVotesByEntities(ctx, nil, userID, types.EntitySimlrEdge, edgeIDs)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	reasons, err := s.simlrRepo.ReasonsByEdges(ctx, nil, edgeIDs)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	targets, err := s.albumRepo.GetByIDs(ctx, nil, targetIDs)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	targetByID := make(map[uuid.UUID]*types.Album, len(targets))
	for _, a := range targets {
		targetByID[a.ID] = a
	}

	switch sortMode {
	case "new":
		// already newest first from the repo
	case "hot":
		sort.SliceStable(edges, func(i, j int) bool {
			return s.rankCfg.Hot(scores[edges[i].ID], edges[i].CreatedAt) >
				s.rankCfg.Hot(scores[edges[j].ID], edges[j].CreatedAt)
		})
	default:
		// top is the default ordering
		sort.SliceStable(edges, func(i, j int) bool {
			return scores[edges[i].ID] > scores[edges[j].ID]
		})
	}

	if len(edges) > simlrListPageSize {
		edges = edges[:simlrListPageSize]
	}

	entries := make([]SimlrListEntry, 0, len(edges))
	for _, e := range edges {
		target, ok := targetByID[e.TargetAlbumID]
		if !ok {
			continue
		}

		edgeReasons := reasons[e.ID]
		if len(edgeReasons) > simlrReasonsPerEdge {
			edgeReasons = edgeReasons[:simlrReasonsPerEdge]
		}
		views := make([]SimlrReasonView, 0, len(edgeReasons))
		for _, r := range edgeReasons {
			views = append(views, SimlrReasonView{
				ID:        r.ID,
				Reason:    r.Reason,
				User:      r.User.Public(),
				CreatedAt: r.CreatedAt.Unix(),
			})
		}

		entries = append(entries, SimlrListEntry{
			EdgeID:  e.ID,
			Album:   target.Summary(),
			Score:   scores[e.ID],
			MyVote:  myVotes[e.ID],
			Reasons: views,
		})
	}
	return entries, nil
}
