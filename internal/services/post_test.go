package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/simlrfm/simlr-backend/internal/data/repos"
	"github.com/simlrfm/simlr-backend/internal/data/repos/testutil"
	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/pkg/rank"
)

func newPostService(t *testing.T, db *testingDB, albums map[string]*types.Album) PostService {
	t.Helper()
	logg := testutil.Logger(t)
	return NewPostService(
		db.handle,
		logg,
		repos.NewPostRepo(db.handle, logg),
		repos.NewCommentRepo(db.handle, logg),
		repos.NewVoteRepo(db.handle, logg),
		&stubAlbumService{albums: albums},
		rank.Config{Epoch: rank.DefaultEpoch, Divisor: rank.DefaultDivisor},
	)
}

func TestPostListDefaultsToHot(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	logg := testutil.Logger(t)

	album := testutil.SeedAlbum(t, ctx, db.handle, "forum-album")
	author := testutil.SeedUser(t, ctx, db.handle, uuid.NewString()+"@example.com")

	// the voted thread is older; with near-identical ages its score dominates
	// the hot rank, while a recency default would lead with the fresh one
	votedPost := testutil.SeedPost(t, ctx, db.handle, album.ID, author.ID, "voted thread")
	testutil.SeedPost(t, ctx, db.handle, album.ID, author.ID, "fresh thread")

	voteRepo := repos.NewVoteRepo(db.handle, logg)
	for i := 0; i < 2; i++ {
		voter := testutil.SeedUser(t, ctx, db.handle, uuid.NewString()+"@example.com")
		if _, err := voteRepo.Upsert(ctx, nil, &types.Vote{
			ID:         uuid.New(),
			UserID:     voter.ID,
			EntityType: types.EntityPost,
			EntityID:   votedPost.ID,
			Value:      1,
		}); err != nil {
			t.Fatalf("seed vote: %v", err)
		}
	}

	svc := newPostService(t, db, map[string]*types.Album{"album": album})

	entries, err := svc.List(ctx, uuid.Nil, "album", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].ID != votedPost.ID {
		t.Fatalf("default sort should lead with the hot thread, got %q first", entries[0].Title)
	}

	// explicit new keeps repo recency order
	entries, err = svc.List(ctx, uuid.Nil, "album", "new")
	if err != nil {
		t.Fatalf("List new: %v", err)
	}
	if entries[0].ID == votedPost.ID {
		t.Fatalf("new sort should lead with the freshest thread")
	}
}
