package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/simlrfm/simlr-backend/internal/data/repos"
	"github.com/simlrfm/simlr-backend/internal/data/repos/testutil"
	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/pkg/apperr"
)

func newVoteService(t *testing.T, db *testingDB) VoteService {
	t.Helper()
	logg := testutil.Logger(t)
	return NewVoteService(
		db.handle,
		logg,
		repos.NewVoteRepo(db.handle, logg),
		repos.NewPostRepo(db.handle, logg),
		repos.NewCommentRepo(db.handle, logg),
		repos.NewSimlrRepo(db.handle, logg),
	)
}

func TestVoteCastToggleStateMachine(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	voter := testutil.SeedUser(t, ctx, db.handle, uuid.NewString()+"@example.com")
	author := testutil.SeedUser(t, ctx, db.handle, uuid.NewString()+"@example.com")
	album := testutil.SeedAlbum(t, ctx, db.handle, "toggle")
	post := testutil.SeedPost(t, ctx, db.handle, album.ID, author.ID, "thread")

	svc := newVoteService(t, db)

	// no vote -> upvote
	res, err := svc.Cast(ctx, voter.ID, types.EntityPost, post.ID, 1)
	if err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if res.Score != 1 || res.MyVote != 1 {
		t.Fatalf("after upvote: %+v", res)
	}

	// same value -> toggle off
	res, err = svc.Cast(ctx, voter.ID, types.EntityPost, post.ID, 1)
	if err != nil {
		t.Fatalf("Cast toggle: %v", err)
	}
	if res.Score != 0 || res.MyVote != 0 {
		t.Fatalf("after toggle: %+v", res)
	}

	// fresh upvote, then flip
	if _, err := svc.Cast(ctx, voter.ID, types.EntityPost, post.ID, 1); err != nil {
		t.Fatalf("Cast re-upvote: %v", err)
	}
	res, err = svc.Cast(ctx, voter.ID, types.EntityPost, post.ID, -1)
	if err != nil {
		t.Fatalf("Cast flip: %v", err)
	}
	if res.Score != -1 || res.MyVote != -1 {
		t.Fatalf("after flip: %+v", res)
	}
}

func TestVoteCastRejectsBadInput(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	voter := testutil.SeedUser(t, ctx, db.handle, uuid.NewString()+"@example.com")
	svc := newVoteService(t, db)

	if _, err := svc.Cast(ctx, voter.ID, types.EntityPost, uuid.New(), 2); err == nil {
		t.Fatalf("value 2 should be rejected")
	}
	if _, err := svc.Cast(ctx, voter.ID, "ALBUM", uuid.New(), 1); err == nil {
		t.Fatalf("unknown entity type should be rejected")
	}

	_, err := svc.Cast(ctx, voter.ID, types.EntityPost, uuid.New(), 1)
	if err == nil {
		t.Fatalf("vote on a missing post should fail")
	}
	if ae := apperr.From(err); ae == nil || ae.Status != 404 {
		t.Fatalf("missing post should map to 404, got %v", err)
	}
}
