package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/simlrfm/simlr-backend/internal/data/repos"
	"github.com/simlrfm/simlr-backend/internal/data/repos/testutil"
)

func newRatingService(t *testing.T, db *testingDB) RatingService {
	t.Helper()
	logg := testutil.Logger(t)
	return NewRatingService(
		db.handle,
		logg,
		repos.NewRatingRepo(db.handle, logg),
		repos.NewAlbumRepo(db.handle, logg),
	)
}

func TestRatingSubmitReturnsAggregate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	album := testutil.SeedAlbum(t, ctx, db.handle, "aggregate")
	alice := testutil.SeedUser(t, ctx, db.handle, uuid.NewString()+"@example.com")
	bob := testutil.SeedUser(t, ctx, db.handle, uuid.NewString()+"@example.com")

	svc := newRatingService(t, db)

	if _, _, err := svc.Submit(ctx, bob.ID, album.ID, 6); err != nil {
		t.Fatalf("Submit bob: %v", err)
	}

	rating, agg, err := svc.Submit(ctx, alice.ID, album.ID, 9)
	if err != nil {
		t.Fatalf("Submit alice: %v", err)
	}
	if rating.Score != 9 {
		t.Fatalf("stored score = %d", rating.Score)
	}
	if agg.Count != 2 {
		t.Fatalf("count = %d, want 2", agg.Count)
	}
	if agg.Average == nil || *agg.Average != 7.5 {
		t.Fatalf("avg = %v, want 7.5", agg.Average)
	}
	if agg.Median == nil || *agg.Median != 7.5 {
		t.Fatalf("median = %v, want 7.5", agg.Median)
	}
	if agg.Mine == nil || *agg.Mine != 9 {
		t.Fatalf("mine = %v, want 9", agg.Mine)
	}

	// re-rating replaces in place
	_, agg, err = svc.Submit(ctx, alice.ID, album.ID, 5)
	if err != nil {
		t.Fatalf("Submit replace: %v", err)
	}
	if agg.Count != 2 {
		t.Fatalf("re-rating grew the row count: %d", agg.Count)
	}
	if agg.Mine == nil || *agg.Mine != 5 {
		t.Fatalf("mine after replace = %v, want 5", agg.Mine)
	}
}

func TestRatingSubmitRejectsOutOfRange(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newRatingService(t, db)

	for _, score := range []int{0, 11, -3} {
		if _, _, err := svc.Submit(ctx, uuid.New(), uuid.New(), score); err == nil {
			t.Fatalf("score %d should be rejected", score)
		}
	}
}

func TestRatingStatsAnonymousHasNoMine(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	album := testutil.SeedAlbum(t, ctx, db.handle, "anon")
	u := testutil.SeedUser(t, ctx, db.handle, uuid.NewString()+"@example.com")
	testutil.SeedRating(t, ctx, db.handle, u.ID, album.ID, 8)

	svc := newRatingService(t, db)
	agg, err := svc.Stats(ctx, album.ID, uuid.Nil)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if agg.Mine != nil {
		t.Fatalf("anonymous stats should omit mine")
	}
	if agg.Count != 1 {
		t.Fatalf("count = %d", agg.Count)
	}
}
