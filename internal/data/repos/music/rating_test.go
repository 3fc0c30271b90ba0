package music

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/simlrfm/simlr-backend/internal/data/repos/testutil"
	types "github.com/simlrfm/simlr-backend/internal/domain"
)

func TestRatingRepoUpsertKeepsOneRow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewRatingRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "ratingrepo@example.com")
	a := testutil.SeedAlbum(t, ctx, tx, "Blonde")

	first, err := repo.Upsert(ctx, tx, &types.Rating{ID: uuid.New(), UserID: u.ID, AlbumID: a.ID, Score: 7})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	second, err := repo.Upsert(ctx, tx, &types.Rating{ID: uuid.New(), UserID: u.ID, AlbumID: a.ID, Score: 9})
	if err != nil {
		t.Fatalf("Upsert again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("re-rating created a second row: %s vs %s", second.ID, first.ID)
	}
	if second.Score != 9 {
		t.Fatalf("score not overwritten: %d", second.Score)
	}

	scores, err := repo.ScoresByAlbum(ctx, tx, a.ID)
	if err != nil {
		t.Fatalf("ScoresByAlbum: %v", err)
	}
	if len(scores) != 1 || scores[0] != 9 {
		t.Fatalf("ScoresByAlbum = %v, want [9]", scores)
	}
}

func TestRatingRepoTopAlbums(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewRatingRepo(db, testutil.Logger(t))

	popular := testutil.SeedAlbum(t, ctx, tx, "popular")
	niche := testutil.SeedAlbum(t, ctx, tx, "niche")

	for i, score := range []int{8, 9, 10} {
		u := testutil.SeedUser(t, ctx, tx, uuid.NewString()+"@example.com")
		testutil.SeedRating(t, ctx, tx, u.ID, popular.ID, score)
		if i == 0 {
			testutil.SeedRating(t, ctx, tx, u.ID, niche.ID, 10)
		}
	}

	rows, err := repo.TopAlbums(ctx, tx, 2, 50)
	if err != nil {
		t.Fatalf("TopAlbums: %v", err)
	}
	for _, row := range rows {
		if row.AlbumID == niche.ID {
			t.Fatalf("album below the rating floor should be excluded")
		}
	}

	found := false
	for _, row := range rows {
		if row.AlbumID == popular.ID {
			found = true
			if row.RatingCount != 3 {
				t.Fatalf("rating_count = %d, want 3", row.RatingCount)
			}
			if row.AvgScore < 8.9 || row.AvgScore > 9.1 {
				t.Fatalf("avg_score = %f, want ~9.0", row.AvgScore)
			}
		}
	}
	if !found {
		t.Fatalf("popular album missing from top rows")
	}
}
