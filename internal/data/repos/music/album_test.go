package music

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/simlrfm/simlr-backend/internal/data/repos/testutil"
	types "github.com/simlrfm/simlr-backend/internal/domain"
)

func TestAlbumRepoUpsertByMBID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewAlbumRepo(db, testutil.Logger(t))

	mbid := uuid.NewString()
	first := &types.Album{
		ID:      uuid.New(),
		MBID:    &mbid,
		Title:   "OK Computer",
		Artists: types.ArtistsJSON([]types.Artist{{ID: "rg1", Name: "Radiohead"}}),
	}
	stored, err := repo.UpsertByMBID(ctx, tx, first)
	if err != nil {
		t.Fatalf("UpsertByMBID: %v", err)
	}

	year := 1997
	second := &types.Album{
		ID:          uuid.New(),
		MBID:        &mbid,
		Title:       "OK Computer (remaster)",
		Artists:     types.ArtistsJSON([]types.Artist{{ID: "rg1", Name: "Radiohead"}}),
		ReleaseYear: &year,
	}
	again, err := repo.UpsertByMBID(ctx, tx, second)
	if err != nil {
		t.Fatalf("UpsertByMBID again: %v", err)
	}

	if again.ID != stored.ID {
		t.Fatalf("internal ID changed across upserts: %s vs %s", again.ID, stored.ID)
	}
	if again.Title != "OK Computer (remaster)" {
		t.Fatalf("metadata not refreshed: %q", again.Title)
	}
	if again.ReleaseYear == nil || *again.ReleaseYear != 1997 {
		t.Fatalf("release year not refreshed: %v", again.ReleaseYear)
	}

	rows, err := repo.GetByMBIDs(ctx, tx, []string{mbid})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByMBIDs: err=%v len=%d", err, len(rows))
	}

	count, err := repo.CountAll(ctx, tx)
	if err != nil {
		t.Fatalf("CountAll: %v", err)
	}
	if count < 1 {
		t.Fatalf("CountAll = %d, want >= 1", count)
	}
}

// Two callers racing on a never-seen registry ID must converge on one row.
// This runs against the pooled handle rather than the test transaction so
// each goroutine takes its own connection.
func TestAlbumRepoUpsertByMBIDConcurrent(t *testing.T) {
	db := testutil.DB(t)

	ctx := context.Background()
	repo := NewAlbumRepo(db, testutil.Logger(t))

	mbid := uuid.NewString()
	t.Cleanup(func() {
		db.Where("mbid = ?", mbid).Delete(&types.Album{})
	})

	results := make([]*types.Album, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = repo.UpsertByMBID(ctx, nil, &types.Album{
				ID:      uuid.New(),
				MBID:    &mbid,
				Title:   "Loveless",
				Artists: types.ArtistsJSON([]types.Artist{{ID: "rg2", Name: "My Bloody Valentine"}}),
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("UpsertByMBID goroutine %d: %v", i, err)
		}
	}
	if results[0].ID != results[1].ID {
		t.Fatalf("concurrent upserts returned different rows: %s vs %s", results[0].ID, results[1].ID)
	}

	rows, err := repo.GetByMBIDs(ctx, nil, []string{mbid})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByMBIDs: err=%v len=%d", err, len(rows))
	}
}

func TestAlbumRepoUpsertBySpotifyID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewAlbumRepo(db, testutil.Logger(t))

	spotifyID := "6dVIqQ8qmQ5GBnJ9shOYGE"
	a := &types.Album{
		ID:             uuid.New(),
		SpotifyAlbumID: &spotifyID,
		Title:          "In Rainbows",
		Artists:        types.ArtistsJSON(nil),
	}
	stored, err := repo.UpsertBySpotifyID(ctx, tx, a)
	if err != nil {
		t.Fatalf("UpsertBySpotifyID: %v", err)
	}
	if stored.MBID != nil {
		t.Fatalf("legacy-only row should have no mbid, got %v", *stored.MBID)
	}

	rows, err := repo.GetBySpotifyIDs(ctx, tx, []string{spotifyID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetBySpotifyIDs: err=%v len=%d", err, len(rows))
	}
}
