package social

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/simlrfm/simlr-backend/internal/data/repos/testutil"
	types "github.com/simlrfm/simlr-backend/internal/domain"
)

func TestVoteRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewVoteRepo(db, testutil.Logger(t))

	voter := testutil.SeedUser(t, ctx, tx, "voterepo@example.com")
	author := testutil.SeedUser(t, ctx, tx, "voterepo-author@example.com")
	album := testutil.SeedAlbum(t, ctx, tx, "votes")
	post := testutil.SeedPost(t, ctx, tx, album.ID, author.ID, "thread")

	v, err := repo.Upsert(ctx, tx, &types.Vote{
		ID:         uuid.New(),
		UserID:     voter.ID,
		EntityType: types.EntityPost,
		EntityID:   post.ID,
		Value:      1,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	flipped, err := repo.Upsert(ctx, tx, &types.Vote{
		ID:         uuid.New(),
		UserID:     voter.ID,
		EntityType: types.EntityPost,
		EntityID:   post.ID,
		Value:      -1,
	})
	if err != nil {
		t.Fatalf("Upsert flip: %v", err)
	}
	if flipped.ID != v.ID {
		t.Fatalf("flip created a second row")
	}
	if flipped.Value != -1 {
		t.Fatalf("flip did not overwrite value: %d", flipped.Value)
	}

	sum, err := repo.SumByEntity(ctx, tx, types.EntityPost, post.ID)
	if err != nil {
		t.Fatalf("SumByEntity: %v", err)
	}
	if sum != -1 {
		t.Fatalf("SumByEntity = %d, want -1", sum)
	}

	if err := repo.DeleteByUserEntity(ctx, tx, voter.ID, types.EntityPost, post.ID); err != nil {
		t.Fatalf("DeleteByUserEntity: %v", err)
	}

	sum, err = repo.SumByEntity(ctx, tx, types.EntityPost, post.ID)
	if err != nil {
		t.Fatalf("SumByEntity after delete: %v", err)
	}
	if sum != 0 {
		t.Fatalf("sum with no votes = %d, want 0", sum)
	}

	got, err := repo.GetByUserEntity(ctx, tx, voter.ID, types.EntityPost, post.ID)
	if err != nil {
		t.Fatalf("GetByUserEntity: %v", err)
	}
	if got != nil {
		t.Fatalf("deleted vote still readable")
	}
}

func TestVoteRepoBatchLookups(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewVoteRepo(db, testutil.Logger(t))

	author := testutil.SeedUser(t, ctx, tx, "votebatch-author@example.com")
	album := testutil.SeedAlbum(t, ctx, tx, "votebatch")
	p1 := testutil.SeedPost(t, ctx, tx, album.ID, author.ID, "one")
	p2 := testutil.SeedPost(t, ctx, tx, album.ID, author.ID, "two")

	for i := 0; i < 3; i++ {
		u := testutil.SeedUser(t, ctx, tx, uuid.NewString()+"@example.com")
		value := 1
		if i == 2 {
			value = -1
		}
		if _, err := repo.Upsert(ctx, tx, &types.Vote{
			ID:         uuid.New(),
			UserID:     u.ID,
			EntityType: types.EntityPost,
			EntityID:   p1.ID,
			Value:      value,
		}); err != nil {
			t.Fatalf("seed vote: %v", err)
		}
	}

	sums, err := repo.SumsByEntities(ctx, tx, types.EntityPost, []uuid.UUID{p1.ID, p2.ID})
	if err != nil {
		t.Fatalf("SumsByEntities: %v", err)
	}
	if sums[p1.ID] != 1 {
		t.Fatalf("sums[p1] = %d, want 1", sums[p1.ID])
	}
	if _, ok := sums[p2.ID]; ok {
		t.Fatalf("unvoted entity should be absent from the sums map")
	}

	mine, err := repo.UserVotesByEntities(ctx, tx, uuid.Nil, types.EntityPost, []uuid.UUID{p1.ID})
	if err != nil {
		t.Fatalf("UserVotesByEntities anonymous: %v", err)
	}
	if len(mine) != 0 {
		t.Fatalf("anonymous lookup should be empty")
	}
}
