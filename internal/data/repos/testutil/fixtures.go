package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	types "github.com/simlrfm/simlr-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	hash := "pw"
	username := "u_" + uuid.NewString()[:8]
	u := &types.User{
		ID:           uuid.New(),
		Email:        &email,
		PasswordHash: &hash,
		Username:     &username,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedAlbum(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *types.Album {
	tb.Helper()
	mbid := uuid.NewString()
	a := &types.Album{
		ID:      uuid.New(),
		MBID:    &mbid,
		Title:   title,
		Artists: types.ArtistsJSON([]types.Artist{{ID: "a1", Name: "Artist"}}),
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed album: %v", err)
	}
	return a
}

func SeedRating(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, albumID uuid.UUID, score int) *types.Rating {
	tb.Helper()
	r := &types.Rating{
		ID:      uuid.New(),
		UserID:  userID,
		AlbumID: albumID,
		Score:   score,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed rating: %v", err)
	}
	return r
}

func SeedPost(tb testing.TB, ctx context.Context, tx *gorm.DB, albumID, userID uuid.UUID, title string) *types.Post {
	tb.Helper()
	p := &types.Post{
		ID:      uuid.New(),
		AlbumID: albumID,
		UserID:  userID,
		Title:   title,
		Body:    "body",
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed post: %v", err)
	}
	return p
}

func SeedEdge(tb testing.TB, ctx context.Context, tx *gorm.DB, sourceAlbumID, targetAlbumID uuid.UUID) *types.SimlrEdge {
	tb.Helper()
	e := &types.SimlrEdge{
		ID:            uuid.New(),
		SourceAlbumID: sourceAlbumID,
		TargetAlbumID: targetAlbumID,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed edge: %v", err)
	}
	return e
}

func PtrString(v string) *string { return &v }

func PtrInt(v int) *int { return &v }
