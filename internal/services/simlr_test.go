package services

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/simlrfm/simlr-backend/internal/clients/spotify"
	"github.com/simlrfm/simlr-backend/internal/data/repos"
	"github.com/simlrfm/simlr-backend/internal/data/repos/testutil"
	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/pkg/apperr"
	"github.com/simlrfm/simlr-backend/internal/pkg/rank"
)

// stubAlbumService resolves identifiers from a fixed map, so simlr tests
// never touch the metadata registry. resolveCalls counts Resolve invocations;
// Submit resolves the two endpoints concurrently, hence the atomic.
type stubAlbumService struct {
	albums       map[string]*types.Album
	resolveCalls atomic.Int32
}

func (s *stubAlbumService) Resolve(ctx context.Context, identifier string) (*types.Album, error) {
	s.resolveCalls.Add(1)
	a, ok := s.albums[identifier]
	if !ok {
		return nil, apperr.NotFound("album_not_found", "no album with that id")
	}
	return a, nil
}

func (s *stubAlbumService) Upsert(ctx context.Context, identifier string) (*types.Album, error) {
	return s.Resolve(ctx, identifier)
}

func (s *stubAlbumService) GetByID(ctx context.Context, albumID uuid.UUID) (*types.Album, error) {
	for _, a := range s.albums {
		if a.ID == albumID {
			return a, nil
		}
	}
	return nil, apperr.NotFound("album_not_found", "no album with that id")
}

func (s *stubAlbumService) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	return nil, nil
}

func (s *stubAlbumService) SearchSpotify(ctx context.Context, query string, limit int) ([]spotify.Album, error) {
	return nil, nil
}

func validReason() string {
	return strings.Repeat("Both records share the same producer and mood. ", 4)[:150]
}

func newSimlrService(t *testing.T, db *testingDB, albums map[string]*types.Album) SimlrService {
	t.Helper()
	return newSimlrServiceWith(t, db, &stubAlbumService{albums: albums})
}

func newSimlrServiceWith(t *testing.T, db *testingDB, stub *stubAlbumService) SimlrService {
	t.Helper()
	logg := testutil.Logger(t)
	return NewSimlrService(
		db.handle,
		logg,
		repos.NewSimlrRepo(db.handle, logg),
		repos.NewRatingRepo(db.handle, logg),
		repos.NewAlbumRepo(db.handle, logg),
		repos.NewVoteRepo(db.handle, logg),
		stub,
		rank.Config{Epoch: rank.DefaultEpoch, Divisor: rank.DefaultDivisor},
		140, 280,
	)
}

func TestSimlrSubmitRejectsReasonLength(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newSimlrService(t, db, map[string]*types.Album{})

	short := strings.Repeat("x", 139)
	if _, err := svc.Submit(ctx, uuid.New(), "a", "b", short); err == nil {
		t.Fatalf("139-char reason should be rejected")
	}
	long := strings.Repeat("x", 281)
	if _, err := svc.Submit(ctx, uuid.New(), "a", "b", long); err == nil {
		t.Fatalf("281-char reason should be rejected")
	}
}

func TestSimlrSubmitRejectsSelfLoop(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	album := testutil.SeedAlbum(t, ctx, db.handle, "self")
	svc := newSimlrService(t, db, map[string]*types.Album{"a": album, "b": album})

	_, err := svc.Submit(ctx, uuid.New(), "a", "b", validReason())
	if err == nil {
		t.Fatalf("self loop should be rejected")
	}
	if ae := apperr.From(err); ae == nil || ae.Code != "self_loop" {
		t.Fatalf("want self_loop, got %v", err)
	}
}

func TestSimlrSubmitRejectsIdenticalIdentifiersBeforeResolving(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	stub := &stubAlbumService{albums: map[string]*types.Album{}}
	svc := newSimlrServiceWith(t, db, stub)

	_, err := svc.Submit(ctx, uuid.New(), "same-id", "same-id", validReason())
	if err == nil {
		t.Fatalf("identical identifiers should be rejected")
	}
	if ae := apperr.From(err); ae == nil || ae.Code != "self_loop" || ae.Status != 400 {
		t.Fatalf("want self_loop 400, got %v", err)
	}
	if n := stub.resolveCalls.Load(); n != 0 {
		t.Fatalf("resolver called %d times before rejection, want 0", n)
	}
}

func TestSimlrSubmitUnknownAlbumIsBadRequest(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	svc := newSimlrService(t, db, map[string]*types.Album{})

	_, err := svc.Submit(ctx, uuid.New(), "ghost-src", "ghost-dst", validReason())
	if err == nil {
		t.Fatalf("unresolvable endpoints should be rejected")
	}
	if ae := apperr.From(err); ae == nil || ae.Status != 400 || ae.Code != "unknown_album" {
		t.Fatalf("want unknown_album 400, got %v", err)
	}
}

func TestSimlrSubmitEnforcesRatingGate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	source := testutil.SeedAlbum(t, ctx, db.handle, "source")
	target := testutil.SeedAlbum(t, ctx, db.handle, "target")
	u := testutil.SeedUser(t, ctx, db.handle, uuid.NewString()+"@example.com")

	svc := newSimlrService(t, db, map[string]*types.Album{"src": source, "dst": target})

	_, err := svc.Submit(ctx, u.ID, "src", "dst", validReason())
	if err == nil {
		t.Fatalf("unrated source should be forbidden")
	}
	if ae := apperr.From(err); ae == nil || ae.Status != 403 {
		t.Fatalf("want 403, got %v", err)
	}

	// rating the source opens the gate
	testutil.SeedRating(t, ctx, db.handle, u.ID, source.ID, 8)
	sub, err := svc.Submit(ctx, u.ID, "src", "dst", validReason())
	if err != nil {
		t.Fatalf("Submit after rating: %v", err)
	}
	if sub.SourceAlbumID != source.ID || sub.TargetAlbumID != target.ID {
		t.Fatalf("edge endpoints wrong: %+v", sub)
	}
}

func TestSimlrListDefaultsToTop(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	logg := testutil.Logger(t)

	source := testutil.SeedAlbum(t, ctx, db.handle, "default-src")
	voted := testutil.SeedAlbum(t, ctx, db.handle, "default-voted")
	fresh := testutil.SeedAlbum(t, ctx, db.handle, "default-fresh")

	// the voted edge is older, so a recency default would put it last
	votedEdge := testutil.SeedEdge(t, ctx, db.handle, source.ID, voted.ID)
	testutil.SeedEdge(t, ctx, db.handle, source.ID, fresh.ID)

	u := testutil.SeedUser(t, ctx, db.handle, uuid.NewString()+"@example.com")
	voteRepo := repos.NewVoteRepo(db.handle, logg)
	if _, err := voteRepo.Upsert(ctx, nil, &types.Vote{
		ID:         uuid.New(),
		UserID:     u.ID,
		EntityType: types.EntitySimlrEdge,
		EntityID:   votedEdge.ID,
		Value:      1,
	}); err != nil {
		t.Fatalf("seed vote: %v", err)
	}

	svc := newSimlrService(t, db, map[string]*types.Album{"src": source})

	entries, err := svc.List(ctx, uuid.Nil, "src", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].EdgeID != votedEdge.ID {
		t.Fatalf("default sort should lead with the highest score, got edge %s first", entries[0].EdgeID)
	}
}

func TestSimlrSubmitDeduplicatesEdges(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	source := testutil.SeedAlbum(t, ctx, db.handle, "dedupe-src")
	target := testutil.SeedAlbum(t, ctx, db.handle, "dedupe-dst")
	alice := testutil.SeedUser(t, ctx, db.handle, uuid.NewString()+"@example.com")
	bob := testutil.SeedUser(t, ctx, db.handle, uuid.NewString()+"@example.com")
	testutil.SeedRating(t, ctx, db.handle, alice.ID, source.ID, 7)
	testutil.SeedRating(t, ctx, db.handle, bob.ID, source.ID, 9)

	svc := newSimlrService(t, db, map[string]*types.Album{"src": source, "dst": target})

	first, err := svc.Submit(ctx, alice.ID, "src", "dst", validReason())
	if err != nil {
		t.Fatalf("Submit alice: %v", err)
	}
	second, err := svc.Submit(ctx, bob.ID, "src", "dst", validReason())
	if err != nil {
		t.Fatalf("Submit bob: %v", err)
	}
	if first.EdgeID != second.EdgeID {
		t.Fatalf("same pair produced two edges")
	}

	entries, err := svc.List(ctx, uuid.Nil, "src", "new")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if len(entries[0].Reasons) != 2 {
		t.Fatalf("reasons = %d, want 2", len(entries[0].Reasons))
	}
}
