package musicbrainz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

func testClient(t *testing.T, baseURL string) Client {
	t.Helper()
	logg, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return New(logg, Config{
		BaseURL:           baseURL,
		UserAgent:         "simlr-test/1.0",
		Timeout:           2 * time.Second,
		MaxRetries:        3,
		RequestsPerSecond: 1000,
	})
}

func TestGetReleaseGroupMapsArtists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "simlr-test/1.0" {
			t.Errorf("missing identifying User-Agent, got %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "b1392450-e666-3926-a536-22c65f834433",
			"title": "Loveless",
			"first-release-date": "1991-11-04",
			"artist-credit": [{"name": "My Bloody Valentine", "artist": {"id": "a1", "name": "My Bloody Valentine"}}]
		}`))
	}))
	defer srv.Close()

	rg, err := testClient(t, srv.URL).GetReleaseGroup(context.Background(), "b1392450-e666-3926-a536-22c65f834433")
	if err != nil {
		t.Fatalf("GetReleaseGroup: %v", err)
	}
	if rg == nil {
		t.Fatalf("GetReleaseGroup returned nil for a known id")
	}
	if rg.Title != "Loveless" {
		t.Fatalf("title = %q", rg.Title)
	}
	if len(rg.Artists) != 1 || rg.Artists[0].Name != "My Bloody Valentine" {
		t.Fatalf("artists = %+v", rg.Artists)
	}
	if year := rg.ReleaseYear(); year == nil || *year != 1991 {
		t.Fatalf("release year = %v, want 1991", year)
	}
}

func TestGetReleaseGroupNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	rg, err := testClient(t, srv.URL).GetReleaseGroup(context.Background(), "00000000-0000-0000-0000-000000000000")
	if err != nil {
		t.Fatalf("404 should not be an error, got %v", err)
	}
	if rg != nil {
		t.Fatalf("404 should map to nil, got %+v", rg)
	}
}

func TestGetReleaseGroupRetriesOn503(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"id": "x", "title": "t", "first-release-date": "", "artist-credit": []}`))
	}))
	defer srv.Close()

	rg, err := testClient(t, srv.URL).GetReleaseGroup(context.Background(), "x")
	if err != nil {
		t.Fatalf("retry should have recovered: %v", err)
	}
	if rg == nil || rg.Title != "t" {
		t.Fatalf("unexpected result: %+v", rg)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("calls = %d, want 2", got)
	}
}

func TestGetReleaseGroupGivesUpAfterRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := testClient(t, srv.URL).GetReleaseGroup(context.Background(), "x"); err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("calls = %d, want 3", got)
	}
}

func TestSearchReleaseGroups(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "12" {
			t.Errorf("limit = %q, want 12", got)
		}
		w.Write([]byte(`{"release-groups": [
			{"id": "rg1", "title": "one", "first-release-date": "2001", "artist-credit": []},
			{"id": "rg2", "title": "two", "first-release-date": "", "artist-credit": []}
		]}`))
	}))
	defer srv.Close()

	results, err := testClient(t, srv.URL).SearchReleaseGroups(context.Background(), "radiohead", 12)
	if err != nil {
		t.Fatalf("SearchReleaseGroups: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len = %d, want 2", len(results))
	}
	if results[0].MBID != "rg1" {
		t.Fatalf("first result = %+v", results[0])
	}
	if results[1].ReleaseYear() != nil {
		t.Fatalf("blank date should yield nil year")
	}
}
