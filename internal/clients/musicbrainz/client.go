package musicbrainz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/simlrfm/simlr-backend/internal/pkg/envutil"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

// Client talks to the MusicBrainz release-group API.
type Client interface {
	SearchReleaseGroups(ctx context.Context, query string, limit int) ([]ReleaseGroup, error)
	GetReleaseGroup(ctx context.Context, mbid string) (*ReleaseGroup, error)
}

type Config struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	// RequestsPerSecond honors the registry's politeness policy of one
	// request per second for anonymous clients.
	RequestsPerSecond float64
}

func ConfigFromEnv(logg *logger.Logger) Config {
	return Config{
		BaseURL:    envutil.GetEnv("MUSICBRAINZ_BASE_URL", "https://musicbrainz.org/ws/2", logg),
		UserAgent:  envutil.GetEnv("MUSICBRAINZ_USER_AGENT", "simlr/1.0 (https://simlr.fm)", logg),
		Timeout:    10 * time.Second,
		MaxRetries: 3,
	}
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

func New(logg *logger.Logger, cfg Config) Client {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	return &client{
		log:        logg.With("client", "MusicBrainzClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

func (c *client) SearchReleaseGroups(ctx context.Context, query string, limit int) ([]ReleaseGroup, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("fmt", "json")

	raw, status, err := c.do(ctx, "/release-group?"+params.Encode())
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("musicbrainz search http %d", status)
	}

	var resp wireSearchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("musicbrainz search decode: %w", err)
	}

	results := make([]ReleaseGroup, 0, len(resp.ReleaseGroups))
	for _, w := range resp.ReleaseGroups {
		results = append(results, mapReleaseGroup(w))
	}
	return results, nil
}

// GetReleaseGroup returns (nil, nil) when the registry has no such release
// group; the caller turns that into a not-found error.
func (c *client) GetReleaseGroup(ctx context.Context, mbid string) (*ReleaseGroup, error) {
	params := url.Values{}
	params.Set("inc", "artist-credits")
	params.Set("fmt", "json")

	raw, status, err := c.do(ctx, "/release-group/"+url.PathEscape(mbid)+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("musicbrainz lookup http %d", status)
	}

	var w wireReleaseGroup
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("musicbrainz lookup decode: %w", err)
	}
	rg := mapReleaseGroup(w)
	return &rg, nil
}

// do rate-limits, then retries transient failures (503 and transport errors)
// with exponential backoff. A 404 is a result, not a failure.
func (c *client) do(ctx context.Context, path string) ([]byte, int, error) {
	var lastErr error

	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			sleepFor := time.Duration(1000*(1<<(attempt-1))) * time.Millisecond
			c.log.Warn("MusicBrainz request retrying",
				"path", path,
				"attempt", attempt+1,
				"sleep", sleepFor.String(),
				"error", fmt.Sprint(lastErr),
			)
			select {
			case <-time.After(sleepFor):
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, err
		}

		raw, status, err := c.doOnce(ctx, path)
		if err != nil {
			lastErr = err
			continue
		}
		if status == http.StatusServiceUnavailable {
			lastErr = fmt.Errorf("musicbrainz http %d", status)
			continue
		}
		return raw, status, nil
	}

	if lastErr == nil {
		lastErr = errors.New("musicbrainz: retries exhausted")
	}
	return nil, 0, lastErr
}

func (c *client) doOnce(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return raw, resp.StatusCode, nil
}
