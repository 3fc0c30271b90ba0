package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/pkg/envutil"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

// Album is the mapped shape handed to services.
type Album struct {
	SpotifyID   string
	Title       string
	Artists     []types.Artist
	CoverURL    *string
	ReleaseYear *int
}

// Client covers the read paths the legacy catalog still serves. Lookups are
// anonymous-app calls under the client-credentials flow.
type Client interface {
	HasCredentials() bool
	GetAlbum(ctx context.Context, spotifyID string) (*Album, error)
	SearchAlbums(ctx context.Context, query string, limit int) ([]Album, error)
}

type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	TokenURL     string
	Timeout      time.Duration
}

func ConfigFromEnv(logg *logger.Logger) Config {
	return Config{
		ClientID:     envutil.GetEnv("SPOTIFY_CLIENT_ID", "", logg),
		ClientSecret: envutil.GetEnv("SPOTIFY_CLIENT_SECRET", "", logg),
		BaseURL:      envutil.GetEnv("SPOTIFY_BASE_URL", "https://api.spotify.com/v1", logg),
		TokenURL:     envutil.GetEnv("SPOTIFY_TOKEN_URL", "https://accounts.spotify.com/api/token", logg),
		Timeout:      10 * time.Second,
	}
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func New(logg *logger.Logger, cfg Config) Client {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.TokenURL = strings.TrimSpace(cfg.TokenURL)
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &client{
		log:        logg.With("client", "SpotifyClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *client) HasCredentials() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != ""
}

// GetAlbum returns (nil, nil) for an unknown catalog ID.
func (c *client) GetAlbum(ctx context.Context, spotifyID string) (*Album, error) {
	raw, status, err := c.get(ctx, "/albums/"+url.PathEscape(spotifyID))
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("spotify album http %d", status)
	}

	var w wireAlbum
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("spotify album decode: %w", err)
	}
	album := mapAlbum(w)
	return &album, nil
}

func (c *client) SearchAlbums(ctx context.Context, query string, limit int) ([]Album, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "album")
	params.Set("limit", strconv.Itoa(limit))

	raw, status, err := c.get(ctx, "/search?"+params.Encode())
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("spotify search http %d", status)
	}

	var resp struct {
		Albums struct {
			Items []wireAlbum `json:"items"`
		} `json:"albums"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("spotify search decode: %w", err)
	}

	results := make([]Album, 0, len(resp.Albums.Items))
	for _, w := range resp.Albums.Items {
		results = append(results, mapAlbum(w))
	}
	return results, nil
}

func (c *client) get(ctx context.Context, path string) ([]byte, int, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

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

// token returns the cached app token, refreshing it through the
// client-credentials grant when it is missing or about to expire.
func (c *client) token(ctx context.Context) (string, error) {
	if !c.HasCredentials() {
		return "", fmt.Errorf("spotify credentials not configured")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-30*time.Second)) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("spotify token http %d", resp.StatusCode)
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(raw, &tok); err != nil {
		return "", fmt.Errorf("spotify token decode: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("spotify token response missing access_token")
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return c.accessToken, nil
}

// --- wire types ---

type wireAlbum struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"artists"`
	Images []struct {
		URL    string `json:"url"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	} `json:"images"`
	ReleaseDate string `json:"release_date"`
}

func mapAlbum(w wireAlbum) Album {
	artists := make([]types.Artist, 0, len(w.Artists))
	for _, a := range w.Artists {
		artists = append(artists, types.Artist{ID: a.ID, Name: a.Name})
	}

	album := Album{
		SpotifyID: w.ID,
		Title:     w.Name,
		Artists:   artists,
	}

	if len(w.Images) > 0 {
		u := w.Images[0].URL
		album.CoverURL = &u
	}
	if len(w.ReleaseDate) >= 4 {
		if year, err := strconv.Atoi(w.ReleaseDate[:4]); err == nil {
			album.ReleaseYear = &year
		}
	}
	return album
}
