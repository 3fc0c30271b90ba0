package coverart

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/simlrfm/simlr-backend/internal/pkg/envutil"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

// Client probes the Cover Art Archive for release-group front covers.
type Client interface {
	FrontCoverURL(ctx context.Context, mbid string) (*string, error)
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func ConfigFromEnv(logg *logger.Logger) Config {
	return Config{
		BaseURL: envutil.GetEnv("COVERART_BASE_URL", "https://coverartarchive.org", logg),
		Timeout: 10 * time.Second,
	}
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

func New(logg *logger.Logger, cfg Config) Client {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		// The archive answers HEAD with a redirect to the image host; the
		// probe only needs the status, not the bytes.
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
	return &client{
		log:        logg.With("client", "CoverArtClient"),
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// FrontCoverURL returns the 500px front cover URL when the archive has one,
// nil when it has none, and an error only on transport or server failure.
func (c *client) FrontCoverURL(ctx context.Context, mbid string) (*string, error) {
	coverURL := c.cfg.BaseURL + "/release-group/" + url.PathEscape(mbid) + "/front-500"

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, coverURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return &coverURL, nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("coverart http %d", resp.StatusCode)
	}
}
