package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"cortex/internal/core/domain"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	DefaultRateLimit = 5
	DefaultBurst     = 5
	DefaultTimeout   = 20 * time.Second
	DefaultUserAgent = "cortex-bot/1.0"
	maxBodySize      = 10 << 20
)

type Config struct {
	// RateLimit is the sustained number of outbound requests per second.
	RateLimit float64
	Burst     int
	Timeout   time.Duration
	UserAgent string
}

// Client is the shared outbound HTTP client of all fetchers and scrapers.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// StatusError is returned for non-2xx responses. A 404 matches domain.ErrNotFound.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

func (e *StatusError) Is(target error) bool {
	return target == domain.ErrNotFound && e.StatusCode == http.StatusNotFound
}

func NewClient(cfg Config) *Client {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		userAgent: cfg.UserAgent,
	}
}

// Get returns the body of a successful GET request.
func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	path := redact(rawURL)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("error waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		err = fmt.Errorf("error creating request %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := c.http.Do(req)
	if err != nil {
		err = fmt.Errorf("error executing request to %s: %w", path, redactErr(err))
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		err := &StatusError{StatusCode: res.StatusCode, URL: path}
		log.Warn().Err(err).Str("path", path).Send()
		return nil, err
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		err = fmt.Errorf("error reading response %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	log.Trace().Str("path", path).Int("bytes", len(buf)).Msg("fetched")

	return buf, nil
}

// GetJSON performs a GET request and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, headers map[string]string, out any) error {
	buf, err := c.Get(ctx, rawURL, headers)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(buf, out); err != nil {
		return fmt.Errorf("error decoding response from %s: %w", redact(rawURL), err)
	}

	return nil
}

// redact drops the query string, which carries API keys for most providers.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}

	u.RawQuery = ""
	u.User = nil

	return u.String()
}

func redactErr(err error) error {
	if urlErr, ok := err.(*url.Error); ok {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}

	return err
}
