// Package ambient fetches the outside temperature used to default the
// planning temperature when a request does not carry one.
package ambient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/tanklogix/loadplan/infra/logger"
)

// Config defines the ambient temperature source.
type Config struct {
	Enabled bool `json:"enabled"`
	// URL must answer GET with {"temp_f": <number>}.
	URL        string `json:"url"`
	TTLSeconds int    `json:"ttl_seconds"`
	// DefaultTempF is used when the source is disabled or unreachable.
	DefaultTempF float64 `json:"default_temp_f"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TTLSeconds <= 0 {
		c.TTLSeconds = 600
	}
	if c.DefaultTempF == 0 {
		c.DefaultTempF = 60
	}
}

// Reading is an explicit cache value: a temperature and when it was fetched.
// Expiry is checked on every read; there is no shared process-wide cache.
type Reading struct {
	TempF     float64
	FetchedAt time.Time
}

// Expired reports whether the reading is older than ttl.
func (r Reading) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(r.FetchedAt) > ttl
}

// Client polls the configured endpoint, caching the last reading for the
// configured TTL.
type Client struct {
	cfg    Config
	ttl    time.Duration
	http   *http.Client
	log    logger.Logger
	nowFn  func() time.Time
	mu     sync.Mutex
	cached *Reading
}

// New creates an ambient temperature client.
func New(cfg Config) *Client {
	cfg.SetDefaults()
	return &Client{
		cfg:   cfg,
		ttl:   time.Duration(cfg.TTLSeconds) * time.Second,
		http:  &http.Client{Timeout: 10 * time.Second},
		log:   logger.New("ambient"),
		nowFn: time.Now,
	}
}

// TemperatureF returns the current ambient temperature, re-fetching only when
// the cached reading has expired.
func (c *Client) TemperatureF(ctx context.Context) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.nowFn()
	if c.cached != nil && !c.cached.Expired(now, c.ttl) {
		return c.cached.TempF, nil
	}
	temp, err := c.fetch(ctx)
	if err != nil {
		if c.cached != nil {
			// A stale reading beats no reading.
			c.log.Warnf("ambient fetch failed, serving stale reading: %v", err)
			return c.cached.TempF, nil
		}
		return 0, err
	}
	c.cached = &Reading{TempF: temp, FetchedAt: now}
	return temp, nil
}

func (c *Client) fetch(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("ambient source status %d", resp.StatusCode)
	}
	var body struct {
		TempF float64 `json:"temp_f"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode ambient response: %w", err)
	}
	return body.TempF, nil
}
