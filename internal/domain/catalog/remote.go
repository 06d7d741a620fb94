package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/shell/internal/infrastructure/resilience"
)

// MaxRemoteSize bounds a fetched catalog document.
const MaxRemoteSize = 4 << 20

// FetcherConfig tunes remote catalog fetching.
type FetcherConfig struct {
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// DefaultFetcherConfig returns the settings used by the server.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		Timeout:      15 * time.Second,
		RetryMax:     3,
		RetryWaitMin: 500 * time.Millisecond,
		RetryWaitMax: 5 * time.Second,
	}
}

// Fetcher downloads catalog documents over HTTP with retries, behind a
// circuit breaker.
type Fetcher struct {
	client  *retryablehttp.Client
	breaker *resilience.Breaker
	logger  *zap.Logger
}

// NewFetcher creates a fetcher.
func NewFetcher(cfg FetcherConfig, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("catalog.fetch")

	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.RetryWaitMin = cfg.RetryWaitMin
	client.RetryWaitMax = cfg.RetryWaitMax
	client.HTTPClient.Timeout = cfg.Timeout
	client.Logger = nil

	breaker := resilience.New("catalog-remote", resilience.Settings{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Fetcher{client: client, breaker: breaker, logger: logger}
}

// Fetch downloads and decodes the catalog at rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]Entry, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("invalid catalog url %q", rawURL)
	}

	var entries []Entry
	err = f.breaker.Do(ctx, func(ctx context.Context) error {
		req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json, application/toml, application/yaml")

		resp, err := f.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, MaxRemoteSize))
		if err != nil {
			return err
		}

		entries, err = Decode(remoteFormat(u.Path, resp.Header.Get("Content-Type"), data), data)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch catalog %s: %w", u.Redacted(), err)
	}

	f.logger.Debug("Fetched catalog", zap.String("url", u.Redacted()), zap.Int("entries", len(entries)))
	return entries, nil
}

// remoteFormat picks a decoder extension from the URL path, then the
// declared content type, then the sniffed content. YAML is the fallback.
func remoteFormat(urlPath, contentType string, data []byte) string {
	switch ext := strings.ToLower(path.Ext(urlPath)); ext {
	case ".yaml", ".yml", ".toml", ".json":
		return ext
	}

	switch ct := strings.ToLower(contentType); {
	case strings.Contains(ct, "json"):
		return ".json"
	case strings.Contains(ct, "toml"):
		return ".toml"
	case strings.Contains(ct, "yaml"):
		return ".yaml"
	}

	if mimetype.Detect(data).Is("application/json") {
		return ".json"
	}
	return ".yaml"
}

// LoadURL fetches rawURL with f and adds its entries. It returns the number
// of entries added.
func (c *Catalog) LoadURL(ctx context.Context, f *Fetcher, rawURL string) (int, error) {
	entries, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, e := range entries {
		if err := c.Add(e); err != nil {
			c.logger.Warn("Skipping catalog entry", zap.String("url", rawURL), zap.Error(err))
			continue
		}
		added++
	}
	c.logger.Info("Remote catalog loaded", zap.Int("entries", added))
	return added, nil
}
