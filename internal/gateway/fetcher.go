// Package gateway retrieves the pre-computed stats document from wherever the
// generator published it: a local file, an HTTP(S) URL or a GitHub repository.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/naka-gawa/github-stats-dashboard/internal/domain"
	"github.com/rs/zerolog"
)

// Fetcher defines the behavior of a gateway for fetching the stats document.
// Implementations return a decoded and validated document, or an error
// wrapping domain.ErrDataUnavailable.
type Fetcher interface {
	FetchStats(ctx context.Context) (*domain.StatsData, error)
}

// NewFetcher picks a fetcher for source:
//
//	path/to/data.json, file:///abs/data.json   local file
//	http(s)://host/data.json                   plain GET
//	github://owner/repo/path/data.json[@ref]   file in a GitHub repository
//
// token is only sent to GitHub.
func NewFetcher(source, token string, logger zerolog.Logger) (Fetcher, error) {
	switch {
	case source == "":
		return nil, fmt.Errorf("stats source is empty")
	case strings.HasPrefix(source, "github://"):
		loc, err := ParseGitHubLocation(source)
		if err != nil {
			return nil, err
		}
		return NewGitHubFetcher(loc, token, logger)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return NewHTTPFetcher(source, http.DefaultClient, logger), nil
	default:
		return NewFileFetcher(strings.TrimPrefix(source, "file://"), logger), nil
	}
}

// FileFetcher reads the stats document from disk.
type FileFetcher struct {
	path   string
	logger zerolog.Logger
}

// NewFileFetcher creates a FileFetcher for path.
func NewFileFetcher(path string, logger zerolog.Logger) *FileFetcher {
	return &FileFetcher{path: path, logger: logger}
}

// FetchStats opens and decodes the file.
func (f *FileFetcher) FetchStats(ctx context.Context) (*domain.StatsData, error) {
	f.logger.Debug().Str("path", f.path).Msg("reading stats document")
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
	}
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open stats document: %w", domain.ErrDataUnavailable, err)
	}
	defer file.Close()
	return domain.Decode(file)
}

// HTTPFetcher retrieves the stats document with a single GET.
type HTTPFetcher struct {
	url    string
	client *http.Client
	logger zerolog.Logger
}

// NewHTTPFetcher creates an HTTPFetcher. A nil client means http.DefaultClient.
func NewHTTPFetcher(url string, client *http.Client, logger zerolog.Logger) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{url: url, client: client, logger: logger}
}

// FetchStats issues the GET and decodes the body. Any non-2xx response is a failure.
func (h *HTTPFetcher) FetchStats(ctx context.Context) (*domain.StatsData, error) {
	h.logger.Debug().Str("url", h.url).Msg("fetching stats document")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %w", domain.ErrDataUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch stats document: %w", domain.ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected HTTP status %s", domain.ErrDataUnavailable, resp.Status)
	}
	h.logger.Debug().Int("status", resp.StatusCode).Msg("stats document received")
	return domain.Decode(resp.Body)
}
