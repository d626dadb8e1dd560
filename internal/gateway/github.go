package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/github-stats-dashboard/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// GitHubLocation points at a stats document committed to a GitHub repository.
type GitHubLocation struct {
	Owner string
	Repo  string
	Path  string
	Ref   string // empty means the default branch
}

// ParseGitHubLocation parses "github://owner/repo/path/to/data.json[@ref]".
func ParseGitHubLocation(source string) (GitHubLocation, error) {
	rest := strings.TrimPrefix(source, "github://")
	var loc GitHubLocation
	if idx := strings.LastIndex(rest, "@"); idx >= 0 {
		loc.Ref = rest[idx+1:]
		rest = rest[:idx]
	}
	parts := strings.SplitN(rest, "/", 3)
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || strings.Trim(parts[2], "/") == "" {
		return GitHubLocation{}, fmt.Errorf("invalid GitHub source %q: want github://owner/repo/path[@ref]", source)
	}
	loc.Owner, loc.Repo, loc.Path = parts[0], parts[1], strings.Trim(parts[2], "/")
	return loc, nil
}

// expression is the GraphQL object expression ("<ref>:<path>").
func (l GitHubLocation) expression() string {
	ref := l.Ref
	if ref == "" {
		ref = "HEAD"
	}
	return ref + ":" + l.Path
}

func (l GitHubLocation) String() string {
	s := fmt.Sprintf("%s/%s/%s", l.Owner, l.Repo, l.Path)
	if l.Ref != "" {
		s += "@" + l.Ref
	}
	return s
}

// GitHubFetcher reads the stats document through the GitHub API. The GraphQL
// API needs authentication, so anonymous fetchers use the REST contents API.
type GitHubFetcher struct {
	loc           GitHubLocation
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        zerolog.Logger
}

// blobQuery reads a file's text in a single round trip.
type blobQuery struct {
	Repository struct {
		Object struct {
			Blob struct {
				Text        *string
				IsTruncated bool
			} `graphql:"... on Blob"`
		} `graphql:"object(expression: $expression)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// NewGitHubFetcher is a constructor that creates a new instance of GitHubFetcher.
func NewGitHubFetcher(loc GitHubLocation, token string, logger zerolog.Logger) (*GitHubFetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	var transport http.RoundTripper = rateLimitWaiter
	if token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	httpClient := &http.Client{Transport: transport}

	f := &GitHubFetcher{
		loc:        loc,
		restClient: github.NewClient(httpClient),
		logger:     logger,
	}
	if token != "" {
		f.graphqlClient = githubv4.NewClient(httpClient)
	}
	return f, nil
}

// FetchStats downloads and decodes the document.
func (g *GitHubFetcher) FetchStats(ctx context.Context) (*domain.StatsData, error) {
	var (
		body []byte
		err  error
	)
	if g.graphqlClient != nil {
		body, err = g.fetchBlob(ctx)
	} else {
		body, err = g.fetchContents(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
	}
	return domain.DecodeBytes(body)
}

func (g *GitHubFetcher) fetchBlob(ctx context.Context) ([]byte, error) {
	g.logger.Debug().Str("location", g.loc.String()).Msg("fetching stats document using GraphQL API")
	variables := map[string]interface{}{
		"owner":      githubv4.String(g.loc.Owner),
		"name":       githubv4.String(g.loc.Repo),
		"expression": githubv4.String(g.loc.expression()),
	}
	var q blobQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for %s: %w", g.loc, err)
	}
	blob := q.Repository.Object.Blob
	if blob.IsTruncated {
		// Large blobs come back truncated; the raw download has no such limit.
		g.logger.Debug().Msg("blob text truncated, falling back to REST download")
		return g.download(ctx)
	}
	if blob.Text == nil {
		return nil, fmt.Errorf("%s not found or not a text file", g.loc)
	}
	g.logger.Debug().Int("bytes", len(*blob.Text)).Msg("completed fetching stats document")
	return []byte(*blob.Text), nil
}

func (g *GitHubFetcher) fetchContents(ctx context.Context) ([]byte, error) {
	g.logger.Debug().Str("location", g.loc.String()).Msg("fetching stats document using REST API")
	opts := &github.RepositoryContentGetOptions{Ref: g.loc.Ref}
	file, _, _, err := g.restClient.Repositories.GetContents(ctx, g.loc.Owner, g.loc.Repo, g.loc.Path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get contents of %s with REST API: %w", g.loc, err)
	}
	if file == nil {
		return nil, fmt.Errorf("%s is a directory, not a file", g.loc)
	}
	// Files over 1 MB are listed without inline content.
	if file.GetEncoding() == "none" {
		return g.download(ctx)
	}
	text, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode contents of %s: %w", g.loc, err)
	}
	g.logger.Debug().Int("bytes", len(text)).Msg("completed fetching stats document")
	return []byte(text), nil
}

func (g *GitHubFetcher) download(ctx context.Context) ([]byte, error) {
	opts := &github.RepositoryContentGetOptions{Ref: g.loc.Ref}
	rc, _, err := g.restClient.Repositories.DownloadContents(ctx, g.loc.Owner, g.loc.Repo, g.loc.Path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", g.loc, err)
	}
	defer rc.Close()
	body, err := io.ReadAll(io.LimitReader(rc, domain.MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", g.loc, err)
	}
	if len(body) > domain.MaxDocumentSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", g.loc, domain.MaxDocumentSize)
	}
	return body, nil
}
