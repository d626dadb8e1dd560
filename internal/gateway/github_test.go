package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/github-stats-dashboard/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T) []byte {
	t.Helper()
	body, err := os.ReadFile("testdata/data.json")
	require.NoError(t, err)
	return body
}

// setupTestFetcher creates a GitHubFetcher that communicates with a mock HTTP server.
func setupTestFetcher(t *testing.T, handler http.Handler, withGraphQL bool) (*GitHubFetcher, *httptest.Server) {
	server := httptest.NewServer(handler)

	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	fetcher := &GitHubFetcher{
		loc:        GitHubLocation{Owner: "octo", Repo: "stats", Path: "public/data.json", Ref: "gh-pages"},
		restClient: restClient,
		logger:     zerolog.Nop(),
	}
	if withGraphQL {
		fetcher.graphqlClient = githubv4.NewEnterpriseClient(server.URL, server.Client())
	}
	return fetcher, server
}

func TestParseGitHubLocation(t *testing.T) {
	testCases := []struct {
		name        string
		source      string
		expected    GitHubLocation
		expectError bool
	}{
		{
			name:     "path without ref",
			source:   "github://octo/stats/data.json",
			expected: GitHubLocation{Owner: "octo", Repo: "stats", Path: "data.json"},
		},
		{
			name:     "nested path with ref",
			source:   "github://octo/stats/public/data.json@gh-pages",
			expected: GitHubLocation{Owner: "octo", Repo: "stats", Path: "public/data.json", Ref: "gh-pages"},
		},
		{name: "missing path", source: "github://octo/stats", expectError: true},
		{name: "missing repo", source: "github://octo", expectError: true},
		{name: "empty path", source: "github://octo/stats/", expectError: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loc, err := ParseGitHubLocation(tc.source)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, loc)
		})
	}
}

func TestGitHubFetcher_REST(t *testing.T) {
	fixture := readFixture(t)

	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "happy path - base64 contents",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/octo/stats/contents/public/data.json", r.URL.Path)
				assert.Equal(t, "gh-pages", r.URL.Query().Get("ref"))
				w.WriteHeader(http.StatusOK)
				fmt.Fprintf(w, `{"type":"file","encoding":"base64","content":%q}`, base64.StdEncoding.EncodeToString(fixture))
			},
		},
		{
			name: "error case - file is missing",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
			expectError:    true,
			expectedErrMsg: "failed to get contents",
		},
		{
			name: "error case - contents are not a stats document",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				fmt.Fprintf(w, `{"type":"file","encoding":"base64","content":%q}`, base64.StdEncoding.EncodeToString([]byte("<html>")))
			},
			expectError:    true,
			expectedErrMsg: "failed to parse stats document",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher, server := setupTestFetcher(t, http.HandlerFunc(tc.handlerFunc), false)
			defer server.Close()

			data, err := fetcher.FetchStats(context.Background())
			if tc.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrDataUnavailable)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "octocat", data.Meta.User)
			assert.Len(t, data.Repos, 4)
		})
	}
}

func TestGitHubFetcher_GraphQL(t *testing.T) {
	fixture := readFixture(t)
	text, err := json.Marshal(string(fixture))
	require.NoError(t, err)

	testCases := []struct {
		name           string
		responseBody   string
		expectError    bool
		expectedErrMsg string
	}{
		{
			name:         "happy path - blob text",
			responseBody: fmt.Sprintf(`{"data":{"repository":{"object":{"text":%s,"isTruncated":false}}}}`, text),
		},
		{
			name:           "error case - object not found",
			responseBody:   `{"data":{"repository":{"object":null}}}`,
			expectError:    true,
			expectedErrMsg: "not found",
		},
		{
			name:           "error case - GraphQL error",
			responseBody:   `{"errors":[{"message":"Something went wrong"}]}`,
			expectError:    true,
			expectedErrMsg: "failed to execute GraphQL query",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), "gh-pages:public/data.json")

				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, tc.responseBody)
			}
			fetcher, server := setupTestFetcher(t, http.HandlerFunc(handler), true)
			defer server.Close()

			data, err := fetcher.FetchStats(context.Background())
			if tc.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrDataUnavailable)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.ModePersonal, data.Meta.Mode)
			assert.Len(t, data.Timeline, 3)
		})
	}
}
