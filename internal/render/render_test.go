package render

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"strings"
	"testing"

	"github.com/naka-gawa/github-stats-dashboard/internal/domain"
	"github.com/naka-gawa/github-stats-dashboard/internal/format"
	"github.com/naka-gawa/github-stats-dashboard/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *domain.StatsData {
	return &domain.StatsData{
		Meta: domain.Meta{
			User:        "octocat",
			DateRange:   domain.DateRange{Since: "2024-01-01", Until: "2024-01-31"},
			GeneratedAt: "2024-02-01T08:30:00Z",
			Mode:        domain.ModePersonal,
		},
		Summary: domain.Summary{
			TotalCommits: 120,
			TotalAdded:   5000,
			TotalDeleted: 1200,
			NetGrowth:    3800,
			ActiveDays:   30,
			ActiveRepos:  4,
		},
		Repos: []domain.RepoStats{
			{Name: "a/x", Commits: 5, Added: 10, Deleted: 40},
			{Name: "a/y", Commits: 15, Added: 900, Deleted: 100},
		},
		Timeline: []domain.TimelineEntry{
			{Date: "2024-01-02", Commits: 3, Added: 400, Deleted: 20},
			{Date: "2024-01-01", Commits: 1, Added: 50, Deleted: 5},
		},
		Highlights: &domain.Highlights{
			Streak: &domain.Span{Days: 7, Start: "2024-01-03", End: "2024-01-09"},
		},
		Portrait: &domain.Portrait{
			WeekdayStats:      map[int]int{0: 4},
			HourStats:         map[int]int{10: 4},
			AvgLinesPerCommit: 12.5,
			RepoChampions: &domain.RepoChampions{
				Growth: &domain.Champion{Name: "a/y", Value: 800},
			},
		},
	}
}

func orgDocument() *domain.StatsData {
	doc := sampleDocument()
	doc.Meta.Mode = domain.ModeOrgSummary
	doc.Meta.Org = "acme"
	doc.Portrait.HourStats = map[int]int{22: 1, 10: 4, 9: 2}
	doc.Arena = []domain.ArenaEntry{
		{Rank: 1, User: "alice", Commits: 50, Added: 900, Deleted: 100, NetGrowth: 800},
		{Rank: 4, User: "dave", Commits: 2, Added: 1, Deleted: 9, NetGrowth: -8},
	}
	return doc
}

// dashboardMarkers are present exactly when dashboard units were rendered.
var dashboardMarkers = []string{"+5,000", "a/y", RepoTableTitle}

func renderString(t *testing.T, r Renderer, state usecase.State) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(context.Background(), &buf, state))
	return buf.String()
}

func TestNew(t *testing.T) {
	testCases := []struct {
		format   string
		expected Renderer
		wantErr  bool
	}{
		{format: FormatTerminal, expected: NewTerminal("")},
		{format: FormatMarkdown, expected: NewMarkdown("")},
		{format: FormatHTML, expected: NewHTML("")},
		{format: FormatJSON, expected: NewJSON("")},
		{format: "pdf", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.format, func(t *testing.T) {
			r, err := New(tc.format, "")
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tc.expected, r)
		})
	}
}

func TestNew_AcceptsEveryFormat(t *testing.T) {
	for _, f := range Formats {
		_, err := New(f, "")
		assert.NoError(t, err, f)
	}
}

func TestRenderers_States(t *testing.T) {
	renderers := map[string]Renderer{
		"terminal": NewTerminal(format.DefaultLinkHost),
		"markdown": NewMarkdown(format.DefaultLinkHost),
		"html":     NewHTML(format.DefaultLinkHost),
		"json":     NewJSON(format.DefaultLinkHost),
	}
	for name, r := range renderers {
		t.Run(name+"/loading", func(t *testing.T) {
			out := renderString(t, r, usecase.Loading{})
			for _, m := range dashboardMarkers {
				assert.NotContains(t, out, m)
			}
		})
		t.Run(name+"/failed", func(t *testing.T) {
			out := renderString(t, r, usecase.Failed{Reason: "data unavailable: unexpected HTTP status 500"})
			assert.Contains(t, out, "unexpected HTTP status 500")
			for _, m := range dashboardMarkers {
				assert.NotContains(t, out, m)
			}
		})
		t.Run(name+"/loaded", func(t *testing.T) {
			out := renderString(t, r, usecase.Loaded{Data: sampleDocument()})
			for _, m := range []string{"+5,000", "a/y"} {
				assert.Contains(t, out, m)
			}
		})
	}
}

func TestRender_FailedWithoutReason(t *testing.T) {
	out := renderString(t, NewMarkdown(""), usecase.Failed{})
	assert.Contains(t, out, FailedTitle)
	assert.Contains(t, out, usecase.FallbackReason)
}

func TestHTML_Pages(t *testing.T) {
	r := NewHTML(format.DefaultLinkHost)

	loading := renderString(t, r, usecase.Loading{})
	assert.Contains(t, loading, `http-equiv="refresh"`)
	assert.Contains(t, loading, LoadingText)

	failed := renderString(t, r, usecase.Failed{Reason: "boom <script>"})
	assert.Contains(t, failed, FailedTitle)
	assert.Contains(t, failed, "boom &lt;script&gt;")
	assert.NotContains(t, failed, `id="summary"`)
	assert.NotContains(t, failed, `http-equiv="refresh"`)

	loaded := renderString(t, r, usecase.Loaded{Data: sampleDocument()})
	assert.Contains(t, loaded, `id="summary"`)
	assert.Contains(t, loaded, `href="https://github.com/a/y"`)
	assert.Contains(t, loaded, `href="https://github.com/octocat"`)
	assert.Contains(t, loaded, "tone-positive")
	assert.Contains(t, loaded, "15 (75.0%)")
	assert.Contains(t, loaded, "<polyline")
	assert.Contains(t, loaded, `id="highlights"`)
	assert.Contains(t, loaded, `id="portrait"`)
	assert.NotContains(t, loaded, `id="arena"`)
}

func TestHTML_SignedValues(t *testing.T) {
	out := renderString(t, NewHTML(format.DefaultLinkHost), usecase.Loaded{Data: orgDocument()})

	for _, want := range []string{
		`<p class="value tone-positive">+5,000</p>`,
		`<p class="value tone-negative">-1,200</p>`,
		`<p class="value tone-positive">+3,800</p>`,
		`<td class="num tone-positive">+900</td>`,
		`<td class="num tone-negative">-8</td>`,
		`<span class="tone-positive">+800</span>`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "&#43;")
}

func TestNumber(t *testing.T) {
	assert.Equal(t, template.HTML("+5,000"), number("+5,000"))
	assert.Equal(t, template.HTML("&lt;b&gt;"), number("<b>"))
}

func TestHTML_Arena(t *testing.T) {
	out := renderString(t, NewHTML(format.DefaultLinkHost), usecase.Loaded{Data: orgDocument()})

	assert.Contains(t, out, `id="arena"`)
	assert.Contains(t, out, "🥇")
	assert.Contains(t, out, "#4")
	assert.Contains(t, out, `href="https://github.com/alice"`)
	assert.Contains(t, out, " @ acme")
}

func TestHTML_OptionalUnitsAbsent(t *testing.T) {
	doc := sampleDocument()
	doc.Highlights = nil
	doc.Portrait = nil
	doc.Arena = []domain.ArenaEntry{}
	out := renderString(t, NewHTML(""), usecase.Loaded{Data: doc})

	assert.NotContains(t, out, `id="highlights"`)
	assert.NotContains(t, out, `id="portrait"`)
	assert.NotContains(t, out, `id="arena"`)
}

func TestMarkdown(t *testing.T) {
	out := renderString(t, NewMarkdown(format.DefaultLinkHost), usecase.Loaded{Data: orgDocument()})

	assert.Contains(t, out, "# "+usecase.Title)
	assert.Contains(t, out, "[octocat](https://github.com/octocat) @ acme | 2024-01-01 ~ 2024-01-31")
	assert.Contains(t, out, "| 120 | +5,000 | -1,200 | +3,800 | 30天 | 4个 |")
	assert.Contains(t, out, "1. [y](https://github.com/a/y) 15 (75.0%)")
	assert.Contains(t, out, "| [a/x](https://github.com/a/x) | 5 | +10 | -40 | -30 |")
	assert.Contains(t, out, "| 2024-01-01 | 1 | +50 | -5 |")
	assert.Contains(t, out, "🔥 **最长连续提交**: 7 天 (2024-01-03 ~ 2024-01-09)")
	assert.Contains(t, out, "🌱 增长冠军: y +800")
	assert.Contains(t, out, "| 🥇 | [alice](https://github.com/alice) |")
	assert.Contains(t, out, "| #4 | [dave](https://github.com/dave) | 2 | +1 | -9 | -8 |")
	assert.Contains(t, out, GeneratedAtLabel+": 2024/2/1 08:30:00")
	assert.Contains(t, out, "| 9:00 | 10:00 | 22:00 |\n|---:|---:|---:|\n| 2 | 4 | 1 |")

	// Timeline rows come out in date order.
	assert.Less(t, bytes.Index([]byte(out), []byte("| 2024-01-01 |")), bytes.Index([]byte(out), []byte("| 2024-01-02 |")))
}

func TestTerminal(t *testing.T) {
	out := renderString(t, NewTerminal(format.DefaultLinkHost), usecase.Loaded{Data: orgDocument()})

	for _, want := range []string{
		usecase.Title,
		"octocat @ acme | 2024-01-01 ~ 2024-01-31",
		"提交数", "120", "+3,800", "30天", "4个",
		TopReposTitle, "15 (75.0%)",
		"a/x", "-30",
		"最长连续提交",
		"周一", "10:00",
		ArenaTitle, "🥇", "#4",
	} {
		assert.Contains(t, out, want)
	}

	// Hours are listed in ascending order below the weekday bars.
	hours := out[strings.Index(out, "周日"):]
	nine := strings.Index(hours, "9:00 ")
	ten := strings.Index(hours, "10:00 ")
	late := strings.Index(hours, "22:00 ")
	require.True(t, nine >= 0 && ten >= 0 && late >= 0)
	assert.Less(t, nine, ten)
	assert.Less(t, ten, late)
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSON(format.DefaultLinkHost).Render(context.Background(), &buf, usecase.Loaded{Data: sampleDocument()}))

	var decoded usecase.Dashboard
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.TopRepos, 2)
	assert.Equal(t, "a/y", decoded.TopRepos[0].Name)
	assert.Equal(t, 75.0, decoded.TopRepos[0].Share)

	buf.Reset()
	require.NoError(t, NewJSON("").Render(context.Background(), &buf, usecase.Failed{Reason: "gone"}))
	var status StatusBody
	require.NoError(t, json.Unmarshal(buf.Bytes(), &status))
	assert.Equal(t, StatusBody{State: "failed", Reason: "gone"}, status)
}

func TestBlocks(t *testing.T) {
	assert.Equal(t, "", blocks(0, 10, 10))
	assert.Equal(t, "", blocks(5, 0, 10))
	assert.Equal(t, "█████", blocks(5, 10, 10))
	assert.Equal(t, "█", blocks(1, 1000, 10))
}

func TestPolyline(t *testing.T) {
	assert.Equal(t, "0.0,200.0 640.0,0.0", polyline([]float64{0, 10}, 10))
	assert.Equal(t, "0,100.0 640,100.0", polyline([]float64{5}, 10))
	assert.Equal(t, "0.0,200 640.0,200", polyline([]float64{0, 0}, 0))
}
