package usecase

import (
	"time"

	"github.com/naka-gawa/github-stats-dashboard/internal/domain"
	"github.com/naka-gawa/github-stats-dashboard/internal/format"
)

// Title is the heading of every rendered report.
const Title = "Dr. DevLove 统计报告"

// Dashboard is the view model of a loaded stats document. Each unit is derived
// independently from its own slice of the document; optional units are nil
// (or empty) when they have nothing to show.
type Dashboard struct {
	Meta       MetaView        `json:"meta"`
	Summary    SummaryView     `json:"summary"`
	Trend      TrendView       `json:"trend"`
	TopRepos   []RankedRepo    `json:"topRepos"`
	Repos      []RepoRow       `json:"repos"`
	Highlights []HighlightItem `json:"highlights,omitempty"`
	Portrait   *PortraitView   `json:"portrait,omitempty"`
	Arena      []ArenaRow      `json:"arena,omitempty"`
}

// MetaView is the report header.
type MetaView struct {
	Title       string `json:"title"`
	User        string `json:"user,omitempty"`
	UserURL     string `json:"userUrl,omitempty"`
	Org         string `json:"org,omitempty"`
	Since       string `json:"since"`
	Until       string `json:"until"`
	Mode        string `json:"mode"`
	GeneratedAt string `json:"generatedAt"`
}

// BuildDashboard derives every unit from data. linkHost prefixes outbound links.
func BuildDashboard(data *domain.StatsData, linkHost string) Dashboard {
	return Dashboard{
		Meta:       BuildMeta(data.Meta, linkHost),
		Summary:    BuildSummary(data.Summary),
		Trend:      BuildTrend(data.Timeline),
		TopRepos:   TopRepos(data.Repos, MaxTopRepos, linkHost),
		Repos:      RepoTable(data.Repos, linkHost),
		Highlights: BuildHighlights(data.Highlights),
		Portrait:   BuildPortrait(data.Portrait),
		Arena:      BuildArena(data.Arena, linkHost),
	}
}

// BuildMeta maps the document metadata onto the header.
func BuildMeta(m domain.Meta, linkHost string) MetaView {
	v := MetaView{
		Title:       Title,
		User:        m.User,
		Org:         m.Org,
		Since:       m.DateRange.Since,
		Until:       m.DateRange.Until,
		Mode:        m.Mode,
		GeneratedAt: GeneratedAt(m.GeneratedAt),
	}
	if m.User != "" {
		v.UserURL = format.Link(linkHost, m.User)
	}
	return v
}

// generatedAtLayouts are the timestamp shapes the generator is known to write.
var generatedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// GeneratedAt renders the generation timestamp as "2006/1/2 15:04:05". Values
// in an unknown shape are returned unchanged.
func GeneratedAt(raw string) string {
	for _, layout := range generatedAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006/1/2 15:04:05")
		}
	}
	return raw
}
