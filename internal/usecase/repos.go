package usecase

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/github-stats-dashboard/internal/domain"
	"github.com/naka-gawa/github-stats-dashboard/internal/format"
)

// MaxTopRepos is the length of the repository ranking.
const MaxTopRepos = 10

// RankedRepo is one entry of the top-N repository ranking.
type RankedRepo struct {
	Rank      int     `json:"rank"`
	Name      string  `json:"name"`
	ShortName string  `json:"shortName"`
	URL       string  `json:"url"`
	Commits   int     `json:"commits"`
	Share     float64 `json:"share"` // percent of all commits, one decimal
	Label     string  `json:"label"` // "15 (75.0%)"
}

// RepoRow is one row of the full repository table.
type RepoRow struct {
	Name    string      `json:"name"`
	URL     string      `json:"url"`
	Commits int         `json:"commits"`
	Added   int64       `json:"added"`
	Deleted int64       `json:"deleted"`
	Net     int64       `json:"net"`
	Tone    format.Tone `json:"tone"`
}

// SortReposByCommits returns a copy of repos sorted by commits, highest first.
// Ties keep their input order.
func SortReposByCommits(repos []domain.RepoStats) []domain.RepoStats {
	sorted := make([]domain.RepoStats, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Commits > sorted[j].Commits
	})
	return sorted
}

// TotalCommits sums commits over every repository.
func TotalCommits(repos []domain.RepoStats) int {
	total := 0
	for _, r := range repos {
		total += r.Commits
	}
	return total
}

// Share returns commits as a percentage of total, rounded to one decimal.
// A zero total yields 0.
func Share(commits, total int) float64 {
	if total <= 0 {
		return 0
	}
	share, err := stats.Round(float64(commits)/float64(total)*100, 1)
	if err != nil {
		return 0
	}
	return share
}

// TopRepos ranks repos by commits and keeps the first n. Shares are computed
// against the commits of all repositories, not only the kept ones.
func TopRepos(repos []domain.RepoStats, n int, linkHost string) []RankedRepo {
	total := TotalCommits(repos)
	sorted := SortReposByCommits(repos)
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	ranked := make([]RankedRepo, 0, len(sorted))
	for i, r := range sorted {
		share := Share(r.Commits, total)
		ranked = append(ranked, RankedRepo{
			Rank:      i + 1,
			Name:      r.Name,
			ShortName: format.ShortName(r.Name),
			URL:       format.Link(linkHost, r.Name),
			Commits:   r.Commits,
			Share:     share,
			Label:     fmt.Sprintf("%d (%s)", r.Commits, format.Percent(share)),
		})
	}
	return ranked
}

// RepoTable lists every repository by commits with its net line change.
func RepoTable(repos []domain.RepoStats, linkHost string) []RepoRow {
	sorted := SortReposByCommits(repos)
	rows := make([]RepoRow, 0, len(sorted))
	for _, r := range sorted {
		net := r.Added - r.Deleted
		rows = append(rows, RepoRow{
			Name:    r.Name,
			URL:     format.Link(linkHost, r.Name),
			Commits: r.Commits,
			Added:   r.Added,
			Deleted: r.Deleted,
			Net:     net,
			Tone:    format.ToneOf(net),
		})
	}
	return rows
}
