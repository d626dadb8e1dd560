package usecase

import (
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/github-stats-dashboard/internal/domain"
)

// TrendView holds the timeline in date order with one scale per series.
// Commit counts and line counts differ by orders of magnitude, so they are
// never drawn against the same axis.
type TrendView struct {
	Points  []TrendPoint `json:"points"`
	Commits SeriesScale  `json:"commits"`
	Lines   SeriesScale  `json:"lines"`
}

// TrendPoint is one date of the trend.
type TrendPoint struct {
	Date    string `json:"date"`
	Commits int    `json:"commits"`
	Added   int64  `json:"added"`
	Deleted int64  `json:"deleted"`
}

// SeriesScale describes one independently scaled series.
type SeriesScale struct {
	Peak   float64 `json:"peak"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// SortTimeline returns a copy of entries in ascending date order. Dates are
// validated YYYY-MM-DD strings, so lexical order is calendar order. Equal
// dates keep their input order.
func SortTimeline(entries []domain.TimelineEntry) []domain.TimelineEntry {
	sorted := make([]domain.TimelineEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}

// BuildTrend sorts the timeline and computes a scale for the commit series and
// one for the added/deleted line series.
func BuildTrend(entries []domain.TimelineEntry) TrendView {
	sorted := SortTimeline(entries)

	points := make([]TrendPoint, 0, len(sorted))
	commits := make(stats.Float64Data, 0, len(sorted))
	lines := make(stats.Float64Data, 0, 2*len(sorted))
	churn := make(stats.Float64Data, 0, len(sorted))
	for _, e := range sorted {
		points = append(points, TrendPoint{Date: e.Date, Commits: e.Commits, Added: e.Added, Deleted: e.Deleted})
		commits = append(commits, float64(e.Commits))
		lines = append(lines, float64(e.Added), float64(e.Deleted))
		churn = append(churn, float64(e.Added+e.Deleted))
	}

	return TrendView{
		Points:  points,
		Commits: scaleOf(commits, commits),
		Lines:   scaleOf(lines, churn),
	}
}

// scaleOf takes the peak from values and the averages from perEntry.
// Empty input yields a zero scale.
func scaleOf(values, perEntry stats.Float64Data) SeriesScale {
	var s SeriesScale
	if len(values) == 0 {
		return s
	}
	s.Peak, _ = values.Max()
	s.Mean, _ = perEntry.Mean()
	s.Median, _ = perEntry.Median()
	return s
}
