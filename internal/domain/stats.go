// Package domain contains the core data structures and domain logic for the application.
package domain

import "errors"

// ErrDataUnavailable is the single failure kind of the dashboard. Every fetch,
// decode or validation failure wraps it.
var ErrDataUnavailable = errors.New("data unavailable")

// Report modes written by the generator into Meta.Mode.
const (
	ModePersonal   = "personal"
	ModeOrgSummary = "org-summary"
)

// DateLayout is the calendar date format used throughout the stats document.
const DateLayout = "2006-01-02"

// StatsData is the root of the pre-computed stats document (data.json).
// It is produced by an external generator and never mutated after loading.
type StatsData struct {
	Meta       Meta            `json:"meta" validate:"required"`
	Summary    Summary         `json:"summary"`
	Repos      []RepoStats     `json:"repos" validate:"required,dive"`
	Timeline   []TimelineEntry `json:"timeline" validate:"required,dive"`
	Highlights *Highlights     `json:"highlights,omitempty"`
	Portrait   *Portrait       `json:"portrait,omitempty"`
	Arena      []ArenaEntry    `json:"arena,omitempty" validate:"omitempty,dive"`
}

// Meta identifies whose activity the document describes and when it was generated.
type Meta struct {
	User        string    `json:"user"`
	DateRange   DateRange `json:"dateRange"`
	GeneratedAt string    `json:"generatedAt" validate:"required"`
	Mode        string    `json:"mode" validate:"required,oneof=personal org-summary"`
	Org         string    `json:"org,omitempty"`
}

// DateRange is the inclusive reporting window.
type DateRange struct {
	Since string `json:"since" validate:"required,datetime=2006-01-02"`
	Until string `json:"until" validate:"required,datetime=2006-01-02"`
}

// Summary holds the pre-aggregated totals.
type Summary struct {
	TotalCommits int   `json:"totalCommits" validate:"min=0"`
	TotalAdded   int64 `json:"totalAdded" validate:"min=0"`
	TotalDeleted int64 `json:"totalDeleted" validate:"min=0"`
	NetGrowth    int64 `json:"netGrowth"`
	ActiveDays   int   `json:"activeDays" validate:"min=0"`
	ActiveRepos  int   `json:"activeRepos" validate:"min=0"`
}

// RepoStats holds the activity counts for a single repository.
// Name is in "owner/name" form.
type RepoStats struct {
	Name    string `json:"name" validate:"required"`
	Commits int    `json:"commits" validate:"min=0"`
	Added   int64  `json:"added" validate:"min=0"`
	Deleted int64  `json:"deleted" validate:"min=0"`
}

// TimelineEntry holds the activity of one calendar date.
type TimelineEntry struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Commits int    `json:"commits" validate:"min=0"`
	Added   int64  `json:"added" validate:"min=0"`
	Deleted int64  `json:"deleted" validate:"min=0"`
}

// Highlights are optional facts derived upstream. A nil field means the fact
// was not computed, which is different from zero.
type Highlights struct {
	Streak          *Span            `json:"streak,omitempty"`
	BestDay         *BestDay         `json:"bestDay,omitempty"`
	FavoriteWeekday *FavoriteWeekday `json:"favoriteWeekday,omitempty"`
	BestRepo        *BestRepo        `json:"bestRepo,omitempty"`
	LongestBreak    *Span            `json:"longestBreak,omitempty"`
}

// Span is a run of days bounded by two dates, used for streaks and breaks.
type Span struct {
	Days  int    `json:"days" validate:"min=0"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// BestDay is the single most active date.
type BestDay struct {
	Date    string `json:"date"`
	Commits int    `json:"commits" validate:"min=0"`
	Changes int64  `json:"changes" validate:"min=0"`
}

// FavoriteWeekday is the weekday with the most commits. DayIndex is 0 for Monday.
type FavoriteWeekday struct {
	Day      string `json:"day"`
	DayIndex int    `json:"dayIndex" validate:"min=0,max=6"`
	Commits  int    `json:"commits" validate:"min=0"`
	Changes  int64  `json:"changes" validate:"min=0"`
}

// BestRepo is the repository with the most commits.
type BestRepo struct {
	Name    string `json:"name"`
	Commits int    `json:"commits" validate:"min=0"`
}

// Portrait describes working rhythm: commits per weekday (0 = Monday) and per hour.
type Portrait struct {
	WeekdayStats      map[int]int    `json:"weekdayStats" validate:"dive,keys,min=0,max=6,endkeys,min=0"`
	HourStats         map[int]int    `json:"hourStats" validate:"dive,keys,min=0,max=23,endkeys,min=0"`
	AvgLinesPerCommit float64        `json:"avgLinesPerCommit" validate:"min=0"`
	RepoChampions     *RepoChampions `json:"repoChampions,omitempty"`
}

// RepoChampions names the repositories that stood out in three categories.
type RepoChampions struct {
	Growth   *Champion `json:"growth,omitempty"`
	Refactor *Champion `json:"refactor,omitempty"`
	Slimming *Champion `json:"slimming,omitempty"`
}

// Champion is a repository and its category value. The generator writes a
// null name when no repository qualified.
type Champion struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// Present reports whether the champion names a repository.
func (c *Champion) Present() bool {
	return c != nil && c.Name != ""
}

// ArenaEntry is one ranked contributor of an org-summary leaderboard.
type ArenaEntry struct {
	Rank      int    `json:"rank" validate:"min=1"`
	User      string `json:"user" validate:"required"`
	Commits   int    `json:"commits" validate:"min=0"`
	Added     int64  `json:"added" validate:"min=0"`
	Deleted   int64  `json:"deleted" validate:"min=0"`
	NetGrowth int64  `json:"netGrowth"`
}
