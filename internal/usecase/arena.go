package usecase

import (
	"github.com/naka-gawa/github-stats-dashboard/internal/domain"
	"github.com/naka-gawa/github-stats-dashboard/internal/format"
)

// ArenaRow is one leaderboard row.
type ArenaRow struct {
	Rank      int         `json:"rank"`
	Medal     string      `json:"medal,omitempty"` // empty for rank 4 and below
	User      string      `json:"user"`
	URL       string      `json:"url"`
	Commits   int         `json:"commits"`
	Added     int64       `json:"added"`
	Deleted   int64       `json:"deleted"`
	NetGrowth int64       `json:"netGrowth"`
	Tone      format.Tone `json:"tone"`
}

// Medal returns the medal for ranks 1-3 and "" otherwise.
func Medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return ""
	}
}

// BuildArena maps the leaderboard in its supplied order; ranks are trusted,
// never re-derived. It returns nil for an empty or absent arena.
func BuildArena(entries []domain.ArenaEntry, linkHost string) []ArenaRow {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]ArenaRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ArenaRow{
			Rank:      e.Rank,
			Medal:     Medal(e.Rank),
			User:      e.User,
			URL:       format.Link(linkHost, e.User),
			Commits:   e.Commits,
			Added:     e.Added,
			Deleted:   e.Deleted,
			NetGrowth: e.NetGrowth,
			Tone:      format.ToneOf(e.NetGrowth),
		})
	}
	return rows
}
