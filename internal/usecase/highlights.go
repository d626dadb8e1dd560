package usecase

import (
	"fmt"

	"github.com/naka-gawa/github-stats-dashboard/internal/domain"
	"github.com/naka-gawa/github-stats-dashboard/internal/format"
)

// HighlightItem is one highlight fact.
type HighlightItem struct {
	Icon   string `json:"icon"`
	Title  string `json:"title"`
	Value  string `json:"value"`
	Detail string `json:"detail"`
}

// BuildHighlights lists the facts present in h in a fixed order: streak, best
// day, favorite weekday, best repo, longest break. Absent facts, and streaks or
// breaks of zero days, are left out. The result is nil when nothing remains.
func BuildHighlights(h *domain.Highlights) []HighlightItem {
	if h == nil {
		return nil
	}
	var items []HighlightItem

	if s := h.Streak; s != nil && s.Days > 0 {
		items = append(items, HighlightItem{
			Icon:   "🔥",
			Title:  "最长连续提交",
			Value:  fmt.Sprintf("%d 天", s.Days),
			Detail: fmt.Sprintf("%s ~ %s", s.Start, s.End),
		})
	}

	if b := h.BestDay; b != nil {
		items = append(items, HighlightItem{
			Icon:   "⭐",
			Title:  "最活跃日",
			Value:  b.Date,
			Detail: fmt.Sprintf("%d 次提交, %s 行变更", b.Commits, format.Count(b.Changes)),
		})
	}

	if w := h.FavoriteWeekday; w != nil {
		day := w.Day
		if day == "" {
			day = format.Weekday(w.DayIndex)
		}
		items = append(items, HighlightItem{
			Icon:   "📅",
			Title:  "最爱工作日",
			Value:  day,
			Detail: fmt.Sprintf("%d 次提交", w.Commits),
		})
	}

	if r := h.BestRepo; r != nil {
		items = append(items, HighlightItem{
			Icon:   "🏆",
			Title:  "最活跃仓库",
			Value:  format.ShortName(r.Name),
			Detail: fmt.Sprintf("%d 次提交", r.Commits),
		})
	}

	if b := h.LongestBreak; b != nil && b.Days > 0 {
		items = append(items, HighlightItem{
			Icon:   "😴",
			Title:  "最长休息",
			Value:  fmt.Sprintf("%d 天", b.Days),
			Detail: fmt.Sprintf("%s ~ %s", b.Start, b.End),
		})
	}

	return items
}
