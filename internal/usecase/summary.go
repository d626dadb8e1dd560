package usecase

import (
	"github.com/naka-gawa/github-stats-dashboard/internal/domain"
	"github.com/naka-gawa/github-stats-dashboard/internal/format"
)

// Card is one summary tile.
type Card struct {
	Label string      `json:"label"`
	Value string      `json:"value"`
	Tone  format.Tone `json:"tone"`
}

// SummaryView holds the six summary cards in display order.
type SummaryView struct {
	Cards []Card `json:"cards"`
}

// BuildSummary maps the totals verbatim; nothing is recomputed.
func BuildSummary(s domain.Summary) SummaryView {
	return SummaryView{Cards: []Card{
		{Label: "提交数", Value: format.Count(int64(s.TotalCommits)), Tone: format.Neutral},
		{Label: "新增", Value: format.Added(s.TotalAdded), Tone: format.Positive},
		{Label: "删除", Value: format.Deleted(s.TotalDeleted), Tone: format.Negative},
		{Label: "净增长", Value: format.Signed(s.NetGrowth), Tone: format.ToneOf(s.NetGrowth)},
		{Label: "活跃天数", Value: format.Days(s.ActiveDays), Tone: format.Neutral},
		{Label: "活跃仓库", Value: format.Repos(s.ActiveRepos), Tone: format.Neutral},
	}}
}
