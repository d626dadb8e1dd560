package usecase

import (
	"fmt"
	"sort"

	"github.com/naka-gawa/github-stats-dashboard/internal/domain"
	"github.com/naka-gawa/github-stats-dashboard/internal/format"
)

// PortraitView is the developer portrait: weekly and daily rhythm plus the
// repositories that stood out.
type PortraitView struct {
	Weekdays          []Bar          `json:"weekdays"`
	Hours             []Bar          `json:"hours"`
	PeakHour          *Bar           `json:"peakHour,omitempty"`
	AvgLinesPerCommit float64        `json:"avgLinesPerCommit"`
	AvgLinesLabel     string         `json:"avgLinesLabel"`
	Champions         []ChampionItem `json:"champions,omitempty"`
}

// Bar is one bucket of a bar series.
type Bar struct {
	Index   int    `json:"index"`
	Label   string `json:"label"`
	Commits int    `json:"commits"`
}

// ChampionItem is one repository champion line.
type ChampionItem struct {
	Icon  string      `json:"icon"`
	Title string      `json:"title"`
	Repo  string      `json:"repo"`
	Value string      `json:"value"`
	Tone  format.Tone `json:"tone"`
}

// BuildPortrait derives the portrait unit, or nil when p is absent.
func BuildPortrait(p *domain.Portrait) *PortraitView {
	if p == nil {
		return nil
	}
	v := &PortraitView{
		Weekdays:          WeekdayBars(p.WeekdayStats),
		Hours:             HourBars(p.HourStats),
		AvgLinesPerCommit: p.AvgLinesPerCommit,
		AvgLinesLabel:     format.Decimal(p.AvgLinesPerCommit),
		Champions:         Champions(p.RepoChampions),
	}
	if hour, count, ok := PeakHour(p.HourStats); ok {
		v.PeakHour = &Bar{Index: hour, Label: format.Hour(hour), Commits: count}
	}
	return v
}

// WeekdayBars always returns seven buckets, Monday first; missing days are zero.
func WeekdayBars(counts map[int]int) []Bar {
	bars := make([]Bar, len(format.WeekdayNames))
	for i, name := range format.WeekdayNames {
		bars[i] = Bar{Index: i, Label: name, Commits: counts[i]}
	}
	return bars
}

// HourBars returns the hours with at least one commit, in ascending order.
func HourBars(counts map[int]int) []Bar {
	hours := make([]int, 0, len(counts))
	for h, c := range counts {
		if c > 0 {
			hours = append(hours, h)
		}
	}
	sort.Ints(hours)

	bars := make([]Bar, 0, len(hours))
	for _, h := range hours {
		bars = append(bars, Bar{Index: h, Label: format.Hour(h), Commits: counts[h]})
	}
	return bars
}

// PeakHour returns the hour with the most commits. Ties go to the earliest
// hour. ok is false when no hour has a commit.
func PeakHour(counts map[int]int) (hour, count int, ok bool) {
	hour = -1
	for h, c := range counts {
		if c <= 0 {
			continue
		}
		if c > count || (c == count && h < hour) {
			hour, count = h, c
		}
	}
	if hour < 0 {
		return 0, 0, false
	}
	return hour, count, true
}

// Champions lists the present champions in growth, refactor, slimming order.
// Growth carries an explicit plus; refactor and slimming show the raw value.
func Champions(c *domain.RepoChampions) []ChampionItem {
	if c == nil {
		return nil
	}
	var items []ChampionItem
	if c.Growth.Present() {
		items = append(items, ChampionItem{
			Icon:  "🌱",
			Title: "增长冠军",
			Repo:  format.ShortName(c.Growth.Name),
			Value: "+" + format.Count(c.Growth.Value),
			Tone:  format.Positive,
		})
	}
	if c.Refactor.Present() {
		items = append(items, ChampionItem{
			Icon:  "🔧",
			Title: "重构冠军",
			Repo:  format.ShortName(c.Refactor.Name),
			Value: fmt.Sprintf("%s 行变更", format.Count(c.Refactor.Value)),
			Tone:  format.Neutral,
		})
	}
	if c.Slimming.Present() {
		items = append(items, ChampionItem{
			Icon:  "✂️",
			Title: "精简冠军",
			Repo:  format.ShortName(c.Slimming.Name),
			Value: format.Count(c.Slimming.Value),
			Tone:  format.Negative,
		})
	}
	return items
}
