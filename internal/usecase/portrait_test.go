package usecase

import (
	"testing"

	"github.com/naka-gawa/github-stats-dashboard/internal/domain"
	"github.com/naka-gawa/github-stats-dashboard/internal/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeakHour(t *testing.T) {
	testCases := []struct {
		name          string
		counts        map[int]int
		expectedHour  int
		expectedCount int
		expectedOK    bool
	}{
		{
			name:          "happy path - single peak",
			counts:        map[int]int{9: 3, 14: 8, 22: 1},
			expectedHour:  14,
			expectedCount: 8,
			expectedOK:    true,
		},
		{
			name:          "ties go to the earliest hour",
			counts:        map[int]int{22: 25, 14: 25, 9: 10},
			expectedHour:  14,
			expectedCount: 25,
			expectedOK:    true,
		},
		{
			name:          "midnight counts",
			counts:        map[int]int{0: 2, 23: 2},
			expectedHour:  0,
			expectedCount: 2,
			expectedOK:    true,
		},
		{
			name:   "edge case - all zero",
			counts: map[int]int{1: 0, 2: 0},
		},
		{
			name: "edge case - empty",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hour, count, ok := PeakHour(tc.counts)
			assert.Equal(t, tc.expectedOK, ok)
			assert.Equal(t, tc.expectedHour, hour)
			assert.Equal(t, tc.expectedCount, count)
		})
	}
}

func TestWeekdayBars(t *testing.T) {
	bars := WeekdayBars(map[int]int{0: 20, 3: 30})

	require.Len(t, bars, 7)
	assert.Equal(t, Bar{Index: 0, Label: "周一", Commits: 20}, bars[0])
	assert.Equal(t, Bar{Index: 1, Label: "周二", Commits: 0}, bars[1])
	assert.Equal(t, Bar{Index: 3, Label: "周四", Commits: 30}, bars[3])
	assert.Equal(t, "周日", bars[6].Label)

	assert.Len(t, WeekdayBars(nil), 7)
}

func TestHourBars(t *testing.T) {
	bars := HourBars(map[int]int{22: 1, 3: 0, 9: 4})

	require.Len(t, bars, 2)
	assert.Equal(t, Bar{Index: 9, Label: "9:00", Commits: 4}, bars[0])
	assert.Equal(t, Bar{Index: 22, Label: "22:00", Commits: 1}, bars[1])
}

func TestBuildPortrait(t *testing.T) {
	view := BuildPortrait(sampleDocument().Portrait)

	require.NotNil(t, view)
	assert.Len(t, view.Weekdays, 7)
	assert.Len(t, view.Hours, 3)
	require.NotNil(t, view.PeakHour)
	assert.Equal(t, 14, view.PeakHour.Index)
	assert.Equal(t, "51.7", view.AvgLinesLabel)

	// The slimming champion has no name and is left out.
	require.Len(t, view.Champions, 2)
	assert.Equal(t, ChampionItem{Icon: "🌱", Title: "增长冠军", Repo: "api", Value: "+2,500", Tone: format.Positive}, view.Champions[0])
	assert.Equal(t, ChampionItem{Icon: "🔧", Title: "重构冠军", Repo: "web", Value: "2,100 行变更", Tone: format.Neutral}, view.Champions[1])

	assert.Nil(t, BuildPortrait(nil))
}

func TestBuildPortrait_NoActivity(t *testing.T) {
	view := BuildPortrait(&domain.Portrait{HourStats: map[int]int{5: 0}})

	require.NotNil(t, view)
	assert.Nil(t, view.PeakHour)
	assert.Empty(t, view.Hours)
	assert.Nil(t, view.Champions)
}

func TestChampions_Slimming(t *testing.T) {
	items := Champions(&domain.RepoChampions{
		Slimming: &domain.Champion{Name: "octo/legacy", Value: 900},
	})

	require.Len(t, items, 1)
	assert.Equal(t, "legacy", items[0].Repo)
	assert.Equal(t, "900", items[0].Value)
	assert.Equal(t, format.Negative, items[0].Tone)
}
