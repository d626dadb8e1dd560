package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/naka-gawa/github-stats-dashboard/internal/format"
	"github.com/naka-gawa/github-stats-dashboard/internal/usecase"
)

// Markdown writes the dashboard as a GitHub-flavoured report.
type Markdown struct {
	linkHost string
}

// NewMarkdown creates a Markdown renderer.
func NewMarkdown(linkHost string) *Markdown {
	return &Markdown{linkHost: linkHost}
}

// Render implements Renderer.
func (m *Markdown) Render(_ context.Context, w io.Writer, state usecase.State) error {
	return dispatch(state, m.linkHost, stateHandlers{
		loading: func() error {
			_, err := fmt.Fprintf(w, "_%s_\n", LoadingText)
			return err
		},
		failed: func(reason string) error {
			_, err := fmt.Fprintf(w, "# %s\n\n%s\n", FailedTitle, reason)
			return err
		},
		loaded: func(d usecase.Dashboard) error {
			writeMarkdown(w, d)
			return nil
		},
	})
}

func writeMarkdown(w io.Writer, d usecase.Dashboard) {
	fmt.Fprintf(w, "# %s\n\n", d.Meta.Title)
	fmt.Fprintf(w, "%s\n\n", metaLine(d.Meta, true))

	// Summary
	fmt.Fprintf(w, "| %s |\n", joinCards(d.Summary.Cards, func(c usecase.Card) string { return c.Label }))
	fmt.Fprintf(w, "|%s\n", strings.Repeat("---:|", len(d.Summary.Cards)))
	fmt.Fprintf(w, "| %s |\n\n", joinCards(d.Summary.Cards, func(c usecase.Card) string { return c.Value }))

	// Trend
	fmt.Fprintf(w, "## %s\n\n", TrendTitle)
	if len(d.Trend.Points) == 0 {
		fmt.Fprintf(w, "_%s_\n\n", NoDataText)
	} else {
		fmt.Fprintf(w, "| 日期 | 提交数 | 新增行 | 删除行 |\n")
		fmt.Fprintf(w, "|------|------:|------:|------:|\n")
		for _, p := range d.Trend.Points {
			fmt.Fprintf(w, "| %s | %d | %s | %s |\n", p.Date, p.Commits, format.Added(p.Added), format.Deleted(p.Deleted))
		}
		fmt.Fprintln(w)
	}

	// Top repositories
	fmt.Fprintf(w, "## %s\n\n", TopReposTitle)
	for _, r := range d.TopRepos {
		fmt.Fprintf(w, "%d. [%s](%s) %s\n", r.Rank, r.ShortName, r.URL, r.Label)
	}
	fmt.Fprintln(w)

	// Repository table
	fmt.Fprintf(w, "## %s\n\n", RepoTableTitle)
	fmt.Fprintf(w, "| 仓库 | 提交数 | 新增行 | 删除行 | 净变更 |\n")
	fmt.Fprintf(w, "|------|------:|------:|------:|------:|\n")
	for _, r := range d.Repos {
		fmt.Fprintf(w, "| [%s](%s) | %d | %s | %s | %s |\n",
			r.Name, r.URL, r.Commits, format.Added(r.Added), format.Deleted(r.Deleted), format.Signed(r.Net))
	}
	fmt.Fprintln(w)

	if len(d.Highlights) > 0 {
		fmt.Fprintf(w, "## %s\n\n", HighlightsTitle)
		for _, h := range d.Highlights {
			fmt.Fprintf(w, "- %s **%s**: %s (%s)\n", h.Icon, h.Title, h.Value, h.Detail)
		}
		fmt.Fprintln(w)
	}

	if p := d.Portrait; p != nil {
		fmt.Fprintf(w, "## %s\n\n", PortraitTitle)
		fmt.Fprintf(w, "- 平均每次提交: **%s** 行代码\n", p.AvgLinesLabel)
		if p.PeakHour != nil {
			fmt.Fprintf(w, "- 高峰编码时段: **%s** (%d 次提交)\n", p.PeakHour.Label, p.PeakHour.Commits)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "| %s |\n", joinBars(p.Weekdays, func(b usecase.Bar) string { return b.Label }))
		fmt.Fprintf(w, "|%s\n", strings.Repeat("---:|", len(p.Weekdays)))
		fmt.Fprintf(w, "| %s |\n\n", joinBars(p.Weekdays, func(b usecase.Bar) string { return fmt.Sprint(b.Commits) }))
		if len(p.Hours) > 0 {
			fmt.Fprintf(w, "| %s |\n", joinBars(p.Hours, func(b usecase.Bar) string { return b.Label }))
			fmt.Fprintf(w, "|%s\n", strings.Repeat("---:|", len(p.Hours)))
			fmt.Fprintf(w, "| %s |\n\n", joinBars(p.Hours, func(b usecase.Bar) string { return fmt.Sprint(b.Commits) }))
		}
		for _, c := range p.Champions {
			fmt.Fprintf(w, "- %s %s: %s %s\n", c.Icon, c.Title, c.Repo, c.Value)
		}
		if len(p.Champions) > 0 {
			fmt.Fprintln(w)
		}
	}

	if len(d.Arena) > 0 {
		fmt.Fprintf(w, "## %s\n\n", ArenaTitle)
		fmt.Fprintf(w, "| 排名 | 贡献者 | 提交数 | 新增行 | 删除行 | 净增长 |\n")
		fmt.Fprintf(w, "|------|--------|------:|------:|------:|------:|\n")
		for _, a := range d.Arena {
			fmt.Fprintf(w, "| %s | [%s](%s) | %d | %s | %s | %s |\n",
				rankLabel(a.Medal, a.Rank), a.User, a.URL, a.Commits,
				format.Added(a.Added), format.Deleted(a.Deleted), format.Signed(a.NetGrowth))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "---\n\n%s: %s\n", GeneratedAtLabel, d.Meta.GeneratedAt)
}

// metaLine is "user @ org | since ~ until"; links are markdown when asked.
func metaLine(m usecase.MetaView, markdownLinks bool) string {
	var b strings.Builder
	if m.User != "" {
		if markdownLinks && m.UserURL != "" {
			fmt.Fprintf(&b, "[%s](%s)", m.User, m.UserURL)
		} else {
			b.WriteString(m.User)
		}
	}
	if m.Org != "" {
		fmt.Fprintf(&b, " @ %s", m.Org)
	}
	if b.Len() > 0 {
		b.WriteString(" | ")
	}
	fmt.Fprintf(&b, "%s ~ %s", m.Since, m.Until)
	return b.String()
}

func joinCards(cards []usecase.Card, f func(usecase.Card) string) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = f(c)
	}
	return strings.Join(parts, " | ")
}

func joinBars(bars []usecase.Bar, f func(usecase.Bar) string) string {
	parts := make([]string, len(bars))
	for i, b := range bars {
		parts[i] = f(b)
	}
	return strings.Join(parts, " | ")
}
