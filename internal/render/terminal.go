package render

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/naka-gawa/github-stats-dashboard/internal/format"
	"github.com/naka-gawa/github-stats-dashboard/internal/usecase"
)

const barWidth = 24

// Terminal writes a styled report for a terminal. Colours are only emitted
// when the destination writer is a terminal that supports them.
type Terminal struct {
	linkHost string
}

// NewTerminal creates a Terminal renderer.
func NewTerminal(linkHost string) *Terminal {
	return &Terminal{linkHost: linkHost}
}

// termStyles are bound to the renderer of one destination writer.
type termStyles struct {
	title    lipgloss.Style
	section  lipgloss.Style
	info     lipgloss.Style
	card     lipgloss.Style
	label    lipgloss.Style
	positive lipgloss.Style
	negative lipgloss.Style
	neutral  lipgloss.Style
	failed   lipgloss.Style
}

func newTermStyles(w io.Writer) termStyles {
	r := lipgloss.NewRenderer(w)
	return termStyles{
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		section:  r.NewStyle().Bold(true).Underline(true).MarginTop(1),
		info:     r.NewStyle().Foreground(lipgloss.Color("241")),
		card:     r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		label:    r.NewStyle().Foreground(lipgloss.Color("241")),
		positive: r.NewStyle().Foreground(lipgloss.Color("34")),
		negative: r.NewStyle().Foreground(lipgloss.Color("160")),
		neutral:  r.NewStyle(),
		failed:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("160")),
	}
}

func (s termStyles) tone(t format.Tone) lipgloss.Style {
	switch t {
	case format.Positive:
		return s.positive
	case format.Negative:
		return s.negative
	default:
		return s.neutral
	}
}

// Render implements Renderer.
func (t *Terminal) Render(_ context.Context, w io.Writer, state usecase.State) error {
	st := newTermStyles(w)
	return dispatch(state, t.linkHost, stateHandlers{
		loading: func() error {
			_, err := fmt.Fprintln(w, st.info.Render(LoadingText))
			return err
		},
		failed: func(reason string) error {
			_, err := fmt.Fprintf(w, "%s\n%s\n", st.failed.Render(FailedTitle), st.info.Render(reason))
			return err
		},
		loaded: func(d usecase.Dashboard) error {
			_, err := io.WriteString(w, terminalReport(st, d))
			return err
		},
	})
}

func terminalReport(st termStyles, d usecase.Dashboard) string {
	var b strings.Builder

	b.WriteString(st.title.Render(d.Meta.Title) + "\n")
	b.WriteString(st.info.Render(metaLine(d.Meta, false)) + "\n")

	cards := make([]string, 0, len(d.Summary.Cards))
	for _, c := range d.Summary.Cards {
		cards = append(cards, st.card.Render(st.label.Render(c.Label)+"\n"+st.tone(c.Tone).Bold(true).Render(c.Value)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n")

	// Commits and lines each get their own scale.
	b.WriteString(st.section.Render(TrendTitle) + "\n")
	if len(d.Trend.Points) == 0 {
		b.WriteString(st.info.Render(NoDataText) + "\n")
	}
	for _, p := range d.Trend.Points {
		fmt.Fprintf(&b, "%s  %s %4d  %s %s\n",
			p.Date,
			padRight(blocks(float64(p.Commits), d.Trend.Commits.Peak, barWidth/2), barWidth/2),
			p.Commits,
			st.positive.Render(format.Added(p.Added)),
			st.negative.Render(format.Deleted(p.Deleted)),
		)
	}

	b.WriteString(st.section.Render(TopReposTitle) + "\n")
	shareBar := progress.New(progress.WithWidth(barWidth), progress.WithoutPercentage(), progress.WithSolidFill("63"))
	nameWidth := 0
	for _, r := range d.TopRepos {
		nameWidth = max(nameWidth, lipgloss.Width(r.ShortName))
	}
	for _, r := range d.TopRepos {
		fmt.Fprintf(&b, "%2d. %s  %s  %s\n",
			r.Rank, padRight(r.ShortName, nameWidth), shareBar.ViewAs(r.Share/100), r.Label)
	}

	b.WriteString(st.section.Render(RepoTableTitle) + "\n")
	for _, r := range d.Repos {
		fmt.Fprintf(&b, "%s  %5d  %s  %s  %s\n",
			r.Name, r.Commits,
			st.positive.Render(format.Added(r.Added)),
			st.negative.Render(format.Deleted(r.Deleted)),
			st.tone(r.Tone).Render(format.Signed(r.Net)),
		)
	}

	if len(d.Highlights) > 0 {
		b.WriteString(st.section.Render(HighlightsTitle) + "\n")
		for _, h := range d.Highlights {
			fmt.Fprintf(&b, "%s %s  %s  %s\n", h.Icon, h.Title, st.title.Render(h.Value), st.info.Render(h.Detail))
		}
	}

	if p := d.Portrait; p != nil {
		b.WriteString(st.section.Render(PortraitTitle) + "\n")
		fmt.Fprintf(&b, "平均每次提交 %s 行代码\n", st.title.Render(p.AvgLinesLabel))
		if p.PeakHour != nil {
			fmt.Fprintf(&b, "高峰编码时段 %s  %s\n", st.title.Render(p.PeakHour.Label), st.info.Render(fmt.Sprintf("%d 次提交", p.PeakHour.Commits)))
		}
		peak := 0
		for _, wd := range p.Weekdays {
			peak = max(peak, wd.Commits)
		}
		for _, wd := range p.Weekdays {
			fmt.Fprintf(&b, "%s  %s %d\n", wd.Label, padRight(blocks(float64(wd.Commits), float64(peak), barWidth), barWidth), wd.Commits)
		}
		hourPeak := 0
		for _, h := range p.Hours {
			hourPeak = max(hourPeak, h.Commits)
		}
		for _, h := range p.Hours {
			fmt.Fprintf(&b, "%s  %s %d\n", padRight(h.Label, 5), padRight(blocks(float64(h.Commits), float64(hourPeak), barWidth), barWidth), h.Commits)
		}
		for _, c := range p.Champions {
			fmt.Fprintf(&b, "%s %s  %s  %s\n", c.Icon, c.Title, c.Repo, st.tone(c.Tone).Render(c.Value))
		}
	}

	if len(d.Arena) > 0 {
		b.WriteString(st.section.Render(ArenaTitle) + "\n")
		for _, a := range d.Arena {
			fmt.Fprintf(&b, "%s %s  %d  %s  %s  %s\n",
				padRight(rankLabel(a.Medal, a.Rank), 4), a.User, a.Commits,
				st.positive.Render(format.Added(a.Added)),
				st.negative.Render(format.Deleted(a.Deleted)),
				st.tone(a.Tone).Render(format.Signed(a.NetGrowth)),
			)
		}
	}

	b.WriteString("\n" + st.info.Render(GeneratedAtLabel+": "+d.Meta.GeneratedAt) + "\n")
	return b.String()
}

// blocks draws value against peak as a run of full blocks at most width long.
func blocks(value, peak float64, width int) string {
	if peak <= 0 || value <= 0 {
		return ""
	}
	n := int(math.Round(value / peak * float64(width)))
	return strings.Repeat("█", max(n, 1))
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
