package render

import (
	"context"
	"embed"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/naka-gawa/github-stats-dashboard/internal/format"
	"github.com/naka-gawa/github-stats-dashboard/internal/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("pages").Funcs(template.FuncMap{
	"added":   func(n int64) template.HTML { return number(format.Added(n)) },
	"deleted": func(n int64) template.HTML { return number(format.Deleted(n)) },
	"signed":  func(n int64) template.HTML { return number(format.Signed(n)) },
	"number":  number,
	"rank":    rankLabel,
	"pct":     barPercent,
}).ParseFS(templateFS, "templates/*.html"))

// number writes a formatted value with its sign intact. html/template would
// otherwise emit a leading "+" as "&#43;".
func number(s string) template.HTML {
	return template.HTML(template.HTMLEscapeString(s))
}

// HTML writes a complete HTML page for the page state.
type HTML struct {
	linkHost string
}

// NewHTML creates an HTML renderer.
func NewHTML(linkHost string) *HTML {
	return &HTML{linkHost: linkHost}
}

// Render implements Renderer.
func (h *HTML) Render(ctx context.Context, w io.Writer, state usecase.State) error {
	cmp, err := Page(state, h.linkHost)
	if err != nil {
		return err
	}
	return cmp.Render(ctx, w)
}

// Page returns the page component for state: an auto-refreshing loading page,
// the error page or the dashboard.
func Page(state usecase.State, linkHost string) (templ.Component, error) {
	var cmp templ.Component
	err := dispatch(state, linkHost, stateHandlers{
		loading: func() error {
			cmp = LoadingPage()
			return nil
		},
		failed: func(reason string) error {
			cmp = ErrorPage(reason)
			return nil
		},
		loaded: func(d usecase.Dashboard) error {
			cmp = DashboardPage(d)
			return nil
		},
	})
	return cmp, err
}

// LoadingPage is shown until the fetch settles. It reloads itself every second.
func LoadingPage() templ.Component {
	return templ.FromGoHTML(pages.Lookup("loading.html"), htmlPage{Title: usecase.Title, Message: LoadingText, Refresh: true})
}

// ErrorPage shows only the failure reason.
func ErrorPage(reason string) templ.Component {
	return templ.FromGoHTML(pages.Lookup("error.html"), htmlPage{Title: usecase.Title, Heading: FailedTitle, Message: reason})
}

// DashboardPage shows every unit of d that has something to show.
func DashboardPage(d usecase.Dashboard) templ.Component {
	return templ.FromGoHTML(pages.Lookup("dashboard.html"), newDashboardPage(d))
}

// htmlPage is the data handed to every template.
type htmlPage struct {
	Title    string
	Heading  string
	Message  string
	Refresh  bool
	Sections sectionTitles
	D        usecase.Dashboard
	Trend    trendChart
	// WeekdayPeak and HourPeak scale the portrait bars.
	WeekdayPeak int
	HourPeak    int
}

type sectionTitles struct {
	Trend, TopRepos, RepoTable, Highlights, Portrait, Arena, GeneratedAt string
}

func newDashboardPage(d usecase.Dashboard) htmlPage {
	p := htmlPage{
		Title: d.Meta.Title,
		Sections: sectionTitles{
			Trend:       TrendTitle,
			TopRepos:    TopReposTitle,
			RepoTable:   RepoTableTitle,
			Highlights:  HighlightsTitle,
			Portrait:    PortraitTitle,
			Arena:       ArenaTitle,
			GeneratedAt: GeneratedAtLabel,
		},
		D:     d,
		Trend: newTrendChart(d.Trend),
	}
	if d.Portrait != nil {
		for _, b := range d.Portrait.Weekdays {
			p.WeekdayPeak = max(p.WeekdayPeak, b.Commits)
		}
		for _, b := range d.Portrait.Hours {
			p.HourPeak = max(p.HourPeak, b.Commits)
		}
	}
	return p
}

// barPercent is value as a CSS width percentage of peak.
func barPercent(value, peak int) string {
	if peak <= 0 {
		return "0%"
	}
	return strconv.FormatFloat(float64(value)/float64(peak)*100, 'f', 1, 64) + "%"
}

const (
	chartWidth  = 640
	chartHeight = 200
)

// trendChart is the SVG trend: commits against the left scale, added and
// deleted lines against the right one.
type trendChart struct {
	Width, Height           int
	Commits, Added, Deleted string
	CommitPeak, LinePeak    string
	FirstDate, LastDate     string
	Empty                   bool
}

func newTrendChart(t usecase.TrendView) trendChart {
	c := trendChart{Width: chartWidth, Height: chartHeight, Empty: len(t.Points) == 0}
	if c.Empty {
		return c
	}
	commits := make([]float64, len(t.Points))
	added := make([]float64, len(t.Points))
	deleted := make([]float64, len(t.Points))
	for i, p := range t.Points {
		commits[i] = float64(p.Commits)
		added[i] = float64(p.Added)
		deleted[i] = float64(p.Deleted)
	}
	c.Commits = polyline(commits, t.Commits.Peak)
	c.Added = polyline(added, t.Lines.Peak)
	c.Deleted = polyline(deleted, t.Lines.Peak)
	c.CommitPeak = format.Count(int64(t.Commits.Peak))
	c.LinePeak = format.Count(int64(t.Lines.Peak))
	c.FirstDate = t.Points[0].Date
	c.LastDate = t.Points[len(t.Points)-1].Date
	return c
}

// polyline maps values onto SVG points; a single value is drawn as a flat line.
func polyline(values []float64, peak float64) string {
	y := func(v float64) string {
		if peak <= 0 {
			return strconv.Itoa(chartHeight)
		}
		return strconv.FormatFloat(chartHeight-v/peak*chartHeight, 'f', 1, 64)
	}
	if len(values) == 1 {
		return "0," + y(values[0]) + " " + strconv.Itoa(chartWidth) + "," + y(values[0])
	}
	step := float64(chartWidth) / float64(len(values)-1)
	pts := make([]string, len(values))
	for i, v := range values {
		pts[i] = strconv.FormatFloat(float64(i)*step, 'f', 1, 64) + "," + y(v)
	}
	return strings.Join(pts, " ")
}
