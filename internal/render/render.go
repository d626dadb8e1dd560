// Package render turns a page state into one of the output formats: an HTML
// page, a styled terminal report, GitHub-flavoured markdown or JSON.
package render

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/naka-gawa/github-stats-dashboard/internal/usecase"
)

// Section titles shared by every format.
const (
	LoadingText      = "加载统计数据中..."
	FailedTitle      = "加载失败"
	TrendTitle       = "提交趋势"
	TopReposTitle    = "仓库贡献 (Top 10)"
	RepoTableTitle   = "仓库统计详情"
	HighlightsTitle  = "亮点统计"
	PortraitTitle    = "开发者画像"
	ArenaTitle       = "竞技场排名"
	GeneratedAtLabel = "生成时间"
	NoDataText       = "暂无数据"
)

// Output formats accepted by New.
const (
	FormatTerminal = "terminal"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatJSON     = "json"
)

// Formats lists every output format New accepts.
var Formats = []string{FormatTerminal, FormatMarkdown, FormatHTML, FormatJSON}

// Renderer writes one page state in a single output format.
type Renderer interface {
	Render(ctx context.Context, w io.Writer, state usecase.State) error
}

// New returns the renderer for format: terminal, markdown, html or json.
func New(format, linkHost string) (Renderer, error) {
	switch format {
	case FormatTerminal:
		return NewTerminal(linkHost), nil
	case FormatMarkdown:
		return NewMarkdown(linkHost), nil
	case FormatHTML:
		return NewHTML(linkHost), nil
	case FormatJSON:
		return NewJSON(linkHost), nil
	default:
		return nil, fmt.Errorf("unknown render format %q", format)
	}
}

// stateHandlers holds one writer per page state.
type stateHandlers struct {
	loading func() error
	failed  func(reason string) error
	loaded  func(d usecase.Dashboard) error
}

// dispatch runs the handler matching state. A failed state never reaches the
// dashboard handler, so no unit is written alongside an error.
func dispatch(state usecase.State, linkHost string, h stateHandlers) error {
	switch s := state.(type) {
	case usecase.Loaded:
		return h.loaded(usecase.BuildDashboard(s.Data, linkHost))
	case usecase.Failed:
		reason := s.Reason
		if reason == "" {
			reason = usecase.FallbackReason
		}
		return h.failed(reason)
	case usecase.Loading, nil:
		return h.loading()
	default:
		return fmt.Errorf("unknown page state %T", state)
	}
}

// rankLabel is the medal for the podium and "#N" below it.
func rankLabel(medal string, rank int) string {
	if medal != "" {
		return medal
	}
	return "#" + strconv.Itoa(rank)
}
