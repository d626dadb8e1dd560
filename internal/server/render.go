package server

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/naka-gawa/github-stats-dashboard/internal/usecase"
)

// RenderState writes the page component for state. The loading page asks the
// browser to come back after a second and the error page is served as 503.
func RenderState(c echo.Context, state usecase.State, cmp templ.Component) error {
	return RenderStatus(c, stateStatus(c, state), cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

func stateStatus(c echo.Context, state usecase.State) int {
	switch state.(type) {
	case usecase.Failed:
		return http.StatusServiceUnavailable
	case usecase.Loaded:
		return http.StatusOK
	default:
		c.Response().Header().Set("Refresh", "1")
		return http.StatusOK
	}
}
