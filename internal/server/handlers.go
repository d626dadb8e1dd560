package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/naka-gawa/github-stats-dashboard/internal/render"
	"github.com/naka-gawa/github-stats-dashboard/internal/usecase"
)

func (a *App) handleIndex(c echo.Context) error {
	state := a.page.State()
	cmp, err := render.Page(state, a.linkHost)
	if err != nil {
		return err
	}
	return RenderState(c, state, cmp)
}

// handleData serves the raw document. It is never cached so a regenerated
// file shows up on the next request.
func (a *App) handleData(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	loaded, ok := a.page.State().(usecase.Loaded)
	if !ok {
		return c.JSON(http.StatusServiceUnavailable, statusBody(a.page.State()))
	}
	return c.JSON(http.StatusOK, loaded.Data)
}

func (a *App) handleDashboard(c echo.Context) error {
	loaded, ok := a.page.State().(usecase.Loaded)
	if !ok {
		return c.JSON(http.StatusServiceUnavailable, statusBody(a.page.State()))
	}
	return c.JSON(http.StatusOK, usecase.BuildDashboard(loaded.Data, a.linkHost))
}

func (a *App) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, statusBody(a.page.State()))
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func statusBody(state usecase.State) render.StatusBody {
	body := render.StatusBody{State: state.Name()}
	if f, ok := state.(usecase.Failed); ok {
		body.Reason = f.Reason
	}
	return body
}
