package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/nfrund/homejobs/internal/middleware"
	"github.com/nfrund/homejobs/internal/view"
	"github.com/nfrund/homejobs/web/src/templates/layouts"
	"github.com/nfrund/homejobs/web/src/templates/partials"
	g "maragu.dev/gomponents"
)

// RenderPage wraps content in the base layout, with the request's session and
// pending toasts, and writes it through the echo renderer.
func RenderPage(c echo.Context, status int, title string, content ...g.Node) error {
	page := layouts.Page{
		Title:   title,
		Session: middleware.CurrentSession(c),
		Flashes: view.GetFlashData(c),
	}
	return c.Render(status, "", layouts.Base(page, content...))
}

// RenderFragment writes an htmx fragment followed by any pending toasts as an
// out-of-band swap.
func RenderFragment(c echo.Context, status int, fragment g.Node) error {
	nodes := g.Group{fragment}
	if flashes := view.GetFlashData(c); !flashes.Empty() {
		nodes = append(nodes, partials.ToastsOOB(flashes))
	}
	return c.Render(status, "", nodes)
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
