package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/homejobs/internal/middleware"
	"github.com/nfrund/homejobs/web/src/templates/pages"
)

// PagesHandler serves the public pages linked from the navigation bar.
type PagesHandler struct{}

func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

func (h *PagesHandler) Home(c echo.Context) error {
	return RenderPage(c, http.StatusOK, "", pages.Home(middleware.CurrentSession(c)))
}

func (h *PagesHandler) PostJob(c echo.Context) error {
	return RenderPage(c, http.StatusOK, "Post a Job", pages.PostJob())
}

func (h *PagesHandler) Affiliates(c echo.Context) error {
	return RenderPage(c, http.StatusOK, "Affiliates", pages.Affiliates())
}
