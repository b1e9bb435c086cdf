package server

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/homejobs/internal/handlers"
	"github.com/nfrund/homejobs/internal/middleware"
	"github.com/nfrund/homejobs/internal/view"
	"github.com/nfrund/homejobs/web/src/templates/pages"
	"github.com/nfrund/homejobs/web/src/templates/partials"
)

// setupErrorHandling installs the HTTP error handler. Unhandled errors are
// logged with a stack trace; the user gets the error page, or a toast for
// htmx requests.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		logger := middleware.FromContext(c.Request().Context())
		code := http.StatusInternalServerError
		message := ""

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			}
			logger.Debug("HTTP error", "status", code, "error", err, "path", c.Request().URL.Path)
		} else {
			logger.Error("Internal Server Error (Unhandled)",
				"error", err,
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
		}
		if code >= http.StatusInternalServerError || message == "" || message == http.StatusText(code) {
			message = pages.StatusMessage(code)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}

		var renderErr error
		if handlers.IsHTMX(c) {
			renderErr = c.Render(code, "", partials.ToastsOOB(view.FlashData{Error: []string{message}}))
		} else {
			renderErr = handlers.RenderPage(c, code, http.StatusText(code),
				view.FromTempl(c.Request().Context(), pages.ErrorPage(code, message)))
		}
		if renderErr != nil {
			logger.Warn("Failed to render error page", "error", renderErr)
			_ = c.String(code, message)
		}
	}
}
