package view_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/homejobs/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

var store = sessions.NewCookieStore([]byte(testSessionSecret))

// runWithSession executes fn inside the session middleware for req.
func runWithSession(t *testing.T, req *http.Request, fn func(c echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()

	handler := session.Middleware(store)(func(c echo.Context) error {
		fn(c)
		return nil
	})
	require.NoError(t, handler(e.NewContext(req, rec)))
	return rec
}

func TestFlashMessages(t *testing.T) {
	t.Run("success flash is read once", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		runWithSession(t, req, func(c echo.Context) {
			view.SetFlashSuccess(c, "It worked!")

			flashes := view.GetFlashData(c)
			assert.Equal(t, []string{"It worked!"}, flashes.Success)
			assert.Empty(t, flashes.Error)

			assert.True(t, view.GetFlashData(c).Empty(), "flashes should be cleared after being read")
		})
	})

	t.Run("error flash", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		runWithSession(t, req, func(c echo.Context) {
			view.SetFlashError(c, "It failed!")

			flashes := view.GetFlashData(c)
			assert.Equal(t, []string{"It failed!"}, flashes.Error)
			assert.Empty(t, flashes.Success)
		})
	})

	t.Run("no flashes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		runWithSession(t, req, func(c echo.Context) {
			assert.True(t, view.GetFlashData(c).Empty())
		})
	})

	t.Run("flash survives a redirect through the cookie", func(t *testing.T) {
		first := runWithSession(t, httptest.NewRequest(http.MethodPost, "/logout", nil), func(c echo.Context) {
			view.NewNotifier(c).Success("Signed out successfully")
		})

		next := httptest.NewRequest(http.MethodGet, "/login", nil)
		for _, cookie := range first.Result().Cookies() {
			next.AddCookie(cookie)
		}

		runWithSession(t, next, func(c echo.Context) {
			assert.Equal(t, []string{"Signed out successfully"}, view.GetFlashData(c).Success)
		})
	})
}
