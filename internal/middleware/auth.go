package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/homejobs/internal/domain"
)

const (
	// SessionContextKey is the echo context key holding the *domain.Session.
	SessionContextKey = "session"

	// AuthCookieName is the cookie carrying the session token.
	AuthCookieName = "auth_token"

	// LoginPath is where unauthenticated users are sent.
	LoginPath = "/login"
)

// Session resolves the auth cookie into a *domain.Session and stores it on the
// context. Requests without a valid session continue anonymously; a stale
// cookie is cleared.
func Session(provider domain.SessionProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AuthCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			sess, err := provider.Authenticate(c.Request().Context(), cookie.Value)
			if err != nil || sess == nil {
				FromContext(c.Request().Context()).Debug("Discarding invalid session cookie", "error", err)
				ClearAuthCookie(c)
				return next(c)
			}

			c.Set(SessionContextKey, sess)
			return next(c)
		}
	}
}

// RequireAuth redirects to the login page when no session was resolved.
// It must run after Session.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentSession(c) == nil {
			if c.Request().Header.Get("HX-Request") == "true" {
				c.Response().Header().Set("HX-Redirect", LoginPath)
				return c.NoContent(http.StatusUnauthorized)
			}
			return c.Redirect(http.StatusSeeOther, LoginPath)
		}
		return next(c)
	}
}

// CurrentSession returns the session resolved for this request, or nil.
func CurrentSession(c echo.Context) *domain.Session {
	sess, _ := c.Get(SessionContextKey).(*domain.Session)
	return sess
}

// SetAuthCookie stores the session token in an HttpOnly cookie.
func SetAuthCookie(c echo.Context, sess *domain.Session) {
	c.SetCookie(&http.Cookie{
		Name:     AuthCookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   c.Request().TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearAuthCookie expires the auth cookie.
func ClearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
