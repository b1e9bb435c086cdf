package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/homejobs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSessionProvider struct {
	mock.Mock
}

func (m *mockSessionProvider) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	sess, _ := args.Get(0).(*domain.Session)
	return sess, args.Error(1)
}

func (m *mockSessionProvider) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)
	sess, _ := args.Get(0).(*domain.Session)
	return sess, args.Error(1)
}

func (m *mockSessionProvider) SignUp(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)
	sess, _ := args.Get(0).(*domain.Session)
	return sess, args.Error(1)
}

func (m *mockSessionProvider) SignOut(ctx context.Context, sess *domain.Session) error {
	return m.Called(ctx, sess).Error(0)
}

func newTestServer(provider domain.SessionProvider) *echo.Echo {
	e := echo.New()
	e.Use(Session(provider))

	e.GET("/", func(c echo.Context) error {
		if sess := CurrentSession(c); sess != nil {
			return c.String(http.StatusOK, "hello "+sess.Email)
		}
		return c.String(http.StatusOK, "hello stranger")
	})
	app := e.Group("/app", RequireAuth)
	app.GET("/profile", func(c echo.Context) error {
		return c.String(http.StatusOK, "profile of "+CurrentSession(c).UserID)
	})
	return e
}

func TestSessionMiddleware(t *testing.T) {
	sess := &domain.Session{Token: "good", UserID: "u1", Email: "ada@x.com", ExpiresAt: time.Now().Add(time.Hour)}

	t.Run("anonymous request passes without lookup", func(t *testing.T) {
		provider := new(mockSessionProvider)
		e := newTestServer(provider)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello stranger", rec.Body.String())
		provider.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("valid cookie resolves the session", func(t *testing.T) {
		provider := new(mockSessionProvider)
		provider.On("Authenticate", mock.Anything, "good").Return(sess, nil)
		e := newTestServer(provider)

		req := httptest.NewRequest(http.MethodGet, "/app/profile", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "good"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "profile of u1", rec.Body.String())
	})

	t.Run("invalid cookie is cleared and treated as anonymous", func(t *testing.T) {
		provider := new(mockSessionProvider)
		provider.On("Authenticate", mock.Anything, "stale").Return(nil, domain.ErrInvalidCredentials)
		e := newTestServer(provider)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "stale"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "hello stranger", rec.Body.String())
		cookies := rec.Result().Cookies()
		if assert.Len(t, cookies, 1) {
			assert.Equal(t, AuthCookieName, cookies[0].Name)
			assert.Equal(t, -1, cookies[0].MaxAge)
		}
	})
}

func TestRequireAuth(t *testing.T) {
	e := newTestServer(new(mockSessionProvider))

	t.Run("redirects browsers to login", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app/profile", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get("Location"))
	})

	t.Run("tells htmx to redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/app/profile", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get("HX-Redirect"))
	})
}
