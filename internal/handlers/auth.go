package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/homejobs/internal/domain"
	"github.com/nfrund/homejobs/internal/middleware"
	"github.com/nfrund/homejobs/internal/view"
	"github.com/nfrund/homejobs/web/src/templates/pages"
	"github.com/nfrund/homejobs/web/src/templates/partials"
)

// Toast texts shown by the auth flows.
const (
	MsgSignedOut      = "Signed out successfully"
	MsgSignOutFailed  = "Error signing out"
	MsgLoggedIn       = "Logged in successfully"
	MsgAccountCreated = "Account created successfully"
	MsgBadCredentials = "Invalid email or password."
	MsgInvalidSignUp  = "Enter a valid email and a password of at least 8 characters."
	MsgDuplicateUser  = "An account with this email already exists."
	MsgSignUpFailed   = "Could not create your account."
)

const (
	flashSessionName  = "flash-session"
	flashKeyFormEmail = "form_email"
	postLoginPath     = "/"
	postSignUpPath    = "/app/profile"
)

// AuthHandler serves the login page and the sign-in, sign-up and sign-out
// actions.
type AuthHandler struct {
	sessions domain.SessionProvider
	profiles domain.ProfileRepository
}

func NewAuthHandler(sessions domain.SessionProvider, profiles domain.ProfileRepository) *AuthHandler {
	return &AuthHandler{sessions: sessions, profiles: profiles}
}

// LoginGet renders the login and sign-up forms (GET /login).
func (h *AuthHandler) LoginGet(c echo.Context) error {
	if middleware.CurrentSession(c) != nil {
		return c.Redirect(http.StatusSeeOther, postLoginPath)
	}

	var prefilledEmail string
	if sess, err := session.Get(flashSessionName, c); err == nil {
		if flashes := sess.Flashes(flashKeyFormEmail); len(flashes) > 0 {
			prefilledEmail, _ = flashes[0].(string)
			_ = sess.Save(c.Request(), c.Response())
		}
	}

	return RenderPage(c, http.StatusOK, "Log In", pages.Login(pages.LoginData{Email: prefilledEmail}))
}

// LoginPost signs the user in (POST /login).
func (h *AuthHandler) LoginPost(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())

	var req CredentialsRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Password == "" {
		view.SetFlashError(c, MsgBadCredentials)
		return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
	}

	sess, err := h.sessions.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("Failed login attempt", "email", req.Email, "error", err)
		view.SetFlashError(c, MsgBadCredentials)
		rememberEmail(c, req.Email)
		return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
	}

	if err := h.ensureProfile(c.Request().Context(), sess); err != nil {
		logger.Error("Failed to ensure profile on login", "user_id", sess.UserID, "error", err)
	}

	middleware.SetAuthCookie(c, sess)
	view.SetFlashSuccess(c, MsgLoggedIn)
	return c.Redirect(http.StatusSeeOther, postLoginPath)
}

// SignupPost creates an account and its empty profile (POST /signup).
func (h *AuthHandler) SignupPost(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		view.SetFlashError(c, MsgInvalidSignUp)
		return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
	}
	if err := c.Validate(&req); err != nil {
		view.SetFlashError(c, MsgInvalidSignUp)
		rememberEmail(c, req.Email)
		return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
	}

	sess, err := h.sessions.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			view.SetFlashError(c, MsgDuplicateUser)
		} else {
			logger.Error("Error creating user", "error", err)
			view.SetFlashError(c, MsgSignUpFailed)
		}
		rememberEmail(c, req.Email)
		return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
	}

	if err := h.ensureProfile(ctx, sess); err != nil {
		logger.Error("Failed to create profile for new account", "user_id", sess.UserID, "error", err)
		view.SetFlashError(c, MsgSignUpFailed)
		rememberEmail(c, req.Email)
		return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
	}

	middleware.SetAuthCookie(c, sess)
	view.SetFlashSuccess(c, MsgAccountCreated)
	return c.Redirect(http.StatusSeeOther, postSignUpPath)
}

// ensureProfile creates the user's profile row unless it already exists. Login
// calls it too, so an account whose sign-up stopped short of the profile still
// gets one.
func (h *AuthHandler) ensureProfile(ctx context.Context, sess *domain.Session) error {
	return h.profiles.CreateProfile(ctx, &domain.Profile{
		UserID:        sess.UserID,
		ProfileFields: domain.ProfileFields{Username: sess.Email},
	})
}

// SignOut ends the session (POST /logout). On success the user lands on the
// login page. On failure an error toast is shown and the browser stays where
// it is: htmx callers get the toast out of band, plain form posts get 204 and
// see the toast on their next page load.
func (h *AuthHandler) SignOut(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	if sess != nil {
		if err := h.sessions.SignOut(ctx, sess); err != nil {
			middleware.FromContext(ctx).Error("Error signing out", "user_id", sess.UserID, "error", err)
			view.SetFlashError(c, MsgSignOutFailed)
			if IsHTMX(c) {
				return c.Render(http.StatusOK, "", partials.ToastsOOB(view.GetFlashData(c)))
			}
			return c.NoContent(http.StatusNoContent)
		}
		view.SetFlashSuccess(c, MsgSignedOut)
	}

	middleware.ClearAuthCookie(c)
	if IsHTMX(c) {
		c.Response().Header().Set("HX-Redirect", middleware.LoginPath)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

// rememberEmail keeps the submitted address for the next render of the login
// page.
func rememberEmail(c echo.Context, email string) {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return
	}
	sess.AddFlash(email, flashKeyFormEmail)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to save session", "error", err)
	}
}
