package profile

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/homejobs/internal/domain"
	"github.com/nfrund/homejobs/internal/handlers"
	"github.com/nfrund/homejobs/internal/middleware"
	"github.com/nfrund/homejobs/internal/modules/profile/view"
	"github.com/nfrund/homejobs/internal/querycache"
	"github.com/nfrund/homejobs/internal/subscription"
	gview "github.com/nfrund/homejobs/internal/view"
	"github.com/nfrund/homejobs/web/src/templates/partials"
)

const (
	// UpdatedEvent is the htmx trigger emitted after a successful update.
	UpdatedEvent = "profile-updated"

	MsgSubscriptionRequested = "Your subscription request has been received."
)

// Handler serves the profile page and its actions under /app/profile.
type Handler struct {
	profiles      *ProfileQuery
	subscriptions *SubscriptionQuery
	subCache      *querycache.Cache[*domain.SubscriptionDetails]
	submitter     *Submitter
	starter       domain.SubscriptionStarter
	planID        string
	location      *time.Location
}

// HandlerConfig groups what the profile handler needs.
type HandlerConfig struct {
	Profiles          *ProfileQuery
	Subscriptions     *SubscriptionQuery
	SubscriptionCache *querycache.Cache[*domain.SubscriptionDetails]
	Submitter         *Submitter
	Starter           domain.SubscriptionStarter
	PlanID            string
	Location          *time.Location
}

func NewHandler(cfg HandlerConfig) *Handler {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		profiles:      cfg.Profiles,
		subscriptions: cfg.Subscriptions,
		subCache:      cfg.SubscriptionCache,
		submitter:     cfg.Submitter,
		starter:       cfg.Starter,
		planID:        cfg.PlanID,
		location:      loc,
	}
}

// Get mounts a new form instance (GET /app/profile?tab=).
func (h *Handler) Get(c echo.Context) error {
	tab, err := ParseTab(c.QueryParam("tab"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
	}

	p, err := h.profiles.Load(ctx, sess.UserID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	form := NewForm(uuid.NewString(), p, tab, sess)
	h.loadSubscription(ctx, form)

	return handlers.RenderPage(c, http.StatusOK, "Profile", view.Page(view.PageData{
		Profile: p,
		Form:    h.formData(form),
	}))
}

// Post submits the posted draft (POST /app/profile). htmx callers always get
// the re-rendered form with the outcome toast; plain posts are redirected on
// success and shown the page again, draft intact, on failure.
func (h *Handler) Post(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)
	notifier := gview.NewNotifier(c)

	tab, err := ParseTab(c.FormValue("tab"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	formID := c.FormValue("form_id")
	if formID == "" {
		formID = uuid.NewString()
	}

	draft, bindErr := bindDraft(c)
	form := NewForm(formID, &domain.Profile{ProfileFields: draft}, tab, sess)

	if bindErr != nil {
		middleware.FromContext(ctx).Warn("Rejected partial profile submit", "error", bindErr)
		notifier.Error(MsgProfileFailed)
		return h.respond(c, form, http.StatusBadRequest)
	}

	err = h.submitter.Submit(ctx, sess, form, notifier)
	switch {
	case err == nil:
		if handlers.IsHTMX(c) {
			c.Response().Header().Set("HX-Trigger", UpdatedEvent)
			return h.respond(c, form, http.StatusOK)
		}
		return c.Redirect(http.StatusSeeOther, "/app/profile?tab="+string(tab))
	case errors.Is(err, domain.ErrSubmitInFlight):
		if handlers.IsHTMX(c) {
			c.Response().Header().Set("HX-Reswap", "none")
		}
		return h.respond(c, form, http.StatusConflict)
	case errors.Is(err, domain.ErrNoSession):
		return h.respond(c, form, http.StatusUnauthorized)
	case IsClientError(err):
		return h.respond(c, form, http.StatusUnprocessableEntity)
	default:
		return h.respond(c, form, http.StatusBadGateway)
	}
}

// respond renders the form after a submit. htmx only swaps 2xx responses, so
// htmx callers get 200 whatever the outcome.
func (h *Handler) respond(c echo.Context, form *Form, status int) error {
	h.loadSubscription(c.Request().Context(), form)

	if handlers.IsHTMX(c) {
		return handlers.RenderFragment(c, http.StatusOK, view.Form(h.formData(form)))
	}

	var p *domain.Profile
	if form.Session != nil {
		ctx := c.Request().Context()
		var err error
		if p, err = h.profiles.Load(ctx, form.Session.UserID); err != nil {
			middleware.FromContext(ctx).Warn("Profile unavailable for re-render", "user_id", form.Session.UserID, "error", err)
		}
	}
	return handlers.RenderPage(c, status, "Profile", view.Page(view.PageData{
		Profile: p,
		Form:    h.formData(form),
	}))
}

// Summary renders the profile header (GET /app/profile/summary).
func (h *Handler) Summary(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}
	p, err := h.profiles.Load(c.Request().Context(), sess.UserID)
	if err != nil {
		return fmt.Errorf("load profile summary: %w", err)
	}
	return c.Render(http.StatusOK, "", view.Summary(p))
}

// Subscribe hands the configured plan to the purchase flow
// (POST /app/profile/subscription).
func (h *Handler) Subscribe(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	ctx := subscription.WithRequestID(c.Request().Context(), c.Response().Header().Get(echo.HeaderXRequestID))
	h.starter.StartSubscription(ctx, sess, h.planID)
	if h.subCache != nil {
		h.subCache.Invalidate(querycache.SubscriptionKey(sess.UserID))
	}

	gview.SetFlashSuccess(c, MsgSubscriptionRequested)
	if handlers.IsHTMX(c) {
		return c.Render(http.StatusOK, "", partials.ToastsOOB(gview.GetFlashData(c)))
	}
	return c.Redirect(http.StatusSeeOther, "/app/profile?tab="+string(TabBilling))
}

func (h *Handler) loadSubscription(ctx context.Context, form *Form) {
	details, err := h.subscriptions.Load(ctx, form.Session)
	if err != nil {
		middleware.FromContext(ctx).Warn("Subscription details unavailable", "error", err)
	}
	form.Subscription = details
	form.SubscriptionErr = err
}

func (h *Handler) formData(f *Form) view.FormData {
	tabs := make([]view.TabLink, 0, len(Tabs))
	for _, t := range Tabs {
		tabs = append(tabs, view.TabLink{Name: string(t), Label: t.Label(), Active: t == f.Tab})
	}
	return view.FormData{
		ID:                 f.ID,
		Tab:                string(f.Tab),
		Tabs:               tabs,
		Draft:              f.Draft,
		Subscription:       f.Subscription,
		SubscriptionFailed: f.SubscriptionErr != nil,
		Location:           h.location,
	}
}

// bindDraft reads all six fields from the posted form. A field missing from
// the body is an error so a partial draft is never sent.
func bindDraft(c echo.Context) (domain.ProfileFields, error) {
	var draft domain.ProfileFields
	values, err := c.FormParams()
	if err != nil {
		return draft, fmt.Errorf("%w: %v", domain.ErrInvalidDraft, err)
	}

	for _, name := range FieldNames {
		if _, ok := values[name]; !ok {
			return draft, fmt.Errorf("%w: missing field %s", domain.ErrInvalidDraft, name)
		}
	}

	draft = domain.ProfileFields{
		FullName:       values.Get("full_name"),
		Username:       values.Get("username"),
		Website:        values.Get("website"),
		BillingAddress: values.Get("billing_address"),
		PhoneNumber:    values.Get("phone_number"),
		CompanyName:    values.Get("company_name"),
	}
	return draft, nil
}
