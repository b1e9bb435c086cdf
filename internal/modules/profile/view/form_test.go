package view

import (
	"strings"
	"testing"
	"time"

	"github.com/nfrund/homejobs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

var adaDraft = domain.ProfileFields{FullName: "Ada", Username: "ada@x.com"}

func TestLongDate(t *testing.T) {
	cases := map[string]time.Time{
		"January 1st, 2024":    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		"January 2nd, 2024":    time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
		"March 3rd, 2024":      time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC),
		"April 11th, 2024":     time.Date(2024, 4, 11, 12, 0, 0, 0, time.UTC),
		"May 12th, 2024":       time.Date(2024, 5, 12, 12, 0, 0, 0, time.UTC),
		"June 13th, 2024":      time.Date(2024, 6, 13, 12, 0, 0, 0, time.UTC),
		"July 21st, 2024":      time.Date(2024, 7, 21, 12, 0, 0, 0, time.UTC),
		"August 22nd, 2024":    time.Date(2024, 8, 22, 12, 0, 0, 0, time.UTC),
		"December 31st, 2024":  time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC),
		"September 30th, 2024": time.Date(2024, 9, 30, 12, 0, 0, 0, time.UTC),
	}
	for want, in := range cases {
		assert.Equal(t, want, LongDate(in, time.UTC))
	}

	t.Run("uses the display location", func(t *testing.T) {
		loc := time.FixedZone("UTC-5", -5*60*60)
		assert.Equal(t, "January 1st, 2024", LongDate(time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC), loc))
	})
}

func TestForm_PersonalTab(t *testing.T) {
	out := render(t, Form(FormData{ID: "f1", Tab: "personal", Draft: adaDraft}))

	assert.Contains(t, out, `<input id="full_name" name="full_name" type="text" value="Ada"`)
	assert.Contains(t, out, `<input id="username" name="username" type="text" value="ada@x.com"`)
	assert.Contains(t, out, `<input id="website" name="website" type="text" value=""`)
	assert.Contains(t, out, `placeholder="https://linkedin.com/in/username"`)

	for _, name := range []string{"billing_address", "phone_number", "company_name"} {
		assert.Contains(t, out, `<input type="hidden" name="`+name+`" value="">`)
	}
	assert.Contains(t, out, `name="form_id" value="f1"`)
	assert.Contains(t, out, "Save Changes")
	assert.NotContains(t, out, " disabled>")
}

func TestForm_EverySubmitCarriesAllFields(t *testing.T) {
	for _, tab := range []string{"personal", "billing", "preferences"} {
		out := render(t, Form(FormData{Tab: tab, Draft: adaDraft}))
		for _, name := range []string{"full_name", "username", "website", "billing_address", "phone_number", "company_name"} {
			assert.Equal(t, 1, strings.Count(out, `name="`+name+`"`), "tab %s field %s", tab, name)
		}
	}
}

func TestForm_SubmitButtonPendingState(t *testing.T) {
	out := render(t, Form(FormData{Tab: "personal"}))
	assert.Contains(t, out, `hx-disabled-elt="find button[type=`)
	assert.Contains(t, out, `<span class="label-idle">Save Changes</span><span class="label-busy">Saving...</span></button>`)
	assert.NotContains(t, out, " disabled>")
}

func TestForm_BillingTab(t *testing.T) {
	t.Run("null subscription", func(t *testing.T) {
		out := render(t, Form(FormData{Tab: "billing", Subscription: &domain.SubscriptionDetails{}}))
		assert.Contains(t, out, MsgNoSubscription)
		assert.NotContains(t, out, "Current Subscription")
		assert.NotContains(t, out, "Extend Subscription")
	})

	t.Run("no details at all", func(t *testing.T) {
		out := render(t, Form(FormData{Tab: "billing"}))
		assert.Contains(t, out, MsgNoSubscription)
	})

	t.Run("failed read is shown distinctly", func(t *testing.T) {
		out := render(t, Form(FormData{Tab: "billing", SubscriptionFailed: true}))
		assert.Contains(t, out, MsgSubscriptionUnavailable)
		assert.NotContains(t, out, MsgNoSubscription)
	})

	t.Run("active subscription", func(t *testing.T) {
		details := &domain.SubscriptionDetails{Subscription: &domain.Subscription{
			Name:               "Copper Weekly",
			CurrentPeriodStart: time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC).Unix(),
			CurrentPeriodEnd:   time.Date(2024, 1, 9, 12, 0, 0, 0, time.UTC).Unix(),
		}}
		out := render(t, Form(FormData{Tab: "billing", Subscription: details, Location: time.UTC}))

		assert.Contains(t, out, "Plan: Copper Weekly")
		assert.Contains(t, out, "Started: January 2nd, 2024")
		assert.Contains(t, out, "Expires: January 9th, 2024")
		assert.Contains(t, out, "Extend Subscription")
		assert.Contains(t, out, `hx-post="/app/profile/subscription"`)
		assert.NotContains(t, out, MsgNoSubscription)

		assert.Contains(t, out, `<input id="billing_address" name="billing_address" type="text"`)
		assert.Contains(t, out, `<input type="hidden" name="full_name" value="">`)
	})
}

func TestForm_PreferencesTab(t *testing.T) {
	out := render(t, Form(FormData{Tab: "preferences", Draft: adaDraft}))
	assert.Contains(t, out, MsgPreferences)
	assert.NotContains(t, out, `type="text"`)
	assert.Contains(t, out, `<input type="hidden" name="full_name" value="Ada">`)
}

func TestSummary(t *testing.T) {
	out := render(t, Summary(&domain.Profile{ProfileFields: adaDraft}))
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "ada@x.com")
	assert.Contains(t, out, `hx-trigger="profile-updated from:body"`)

	assert.Contains(t, render(t, Summary(nil)), "Your profile")
}
