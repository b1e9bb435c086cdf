package view

import (
	"github.com/nfrund/homejobs/internal/domain"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

const (
	// FormElementID is the id of the profile form element.
	FormElementID = "profile-form"

	MsgNoSubscription          = "No active subscription found."
	MsgSubscriptionUnavailable = "Subscription details are unavailable right now."
	MsgPreferences             = "Job preferences can be updated from the main jobs page filters."

	inputClass  = "w-full border rounded-md px-3 py-2 bg-white"
	buttonClass = "mt-6 px-4 py-2 rounded-md bg-pink-600 text-white font-medium hover:bg-pink-700"
)

type field struct {
	name, label, value, placeholder string
}

// Form renders the profile form for the active tab. Fields of the other tabs
// are carried as hidden inputs so every submit posts the whole draft.
func Form(d FormData) g.Node {
	personal := []field{
		{name: "full_name", label: "Full Name", value: d.Draft.FullName},
		{name: "username", label: "Email", value: d.Draft.Username},
		{name: "website", label: "LinkedIn Profile", value: d.Draft.Website, placeholder: "https://linkedin.com/in/username"},
	}
	billing := []field{
		{name: "billing_address", label: "Billing Address", value: d.Draft.BillingAddress},
		{name: "phone_number", label: "Phone Number", value: d.Draft.PhoneNumber},
		{name: "company_name", label: "Company Name", value: d.Draft.CompanyName},
	}

	var section g.Node
	var hidden []field
	switch d.Tab {
	case "billing":
		section = billingSection(d, billing)
		hidden = personal
	case "preferences":
		section = preferencesSection()
		hidden = append(personal, billing...)
	default:
		section = personalSection(personal)
		hidden = billing
	}

	return h.Form(
		h.ID(FormElementID),
		h.Class("p-6"),
		h.Method("post"),
		h.Action("/app/profile"),
		hx.Post("/app/profile"),
		hx.Target("this"),
		hx.Swap("outerHTML"),
		g.Attr("hx-disabled-elt", "find button[type='submit']"),
		h.Input(h.Type("hidden"), h.Name("form_id"), h.Value(d.ID)),
		h.Input(h.Type("hidden"), h.Name("tab"), h.Value(d.Tab)),
		section,
		g.Map(hidden, hiddenInput),
		submitButton(),
	)
}

// submitButton carries both labels. While the form's request is in flight
// htmx disables the button (hx-disabled-elt) and sets htmx-request on the
// form, which app.css uses to show the pending label.
func submitButton() g.Node {
	return h.Button(
		h.Type("submit"),
		h.Class(buttonClass),
		h.Span(h.Class("label-idle"), g.Text("Save Changes")),
		h.Span(h.Class("label-busy"), g.Text("Saving...")),
	)
}

func personalSection(fields []field) g.Node {
	return h.Div(
		h.Class("space-y-4"),
		sectionHeading("Personal Information"),
		g.Map(fields, textInput),
	)
}

func billingSection(d FormData, fields []field) g.Node {
	return h.Div(
		h.Class("space-y-4"),
		sectionHeading("Billing Information"),
		subscriptionSummary(d),
		g.Map(fields, textInput),
	)
}

func preferencesSection() g.Node {
	return h.Div(
		h.Class("space-y-4"),
		sectionHeading("Preferences"),
		h.P(h.Class("text-gray-500"), g.Text(MsgPreferences)),
	)
}

// subscriptionSummary shows the current plan, or why there is none.
func subscriptionSummary(d FormData) g.Node {
	switch {
	case d.SubscriptionFailed:
		return h.P(h.Class("text-gray-500 mb-6"), h.Role("status"), g.Text(MsgSubscriptionUnavailable))
	case !d.Subscription.Active():
		return h.P(h.Class("text-gray-500 mb-6"), g.Text(MsgNoSubscription))
	}

	sub := d.Subscription.Subscription
	return h.Div(
		h.ID("subscription-summary"),
		h.Class("bg-gray-100 p-4 rounded-lg mb-6"),
		h.H3(h.Class("text-lg font-medium mb-2"), g.Text("Current Subscription")),
		h.P(h.Class("text-gray-600"), g.Text("Plan: "+sub.Name)),
		h.P(h.Class("text-gray-600"), g.Text("Started: "+LongDate(sub.StartsAt(), d.Location))),
		h.P(h.Class("text-gray-600"), g.Text("Expires: "+LongDate(sub.EndsAt(), d.Location))),
		h.Button(
			h.Type("submit"),
			g.Attr("formaction", "/app/profile/subscription"),
			hx.Post("/app/profile/subscription"),
			hx.Swap("none"),
			h.Class("mt-4 px-4 py-2 rounded-md bg-gray-900 text-white"),
			g.Text("Extend Subscription"),
		),
	)
}

func sectionHeading(title string) g.Node {
	return h.Div(
		h.Class("flex items-center gap-2 mb-6"),
		h.H2(h.Class("text-xl font-semibold"), g.Text(title)),
	)
}

func textInput(f field) g.Node {
	return h.Div(
		h.Class("space-y-2"),
		h.Label(h.For(f.name), g.Text(f.label)),
		h.Input(
			h.ID(f.name),
			h.Name(f.name),
			h.Type("text"),
			h.Value(f.value),
			g.If(f.placeholder != "", h.Placeholder(f.placeholder)),
			h.Class(inputClass),
		),
	)
}

func hiddenInput(f field) g.Node {
	return h.Input(h.Type("hidden"), h.Name(f.name), h.Value(f.value))
}

// Summary is the profile header refreshed after every successful update.
func Summary(p *domain.Profile) g.Node {
	name, email := "", ""
	if p != nil {
		name, email = p.FullName, p.Username
	}
	if name == "" {
		name = "Your profile"
	}
	return h.Div(
		h.ID("profile-summary"),
		h.Class("mb-6"),
		hx.Get("/app/profile/summary"),
		hx.Trigger("profile-updated from:body"),
		hx.Swap("outerHTML"),
		h.H1(h.Class("text-3xl font-bold"), g.Text(name)),
		g.If(email != "", h.P(h.Class("text-gray-500"), g.Text(email))),
	)
}

// Page renders the summary header, the tab bar and the form.
func Page(d PageData) g.Node {
	return h.Div(
		h.Class("max-w-3xl mx-auto bg-white shadow rounded-xl"),
		h.Div(h.Class("p-6 pb-0"), Summary(d.Profile)),
		tabBar(d.Form.Tabs),
		Form(d.Form),
	)
}

func tabBar(tabs []TabLink) g.Node {
	return h.Nav(
		h.Class("flex border-b px-6"),
		g.Map(tabs, func(t TabLink) g.Node {
			class := "px-4 py-2 -mb-px text-gray-500"
			if t.Active {
				class = "px-4 py-2 -mb-px border-b-2 border-pink-600 font-medium"
			}
			return h.A(
				h.Href("/app/profile?tab="+t.Name),
				h.Class(class),
				g.If(t.Active, g.Attr("aria-current", "page")),
				g.Text(t.Label),
			)
		}),
	)
}
