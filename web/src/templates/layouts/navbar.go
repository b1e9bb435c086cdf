package layouts

import (
	"github.com/nfrund/homejobs/internal/domain"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

const (
	outlineButton = "px-4 py-2 rounded-md border border-gray-300 text-sm font-medium hover:bg-gray-100"
	accentButton  = "px-4 py-2 rounded-md bg-pink-600 text-white text-sm font-medium hover:bg-pink-700"
)

// Navbar renders the site navigation. The profile link and sign-out action
// appear only when sess is non-nil; otherwise both "Log In" and "Sign Up"
// lead to the login page.
func Navbar(sess *domain.Session) g.Node {
	return h.Nav(
		h.Class("border-b bg-white"),
		h.Div(
			h.Class("container mx-auto px-4 py-4 flex items-center justify-between"),
			h.A(
				h.Href("/"),
				h.Class("flex items-center space-x-2"),
				h.Span(h.Class("text-2xl font-bold text-pink-600"), g.Text(BrandName)),
			),
			h.Div(
				h.Class("flex items-center space-x-4"),
				h.A(h.Href("/post-job"), h.Class(outlineButton), g.Text("Post a Job")),
				h.A(h.Href("/affiliates"), h.Class(outlineButton), g.Text("Affiliates")),
				g.If(sess != nil, g.Group{
					h.A(h.Href("/app/profile"), h.Class(outlineButton), g.Text("Profile")),
					signOutForm(),
				}),
				g.If(sess == nil, g.Group{
					h.A(h.Href("/login"), h.Class(outlineButton), g.Text("Log In")),
					h.A(h.Href("/login"), h.Class(accentButton), g.Text("Sign Up")),
				}),
			),
		),
	)
}

// signOutForm posts to /logout. With htmx the response either redirects via
// HX-Redirect or swaps an error toast out of band and leaves the page alone.
func signOutForm() g.Node {
	return h.Form(
		h.Method("post"),
		h.Action("/logout"),
		hx.Post("/logout"),
		hx.Swap("none"),
		h.Button(h.Type("submit"), h.Class(outlineButton), g.Text("Sign Out")),
	)
}
