package pages

import (
	"github.com/nfrund/homejobs/internal/domain"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Home is the landing page.
func Home(sess *domain.Session) g.Node {
	return h.Section(
		h.Class("text-center py-16"),
		h.H1(h.Class("text-4xl font-extrabold mb-4"), g.Text("Flexible work you can do from home")),
		h.P(h.Class("text-lg text-gray-600 mb-8"),
			g.Text("Remote and part-time roles from employers who value flexibility."),
		),
		g.If(sess == nil,
			h.A(h.Href("/login"), h.Class("px-6 py-3 rounded-md bg-pink-600 text-white font-medium"), g.Text("Get started")),
		),
		g.If(sess != nil,
			h.A(h.Href("/app/profile"), h.Class("px-6 py-3 rounded-md bg-pink-600 text-white font-medium"), g.Text("Go to your profile")),
		),
	)
}

// PostJob is the entry point for employers.
func PostJob() g.Node {
	return placeholder("Post a Job", "Job posting opens soon. Check back shortly to list your role.")
}

// Affiliates describes the affiliate programme.
func Affiliates() g.Node {
	return placeholder("Affiliates", "Partner with us and earn by referring employers and candidates.")
}

func placeholder(title, body string) g.Node {
	return h.Section(
		h.Class("max-w-2xl mx-auto bg-white shadow rounded-xl p-10"),
		h.H1(h.Class("text-3xl font-bold mb-4"), g.Text(title)),
		h.P(h.Class("text-gray-600"), g.Text(body)),
	)
}
