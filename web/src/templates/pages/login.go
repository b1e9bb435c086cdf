package pages

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// LoginData pre-fills the login and sign-up forms after a failed attempt.
type LoginData struct {
	Email string
}

// Login renders the sign-in and sign-up forms side by side.
func Login(data LoginData) g.Node {
	return h.Div(
		h.Class("grid gap-8 md:grid-cols-2 max-w-4xl mx-auto"),
		credentialsForm("Log In", "/login", "login", data.Email, "current-password"),
		credentialsForm("Sign Up", "/signup", "signup", "", "new-password"),
	)
}

func credentialsForm(title, action, prefix, email, autocomplete string) g.Node {
	return h.Form(
		h.Method("post"),
		h.Action(action),
		h.Class("bg-white shadow rounded-xl p-8 space-y-4"),
		h.H2(h.Class("text-2xl font-semibold"), g.Text(title)),
		h.Div(
			h.Class("space-y-2"),
			h.Label(h.For(prefix+"-email"), g.Text("Email")),
			h.Input(h.ID(prefix+"-email"), h.Name("email"), h.Type("email"), h.Required(),
				h.Value(email), h.AutoComplete("email"), h.Class("w-full border rounded-md px-3 py-2")),
		),
		h.Div(
			h.Class("space-y-2"),
			h.Label(h.For(prefix+"-password"), g.Text("Password")),
			h.Input(h.ID(prefix+"-password"), h.Name("password"), h.Type("password"), h.Required(),
				h.AutoComplete(autocomplete), h.Class("w-full border rounded-md px-3 py-2")),
		),
		h.Button(h.Type("submit"), h.Class("w-full px-4 py-2 rounded-md bg-pink-600 text-white font-medium"), g.Text(title)),
	)
}
