package layouts

import (
	"github.com/nfrund/homejobs/internal/domain"
	"github.com/nfrund/homejobs/internal/view"
	"github.com/nfrund/homejobs/web/src/templates/partials"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Page carries the per-request data every full page needs.
type Page struct {
	Title   string
	Session *domain.Session
	Flashes view.FlashData
}

// Base wraps content in the HTML document shell with the navigation bar and
// the toast region.
func Base(p Page, content ...g.Node) g.Node {
	return h.Doctype(
		h.HTML(
			h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(CalculateTitle(p.Title))),
				h.Script(h.Src("https://cdn.tailwindcss.com")),
				h.Script(h.Src("https://unpkg.com/htmx.org@2.0.4")),
				h.Link(h.Rel("stylesheet"), h.Href("/static/app.css")),
			),
			h.Body(
				h.Class("min-h-screen bg-gray-50 text-gray-900"),
				Navbar(p.Session),
				h.Main(h.Class("container mx-auto px-4 py-8"), g.Group(content)),
				partials.Toasts(p.Flashes),
			),
		),
	)
}
