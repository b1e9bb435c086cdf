package partials

import (
	"github.com/nfrund/homejobs/internal/view"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// ToastRegionID is the element id htmx responses target for toasts.
const ToastRegionID = "toasts"

// Toasts renders the toast region with the pending flash messages.
func Toasts(f view.FlashData) g.Node {
	return toastRegion(f)
}

// ToastsOOB renders the toast region for an out-of-band htmx swap.
func ToastsOOB(f view.FlashData) g.Node {
	return toastRegion(f, hx.SwapOOB("true"))
}

func toastRegion(f view.FlashData, extra ...g.Node) g.Node {
	return h.Div(
		h.ID(ToastRegionID),
		h.Class("fixed bottom-4 right-4 z-50 flex flex-col gap-2"),
		g.Attr("aria-live", "polite"),
		g.Group(extra),
		g.Map(f.Success, func(msg string) g.Node { return toast("toast-success", msg) }),
		g.Map(f.Error, func(msg string) g.Node { return toast("toast-error", msg) }),
	)
}

func toast(class, msg string) g.Node {
	return h.Div(h.Class("toast "+class), h.Role("status"), g.Text(msg))
}
