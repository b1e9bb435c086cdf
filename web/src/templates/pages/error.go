package pages

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
)

// ErrorPage renders the body shown for unhandled errors.
func ErrorPage(status int, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<section class="max-w-xl mx-auto text-center py-16"><h1 class="text-5xl font-bold mb-4">%d</h1><p class="text-lg text-gray-600">%s</p><a href="/" class="inline-block mt-8 underline">Back to home</a></section>`,
			status, templ.EscapeString(message))
		return err
	})
}

// StatusMessage returns the user-facing text for an HTTP status code.
func StatusMessage(status int) string {
	switch status {
	case http.StatusNotFound:
		return "We couldn't find that page."
	case http.StatusForbidden, http.StatusUnauthorized:
		return "You don't have access to that page."
	case http.StatusTooManyRequests:
		return "Too many requests. Please slow down and try again."
	}
	if status >= 500 {
		return "Something went wrong on our end. Please try again."
	}
	return http.StatusText(status)
}
