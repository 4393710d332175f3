package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ErrorAlert renders a dismissible, non-blocking error notice.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.open("div", "class", "notice notice-error", "role", "alert")
		h.element("strong", message)
		if action != "" {
			h.raw(" ")
			h.element("span", action)
		}
		if code != "" {
			h.raw(" ")
			h.element("small", "("+code+")", "class", "code")
		}
		h.open("button", "type", "button", "class", "dismiss", "onclick", "this.parentElement.remove()")
		h.text("×")
		h.close("button")
		h.close("div")
		return h.err
	})
}
