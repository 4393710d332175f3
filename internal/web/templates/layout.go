package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HTMXSource is the script the pages load htmx from.
const HTMXSource = "https://unpkg.com/htmx.org@1.9.12"

// NoticesID is the element error notices are swapped into.
const NoticesID = "notices"

// swapErrors lets htmx swap error responses, which carry a notice fragment.
const swapErrors = `document.addEventListener("htmx:beforeSwap",function(e){` +
	`if(e.detail.xhr.status>=400){e.detail.shouldSwap=true;e.detail.isError=false;}});`

// Layout wraps body in the page shell with navigation.
func Layout(title string, nav []NavItem, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<!DOCTYPE html>")
		h.open("html", "lang", "en")
		h.open("head")
		h.raw(`<meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.element("title", title+" | Committees")
		h.open("link", "rel", "stylesheet", "href", "/static/style.css")
		h.open("script", "src", HTMXSource, "defer", "")
		h.close("script")
		h.open("script")
		h.raw(swapErrors)
		h.close("script")
		h.close("head")

		h.open("body")
		h.open("nav", "class", "sidebar")
		h.element("a", "Committees", "class", "brand", "href", "/home")
		h.open("ul")
		for _, item := range nav {
			class := ""
			if item.Active {
				class = "active"
			}
			h.open("li")
			h.element("a", item.Label, "href", item.Href, "class", class)
			h.close("li")
		}
		h.close("ul")
		h.close("nav")

		h.open("main")
		if h.err != nil {
			return h.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		h.close("main")
		h.close("body")
		h.close("html")
		return h.err
	})
}

// NavItem is one sidebar link.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}
