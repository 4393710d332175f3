package templates

import (
	"context"
	"io"

	"github.com/JonMunkholm/committees/internal/table"
	"github.com/a-h/templ"
)

// Navigation builds the sidebar for the registered views, marking active.
func Navigation(views []table.Config, active string) []NavItem {
	items := make([]NavItem, 0, len(views)+1)
	items = append(items, NavItem{Label: "Home", Href: "/home", Active: active == ""})
	for _, v := range views {
		items = append(items, NavItem{
			Label:  v.Title,
			Href:   ViewPath(v.Key, ""),
			Active: v.Key == active,
		})
	}
	return items
}

// Home lists every registered view.
func Home(views []table.Config) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.element("h1", "Committee lists")
		h.open("ul", "class", "view-list")
		for _, v := range views {
			h.open("li")
			h.element("a", v.Title, "href", ViewPath(v.Key, ""))
			h.close("li")
		}
		h.close("ul")
		return h.err
	})
	return Layout("Home", Navigation(views, ""), body)
}
