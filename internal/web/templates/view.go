package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/JonMunkholm/committees/internal/table"
	"github.com/a-h/templ"
)

// NoResultsText is shown in place of rows when nothing matches.
const NoResultsText = "No matching results"

// TableParams is everything the table fragment renders.
type TableParams struct {
	Config   table.Config
	Instance string
	Snapshot table.Snapshot
}

func (p TableParams) path(parts ...string) string {
	return ViewPath(p.Config.Key, p.Instance, parts...)
}

func (p TableParams) targetID() string {
	return "table-" + p.Instance
}

// ViewPage renders a mounted view: title, export links, search box and the
// table fragment.
func ViewPage(views []table.Config, p TableParams) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		target := "#" + p.targetID()

		h.open("header", "class", "view-header")
		h.element("h1", p.Config.Title)
		h.open("div", "class", "exports")
		for _, f := range table.Formats {
			h.element("a", "Export "+formatLabel(f),
				"class", "button",
				"href", p.path("export."+string(f)),
				"download", p.Config.Export.FileName(p.Config.Key, f),
				"data-export", string(f),
			)
		}
		h.close("div")
		h.close("header")

		h.open("div", "id", NoticesID, "class", "notices", "aria-live", "polite")
		h.close("div")

		h.open("input",
			"type", "search",
			"name", "q",
			"class", "search",
			"placeholder", "Search",
			"value", p.Snapshot.Search,
			"hx-post", p.path("search"),
			"hx-trigger", "input changed delay:300ms, search",
			"hx-target", target,
			"hx-swap", "outerHTML",
		)

		if h.err != nil {
			return h.err
		}
		if err := Table(p).Render(ctx, w); err != nil {
			return err
		}

		h.raw("<script>")
		h.raw(exportScript)
		h.raw("</script>")

		// Tear the instance down when the page goes away.
		h.raw("<script>window.addEventListener(\"pagehide\",function(){fetch(")
		h.raw(strconv.Quote(p.path()))
		h.raw(",{method:\"DELETE\",keepalive:true})});</script>")
		return h.err
	})
	return Layout(p.Config.Title, Navigation(views, p.Config.Key), body)
}

// exportScript fetches export links as HTMX requests. A file response is
// saved under the link's download name; an error response is a notice
// fragment and goes into the notice area.
const exportScript = `document.querySelectorAll("a[data-export]").forEach(function(a){` +
	`a.addEventListener("click",function(e){e.preventDefault();` +
	`fetch(a.href,{headers:{"HX-Request":"true"}}).then(function(r){` +
	`if(!r.ok){return r.text().then(function(t){document.getElementById("` + NoticesID + `").innerHTML=t;});}` +
	`return r.blob().then(function(b){var u=URL.createObjectURL(b),l=document.createElement("a");` +
	`l.href=u;l.download=a.getAttribute("download");document.body.appendChild(l);l.click();l.remove();` +
	`setTimeout(function(){URL.revokeObjectURL(u);},1000);});` +
	`}).catch(function(){window.location=a.href;});});});`

func formatLabel(f table.Format) string {
	switch f {
	case table.FormatXLSX:
		return "Excel"
	case table.FormatPDF:
		return "PDF"
	default:
		return "CSV"
	}
}

// Table renders the swappable table fragment. While the fetch is in flight
// the fragment reloads itself until the records arrive.
func Table(p TableParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		snap := p.Snapshot
		target := "#" + p.targetID()

		attrs := []string{"id", p.targetID(), "class", "table-view"}
		if snap.Loading {
			attrs = append(attrs,
				"hx-get", p.path("table"),
				"hx-trigger", "load delay:500ms",
				"hx-swap", "outerHTML",
				"aria-busy", "true",
			)
		}
		h.open("div", attrs...)

		p.filters(h, target)

		h.open("table", "class", "data")
		h.open("thead")
		h.open("tr")
		for _, col := range p.Config.Columns {
			label := col.Header
			if snap.Sort.Column == col.Accessor {
				switch snap.Sort.Direction {
				case table.SortAsc:
					label += " ▲"
				case table.SortDesc:
					label += " ▼"
				}
			}
			h.open("th")
			h.element("button", label,
				"type", "button",
				"class", "sort",
				"hx-post", p.path("sort"),
				"hx-vals", hxVals("column", col.Accessor),
				"hx-target", target,
				"hx-swap", "outerHTML",
			)
			h.close("th")
		}
		h.close("tr")
		h.close("thead")

		h.open("tbody")
		switch {
		case snap.Loading && snap.Total == 0:
			p.messageRow(h, "Loading…")
		case snap.Empty():
			p.messageRow(h, NoResultsText)
		default:
			for _, rec := range snap.Rows {
				p.row(h, rec, target)
			}
		}
		h.close("tbody")
		h.close("table")

		p.pager(h, target)
		h.close("div")
		return h.err
	})
}

func (p TableParams) filters(h *htmlWriter, target string) {
	if len(p.Config.FilterKeys) == 0 {
		return
	}
	h.open("div", "class", "filters")
	for _, fk := range p.Config.FilterKeys {
		current := p.Snapshot.Filters[fk.Accessor]
		h.open("label")
		h.element("span", fk.Label)
		h.open("select",
			"name", "value",
			"hx-post", p.path("filter"),
			"hx-vals", hxVals("key", fk.Accessor),
			"hx-target", target,
			"hx-swap", "outerHTML",
		)
		h.element("option", "All", "value", "")
		for _, opt := range p.Snapshot.FilterOptions[fk.Accessor] {
			if opt == current {
				h.element("option", opt, "value", opt, "selected", "selected")
			} else {
				h.element("option", opt, "value", opt)
			}
		}
		h.close("select")
		h.close("label")
	}
	h.close("div")
}

func (p TableParams) messageRow(h *htmlWriter, text string) {
	h.open("tr", "class", "message")
	h.element("td", text, "colspan", strconv.Itoa(len(p.Config.Columns)))
	h.close("tr")
}

func (p TableParams) row(h *htmlWriter, rec table.Record, target string) {
	id := table.Stringify(rec[p.Config.IDField])
	h.open("tr")
	for _, col := range p.Config.Columns {
		h.open("td")
		if col.Editor != nil && p.Config.IDField != "" && id != "" {
			p.editor(h, col, rec, id, target)
		} else {
			h.text(col.Display(rec))
		}
		h.close("td")
	}
	h.close("tr")
}

func (p TableParams) editor(h *htmlWriter, col table.Column, rec table.Record, id, target string) {
	current := table.Stringify(rec[col.Accessor])
	h.open("select",
		"name", "value",
		"aria-label", col.Header,
		"hx-post", p.path("recommendation"),
		"hx-vals", hxVals("id", id),
		"hx-target", target,
		"hx-swap", "outerHTML",
	)
	if current == "" {
		h.element("option", "Select…", "value", "", "disabled", "disabled", "selected", "selected")
	}
	for _, opt := range col.Editor.Options {
		if opt == current {
			h.element("option", opt, "value", opt, "selected", "selected")
		} else {
			h.element("option", opt, "value", opt)
		}
	}
	h.close("select")
}

func (p TableParams) pager(h *htmlWriter, target string) {
	snap := p.Snapshot
	h.open("div", "class", "pager")
	p.pageButton(h, "Previous", "prev", !snap.HasPrev, target)
	h.element("span", fmt.Sprintf("Page %d of %d", snap.PageIndex+1, snap.PageCount), "class", "page-info")
	p.pageButton(h, "Next", "next", !snap.HasNext, target)
	h.element("span", fmt.Sprintf("%d of %d records", snap.FilteredCount, snap.Total), "class", "count")
	h.close("div")
}

func (p TableParams) pageButton(h *htmlWriter, label, dir string, disabled bool, target string) {
	attrs := []string{
		"type", "button",
		"hx-post", p.path("page"),
		"hx-vals", hxVals("dir", dir),
		"hx-target", target,
		"hx-swap", "outerHTML",
	}
	if disabled {
		attrs = append(attrs, "disabled", "disabled")
	}
	h.element("button", label, attrs...)
}
