// Package templates holds the HTML components of the web UI.
//
// Components are built with templ.ComponentFunc so they compose with
// templ.Handler and render into any io.Writer. All text and attribute
// values pass through templ.EscapeString.
package templates

import (
	"encoding/json"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
)

// htmlWriter accumulates the first write error so components can emit
// markup without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// open writes a start tag with attribute pairs.
func (h *htmlWriter) open(tag string, attrs ...string) {
	h.raw("<" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		h.attr(attrs[i], attrs[i+1])
	}
	h.raw(">")
}

func (h *htmlWriter) close(tag string) {
	h.raw("</" + tag + ">")
}

// element writes <tag attrs>text</tag>.
func (h *htmlWriter) element(tag, text string, attrs ...string) {
	h.open(tag, attrs...)
	h.text(text)
	h.close(tag)
}

// ViewPath builds /views/{key}/{instance}/{parts...} with escaped segments.
func ViewPath(key, instance string, parts ...string) string {
	segs := []string{"", "views", url.PathEscape(key)}
	if instance != "" {
		segs = append(segs, url.PathEscape(instance))
	}
	for _, p := range parts {
		segs = append(segs, url.PathEscape(p))
	}
	return strings.Join(segs, "/")
}

// hxVals encodes key/value pairs for an hx-vals attribute.
func hxVals(pairs ...string) string {
	m := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		m[pairs[i]] = pairs[i+1]
	}
	b, _ := json.Marshal(m)
	return string(b)
}
