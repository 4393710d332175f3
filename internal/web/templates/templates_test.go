package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/JonMunkholm/committees/internal/table"
	"github.com/a-h/templ"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func reviewConfig() table.Config {
	return table.Config{
		Key:      "applicant-review",
		Title:    "Applicant Review",
		Endpoint: "applicant-review",
		IDField:  "ApplicationID",
		Columns: []table.Column{
			{Header: "Name", Accessor: "Name"},
			{Header: "Your Recommendation", Accessor: "YourRecommendation", Editor: &table.Editor{Options: []string{"Chair", "Member"}}},
		},
		FilterKeys:  []table.FilterKey{{Accessor: "Name", Label: "Name"}},
		RowsPerPage: 15,
	}
}

func TestViewPath(t *testing.T) {
	tests := []struct {
		key, instance string
		parts         []string
		want          string
	}{
		{"committees", "", nil, "/views/committees"},
		{"committees", "abc", []string{"table"}, "/views/committees/abc/table"},
		{"committees", "abc", []string{"export.csv"}, "/views/committees/abc/export.csv"},
		{"a b", "x/y", nil, "/views/a%20b/x%2Fy"},
	}
	for _, tt := range tests {
		if got := ViewPath(tt.key, tt.instance, tt.parts...); got != tt.want {
			t.Errorf("ViewPath(%q, %q, %v) = %q, want %q", tt.key, tt.instance, tt.parts, got, tt.want)
		}
	}
}

func TestTable_EscapesCells(t *testing.T) {
	p := TableParams{
		Config:   reviewConfig(),
		Instance: "i1",
		Snapshot: table.Snapshot{
			Rows:          []table.Record{{"Name": "<script>alert(1)</script>", "ApplicationID": "APP-1"}},
			Total:         1,
			FilteredCount: 1,
			PageCount:     1,
		},
	}
	out := renderString(t, Table(p))
	if strings.Contains(out, "<script>alert(1)</script>") {
		t.Error("cell text was not escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Errorf("escaped text missing: %s", out)
	}
}

func TestTable_NoResults(t *testing.T) {
	p := TableParams{
		Config:   reviewConfig(),
		Instance: "i1",
		Snapshot: table.Snapshot{Total: 3, PageCount: 1},
	}
	out := renderString(t, Table(p))
	if !strings.Contains(out, NoResultsText) {
		t.Errorf("missing %q", NoResultsText)
	}
	if !strings.Contains(out, `colspan="2"`) {
		t.Error("message row does not span every column")
	}
}

func TestTable_Loading(t *testing.T) {
	p := TableParams{
		Config:   reviewConfig(),
		Instance: "i1",
		Snapshot: table.Snapshot{Loading: true, PageCount: 1},
	}
	out := renderString(t, Table(p))
	if !strings.Contains(out, `hx-get="/views/applicant-review/i1/table"`) {
		t.Error("loading fragment does not poll")
	}
	if !strings.Contains(out, "Loading…") {
		t.Error("missing loading row")
	}

	p.Snapshot.Loading = false
	if out := renderString(t, Table(p)); strings.Contains(out, "hx-get=") {
		t.Error("settled fragment still polls")
	}
}

func TestTable_Editor(t *testing.T) {
	p := TableParams{
		Config:   reviewConfig(),
		Instance: "i1",
		Snapshot: table.Snapshot{
			Rows: []table.Record{
				{"Name": "Ben", "ApplicationID": "APP-2", "YourRecommendation": "Member"},
				{"Name": "Ann", "ApplicationID": "APP-3"},
			},
			Total:         2,
			FilteredCount: 2,
			PageCount:     1,
		},
	}
	out := renderString(t, Table(p))
	for _, want := range []string{
		`hx-post="/views/applicant-review/i1/recommendation"`,
		`hx-vals="{&#34;id&#34;:&#34;APP-2&#34;}"`,
		`<option value="Member" selected="selected">Member</option>`,
		`<option value="" disabled="disabled" selected="selected">Select…</option>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("editor missing %q", want)
		}
	}
}

func TestTable_Pager(t *testing.T) {
	tests := []struct {
		name         string
		snap         table.Snapshot
		prevDisabled bool
		nextDisabled bool
		info         string
	}{
		{"single page", table.Snapshot{PageIndex: 0, PageCount: 1}, true, true, "Page 1 of 1"},
		{"first of three", table.Snapshot{PageIndex: 0, PageCount: 3, HasNext: true}, true, false, "Page 1 of 3"},
		{"middle", table.Snapshot{PageIndex: 1, PageCount: 3, HasPrev: true, HasNext: true}, false, false, "Page 2 of 3"},
		{"last", table.Snapshot{PageIndex: 2, PageCount: 3, HasPrev: true}, false, true, "Page 3 of 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderString(t, Table(TableParams{Config: reviewConfig(), Instance: "i1", Snapshot: tt.snap}))
			if !strings.Contains(out, tt.info) {
				t.Errorf("missing %q", tt.info)
			}
			prev := buttonTag(out, "Previous")
			next := buttonTag(out, "Next")
			if got := strings.Contains(prev, "disabled"); got != tt.prevDisabled {
				t.Errorf("Previous disabled = %v, want %v", got, tt.prevDisabled)
			}
			if got := strings.Contains(next, "disabled"); got != tt.nextDisabled {
				t.Errorf("Next disabled = %v, want %v", got, tt.nextDisabled)
			}
		})
	}
}

// buttonTag returns the start tag of the button labelled label.
func buttonTag(html, label string) string {
	end := strings.Index(html, ">"+label+"</button>")
	if end < 0 {
		return ""
	}
	start := strings.LastIndex(html[:end], "<button")
	return html[start:end]
}

func TestTable_SortMarker(t *testing.T) {
	p := TableParams{
		Config:   reviewConfig(),
		Instance: "i1",
		Snapshot: table.Snapshot{PageCount: 1, Sort: table.SortState{Column: "Name", Direction: table.SortDesc}},
	}
	out := renderString(t, Table(p))
	if !strings.Contains(out, ">Name ▼</button>") {
		t.Error("descending marker missing")
	}
	if strings.Contains(out, "Your Recommendation ▲") || strings.Contains(out, "Your Recommendation ▼") {
		t.Error("unsorted column has a marker")
	}
}

func TestErrorAlert(t *testing.T) {
	out := renderString(t, ErrorAlert("Export <failed>", "Try again", "EXP002"))
	for _, want := range []string{`role="alert"`, "Export &lt;failed&gt;", "Try again", "(EXP002)"} {
		if !strings.Contains(out, want) {
			t.Errorf("alert missing %q", want)
		}
	}
}

func TestNavigation(t *testing.T) {
	items := Navigation([]table.Config{{Key: "committees", Title: "Committees"}, reviewConfig()}, "applicant-review")
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	if items[0].Active || items[1].Active || !items[2].Active {
		t.Errorf("active flags = %v %v %v", items[0].Active, items[1].Active, items[2].Active)
	}
	if items[1].Href != "/views/committees" {
		t.Errorf("Href = %q", items[1].Href)
	}
}
