package table

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestSortState_Toggle(t *testing.T) {
	var s SortState
	steps := []struct {
		column string
		want   SortState
	}{
		{"Name", SortState{"Name", SortAsc}},
		{"Name", SortState{"Name", SortDesc}},
		{"Name", SortState{"Name", SortAsc}},
		{"Name", SortState{"Name", SortDesc}},
		{"State", SortState{"State", SortAsc}},
		{"Name", SortState{"Name", SortAsc}},
	}
	for i, step := range steps {
		s = s.Toggle(step.column)
		if s != step.want {
			t.Errorf("step %d: Toggle(%q) = %+v, want %+v", i, step.column, s, step.want)
		}
	}
}

func names(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = Stringify(r["Name"])
	}
	return out
}

func TestSort(t *testing.T) {
	recs := []Record{
		{"Name": "carol", "Seats": json.Number("10")},
		{"Name": "Alice", "Seats": json.Number("9")},
		{"Name": "bob", "Seats": json.Number("100")},
	}

	tests := []struct {
		name  string
		state SortState
		want  []string
	}{
		{"unsorted keeps input order", SortState{}, []string{"carol", "Alice", "bob"}},
		{"text ascending ignores case", SortState{"Name", SortAsc}, []string{"Alice", "bob", "carol"}},
		{"text descending", SortState{"Name", SortDesc}, []string{"carol", "bob", "Alice"}},
		{"numbers compare numerically", SortState{"Seats", SortAsc}, []string{"Alice", "carol", "bob"}},
		{"numbers descending", SortState{"Seats", SortDesc}, []string{"bob", "carol", "Alice"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Sort(recs, tt.state))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Sort() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSort_Stable(t *testing.T) {
	recs := []Record{
		{"Name": "1", "State": "VA"},
		{"Name": "2", "State": "TX"},
		{"Name": "3", "State": "VA"},
		{"Name": "4", "State": "TX"},
		{"Name": "5", "State": "VA"},
	}

	asc := names(Sort(recs, SortState{"State", SortAsc}))
	if want := []string{"2", "4", "1", "3", "5"}; !slices.Equal(asc, want) {
		t.Errorf("asc = %v, want %v", asc, want)
	}

	// Descending reverses the key order, not the tie order.
	desc := names(Sort(recs, SortState{"State", SortDesc}))
	if want := []string{"1", "3", "5", "2", "4"}; !slices.Equal(desc, want) {
		t.Errorf("desc = %v, want %v", desc, want)
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	recs := []Record{{"Name": "b"}, {"Name": "a"}}
	_ = Sort(recs, SortState{"Name", SortAsc})
	if got := names(recs); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("input reordered: %v", got)
	}
}

func TestCompareValues(t *testing.T) {
	tests := []struct {
		a, b any
		want int
	}{
		{"a", "B", -1},
		{"B", "a", 1},
		{"x", "X", 0},
		{"2", "10", -1},
		{2, 10.5, -1},
		{nil, "a", -1},
		{"a", nil, 1},
		{nil, "", 0},
		{"10", "abc", -1},
		{"10", "9x", -1},
		{"9x", "9", 1},
		{"abc", 3, 1},
	}
	for _, tt := range tests {
		if got := CompareValues(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareValues(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSort_MixedColumnIsTotal(t *testing.T) {
	in := []Record{{"v": "9x"}, {"v": "10"}, {"v": nil}, {"v": "9"}, {"v": "abc"}, {"v": 2}}
	want := []string{"", "2", "9", "10", "9x", "abc"}

	check := func(recs []Record) {
		t.Helper()
		got := Sort(recs, SortState{Column: "v", Direction: SortAsc})
		for i, rec := range got {
			if s := Stringify(rec["v"]); s != want[i] {
				t.Errorf("position %d = %q, want %q", i, s, want[i])
			}
		}
	}
	check(in)
	check([]Record{in[5], in[4], in[3], in[2], in[1], in[0]})
}
