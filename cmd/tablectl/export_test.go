package main

import (
	"context"
	"testing"
	"time"

	"github.com/JonMunkholm/committees/internal/table"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in        string
		wantKey   string
		wantValue string
		wantErr   bool
	}{
		{"State=VA", "State", "VA", false},
		{" State = VA ", "State", "VA", false},
		{"Term=", "Term", "", false},
		{"CommitteeName=Finance=Pensions", "CommitteeName", "Finance=Pensions", false},
		{"State", "", "", true},
		{"=VA", "", "", true},
	}
	for _, tt := range tests {
		key, value, err := parseFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFilter(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if key != tt.wantKey || value != tt.wantValue {
			t.Errorf("parseFilter(%q) = %q, %q, want %q, %q", tt.in, key, value, tt.wantKey, tt.wantValue)
		}
	}
}

func TestViewQueryApply(t *testing.T) {
	cfg := table.Config{
		Key:         "committees",
		Endpoint:    "committees",
		Columns:     []table.Column{{Header: "Committee Name", Accessor: "name"}, {Header: "Committee Type", Accessor: "CommitteeType"}},
		FilterKeys:  []table.FilterKey{{Accessor: "CommitteeType", Label: "Committee Type"}},
		RowsPerPage: 15,
	}

	v := table.NewView(cfg)
	q := viewQuery{search: "health", filters: []string{"CommitteeType=Policy Steering"}, sortBy: "name", desc: true}
	if err := q.apply(v); err != nil {
		t.Fatalf("apply: %v", err)
	}
	snap := v.Snapshot()
	if snap.Search != "health" || snap.Filters["CommitteeType"] != "Policy Steering" {
		t.Errorf("search=%q filters=%v", snap.Search, snap.Filters)
	}
	if snap.Sort.Column != "name" || snap.Sort.Direction != table.SortDesc {
		t.Errorf("sort = %+v, want name desc", snap.Sort)
	}

	bad := viewQuery{filters: []string{"Bogus=1"}}
	if err := bad.apply(table.NewView(cfg)); err == nil {
		t.Error("apply with unknown filter key succeeded")
	}
}

func TestViewQueryApply_ExportFollowsSort(t *testing.T) {
	cfg := table.Config{
		Key:         "committees",
		Endpoint:    "committees",
		Columns:     []table.Column{{Header: "Committee Name", Accessor: "name"}},
		RowsPerPage: 15,
	}
	recs := []table.Record{{"name": "b"}, {"name": "c"}, {"name": "a"}}

	tests := []struct {
		name  string
		query viewQuery
		want  []string
	}{
		{"no sort keeps fetch order", viewQuery{}, []string{"b", "c", "a"}},
		{"ascending", viewQuery{sortBy: "name"}, []string{"a", "b", "c"}},
		{"descending", viewQuery{sortBy: "name", desc: true}, []string{"c", "b", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := table.NewView(cfg)
			v.Mount(context.Background(), table.FetcherFunc(func(ctx context.Context, endpoint string) ([]table.Record, error) {
				return recs, nil
			}))
			defer v.Unmount()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := v.Wait(ctx); err != nil {
				t.Fatalf("Wait: %v", err)
			}

			if err := tt.query.apply(v); err != nil {
				t.Fatalf("apply: %v", err)
			}
			got := v.ExportRecords()
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i, rec := range got {
				if rec["name"] != tt.want[i] {
					t.Errorf("row %d = %v, want %s", i, rec["name"], tt.want[i])
				}
			}
		})
	}
}
