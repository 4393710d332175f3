package views

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/JonMunkholm/committees/internal/table"
)

func TestRegisteredViews(t *testing.T) {
	want := []string{
		"committees",
		"committee-member",
		"committee-applications",
		"applicants-without-position",
		"final-leaders-list",
		"applicant-review",
	}
	if got := Keys(); !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if got := Count(); got != len(want) {
		t.Errorf("Count() = %d, want %d", got, len(want))
	}
}

func TestViewConfigs(t *testing.T) {
	tests := []struct {
		key       string
		rows      int
		mode      table.SearchMode
		columns   int
		sheet     string
		xlsx, pdf string
	}{
		{"committees", 15, table.SearchPhrase, 2, "Committees", "committees.xlsx", "committees.pdf"},
		{"committee-member", 15, table.SearchPhrase, 7, "Committee Members", "committee_members.xlsx", "CommitteeMembers.pdf"},
		{"committee-applications", 10, table.SearchAllWords, 6, "Committee Applications", "committee_applications.xlsx", "CommitteeApplications.pdf"},
		{"applicants-without-position", 15, table.SearchPhrase, 7, "Applicants", "applicants_without_position.xlsx", "ApplicantsWithoutPosition.pdf"},
		{"final-leaders-list", 15, table.SearchPhrase, 9, "Final Leaders", "final_leaders_list.xlsx", "FinalLeadersList.pdf"},
		{"applicant-review", 15, table.SearchPhrase, 10, "Applicant Review", "applicant_review_recommendations.xlsx", "ApplicantReviewRecommendations.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg, ok := Get(tt.key)
			if !ok {
				t.Fatalf("Get(%q) not found", tt.key)
			}
			if cfg.RowsPerPage != tt.rows {
				t.Errorf("RowsPerPage = %d, want %d", cfg.RowsPerPage, tt.rows)
			}
			if cfg.SearchMode != tt.mode {
				t.Errorf("SearchMode = %v, want %v", cfg.SearchMode, tt.mode)
			}
			if len(cfg.Columns) != tt.columns {
				t.Errorf("columns = %d, want %d", len(cfg.Columns), tt.columns)
			}
			if cfg.Export.SheetName != tt.sheet {
				t.Errorf("SheetName = %q, want %q", cfg.Export.SheetName, tt.sheet)
			}
			if got := cfg.Export.FileName(cfg.Key, table.FormatXLSX); got != tt.xlsx {
				t.Errorf("xlsx file = %q, want %q", got, tt.xlsx)
			}
			if got := cfg.Export.FileName(cfg.Key, table.FormatPDF); got != tt.pdf {
				t.Errorf("pdf file = %q, want %q", got, tt.pdf)
			}
			for _, fk := range cfg.FilterKeys {
				if _, ok := cfg.Column(fk.Accessor); !ok {
					t.Errorf("filter key %q is not a column", fk.Accessor)
				}
			}
			if len(cfg.Export.PDFWidths) > len(cfg.Columns) {
				t.Errorf("%d widths for %d columns", len(cfg.Export.PDFWidths), len(cfg.Columns))
			}
		})
	}
}

func TestGet_Unknown(t *testing.T) {
	if _, ok := Get("nope"); ok {
		t.Error("Get(nope) found a view")
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register(table.Config{Key: "committees", Endpoint: "committees", Columns: []table.Column{{Header: "x", Accessor: "x"}}})
}

func TestNormalizeUsState(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Virginia", "VA"},
		{"  new york ", "NY"},
		{"va", "VA"},
		{"TX", "TX"},
		{"District of Columbia", "DC"},
		{"Ontario", "Ontario"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeUsState(tt.in); got != tt.want {
			t.Errorf("NormalizeUsState(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFinalLeadersNormalizer(t *testing.T) {
	cfg, _ := Get("final-leaders-list")
	got := cfg.Normalize(table.Record{"Chair": true, "ViceChair": false, "SubCommittee": nil, "Term": "2024"})
	want := table.Record{"Chair": "Yes", "ViceChair": "", "SubCommittee": "N/A", "Term": "2024"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize = %v, want %v", got, want)
	}

	got = cfg.Normalize(table.Record{"Chair": int64(1), "SubCommittee": "Rural Action"})
	if got["Chair"] != "Yes" || got["ViceChair"] != "" || got["SubCommittee"] != "Rural Action" {
		t.Errorf("Normalize = %v", got)
	}
}

func TestNormalizersIdempotent(t *testing.T) {
	inputs := []table.Record{
		{"Chair": true, "ViceChair": nil, "SubCommittee": "", "RecommendedPosition": nil, "State": "virginia"},
		{"Chair": "1", "ViceChair": "0", "SubCommittee": "Finance", "RecommendedPosition": "Member", "State": "TX"},
		{},
	}
	for _, cfg := range All() {
		if cfg.Normalize == nil {
			continue
		}
		for i, in := range inputs {
			once := cfg.Normalize(in.Clone())
			twice := cfg.Normalize(once.Clone())
			if !reflect.DeepEqual(once, twice) {
				t.Errorf("%s input %d: once = %v, twice = %v", cfg.Key, i, once, twice)
			}
		}
	}
}

func TestApplicantReviewEditor(t *testing.T) {
	cfg, _ := Get(ApplicantReviewKey)
	col, ok := cfg.Column(RecommendationField)
	if !ok || col.Editor == nil {
		t.Fatal("recommendation column has no editor")
	}
	if !col.Editor.Allows("Vice Chair") || col.Editor.Allows("President") {
		t.Error("editor options wrong")
	}
	if cfg.IDField == "" {
		t.Error("applicant review has no IDField")
	}
}

func TestValidateRecommendation(t *testing.T) {
	for _, v := range Recommendations {
		if err := ValidateRecommendation(v); err != nil {
			t.Errorf("ValidateRecommendation(%q) = %v", v, err)
		}
	}
	for _, v := range []string{"", "chair", "President"} {
		if err := ValidateRecommendation(v); !errors.Is(err, ErrInvalidRecommendation) {
			t.Errorf("ValidateRecommendation(%q) = %v, want ErrInvalidRecommendation", v, err)
		}
	}
}

func TestEndpoints(t *testing.T) {
	eps := Endpoints()
	if len(eps) != 6 || eps[0] != "committees" {
		t.Errorf("Endpoints() = %v", eps)
	}
}
