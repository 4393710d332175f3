package views

import (
	"strings"

	"github.com/JonMunkholm/committees/internal/table"
)

// UsStates maps US state full names to their abbreviations.
var UsStates = map[string]string{
	"alabama":              "AL",
	"alaska":               "AK",
	"arizona":              "AZ",
	"arkansas":             "AR",
	"california":           "CA",
	"colorado":             "CO",
	"connecticut":          "CT",
	"delaware":             "DE",
	"district of columbia": "DC",
	"florida":              "FL",
	"georgia":              "GA",
	"hawaii":               "HI",
	"idaho":                "ID",
	"illinois":             "IL",
	"indiana":              "IN",
	"iowa":                 "IA",
	"kansas":               "KS",
	"kentucky":             "KY",
	"louisiana":            "LA",
	"maine":                "ME",
	"maryland":             "MD",
	"massachusetts":        "MA",
	"michigan":             "MI",
	"minnesota":            "MN",
	"mississippi":          "MS",
	"missouri":             "MO",
	"montana":              "MT",
	"nebraska":             "NE",
	"nevada":               "NV",
	"new hampshire":        "NH",
	"new jersey":           "NJ",
	"new mexico":           "NM",
	"new york":             "NY",
	"north carolina":       "NC",
	"north dakota":         "ND",
	"ohio":                 "OH",
	"oklahoma":             "OK",
	"oregon":               "OR",
	"pennsylvania":         "PA",
	"rhode island":         "RI",
	"south carolina":       "SC",
	"south dakota":         "SD",
	"tennessee":            "TN",
	"texas":                "TX",
	"utah":                 "UT",
	"vermont":              "VT",
	"virginia":             "VA",
	"washington":           "WA",
	"west virginia":        "WV",
	"wisconsin":            "WI",
	"wyoming":              "WY",
}

// NormalizeUsState converts US state names to their 2-letter abbreviations.
// Abbreviations are upper-cased; anything unrecognized is returned trimmed.
func NormalizeUsState(s string) string {
	s = strings.TrimSpace(s)
	if code, ok := UsStates[strings.ToLower(s)]; ok {
		return code
	}
	upper := strings.ToUpper(s)
	for _, code := range UsStates {
		if upper == code {
			return code
		}
	}
	return s
}

// Display strings produced by the normalizers.
const (
	Yes          = "Yes"
	NotAvailable = "N/A"
)

// Chain applies normalizers left to right.
func Chain(fns ...table.Normalizer) table.Normalizer {
	return func(rec table.Record) table.Record {
		for _, fn := range fns {
			rec = fn(rec)
		}
		return rec
	}
}

// YesIfSet replaces each flag field with "Yes" when set and "" otherwise.
func YesIfSet(fields ...string) table.Normalizer {
	return func(rec table.Record) table.Record {
		for _, f := range fields {
			if table.Truthy(rec[f]) {
				rec[f] = Yes
			} else {
				rec[f] = ""
			}
		}
		return rec
	}
}

// DefaultNA substitutes "N/A" for absent or empty fields.
func DefaultNA(fields ...string) table.Normalizer {
	return func(rec table.Record) table.Record {
		for _, f := range fields {
			if table.Stringify(rec[f]) == "" {
				rec[f] = NotAvailable
			}
		}
		return rec
	}
}

// StateCodes rewrites string state fields to their abbreviations.
func StateCodes(fields ...string) table.Normalizer {
	return func(rec table.Record) table.Record {
		for _, f := range fields {
			if s, ok := rec[f].(string); ok {
				rec[f] = NormalizeUsState(s)
			}
		}
		return rec
	}
}
