package table

import (
	"sort"
	"strings"
)

// SearchMode selects how free-text search matches records.
type SearchMode int

const (
	// SearchPhrase matches when any field contains the whole search text.
	SearchPhrase SearchMode = iota

	// SearchAllWords splits the search text on whitespace and requires every
	// token to match at least one field.
	SearchAllWords
)

// String returns the mode name.
func (m SearchMode) String() string {
	switch m {
	case SearchAllWords:
		return "all-words"
	default:
		return "phrase"
	}
}

// AllFilterValue is accepted as a "no filter" input alongside the empty string.
const AllFilterValue = "All"

// IsNoFilter reports whether v means "do not restrict by this column".
func IsNoFilter(v string) bool {
	return v == "" || strings.EqualFold(v, AllFilterValue)
}

// Query is the complete narrowing state for one Filter call.
type Query struct {
	Search  string            // Lower-cased free text
	Mode    SearchMode        // Search matching mode
	Filters map[string]string // Filter key -> selected value
}

// Active reports whether the query restricts anything.
func (q Query) Active() bool {
	if strings.TrimSpace(q.Search) != "" {
		return true
	}
	for _, v := range q.Filters {
		if !IsNoFilter(v) {
			return true
		}
	}
	return false
}

// Filter returns the records that pass both search and filter match.
// The input is never modified and relative order is preserved.
func Filter(records []Record, q Query) []Record {
	search := strings.ToLower(q.Search)
	var tokens []string
	if q.Mode == SearchAllWords {
		tokens = strings.Fields(search)
	}

	active := make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		if !IsNoFilter(v) {
			active[k] = v
		}
	}

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if !matchFilters(rec, active) {
			continue
		}
		if q.Mode == SearchAllWords {
			if !matchAllWords(rec, tokens) {
				continue
			}
		} else if !matchPhrase(rec, search) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchPhrase(rec Record, search string) bool {
	if search == "" {
		return true
	}
	for _, v := range rec {
		if strings.Contains(strings.ToLower(Stringify(v)), search) {
			return true
		}
	}
	return false
}

func matchAllWords(rec Record, tokens []string) bool {
	for _, tok := range tokens {
		if !matchPhrase(rec, tok) {
			return false
		}
	}
	return true
}

// matchFilters requires every active key to be present and equal.
func matchFilters(rec Record, active map[string]string) bool {
	for key, want := range active {
		v, ok := rec[key]
		if !ok || v == nil {
			return false
		}
		if !strings.EqualFold(Stringify(v), want) {
			return false
		}
	}
	return true
}

// UniqueValues returns the distinct non-empty values of key in records,
// sorted case-insensitively. These are the options of a filter dropdown.
func UniqueValues(records []Record, key string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, rec := range records {
		s := Stringify(rec[key])
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
