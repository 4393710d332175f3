package table

import (
	"slices"
	"strconv"
	"strings"
)

// SortDirection is the order applied to a sorted column.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAsc
	SortDesc
)

// String returns "asc", "desc" or "".
func (d SortDirection) String() string {
	switch d {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return ""
	}
}

// SortState is the active single-column sort.
type SortState struct {
	Column    string // Accessor; empty when unsorted
	Direction SortDirection
}

// Sorted reports whether a sort is active.
func (s SortState) Sorted() bool {
	return s.Column != "" && s.Direction != SortNone
}

// Toggle returns the state after a header click on column.
// A column cycles unsorted -> asc -> desc -> asc; a different column starts at asc.
func (s SortState) Toggle(column string) SortState {
	if s.Column != column || s.Direction == SortNone {
		return SortState{Column: column, Direction: SortAsc}
	}
	if s.Direction == SortAsc {
		return SortState{Column: column, Direction: SortDesc}
	}
	return SortState{Column: column, Direction: SortAsc}
}

// Sort returns records ordered by state. Equal keys keep their input order,
// and an inactive state returns a copy in input order.
func Sort(records []Record, state SortState) []Record {
	out := slices.Clone(records)
	if !state.Sorted() || len(out) < 2 {
		return out
	}
	col := state.Column
	desc := state.Direction == SortDesc
	slices.SortStableFunc(out, func(a, b Record) int {
		c := CompareValues(a[col], b[col])
		if desc {
			return -c
		}
		return c
	})
	return out
}

// CompareValues orders two record values: missing values first, then
// numbers in numeric order, then text compared lower-cased. Keeping the three
// groups apart makes the order total on mixed columns.
func CompareValues(a, b any) int {
	sa, sb := Stringify(a), Stringify(b)
	if sa == "" || sb == "" {
		switch {
		case sa == sb:
			return 0
		case sa == "":
			return -1
		default:
			return 1
		}
	}
	fa, errA := strconv.ParseFloat(strings.TrimSpace(sa), 64)
	fb, errB := strconv.ParseFloat(strings.TrimSpace(sb), 64)
	switch {
	case errA == nil && errB == nil:
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(strings.ToLower(sa), strings.ToLower(sb))
}
