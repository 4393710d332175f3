package table

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record is one flat row as returned by the data source.
// Values are strings, booleans, numbers or nil.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Column describes one table column.
//
// Order in a column list defines both on-screen order and export order.
type Column struct {
	Header   string // Display label
	Accessor string // Key into Record

	// Render optionally transforms the raw value for on-screen display.
	// Exports always use the accessor-resolved value.
	Render func(any) string

	// Editor marks the column as inline-editable with a fixed option list.
	Editor *Editor
}

// Editor describes an inline select editor for a column.
type Editor struct {
	Options []string
}

// Allows reports whether value is one of the editor options.
func (e *Editor) Allows(value string) bool {
	if e == nil {
		return false
	}
	for _, o := range e.Options {
		if o == value {
			return true
		}
	}
	return false
}

// Display returns the on-screen text for the column in rec.
func (c Column) Display(rec Record) string {
	v := rec[c.Accessor]
	if c.Render != nil {
		return c.Render(v)
	}
	return Stringify(v)
}

// Cell returns the accessor-resolved value of col in rec as text.
// Missing or nil values render as the empty string.
func Cell(rec Record, col Column) string {
	return Stringify(rec[col.Accessor])
}

// Headers returns the header labels of cols in order.
func Headers(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Header
	}
	return out
}

// Stringify converts a record value to its display string.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case json.Number:
		return val.String()
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format("2006-01-02")
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Truthy reports whether a record value counts as set.
// nil, false, zero numbers, "" and "0"/"false" strings are not set.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		s := strings.TrimSpace(strings.ToLower(val))
		return s != "" && s != "0" && s != "false"
	case json.Number:
		f, err := val.Float64()
		return err != nil || f != 0
	case int:
		return val != 0
	case int32:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	default:
		return true
	}
}

// Normalizer is a pure per-record display transform applied after fetch.
// Implementations must be idempotent.
type Normalizer func(Record) Record

// Config is the declarative binding that turns the generic engine into one
// concrete view. Swapping a Config is the only change needed for a new view.
type Config struct {
	Key         string // URL key, e.g. "committee-member"
	Title       string // Page and document title
	Endpoint    string // Data source endpoint name
	Columns     []Column
	FilterKeys  []FilterKey
	RowsPerPage int
	SearchMode  SearchMode
	Normalize   Normalizer

	// IDField names the record field that identifies a row for write-back.
	IDField string

	Export ExportSpec
}

// FilterKey is a record field eligible for exact-match narrowing.
type FilterKey struct {
	Accessor string
	Label    string
}

// FilterKeyNames returns the accessors of every filter key in cfg.
func (c Config) FilterKeyNames() []string {
	out := make([]string, len(c.FilterKeys))
	for i, fk := range c.FilterKeys {
		out[i] = fk.Accessor
	}
	return out
}

// Column returns the column with the given accessor.
func (c Config) Column(accessor string) (Column, bool) {
	for _, col := range c.Columns {
		if col.Accessor == accessor {
			return col, true
		}
	}
	return Column{}, false
}

// HasFilterKey reports whether key is a declared filter key.
func (c Config) HasFilterKey(key string) bool {
	for _, fk := range c.FilterKeys {
		if fk.Accessor == key {
			return true
		}
	}
	return false
}

// pageSize returns RowsPerPage or the default when unset.
func (c Config) pageSize() int {
	if c.RowsPerPage > 0 {
		return c.RowsPerPage
	}
	return DefaultRowsPerPage
}

// DefaultRowsPerPage is used when a Config does not set RowsPerPage.
const DefaultRowsPerPage = 15
