package collection

import (
	"sort"
	"strings"
	"time"

	"hrdesk/internal/domain"
)

// FilterState is the full set of list controls for one screen. Owned by the
// view and mutated only through its setters.
type FilterState struct {
	SearchText string               `json:"search_text"`
	FilterKey  string               `json:"filter_key"`
	SortField  string               `json:"sort_field"`
	SortDir    domain.SortDirection `json:"sort_dir"`
}

// DeriveOptions fixes the per-domain knobs of the derivation pipeline.
type DeriveOptions struct {
	// SearchFields is the fixed set of fields text search matches against.
	SearchFields []string
	// DateFields marks fields compared as dates when sorting.
	DateFields map[string]bool
	// Filters resolves categorical filter keys to predicates.
	Filters *Registry
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// ParseDate parses a date-like field value. The zero time is returned for
// anything unparsable, so malformed records sort first ascending.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// textMatches reports whether any searchable field contains text,
// case-insensitively. Empty text matches everything; a missing field does not
// match on that field but the others are still checked.
func textMatches(rec domain.Record, text string, fields []string) bool {
	if text == "" {
		return true
	}
	needle := strings.ToLower(text)
	for _, f := range fields {
		if v := rec.Str(f); v != "" && strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

// compareField compares the sort field of two records, returning <0, 0 or >0.
// Date fields compare as dates, everything else as case-folded strings.
// Missing fields compare as the empty value.
func compareField(a, b domain.Record, field string, isDate bool) int {
	if isDate {
		ta, tb := ParseDate(a.Str(field)), ParseDate(b.Str(field))
		switch {
		case ta.Before(tb):
			return -1
		case ta.After(tb):
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(strings.ToLower(a.Str(field)), strings.ToLower(b.Str(field)))
}

// Derive computes the visible projection of records under state: categorical
// filter AND text search, then a stable sort. "desc" reverses the field
// comparison only - ties always keep the original collection order.
// Derive is pure and never panics; malformed fields degrade to "no match" or
// the smallest sort value.
func Derive(records []domain.Record, state FilterState, opts DeriveOptions) []domain.Record {
	pred := opts.Filters.Get(state.FilterKey)

	filtered := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if pred != nil && !pred(rec) {
			continue
		}
		if !textMatches(rec, state.SearchText, opts.SearchFields) {
			continue
		}
		filtered = append(filtered, rec)
	}

	if state.SortField == "" {
		return filtered
	}

	isDate := opts.DateFields[state.SortField]
	desc := state.SortDir == domain.SortDesc
	sort.SliceStable(filtered, func(i, j int) bool {
		c := compareField(filtered[i], filtered[j], state.SortField, isDate)
		if desc {
			return c > 0
		}
		return c < 0
	})
	return filtered
}
