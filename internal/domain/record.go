package domain

import (
	"strconv"
	"time"
)

// Record is one opaque entity fetched from the remote HR backend (a candidate,
// leave request, appraisal, or provision). Fields are free-form; only "id" is
// guaranteed. Records are never mutated in place - updates replace the record
// at its id.
type Record map[string]any

// ID returns the record's unique identifier, or "" if absent.
func (r Record) ID() string {
	return r.Str("id")
}

// Str returns the field rendered as a string. Missing fields, nil values and
// unrenderable types yield "" - field access never fails.
func (r Record) Str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return ""
	}
}

// Num returns the field as a float64, or 0 if missing or non-numeric.
func (r Record) Num(key string) float64 {
	v, ok := r[key]
	if !ok || v == nil {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Has reports whether the field is present with a non-nil value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge returns a new record with partial's fields applied over r. The id of
// r always wins so a partial update cannot re-identify a record.
func (r Record) Merge(partial Record) Record {
	out := r.Clone()
	for k, v := range partial {
		out[k] = v
	}
	if id := r.ID(); id != "" {
		out["id"] = id
	}
	return out
}
