package screen

import (
	"math"
	"strings"
	"time"

	"hrdesk/internal/collection"
	"hrdesk/internal/domain"
)

// recentWindow is how far back the "recent" filter looks.
const recentWindow = 7 * 24 * time.Hour

// Profile fixes the per-domain knobs of one list screen: which fields text
// search scans, which sort as dates, the categorical filters, and the
// client-side validation applied before a create reaches the remote backend.
type Profile struct {
	Kind         domain.ResourceKind
	SearchFields []string
	DateFields   map[string]bool
	ExportFields []string
	DefaultSort  string
	// OwnerScoped screens run their collection through the visibility filter
	// after every fetch.
	OwnerScoped    bool
	BuildFilters   func(now func() time.Time) *collection.Registry
	ValidateCreate func(rec domain.Record) error
}

// RecentPredicate matches records whose date field falls within the last
// seven days of now. The window is past-only; future-dated records do not
// count as recent.
func RecentPredicate(field string, now func() time.Time) collection.Predicate {
	return func(rec domain.Record) bool {
		t := collection.ParseDate(rec.Str(field))
		if t.IsZero() {
			return false
		}
		n := now()
		if t.After(n) {
			return false
		}
		return n.Sub(t) <= recentWindow
	}
}

// NonEmptyPredicate matches records whose field is present and non-blank.
func NonEmptyPredicate(field string) collection.Predicate {
	return func(rec domain.Record) bool {
		return strings.TrimSpace(rec.Str(field)) != ""
	}
}

// StatusPredicate matches records whose field equals value, ignoring case.
func StatusPredicate(field, value string) collection.Predicate {
	return func(rec domain.Record) bool {
		return strings.EqualFold(strings.TrimSpace(rec.Str(field)), value)
	}
}

// Profiles returns the fixed screen profiles, one per resource kind.
func Profiles() map[domain.ResourceKind]Profile {
	return map[domain.ResourceKind]Profile{
		domain.KindCandidates: {
			Kind:         domain.KindCandidates,
			SearchFields: []string{"name", "position", "email", "phone"},
			DateFields:   map[string]bool{"created_at": true},
			ExportFields: []string{"name", "position", "email", "phone", "reference", "cv_url", "created_at"},
			DefaultSort:  "created_at",
			BuildFilters: func(now func() time.Time) *collection.Registry {
				r := collection.NewRegistry()
				r.Register("recent", RecentPredicate("created_at", now))
				r.Register("with-pdf", NonEmptyPredicate("cv_url"))
				r.Register("with-reference", NonEmptyPredicate("reference"))
				return r
			},
		},
		domain.KindLeaves: {
			Kind:         domain.KindLeaves,
			SearchFields: []string{"employee_name", "employee_code", "leave_type"},
			DateFields:   map[string]bool{"start_date": true, "end_date": true, "created_at": true},
			ExportFields: []string{"employee_code", "employee_name", "leave_type", "start_date", "end_date", "days", "status"},
			DefaultSort:  "start_date",
			BuildFilters: func(now func() time.Time) *collection.Registry {
				r := collection.NewRegistry()
				r.Register("recent", RecentPredicate("created_at", now))
				r.Register("pending", StatusPredicate("status", "pending"))
				r.Register("approved", StatusPredicate("status", "approved"))
				return r
			},
			ValidateCreate: ValidateLeaveRequest,
		},
		domain.KindAppraisals: {
			Kind:         domain.KindAppraisals,
			SearchFields: []string{"employee_name", "employee_code", "period"},
			DateFields:   map[string]bool{"created_at": true},
			ExportFields: []string{"employee_code", "employee_name", "reporting_leader", "period", "score", "remarks"},
			DefaultSort:  "employee_name",
			OwnerScoped:  true,
			BuildFilters: func(now func() time.Time) *collection.Registry {
				r := collection.NewRegistry()
				r.Register("recent", RecentPredicate("created_at", now))
				return r
			},
		},
		domain.KindProvisions: {
			Kind:         domain.KindProvisions,
			SearchFields: []string{"asset", "assignee", "employee_code"},
			DateFields:   map[string]bool{"issued_at": true},
			ExportFields: []string{"asset", "assignee", "employee_code", "status", "issued_at"},
			DefaultSort:  "issued_at",
			BuildFilters: func(now func() time.Time) *collection.Registry {
				r := collection.NewRegistry()
				r.Register("recent", RecentPredicate("issued_at", now))
				r.Register("pending", StatusPredicate("status", "pending"))
				return r
			},
		},
		domain.KindAttendance: {
			Kind:         domain.KindAttendance,
			SearchFields: []string{"employee_name", "employee_code"},
			DateFields:   map[string]bool{"date": true},
			ExportFields: []string{"employee_code", "employee_name", "date", "status"},
			DefaultSort:  "date",
			BuildFilters: func(now func() time.Time) *collection.Registry {
				r := collection.NewRegistry()
				r.Register("recent", RecentPredicate("date", now))
				return r
			},
		},
	}
}

// ValidateLeaveRequest enforces the client-side leave rules before any remote
// call: required fields, date ordering, and sufficient balance. The remote
// backend is not assumed to enforce these independently.
func ValidateLeaveRequest(rec domain.Record) error {
	for _, field := range []string{"employee_code", "leave_type", "start_date", "end_date"} {
		if strings.TrimSpace(rec.Str(field)) == "" {
			return domain.Validationf("%s is required", strings.ReplaceAll(field, "_", " "))
		}
	}

	start := collection.ParseDate(rec.Str("start_date"))
	end := collection.ParseDate(rec.Str("end_date"))
	if start.IsZero() || end.IsZero() {
		return domain.Validationf("leave dates must be valid dates")
	}
	if end.Before(start) {
		return domain.Validationf("end date must not be before start date")
	}

	days := rec.Num("days")
	if days == 0 {
		days = math.Floor(end.Sub(start).Hours()/24) + 1
	}
	if rec.Has("balance") && days > rec.Num("balance") {
		return domain.Validationf("insufficient leave balance")
	}
	return nil
}
