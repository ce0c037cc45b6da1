package screen_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdesk/internal/domain"
	"hrdesk/internal/screen"
)

func TestValidateLeaveRequest(t *testing.T) {
	valid := domain.Record{
		"employee_code": "E001",
		"leave_type":    "annual",
		"start_date":    "2026-03-01",
		"end_date":      "2026-03-03",
		"days":          float64(3),
		"balance":       float64(10),
	}

	tests := []struct {
		name    string
		mutate  func(domain.Record)
		wantErr string
	}{
		{"valid", func(domain.Record) {}, ""},
		{"missing employee code", func(r domain.Record) { delete(r, "employee_code") }, "employee code is required"},
		{"missing leave type", func(r domain.Record) { r["leave_type"] = " " }, "leave type is required"},
		{"unparsable date", func(r domain.Record) { r["start_date"] = "soon" }, "leave dates must be valid dates"},
		{"end before start", func(r domain.Record) { r["end_date"] = "2026-02-28" }, "end date must not be before start date"},
		{"insufficient balance", func(r domain.Record) { r["days"] = float64(11) }, "insufficient leave balance"},
		{"no balance field skips check", func(r domain.Record) { delete(r, "balance"); r["days"] = float64(99) }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid.Clone()
			tt.mutate(rec)
			err := screen.ValidateLeaveRequest(rec)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, domain.FailureOf(err).Reason)
		})
	}
}

func TestRecentPredicate_SevenDayWindow(t *testing.T) {
	now := func() time.Time {
		return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	}
	pred := screen.RecentPredicate("created_at", now)

	assert.True(t, pred(domain.Record{"created_at": "2026-08-25"}))
	assert.False(t, pred(domain.Record{"created_at": "2026-08-10"}))
	assert.False(t, pred(domain.Record{"created_at": "2026-09-05"}), "future dates are not recent")
	assert.False(t, pred(domain.Record{"created_at": "not a date"}))
	assert.False(t, pred(domain.Record{}))
}

func TestProfiles_CoverAllListKinds(t *testing.T) {
	profiles := screen.Profiles()
	for _, kind := range []domain.ResourceKind{
		domain.KindCandidates,
		domain.KindLeaves,
		domain.KindAppraisals,
		domain.KindProvisions,
		domain.KindAttendance,
	} {
		p, ok := profiles[kind]
		require.True(t, ok, "missing profile for %s", kind)
		assert.NotEmpty(t, p.SearchFields)
		assert.NotEmpty(t, p.ExportFields)
		assert.NotNil(t, p.BuildFilters)
	}
	assert.True(t, profiles[domain.KindAppraisals].OwnerScoped)
}
