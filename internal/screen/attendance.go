package screen

import (
	"sort"
	"strings"

	"hrdesk/internal/domain"
)

// DaySummary is one bar of the attendance dashboard chart.
type DaySummary struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	OnLeave int    `json:"on_leave"`
}

// SummarizeAttendance buckets raw attendance records into per-day counts,
// ordered by date. Records without a date are skipped; unknown statuses count
// as absent.
func SummarizeAttendance(records []domain.Record) []DaySummary {
	byDate := make(map[string]*DaySummary)
	for _, rec := range records {
		date := strings.TrimSpace(rec.Str("date"))
		if date == "" {
			continue
		}
		day, ok := byDate[date]
		if !ok {
			day = &DaySummary{Date: date}
			byDate[date] = day
		}
		switch strings.ToLower(strings.TrimSpace(rec.Str("status"))) {
		case "present":
			day.Present++
		case "leave", "on_leave":
			day.OnLeave++
		default:
			day.Absent++
		}
	}

	out := make([]DaySummary, 0, len(byDate))
	for _, day := range byDate {
		out = append(out, *day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
