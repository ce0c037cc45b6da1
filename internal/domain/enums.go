package domain

// ResourceKind identifies one remote collection served by a screen.
type ResourceKind string

const (
	KindCandidates ResourceKind = "candidates"
	KindLeaves     ResourceKind = "leaves"
	KindAppraisals ResourceKind = "appraisals"
	KindProvisions ResourceKind = "provisions"
	KindAttendance ResourceKind = "attendance"
)

// SortDirection orders a derived collection.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Toggle flips the direction.
func (d SortDirection) Toggle() SortDirection {
	if d == SortDesc {
		return SortAsc
	}
	return SortDesc
}
