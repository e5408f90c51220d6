package domain

import "time"

// DateFilter restricts a dataset to a date range and/or a tenant. A nil bound
// is open; an empty filter means no restriction. Bound ordering is the
// caller's responsibility: an inverted range simply excludes everything.
type DateFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Tenant    string
}

func (f DateFilter) IsEmpty() bool {
	return f.StartDate == nil && f.EndDate == nil && f.Tenant == ""
}

// Contains reports whether t falls inside the filter's date range.
func (f DateFilter) Contains(t time.Time) bool {
	if f.StartDate != nil && t.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.After(*f.EndDate) {
		return false
	}
	return true
}

// FilteredView is the result of applying a DateFilter to a Dataset: same
// section shape, out-of-range month fields removed and totals recomputed for
// filterable sections, comparative sections copied verbatim. Pure derived
// state, recomputed whenever the source dataset or the filter changes.
type FilteredView struct {
	Dataset         Dataset
	Period          string
	AvailableMonths []Month
}
