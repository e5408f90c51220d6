// Package report implements the range filter and recompute engine: it
// restricts a dataset to a date range and rebuilds the derived totals and
// averages from the retained months only. Every operation is a pure function
// over immutable inputs.
package report

import (
	"time"

	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/fin-tools/finsight/pkg/services/monthkey"
)

// FilterByRange applies f to ds and returns the resulting view. Filterable
// sections drop every month field outside [f.StartDate, f.EndDate] and get
// total/average recomputed from the remaining months. Comparative and
// unknown sections are copied through unchanged.
func FilterByRange(ds domain.Dataset, f domain.DateFilter) domain.FilteredView {
	if f.IsEmpty() {
		return domain.FilteredView{
			Dataset:         ds,
			Period:          ds.Period,
			AvailableMonths: monthkey.ListAvailable(ds),
		}
	}

	sections := make(map[string][]domain.Record, len(ds.Sections))
	for name, records := range ds.Sections {
		if domain.IsFilterable(name) {
			sections[name] = filterRecords(records, f)
		} else {
			sections[name] = domain.CloneRecords(records)
		}
	}

	filtered := domain.Dataset{
		Tenant:   ds.Tenant,
		Period:   ds.Period,
		Sections: sections,
	}

	period := PeriodLabel(f.StartDate, f.EndDate)
	if period != "" {
		filtered.Period = period
	}

	return domain.FilteredView{
		Dataset:         filtered,
		Period:          filtered.Period,
		AvailableMonths: monthkey.ListAvailable(ds),
	}
}

// filterRecords builds new records holding only the in-range month fields.
func filterRecords(records []domain.Record, f domain.DateFilter) []domain.Record {
	if records == nil {
		return nil
	}

	out := make([]domain.Record, len(records))
	for i, rec := range records {
		out[i] = filterRecord(rec, f)
	}
	return out
}

func filterRecord(rec domain.Record, f domain.DateFilter) domain.Record {
	filtered := domain.Record{Name: rec.Name}

	if rec.Extra != nil {
		filtered.Extra = make(map[string]float64, len(rec.Extra))
		for k, v := range rec.Extra {
			filtered.Extra[k] = v
		}
	}

	var total float64
	retained := 0
	for key, value := range rec.Months {
		date, ok := monthkey.Parse(key)
		if !ok {
			// Not a month field; keep it out of the monthly map entirely.
			continue
		}
		if !f.Contains(date) {
			continue
		}
		if filtered.Months == nil {
			filtered.Months = make(map[string]float64)
		}
		filtered.Months[key] = value
		total += value
		retained++
	}

	if retained > 0 {
		filtered.Total = total
		filtered.Average = total / float64(retained)
	}
	return filtered
}

// PeriodLabel derives the textual period for display: a bounded range, an
// open-ended "from"/"until" form, or empty when both bounds are open.
func PeriodLabel(start, end *time.Time) string {
	const layout = "Jan 2, 2006"
	switch {
	case start != nil && end != nil:
		return start.Format(layout) + " to " + end.Format(layout)
	case start != nil:
		return "from " + start.Format(layout)
	case end != nil:
		return "until " + end.Format(layout)
	}
	return ""
}
