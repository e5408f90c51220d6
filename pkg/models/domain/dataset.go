package domain

import "time"

// Section names as produced by the accounting backend.
const (
	SectionBilling             = "billing"
	SectionReceipts            = "receipts"
	SectionCostPercentages     = "monthly-cost-percentages"
	SectionResultEvolution     = "result-evolution-value"
	SectionRealizedVsProjected = "realized-vs-projected"
)

// FilterableSections lists the sections whose monthly figures are subject to
// date-range filtering and total/average recomputation. Every other section
// holds server-side aggregates and is copied through untouched.
func FilterableSections() []string {
	return []string{
		SectionBilling,
		SectionReceipts,
		SectionCostPercentages,
		SectionResultEvolution,
	}
}

func IsFilterable(section string) bool {
	switch section {
	case SectionBilling, SectionReceipts, SectionCostPercentages, SectionResultEvolution:
		return true
	}
	return false
}

// Record is a named line-item carrying one value per calendar month plus the
// total/average derived from the months currently present. Total and Average
// are recomputed after every filtering operation, never trusted from input.
type Record struct {
	Name    string
	Total   float64
	Average float64
	// Months maps a month key (value_<abbrev>_<year>) to that month's value.
	Months map[string]float64
	// Extra holds additional numeric fields the backend attaches to some
	// records (e.g. a benchmark average). Carried through unmodified.
	Extra map[string]float64
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := Record{
		Name:    r.Name,
		Total:   r.Total,
		Average: r.Average,
	}
	if r.Months != nil {
		out.Months = make(map[string]float64, len(r.Months))
		for k, v := range r.Months {
			out.Months[k] = v
		}
	}
	if r.Extra != nil {
		out.Extra = make(map[string]float64, len(r.Extra))
		for k, v := range r.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// Dataset is one tenant's monthly report: a mapping from section name to the
// ordered records of that section. Datasets are immutable once built; every
// transformation constructs a new Dataset.
type Dataset struct {
	Tenant   string
	Period   string
	Sections map[string][]Record
}

// Section returns the records of the named section, or an empty slice when
// the section is absent. Absent sections are normal per tenant, never an error.
func (d Dataset) Section(name string) []Record {
	if d.Sections == nil {
		return nil
	}
	return d.Sections[name]
}

func CloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// Month is one calendar month present in a dataset, decoded from its key.
type Month struct {
	Key   string
	Label string
	Date  time.Time
}
