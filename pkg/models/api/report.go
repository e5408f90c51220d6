package api

import (
	"encoding/json"
	"strings"
	"time"
)

const monthFieldPrefix = "value_"

// Record is the wire form of a line-item. The backend flattens the monthly
// figures onto the record object as value_<abbrev>_<year> fields, so the
// codec splits them out of the fixed fields by hand.
type Record struct {
	Name    string
	Total   float64
	Average float64
	Months  map[string]float64
	Extra   map[string]float64
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, value := range raw {
		switch key {
		case "name":
			if err := json.Unmarshal(value, &r.Name); err != nil {
				return err
			}
		case "total":
			// Derived fields are recomputed downstream anyway; a non-numeric
			// value is treated as absent rather than a decode failure.
			_ = json.Unmarshal(value, &r.Total)
		case "average":
			_ = json.Unmarshal(value, &r.Average)
		default:
			var num float64
			if err := json.Unmarshal(value, &num); err != nil {
				// Non-numeric unknown field, skip it.
				continue
			}
			if strings.HasPrefix(key, monthFieldPrefix) {
				if r.Months == nil {
					r.Months = make(map[string]float64)
				}
				r.Months[key] = num
			} else {
				if r.Extra == nil {
					r.Extra = make(map[string]float64)
				}
				r.Extra[key] = num
			}
		}
	}
	return nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, 3+len(r.Months)+len(r.Extra))
	flat["name"] = r.Name
	flat["total"] = r.Total
	flat["average"] = r.Average
	for k, v := range r.Months {
		flat[k] = v
	}
	for k, v := range r.Extra {
		flat[k] = v
	}
	return json.Marshal(flat)
}

// Envelope is the accounting backend's monthly-report payload: an optional
// period/tenant header plus one array of records per section. Sections absent
// for a tenant simply do not appear; unknown sections are carried through.
type Envelope struct {
	Tenant   string
	Period   string
	Sections map[string][]Record
}

func (e *Envelope) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, value := range raw {
		switch key {
		case "tenant":
			if err := json.Unmarshal(value, &e.Tenant); err != nil {
				return err
			}
		case "period":
			if err := json.Unmarshal(value, &e.Period); err != nil {
				return err
			}
		default:
			var records []Record
			if err := json.Unmarshal(value, &records); err != nil {
				// Not a section array; ignore.
				continue
			}
			if e.Sections == nil {
				e.Sections = make(map[string][]Record)
			}
			e.Sections[key] = records
		}
	}
	return nil
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, 2+len(e.Sections))
	if e.Tenant != "" {
		flat["tenant"] = e.Tenant
	}
	if e.Period != "" {
		flat["period"] = e.Period
	}
	for name, records := range e.Sections {
		flat[name] = records
	}
	return json.Marshal(flat)
}

type MonthOption struct {
	Key   string    `json:"key"`
	Label string    `json:"label"`
	Date  time.Time `json:"date"`
}

type ReportResponse struct {
	Tenant          string              `json:"tenant,omitempty"`
	Period          string              `json:"period,omitempty"`
	AvailableMonths []MonthOption       `json:"available_months"`
	Sections        map[string][]Record `json:"sections"`
}

type Growth struct {
	Percentage float64 `json:"percentage"`
	IsValid    bool    `json:"is_valid"`
}

type MetricsResponse struct {
	Revenue               float64 `json:"revenue"`
	CostPercent           float64 `json:"cost_percent"`
	OperatingResult       float64 `json:"operating_result"`
	Margin                float64 `json:"margin"`
	ReferenceMonthRevenue float64 `json:"reference_month_revenue"`
	RevenueGrowth         Growth  `json:"revenue_growth"`
	OperatingResultGrowth Growth  `json:"operating_result_growth"`
}

type Tenant struct {
	Name string `json:"name"`
}

type Error struct {
	Error string `json:"error"`
}
