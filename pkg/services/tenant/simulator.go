// Package tenant simulates switching the dashboard to another tenant while
// the accounting backend can only serve one tenant's data per deployment.
// It scales the monthly figures of the dataset it was given by a per-tenant
// factor. The whole package is a stand-in: delete it once the backend
// supports true multi-tenant queries, and nothing else should depend on its
// internals.
package tenant

import (
	"sort"

	"github.com/fin-tools/finsight/pkg/models/domain"
)

// scaleFactors holds arbitrary demo multipliers so different tenants render
// visibly different dashboards.
var scaleFactors = map[string]float64{
	"acme":      1.0,
	"globex":    0.72,
	"initech":   1.35,
	"umbrella":  2.1,
	"stark-ind": 0.45,
}

// Apply retags ds as tenantKey. When the dataset is already tagged with the
// requested tenant it is returned unchanged; otherwise a new dataset is built
// with every monthly field of every filterable section multiplied by the
// tenant's scale factor (unknown tenants scale by 1.0) and the derived
// total/average rebuilt from the scaled months.
func Apply(ds domain.Dataset, tenantKey string) domain.Dataset {
	if tenantKey == "" || ds.Tenant == tenantKey {
		return ds
	}

	factor, ok := scaleFactors[tenantKey]
	if !ok {
		factor = 1.0
	}

	sections := make(map[string][]domain.Record, len(ds.Sections))
	for name, records := range ds.Sections {
		if domain.IsFilterable(name) {
			sections[name] = scaleRecords(records, factor)
		} else {
			sections[name] = domain.CloneRecords(records)
		}
	}

	return domain.Dataset{
		Tenant:   tenantKey,
		Period:   ds.Period,
		Sections: sections,
	}
}

// Known returns the tenant keys of the scale table, sorted. Serves the
// tenant listing until a real directory backs it.
func Known() []string {
	keys := make([]string, 0, len(scaleFactors))
	for k := range scaleFactors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func scaleRecords(records []domain.Record, factor float64) []domain.Record {
	if records == nil {
		return nil
	}

	out := make([]domain.Record, len(records))
	for i, rec := range records {
		scaled := domain.Record{Name: rec.Name}

		// Only monthly figures scale; extra fields ride along untouched.
		if rec.Extra != nil {
			scaled.Extra = make(map[string]float64, len(rec.Extra))
			for k, v := range rec.Extra {
				scaled.Extra[k] = v
			}
		}

		var total float64
		if rec.Months != nil {
			scaled.Months = make(map[string]float64, len(rec.Months))
			for k, v := range rec.Months {
				scaled.Months[k] = v * factor
				total += v * factor
			}
		}
		if n := len(scaled.Months); n > 0 {
			scaled.Total = total
			scaled.Average = total / float64(n)
		}

		out[i] = scaled
	}
	return out
}
