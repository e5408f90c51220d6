package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func view(sections map[string][]domain.Record) domain.FilteredView {
	return domain.FilteredView{Dataset: domain.Dataset{Sections: sections}}
}

func TestExtractEssentialAuthoritativeRecords(t *testing.T) {
	v := view(map[string][]domain.Record{
		domain.SectionBilling: {
			{Name: "Total Revenue", Total: 1000, Months: map[string]float64{
				"value_jan_2025": 400,
				"value_feb_2025": 600,
			}},
		},
		domain.SectionCostPercentages: {
			{Name: "TOTAL COST", Average: 40},
		},
		domain.SectionResultEvolution: {
			{Name: "Operating Result", Total: 550},
			{Name: "Margin", Average: 55},
		},
	})

	m := ExtractEssential(context.Background(), v)

	assert.Equal(t, 1000.0, m.Revenue)
	assert.Equal(t, 40.0, m.CostPercent)
	assert.Equal(t, 550.0, m.OperatingResult)
	assert.Equal(t, 55.0, m.Margin)
	// Reference month defaults to the latest month with activity.
	assert.Equal(t, 600.0, m.ReferenceMonthRevenue)
}

func TestExtractEssentialDerivesOperatingResult(t *testing.T) {
	v := view(map[string][]domain.Record{
		domain.SectionBilling: {
			{Name: "TOTAL SALES", Total: 1000},
		},
		domain.SectionCostPercentages: {
			{Name: "CUSTO TOTAL", Average: 30},
		},
	})

	m := ExtractEssential(context.Background(), v)

	// operatingResult = 1000 - 1000 * 30/100
	assert.InDelta(t, 700.0, m.OperatingResult, 1e-9)
	// margin = 700 / 1000 * 100
	assert.InDelta(t, 70.0, m.Margin, 1e-9)
}

func TestExtractEssentialMarginLastResort(t *testing.T) {
	v := view(map[string][]domain.Record{
		domain.SectionCostPercentages: {
			{Name: "TOTAL COST", Average: 35},
		},
	})

	m := ExtractEssential(context.Background(), v)

	assert.Equal(t, 0.0, m.Revenue)
	// No revenue to derive from: margin approximated as 100 - costPercent.
	assert.InDelta(t, 65.0, m.Margin, 1e-9)
}

func TestExtractEssentialEmptyDataset(t *testing.T) {
	m := ExtractEssential(context.Background(), view(nil))
	assert.Equal(t, domain.EssentialMetrics{}, m)
}

func TestExtractEssentialReferenceDateOption(t *testing.T) {
	v := view(map[string][]domain.Record{
		domain.SectionBilling: {
			{Name: "TOTAL REVENUE", Total: 1000, Months: map[string]float64{
				"value_jan_2025": 400,
				"value_fev_2025": 600,
			}},
		},
	})

	m := ExtractEssential(context.Background(), v,
		WithReferenceDate(time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)))

	// Anchor decodes against either abbreviation dialect.
	assert.Equal(t, 600.0, m.ReferenceMonthRevenue)
}

func TestExtractGrowth(t *testing.T) {
	v := view(map[string][]domain.Record{
		domain.SectionBilling: {
			{Name: "TOTAL REVENUE", Months: map[string]float64{
				"value_jan_2025": 100,
				"value_feb_2025": 150,
			}},
		},
	})

	set := ExtractGrowth(context.Background(), v)

	assert.Equal(t, domain.Growth{Percentage: 50, IsValid: true}, set.Revenue)
	// No operating-result record: invalid zero growth, no panic.
	assert.Equal(t, domain.Growth{}, set.OperatingResult)
}
