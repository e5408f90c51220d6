// Package metrics derives the top-level dashboard figures from a filtered
// view. Not every tenant's dataset carries every named record, so each figure
// runs through an ordered fallback chain and degrades to a formulaic
// derivation instead of surfacing a blank dashboard.
package metrics

import (
	"context"
	"time"

	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/fin-tools/finsight/pkg/services/locator"
	"github.com/fin-tools/finsight/pkg/services/monthkey"
)

// Known spelling variants per concept, in one place so the matching behavior
// stays auditable. Older tenants report in Portuguese.
var (
	revenueNames = locator.AnyOf(
		"TOTAL REVENUE", "TOTAL SALES", "TOTAL BILLING", "FATURAMENTO TOTAL",
	)
	costPercentNames = locator.AnyOf(
		"TOTAL COST", "TOTAL COSTS", "CUSTO TOTAL",
	)
	operatingResultNames = locator.AnyOf(
		"OPERATING RESULT", "RESULTADO OPERACIONAL",
	)
	marginNames = locator.AnyOf(
		"MARGIN", "NET MARGIN", "MARGIN %", "MARGEM",
	)
)

type options struct {
	referenceDate *time.Time
}

type Option func(*options)

// WithReferenceDate anchors the "current month" figure to an explicit month
// instead of the latest month with activity in the dataset. The wall clock is
// never consulted.
func WithReferenceDate(t time.Time) Option {
	return func(o *options) { o.referenceDate = &t }
}

// ExtractEssential derives the essential dashboard metrics from a filtered
// view. For each figure the authoritative named record wins; when it is
// absent or zero the figure falls back to derivation from the others:
//
//	operating result = revenue - revenue * (costPercent / 100)
//	margin           = operatingResult / revenue * 100   (revenue > 0)
//	                 = 100 - costPercent                 (last resort)
func ExtractEssential(ctx context.Context, view domain.FilteredView, opts ...Option) domain.EssentialMetrics {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	ds := view.Dataset
	revenue := recordTotal(locateRevenue(ctx, ds))
	costPercent := recordAverage(locateCostPercent(ctx, ds))

	operatingResult := recordTotal(locateOperatingResult(ctx, ds))
	if operatingResult == 0 {
		operatingResult = revenue - revenue*(costPercent/100)
	}

	margin := recordAverage(locateMargin(ctx, ds))
	if margin == 0 {
		switch {
		case revenue > 0:
			margin = (operatingResult / revenue) * 100
		case costPercent > 0:
			margin = 100 - costPercent
		}
	}

	return domain.EssentialMetrics{
		Revenue:               revenue,
		CostPercent:           costPercent,
		OperatingResult:       operatingResult,
		Margin:                margin,
		ReferenceMonthRevenue: referenceMonthRevenue(ctx, ds, o.referenceDate),
	}
}

// GrowthSet carries the period-over-period change of the growth-bearing KPIs.
type GrowthSet struct {
	Revenue         domain.Growth
	OperatingResult domain.Growth
}

// ExtractGrowth computes the growth of the revenue and operating-result
// records. Missing records yield the invalid zero growth, consistent with the
// shared guard conventions.
func ExtractGrowth(ctx context.Context, view domain.FilteredView) GrowthSet {
	var set GrowthSet
	if rec := locateRevenue(ctx, view.Dataset); rec != nil {
		set.Revenue = CalculateGrowth(*rec)
	}
	if rec := locateOperatingResult(ctx, view.Dataset); rec != nil {
		set.OperatingResult = CalculateGrowth(*rec)
	}
	return set
}

func locateRevenue(ctx context.Context, ds domain.Dataset) *domain.Record {
	return locator.Find(ctx, ds.Section(domain.SectionBilling), "TOTAL REVENUE",
		locator.WithMatcher(revenueNames))
}

func locateCostPercent(ctx context.Context, ds domain.Dataset) *domain.Record {
	return locator.Find(ctx, ds.Section(domain.SectionCostPercentages), "TOTAL COST",
		locator.WithMatcher(costPercentNames))
}

func locateOperatingResult(ctx context.Context, ds domain.Dataset) *domain.Record {
	return locator.Find(ctx, ds.Section(domain.SectionResultEvolution), "OPERATING RESULT",
		locator.WithMatcher(operatingResultNames))
}

func locateMargin(ctx context.Context, ds domain.Dataset) *domain.Record {
	return locator.Find(ctx, ds.Section(domain.SectionResultEvolution), "MARGIN",
		locator.WithMatcher(marginNames))
}

func referenceMonthRevenue(ctx context.Context, ds domain.Dataset, ref *time.Time) float64 {
	rec := locateRevenue(ctx, ds)
	if rec == nil {
		return 0
	}

	anchor := time.Time{}
	if ref != nil {
		anchor = *ref
	} else if latest, ok := monthkey.LatestActiveMonth(ds); ok {
		anchor = latest
	} else {
		return 0
	}

	// The record may use either abbreviation dialect for the same month.
	want := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	for key, value := range rec.Months {
		if date, ok := monthkey.Parse(key); ok && date.Equal(want) {
			return value
		}
	}
	return 0
}

func recordTotal(rec *domain.Record) float64 {
	if rec == nil {
		return 0
	}
	return rec.Total
}

func recordAverage(rec *domain.Record) float64 {
	if rec == nil {
		return 0
	}
	return rec.Average
}
