// Package dashboard wires the engine stages together for the HTTP and
// terminal surfaces: fetch the tenant's dataset, run the tenant substitution
// when the requested tenant differs, apply the range filter and derive the
// flat metrics the views render.
package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/fin-tools/finsight/pkg/services/metrics"
	"github.com/fin-tools/finsight/pkg/services/monthkey"
	"github.com/fin-tools/finsight/pkg/services/report"
	"github.com/fin-tools/finsight/pkg/services/tenant"
)

// Provider hands the controller an already-materialized dataset. The
// accounting store implements it; tests mock it.
type Provider interface {
	GetDataset(ctx context.Context, tenantKey string) (domain.Dataset, error)
}

// MetricsReport is the flat metrics payload consumed by the view layer.
type MetricsReport struct {
	Essential domain.EssentialMetrics
	Growth    metrics.GrowthSet
}

type cacheKey struct {
	tenant string
	start  string
	end    string
}

type Controller struct {
	provider Provider

	// The engine is pure, so identical inputs always produce the identical
	// view; caching the last one absorbs the recomputation storms caused by
	// every widget asking for the same filter. The memo has no freshness
	// bound: a backend dataset change is only picked up when the filter
	// changes or the process restarts.
	mu       sync.Mutex
	lastKey  cacheKey
	lastView *domain.FilteredView
}

func NewController(provider Provider) *Controller {
	return &Controller{provider: provider}
}

// GetReport returns the filtered view for the given filter. Repeated calls
// with the same filter are served from the memoized result; a change of
// filter discards it and recomputes, the stale view is never mutated.
func (c *Controller) GetReport(ctx context.Context, f domain.DateFilter) (domain.FilteredView, error) {
	key := keyFor(f)

	c.mu.Lock()
	if c.lastView != nil && c.lastKey == key {
		view := *c.lastView
		c.mu.Unlock()
		return view, nil
	}
	c.mu.Unlock()

	ds, err := c.provider.GetDataset(ctx, f.Tenant)
	if err != nil {
		return domain.FilteredView{}, fmt.Errorf("failed to fetch dataset: %w", err)
	}

	if f.Tenant != "" {
		ds = tenant.Apply(ds, f.Tenant)
	}

	view := report.FilterByRange(ds, f)

	c.mu.Lock()
	c.lastKey = key
	c.lastView = &view
	c.mu.Unlock()

	return view, nil
}

// GetMetrics derives the essential KPIs and their growth from the filtered
// view for the given filter.
func (c *Controller) GetMetrics(ctx context.Context, f domain.DateFilter) (MetricsReport, error) {
	view, err := c.GetReport(ctx, f)
	if err != nil {
		return MetricsReport{}, err
	}

	return MetricsReport{
		Essential: metrics.ExtractEssential(ctx, view),
		Growth:    metrics.ExtractGrowth(ctx, view),
	}, nil
}

// Months lists the distinct months present in the tenant's dataset.
func (c *Controller) Months(ctx context.Context, tenantKey string) ([]domain.Month, error) {
	ds, err := c.provider.GetDataset(ctx, tenantKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	return monthkey.ListAvailable(ds), nil
}

// Tenants lists the tenants selectable on the dashboard.
func (c *Controller) Tenants(_ context.Context) []string {
	return tenant.Known()
}

func keyFor(f domain.DateFilter) cacheKey {
	const layout = "2006-01-02"
	key := cacheKey{tenant: f.Tenant}
	if f.StartDate != nil {
		key.start = f.StartDate.Format(layout)
	}
	if f.EndDate != nil {
		key.end = f.EndDate.Format(layout)
	}
	return key
}
