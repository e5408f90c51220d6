package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) GetDataset(ctx context.Context, tenantKey string) (domain.Dataset, error) {
	args := m.Called(ctx, tenantKey)
	return args.Get(0).(domain.Dataset), args.Error(1)
}

func providerDataset() domain.Dataset {
	return domain.Dataset{
		Tenant: "acme",
		Sections: map[string][]domain.Record{
			domain.SectionBilling: {
				{
					Name:    "TOTAL REVENUE",
					Total:   300,
					Average: 150,
					Months: map[string]float64{
						"value_jan_2025": 100,
						"value_feb_2025": 200,
					},
				},
			},
		},
	}
}

func TestGetReportMemoizesIdenticalFilter(t *testing.T) {
	provider := new(mockProvider)
	provider.On("GetDataset", mock.Anything, "").Return(providerDataset(), nil).Once()

	ctrl := NewController(provider)
	filter := domain.DateFilter{}

	first, err := ctrl.GetReport(context.Background(), filter)
	require.NoError(t, err)
	second, err := ctrl.GetReport(context.Background(), filter)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	provider.AssertExpectations(t)
	provider.AssertNumberOfCalls(t, "GetDataset", 1)
}

func TestGetReportRecomputesOnFilterChange(t *testing.T) {
	provider := new(mockProvider)
	provider.On("GetDataset", mock.Anything, "").Return(providerDataset(), nil).Twice()

	ctrl := NewController(provider)

	_, err := ctrl.GetReport(context.Background(), domain.DateFilter{})
	require.NoError(t, err)

	start := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	view, err := ctrl.GetReport(context.Background(), domain.DateFilter{StartDate: &start})
	require.NoError(t, err)

	rec := view.Dataset.Section(domain.SectionBilling)[0]
	assert.Equal(t, 200.0, rec.Total)
	provider.AssertNumberOfCalls(t, "GetDataset", 2)
}

func TestGetReportAppliesTenantSubstitution(t *testing.T) {
	provider := new(mockProvider)
	provider.On("GetDataset", mock.Anything, "globex").Return(providerDataset(), nil)

	ctrl := NewController(provider)
	view, err := ctrl.GetReport(context.Background(), domain.DateFilter{Tenant: "globex"})
	require.NoError(t, err)

	assert.Equal(t, "globex", view.Dataset.Tenant)
	rec := view.Dataset.Section(domain.SectionBilling)[0]
	assert.InDelta(t, 72.0, rec.Months["value_jan_2025"], 1e-9)
}

func TestGetReportProviderFailure(t *testing.T) {
	provider := new(mockProvider)
	provider.On("GetDataset", mock.Anything, "").Return(domain.Dataset{}, errors.New("backend down"))

	ctrl := NewController(provider)
	_, err := ctrl.GetReport(context.Background(), domain.DateFilter{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch dataset")
}

func TestGetMetrics(t *testing.T) {
	provider := new(mockProvider)
	provider.On("GetDataset", mock.Anything, "").Return(providerDataset(), nil)

	ctrl := NewController(provider)
	rep, err := ctrl.GetMetrics(context.Background(), domain.DateFilter{})
	require.NoError(t, err)

	assert.Equal(t, 300.0, rep.Essential.Revenue)
	assert.Equal(t, domain.Growth{Percentage: 100, IsValid: true}, rep.Growth.Revenue)
}

func TestMonths(t *testing.T) {
	provider := new(mockProvider)
	provider.On("GetDataset", mock.Anything, "acme").Return(providerDataset(), nil)

	ctrl := NewController(provider)
	months, err := ctrl.Months(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, months, 2)
	assert.Equal(t, "Jan 2025", months[0].Label)
}

func TestTenants(t *testing.T) {
	ctrl := NewController(new(mockProvider))
	assert.Contains(t, ctrl.Tenants(context.Background()), "acme")
}
