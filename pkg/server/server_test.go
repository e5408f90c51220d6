package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fin-tools/finsight/pkg/models/api"
	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/fin-tools/finsight/pkg/services/dashboard"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDashboard struct {
	mock.Mock
}

func (m *mockDashboard) GetReport(ctx context.Context, f domain.DateFilter) (domain.FilteredView, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(domain.FilteredView), args.Error(1)
}

func (m *mockDashboard) GetMetrics(ctx context.Context, f domain.DateFilter) (dashboard.MetricsReport, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(dashboard.MetricsReport), args.Error(1)
}

func (m *mockDashboard) Months(ctx context.Context, tenantKey string) ([]domain.Month, error) {
	args := m.Called(ctx, tenantKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Month), args.Error(1)
}

func (m *mockDashboard) Tenants(ctx context.Context) []string {
	args := m.Called(ctx)
	return args.Get(0).([]string)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(nil))

	mockSvc := new(mockDashboard)

	webAPI := NewWebAPI(logger, Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies:    Dependencies{Dashboard: mockSvc},
	})
	testServer := httptest.NewServer(webAPI.router)
	defer testServer.Close()

	expectedStart, _ := time.Parse("2006-01-02", "2025-02-01")
	expectedEnd, _ := time.Parse("2006-01-02", "2025-03-31")

	tests := []struct {
		name           string
		path           string
		setupMocks     func()
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name: "ListTenants",
			path: "/api/v1/tenants",
			setupMocks: func() {
				mockSvc.On("Tenants", mock.Anything).Return([]string{"acme"})
			},
			expectedStatus: http.StatusOK,
			expected:       []api.Tenant{{Name: "acme"}},
			parseResponse:  unmarshalResponse[[]api.Tenant](),
		},
		{
			name: "GetReport",
			path: "/api/v1/tenants/acme/report?start=2025-02-01&end=2025-03-31",
			setupMocks: func() {
				mockSvc.On("GetReport", mock.Anything, domain.DateFilter{
					StartDate: &expectedStart,
					EndDate:   &expectedEnd,
					Tenant:    "acme",
				}).Return(domain.FilteredView{
					Dataset: domain.Dataset{Tenant: "acme"},
					Period:  "Feb 1, 2025 to Mar 31, 2025",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: api.ReportResponse{
				Tenant:          "acme",
				Period:          "Feb 1, 2025 to Mar 31, 2025",
				AvailableMonths: []api.MonthOption{},
				Sections:        map[string][]api.Record{},
			},
			parseResponse: unmarshalResponse[api.ReportResponse](),
		},
		{
			name: "GetMetrics",
			path: "/api/v1/tenants/acme/metrics",
			setupMocks: func() {
				mockSvc.On("GetMetrics", mock.Anything, domain.DateFilter{Tenant: "acme"}).
					Return(dashboard.MetricsReport{
						Essential: domain.EssentialMetrics{Revenue: 1000, CostPercent: 40},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: api.MetricsResponse{
				Revenue:     1000,
				CostPercent: 40,
			},
			parseResponse: unmarshalResponse[api.MetricsResponse](),
		},
		{
			name:           "GetReport_InvalidStartDate",
			path:           "/api/v1/tenants/acme/report?start=invalid-date",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expected:       api.Error{Error: `invalid start date "invalid-date", expected YYYY-MM-DD`},
			parseResponse:  unmarshalResponse[api.Error](),
		},
		{
			name: "ListMonths",
			path: "/api/v1/tenants/acme/months",
			setupMocks: func() {
				mockSvc.On("Months", mock.Anything, "acme").Return([]domain.Month{
					{Key: "value_jan_2025", Label: "Jan 2025", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: []api.MonthOption{
				{Key: "value_jan_2025", Label: "Jan 2025", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
			},
			parseResponse: unmarshalResponse[[]api.MonthOption](),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()
			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
