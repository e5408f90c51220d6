package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fin-tools/finsight/pkg/adapters"
	"github.com/fin-tools/finsight/pkg/models/api"
	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/fin-tools/finsight/pkg/services/dashboard"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

// Service is what the handler needs from the dashboard controller.
type Service interface {
	GetReport(ctx context.Context, f domain.DateFilter) (domain.FilteredView, error)
	GetMetrics(ctx context.Context, f domain.DateFilter) (dashboard.MetricsReport, error)
	Months(ctx context.Context, tenantKey string) ([]domain.Month, error)
	Tenants(ctx context.Context) []string
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := make([]api.Tenant, 0)
	for _, name := range h.service.Tenants(ctx) {
		response = append(response, api.Tenant{Name: name})
	}

	writeJSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseFilter(r)
	if err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, api.Error{Error: err.Error()})
		return
	}

	view, err := h.service.GetReport(ctx, filter)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("tenant", filter.Tenant).Msg("failed to build report")
		writeJSON(ctx, w, http.StatusBadGateway, api.Error{Error: "failed to build report"})
		return
	}

	writeJSON(ctx, w, http.StatusOK, adapters.MapFilteredViewToApiReport(view))
}

func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseFilter(r)
	if err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, api.Error{Error: err.Error()})
		return
	}

	rep, err := h.service.GetMetrics(ctx, filter)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("tenant", filter.Tenant).Msg("failed to derive metrics")
		writeJSON(ctx, w, http.StatusBadGateway, api.Error{Error: "failed to derive metrics"})
		return
	}

	writeJSON(ctx, w, http.StatusOK, adapters.MapMetricsReportToApi(rep))
}

func (h *Handler) ListMonths(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantKey := chi.URLParam(r, "tenant")

	months, err := h.service.Months(ctx, tenantKey)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("tenant", tenantKey).Msg("failed to list months")
		writeJSON(ctx, w, http.StatusBadGateway, api.Error{Error: "failed to list months"})
		return
	}

	writeJSON(ctx, w, http.StatusOK, adapters.MapMonthsToApi(months))
}

// parseFilter reads the tenant path parameter and the optional ISO start/end
// query dates into a date filter.
func parseFilter(r *http.Request) (domain.DateFilter, error) {
	filter := domain.DateFilter{Tenant: chi.URLParam(r, "tenant")}

	if raw := r.URL.Query().Get("start"); raw != "" {
		start, err := time.Parse(dateLayout, raw)
		if err != nil {
			return domain.DateFilter{}, fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", raw)
		}
		filter.StartDate = &start
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		end, err := time.Parse(dateLayout, raw)
		if err != nil {
			return domain.DateFilter{}, fmt.Errorf("invalid end date %q, expected YYYY-MM-DD", raw)
		}
		filter.EndDate = &end
	}
	return filter, nil
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}
