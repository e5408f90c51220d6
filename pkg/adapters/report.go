package adapters

import (
	"github.com/fin-tools/finsight/pkg/models/api"
	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/fin-tools/finsight/pkg/services/dashboard"
)

func MapEnvelopeToDomainDataset(envelope api.Envelope) domain.Dataset {
	ds := domain.Dataset{
		Tenant: envelope.Tenant,
		Period: envelope.Period,
	}
	if envelope.Sections != nil {
		ds.Sections = make(map[string][]domain.Record, len(envelope.Sections))
		for name, records := range envelope.Sections {
			ds.Sections[name] = mapRecordsToDomain(records)
		}
	}
	return ds
}

func MapFilteredViewToApiReport(view domain.FilteredView) api.ReportResponse {
	response := api.ReportResponse{
		Tenant:          view.Dataset.Tenant,
		Period:          view.Period,
		AvailableMonths: []api.MonthOption{},
		Sections:        make(map[string][]api.Record, len(view.Dataset.Sections)),
	}
	for _, m := range view.AvailableMonths {
		response.AvailableMonths = append(response.AvailableMonths, api.MonthOption{
			Key:   m.Key,
			Label: m.Label,
			Date:  m.Date,
		})
	}
	for name, records := range view.Dataset.Sections {
		response.Sections[name] = mapRecordsToApi(records)
	}
	return response
}

func MapMetricsReportToApi(rep dashboard.MetricsReport) api.MetricsResponse {
	return api.MetricsResponse{
		Revenue:               rep.Essential.Revenue,
		CostPercent:           rep.Essential.CostPercent,
		OperatingResult:       rep.Essential.OperatingResult,
		Margin:                rep.Essential.Margin,
		ReferenceMonthRevenue: rep.Essential.ReferenceMonthRevenue,
		RevenueGrowth:         mapGrowth(rep.Growth.Revenue),
		OperatingResultGrowth: mapGrowth(rep.Growth.OperatingResult),
	}
}

func MapMonthsToApi(months []domain.Month) []api.MonthOption {
	out := make([]api.MonthOption, 0, len(months))
	for _, m := range months {
		out = append(out, api.MonthOption{Key: m.Key, Label: m.Label, Date: m.Date})
	}
	return out
}

func mapGrowth(g domain.Growth) api.Growth {
	return api.Growth{Percentage: g.Percentage, IsValid: g.IsValid}
}

func mapRecordsToDomain(records []api.Record) []domain.Record {
	out := make([]domain.Record, len(records))
	for i, r := range records {
		out[i] = domain.Record{
			Name:    r.Name,
			Total:   r.Total,
			Average: r.Average,
			Months:  r.Months,
			Extra:   r.Extra,
		}
	}
	return out
}

func mapRecordsToApi(records []domain.Record) []api.Record {
	out := make([]api.Record, len(records))
	for i, r := range records {
		out[i] = api.Record{
			Name:    r.Name,
			Total:   r.Total,
			Average: r.Average,
			Months:  r.Months,
			Extra:   r.Extra,
		}
	}
	return out
}
