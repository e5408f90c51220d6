package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordUnmarshalSplitsDynamicFields(t *testing.T) {
	payload := `{
		"name": "TOTAL SALES",
		"total": 600,
		"average": 200,
		"value_jan_2025": 100,
		"value_feb_2025": 200,
		"value_mar_2025": 300,
		"benchmark_average": 180,
		"currency": "BRL"
	}`

	var rec Record
	require.NoError(t, json.Unmarshal([]byte(payload), &rec))

	assert.Equal(t, "TOTAL SALES", rec.Name)
	assert.Equal(t, 600.0, rec.Total)
	assert.Equal(t, 200.0, rec.Average)
	assert.Equal(t, map[string]float64{
		"value_jan_2025": 100,
		"value_feb_2025": 200,
		"value_mar_2025": 300,
	}, rec.Months)
	// Numeric unknown fields are kept as extras, non-numeric ones dropped.
	assert.Equal(t, map[string]float64{"benchmark_average": 180}, rec.Extra)
}

func TestRecordMarshalFlattensMonths(t *testing.T) {
	rec := Record{
		Name:   "TOTAL SALES",
		Total:  300,
		Months: map[string]float64{"value_jan_2025": 300},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, "TOTAL SALES", flat["name"])
	assert.Equal(t, 300.0, flat["value_jan_2025"])
	assert.NotContains(t, flat, "months")
}

func TestEnvelopeUnmarshal(t *testing.T) {
	payload := `{
		"tenant": "acme",
		"period": "2025",
		"billing": [{"name": "TOTAL SALES", "value_jan_2025": 100}],
		"quarterly-forecast": [{"name": "FORECAST", "total": 50}],
		"generated_at": "2025-04-01T00:00:00Z"
	}`

	var envelope Envelope
	require.NoError(t, json.Unmarshal([]byte(payload), &envelope))

	assert.Equal(t, "acme", envelope.Tenant)
	assert.Equal(t, "2025", envelope.Period)
	require.Contains(t, envelope.Sections, "billing")
	// Unknown sections ride along; non-array fields do not.
	assert.Contains(t, envelope.Sections, "quarterly-forecast")
	assert.NotContains(t, envelope.Sections, "generated_at")
	assert.Equal(t, 100.0, envelope.Sections["billing"][0].Months["value_jan_2025"])
}
