package export

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/fin-tools/finsight/pkg/services/dashboard"
)

type TableConfig struct {
	NameWidth    int
	TotalWidth   int
	AverageWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:    40,
		TotalWidth:   18,
		AverageWidth: 18,
	}
}

// Reporter renders filtered views and metrics as formatted text tables.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

type reportSection struct {
	Name    string
	Records []domain.Record
}

type reportData struct {
	Tenant   string
	Period   string
	Months   []domain.Month
	Sections []reportSection
}

func (c *Reporter) HandleReport(view domain.FilteredView) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, total, average interface{}) string {
			return fmt.Sprintf("| %-*s | %*v | %*v |",
				c.config.NameWidth, name,
				c.config.TotalWidth, total,
				c.config.AverageWidth, average)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.TotalWidth+2),
				strings.Repeat("-", c.config.AverageWidth+2))
		},
		"money": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
	}

	tmpl := `
Monthly Report{{if .Tenant}} - {{.Tenant}}{{end}}
{{- if .Period}}
Period: {{.Period}}
{{- end}}
{{- if .Months}}
Months: {{range $i, $m := .Months}}{{if $i}}, {{end}}{{$m.Label}}{{end}}
{{- end}}

{{range .Sections}}
=== {{.Name}} ===
{{separator}}
{{formatRow "Name" "Total" "Average"}}
{{separator}}
{{range .Records}}{{formatRow .Name (money .Total) (money .Average)}}
{{end}}{{separator}}
{{end}}
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, buildReportData(view))
}

func (c *Reporter) HandleMetrics(rep dashboard.MetricsReport) error {
	funcMap := template.FuncMap{
		"money":   func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"percent": func(v float64) string { return fmt.Sprintf("%.2f%%", v) },
		"growth": func(g domain.Growth) string {
			if !g.IsValid {
				return "n/a"
			}
			return fmt.Sprintf("%+.2f%%", g.Percentage)
		},
	}

	tmpl := `
Essential Metrics

Revenue:             {{money .Essential.Revenue}}
Cost:                {{percent .Essential.CostPercent}}
Operating Result:    {{money .Essential.OperatingResult}}
Margin:              {{percent .Essential.Margin}}
Reference Month:     {{money .Essential.ReferenceMonthRevenue}}

Revenue Growth:          {{growth .Growth.Revenue}}
Operating Result Growth: {{growth .Growth.OperatingResult}}
`

	t, err := template.New("metrics").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, rep)
}

func (c *Reporter) HandleMonths(months []domain.Month) error {
	if len(months) == 0 {
		_, err := fmt.Fprintln(c.writer, "no months available")
		return err
	}
	for _, m := range months {
		if _, err := fmt.Fprintf(c.writer, "%s\t%s\n", m.Key, m.Label); err != nil {
			return err
		}
	}
	return nil
}

func buildReportData(view domain.FilteredView) reportData {
	data := reportData{
		Tenant: view.Dataset.Tenant,
		Period: view.Period,
		Months: view.AvailableMonths,
	}

	names := make([]string, 0, len(view.Dataset.Sections))
	for name := range view.Dataset.Sections {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		data.Sections = append(data.Sections, reportSection{
			Name:    name,
			Records: view.Dataset.Sections[name],
		})
	}
	return data
}
