package commands

import (
	"fmt"
	"time"

	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/fin-tools/finsight/pkg/runtime/terminal/export"
	"github.com/fin-tools/finsight/pkg/services/dashboard"
	"github.com/fin-tools/finsight/pkg/store/accounting"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

type filterFlags struct {
	file   string
	start  string
	end    string
	tenant string
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ff.file, "file", "", "Path to an exported monthly-report JSON file")
	cmd.Flags().StringVar(&ff.start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ff.end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ff.tenant, "tenant", "", "Tenant to render the dashboard for")

	_ = cmd.MarkFlagRequired("file")
}

func (ff *filterFlags) filter() (domain.DateFilter, error) {
	f := domain.DateFilter{Tenant: ff.tenant}

	if ff.start != "" {
		start, err := time.Parse(dateLayout, ff.start)
		if err != nil {
			return domain.DateFilter{}, fmt.Errorf("invalid start date %q: %w", ff.start, err)
		}
		f.StartDate = &start
	}
	if ff.end != "" {
		end, err := time.Parse(dateLayout, ff.end)
		if err != nil {
			return domain.DateFilter{}, fmt.Errorf("invalid end date %q: %w", ff.end, err)
		}
		f.EndDate = &end
	}
	return f, nil
}

func (ff *filterFlags) controller() (*dashboard.Controller, error) {
	provider, err := accounting.NewFileProvider(ff.file)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return dashboard.NewController(provider), nil
}

func NewReportCmd(reporter *export.Reporter) *cobra.Command {
	ff := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the filtered monthly report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := ff.controller()
			if err != nil {
				return err
			}
			filter, err := ff.filter()
			if err != nil {
				return err
			}

			view, err := ctrl.GetReport(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return reporter.HandleReport(view)
		},
	}
	ff.register(cmd)
	return cmd
}

func NewMetricsCmd(reporter *export.Reporter) *cobra.Command {
	ff := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Derive the essential dashboard metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := ff.controller()
			if err != nil {
				return err
			}
			filter, err := ff.filter()
			if err != nil {
				return err
			}

			rep, err := ctrl.GetMetrics(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return reporter.HandleMetrics(rep)
		},
	}
	ff.register(cmd)
	return cmd
}

func NewMonthsCmd(reporter *export.Reporter) *cobra.Command {
	ff := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "months",
		Short: "List the months present in the dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := ff.controller()
			if err != nil {
				return err
			}

			months, err := ctrl.Months(cmd.Context(), ff.tenant)
			if err != nil {
				return err
			}
			return reporter.HandleMonths(months)
		},
	}
	ff.register(cmd)
	return cmd
}
