package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"securewatch/internal/report"
	"securewatch/internal/repository/mock"

	"github.com/spf13/cobra"
)

var (
	reportID  string
	reportOut string
)

var exportReportCmd = &cobra.Command{
	Use:   "export-report",
	Short: "Write the plain-text report of an incident",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return exportReport(cmd.Context(), cmd.OutOrStdout(), reportID, reportOut)
	},
}

func init() {
	exportReportCmd.Flags().StringVar(&reportID, "id", "", "incident id, e.g. INC-2024-0952")
	exportReportCmd.Flags().StringVar(&reportOut, "out", "", `output file; "-" for stdout, default incident-report-<id>.txt`)
	_ = exportReportCmd.MarkFlagRequired("id")
}

func exportReport(ctx context.Context, stdout io.Writer, id, out string) error {
	store := mock.NewIncidentStore(mock.SeedIncidents())
	inc, err := store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", id, err)
	}

	if out == "-" {
		return report.Render(stdout, inc)
	}
	if out == "" {
		out = report.Filename(inc.ID)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := report.Render(f, inc); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "wrote %s\n", out)
	return err
}
