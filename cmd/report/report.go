// Package report implements report rendering from persisted runs.
package report

import (
	"fmt"

	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/config"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/pipeline"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	configFile string
	runDir     string
	outputBase string
	formats    []string
)

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render reports from a persisted run",
		Long: `Load a previously persisted run, recompute its portfolio analysis, and
render the requested report formats. By default the most recent run is
used.`,
		Example: `  # Render CSV extracts and the dashboard for the latest run
  esgrisk report

  # Print the terminal report for a specific run
  esgrisk report --run data/runs/2026-08-29-101500 --format text

  # Write reports to a custom base path
  esgrisk report --output /tmp/acme-esg --format csv,charts`,
		RunE: runReport,
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to config file")
	cmd.Flags().StringVar(&runDir, "run", "latest", "Run directory to report on, or \"latest\"")
	cmd.Flags().StringVarP(&outputBase, "output", "o", "", "Base path for report files (defaults to reports dir)")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", []string{"csv", "charts"}, "Report formats to render")

	return cmd
}

func runReport(_ *cobra.Command, _ []string) error {
	log := logger.GetGlobalLogger()

	cfg := config.Default()
	if configFile != "" {
		var err error
		cfg, err = config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		log.Info("Loaded configuration", "config", configFile)
	}

	p := pipeline.NewWithLogger(cfg, log)

	result, err := p.Load(runDir)
	if err != nil {
		return fmt.Errorf("loading run: %w", err)
	}
	log.Info("Loaded run",
		"dir", result.RunDir,
		"facilities", len(result.Facilities))

	if err := p.Render(result, formats, outputBase); err != nil {
		return fmt.Errorf("rendering reports: %w", err)
	}

	return nil
}
