// Command esgrisk simulates and analyzes ESG risk across a loan portfolio.
package main

import (
	"fmt"
	"os"

	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/cmd/generate"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/cmd/list"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/cmd/report"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/cmd/run"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	debug     bool
	logFormat string
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "esgrisk",
		Short: "ESG risk simulation and reporting for loan portfolios",
		Long: `esgrisk generates a synthetic loan portfolio, scores each facility for
environmental and social risk, aggregates exposure by sector and country,
and renders the results as CSV extracts, a terminal report, and an HTML
dashboard.`,
		Version:       fmt.Sprintf("%s (built %s)", version, buildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.SetupLogger(debug, logFormat)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")

	cmd.AddCommand(run.NewRunCommand())
	cmd.AddCommand(generate.NewGenerateCommand())
	cmd.AddCommand(report.NewReportCommand())
	cmd.AddCommand(list.NewListCommand())

	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
