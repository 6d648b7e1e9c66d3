// Package generate implements the loan tape generation command.
package generate

import (
	"fmt"

	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/config"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/pipeline"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/pkg/logger"
	"github.com/spf13/cobra"
)

var configFile string

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and persist a scored loan portfolio without reporting",
		Long: `Synthesize a loan tape, score it, and persist the run to the data
directory. Use the report command to render reports from the saved run.`,
		Example: `  # Generate a portfolio with the built-in calibration
  esgrisk generate

  # Generate from a client config
  esgrisk generate --config configs/acme.yaml`,
		RunE: runGenerate,
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to config file")

	return cmd
}

func runGenerate(_ *cobra.Command, _ []string) error {
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

	result, err := p.Execute()
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}

	if err := p.Persist(result); err != nil {
		return fmt.Errorf("persisting run: %w", err)
	}

	log.Info("Portfolio generated",
		"facilities", len(result.Facilities),
		"high_risk", result.Metadata.Summary.HighRiskCount,
		"watchlist", result.Metadata.Summary.WatchlistCount)

	return nil
}
