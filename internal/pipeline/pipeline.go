// Package pipeline orchestrates the diagnostic phases: synthesize the loan
// tape, score it, run the portfolio aggregations, persist the run, and
// render the requested report formats.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/analysis"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/config"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/generator"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/models"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/report"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/scoring"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/storage"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/pkg/logger"
)

// Result carries everything one pipeline run produced.
type Result struct {
	Metadata   *models.RunMetadata
	Facilities []models.Facility
	Analysis   *analysis.PortfolioAnalysis
	RunDir     string
}

// Pipeline executes the portfolio diagnostic end to end.
type Pipeline struct {
	cfg    *config.Config
	logger logger.Logger
	store  *storage.Storage
}

// New creates a pipeline for the given configuration.
func New(cfg *config.Config) *Pipeline {
	return NewWithLogger(cfg, logger.GetGlobalLogger())
}

// NewWithLogger creates a pipeline with a custom logger.
func NewWithLogger(cfg *config.Config, log logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		logger: log,
		store:  storage.NewStorageWithLogger(cfg.Output.DataDir, log),
	}
}

// Execute runs generation, scoring, and analysis, producing an unpersisted
// result.
func (p *Pipeline) Execute() (*Result, error) {
	startTime := time.Now()

	facilities, err := generator.NewWithLogger(p.cfg, p.logger).Generate()
	if err != nil {
		return nil, fmt.Errorf("generating portfolio: %w", err)
	}

	if err := scoring.ScorePortfolio(facilities); err != nil {
		return nil, fmt.Errorf("scoring portfolio: %w", err)
	}
	p.logger.Debug("Scored portfolio", "facilities", len(facilities))

	a, err := analysis.Analyze(facilities)
	if err != nil {
		return nil, fmt.Errorf("analyzing portfolio: %w", err)
	}

	metadata := &models.RunMetadata{
		ID:         uuid.NewString(),
		StartTime:  startTime,
		EndTime:    time.Now(),
		ClientName: p.cfg.Client.Name,
		Region:     p.cfg.Client.Region,
		Seed:       p.cfg.Portfolio.Seed,
		Facilities: len(facilities),
		Summary:    a.Summary(),
	}

	p.logger.Info("Pipeline analysis complete",
		"run", metadata.ID,
		"facilities", len(facilities),
		"total_exposure_usd", a.TotalExposureUSD,
		"high_risk", a.HighRiskCount,
		"watchlist", a.WatchlistCount)

	return &Result{
		Metadata:   metadata,
		Facilities: facilities,
		Analysis:   a,
		RunDir:     p.store.RunDir(startTime),
	}, nil
}

// Persist saves the run under the data directory.
func (p *Pipeline) Persist(result *Result) error {
	if err := p.store.SaveRun(result.RunDir, result.Metadata, result.Facilities); err != nil {
		return fmt.Errorf("persisting run: %w", err)
	}
	p.logger.Info("Persisted run", "dir", result.RunDir)
	return nil
}

// Load re-reads a persisted run and recomputes its analysis. runDir may be
// "latest".
func (p *Pipeline) Load(runDir string) (*Result, error) {
	if runDir == "latest" {
		latest, err := p.store.FindLatestRun()
		if err != nil {
			return nil, err
		}
		runDir = latest
		p.logger.Info("Using latest run", "dir", runDir)
	}

	metadata, facilities, err := p.store.LoadRun(runDir)
	if err != nil {
		return nil, fmt.Errorf("loading run: %w", err)
	}

	a, err := analysis.Analyze(facilities)
	if err != nil {
		return nil, fmt.Errorf("analyzing run: %w", err)
	}

	return &Result{
		Metadata:   metadata,
		Facilities: facilities,
		Analysis:   a,
		RunDir:     runDir,
	}, nil
}

// Render produces the requested report formats for a result. The text format
// always goes to the terminal; file-based formats append to outputBase, which
// defaults to the reports directory and run timestamp when empty.
func (p *Pipeline) Render(result *Result, formats []string, outputBase string) error {
	if outputBase == "" {
		outputBase = filepath.Join(p.cfg.Output.ReportsDir,
			result.Metadata.StartTime.Format("2006-01-02-150405"))
	}

	madeDir := false
	for _, name := range formats {
		format, err := report.GetFormat(name, p.logger)
		if err != nil {
			return err
		}

		base := outputBase
		if name == "text" {
			base = "-"
		} else if !madeDir {
			if err := os.MkdirAll(filepath.Dir(outputBase), 0750); err != nil {
				return fmt.Errorf("creating reports directory: %w", err)
			}
			madeDir = true
		}

		if err := format.Generate(result.Analysis, result.Metadata, base); err != nil {
			return fmt.Errorf("generating %s report: %w", name, err)
		}
		p.logger.Info("Generated report", "format", name, "base", base)
	}

	return nil
}
