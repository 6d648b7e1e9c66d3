package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/analysis"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/models"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/pkg/logger"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/pkg/pathutil"
)

// csvFormat writes the two tabular exports: the enriched per-facility loan
// tape and the sector/country exposure summary.
type csvFormat struct {
	logger logger.Logger
}

// summaryRow is one line of the combined sector/country summary export.
type summaryRow struct {
	Dimension     string  `csv:"Dimension"`
	Group         string  `csv:"Group"`
	ExposureUSD   float64 `csv:"Total_Exposure_USD"`
	Share         float64 `csv:"Share_Of_Portfolio"`
	Facilities    int     `csv:"Facilities"`
	HighRiskCount int     `csv:"High_Risk_Facilities"`
	AvgTotalScore float64 `csv:"Avg_ESG_Score"`
}

// Generate writes <base>-portfolio.csv and <base>-summary.csv.
func (f *csvFormat) Generate(a *analysis.PortfolioAnalysis, _ *models.RunMetadata, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	portfolioPath, err := pathutil.ValidateOutputPath(outputPath + "-portfolio.csv")
	if err != nil {
		return fmt.Errorf("invalid portfolio export path: %w", err)
	}
	if err := writeCSV(portfolioPath, &a.Facilities); err != nil {
		return fmt.Errorf("writing portfolio export: %w", err)
	}
	f.logger.Info("Exported loan tape", "path", portfolioPath, "facilities", len(a.Facilities))

	rows := make([]summaryRow, 0, len(a.Sectors)+len(a.Countries))
	for _, g := range a.Sectors {
		rows = append(rows, newSummaryRow("sector", g))
	}
	for _, g := range a.Countries {
		rows = append(rows, newSummaryRow("country", g))
	}

	summaryPath, err := pathutil.ValidateOutputPath(outputPath + "-summary.csv")
	if err != nil {
		return fmt.Errorf("invalid summary export path: %w", err)
	}
	if err := writeCSV(summaryPath, &rows); err != nil {
		return fmt.Errorf("writing summary export: %w", err)
	}
	f.logger.Info("Exported exposure summary", "path", summaryPath, "rows", len(rows))

	return nil
}

// Name returns the format identifier.
func (f *csvFormat) Name() string {
	return "csv"
}

// Description returns a human-readable description.
func (f *csvFormat) Description() string {
	return "CSV exports: enriched loan tape and sector/country exposure summary"
}

func newSummaryRow(dimension string, g analysis.ExposureGroup) summaryRow {
	return summaryRow{
		Dimension:     dimension,
		Group:         g.Name,
		ExposureUSD:   g.ExposureUSD,
		Share:         g.Share,
		Facilities:    g.Facilities,
		HighRiskCount: g.HighRiskCount,
		AvgTotalScore: g.AvgTotalScore,
	}
}

func writeCSV(path string, rows any) (err error) {
	file, err := os.Create(path) // #nosec G304 - path is validated by caller
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	return gocsv.MarshalFile(rows, file)
}
