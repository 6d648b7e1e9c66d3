package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/analysis"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/models"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/scoring"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/pkg/logger"
)

func fixtureAnalysis(t *testing.T) (*analysis.PortfolioAnalysis, *models.RunMetadata) {
	t.Helper()

	facilities := []models.Facility{
		{ID: "FAC-1000", Sector: "Agribusiness", Country: "Vietnam", ExposureUSD: 4e7,
			EnvRating: models.RatingHigh, SocRating: models.RatingHigh, ESAPStatus: models.ESAPDelayed},
		{ID: "FAC-1001", Sector: "Manufacturing", Country: "Kenya", ExposureUSD: 2e7,
			EnvRating: models.RatingMedium, SocRating: models.RatingMedium, ESAPStatus: models.ESAPInProgress},
		{ID: "FAC-1002", Sector: "Renewable Energy", Country: "Indonesia", ExposureUSD: 1e7,
			EnvRating: models.RatingLow, SocRating: models.RatingLow, ESAPStatus: models.ESAPClosed, GreenTagged: true},
		{ID: "FAC-1003", Sector: "Renewable Energy", Country: "Vietnam", ExposureUSD: 5e6,
			EnvRating: models.RatingLow, SocRating: models.RatingMedium, ESAPStatus: models.ESAPInProgress, GreenTagged: true},
	}
	require.NoError(t, scoring.ScorePortfolio(facilities))

	a, err := analysis.Analyze(facilities)
	require.NoError(t, err)

	metadata := &models.RunMetadata{
		ID:         "fixture-run",
		StartTime:  time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC),
		ClientName: "Acme Development Bank",
		Region:     "Emerging Markets",
		Facilities: len(facilities),
	}
	return a, metadata
}

func TestFormatRegistry(t *testing.T) {
	formats := ListFormats()
	assert.ElementsMatch(t, []string{"csv", "text", "charts"}, formats)

	for _, name := range formats {
		format, err := GetFormat(name, logger.NewMockLogger())
		require.NoError(t, err)
		assert.Equal(t, name, format.Name())
		assert.NotEmpty(t, format.Description())
	}

	_, err := GetFormat("pdf", logger.NewMockLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report format")
}

func TestCSVFormat(t *testing.T) {
	a, metadata := fixtureAnalysis(t)
	base := filepath.Join(t.TempDir(), "acme")

	format, err := GetFormat("csv", logger.NewMockLogger())
	require.NoError(t, err)
	require.NoError(t, format.Generate(a, metadata, base))

	// Portfolio export: header plus one row per facility.
	portfolioFile, err := os.Open(base + "-portfolio.csv")
	require.NoError(t, err)
	defer portfolioFile.Close()

	records, err := csv.NewReader(portfolioFile).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+len(a.Facilities))

	header := records[0]
	for _, col := range []string{"Facility_ID", "Sector", "Country", "Exposure_USD",
		"Environmental_Risk", "Social_Risk", "ESAP_Status", "Green_Tagged",
		"E_Score", "S_Score", "Total_ESG_Score", "High_Risk_Flag"} {
		assert.Contains(t, header, col)
	}

	// Summary export: sector and country rows.
	summaryFile, err := os.Open(base + "-summary.csv")
	require.NoError(t, err)
	defer summaryFile.Close()

	summaryRecords, err := csv.NewReader(summaryFile).ReadAll()
	require.NoError(t, err)
	require.Len(t, summaryRecords, 1+len(a.Sectors)+len(a.Countries))
	assert.Equal(t, "Dimension", summaryRecords[0][0])
	assert.Equal(t, "sector", summaryRecords[1][0])
}

func TestTextFormatToWriter(t *testing.T) {
	a, metadata := fixtureAnalysis(t)

	var buf bytes.Buffer
	require.NoError(t, renderText(&buf, a, metadata))
	out := buf.String()

	assert.Contains(t, out, "ESG PORTFOLIO RISK DIAGNOSTIC")
	assert.Contains(t, out, "Acme Development Bank")
	assert.Contains(t, out, "Exposure by sector")
	assert.Contains(t, out, "Agribusiness")
	assert.Contains(t, out, "Action plan (ESAP) status")
	assert.Contains(t, out, models.ESAPNotStarted)
	assert.Contains(t, out, "Green vs standard")
	assert.Contains(t, out, "Median contrast")
	assert.Contains(t, out, "Executive summary")

	// Grouped number formatting from the locale-aware printer.
	assert.Contains(t, out, "75,000,000")
}

func TestTextFormatZeroExposure(t *testing.T) {
	facilities := []models.Facility{
		{ID: "FAC-1000", Sector: "Agribusiness", Country: "Vietnam",
			EnvRating: models.RatingLow, SocRating: models.RatingLow, ESAPStatus: models.ESAPClosed},
	}
	require.NoError(t, scoring.ScorePortfolio(facilities))

	a, err := analysis.Analyze(facilities)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderText(&buf, a, &models.RunMetadata{ID: "zero-run"}))
	out := buf.String()

	assert.NotContains(t, out, "NaN")
	assert.Contains(t, out, "(0.0% of book)")
}

func TestTextFormatToFile(t *testing.T) {
	a, metadata := fixtureAnalysis(t)
	base := filepath.Join(t.TempDir(), "acme")

	format, err := GetFormat("text", logger.NewMockLogger())
	require.NoError(t, err)
	require.NoError(t, format.Generate(a, metadata, base))

	data, err := os.ReadFile(base + ".txt")
	require.NoError(t, err)
	assert.Contains(t, string(data), "ESG PORTFOLIO RISK DIAGNOSTIC")
}

func TestChartsFormat(t *testing.T) {
	a, metadata := fixtureAnalysis(t)
	base := filepath.Join(t.TempDir(), "acme")

	format, err := GetFormat("charts", logger.NewMockLogger())
	require.NoError(t, err)
	require.NoError(t, format.Generate(a, metadata, base))

	data, err := os.ReadFile(base + "-dashboard.html")
	require.NoError(t, err)
	html := strings.ToLower(string(data))

	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "exposure by sector")
	assert.Contains(t, html, "exposure by country")
	assert.Contains(t, html, "portfolio concentration")
	assert.Contains(t, html, "esap status")
	assert.Contains(t, html, "green vs standard")
	assert.Contains(t, html, "transition risk sensitivity")
	assert.Contains(t, html, "regulatory-aligned pathway")
}
