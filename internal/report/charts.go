package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/analysis"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/models"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/pkg/logger"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/pkg/pathutil"
)

// chartsFormat renders the diagnostic charts into a single self-contained
// HTML dashboard.
type chartsFormat struct {
	logger logger.Logger
}

// Generate writes <base>-dashboard.html.
func (f *chartsFormat) Generate(a *analysis.PortfolioAnalysis, metadata *models.RunMetadata, outputPath string) (err error) {
	if mkErr := os.MkdirAll(filepath.Dir(outputPath), 0750); mkErr != nil {
		return fmt.Errorf("creating output directory: %w", mkErr)
	}

	validPath, err := pathutil.ValidateOutputPath(outputPath + "-dashboard.html")
	if err != nil {
		return fmt.Errorf("invalid dashboard path: %w", err)
	}

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		f.sectorBar(a, metadata),
		f.countryBar(a),
		f.riskHeatmap(a),
		f.esapPie(a),
		f.greenBoxPlot(a),
		f.transitionOverlay(metadata),
	)

	file, err := os.Create(validPath) // #nosec G304 - path is validated above
	if err != nil {
		return fmt.Errorf("creating dashboard file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing dashboard file: %w", cerr)
		}
	}()

	if renderErr := page.Render(file); renderErr != nil {
		return fmt.Errorf("rendering dashboard: %w", renderErr)
	}

	f.logger.Info("Generated chart dashboard", "path", validPath)
	return nil
}

// Name returns the format identifier.
func (f *chartsFormat) Name() string {
	return "charts"
}

// Description returns a human-readable description.
func (f *chartsFormat) Description() string {
	return "HTML dashboard with the diagnostic charts"
}

func (f *chartsFormat) sectorBar(a *analysis.PortfolioAnalysis, metadata *models.RunMetadata) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    "Exposure by Sector ($M)",
		Subtitle: fmt.Sprintf("%s, %s", metadata.ClientName, metadata.Region),
	}))

	names := make([]string, 0, len(a.Sectors))
	values := make([]opts.BarData, 0, len(a.Sectors))
	for _, g := range a.Sectors {
		names = append(names, g.Name)
		values = append(values, opts.BarData{Value: round1(g.ExposureUSD / 1e6)})
	}
	bar.SetXAxis(names).AddSeries("Exposure ($M)", values)
	return bar
}

func (f *chartsFormat) countryBar(a *analysis.PortfolioAnalysis) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: "Exposure by Country ($M)",
	}))

	names := make([]string, 0, len(a.Countries))
	values := make([]opts.BarData, 0, len(a.Countries))
	for _, g := range a.Countries {
		names = append(names, g.Name)
		values = append(values, opts.BarData{Value: round1(g.ExposureUSD / 1e6)})
	}
	bar.SetXAxis(names).AddSeries("Exposure ($M)", values)
	return bar
}

func (f *chartsFormat) riskHeatmap(a *analysis.PortfolioAnalysis) *charts.HeatMap {
	hm := charts.NewHeatMap()

	var maxM float64
	values := make([]opts.HeatMapData, 0, len(a.Heatmap.Sectors)*len(a.Heatmap.Ratings))
	for i, row := range a.Heatmap.ExposureUSD {
		for j, exposure := range row {
			v := round1(exposure / 1e6)
			if v > maxM {
				maxM = v
			}
			values = append(values, opts.HeatMapData{Value: [3]interface{}{j, i, v}})
		}
	}

	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Portfolio Concentration: Exposure ($M) by Sector & Environmental Risk",
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: a.Heatmap.Sectors}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxM),
		}),
	)
	hm.SetXAxis(a.Heatmap.Ratings).AddSeries("Exposure ($M)", values)
	return hm
}

func (f *chartsFormat) esapPie(a *analysis.PortfolioAnalysis) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: "Portfolio ESAP Status Overview",
	}))

	values := make([]opts.PieData, 0, len(a.ESAP))
	for _, row := range a.ESAP {
		values = append(values, opts.PieData{Name: row.Status, Value: row.Count})
	}
	pie.AddSeries("ESAP Status", values)
	return pie
}

func (f *chartsFormat) greenBoxPlot(a *analysis.PortfolioAnalysis) *charts.BoxPlot {
	box := charts.NewBoxPlot()
	box.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    "ESG Score Distribution: Green vs Standard",
		Subtitle: "Total score range 2-6; boxes show min/Q1/median/Q3/max",
	}))

	values := make([]opts.BoxPlotData, 0, 2)
	labels := make([]string, 0, 2)
	for _, dist := range []analysis.ScoreDistribution{a.Green, a.Standard} {
		if dist.Count == 0 {
			continue
		}
		labels = append(labels, dist.Subset)
		values = append(values, opts.BoxPlotData{
			Name:  dist.Subset,
			Value: []float64{dist.Min, dist.Q1, dist.Median, dist.Q3, dist.Max},
		})
	}
	box.SetXAxis(labels).AddSeries("Total ESG score", values)
	return box
}

func (f *chartsFormat) transitionOverlay(metadata *models.RunMetadata) *charts.Line {
	points := analysis.TransitionScenario(metadata.StartTime.Year())

	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    "Transition Risk Sensitivity: Regulatory Divergence",
		Subtitle: "Normalized sensitivity indices, not loan-level emissions data",
	}))

	years := make([]string, 0, len(points))
	bau := make([]opts.LineData, 0, len(points))
	reg := make([]opts.LineData, 0, len(points))
	for _, pt := range points {
		years = append(years, strconv.Itoa(pt.Year))
		bau = append(bau, opts.LineData{Value: round1(pt.BusinessAsUsual)})
		reg = append(reg, opts.LineData{Value: round1(pt.Regulatory)})
	}

	// The shaded area under the BAU pathway marks the divergence zone above
	// the regulatory-aligned line.
	line.SetXAxis(years).
		AddSeries("Portfolio BAU", bau, charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.25})).
		AddSeries("Regulatory-Aligned Pathway", reg)
	return line
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
