package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/analysis"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/models"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/pkg/logger"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/pkg/pathutil"
)

// Styles for the terminal report.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	alertStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	greenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// topGroups caps how many sectors/countries the terminal report lists.
const topGroups = 5

// textFormat renders the human-readable management report. With output path
// "-" it writes to stdout, otherwise to <base>.txt.
type textFormat struct {
	logger logger.Logger
}

// Generate renders the report.
func (f *textFormat) Generate(a *analysis.PortfolioAnalysis, metadata *models.RunMetadata, outputPath string) (err error) {
	var w io.Writer = os.Stdout

	if outputPath != "" && outputPath != "-" {
		validPath, pathErr := pathutil.ValidateOutputPath(outputPath + ".txt")
		if pathErr != nil {
			return fmt.Errorf("invalid report path: %w", pathErr)
		}
		file, createErr := os.Create(validPath) // #nosec G304 - path is validated above
		if createErr != nil {
			return fmt.Errorf("creating report file: %w", createErr)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing report file: %w", cerr)
			}
		}()
		w = file
		f.logger.Info("Writing management report", "path", validPath)
	}

	return renderText(w, a, metadata)
}

// Name returns the format identifier.
func (f *textFormat) Name() string {
	return "text"
}

// Description returns a human-readable description.
func (f *textFormat) Description() string {
	return "Terminal management report with the executive summary"
}

func renderText(w io.Writer, a *analysis.PortfolioAnalysis, metadata *models.RunMetadata) error {
	p := message.NewPrinter(language.English)
	rule := strings.Repeat("=", 66)

	facilityCount := len(a.Facilities)
	highRiskPct := float64(a.HighRiskCount) / float64(facilityCount) * 100
	var greenSharePct float64
	if a.TotalExposureUSD > 0 {
		greenSharePct = a.GreenExposureUSD / a.TotalExposureUSD * 100
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("ESG PORTFOLIO RISK DIAGNOSTIC: %s (%s)",
		metadata.ClientName, metadata.Region)))
	fmt.Fprintln(w, rule)
	p.Fprintf(w, "Run:                   %s (%s)\n", metadata.ID, metadata.StartTime.Format("2006-01-02 15:04:05"))
	p.Fprintf(w, "Facilities:            %d\n", facilityCount)
	p.Fprintf(w, "Total exposure:        $%.2f\n", a.TotalExposureUSD)
	p.Fprintf(w, "High risk facilities:  %d (%.1f%%)\n", a.HighRiskCount, highRiskPct)
	p.Fprintf(w, "Green finance assets:  $%.2f (%.1f%% of book)\n", a.GreenExposureUSD, greenSharePct)
	fmt.Fprintln(w)

	fmt.Fprintln(w, sectionStyle.Render("[A] Exposure by sector"))
	renderGroups(w, p, a.Sectors)
	fmt.Fprintln(w)

	fmt.Fprintln(w, sectionStyle.Render("[B] Exposure by country"))
	renderGroups(w, p, a.Countries)
	fmt.Fprintln(w)

	fmt.Fprintln(w, sectionStyle.Render("[C] Action plan (ESAP) status"))
	for _, row := range a.ESAP {
		p.Fprintf(w, "  %-12s %4d facilities  %5.1f%%\n", row.Status, row.Count, row.Percent)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, sectionStyle.Render("[D] Green vs standard score distribution"))
	renderDistribution(w, p, "Green", a.Green)
	renderDistribution(w, p, "Standard", a.Standard)
	if a.Green.Count > 0 && a.Standard.Count > 0 {
		contrast := fmt.Sprintf("  Median contrast: green %.1f vs standard %.1f", a.Green.Median, a.Standard.Median)
		if a.Green.Median < a.Standard.Median {
			fmt.Fprintln(w, greenStyle.Render(contrast+" (green book carries lower risk)"))
		} else {
			fmt.Fprintln(w, contrast)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, sectionStyle.Render("[E] Executive summary"))
	p.Fprintf(w, "  Watchlist:             %d facilities, $%.1f M exposure\n",
		a.WatchlistCount, a.WatchlistUSD/1e6)
	p.Fprintf(w, "  Criteria:              High rating on either dimension AND Delayed/Not Started ESAP\n")
	unmitigated := fmt.Sprintf("  Unmitigated high-risk exposure: $%.1f M (Delayed + Not Started plans)",
		a.UnmitigatedUSD/1e6)
	if a.UnmitigatedUSD > 0 {
		fmt.Fprintln(w, alertStyle.Render(unmitigated))
	} else {
		fmt.Fprintln(w, unmitigated)
	}
	fmt.Fprintln(w, rule)

	return nil
}

func renderGroups(w io.Writer, p *message.Printer, groups []analysis.ExposureGroup) {
	shown := groups
	if len(shown) > topGroups {
		shown = shown[:topGroups]
	}
	for _, g := range shown {
		p.Fprintf(w, "  %-20s $%15.0f  %5.1f%%  avg score %.2f  high risk %d\n",
			g.Name, g.ExposureUSD, g.Share*100, g.AvgTotalScore, g.HighRiskCount)
	}
	if len(groups) > topGroups {
		p.Fprintf(w, "  (%d more not shown)\n", len(groups)-topGroups)
	}
}

func renderDistribution(w io.Writer, p *message.Printer, label string, dist analysis.ScoreDistribution) {
	if dist.Count == 0 {
		p.Fprintf(w, "  %-9s no facilities\n", label)
		return
	}
	p.Fprintf(w, "  %-9s n=%-4d min %.0f  q1 %.1f  median %.1f  q3 %.1f  max %.0f\n",
		label, dist.Count, dist.Min, dist.Q1, dist.Median, dist.Q3, dist.Max)
}
