package analysis

import (
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/models"
)

// PortfolioAnalysis bundles every aggregation the report formats consume.
type PortfolioAnalysis struct {
	Facilities       []models.Facility `json:"-"`
	Sectors          []ExposureGroup   `json:"sectors"`
	Countries        []ExposureGroup   `json:"countries"`
	ESAP             []StatusFrequency `json:"esap"`
	Heatmap          *RiskHeatmap      `json:"heatmap"`
	ExecutionGap     []StatusExposure  `json:"execution_gap"`
	Green            ScoreDistribution `json:"green"`
	Standard         ScoreDistribution `json:"standard"`
	TotalExposureUSD float64           `json:"total_exposure_usd"`
	HighRiskCount    int               `json:"high_risk_count"`
	WatchlistCount   int               `json:"watchlist_count"`
	WatchlistUSD     float64           `json:"watchlist_usd"`
	GreenExposureUSD float64           `json:"green_exposure_usd"`
	UnmitigatedUSD   float64           `json:"unmitigated_usd"`
}

// Analyze runs every aggregation phase over a scored loan tape. The tape
// must already carry the derived scoring columns.
func Analyze(facilities []models.Facility) (*PortfolioAnalysis, error) {
	if len(facilities) == 0 {
		return nil, &EmptyDatasetError{Op: "portfolio analysis"}
	}

	sectors, err := ExposureBySector(facilities)
	if err != nil {
		return nil, err
	}
	countries, err := ExposureByCountry(facilities)
	if err != nil {
		return nil, err
	}
	esap, err := ESAPDistribution(facilities)
	if err != nil {
		return nil, err
	}
	gap, err := ExecutionGap(facilities)
	if err != nil {
		return nil, err
	}
	green, standard, err := GreenComparison(facilities)
	if err != nil {
		return nil, err
	}
	heatmap, err := EnvRiskHeatmap(facilities)
	if err != nil {
		return nil, err
	}

	a := &PortfolioAnalysis{
		Facilities:       facilities,
		Sectors:          sectors,
		Countries:        countries,
		ESAP:             esap,
		Heatmap:          heatmap,
		ExecutionGap:     gap,
		Green:            green,
		Standard:         standard,
		TotalExposureUSD: TotalExposure(facilities),
		UnmitigatedUSD:   UnmitigatedExposure(gap),
	}

	for i := range facilities {
		f := &facilities[i]
		if f.HighRisk {
			a.HighRiskCount++
		}
		if f.Watchlist {
			a.WatchlistCount++
			a.WatchlistUSD += f.ExposureUSD
		}
		if f.GreenTagged {
			a.GreenExposureUSD += f.ExposureUSD
		}
	}

	return a, nil
}

// Summary condenses the analysis into the run-level statistics persisted
// with the run metadata.
func (a *PortfolioAnalysis) Summary() models.RunSummary {
	var greenCount int
	for i := range a.Facilities {
		if a.Facilities[i].GreenTagged {
			greenCount++
		}
	}
	return models.RunSummary{
		TotalExposureUSD:     a.TotalExposureUSD,
		HighRiskCount:        a.HighRiskCount,
		WatchlistCount:       a.WatchlistCount,
		WatchlistExposureUSD: a.WatchlistUSD,
		GreenCount:           greenCount,
		GreenExposureUSD:     a.GreenExposureUSD,
	}
}
