package analysis

import (
	"sort"

	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/models"
)

// RiskHeatmap is the sector concentration matrix: exposure summed per
// sector and environmental rating. Ratings run High to Low so the riskiest
// column leads, sectors are alphabetical. Cells with no facilities hold 0.
type RiskHeatmap struct {
	Sectors     []string    `json:"sectors"`
	Ratings     []string    `json:"ratings"`
	ExposureUSD [][]float64 `json:"exposure_usd"`
}

// EnvRiskHeatmap pivots the loan tape into exposure by sector and
// environmental rating. ExposureUSD is indexed [sector][rating].
func EnvRiskHeatmap(facilities []models.Facility) (*RiskHeatmap, error) {
	if len(facilities) == 0 {
		return nil, &EmptyDatasetError{Op: "risk heatmap"}
	}

	ratings := []string{models.RatingHigh, models.RatingMedium, models.RatingLow}
	ratingIndex := make(map[string]int, len(ratings))
	for i, r := range ratings {
		ratingIndex[r] = i
	}

	cells := make(map[string][]float64)
	for i := range facilities {
		f := &facilities[i]
		row, ok := cells[f.Sector]
		if !ok {
			row = make([]float64, len(ratings))
			cells[f.Sector] = row
		}
		if j, known := ratingIndex[f.EnvRating]; known {
			row[j] += f.ExposureUSD
		}
	}

	sectors := make([]string, 0, len(cells))
	for sector := range cells {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)

	exposure := make([][]float64, len(sectors))
	for i, sector := range sectors {
		exposure[i] = cells[sector]
	}

	return &RiskHeatmap{
		Sectors:     sectors,
		Ratings:     ratings,
		ExposureUSD: exposure,
	}, nil
}
