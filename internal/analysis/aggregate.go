// Package analysis computes the portfolio-level aggregations and
// descriptive distributions behind the risk report: exposure by sector and
// country, ESAP status frequencies, the green-vs-standard score comparison,
// and the high-risk execution gap.
package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/models"
)

// ExposureGroup is one row of an exposure aggregation: a sector or country
// with its summed exposure and share of the total book.
type ExposureGroup struct {
	Name          string  `json:"name" csv:"Group"`
	ExposureUSD   float64 `json:"exposure_usd" csv:"Total_Exposure_USD"`
	Share         float64 `json:"share" csv:"Share_Of_Portfolio"`
	Facilities    int     `json:"facilities" csv:"Facilities"`
	HighRiskCount int     `json:"high_risk_count" csv:"High_Risk_Facilities"`
	AvgTotalScore float64 `json:"avg_total_score" csv:"Avg_ESG_Score"`
}

// ExposureBySector groups the portfolio by sector, summing exposure per
// group. Groups are sorted by descending exposure; sectors with no
// facilities are simply absent.
func ExposureBySector(facilities []models.Facility) ([]ExposureGroup, error) {
	return aggregateExposure("sector exposure aggregation", facilities, func(f *models.Facility) string {
		return f.Sector
	})
}

// ExposureByCountry groups the portfolio by country, summing exposure per
// group.
func ExposureByCountry(facilities []models.Facility) ([]ExposureGroup, error) {
	return aggregateExposure("country exposure aggregation", facilities, func(f *models.Facility) string {
		return f.Country
	})
}

func aggregateExposure(op string, facilities []models.Facility, key func(*models.Facility) string) ([]ExposureGroup, error) {
	if len(facilities) == 0 {
		return nil, &EmptyDatasetError{Op: op}
	}

	var totalExposure float64
	groups := make(map[string]*ExposureGroup)
	scores := make(map[string][]float64)

	for i := range facilities {
		f := &facilities[i]
		name := key(f)

		g, ok := groups[name]
		if !ok {
			g = &ExposureGroup{Name: name}
			groups[name] = g
		}

		g.ExposureUSD += f.ExposureUSD
		g.Facilities++
		if f.HighRisk {
			g.HighRiskCount++
		}
		scores[name] = append(scores[name], float64(f.TotalScore))
		totalExposure += f.ExposureUSD
	}

	result := make([]ExposureGroup, 0, len(groups))
	for name, g := range groups {
		if totalExposure > 0 {
			g.Share = g.ExposureUSD / totalExposure
		}
		g.AvgTotalScore = stat.Mean(scores[name], nil)
		result = append(result, *g)
	}

	// Descending by exposure, name ascending as tie-break for stable output.
	sort.Slice(result, func(i, j int) bool {
		if result[i].ExposureUSD == result[j].ExposureUSD {
			return result[i].Name < result[j].Name
		}
		return result[i].ExposureUSD > result[j].ExposureUSD
	})

	return result, nil
}

// TotalExposure sums exposure across the whole tape.
func TotalExposure(facilities []models.Facility) float64 {
	var total float64
	for i := range facilities {
		total += facilities[i].ExposureUSD
	}
	return total
}
