package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/models"
)

// ScoreDistribution is the five-number summary of total ESG scores for one
// subset of the book, enough to draw a box-and-whisker chart.
type ScoreDistribution struct {
	Subset string  `json:"subset"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// GreenComparison partitions the portfolio by the green-finance tag and
// computes the descriptive score distribution of each subset. The
// comparison is purely descriptive (median contrast); no hypothesis test is
// performed.
func GreenComparison(facilities []models.Facility) (green, standard ScoreDistribution, err error) {
	if len(facilities) == 0 {
		return green, standard, &EmptyDatasetError{Op: "green finance comparison"}
	}

	var greenScores, standardScores []float64
	for i := range facilities {
		f := &facilities[i]
		if f.GreenTagged {
			greenScores = append(greenScores, float64(f.TotalScore))
		} else {
			standardScores = append(standardScores, float64(f.TotalScore))
		}
	}

	green = describeScores("green", greenScores)
	standard = describeScores("standard", standardScores)
	return green, standard, nil
}

// describeScores computes a five-number summary over the given scores. An
// empty subset yields a zero-valued distribution with Count 0.
func describeScores(subset string, scores []float64) ScoreDistribution {
	dist := ScoreDistribution{Subset: subset, Count: len(scores)}
	if len(scores) == 0 {
		return dist
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	dist.Min = sorted[0]
	dist.Max = sorted[len(sorted)-1]
	dist.Q1 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
	dist.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	dist.Q3 = stat.Quantile(0.75, stat.Empirical, sorted, nil)

	return dist
}
