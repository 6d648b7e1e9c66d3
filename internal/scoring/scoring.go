// Package scoring converts ordinal E&S risk ratings into numeric scores and
// appends the derived risk columns to the loan tape.
package scoring

import (
	"errors"
	"fmt"

	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/models"
)

// HighRiskThreshold is the total score at or above which a facility is
// flagged for enhanced review. Total scores range over [2,6].
const HighRiskThreshold = 5

// ratingScores is the fixed ordinal mapping for both rating dimensions.
var ratingScores = map[string]int{
	models.RatingLow:    1,
	models.RatingMedium: 2,
	models.RatingHigh:   3,
}

// InvalidRatingError indicates a rating value outside the recognized ordinal
// set. Scoring is the foundation of every downstream phase, so this is a
// fatal data-integrity fault.
type InvalidRatingError struct {
	FacilityID string
	Field      string
	Value      string
}

// Error implements the error interface.
func (e *InvalidRatingError) Error() string {
	return fmt.Sprintf("facility %s: invalid %s rating %q (expected one of %v)",
		e.FacilityID, e.Field, e.Value, models.ValidRatings())
}

// IsInvalidRating checks if the error is an invalid rating fault, unwrapping
// as needed.
func IsInvalidRating(err error) bool {
	var ratingErr *InvalidRatingError
	return errors.As(err, &ratingErr)
}

// RatingScore maps a single ordinal rating onto its integer score.
func RatingScore(rating string) (int, bool) {
	score, ok := ratingScores[models.NormalizeRating(rating)]
	return score, ok
}

// HighRiskFlag reports whether a total score marks a facility as high risk.
func HighRiskFlag(totalScore int) bool {
	return totalScore >= HighRiskThreshold
}

// watchlistStatus reports whether an ESAP status counts as unmitigated for
// watchlist purposes.
func watchlistStatus(status string) bool {
	return status == models.ESAPDelayed || status == models.ESAPNotStarted
}

// ScoreFacility appends the derived risk columns to a single facility. The
// environmental and social scores are summed into the additive total and
// combined via max() into the non-compensatory score, so that a single High
// rating cannot be averaged away by the other dimension.
func ScoreFacility(f *models.Facility) error {
	envScore, ok := RatingScore(f.EnvRating)
	if !ok {
		return &InvalidRatingError{FacilityID: f.ID, Field: "environmental", Value: f.EnvRating}
	}

	socScore, ok := RatingScore(f.SocRating)
	if !ok {
		return &InvalidRatingError{FacilityID: f.ID, Field: "social", Value: f.SocRating}
	}

	f.EnvScore = envScore
	f.SocScore = socScore
	f.TotalScore = envScore + socScore
	f.MaxScore = envScore
	if socScore > envScore {
		f.MaxScore = socScore
	}
	f.HighRisk = HighRiskFlag(f.TotalScore)
	f.Watchlist = f.MaxScore == ratingScores[models.RatingHigh] && watchlistStatus(f.ESAPStatus)

	return nil
}

// ScorePortfolio appends the derived risk columns to every facility on the
// tape. It aborts on the first invalid rating encountered: downstream
// aggregation must never observe a partially scored portfolio.
func ScorePortfolio(facilities []models.Facility) error {
	for i := range facilities {
		if err := ScoreFacility(&facilities[i]); err != nil {
			return err
		}
	}
	return nil
}
