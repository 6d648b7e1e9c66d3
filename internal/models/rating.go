package models

import "strings"

// Ordinal risk ratings as constants for type safety and consistency.
const (
	RatingLow    = "Low"
	RatingMedium = "Medium"
	RatingHigh   = "High"
)

// ESAP completion statuses.
const (
	ESAPNotStarted = "Not Started"
	ESAPInProgress = "In Progress"
	ESAPDelayed    = "Delayed"
	ESAPClosed     = "Closed"
)

// ValidRatings returns all valid risk ratings, lowest first.
func ValidRatings() []string {
	return []string{RatingLow, RatingMedium, RatingHigh}
}

// IsValidRating checks if a rating value is recognized.
func IsValidRating(rating string) bool {
	switch rating {
	case RatingLow, RatingMedium, RatingHigh:
		return true
	default:
		return false
	}
}

// NormalizeRating maps rating spellings onto the canonical constants.
// Unrecognized values are returned unchanged so that scoring can reject
// them with a descriptive error.
func NormalizeRating(rating string) string {
	switch strings.ToLower(strings.TrimSpace(rating)) {
	case "low":
		return RatingLow
	case "medium", "moderate":
		return RatingMedium
	case "high":
		return RatingHigh
	default:
		return rating
	}
}

// ValidESAPStatuses returns the four tracked ESAP statuses in execution order.
// Compliance reporting depends on all four being present, so this is the
// canonical ordering for frequency tables and charts.
func ValidESAPStatuses() []string {
	return []string{ESAPNotStarted, ESAPInProgress, ESAPDelayed, ESAPClosed}
}

// IsValidESAPStatus checks if an ESAP status is recognized.
func IsValidESAPStatus(status string) bool {
	switch status {
	case ESAPNotStarted, ESAPInProgress, ESAPDelayed, ESAPClosed:
		return true
	default:
		return false
	}
}
