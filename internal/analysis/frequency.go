package analysis

import (
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/models"
)

// StatusFrequency is one row of the ESAP compliance distribution.
type StatusFrequency struct {
	Status  string  `json:"status" csv:"ESAP_Status"`
	Count   int     `json:"count" csv:"Facilities"`
	Percent float64 `json:"percent" csv:"Percent"`
}

// ESAPDistribution tabulates the frequency of each ESAP status across the
// portfolio. All four statuses appear in the output even with a zero count:
// in compliance reporting the absence of a status is itself meaningful.
func ESAPDistribution(facilities []models.Facility) ([]StatusFrequency, error) {
	if len(facilities) == 0 {
		return nil, &EmptyDatasetError{Op: "ESAP status distribution"}
	}

	counts := make(map[string]int)
	for i := range facilities {
		counts[facilities[i].ESAPStatus]++
	}

	total := float64(len(facilities))
	statuses := models.ValidESAPStatuses()
	result := make([]StatusFrequency, 0, len(statuses))
	for _, status := range statuses {
		result = append(result, StatusFrequency{
			Status:  status,
			Count:   counts[status],
			Percent: float64(counts[status]) / total * 100,
		})
	}

	return result, nil
}

// StatusExposure is one row of the execution-gap analysis: the high-risk
// exposure carried under each ESAP status.
type StatusExposure struct {
	Status      string  `json:"status" csv:"ESAP_Status"`
	ExposureUSD float64 `json:"exposure_usd" csv:"High_Risk_Exposure_USD"`
	Facilities  int     `json:"facilities" csv:"Facilities"`
}

// ExecutionGap sums exposure per ESAP status across facilities carrying a
// High rating on either dimension (non-compensatory max score of 3). All
// four statuses appear even when empty so the gap is visible at a glance.
func ExecutionGap(facilities []models.Facility) ([]StatusExposure, error) {
	if len(facilities) == 0 {
		return nil, &EmptyDatasetError{Op: "execution gap analysis"}
	}

	byStatus := make(map[string]*StatusExposure)
	for _, status := range models.ValidESAPStatuses() {
		byStatus[status] = &StatusExposure{Status: status}
	}

	for i := range facilities {
		f := &facilities[i]
		if f.MaxScore < 3 {
			continue
		}
		if row, ok := byStatus[f.ESAPStatus]; ok {
			row.ExposureUSD += f.ExposureUSD
			row.Facilities++
		}
	}

	statuses := models.ValidESAPStatuses()
	result := make([]StatusExposure, 0, len(statuses))
	for _, status := range statuses {
		result = append(result, *byStatus[status])
	}

	return result, nil
}

// UnmitigatedExposure returns the high-risk exposure whose action plans are
// Delayed or Not Started, the headline figure of the execution gap.
func UnmitigatedExposure(gap []StatusExposure) float64 {
	var total float64
	for _, row := range gap {
		if row.Status == models.ESAPDelayed || row.Status == models.ESAPNotStarted {
			total += row.ExposureUSD
		}
	}
	return total
}
