// Package models contains data structures for the ESG portfolio risk framework.
package models

import (
	"fmt"
	"time"
)

// Facility represents one loan/credit exposure to a single client on the
// loan tape, together with the derived risk columns appended by scoring.
type Facility struct {
	ID          string  `json:"id" csv:"Facility_ID"`
	Sector      string  `json:"sector" csv:"Sector"`
	Country     string  `json:"country" csv:"Country"`
	ExposureUSD float64 `json:"exposure_usd" csv:"Exposure_USD"`
	EnvRating   string  `json:"env_rating" csv:"Environmental_Risk"`
	SocRating   string  `json:"soc_rating" csv:"Social_Risk"`
	ESAPStatus  string  `json:"esap_status" csv:"ESAP_Status"`
	GreenTagged bool    `json:"green_tagged" csv:"Green_Tagged"`

	// Derived columns, appended once by scoring and never mutated afterward.
	EnvScore   int  `json:"env_score,omitempty" csv:"E_Score"`
	SocScore   int  `json:"soc_score,omitempty" csv:"S_Score"`
	TotalScore int  `json:"total_score,omitempty" csv:"Total_ESG_Score"`
	MaxScore   int  `json:"max_score,omitempty" csv:"Max_Risk_Score"`
	HighRisk   bool `json:"high_risk,omitempty" csv:"High_Risk_Flag"`
	Watchlist  bool `json:"watchlist,omitempty" csv:"Watchlist"`
}

// IsValid checks if a facility has all required fields and recognized
// categorical values.
func (f *Facility) IsValid() error {
	if f.ID == "" {
		return fmt.Errorf("facility missing required field: id")
	}
	if f.Sector == "" {
		return fmt.Errorf("facility %s missing required field: sector", f.ID)
	}
	if f.Country == "" {
		return fmt.Errorf("facility %s missing required field: country", f.ID)
	}
	if f.ExposureUSD < 0 {
		return fmt.Errorf("facility %s has negative exposure: %f", f.ID, f.ExposureUSD)
	}
	if !IsValidESAPStatus(f.ESAPStatus) {
		return fmt.Errorf("facility %s has unrecognized ESAP status: %q", f.ID, f.ESAPStatus)
	}
	return nil
}

// RunMetadata represents overall information about one pipeline run.
type RunMetadata struct {
	StartTime  time.Time  `json:"start_time"`
	EndTime    time.Time  `json:"end_time"`
	ID         string     `json:"id"`
	ClientName string     `json:"client_name"`
	Region     string     `json:"region"`
	ConfigFile string     `json:"config_file,omitempty"`
	Seed       int64      `json:"seed"`
	Facilities int        `json:"facilities"`
	Summary    RunSummary `json:"summary"`
}

// RunSummary provides high-level portfolio statistics.
type RunSummary struct {
	TotalExposureUSD     float64 `json:"total_exposure_usd"`
	HighRiskCount        int     `json:"high_risk_count"`
	WatchlistCount       int     `json:"watchlist_count"`
	WatchlistExposureUSD float64 `json:"watchlist_exposure_usd"`
	GreenCount           int     `json:"green_count"`
	GreenExposureUSD     float64 `json:"green_exposure_usd"`
}
