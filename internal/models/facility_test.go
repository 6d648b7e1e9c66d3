package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacilityIsValid(t *testing.T) {
	valid := Facility{
		ID:          "FAC-1000",
		Sector:      "Textiles & Apparel",
		Country:     "Vietnam",
		ExposureUSD: 5_000_000,
		EnvRating:   RatingMedium,
		SocRating:   RatingHigh,
		ESAPStatus:  ESAPInProgress,
	}
	require.NoError(t, valid.IsValid())

	tests := []struct {
		mutate  func(*Facility)
		name    string
		wantErr string
	}{
		{
			name:    "missing id",
			mutate:  func(f *Facility) { f.ID = "" },
			wantErr: "missing required field: id",
		},
		{
			name:    "missing sector",
			mutate:  func(f *Facility) { f.Sector = "" },
			wantErr: "missing required field: sector",
		},
		{
			name:    "missing country",
			mutate:  func(f *Facility) { f.Country = "" },
			wantErr: "missing required field: country",
		},
		{
			name:    "negative exposure",
			mutate:  func(f *Facility) { f.ExposureUSD = -1 },
			wantErr: "negative exposure",
		},
		{
			name:    "unknown esap status",
			mutate:  func(f *Facility) { f.ESAPStatus = "Paused" },
			wantErr: "unrecognized ESAP status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			err := f.IsValid()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
