package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/models"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/pkg/logger"
)

func testRun() (*models.RunMetadata, []models.Facility) {
	metadata := &models.RunMetadata{
		ID:         "test-run",
		StartTime:  time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2024, 1, 15, 14, 0, 2, 0, time.UTC),
		ClientName: "Acme Development Bank",
		Region:     "Emerging Markets",
		Seed:       2024,
		Facilities: 2,
	}
	facilities := []models.Facility{
		{ID: "FAC-1000", Sector: "Agribusiness", Country: "Vietnam", ExposureUSD: 1.2e7,
			EnvRating: models.RatingHigh, SocRating: models.RatingMedium,
			ESAPStatus: models.ESAPDelayed, TotalScore: 5, MaxScore: 3, HighRisk: true, Watchlist: true},
		{ID: "FAC-1001", Sector: "Renewable Energy", Country: "Kenya", ExposureUSD: 3.4e6,
			EnvRating: models.RatingLow, SocRating: models.RatingLow,
			ESAPStatus: models.ESAPClosed, TotalScore: 2, MaxScore: 1, GreenTagged: true},
	}
	return metadata, facilities
}

func TestSaveAndLoadRun(t *testing.T) {
	store := NewStorageWithLogger(t.TempDir(), logger.NewMockLogger())
	metadata, facilities := testRun()

	runDir := store.RunDir(metadata.StartTime)
	require.NoError(t, store.SaveRun(runDir, metadata, facilities))

	loadedMetadata, loadedFacilities, err := store.LoadRun(runDir)
	require.NoError(t, err)

	assert.Equal(t, metadata.ID, loadedMetadata.ID)
	assert.Equal(t, metadata.ClientName, loadedMetadata.ClientName)
	assert.Equal(t, metadata.Seed, loadedMetadata.Seed)
	assert.Equal(t, facilities, loadedFacilities)
}

func TestRunDirUsesTimestamp(t *testing.T) {
	store := NewStorageWithLogger("data", logger.NewMockLogger())
	dir := store.RunDir(time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC))
	assert.Equal(t, filepath.Join("data", "runs", "2024-01-15-140000"), dir)
}

func TestFindLatestRun(t *testing.T) {
	store := NewStorageWithLogger(t.TempDir(), logger.NewMockLogger())
	metadata, facilities := testRun()

	_, err := store.FindLatestRun()
	require.Error(t, err, "no runs yet")

	first := store.RunDir(time.Date(2024, 1, 14, 9, 0, 0, 0, time.UTC))
	second := store.RunDir(time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC))
	require.NoError(t, store.SaveRun(first, metadata, facilities))
	require.NoError(t, store.SaveRun(second, metadata, facilities))

	latest, err := store.FindLatestRun()
	require.NoError(t, err)
	assert.Equal(t, second, latest)

	runs, err := store.ListRuns()
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, runs)
}

func TestListRunInfo(t *testing.T) {
	store := NewStorageWithLogger(t.TempDir(), logger.NewMockLogger())
	metadata, facilities := testRun()

	infos, err := store.ListRunInfo(0)
	require.NoError(t, err)
	assert.Empty(t, infos, "no runs yet")

	times := []time.Time{
		time.Date(2024, 1, 13, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 14, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC),
	}
	for i, start := range times {
		md := *metadata
		md.ID = string(rune('a' + i))
		md.StartTime = start
		require.NoError(t, store.SaveRun(store.RunDir(start), &md, facilities))
	}

	infos, err = store.ListRunInfo(0)
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, "c", infos[0].Metadata.ID, "newest first")
	assert.Equal(t, "a", infos[2].Metadata.ID)
	assert.Equal(t, store.RunDir(times[2]), infos[0].Path)

	infos, err = store.ListRunInfo(2)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "c", infos[0].Metadata.ID)
	assert.Equal(t, "b", infos[1].Metadata.ID)
}

func TestLoadRunMissingDirectory(t *testing.T) {
	store := NewStorageWithLogger(t.TempDir(), logger.NewMockLogger())
	_, _, err := store.LoadRun(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
