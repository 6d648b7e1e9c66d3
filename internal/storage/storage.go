// Package storage handles persistence of portfolio runs: the generated loan
// tape and its run metadata, laid out as data/runs/<timestamp>/.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/models"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/pkg/logger"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/pkg/pathutil"
)

const (
	runsDirName        = "runs"
	metadataFileName   = "metadata.json"
	facilitiesFileName = "facilities.json"
)

// Storage handles saving and loading portfolio runs.
type Storage struct {
	logger  logger.Logger
	baseDir string
}

// NewStorage creates a new storage instance rooted at baseDir.
func NewStorage(baseDir string) *Storage {
	return NewStorageWithLogger(baseDir, logger.GetGlobalLogger())
}

// NewStorageWithLogger creates a new storage instance with a custom logger.
func NewStorageWithLogger(baseDir string, log logger.Logger) *Storage {
	return &Storage{
		baseDir: baseDir,
		logger:  log,
	}
}

// RunDir returns the directory for a new run, named after the run start
// time so that lexical ordering matches chronological ordering.
func (s *Storage) RunDir(startTime time.Time) string {
	return filepath.Join(s.baseDir, runsDirName, startTime.Format("2006-01-02-150405"))
}

// SaveRun persists run metadata and the scored loan tape.
func (s *Storage) SaveRun(runDir string, metadata *models.RunMetadata, facilities []models.Facility) error {
	validRunDir, err := pathutil.ValidateDataPath(runDir, "")
	if err != nil {
		return fmt.Errorf("invalid run directory: %w", err)
	}

	if mkErr := os.MkdirAll(validRunDir, 0750); mkErr != nil {
		return fmt.Errorf("creating run directory: %w", mkErr)
	}

	metadataPath, err := pathutil.JoinAndValidate(validRunDir, metadataFileName)
	if err != nil {
		return fmt.Errorf("invalid metadata path: %w", err)
	}
	if saveErr := s.saveJSON(metadataPath, metadata); saveErr != nil {
		return fmt.Errorf("saving metadata: %w", saveErr)
	}
	s.logger.Debug("Saved run metadata", "path", metadataPath)

	facilitiesPath, err := pathutil.JoinAndValidate(validRunDir, facilitiesFileName)
	if err != nil {
		return fmt.Errorf("invalid facilities path: %w", err)
	}
	if saveErr := s.saveJSON(facilitiesPath, facilities); saveErr != nil {
		return fmt.Errorf("saving facilities: %w", saveErr)
	}
	s.logger.Debug("Saved facilities", "path", facilitiesPath, "count", len(facilities))

	return nil
}

// LoadRun reads run metadata and the loan tape back from a run directory.
func (s *Storage) LoadRun(runDir string) (*models.RunMetadata, []models.Facility, error) {
	validRunDir, err := pathutil.ValidateDataPath(runDir, "")
	if err != nil {
		return nil, nil, fmt.Errorf("invalid run directory: %w", err)
	}

	var metadata models.RunMetadata
	if loadErr := s.loadJSON(filepath.Join(validRunDir, metadataFileName), &metadata); loadErr != nil {
		return nil, nil, fmt.Errorf("loading run metadata: %w", loadErr)
	}

	var facilities []models.Facility
	if loadErr := s.loadJSON(filepath.Join(validRunDir, facilitiesFileName), &facilities); loadErr != nil {
		return nil, nil, fmt.Errorf("loading facilities: %w", loadErr)
	}

	return &metadata, facilities, nil
}

// FindLatestRun returns the most recent run directory, or an error when no
// runs exist yet.
func (s *Storage) FindLatestRun() (string, error) {
	runs, err := s.ListRuns()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", fmt.Errorf("no runs found under %s", filepath.Join(s.baseDir, runsDirName))
	}
	return runs[len(runs)-1], nil
}

// ListRuns returns all run directories in chronological order.
func (s *Storage) ListRuns() ([]string, error) {
	runsDir := filepath.Join(s.baseDir, runsDirName)

	entries, err := os.ReadDir(runsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading runs directory: %w", err)
	}

	var runs []string
	for _, entry := range entries {
		if entry.IsDir() {
			runs = append(runs, filepath.Join(runsDir, entry.Name()))
		}
	}
	// os.ReadDir sorts by name; run directories are timestamp-named.
	return runs, nil
}

// RunInfo describes a persisted run for listing.
type RunInfo struct {
	Metadata models.RunMetadata
	Path     string
}

// ListRunInfo returns metadata for the most recent runs, newest first,
// capped at limit (0 means no cap). Runs with unreadable metadata are
// skipped with a warning.
func (s *Storage) ListRunInfo(limit int) ([]RunInfo, error) {
	runs, err := s.ListRuns()
	if err != nil {
		return nil, err
	}

	var infos []RunInfo
	for i := len(runs) - 1; i >= 0; i-- {
		if limit > 0 && len(infos) >= limit {
			break
		}

		var metadata models.RunMetadata
		if loadErr := s.loadJSON(filepath.Join(runs[i], metadataFileName), &metadata); loadErr != nil {
			s.logger.Warn("Skipping run with unreadable metadata", "dir", runs[i], "error", loadErr)
			continue
		}
		infos = append(infos, RunInfo{Metadata: metadata, Path: runs[i]})
	}

	return infos, nil
}

// saveJSON marshals a value to an indented JSON file.
func (s *Storage) saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// loadJSON reads a JSON file into v.
func (s *Storage) loadJSON(path string, v any) error {
	data, err := os.ReadFile(path) // #nosec G304 - path is validated by caller
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
