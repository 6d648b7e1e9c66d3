// Package report renders portfolio analyses into their delivery formats:
// CSV exports, the terminal management report, and the chart dashboard.
package report

import (
	"fmt"
	"sync"

	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/analysis"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/models"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/pkg/logger"
)

// Format represents a report generation strategy.
type Format interface {
	// Generate renders the analysis in the specific format. outputPath is a
	// base path; formats append their own extensions.
	Generate(a *analysis.PortfolioAnalysis, metadata *models.RunMetadata, outputPath string) error
	// Name returns the format identifier (e.g., "csv", "text", "charts").
	Name() string
	// Description returns a human-readable description of the format.
	Description() string
}

// FormatFactory creates instances of report formats.
type FormatFactory func(log logger.Logger) (Format, error)

var (
	formatRegistry = make(map[string]FormatFactory)
	registryMutex  sync.RWMutex
)

// RegisterFormat registers a new report format factory.
func RegisterFormat(name string, factory FormatFactory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	if factory == nil {
		panic(fmt.Sprintf("report: RegisterFormat factory is nil for format %q", name))
	}
	if _, dup := formatRegistry[name]; dup {
		panic(fmt.Sprintf("report: RegisterFormat called twice for format %q", name))
	}
	formatRegistry[name] = factory
}

// GetFormat creates an instance of the specified report format.
func GetFormat(name string, log logger.Logger) (Format, error) {
	registryMutex.RLock()
	factory, exists := formatRegistry[name]
	registryMutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unknown report format: %s (available: %v)", name, ListFormats())
	}

	return factory(log)
}

// ListFormats returns a list of all registered format names.
func ListFormats() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	formats := make([]string, 0, len(formatRegistry))
	for name := range formatRegistry {
		formats = append(formats, name)
	}
	return formats
}

// Register built-in formats during package initialization.
func init() {
	RegisterFormat("csv", func(log logger.Logger) (Format, error) {
		return &csvFormat{logger: log}, nil
	})

	RegisterFormat("text", func(log logger.Logger) (Format, error) {
		return &textFormat{logger: log}, nil
	})

	RegisterFormat("charts", func(log logger.Logger) (Format, error) {
		return &chartsFormat{logger: log}, nil
	})
}
