// Package list implements the list command for viewing persisted runs.
package list

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/config"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/internal/storage"
	"github.com/ak-dev-stack/ESG-Portfolio-Risk-Framework/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	configFile   string
	dataDir      string
	limit        int
	outputFormat string
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List persisted portfolio runs",
		Example: `  # List the most recent runs
  esgrisk list

  # List runs from a custom data directory
  esgrisk list --data-dir /srv/esg/data

  # Emit run metadata as JSON
  esgrisk list --format json`,
		RunE: runList,
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to config file")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Data directory path (overrides config)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of runs to show")
	cmd.Flags().StringVar(&outputFormat, "format", "table", "Output format (table, json)")

	return cmd
}

func runList(_ *cobra.Command, _ []string) error {
	log := logger.GetGlobalLogger()

	cfg := config.Default()
	if configFile != "" {
		var err error
		cfg, err = config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	if dataDir == "" {
		dataDir = cfg.Output.DataDir
	}

	store := storage.NewStorageWithLogger(dataDir, log)

	runs, err := store.ListRunInfo(limit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if len(runs) == 0 {
		log.Info("No runs found", "data_dir", dataDir)
		return nil
	}

	switch outputFormat {
	case "json":
		return displayJSON(runs)
	default:
		return displayTable(runs)
	}
}

func displayTable(runs []storage.RunInfo) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(w, "ID\tCLIENT\tREGION\tFACILITIES\tHIGH RISK\tWATCHLIST\tEXPOSURE\tTIME AGO"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 100)); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	for _, run := range runs {
		md := run.Metadata
		exposure := fmt.Sprintf("$%.1fM", md.Summary.TotalExposureUSD/1e6)

		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			md.ID,
			md.ClientName,
			md.Region,
			md.Facilities,
			md.Summary.HighRiskCount,
			md.Summary.WatchlistCount,
			exposure,
			formatTimeAgo(md.StartTime),
		); err != nil {
			return fmt.Errorf("writing run entry: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table writer: %w", err)
	}

	logger.Info("Use 'esgrisk report --run' to render reports for a run", "run", runs[0].Path)

	return nil
}

func displayJSON(runs []storage.RunInfo) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(runs)
}

func formatTimeAgo(t time.Time) string {
	duration := time.Since(t)

	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		minutes := int(duration.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	case duration < 24*time.Hour:
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case duration < 7*24*time.Hour:
		days := int(duration.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("Jan 2, 2006")
	}
}
