package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sbruckner/seminar-events/internal/calendar"
	"github.com/sbruckner/seminar-events/internal/config"
	"github.com/sbruckner/seminar-events/internal/fetch"
	"github.com/sbruckner/seminar-events/internal/logger"
	"github.com/sbruckner/seminar-events/internal/scraper"
	"github.com/sbruckner/seminar-events/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagOut     string
	flagICS     string
	flagFormat  string
	flagSource  string
	flagDryRun  bool
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seminar-events",
		Short: "Aggregate university seminar listings into one event snapshot",
		Long: `Scrapes the configured seminar calendar pages and the IMFS listing page,
normalizes and deduplicates the events, and writes them as a single
date-ordered JSON document.`,
		RunE: runScrape,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "YAML config file overriding the built-in source list")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file for the JSON snapshot (default events.json)")
	cmd.Flags().StringVar(&flagICS, "ics", "", "Also write an iCalendar file to this path")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Summary format: text or json")
	cmd.Flags().StringVar(&flagSource, "source", "", "Restrict to one tabular source by id (e.g. finance_seminar)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Scrape and summarize without writing any files")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging and run statistics")

	return cmd
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagOut != "" {
		cfg.Out = flagOut
	}

	if flagSource != "" {
		filtered := cfg.Seminars[:0]
		for _, sem := range cfg.Seminars {
			if sem.ID == flagSource {
				filtered = append(filtered, sem)
			}
		}
		if len(filtered) == 0 {
			return fmt.Errorf("unknown source id: %s", flagSource)
		}
		cfg.Seminars = filtered
		// A single tabular source was requested; skip the narrative page
		// by pointing it nowhere.
		cfg.IMFSURL = ""
	}

	client := fetch.NewClient(time.Duration(cfg.TimeoutSeconds) * time.Second)
	sc := scraper.New(cfg, client)

	logger.Info("scrape started", logger.Fields{
		"sources": len(cfg.Seminars),
		"out":     cfg.Out,
	})
	events := sc.Run()

	if !flagDryRun {
		store, err := storage.New(cfg.Out)
		if err != nil {
			return fmt.Errorf("initializing storage: %w", err)
		}
		if err := store.Save(events); err != nil {
			return fmt.Errorf("saving events: %w", err)
		}
		logger.Info("snapshot written", logger.Fields{
			"path":   store.Path(),
			"events": len(events),
		})

		if flagICS != "" {
			if err := os.WriteFile(flagICS, []byte(calendar.GenerateICS(events)), 0644); err != nil {
				return fmt.Errorf("writing calendar: %w", err)
			}
		}
	}

	if flagVerbose {
		counters := logger.CountersSnapshot()
		fields := make(logger.Fields, len(counters))
		for name, count := range counters {
			fields[name] = count
		}
		logger.Debug("run statistics", fields)
	}

	result := &RunResult{
		ScrapedAt:  time.Now().UTC(),
		EventCount: len(events),
		Events:     events,
	}
	for _, sem := range cfg.Seminars {
		result.Sources = append(result.Sources, sem.ID)
	}
	if cfg.IMFSURL != "" {
		result.Sources = append(result.Sources, "imfs")
	}

	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
