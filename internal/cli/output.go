package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sbruckner/seminar-events/internal/event"
)

// OutputFormat specifies the summary format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// RunResult contains the outcome of one scrape run.
type RunResult struct {
	ScrapedAt  time.Time      `json:"scraped_at"`
	Sources    []string       `json:"sources"`
	EventCount int            `json:"event_count"`
	Events     []*event.Event `json:"events"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *RunResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the full result as JSON
func writeJSON(w io.Writer, result *RunResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs a human-readable summary, one line per event in date
// order, grouped counts at the end.
func writeText(w io.Writer, result *RunResult, verbose bool) error {
	if result.EventCount == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	bySeminar := make(map[string]int)
	for _, evt := range result.Events {
		bySeminar[evt.SeminarName]++

		line := fmt.Sprintf("%s  %s", evt.Date, evt.Title)
		if evt.Speaker != "" {
			line += fmt.Sprintf(" - %s", evt.Speaker)
		}
		fmt.Fprintf(w, "%s (%s)\n", line, evt.SeminarName)

		if verbose {
			if evt.TimeInfo != "" {
				fmt.Fprintf(w, "    Time: %s\n", evt.TimeInfo)
			}
			if evt.Location != "" {
				fmt.Fprintf(w, "    Location: %s\n", evt.Location)
			}
			fmt.Fprintf(w, "    Details: %s\n", evt.DetailsURL)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d events across %d series\n", result.EventCount, len(bySeminar))
	return nil
}
