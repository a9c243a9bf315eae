// Package cli implements the seminar-events command: load configuration,
// scrape all sources, persist the aggregated snapshot and print a summary.
package cli
