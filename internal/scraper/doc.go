// Package scraper extracts normalized seminar events from the source
// pages: the wiwi department seminar tables (with optional per-event
// detail pages) and the IMFS prose listing page.
//
// The extractors share the bilingual label-pattern tables and the date
// normalization from the event package. Rows and blocks without a
// parseable date are dropped silently; fetch failures are fatal only for
// the source they belong to.
package scraper
