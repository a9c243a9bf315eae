// Package event provides the normalized seminar event record and the
// free-text date normalization shared by all extractors.
//
// Events are identified by the triple (seminar_id, title, date) for
// deduplication. Dates are canonicalized to ISO YYYY-MM-DD strings so that
// plain string comparison sorts events chronologically.
package event
