// Package storage persists the aggregated event list as a single ordered
// JSON document, the system's output artifact.
package storage
