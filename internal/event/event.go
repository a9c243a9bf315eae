package event

import (
	"sort"
)

// Event represents a single normalized seminar event.
//
// Optional fields are plain strings and stay empty rather than being
// omitted from JSON output; downstream consumers rely on a fixed field set.
type Event struct {
	SeminarID       string `json:"seminar_id"`
	SeminarName     string `json:"seminar_name"`
	SeminarPage     string `json:"seminar_page"`
	Title           string `json:"title"`
	Speaker         string `json:"speaker"`
	SpeakerURL      string `json:"speaker_url"`
	Date            string `json:"date"` // ISO YYYY-MM-DD
	RawDate         string `json:"raw_date"`
	TimeInfo        string `json:"time_info"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Location        string `json:"location"`
	Description     string `json:"description"`
	DescriptionHTML string `json:"description_html"`
	DetailsURL      string `json:"details_url"`
	Source          string `json:"source"`
}

// Key returns the deduplication identity of an event. Two events with the
// same seminar, title and date are considered the same event.
func (e *Event) Key() string {
	return e.SeminarID + "|" + e.Title + "|" + e.Date
}

// Dedupe removes later duplicates by Key, keeping the first occurrence in
// input order. Fields of duplicates are never merged.
func Dedupe(events []*Event) []*Event {
	seen := make(map[string]bool, len(events))
	unique := make([]*Event, 0, len(events))
	for _, evt := range events {
		if seen[evt.Key()] {
			continue
		}
		seen[evt.Key()] = true
		unique = append(unique, evt)
	}
	return unique
}

// SortByDate sorts events ascending by canonical date. ISO dates of fixed
// width compare lexicographically in calendar order, so no re-parsing is
// needed. The sort is stable: equal dates keep their input order.
func SortByDate(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
}
