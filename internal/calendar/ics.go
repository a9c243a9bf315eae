// Package calendar renders the aggregated event list as an iCalendar
// (.ics) document so the seminar schedule can be subscribed to from a
// calendar client.
package calendar

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"

	"github.com/sbruckner/seminar-events/internal/event"
)

// GenerateICS renders one VCALENDAR containing a VEVENT per event.
// Events whose canonical date doesn't parse are skipped; an all-day
// event is emitted when no start time is known.
func GenerateICS(events []*event.Event) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//seminar-events//seminar-events//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	stamp := formatICSTime(time.Now().UTC())
	for _, evt := range events {
		writeEvent(&ics, evt, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeEvent(ics *strings.Builder, evt *event.Event, stamp string) {
	day, err := time.Parse("2006-01-02", evt.Date)
	if err != nil {
		return
	}

	ics.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(ics, "UID:%s@seminar-events\r\n", uid(evt.Key()))
	fmt.Fprintf(ics, "DTSTAMP:%s\r\n", stamp)

	start, startErr := combine(day, evt.StartTime)
	if startErr != nil {
		fmt.Fprintf(ics, "DTSTART;VALUE=DATE:%s\r\n", day.Format("20060102"))
	} else {
		end, endErr := combine(day, evt.EndTime)
		if endErr != nil {
			end = start.Add(time.Hour)
		}
		fmt.Fprintf(ics, "DTSTART:%s\r\n", formatICSTime(start))
		fmt.Fprintf(ics, "DTEND:%s\r\n", formatICSTime(end))
	}

	summary := evt.Title
	if evt.Speaker != "" {
		summary = fmt.Sprintf("%s (%s)", evt.Title, evt.Speaker)
	}
	fmt.Fprintf(ics, "SUMMARY:%s\r\n", escapeICS(summary))

	description := evt.SeminarName
	if evt.DetailsURL != "" {
		description = fmt.Sprintf("%s\n%s", description, evt.DetailsURL)
	}
	fmt.Fprintf(ics, "DESCRIPTION:%s\r\n", escapeICS(description))

	if evt.Location != "" {
		fmt.Fprintf(ics, "LOCATION:%s\r\n", escapeICS(evt.Location))
	}
	if evt.DetailsURL != "" {
		fmt.Fprintf(ics, "URL:%s\r\n", evt.DetailsURL)
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// combine merges a calendar day with an HH:MM clock time.
func combine(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// uid derives a deterministic identifier from the event's dedup key.
func uid(key string) string {
	h := sha1.New()
	h.Write([]byte(key))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters according to RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
