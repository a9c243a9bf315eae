package event

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// monthByName resolves German and English month names, including
// abbreviations and umlaut spellings, to month numbers.
var monthByName = map[string]time.Month{
	"jan": time.January, "january": time.January, "januar": time.January,
	"feb": time.February, "february": time.February, "februar": time.February,
	"mar": time.March, "mär": time.March, "maer": time.March,
	"maerz": time.March, "märz": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May, "mai": time.May,
	"jun": time.June, "june": time.June, "juni": time.June,
	"jul": time.July, "july": time.July, "juli": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "okt": time.October, "october": time.October, "oktober": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "dez": time.December, "december": time.December, "dezember": time.December,
}

// weekdayPrefixes lists every weekday token that may precede a date on the
// source pages. Longer names come before their abbreviations so that the
// alternation matches greedily enough.
var weekdayPrefixes = []string{
	"montag", "dienstag", "mittwoch", "donnerstag", "freitag", "samstag", "sonntag",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	"mo.", "di.", "mi.", "do.", "fr.", "sa.", "so.",
	"mon.", "tue.", "wed.", "thu.", "fri.", "sat.", "sun.",
}

var weekdayPrefixRe = func() *regexp.Regexp {
	quoted := make([]string, len(weekdayPrefixes))
	for i, p := range weekdayPrefixes {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`(?i)^(?:` + strings.Join(quoted, "|") + `)\s*,?\s*`)
}()

// dateCandidatePatterns are tried in priority order to pull the date
// portion out of a string that also contains noise like time-of-day text.
var dateCandidatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}\.\s*[A-Za-zÄÖÜäöü]+\.?\s+\d{4}`), // 27. November 2025
	regexp.MustCompile(`\d{1,2}\s+[A-Za-zÄÖÜäöü]+\.?\s+\d{4}`),   // 04 Nov 2025
	regexp.MustCompile(`\d{1,2}\.\d{1,2}\.\d{4}`),                // 27.11.2025
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),                      // 2025-11-27
}

var (
	uhrRe           = regexp.MustCompile(`(?i)\bUhr\b`)
	yearRe          = regexp.MustCompile(`\d{4}`)
	isoWithTimeRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T`)
	dayMonthYearRe  = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-zÄÖÜäöü.]+)\s+(\d{4})$`)
	monthDayYearRe  = regexp.MustCompile(`^([A-Za-zÄÖÜäöü.]+)\s+(\d{1,2}),\s*(\d{4})$`)
	dayDotMonthRe   = regexp.MustCompile(`^(\d{1,2})\.\s*([A-Za-zÄÖÜäöü.]+)\s+(\d{4})$`)
	numericGermanRe = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`)
)

// ExtractDateCandidate returns the first substring of s that looks like a
// date in one of the supported shapes, or s unchanged if none matches.
func ExtractDateCandidate(s string) string {
	for _, pattern := range dateCandidatePatterns {
		if match := pattern.FindString(s); match != "" {
			return match
		}
	}
	return s
}

// ParseDate normalizes an arbitrary human-written date string into a
// calendar date. It handles German and English month names, optional
// weekday prefixes, a trailing "Uhr" marker, and surrounding time-of-day
// noise. Supported shapes: "27. November 2025", "04 Nov 2025",
// "Nov 18, 2025", "27.11.2025", "2025-11-27" and "2025-11-27T12:30".
//
// An input without a recognizable date, or with an unknown month name,
// returns an error naming the offending input; callers drop the enclosing
// row or block in that case.
func ParseDate(raw string) (time.Time, error) {
	s := strings.NewReplacer("\u00a0", " ", "–", "-", "—", "-").Replace(raw)
	s = uhrRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(weekdayPrefixRe.ReplaceAllString(s, ""))

	// Drop a leading weekday fragment like "Wednesday," that survived the
	// prefix strip. Only before the comma, and only when no year precedes it.
	if head, tail, found := strings.Cut(s, ","); found && !yearRe.MatchString(head) {
		if weekdayPrefixRe.MatchString(strings.TrimSpace(head) + " ") {
			s = strings.TrimSpace(tail)
		}
	}

	s = ExtractDateCandidate(s)

	// ISO date with a time component (2025-11-04T12:30)
	if isoWithTimeRe.MatchString(s) {
		s = s[:10]
	}

	// 04 Nov 2025
	if m := dayMonthYearRe.FindStringSubmatch(s); m != nil {
		return resolveNamedMonth(m[2], m[1], m[3], raw)
	}

	// Nov 18, 2025
	if m := monthDayYearRe.FindStringSubmatch(s); m != nil {
		return resolveNamedMonth(m[1], m[2], m[3], raw)
	}

	// 27. November 2025
	if m := dayDotMonthRe.FindStringSubmatch(s); m != nil {
		return resolveNamedMonth(m[2], m[1], m[3], raw)
	}

	// 27.11.2025
	if m := numericGermanRe.FindStringSubmatch(s); m != nil {
		return makeDate(atoi(m[3]), time.Month(atoi(m[2])), atoi(m[1]), raw)
	}

	for _, layout := range []string{"2006-01-02", "2.1.2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", raw)
}

// FormatDate renders a date in the canonical ISO form used throughout the
// output (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// resolveNamedMonth looks up a German/English month name and builds the date.
func resolveNamedMonth(monthName, day, year, raw string) (time.Time, error) {
	name := strings.ToLower(strings.Trim(monthName, "."))
	month, ok := monthByName[name]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month %q in %q", name, raw)
	}
	return makeDate(atoi(year), month, atoi(day), raw)
}

// makeDate validates that the components form a real calendar date.
// time.Date normalizes overflow (Feb 30 becomes Mar 2), so round-trip the
// components instead of trusting it.
func makeDate(year int, month time.Month, day int, raw string) (time.Time, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("invalid calendar date in %q", raw)
	}
	return t, nil
}

// atoi converts digit-only regexp captures; the patterns guarantee digits.
func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
