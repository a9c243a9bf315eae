package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sbruckner/seminar-events/internal/event"
	"github.com/sbruckner/seminar-events/internal/fetch"
	"github.com/sbruckner/seminar-events/internal/logger"
)

// DetailFields holds whatever could be recovered from an event detail
// page. Empty fields mean the page did not provide a value; callers only
// override with non-empty fields.
type DetailFields struct {
	Title           string
	Date            string // ISO YYYY-MM-DD
	RawDate         string
	TimeInfo        string
	StartTime       string
	EndTime         string
	Location        string
	Speaker         string
	SpeakerURL      string
	Description     string
	DescriptionHTML string
}

// DetailCache fetches and extracts event detail pages, memoized by URL
// for the lifetime of one run. Several table rows may point at the same
// detail page; repeat fetches are wasted work.
//
// The run is single-threaded, so a plain map suffices. A concurrent
// version would need a memoizing map with at most one in-flight fetch
// per URL.
type DetailCache struct {
	fetcher fetch.Fetcher
	entries map[string]*DetailFields
}

// NewDetailCache creates an empty cache backed by the given fetcher.
func NewDetailCache(f fetch.Fetcher) *DetailCache {
	return &DetailCache{
		fetcher: f,
		entries: make(map[string]*DetailFields),
	}
}

// Lookup returns the fields extracted from the detail page at url. An
// unreachable page or one without the expected container yields empty
// fields, never an error; the caller simply gets no enrichment. The
// result, empty or not, is cached.
func (c *DetailCache) Lookup(url string) *DetailFields {
	if cached, ok := c.entries[url]; ok {
		return cached
	}

	fields := &DetailFields{}
	c.entries[url] = fields

	doc, err := c.fetcher.Fetch(url)
	if err != nil {
		logger.Warn("detail page unreachable", logger.Fields{"url": url})
		logger.IncrCounter("detail.unreachable")
		return fields
	}
	logger.IncrCounter("detail.fetched")

	parseDetail(doc, url, fields)
	return fields
}

// parseDetail fills fields from the known detail-page layout: an hCalendar
// style container with one element per field, matching the class markers
// the seminar tables use.
func parseDetail(doc *goquery.Document, pageURL string, fields *DetailFields) {
	container := doc.Find(".vevent").First()
	if container.Length() == 0 {
		return
	}

	if title := clean(container.Find(".summary").First().Text()); title != "" {
		fields.Title = stripLabel(title, anyLabelRe)
	}

	if rawDate := clean(container.Find(".dtstart").First().Text()); rawDate != "" {
		rawDate = stripLabel(rawDate, anyLabelRe)
		if d, err := event.ParseDate(rawDate); err == nil {
			fields.Date = event.FormatDate(d)
			fields.RawDate = rawDate
		}
	}

	start := container.Find(".starttime, .dtstart .time").First().Text()
	end := container.Find(".endtime, .dtend .time").First().Text()
	fields.StartTime = timeToken(start)
	fields.EndTime = timeToken(end)
	switch {
	case fields.StartTime != "" && fields.EndTime != "":
		fields.TimeInfo = fields.StartTime + "–" + fields.EndTime
	case fields.StartTime != "":
		fields.TimeInfo = fields.StartTime
	}

	if location := clean(container.Find(".location").First().Text()); location != "" {
		fields.Location = stripLabel(location, anyLabelRe)
	}

	organizer := container.Find(".organizer").First()
	if organizer.Length() > 0 {
		if speaker := clean(organizer.Text()); speaker != "" {
			fields.Speaker = stripLabel(speaker, anyLabelRe)
		}
		if href, ok := organizer.Find("a").First().Attr("href"); ok {
			fields.SpeakerURL = resolveURL(pageURL, href)
		}
	}

	description := container.Find(".description").First()
	if description.Length() > 0 {
		fields.Description = strings.TrimSpace(description.Text())
		// Keep the markup too; downstream display re-renders it as rich text.
		if markup, err := description.Html(); err == nil {
			fields.DescriptionHTML = strings.TrimSpace(markup)
		}
	}
}
