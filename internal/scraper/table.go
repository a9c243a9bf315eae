package scraper

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/sbruckner/seminar-events/internal/config"
	"github.com/sbruckner/seminar-events/internal/event"
	"github.com/sbruckner/seminar-events/internal/fetch"
	"github.com/sbruckner/seminar-events/internal/logger"
)

// TableScraper extracts events from the row-oriented seminar calendar
// tables on the wiwi department pages.
type TableScraper struct {
	fetcher fetch.Fetcher
	details *DetailCache
}

// NewTableScraper creates a TableScraper that enriches rows from the
// given detail-page cache.
func NewTableScraper(f fetch.Fetcher, details *DetailCache) *TableScraper {
	return &TableScraper{
		fetcher: f,
		details: details,
	}
}

// Scrape fetches one seminar's calendar page and returns an event per
// qualifying table row. A fetch failure is fatal for this source; a page
// without the expected table yields zero events.
func (s *TableScraper) Scrape(cfg config.Seminar) ([]*event.Event, error) {
	doc, err := s.fetcher.Fetch(cfg.Page)
	if err != nil {
		return nil, fmt.Errorf("fetching seminar page: %w", err)
	}
	return s.parseTable(doc, cfg), nil
}

func (s *TableScraper) parseTable(doc *goquery.Document, cfg config.Seminar) []*event.Event {
	events := make([]*event.Event, 0)

	table := doc.Find("table.data-table-event").First()
	if table.Length() == 0 {
		logger.Warn("seminar table not found", logger.Fields{"seminar": cfg.ID})
		return events
	}

	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		if evt := s.parseRow(row, cfg); evt != nil {
			events = append(events, evt)
		}
	})

	return events
}

// parseRow builds one event from a table row, or nil for rows to skip:
// empty or unparseable dates and rows without a title are typically
// placeholder "Keine Ereignisse gefunden." rows.
func (s *TableScraper) parseRow(row *goquery.Selection, cfg config.Seminar) *event.Event {
	cells := row.Find("td")
	if cells.Length() == 0 {
		return nil
	}

	dateCell := row.Find("td.dtstart-container").First()
	if dateCell.Length() == 0 {
		dateCell = cells.First()
	}
	rawDate := clean(dateCell.Text())
	if rawDate == "" {
		return nil
	}
	date, err := event.ParseDate(rawDate)
	if err != nil {
		logger.Debug("skipping row with unparseable date", logger.Fields{
			"seminar": cfg.ID,
			"date":    rawDate,
		})
		logger.IncrCounter("table.rows_skipped")
		return nil
	}

	speakerCell := row.Find("td.speaker").First()
	if speakerCell.Length() == 0 {
		speakerCell = cells.Eq(1)
	}
	speaker := clean(speakerCell.Text())
	speakerURL := ""
	if href, ok := speakerCell.Find("a").First().Attr("href"); ok {
		speakerURL = resolveURL(cfg.Page, href)
	}

	titleCell := row.Find("td.summary").First()
	if titleCell.Length() == 0 {
		titleCell = cells.Eq(2)
	}
	title := ""
	detailsURL := cfg.Page
	detailPage := ""
	if link := titleCell.Find("a").First(); link.Length() > 0 {
		title = clean(link.Text())
		if href, ok := link.Attr("href"); ok && href != "" {
			detailsURL = resolveURL(cfg.Page, href)
			detailPage = detailsURL
		}
	} else {
		title = clean(titleCell.Text())
	}
	if title == "" {
		logger.IncrCounter("table.rows_skipped")
		return nil
	}

	evt := &event.Event{
		SeminarID:   cfg.ID,
		SeminarName: cfg.Name,
		SeminarPage: cfg.Page,
		Title:       title,
		Speaker:     speaker,
		SpeakerURL:  speakerURL,
		Date:        event.FormatDate(date),
		RawDate:     rawDate,
		TimeInfo:    cfg.TimeInfo,
		Location:    cfg.Location,
		DetailsURL:  detailsURL,
		Source:      sourceWiwi,
	}

	if detailPage != "" && s.details != nil {
		applyDetails(evt, s.details.Lookup(detailPage))
	}

	return evt
}

// applyDetails overrides row and config values with every non-empty
// detail-page field. Detail page beats table row beats static config,
// even when the row value looks more specific.
func applyDetails(evt *event.Event, d *DetailFields) {
	if d == nil {
		return
	}
	if d.Title != "" {
		evt.Title = d.Title
	}
	if d.Date != "" {
		evt.Date = d.Date
		evt.RawDate = d.RawDate
	}
	if d.TimeInfo != "" {
		evt.TimeInfo = d.TimeInfo
	}
	if d.StartTime != "" {
		evt.StartTime = d.StartTime
	}
	if d.EndTime != "" {
		evt.EndTime = d.EndTime
	}
	if d.Location != "" {
		evt.Location = d.Location
	}
	if d.Speaker != "" {
		evt.Speaker = d.Speaker
	}
	if d.SpeakerURL != "" {
		evt.SpeakerURL = d.SpeakerURL
	}
	if d.Description != "" {
		evt.Description = d.Description
	}
	if d.DescriptionHTML != "" {
		evt.DescriptionHTML = d.DescriptionHTML
	}
}
