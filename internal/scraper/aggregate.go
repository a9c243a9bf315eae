package scraper

import (
	"github.com/sbruckner/seminar-events/internal/config"
	"github.com/sbruckner/seminar-events/internal/event"
	"github.com/sbruckner/seminar-events/internal/fetch"
	"github.com/sbruckner/seminar-events/internal/logger"
)

// Scraper runs every configured source and merges the results into one
// deduplicated, date-ordered event list.
type Scraper struct {
	cfg       *config.Config
	tables    *TableScraper
	narrative *NarrativeScraper
}

// New wires up the per-source extractors. The detail-page cache lives for
// exactly one Scraper, so one run never refetches a detail URL.
func New(cfg *config.Config, f fetch.Fetcher) *Scraper {
	details := NewDetailCache(f)
	return &Scraper{
		cfg:       cfg,
		tables:    NewTableScraper(f, details),
		narrative: NewNarrativeScraper(f, cfg.IMFSURL),
	}
}

// Run scrapes the tabular sources in configuration order, then the
// narrative source. A source whose page cannot be fetched contributes
// zero events; the remaining sources still complete. Duplicates (same
// seminar, title and date) keep their first occurrence in that order, and
// the result is sorted ascending by date.
func (s *Scraper) Run() []*event.Event {
	all := make([]*event.Event, 0)

	for _, sem := range s.cfg.Seminars {
		events, err := s.tables.Scrape(sem)
		if err != nil {
			logger.Error("seminar source failed", logger.Fields{"seminar": sem.ID}, err)
			logger.IncrCounter("sources.failed")
			continue
		}
		logger.Debug("seminar source scraped", logger.Fields{
			"seminar": sem.ID,
			"events":  len(events),
		})
		all = append(all, events...)
	}

	if s.cfg.IMFSURL == "" {
		all = event.Dedupe(all)
		event.SortByDate(all)
		return all
	}

	events, err := s.narrative.Scrape()
	if err != nil {
		logger.Error("narrative source failed", logger.Fields{"url": s.cfg.IMFSURL}, err)
		logger.IncrCounter("sources.failed")
	} else {
		logger.Debug("narrative source scraped", logger.Fields{"events": len(events)})
		all = append(all, events...)
	}

	all = event.Dedupe(all)
	event.SortByDate(all)
	return all
}
