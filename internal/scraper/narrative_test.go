package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPage = "https://www.imfs-frankfurt.de/veranstaltungen/alle-kommenden-veranstaltungen"

func TestNarrativeScraper_FrameLayout(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.serveFixture(t, listingPage, "imfs_frames.html")
	s := NewNarrativeScraper(fetcher, listingPage)

	events, err := s.Scrape()
	require.NoError(t, err)

	// Three framed blocks in the fixture; the announcement without a
	// date is dropped.
	require.Len(t, events, 2)

	lecture := events[0]
	assert.Equal(t, "imfs", lecture.SeminarID)
	assert.Equal(t, "IMFS Policy Lecture", lecture.SeminarName)
	assert.Equal(t, "Jane Doe", lecture.Speaker)
	assert.Equal(t, "The Future of Monetary Policy", lecture.Title, "typographic quotes are stripped")
	assert.Equal(t, "2025-11-27", lecture.Date)
	assert.Equal(t, "27. November 2025", lecture.RawDate)
	assert.Equal(t, "14:00", lecture.TimeInfo)
	assert.Equal(t, "Seminarraum 3.36, Theodor-W.-Adorno-Platz 3", lecture.Location)
	assert.Equal(t, "https://www.imfs-frankfurt.de/veranstaltungen/policy-lecture-doe.html", lecture.DetailsURL, "mailto links are not detail pages")
	assert.Equal(t, "IMFS Frankfurt", lecture.Source)

	lunch := events[1]
	assert.Equal(t, "IMFS Working Lunch", lunch.SeminarName)
	assert.Equal(t, "John Smith", lunch.Speaker, "speaker recovered from the heading")
	assert.Equal(t, "Inflation Expectations", lunch.Title)
	assert.Equal(t, "2025-12-03", lunch.Date)
	assert.Equal(t, "12:15–13:15", lunch.TimeInfo)
	assert.Equal(t, "online via Zoom", lunch.Location)
	assert.Equal(t, listingPage, lunch.DetailsURL, "no detail link falls back to the listing page")
}

func TestNarrativeScraper_LineLayout(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.serveFixture(t, listingPage, "imfs_legacy.html")
	s := NewNarrativeScraper(fetcher, listingPage)

	events, err := s.Scrape()
	require.NoError(t, err)
	require.Len(t, events, 2)

	lunch := events[0]
	assert.Equal(t, "IMFS Working Lunch", lunch.SeminarName)
	assert.Equal(t, "Prof. Anna Müller (Deutsche Bundesbank)", lunch.Speaker)
	assert.Equal(t, "Climate Risk and Bank Supervision", lunch.Title)
	assert.Equal(t, "2025-11-18", lunch.Date)
	assert.Equal(t, "18. November 2025", lunch.RawDate)
	assert.Equal(t, "12:15 Uhr", lunch.TimeInfo)
	assert.Equal(t, "Raum 4.202", lunch.Location, "a labelled location wins over positional lines")

	lecture := events[1]
	assert.Equal(t, "IMFS Policy Lecture", lecture.SeminarName)
	assert.Equal(t, "Hans Weber", lecture.Speaker)
	assert.Equal(t, "Geldpolitik im Wandel", lecture.Title)
	assert.Equal(t, "2025-11-27", lecture.Date)
	assert.Equal(t, "27.11.2025, 18:00", lecture.TimeInfo)
	assert.Equal(t, "Hörsaal HZ 5, Campus Westend", lecture.Location, "the last two unlabelled lines form the location")
}

func TestNarrativeScraper_FetchError(t *testing.T) {
	s := NewNarrativeScraper(newFakeFetcher(), listingPage)

	events, err := s.Scrape()
	require.Error(t, err)
	assert.Nil(t, events)
}

func TestSplitHeadingSpeaker(t *testing.T) {
	tests := []struct {
		heading string
		before  string
		after   string
		ok      bool
	}{
		{"IMFS Policy Lecture with Jane Doe", "IMFS Policy Lecture", "Jane Doe", true},
		{"IMFS Working Lunch mit Hans Weber", "IMFS Working Lunch", "Hans Weber", true},
		{"IMFS Policy Lecture", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.heading, func(t *testing.T) {
			before, after, ok := splitHeadingSpeaker(tt.heading)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.before, before)
			assert.Equal(t, tt.after, after)
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "IMFS Working Lunch", displayName("Nächster Working Lunch im Dezember", "x"))
	assert.Equal(t, "IMFS Policy Lecture", displayName("POLICY LECTURE with Jane Doe", "x"))
	assert.Equal(t, "fallback", displayName("Sonstige Veranstaltung", "fallback"))
}
