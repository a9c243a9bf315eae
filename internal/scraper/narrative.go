package scraper

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/sbruckner/seminar-events/internal/event"
	"github.com/sbruckner/seminar-events/internal/fetch"
	"github.com/sbruckner/seminar-events/internal/logger"
)

// candidate is the partial record a segmenter recovers from one block of
// the listing page.
type candidate struct {
	seminarName string
	speaker     string
	title       string
	date        time.Time
	rawDate     string
	timeInfo    string
	location    string
	detailsURL  string
}

// segmenter is one strategy for cutting the IMFS listing page into event
// blocks. The page layout has changed over time; each layout gets its own
// segmenter and the first one whose markers are present wins.
type segmenter interface {
	name() string
	matches(doc *goquery.Document) bool
	extract(doc *goquery.Document, pageURL string) []candidate
}

// NarrativeScraper extracts events from the IMFS "upcoming events" page,
// which is written as flowing heading+paragraph blocks rather than a
// table.
type NarrativeScraper struct {
	fetcher    fetch.Fetcher
	url        string
	segmenters []segmenter
}

// NewNarrativeScraper creates a scraper for the listing page at url.
func NewNarrativeScraper(f fetch.Fetcher, url string) *NarrativeScraper {
	return &NarrativeScraper{
		fetcher:    f,
		url:        url,
		segmenters: []segmenter{frameSegmenter{}, lineSegmenter{}},
	}
}

// Scrape fetches the listing page and returns one event per recognized
// block. A fetch failure is fatal for this source.
func (s *NarrativeScraper) Scrape() ([]*event.Event, error) {
	doc, err := s.fetcher.Fetch(s.url)
	if err != nil {
		return nil, fmt.Errorf("fetching listing page: %w", err)
	}
	return s.parse(doc), nil
}

func (s *NarrativeScraper) parse(doc *goquery.Document) []*event.Event {
	events := make([]*event.Event, 0)
	for _, seg := range s.segmenters {
		if !seg.matches(doc) {
			continue
		}
		candidates := seg.extract(doc, s.url)
		if len(candidates) == 0 {
			continue
		}
		logger.Debug("narrative layout detected", logger.Fields{
			"segmenter": seg.name(),
			"blocks":    len(candidates),
		})
		for _, c := range candidates {
			events = append(events, s.finalize(c))
		}
		break
	}
	return events
}

const quoteCutset = "\"“”"

// finalize turns a candidate into an emitted event: quotes stripped, title
// falling back to the series name, detail URL falling back to the listing
// page itself.
func (s *NarrativeScraper) finalize(c candidate) *event.Event {
	speaker := strings.Trim(c.speaker, quoteCutset)
	title := strings.Trim(c.title, quoteCutset)
	if title == "" {
		title = c.seminarName
	}
	detailsURL := c.detailsURL
	if detailsURL == "" {
		detailsURL = s.url
	}
	return &event.Event{
		SeminarID:   "imfs",
		SeminarName: c.seminarName,
		SeminarPage: s.url,
		Title:       title,
		Speaker:     speaker,
		Date:        event.FormatDate(c.date),
		RawDate:     c.rawDate,
		TimeInfo:    c.timeInfo,
		Location:    c.location,
		DetailsURL:  detailsURL,
		Source:      sourceIMFS,
	}
}

var (
	withSplitRe = regexp.MustCompile(`(?i)\bwith\b`)
	mitSplitRe  = regexp.MustCompile(`(?i)\bmit\b`)
	fourDigitRe = regexp.MustCompile(`\d{4}`)
	metaFieldRe = regexp.MustCompile(`(?i)\b(speaker|referent(?:in)?|titel|topic|time|uhrzeit|location|ort|datum)\b`)
	metaSkipRe  = regexp.MustCompile(`(?i)\b(speaker|referent(?:in)?|titel|topic|time|uhrzeit|location|ort|datum|mehr|more|kontakt|contact|register|registration)\b`)
	seriesRe    = regexp.MustCompile(`(?i)working lunch|policy lecture`)
)

// displayName maps a block heading to the seminar series display name.
func displayName(heading, fallback string) string {
	lower := strings.ToLower(heading)
	switch {
	case strings.Contains(lower, "working lunch"):
		return "IMFS Working Lunch"
	case strings.Contains(lower, "policy lecture"):
		return "IMFS Policy Lecture"
	}
	return fallback
}

// splitHeadingSpeaker splits a heading like "IMFS Policy Lecture with Jane
// Doe" at the English or German connective. ok is false when the heading
// has no connective.
func splitHeadingSpeaker(heading string) (before, after string, ok bool) {
	lower := strings.ToLower(heading)
	var re *regexp.Regexp
	switch {
	case strings.Contains(lower, " with "):
		re = withSplitRe
	case strings.Contains(lower, " mit "):
		re = mitSplitRe
	default:
		return "", "", false
	}
	loc := re.FindStringIndex(heading)
	return strings.TrimSpace(heading[:loc[0]]), strings.TrimSpace(heading[loc[1]:]), true
}

// frameSegmenter handles the current layout: framed content blocks, each
// with a heading, a speaker/title paragraph and a date/time/location
// paragraph.
type frameSegmenter struct{}

func (frameSegmenter) name() string { return "frame" }

func (frameSegmenter) matches(doc *goquery.Document) bool {
	return doc.Find("div.frame").FilterFunction(func(_ int, block *goquery.Selection) bool {
		return block.Find("h1, h2, h3, h4").Length() > 0
	}).Length() > 0
}

func (frameSegmenter) extract(doc *goquery.Document, pageURL string) []candidate {
	candidates := make([]candidate, 0)
	doc.Find("div.frame").Each(func(_ int, block *goquery.Selection) {
		heading := clean(block.Find("h1, h2, h3, h4").First().Text())
		if heading == "" {
			return
		}

		paragraphs := block.Find("p")

		var c candidate
		c.speaker, c.title = splitLeadParagraph(paragraphs.Eq(0))

		// Second paragraph: emphasized spans carry the date and optionally
		// the time; everything else in it is the location.
		meta := paragraphs.Eq(1)
		strongs := meta.Find("strong, b")
		c.rawDate = clean(strongs.Eq(0).Text())
		date, err := event.ParseDate(c.rawDate)
		if err != nil {
			logger.Debug("dropping block without parseable date", logger.Fields{
				"heading": heading,
			})
			logger.IncrCounter("narrative.blocks_dropped")
			return
		}
		c.date = date
		if strongs.Length() > 1 {
			c.timeInfo = stripUhr(clean(strongs.Eq(1).Text()))
		}
		leftovers := meta.Clone()
		leftovers.Find("strong, b").Remove()
		c.location = strings.Trim(clean(leftovers.Text()), " ,")

		name := displayName(heading, heading)
		if c.speaker == "" {
			if before, after, ok := splitHeadingSpeaker(heading); ok {
				if before != "" {
					name = before
				}
				c.speaker = after
			}
		}
		c.seminarName = name

		block.Find("a[href]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
			href, _ := link.Attr("href")
			if href == "" || strings.HasPrefix(href, "mailto:") {
				return true
			}
			c.detailsURL = resolveURL(pageURL, href)
			return false
		})

		candidates = append(candidates, c)
	})
	return candidates
}

// splitLeadParagraph recovers speaker and title from a block's first
// paragraph. The speaker is the text before the italic title span, or
// before the first line break when there is no italic span; the title is
// the italic text, or the text after the break.
func splitLeadParagraph(p *goquery.Selection) (speaker, title string) {
	if len(p.Nodes) == 0 {
		return "", ""
	}
	var before, italic, after strings.Builder
	sawBreak := false
	for n := p.Nodes[0].FirstChild; n != nil; n = n.NextSibling {
		switch {
		case n.Type == html.ElementNode && (n.Data == "em" || n.Data == "i"):
			italic.WriteString(nodeText(n))
		case n.Type == html.ElementNode && n.Data == "br":
			sawBreak = true
		case sawBreak:
			after.WriteString(nodeText(n))
		case italic.Len() == 0:
			before.WriteString(nodeText(n))
		}
	}
	speaker = strings.Trim(clean(before.String()), " ,")
	title = clean(italic.String())
	if title == "" {
		title = clean(after.String())
	}
	return speaker, title
}

// lineSegmenter is the fallback for the older layout: the page is
// flattened to text lines and grouped into blocks by heading keyword
// detection, then label patterns and positional heuristics recover the
// fields.
type lineSegmenter struct{}

func (lineSegmenter) name() string { return "line" }

func (lineSegmenter) matches(doc *goquery.Document) bool { return true }

func (lineSegmenter) extract(doc *goquery.Document, pageURL string) []candidate {
	candidates := make([]candidate, 0)
	for _, block := range groupBlocks(textLines(doc)) {
		if c, ok := extractLineBlock(block); ok {
			candidates = append(candidates, c)
		}
	}
	return candidates
}

// textLines flattens the document to whitespace-normalized text lines,
// one per text node.
func textLines(doc *goquery.Document) []string {
	lines := make([]string, 0)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			lines = append(lines, clean(n.Data))
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return lines
}

// isEventHeading recognizes the lines that start a new event block.
func isEventHeading(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "working lunch") || strings.Contains(lower, "policy lecture") {
		return true
	}
	if strings.Contains(lower, "imfs") {
		for _, keyword := range []string{"lecture", "lunch", "seminar", "talk", "veranstaltung"} {
			if strings.Contains(lower, keyword) {
				return true
			}
		}
	}
	return false
}

// groupBlocks splits the lines into per-event blocks, each starting at a
// heading line. Lines before the first heading are discarded.
func groupBlocks(lines []string) [][]string {
	blocks := make([][]string, 0)
	var current []string
	for _, line := range lines {
		if line == "" {
			continue
		}
		if isEventHeading(line) {
			if current != nil {
				blocks = append(blocks, current)
			}
			current = []string{line}
		} else if current != nil {
			current = append(current, line)
		}
	}
	if current != nil {
		blocks = append(blocks, current)
	}
	return blocks
}

// extractLineBlock applies the label patterns and positional fallbacks to
// one block of text lines. ok is false when the block has no parseable
// date anywhere.
func extractLineBlock(block []string) (candidate, bool) {
	labelled := make(map[string]string)
	for _, rule := range labelRules {
		for _, line := range block {
			if rule.re.MatchString(line) {
				labelled[rule.field] = stripLabel(line, rule.re)
			}
		}
	}

	var c candidate
	rawDateLine := ""
	dated := false
	for _, line := range block {
		cand := event.ExtractDateCandidate(line)
		d, err := event.ParseDate(cand)
		if err != nil {
			continue
		}
		c.date = d
		c.rawDate = cand
		rawDateLine = line
		dated = true
		break
	}
	if !dated {
		logger.IncrCounter("narrative.blocks_dropped")
		return candidate{}, false
	}

	c.timeInfo = labelled["time"]
	timeLine := ""
	if c.timeInfo == "" {
		for _, line := range block {
			if looksLikeTime(line) {
				c.timeInfo = stripUhr(line)
				timeLine = line
				break
			}
		}
	}

	heading := block[0]
	headingLower := strings.ToLower(heading)
	name := displayName(heading, "IMFS Event")
	c.speaker = labelled["speaker"]
	c.title = labelled["title"]

	if c.speaker == "" {
		if before, after, ok := splitHeadingSpeaker(heading); ok {
			if before != "" {
				name = before
			}
			c.speaker = after
		}
	}
	c.seminarName = name

	if c.speaker == "" {
		for _, line := range block[1:] {
			lower := strings.ToLower(line)
			if strings.EqualFold(line, rawDateLine) || line == timeLine {
				continue
			}
			if strings.HasPrefix(lower, "speaker") || strings.HasPrefix(lower, "referent") || strings.HasPrefix(lower, "sprecher") {
				c.speaker = stripLabel(line, labelRules[0].re)
				break
			}
			// ASCII lowering keeps byte offsets, so indexes into lower
			// address the original line.
			if idx := strings.Index(lower, " with "); idx >= 0 && strings.Contains(headingLower, "imfs") {
				c.speaker = strings.TrimSpace(line[idx+len(" with "):])
				break
			}
			if idx := strings.Index(lower, " mit "); idx >= 0 && strings.Contains(headingLower, "imfs") {
				c.speaker = strings.TrimSpace(line[idx+len(" mit "):])
				break
			}
		}
	}

	if c.title == "" {
		for _, line := range block[1:] {
			if strings.EqualFold(line, rawDateLine) || line == timeLine {
				continue
			}
			if metaFieldRe.MatchString(line) || looksLikeTime(line) || fourDigitRe.MatchString(line) {
				continue
			}
			c.title = strings.Trim(line, quoteCutset)
			break
		}
	}

	c.location = labelled["location"]
	if c.location == "" {
		unclassified := make([]string, 0)
		for _, line := range block[1:] {
			if strings.EqualFold(line, rawDateLine) || line == timeLine {
				continue
			}
			if metaSkipRe.MatchString(line) || looksLikeTime(line) || fourDigitRe.MatchString(line) {
				continue
			}
			if c.title != "" && strings.Trim(line, quoteCutset) == c.title {
				continue
			}
			if seriesRe.MatchString(line) {
				continue
			}
			unclassified = append(unclassified, line)
		}
		// Only the last two unclassified lines count as the location;
		// earlier freeform lines (organizer notes and the like) are
		// dropped.
		switch {
		case len(unclassified) > 1:
			c.location = strings.Join(unclassified[len(unclassified)-2:], ", ")
		case len(unclassified) == 1:
			c.location = unclassified[0]
		}
	}

	return c, true
}
