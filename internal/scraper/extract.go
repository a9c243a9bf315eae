package scraper

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Provenance strings recorded on every emitted event.
const (
	sourceWiwi = "Goethe University Frankfurt"
	sourceIMFS = "IMFS Frankfurt"
)

// labelRule maps a label-prefix pattern to the field it announces. The
// rules form an ordered table so that new page dialects are a data change.
type labelRule struct {
	re    *regexp.Regexp
	field string
}

var labelRules = []labelRule{
	{regexp.MustCompile(`(?i)^(?:Speaker|Referent(?:in)?|Sprecher(?:in)?)[\s:–-]+`), "speaker"},
	{regexp.MustCompile(`(?i)^(?:Topic|Titel|Title|Subject)[\s:–-]+`), "title"},
	{regexp.MustCompile(`(?i)^(?:Time|Uhrzeit|Zeit|Wann)[\s:–-]+`), "time"},
	{regexp.MustCompile(`(?i)^(?:Location|Ort|Place|Wo)[\s:–-]+`), "location"},
	{regexp.MustCompile(`(?i)^(?:Date|Datum)[\s:–-]+`), "date"},
}

// anyLabelRe strips whichever field label starts a detail-page value,
// including the English "When"/"Where" variants used there.
var anyLabelRe = regexp.MustCompile(`(?i)^(?:Speaker|Referent(?:in)?|Sprecher(?:in)?|Topic|Titel|Title|Subject|Time|Uhrzeit|Zeit|Wann|When|Location|Ort|Place|Wo|Where|Date|Datum)[\s:–-]+`)

var (
	timeTokenRe = regexp.MustCompile(`\d{1,2}:\d{2}`)
	uhrWordRe   = regexp.MustCompile(`(?i)\bUhr\b`)
)

// stripLabel removes a matched label prefix from a line.
func stripLabel(line string, re *regexp.Regexp) string {
	if loc := re.FindStringIndex(line); loc != nil {
		return strings.TrimSpace(line[loc[1]:])
	}
	return strings.TrimSpace(line)
}

// clean collapses all whitespace runs (NBSP included, strings.Fields
// splits on unicode space) to single spaces and trims the ends.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// timeToken pulls the bare HH:MM out of text like "ab 14:00 Uhr s.t.".
func timeToken(s string) string {
	return timeTokenRe.FindString(s)
}

// looksLikeTime reports whether a line contains a clock time.
func looksLikeTime(s string) bool {
	return timeTokenRe.MatchString(s)
}

// stripUhr removes the German "Uhr" marker from a time string.
func stripUhr(s string) string {
	return strings.TrimSpace(uhrWordRe.ReplaceAllString(s, ""))
}

// resolveURL makes href absolute against the page it was found on. The
// source sites emit origin-relative paths without a leading slash
// ("abteilungen/...html" meaning "/abteilungen/...html"), so relative
// hrefs resolve against the origin rather than the page directory.
func resolveURL(pageURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if u.IsAbs() {
		return href
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return base.Scheme + ":" + href
	}
	return base.Scheme + "://" + base.Host + "/" + strings.TrimPrefix(href, "/")
}

// nodeText collects the visible text beneath a node, the way a plain text
// render of the subtree would.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
