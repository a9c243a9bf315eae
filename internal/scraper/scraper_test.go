package scraper

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// fakeFetcher serves canned HTML from a URL map and counts fetches.
type fakeFetcher struct {
	pages map[string]string
	calls map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages: make(map[string]string),
		calls: make(map[string]int),
	}
}

func (f *fakeFetcher) serve(url, body string) {
	f.pages[url] = body
}

func (f *fakeFetcher) serveFixture(t *testing.T, url, name string) {
	t.Helper()
	f.pages[url] = loadFixture(t, name)
}

func (f *fakeFetcher) Fetch(url string) (*goquery.Document, error) {
	f.calls[url]++
	body, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("no response for %s", url)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(body))
}

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/" + name)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return string(data)
}
