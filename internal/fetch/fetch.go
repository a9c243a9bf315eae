package fetch

import (
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// UserAgent identifies the scraper to the source sites.
	UserAgent = "seminar-events/1.0 (github.com/sbruckner/seminar-events)"

	// DefaultTimeout bounds every page fetch.
	DefaultTimeout = 30 * time.Second
)

// Fetcher retrieves a URL and returns the parsed document. Extractors
// depend on this interface so tests can substitute canned documents.
type Fetcher interface {
	Fetch(url string) (*goquery.Document, error)
}

// Client is the HTTP-backed Fetcher used in real runs.
type Client struct {
	http *http.Client
}

// NewClient creates a Client with the given timeout; zero means
// DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves url and parses the response body as HTML.
func (c *Client) Fetch(url string) (*goquery.Document, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: unexpected status code: %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}
