// Package scraper finds the cheapest current eBay listing for a game so
// the catalog can track a realistic resale price.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// ErrNoListings means the search page contained no parseable price.
var ErrNoListings = errors.New("scraper: no priced listings found")

// PriceSource yields the lowest current price for a title/platform pair.
type PriceSource interface {
	LowestPrice(ctx context.Context, title, platform string) (float64, error)
}

const defaultSearchURL = "https://www.ebay.com/sch/i.html"

// EbayScraper queries the eBay search page sorted by lowest price and
// takes the minimum of all listed prices.
type EbayScraper struct {
	httpClient *http.Client
	searchURL  string
	userAgent  string
}

// Option configures an EbayScraper.
type Option func(*EbayScraper)

// WithSearchURL overrides the search endpoint, mainly for tests.
func WithSearchURL(u string) Option {
	return func(s *EbayScraper) { s.searchURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *EbayScraper) { s.httpClient = c }
}

func NewEbayScraper(opts ...Option) *EbayScraper {
	s := &EbayScraper{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		searchURL:  defaultSearchURL,
		userAgent:  "Mozilla/5.0",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LowestPrice fetches the search results for "title platform" and returns
// the minimum listed price.
func (s *EbayScraper) LowestPrice(ctx context.Context, title, platform string) (float64, error) {
	query := strings.TrimSpace(title + " " + platform)
	u := fmt.Sprintf("%s?_nkw=%s&_sop=15", s.searchURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("scraper: build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("scraper: fetch search page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("scraper: search page returned status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("scraper: parse search page: %w", err)
	}

	prices := collectPrices(doc)
	if len(prices) == 0 {
		return 0, ErrNoListings
	}
	min := prices[0]
	for _, p := range prices[1:] {
		if p < min {
			min = p
		}
	}
	return min, nil
}

// collectPrices walks the document for elements carrying the listing
// price class and parses their text content.
func collectPrices(n *html.Node) []float64 {
	var prices []float64
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "s-item__price") {
			if p, ok := parsePrice(textContent(n)); ok {
				prices = append(prices, p)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return prices
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}

// parsePrice extracts the leading numeric value from strings like
// "$21.26", "$15.00 to $30.00" or "1,299.99".
func parsePrice(text string) (float64, bool) {
	cleaned := strings.ReplaceAll(text, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return 0, false
	}
	p, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	return p, true
}
