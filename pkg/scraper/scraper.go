// Package scraper provides functionality to fetch league pages and discover match report links
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// MatchReportPath identifies links to individual match reports on a league page
const MatchReportPath = "serieoppsett_viskamper_rapport.php"

// ErrLeagueNameNotFound is returned when the league listing does not link to itself
var ErrLeagueNameNotFound = errors.New("league name not found in page")

// HTTPClient is used for every request made by the collector
var HTTPClient = &http.Client{
	Timeout: 30 * time.Second,
}

// FetchURL downloads the HTML content from a URL and returns it as a string
func FetchURL(ctx context.Context, url string) (string, error) {
	log.Printf("Fetching URL: %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	resp, err := HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error fetching URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("non-200 status code: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	return string(body), nil
}

// FetchDocument downloads a page and parses it with goquery
func FetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	htmlContent, err := FetchURL(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML from %s: %w", url, err)
	}
	return doc, nil
}

// ExtractLeagueName finds the display name of the league. The listing page
// links to itself with an href equal to the last path segment of its own URL.
func ExtractLeagueName(doc *goquery.Document, leagueURL string) (string, error) {
	self := leagueURL[strings.LastIndex(leagueURL, "/")+1:]

	link := doc.Find("a").FilterFunction(func(i int, s *goquery.Selection) bool {
		href, exists := s.Attr("href")
		return exists && href == self
	}).First()

	if link.Length() == 0 {
		return "", ErrLeagueNameNotFound
	}
	return strings.TrimSpace(link.Text()), nil
}

// ExtractMatchLinks extracts links to match report pages in document order
func ExtractMatchLinks(doc *goquery.Document) []string {
	var links []string

	doc.Find("a").Each(func(i int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists {
			return
		}
		if strings.Contains(href, MatchReportPath) {
			links = append(links, href)
		}
	})

	log.Printf("Extracted %d match report links", len(links))
	return links
}

// ResolveRelativeURL resolves a relative URL to an absolute URL
func ResolveRelativeURL(baseURL, relativeURL string) string {
	// Check if the relative URL is already an absolute URL
	if strings.HasPrefix(relativeURL, "http://") || strings.HasPrefix(relativeURL, "https://") {
		return relativeURL
	}

	if !strings.HasPrefix(baseURL, "https://") && !strings.HasPrefix(baseURL, "http://") {
		baseURL = "https://" + baseURL
	}

	// Drop the query string so it cannot hide the last slash
	if q := strings.Index(baseURL, "?"); q >= 0 {
		baseURL = baseURL[:q]
	}

	hostStart := strings.Index(baseURL, "://") + len("://")

	// Root-relative links resolve against scheme and host only
	if strings.HasPrefix(relativeURL, "/") {
		origin := baseURL
		if slash := strings.Index(baseURL[hostStart:], "/"); slash >= 0 {
			origin = baseURL[:hostStart+slash]
		}
		return origin + relativeURL
	}

	// Get base directory by removing the filename component
	baseDir := baseURL
	lastSlashIndex := strings.LastIndex(baseURL, "/")
	if lastSlashIndex >= hostStart && lastSlashIndex < len(baseURL)-1 {
		baseDir = baseURL[:lastSlashIndex+1]
	} else if !strings.HasSuffix(baseDir, "/") {
		baseDir += "/"
	}

	return baseDir + relativeURL
}
