// Package jobpostings fetches job posting pages and extracts the text
// the matcher needs.
package jobpostings

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// DefaultUserAgent identifies posting fetches to job boards.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeInsights/1.0)"

// MinContentLength is the extracted text length below which a page is
// assumed to be JavaScript rendered and handed to the headless browser.
const MinContentLength = 500

// postingSelectors are tried in order to locate the posting body.
var postingSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	"#job-content",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

// Posting is the text content of one job posting page.
type Posting struct {
	URL   string
	Title string
	Text  string
}

// FetchError represents a failure retrieving a job posting
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Fetcher retrieves job postings over plain HTTP, optionally falling
// back to a headless browser for pages that render client side.
type Fetcher struct {
	client     *http.Client
	timeout    time.Duration
	useBrowser bool
	logger     *zap.Logger
}

// NewFetcher creates a Fetcher. With useBrowser set, pages whose static
// text comes back shorter than MinContentLength are re-rendered in
// headless Chrome.
func NewFetcher(timeout time.Duration, useBrowser bool, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		client:     &http.Client{Timeout: timeout},
		timeout:    timeout,
		useBrowser: useBrowser,
		logger:     logger,
	}
}

// Fetch retrieves one posting page and extracts its title and text.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) (*Posting, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &FetchError{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	html, err := f.get(ctx, urlStr)
	if err != nil {
		return nil, err
	}

	posting, err := extractPosting(urlStr, html)
	if err != nil {
		return nil, err
	}

	if !f.useBrowser || len(strings.TrimSpace(posting.Text)) >= MinContentLength {
		return posting, nil
	}

	f.logger.Debug("static fetch too thin, rendering with browser",
		zap.String("url", urlStr), zap.Int("bytes", len(posting.Text)))

	rendered, err := renderWithBrowser(ctx, urlStr, f.timeout)
	if err != nil {
		f.logger.Warn("browser rendering failed, keeping static content", zap.Error(err))
		return posting, nil
	}

	renderedPosting, err := extractPosting(urlStr, rendered)
	if err != nil {
		return posting, nil
	}
	return renderedPosting, nil
}

func (f *Fetcher) get(ctx context.Context, urlStr string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &FetchError{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: urlStr, Message: "failed to read response body", Cause: err}
	}
	return string(body), nil
}

// extractPosting pulls the page title and main text out of posting HTML.
func extractPosting(urlStr, html string) (*Posting, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &FetchError{URL: urlStr, Message: "failed to parse HTML", Cause: err}
	}

	// Strip navigation chrome and other noise before extracting text
	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup").Remove()

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	var content *goquery.Selection
	for _, selector := range postingSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	return &Posting{
		URL:   urlStr,
		Title: title,
		Text:  collapseBlankLines(content.Text()),
	}, nil
}

func collapseBlankLines(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
