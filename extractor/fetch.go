package extractor

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Fetcher obtains page markup for a URL. It is an interface so the pipeline
// can be exercised in tests without network or browser access.
type Fetcher interface {
	FetchPage(ctx context.Context, pageURL string) (string, error)
}

const (
	primaryFetchTimeout  = 15 * time.Second
	fallbackFetchTimeout = 10 * time.Second
	browserFetchTimeout  = 30 * time.Second
	browserSettleDelay   = 1 * time.Second
	maxRedirects         = 5

	chromiumPath = "/usr/bin/chromium-browser"

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	minimalUserAgent = "Mozilla/5.0 (compatible; WishfundBot/1.0)"
)

// PageFetcher acquires page content via a cascade of strategies: a
// realistic-header GET, a minimal-header retry, and finally a full headless
// browser render. Each strategy's failure is swallowed and logged; only
// exhaustion of all three surfaces an error.
type PageFetcher struct {
	client *http.Client
}

// NewPageFetcher creates a fetcher. The browser is not launched here; it is
// acquired per call so no Chromium process outlives an extraction.
func NewPageFetcher() *PageFetcher {
	return &PageFetcher{
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
	}
}

// FetchPage returns the page markup for pageURL, trying each strategy in
// order until one succeeds.
func (f *PageFetcher) FetchPage(ctx context.Context, pageURL string) (string, error) {
	html, err := f.fetchWithFullHeaders(ctx, pageURL)
	if err == nil {
		return html, nil
	}
	log.Printf("Primary fetch failed for %s: %v, trying minimal headers", pageURL, err)

	html, err = f.fetchWithMinimalHeaders(ctx, pageURL)
	if err == nil {
		return html, nil
	}
	log.Printf("Minimal-header fetch failed for %s: %v, trying headless browser", pageURL, err)

	html, err = f.fetchWithBrowser(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("all fetch strategies failed: %v", err)
	}
	return html, nil
}

// fetchWithFullHeaders performs a GET with a realistic browser header set.
// Any status below 500 counts as fetched: 4xx bodies frequently still carry
// useful markup (soft-blocked pages, bot interstitials).
func (f *PageFetcher) fetchWithFullHeaders(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, primaryFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Cache-Control", "max-age=0")

	return f.do(req, false)
}

// fetchWithMinimalHeaders retries with a bare header set and a shorter
// timeout. A 403 or 429 here means the site actively blocked us; that is a
// failure, not a success, and the browser strategy takes over.
func (f *PageFetcher) fetchWithMinimalHeaders(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, fallbackFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", minimalUserAgent)

	return f.do(req, true)
}

func (f *PageFetcher) do(req *http.Request, failOnBlock bool) (string, error) {
	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if failOnBlock && (resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests) {
		return "", fmt.Errorf("blocked (%d)", resp.StatusCode)
	}
	if resp.StatusCode >= 500 {
		return "", fmt.Errorf("server error (%d)", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %v", err)
	}
	return string(body), nil
}

// fetchWithBrowser renders the page in an isolated headless Chromium
// instance and captures the resulting HTML. The browser is launched and torn
// down inside this call on every exit path, so no instance is ever held
// across requests.
func (f *PageFetcher) fetchWithBrowser(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, browserFetchTimeout)
	defer cancel()

	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Leakless(false)

	// Use system Chromium in Docker, auto-detect locally.
	if _, err := os.Stat(chromiumPath); err == nil {
		l = l.Bin(chromiumPath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("failed to launch browser: %v", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return "", fmt.Errorf("failed to connect to browser: %v", err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			log.Printf("Failed to close browser: %v", err)
		}
		l.Kill()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return "", fmt.Errorf("failed to open page: %v", err)
	}

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("page load failed: %v", err)
	}

	// Brief settle delay for client-side rendering.
	time.Sleep(browserSettleDelay)

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to capture rendered HTML: %v", err)
	}
	return html, nil
}
