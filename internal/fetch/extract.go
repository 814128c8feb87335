package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	nurl "net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

const (
	// minExtractLength rejects pages that are likely login walls, cookie
	// walls, or empty shells.
	minExtractLength = 100
	// maxExtractBodySize caps the HTTP response body read (5MB).
	maxExtractBodySize = 5 * 1024 * 1024
)

// ReadabilityExtractor fetches a web page and extracts its readable text.
// It backs the optional link-post enrichment on the social fetcher.
type ReadabilityExtractor struct {
	client *http.Client
}

// NewReadabilityExtractor creates an HTTP-backed readable-text extractor.
func NewReadabilityExtractor() *ReadabilityExtractor {
	return &ReadabilityExtractor{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Extract fetches the URL and returns the main readable text.
func (e *ReadabilityExtractor) Extract(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	// A realistic browser User-Agent avoids blocks on many sites.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxExtractBodySize))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	parsedURL, _ := nurl.Parse(url)
	article, err := readability.FromReader(strings.NewReader(string(body)), parsedURL)
	if err != nil {
		return "", fmt.Errorf("readability: %w", err)
	}

	text := normalizeWhitespace(article.TextContent)
	if len(text) < minExtractLength {
		return "", fmt.Errorf("extracted content too short (%d chars), possibly blocked or empty page", len(text))
	}
	return text, nil
}

var (
	multiSpace   = regexp.MustCompile(`[ \t]+`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
)

func normalizeWhitespace(s string) string {
	s = strings.TrimSpace(s)
	s = multiSpace.ReplaceAllString(s, " ")
	s = multiNewline.ReplaceAllString(s, "\n\n")
	return s
}
