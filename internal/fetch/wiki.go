package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"recast/internal/model"
)

// userAgents is the pool the wiki client picks from, one per request.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.4 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/112.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/112.0.0.0 Safari/537.36",
}

// defaultRelatedLimit is how many related articles to resolve for the
// primary record of a topic batch.
const defaultRelatedLimit = 3

// WikiClient fetches search results and articles from the encyclopedic
// query API.
type WikiClient struct {
	baseURL    string
	httpClient *http.Client
	pacing     time.Duration
}

// WikiOption configures the wiki client.
type WikiOption func(*WikiClient)

// WithWikiBaseURL overrides the query API endpoint.
func WithWikiBaseURL(base string) WikiOption {
	return func(c *WikiClient) { c.baseURL = base }
}

// WithWikiHTTPClient replaces the HTTP client.
func WithWikiHTTPClient(hc *http.Client) WikiOption {
	return func(c *WikiClient) { c.httpClient = hc }
}

// WithPacingDelay sets the fixed sleep between sequential calls in the
// related and topic-batch loops. Zero disables pacing (used in tests).
func WithPacingDelay(d time.Duration) WikiOption {
	return func(c *WikiClient) { c.pacing = d }
}

// NewWikiClient creates an encyclopedic-source fetcher.
func NewWikiClient(opts ...WikiOption) *WikiClient {
	c := &WikiClient{
		baseURL: "https://en.wikipedia.org/w/api.php",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		pacing: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title     string  `json:"title"`
			PageID    int     `json:"pageid"`
			Snippet   string  `json:"snippet"`
			Score     float64 `json:"score"`
			Size      int     `json:"size"`
			WordCount int     `json:"wordcount"`
			Timestamp string  `json:"timestamp"`
		} `json:"search"`
	} `json:"query"`
}

type pagesResponse struct {
	Query struct {
		Pages map[string]wikiPage `json:"pages"`
	} `json:"query"`
}

type wikiPage struct {
	PageID     int     `json:"pageid"`
	Title      string  `json:"title"`
	Extract    string  `json:"extract"`
	FullURL    string  `json:"fullurl"`
	Touched    string  `json:"touched"`
	Missing    *string `json:"missing"`
	Categories []struct {
		Title string `json:"title"`
	} `json:"categories"`
	Links []struct {
		Title string `json:"title"`
	} `json:"links"`
}

// Search returns ranked search hits for a topic. Snippet markup is stripped.
func (c *WikiClient) Search(ctx context.Context, topic string, limit int) ([]model.SearchHit, error) {
	const op = "wiki.Search"

	params := url.Values{
		"action":   {"query"},
		"format":   {"json"},
		"list":     {"search"},
		"srsearch": {topic},
		"srlimit":  {strconv.Itoa(limit)},
		"srprop":   {"snippet|titlesnippet|sectiontitle|categorysnippet|score"},
		"utf8":     {"1"},
	}

	var sr searchResponse
	if err := c.query(ctx, op, params, &sr); err != nil {
		return nil, err
	}

	hits := make([]model.SearchHit, 0, len(sr.Query.Search))
	for _, r := range sr.Query.Search {
		hits = append(hits, model.SearchHit{
			Title:     r.Title,
			PageID:    r.PageID,
			Snippet:   stripMarkup(r.Snippet),
			Score:     int(r.Score),
			Size:      r.Size,
			WordCount: r.WordCount,
			Timestamp: r.Timestamp,
		})
	}

	if len(hits) == 0 {
		return nil, model.Errorf(model.KindNoResults, op,
			"no articles found for topic %q", topic)
	}
	return hits, nil
}

// Intro fetches the introductory section of a page as a Record.
func (c *WikiClient) Intro(ctx context.Context, pageID int) (model.Record, error) {
	return c.article(ctx, "wiki.Intro", pageID, true)
}

// Full fetches the complete article body as a Record, capped at the article
// body limit with a truncation marker.
func (c *WikiClient) Full(ctx context.Context, pageID int) (model.Record, error) {
	rec, err := c.article(ctx, "wiki.Full", pageID, false)
	if err != nil {
		return model.Record{}, err
	}
	rec.Body = model.TruncateRunes(rec.Body, model.MaxArticleBodyRunes, model.ContentTruncatedMarker)
	return rec, nil
}

func (c *WikiClient) article(ctx context.Context, op string, pageID int, introOnly bool) (model.Record, error) {
	params := url.Values{
		"action":          {"query"},
		"format":          {"json"},
		"prop":            {"extracts|categories|links|info|images"},
		"pageids":         {strconv.Itoa(pageID)},
		"explaintext":     {"1"},
		"exsectionformat": {"plain"},
		"inprop":          {"url|displaytitle"},
		"cllimit":         {"10"},
		"pllimit":         {"10"},
	}
	if introOnly {
		params.Set("exintro", "1")
	}

	var pr pagesResponse
	if err := c.query(ctx, op, params, &pr); err != nil {
		return model.Record{}, err
	}

	page, ok := pr.Query.Pages[strconv.Itoa(pageID)]
	if !ok || page.Missing != nil {
		return model.Record{}, model.Errorf(model.KindRecordNotFound, op,
			"article with page ID %d not found", pageID)
	}

	pageURL := page.FullURL
	if pageURL == "" {
		pageURL = fmt.Sprintf("https://en.wikipedia.org/?curid=%d", pageID)
	}

	categories := make([]string, 0, len(page.Categories))
	for _, cat := range page.Categories {
		categories = append(categories, strings.TrimPrefix(cat.Title, "Category:"))
	}

	return model.Record{
		Title:      page.Title,
		Body:       page.Extract,
		URL:        pageURL,
		PageID:     pageID,
		Categories: categories,
		CreatedAt:  page.Touched,
	}, nil
}

// Related resolves up to limit additional Records from the outbound links of
// a page. Links into meta, template, or category namespaces are dropped.
// Resolution failures for individual links are skipped; this is best-effort
// enrichment, not a required result.
func (c *WikiClient) Related(ctx context.Context, pageID, limit int) ([]model.Record, error) {
	const op = "wiki.Related"

	params := url.Values{
		"action":  {"query"},
		"format":  {"json"},
		"prop":    {"links"},
		"pageids": {strconv.Itoa(pageID)},
		"pllimit": {"30"},
	}

	var pr pagesResponse
	if err := c.query(ctx, op, params, &pr); err != nil {
		return nil, err
	}

	page := pr.Query.Pages[strconv.Itoa(pageID)]

	var titles []string
	for _, link := range page.Links {
		if relatedLinkTitle(link.Title) {
			titles = append(titles, link.Title)
		}
	}
	if len(titles) > limit {
		titles = titles[:limit]
	}

	related := make([]model.Record, 0, len(titles))
	for _, title := range titles {
		hits, err := c.Search(ctx, fmt.Sprintf("intitle:%q", title), 1)
		if err != nil || len(hits) == 0 {
			continue
		}
		rec, err := c.Intro(ctx, hits[0].PageID)
		if err != nil {
			continue
		}
		related = append(related, rec)
		c.pace(ctx)
	}
	return related, nil
}

// relatedLinkTitle reports whether a link title points at a plain article
// rather than a meta, template, or category page.
func relatedLinkTitle(title string) bool {
	return !strings.Contains(title, ":") &&
		!strings.Contains(title, "Wikipedia") &&
		!strings.Contains(title, "Template") &&
		!strings.Contains(title, "Category")
}

// TopicContent assembles the full batch for a topic: the first search result
// fetched in full (with related enrichment when requested), the rest as
// intros, plus the topic metadata.
//
// Per-article failures are fatal: a missing primary article invalidates the
// whole batch, unlike the best-effort related enrichment.
func (c *WikiClient) TopicContent(ctx context.Context, topic string, numArticles int, includeRelated bool) ([]model.Record, model.TopicInfo, error) {
	// Search with a small buffer beyond what we need.
	hits, err := c.Search(ctx, topic, numArticles+2)
	if err != nil {
		return nil, model.TopicInfo{}, err
	}

	info := model.NewTopicInfo(topic, len(hits))

	if len(hits) > numArticles {
		hits = hits[:numArticles]
	}

	records := make([]model.Record, 0, len(hits))
	for i, hit := range hits {
		var rec model.Record
		if i == 0 {
			rec, err = c.Full(ctx, hit.PageID)
		} else {
			rec, err = c.Intro(ctx, hit.PageID)
		}
		if err != nil {
			return nil, model.TopicInfo{}, err
		}

		if i == 0 && includeRelated {
			related, err := c.Related(ctx, hit.PageID, defaultRelatedLimit)
			if err != nil {
				return nil, model.TopicInfo{}, err
			}
			rec.Related = related
		}

		records = append(records, rec)
		c.pace(ctx)
	}

	return records, info, nil
}

// query performs one GET against the query API and decodes the JSON payload.
func (c *WikiClient) query(ctx context.Context, op string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return model.E(model.KindSourceUnavailable, op, err)
	}
	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.E(model.KindSourceUnavailable, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Errorf(model.KindSourceUnavailable, op, "HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return model.E(model.KindMalformedResponse, op, err)
	}
	return nil
}

// pace sleeps for the configured delay between sequential remote calls,
// returning early if the context is done.
func (c *WikiClient) pace(ctx context.Context) {
	if c.pacing <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(c.pacing):
	}
}

// stripMarkup removes HTML markup from a search snippet, leaving plain text.
func stripMarkup(snippet string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snippet))
	if err != nil {
		return snippet
	}
	return doc.Text()
}
