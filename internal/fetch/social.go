// Package fetch turns the upstream JSON APIs into normalized records.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"recast/internal/model"
)

// ValidTimeFilters are the windows accepted by the top-items listing.
var ValidTimeFilters = []string{"day", "week", "month", "year", "all"}

// LinkExtractor pulls readable text out of a link post's outbound URL.
type LinkExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// SocialClient fetches collection listings from the social-source JSON API.
type SocialClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	extractor  LinkExtractor
}

// SocialOption configures the social client.
type SocialOption func(*SocialClient)

// WithSocialBaseURL overrides the API base URL (default: https://www.reddit.com).
func WithSocialBaseURL(base string) SocialOption {
	return func(c *SocialClient) { c.baseURL = base }
}

// WithSocialHTTPClient replaces the HTTP client.
func WithSocialHTTPClient(hc *http.Client) SocialOption {
	return func(c *SocialClient) { c.httpClient = hc }
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) SocialOption {
	return func(c *SocialClient) { c.userAgent = ua }
}

// WithLinkExtractor enables readable-text extraction for link posts that
// carry no body text of their own. Extraction failures fall back to the
// placeholder body; they never fail the batch.
func WithLinkExtractor(e LinkExtractor) SocialOption {
	return func(c *SocialClient) { c.extractor = e }
}

// NewSocialClient creates a social-source fetcher.
func NewSocialClient(opts ...SocialOption) *SocialClient {
	c := &SocialClient{
		baseURL:   "https://www.reddit.com",
		userAgent: "recast/1.0",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type aboutResponse struct {
	Data struct {
		DisplayName       string  `json:"display_name"`
		Title             string  `json:"title"`
		PublicDescription string  `json:"public_description"`
		Subscribers       int     `json:"subscribers"`
		CreatedUTC        float64 `json:"created_utc"`
		Over18            bool    `json:"over18"`
	} `json:"data"`
}

type listingResponse struct {
	Data struct {
		Children []struct {
			Data postData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type postData struct {
	Title       string  `json:"title"`
	Score       int     `json:"score"`
	URL         string  `json:"url"`
	Selftext    string  `json:"selftext"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	Permalink   string  `json:"permalink"`
	IsSelf      bool    `json:"is_self"`
	Author      string  `json:"author"`
}

// CollectionInfo fetches the descriptive metadata of a collection.
func (c *SocialClient) CollectionInfo(ctx context.Context, name string) (model.CollectionInfo, error) {
	const op = "social.CollectionInfo"

	endpoint := fmt.Sprintf("%s/r/%s/about.json", c.baseURL, url.PathEscape(name))
	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return model.CollectionInfo{}, model.E(model.KindSourceUnavailable, op,
			fmt.Errorf("fetching collection %s: %w", name, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return model.CollectionInfo{}, model.Errorf(model.KindSourceNotFound, op,
			"collection %q not found", name)
	}
	if resp.StatusCode != http.StatusOK {
		return model.CollectionInfo{}, model.Errorf(model.KindSourceUnavailable, op,
			"collection %q: HTTP %d", name, resp.StatusCode)
	}

	var about aboutResponse
	if err := json.NewDecoder(resp.Body).Decode(&about); err != nil {
		return model.CollectionInfo{}, model.E(model.KindMalformedResponse, op,
			fmt.Errorf("parsing collection %s: %w", name, err))
	}

	info := model.CollectionInfo{
		Name:        about.Data.DisplayName,
		Title:       about.Data.Title,
		Description: about.Data.PublicDescription,
		Subscribers: about.Data.Subscribers,
		CreatedUTC:  about.Data.CreatedUTC,
		Over18:      about.Data.Over18,
		URL:         fmt.Sprintf("%s/r/%s/", c.baseURL, name),
	}
	if info.Name == "" {
		info.Name = name
	}
	return info, nil
}

// TopItems fetches the top posts of a collection for the given time window,
// normalized into Records, together with the collection metadata.
//
// timeFilter must be one of ValidTimeFilters; anything else fails before a
// network call is made.
func (c *SocialClient) TopItems(ctx context.Context, name string, limit int, timeFilter string) ([]model.Record, model.CollectionInfo, error) {
	const op = "social.TopItems"

	if !validTimeFilter(timeFilter) {
		return nil, model.CollectionInfo{}, model.Errorf(model.KindInvalidParameter, op,
			"invalid time filter %q, valid options are: day, week, month, year, all", timeFilter)
	}

	info, err := c.CollectionInfo(ctx, name)
	if err != nil {
		return nil, model.CollectionInfo{}, err
	}

	endpoint := fmt.Sprintf("%s/r/%s/top.json?t=%s&limit=%d",
		c.baseURL, url.PathEscape(name), timeFilter, limit)
	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, model.CollectionInfo{}, model.E(model.KindSourceUnavailable, op,
			fmt.Errorf("fetching posts from %s: %w", name, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, model.CollectionInfo{}, model.Errorf(model.KindSourceUnavailable, op,
			"fetching posts from %q: HTTP %d", name, resp.StatusCode)
	}

	var listing listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, model.CollectionInfo{}, model.E(model.KindMalformedResponse, op,
			fmt.Errorf("parsing posts from %s: %w", name, err))
	}

	records := make([]model.Record, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		records = append(records, c.normalizePost(ctx, child.Data))
	}

	if len(records) == 0 {
		return nil, model.CollectionInfo{}, model.Errorf(model.KindEmptyResult, op,
			"no posts found in %q with time filter %q", name, timeFilter)
	}

	return records, info, nil
}

// normalizePost maps one raw post into the uniform Record shape.
func (c *SocialClient) normalizePost(ctx context.Context, p postData) model.Record {
	body := p.Selftext
	if body == "" {
		if !p.IsSelf && c.extractor != nil {
			if text, err := c.extractor.Extract(ctx, p.URL); err == nil && text != "" {
				body = text
			}
		}
		if body == "" && p.IsSelf {
			body = model.NoTextPlaceholder
		}
	}
	body = model.TruncateRunes(body, model.MaxPostBodyRunes, model.TruncatedMarker)

	author := p.Author
	if author == "" {
		author = model.DeletedAuthor
	}

	created := time.Unix(int64(p.CreatedUTC), 0).UTC().Format("2006-01-02 15:04:05 UTC")

	return model.Record{
		Title:       p.Title,
		Body:        body,
		URL:         p.URL,
		Score:       p.Score,
		NumComments: p.NumComments,
		Author:      author,
		IsSelf:      p.IsSelf,
		Permalink:   c.baseURL + p.Permalink,
		CreatedAt:   created,
	}
}

func (c *SocialClient) get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	return c.httpClient.Do(req)
}

func validTimeFilter(tf string) bool {
	for _, v := range ValidTimeFilters {
		if tf == v {
			return true
		}
	}
	return false
}
