package model

import "time"

// Body caps applied by the fetchers. Capped text carries the matching marker.
const (
	MaxPostBodyRunes    = 2000
	MaxArticleBodyRunes = 10000

	TruncatedMarker        = "... [truncated]"
	ContentTruncatedMarker = "... [content truncated]"

	// NoTextPlaceholder stands in for a self post with no body text.
	NoTextPlaceholder = "[No text content available]"

	// DeletedAuthor stands in for a post whose author is gone.
	DeletedAuthor = "[deleted]"
)

// Record is one normalized unit of fetched content, from either source.
// Records are immutable after the fetcher returns them.
type Record struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`

	// Social-source engagement metrics.
	Score       int `json:"score,omitempty"`
	NumComments int `json:"num_comments,omitempty"`

	// Encyclopedic-source metrics.
	PageID    int `json:"pageid,omitempty"`
	Size      int `json:"size,omitempty"`
	WordCount int `json:"wordcount,omitempty"`

	Author     string   `json:"author,omitempty"`
	Categories []string `json:"categories,omitempty"`

	IsSelf    bool   `json:"is_self,omitempty"`
	Permalink string `json:"permalink,omitempty"`

	// CreatedAt is the source timestamp rendered as a human-readable string.
	CreatedAt string `json:"created_at,omitempty"`

	// Related holds best-effort enrichment articles. Only the primary record
	// of a topic batch carries it.
	Related []Record `json:"related_articles,omitempty"`
}

// BatchMeta describes the origin of one fetch batch. Implemented by
// CollectionInfo and TopicInfo.
type BatchMeta interface {
	// Origin identifies the batch source: a collection name or topic string.
	Origin() string
}

// CollectionInfo is the descriptive metadata of a social-source collection.
type CollectionInfo struct {
	Name        string  `json:"name"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Subscribers int     `json:"subscribers"`
	CreatedUTC  float64 `json:"created_utc"`
	Over18      bool    `json:"over18"`
	URL         string  `json:"url"`
}

func (c CollectionInfo) Origin() string { return c.Name }

// TopicInfo summarizes one topic fetch against the encyclopedic source.
type TopicInfo struct {
	Topic      string `json:"topic"`
	SearchTerm string `json:"search_term"`
	NumResults int    `json:"num_results"`
	FetchedAt  string `json:"timestamp"`
}

func (t TopicInfo) Origin() string { return t.Topic }

// NewTopicInfo stamps a TopicInfo with the current time.
func NewTopicInfo(topic string, numResults int) TopicInfo {
	return TopicInfo{
		Topic:      topic,
		SearchTerm: topic,
		NumResults: numResults,
		FetchedAt:  time.Now().UTC().Format(time.RFC3339),
	}
}

// SearchHit is one ranked result from the encyclopedic search API.
type SearchHit struct {
	Title     string `json:"title"`
	PageID    int    `json:"pageid"`
	Snippet   string `json:"snippet"`
	Score     int    `json:"score"`
	Size      int    `json:"size"`
	WordCount int    `json:"wordcount"`
	Timestamp string `json:"timestamp"`
}
