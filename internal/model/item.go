package model

import "time"

// ContentItem is a single ingested feed entry. Items are produced by the
// ingestion layer and treated as read-only by the ranking pipeline.
// Published is nil when the source never provided a timestamp.
type ContentItem struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Description string     `json:"description"`
	Published   *time.Time `json:"published"`
	Author      string     `json:"author"`
	GUID        string     `json:"guid"`
	SourceID    string     `json:"source_id"`
}

// ContentScore is the multi-factor score assigned to one item.
// All values are rounded to two decimals and live in [0,1].
type ContentScore struct {
	Total        float64 `json:"total"`
	Freshness    float64 `json:"freshness"`
	Quality      float64 `json:"quality"`
	Popularity   float64 `json:"popularity"`
	SourceWeight float64 `json:"sourceWeight"`
	Category     string  `json:"category"`
}

// RankedEntry is one row of a trending list: the item fields flattened into
// the persisted shape, plus its score and 1-based rank. Summary is empty
// unless enrichment filled it in.
type RankedEntry struct {
	Rank        int          `json:"rank"`
	Title       string       `json:"title"`
	Link        string       `json:"link"`
	Description string       `json:"description"`
	Summary     string       `json:"summary"`
	Published   *time.Time   `json:"published"`
	Author      string       `json:"author"`
	SourceID    string       `json:"sourceId"`
	Score       ContentScore `json:"score"`
}

// RefreshResult reports the outcome of refreshing a single source.
type RefreshResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
