package model

import "time"

// SnapshotMeta describes one orchestrator run.
type SnapshotMeta struct {
	GeneratedAt      time.Time `json:"generatedAt"`
	TimeRangeHours   int       `json:"timeRangeHours"`
	TotalSourceItems int       `json:"totalSourceItems"`
	AISummaryEnabled bool      `json:"aiSummaryEnabled"`
}

// TrendingList is one titled, ordered ranking.
type TrendingList struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Items       []RankedEntry `json:"items"`
}

// TrendingSnapshot is the complete output of one run. Categories holds only
// the categories that ended up with at least one entry, in table
// declaration order.
type TrendingSnapshot struct {
	Meta       SnapshotMeta          `json:"meta"`
	General    TrendingList          `json:"general"`
	Categories Ordered[TrendingList] `json:"categories"`
}

// SimplifiedEntry is the reduced projection of a RankedEntry consumed by
// presentation layers: no raw body, score collapsed to the total.
type SimplifiedEntry struct {
	Rank      int        `json:"rank"`
	Title     string     `json:"title"`
	Link      string     `json:"link"`
	Summary   string     `json:"summary"`
	Published *time.Time `json:"published"`
	Author    string     `json:"author"`
	Score     float64    `json:"score"`
}

// SimplifiedList mirrors TrendingList with reduced entries.
type SimplifiedList struct {
	Title string            `json:"title"`
	Items []SimplifiedEntry `json:"items"`
}

// SimplifiedSnapshot is the reduced projection of a TrendingSnapshot.
type SimplifiedSnapshot struct {
	Meta       SnapshotMeta            `json:"meta"`
	General    SimplifiedList          `json:"general"`
	Categories Ordered[SimplifiedList] `json:"categories"`
}
