package rank

import (
	"sort"

	"trendfeed/internal/model"
)

// Engine turns a collection of items into ordered trending lists.
// Scores are recomputed on every call; nothing is cached across calls.
type Engine struct {
	scorer *Scorer
}

// NewEngine builds an engine on top of the given scorer.
func NewEngine(s *Scorer) *Engine {
	return &Engine{scorer: s}
}

// Scorer exposes the engine's scorer for classification and table access.
func (e *Engine) Scorer() *Scorer {
	return e.scorer
}

// CategoryRanking pairs a category label with its ranked entries.
type CategoryRanking struct {
	Category string
	Entries  []model.RankedEntry
}

// Rank scores every item, optionally filters to one computed category,
// stable-sorts by total descending, truncates to limit, and assigns
// contiguous 1-based ranks. Empty input or a non-positive limit yields an
// empty list, never an error. Equal totals preserve input order.
func (e *Engine) Rank(items []model.ContentItem, limit int, category string) []model.RankedEntry {
	entries := make([]model.RankedEntry, 0, len(items))
	if limit <= 0 {
		return entries
	}
	for _, it := range items {
		score := e.scorer.Score(it)
		if category != "" && score.Category != category {
			continue
		}
		entries = append(entries, model.RankedEntry{
			Title:       it.Title,
			Link:        it.Link,
			Description: it.Description,
			Published:   it.Published,
			Author:      it.Author,
			SourceID:    it.SourceID,
			Score:       score,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score.Total > entries[j].Score.Total
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// CategoryRankings ranks the items once per declared category plus the
// general bucket, keeping only non-empty results. Output order follows
// the table declaration order, general last.
func (e *Engine) CategoryRankings(items []model.ContentItem, limit int) []CategoryRanking {
	categories := append(e.scorer.Categories(), GeneralCategory)
	out := make([]CategoryRanking, 0, len(categories))
	for _, name := range categories {
		entries := e.Rank(items, limit, name)
		if len(entries) == 0 {
			continue
		}
		out = append(out, CategoryRanking{Category: name, Entries: entries})
	}
	return out
}
