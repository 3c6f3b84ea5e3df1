package trending

import (
	"trendfeed/internal/model"
	"trendfeed/internal/rank"
)

// Truncation lengths for entries that carry no AI summary: the general
// list gets more room than the denser category lists.
const (
	generalSummaryLen  = 150
	categorySummaryLen = 100
)

// Simplify reduces a snapshot to the projection the presentation layer
// reads: raw bodies dropped, the score collapsed to its total, and the
// summary slot filled with a truncated description when enrichment left
// it empty.
func Simplify(snap *model.TrendingSnapshot) *model.SimplifiedSnapshot {
	out := &model.SimplifiedSnapshot{
		Meta: snap.Meta,
		General: model.SimplifiedList{
			Title: snap.General.Title,
			Items: simplifyEntries(snap.General.Items, generalSummaryLen),
		},
	}
	for _, name := range snap.Categories.Keys() {
		list, _ := snap.Categories.Get(name)
		out.Categories.Set(name, model.SimplifiedList{
			Title: list.Title,
			Items: simplifyEntries(list.Items, categorySummaryLen),
		})
	}
	return out
}

func simplifyEntries(entries []model.RankedEntry, truncateAt int) []model.SimplifiedEntry {
	out := make([]model.SimplifiedEntry, 0, len(entries))
	for _, e := range entries {
		summary := e.Summary
		if summary == "" {
			summary = truncateText(rank.StripHTML(e.Description), truncateAt)
		}
		out = append(out, model.SimplifiedEntry{
			Rank:      e.Rank,
			Title:     e.Title,
			Link:      e.Link,
			Summary:   summary,
			Published: e.Published,
			Author:    e.Author,
			Score:     e.Score.Total,
		})
	}
	return out
}

func truncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
