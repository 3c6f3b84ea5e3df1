package rank

import (
	"testing"
	"time"

	"trendfeed/internal/model"
)

// testTables gives each category a single unambiguous keyword so tests can
// steer classification, and spreads source weights to steer totals.
func testTables() Tables {
	return Tables{
		Categories: []CategoryKeywords{
			{Category: "alpha", Keywords: []string{"qqq"}},
			{Category: "beta", Keywords: []string{"www"}},
		},
		SourceWeights: []SourceWeight{
			{Match: "strong", Weight: 1.0},
			{Match: "weak", Weight: 0.2},
		},
		DefaultWeight: 0.6,
	}
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	s := NewScorer(testTables())
	s.Now = fixedClock(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	return NewEngine(s)
}

func TestRankOrdersAndAssignsContiguousRanks(t *testing.T) {
	e := testEngine(t)
	items := []model.ContentItem{
		{Title: "weak source qqq", SourceID: "weak.example"},
		{Title: "strong source qqq", SourceID: "strong.example"},
		{Title: "default source qqq", SourceID: "other.example"},
	}

	got := e.Rank(items, 10, "")
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, entry := range got {
		if entry.Rank != i+1 {
			t.Errorf("entry %d rank = %d, want %d", i, entry.Rank, i+1)
		}
		if i > 0 && got[i-1].Score.Total < entry.Score.Total {
			t.Errorf("totals not non-increasing at %d: %v < %v", i, got[i-1].Score.Total, entry.Score.Total)
		}
	}
	if got[0].SourceID != "strong.example" {
		t.Errorf("top entry from %q, want strong.example", got[0].SourceID)
	}
}

func TestRankStableOnEqualTotals(t *testing.T) {
	e := testEngine(t)
	items := []model.ContentItem{
		{Title: "first qqq", SourceID: "same.example"},
		{Title: "secnd qqq", SourceID: "same.example"},
		{Title: "third qqq", SourceID: "same.example"},
	}
	got := e.Rank(items, 10, "")
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	want := []string{"first qqq", "secnd qqq", "third qqq"}
	for i, w := range want {
		if got[i].Title != w {
			t.Errorf("position %d = %q, want %q (input order must hold on ties)", i, got[i].Title, w)
		}
	}
}

func TestRankTruncatesToLimit(t *testing.T) {
	e := testEngine(t)
	items := make([]model.ContentItem, 7)
	for i := range items {
		items[i] = model.ContentItem{Title: "qqq item", SourceID: "x"}
	}
	got := e.Rank(items, 3, "")
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[2].Rank != 3 {
		t.Errorf("last rank = %d, want 3", got[2].Rank)
	}
}

func TestRankEdgeCases(t *testing.T) {
	e := testEngine(t)

	if got := e.Rank(nil, 10, ""); len(got) != 0 {
		t.Errorf("empty input: len = %d, want 0", len(got))
	}
	items := []model.ContentItem{{Title: "qqq"}}
	if got := e.Rank(items, 0, ""); len(got) != 0 {
		t.Errorf("limit 0: len = %d, want 0", len(got))
	}
	if got := e.Rank(items, -5, ""); len(got) != 0 {
		t.Errorf("negative limit: len = %d, want 0", len(got))
	}
}

func TestRankCategoryFilter(t *testing.T) {
	e := testEngine(t)
	items := []model.ContentItem{
		{Title: "about qqq things"},
		{Title: "about www things"},
		{Title: "about nothing"},
	}

	got := e.Rank(items, 10, "beta")
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Title != "about www things" {
		t.Errorf("entry = %q, want the beta item", got[0].Title)
	}
	if got[0].Rank != 1 {
		t.Errorf("rank = %d, want 1", got[0].Rank)
	}
}

func TestCategoryRankingsOmitEmptyAndKeepOrder(t *testing.T) {
	e := testEngine(t)
	items := []model.ContentItem{
		{Title: "plain item"},
		{Title: "www topic"},
	}

	got := e.CategoryRankings(items, 10)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (alpha omitted)", len(got))
	}
	if got[0].Category != "beta" || got[1].Category != GeneralCategory {
		t.Errorf("order = [%s %s], want [beta general]", got[0].Category, got[1].Category)
	}
	for _, cr := range got {
		if len(cr.Entries) == 0 {
			t.Errorf("category %s present with no entries", cr.Category)
		}
	}
}
