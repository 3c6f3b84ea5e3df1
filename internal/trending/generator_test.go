package trending

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"trendfeed/internal/model"
	"trendfeed/internal/rank"
)

type fakeFeeds struct {
	items       []model.ContentItem
	itemsErr    error
	refreshed   int
	refreshRes  map[string]model.RefreshResult
	lastWindow  int
	recentCalls int
}

func (f *fakeFeeds) RefreshAll(ctx context.Context) map[string]model.RefreshResult {
	f.refreshed++
	if f.refreshRes != nil {
		return f.refreshRes
	}
	return map[string]model.RefreshResult{}
}

func (f *fakeFeeds) RecentItems(ctx context.Context, hours int) ([]model.ContentItem, error) {
	f.recentCalls++
	f.lastWindow = hours
	return f.items, f.itemsErr
}

type fakeStore struct {
	saves   int
	saveErr error
	full    *model.TrendingSnapshot
	simple  *model.SimplifiedSnapshot
}

func (s *fakeStore) Save(full *model.TrendingSnapshot, simple *model.SimplifiedSnapshot) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.full = full
	s.simple = simple
	return nil
}

func testGenerator(feeds *fakeFeeds, store *fakeStore, assistant *fakeAssistant) *Generator {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	scorer := rank.NewScorer(rank.Tables{
		Categories: []rank.CategoryKeywords{
			{Category: "alpha", Keywords: []string{"qqq"}},
			{Category: "beta", Keywords: []string{"www"}},
		},
		DefaultWeight: 0.6,
	})
	scorer.Now = func() time.Time { return now }
	enricher := NewEnricher(nil, 0, 150)
	if assistant != nil {
		enricher = NewEnricher(assistant, 0, 150)
	}
	return &Generator{
		Feeds:    feeds,
		Engine:   rank.NewEngine(scorer),
		Enricher: enricher,
		Store:    store,
		Now:      func() time.Time { return now },
	}
}

func TestGenerateEmptyCandidateSet(t *testing.T) {
	feeds := &fakeFeeds{}
	store := &fakeStore{}
	g := testGenerator(feeds, store, nil)

	snap, err := g.Generate(context.Background(), Options{Hours: 12, TopCount: 5})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(snap.General.Items) != 0 {
		t.Errorf("general items = %d, want 0", len(snap.General.Items))
	}
	if snap.General.Items == nil {
		t.Error("general items is nil, want empty slice")
	}
	if snap.Categories.Len() != 0 {
		t.Errorf("categories = %d, want 0", snap.Categories.Len())
	}
	if snap.Meta.TimeRangeHours != 12 || snap.Meta.TotalSourceItems != 0 {
		t.Errorf("meta = %+v, want fully populated", snap.Meta)
	}
	if snap.Meta.GeneratedAt.IsZero() {
		t.Error("meta.generatedAt is zero")
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1 (empty snapshot still persisted)", store.saves)
	}
}

func TestGenerateRanksAndAssembles(t *testing.T) {
	pub := time.Date(2026, 3, 14, 11, 30, 0, 0, time.UTC)
	feeds := &fakeFeeds{items: []model.ContentItem{
		{Title: "story about qqq", Published: &pub, SourceID: "a"},
		{Title: "story about www", Published: &pub, SourceID: "b"},
		{Title: "unclassified item", Published: &pub, SourceID: "c"},
	}}
	store := &fakeStore{}
	g := testGenerator(feeds, store, nil)

	snap, err := g.Generate(context.Background(), Options{Hours: 24, TopCount: 10, RefreshFeeds: true})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if feeds.refreshed != 1 {
		t.Errorf("refresh calls = %d, want 1", feeds.refreshed)
	}
	if feeds.lastWindow != 24 {
		t.Errorf("window = %d, want 24", feeds.lastWindow)
	}

	if len(snap.General.Items) != 3 {
		t.Fatalf("general items = %d, want 3", len(snap.General.Items))
	}
	for i, e := range snap.General.Items {
		if e.Rank != i+1 {
			t.Errorf("general rank %d = %d", i, e.Rank)
		}
		if e.Summary != "" {
			t.Errorf("summary = %q, want empty without AI", e.Summary)
		}
	}

	wantCats := []string{"alpha", "beta", "general"}
	gotCats := snap.Categories.Keys()
	if strings.Join(gotCats, ",") != strings.Join(wantCats, ",") {
		t.Errorf("categories = %v, want %v", gotCats, wantCats)
	}
	alpha, _ := snap.Categories.Get("alpha")
	if alpha.Title != "alpha Top1" {
		t.Errorf("alpha title = %q, want fallback template", alpha.Title)
	}
	if snap.General.Title != "Trending Top3" {
		t.Errorf("general title = %q, want Trending Top3", snap.General.Title)
	}
	if snap.Meta.AISummaryEnabled {
		t.Error("aiSummaryEnabled = true, want false")
	}

	if store.simple == nil {
		t.Fatal("simplified snapshot not persisted")
	}
	if len(store.simple.General.Items) != 3 {
		t.Errorf("simplified general items = %d, want 3", len(store.simple.General.Items))
	}
	if store.simple.General.Items[0].Score != snap.General.Items[0].Score.Total {
		t.Error("simplified score is not the bare total")
	}
}

func TestGenerateToleratesRefreshFailures(t *testing.T) {
	pub := time.Date(2026, 3, 14, 11, 30, 0, 0, time.UTC)
	feeds := &fakeFeeds{
		items: []model.ContentItem{
			{Title: "story about qqq", Published: &pub, SourceID: "good"},
		},
		refreshRes: map[string]model.RefreshResult{
			"good":   {Success: true, Message: "1 items"},
			"broken": {Success: false, Message: "connect timeout"},
		},
	}
	store := &fakeStore{}
	g := testGenerator(feeds, store, nil)

	snap, err := g.Generate(context.Background(), Options{Hours: 24, TopCount: 10, RefreshFeeds: true})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if feeds.refreshed != 1 {
		t.Errorf("refresh calls = %d, want 1", feeds.refreshed)
	}
	if len(snap.General.Items) != 1 {
		t.Fatalf("general items = %d, want 1 despite the failed source", len(snap.General.Items))
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
}

func TestGenerateWithAIEnrichment(t *testing.T) {
	pub := time.Date(2026, 3, 14, 11, 30, 0, 0, time.UTC)
	feeds := &fakeFeeds{items: []model.ContentItem{
		{Title: "story about qqq", Published: &pub, SourceID: "a"},
	}}
	store := &fakeStore{}
	assistant := &fakeAssistant{enabled: true, summary: "ai take", title: "Hot Now"}
	g := testGenerator(feeds, store, assistant)

	snap, err := g.Generate(context.Background(), Options{UseAISummary: true})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if !snap.Meta.AISummaryEnabled {
		t.Error("aiSummaryEnabled = false, want true")
	}
	if snap.General.Items[0].Summary != "ai take" {
		t.Errorf("summary = %q, want ai take", snap.General.Items[0].Summary)
	}
	if snap.General.Title != "Hot Now" {
		t.Errorf("general title = %q, want assistant title", snap.General.Title)
	}
}

func TestGenerateAIRequestedButDisabled(t *testing.T) {
	pub := time.Date(2026, 3, 14, 11, 30, 0, 0, time.UTC)
	feeds := &fakeFeeds{items: []model.ContentItem{
		{Title: "story about qqq", Published: &pub, SourceID: "a"},
	}}
	store := &fakeStore{}
	assistant := &fakeAssistant{enabled: false}
	g := testGenerator(feeds, store, assistant)

	snap, err := g.Generate(context.Background(), Options{UseAISummary: true})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if snap.Meta.AISummaryEnabled {
		t.Error("aiSummaryEnabled = true with a disabled assistant")
	}
	if assistant.summarizeCalls != 0 {
		t.Errorf("assistant called %d times, want 0", assistant.summarizeCalls)
	}
}

func TestGeneratePersistFailureIsSurfaced(t *testing.T) {
	feeds := &fakeFeeds{}
	store := &fakeStore{saveErr: errors.New("disk full")}
	g := testGenerator(feeds, store, nil)

	snap, err := g.Generate(context.Background(), Options{})
	if err == nil {
		t.Fatal("expected a persistence error")
	}
	if snap == nil {
		t.Fatal("snapshot should be returned alongside the error")
	}
}

func TestGenerateCandidateFetchFailure(t *testing.T) {
	feeds := &fakeFeeds{itemsErr: errors.New("redis down")}
	store := &fakeStore{}
	g := testGenerator(feeds, store, nil)

	if _, err := g.Generate(context.Background(), Options{}); err == nil {
		t.Fatal("expected an error when the item store is unreachable")
	}
	if store.saves != 0 {
		t.Errorf("saves = %d, want 0 (must not clobber the previous snapshot)", store.saves)
	}
}
