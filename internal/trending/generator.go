package trending

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"trendfeed/internal/model"
	"trendfeed/internal/rank"
)

// FeedSource supplies candidate items and on-demand refresh. The trailing
// window is applied by the source itself; the ranking core does not
// re-filter by time.
type FeedSource interface {
	RefreshAll(ctx context.Context) map[string]model.RefreshResult
	RecentItems(ctx context.Context, hours int) ([]model.ContentItem, error)
}

// SnapshotStore persists the latest snapshot pair, replacing any prior one.
type SnapshotStore interface {
	Save(full *model.TrendingSnapshot, simple *model.SimplifiedSnapshot) error
}

// Generator drives one end-to-end trending run: fetch candidates, rank,
// optionally enrich, assemble, persist. It is not designed for concurrent
// self-overlap; callers serialize Generate invocations.
type Generator struct {
	Feeds    FeedSource
	Engine   *rank.Engine
	Enricher *Enricher
	Store    SnapshotStore
	Now      func() time.Time // nil means time.Now
}

// Options configures one run.
type Options struct {
	Hours        int
	TopCount     int
	RefreshFeeds bool
	UseAISummary bool
}

func (g *Generator) clock() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// Generate produces and persists a snapshot. Per-source refresh failures
// and per-entry enrichment failures are logged and never abort the run; an
// empty candidate set yields a well-formed empty snapshot. Only a
// persistence failure returns a non-nil error, alongside the snapshot that
// could not be saved.
func (g *Generator) Generate(ctx context.Context, opts Options) (*model.TrendingSnapshot, error) {
	if opts.Hours <= 0 {
		opts.Hours = 24
	}
	if opts.TopCount <= 0 {
		opts.TopCount = 20
	}

	if opts.RefreshFeeds {
		results := g.Feeds.RefreshAll(ctx)
		failed := 0
		for id, r := range results {
			if !r.Success {
				failed++
				slog.Warn("generate: source refresh failed", "source", id, "reason", r.Message)
			}
		}
		slog.Info("generate: refreshed sources", "total", len(results), "failed", failed)
	}

	items, err := g.Feeds.RecentItems(ctx, opts.Hours)
	if err != nil {
		return nil, fmt.Errorf("fetch candidate items: %w", err)
	}
	slog.Info("generate: candidates collected", "window_hours", opts.Hours, "items", len(items))

	aiEnabled := opts.UseAISummary && g.Enricher.Enabled()
	meta := model.SnapshotMeta{
		GeneratedAt:      g.clock().UTC(),
		TimeRangeHours:   opts.Hours,
		TotalSourceItems: len(items),
		AISummaryEnabled: aiEnabled,
	}

	if len(items) == 0 {
		snap := emptySnapshot(meta)
		if err := g.persist(snap); err != nil {
			return snap, err
		}
		return snap, nil
	}

	general := g.Engine.Rank(items, opts.TopCount, "")
	categories := g.Engine.CategoryRankings(items, opts.TopCount)

	if aiEnabled {
		general = g.Enricher.EnrichList(ctx, general)
		for i := range categories {
			categories[i].Entries = g.Enricher.EnrichList(ctx, categories[i].Entries)
		}
	}

	snap := &model.TrendingSnapshot{
		Meta: meta,
		General: model.TrendingList{
			Title:       g.listTitle(ctx, aiEnabled, rank.GeneralCategory, len(general)),
			Description: fmt.Sprintf("Ranked from %d source items in the last %d hours", len(items), opts.Hours),
			Items:       general,
		},
	}
	for _, cr := range categories {
		snap.Categories.Set(cr.Category, model.TrendingList{
			Title:       g.listTitle(ctx, aiEnabled, cr.Category, len(cr.Entries)),
			Description: fmt.Sprintf("Trending in %s", DisplayName(cr.Category)),
			Items:       cr.Entries,
		})
	}

	if err := g.persist(snap); err != nil {
		return snap, err
	}
	slog.Info("generate: snapshot persisted",
		"general_items", len(snap.General.Items),
		"categories", snap.Categories.Len(),
		"ai", aiEnabled)
	return snap, nil
}

func (g *Generator) listTitle(ctx context.Context, aiEnabled bool, category string, count int) string {
	if aiEnabled {
		return g.Enricher.Title(ctx, category, count)
	}
	return FallbackTitle(category, count)
}

func (g *Generator) persist(snap *model.TrendingSnapshot) error {
	if err := g.Store.Save(snap, Simplify(snap)); err != nil {
		return fmt.Errorf("persist trending snapshot: %w", err)
	}
	return nil
}

func emptySnapshot(meta model.SnapshotMeta) *model.TrendingSnapshot {
	return &model.TrendingSnapshot{
		Meta: meta,
		General: model.TrendingList{
			Title:       "No trending content",
			Description: "No recent items were found",
			Items:       []model.RankedEntry{},
		},
	}
}
