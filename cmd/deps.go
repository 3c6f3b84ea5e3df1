package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"trendfeed/internal/ai"
	"trendfeed/internal/config"
	"trendfeed/internal/feedstore"
	"trendfeed/internal/model"
	"trendfeed/internal/rank"
	"trendfeed/internal/redisclient"
	"trendfeed/internal/snapshot"
	"trendfeed/internal/trending"

	"github.com/redis/go-redis/v9"
)

// deps is the wired object graph shared by the generate, serve, and feeds
// commands. Close releases the redis connection.
type deps struct {
	cfg       config.Config
	rdb       *redis.Client
	fetcher   *feedstore.Fetcher
	store     *snapshot.FileStore
	generator *trending.Generator
}

func (d *deps) Close() {
	if d.rdb != nil {
		d.rdb.Close()
	}
}

// buildDeps turns configuration into the running pipeline. Errors here are
// the unrecoverable kind: bad durations, an unreadable subscription list,
// or an unwritable snapshot directory.
func buildDeps(cfg config.Config) (*deps, error) {
	fetchTimeout, err := time.ParseDuration(cfg.Feeds.FetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid feeds.fetch_timeout: %w", err)
	}
	retention, err := time.ParseDuration(cfg.Feeds.Retention)
	if err != nil {
		return nil, fmt.Errorf("invalid feeds.retention: %w", err)
	}
	enrichDelay, err := time.ParseDuration(cfg.Trending.EnrichDelay)
	if err != nil {
		return nil, fmt.Errorf("invalid trending.enrich_delay: %w", err)
	}

	sources, err := feedstore.LoadSources(cfg.Feeds.SourcesFile)
	if err != nil {
		return nil, err
	}

	snapStore, err := snapshot.NewFileStore(cfg.Trending.OutputDir)
	if err != nil {
		return nil, err
	}

	rdb := redisclient.New(cfg.Redis)
	itemStore := feedstore.NewStore(rdb, retention)
	fetcher := feedstore.NewFetcher(sources, itemStore, fetchTimeout)

	scorer := rank.NewScorer(rank.DefaultTables())
	engine := rank.NewEngine(scorer)

	var assistant ai.Assistant
	if cfg.OpenAI.APIKey != "" {
		assistant = ai.NewOpenAI(ai.Config{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
		}, append(scorer.Categories(), rank.GeneralCategory))
		slog.Info("ai: enrichment enabled", "model", cfg.OpenAI.Model)
	} else {
		slog.Info("ai: no api key configured, enrichment disabled")
	}

	generator := &trending.Generator{
		Feeds:    &pipelineFeeds{fetcher: fetcher, items: itemStore},
		Engine:   engine,
		Enricher: trending.NewEnricher(assistant, enrichDelay, cfg.Trending.SummaryMaxLen),
		Store:    snapStore,
	}

	return &deps{
		cfg:       cfg,
		rdb:       rdb,
		fetcher:   fetcher,
		store:     snapStore,
		generator: generator,
	}, nil
}

// pipelineFeeds joins the network fetcher and the redis item store into
// the FeedSource the orchestrator consumes.
type pipelineFeeds struct {
	fetcher *feedstore.Fetcher
	items   *feedstore.Store
}

func (p *pipelineFeeds) RefreshAll(ctx context.Context) map[string]model.RefreshResult {
	return p.fetcher.RefreshAll(ctx)
}

func (p *pipelineFeeds) RecentItems(ctx context.Context, hours int) ([]model.ContentItem, error) {
	return p.items.RecentItems(ctx, hours)
}
