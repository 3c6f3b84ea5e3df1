package feedstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"trendfeed/internal/model"

	"github.com/mmcdole/gofeed"
)

// ItemSink receives parsed items for storage.
type ItemSink interface {
	SaveItems(ctx context.Context, sourceID string, items []model.ContentItem) error
}

// Fetcher refreshes subscribed feeds over the network and hands parsed
// items to the sink. Ingestion is the only place timestamps are touched:
// everything downstream sees UTC.
type Fetcher struct {
	sources []Source
	store   ItemSink
	timeout time.Duration
	parser  *gofeed.Parser
}

// NewFetcher builds a fetcher; timeout bounds each single-source fetch.
func NewFetcher(sources []Source, store ItemSink, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Fetcher{
		sources: sources,
		store:   store,
		timeout: timeout,
		parser:  gofeed.NewParser(),
	}
}

// Sources returns the subscription list.
func (f *Fetcher) Sources() []Source {
	return f.sources
}

// RefreshAll fetches every subscribed source in order. A source failure is
// recorded in the result map and does not stop the remaining sources.
func (f *Fetcher) RefreshAll(ctx context.Context) map[string]model.RefreshResult {
	results := make(map[string]model.RefreshResult, len(f.sources))
	for _, src := range f.sources {
		n, err := f.refreshOne(ctx, src)
		if err != nil {
			slog.Warn("feeds: refresh failed", "source", src.ID, "err", err)
			results[src.ID] = model.RefreshResult{Success: false, Message: err.Error()}
			continue
		}
		slog.Info("feeds: refreshed", "source", src.ID, "items", n)
		results[src.ID] = model.RefreshResult{Success: true, Message: fmt.Sprintf("%d items", n)}
	}
	return results
}

func (f *Fetcher) refreshOne(ctx context.Context, src Source) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	feed, err := f.parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", src.URL, err)
	}
	items := make([]model.ContentItem, 0, len(feed.Items))
	for _, fi := range feed.Items {
		if fi == nil {
			continue
		}
		items = append(items, convertItem(fi, src.ID))
	}
	if err := f.store.SaveItems(ctx, src.ID, items); err != nil {
		return 0, fmt.Errorf("store items for %s: %w", src.ID, err)
	}
	return len(items), nil
}

// convertItem maps a parsed feed entry onto the pipeline's item model.
// Timestamps are normalized to UTC here; a missing GUID falls back to the
// link, then the title, so every item stays addressable.
func convertItem(fi *gofeed.Item, sourceID string) model.ContentItem {
	var published *time.Time
	switch {
	case fi.PublishedParsed != nil:
		t := fi.PublishedParsed.UTC()
		published = &t
	case fi.UpdatedParsed != nil:
		t := fi.UpdatedParsed.UTC()
		published = &t
	}

	desc := fi.Description
	if desc == "" {
		desc = fi.Content
	}

	author := ""
	if fi.Author != nil {
		author = fi.Author.Name
	} else if len(fi.Authors) > 0 && fi.Authors[0] != nil {
		author = fi.Authors[0].Name
	}

	guid := fi.GUID
	if guid == "" {
		guid = fi.Link
	}
	if guid == "" {
		guid = fi.Title
	}

	return model.ContentItem{
		Title:       fi.Title,
		Link:        fi.Link,
		Description: desc,
		Published:   published,
		Author:      author,
		GUID:        guid,
		SourceID:    sourceID,
	}
}
