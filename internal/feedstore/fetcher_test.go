package feedstore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"trendfeed/internal/model"

	"github.com/mmcdole/gofeed"
)

type memorySink struct {
	saved map[string][]model.ContentItem
}

func (m *memorySink) SaveItems(_ context.Context, sourceID string, items []model.ContentItem) error {
	if m.saved == nil {
		m.saved = make(map[string][]model.ContentItem)
	}
	m.saved[sourceID] = append(m.saved[sourceID], items...)
	return nil
}

const rssDoc = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Working Feed</title>
    <item>
      <title>First story</title>
      <link>https://example.com/1</link>
      <guid>item-1</guid>
      <pubDate>Sat, 14 Mar 2026 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Second story</title>
      <link>https://example.com/2</link>
      <guid>item-2</guid>
    </item>
  </channel>
</rss>`

func TestRefreshAllIsolatesSourceFailures(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssDoc))
	}))
	defer good.Close()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer bad.Close()

	sink := &memorySink{}
	f := NewFetcher([]Source{
		{ID: "broken", URL: bad.URL},
		{ID: "working", URL: good.URL},
	}, sink, 5*time.Second)

	results := f.RefreshAll(context.Background())

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if res := results["broken"]; res.Success {
		t.Errorf("broken source reported success: %+v", res)
	} else if res.Message == "" {
		t.Error("broken source has no failure message")
	}
	if res := results["working"]; !res.Success {
		t.Errorf("working source reported failure: %+v", res)
	} else if res.Message != "2 items" {
		t.Errorf("working message = %q, want %q", res.Message, "2 items")
	}

	if got := len(sink.saved["working"]); got != 2 {
		t.Fatalf("stored %d items for working source, want 2", got)
	}
	if _, ok := sink.saved["broken"]; ok {
		t.Error("items were stored for the broken source")
	}
	if sink.saved["working"][0].GUID != "item-1" {
		t.Errorf("first stored guid = %q, want item-1", sink.saved["working"][0].GUID)
	}
}

func TestConvertItemNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	pub := time.Date(2026, 3, 14, 20, 0, 0, 0, loc)

	got := convertItem(&gofeed.Item{
		Title:           "hello",
		Link:            "https://example.com/a",
		GUID:            "a-guid",
		PublishedParsed: &pub,
	}, "example.com")

	if got.Published == nil {
		t.Fatal("published is nil")
	}
	if got.Published.Location() != time.UTC {
		t.Errorf("published location = %v, want UTC", got.Published.Location())
	}
	if !got.Published.Equal(pub) {
		t.Errorf("published = %v, want instant %v", got.Published, pub)
	}
	if got.SourceID != "example.com" {
		t.Errorf("sourceID = %q", got.SourceID)
	}
}

func TestConvertItemFallbacks(t *testing.T) {
	updated := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	got := convertItem(&gofeed.Item{
		Title:         "no guid here",
		Link:          "https://example.com/b",
		Content:       "<p>full body</p>",
		UpdatedParsed: &updated,
		Author:        &gofeed.Person{Name: "sam"},
	}, "src")

	if got.GUID != "https://example.com/b" {
		t.Errorf("guid = %q, want the link fallback", got.GUID)
	}
	if got.Description != "<p>full body</p>" {
		t.Errorf("description = %q, want content fallback", got.Description)
	}
	if got.Author != "sam" {
		t.Errorf("author = %q, want sam", got.Author)
	}
	if got.Published == nil || !got.Published.Equal(updated) {
		t.Errorf("published = %v, want updated fallback %v", got.Published, updated)
	}

	bare := convertItem(&gofeed.Item{Title: "only a title"}, "src")
	if bare.GUID != "only a title" {
		t.Errorf("guid = %q, want title fallback", bare.GUID)
	}
	if bare.Published != nil {
		t.Errorf("published = %v, want nil", bare.Published)
	}
}

func TestLoadSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feeds.yaml")
	content := "" +
		"sources:\n" +
		"  - id: techcrunch\n" +
		"    url: https://techcrunch.com/feed/\n" +
		"  - url: https://blog.example.org/rss\n" +
		"  - id: empty-url-is-skipped\n" +
		"    url: \"\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "techcrunch" {
		t.Errorf("first id = %q, want techcrunch", got[0].ID)
	}
	if got[1].ID != "blog.example.org" {
		t.Errorf("second id = %q, want host-derived blog.example.org", got[1].ID)
	}
}

func TestLoadSourcesMissingFile(t *testing.T) {
	if _, err := LoadSources(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
