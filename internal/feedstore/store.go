package feedstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"trendfeed/internal/model"

	"github.com/redis/go-redis/v9"
)

const sourcesKey = "feed:sources"

// Store keeps fetched feed items in redis: one JSON blob per item plus a
// per-source sorted set indexed by publish time, so the recent-item query
// is a single range scan per source. Items without a timestamp are indexed
// under their fetch time and therefore count as recent.
type Store struct {
	rdb       *redis.Client
	retention time.Duration
	now       func() time.Time
}

// NewStore builds a store; retention bounds how long fetched items live.
func NewStore(rdb *redis.Client, retention time.Duration) *Store {
	if retention <= 0 {
		retention = 7 * 24 * time.Hour
	}
	return &Store{rdb: rdb, retention: retention, now: time.Now}
}

func itemKey(source, guid string) string {
	return fmt.Sprintf("feed:item:%s:%s", source, guid)
}

func sourceZKey(source string) string {
	return fmt.Sprintf("feed:source:%s:items", source)
}

// SaveItems stores the items fetched for a source and refreshes the
// publish-time index. Old index entries past retention are trimmed.
func (s *Store) SaveItems(ctx context.Context, sourceID string, items []model.ContentItem) error {
	now := s.now().UTC()
	for _, it := range items {
		b, err := json.Marshal(it)
		if err != nil {
			return fmt.Errorf("marshal item %s: %w", it.GUID, err)
		}
		ts := now
		if it.Published != nil {
			ts = it.Published.UTC()
		}
		if err := s.rdb.Set(ctx, itemKey(sourceID, it.GUID), b, s.retention).Err(); err != nil {
			return err
		}
		z := redis.Z{Score: float64(ts.Unix()), Member: it.GUID}
		if err := s.rdb.ZAdd(ctx, sourceZKey(sourceID), z).Err(); err != nil {
			return err
		}
	}
	if err := s.rdb.SAdd(ctx, sourcesKey, sourceID).Err(); err != nil {
		return err
	}
	horizon := now.Add(-s.retention).Unix()
	return s.rdb.ZRemRangeByScore(ctx, sourceZKey(sourceID), "-inf", strconv.FormatInt(horizon, 10)).Err()
}

// RecentItems returns all stored items whose indexed time falls within the
// trailing window, across every known source. Order is per-source by index
// time; the ranking engine re-orders by score anyway.
func (s *Store) RecentItems(ctx context.Context, hours int) ([]model.ContentItem, error) {
	sources, err := s.rdb.SMembers(ctx, sourcesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	cutoff := s.now().UTC().Add(-time.Duration(hours) * time.Hour).Unix()
	var out []model.ContentItem
	for _, src := range sources {
		guids, err := s.rdb.ZRangeByScore(ctx, sourceZKey(src), &redis.ZRangeBy{
			Min: strconv.FormatInt(cutoff, 10),
			Max: "+inf",
		}).Result()
		if err != nil {
			return nil, fmt.Errorf("scan source %s: %w", src, err)
		}
		for _, guid := range guids {
			b, err := s.rdb.Get(ctx, itemKey(src, guid)).Bytes()
			if err == redis.Nil {
				continue // blob expired ahead of its index entry
			}
			if err != nil {
				return nil, err
			}
			var it model.ContentItem
			if err := json.Unmarshal(b, &it); err != nil {
				slog.Warn("feedstore: dropping unreadable item", "source", src, "guid", guid, "err", err)
				continue
			}
			out = append(out, it)
		}
	}
	return out, nil
}

// Sources returns the ids of every source that has stored items.
func (s *Store) Sources(ctx context.Context) ([]string, error) {
	return s.rdb.SMembers(ctx, sourcesKey).Result()
}
