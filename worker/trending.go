package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"trendfeed/internal/trending"
)

// TrendingWorker regenerates the trending snapshot on an interval. It runs
// once immediately on start, then on every tick. Gate serializes runs with
// any other Generate callers (the manual HTTP trigger shares it).
type TrendingWorker struct {
	Generator *trending.Generator
	Interval  time.Duration
	Opts      trending.Options
	Gate      *sync.Mutex
}

func (w *TrendingWorker) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = time.Hour
	}
	w.runOnce(ctx)

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *TrendingWorker) runOnce(ctx context.Context) {
	if w.Gate != nil {
		w.Gate.Lock()
		defer w.Gate.Unlock()
	}
	snap, err := w.Generator.Generate(ctx, w.Opts)
	if err != nil {
		slog.Error("worker: trending run failed", "err", err)
		return
	}
	slog.Info("worker: trending snapshot refreshed",
		"source_items", snap.Meta.TotalSourceItems,
		"general_items", len(snap.General.Items),
		"categories", snap.Categories.Len())
}
