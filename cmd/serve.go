package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"trendfeed/internal/trending"
	"trendfeed/worker"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
)

// serveCmd runs the read-only HTTP API over the snapshot store plus an
// interval worker that keeps the snapshot fresh.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the trending API and regenerate on an interval",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		interval, err := time.ParseDuration(cfg.Trending.Interval)
		if err != nil {
			return err
		}

		d, err := buildDeps(cfg)
		if err != nil {
			return err
		}
		defer d.Close()

		// one Generate in flight at a time, across worker and HTTP trigger
		var gate sync.Mutex
		opts := trending.Options{
			Hours:        cfg.Trending.Hours,
			TopCount:     cfg.Trending.TopCount,
			RefreshFeeds: true,
			UseAISummary: true,
		}

		tw := &worker.TrendingWorker{
			Generator: d.generator,
			Interval:  interval,
			Opts:      opts,
			Gate:      &gate,
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		srv := &http.Server{Addr: cfg.Server.Addr, Handler: newRouter(d, &gate, ctx, opts)}

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			slog.Info("received signal, shutting down", "signal", s.String())
			cancel()
			shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutCancel()
			srv.Shutdown(shutCtx)
		}()

		go func() {
			slog.Info("serve: listening", "addr", cfg.Server.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("serve: http server failed", "err", err)
				cancel()
			}
		}()

		mgr := worker.NewManager(tw)
		return mgr.Start(ctx)
	},
}

// newRouter builds the HTTP surface. runCtx is the server's lifetime
// context: a generate run triggered over HTTP outlives the request that
// started it, so a client disconnect does not abort the run.
func newRouter(d *deps, gate *sync.Mutex, runCtx context.Context, opts trending.Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/api/trending", func(w http.ResponseWriter, _ *http.Request) {
		snap, ok := d.store.Latest()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no snapshot available"})
			return
		}
		writeJSON(w, http.StatusOK, snap)
	})
	r.Get("/api/trending/simple", func(w http.ResponseWriter, _ *http.Request) {
		snap, ok := d.store.LatestSimplified()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no snapshot available"})
			return
		}
		writeJSON(w, http.StatusOK, snap)
	})
	r.Post("/api/generate", func(w http.ResponseWriter, _ *http.Request) {
		if !gate.TryLock() {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "a run is already in flight"})
			return
		}
		defer gate.Unlock()
		snap, err := d.generator.Generate(runCtx, opts)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, snap.Meta)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("serve: encode response", "err", err)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
