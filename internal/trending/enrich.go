package trending

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"trendfeed/internal/ai"
	"trendfeed/internal/model"
	"trendfeed/internal/rank"
)

// Enricher augments ranked entries through the AI collaborator: a summary
// per entry, a refined category for entries the keyword classifier left in
// the general bucket, and a display title per list. Every call is
// best-effort: a failure degrades that single entry and is logged, never
// propagated. A nil or disabled assistant makes the enricher a pass-through.
type Enricher struct {
	AI            ai.Assistant
	Delay         time.Duration // cooperative pause between successive AI calls
	SummaryMaxLen int

	calls int
	sleep func(time.Duration) // swapped out in tests
}

// NewEnricher builds an enricher over the assistant.
func NewEnricher(assistant ai.Assistant, delay time.Duration, summaryMaxLen int) *Enricher {
	if summaryMaxLen <= 0 {
		summaryMaxLen = 150
	}
	return &Enricher{
		AI:            assistant,
		Delay:         delay,
		SummaryMaxLen: summaryMaxLen,
		sleep:         time.Sleep,
	}
}

// Enabled reports whether enrichment will do anything.
func (e *Enricher) Enabled() bool {
	return e != nil && e.AI != nil && e.AI.Enabled()
}

// pace applies the inter-call delay before every AI call after the first.
func (e *Enricher) pace() {
	if e.calls > 0 && e.Delay > 0 {
		e.sleep(e.Delay)
	}
	e.calls++
}

// EnrichList processes entries in rank order, filling summaries and
// refining general-bucket categories. The slice is returned with the same
// length and order; only Summary and Score.Category may change.
func (e *Enricher) EnrichList(ctx context.Context, entries []model.RankedEntry) []model.RankedEntry {
	if !e.Enabled() {
		return entries
	}
	for i := range entries {
		text := entries[i].Title + "\n\n" + entries[i].Description

		e.pace()
		summary, err := e.AI.Summarize(ctx, text, e.SummaryMaxLen)
		if err != nil {
			slog.Warn("enrich: summarize failed", "rank", entries[i].Rank, "title", entries[i].Title, "err", err)
		} else {
			entries[i].Summary = summary
		}

		if entries[i].Score.Category != rank.GeneralCategory {
			continue
		}
		e.pace()
		category, err := e.AI.Classify(ctx, text)
		if err != nil {
			slog.Warn("enrich: classify failed", "rank", entries[i].Rank, "err", err)
			continue
		}
		if category != "" {
			entries[i].Score.Category = category
		}
	}
	return entries
}

// Title returns the display title for a list, falling back to the
// deterministic template when the assistant is unavailable or fails.
func (e *Enricher) Title(ctx context.Context, category string, count int) string {
	fallback := FallbackTitle(category, count)
	if !e.Enabled() {
		return fallback
	}
	e.pace()
	title, err := e.AI.TitleFor(ctx, category, count)
	if err != nil {
		slog.Warn("enrich: title failed", "category", category, "err", err)
		return fallback
	}
	if strings.TrimSpace(title) == "" {
		return fallback
	}
	return title
}
