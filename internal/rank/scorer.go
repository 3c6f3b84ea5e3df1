package rank

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"trendfeed/internal/model"
)

// Factor weights for the combined score.
const (
	freshnessWeight  = 0.30
	qualityWeight    = 0.25
	popularityWeight = 0.25
	sourceShare      = 0.20
)

var (
	tagPattern = regexp.MustCompile(`<[^>]+>`)
	// percentages, decimals, large-number suffixes, currency amounts
	numericPattern = regexp.MustCompile(`(?i)\d+(\.\d+)?%|\d+\.\d+|[$€£¥]\d|\d+(\.\d+)?\s?(million|billion|trillion|[kmb])\b`)
)

// StripHTML removes markup tags, leaving the text content.
func StripHTML(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// Scorer computes multi-factor content scores from static tables. It has
// no side effects: the result depends only on the item, the tables, and
// the clock. Now may be overridden in tests; nil means time.Now.
type Scorer struct {
	Tables Tables
	Now    func() time.Time
}

// NewScorer builds a scorer over the given tables.
func NewScorer(t Tables) *Scorer {
	return &Scorer{Tables: t}
}

func (s *Scorer) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Score rates a single item across freshness, quality, popularity, and
// source authority, and assigns its keyword category. All parts are
// rounded to two decimals; Total is the weighted combination.
func (s *Scorer) Score(item model.ContentItem) model.ContentScore {
	freshness := s.scoreFreshness(item.Published)
	quality := s.scoreQuality(item)
	popularity := s.scorePopularity(item)
	weight := s.sourceWeight(item.SourceID)

	total := freshness*freshnessWeight +
		quality*qualityWeight +
		popularity*popularityWeight +
		weight*sourceShare

	return model.ContentScore{
		Total:        round2(total),
		Freshness:    round2(freshness),
		Quality:      round2(quality),
		Popularity:   round2(popularity),
		SourceWeight: round2(weight),
		Category:     s.Classify(item),
	}
}

// scoreFreshness buckets the item age at evaluation time. Items without a
// timestamp score the floor value. All arithmetic is done in UTC; the
// ingestion layer normalizes stored timestamps.
func (s *Scorer) scoreFreshness(published *time.Time) float64 {
	if published == nil {
		return 0.1
	}
	age := s.clock().UTC().Sub(published.UTC())
	hours := age.Hours()
	switch {
	case hours <= 1:
		return 1.0
	case hours <= 6:
		return 0.9
	case hours <= 24:
		return 0.7
	case hours <= 48:
		return 0.5
	case hours <= 168:
		return 0.3
	default:
		return 0.1
	}
}

// scoreQuality adds fixed bonuses for title shape, body length, link and
// author presence, and document structure, capped at 1.0.
func (s *Scorer) scoreQuality(item model.ContentItem) float64 {
	score := 0.0

	titleLen := utf8.RuneCountInString(item.Title)
	if titleLen >= 10 {
		score += 0.2
	}
	if titleLen >= 20 {
		score += 0.1
	}
	if titleLen <= 100 {
		score += 0.1
	}

	bodyLen := utf8.RuneCountInString(StripHTML(item.Description))
	if bodyLen >= 100 {
		score += 0.2
	}
	if bodyLen >= 500 {
		score += 0.1
	}
	if bodyLen >= 1000 {
		score += 0.1
	}

	if item.Link != "" {
		score += 0.1
	}
	if item.Author != "" {
		score += 0.1
	}
	if hasStructure(item.Description) {
		score += 0.1
	}

	return math.Min(score, 1.0)
}

// scorePopularity sums per-dictionary keyword signals plus numeric and
// attention bonuses, capped at 1.0. Each dictionary contributes
// min(matches*0.15, 0.5), where matches counts the distinct keywords
// present in title+description.
func (s *Scorer) scorePopularity(item model.ContentItem) float64 {
	text := itemText(item)
	score := 0.0

	for _, ck := range s.Tables.Categories {
		matches := countKeywords(text, ck.Keywords)
		if matches > 0 {
			score += math.Min(float64(matches)*0.15, 0.5)
		}
	}

	if numericPattern.MatchString(text) {
		score += 0.1
	}
	for _, w := range s.Tables.AttentionWords {
		if strings.Contains(text, strings.ToLower(w)) {
			score += 0.1
			break
		}
	}

	return math.Min(score, 1.0)
}

// sourceWeight looks the source id up in the authority table; the first
// substring match in table order wins.
func (s *Scorer) sourceWeight(sourceID string) float64 {
	id := strings.ToLower(sourceID)
	for _, sw := range s.Tables.SourceWeights {
		if strings.Contains(id, strings.ToLower(sw.Match)) {
			return sw.Weight
		}
	}
	return s.Tables.DefaultWeight
}

// Classify returns the category whose dictionary has the highest raw match
// count. Ties keep the first-declared category; zero matches anywhere
// yields the general bucket.
func (s *Scorer) Classify(item model.ContentItem) string {
	text := itemText(item)
	best := GeneralCategory
	bestCount := 0
	for _, ck := range s.Tables.Categories {
		if n := countKeywords(text, ck.Keywords); n > bestCount {
			best = ck.Category
			bestCount = n
		}
	}
	return best
}

// Categories returns the declared category labels in priority order.
func (s *Scorer) Categories() []string {
	return s.Tables.CategoryNames()
}

func itemText(item model.ContentItem) string {
	return strings.ToLower(item.Title + " " + item.Description)
}

func countKeywords(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			n++
		}
	}
	return n
}

// hasStructure reports whether the raw body carries paragraph, list, or
// heading markup.
func hasStructure(description string) bool {
	if description == "" {
		return false
	}
	html := strings.ToLower(description)
	if strings.Count(html, "<p>") >= 2 {
		return true
	}
	for _, tag := range []string{"<ul>", "<ol>", "<li>", "<h1>", "<h2>", "<h3>", "<h4>"} {
		if strings.Contains(html, tag) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
