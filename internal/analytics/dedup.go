package analytics

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/seenimoa/newsscan/pkg/models"
)

// DedupResult is the outcome of a deduplication pass.
type DedupResult struct {
	Items        []models.NewsItem
	RemovedCount int
	RemovedIDs   []string
}

// DedupConfig controls which matching axes are enabled.
type DedupConfig struct {
	UseTitleHash bool
	UseURL       bool
	// TitleSimilarityThreshold enables fuzzy title matching in AreDuplicates
	// when < 1.0. 1.0 means exact match only.
	TitleSimilarityThreshold float64
}

// DefaultDedupConfig enables all exact-match axes with no fuzzy matching.
func DefaultDedupConfig() DedupConfig {
	return DedupConfig{
		UseTitleHash:             true,
		UseURL:                   true,
		TitleSimilarityThreshold: 1.0,
	}
}

// Deduplicator removes duplicate news items using three independent
// strategies: exact ID, normalized-title hash, and normalized URL.
// Stateless across calls; each Deduplicate pass starts with fresh seen sets.
type Deduplicator struct {
	cfg DedupConfig
}

// NewDeduplicator creates a deduplicator with the default configuration.
func NewDeduplicator() *Deduplicator {
	return NewDeduplicatorWith(DefaultDedupConfig())
}

// NewDeduplicatorWith creates a deduplicator with a custom configuration.
func NewDeduplicatorWith(cfg DedupConfig) *Deduplicator {
	return &Deduplicator{cfg: cfg}
}

// Deduplicate removes duplicates in a single first-seen-wins pass. For each
// item the axes are checked in fixed order: exact id, title hash, URL. Only
// items passing every check join the seen sets and the output, so output
// order equals input order minus removals.
func (d *Deduplicator) Deduplicate(items []models.NewsItem) DedupResult {
	if len(items) == 0 {
		return DedupResult{Items: []models.NewsItem{}, RemovedIDs: []string{}}
	}

	unique := make([]models.NewsItem, 0, len(items))
	removedIDs := []string{}
	seenIDs := make(map[string]bool)
	seenTitleHashes := make(map[string]bool)
	seenURLs := make(map[string]bool)

	for _, item := range items {
		if seenIDs[item.ID] {
			removedIDs = append(removedIDs, item.ID)
			continue
		}

		if d.cfg.UseTitleHash {
			titleHash := normalizeTitleHash(item.Title)
			if seenTitleHashes[titleHash] {
				removedIDs = append(removedIDs, item.ID)
				continue
			}
			seenTitleHashes[titleHash] = true
		}

		if d.cfg.UseURL && item.URL != "" {
			normalized := normalizeURL(item.URL)
			if seenURLs[normalized] {
				removedIDs = append(removedIDs, item.ID)
				continue
			}
			seenURLs[normalized] = true
		}

		seenIDs[item.ID] = true
		unique = append(unique, item)
	}

	return DedupResult{
		Items:        unique,
		RemovedCount: len(removedIDs),
		RemovedIDs:   removedIDs,
	}
}

// AreDuplicates reports whether two items collide on any enabled axis,
// including fuzzy title similarity when a threshold < 1.0 is configured.
func (d *Deduplicator) AreDuplicates(a, b models.NewsItem) bool {
	if a.ID == b.ID {
		return true
	}
	if d.cfg.UseURL && a.URL != "" && b.URL != "" {
		if normalizeURL(a.URL) == normalizeURL(b.URL) {
			return true
		}
	}
	if d.cfg.UseTitleHash {
		if normalizeTitleHash(a.Title) == normalizeTitleHash(b.Title) {
			return true
		}
	}
	if d.cfg.TitleSimilarityThreshold < 1.0 {
		if titleSimilarity(a.Title, b.Title) >= d.cfg.TitleSimilarityThreshold {
			return true
		}
	}
	return false
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]`)

// normalizeTitleHash hashes the lower-cased, alphanumeric-only title.
// Only needs to be collision-resistant for equality within a run.
func normalizeTitleHash(title string) string {
	if title == "" {
		return ""
	}
	normalized := nonAlnumRe.ReplaceAllString(strings.ToLower(title), "")
	sum := md5.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// normalizeURL strips scheme, leading www., trailing slash, and common
// tracking parameters (utm_*, ref), then lower-cases.
func normalizeURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	s := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		q := u.Query()
		for key := range q {
			if strings.HasPrefix(key, "utm_") || key == "ref" {
				q.Del(key)
			}
		}
		u.RawQuery = q.Encode()
		s = u.Host + u.Path
		if u.RawQuery != "" {
			s += "?" + u.RawQuery
		}
	} else {
		s = strings.TrimPrefix(strings.TrimPrefix(s, "https://"), "http://")
	}

	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimRight(s, "/")
	return strings.ToLower(s)
}

var wordRe = regexp.MustCompile(`\w+`)

// titleSimilarity returns the word-overlap ratio of two titles:
// |intersection| / |union| over lower-cased word sets.
func titleSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	wordsA := toSet(wordRe.FindAllString(strings.ToLower(a), -1))
	wordsB := toSet(wordRe.FindAllString(strings.ToLower(b), -1))
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	intersection := 0
	for w := range wordsA {
		if wordsB[w] {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection

	return float64(intersection) / float64(union)
}

// SlidingWindowDeduplicator wraps Deduplicator with a persistent
// id -> published-time cache for streaming use. The cache throttles
// unbounded growth across calls; it is deliberately NOT pre-seeded into the
// per-call seen sets, so within a single call only intra-batch duplicates
// are caught. Preserving this limitation keeps batch and streaming paths
// behaviorally identical per batch.
type SlidingWindowDeduplicator struct {
	*Deduplicator
	window time.Duration
	seen   map[string]time.Time // id -> published time
	now    func() time.Time
}

// NewSlidingWindowDeduplicator creates a windowed deduplicator.
func NewSlidingWindowDeduplicator(windowHours int, cfg DedupConfig) *SlidingWindowDeduplicator {
	return &SlidingWindowDeduplicator{
		Deduplicator: NewDeduplicatorWith(cfg),
		window:       time.Duration(windowHours) * time.Hour,
		seen:         make(map[string]time.Time),
		now:          time.Now,
	}
}

// Deduplicate prunes cache entries older than the window, runs the base
// deduplication over the batch, then records each surviving item's publish
// time. Items with unparseable timestamps are not cached.
func (d *SlidingWindowDeduplicator) Deduplicate(items []models.NewsItem) DedupResult {
	cutoff := d.now().UTC().Add(-d.window)
	for id, ts := range d.seen {
		if !ts.After(cutoff) {
			delete(d.seen, id)
		}
	}

	result := d.Deduplicator.Deduplicate(items)

	for _, item := range result.Items {
		if ts, ok := item.PublishedTime(); ok {
			d.seen[item.ID] = ts
		}
	}
	return result
}

// CacheSize returns the number of ids currently tracked.
func (d *SlidingWindowDeduplicator) CacheSize() int {
	return len(d.seen)
}
