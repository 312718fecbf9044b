package pipeline

import (
	"strings"
	"time"

	"github.com/seenimoa/newsscan/pkg/models"
)

// FilterConfig is an immutable snapshot of filter criteria for one pass.
// Any unset criterion is skipped (vacuously true).
type FilterConfig struct {
	Categories      []string
	Regions         []string
	Topics          []string
	IncludeKeywords []string
	ExcludeKeywords []string
	MaxAgeHours     int // 0 = no age filter
	AlertsOnly      bool
	Sources         []string
	ExcludeSources  []string
	Tickers         []string
}

// Filter evaluates all configured criteria per item in one pass.
// An item survives only if every configured criterion passes.
func Filter(items []models.NewsItem, cfg FilterConfig) []models.NewsItem {
	return filterAt(items, cfg, time.Now().UTC())
}

// filterAt is the clock-injected form used by tests.
func filterAt(items []models.NewsItem, cfg FilterConfig, now time.Time) []models.NewsItem {
	var cutoff time.Time
	if cfg.MaxAgeHours > 0 {
		cutoff = now.Add(-time.Duration(cfg.MaxAgeHours) * time.Hour)
	}

	filtered := make([]models.NewsItem, 0, len(items))
	for _, item := range items {
		if len(cfg.Categories) > 0 && !contains(cfg.Categories, item.Metadata.Category) {
			continue
		}
		if len(cfg.Regions) > 0 && !contains(cfg.Regions, item.Metadata.Region) {
			continue
		}
		if len(cfg.Topics) > 0 && !containsAny(cfg.Topics, item.Topics) {
			continue
		}
		if len(cfg.IncludeKeywords) > 0 && !keywordMatch(item, cfg.IncludeKeywords) {
			continue
		}
		if len(cfg.ExcludeKeywords) > 0 && keywordMatch(item, cfg.ExcludeKeywords) {
			continue
		}
		if cfg.MaxAgeHours > 0 {
			// Fail-open: items with unparseable dates pass the age filter.
			if t, ok := item.PublishedTime(); ok && t.Before(cutoff) {
				continue
			}
		}
		if cfg.AlertsOnly && !item.Metadata.IsAlert {
			continue
		}
		if len(cfg.Sources) > 0 && !contains(cfg.Sources, item.Source) {
			continue
		}
		if len(cfg.ExcludeSources) > 0 && contains(cfg.ExcludeSources, item.Source) {
			continue
		}
		if len(cfg.Tickers) > 0 && !containsAny(cfg.Tickers, item.Tickers) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// Predicate decides whether an item survives a filter pass.
type Predicate func(models.NewsItem) bool

// FilterChain accumulates independent predicates applied as successive
// passes: each predicate re-filters the surviving set.
type FilterChain struct {
	predicates []Predicate
}

// NewFilterChain creates an empty chain.
func NewFilterChain() *FilterChain {
	return &FilterChain{}
}

// Add appends a custom predicate.
func (c *FilterChain) Add(p Predicate) *FilterChain {
	c.predicates = append(c.predicates, p)
	return c
}

// Categories keeps items whose metadata category is in the given set.
func (c *FilterChain) Categories(categories []string) *FilterChain {
	return c.Add(func(item models.NewsItem) bool {
		return contains(categories, item.Metadata.Category)
	})
}

// Topics keeps items with at least one topic in the given set.
func (c *FilterChain) Topics(topics []string) *FilterChain {
	return c.Add(func(item models.NewsItem) bool {
		return containsAny(topics, item.Topics)
	})
}

// MaxAge keeps items published within the last hours. Unparseable
// publish dates pass (fail-open).
func (c *FilterChain) MaxAge(hours int) *FilterChain {
	cutoff := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	return c.Add(func(item models.NewsItem) bool {
		t, ok := item.PublishedTime()
		if !ok {
			return true
		}
		return !t.Before(cutoff)
	})
}

// Keywords keeps items whose title or summary contains any keyword, or
// drops them when exclude is true.
func (c *FilterChain) Keywords(keywords []string, exclude bool) *FilterChain {
	return c.Add(func(item models.NewsItem) bool {
		matched := keywordMatch(item, keywords)
		if exclude {
			return !matched
		}
		return matched
	})
}

// AlertsOnly keeps alert items.
func (c *FilterChain) AlertsOnly() *FilterChain {
	return c.Add(func(item models.NewsItem) bool {
		return item.Metadata.IsAlert
	})
}

// Apply runs every predicate as a full pass over the surviving set.
func (c *FilterChain) Apply(items []models.NewsItem) []models.NewsItem {
	result := items
	for _, p := range c.predicates {
		next := make([]models.NewsItem, 0, len(result))
		for _, item := range result {
			if p(item) {
				next = append(next, item)
			}
		}
		result = next
	}
	return result
}

// keywordMatch reports whether any keyword occurs, case-insensitively, in
// the item's title + " " + summary.
func keywordMatch(item models.NewsItem, keywords []string) bool {
	text := strings.ToLower(item.Title + " " + item.Summary)
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func contains(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

func containsAny(set, values []string) bool {
	for _, v := range values {
		if contains(set, v) {
			return true
		}
	}
	return false
}
