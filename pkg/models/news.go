// Package models defines the core data structures used throughout newsscan.
package models

import (
	"encoding/json"
	"time"
)

// NewsItem is the canonical normalized news record. Every item from any
// connector is transformed into this schema before entering the pipeline.
type NewsItem struct {
	ID          string       `json:"id"`
	Source      string       `json:"source"`
	URL         string       `json:"url"`
	Title       string       `json:"title"`
	PublishedAt string       `json:"published_at"` // ISO-8601 UTC
	FetchedAt   string       `json:"fetched_at"`   // ISO-8601 UTC
	Authors     []string     `json:"authors"`
	Summary     string       `json:"summary"`
	ContentText string       `json:"content_text"`
	Tickers     []string     `json:"tickers"`
	Topics      []string     `json:"topics"`
	Language    string       `json:"language"`
	Metadata    NewsMetadata `json:"metadata"`
}

// NewsMetadata carries extended per-item metadata. Raw holds the original
// source payload and is excluded from serialized output.
type NewsMetadata struct {
	Category     string         `json:"category,omitempty"`
	IsAlert      bool           `json:"is_alert"`
	AlertKeyword string         `json:"alert_keyword,omitempty"`
	Region       string         `json:"region,omitempty"`
	Domain       string         `json:"domain,omitempty"`
	ImageURL     string         `json:"image_url,omitempty"`
	Raw          map[string]any `json:"-"`
}

// PublishedTime parses the item's published_at timestamp. Returns the zero
// time and false when the timestamp cannot be parsed, so callers can sort
// with a deterministic epoch fallback instead of comparing raw strings.
func (n NewsItem) PublishedTime() (time.Time, bool) {
	if n.PublishedAt == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, n.PublishedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ToJSON serializes the item to a single JSON line.
func (n NewsItem) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

// PipelineError records a failure during pipeline execution.
type PipelineError struct {
	Stage     string `json:"stage"` // "fetch", "parse", "filter", "dedup", "store"
	Source    string `json:"source,omitempty"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// PipelineStats holds per-stage counters from one pipeline run.
type PipelineStats struct {
	Fetched      int   `json:"fetched"`
	Parsed       int   `json:"parsed"`
	Filtered     int   `json:"filtered"`     // items removed by the filter stage
	Deduplicated int   `json:"deduplicated"` // items removed by the dedup stage
	Stored       int   `json:"stored"`
	DurationMS   int64 `json:"duration_ms"`
}

// PipelineResult is the outcome of one pipeline run.
type PipelineResult struct {
	Items  []NewsItem      `json:"items"`
	Stats  PipelineStats   `json:"stats"`
	Errors []PipelineError `json:"errors"`
}

// FeedSource is an RSS/Atom feed source configuration.
type FeedSource struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// IntelSource is a feed source with intel-specific metadata
// (think tanks, defense outlets, OSINT, cyber advisories).
type IntelSource struct {
	FeedSource
	SourceType string   `json:"source_type"` // "think-tank", "defense", "osint", "cyber", "regional"
	Topics     []string `json:"topics"`
	Region     string   `json:"region,omitempty"`
}
