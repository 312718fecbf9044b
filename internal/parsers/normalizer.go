package parsers

import (
	"strings"

	"github.com/seenimoa/newsscan/internal/analytics"
	"github.com/seenimoa/newsscan/pkg/models"
	"github.com/seenimoa/newsscan/pkg/utils"
)

// DefaultSummaryLength bounds summaries derived from article content.
const DefaultSummaryLength = 300

// Normalizer turns a raw or partial news item into a fully-populated
// canonical item: cleans text fields, derives missing fields, and enriches
// with analytics. Fields already populated by a connector (topics, tickers)
// are trusted and not recomputed; alert detection always re-runs on the
// cleaned title.
type Normalizer struct {
	Topics  *analytics.TopicDetector
	Alerts  *analytics.AlertDetector
	Tickers *analytics.TickerExtractor
	Regions *analytics.RegionDetector
}

// NewNormalizer creates a normalizer with the default analyzers.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		Topics:  analytics.NewTopicDetector(),
		Alerts:  analytics.NewAlertDetector(),
		Tickers: analytics.NewTickerExtractor(),
		Regions: analytics.NewRegionDetector(),
	}
}

// Normalize returns a new, fully-populated item. The input is not mutated.
func (n *Normalizer) Normalize(item models.NewsItem) models.NewsItem {
	title := CleanText(item.Title)
	summary := CleanText(item.Summary)
	content := CleanText(item.ContentText)

	fullText := strings.TrimSpace(title + " " + summary + " " + content)

	// Trust connector-populated analytics, detect only what is missing.
	topics := item.Topics
	if len(topics) == 0 {
		topics = n.Topics.Detect(fullText)
	}
	tickers := item.Tickers
	if len(tickers) == 0 {
		tickers = n.Tickers.Extract(fullText)
	}

	// Alert detection always runs on the cleaned title.
	alert := n.Alerts.Detect(title)

	region := item.Metadata.Region
	if region == "" {
		region = n.Regions.Detect(fullText)
	}

	domain := item.Metadata.Domain
	if domain == "" {
		domain = utils.ExtractDomain(item.URL)
	}

	source := item.Source
	if source == "" {
		source = utils.ExtractDomain(item.URL)
	}

	publishedAt := item.PublishedAt
	if publishedAt == "" {
		publishedAt = utils.NowISO()
	}
	fetchedAt := item.FetchedAt
	if fetchedAt == "" {
		fetchedAt = utils.NowISO()
	}

	if summary == "" {
		summary = ExtractSummary(content, DefaultSummaryLength)
	}

	language := item.Language
	if language == "" {
		language = "en"
	}

	authors := item.Authors
	if authors == nil {
		authors = []string{}
	}

	return models.NewsItem{
		ID:          item.ID,
		Source:      source,
		URL:         item.URL,
		Title:       title,
		PublishedAt: publishedAt,
		FetchedAt:   fetchedAt,
		Authors:     authors,
		Summary:     summary,
		ContentText: content,
		Tickers:     tickers,
		Topics:      topics,
		Language:    language,
		Metadata: models.NewsMetadata{
			Category:     item.Metadata.Category,
			IsAlert:      alert.IsAlert,
			AlertKeyword: alert.Keyword,
			Region:       region,
			Domain:       domain,
			ImageURL:     item.Metadata.ImageURL,
			Raw:          item.Metadata.Raw,
		},
	}
}

// NormalizeMany normalizes a batch, producing a new slice.
func (n *Normalizer) NormalizeMany(items []models.NewsItem) []models.NewsItem {
	out := make([]models.NewsItem, len(items))
	for i, item := range items {
		out[i] = n.Normalize(item)
	}
	return out
}
