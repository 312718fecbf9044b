package connectors

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/seenimoa/newsscan/internal/analytics"
	"github.com/seenimoa/newsscan/internal/config"
	"github.com/seenimoa/newsscan/internal/parsers"
	"github.com/seenimoa/newsscan/pkg/models"
	"github.com/seenimoa/newsscan/pkg/utils"
)

// RSS fetches news from RSS/Atom feeds, including the intel source group.
type RSS struct {
	feeds      map[string][]models.FeedSource
	categories []string
	intel      []models.IntelSource
	timeout    time.Duration

	parser  *gofeed.Parser
	cache   *Cache
	limiter *RateLimiter
	topics  *analytics.TopicDetector
	alerts  *analytics.AlertDetector
	tickers *analytics.TickerExtractor
	log     *zap.Logger
}

// NewRSS creates an RSS connector with the built-in feed tables. A nil
// logger is replaced with a no-op logger.
func NewRSS(cfg config.RSSConfig, scanner config.ScannerConfig, log *zap.Logger) *RSS {
	if log == nil {
		log = zap.NewNop()
	}
	delay := time.Duration(scanner.RequestDelayMS) * time.Millisecond
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	timeout := time.Duration(scanner.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ttl := time.Duration(scanner.CacheTTL) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	parser := gofeed.NewParser()
	parser.UserAgent = cfg.UserAgent
	if parser.UserAgent == "" {
		parser.UserAgent = DefaultUserAgent
	}

	return &RSS{
		feeds:      config.DefaultFeeds,
		categories: config.FeedCategories,
		intel:      config.DefaultIntelSources,
		timeout:    timeout,
		parser:     parser,
		cache:      NewCache(ttl),
		limiter:    NewRateLimiter(1, delay),
		topics:     analytics.NewTopicDetector(),
		alerts:     analytics.NewAlertDetector(),
		tickers:    analytics.NewTickerExtractor(),
		log:        log,
	}
}

// SetFeeds replaces the feed tables. Used by tests and custom deployments.
func (r *RSS) SetFeeds(feeds map[string][]models.FeedSource, categories []string) {
	r.feeds = feeds
	r.categories = categories
}

// SetIntelSources replaces the intel source list.
func (r *RSS) SetIntelSources(sources []models.IntelSource) {
	r.intel = sources
}

// Name returns the connector name.
func (r *RSS) Name() string { return "RSS" }

// Fetch retrieves news for the given categories. A failing feed is logged
// and skipped; Fetch only returns an error when the context is cancelled.
func (r *RSS) Fetch(ctx context.Context, categories []string) ([]models.NewsItem, error) {
	if len(categories) == 0 {
		categories = r.categories
	}

	var all []models.NewsItem
	for _, category := range categories {
		items, err := r.FetchCategory(ctx, category)
		if err != nil {
			return all, err
		}
		all = append(all, items...)
	}
	return all, nil
}

// FetchCategory retrieves all feeds configured for one category,
// sequentially and paced by the rate limiter. A category with no
// configured feeds yields no items.
func (r *RSS) FetchCategory(ctx context.Context, category string) ([]models.NewsItem, error) {
	feeds := r.feeds[category]
	if len(feeds) == 0 {
		r.log.Debug("rss: no feeds for category", zap.String("category", category))
		return []models.NewsItem{}, nil
	}

	cacheKey := "rss:" + category
	if cached, ok := r.cache.Get(cacheKey); ok {
		return cached.([]models.NewsItem), nil
	}

	var all []models.NewsItem
	for _, feed := range feeds {
		if err := r.limiter.Wait(ctx); err != nil {
			return all, err
		}
		items, err := r.FetchFeed(ctx, feed)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			r.log.Warn("rss: feed fetch failed",
				zap.String("feed", feed.Name), zap.Error(err))
			continue
		}
		all = append(all, items...)
	}

	r.cache.Set(cacheKey, all)
	return all, nil
}

// FetchIntel retrieves the intel source group. Each item carries the
// source's intel type and topics in its raw metadata, and inherits the
// source's region when one is declared.
func (r *RSS) FetchIntel(ctx context.Context) ([]models.NewsItem, error) {
	cacheKey := "rss:intel-sources"
	if cached, ok := r.cache.Get(cacheKey); ok {
		return cached.([]models.NewsItem), nil
	}

	var all []models.NewsItem
	for _, source := range r.intel {
		if err := r.limiter.Wait(ctx); err != nil {
			return all, err
		}
		items, err := r.FetchFeed(ctx, source.FeedSource)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			r.log.Warn("rss: intel source fetch failed",
				zap.String("source", source.Name), zap.Error(err))
			continue
		}

		for i := range items {
			if items[i].Metadata.Raw == nil {
				items[i].Metadata.Raw = map[string]any{}
			}
			items[i].Metadata.Raw["intel_type"] = source.SourceType
			items[i].Metadata.Raw["intel_topics"] = source.Topics
			if source.Region != "" {
				items[i].Metadata.Region = source.Region
			}
		}
		all = append(all, items...)
	}

	r.cache.Set(cacheKey, all)
	return all, nil
}

// FetchFeed retrieves and transforms a single feed.
func (r *RSS) FetchFeed(ctx context.Context, source models.FeedSource) ([]models.NewsItem, error) {
	r.log.Debug("rss: fetching", zap.String("feed", source.Name), zap.String("url", source.URL))

	reqCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	feed, err := r.parser.ParseURLWithContext(source.URL, reqCtx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", source.Name, err)
	}

	r.log.Info("rss: fetched", zap.String("feed", source.Name), zap.Int("items", len(feed.Items)))

	items := make([]models.NewsItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		items = append(items, r.transformEntry(entry, source))
	}
	return items, nil
}

// transformEntry maps one feed entry to the normalized schema.
func (r *RSS) transformEntry(entry *gofeed.Item, source models.FeedSource) models.NewsItem {
	title := parsers.CleanText(entry.Title)
	summary := parsers.CleanText(entry.Description)
	content := parsers.CleanText(entry.Content)
	if content == "" {
		content = summary
	}
	fullText := title + " " + summary + " " + content

	var publishedAt string
	if entry.PublishedParsed != nil {
		publishedAt = utils.FormatISO(*entry.PublishedParsed)
	} else if entry.UpdatedParsed != nil {
		publishedAt = utils.FormatISO(*entry.UpdatedParsed)
	} else {
		publishedAt = utils.ParseRSSDate(entry.Published)
	}

	authors := []string{}
	for _, a := range entry.Authors {
		if a != nil && a.Name != "" {
			authors = append(authors, a.Name)
		}
	}

	idBasis := entry.Link
	if idBasis == "" {
		idBasis = title
	}
	alert := r.alerts.Detect(title)

	return models.NewsItem{
		ID:          utils.GenerateID(idBasis, source.Name),
		Source:      source.Name,
		URL:         entry.Link,
		Title:       title,
		PublishedAt: publishedAt,
		FetchedAt:   utils.NowISO(),
		Authors:     authors,
		Summary:     summary,
		ContentText: content,
		Tickers:     r.tickers.Extract(fullText),
		Topics:      r.topics.Detect(fullText),
		Language:    "en",
		Metadata: models.NewsMetadata{
			Category:     source.Category,
			IsAlert:      alert.IsAlert,
			AlertKeyword: alert.Keyword,
			Raw: map[string]any{
				"title":     entry.Title,
				"link":      entry.Link,
				"published": entry.Published,
			},
		},
	}
}
