package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seenimoa/newsscan/internal/analytics"
	"github.com/seenimoa/newsscan/internal/config"
	"github.com/seenimoa/newsscan/pkg/models"
	"github.com/seenimoa/newsscan/pkg/utils"
)

// gdeltMaxRecords is the API's hard cap on maxrecords.
const gdeltMaxRecords = 250

// gdeltArticle is one article record from the DOC 2.0 artlist response.
type gdeltArticle struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Domain      string `json:"domain"`
	SeenDate    string `json:"seendate"`
	Language    string `json:"language"`
	SocialImage string `json:"socialimage"`
}

type gdeltResponse struct {
	Articles []gdeltArticle `json:"articles"`
}

// GDELT fetches news from the GDELT DOC 2.0 API
// (https://blog.gdeltproject.org/gdelt-doc-2-0-api-debuts/).
type GDELT struct {
	baseURL    string
	maxRecords int
	timespan   string
	language   string
	timeout    time.Duration

	queries    map[string]string
	categories []string

	cache   *Cache
	limiter *RateLimiter
	topics  *analytics.TopicDetector
	alerts  *analytics.AlertDetector
	log     *zap.Logger
}

// NewGDELT creates a GDELT connector from configuration. A nil logger is
// replaced with a no-op logger.
func NewGDELT(cfg config.GDELTConfig, scanner config.ScannerConfig, log *zap.Logger) *GDELT {
	if log == nil {
		log = zap.NewNop()
	}
	maxRecords := cfg.MaxRecords
	if maxRecords <= 0 || maxRecords > gdeltMaxRecords {
		maxRecords = gdeltMaxRecords
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
	return &GDELT{
		baseURL:    cfg.BaseURL,
		maxRecords: maxRecords,
		timespan:   cfg.Timespan,
		language:   cfg.Language,
		timeout:    timeout,
		queries:    config.GDELTQueries,
		categories: config.GDELTCategories,
		cache:      NewCache(ttl),
		limiter:    NewRateLimiter(1, delay),
		topics:     analytics.NewTopicDetector(),
		alerts:     analytics.NewAlertDetector(),
		log:        log,
	}
}

// Name returns the connector name.
func (g *GDELT) Name() string { return "GDELT" }

// Fetch retrieves news for the given categories, sequentially and paced by
// the rate limiter. A failing category is logged and skipped; Fetch only
// returns an error when the context is cancelled.
func (g *GDELT) Fetch(ctx context.Context, categories []string) ([]models.NewsItem, error) {
	if len(categories) == 0 {
		categories = g.categories
	}

	var all []models.NewsItem
	for _, category := range categories {
		if err := g.limiter.Wait(ctx); err != nil {
			return all, err
		}
		items, err := g.FetchCategory(ctx, category)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			g.log.Warn("gdelt: category fetch failed",
				zap.String("category", category), zap.Error(err))
			continue
		}
		all = append(all, items...)
	}
	return all, nil
}

// FetchCategory retrieves news for a single category. An unknown category
// is not an error: it logs a warning and returns no items.
func (g *GDELT) FetchCategory(ctx context.Context, category string) ([]models.NewsItem, error) {
	query, ok := g.queries[category]
	if !ok {
		g.log.Warn("gdelt: unknown category", zap.String("category", category))
		return []models.NewsItem{}, nil
	}

	cacheKey := fmt.Sprintf("gdelt:%s:%d:%s", category, g.maxRecords, g.timespan)
	if cached, ok := g.cache.Get(cacheKey); ok {
		return cached.([]models.NewsItem), nil
	}

	params := url.Values{}
	params.Set("query", fmt.Sprintf("%s sourcelang:%s", query, g.language))
	params.Set("timespan", g.timespan)
	params.Set("mode", "artlist")
	params.Set("maxrecords", fmt.Sprintf("%d", g.maxRecords))
	params.Set("format", "json")
	params.Set("sort", "date")

	reqURL := fmt.Sprintf("%s/api/v2/doc/doc?%s", g.baseURL, params.Encode())
	g.log.Debug("gdelt: fetching", zap.String("category", category), zap.String("url", reqURL))

	reqCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	body, contentType, err := doGet(reqCtx, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("gdelt %s: %w", category, err)
	}
	defer body.Close()

	// The API answers rate-limit and error conditions with 200 + HTML.
	if !strings.Contains(contentType, "json") {
		g.log.Warn("gdelt: non-JSON response",
			zap.String("category", category), zap.String("content_type", contentType))
		return []models.NewsItem{}, nil
	}

	var resp gdeltResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("gdelt %s: decode response: %w", category, err)
	}

	g.log.Info("gdelt: fetched",
		zap.String("category", category), zap.Int("articles", len(resp.Articles)))

	items := make([]models.NewsItem, 0, len(resp.Articles))
	for _, article := range resp.Articles {
		items = append(items, g.transformArticle(article, category))
	}
	g.cache.Set(cacheKey, items)
	return items, nil
}

// transformArticle maps one GDELT article to the normalized schema.
func (g *GDELT) transformArticle(article gdeltArticle, category string) models.NewsItem {
	source := article.Domain
	if source == "" {
		source = "GDELT"
	}
	language := article.Language
	if language == "" {
		language = "en"
	}
	alert := g.alerts.Detect(article.Title)

	return models.NewsItem{
		ID:          utils.GenerateID(article.URL, "gdelt-"+category),
		Source:      source,
		URL:         article.URL,
		Title:       article.Title,
		PublishedAt: utils.ParseGDELTDate(article.SeenDate),
		FetchedAt:   utils.NowISO(),
		Authors:     []string{},
		Summary:     "",
		ContentText: "",
		Tickers:     []string{},
		Topics:      g.topics.Detect(article.Title),
		Language:    language,
		Metadata: models.NewsMetadata{
			Category:     category,
			IsAlert:      alert.IsAlert,
			AlertKeyword: alert.Keyword,
			Domain:       article.Domain,
			ImageURL:     article.SocialImage,
			Raw: map[string]any{
				"url":      article.URL,
				"title":    article.Title,
				"domain":   article.Domain,
				"seendate": article.SeenDate,
			},
		},
	}
}
