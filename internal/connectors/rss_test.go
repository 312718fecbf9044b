package connectors

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/seenimoa/newsscan/internal/config"
	"github.com/seenimoa/newsscan/pkg/models"
	"github.com/seenimoa/newsscan/pkg/utils"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
<channel>
<title>Test Feed</title>
<link>https://news.example.org/</link>
<item>
<title>Fed raises rates &amp; markets react</title>
<link>https://news.example.org/fed</link>
<description><![CDATA[<p>The central bank move hit $AAPL shares hard.</p>]]></description>
<dc:creator>Jane Doe</dc:creator>
<pubDate>Mon, 03 Jun 2024 10:00:00 +0000</pubDate>
</item>
<item>
<title>Missile strike reported near border</title>
<link>https://news.example.org/strike</link>
<description>Breaking coverage of the incident.</description>
<pubDate>Mon, 03 Jun 2024 09:00:00 +0000</pubDate>
</item>
</channel>
</rss>`

func testRSS() *RSS {
	return NewRSS(
		config.RSSConfig{},
		config.ScannerConfig{RequestDelayMS: 1, RequestTimeout: 5, CacheTTL: 60},
		nil,
	)
}

func serveRSS(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		io.WriteString(w, rssFixture)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRSSFetchFeed(t *testing.T) {
	srv := serveRSS(t, nil)
	r := testRSS()

	source := models.FeedSource{Name: "Test Feed", URL: srv.URL, Category: "finance"}
	items, err := r.FetchFeed(context.Background(), source)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	first := items[0]
	if first.Title != "Fed raises rates & markets react" {
		t.Errorf("title = %q", first.Title)
	}
	wantID := utils.GenerateID("https://news.example.org/fed", "Test Feed")
	if first.ID != wantID {
		t.Errorf("id = %q, want %q", first.ID, wantID)
	}
	if first.Source != "Test Feed" || first.Metadata.Category != "finance" {
		t.Errorf("source=%q category=%q", first.Source, first.Metadata.Category)
	}
	if first.PublishedAt != "2024-06-03T10:00:00Z" {
		t.Errorf("published_at = %q", first.PublishedAt)
	}
	if first.Summary != "The central bank move hit $AAPL shares hard." {
		t.Errorf("summary not cleaned: %q", first.Summary)
	}
	if len(first.Authors) != 1 || first.Authors[0] != "Jane Doe" {
		t.Errorf("authors = %v", first.Authors)
	}
	if len(first.Tickers) != 1 || first.Tickers[0] != "AAPL" {
		t.Errorf("tickers = %v", first.Tickers)
	}
	if first.Metadata.IsAlert {
		t.Error("rates headline flagged as alert")
	}

	second := items[1]
	if !second.Metadata.IsAlert || second.Metadata.AlertKeyword != "missile" {
		t.Errorf("alert not detected: %+v", second.Metadata)
	}
	if second.ContentText != second.Summary {
		t.Errorf("content should fall back to summary, got %q", second.ContentText)
	}
}

func TestRSSFetchCategory(t *testing.T) {
	srv := serveRSS(t, nil)
	r := testRSS()
	r.SetFeeds(map[string][]models.FeedSource{
		"finance": {{Name: "Test Feed", URL: srv.URL, Category: "finance"}},
	}, []string{"finance"})

	items, err := r.FetchCategory(context.Background(), "finance")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
}

func TestRSSFetchCategoryCached(t *testing.T) {
	var hits atomic.Int32
	srv := serveRSS(t, &hits)
	r := testRSS()
	r.SetFeeds(map[string][]models.FeedSource{
		"finance": {{Name: "Test Feed", URL: srv.URL, Category: "finance"}},
	}, []string{"finance"})

	ctx := context.Background()
	if _, err := r.FetchCategory(ctx, "finance"); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := r.FetchCategory(ctx, "finance"); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1 (second fetch cached)", hits.Load())
	}
}

func TestRSSFetchCategoryNoFeeds(t *testing.T) {
	r := testRSS()
	r.SetFeeds(map[string][]models.FeedSource{}, nil)

	items, err := r.FetchCategory(context.Background(), "finance")
	if err != nil {
		t.Fatalf("empty category must not error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items, want 0", len(items))
	}
}

func TestRSSFetchCategorySkipsFailingFeed(t *testing.T) {
	srv := serveRSS(t, nil)
	r := testRSS()
	r.SetFeeds(map[string][]models.FeedSource{
		"finance": {
			{Name: "Dead Feed", URL: "http://127.0.0.1:1/feed", Category: "finance"},
			{Name: "Test Feed", URL: srv.URL, Category: "finance"},
		},
	}, []string{"finance"})

	items, err := r.FetchCategory(context.Background(), "finance")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want 2 from the reachable feed", len(items))
	}
}

func TestRSSFetchIntel(t *testing.T) {
	srv := serveRSS(t, nil)
	r := testRSS()
	r.SetIntelSources([]models.IntelSource{{
		FeedSource: models.FeedSource{Name: "OSINT Daily", URL: srv.URL, Category: "intel"},
		SourceType: "osint",
		Topics:     []string{"cyber", "defense"},
		Region:     "APAC",
	}})

	items, err := r.FetchIntel(context.Background())
	if err != nil {
		t.Fatalf("fetch intel: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	for _, item := range items {
		if item.Metadata.Raw["intel_type"] != "osint" {
			t.Errorf("intel_type = %v", item.Metadata.Raw["intel_type"])
		}
		topics, ok := item.Metadata.Raw["intel_topics"].([]string)
		if !ok || len(topics) != 2 {
			t.Errorf("intel_topics = %v", item.Metadata.Raw["intel_topics"])
		}
		if item.Metadata.Region != "APAC" {
			t.Errorf("region = %q, want inherited APAC", item.Metadata.Region)
		}
	}
}

func TestRSSFetchIntelSkipsFailingSource(t *testing.T) {
	srv := serveRSS(t, nil)
	r := testRSS()
	r.SetIntelSources([]models.IntelSource{
		{FeedSource: models.FeedSource{Name: "Dead", URL: "http://127.0.0.1:1/feed"}},
		{FeedSource: models.FeedSource{Name: "OSINT Daily", URL: srv.URL}, SourceType: "osint"},
	})

	items, err := r.FetchIntel(context.Background())
	if err != nil {
		t.Fatalf("fetch intel: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want 2 from the reachable source", len(items))
	}
}

func TestRSSDefaultTables(t *testing.T) {
	r := testRSS()
	if len(r.feeds) == 0 || len(r.intel) == 0 {
		t.Fatal("built-in feed tables missing")
	}
	for _, category := range r.categories {
		if len(r.feeds[category]) == 0 {
			t.Errorf("no feeds for category %q", category)
		}
	}
}
