package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.GDELT.BaseURL != "https://api.gdeltproject.org" {
		t.Errorf("gdelt base url = %q", cfg.GDELT.BaseURL)
	}
	if cfg.GDELT.MaxRecords != 20 {
		t.Errorf("gdelt max records = %d, want 20", cfg.GDELT.MaxRecords)
	}
	if cfg.GDELT.Timespan != "7d" || cfg.GDELT.Language != "english" {
		t.Errorf("gdelt = %+v", cfg.GDELT)
	}
	if cfg.Scanner.RequestTimeout != 15 || cfg.Scanner.RequestDelayMS != 500 {
		t.Errorf("scanner = %+v", cfg.Scanner)
	}
	if cfg.Scanner.CacheTTL != 300 {
		t.Errorf("cache ttl = %d, want 300", cfg.Scanner.CacheTTL)
	}
	if len(cfg.Scanner.Categories) != 6 {
		t.Errorf("categories = %v", cfg.Scanner.Categories)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Storage.SQLitePath != "" || cfg.Storage.Append {
		t.Errorf("storage = %+v", cfg.Storage)
	}
}

func TestLoadFromFile(t *testing.T) {
	yaml := `
scanner:
  output_dir: /tmp/news
  request_timeout: 30
gdelt:
  timespan: 24h
  max_records: 50
logging:
  level: debug
  format: json
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Scanner.OutputDir != "/tmp/news" {
		t.Errorf("output dir = %q", cfg.Scanner.OutputDir)
	}
	if cfg.Scanner.RequestTimeout != 30 {
		t.Errorf("request timeout = %d", cfg.Scanner.RequestTimeout)
	}
	if cfg.GDELT.Timespan != "24h" || cfg.GDELT.MaxRecords != 50 {
		t.Errorf("gdelt = %+v", cfg.GDELT)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	// Values absent from the file keep their defaults.
	if cfg.GDELT.BaseURL != "https://api.gdeltproject.org" {
		t.Errorf("default lost: base url = %q", cfg.GDELT.BaseURL)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("NEWSSCAN_GDELT_TIMESPAN", "48h")
	t.Setenv("NEWSSCAN_LOGGING_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GDELT.Timespan != "48h" {
		t.Errorf("env override ignored: timespan = %q", cfg.GDELT.Timespan)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("env override ignored: level = %q", cfg.Logging.Level)
	}
}

// --- built-in feed tables ---

func TestFeedTablesComplete(t *testing.T) {
	for _, category := range FeedCategories {
		feeds := DefaultFeeds[category]
		if len(feeds) == 0 {
			t.Errorf("no feeds for category %q", category)
		}
		for _, feed := range feeds {
			if feed.Name == "" || feed.URL == "" {
				t.Errorf("incomplete feed in %q: %+v", category, feed)
			}
			if feed.Category != category {
				t.Errorf("feed %q filed under %q but tagged %q", feed.Name, category, feed.Category)
			}
		}
	}
}

func TestIntelSourcesComplete(t *testing.T) {
	if len(DefaultIntelSources) == 0 {
		t.Fatal("no intel sources")
	}
	types := map[string]bool{}
	for _, src := range DefaultIntelSources {
		if src.Name == "" || src.URL == "" || src.SourceType == "" {
			t.Errorf("incomplete intel source: %+v", src)
		}
		if len(src.Topics) == 0 {
			t.Errorf("intel source %q has no topics", src.Name)
		}
		types[src.SourceType] = true
	}
	for _, want := range []string{"think-tank", "defense", "osint", "cyber", "regional"} {
		if !types[want] {
			t.Errorf("no %q intel source", want)
		}
	}
}

func TestGDELTQueryTables(t *testing.T) {
	for _, category := range GDELTCategories {
		q, ok := GDELTQueries[category]
		if !ok || q == "" {
			t.Errorf("no query for category %q", category)
		}
	}
	if len(GDELTQueries) != len(GDELTCategories) {
		t.Errorf("query table has %d entries, categories list %d",
			len(GDELTQueries), len(GDELTCategories))
	}
}
