package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seenimoa/newsscan/pkg/models"
)

func storageItem(id, title string) models.NewsItem {
	return models.NewsItem{
		ID:          id,
		Source:      "Test Source",
		URL:         "https://news.example.org/" + id,
		Title:       title,
		PublishedAt: "2024-06-01T12:00:00Z",
		FetchedAt:   "2024-06-01T12:30:00Z",
		Authors:     []string{"Jane Doe"},
		Summary:     "Summary for " + title,
		Tickers:     []string{"AAPL"},
		Topics:      []string{"FINANCE"},
		Language:    "en",
		Metadata: models.NewsMetadata{
			Category: "finance",
			Raw:      map[string]any{"original_title": title},
		},
	}
}

func TestJSONLSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "news.jsonl")
	s := NewJSONL(path, false, nil)

	items := []models.NewsItem{
		storageItem("1", "Fed raises rates"),
		storageItem("2", "Chip exports restricted"),
	}
	if err := s.Save(ctx, items); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("loaded %d items, want 2", len(got))
	}
	if got[0].ID != "1" || got[0].Title != "Fed raises rates" {
		t.Errorf("first item = %+v", got[0])
	}
	if got[1].Tickers[0] != "AAPL" || got[1].Metadata.Category != "finance" {
		t.Errorf("second item lost fields: %+v", got[1])
	}
}

func TestJSONLRawMetadataNotSerialized(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "news.jsonl")
	s := NewJSONL(path, false, nil)

	if err := s.Save(ctx, []models.NewsItem{storageItem("1", "Story")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(data), "original_title") {
		t.Error("raw source payload leaked into serialized output")
	}
}

func TestJSONLAppendMode(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "news.jsonl")

	s := NewJSONL(path, true, nil)
	if err := s.Save(ctx, []models.NewsItem{storageItem("1", "First")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, []models.NewsItem{storageItem("2", "Second")}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("append mode: loaded %d items, want 2", len(got))
	}
}

func TestJSONLOverwriteMode(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "news.jsonl")

	s := NewJSONL(path, false, nil)
	if err := s.Save(ctx, []models.NewsItem{storageItem("1", "First")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, []models.NewsItem{storageItem("2", "Second")}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("overwrite mode: got %v", got)
	}
}

func TestJSONLLoadSkipsMalformedLines(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "news.jsonl")
	s := NewJSONL(path, false, nil)

	if err := s.Save(ctx, []models.NewsItem{storageItem("1", "Good")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("{not json\n\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.Close()

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("malformed line not skipped: got %v", got)
	}
}

func TestJSONLLoadMissingFile(t *testing.T) {
	s := NewJSONL(filepath.Join(t.TempDir(), "absent.jsonl"), false, nil)
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("got %v, want empty non-nil slice", got)
	}
}

func TestJSONLClear(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "news.jsonl")
	s := NewJSONL(path, false, nil)

	if err := s.Save(ctx, []models.NewsItem{storageItem("1", "Story")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file still present after clear")
	}
	// Clearing again is not an error.
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestJSONLWithTimestampFilename(t *testing.T) {
	dir := t.TempDir()
	s := NewJSONLWithTimestamp(dir, nil)

	base := filepath.Base(s.Path())
	if !strings.HasPrefix(base, "news_") || !strings.HasSuffix(base, ".jsonl") {
		t.Errorf("unexpected filename %q", base)
	}
	if filepath.Dir(s.Path()) != dir {
		t.Errorf("file placed outside dir: %s", s.Path())
	}
}

func TestJSONLSaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "news.jsonl")
	s := NewJSONL(path, false, nil)
	if err := s.Save(context.Background(), []models.NewsItem{storageItem("1", "Story")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file missing: %v", err)
	}
}
