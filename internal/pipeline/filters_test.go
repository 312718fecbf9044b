package pipeline

import (
	"testing"
	"time"

	"github.com/seenimoa/newsscan/pkg/models"
)

func filterItem(id string) models.NewsItem {
	return models.NewsItem{
		ID:          id,
		Source:      "Test",
		Title:       "Title " + id,
		PublishedAt: "2024-06-01T12:00:00Z",
	}
}

func TestFilterEmptyConfigKeepsAll(t *testing.T) {
	items := []models.NewsItem{filterItem("1"), filterItem("2")}
	got := Filter(items, FilterConfig{})
	if len(got) != 2 {
		t.Fatalf("expected all items to pass, got %d", len(got))
	}
}

func TestFilterCategories(t *testing.T) {
	a := filterItem("1")
	a.Metadata.Category = "finance"
	b := filterItem("2")
	b.Metadata.Category = "tech"

	got := Filter([]models.NewsItem{a, b}, FilterConfig{Categories: []string{"finance"}})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("got %v", got)
	}
}

func TestFilterTopics(t *testing.T) {
	a := filterItem("1")
	a.Topics = []string{"CRYPTO", "FINANCE"}
	b := filterItem("2")
	b.Topics = []string{"TECH"}

	got := Filter([]models.NewsItem{a, b}, FilterConfig{Topics: []string{"CRYPTO"}})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("got %v", got)
	}
}

func TestFilterKeywords(t *testing.T) {
	a := filterItem("1")
	a.Title = "Fed raises rates"
	b := filterItem("2")
	b.Title = "Quiet day in markets"

	got := Filter([]models.NewsItem{a, b}, FilterConfig{IncludeKeywords: []string{"fed"}})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("include keywords: got %v", got)
	}

	got = Filter([]models.NewsItem{a, b}, FilterConfig{ExcludeKeywords: []string{"FED"}})
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("exclude keywords (case-insensitive): got %v", got)
	}
}

func TestFilterMaxAge(t *testing.T) {
	now := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)

	fresh := filterItem("fresh")
	fresh.PublishedAt = "2024-06-02T06:00:00Z"
	old := filterItem("old")
	old.PublishedAt = "2024-05-20T00:00:00Z"

	got := filterAt([]models.NewsItem{fresh, old}, FilterConfig{MaxAgeHours: 24}, now)
	if len(got) != 1 || got[0].ID != "fresh" {
		t.Fatalf("got %v", got)
	}
}

func TestFilterMaxAgeFailOpen(t *testing.T) {
	now := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)

	undated := filterItem("undated")
	undated.PublishedAt = "not a timestamp"

	got := filterAt([]models.NewsItem{undated}, FilterConfig{MaxAgeHours: 1}, now)
	if len(got) != 1 {
		t.Fatal("items with unparseable dates must pass the age filter")
	}
}

func TestFilterAlertsOnly(t *testing.T) {
	a := filterItem("1")
	a.Metadata.IsAlert = true
	b := filterItem("2")

	got := Filter([]models.NewsItem{a, b}, FilterConfig{AlertsOnly: true})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("got %v", got)
	}
}

func TestFilterSources(t *testing.T) {
	a := filterItem("1")
	a.Source = "CNBC"
	b := filterItem("2")
	b.Source = "Bad Outlet"

	got := Filter([]models.NewsItem{a, b}, FilterConfig{Sources: []string{"CNBC"}})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("sources: got %v", got)
	}

	got = Filter([]models.NewsItem{a, b}, FilterConfig{ExcludeSources: []string{"Bad Outlet"}})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("exclude sources: got %v", got)
	}
}

func TestFilterTickers(t *testing.T) {
	a := filterItem("1")
	a.Tickers = []string{"AAPL"}
	b := filterItem("2")

	got := Filter([]models.NewsItem{a, b}, FilterConfig{Tickers: []string{"AAPL", "TSLA"}})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("got %v", got)
	}
}

func TestFilterCombinedCriteria(t *testing.T) {
	a := filterItem("1")
	a.Metadata.Category = "finance"
	a.Metadata.IsAlert = true
	b := filterItem("2")
	b.Metadata.Category = "finance"

	got := Filter([]models.NewsItem{a, b}, FilterConfig{
		Categories: []string{"finance"},
		AlertsOnly: true,
	})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("all criteria must hold, got %v", got)
	}
}

func TestFilterChain(t *testing.T) {
	a := filterItem("1")
	a.Metadata.Category = "finance"
	a.Title = "Fed announcement"
	b := filterItem("2")
	b.Metadata.Category = "finance"
	b.Title = "Quiet markets"
	c := filterItem("3")
	c.Metadata.Category = "tech"
	c.Title = "Fed coverage"

	got := NewFilterChain().
		Categories([]string{"finance"}).
		Keywords([]string{"fed"}, false).
		Apply([]models.NewsItem{a, b, c})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("got %v", got)
	}
}

func TestFilterChainCustomPredicate(t *testing.T) {
	a := filterItem("1")
	a.Language = "en"
	b := filterItem("2")
	b.Language = "de"

	got := NewFilterChain().
		Add(func(item models.NewsItem) bool { return item.Language == "en" }).
		Apply([]models.NewsItem{a, b})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("got %v", got)
	}
}
