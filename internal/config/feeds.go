package config

import "github.com/seenimoa/newsscan/pkg/models"

// FeedCategories lists the built-in feed categories in fetch order.
var FeedCategories = []string{"politics", "tech", "finance", "gov", "ai", "intel"}

// DefaultFeeds are the built-in RSS/Atom feed sources, grouped by category.
var DefaultFeeds = map[string][]models.FeedSource{
	"politics": {
		{Name: "BBC World", URL: "https://feeds.bbci.co.uk/news/world/rss.xml", Category: "politics"},
		{Name: "NPR News", URL: "https://feeds.npr.org/1001/rss.xml", Category: "politics"},
		{Name: "Guardian World", URL: "https://www.theguardian.com/world/rss", Category: "politics"},
		{Name: "NYT World", URL: "https://rss.nytimes.com/services/xml/rss/nyt/World.xml", Category: "politics"},
	},
	"tech": {
		{Name: "Hacker News", URL: "https://hnrss.org/frontpage", Category: "tech"},
		{Name: "Ars Technica", URL: "https://feeds.arstechnica.com/arstechnica/technology-lab", Category: "tech"},
		{Name: "The Verge", URL: "https://www.theverge.com/rss/index.xml", Category: "tech"},
		{Name: "MIT Tech Review", URL: "https://www.technologyreview.com/feed/", Category: "tech"},
	},
	"finance": {
		{Name: "CNBC", URL: "https://www.cnbc.com/id/100003114/device/rss/rss.html", Category: "finance"},
		{Name: "MarketWatch", URL: "https://feeds.marketwatch.com/marketwatch/topstories", Category: "finance"},
		{Name: "Yahoo Finance", URL: "https://finance.yahoo.com/news/rssindex", Category: "finance"},
		{Name: "BBC Business", URL: "https://feeds.bbci.co.uk/news/business/rss.xml", Category: "finance"},
	},
	"gov": {
		{Name: "White House", URL: "https://www.whitehouse.gov/news/feed/", Category: "gov"},
		{Name: "Federal Reserve", URL: "https://www.federalreserve.gov/feeds/press_all.xml", Category: "gov"},
		{Name: "SEC Announcements", URL: "https://www.sec.gov/news/pressreleases.rss", Category: "gov"},
	},
	"ai": {
		{Name: "OpenAI Blog", URL: "https://openai.com/news/rss.xml", Category: "ai"},
		{Name: "ArXiv AI", URL: "https://rss.arxiv.org/rss/cs.AI", Category: "ai"},
	},
	"intel": {
		{Name: "CSIS", URL: "https://www.csis.org/analysis/feed", Category: "intel"},
		{Name: "Brookings", URL: "https://www.brookings.edu/feed/", Category: "intel"},
	},
}

// DefaultIntelSources are specialist feeds (think tanks, defense outlets,
// OSINT, cyber advisories) fetched by the intel group.
var DefaultIntelSources = []models.IntelSource{
	{FeedSource: models.FeedSource{Name: "CSIS", URL: "https://www.csis.org/analysis/feed", Category: "intel"}, SourceType: "think-tank", Topics: []string{"defense", "geopolitics"}},
	{FeedSource: models.FeedSource{Name: "Brookings", URL: "https://www.brookings.edu/feed/", Category: "intel"}, SourceType: "think-tank", Topics: []string{"policy", "geopolitics"}},
	{FeedSource: models.FeedSource{Name: "CFR", URL: "https://www.cfr.org/rss.xml", Category: "intel"}, SourceType: "think-tank", Topics: []string{"foreign-policy"}},
	{FeedSource: models.FeedSource{Name: "Defense One", URL: "https://www.defenseone.com/rss/all/", Category: "intel"}, SourceType: "defense", Topics: []string{"military", "defense"}},
	{FeedSource: models.FeedSource{Name: "War on Rocks", URL: "https://warontherocks.com/feed/", Category: "intel"}, SourceType: "defense", Topics: []string{"military", "strategy"}},
	{FeedSource: models.FeedSource{Name: "Breaking Defense", URL: "https://breakingdefense.com/feed/", Category: "intel"}, SourceType: "defense", Topics: []string{"military", "defense"}},
	{FeedSource: models.FeedSource{Name: "The Diplomat", URL: "https://thediplomat.com/feed/", Category: "intel"}, SourceType: "regional", Topics: []string{"asia-pacific"}, Region: "APAC"},
	{FeedSource: models.FeedSource{Name: "Al-Monitor", URL: "https://www.al-monitor.com/rss", Category: "intel"}, SourceType: "regional", Topics: []string{"middle-east"}, Region: "MENA"},
	{FeedSource: models.FeedSource{Name: "Bellingcat", URL: "https://www.bellingcat.com/feed/", Category: "intel"}, SourceType: "osint", Topics: []string{"investigation", "osint"}},
	{FeedSource: models.FeedSource{Name: "CISA Alerts", URL: "https://www.cisa.gov/uscert/ncas/alerts.xml", Category: "intel"}, SourceType: "cyber", Topics: []string{"cyber", "security"}},
	{FeedSource: models.FeedSource{Name: "Krebs Security", URL: "https://krebsonsecurity.com/feed/", Category: "intel"}, SourceType: "cyber", Topics: []string{"cyber", "security"}},
}

// GDELTCategories lists the GDELT query categories in fetch order.
var GDELTCategories = []string{"politics", "tech", "finance", "gov", "ai", "intel"}

// GDELTQueries maps each category to its GDELT DOC API query template.
var GDELTQueries = map[string]string{
	"politics": "(politics OR government OR election OR congress)",
	"tech":     "(technology OR software OR startup OR AI)",
	"finance":  `(finance OR "stock market" OR economy OR banking)`,
	"gov":      `("federal government" OR "white house" OR congress OR regulation)`,
	"ai":       `("artificial intelligence" OR "machine learning" OR AI OR ChatGPT)`,
	"intel":    "(intelligence OR security OR military OR defense)",
}
