// Package analytics provides keyword and pattern matchers over plain news
// text: topic, alert, ticker, region, and sentiment detection, plus
// multi-strategy deduplication. All matching is literal substring matching;
// there is no stemming or tokenization.
package analytics

import "strings"

// Topic pairs a topic label with the keywords that signal it.
// Topic definition order determines detection output order.
type Topic struct {
	Name     string
	Keywords []string
}

// DefaultTopics is the built-in topic table for trading-relevant news.
var DefaultTopics = []Topic{
	{"FINANCE", []string{
		"fed", "federal reserve", "interest rate", "inflation", "gdp",
		"unemployment", "recession", "rally", "crash", "stock", "market",
		"earnings", "quarterly", "dividend", "ipo", "merger", "acquisition",
	}},
	{"CRYPTO", []string{
		"bitcoin", "btc", "ethereum", "eth", "crypto", "cryptocurrency",
		"blockchain", "defi", "nft", "stablecoin", "binance", "coinbase",
	}},
	{"TECH", []string{
		"ai", "artificial intelligence", "machine learning", "startup",
		"ipo", "acquisition", "layoff", "tech company", "silicon valley",
		"software", "saas", "cloud computing",
	}},
	{"CYBER", []string{
		"cyber", "hack", "hacker", "ransomware", "malware", "breach",
		"vulnerability", "exploit", "phishing", "apt", "zero-day",
	}},
	{"CONFLICT", []string{
		"war", "military", "troops", "invasion", "strike", "missile",
		"combat", "offensive", "ceasefire", "casualties", "bombing",
	}},
	{"NUCLEAR", []string{
		"nuclear", "icbm", "warhead", "nonproliferation", "uranium",
		"plutonium", "reactor", "enrichment",
	}},
	{"ENERGY", []string{
		"oil", "crude", "opec", "natural gas", "lng", "energy",
		"petroleum", "pipeline", "refinery",
	}},
	{"GEOPOLITICS", []string{
		"sanctions", "tariff", "trade war", "diplomatic", "embassy",
		"treaty", "summit", "bilateral", "nato", "g7", "g20",
	}},
}

// TopicDetector detects topics in text using keyword matching.
type TopicDetector struct {
	topics        []Topic
	caseSensitive bool
}

// NewTopicDetector creates a detector with the default topic table.
func NewTopicDetector() *TopicDetector {
	return NewTopicDetectorWith(DefaultTopics, false)
}

// NewTopicDetectorWith creates a detector with a custom topic table.
func NewTopicDetectorWith(topics []Topic, caseSensitive bool) *TopicDetector {
	d := &TopicDetector{caseSensitive: caseSensitive}
	d.topics = append(d.topics, topics...)
	return d
}

// Detect returns the topics found in text, one entry per topic, in topic
// definition order. A topic matches when any of its keywords occurs as a
// substring.
func (d *TopicDetector) Detect(text string) []string {
	if text == "" {
		return nil
	}
	search := d.fold(text)

	var detected []string
	for _, topic := range d.topics {
		for _, kw := range topic.Keywords {
			if strings.Contains(search, d.fold(kw)) {
				detected = append(detected, topic.Name)
				break // one match per topic is enough
			}
		}
	}
	return detected
}

// DetectWithScores returns per-topic keyword occurrence counts, counting
// every occurrence rather than just presence. Topics with zero matches are
// omitted.
func (d *TopicDetector) DetectWithScores(text string) map[string]int {
	if text == "" {
		return nil
	}
	search := d.fold(text)

	scores := make(map[string]int)
	for _, topic := range d.topics {
		count := 0
		for _, kw := range topic.Keywords {
			count += strings.Count(search, d.fold(kw))
		}
		if count > 0 {
			scores[topic.Name] = count
		}
	}
	return scores
}

// AddTopic adds a topic, replacing its keywords if the name already exists.
func (d *TopicDetector) AddTopic(name string, keywords []string) {
	for i := range d.topics {
		if d.topics[i].Name == name {
			d.topics[i].Keywords = keywords
			return
		}
	}
	d.topics = append(d.topics, Topic{Name: name, Keywords: keywords})
}

// RemoveTopic removes a topic by name.
func (d *TopicDetector) RemoveTopic(name string) {
	for i := range d.topics {
		if d.topics[i].Name == name {
			d.topics = append(d.topics[:i], d.topics[i+1:]...)
			return
		}
	}
}

// Topics returns all topic names in definition order.
func (d *TopicDetector) Topics() []string {
	names := make([]string, len(d.topics))
	for i, t := range d.topics {
		names[i] = t.Name
	}
	return names
}

func (d *TopicDetector) fold(s string) string {
	if d.caseSensitive {
		return s
	}
	return strings.ToLower(s)
}
