package analytics

import "strings"

// Sentiment classification labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentMixed    = "mixed"
)

// SentimentResult is the outcome of sentiment analysis.
type SentimentResult struct {
	Sentiment        string
	Score            float64 // -1.0 to 1.0
	Confidence       float64 // 0.0 to 1.0
	PositiveKeywords []string
	NegativeKeywords []string
}

// PositiveKeywords is the built-in positive sentiment vocabulary.
var PositiveKeywords = []string{
	"surge", "soar", "rally", "gain", "rise", "jump", "boom", "bull",
	"breakthrough", "success", "win", "growth", "profit", "beat",
	"optimistic", "bullish", "recovery", "strong", "record high",
	"upgrade", "outperform", "exceed", "positive", "improvement",
}

// NegativeKeywords is the built-in negative sentiment vocabulary.
var NegativeKeywords = []string{
	"crash", "plunge", "drop", "fall", "decline", "slump", "bear",
	"crisis", "failure", "loss", "miss", "weak", "recession",
	"pessimistic", "bearish", "downgrade", "underperform", "warning",
	"concern", "fear", "risk", "threat", "negative", "deteriorate",
	"layoff", "bankruptcy", "default", "collapse",
}

// SentimentAnalyzer scores text by counting positive and negative keyword
// presence (not frequency). Deterministic, no model dependency.
type SentimentAnalyzer struct {
	positive      []string
	negative      []string
	caseSensitive bool
}

// NewSentimentAnalyzer creates an analyzer with the default vocabularies.
func NewSentimentAnalyzer() *SentimentAnalyzer {
	return NewSentimentAnalyzerWith(PositiveKeywords, NegativeKeywords, false)
}

// NewSentimentAnalyzerWith creates an analyzer with custom vocabularies.
func NewSentimentAnalyzerWith(positive, negative []string, caseSensitive bool) *SentimentAnalyzer {
	a := &SentimentAnalyzer{caseSensitive: caseSensitive}
	a.positive = append(a.positive, positive...)
	a.negative = append(a.negative, negative...)
	return a
}

// Analyze scores the text. Score = (pos − neg) / (pos + neg), 0 with neutral
// sentiment and zero confidence when no keyword matches at all.
// Confidence = min(1.0, matches / 5).
func (a *SentimentAnalyzer) Analyze(text string) SentimentResult {
	if text == "" {
		return SentimentResult{Sentiment: SentimentNeutral}
	}
	search := a.fold(text)

	var posMatches, negMatches []string
	for _, kw := range a.positive {
		if strings.Contains(search, a.fold(kw)) {
			posMatches = append(posMatches, kw)
		}
	}
	for _, kw := range a.negative {
		if strings.Contains(search, a.fold(kw)) {
			negMatches = append(negMatches, kw)
		}
	}

	posCount := len(posMatches)
	negCount := len(negMatches)
	total := posCount + negCount
	if total == 0 {
		return SentimentResult{Sentiment: SentimentNeutral}
	}

	score := float64(posCount-negCount) / float64(total)

	confidence := float64(total) / 5.0 // max confidence at 5+ matches
	if confidence > 1.0 {
		confidence = 1.0
	}

	var sentiment string
	switch {
	case posCount > 0 && negCount > 0:
		sentiment = SentimentMixed
	case score > 0.1:
		sentiment = SentimentPositive
	case score < -0.1:
		sentiment = SentimentNegative
	default:
		sentiment = SentimentNeutral
	}

	return SentimentResult{
		Sentiment:        sentiment,
		Score:            score,
		Confidence:       confidence,
		PositiveKeywords: posMatches,
		NegativeKeywords: negMatches,
	}
}

// IsPositive reports whether text has positive sentiment.
func (a *SentimentAnalyzer) IsPositive(text string) bool {
	return a.Analyze(text).Sentiment == SentimentPositive
}

// IsNegative reports whether text has negative sentiment.
func (a *SentimentAnalyzer) IsNegative(text string) bool {
	return a.Analyze(text).Sentiment == SentimentNegative
}

// AddPositive adds a positive keyword.
func (a *SentimentAnalyzer) AddPositive(keyword string) {
	a.positive = append(a.positive, keyword)
}

// AddNegative adds a negative keyword.
func (a *SentimentAnalyzer) AddNegative(keyword string) {
	a.negative = append(a.negative, keyword)
}

func (a *SentimentAnalyzer) fold(s string) string {
	if a.caseSensitive {
		return s
	}
	return strings.ToLower(s)
}
