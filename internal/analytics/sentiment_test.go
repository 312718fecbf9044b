package analytics

import "testing"

func TestSentimentPositive(t *testing.T) {
	a := NewSentimentAnalyzer()
	result := a.Analyze("Stock surges on strong earnings, rally continues")
	if result.Sentiment != SentimentPositive {
		t.Fatalf("got %q, want positive", result.Sentiment)
	}
	if result.Score <= 0 {
		t.Errorf("expected positive score, got %v", result.Score)
	}
}

func TestSentimentNegative(t *testing.T) {
	a := NewSentimentAnalyzer()
	result := a.Analyze("Market crashes amid recession fears, stocks plunge")
	if result.Sentiment != SentimentNegative {
		t.Fatalf("got %q, want negative", result.Sentiment)
	}
	if result.Score >= 0 {
		t.Errorf("expected negative score, got %v", result.Score)
	}
}

func TestSentimentNeutral(t *testing.T) {
	a := NewSentimentAnalyzer()
	result := a.Analyze("The meeting was held yesterday")
	if result.Sentiment != SentimentNeutral {
		t.Fatalf("got %q, want neutral", result.Sentiment)
	}
	if result.Score != 0 {
		t.Errorf("expected zero score, got %v", result.Score)
	}
	if result.Confidence != 0 {
		t.Errorf("expected zero confidence with no matches, got %v", result.Confidence)
	}
}

func TestSentimentMixed(t *testing.T) {
	a := NewSentimentAnalyzer()
	result := a.Analyze("Stocks rally despite crash concerns")
	if result.Sentiment != SentimentMixed {
		t.Fatalf("got %q, want mixed", result.Sentiment)
	}
}

func TestSentimentConfidenceCapped(t *testing.T) {
	a := NewSentimentAnalyzer()
	result := a.Analyze("surge soar rally gain rise jump boom growth")
	if result.Confidence != 1.0 {
		t.Fatalf("expected confidence capped at 1.0, got %v", result.Confidence)
	}
}

func TestSentimentIsPositiveIsNegative(t *testing.T) {
	a := NewSentimentAnalyzer()
	if !a.IsPositive("Strong rally in tech stocks") {
		t.Error("expected positive")
	}
	if a.IsPositive("Market crashes") {
		t.Error("expected not positive")
	}
	if !a.IsNegative("Bankruptcy filing triggers collapse") {
		t.Error("expected negative")
	}
}

func TestSentimentAddKeywords(t *testing.T) {
	a := NewSentimentAnalyzer()
	a.AddPositive("moonshot")
	a.AddNegative("rugpull")
	if !a.IsPositive("A genuine moonshot") {
		t.Error("expected custom positive keyword to register")
	}
	if !a.IsNegative("Another rugpull") {
		t.Error("expected custom negative keyword to register")
	}
}
