package analytics

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// TickerMatch is a matched ticker with its type and surrounding context.
type TickerMatch struct {
	Symbol  string
	Type    string // "stock", "crypto", "index"
	Context string
}

// KnownCrypto lists crypto symbols recognized as bare words.
var KnownCrypto = []string{
	"BTC", "ETH", "SOL", "XRP", "ADA", "DOGE", "DOT", "AVAX",
	"MATIC", "LINK", "UNI", "ATOM", "LTC", "BCH", "XLM", "ALGO",
	"VET", "FIL", "THETA", "AAVE", "EOS", "XTZ", "MKR", "COMP",
}

// KnownIndices lists index symbols.
var KnownIndices = []string{
	"SPX", "DJI", "NDX", "RUT", "VIX", "DXY",
}

// ExcludedWords are common short words and acronyms that would otherwise
// match the ticker patterns.
var ExcludedWords = []string{
	"A", "I", "AM", "PM", "CEO", "CFO", "CTO", "COO", "AI", "US",
	"UK", "EU", "UN", "IT", "TV", "PC", "PR", "HR", "VP", "MD",
	"OF", "OR", "ON", "BY", "TO", "AT", "IS", "IN", "IF", "AS",
	"AN", "THE", "AND", "FOR", "NOT", "BUT", "NEW", "OLD", "TOP",
	"IPO", "FDA", "SEC", "FBI", "CIA", "NSA", "DOJ", "EPA",
	"IRS", "GDP", "CPI", "PMI", "IMF", "WTO", "WHO",
}

type tickerPattern struct {
	re          *regexp.Regexp
	defaultType string
}

// TickerExtractor extracts stock and crypto tickers from text using a fixed
// set of patterns applied in priority order.
type TickerExtractor struct {
	knownCrypto  map[string]bool
	knownIndices map[string]bool
	excluded     map[string]bool
	patterns     []tickerPattern // rebuilt when the crypto set changes
}

// NewTickerExtractor creates an extractor with the default symbol tables.
func NewTickerExtractor() *TickerExtractor {
	e := &TickerExtractor{
		knownCrypto:  toSet(KnownCrypto),
		knownIndices: toSet(KnownIndices),
		excluded:     toSet(ExcludedWords),
	}
	e.rebuildPatterns()
	return e
}

// Extract returns the deduplicated, alphabetically sorted ticker symbols
// found in text.
func (e *TickerExtractor) Extract(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]bool)
	for _, p := range e.patterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			symbol := strings.ToUpper(m[1])
			if !e.excluded[symbol] {
				seen[symbol] = true
			}
		}
	}

	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// ExtractWithTypes returns matched tickers with their type and roughly 20
// characters of surrounding context. Only the first occurrence of each
// symbol across all patterns is kept. Known crypto and index symbols
// override the matching pattern's default type.
func (e *TickerExtractor) ExtractWithTypes(text string) []TickerMatch {
	if text == "" {
		return nil
	}

	var matches []TickerMatch
	seen := make(map[string]bool)

	for _, p := range e.patterns {
		for _, idx := range p.re.FindAllStringSubmatchIndex(text, -1) {
			symbol := strings.ToUpper(text[idx[2]:idx[3]])
			if e.excluded[symbol] || seen[symbol] {
				continue
			}
			seen[symbol] = true

			tickerType := p.defaultType
			switch {
			case e.knownCrypto[symbol]:
				tickerType = "crypto"
			case e.knownIndices[symbol]:
				tickerType = "index"
			}

			start := idx[0] - 20
			if start < 0 {
				start = 0
			}
			end := idx[1] + 20
			if end > len(text) {
				end = len(text)
			}
			// Clamp the window to rune boundaries so the context never
			// holds a partial multi-byte character.
			for start > 0 && !utf8.RuneStart(text[start]) {
				start--
			}
			for end < len(text) && !utf8.RuneStart(text[end]) {
				end++
			}

			matches = append(matches, TickerMatch{
				Symbol:  symbol,
				Type:    tickerType,
				Context: strings.TrimSpace(text[start:end]),
			})
		}
	}
	return matches
}

// AddCrypto registers a crypto symbol and rebuilds the compiled patterns.
func (e *TickerExtractor) AddCrypto(symbol string) {
	e.knownCrypto[strings.ToUpper(symbol)] = true
	e.rebuildPatterns()
}

// AddExcluded adds a word to the exclusion list.
func (e *TickerExtractor) AddExcluded(word string) {
	e.excluded[strings.ToUpper(word)] = true
}

// IsTicker reports whether a symbol looks like a plausible ticker.
func (e *TickerExtractor) IsTicker(symbol string) bool {
	symbol = strings.ToUpper(symbol)
	if e.excluded[symbol] {
		return false
	}
	if len(symbol) < 1 || len(symbol) > 5 {
		return false
	}
	for _, r := range symbol {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// rebuildPatterns recompiles the pattern set. Pattern order is the matching
// priority order.
func (e *TickerExtractor) rebuildPatterns() {
	crypto := make([]string, 0, len(e.knownCrypto))
	for s := range e.knownCrypto {
		crypto = append(crypto, s)
	}
	sort.Strings(crypto)

	e.patterns = []tickerPattern{
		// $AAPL style.
		{regexp.MustCompile(`\$([A-Z]{1,5})\b`), "stock"},
		// Explicit stock mentions: "AAPL stock", "shares of AAPL Inc".
		{regexp.MustCompile(`(?i)\b([A-Z]{2,5})\s+(?:stock|shares|inc|corp|ltd)`), "stock"},
		// Known crypto symbols as bare words.
		{regexp.MustCompile(`\b(` + strings.Join(crypto, "|") + `)\b`), "crypto"},
		// Parenthetical ticker: "(AAPL)".
		{regexp.MustCompile(`\(([A-Z]{2,5})\)`), "stock"},
	}
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
