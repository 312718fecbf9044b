// Package parsers provides text cleanup and news item normalization.
package parsers

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	whitespaceRe      = regexp.MustCompile(`\s+`)
	bracketEllipsisRe = regexp.MustCompile(`\[(…|\.\.\.)\]`)
	continueReadingRe = regexp.MustCompile(`(?i)Continue reading\.?\.?\.?$`)
	readMoreRe        = regexp.MustCompile(`(?i)Read more\.?\.?\.?$`)
)

// CleanText cleans and normalizes raw text: strips markup, decodes HTML
// entities, collapses whitespace, and removes common feed boilerplate
// suffixes. Idempotent: cleaning already-clean text is a no-op.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	if strings.ContainsAny(text, "<&") {
		// goquery both strips tags and decodes entities.
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + text + "</body>")); err == nil {
			text = doc.Text()
		}
	}

	text = whitespaceRe.ReplaceAllString(text, " ")
	text = bracketEllipsisRe.ReplaceAllString(text, "...")
	text = strings.TrimSpace(text)
	text = continueReadingRe.ReplaceAllString(text, "")
	text = readMoreRe.ReplaceAllString(text, "")

	return strings.TrimSpace(text)
}

// ExtractSummary derives a short summary from content, truncating at the
// last sentence boundary within maxLength when that boundary is past half
// the limit, else at the last word boundary past 70% of the limit, else
// hard-truncating. An ellipsis marks non-sentence truncation. maxLength
// counts runes, so multi-byte text is never cut mid-character.
func ExtractSummary(content string, maxLength int) string {
	if content == "" {
		return ""
	}
	clean := CleanText(content)
	runes := []rune(clean)
	if len(runes) <= maxLength {
		return clean
	}

	truncated := runes[:maxLength]

	if boundary := lastIndexAnyRune(truncated, ".?!"); boundary > maxLength/2 {
		return string(runes[:boundary+1])
	}

	if lastSpace := lastIndexAnyRune(truncated, " "); lastSpace > maxLength*7/10 {
		return string(truncated[:lastSpace]) + "..."
	}

	return string(truncated) + "..."
}

// lastIndexAnyRune returns the index of the last rune in runes that occurs
// in chars, or -1.
func lastIndexAnyRune(runes []rune, chars string) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if strings.ContainsRune(chars, runes[i]) {
			return i
		}
	}
	return -1
}

var sentenceEndRe = regexp.MustCompile(`[.!?]\s+`)

// SplitSentences splits text on sentence-ending punctuation followed by
// whitespace, tokenizing on those boundaries only.
func SplitSentences(text string) []string {
	if text == "" {
		return nil
	}

	var sentences []string
	last := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(text, -1) {
		// Keep the punctuation, drop the separating whitespace.
		s := strings.TrimSpace(text[last : loc[0]+1])
		if s != "" {
			sentences = append(sentences, s)
		}
		last = loc[1]
	}
	if tail := strings.TrimSpace(text[last:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
