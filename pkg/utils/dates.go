package utils

import (
	"regexp"
	"time"
)

// isoLayout is the fixed-width UTC representation used for all persisted
// timestamps. Keeping a single layout makes serialized output stable.
const isoLayout = "2006-01-02T15:04:05Z"

// NowISO returns the current UTC time as an ISO-8601 string.
func NowISO() string {
	return time.Now().UTC().Format(isoLayout)
}

// FormatISO renders t as an ISO-8601 UTC string.
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

var gdeltDateRe = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})T(\d{2})(\d{2})(\d{2})Z$`)

// ParseGDELTDate converts the GDELT seendate format (20251202T224500Z)
// to ISO-8601. Falls back to the current time for anything unparseable.
func ParseGDELTDate(s string) string {
	if s == "" {
		return NowISO()
	}
	if m := gdeltDateRe.FindStringSubmatch(s); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3] + "T" + m[4] + ":" + m[5] + ":" + m[6] + "Z"
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return FormatISO(t)
	}
	return NowISO()
}

// rssDateLayouts covers the date formats seen in the wild across RSS/Atom feeds.
var rssDateLayouts = []string{
	time.RFC1123Z,         // RFC 2822
	time.RFC1123,          // RFC 2822 with timezone name
	time.RFC3339,          // ISO 8601
	"2006-01-02T15:04:05", // ISO 8601 without zone
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseRSSDate normalizes the various feed date formats to ISO-8601 UTC.
// Falls back to the current time for anything unparseable.
func ParseRSSDate(s string) string {
	if s == "" {
		return NowISO()
	}
	for _, layout := range rssDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FormatISO(t)
		}
	}
	return NowISO()
}
