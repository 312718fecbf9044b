package analytics

import (
	"sort"
	"strings"
)

// Alert severity levels, highest first.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityElevated = "elevated"
	SeverityNormal   = "normal"
)

var severityRank = map[string]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityElevated: 2,
	SeverityNormal:   3,
}

// AlertResult is the outcome of alert detection.
type AlertResult struct {
	IsAlert  bool
	Keyword  string
	Severity string
}

// AlertKeyword pairs an alert keyword with its severity.
type AlertKeyword struct {
	Keyword  string
	Severity string
}

// DefaultAlertKeywords is the built-in alert keyword table.
var DefaultAlertKeywords = []AlertKeyword{
	{"nuclear", SeverityCritical},
	{"assassination", SeverityCritical},
	{"coup", SeverityCritical},
	{"martial law", SeverityCritical},
	{"war declared", SeverityCritical},

	{"war", SeverityHigh},
	{"invasion", SeverityHigh},
	{"missile", SeverityHigh},
	{"bomb", SeverityHigh},
	{"terrorist", SeverityHigh},
	{"hostage", SeverityHigh},
	{"casualties", SeverityHigh},

	{"military", SeverityElevated},
	{"sanctions", SeverityElevated},
	{"attack", SeverityElevated},
	{"troops", SeverityElevated},
	{"conflict", SeverityElevated},
	{"strike", SeverityElevated},
	{"ceasefire", SeverityElevated},
	{"treaty", SeverityElevated},
	{"nato", SeverityElevated},
	{"emergency", SeverityElevated},
	{"evacuation", SeverityElevated},
}

// AlertDetector detects high-priority alert keywords in text. Keywords are
// pre-sorted by severity so Detect returns the highest-severity match
// present, regardless of textual position.
type AlertDetector struct {
	keywords      []AlertKeyword
	sorted        []AlertKeyword // severity-then-insertion order, rebuilt on mutation
	caseSensitive bool
}

// NewAlertDetector creates a detector with the default keyword table.
func NewAlertDetector() *AlertDetector {
	return NewAlertDetectorWith(DefaultAlertKeywords, false)
}

// NewAlertDetectorWith creates a detector with custom keywords.
func NewAlertDetectorWith(keywords []AlertKeyword, caseSensitive bool) *AlertDetector {
	d := &AlertDetector{caseSensitive: caseSensitive}
	d.keywords = append(d.keywords, keywords...)
	d.rebuild()
	return d
}

// Detect returns the first match in severity-then-insertion order, i.e. the
// highest-severity alert present in the text. Empty text yields no alert.
func (d *AlertDetector) Detect(text string) AlertResult {
	if text == "" {
		return AlertResult{}
	}
	search := d.fold(text)

	for _, ak := range d.sorted {
		if strings.Contains(search, d.fold(ak.Keyword)) {
			return AlertResult{IsAlert: true, Keyword: ak.Keyword, Severity: ak.Severity}
		}
	}
	return AlertResult{}
}

// DetectAll returns every matching keyword in severity order.
func (d *AlertDetector) DetectAll(text string) []AlertResult {
	if text == "" {
		return nil
	}
	search := d.fold(text)

	var results []AlertResult
	for _, ak := range d.sorted {
		if strings.Contains(search, d.fold(ak.Keyword)) {
			results = append(results, AlertResult{IsAlert: true, Keyword: ak.Keyword, Severity: ak.Severity})
		}
	}
	return results
}

// AddKeyword adds an alert keyword and rebuilds the severity-sorted view.
func (d *AlertDetector) AddKeyword(keyword, severity string) {
	if _, ok := severityRank[severity]; !ok {
		severity = SeverityElevated
	}
	for i := range d.keywords {
		if d.keywords[i].Keyword == keyword {
			d.keywords[i].Severity = severity
			d.rebuild()
			return
		}
	}
	d.keywords = append(d.keywords, AlertKeyword{Keyword: keyword, Severity: severity})
	d.rebuild()
}

// RemoveKeyword removes an alert keyword.
func (d *AlertDetector) RemoveKeyword(keyword string) {
	for i := range d.keywords {
		if d.keywords[i].Keyword == keyword {
			d.keywords = append(d.keywords[:i], d.keywords[i+1:]...)
			d.rebuild()
			return
		}
	}
}

// Keywords returns the keyword table in insertion order.
func (d *AlertDetector) Keywords() []AlertKeyword {
	out := make([]AlertKeyword, len(d.keywords))
	copy(out, d.keywords)
	return out
}

// BySeverity returns the keywords of a given severity level.
func (d *AlertDetector) BySeverity(severity string) []string {
	var out []string
	for _, ak := range d.keywords {
		if ak.Severity == severity {
			out = append(out, ak.Keyword)
		}
	}
	return out
}

// rebuild refreshes the severity-sorted keyword view. The sort is stable so
// keywords of equal severity keep their insertion order.
func (d *AlertDetector) rebuild() {
	d.sorted = make([]AlertKeyword, len(d.keywords))
	copy(d.sorted, d.keywords)
	sort.SliceStable(d.sorted, func(i, j int) bool {
		return severityRank[d.sorted[i].Severity] < severityRank[d.sorted[j].Severity]
	})
}

func (d *AlertDetector) fold(s string) string {
	if d.caseSensitive {
		return s
	}
	return strings.ToLower(s)
}
