package analytics

import "strings"

// Region pairs a region label with its trigger keywords.
// Definition order determines detection priority.
type Region struct {
	Name     string
	Keywords []string
}

// DefaultRegions is the built-in region table.
var DefaultRegions = []Region{
	{"EUROPE", []string{
		"nato", "eu", "european", "ukraine", "russia", "germany", "france",
		"uk", "britain", "poland", "italy", "spain", "netherlands", "belgium",
		"sweden", "norway", "finland", "denmark", "austria", "switzerland",
		"greece", "portugal", "ireland", "czech", "romania", "hungary",
	}},
	{"MENA", []string{ // Middle East & North Africa
		"iran", "israel", "saudi", "syria", "iraq", "gaza", "lebanon",
		"yemen", "houthi", "middle east", "dubai", "uae", "qatar", "kuwait",
		"bahrain", "oman", "jordan", "egypt", "libya", "tunisia", "morocco",
		"algeria", "turkey", "ankara", "tehran", "riyadh", "tel aviv",
	}},
	{"APAC", []string{ // Asia-Pacific
		"china", "taiwan", "japan", "korea", "indo-pacific", "south china sea",
		"asean", "philippines", "vietnam", "thailand", "indonesia", "malaysia",
		"singapore", "australia", "new zealand", "india", "pakistan",
		"beijing", "tokyo", "seoul", "taipei", "hong kong", "shanghai",
	}},
	{"AMERICAS", []string{
		"us", "usa", "america", "united states", "canada", "mexico", "brazil",
		"venezuela", "argentina", "chile", "colombia", "peru", "latin america",
		"washington", "new york", "california", "texas", "florida",
	}},
	{"AFRICA", []string{
		"africa", "sahel", "niger", "sudan", "ethiopia", "somalia", "kenya",
		"nigeria", "south africa", "congo", "mali", "burkina faso", "chad",
		"cameroon", "ghana", "senegal", "tanzania", "uganda", "rwanda",
	}},
	{"RUSSIA_CIS", []string{ // Russia & former Soviet states
		"russia", "moscow", "kremlin", "putin", "belarus", "kazakhstan",
		"uzbekistan", "turkmenistan", "kyrgyzstan", "tajikistan", "armenia",
		"azerbaijan", "georgia", "moldova", "siberia",
	}},
}

// RegionDetector detects geographic regions in text using the same
// substring-match model as TopicDetector.
type RegionDetector struct {
	regions       []Region
	caseSensitive bool
}

// NewRegionDetector creates a detector with the default region table.
func NewRegionDetector() *RegionDetector {
	return NewRegionDetectorWith(DefaultRegions, false)
}

// NewRegionDetectorWith creates a detector with a custom region table.
func NewRegionDetectorWith(regions []Region, caseSensitive bool) *RegionDetector {
	d := &RegionDetector{caseSensitive: caseSensitive}
	d.regions = append(d.regions, regions...)
	return d
}

// Detect returns the primary region mentioned in text: the first match in
// region definition order, or "" when none is found.
func (d *RegionDetector) Detect(text string) string {
	if text == "" {
		return ""
	}
	search := d.fold(text)

	for _, region := range d.regions {
		for _, kw := range region.Keywords {
			if strings.Contains(search, d.fold(kw)) {
				return region.Name
			}
		}
	}
	return ""
}

// DetectAll returns every region mentioned in text, in definition order.
func (d *RegionDetector) DetectAll(text string) []string {
	if text == "" {
		return nil
	}
	search := d.fold(text)

	var detected []string
	for _, region := range d.regions {
		for _, kw := range region.Keywords {
			if strings.Contains(search, d.fold(kw)) {
				detected = append(detected, region.Name)
				break
			}
		}
	}
	return detected
}

// DetectWithKeywords returns the matching keywords per detected region.
func (d *RegionDetector) DetectWithKeywords(text string) map[string][]string {
	if text == "" {
		return nil
	}
	search := d.fold(text)

	results := make(map[string][]string)
	for _, region := range d.regions {
		var matched []string
		for _, kw := range region.Keywords {
			if strings.Contains(search, d.fold(kw)) {
				matched = append(matched, kw)
			}
		}
		if len(matched) > 0 {
			results[region.Name] = matched
		}
	}
	if len(results) == 0 {
		return nil
	}
	return results
}

// AddRegion adds a region, replacing its keywords if the name exists.
func (d *RegionDetector) AddRegion(name string, keywords []string) {
	for i := range d.regions {
		if d.regions[i].Name == name {
			d.regions[i].Keywords = keywords
			return
		}
	}
	d.regions = append(d.regions, Region{Name: name, Keywords: keywords})
}

// RemoveRegion removes a region by name.
func (d *RegionDetector) RemoveRegion(name string) {
	for i := range d.regions {
		if d.regions[i].Name == name {
			d.regions = append(d.regions[:i], d.regions[i+1:]...)
			return
		}
	}
}

// AddKeyword appends a keyword to an existing region.
func (d *RegionDetector) AddKeyword(region, keyword string) {
	for i := range d.regions {
		if d.regions[i].Name == region {
			d.regions[i].Keywords = append(d.regions[i].Keywords, keyword)
			return
		}
	}
}

// Regions returns all region names in definition order.
func (d *RegionDetector) Regions() []string {
	names := make([]string, len(d.regions))
	for i, r := range d.regions {
		names[i] = r.Name
	}
	return names
}

func (d *RegionDetector) fold(s string) string {
	if d.caseSensitive {
		return s
	}
	return strings.ToLower(s)
}
