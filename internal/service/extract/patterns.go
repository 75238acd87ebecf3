package extract

import (
	"regexp"
	"sort"
)

// knownCities backs both destination detection and capitalization checks.
var knownCities = []string{
	// Europe
	"paris", "london", "rome", "barcelona", "amsterdam", "prague", "vienna",
	"berlin", "munich", "venice", "florence", "athens", "dublin", "edinburgh",
	"lisbon", "madrid", "copenhagen", "stockholm", "budapest", "krakow",
	// Asia
	"tokyo", "bangkok", "singapore", "hong kong", "seoul", "dubai", "bali",
	"kyoto", "shanghai", "beijing", "taipei", "hanoi", "ho chi minh city",
	"kuala lumpur", "manila", "istanbul", "jerusalem", "tel aviv", "mumbai",
	// Americas
	"new york", "los angeles", "san francisco", "miami", "las vegas",
	"mexico city", "cancun", "rio de janeiro", "buenos aires", "vancouver",
	"toronto", "montreal", "chicago", "boston", "seattle", "washington",
	// Oceania & others
	"sydney", "melbourne", "auckland", "cairo", "cape town", "marrakech",
}

// Multi-word names that plain word-wise capitalization would get wrong.
var specialCapitalization = map[string]string{
	"new york":         "New York",
	"los angeles":      "Los Angeles",
	"san francisco":    "San Francisco",
	"las vegas":        "Las Vegas",
	"hong kong":        "Hong Kong",
	"ho chi minh city": "Ho Chi Minh City",
	"kuala lumpur":     "Kuala Lumpur",
	"mexico city":      "Mexico City",
	"rio de janeiro":   "Rio de Janeiro",
	"buenos aires":     "Buenos Aires",
	"cape town":        "Cape Town",
	"tel aviv":         "Tel Aviv",
}

// Words a destination capture can never be (months, durations, generic
// travel nouns).
var destinationStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"for": true, "with": true, "about": true,
	"june": true, "july": true, "august": true, "september": true,
	"october": true, "november": true, "december": true, "january": true,
	"february": true, "march": true, "april": true, "may": true,
	"days": true, "weeks": true, "months": true,
	"day": true, "week": true, "month": true,
	"trip": true, "vacation": true, "holiday": true, "travel": true,
	"visit": true,
}

// The captured phrase itself is case-sensitive: only Capitalized Words
// qualify, so trailing lowercase text never leaks into the name. Lowercase
// city mentions are caught by the known-city fallback instead.
const placeName = `((?-i)[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`

// Verb-anchored destination patterns, most reliable first.
var verbPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:visit|visiting|visited)\s+` + placeName),
	regexp.MustCompile(`(?i)(?:go|going|went)\s+to\s+` + placeName),
	regexp.MustCompile(`(?i)(?:travel|traveling|travelled)\s+to\s+` + placeName),
	regexp.MustCompile(`(?i)(?:trip|vacation|holiday)\s+(?:to|in)\s+` + placeName),
	regexp.MustCompile(`(?i)(?:plan|planning|planned)\s+(?:a\s+)?(?:trip|visit)\s+to\s+` + placeName),
	regexp.MustCompile(`(?i)(?:plan|planning|planned)\s+to\s+(?:visit|go\s+to|travel\s+to)\s+` + placeName),
	regexp.MustCompile(`(?i)(?:want|wanting|wanted)\s+to\s+(?:visit|see|explore|go\s+to)\s+` + placeName),
	regexp.MustCompile(`(?i)(?:explore|exploring|explored)\s+` + placeName),
	regexp.MustCompile(`(?i)(?:see|seeing|saw)\s+` + placeName),
	regexp.MustCompile(`(?i)(?:destination|headed|heading)\s+(?:is|to|for)\s+` + placeName),
	regexp.MustCompile(`(?i)(?:fly|flying|flew)\s+to\s+` + placeName),
}

var prepositionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:in|at)\s+` + placeName + `\s+(?:for|during|with|and|or|,|\.|\?|!|$)`),
	regexp.MustCompile(`(?i)(?:to|from)\s+` + placeName + `\s+(?:for|and|or|,|\.|\?|!|$)`),
}

var (
	cityPatterns   []*regexp.Regexp
	citiesByLength []int
	knownCitySet   = map[string]bool{}
)

func init() {
	cityPatterns = make([]*regexp.Regexp, len(knownCities))
	citiesByLength = make([]int, len(knownCities))
	for i, city := range knownCities {
		cityPatterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(city) + `\b`)
		citiesByLength[i] = i
		knownCitySet[city] = true
	}
	sort.SliceStable(citiesByLength, func(a, b int) bool {
		return len(knownCities[citiesByLength[a]]) > len(knownCities[citiesByLength[b]])
	})
}

type durationKind int

const (
	durationDays durationKind = iota
	durationWordDays
	durationSingleWeek
	durationWeeks
)

// Duration needs an explicit day/week anchor so plain numbers (prices,
// group sizes) are never picked up.
var durationPatterns = []struct {
	re   *regexp.Regexp
	kind durationKind
}{
	{regexp.MustCompile(`(?:for\s+)?(\d+)\s*days?(?:\s+trip)?`), durationDays},
	{regexp.MustCompile(`(\d+)-day`), durationDays},
	{regexp.MustCompile(`(?:for\s+)?(one|two|three|four|five|six|seven|eight|nine|ten)\s*days?`), durationWordDays},
	{regexp.MustCompile(`(?:for\s+)?a\s+week(?:\s+trip)?`), durationSingleWeek},
	{regexp.MustCompile(`(?:for\s+)?(\d+)\s*weeks?`), durationWeeks},
}

var wordToNumber = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// A number only counts as a budget when money is being talked about.
var budgetIndicators = []string{
	"budget", "spend", "cost", "price", "afford",
	"expensive", "cheap", "dollar", "euro", "$", "€",
}

var budgetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\s*([\d,]+)`),
	regexp.MustCompile(`([\d,]+)\s*(?:dollars|usd)`),
	regexp.MustCompile(`([\d,]+)\s*(?:euros|eur)`),
	regexp.MustCompile(`budget.*?(?:of|is|around)?\s*\$?\s*([\d,]+)`),
	regexp.MustCompile(`spend.*?(?:about|around)?\s*\$?\s*([\d,]+)`),
}

const (
	budgetMin = 100
	budgetMax = 100000
)

// interestTaxonomy maps canonical interest names to the keywords that
// imply them. Order is the output order.
var interestTaxonomy = []struct {
	name     string
	keywords []string
}{
	{"museums", []string{"museum", "museums", "art", "gallery", "galleries"}},
	{"food", []string{"food", "restaurant", "restaurants", "eating", "cuisine", "dining", "foodie"}},
	{"history", []string{"history", "historical", "castle", "monument", "heritage"}},
	{"nature", []string{"nature", "hiking", "park", "parks", "beach", "outdoor"}},
	{"nightlife", []string{"nightlife", "club", "clubs", "bar", "bars", "party"}},
	{"shopping", []string{"shopping", "shop", "shops", "mall", "market", "markets"}},
	{"culture", []string{"culture", "cultural", "local", "traditional"}},
	{"adventure", []string{"adventure", "activities", "sports"}},
	{"relaxation", []string{"relax", "spa", "peaceful"}},
	{"architecture", []string{"architecture", "buildings", "monuments"}},
}

var travelStyles = []struct {
	name     string
	keywords []string
}{
	{"budget", []string{"budget", "cheap", "affordable", "backpack"}},
	{"luxury", []string{"luxury", "upscale", "premium", "5-star", "high-end"}},
	{"mid-range", []string{"mid-range", "moderate", "comfortable"}},
}
