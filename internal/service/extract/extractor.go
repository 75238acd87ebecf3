// Package extract derives structured trip facts from conversation messages
// using rule-based pattern tables. No model calls, no state.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sandevgo/wayfarer/internal/core"
)

// Extract pulls trip facts out of the user-role messages of a conversation.
//
// Fact types run in a fixed priority order so they cannot poach each
// other's tokens: destination, then duration (before budget, so "5 days"
// never reads as money), then budget, interests and travel style.
func Extract(messages []core.Message) (core.TripFacts, error) {
	for _, msg := range messages {
		if !utf8.ValidString(msg.Content) {
			return core.TripFacts{}, fmt.Errorf("%w: content is not valid utf-8", core.ErrInvalidMessage)
		}
		if !core.ValidRole(msg.Role) {
			return core.TripFacts{}, fmt.Errorf("%w: unknown role %q", core.ErrInvalidMessage, msg.Role)
		}
	}

	var userTexts []string
	for _, msg := range messages {
		if msg.Role == core.RoleUser {
			userTexts = append(userTexts, msg.Content)
		}
	}

	fullText := strings.Join(userTexts, " ")
	lowerText := strings.ToLower(fullText)

	return core.TripFacts{
		Destination:  Destination(fullText),
		DurationDays: Duration(lowerText),
		Budget:       Budget(lowerText),
		Interests:    Interests(lowerText),
		TravelStyle:  TravelStyle(lowerText),
	}, nil
}

// Destination tries verb-anchored patterns first, then preposition
// patterns, then falls back to scanning for known city names.
func Destination(text string) string {
	if dest := matchDestination(verbPatterns, text); dest != "" {
		return dest
	}
	if dest := matchDestination(prepositionPatterns, text); dest != "" {
		return dest
	}
	return matchKnownCity(text)
}

func matchDestination(patterns []*regexp.Regexp, text string) string {
	for _, pattern := range patterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		dest := capitalizeCity(strings.TrimSpace(m[1]))
		if validDestination(dest) {
			return dest
		}
	}
	return ""
}

func matchKnownCity(text string) string {
	lower := strings.ToLower(text)
	// Longest name first, so "new york" beats "york".
	for _, i := range citiesByLength {
		if cityPatterns[i].MatchString(lower) {
			return capitalizeCity(knownCities[i])
		}
	}
	return ""
}

func capitalizeCity(city string) string {
	if special, ok := specialCapitalization[strings.ToLower(city)]; ok {
		return special
	}
	return titleCase(city)
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func validDestination(dest string) bool {
	if utf8.RuneCountInString(dest) < 3 {
		return false
	}
	lower := strings.ToLower(dest)
	if destinationStopWords[lower] {
		return false
	}
	if knownCitySet[lower] {
		return true
	}
	first, _ := utf8.DecodeRuneInString(dest)
	return unicode.IsUpper(first)
}

// Duration returns the trip length in days, or 0 when the text never
// anchors a number to days or weeks.
func Duration(text string) int {
	for _, p := range durationPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		switch p.kind {
		case durationSingleWeek:
			return 7
		case durationWeeks:
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n * 7
			}
		case durationWordDays:
			if n, ok := wordToNumber[m[1]]; ok {
				return n
			}
		case durationDays:
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}
	return 0
}

// Budget returns the stated budget, or 0. A money indicator must be
// present and the amount must fall within [100, 100000]; anything else
// is treated as not-a-budget rather than clamped.
func Budget(text string) int {
	indicated := false
	for _, indicator := range budgetIndicators {
		if strings.Contains(text, indicator) {
			indicated = true
			break
		}
	}
	if !indicated {
		return 0
	}

	for _, pattern := range budgetPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err != nil {
			continue
		}
		if amount >= budgetMin && amount <= budgetMax {
			return amount
		}
	}
	return 0
}

// Interests returns the matched interest categories in taxonomy order.
func Interests(text string) []string {
	var interests []string
	for _, entry := range interestTaxonomy {
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				interests = append(interests, entry.name)
				break
			}
		}
	}
	return interests
}

func TravelStyle(text string) string {
	for _, style := range travelStyles {
		for _, keyword := range style.keywords {
			if strings.Contains(text, keyword) {
				return style.name
			}
		}
	}
	return ""
}
