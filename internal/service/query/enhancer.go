// Package query rewrites user questions into better retrieval queries
// using the facts extracted so far.
//
// Two tiers, deliberately conservative: the destination is always
// appended (when known and not already mentioned), interests only when
// the question is vague enough to benefit. Duration, budget and travel
// style never go into the query; they belong in the prompt, where they
// cannot dilute the embedding.
package query

import (
	"strings"

	"github.com/sandevgo/wayfarer/internal/core"
)

// Queries that benefit from interest context: vague, planning or
// activity phrasing.
var benefitPatterns = []string{
	"what should", "what can", "where should", "where can",
	"any suggestions", "what else", "tell me more",
	"things to do", "what to see", "what to do",
	"activities", "attractions", "places to visit",
	"help me plan", "itinerary", "recommendations",
}

// Narrow factual questions where interests would only add noise.
// These take precedence over benefit patterns.
var skipPatterns = []string{
	"what time", "how much", "how far", "how long",
	"how to get", "when does", "where is",
	"is it open", "is there", "ticket", "price",
}

// Queries at or below this many words are treated as vague.
const shortQueryWords = 5

// Enhance appends destination and, when useful, the top two interests to
// the query, then cleans up the resulting punctuation.
func Enhance(query string, facts core.TripFacts) string {
	queryLower := strings.ToLower(query)
	parts := []string{query}

	if facts.Destination != "" && !strings.Contains(queryLower, strings.ToLower(facts.Destination)) {
		parts = append(parts, "in "+facts.Destination)
	}

	if len(facts.Interests) > 0 && shouldAddInterests(queryLower) {
		top := facts.Interests
		if len(top) > 2 {
			top = top[:2]
		}
		parts = append(parts, "focusing on "+strings.Join(top, " and "))
	}

	return cleanQuery(strings.Join(parts, " "))
}

// Filter derives the metadata filter for the vector index: an equality
// match on city when the destination is known, nil otherwise.
func Filter(facts core.TripFacts) map[string]string {
	if facts.Destination == "" {
		return nil
	}
	return map[string]string{"city": facts.Destination}
}

func shouldAddInterests(queryLower string) bool {
	for _, pattern := range skipPatterns {
		if strings.Contains(queryLower, pattern) {
			return false
		}
	}
	for _, pattern := range benefitPatterns {
		if strings.Contains(queryLower, pattern) {
			return true
		}
	}
	return len(strings.Fields(queryLower)) <= shortQueryWords
}

func cleanQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")

	// A question mark or period reads badly before an appended clause.
	query = strings.ReplaceAll(query, "? in", " in")
	query = strings.ReplaceAll(query, "? focusing", " focusing")
	query = strings.ReplaceAll(query, ". in", " in")
	query = strings.ReplaceAll(query, ". focusing", " focusing")

	return strings.TrimSpace(strings.Join(strings.Fields(query), " "))
}
