package conversation

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/wayfarer/internal/core"
	"github.com/sandevgo/wayfarer/internal/service/memory"
)

// ragExcerptBudget caps how many characters of retrieved knowledge go
// into the prompt.
const ragExcerptBudget = 4000

const roleInstructions = `
YOUR ROLE:
- Help users plan detailed, personalized travel itineraries
- Provide specific recommendations for activities, restaurants, and attractions
- Consider budget constraints, travel dates, and user preferences
- Ask clarifying questions when needed
- Be enthusiastic, friendly, and practical

RESPONSE GUIDELINES:
- Be conversational and warm
- Give specific names and details, not generic suggestions
- Include estimated costs when relevant
- If you need more information, ask specific questions
- Use the knowledge base and conversation context to give accurate information
`

func buildSystemPrompt(contextBlock string, facts core.TripFacts, ragContext string, trip *core.Trip) string {
	parts := []string{"You are an expert travel planning assistant."}

	if contextBlock != "" {
		parts = append(parts, "\nCONVERSATION CONTEXT:\n"+contextBlock)
	}

	if prefs := memory.FormatPreferences(facts); prefs != "" {
		parts = append(parts, "\nUSER PREFERENCES:\n"+prefs)
	}

	if ragContext != "" {
		parts = append(parts, "\nRELEVANT TRAVEL KNOWLEDGE:\n"+truncate(ragContext, ragExcerptBudget))
	}

	if trip != nil {
		if info, err := json.MarshalIndent(tripContext(trip), "", "  "); err == nil {
			parts = append(parts, "\nCURRENT TRIP:\n"+string(info))
		}
	}

	parts = append(parts, roleInstructions)

	return strings.Join(parts, "\n")
}

func tripContext(trip *core.Trip) map[string]any {
	info := map[string]any{
		"destination": trip.Destination,
		"status":      trip.Status,
	}
	if trip.Budget > 0 {
		info["budget"] = trip.Budget
	}
	if trip.StartDate != nil {
		info["start_date"] = trip.StartDate.Format("2006-01-02")
	}
	if trip.EndDate != nil {
		info["end_date"] = trip.EndDate.Format("2006-01-02")
	}
	return info
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
