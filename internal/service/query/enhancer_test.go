package query

import (
	"reflect"
	"testing"

	"github.com/sandevgo/wayfarer/internal/core"
)

func TestEnhance(t *testing.T) {
	tests := []struct {
		name  string
		query string
		facts core.TripFacts
		want  string
	}{
		{
			name:  "vague query gets destination and interests",
			query: "What should I see?",
			facts: core.TripFacts{Destination: "Paris", Interests: []string{"museums"}},
			want:  "What should I see in Paris focusing on museums",
		},
		{
			name:  "top two interests only",
			query: "any suggestions?",
			facts: core.TripFacts{Destination: "Rome", Interests: []string{"museums", "food", "nightlife"}},
			want:  "any suggestions in Rome focusing on museums and food",
		},
		{
			name:  "destination already present",
			query: "Tell me about museums in Rome",
			facts: core.TripFacts{Destination: "Rome"},
			want:  "Tell me about museums in Rome",
		},
		{
			name:  "destination match is case-insensitive",
			query: "what is there to eat in PARIS?",
			facts: core.TripFacts{Destination: "Paris"},
			want:  "what is there to eat in PARIS?",
		},
		{
			name:  "skip patterns win over benefit patterns",
			query: "how much are the things to do there?",
			facts: core.TripFacts{Destination: "Paris", Interests: []string{"museums"}},
			want:  "how much are the things to do there in Paris",
		},
		{
			name:  "narrow factual question gets no interests",
			query: "what time does the Louvre open on weekdays please?",
			facts: core.TripFacts{Destination: "Paris", Interests: []string{"museums"}},
			want:  "what time does the Louvre open on weekdays please in Paris",
		},
		{
			name:  "short query counts as vague",
			query: "best restaurants?",
			facts: core.TripFacts{Destination: "Tokyo", Interests: []string{"food", "culture"}},
			want:  "best restaurants in Tokyo focusing on food and culture",
		},
		{
			name:  "long query without benefit phrasing gets no interests",
			query: "I would like a detailed breakdown of my options for the afternoon",
			facts: core.TripFacts{Destination: "Tokyo", Interests: []string{"food"}},
			want:  "I would like a detailed breakdown of my options for the afternoon in Tokyo",
		},
		{
			name:  "no facts leaves query unchanged",
			query: "What should I see?",
			facts: core.TripFacts{},
			want:  "What should I see?",
		},
		{
			name:  "period before appended clause is cleaned",
			query: "Help me plan.",
			facts: core.TripFacts{Destination: "Paris"},
			want:  "Help me plan in Paris",
		},
		{
			name:  "duration and budget never enter the query",
			query: "what should I do?",
			facts: core.TripFacts{Destination: "Paris", DurationDays: 5, Budget: 2000, TravelStyle: "budget"},
			want:  "what should I do in Paris",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Enhance(tt.query, tt.facts); got != tt.want {
				t.Errorf("Enhance(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	if got := Filter(core.TripFacts{}); got != nil {
		t.Errorf("expected nil filter, got %v", got)
	}

	got := Filter(core.TripFacts{Destination: "Paris", Budget: 2000})
	want := map[string]string{"city": "Paris"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
}
