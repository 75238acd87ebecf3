package core

import (
	"reflect"
	"testing"
)

func TestTripFactsMerge(t *testing.T) {
	tests := []struct {
		name  string
		base  TripFacts
		newer TripFacts
		want  TripFacts
	}{
		{
			name:  "newer known values win",
			base:  TripFacts{Destination: "Paris", Budget: 2000},
			newer: TripFacts{Destination: "Rome"},
			want:  TripFacts{Destination: "Rome", Budget: 2000},
		},
		{
			name:  "zero values keep existing",
			base:  TripFacts{Destination: "Paris", DurationDays: 5, Interests: []string{"food"}},
			newer: TripFacts{},
			want:  TripFacts{Destination: "Paris", DurationDays: 5, Interests: []string{"food"}},
		},
		{
			name:  "non-empty interests replace",
			base:  TripFacts{Interests: []string{"food"}},
			newer: TripFacts{Interests: []string{"museums", "art"}},
			want:  TripFacts{Interests: []string{"museums", "art"}},
		},
		{
			name:  "merge into empty",
			base:  TripFacts{},
			newer: TripFacts{Destination: "Tokyo", TravelStyle: "luxury"},
			want:  TripFacts{Destination: "Tokyo", TravelStyle: "luxury"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.base.Merge(tt.newer)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTripFactsMergeDoesNotAliasInterests(t *testing.T) {
	newer := TripFacts{Interests: []string{"food"}}
	merged := TripFacts{}.Merge(newer)

	newer.Interests[0] = "changed"
	if merged.Interests[0] != "food" {
		t.Errorf("merged interests alias the source slice")
	}
}

func TestTripFactsIsZero(t *testing.T) {
	if !(TripFacts{}).IsZero() {
		t.Error("empty facts should be zero")
	}
	if (TripFacts{Budget: 100}).IsZero() {
		t.Error("facts with budget should not be zero")
	}
}
