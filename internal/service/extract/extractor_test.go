package extract

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sandevgo/wayfarer/internal/core"
)

func userMsg(content string) core.Message {
	return core.Message{Role: core.RoleUser, Content: content}
}

func TestDestination(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"verb pattern visit", "I want to visit Paris", "Paris"},
		{"verb pattern going to", "we are going to Tokyo next month", "Tokyo"},
		{"trip to", "planning a trip to Barcelona", "Barcelona"},
		{"flying to", "flying to Rome on Friday", "Rome"},
		{"lowercase known city", "i want to visit paris", "Paris"},
		{"multi word special case", "I want to visit new york", "New York"},
		{"known city fallback", "thinking about tokyo maybe?", "Tokyo"},
		{"longest city first", "new york is on the list", "New York"},
		{"month rejected", "I want to visit June", ""},
		{"stop word rejected", "we plan to go to the beach, visit museums", ""},
		{"too short rejected", "we will visit Li tomorrow", ""},
		{"no destination", "I need help planning something", ""},
		{"unknown proper name accepted", "I am planning a trip to Springfield", "Springfield"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Destination(tt.text); got != tt.want {
				t.Errorf("Destination(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"numeric days", "going for 5 days", 5},
		{"hyphenated", "a 3-day trip", 3},
		{"word number", "staying for five days", 5},
		{"single week", "there for a week", 7},
		{"week trip", "for a week trip", 7},
		{"numeric weeks", "traveling for 2 weeks", 14},
		{"bare number ignored", "there are 5 of us", 0},
		{"no duration", "visiting paris", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Duration(tt.text); got != tt.want {
				t.Errorf("Duration(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestBudget(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"dollar sign", "my budget is $2000", 2000},
		{"with comma", "i can spend $2,500 total", 2500},
		{"dollars word", "around 3000 dollars", 3000},
		{"euros", "we have 1500 euros to spend", 1500},
		{"budget of", "a budget of 2000", 2000},
		{"no indicator", "the flight takes 2000 minutes", 0},
		{"below minimum", "souvenirs cost $50", 0},
		{"above maximum", "$2000000 is the cost of the jet", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Budget(tt.text); got != tt.want {
				t.Errorf("Budget(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestInterests(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "order follows taxonomy",
			text: "i love local food and museums",
			want: []string{"museums", "food", "culture"},
		},
		{
			name: "single keyword per category",
			text: "hiking and more hiking",
			want: []string{"nature"},
		},
		{
			name: "none",
			text: "just a quick question",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interests(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Interests(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTravelStyle(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"cheap hostels please", "budget"},
		{"we want a luxury hotel", "luxury"},
		{"something comfortable", "mid-range"},
		{"no hints here", ""},
		// budget wins over luxury when both appear
		{"a budget trip but a luxury dinner", "budget"},
	}

	for _, tt := range tests {
		if got := TravelStyle(tt.text); got != tt.want {
			t.Errorf("TravelStyle(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtract(t *testing.T) {
	messages := []core.Message{
		userMsg("I want to visit Paris for 5 days"),
		{Role: core.RoleAssistant, Content: "Sounds great! What is your budget?"},
		userMsg("My budget is $2,000 and I love museums and food"),
	}

	facts, err := Extract(messages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := core.TripFacts{
		Destination:  "Paris",
		DurationDays: 5,
		Budget:       2000,
		Interests:    []string{"museums", "food"},
		TravelStyle:  "budget",
	}
	if !reflect.DeepEqual(facts, want) {
		t.Errorf("Extract() = %+v, want %+v", facts, want)
	}
}

func TestExtractIgnoresAssistantMessages(t *testing.T) {
	messages := []core.Message{
		{Role: core.RoleAssistant, Content: "You should visit Rome for 10 days with a budget of $5000"},
		userMsg("not sure yet"),
	}

	facts, err := Extract(messages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !facts.IsZero() {
		t.Errorf("expected no facts from assistant text, got %+v", facts)
	}
}

func TestExtractDurationBeforeBudget(t *testing.T) {
	// "5 days" must never be read as money even with budget context present
	facts, err := Extract([]core.Message{userMsg("i can spend $900 for 5 days")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if facts.DurationDays != 5 {
		t.Errorf("duration = %d, want 5", facts.DurationDays)
	}
	if facts.Budget != 900 {
		t.Errorf("budget = %d, want 900", facts.Budget)
	}
}

func TestExtractInvalidMessages(t *testing.T) {
	tests := []struct {
		name     string
		messages []core.Message
	}{
		{"invalid utf-8", []core.Message{{Role: core.RoleUser, Content: string([]byte{0xff, 0xfe})}}},
		{"unknown role", []core.Message{{Role: "tool", Content: "hello"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.messages)
			if !errors.Is(err, core.ErrInvalidMessage) {
				t.Errorf("expected ErrInvalidMessage, got %v", err)
			}
		})
	}
}

func TestExtractEmptyMessages(t *testing.T) {
	facts, err := Extract(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !facts.IsZero() {
		t.Errorf("expected zero facts, got %+v", facts)
	}
}
