package core

// TripFacts is the structured snapshot of what the user has told us about
// their trip. Zero values mean "not known yet".
type TripFacts struct {
	Destination  string   `json:"destination,omitempty"`
	DurationDays int      `json:"duration_days,omitempty"`
	Budget       int      `json:"budget,omitempty"`
	Interests    []string `json:"interests,omitempty"`
	TravelStyle  string   `json:"travel_style,omitempty"`
}

// Merge overlays newer onto f: a known (non-zero) newer value wins, an
// unknown one keeps the existing value.
func (f TripFacts) Merge(newer TripFacts) TripFacts {
	merged := f
	if newer.Destination != "" {
		merged.Destination = newer.Destination
	}
	if newer.DurationDays > 0 {
		merged.DurationDays = newer.DurationDays
	}
	if newer.Budget > 0 {
		merged.Budget = newer.Budget
	}
	if len(newer.Interests) > 0 {
		merged.Interests = append([]string(nil), newer.Interests...)
	}
	if newer.TravelStyle != "" {
		merged.TravelStyle = newer.TravelStyle
	}
	return merged
}

func (f TripFacts) IsZero() bool {
	return f.Destination == "" &&
		f.DurationDays == 0 &&
		f.Budget == 0 &&
		len(f.Interests) == 0 &&
		f.TravelStyle == ""
}
