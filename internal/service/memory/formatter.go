package memory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandevgo/wayfarer/internal/core"
)

// FormatFacts renders known facts as "Label: value" pairs joined by "; ".
// Order is fixed: destination, duration, budget, interests, travel style.
// Unknown facts are skipped; empty facts render as "".
func FormatFacts(f core.TripFacts) string {
	var parts []string
	if f.Destination != "" {
		parts = append(parts, "Destination: "+f.Destination)
	}
	if f.DurationDays > 0 {
		parts = append(parts, fmt.Sprintf("Duration: %d days", f.DurationDays))
	}
	if f.Budget > 0 {
		parts = append(parts, "Budget: $"+FormatAmount(f.Budget))
	}
	if len(f.Interests) > 0 {
		parts = append(parts, "Interests: "+strings.Join(f.Interests, ", "))
	}
	if f.TravelStyle != "" {
		parts = append(parts, "Travel style: "+f.TravelStyle)
	}
	return strings.Join(parts, "; ")
}

// FormatPreferences renders the facts that are deliberately kept out of
// the retrieval query (duration, budget, travel style) for the prompt's
// user-preferences block.
func FormatPreferences(f core.TripFacts) string {
	var parts []string
	if f.DurationDays > 0 {
		parts = append(parts, fmt.Sprintf("Trip duration: %d days", f.DurationDays))
	}
	if f.Budget > 0 {
		parts = append(parts, "Budget: $"+FormatAmount(f.Budget))
	}
	if f.TravelStyle != "" {
		parts = append(parts, "Travel style: "+f.TravelStyle)
	}
	return strings.Join(parts, "; ")
}

// FormatAmount renders n with thousands separators: 2000 -> "2,000".
func FormatAmount(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
