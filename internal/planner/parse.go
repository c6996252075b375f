package planner

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseItinerary extracts a structured itinerary from raw model output.
// It never fails: malformed or structurally invalid output produces the
// deterministic fallback itinerary with Degraded set, so a flaky model
// response degrades the plan rather than the request.
//
// Top-level fields (destination, day count, budget, style) are always
// coerced from the request. The model fills in the days; it does not get
// to rewrite what the user asked for.
func ParseItinerary(responseText string, req PlanRequest) Itinerary {
	raw, err := extractJSON(responseText)
	if err != nil {
		return Fallback(req)
	}

	var it Itinerary
	if err := json.Unmarshal([]byte(raw), &it); err != nil {
		return Fallback(req)
	}
	if err := validateDays(it, req); err != nil {
		return Fallback(req)
	}

	it.Destination = req.Destination
	it.TotalDays = req.Days
	it.TotalBudget = req.Budget
	it.TravelStyle = req.TravelStyle
	it.Degraded = false
	return it
}

// extractJSON pulls the outermost JSON object out of model output,
// tolerating markdown fences and surrounding prose.
func extractJSON(text string) (string, error) {
	text = stripCodeFences(strings.TrimSpace(text))

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", fmt.Errorf("no JSON object in response")
	}
	return text[start : end+1], nil
}

// stripCodeFences removes a surrounding markdown code fence, with or
// without a language tag.
func stripCodeFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// validateDays checks that the model produced exactly the requested
// number of days, numbered 1..N in order.
func validateDays(it Itinerary, req PlanRequest) error {
	if len(it.Days) != req.Days {
		return fmt.Errorf("expected %d days, got %d", req.Days, len(it.Days))
	}
	for i, d := range it.Days {
		if d.Day != i+1 {
			return fmt.Errorf("day %d is numbered %d", i+1, d.Day)
		}
	}
	return nil
}

// Fallback builds the minimal valid itinerary for a request. Every field
// is a pure function of the request, so two calls with the same request
// are identical. The evening slot gets 30% of the daily budget and a
// single local-transport entry gets 10% of the total, leaving obvious
// room for the traveler to fill in real plans.
func Fallback(req PlanRequest) Itinerary {
	perDay := req.Budget / float64(req.Days)

	days := make([]DayItinerary, req.Days)
	for i := range days {
		days[i] = DayItinerary{
			Day:   i + 1,
			Title: fmt.Sprintf("Day %d in %s", i+1, req.Destination),
			Morning: []Attraction{{
				Name:          "Explore local area",
				Description:   "Information not available in context",
				Duration:      "3 hours",
				EstimatedCost: 0,
			}},
			Afternoon: []Attraction{{
				Name:          "Continue exploring",
				Description:   "Information not available in context",
				Duration:      "3 hours",
				EstimatedCost: 0,
			}},
			Evening: []Attraction{{
				Name:          "Dinner and relaxation",
				Description:   "Information not available in context",
				Duration:      "2 hours",
				EstimatedCost: perDay * 0.3,
			}},
			Accommodation: "Budget-appropriate accommodation",
			DailyBudget:   perDay,
		}
	}

	return Itinerary{
		Destination: req.Destination,
		TotalDays:   req.Days,
		TotalBudget: req.Budget,
		TravelStyle: req.TravelStyle,
		Days:        days,
		Transport: []TransportInfo{{
			Type:          "Local transport",
			Details:       "Information not available in context",
			EstimatedCost: req.Budget * 0.1,
		}},
		Tips:     []string{"Plan ahead", "Check weather", "Book accommodations early"},
		Degraded: true,
	}
}
