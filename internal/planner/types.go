package planner

import (
	"fmt"
	"strings"
)

// TravelStyle is the requested trip character. It drives both retrieval
// queries and the generation prompt.
type TravelStyle string

// Known travel styles.
const (
	StyleAdventure  TravelStyle = "adventure"
	StyleRelaxation TravelStyle = "relaxation"
	StyleCultural   TravelStyle = "cultural"
	StyleLuxury     TravelStyle = "luxury"
	StyleBudget     TravelStyle = "budget"
	StyleFamily     TravelStyle = "family"
)

// Valid reports whether s is a known travel style.
func (s TravelStyle) Valid() bool {
	switch s {
	case StyleAdventure, StyleRelaxation, StyleCultural, StyleLuxury, StyleBudget, StyleFamily:
		return true
	}
	return false
}

// MaxDays is the longest plannable trip.
const MaxDays = 30

// PlanRequest describes one itinerary request. It is immutable for the
// duration of the pipeline run.
type PlanRequest struct {
	Destination string      `json:"destination"`
	Days        int         `json:"days"`
	Budget      float64     `json:"budget"`
	TravelStyle TravelStyle `json:"travel_style"`
}

// Validate checks the request against the API contract:
// destination non-empty, days in [1, 30], budget positive, known style.
func (r PlanRequest) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return fmt.Errorf("destination is required")
	}
	if r.Days < 1 || r.Days > MaxDays {
		return fmt.Errorf("days must be between 1 and %d, got %d", MaxDays, r.Days)
	}
	if r.Budget <= 0 {
		return fmt.Errorf("budget must be positive, got %.2f", r.Budget)
	}
	if !r.TravelStyle.Valid() {
		return fmt.Errorf("invalid travel style: %q", r.TravelStyle)
	}
	return nil
}

// Attraction is a single activity or sight within a day slot.
type Attraction struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Duration      string  `json:"duration"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// DayItinerary is the plan for one day. Day numbers across an Itinerary
// run 1..TotalDays with no gaps or repeats.
type DayItinerary struct {
	Day           int          `json:"day"`
	Title         string       `json:"title"`
	Morning       []Attraction `json:"morning"`
	Afternoon     []Attraction `json:"afternoon"`
	Evening       []Attraction `json:"evening"`
	Accommodation string       `json:"accommodation"`
	DailyBudget   float64      `json:"daily_budget"`
}

// TransportInfo is one transportation line item for the whole trip.
type TransportInfo struct {
	Type          string  `json:"type"`
	Details       string  `json:"details"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// Itinerary is the pipeline's output contract. It is constructed fresh per
// request and never mutated afterwards.
//
// Degraded is true when the itinerary was synthesized by the deterministic
// fallback instead of parsed from model output, so callers can tell the
// two apart.
type Itinerary struct {
	Destination string          `json:"destination"`
	TotalDays   int             `json:"total_days"`
	TotalBudget float64         `json:"total_budget"`
	TravelStyle TravelStyle     `json:"travel_style"`
	Days        []DayItinerary  `json:"days"`
	Transport   []TransportInfo `json:"transport"`
	Tips        []string        `json:"tips"`
	Degraded    bool            `json:"degraded,omitempty"`
}
