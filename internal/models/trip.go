package models

import (
	"errors"
	"strings"
)

// TransportMode is the primary means of transport for a trip option, as
// reported by the trip-generation model.
type TransportMode string

const (
	TransportTrain  TransportMode = "Train"
	TransportFlight TransportMode = "Flight"
	TransportBus    TransportMode = "Bus"
	TransportCar    TransportMode = "Car"
	TransportMixed  TransportMode = "Mixed"
)

type Accommodation struct {
	Name                    string   `json:"name"`
	Type                    string   `json:"type" doc:"Type of stay e.g. Hotel, Eco-Lodge"`
	SustainabilityRating    string   `json:"sustainabilityRating" doc:"e.g. 'Green Key Certified', 'LEED Gold'"`
	Features                []string `json:"features" doc:"Eco features e.g. 'Solar power', 'Zero waste'"`
	CO2PerNightKg           float64  `json:"co2PerNightKg"`
	TotalAccommodationCO2Kg float64  `json:"totalAccommodationCo2Kg"`
	CostPerNight            string   `json:"costPerNight"`
}

// TripOption is one generated itinerary. Options are created only by the
// trip-generation call and never mutated afterwards; bookings and saved
// trips copy from them.
type TripOption struct {
	ID                  string        `json:"id"`
	Title               string        `json:"title"`
	Description         string        `json:"description"`
	TransportMode       TransportMode `json:"transportMode"`
	TransportCO2Kg      float64       `json:"transportCo2Kg" doc:"Emissions from transport only"`
	TotalCO2Kg          float64       `json:"totalCo2Kg" doc:"Transport plus accommodation emissions"`
	DurationHours       float64       `json:"durationHours"`
	CostEstimate        string        `json:"costEstimate" doc:"Free-text cost range e.g. '150-200€'"`
	SustainabilityScore int           `json:"sustainabilityScore" doc:"1-100, higher is greener"`
	Highlights          []string      `json:"highlights"`
	Accommodation       Accommodation `json:"accommodation"`
}

// TripPreferences is the validated trip request captured by the form.
// Immutable once submitted; re-editing the form starts from the last
// submitted value.
type TripPreferences struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Dates       string `json:"dates"`
	Budget      string `json:"budget"`
	Travelers   int    `json:"travelers"`
	Interests   string `json:"interests"`
}

// Validate checks the form-level rules: every field is required except
// interests, and the traveler count must be positive.
func (p TripPreferences) Validate() error {
	if strings.TrimSpace(p.Origin) == "" {
		return errors.New("origin is required")
	}
	if strings.TrimSpace(p.Destination) == "" {
		return errors.New("destination is required")
	}
	if strings.TrimSpace(p.Dates) == "" {
		return errors.New("dates are required")
	}
	if strings.TrimSpace(p.Budget) == "" {
		return errors.New("budget is required")
	}
	if p.Travelers < 1 {
		return errors.New("travelers must be a positive integer")
	}
	return nil
}
