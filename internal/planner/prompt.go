package planner

import (
	"encoding/json"
	"fmt"

	"github.com/ecotravel/ecotravel-api/internal/models"
)

// maxChatHistory caps how many transcript turns are replayed to the model.
const maxChatHistory = 20

const chatSystemInstruction = `You are EcoTravel, a cool, calm, and knowledgeable travel buddy.
Your vibe is youthful, relaxed, and motivating — never preachy or judgmental.

Your Goal: Inspire the user to travel sustainably. Accompany them through the whole process: inspiration -> planning -> booking.

Key Behaviors:
1. **Tone**: Casual, friendly, enthusiastic. Use "Hey", "Check this out". If speaking German, use "Du".
2. **Inspiration Phase** (When no trips are generated): Ask about their dream destinations, suggest cool eco-friendly spots based on seasons, or explain why sustainable travel is fun (meeting locals, slow travel).
3. **Planning Phase** (When trips exist): Compare the options using relatable facts (e.g., "Taking the train saves X kg CO2, basically a small forest's worth of work!").
4. **Profile/Budget Phase**: If asked about stats, interpret their User Profile data. E.g., "You've used 450kg of your 1500kg limit. Still plenty of room for a summer trip!".
5. **Accommodation**: Hype up the eco-features (solar power, zero waste).

Context Handling:
- Always check 'Current App View' to know what the user is looking at.
- Use 'User Profile Context' to give personalized advice about their carbon budget.

Language Rule: Adapt to the user's language. If they write in German, reply in cool, youthful German. If English, keep it casual English.`

func tripPrompt(prefs models.TripPreferences) string {
	return fmt.Sprintf(`Plan 3 distinct travel options from %s to %s.
Dates/Duration: %s.
Budget: %s.
Travelers: %d.
Interests: %s.

Option 1 must be the most Eco-Friendly (e.g. Train/Bus + Eco-Lodge).
Option 2 must be the Fastest (usually Flight + Business Hotel).
Option 3 should be a Balanced option.

For each option, strictly calculate:
1. Transport CO2 emissions.
2. Sustainable Accommodation: Recommend a specific type of place (or real example if known) that fits the vibe.
   - Include specific eco-features (Energy efficiency, Waste management, etc.).
   - Estimate CO2 per night for the stay.

Be realistic with CO2 estimates.
- Flight: ~150-250g CO2/km per person.
- Train: ~14g CO2/km per person.
- Hotel: ~10-40kg CO2 per night depending on sustainability.`,
		prefs.Origin, prefs.Destination, prefs.Dates, prefs.Budget, prefs.Travelers, prefs.Interests)
}

// chatContext summarizes the session for the model, mirroring the fields
// the assistant persona is instructed to interpret.
func chatContext(trips []models.TripOption, profile models.UserProfile, view string) string {
	profileJSON, _ := json.Marshal(map[string]any{
		"name":         profile.Name,
		"totalCo2Used": profile.TotalCO2Used,
		"co2Limit":     profile.CO2Limit,
		"budgetSpent":  profile.CurrentSpend,
		"budgetLimit":  profile.YearlyBudgetLimit,
	})

	tripsContext := "None yet (User is in planning/inspiration stage)."
	if len(trips) > 0 {
		if b, err := json.Marshal(trips); err == nil {
			tripsContext = string(b)
		}
	}

	return fmt.Sprintf("Current App View: %s\nUser Profile Context: %s\nCurrent Trip Options Available to User: %s",
		view, profileJSON, tripsContext)
}

func truncateTranscript(history []models.ChatMessage, limit int) []models.ChatMessage {
	if len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}

// tripOptionsSchema is the strict response schema for trip generation.
// The root is an object wrapping an "options" array.
var tripOptionsSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []string{"options"},
	"properties": map[string]any{
		"options": map[string]any{
			"type":  "array",
			"items": tripOptionSchema,
		},
	},
}

var tripOptionSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"required": []string{
		"id", "title", "description", "transportMode", "transportCo2Kg",
		"totalCo2Kg", "durationHours", "costEstimate", "sustainabilityScore",
		"highlights", "accommodation",
	},
	"properties": map[string]any{
		"id":          map[string]any{"type": "string"},
		"title":       map[string]any{"type": "string"},
		"description": map[string]any{"type": "string"},
		"transportMode": map[string]any{
			"type": "string",
			"enum": []string{"Train", "Flight", "Bus", "Car", "Mixed"},
		},
		"transportCo2Kg": map[string]any{
			"type":        "number",
			"description": "Emissions from transport only",
		},
		"totalCo2Kg": map[string]any{
			"type":        "number",
			"description": "Transport emissions + (Accommodation emissions * nights)",
		},
		"durationHours": map[string]any{
			"type":        "number",
			"description": "Total travel time in hours",
		},
		"costEstimate": map[string]any{
			"type":        "string",
			"description": "Total estimated cost range e.g. '150-200€'",
		},
		"sustainabilityScore": map[string]any{
			"type":        "integer",
			"description": "Score from 1 to 100 based on eco-friendliness",
		},
		"highlights": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"accommodation": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required": []string{
				"name", "type", "sustainabilityRating", "features",
				"co2PerNightKg", "totalAccommodationCo2Kg", "costPerNight",
			},
			"properties": map[string]any{
				"name": map[string]any{
					"type":        "string",
					"description": "Name of suggested sustainable hotel/lodge",
				},
				"type": map[string]any{
					"type":        "string",
					"description": "Type of stay e.g. Hotel, Eco-Lodge",
				},
				"sustainabilityRating": map[string]any{
					"type":        "string",
					"description": "e.g. 'Green Key Certified', 'LEED Gold'",
				},
				"features": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Eco features e.g. 'Solar power', 'Rainwater harvesting', 'Zero waste'",
				},
				"co2PerNightKg": map[string]any{"type": "number"},
				"totalAccommodationCo2Kg": map[string]any{
					"type":        "number",
					"description": "co2PerNight * number of nights",
				},
				"costPerNight": map[string]any{"type": "string"},
			},
		},
	},
}
