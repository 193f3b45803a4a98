package planner

import (
	"context"

	"github.com/ecotravel/ecotravel-api/internal/models"
)

// Client is the outbound surface to the generative model. Two operations:
// itinerary generation for a submitted search, and one conversational
// reply for the companion chat.
type Client interface {
	// GenerateTripOptions asks the model for itinerary options matching the
	// preferences. The prompt requests three options (eco / fastest /
	// balanced) but the response size is not enforced; callers must
	// tolerate any count, including zero.
	GenerateTripOptions(ctx context.Context, prefs models.TripPreferences) ([]models.TripOption, error)

	// SendChatMessage returns one assistant reply. The transcript, current
	// trip options, profile summary and view name are forwarded so the
	// remote persona has situational context it cannot otherwise infer.
	// history is the transcript before the new message; newMessage is sent
	// as the final user turn.
	SendChatMessage(ctx context.Context, history []models.ChatMessage, newMessage string, trips []models.TripOption, profile models.UserProfile, view string) (string, error)
}
